package dealing

import (
	"errors"
	"fmt"
)

var (
	ErrDealNotFound      = errors.New("negócio não encontrado")
	ErrNameRequired      = errors.New("nome do negócio é obrigatório")
	ErrInvalidStage      = errors.New("estágio inválido")
	ErrInvalidPriority   = errors.New("prioridade inválida")
	ErrInvalidAmount     = errors.New("valor negativo")
	ErrEmptyPatch        = errors.New("nenhum campo para atualizar")
	ErrMoveFailed        = errors.New("falha ao persistir movimento")
	ErrDatabaseOperation = errors.New("erro ao realizar operação no banco de dados")
)

// DealError é um erro com contexto adicional para negócios
type DealError struct {
	Err     error  // Erro base
	Code    string // Código de erro para API
	DealID  string // ID do negócio envolvido (quando aplicável)
	Details string // Detalhes adicionais
}

func (e *DealError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s", e.Err.Error(), e.Details)
	}
	return e.Err.Error()
}

func (e *DealError) Unwrap() error {
	return e.Err
}

func NewDealError(err error, code string, details string) *DealError {
	return &DealError{
		Err:     err,
		Code:    code,
		Details: details,
	}
}

func NewDealErrorWithID(err error, code string, dealID string, details string) *DealError {
	return &DealError{
		Err:     err,
		Code:    code,
		DealID:  dealID,
		Details: details,
	}
}

// IsValidationError indica erros causados pela entrada do cliente
func IsValidationError(err error) bool {
	return errors.Is(err, ErrNameRequired) ||
		errors.Is(err, ErrInvalidStage) ||
		errors.Is(err, ErrInvalidPriority) ||
		errors.Is(err, ErrInvalidAmount) ||
		errors.Is(err, ErrEmptyPatch)
}
