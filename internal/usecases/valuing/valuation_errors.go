package valuing

import (
	"errors"
	"fmt"
)

var (
	ErrValuationNotFound   = errors.New("avaliação não encontrada")
	ErrMissingRequiredData = errors.New("dados obrigatórios ausentes")
	ErrHorizonTooLong      = errors.New("horizonte de projeção muito longo")
	ErrNonFiniteResult     = errors.New("cálculo resultou em valor não finito")
	ErrGenerateID          = errors.New("erro ao gerar id")
	ErrDatabaseOperation   = errors.New("erro ao realizar operação no banco de dados")
)

// ValuationError é um erro com contexto adicional para a calculadora de avaliação
type ValuationError struct {
	Err     error
	Code    string
	Details string
}

func (e *ValuationError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s", e.Err.Error(), e.Details)
	}
	return e.Err.Error()
}

func (e *ValuationError) Unwrap() error {
	return e.Err
}

func NewValuationError(err error, code string, details string) *ValuationError {
	return &ValuationError{
		Err:     err,
		Code:    code,
		Details: details,
	}
}
