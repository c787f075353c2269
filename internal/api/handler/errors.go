package handler

import (
	"net/http"

	"github.com/pkg/errors"
	"github.com/vfg2006/cre-deals-api/internal/usecases/dealing"
	"github.com/vfg2006/cre-deals-api/internal/usecases/valuing"
	"github.com/vfg2006/cre-deals-api/pkg/apiErrors"
	"github.com/vfg2006/cre-deals-api/pkg/log"
)

// handleServiceError converte os erros tipados dos casos de uso na resposta padronizada
func handleServiceError(w http.ResponseWriter, r *http.Request, err error, details any) {
	logger := log.ForContext(r.Context()).WithError(err)

	var dealErr *dealing.DealError
	if errors.As(err, &dealErr) {
		if apiErrors.StatusFor(dealErr.Code) >= http.StatusInternalServerError {
			logger.Error("Erro ao processar negócio")
		} else {
			logger.Warn("Requisição de negócio rejeitada")
		}
		apiErrors.WriteError(w, dealErr.Code, dealErr.Error(), details)
		return
	}

	var valuationErr *valuing.ValuationError
	if errors.As(err, &valuationErr) {
		if apiErrors.StatusFor(valuationErr.Code) >= http.StatusInternalServerError {
			logger.Error("Erro ao processar avaliação")
		} else {
			logger.Warn("Requisição de avaliação rejeitada")
		}
		apiErrors.WriteError(w, valuationErr.Code, valuationErr.Error(), details)
		return
	}

	logger.Error("Erro inesperado")
	apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro interno do servidor", nil)
}
