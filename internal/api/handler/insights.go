package handler

import (
	"net/http"

	"github.com/vfg2006/cre-deals-api/internal/usecases/insighting"
	"github.com/vfg2006/cre-deals-api/pkg/apiErrors"
	"github.com/vfg2006/cre-deals-api/pkg/log"
)

func GetDashboard(service insighting.Insighter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		summary, err := service.Dashboard(r.Context())
		if err != nil {
			log.ForContext(r.Context()).WithError(err).Error("Erro ao montar painel")
			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao carregar painel", nil)
			return
		}

		writeJSON(w, r, http.StatusOK, summary)
	}
}

func GetInsights(service insighting.Insighter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		insights, err := service.Insights(r.Context())
		if err != nil {
			log.ForContext(r.Context()).WithError(err).Error("Erro ao gerar insights")
			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao gerar insights", nil)
			return
		}

		writeJSON(w, r, http.StatusOK, insights)
	}
}
