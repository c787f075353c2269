package handler

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/vfg2006/cre-deals-api/internal/domain"
	"github.com/vfg2006/cre-deals-api/internal/usecases/valuing"
	"github.com/vfg2006/cre-deals-api/pkg/middleware"
)

func Forecast(service valuing.ValuationService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req domain.ForecastRequest
		if !decodeBody(w, r, &req) {
			return
		}

		response, err := service.Forecast(req)
		if err != nil {
			handleServiceError(w, r, err, nil)
			return
		}

		writeJSON(w, r, http.StatusOK, response)
	}
}

func CapRate(service valuing.ValuationService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req domain.CapRateRequest
		if !decodeBody(w, r, &req) {
			return
		}

		response, err := service.CapRate(req)
		if err != nil {
			handleServiceError(w, r, err, nil)
			return
		}

		writeJSON(w, r, http.StatusOK, response)
	}
}

// ListValuations lista os cenários salvos; deal_id restringe a um negócio
func ListValuations(service valuing.ValuationService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var dealID *string
		if id := r.URL.Query().Get("deal_id"); id != "" {
			dealID = &id
		}

		valuations, err := service.ListValuations(r.Context(), dealID)
		if err != nil {
			handleServiceError(w, r, err, nil)
			return
		}

		writeJSON(w, r, http.StatusOK, valuations)
	}
}

func SaveValuation(service valuing.ValuationService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req domain.SaveValuationRequest
		if !decodeBody(w, r, &req) {
			return
		}

		if claims, ok := middleware.ClaimsFromContext(r.Context()); ok {
			req.CreatedBy = claims.UserID
		}

		valuation, err := service.SaveValuation(r.Context(), req)
		if err != nil {
			handleServiceError(w, r, err, nil)
			return
		}

		writeJSON(w, r, http.StatusCreated, valuation)
	}
}

func DeleteValuation(service valuing.ValuationService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := httprouter.ParamsFromContext(r.Context()).ByName("id")

		if err := service.DeleteValuation(r.Context(), id); err != nil {
			handleServiceError(w, r, err, nil)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}
