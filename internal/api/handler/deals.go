package handler

import (
	"net/http"
	"strings"

	"github.com/julienschmidt/httprouter"
	"github.com/vfg2006/cre-deals-api/internal/domain"
	"github.com/vfg2006/cre-deals-api/internal/usecases/dealing"
	"github.com/vfg2006/cre-deals-api/pkg/apiErrors"
)

// ListDeals aceita os filtros opcionais status, property_type e q
func ListDeals(service dealing.DealService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query()

		filters := domain.DealFilters{
			PropertyType: strings.TrimSpace(query.Get("property_type")),
			Search:       strings.TrimSpace(query.Get("q")),
		}

		if status := query.Get("status"); status != "" {
			stage := domain.Stage(status)
			if !stage.IsValid() {
				apiErrors.WriteError(w, apiErrors.ErrInvalidStage, "Estágio inválido: "+status, nil)
				return
			}
			filters.Status = &stage
		}

		deals, err := service.ListDeals(r.Context(), filters)
		if err != nil {
			handleServiceError(w, r, err, nil)
			return
		}

		writeJSON(w, r, http.StatusOK, deals)
	}
}

func GetDeal(service dealing.DealService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := httprouter.ParamsFromContext(r.Context()).ByName("id")

		deal, err := service.GetDeal(r.Context(), id)
		if err != nil {
			handleServiceError(w, r, err, nil)
			return
		}

		writeJSON(w, r, http.StatusOK, deal)
	}
}

func CreateDeal(service dealing.DealService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var deal domain.Deal
		if !decodeBody(w, r, &deal) {
			return
		}

		created, err := service.CreateDeal(r.Context(), &deal)
		if err != nil {
			handleServiceError(w, r, err, nil)
			return
		}

		writeJSON(w, r, http.StatusCreated, created)
	}
}

func UpdateDeal(service dealing.DealService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := httprouter.ParamsFromContext(r.Context()).ByName("id")

		var patch domain.DealPatch
		if !decodeBody(w, r, &patch) {
			return
		}

		updated, err := service.UpdateDeal(r.Context(), id, patch)
		if err != nil {
			handleServiceError(w, r, err, nil)
			return
		}

		writeJSON(w, r, http.StatusOK, updated)
	}
}

func DeleteDeal(service dealing.DealService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := httprouter.ParamsFromContext(r.Context()).ByName("id")

		if err := service.DeleteDeal(r.Context(), id); err != nil {
			handleServiceError(w, r, err, nil)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}
