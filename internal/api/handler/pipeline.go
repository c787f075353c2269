package handler

import (
	"net/http"
	"strings"

	"github.com/vfg2006/cre-deals-api/internal/domain"
	"github.com/vfg2006/cre-deals-api/internal/pipeline"
	"github.com/vfg2006/cre-deals-api/internal/usecases/dealing"
)

type PipelineResponse struct {
	Columns []pipeline.Column `json:"columns"`
}

type MoveResponse struct {
	Outcome pipeline.Outcome  `json:"outcome"`
	Deal    *domain.Deal      `json:"deal,omitempty"`
	Columns []pipeline.Column `json:"columns"`
}

// GetPipeline retorna o kanban; property_type e q filtram apenas a exibição
func GetPipeline(service dealing.DealService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query()

		board := service.Board(pipeline.Filter{
			PropertyType: strings.TrimSpace(query.Get("property_type")),
			Query:        strings.TrimSpace(query.Get("q")),
		})

		writeJSON(w, r, http.StatusOK, PipelineResponse{Columns: board.Stages()})
	}
}

// MovePipelineDeal aplica um arraste. Quando a persistência falha o corpo do erro
// traz a partição já ressincronizada para que o cliente descarte o estado otimista.
func MovePipelineDeal(service dealing.DealService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var move domain.Move
		if !decodeBody(w, r, &move) {
			return
		}

		result, err := service.Move(r.Context(), move)
		if err != nil {
			handleServiceError(w, r, err, MoveResponse{
				Outcome: result.Outcome,
				Deal:    result.Deal,
				Columns: service.Board(pipeline.Filter{}).Stages(),
			})
			return
		}

		writeJSON(w, r, http.StatusOK, MoveResponse{
			Outcome: result.Outcome,
			Deal:    result.Deal,
			Columns: service.Board(pipeline.Filter{}).Stages(),
		})
	}
}
