package domain

import (
	"time"
)

type Stage string

const (
	StageScreening    Stage = "Screening"
	StageDueDiligence Stage = "Due Diligence"
	StageNegotiation  Stage = "Negotiation"
	StageClosing      Stage = "Closing"
	StageClosed       Stage = "Closed"
	StageDead         Stage = "Dead"
)

// ReorderableStages são as colunas do kanban, na ordem de exibição
var ReorderableStages = []Stage{
	StageScreening,
	StageDueDiligence,
	StageNegotiation,
	StageClosing,
}

// IsReorderable indica se o estágio faz parte do kanban (Closed e Dead ficam de fora)
func (s Stage) IsReorderable() bool {
	for _, stage := range ReorderableStages {
		if s == stage {
			return true
		}
	}
	return false
}

// IsValid indica se o estágio pertence ao conjunto fechado de estágios
func (s Stage) IsValid() bool {
	return s.IsReorderable() || s == StageClosed || s == StageDead
}

type Priority string

const (
	PriorityHigh   Priority = "High"
	PriorityMedium Priority = "Medium"
	PriorityLow    Priority = "Low"
	PriorityNone   Priority = ""
)

// Rank retorna o nível visual da prioridade. Ausente fica no nível mais baixo.
func (p Priority) Rank() int {
	switch p {
	case PriorityHigh:
		return 3
	case PriorityMedium:
		return 2
	case PriorityLow:
		return 1
	default:
		return 0
	}
}

func (p Priority) IsValid() bool {
	return p == PriorityNone || p.Rank() > 0
}

type Deal struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Address      string    `json:"address"`
	City         string    `json:"city"`
	PropertyType string    `json:"property_type"`
	Status       Stage     `json:"status"`
	Priority     Priority  `json:"priority,omitempty"`
	Price        float64   `json:"price"`
	CapRate      float64   `json:"cap_rate"`
	IRR          float64   `json:"irr"`
	Location     string    `json:"location"`
	Notes        *string   `json:"notes"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// DealPatch representa uma atualização parcial. Campos nil não são alterados.
type DealPatch struct {
	Name         *string   `json:"name"`
	Address      *string   `json:"address"`
	City         *string   `json:"city"`
	PropertyType *string   `json:"property_type"`
	Status       *Stage    `json:"status"`
	Priority     *Priority `json:"priority"`
	Price        *float64  `json:"price"`
	CapRate      *float64  `json:"cap_rate"`
	IRR          *float64  `json:"irr"`
	Location     *string   `json:"location"`
	Notes        *string   `json:"notes"`
}

// IsEmpty indica que nenhum campo foi informado
func (p DealPatch) IsEmpty() bool {
	return p.Name == nil && p.Address == nil && p.City == nil && p.PropertyType == nil &&
		p.Status == nil && p.Priority == nil && p.Price == nil && p.CapRate == nil &&
		p.IRR == nil && p.Location == nil && p.Notes == nil
}

type DealFilters struct {
	Status       *Stage
	PropertyType string
	Search       string
}

// Move descreve um arraste no kanban: origem (estágio + índice) e destino.
type Move struct {
	DealID      string `json:"deal_id"`
	SourceStage Stage  `json:"source_stage"`
	SourceIndex int    `json:"source_index"`
	DestStage   Stage  `json:"dest_stage"`
	DestIndex   int    `json:"dest_index"`
}
