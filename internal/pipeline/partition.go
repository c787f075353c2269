package pipeline

import (
	"github.com/vfg2006/cre-deals-api/internal/domain"
)

// Partition agrupa os negócios por estágio do kanban, na ordem de exibição de cada coluna.
// É uma visão derivada da coleção de negócios, não a fonte de verdade.
type Partition map[domain.Stage][]domain.Deal

// Derive monta a partição a partir da coleção completa. Negócios com status
// fora dos estágios reordenáveis (Closed, Dead, ou inválidos) são descartados.
// A ordem relativa da coleção é preservada dentro de cada estágio.
func Derive(deals []domain.Deal) Partition {
	partition := NewPartition()
	for _, deal := range deals {
		if !deal.Status.IsReorderable() {
			continue
		}
		partition[deal.Status] = append(partition[deal.Status], deal)
	}
	return partition
}

// NewPartition retorna uma partição com as quatro colunas vazias
func NewPartition() Partition {
	partition := make(Partition, len(domain.ReorderableStages))
	for _, stage := range domain.ReorderableStages {
		partition[stage] = []domain.Deal{}
	}
	return partition
}

// Clone copia a partição; as colunas não compartilham memória com a original
func (p Partition) Clone() Partition {
	out := make(Partition, len(p))
	for stage, deals := range p {
		column := make([]domain.Deal, len(deals))
		copy(column, deals)
		out[stage] = column
	}
	return out
}

// At retorna o negócio na posição indicada, se existir
func (p Partition) At(stage domain.Stage, index int) (domain.Deal, bool) {
	column, ok := p[stage]
	if !ok || index < 0 || index >= len(column) {
		return domain.Deal{}, false
	}
	return column[index], true
}

// Len retorna o total de negócios em todas as colunas
func (p Partition) Len() int {
	total := 0
	for _, deals := range p {
		total += len(deals)
	}
	return total
}

// Stages retorna as colunas na ordem de exibição, útil para serialização ordenada
func (p Partition) Stages() []Column {
	columns := make([]Column, 0, len(domain.ReorderableStages))
	for _, stage := range domain.ReorderableStages {
		deals := p[stage]
		if deals == nil {
			deals = []domain.Deal{}
		}
		columns = append(columns, Column{Stage: stage, Deals: deals})
	}
	return columns
}

type Column struct {
	Stage domain.Stage  `json:"stage"`
	Deals []domain.Deal `json:"deals"`
}

func removeAt(deals []domain.Deal, index int) []domain.Deal {
	out := make([]domain.Deal, 0, len(deals)-1)
	out = append(out, deals[:index]...)
	return append(out, deals[index+1:]...)
}

// insertAt insere na posição indicada; índices fora do intervalo são limitados às pontas
func insertAt(deals []domain.Deal, index int, deal domain.Deal) []domain.Deal {
	if index < 0 {
		index = 0
	}
	if index > len(deals) {
		index = len(deals)
	}

	out := make([]domain.Deal, 0, len(deals)+1)
	out = append(out, deals[:index]...)
	out = append(out, deal)
	return append(out, deals[index:]...)
}
