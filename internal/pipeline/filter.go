package pipeline

import (
	"strings"

	"github.com/vfg2006/cre-deals-api/internal/domain"
)

const AllPropertyTypes = "all"

// Filter restringe a visão do kanban. Nunca altera a partição de origem.
type Filter struct {
	PropertyType string
	Query        string
}

func (f Filter) IsEmpty() bool {
	return f.matchesAnyType() && strings.TrimSpace(f.Query) == ""
}

// Apply retorna uma nova partição apenas com os negócios que atendem ao filtro
func (f Filter) Apply(partition Partition) Partition {
	out := make(Partition, len(partition))
	for stage, deals := range partition {
		column := make([]domain.Deal, 0, len(deals))
		for _, deal := range deals {
			if f.Matches(deal) {
				column = append(column, deal)
			}
		}
		out[stage] = column
	}
	return out
}

// Matches aplica o tipo de imóvel (igualdade exata) e a busca textual
// (substring sem distinção de maiúsculas em nome, endereço, cidade e tipo)
func (f Filter) Matches(deal domain.Deal) bool {
	if !f.matchesAnyType() && deal.PropertyType != f.PropertyType {
		return false
	}

	query := strings.ToLower(strings.TrimSpace(f.Query))
	if query == "" {
		return true
	}

	for _, field := range []string{deal.Name, deal.Address, deal.City, deal.PropertyType} {
		if strings.Contains(strings.ToLower(field), query) {
			return true
		}
	}

	return false
}

func (f Filter) matchesAnyType() bool {
	return f.PropertyType == "" || f.PropertyType == AllPropertyTypes
}
