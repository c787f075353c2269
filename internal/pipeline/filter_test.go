package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/vfg2006/cre-deals-api/internal/domain"
)

func TestFilter_Apply(t *testing.T) {
	partition := Derive([]domain.Deal{
		{ID: "1", Name: "Harbor Point", Address: "12 Dock St", City: "Boston", PropertyType: "Office", Status: domain.StageScreening},
		{ID: "2", Name: "Maple Center", Address: "400 Maple Ave", City: "Austin", PropertyType: "Retail", Status: domain.StageScreening},
		{ID: "3", Name: "Riverside Lofts", Address: "9 River Rd", City: "Denver", PropertyType: "Multifamily", Status: domain.StageNegotiation},
		{ID: "4", Name: "Tower One", Address: "1 Harbor Blvd", City: "Miami", PropertyType: "Office", Status: domain.StageClosing},
	})

	tests := []struct {
		name   string
		filter Filter
		want   map[domain.Stage][]string
	}{
		{
			name:   "Sem filtro mantém tudo",
			filter: Filter{},
			want: map[domain.Stage][]string{
				domain.StageScreening:   {"1", "2"},
				domain.StageNegotiation: {"3"},
				domain.StageClosing:     {"4"},
			},
		},
		{
			name:   "Tipo 'all' equivale a sem filtro",
			filter: Filter{PropertyType: AllPropertyTypes},
			want: map[domain.Stage][]string{
				domain.StageScreening:   {"1", "2"},
				domain.StageNegotiation: {"3"},
				domain.StageClosing:     {"4"},
			},
		},
		{
			name:   "Tipo de imóvel exato",
			filter: Filter{PropertyType: "Office"},
			want: map[domain.Stage][]string{
				domain.StageScreening: {"1"},
				domain.StageClosing:   {"4"},
			},
		},
		{
			name:   "Tipo de imóvel não é busca parcial",
			filter: Filter{PropertyType: "Off"},
			want:   map[domain.Stage][]string{},
		},
		{
			name:   "Busca sem distinção de maiúsculas no endereço e no nome",
			filter: Filter{Query: "HARBOR"},
			want: map[domain.Stage][]string{
				domain.StageScreening: {"1"},
				domain.StageClosing:   {"4"},
			},
		},
		{
			name:   "Busca pela cidade",
			filter: Filter{Query: "denv"},
			want: map[domain.Stage][]string{
				domain.StageNegotiation: {"3"},
			},
		},
		{
			name:   "Busca pelo tipo combinada com o filtro de tipo",
			filter: Filter{PropertyType: "Office", Query: "tower"},
			want: map[domain.Stage][]string{
				domain.StageClosing: {"4"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.filter.Apply(partition)

			for _, stage := range domain.ReorderableStages {
				want := tt.want[stage]
				if want == nil {
					want = []string{}
				}
				assert.Equal(t, want, ids(got[stage]), "estágio %s", stage)
			}
		})
	}
}

func TestFilter_ApplyDoesNotMutate(t *testing.T) {
	partition := Derive(fixtureDeals())
	before := partition.Clone()

	Filter{PropertyType: "Retail", Query: "maple"}.Apply(partition)

	assert.Equal(t, before, partition)
}

func TestFilter_IsEmpty(t *testing.T) {
	assert.True(t, Filter{}.IsEmpty())
	assert.True(t, Filter{PropertyType: "all", Query: "  "}.IsEmpty())
	assert.False(t, Filter{Query: "x"}.IsEmpty())
	assert.False(t, Filter{PropertyType: "Office"}.IsEmpty())
}
