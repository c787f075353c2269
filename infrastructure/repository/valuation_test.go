package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/cre-deals-api/internal/domain"
)

func TestBuildInsertValuationQuery(t *testing.T) {
	dealID := "3"
	valuation := &domain.Valuation{
		ID:             "aB3xYz",
		DealID:         &dealID,
		Name:           "Cenário base",
		PropertyValue:  1000000,
		AnnualIncome:   120000,
		AnnualExpenses: 40000,
		CapRate:        8,
		Assumptions:    domain.ForecastAssumptions{"Year 1": 0.03},
		CreatedBy:      1,
	}

	query, err := buildInsertValuationQuery(valuation)
	require.NoError(t, err)

	sql, args, err := query.ToSql()
	require.NoError(t, err)

	assert.Equal(t, "INSERT INTO valuations (id,deal_id,name,property_value,annual_income,annual_expenses,cap_rate,assumptions,created_by) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9) RETURNING created_at", sql)
	assert.Equal(t, `{"Year 1":0.03}`, args[7])
}

func TestBuildListValuationsQuery(t *testing.T) {
	sql, args, err := buildListValuationsQuery(nil).ToSql()
	require.NoError(t, err)
	assert.NotContains(t, sql, "WHERE")
	assert.Empty(t, args)

	dealID := "9"
	sql, args, err = buildListValuationsQuery(&dealID).ToSql()
	require.NoError(t, err)
	assert.Contains(t, sql, "WHERE deal_id = $1")
	assert.Equal(t, []interface{}{"9"}, args)
}
