// Package forecast projeta valor, receita e despesas de um imóvel ano a ano
// e concentra a aritmética de cap rate usada pela calculadora de avaliação.
package forecast

import (
	"math"

	"github.com/shopspring/decimal"
	"github.com/vfg2006/cre-deals-api/internal/domain"
)

const displayPlaces = 2

// Project gera a projeção ano a ano. O crescimento é composto sobre os totais
// não arredondados; o arredondamento vale apenas para os pontos devolvidos.
// Horizonte menor que 1 retorna uma sequência vazia. NaN e Inf se propagam.
func Project(
	initialValue float64,
	initialIncome float64,
	initialExpenses float64,
	assumptions domain.ForecastAssumptions,
	horizonYears int,
) []domain.ForecastPoint {
	if horizonYears < 1 {
		return []domain.ForecastPoint{}
	}

	points := make([]domain.ForecastPoint, 0, horizonYears)

	value, income, expenses := initialValue, initialIncome, initialExpenses
	for year := 1; year <= horizonYears; year++ {
		growth := 1 + assumptions.Rate(year)

		value *= growth
		income *= growth
		expenses *= growth

		points = append(points, domain.ForecastPoint{
			Year:     domain.YearLabel(year),
			Value:    Round(value),
			Income:   Round(income),
			Expenses: Round(expenses),
		})
	}

	return points
}

// NOI é a receita operacional líquida anual
func NOI(annualIncome, annualExpenses float64) float64 {
	return annualIncome - annualExpenses
}

// CapRate retorna (receita - despesas) / valor * 100. Valor zero resulta em 0.
func CapRate(annualIncome, annualExpenses, propertyValue float64) float64 {
	if propertyValue == 0 {
		return 0
	}
	return NOI(annualIncome, annualExpenses) / propertyValue * 100
}

// PropertyValue é o inverso de CapRate. Cap rate zero resulta em 0.
func PropertyValue(annualIncome, annualExpenses, capRate float64) float64 {
	if capRate == 0 {
		return 0
	}
	return NOI(annualIncome, annualExpenses) / (capRate / 100)
}

// Round arredonda para duas casas decimais (half away from zero).
// decimal não representa NaN/Inf, então esses valores passam sem alteração.
func Round(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return v
	}

	rounded, _ := decimal.NewFromFloat(v).Round(displayPlaces).Float64()
	return rounded
}
