package domain

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
)

const (
	DefaultForecastYears      = 5
	DefaultForecastGrowthRate = 0.02
)

// ForecastAssumptions mapeia o rótulo do ano ("Year 1") para a taxa de crescimento anual (0.02 = 2%).
// As chaves não precisam ser contíguas nem ordenadas.
type ForecastAssumptions map[string]float64

// YearLabel retorna o rótulo usado como chave das premissas
func YearLabel(year int) string {
	return fmt.Sprintf("Year %d", year)
}

// DefaultForecastAssumptions retorna "Year 1".."Year 5" a 2%
func DefaultForecastAssumptions() ForecastAssumptions {
	assumptions := make(ForecastAssumptions, DefaultForecastYears)
	for i := 1; i <= DefaultForecastYears; i++ {
		assumptions[YearLabel(i)] = DefaultForecastGrowthRate
	}
	return assumptions
}

// Rate retorna a taxa do ano; ano ausente equivale a 0%
func (a ForecastAssumptions) Rate(year int) float64 {
	return a[YearLabel(year)]
}

// AddYear adiciona o ano seguinte ao maior ano existente e retorna o rótulo criado.
// Lacunas deixadas por RemoveYear não são reaproveitadas.
func (a ForecastAssumptions) AddYear(rate float64) string {
	last := 0
	for label := range a {
		if year, ok := yearOf(label); ok && year > last {
			last = year
		}
	}

	label := YearLabel(last + 1)
	a[label] = rate
	return label
}

// yearOf extrai o número do ano de um rótulo "Year <n>"
func yearOf(label string) (int, bool) {
	n, err := strconv.Atoi(strings.TrimPrefix(label, "Year "))
	if err != nil || !strings.HasPrefix(label, "Year ") {
		return 0, false
	}
	return n, true
}

// RemoveYear remove o ano informado. Retorna false se não existia.
func (a ForecastAssumptions) RemoveYear(label string) bool {
	if _, ok := a[label]; !ok {
		return false
	}
	delete(a, label)
	return true
}

// Labels retorna os rótulos ordenados pelo número do ano; rótulos fora do padrão vão para o fim
func (a ForecastAssumptions) Labels() []string {
	labels := make([]string, 0, len(a))
	for label := range a {
		labels = append(labels, label)
	}

	sortKey := func(label string) int {
		if n, ok := yearOf(label); ok {
			return n
		}
		return math.MaxInt
	}

	sort.SliceStable(labels, func(i, j int) bool {
		yi, yj := sortKey(labels[i]), sortKey(labels[j])
		if yi != yj {
			return yi < yj
		}
		return labels[i] < labels[j]
	})

	return labels
}

type ForecastPoint struct {
	Year     string  `json:"year"`
	Value    float64 `json:"value"`
	Income   float64 `json:"income"`
	Expenses float64 `json:"expenses"`
}

type ForecastRequest struct {
	PropertyValue  float64             `json:"property_value"`
	AnnualIncome   float64             `json:"annual_income"`
	AnnualExpenses float64             `json:"annual_expenses"`
	Assumptions    ForecastAssumptions `json:"assumptions"`
	HorizonYears   *int                `json:"horizon_years"`
}

type ForecastResponse struct {
	CapRate     float64             `json:"cap_rate"`
	NOI         float64             `json:"noi"`
	Assumptions ForecastAssumptions `json:"assumptions"`
	Points      []ForecastPoint     `json:"points"`
}

// CapRateRequest aceita o valor do imóvel ou o cap rate; o outro é calculado
type CapRateRequest struct {
	AnnualIncome   float64  `json:"annual_income"`
	AnnualExpenses float64  `json:"annual_expenses"`
	PropertyValue  *float64 `json:"property_value"`
	CapRate        *float64 `json:"cap_rate"`
}

type CapRateResponse struct {
	PropertyValue float64 `json:"property_value"`
	CapRate       float64 `json:"cap_rate"`
	NOI           float64 `json:"noi"`
}
