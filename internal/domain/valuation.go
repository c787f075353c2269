package domain

import "time"

// Valuation é um cenário de avaliação salvo pela calculadora
type Valuation struct {
	ID             string              `json:"id"`
	DealID         *string             `json:"deal_id"`
	Name           string              `json:"name"`
	PropertyValue  float64             `json:"property_value"`
	AnnualIncome   float64             `json:"annual_income"`
	AnnualExpenses float64             `json:"annual_expenses"`
	CapRate        float64             `json:"cap_rate"`
	Assumptions    ForecastAssumptions `json:"assumptions"`
	CreatedBy      int                 `json:"created_by"`
	CreatedAt      time.Time           `json:"created_at"`
}

type SaveValuationRequest struct {
	DealID         *string             `json:"deal_id"`
	Name           string              `json:"name"`
	PropertyValue  float64             `json:"property_value"`
	AnnualIncome   float64             `json:"annual_income"`
	AnnualExpenses float64             `json:"annual_expenses"`
	Assumptions    ForecastAssumptions `json:"assumptions"`
	CreatedBy      int                 `json:"-"`
}
