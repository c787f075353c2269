package domain

import "time"

type StageSummary struct {
	Stage Stage   `json:"stage"`
	Count int     `json:"count"`
	Value float64 `json:"value"`
}

type DashboardSummary struct {
	TotalDeals        int            `json:"total_deals"`
	ActiveDeals       int            `json:"active_deals"`
	PipelineValue     float64        `json:"pipeline_value"`
	AverageCapRate    float64        `json:"average_cap_rate"`
	AverageIRR        float64        `json:"average_irr"`
	HighPriorityDeals int            `json:"high_priority_deals"`
	ClosedDeals       int            `json:"closed_deals"`
	DeadDeals         int            `json:"dead_deals"`
	SavedValuations   int            `json:"saved_valuations"`
	Stages            []StageSummary `json:"stages"`
	GeneratedAt       time.Time      `json:"generated_at"`
}

type InsightSeverity string

const (
	InsightInfo     InsightSeverity = "info"
	InsightWarning  InsightSeverity = "warning"
	InsightCritical InsightSeverity = "critical"
)

type Insight struct {
	Code     string          `json:"code"`
	Title    string          `json:"title"`
	Message  string          `json:"message"`
	Severity InsightSeverity `json:"severity"`
	DealIDs  []string        `json:"deal_ids,omitempty"`
}

type InsightsResponse struct {
	Insights    []Insight `json:"insights"`
	GeneratedAt time.Time `json:"generated_at"`
}
