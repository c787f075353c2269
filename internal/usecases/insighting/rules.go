package insighting

import (
	"fmt"
	"time"

	"github.com/vfg2006/cre-deals-api/internal/domain"
	"github.com/vfg2006/cre-deals-api/pkg/utils"
)

const (
	// TargetCapRate é o cap rate mínimo esperado para um negócio ativo (%)
	TargetCapRate = 5.0
	// StalledAfter é o tempo sem atualização para um negócio High em Screening ser considerado parado
	StalledAfter = 30 * 24 * time.Hour

	concentrationMinDeals  = 4
	concentrationThreshold = 50.0
	deadRatioWarning       = 25.0
	deadRatioCritical      = 40.0
)

const (
	InsightEmptyPipeline      = "EMPTY_PIPELINE"
	InsightStageConcentration = "STAGE_CONCENTRATION"
	InsightStalledHighPrio    = "STALLED_HIGH_PRIORITY"
	InsightLowCapRate         = "LOW_CAP_RATE"
	InsightDeadRatio          = "DEAD_RATIO"
	InsightNoValuations       = "NO_VALUATIONS"
)

// Evaluate aplica as regras sobre a coleção e retorna as observações na ordem das regras
func Evaluate(deals []domain.Deal, savedValuations int, now time.Time) []domain.Insight {
	insights := make([]domain.Insight, 0)

	active := make([]domain.Deal, 0, len(deals))
	for _, deal := range deals {
		if deal.Status.IsReorderable() {
			active = append(active, deal)
		}
	}

	if len(active) == 0 {
		insights = append(insights, domain.Insight{
			Code:     InsightEmptyPipeline,
			Title:    "Pipeline vazio",
			Message:  "Nenhum negócio ativo no kanban.",
			Severity: domain.InsightInfo,
		})
	}

	if insight, ok := stageConcentration(active); ok {
		insights = append(insights, insight)
	}

	if ids := stalledHighPriority(active, now); len(ids) > 0 {
		insights = append(insights, domain.Insight{
			Code:     InsightStalledHighPrio,
			Title:    "Negócios prioritários parados",
			Message:  fmt.Sprintf("%d negócio(s) High em Screening sem atualização há mais de 30 dias.", len(ids)),
			Severity: domain.InsightWarning,
			DealIDs:  ids,
		})
	}

	if ids := belowTargetCapRate(active); len(ids) > 0 {
		insights = append(insights, domain.Insight{
			Code:     InsightLowCapRate,
			Title:    "Cap rate abaixo da meta",
			Message:  fmt.Sprintf("%d negócio(s) ativo(s) com cap rate abaixo de %.1f%%.", len(ids), TargetCapRate),
			Severity: domain.InsightInfo,
			DealIDs:  ids,
		})
	}

	if insight, ok := deadRatio(deals); ok {
		insights = append(insights, insight)
	}

	if len(active) > 0 && savedValuations == 0 {
		insights = append(insights, domain.Insight{
			Code:     InsightNoValuations,
			Title:    "Nenhuma avaliação salva",
			Message:  "Existem negócios ativos sem nenhum cenário de avaliação salvo.",
			Severity: domain.InsightInfo,
		})
	}

	return insights
}

func stageConcentration(active []domain.Deal) (domain.Insight, bool) {
	if len(active) < concentrationMinDeals {
		return domain.Insight{}, false
	}

	counts := make(map[domain.Stage]int)
	for _, deal := range active {
		counts[deal.Status]++
	}

	for _, stage := range domain.ReorderableStages {
		share := utils.Percent(counts[stage], len(active))
		if share > concentrationThreshold {
			return domain.Insight{
				Code:     InsightStageConcentration,
				Title:    "Concentração em um estágio",
				Message:  fmt.Sprintf("%.0f%% dos negócios ativos estão em %s.", share, stage),
				Severity: domain.InsightWarning,
			}, true
		}
	}

	return domain.Insight{}, false
}

func stalledHighPriority(active []domain.Deal, now time.Time) []string {
	var ids []string
	for _, deal := range active {
		if deal.Status == domain.StageScreening && deal.Priority == domain.PriorityHigh &&
			!deal.UpdatedAt.IsZero() && now.Sub(deal.UpdatedAt) > StalledAfter {
			ids = append(ids, deal.ID)
		}
	}
	return ids
}

func belowTargetCapRate(active []domain.Deal) []string {
	var ids []string
	for _, deal := range active {
		if deal.CapRate > 0 && deal.CapRate < TargetCapRate {
			ids = append(ids, deal.ID)
		}
	}
	return ids
}

func deadRatio(deals []domain.Deal) (domain.Insight, bool) {
	dead := 0
	for _, deal := range deals {
		if deal.Status == domain.StageDead {
			dead++
		}
	}

	ratio := utils.Percent(dead, len(deals))
	severity := domain.InsightWarning
	switch {
	case ratio > deadRatioCritical:
		severity = domain.InsightCritical
	case ratio > deadRatioWarning:
	default:
		return domain.Insight{}, false
	}

	return domain.Insight{
		Code:     InsightDeadRatio,
		Title:    "Muitos negócios perdidos",
		Message:  fmt.Sprintf("%.0f%% dos negócios estão em Dead.", ratio),
		Severity: severity,
	}, true
}
