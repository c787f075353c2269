package insighting

import (
	"github.com/vfg2006/cre-deals-api/internal/domain"
	"github.com/vfg2006/cre-deals-api/pkg/utils"
)

// summaryStages é a ordem das linhas do painel: colunas do kanban e depois os estágios terminais
var summaryStages = append(append([]domain.Stage{}, domain.ReorderableStages...), domain.StageClosed, domain.StageDead)

// Summarize agrega os negócios por estágio. Médias de cap rate e IRR consideram
// apenas negócios ativos com o valor preenchido.
func Summarize(deals []domain.Deal) *domain.DashboardSummary {
	summary := &domain.DashboardSummary{
		TotalDeals: len(deals),
	}

	byStage := make(map[domain.Stage]*domain.StageSummary, len(summaryStages))
	for _, stage := range summaryStages {
		byStage[stage] = &domain.StageSummary{Stage: stage}
	}

	var (
		capRateSum, irrSum     float64
		capRateCount, irrCount int
	)

	for _, deal := range deals {
		if row, ok := byStage[deal.Status]; ok {
			row.Count++
			row.Value += deal.Price
		}

		switch deal.Status {
		case domain.StageClosed:
			summary.ClosedDeals++
			continue
		case domain.StageDead:
			summary.DeadDeals++
			continue
		}

		if !deal.Status.IsReorderable() {
			continue
		}

		summary.ActiveDeals++
		summary.PipelineValue += deal.Price

		if deal.Priority == domain.PriorityHigh {
			summary.HighPriorityDeals++
		}
		if deal.CapRate > 0 {
			capRateSum += deal.CapRate
			capRateCount++
		}
		if deal.IRR > 0 {
			irrSum += deal.IRR
			irrCount++
		}
	}

	if capRateCount > 0 {
		summary.AverageCapRate = utils.RoundWithTwoDecimalPlace(capRateSum / float64(capRateCount))
	}
	if irrCount > 0 {
		summary.AverageIRR = utils.RoundWithTwoDecimalPlace(irrSum / float64(irrCount))
	}
	summary.PipelineValue = utils.RoundWithTwoDecimalPlace(summary.PipelineValue)

	summary.Stages = make([]domain.StageSummary, 0, len(summaryStages))
	for _, stage := range summaryStages {
		row := byStage[stage]
		row.Value = utils.RoundWithTwoDecimalPlace(row.Value)
		summary.Stages = append(summary.Stages, *row)
	}

	return summary
}
