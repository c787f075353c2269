package insighting

import (
	"context"
	"fmt"
	"time"

	"github.com/pkg/errors"
	"github.com/vfg2006/cre-deals-api/infrastructure/repository"
	"github.com/vfg2006/cre-deals-api/internal/domain"
	"github.com/vfg2006/cre-deals-api/pkg/log"
	"golang.org/x/sync/errgroup"
)

var ErrLoadData = errors.New("erro ao carregar dados do painel")

// Insighter gera o resumo do painel e as observações automáticas sobre o pipeline
type Insighter interface {
	Dashboard(ctx context.Context) (*domain.DashboardSummary, error)
	Insights(ctx context.Context) (*domain.InsightsResponse, error)
}

type Service struct {
	dealRepository      repository.DealRepository
	valuationRepository repository.ValuationRepository
	now                 func() time.Time
}

func NewService(dealRepository repository.DealRepository, valuationRepository repository.ValuationRepository) Insighter {
	return &Service{
		dealRepository:      dealRepository,
		valuationRepository: valuationRepository,
		now:                 time.Now,
	}
}

type snapshot struct {
	deals           []domain.Deal
	savedValuations int
}

// load busca negócios e avaliações em paralelo
func (s *Service) load(ctx context.Context) (*snapshot, error) {
	var snap snapshot

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		deals, err := s.dealRepository.ListDeals(gctx, domain.DealFilters{})
		if err != nil {
			return errors.Wrap(err, "negócios")
		}
		snap.deals = deals
		return nil
	})

	g.Go(func() error {
		total, err := s.valuationRepository.CountValuations(gctx)
		if err != nil {
			return errors.Wrap(err, "avaliações")
		}
		snap.savedValuations = total
		return nil
	})

	if err := g.Wait(); err != nil {
		log.ForContext(ctx).WithError(err).Error("Erro ao carregar dados do painel")
		return nil, fmt.Errorf("%w: %w", ErrLoadData, err)
	}

	return &snap, nil
}

func (s *Service) Dashboard(ctx context.Context) (*domain.DashboardSummary, error) {
	snap, err := s.load(ctx)
	if err != nil {
		return nil, err
	}

	summary := Summarize(snap.deals)
	summary.SavedValuations = snap.savedValuations
	summary.GeneratedAt = s.now()

	return summary, nil
}

func (s *Service) Insights(ctx context.Context) (*domain.InsightsResponse, error) {
	snap, err := s.load(ctx)
	if err != nil {
		return nil, err
	}

	now := s.now()
	return &domain.InsightsResponse{
		Insights:    Evaluate(snap.deals, snap.savedValuations, now),
		GeneratedAt: now,
	}, nil
}
