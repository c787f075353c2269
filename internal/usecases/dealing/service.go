package dealing

import (
	"context"
	"errors"
	"strings"

	"github.com/vfg2006/cre-deals-api/infrastructure/repository"
	"github.com/vfg2006/cre-deals-api/internal/domain"
	"github.com/vfg2006/cre-deals-api/internal/pipeline"
	"github.com/vfg2006/cre-deals-api/pkg/apiErrors"
	"github.com/vfg2006/cre-deals-api/pkg/log"
)

// Reloader recarrega a coleção observada pelo kanban
type Reloader interface {
	Load(ctx context.Context) error
}

// Board é a visão kanban mantida pelo reconciliador
type Board interface {
	Snapshot() pipeline.Partition
	HandleMove(ctx context.Context, move domain.Move) pipeline.MoveResult
}

type DealService interface {
	ListDeals(ctx context.Context, filters domain.DealFilters) ([]domain.Deal, error)
	GetDeal(ctx context.Context, id string) (*domain.Deal, error)
	CreateDeal(ctx context.Context, deal *domain.Deal) (*domain.Deal, error)
	UpdateDeal(ctx context.Context, id string, patch domain.DealPatch) (*domain.Deal, error)
	DeleteDeal(ctx context.Context, id string) error
	Board(filter pipeline.Filter) pipeline.Partition
	Move(ctx context.Context, move domain.Move) (pipeline.MoveResult, error)
}

type Service struct {
	dealRepository repository.DealRepository
	deals          Reloader
	board          Board
}

func NewService(dealRepository repository.DealRepository, deals Reloader, board Board) DealService {
	return &Service{
		dealRepository: dealRepository,
		deals:          deals,
		board:          board,
	}
}

func (s *Service) ListDeals(ctx context.Context, filters domain.DealFilters) ([]domain.Deal, error) {
	if filters.Status != nil && !filters.Status.IsValid() {
		return nil, NewDealError(ErrInvalidStage, apiErrors.ErrInvalidStage, string(*filters.Status))
	}

	deals, err := s.dealRepository.ListDeals(ctx, filters)
	if err != nil {
		log.ForContext(ctx).WithError(err).Error("Erro ao listar negócios")
		return nil, NewDealError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, "Falha ao listar negócios")
	}

	return deals, nil
}

func (s *Service) GetDeal(ctx context.Context, id string) (*domain.Deal, error) {
	deal, err := s.dealRepository.GetDeal(ctx, id)
	if err != nil {
		return nil, s.repositoryError(ctx, err, id)
	}

	return deal, nil
}

func (s *Service) CreateDeal(ctx context.Context, deal *domain.Deal) (*domain.Deal, error) {
	deal.Name = strings.TrimSpace(deal.Name)
	if deal.Status == "" {
		deal.Status = domain.StageScreening
	}

	if err := validateDeal(deal); err != nil {
		return nil, err
	}

	created, err := s.dealRepository.CreateDeal(ctx, deal)
	if err != nil {
		log.ForContext(ctx).WithError(err).Error("Erro ao criar negócio")
		return nil, NewDealError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, "Falha ao criar negócio")
	}

	s.reload(ctx)
	return created, nil
}

func (s *Service) UpdateDeal(ctx context.Context, id string, patch domain.DealPatch) (*domain.Deal, error) {
	if patch.IsEmpty() {
		return nil, NewDealErrorWithID(ErrEmptyPatch, apiErrors.ErrMissingRequiredData, id, "")
	}

	if err := validatePatch(patch); err != nil {
		return nil, err
	}

	updated, err := s.dealRepository.UpdateDeal(ctx, id, patch)
	if err != nil {
		return nil, s.repositoryError(ctx, err, id)
	}

	s.reload(ctx)
	return updated, nil
}

func (s *Service) DeleteDeal(ctx context.Context, id string) error {
	if err := s.dealRepository.DeleteDeal(ctx, id); err != nil {
		return s.repositoryError(ctx, err, id)
	}

	s.reload(ctx)
	return nil
}

// Board retorna a partição atual, filtrada para exibição
func (s *Service) Board(filter pipeline.Filter) pipeline.Partition {
	return filter.Apply(s.board.Snapshot())
}

// Move repassa o arraste ao reconciliador. Em caso de falha remota o resultado
// continua sendo retornado, junto com o erro, para que o cliente veja a partição ressincronizada.
func (s *Service) Move(ctx context.Context, move domain.Move) (pipeline.MoveResult, error) {
	if !move.SourceStage.IsValid() || !move.DestStage.IsValid() {
		return pipeline.MoveResult{Outcome: pipeline.OutcomeNoop},
			NewDealErrorWithID(ErrInvalidStage, apiErrors.ErrInvalidStage, move.DealID, "estágio de origem ou destino desconhecido")
	}

	result := s.board.HandleMove(ctx, move)
	if !result.Success() {
		dealID := move.DealID
		if result.Deal != nil {
			dealID = result.Deal.ID
		}
		return result, &DealError{
			Err:     errors.Join(ErrMoveFailed, result.Err),
			Code:    apiErrors.ErrRemoteUpdate,
			DealID:  dealID,
			Details: "o kanban foi recarregado a partir da fonte de verdade",
		}
	}

	return result, nil
}

// reload atualiza a coleção observada; falhas não desfazem a escrita já confirmada
func (s *Service) reload(ctx context.Context) {
	if s.deals == nil {
		return
	}

	if err := s.deals.Load(ctx); err != nil {
		log.ForContext(ctx).WithError(err).Warn("Erro ao recarregar coleção de negócios após escrita")
	}
}

func (s *Service) repositoryError(ctx context.Context, err error, id string) error {
	if errors.Is(err, repository.ErrNotFound) {
		return NewDealErrorWithID(ErrDealNotFound, apiErrors.ErrDealNotFound, id, "")
	}

	log.ForContext(ctx).WithError(err).WithField("deal_id", id).Error("Erro de banco ao acessar negócio")
	return NewDealErrorWithID(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, id, "")
}

func validateDeal(deal *domain.Deal) error {
	if deal.Name == "" {
		return NewDealError(ErrNameRequired, apiErrors.ErrMissingRequiredData, "")
	}
	if !deal.Status.IsValid() {
		return NewDealError(ErrInvalidStage, apiErrors.ErrInvalidStage, string(deal.Status))
	}
	if !deal.Priority.IsValid() {
		return NewDealError(ErrInvalidPriority, apiErrors.ErrInvalidFormat, string(deal.Priority))
	}
	if deal.Price < 0 {
		return NewDealError(ErrInvalidAmount, apiErrors.ErrInvalidFormat, "price")
	}
	return nil
}

func validatePatch(patch domain.DealPatch) error {
	if patch.Name != nil && strings.TrimSpace(*patch.Name) == "" {
		return NewDealError(ErrNameRequired, apiErrors.ErrMissingRequiredData, "")
	}
	if patch.Status != nil && !patch.Status.IsValid() {
		return NewDealError(ErrInvalidStage, apiErrors.ErrInvalidStage, string(*patch.Status))
	}
	if patch.Priority != nil && !patch.Priority.IsValid() {
		return NewDealError(ErrInvalidPriority, apiErrors.ErrInvalidFormat, string(*patch.Priority))
	}
	if patch.Price != nil && *patch.Price < 0 {
		return NewDealError(ErrInvalidAmount, apiErrors.ErrInvalidFormat, "price")
	}
	return nil
}
