package valuing

import (
	"context"
	"errors"
	"math"
	"strings"

	"github.com/vfg2006/cre-deals-api/infrastructure/repository"
	"github.com/vfg2006/cre-deals-api/internal/config"
	"github.com/vfg2006/cre-deals-api/internal/domain"
	"github.com/vfg2006/cre-deals-api/internal/forecast"
	"github.com/vfg2006/cre-deals-api/pkg/apiErrors"
	"github.com/vfg2006/cre-deals-api/pkg/log"
	"github.com/vfg2006/cre-deals-api/pkg/utils"
)

// MaxHorizonYears limita o tamanho da projeção aceita pela API
const MaxHorizonYears = 50

type ValuationService interface {
	Forecast(req domain.ForecastRequest) (*domain.ForecastResponse, error)
	CapRate(req domain.CapRateRequest) (*domain.CapRateResponse, error)
	SaveValuation(ctx context.Context, req domain.SaveValuationRequest) (*domain.Valuation, error)
	ListValuations(ctx context.Context, dealID *string) ([]domain.Valuation, error)
	DeleteValuation(ctx context.Context, id string) error
}

type Service struct {
	valuationRepository repository.ValuationRepository
	cfg                 config.Forecast
	generateID          func() (string, error)
}

func NewService(valuationRepository repository.ValuationRepository, cfg config.Forecast) ValuationService {
	if cfg.DefaultHorizon <= 0 {
		cfg.DefaultHorizon = domain.DefaultForecastYears
	}

	return &Service{
		valuationRepository: valuationRepository,
		cfg:                 cfg,
		generateID:          utils.GenerateID,
	}
}

// defaultAssumptions monta "Year 1".."Year n" com a taxa padrão configurada
func (s *Service) defaultAssumptions() domain.ForecastAssumptions {
	assumptions := make(domain.ForecastAssumptions, s.cfg.DefaultHorizon)
	for i := 1; i <= s.cfg.DefaultHorizon; i++ {
		assumptions[domain.YearLabel(i)] = s.cfg.DefaultGrowthRate
	}
	return assumptions
}

// Forecast projeta o imóvel. Sem premissas usa as padrão; sem horizonte usa
// a quantidade de premissas informadas.
func (s *Service) Forecast(req domain.ForecastRequest) (*domain.ForecastResponse, error) {
	assumptions := req.Assumptions
	if len(assumptions) == 0 {
		assumptions = s.defaultAssumptions()
	}

	horizon := len(assumptions)
	if req.HorizonYears != nil {
		horizon = *req.HorizonYears
	}

	if horizon > MaxHorizonYears {
		return nil, NewValuationError(ErrHorizonTooLong, apiErrors.ErrInvalidRequest, "máximo de 50 anos")
	}

	response := &domain.ForecastResponse{
		CapRate:     forecast.Round(forecast.CapRate(req.AnnualIncome, req.AnnualExpenses, req.PropertyValue)),
		NOI:         forecast.Round(forecast.NOI(req.AnnualIncome, req.AnnualExpenses)),
		Assumptions: assumptions,
		Points:      forecast.Project(req.PropertyValue, req.AnnualIncome, req.AnnualExpenses, assumptions, horizon),
	}

	values := []float64{response.CapRate, response.NOI}
	for _, point := range response.Points {
		values = append(values, point.Value, point.Income, point.Expenses)
	}
	if err := checkFinite(values...); err != nil {
		return nil, err
	}

	return response, nil
}

// checkFinite rejeita resultados que o JSON não representa (NaN e ±Inf)
func checkFinite(values ...float64) error {
	for _, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return NewValuationError(ErrNonFiniteResult, apiErrors.ErrNonFiniteResult, "reduza os valores ou as taxas de crescimento")
		}
	}
	return nil
}

// CapRate calcula o cap rate a partir do valor, ou o valor a partir do cap rate.
// Se ambos vierem preenchidos, o valor do imóvel prevalece.
func (s *Service) CapRate(req domain.CapRateRequest) (*domain.CapRateResponse, error) {
	noi := forecast.NOI(req.AnnualIncome, req.AnnualExpenses)

	var response *domain.CapRateResponse
	switch {
	case req.PropertyValue != nil:
		response = &domain.CapRateResponse{
			PropertyValue: forecast.Round(*req.PropertyValue),
			CapRate:       forecast.Round(forecast.CapRate(req.AnnualIncome, req.AnnualExpenses, *req.PropertyValue)),
			NOI:           forecast.Round(noi),
		}
	case req.CapRate != nil:
		response = &domain.CapRateResponse{
			PropertyValue: forecast.Round(forecast.PropertyValue(req.AnnualIncome, req.AnnualExpenses, *req.CapRate)),
			CapRate:       forecast.Round(*req.CapRate),
			NOI:           forecast.Round(noi),
		}
	default:
		return nil, NewValuationError(ErrMissingRequiredData, apiErrors.ErrMissingRequiredData, "informe property_value ou cap_rate")
	}

	if err := checkFinite(response.PropertyValue, response.CapRate, response.NOI); err != nil {
		return nil, err
	}

	return response, nil
}

func (s *Service) SaveValuation(ctx context.Context, req domain.SaveValuationRequest) (*domain.Valuation, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, NewValuationError(ErrMissingRequiredData, apiErrors.ErrMissingRequiredData, "nome é obrigatório")
	}

	assumptions := req.Assumptions
	if len(assumptions) == 0 {
		assumptions = s.defaultAssumptions()
	}

	id, err := s.generateID()
	if err != nil {
		return nil, NewValuationError(ErrGenerateID, apiErrors.ErrInternalServer, err.Error())
	}

	valuation := &domain.Valuation{
		ID:             id,
		DealID:         req.DealID,
		Name:           name,
		PropertyValue:  req.PropertyValue,
		AnnualIncome:   req.AnnualIncome,
		AnnualExpenses: req.AnnualExpenses,
		CapRate:        forecast.Round(forecast.CapRate(req.AnnualIncome, req.AnnualExpenses, req.PropertyValue)),
		Assumptions:    assumptions,
		CreatedBy:      req.CreatedBy,
	}

	saved, err := s.valuationRepository.SaveValuation(ctx, valuation)
	if err != nil {
		log.ForContext(ctx).WithError(err).Error("Erro ao salvar avaliação")
		return nil, NewValuationError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, "Falha ao salvar avaliação")
	}

	return saved, nil
}

func (s *Service) ListValuations(ctx context.Context, dealID *string) ([]domain.Valuation, error) {
	valuations, err := s.valuationRepository.ListValuations(ctx, dealID)
	if err != nil {
		log.ForContext(ctx).WithError(err).Error("Erro ao listar avaliações")
		return nil, NewValuationError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, "Falha ao listar avaliações")
	}

	return valuations, nil
}

func (s *Service) DeleteValuation(ctx context.Context, id string) error {
	err := s.valuationRepository.DeleteValuation(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return NewValuationError(ErrValuationNotFound, apiErrors.ErrValuationNotFound, id)
	}
	if err != nil {
		log.ForContext(ctx).WithError(err).Error("Erro ao remover avaliação")
		return NewValuationError(ErrDatabaseOperation, apiErrors.ErrDatabaseOperation, "Falha ao remover avaliação")
	}

	return nil
}
