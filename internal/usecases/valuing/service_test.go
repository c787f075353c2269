package valuing

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/cre-deals-api/infrastructure/repository"
	"github.com/vfg2006/cre-deals-api/infrastructure/repository/mocks"
	"github.com/vfg2006/cre-deals-api/internal/config"
	"github.com/vfg2006/cre-deals-api/internal/domain"
	"github.com/vfg2006/cre-deals-api/pkg/apiErrors"
	"go.uber.org/mock/gomock"
)

func newTestService(t *testing.T) (*Service, *mocks.MockValuationRepository) {
	t.Helper()

	repo := mocks.NewMockValuationRepository(gomock.NewController(t))
	svc := NewService(repo, config.Forecast{DefaultHorizon: 5, DefaultGrowthRate: 0.02}).(*Service)
	return svc, repo
}

func intPtr(v int) *int { return &v }

func floatPtr(v float64) *float64 { return &v }

func TestForecast(t *testing.T) {
	svc, _ := newTestService(t)

	t.Run("Premissas padrão", func(t *testing.T) {
		resp, err := svc.Forecast(domain.ForecastRequest{PropertyValue: 100, AnnualIncome: 10, AnnualExpenses: 4})
		require.NoError(t, err)

		assert.Len(t, resp.Points, 5)
		assert.Equal(t, domain.DefaultForecastAssumptions(), resp.Assumptions)
		assert.Equal(t, 6.0, resp.CapRate)
		assert.Equal(t, 6.0, resp.NOI)
		assert.Equal(t, 102.0, resp.Points[0].Value)
	})

	t.Run("Horizonte segue as premissas informadas", func(t *testing.T) {
		resp, err := svc.Forecast(domain.ForecastRequest{
			PropertyValue: 100,
			Assumptions:   domain.ForecastAssumptions{"Year 1": 0.1, "Year 2": 0},
		})
		require.NoError(t, err)

		require.Len(t, resp.Points, 2)
		assert.Equal(t, 110.0, resp.Points[0].Value)
		assert.Equal(t, 110.0, resp.Points[1].Value)
	})

	t.Run("Horizonte explícito maior que as premissas", func(t *testing.T) {
		resp, err := svc.Forecast(domain.ForecastRequest{
			PropertyValue: 100,
			Assumptions:   domain.ForecastAssumptions{"Year 1": 0.1},
			HorizonYears:  intPtr(3),
		})
		require.NoError(t, err)

		require.Len(t, resp.Points, 3)
		assert.Equal(t, "Year 3", resp.Points[2].Year)
		assert.Equal(t, 110.0, resp.Points[2].Value)
	})

	t.Run("Horizonte zero", func(t *testing.T) {
		resp, err := svc.Forecast(domain.ForecastRequest{PropertyValue: 100, HorizonYears: intPtr(0)})
		require.NoError(t, err)
		assert.Empty(t, resp.Points)
		assert.NotNil(t, resp.Points)
	})

	t.Run("Horizonte excessivo", func(t *testing.T) {
		_, err := svc.Forecast(domain.ForecastRequest{HorizonYears: intPtr(MaxHorizonYears + 1)})
		assert.ErrorIs(t, err, ErrHorizonTooLong)
	})

	t.Run("Estouro de ponto flutuante", func(t *testing.T) {
		resp, err := svc.Forecast(domain.ForecastRequest{
			PropertyValue: 1.7e308,
			Assumptions:   domain.ForecastAssumptions{"Year 1": 0.5},
			HorizonYears:  intPtr(1),
		})
		assert.Nil(t, resp)
		assert.ErrorIs(t, err, ErrNonFiniteResult)

		var valuationErr *ValuationError
		require.True(t, errors.As(err, &valuationErr))
		assert.Equal(t, apiErrors.ErrNonFiniteResult, valuationErr.Code)
	})
}

func TestCapRate(t *testing.T) {
	svc, _ := newTestService(t)

	tests := []struct {
		name string
		req  domain.CapRateRequest
		want *domain.CapRateResponse
	}{
		{
			name: "A partir do valor",
			req:  domain.CapRateRequest{AnnualIncome: 120000, AnnualExpenses: 40000, PropertyValue: floatPtr(1000000)},
			want: &domain.CapRateResponse{PropertyValue: 1000000, CapRate: 8, NOI: 80000},
		},
		{
			name: "A partir do cap rate",
			req:  domain.CapRateRequest{AnnualIncome: 120000, AnnualExpenses: 40000, CapRate: floatPtr(8)},
			want: &domain.CapRateResponse{PropertyValue: 1000000, CapRate: 8, NOI: 80000},
		},
		{
			name: "Valor zero",
			req:  domain.CapRateRequest{AnnualIncome: 1, PropertyValue: floatPtr(0)},
			want: &domain.CapRateResponse{PropertyValue: 0, CapRate: 0, NOI: 1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := svc.CapRate(tt.req)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := svc.CapRate(domain.CapRateRequest{AnnualIncome: 1})
	assert.ErrorIs(t, err, ErrMissingRequiredData)

	_, err = svc.CapRate(domain.CapRateRequest{AnnualIncome: 1e300, CapRate: floatPtr(1e-10)})
	assert.ErrorIs(t, err, ErrNonFiniteResult)
}

func TestSaveValuation(t *testing.T) {
	ctx := context.Background()

	t.Run("Salva com id gerado e cap rate calculado", func(t *testing.T) {
		svc, repo := newTestService(t)
		svc.generateID = func() (string, error) { return "abc123XYZ0", nil }

		repo.EXPECT().
			SaveValuation(ctx, gomock.Any()).
			DoAndReturn(func(_ context.Context, v *domain.Valuation) (*domain.Valuation, error) {
				return v, nil
			})

		saved, err := svc.SaveValuation(ctx, domain.SaveValuationRequest{
			Name: " Base ", PropertyValue: 1000000, AnnualIncome: 120000, AnnualExpenses: 40000, CreatedBy: 3,
		})
		require.NoError(t, err)

		assert.Equal(t, "abc123XYZ0", saved.ID)
		assert.Equal(t, "Base", saved.Name)
		assert.Equal(t, 8.0, saved.CapRate)
		assert.Equal(t, 3, saved.CreatedBy)
		assert.Len(t, saved.Assumptions, 5)
	})

	t.Run("Nome obrigatório", func(t *testing.T) {
		svc, _ := newTestService(t)

		_, err := svc.SaveValuation(ctx, domain.SaveValuationRequest{})
		assert.ErrorIs(t, err, ErrMissingRequiredData)
	})

	t.Run("Erro ao gerar id", func(t *testing.T) {
		svc, _ := newTestService(t)
		svc.generateID = func() (string, error) { return "", errors.New("entropia") }

		_, err := svc.SaveValuation(ctx, domain.SaveValuationRequest{Name: "A"})
		assert.ErrorIs(t, err, ErrGenerateID)
	})
}

func TestDeleteValuation(t *testing.T) {
	ctx := context.Background()
	svc, repo := newTestService(t)

	repo.EXPECT().DeleteValuation(ctx, "nope").Return(repository.ErrNotFound)
	repo.EXPECT().DeleteValuation(ctx, "ok").Return(nil)

	assert.ErrorIs(t, svc.DeleteValuation(ctx, "nope"), ErrValuationNotFound)
	assert.NoError(t, svc.DeleteValuation(ctx, "ok"))
}

func TestListValuations_DatabaseError(t *testing.T) {
	ctx := context.Background()
	svc, repo := newTestService(t)

	repo.EXPECT().ListValuations(ctx, (*string)(nil)).Return(nil, errors.New("down"))

	_, err := svc.ListValuations(ctx, nil)
	assert.ErrorIs(t, err, ErrDatabaseOperation)
}
