package handler

import (
	"bytes"
	"context"
	"errors"
	"math"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/cre-deals-api/infrastructure/repository"
	"github.com/vfg2006/cre-deals-api/infrastructure/repository/mocks"
	"github.com/vfg2006/cre-deals-api/internal/api/handler/router"
	"github.com/vfg2006/cre-deals-api/internal/config"
	"github.com/vfg2006/cre-deals-api/internal/domain"
	"github.com/vfg2006/cre-deals-api/internal/pipeline"
	"github.com/vfg2006/cre-deals-api/internal/store"
	"github.com/vfg2006/cre-deals-api/internal/usecases/dealing"
	"github.com/vfg2006/cre-deals-api/internal/usecases/valuing"
	"github.com/vfg2006/cre-deals-api/pkg/apiErrors"
	"github.com/vfg2006/cre-deals-api/pkg/middleware"
	"go.uber.org/mock/gomock"
)

func fixtureDeals() []domain.Deal {
	return []domain.Deal{
		{ID: "1", Name: "Harbor Point", City: "Boston", PropertyType: "Industrial", Status: domain.StageScreening},
		{ID: "2", Name: "Midtown Tower", City: "New York", PropertyType: "Office", Status: domain.StageScreening},
		{ID: "3", Name: "Sunset Plaza", City: "Los Angeles", PropertyType: "Retail", Status: domain.StageDueDiligence},
		{ID: "4", Name: "Old Mill", City: "Denver", PropertyType: "Hospitality", Status: domain.StageDead},
	}
}

// withClaims simula o AuthMiddleware injetando o usuário no contexto
func withClaims(roleID int, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims := &domain.Claims{UserID: 42, UserRoleID: roleID}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), middleware.ContextKeyUser, claims)))
	})
}

type dealFixture struct {
	repo    *mocks.MockDealRepository
	handler http.Handler
}

func setupDeals(t *testing.T, roleID int) dealFixture {
	t.Helper()

	ctrl := gomock.NewController(t)
	repo := mocks.NewMockDealRepository(ctrl)
	collection := store.NewCollection[domain.Deal]("deals", repo.FetchAll)
	reconciler := pipeline.NewReconciler(repo)
	t.Cleanup(reconciler.Watch(collection))

	repo.EXPECT().FetchAll(gomock.Any()).Return(fixtureDeals(), nil)
	require.NoError(t, collection.Load(context.Background()))

	service := dealing.NewService(repo, collection, reconciler)
	rt := router.New(
		router.WithRoutes(Deals(service)...),
		router.WithRoutes(Pipeline(service)...),
	)

	return dealFixture{repo: repo, handler: withClaims(roleID, rt)}
}

func do(t *testing.T, h http.Handler, method, target string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(method, target, &buf))
	return rec
}

func decodeAPIError(t *testing.T, rec *httptest.ResponseRecorder) apiErrors.APIError {
	t.Helper()

	var apiErr apiErrors.APIError
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &apiErr))
	return apiErr
}

func TestListDeals(t *testing.T) {
	t.Run("Repassa os filtros da query", func(t *testing.T) {
		f := setupDeals(t, middleware.RoleViewer)

		status := domain.StageScreening
		f.repo.EXPECT().
			ListDeals(gomock.Any(), domain.DealFilters{Status: &status, PropertyType: "Office", Search: "tower"}).
			Return(fixtureDeals()[1:2], nil)

		rec := do(t, f.handler, http.MethodGet, "/v1/deals?status=Screening&property_type=Office&q=tower", nil)
		require.Equal(t, http.StatusOK, rec.Code)

		var deals []domain.Deal
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &deals))
		require.Len(t, deals, 1)
		assert.Equal(t, "2", deals[0].ID)
	})

	t.Run("Estágio desconhecido é rejeitado", func(t *testing.T) {
		f := setupDeals(t, middleware.RoleViewer)

		rec := do(t, f.handler, http.MethodGet, "/v1/deals?status=Archived", nil)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, apiErrors.ErrInvalidStage, decodeAPIError(t, rec).Code)
	})
}

func TestDealCRUD(t *testing.T) {
	t.Run("Viewer não cria negócios", func(t *testing.T) {
		f := setupDeals(t, middleware.RoleViewer)

		rec := do(t, f.handler, http.MethodPost, "/v1/deals", domain.Deal{Name: "Harbor Point"})

		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("Analyst cria negócio", func(t *testing.T) {
		f := setupDeals(t, middleware.RoleAnalyst)

		f.repo.EXPECT().
			CreateDeal(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, deal *domain.Deal) (*domain.Deal, error) {
				created := *deal
				created.ID = "9"
				return &created, nil
			})
		f.repo.EXPECT().FetchAll(gomock.Any()).Return(fixtureDeals(), nil)

		rec := do(t, f.handler, http.MethodPost, "/v1/deals", domain.Deal{Name: "Harbor Point", Price: 1000})
		require.Equal(t, http.StatusCreated, rec.Code)

		var created domain.Deal
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
		assert.Equal(t, "9", created.ID)
		assert.Equal(t, domain.StageScreening, created.Status)
	})

	t.Run("Nome obrigatório", func(t *testing.T) {
		f := setupDeals(t, middleware.RoleAnalyst)

		rec := do(t, f.handler, http.MethodPost, "/v1/deals", domain.Deal{Name: "  "})

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("Corpo inválido", func(t *testing.T) {
		f := setupDeals(t, middleware.RoleAnalyst)

		rec := httptest.NewRecorder()
		f.handler.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/v1/deals", bytes.NewBufferString("{")))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, apiErrors.ErrInvalidRequest, decodeAPIError(t, rec).Code)
	})

	t.Run("Negócio inexistente", func(t *testing.T) {
		f := setupDeals(t, middleware.RoleViewer)

		f.repo.EXPECT().GetDeal(gomock.Any(), "77").Return(nil, repository.ErrNotFound)

		rec := do(t, f.handler, http.MethodGet, "/v1/deals/77", nil)

		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, apiErrors.ErrDealNotFound, decodeAPIError(t, rec).Code)
	})

	t.Run("Remove negócio", func(t *testing.T) {
		f := setupDeals(t, middleware.RoleAdmin)

		f.repo.EXPECT().DeleteDeal(gomock.Any(), "1").Return(nil)
		f.repo.EXPECT().FetchAll(gomock.Any()).Return(fixtureDeals()[1:], nil)

		rec := do(t, f.handler, http.MethodDelete, "/v1/deals/1", nil)

		assert.Equal(t, http.StatusNoContent, rec.Code)
	})
}

func TestPipeline(t *testing.T) {
	t.Run("Retorna as quatro colunas filtradas", func(t *testing.T) {
		f := setupDeals(t, middleware.RoleViewer)

		rec := do(t, f.handler, http.MethodGet, "/v1/pipeline?property_type=Office", nil)
		require.Equal(t, http.StatusOK, rec.Code)

		var body PipelineResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		require.Len(t, body.Columns, 4)
		assert.Equal(t, domain.StageScreening, body.Columns[0].Stage)
		require.Len(t, body.Columns[0].Deals, 1)
		assert.Equal(t, "2", body.Columns[0].Deals[0].ID)
		assert.Empty(t, body.Columns[1].Deals)
	})

	t.Run("Movimento entre estágios", func(t *testing.T) {
		f := setupDeals(t, middleware.RoleAnalyst)

		f.repo.EXPECT().Update(gomock.Any(), "1", gomock.Any()).Return(nil)

		rec := do(t, f.handler, http.MethodPost, "/v1/pipeline/move", domain.Move{
			DealID:      "1",
			SourceStage: domain.StageScreening,
			SourceIndex: 0,
			DestStage:   domain.StageDueDiligence,
			DestIndex:   0,
		})
		require.Equal(t, http.StatusOK, rec.Code)

		var body MoveResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, pipeline.OutcomeMoved, body.Outcome)
		require.Len(t, body.Columns[1].Deals, 2)
		assert.Equal(t, "1", body.Columns[1].Deals[0].ID)
	})

	t.Run("Falha remota devolve 409 com a partição ressincronizada", func(t *testing.T) {
		f := setupDeals(t, middleware.RoleAnalyst)

		f.repo.EXPECT().Update(gomock.Any(), "1", gomock.Any()).Return(errors.New("timeout"))
		f.repo.EXPECT().FetchAll(gomock.Any()).Return(fixtureDeals(), nil)

		rec := do(t, f.handler, http.MethodPost, "/v1/pipeline/move", domain.Move{
			DealID:      "1",
			SourceStage: domain.StageScreening,
			SourceIndex: 0,
			DestStage:   domain.StageNegotiation,
			DestIndex:   0,
		})
		require.Equal(t, http.StatusConflict, rec.Code)

		var body struct {
			Code    string       `json:"code"`
			Details MoveResponse `json:"details"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, apiErrors.ErrRemoteUpdate, body.Code)
		assert.Equal(t, pipeline.OutcomeReverted, body.Details.Outcome)
		require.Len(t, body.Details.Columns[0].Deals, 2)
		assert.Equal(t, "1", body.Details.Columns[0].Deals[0].ID)
		assert.Empty(t, body.Details.Columns[2].Deals)
	})

	t.Run("Viewer não move negócios", func(t *testing.T) {
		f := setupDeals(t, middleware.RoleViewer)

		rec := do(t, f.handler, http.MethodPost, "/v1/pipeline/move", domain.Move{})

		assert.Equal(t, http.StatusForbidden, rec.Code)
	})
}

func TestValuations(t *testing.T) {
	setup := func(t *testing.T, roleID int) (*mocks.MockValuationRepository, http.Handler) {
		ctrl := gomock.NewController(t)
		repo := mocks.NewMockValuationRepository(ctrl)
		service := valuing.NewService(repo, config.Forecast{DefaultHorizon: 5, DefaultGrowthRate: 0.02})
		return repo, withClaims(roleID, router.New(router.WithRoutes(Valuations(service)...)))
	}

	t.Run("Projeção com premissas padrão", func(t *testing.T) {
		_, h := setup(t, middleware.RoleViewer)

		rec := do(t, h, http.MethodPost, "/v1/valuations/forecast", domain.ForecastRequest{
			PropertyValue:  1000000,
			AnnualIncome:   100000,
			AnnualExpenses: 40000,
		})
		require.Equal(t, http.StatusOK, rec.Code)

		var body domain.ForecastResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Len(t, body.Points, 5)
		assert.Equal(t, 60000.0, body.NOI)
		assert.Equal(t, 6.0, body.CapRate)
	})

	t.Run("Projeção que estoura float64 responde 422 com JSON válido", func(t *testing.T) {
		_, h := setup(t, middleware.RoleViewer)

		rec := do(t, h, http.MethodPost, "/v1/valuations/forecast", map[string]any{
			"property_value": 1.7e308,
			"assumptions":    map[string]float64{"Year 1": 0.5},
			"horizon_years":  1,
		})

		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		assert.Equal(t, apiErrors.ErrNonFiniteResult, decodeAPIError(t, rec).Code)
	})

	t.Run("Cap rate sem valor nem taxa", func(t *testing.T) {
		_, h := setup(t, middleware.RoleViewer)

		rec := do(t, h, http.MethodPost, "/v1/valuations/cap-rate", domain.CapRateRequest{AnnualIncome: 100})

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, apiErrors.ErrMissingRequiredData, decodeAPIError(t, rec).Code)
	})

	t.Run("Salva com o usuário logado", func(t *testing.T) {
		repo, h := setup(t, middleware.RoleAnalyst)

		repo.EXPECT().
			SaveValuation(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, v *domain.Valuation) (*domain.Valuation, error) {
				assert.Equal(t, 42, v.CreatedBy)
				saved := *v
				saved.CreatedAt = time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
				return &saved, nil
			})

		rec := do(t, h, http.MethodPost, "/v1/valuations", domain.SaveValuationRequest{
			Name:           "Base",
			PropertyValue:  1000000,
			AnnualIncome:   100000,
			AnnualExpenses: 40000,
		})

		assert.Equal(t, http.StatusCreated, rec.Code)
	})

	t.Run("Filtra por negócio", func(t *testing.T) {
		repo, h := setup(t, middleware.RoleViewer)

		dealID := "3"
		repo.EXPECT().ListValuations(gomock.Any(), &dealID).Return([]domain.Valuation{}, nil)

		rec := do(t, h, http.MethodGet, "/v1/valuations?deal_id=3", nil)

		assert.Equal(t, http.StatusOK, rec.Code)
	})
}

type fakeSyncer struct {
	started bool
	calls   int
}

func (f *fakeSyncer) TriggerManualSync() bool {
	f.calls++
	return f.started
}

func (f *fakeSyncer) GetStatus() map[string]any {
	return map[string]any{"running": !f.started}
}

func TestCronJobs(t *testing.T) {
	tests := []struct {
		name    string
		path    string
		started bool
		status  int
		calls   int
	}{
		{"Dispara o pipeline", "/v1/cron/pipeline/run", true, http.StatusAccepted, 1},
		{"Dispara todos", "/v1/cron/all/run", true, http.StatusAccepted, 1},
		{"Já em andamento", "/v1/cron/pipeline/run", false, http.StatusAccepted, 1},
		{"Tipo inválido", "/v1/cron/meta/run", true, http.StatusBadRequest, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			syncer := &fakeSyncer{started: tt.started}
			h := withClaims(middleware.RoleAdmin, router.New(router.WithRoutes(CronJobs(CronJobServices{PipelineSyncService: syncer})...)))

			rec := do(t, h, http.MethodPost, tt.path, nil)

			assert.Equal(t, tt.status, rec.Code)
			assert.Equal(t, tt.calls, syncer.calls)
		})
	}

	t.Run("Somente admin", func(t *testing.T) {
		syncer := &fakeSyncer{}
		h := withClaims(middleware.RoleAnalyst, router.New(router.WithRoutes(CronJobs(CronJobServices{PipelineSyncService: syncer})...)))

		rec := do(t, h, http.MethodGet, "/v1/cron/status", nil)

		assert.Equal(t, http.StatusForbidden, rec.Code)
	})
}

func TestWriteJSON(t *testing.T) {
	t.Run("Corpo codificado com o status informado", func(t *testing.T) {
		rec := httptest.NewRecorder()

		writeJSON(rec, httptest.NewRequest(http.MethodGet, "/", nil), http.StatusCreated, map[string]float64{"value": 1.5})

		assert.Equal(t, http.StatusCreated, rec.Code)
		assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
		assert.JSONEq(t, `{"value":1.5}`, rec.Body.String())
	})

	t.Run("Falha de codificação vira erro padronizado", func(t *testing.T) {
		rec := httptest.NewRecorder()

		writeJSON(rec, httptest.NewRequest(http.MethodGet, "/", nil), http.StatusOK, map[string]float64{"value": math.Inf(1)})

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.Equal(t, apiErrors.ErrInternalServer, decodeAPIError(t, rec).Code)
	})
}

func TestHealthcheck(t *testing.T) {
	rec := do(t, router.New(router.WithRoutes(Healthcheck()...)), http.MethodGet, "/healthcheck", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"ok"`)
}
