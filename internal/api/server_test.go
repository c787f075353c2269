package api

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	jsoniter "github.com/json-iterator/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/cre-deals-api/infrastructure/repository/mocks"
	"github.com/vfg2006/cre-deals-api/internal/api/handler"
	"github.com/vfg2006/cre-deals-api/internal/config"
	"github.com/vfg2006/cre-deals-api/internal/domain"
	"github.com/vfg2006/cre-deals-api/internal/pipeline"
	"github.com/vfg2006/cre-deals-api/internal/store"
	"github.com/vfg2006/cre-deals-api/internal/usecases/authenticating"
	"github.com/vfg2006/cre-deals-api/internal/usecases/dealing"
	"github.com/vfg2006/cre-deals-api/internal/usecases/insighting"
	"github.com/vfg2006/cre-deals-api/internal/usecases/valuing"
	"go.uber.org/mock/gomock"
	"golang.org/x/crypto/bcrypt"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

type testServer struct {
	users   *mocks.MockUserRepository
	deals   *mocks.MockDealRepository
	handler http.Handler
}

func newTestServer(t *testing.T) testServer {
	t.Helper()

	ctrl := gomock.NewController(t)
	userRepo := mocks.NewMockUserRepository(ctrl)
	dealRepo := mocks.NewMockDealRepository(ctrl)
	valuationRepo := mocks.NewMockValuationRepository(ctrl)

	cfg := &config.Config{
		Auth:     config.Auth{SecretKey: "segredo-de-teste"},
		Forecast: config.Forecast{DefaultHorizon: 5, DefaultGrowthRate: 0.02},
		Cors:     config.Cors{AllowedOrigins: []string{"http://localhost:5173"}},
	}

	collection := store.NewCollection[domain.Deal]("deals", dealRepo.FetchAll)
	reconciler := pipeline.NewReconciler(dealRepo)
	t.Cleanup(reconciler.Watch(collection))

	h := NewHandler(
		cfg,
		authenticating.NewService(userRepo, cfg.Auth.SecretKey),
		dealing.NewService(dealRepo, collection, reconciler),
		valuing.NewService(valuationRepo, cfg.Forecast),
		insighting.NewService(dealRepo, valuationRepo),
		handler.CronJobServices{},
	)

	return testServer{users: userRepo, deals: dealRepo, handler: h}
}

func (s testServer) request(t *testing.T, method, target, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, target, &buf)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)
	return rec
}

func TestPublicRoutes(t *testing.T) {
	srv := newTestServer(t)

	assert.Equal(t, http.StatusOK, srv.request(t, http.MethodGet, "/healthcheck", "", nil).Code)
	assert.Equal(t, http.StatusUnauthorized, srv.request(t, http.MethodGet, "/v1/pipeline", "", nil).Code)
	assert.Equal(t, http.StatusUnauthorized, srv.request(t, http.MethodGet, "/v1/pipeline", "token-invalido", nil).Code)
}

func TestLoginFlow(t *testing.T) {
	srv := newTestServer(t)

	hash, err := bcrypt.GenerateFromPassword([]byte("senha-forte"), bcrypt.MinCost)
	require.NoError(t, err)

	user := &domain.User{
		ID:           7,
		Name:         "Ana",
		Lastname:     "Souza",
		Email:        "ana@cre.local",
		PasswordHash: string(hash),
		Active:       true,
		RoleID:       3,
	}

	t.Run("Senha incorreta", func(t *testing.T) {
		srv.users.EXPECT().GetUserByEmail(gomock.Any(), "ana@cre.local").Return(user, nil)

		rec := srv.request(t, http.MethodPost, "/v1/login", "", handler.LoginRequest{Email: "ana@cre.local", Password: "errada"})

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("Login e perfil", func(t *testing.T) {
		srv.users.EXPECT().GetUserByEmail(gomock.Any(), "ana@cre.local").Return(user, nil)

		rec := srv.request(t, http.MethodPost, "/v1/login", "", handler.LoginRequest{Email: " Ana@CRE.local", Password: "senha-forte"})
		require.Equal(t, http.StatusOK, rec.Code)

		var body map[string]string
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		require.NotEmpty(t, body["token"])

		profile := *user
		srv.users.EXPECT().GetUserByID(gomock.Any(), 7).Return(&profile, nil)

		rec = srv.request(t, http.MethodGet, "/v1/me", body["token"], nil)
		require.Equal(t, http.StatusOK, rec.Code)

		var me domain.User
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &me))
		assert.Equal(t, "ana@cre.local", me.Email)
		assert.Empty(t, me.PasswordHash)

		// Viewer lê o kanban mas não move negócios
		rec = srv.request(t, http.MethodGet, "/v1/pipeline", body["token"], nil)
		assert.Equal(t, http.StatusOK, rec.Code)

		rec = srv.request(t, http.MethodPost, "/v1/pipeline/move", body["token"], domain.Move{})
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})
}

func TestRegister(t *testing.T) {
	srv := newTestServer(t)

	srv.users.EXPECT().GetUserByEmail(gomock.Any(), "novo@cre.local").Return(nil, nil)
	srv.users.EXPECT().
		CreateUser(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, u *domain.User) (*domain.User, error) {
			created := *u
			created.ID = 10
			return &created, nil
		})

	rec := srv.request(t, http.MethodPost, "/v1/register", "", handler.RegisterRequest{
		Name:     "Novo",
		Lastname: "Usuário",
		Email:    "novo@cre.local",
		Password: "12345678",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	var created domain.User
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.Equal(t, 3, created.RoleID)
	assert.Empty(t, created.PasswordHash)
}
