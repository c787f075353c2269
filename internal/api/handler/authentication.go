package handler

import (
	"net/http"
	"strings"

	"github.com/pkg/errors"
	"github.com/vfg2006/cre-deals-api/internal/domain"
	"github.com/vfg2006/cre-deals-api/internal/usecases/authenticating"
	"github.com/vfg2006/cre-deals-api/pkg/apiErrors"
	"github.com/vfg2006/cre-deals-api/pkg/log"
	"github.com/vfg2006/cre-deals-api/pkg/middleware"
)

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type RegisterRequest struct {
	Name     string `json:"name"`
	Lastname string `json:"lastname"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func Login(service authenticating.Authenticator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req LoginRequest
		if !decodeBody(w, r, &req) {
			return
		}

		token, err := service.LoginUser(r.Context(), req.Email, req.Password)
		if err != nil {
			handleAuthError(w, r, err)
			return
		}

		writeJSON(w, r, http.StatusOK, map[string]string{
			"token": token,
		})
	}
}

func Register(service authenticating.Authenticator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req RegisterRequest
		if !decodeBody(w, r, &req) {
			return
		}

		user, err := service.Register(r.Context(), &domain.User{
			Name:         strings.TrimSpace(req.Name),
			Lastname:     strings.TrimSpace(req.Lastname),
			Email:        req.Email,
			PasswordHash: req.Password,
		})
		if err != nil {
			handleAuthError(w, r, err)
			return
		}

		writeJSON(w, r, http.StatusCreated, user)
	}
}

// GetMe retorna as informações do usuário logado
func GetMe(service authenticating.Authenticator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userClaims, ok := middleware.ClaimsFromContext(r.Context())
		if !ok {
			apiErrors.WriteError(w, apiErrors.ErrInvalidToken, "Usuário não autenticado", nil)
			return
		}

		user, err := service.GetUserProfile(r.Context(), userClaims.UserID)
		if err != nil {
			handleAuthError(w, r, err)
			return
		}

		writeJSON(w, r, http.StatusOK, user)
	}
}

func handleAuthError(w http.ResponseWriter, r *http.Request, err error) {
	var authErr *authenticating.AuthError
	if errors.As(err, &authErr) {
		if !authenticating.IsCredentialsError(err) {
			log.ForContext(r.Context()).WithError(err).Warn("Erro de autenticação")
		}
		apiErrors.WriteError(w, authErr.Code, authErr.Error(), nil)
		return
	}

	log.ForContext(r.Context()).WithError(err).Error("Erro inesperado na autenticação")
	apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro interno ao autenticar", nil)
}
