package handler

import (
	"net/http"

	"github.com/vfg2006/cre-deals-api/internal/api/handler/router"
	"github.com/vfg2006/cre-deals-api/internal/usecases/authenticating"
	"github.com/vfg2006/cre-deals-api/internal/usecases/dealing"
	"github.com/vfg2006/cre-deals-api/internal/usecases/insighting"
	"github.com/vfg2006/cre-deals-api/internal/usecases/valuing"
	"github.com/vfg2006/cre-deals-api/pkg/middleware"
)

func Healthcheck() []router.Route {
	return []router.Route{
		{
			Path:    "/healthcheck",
			Method:  http.MethodGet,
			Handler: HealthcheckHandler(),
		},
	}
}

func Authentication(service authenticating.Authenticator) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/login",
			Method:  http.MethodPost,
			Handler: Login(service),
		},
		{
			Path:    "/v1/register",
			Method:  http.MethodPost,
			Handler: Register(service),
		},
		{
			Path:        "/v1/me",
			Method:      http.MethodGet,
			Handler:     GetMe(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
	}
}

func Deals(service dealing.DealService) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/deals",
			Method:      http.MethodGet,
			Handler:     ListDeals(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/deals",
			Method:      http.MethodPost,
			Handler:     CreateDeal(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOrAnalyst()},
		},
		{
			Path:        "/v1/deals/:id",
			Method:      http.MethodGet,
			Handler:     GetDeal(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/deals/:id",
			Method:      http.MethodPut,
			Handler:     UpdateDeal(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOrAnalyst()},
		},
		{
			Path:        "/v1/deals/:id",
			Method:      http.MethodDelete,
			Handler:     DeleteDeal(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOrAnalyst()},
		},
	}
}

func Pipeline(service dealing.DealService) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/pipeline",
			Method:      http.MethodGet,
			Handler:     GetPipeline(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/pipeline/move",
			Method:      http.MethodPost,
			Handler:     MovePipelineDeal(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOrAnalyst()},
		},
	}
}

func Valuations(service valuing.ValuationService) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/valuations/forecast",
			Method:      http.MethodPost,
			Handler:     Forecast(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/valuations/cap-rate",
			Method:      http.MethodPost,
			Handler:     CapRate(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/valuations",
			Method:      http.MethodGet,
			Handler:     ListValuations(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/valuations",
			Method:      http.MethodPost,
			Handler:     SaveValuation(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOrAnalyst()},
		},
		{
			Path:        "/v1/valuations/:id",
			Method:      http.MethodDelete,
			Handler:     DeleteValuation(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOrAnalyst()},
		},
	}
}

func Insights(service insighting.Insighter) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/dashboard",
			Method:      http.MethodGet,
			Handler:     GetDashboard(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/insights",
			Method:      http.MethodGet,
			Handler:     GetInsights(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
	}
}

func CronJobs(services CronJobServices) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/cron/:type/run",
			Method:      http.MethodPost,
			Handler:     RunCronJob(services),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOnly()},
		},
		{
			Path:        "/v1/cron/status",
			Method:      http.MethodGet,
			Handler:     GetCronStatus(services),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOnly()},
		},
	}
}
