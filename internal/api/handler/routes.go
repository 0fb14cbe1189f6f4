package handler

import (
	"net/http"

	"github.com/justinas/alice"
	"github.com/vfg2006/sales-dashboard/internal/api/handler/router"
	"github.com/vfg2006/sales-dashboard/pkg/middleware"
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

// Dashboard retorna as rotas da interface HTML
func Dashboard(uploader Uploader, renderer Renderer) []router.Route {
	return []router.Route{
		{
			Path:    "/",
			Method:  http.MethodGet,
			Handler: DashboardPage(uploader.Store, renderer),
		},
		{
			Path:    "/upload",
			Method:  http.MethodPost,
			Handler: UploadPage(uploader, renderer),
		},
		{
			Path:    "/session/clear",
			Method:  http.MethodPost,
			Handler: ClearSession(uploader.Store, uploader.Cookies),
		},
	}
}

func Reports(uploader Uploader) []router.Route {
	requireSession := []alice.Constructor{middleware.RequireSession(uploader.Store)}

	return []router.Route{
		{
			Path:    "/v1/upload",
			Method:  http.MethodPost,
			Handler: UploadAPI(uploader),
		},
		{
			Path:        "/v1/report",
			Method:      http.MethodGet,
			Handler:     GetReport(),
			Middlewares: requireSession,
		},
		{
			Path:        "/v1/report/trend",
			Method:      http.MethodGet,
			Handler:     GetMonthlyTrend(),
			Middlewares: requireSession,
		},
		{
			Path:        "/v1/options",
			Method:      http.MethodGet,
			Handler:     GetOptions(),
			Middlewares: requireSession,
		},
		{
			Path:    "/v1/session",
			Method:  http.MethodDelete,
			Handler: DeleteSession(uploader.Store, uploader.Cookies),
		},
	}
}

func CronJobs(services CronJobServices) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/cron/:type/run",
			Method:  http.MethodPost,
			Handler: RunCronJob(services),
		},
		{
			Path:    "/v1/cron/status",
			Method:  http.MethodGet,
			Handler: GetCronStatus(services),
		},
	}
}
