package handler

import (
	"net/http"

	"github.com/vfg2006/ad-report-api/internal/api/handler/router"
	"github.com/vfg2006/ad-report-api/internal/usecases/reporting"
	"github.com/vfg2006/ad-report-api/pkg/middleware"
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

func Projects(service reporting.ReportService) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/projects",
			Method:  http.MethodGet,
			Handler: ListProjects(service),
		},
		{
			Path:    "/v1/projects",
			Method:  http.MethodPost,
			Handler: CreateProject(service),
		},
		{
			Path:    "/v1/projects/:id",
			Method:  http.MethodGet,
			Handler: GetProject(service),
		},
		{
			Path:    "/v1/meta/ad-accounts",
			Method:  http.MethodGet,
			Handler: ListAdAccounts(service),
		},
	}
}

func Reports(service reporting.ReportService) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/projects/:id/imports",
			Method:  http.MethodPost,
			Handler: ImportFiles(service),
		},
		{
			Path:    "/v1/projects/:id/sync",
			Method:  http.MethodPost,
			Handler: SyncProject(service),
		},
		{
			Path:        "/v1/projects/:id/rows",
			Method:      http.MethodGet,
			Handler:     ListRows(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.NoCache()},
		},
		{
			Path:    "/v1/projects/:id/rows/:row_id/result-type",
			Method:  http.MethodPut,
			Handler: OverrideResultType(service),
		},
		{
			Path:        "/v1/projects/:id/demographics/:level",
			Method:      http.MethodGet,
			Handler:     Demographics(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.NoCache()},
		},
		{
			Path:        "/v1/projects/:id/export",
			Method:      http.MethodGet,
			Handler:     ExportWorkbook(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.NoCache()},
		},
	}
}

func CronJobs(scheduler SyncScheduler) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/cron/:type/run",
			Method:  http.MethodPost,
			Handler: RunCronJob(scheduler),
		},
		{
			Path:    "/v1/cron/:type/status",
			Method:  http.MethodGet,
			Handler: GetCronStatus(scheduler),
		},
	}
}
