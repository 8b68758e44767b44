package app

import (
	"net/http"

	"github.com/kegliz/nacompile/internal/server/router"
)

func (a *appServer) routes() []*router.Route {
	return []*router.Route{
		{
			Name:        "root",
			Method:      http.MethodGet,
			Pattern:     "/",
			HandlerFunc: a.RootHandler,
		},
		{
			Name:        "health",
			Method:      http.MethodGet,
			Pattern:     "/healthz",
			HandlerFunc: a.HealthHandler,
		},
		{
			Name:        "jobs.submit",
			Method:      http.MethodPost,
			Pattern:     "/v1/jobs",
			HandlerFunc: a.SubmitJob,
		},
		{
			Name:        "jobs.get",
			Method:      http.MethodGet,
			Pattern:     "/v1/jobs/:id",
			HandlerFunc: a.GetJob,
		},
	}
}
