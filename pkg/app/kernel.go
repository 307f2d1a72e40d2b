package app

import (
	"net/http"

	"github.com/shashiranjanraj/plantnet/pkg/metrics"
	"github.com/shashiranjanraj/plantnet/pkg/middleware"
	"github.com/shashiranjanraj/plantnet/pkg/reqid"
	"github.com/shashiranjanraj/plantnet/pkg/response"
	"github.com/shashiranjanraj/plantnet/pkg/router"
)

// Handler builds the HTTP handler.
//
// Global middleware, outermost first:
//  1. Prometheus metrics, so latency covers everything below
//  2. Recovery
//  3. Request ID, before anything logs
//  4. Logger
//  5. CORS, so preflights never hit the limiter
//  6. Rate limiter
func (a *Application) Handler() http.Handler {
	r := a.router()
	return r.Handler()
}

func (a *Application) router() *router.Router {
	r := router.New()

	r.Use(metrics.Middleware())
	r.Use(middleware.Recovery)
	r.Use(reqid.Middleware())
	r.Use(middleware.Logger)
	r.Use(middleware.CORS(a.origins))
	if a.limiter != nil {
		r.Use(a.limiter.Middleware)
	}

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		response.Error(w, http.StatusNotFound, "Not Found")
	})
	r.Handle("/metrics", "metrics", metrics.Handler())

	for _, fn := range a.routesFns {
		fn(r)
	}
	return r
}
