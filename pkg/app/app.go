// Package app assembles the plantNet HTTP handler and runs it.
//
//	app.New().
//	    Routes(func(r *router.Router) {
//	        routes.RegisterAPI(r, registry, sessions, database.Ping)
//	    }).
//	    Serve(ctx, ":"+config.AppPort())
//
// Everything project-specific arrives through Routes; this package only owns
// the global middleware stack and the server lifecycle.
package app

import (
	"github.com/shashiranjanraj/plantnet/config"
	"github.com/shashiranjanraj/plantnet/pkg/middleware"
	"github.com/shashiranjanraj/plantnet/pkg/router"
)

// Application is the central configuration object. Build one with New(),
// attach routes, then call Serve or Handler.
type Application struct {
	routesFns []func(*router.Router)
	origins   []string
	limiter   *middleware.Limiter
}

// New reads the allowed origins and per-IP budget from config.
// A budget of zero turns the rate limiter off.
func New() *Application {
	a := &Application{origins: config.ClientOrigins()}
	if n := config.RateLimitPerMinute(); n > 0 {
		a.limiter = middleware.NewLimiter(n).TrustProxy(config.TrustProxy())
	}
	return a
}

// Routes registers a route-registration callback. Callbacks run in order
// each time the handler is built.
func (a *Application) Routes(fn func(*router.Router)) *Application {
	a.routesFns = append(a.routesFns, fn)
	return a
}

// WithOrigins overrides the CORS allow-list.
func (a *Application) WithOrigins(origins ...string) *Application {
	a.origins = origins
	return a
}

// WithLimiter replaces the rate limiter; nil disables limiting.
func (a *Application) WithLimiter(l *middleware.Limiter) *Application {
	a.limiter = l
	return a
}
