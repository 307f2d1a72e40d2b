// Package controllers adapts HTTP requests to the services layer.
package controllers

import (
	"errors"
	"net/http"

	"github.com/shashiranjanraj/plantnet/app/services"
	"github.com/shashiranjanraj/plantnet/pkg/ctx"
)

// fail maps a service error onto the response envelope. Unknown errors
// are logged and hidden behind a generic 500.
func fail(c *ctx.Context, err error) {
	switch {
	case errors.Is(err, services.ErrUnauthorized):
		c.Unauthorized("unauthorized access")
	case errors.Is(err, services.ErrNotFound):
		c.NotFound(err.Error())
	case errors.Is(err, services.ErrConflict):
		c.Conflict(err.Error())
	case errors.Is(err, services.ErrValidation):
		c.Error(http.StatusUnprocessableEntity, err.Error())
	default:
		c.Log().Error("request failed", "method", c.R.Method, "path", c.R.URL.Path, "error", err)
		c.Error(http.StatusInternalServerError, "Internal Server Error")
	}
}
