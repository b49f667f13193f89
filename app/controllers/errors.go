// Package controllers translates HTTP requests into service calls and
// service results into JSON envelopes.
package controllers

import (
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/bilemo/api/app/services"
	"github.com/bilemo/api/pkg/ctx"
)

// fail maps a service error to its HTTP response.
func fail(cx *ctx.Context, err error) {
	var verr *services.ValidationError
	switch {
	case errors.As(err, &verr):
		cx.ValidationError(verr.Fields)
	case errors.Is(err, services.ErrNotFound):
		cx.NotFound()
	case errors.Is(err, services.ErrForbidden):
		cx.Forbidden("Access Denied.")
	case errors.Is(err, services.ErrInvalidCredentials):
		cx.Unauthorized("Invalid credentials.")
	default:
		cx.Logger().Error("request failed", zap.Error(err))
		cx.Error(http.StatusInternalServerError, "Internal Server Error")
	}
}

// pathID reads the {id} path parameter, answering 404 when it is not a
// positive integer.
func pathID(cx *ctx.Context) (uint, bool) {
	n, ok := cx.ParamUint("id")
	if !ok {
		cx.NotFound()
	}
	return n, ok
}
