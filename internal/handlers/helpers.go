package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/campusbazaar/backend/internal/authz"
	"github.com/campusbazaar/backend/internal/events"
	authmw "github.com/campusbazaar/backend/internal/middleware/auth"
	"github.com/campusbazaar/backend/internal/service"
)

// httpError maps service-layer sentinels onto HTTP status codes. Anything
// unrecognized is an internal error and its detail stays out of the response.
func httpError(err error) error {
	var code int
	switch {
	case errors.Is(err, service.ErrValidation),
		errors.Is(err, service.ErrInsufficientStock),
		errors.Is(err, service.ErrMultiVendorCart),
		errors.Is(err, service.ErrInvalidTransition):
		code = http.StatusBadRequest
	case errors.Is(err, service.ErrUnauthorized):
		code = http.StatusUnauthorized
	case errors.Is(err, service.ErrForbidden):
		code = http.StatusForbidden
	case errors.Is(err, service.ErrNotFound):
		code = http.StatusNotFound
	default:
		return echo.NewHTTPError(http.StatusInternalServerError, "internal server error")
	}
	return echo.NewHTTPError(code, err.Error())
}

func identity(c echo.Context) (authz.Identity, error) {
	id, ok := authmw.IdentityFrom(c)
	if !ok {
		return authz.Identity{}, echo.NewHTTPError(http.StatusUnauthorized, "not authorized")
	}
	return id, nil
}

func publish(c echo.Context, p *events.Producer, topic, key string, event map[string]any) {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()
	if err := p.PublishEvent(ctx, topic, key, event); err != nil {
		c.Logger().Errorf("event publish error: %v", err)
	}
}
