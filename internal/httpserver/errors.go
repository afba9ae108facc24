package httpserver

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/Skotchmaster/storefront/internal/service"
	"github.com/Skotchmaster/storefront/internal/transport"
	"github.com/labstack/echo/v4"
)

var errNoUser = errors.New("no user in context")

func getUserID(c echo.Context) (string, error) {
	s, ok := c.Get(userIDKey).(string)
	if !ok || s == "" {
		return "", errNoUser
	}
	return s, nil
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, service.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, service.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrSearchDisabled):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// fail logs err under event and writes it as a message/error body with the
// status its sentinel maps to.
func fail(c echo.Context, l *slog.Logger, event, message string, err error) error {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		l.Error(event, "status", status, "error", err)
	} else {
		l.Warn(event, "status", status, "error", err)
	}
	return c.JSON(status, transport.ErrorResponse{Message: message, Error: err.Error()})
}

func badRequest(c echo.Context, l *slog.Logger, event, message string, err error) error {
	l.Warn(event, "status", http.StatusBadRequest, "error", err)
	return c.JSON(http.StatusBadRequest, transport.ErrorResponse{Message: message, Error: err.Error()})
}
