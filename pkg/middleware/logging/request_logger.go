package loggingmw

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/Skotchmaster/storefront/pkg/logging"
)

// UserIDKey is the echo context key under which the acting user id is stored.
// When set by a later middleware it is added to the completion line.
const UserIDKey = "user_id"

// RequestLogger stores a request-scoped logger in the request context and
// logs one line per completed request.
func RequestLogger(base *slog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			l := base.With(requestAttrs(c)...)
			if rid := requestID(c); rid != "" {
				l = l.With("request_id", rid)
				c.Response().Header().Set(echo.HeaderXRequestID, rid)
			}
			ctx := logging.IntoContext(c.Request().Context(), l)
			c.SetRequest(c.Request().WithContext(ctx))

			start := time.Now()
			err := next(c)
			if err != nil {
				c.Echo().HTTPErrorHandler(err, c)
			}

			status := c.Response().Status
			attrs := []any{"status", status, "duration_ms", time.Since(start).Milliseconds()}
			if uid, ok := c.Get(UserIDKey).(string); ok && uid != "" {
				attrs = append(attrs, "user_id", uid)
			}
			lvl := levelFor(status, err)
			switch {
			case err != nil:
				attrs = append(attrs, "error", err.Error())
			case lvl == slog.LevelInfo:
				attrs = append(attrs, "bytes", c.Response().Size)
			}
			l.Log(ctx, lvl, "request completed", attrs...)
			return nil
		}
	}
}

func requestAttrs(c echo.Context) []any {
	r := c.Request()
	return []any{
		"method", r.Method,
		"route", c.Path(),
		"url", r.URL.Path,
		"remote_ip", c.RealIP(),
		"user_agent", r.UserAgent(),
	}
}

// requestID prefers the caller's id over one generated by echo's RequestID
// middleware.
func requestID(c echo.Context) string {
	if rid := c.Request().Header.Get(echo.HeaderXRequestID); rid != "" {
		return rid
	}
	return c.Response().Header().Get(echo.HeaderXRequestID)
}

func levelFor(status int, err error) slog.Level {
	switch {
	case err != nil, status >= http.StatusInternalServerError:
		return slog.LevelError
	case status >= http.StatusBadRequest:
		return slog.LevelWarn
	default:
		return slog.LevelInfo
	}
}
