package http

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"parceldelivery/internal/metrics"

	"github.com/labstack/echo/v4"
)

// Observability counts and times every request by route pattern and writes one
// log line per request. Register it outermost so that recovered panics are
// counted with their 500 status.
func Observability(m *metrics.Metrics, logger *slog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)
			if err != nil {
				c.Error(err)
			}

			path := c.Path()
			if path == "" {
				path = "unmatched"
			}
			status := c.Response().Status
			elapsed := time.Since(start)
			statusLabel := strconv.Itoa(status)

			m.HTTPRequests.WithLabelValues(c.Request().Method, path, statusLabel).Inc()
			m.HTTPDuration.WithLabelValues(c.Request().Method, path, statusLabel).Observe(elapsed.Seconds())

			logger.Log(c.Request().Context(), logLevelFor(status), "http request",
				"method", c.Request().Method,
				"path", path,
				"status", status,
				"duration", elapsed,
				"request_id", c.Response().Header().Get(echo.HeaderXRequestID),
			)
			return nil
		}
	}
}

func logLevelFor(status int) slog.Level {
	if status >= http.StatusInternalServerError {
		return slog.LevelError
	}
	return slog.LevelInfo
}
