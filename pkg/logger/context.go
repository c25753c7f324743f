package logger

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// FromContext returns the request-scoped logger installed by the request id
// middleware. Outside a tagged request it falls back to the global logger,
// carrying whatever request id the wire already has.
func FromContext(c echo.Context) *zap.Logger {
	if log, ok := c.Get("logger").(*zap.Logger); ok {
		return log
	}

	id := c.Request().Header.Get(echo.HeaderXRequestID)
	if id == "" {
		id = "unknown"
	}
	return GetLogger().With(zap.String("request_id", id))
}
