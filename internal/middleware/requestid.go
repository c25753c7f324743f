package middleware

import (
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pranavvermapv/real-estate-crm/pkg/logger"
	"go.uber.org/zap"
)

// RequestID tags every request with a generated id. The id is mirrored on
// the response header for clients, and a logger carrying it is stashed on
// the context for logger.FromContext.
func RequestID(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		id := uuid.New().String()
		c.Request().Header.Set(echo.HeaderXRequestID, id)
		c.Response().Header().Set(echo.HeaderXRequestID, id)
		c.Set("request_id", id)
		c.Set("logger", logger.GetLogger().With(zap.String("request_id", id)))
		return next(c)
	}
}
