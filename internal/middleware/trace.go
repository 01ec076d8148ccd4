package middleware

import (
	"cogniLearn/pkg/logger"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

const TraceHeader = "X-Request-ID"

// Trace tags each request context with a trace id, reusing the caller's
// X-Request-ID when present, and echoes it back in the response.
func Trace() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			id := c.Request().Header.Get(TraceHeader)
			if id == "" {
				id = uuid.NewString()
			}

			req := c.Request()
			c.SetRequest(req.WithContext(logger.WithTraceID(req.Context(), id)))
			c.Response().Header().Set(TraceHeader, id)

			return next(c)
		}
	}
}
