package middleware

import (
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/johnquangdev/meeting-insights/pkg/jobcontext"
)

// RequestIDKey is the echo context key holding the request ID
const RequestIDKey = "request_id"

// RequestID reuses an inbound X-Request-ID or generates one, echoes it in the
// response and stores it in the request context for the pipeline logs.
func RequestID() echo.MiddlewareFunc {
	return echomw.RequestIDWithConfig(echomw.RequestIDConfig{
		Generator: uuid.NewString,
		RequestIDHandler: func(c echo.Context, id string) {
			c.Set(RequestIDKey, id)
			req := c.Request()
			c.SetRequest(req.WithContext(jobcontext.WithRequestID(req.Context(), id)))
		},
	})
}

// GetRequestID returns the ID stored by RequestID
func GetRequestID(c echo.Context) string {
	if id, ok := c.Get(RequestIDKey).(string); ok {
		return id
	}
	return c.Response().Header().Get(echo.HeaderXRequestID)
}
