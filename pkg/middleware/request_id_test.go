package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"

	"github.com/johnquangdev/meeting-insights/pkg/jobcontext"
)

func TestRequestID(t *testing.T) {
	e := echo.New()
	e.Use(RequestID())

	var fromCtx, fromEcho string
	e.GET("/", func(c echo.Context) error {
		fromCtx = jobcontext.GetRequestID(c.Request().Context())
		fromEcho = GetRequestID(c)
		return c.NoContent(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(echo.HeaderXRequestID, "abc-123")
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, "abc-123", rec.Header().Get(echo.HeaderXRequestID))
	assert.Equal(t, "abc-123", fromCtx)
	assert.Equal(t, "abc-123", fromEcho)

	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	generated := rec.Header().Get(echo.HeaderXRequestID)
	assert.Len(t, generated, 36)
	assert.Equal(t, generated, fromCtx)
}
