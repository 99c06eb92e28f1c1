package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/johnquangdev/meeting-insights/pkg/jwt"
)

func TestAdminAuth(t *testing.T) {
	m := jwt.NewManager("secret", time.Hour)
	admin, err := m.GenerateToken("ops", jwt.RoleAdmin)
	require.NoError(t, err)
	viewer, err := m.GenerateToken("someone", "viewer")
	require.NoError(t, err)

	e := echo.New()
	e.DELETE("/v1/cache", func(c echo.Context) error {
		claims := c.Get(ClaimsKey).(*jwt.Claims)
		return c.String(http.StatusOK, claims.Subject)
	}, AdminAuth(m))

	tests := []struct {
		name   string
		header string
		status int
	}{
		{"missing", "", http.StatusUnauthorized},
		{"not bearer", "Basic abc", http.StatusUnauthorized},
		{"garbage", "Bearer abc", http.StatusUnauthorized},
		{"wrong role", "Bearer " + viewer, http.StatusForbidden},
		{"admin", "Bearer " + admin, http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodDelete, "/v1/cache", nil)
			if tt.header != "" {
				req.Header.Set(echo.HeaderAuthorization, tt.header)
			}
			rec := httptest.NewRecorder()
			e.ServeHTTP(rec, req)
			assert.Equal(t, tt.status, rec.Code)
		})
	}
}

func TestAdminAuth_Disabled(t *testing.T) {
	e := echo.New()
	e.DELETE("/v1/cache", func(c echo.Context) error { return c.NoContent(http.StatusOK) }, AdminAuth(nil))

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/v1/cache", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}
