package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/johnquangdev/meeting-insights/errors"
	"github.com/johnquangdev/meeting-insights/pkg/jwt"
)

// ClaimsKey is the echo context key holding validated token claims
const ClaimsKey = "claims"

// AdminAuth requires a bearer token carrying the admin role. A nil manager
// leaves the routes open.
func AdminAuth(m *jwt.Manager) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		if m == nil {
			return next
		}
		return func(c echo.Context) error {
			token := extractToken(c.Request())
			if token == "" {
				return c.JSON(http.StatusUnauthorized, errorBody(errors.ErrUnauthorized("missing authorization token")))
			}

			claims, err := m.ValidateToken(token)
			if err != nil {
				return c.JSON(http.StatusUnauthorized, errorBody(errors.ErrUnauthorized("invalid or expired token")))
			}
			if claims.Role != jwt.RoleAdmin {
				return c.JSON(http.StatusForbidden, errorBody(errors.ErrForbidden()))
			}

			c.Set(ClaimsKey, claims)
			return next(c)
		}
	}
}

func extractToken(r *http.Request) string {
	header := r.Header.Get(echo.HeaderAuthorization)
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
