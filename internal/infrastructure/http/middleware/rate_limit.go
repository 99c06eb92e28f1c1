package middleware

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"golang.org/x/time/rate"

	"github.com/johnquangdev/meeting-insights/errors"
)

// limiterIdleExpiry is how long an idle client keeps its token bucket
const limiterIdleExpiry = 3 * time.Minute

// RateLimitConfig configures per-client throttling
type RateLimitConfig struct {
	// PerMinute is the sustained request rate and the burst size
	PerMinute int
	// OnLimited is called with the route path of every rejected request
	OnLimited func(endpoint string)
}

// RateLimit throttles requests per client IP with a token bucket. A
// non-positive PerMinute disables throttling.
func RateLimit(cfg RateLimitConfig) echo.MiddlewareFunc {
	if cfg.PerMinute <= 0 {
		return func(next echo.HandlerFunc) echo.HandlerFunc { return next }
	}

	store := echomw.NewRateLimiterMemoryStoreWithConfig(echomw.RateLimiterMemoryStoreConfig{
		Rate:      rate.Every(time.Minute / time.Duration(cfg.PerMinute)),
		Burst:     cfg.PerMinute,
		ExpiresIn: limiterIdleExpiry,
	})

	return echomw.RateLimiterWithConfig(echomw.RateLimiterConfig{
		Store: store,
		IdentifierExtractor: func(c echo.Context) (string, error) {
			return c.RealIP(), nil
		},
		ErrorHandler: func(c echo.Context, err error) error {
			return c.JSON(http.StatusForbidden, errorBody(errors.ErrInternal(err)))
		},
		DenyHandler: func(c echo.Context, identifier string, err error) error {
			if cfg.OnLimited != nil {
				cfg.OnLimited(c.Path())
			}
			c.Response().Header().Set("Retry-After", "60")
			return c.JSON(http.StatusTooManyRequests, errorBody(errors.ErrRateLimited(cfg.PerMinute)))
		},
	})
}

func errorBody(appErr errors.AppError) map[string]interface{} {
	return map[string]interface{}{
		"code":    appErr.Code,
		"message": appErr.Message,
		"details": appErr.Details,
	}
}
