package middleware

import (
	"net/http"

	"FinBoard/internal/service/ratelimit"

	"github.com/labstack/echo/v4"
)

// RateLimitConfig holds per-client token bucket settings.
type RateLimitConfig struct {
	Capacity     float64
	RefillPerSec float64
}

// RateLimit returns middleware limiting requests per client IP. Requests
// beyond the bucket capacity get 429.
func RateLimit(cfg RateLimitConfig) echo.MiddlewareFunc {
	limiter := ratelimit.New()
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if !limiter.Allow(c.RealIP(), cfg.Capacity, cfg.RefillPerSec) {
				return c.JSON(http.StatusTooManyRequests, map[string]interface{}{
					"success": false,
					"error": map[string]string{
						"code":    "ERR_RATE_LIMITED",
						"message": "Too many requests",
					},
				})
			}
			return next(c)
		}
	}
}
