package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-redis/redis_rate/v10"
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"riskdesk/internal/errors"
)

// RateLimitConfig holds the token bucket parameters.
type RateLimitConfig struct {
	Enabled bool
	QPS     int
	Burst   int
}

// RateLimit returns an Echo middleware enforcing a per-IP token bucket
// backed by redis. It fails open when redis is unreachable.
func RateLimit(rdb *redis.Client, cfg RateLimitConfig) echo.MiddlewareFunc {
	limiter := redis_rate.NewLimiter(rdb)
	limit := redis_rate.Limit{
		Rate:   cfg.QPS,
		Period: time.Second,
		Burst:  cfg.Burst,
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if !cfg.Enabled || rdb == nil {
				return next(c)
			}

			key := "ratelimit:" + c.RealIP()
			res, err := limiter.Allow(c.Request().Context(), key, limit)
			if err != nil {
				// Fail open if the rate limiter backend is down.
				return next(c)
			}

			c.Response().Header().Set("X-RateLimit-Limit", strconv.Itoa(limit.Burst))
			c.Response().Header().Set("X-RateLimit-Remaining", strconv.Itoa(res.Remaining))
			c.Response().Header().Set("X-RateLimit-Reset", strconv.FormatInt(int64(res.ResetAfter/time.Second), 10))

			if res.Allowed == 0 {
				c.Response().Header().Set("Retry-After", strconv.FormatInt(int64(res.RetryAfter/time.Second), 10))
				return echo.NewHTTPError(http.StatusTooManyRequests, errors.ErrorResponse{
					Error: "too many requests",
					Code:  "RATE_LIMITED",
				})
			}

			return next(c)
		}
	}
}
