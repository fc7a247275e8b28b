package middleware

import (
	"context"
	"strconv"

	"github.com/chauhanrajat09/embody-your-potential-fullstack/internal/logger"
	"github.com/chauhanrajat09/embody-your-potential-fullstack/internal/metrics"
	"github.com/go-redis/redis_rate/v10"
	"github.com/gofiber/fiber/v2"
)

type RequestRateLimiter interface {
	Allow(ctx context.Context, key string, limit redis_rate.Limit) (*redis_rate.Result, error)
}

// RateLimit allows allowedPerMin requests per client IP on the route group
// name. Limiter failures let the request through.
func RateLimit(rateLimiter RequestRateLimiter, name string, allowedPerMin int, metricsManager *metrics.Manager, log logger.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		res, err := rateLimiter.Allow(
			c.UserContext(),
			"rate:"+name+":"+c.IP(),
			redis_rate.PerMinute(allowedPerMin),
		)
		if err != nil {
			log.WithError(err).WithField("limiter", name).Warn("rate limiter unavailable")
			return c.Next()
		}

		if res.Allowed > 0 {
			return c.Next()
		}

		if metricsManager != nil {
			metricsManager.CounterRateLimitedRequests.Inc()
		}
		c.Set(fiber.HeaderRetryAfter, strconv.Itoa(int(res.RetryAfter.Seconds())+1))
		return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
			"message": "Too many attempts, please try again later",
			"error":   "Too many attempts, please try again later",
		})
	}
}
