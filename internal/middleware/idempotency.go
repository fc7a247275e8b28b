package middleware

import (
	"crypto/rand"
	"encoding/json"
	"fmt"
	"time"

	"github.com/chauhanrajat09/embody-your-potential-fullstack/internal/logger"
	"github.com/gofiber/fiber/v2"
	"github.com/oklog/ulid/v2"
	"github.com/redis/go-redis/v9"
)

const CorrelationIDHeader = "X-Correlation-ID"

// pendingTTL bounds how long a crashed request can keep its correlation ID locked
const pendingTTL = time.Minute

type cachedResponse struct {
	Status  int             `json:"status"`
	Body    json.RawMessage `json:"body,omitempty"`
	Pending bool            `json:"pending,omitempty"`
}

var pendingMarker, _ = json.Marshal(cachedResponse{Pending: true})

// IdempotencyMiddleware replays the stored response when a POST with the same
// X-Correlation-ID is seen again within ttl. Keys are scoped to the caller.
// The key is reserved before the handler runs, so a concurrent duplicate gets
// 409 instead of running twice. Requests without the header get a fresh ULID,
// echoed in the response so the client can retry with it.
func IdempotencyMiddleware(redisClient *redis.Client, ttl time.Duration, log logger.Logger) fiber.Handler {
	reserveTTL := pendingTTL
	if ttl < reserveTTL {
		reserveTTL = ttl
	}

	return func(c *fiber.Ctx) error {
		if c.Method() != fiber.MethodPost {
			return c.Next()
		}

		ctx := c.UserContext()
		correlationID := c.Get(CorrelationIDHeader)
		issued := correlationID == ""
		if issued {
			correlationID = ulid.MustNew(ulid.Now(), rand.Reader).String()
		}
		c.Set(CorrelationIDHeader, correlationID)

		key := fmt.Sprintf("idempotency:%s:%s:%s", GetUserID(c), c.Path(), correlationID)

		reserved := false
		if !issued {
			ok, err := redisClient.SetNX(ctx, key, pendingMarker, reserveTTL).Result()
			switch {
			case err != nil:
				log.WithError(err).Warn("idempotency reservation failed")
			case ok:
				reserved = true
			default:
				return replay(c, redisClient, key, log)
			}
		}

		if err := c.Next(); err != nil {
			release(c, redisClient, key, reserved, log)
			return err
		}

		// Cache successful responses (2xx status codes)
		status := c.Response().StatusCode()
		body := c.Response().Body()
		if status < 200 || status >= 300 || !json.Valid(body) {
			release(c, redisClient, key, reserved, log)
			return nil
		}

		data, err := json.Marshal(cachedResponse{Status: status, Body: append([]byte(nil), body...)})
		if err != nil {
			release(c, redisClient, key, reserved, log)
			return nil
		}
		if err := redisClient.Set(ctx, key, data, ttl).Err(); err != nil {
			log.WithError(err).Warn("idempotency store failed")
		}
		return nil
	}
}

// replay answers a duplicate request from the stored response, or with 409
// while the first request is still running
func replay(c *fiber.Ctx, redisClient *redis.Client, key string, log logger.Logger) error {
	data, err := redisClient.Get(c.UserContext(), key).Bytes()
	if err != nil && err != redis.Nil {
		log.WithError(err).Warn("idempotency lookup failed")
	}

	var cached cachedResponse
	if err != nil || json.Unmarshal(data, &cached) != nil || cached.Pending {
		msg := "Request with this correlation ID is still in progress"
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"message": msg, "error": msg})
	}

	c.Set("X-Idempotent-Replay", "true")
	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	return c.Status(cached.Status).Send(cached.Body)
}

// release frees a reservation so the client can retry a failed request
func release(c *fiber.Ctx, redisClient *redis.Client, key string, reserved bool, log logger.Logger) {
	if !reserved {
		return
	}
	if err := redisClient.Del(c.UserContext(), key).Err(); err != nil {
		log.WithError(err).Warn("idempotency release failed")
	}
}
