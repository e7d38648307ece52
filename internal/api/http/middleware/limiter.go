package middleware

import (
	"log/slog"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/limiter"
	fiberredis "github.com/gofiber/storage/redis/v3"
	"github.com/redis/go-redis/v9"

	"github.com/Alijeyrad/nutriguard_backend/config"
)

// NewLimiter builds a sliding-window limiter. Counters live in Redis when a
// client is given and in process memory otherwise.
func NewLimiter(cfg config.RateLimitConfig, rdb *redis.Client) fiber.Handler {
	lc := limiter.Config{
		Max:               cfg.Max,
		Expiration:        time.Duration(cfg.ExpirationSeconds) * time.Second,
		LimiterMiddleware: limiter.SlidingWindow{},
		LimitReached: func(c fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{"error": "too many requests"})
		},
	}
	if lc.Max <= 0 {
		lc.Max = 20
	}
	if lc.Expiration <= 0 {
		lc.Expiration = 30 * time.Second
	}

	if rdb != nil {
		lc.Storage = fiberredis.NewFromConnection(rdb)
	} else {
		slog.Warn("rate limiter using in-memory storage; redis not configured")
	}
	return limiter.New(lc)
}
