package middleware

import (
	"context"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
)

// Redis keys for request counters, read back by the health service.
const (
	KeyReqTotal  = "health:req_total"
	KeyReqErrors = "health:req_errors"
)

// HealthMarker records request counters in Redis (skips / and /health*).
// A no-op when Redis is not configured.
func HealthMarker(rdb *redis.Client) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if rdb == nil {
			return c.Next()
		}
		path := c.Path()
		if path == "/" || strings.HasPrefix(path, "/health") || strings.HasPrefix(path, "/favicon") {
			return c.Next()
		}

		ctx := context.Background()
		_, _ = rdb.Incr(ctx, KeyReqTotal).Result()

		err := c.Next()

		if c.Response().StatusCode() >= 500 {
			_, _ = rdb.Incr(ctx, KeyReqErrors).Result()
		}
		return err
	}
}
