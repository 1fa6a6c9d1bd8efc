package middleware

import (
	"github.com/gofiber/fiber/v2"
)

// CORSConfig holds CORS configuration.
type CORSConfig struct {
	AllowOrigin string // "" means "*"
}

// CORS sets the allow headers on every response and answers preflight
// requests explicitly. Methods and headers match the API surface.
func CORS(cfg CORSConfig) fiber.Handler {
	origin := cfg.AllowOrigin
	if origin == "" {
		origin = "*"
	}
	return func(c *fiber.Ctx) error {
		c.Set("Access-Control-Allow-Origin", origin)
		c.Set("Access-Control-Allow-Methods", "GET, POST, PATCH, DELETE, OPTIONS")
		c.Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if c.Method() == fiber.MethodOptions {
			return c.SendStatus(fiber.StatusNoContent)
		}
		return c.Next()
	}
}
