package health

import (
	healthsvc "agricycle-backend/internal/application/health"

	"github.com/gofiber/fiber/v2"
)

// Handlers serves the liveness and dependency-health endpoints.
type Handlers struct {
	Service *healthsvc.Service
}

// Root GET / — plain liveness text.
func (h *Handlers) Root(c *fiber.Ctx) error {
	return c.SendString("AgriCycle Connect API is running")
}

// JSON GET /health — dependency status and request counters.
func (h *Handlers) JSON(c *fiber.Ctx) error {
	return c.JSON(h.Service.Collect(c.Context()))
}
