package http

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/epi-estoque/internal/application/dto"
)

// HealthHandler responde /health. ready puede ser nil (sin base).
func HealthHandler(service string, ready func(ctx context.Context) error) fiber.Handler {
	return func(c *fiber.Ctx) error {
		out := dto.HealthDTO{Status: "ok", Service: service}
		if ready == nil {
			return c.JSON(out)
		}
		ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
		defer cancel()
		if err := ready(ctx); err != nil {
			out.Status, out.Database = "degraded", "down"
			return c.Status(fiber.StatusServiceUnavailable).JSON(out)
		}
		out.Database = "up"
		return c.JSON(out)
	}
}
