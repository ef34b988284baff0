package handlers

import (
	"context"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
)

// Pinger is anything the health check can probe.
type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthHandler struct {
	checks map[string]Pinger
}

func NewHealthHandler(checks map[string]Pinger) *HealthHandler {
	return &HealthHandler{checks: checks}
}

func (h *HealthHandler) HealthCheck(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
	defer cancel()

	status := "ok"
	services := fiber.Map{}
	for name, check := range h.checks {
		if err := check.Ping(ctx); err != nil {
			log.Printf("Health check %s failed: %v", name, err)
			services[name] = "unavailable"
			status = "degraded"
			continue
		}
		services[name] = "connected"
	}

	code := fiber.StatusOK
	if status != "ok" {
		code = fiber.StatusServiceUnavailable
	}
	return c.Status(code).JSON(fiber.Map{
		"status":   status,
		"version":  "1.0.0",
		"services": services,
	})
}
