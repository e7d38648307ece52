package handler

import (
	"time"

	"github.com/gofiber/fiber/v3"

	"github.com/Alijeyrad/nutriguard_backend/internal/service/system"
)

type SystemHandler struct {
	svc system.Service
}

func NewSystemHandler(svc system.Service) *SystemHandler {
	return &SystemHandler{svc: svc}
}

// GET /
func (h *SystemHandler) Root(c fiber.Ctx) error {
	return ok(c, h.svc.Descriptor())
}

// GET /health
// Always 200; the body carries the database state.
func (h *SystemHandler) Health(c fiber.Ctx) error {
	return ok(c, h.svc.Health(c.Context()))
}

// GET /stats
func (h *SystemHandler) Stats(c fiber.Ctx) error {
	stats, err := h.svc.Stats(c.Context())
	if err != nil {
		return internalError(c, err)
	}
	return ok(c, fiber.Map{"system_stats": stats, "timestamp": time.Now()})
}
