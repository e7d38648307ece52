package router

import (
	"github.com/gofiber/fiber/v3"

	"github.com/Alijeyrad/nutriguard_backend/internal/api/http/handler"
)

func (r *Router) registerAlertRoutes(app fiber.Router, h *handler.AlertHandler) {
	alerts := app.Group("/alerts")
	alerts.Get("/dietary-violations", h.DietaryViolations)
	alerts.Post("/:id/resolve", h.Resolve)
}
