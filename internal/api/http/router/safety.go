package router

import (
	"github.com/gofiber/fiber/v3"

	"github.com/Alijeyrad/nutriguard_backend/internal/api/http/handler"
)

func (r *Router) registerSafetyRoutes(app fiber.Router, h *handler.SafetyHandler) {
	s := app.Group("/safety")
	s.Post("/temperature-logs", h.LogTemperature)
	s.Post("/inspections", h.LogInspection)

	app.Get("/compliance/reports", h.ComplianceReport)
}
