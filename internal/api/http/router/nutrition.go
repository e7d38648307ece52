package router

import (
	"github.com/gofiber/fiber/v3"

	"github.com/Alijeyrad/nutriguard_backend/internal/api/http/handler"
)

func (r *Router) registerNutritionRoutes(app fiber.Router, h *handler.NutritionHandler) {
	n := app.Group("/nutrition")
	n.Post("/intake", h.LogIntake)
	n.Get("/analytics/:patient_id", h.Analytics)
	n.Post("/analyze-correlation", h.AnalyzeCorrelation)
}
