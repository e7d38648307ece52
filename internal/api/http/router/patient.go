package router

import (
	"github.com/gofiber/fiber/v3"

	"github.com/Alijeyrad/nutriguard_backend/internal/api/http/handler"
)

func (r *Router) registerPatientRoutes(app fiber.Router, h *handler.PatientHandler) {
	patients := app.Group("/patients")
	patients.Post("/", h.Create)

	p := patients.Group("/:id")
	p.Get("/", h.Get)
	p.Post("/dietary-restrictions", h.UpdateDietaryRestrictions)
	p.Get("/nutrition-history", h.NutritionHistory)
	p.Get("/meal-plan", h.CurrentMealPlan)
	p.Post("/photo", h.UploadPhoto)
}
