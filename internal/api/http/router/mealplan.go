package router

import (
	"github.com/gofiber/fiber/v3"

	"github.com/Alijeyrad/nutriguard_backend/internal/api/http/handler"
)

func (r *Router) registerMealPlanRoutes(app fiber.Router, h *handler.MealPlanHandler) {
	plans := app.Group("/meal-plans")

	plans.Post("/generate", h.Generate)
	plans.Get("/patient/:id/active", h.Active)
	plans.Get("/patient/:id/history", h.History)

	mp := plans.Group("/:id")
	mp.Get("/", h.Get)
	mp.Put("/", h.Update)
	mp.Delete("/", h.Delete)
	mp.Post("/images", h.MealCards)
	mp.Post("/recipes", h.AddRecipe)
	mp.Delete("/recipes/:recipe_id", h.RemoveRecipe)
}
