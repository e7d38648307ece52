package router

import (
	"github.com/gofiber/fiber/v3"

	"github.com/Alijeyrad/nutriguard_backend/internal/api/http/handler"
)

func (r *Router) registerAIRoutes(app fiber.Router, h *handler.AIHandler) {
	ai := app.Group("/ai")
	ai.Post("/recommend-meals", h.RecommendMeals)
	ai.Post("/assess-risks", h.AssessRisks)
	ai.Post("/predict-outcomes", h.PredictOutcomes)
	ai.Post("/optimize-recipe", h.OptimizeRecipe)
}
