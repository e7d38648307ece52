package router

import (
	"github.com/gofiber/fiber/v3"

	"github.com/Alijeyrad/nutriguard_backend/internal/api/http/handler"
)

func (r *Router) registerRecipeRoutes(app fiber.Router, h *handler.RecipeHandler) {
	recipes := app.Group("/recipes")
	recipes.Post("/", h.Create)
	// Registered before /:id so "search" is not taken for an id.
	recipes.Get("/search", h.Search)
	recipes.Get("/:id", h.Get)
	recipes.Post("/:id/modify", h.Modify)
	recipes.Post("/:id/image", h.UploadImage)
}
