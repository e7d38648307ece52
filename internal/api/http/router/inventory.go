package router

import (
	"github.com/gofiber/fiber/v3"

	"github.com/Alijeyrad/nutriguard_backend/internal/api/http/handler"
)

func (r *Router) registerInventoryRoutes(app fiber.Router, h *handler.InventoryHandler) {
	app.Post("/inventory/ingredients", h.CreateIngredient)
}
