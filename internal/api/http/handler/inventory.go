package handler

import (
	"errors"

	"github.com/gofiber/fiber/v3"

	"github.com/Alijeyrad/nutriguard_backend/internal/service/inventory"
)

type InventoryHandler struct {
	svc inventory.Service
}

func NewInventoryHandler(svc inventory.Service) *InventoryHandler {
	return &InventoryHandler{svc: svc}
}

// POST /inventory/ingredients
func (h *InventoryHandler) CreateIngredient(c fiber.Ctx) error {
	var req inventory.CreateIngredientRequest
	if err := c.Bind().JSON(&req); err != nil {
		return badRequest(c, "invalid request body")
	}

	ing, err := h.svc.Create(c.Context(), req)
	if err != nil {
		if errors.Is(err, inventory.ErrNameRequired) {
			return badRequest(c, err.Error())
		}
		return internalError(c, err)
	}
	return created(c, fiber.Map{"message": "Ingredient logged", "ingredient": ing})
}
