package handler

import (
	"errors"

	"github.com/gofiber/fiber/v3"

	"github.com/Alijeyrad/nutriguard_backend/internal/repo"
	"github.com/Alijeyrad/nutriguard_backend/internal/service/alert"
)

type AlertHandler struct {
	svc alert.Service
}

func NewAlertHandler(svc alert.Service) *AlertHandler {
	return &AlertHandler{svc: svc}
}

// GET /alerts/dietary-violations?status=
func (h *AlertHandler) DietaryViolations(c fiber.Ctx) error {
	var status *repo.AlertStatus
	if raw := c.Query("status"); raw != "" {
		st, err := repo.ParseAlertStatus(raw)
		if err != nil {
			return badRequest(c, err.Error())
		}
		status = &st
	}

	alerts, err := h.svc.List(c.Context(), status)
	if err != nil {
		return internalError(c, err)
	}
	return ok(c, fiber.Map{"count": len(alerts), "alerts": alerts})
}

// POST /alerts/:id/resolve
func (h *AlertHandler) Resolve(c fiber.Ctx) error {
	id, valid := paramID(c, "id")
	if !valid {
		return badRequest(c, "invalid alert id")
	}

	a, err := h.svc.Resolve(c.Context(), id)
	if err != nil {
		if errors.Is(err, alert.ErrAlertNotFound) {
			return notFound(c, err.Error())
		}
		return internalError(c, err)
	}
	return ok(c, a)
}
