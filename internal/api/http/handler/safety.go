package handler

import (
	"errors"

	"github.com/gofiber/fiber/v3"

	"github.com/Alijeyrad/nutriguard_backend/internal/repo"
	"github.com/Alijeyrad/nutriguard_backend/internal/service/safety"
)

type SafetyHandler struct {
	svc safety.Service
}

func NewSafetyHandler(svc safety.Service) *SafetyHandler {
	return &SafetyHandler{svc: svc}
}

func mapSafetyError(c fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, safety.ErrFacilityAreaRequired),
		errors.Is(err, safety.ErrTemperatureRequired),
		errors.Is(err, safety.ErrInvalidDateRange),
		errors.Is(err, repo.ErrInvalidComplianceStatus):
		return badRequest(c, err.Error())
	default:
		return internalError(c, err)
	}
}

// POST /safety/temperature-logs
func (h *SafetyHandler) LogTemperature(c fiber.Ctx) error {
	var req safety.TemperatureLogRequest
	if err := c.Bind().JSON(&req); err != nil {
		return badRequest(c, "invalid request body")
	}

	log, err := h.svc.LogTemperature(c.Context(), req)
	if err != nil {
		return mapSafetyError(c, err)
	}
	return created(c, fiber.Map{"message": "Temperature logged", "log": log})
}

// POST /safety/inspections
func (h *SafetyHandler) LogInspection(c fiber.Ctx) error {
	var req safety.InspectionRequest
	if err := c.Bind().JSON(&req); err != nil {
		return badRequest(c, "invalid request body")
	}

	log, err := h.svc.LogInspection(c.Context(), req)
	if err != nil {
		return mapSafetyError(c, err)
	}
	return created(c, fiber.Map{"message": "Inspection logged", "inspection": log})
}

// GET /compliance/reports?start_date=&end_date=
func (h *SafetyHandler) ComplianceReport(c fiber.Ctx) error {
	start, err := queryDate(c, "start_date")
	if err != nil {
		return badRequest(c, err.Error())
	}
	end, err := queryDate(c, "end_date")
	if err != nil {
		return badRequest(c, err.Error())
	}

	report, err := h.svc.ComplianceReport(c.Context(), start, end)
	if err != nil {
		return mapSafetyError(c, err)
	}
	return ok(c, report)
}

func queryDate(c fiber.Ctx, name string) (*repo.Date, error) {
	raw := c.Query(name)
	if raw == "" {
		return nil, nil
	}
	d, err := repo.ParseDate(raw)
	if err != nil {
		return nil, err
	}
	return &d, nil
}
