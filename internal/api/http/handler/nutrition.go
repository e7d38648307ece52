package handler

import (
	"errors"
	"maps"

	"github.com/gofiber/fiber/v3"

	"github.com/Alijeyrad/nutriguard_backend/internal/service/advisor"
	"github.com/Alijeyrad/nutriguard_backend/internal/service/nutrition"
)

type NutritionHandler struct {
	svc     nutrition.Service
	advisor advisor.Service
}

func NewNutritionHandler(svc nutrition.Service, adv advisor.Service) *NutritionHandler {
	return &NutritionHandler{svc: svc, advisor: adv}
}

// POST /nutrition/intake
func (h *NutritionHandler) LogIntake(c fiber.Ctx) error {
	var req nutrition.LogIntakeRequest
	if err := c.Bind().JSON(&req); err != nil {
		return badRequest(c, "invalid request body")
	}

	entry, err := h.svc.LogIntake(c.Context(), req)
	if err != nil {
		if errors.Is(err, nutrition.ErrPatientRequired) {
			return badRequest(c, err.Error())
		}
		return internalError(c, err)
	}
	return created(c, fiber.Map{"message": "Intake logged", "entry": entry})
}

// GET /nutrition/analytics/:patient_id?days=30
func (h *NutritionHandler) Analytics(c fiber.Ctx) error {
	patientID, valid := paramID(c, "patient_id")
	if !valid {
		return badRequest(c, "invalid patient id")
	}
	days, valid := queryInt(c, "days", 30)
	if !valid || days < 1 {
		return badRequest(c, "days must be a positive integer")
	}

	a, err := h.svc.Analytics(c.Context(), patientID, days)
	if err != nil {
		return internalError(c, err)
	}
	if a == nil {
		return ok(c, fiber.Map{"patient_id": patientID, "message": "No nutrition data available"})
	}
	return ok(c, fiber.Map{
		"patient_id":           patientID,
		"analysis_period_days": days,
		"insights":             a.Insights,
		"recent_entries":       a.RecentEntries,
	})
}

// POST /nutrition/analyze-correlation?patient_id=&days=30
func (h *NutritionHandler) AnalyzeCorrelation(c fiber.Ctx) error {
	patientID, valid := queryID(c, "patient_id")
	if !valid {
		return badRequest(c, "patient_id is required")
	}
	days, valid := queryInt(c, "days", 30)
	if !valid || days < 1 {
		return badRequest(c, "days must be a positive integer")
	}

	res := h.advisor.AnalyzeCorrelation(c.Context(), patientID, days)

	out := fiber.Map{"patient_id": patientID, "analysis_period_days": days}
	maps.Copy(out, res.Payload())
	return ok(c, out)
}
