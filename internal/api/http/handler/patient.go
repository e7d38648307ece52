package handler

import (
	"errors"

	"github.com/gofiber/fiber/v3"

	svcfile "github.com/Alijeyrad/nutriguard_backend/internal/service/file"
	"github.com/Alijeyrad/nutriguard_backend/internal/service/mealplan"
	"github.com/Alijeyrad/nutriguard_backend/internal/service/patient"
)

type PatientHandler struct {
	svc       patient.Service
	mealPlans mealplan.Service
	files     svcfile.Service
}

func NewPatientHandler(svc patient.Service, mealPlans mealplan.Service, files svcfile.Service) *PatientHandler {
	return &PatientHandler{svc: svc, mealPlans: mealPlans, files: files}
}

func mapPatientError(c fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, patient.ErrPatientNotFound):
		return notFound(c, err.Error())
	case errors.Is(err, patient.ErrNameRequired):
		return badRequest(c, err.Error())
	default:
		return internalError(c, err)
	}
}

// POST /patients
func (h *PatientHandler) Create(c fiber.Ctx) error {
	var req patient.CreatePatientRequest
	if err := c.Bind().JSON(&req); err != nil {
		return badRequest(c, "invalid request body")
	}

	p, err := h.svc.Create(c.Context(), req)
	if err != nil {
		return mapPatientError(c, err)
	}
	return created(c, fiber.Map{"message": "Patient registered successfully", "patient": p})
}

// GET /patients/:id
func (h *PatientHandler) Get(c fiber.Ctx) error {
	id, valid := paramID(c, "id")
	if !valid {
		return badRequest(c, "invalid patient id")
	}

	p, err := h.svc.Get(c.Context(), id)
	if err != nil {
		return mapPatientError(c, err)
	}
	return ok(c, p)
}

// POST /patients/:id/dietary-restrictions
func (h *PatientHandler) UpdateDietaryRestrictions(c fiber.Ctx) error {
	id, valid := paramID(c, "id")
	if !valid {
		return badRequest(c, "invalid patient id")
	}

	var body struct {
		DietaryRestrictions string `json:"dietary_restrictions"`
	}
	if err := c.Bind().JSON(&body); err != nil {
		return badRequest(c, "invalid request body")
	}

	p, err := h.svc.UpdateDietaryRestrictions(c.Context(), id, body.DietaryRestrictions)
	if err != nil {
		return mapPatientError(c, err)
	}
	return ok(c, fiber.Map{"message": "Dietary restrictions updated", "patient": p})
}

// GET /patients/:id/nutrition-history?days=30
func (h *PatientHandler) NutritionHistory(c fiber.Ctx) error {
	id, valid := paramID(c, "id")
	if !valid {
		return badRequest(c, "invalid patient id")
	}
	days, valid := queryInt(c, "days", 30)
	if !valid {
		return badRequest(c, "invalid days")
	}

	entries, err := h.svc.NutritionHistory(c.Context(), id, days)
	if err != nil {
		return mapPatientError(c, err)
	}
	return ok(c, fiber.Map{"patient_id": id, "days": days, "entries": entries})
}

// GET /patients/:id/meal-plan
func (h *PatientHandler) CurrentMealPlan(c fiber.Ctx) error {
	id, valid := paramID(c, "id")
	if !valid {
		return badRequest(c, "invalid patient id")
	}

	mp, err := h.mealPlans.Current(c.Context(), id)
	if err != nil {
		return internalError(c, err)
	}
	if mp == nil {
		return ok(c, fiber.Map{"message": "No active meal plan found", "meal_plan": nil})
	}
	return ok(c, mp)
}

// POST /patients/:id/photo
// Multipart upload; stores the object key as photo_url.
func (h *PatientHandler) UploadPhoto(c fiber.Ctx) error {
	id, valid := paramID(c, "id")
	if !valid {
		return badRequest(c, "invalid patient id")
	}
	if !h.files.Enabled() {
		return unavailable(c, svcfile.ErrStorageDisabled.Error())
	}

	fh, err := c.FormFile("file")
	if err != nil {
		return badRequest(c, "file field is required")
	}

	// Reject unknown patients before paying for the upload.
	if _, err := h.svc.Get(c.Context(), id); err != nil {
		return mapPatientError(c, err)
	}

	uploaded, err := h.files.Upload(c.Context(), svcfile.EntityPatients, fh)
	if err != nil {
		return mapFileError(c, err)
	}

	p, err := h.svc.SetPhoto(c.Context(), id, uploaded.Key)
	if err != nil {
		return mapPatientError(c, err)
	}
	return ok(c, fiber.Map{"patient": p, "photo": uploaded})
}
