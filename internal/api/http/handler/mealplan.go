package handler

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v3"

	"github.com/Alijeyrad/nutriguard_backend/internal/repo"
	"github.com/Alijeyrad/nutriguard_backend/internal/service/advisor"
	svcfile "github.com/Alijeyrad/nutriguard_backend/internal/service/file"
	"github.com/Alijeyrad/nutriguard_backend/internal/service/mealplan"
	"github.com/Alijeyrad/nutriguard_backend/internal/service/patient"
	"github.com/Alijeyrad/nutriguard_backend/internal/service/recipe"
)

type MealPlanHandler struct {
	svc      mealplan.Service
	patients patient.Service
	advisor  advisor.Service
	files    svcfile.Service
}

func NewMealPlanHandler(svc mealplan.Service, patients patient.Service, adv advisor.Service, files svcfile.Service) *MealPlanHandler {
	return &MealPlanHandler{svc: svc, patients: patients, advisor: adv, files: files}
}

func mapMealPlanError(c fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, mealplan.ErrMealPlanNotFound),
		errors.Is(err, mealplan.ErrMealPlanRecipeNotFound),
		errors.Is(err, mealplan.ErrNoMealCards),
		errors.Is(err, recipe.ErrRecipeNotFound),
		errors.Is(err, patient.ErrPatientNotFound):
		return notFound(c, err.Error())
	case errors.Is(err, mealplan.ErrNoFieldsToUpdate),
		errors.Is(err, mealplan.ErrInvalidDateRange),
		errors.Is(err, repo.ErrInvalidMealType):
		return badRequest(c, err.Error())
	default:
		return internalError(c, err)
	}
}

// POST /meal-plans/generate?patient_id=&days=7
func (h *MealPlanHandler) Generate(c fiber.Ctx) error {
	patientID, valid := queryID(c, "patient_id")
	if !valid {
		return badRequest(c, "patient_id is required")
	}
	days, valid := queryInt(c, "days", 7)
	if !valid || days < 1 {
		return badRequest(c, "days must be a positive integer")
	}

	p, err := h.patients.Get(c.Context(), patientID)
	if err != nil {
		return mapMealPlanError(c, err)
	}

	recs := h.advisor.RecommendMeals(c.Context(), p, nil, "", days)

	start := repo.Today()
	note := mealplan.GeneratedNote
	mp, err := h.svc.Create(c.Context(), mealplan.CreateMealPlanRequest{
		PatientID:   patientID,
		StartDate:   start,
		EndDate:     start.AddDays(days),
		AIGenerated: true,
		Notes:       &note,
	})
	if err != nil {
		return mapMealPlanError(c, err)
	}

	return ok(c, fiber.Map{
		"message":            "Meal plan generated successfully",
		"meal_plan":          mp,
		"ai_recommendations": recs.Payload(),
	})
}

// POST /meal-plans/:id/images
func (h *MealPlanHandler) MealCards(c fiber.Ctx) error {
	id, valid := paramID(c, "id")
	if !valid {
		return badRequest(c, "invalid meal plan id")
	}

	cards, err := h.svc.MealCards(c.Context(), id)
	if err != nil {
		return mapMealPlanError(c, err)
	}
	if err := h.presignCards(c.Context(), cards); err != nil {
		return mapFileError(c, err)
	}
	return ok(c, fiber.Map{
		"meal_plan_id":    id,
		"cards_generated": len(cards),
		"meal_cards":      cards,
	})
}

// presignCards replaces stored object keys with download URLs. Absolute
// URLs, such as the placeholder, are left alone.
func (h *MealPlanHandler) presignCards(ctx context.Context, cards []mealplan.MealCard) error {
	if !h.files.Enabled() {
		return nil
	}
	for i := range cards {
		key := cards[i].ImageURL
		if strings.HasPrefix(key, "http://") || strings.HasPrefix(key, "https://") {
			continue
		}
		u, err := h.files.DownloadURL(ctx, key)
		if err != nil {
			return err
		}
		cards[i].ImageURL = u
	}
	return nil
}

// GET /meal-plans/:id
func (h *MealPlanHandler) Get(c fiber.Ctx) error {
	id, valid := paramID(c, "id")
	if !valid {
		return badRequest(c, "invalid meal plan id")
	}

	mp, err := h.svc.Get(c.Context(), id)
	if err != nil {
		return mapMealPlanError(c, err)
	}
	return ok(c, mp)
}

// POST /meal-plans/:id/recipes
// Accepts a JSON body or the recipe_id, meal_type and portion_size query
// parameters.
func (h *MealPlanHandler) AddRecipe(c fiber.Ctx) error {
	id, valid := paramID(c, "id")
	if !valid {
		return badRequest(c, "invalid meal plan id")
	}

	var body struct {
		RecipeID    int64   `json:"recipe_id"`
		MealType    string  `json:"meal_type"`
		PortionSize *string `json:"portion_size"`
	}
	if len(c.Body()) > 0 {
		if err := c.Bind().JSON(&body); err != nil {
			return badRequest(c, "invalid request body")
		}
	}
	if body.RecipeID == 0 {
		body.RecipeID, _ = strconv.ParseInt(c.Query("recipe_id"), 10, 64)
	}
	if body.MealType == "" {
		body.MealType = c.Query("meal_type")
	}
	if body.PortionSize == nil {
		if ps := c.Query("portion_size"); ps != "" {
			body.PortionSize = &ps
		}
	}
	if body.RecipeID <= 0 {
		return badRequest(c, "recipe_id is required")
	}

	mealType, err := repo.ParseMealType(body.MealType)
	if err != nil {
		return mapMealPlanError(c, err)
	}

	mpr, err := h.svc.AddRecipe(c.Context(), id, mealplan.AddRecipeRequest{
		RecipeID:    body.RecipeID,
		MealType:    mealType,
		PortionSize: body.PortionSize,
	})
	if err != nil {
		return mapMealPlanError(c, err)
	}
	return created(c, fiber.Map{
		"message":          "Recipe added to meal plan successfully",
		"meal_plan_recipe": mpr,
	})
}

// DELETE /meal-plans/:id/recipes/:recipe_id
func (h *MealPlanHandler) RemoveRecipe(c fiber.Ctx) error {
	id, valid := paramID(c, "id")
	if !valid {
		return badRequest(c, "invalid meal plan id")
	}
	recipeID, valid := paramID(c, "recipe_id")
	if !valid {
		return badRequest(c, "invalid recipe id")
	}

	if err := h.svc.RemoveRecipe(c.Context(), id, recipeID); err != nil {
		return mapMealPlanError(c, err)
	}
	return ok(c, fiber.Map{"message": "Recipe removed from meal plan successfully"})
}

// PUT /meal-plans/:id
// Fields come from a JSON body or from query parameters.
func (h *MealPlanHandler) Update(c fiber.Ctx) error {
	id, valid := paramID(c, "id")
	if !valid {
		return badRequest(c, "invalid meal plan id")
	}

	var body struct {
		StartDate *string `json:"start_date"`
		EndDate   *string `json:"end_date"`
		Notes     *string `json:"notes"`
	}
	if len(c.Body()) > 0 {
		if err := c.Bind().JSON(&body); err != nil {
			return badRequest(c, "invalid request body")
		}
	}
	fromQuery := func(dst **string, name string) {
		if *dst == nil && c.Request().URI().QueryArgs().Has(name) {
			v := c.Query(name)
			*dst = &v
		}
	}
	fromQuery(&body.StartDate, "start_date")
	fromQuery(&body.EndDate, "end_date")
	fromQuery(&body.Notes, "notes")

	var req mealplan.UpdateMealPlanRequest
	for _, f := range []struct {
		raw  *string
		dst  **repo.Date
		name string
	}{
		{body.StartDate, &req.StartDate, "start_date"},
		{body.EndDate, &req.EndDate, "end_date"},
	} {
		if f.raw == nil || strings.TrimSpace(*f.raw) == "" {
			continue
		}
		d, err := repo.ParseDate(*f.raw)
		if err != nil {
			return badRequest(c, "invalid "+f.name+": expected YYYY-MM-DD")
		}
		*f.dst = &d
	}
	req.Notes = body.Notes

	mp, err := h.svc.Update(c.Context(), id, req)
	if err != nil {
		return mapMealPlanError(c, err)
	}
	return ok(c, fiber.Map{"message": "Meal plan updated successfully", "meal_plan": mp})
}

// DELETE /meal-plans/:id
func (h *MealPlanHandler) Delete(c fiber.Ctx) error {
	id, valid := paramID(c, "id")
	if !valid {
		return badRequest(c, "invalid meal plan id")
	}

	deleted, err := h.svc.Delete(c.Context(), id)
	if err != nil {
		return mapMealPlanError(c, err)
	}
	return ok(c, fiber.Map{"message": "Meal plan deleted successfully", "meal_plan_id": deleted})
}

// GET /meal-plans/patient/:id/active
func (h *MealPlanHandler) Active(c fiber.Ctx) error {
	patientID, valid := paramID(c, "id")
	if !valid {
		return badRequest(c, "invalid patient id")
	}

	plans, err := h.svc.ListActive(c.Context(), patientID)
	if err != nil {
		return mapMealPlanError(c, err)
	}
	return ok(c, fiber.Map{
		"patient_id":              patientID,
		"active_meal_plans_count": len(plans),
		"meal_plans":              plans,
	})
}

// GET /meal-plans/patient/:id/history?limit=10
func (h *MealPlanHandler) History(c fiber.Ctx) error {
	patientID, valid := paramID(c, "id")
	if !valid {
		return badRequest(c, "invalid patient id")
	}
	limit, valid := queryInt(c, "limit", 10)
	if !valid || limit < 1 {
		return badRequest(c, "limit must be a positive integer")
	}

	plans, err := h.svc.History(c.Context(), patientID, limit)
	if err != nil {
		return mapMealPlanError(c, err)
	}
	return ok(c, fiber.Map{
		"patient_id":       patientID,
		"total_meal_plans": len(plans),
		"meal_plans":       plans,
	})
}
