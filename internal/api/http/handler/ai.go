package handler

import (
	"maps"

	"github.com/gofiber/fiber/v3"

	"github.com/Alijeyrad/nutriguard_backend/internal/service/advisor"
	"github.com/Alijeyrad/nutriguard_backend/internal/service/inventory"
	"github.com/Alijeyrad/nutriguard_backend/internal/service/patient"
	"github.com/Alijeyrad/nutriguard_backend/internal/service/recipe"
)

const predictionConfidence = 0.87

var personalizationFactors = []string{
	"Optimized for blood sugar control",
	"Low sodium for hypertension management",
	"High fiber for digestive health",
}

type AIHandler struct {
	advisor   advisor.Service
	patients  patient.Service
	recipes   recipe.Service
	inventory inventory.Service
}

func NewAIHandler(adv advisor.Service, patients patient.Service, recipes recipe.Service, inv inventory.Service) *AIHandler {
	return &AIHandler{advisor: adv, patients: patients, recipes: recipes, inventory: inv}
}

// POST /ai/recommend-meals
func (h *AIHandler) RecommendMeals(c fiber.Ctx) error {
	var body struct {
		PatientID      int64  `json:"patient_id"`
		DietitianNotes string `json:"dietitian_notes"`
		Days           int    `json:"days"`
	}
	if err := c.Bind().JSON(&body); err != nil {
		return badRequest(c, "invalid request body")
	}
	if body.Days <= 0 {
		body.Days = 1
	}

	p, err := h.patients.Get(c.Context(), body.PatientID)
	if err != nil {
		return mapPatientError(c, err)
	}

	res := h.advisor.RecommendMeals(c.Context(), p, nil, body.DietitianNotes, body.Days)

	out := fiber.Map{
		"patient_id": body.PatientID,
		"patient_profile": fiber.Map{
			"name":                 p.Name,
			"medical_conditions":   p.MedicalConditions,
			"dietary_restrictions": p.DietaryRestrictions,
		},
	}
	maps.Copy(out, res.Payload())
	out["personalization_factors"] = personalizationFactors
	return ok(c, out)
}

// POST /ai/assess-risks
// With ingredient_ids the rule-based grading is returned alongside the
// model's assessment; otherwise only the model's assessment.
func (h *AIHandler) AssessRisks(c fiber.Ctx) error {
	var body struct {
		IngredientIDs []int64  `json:"ingredient_ids"`
		FacilityAreas []string `json:"facility_areas"`
	}
	if err := c.Bind().JSON(&body); err != nil {
		return badRequest(c, "invalid request body")
	}

	if len(body.IngredientIDs) == 0 {
		return ok(c, h.advisor.AssessRisks(c.Context(), nil, body.FacilityAreas, nil).Payload())
	}

	report, err := h.inventory.AssessRisks(c.Context(), body.IngredientIDs)
	if err != nil {
		return internalError(c, err)
	}
	ingredients, err := h.inventory.ListByIDs(c.Context(), body.IngredientIDs)
	if err != nil {
		return internalError(c, err)
	}

	res := h.advisor.AssessRisks(c.Context(), ingredients, body.FacilityAreas, nil)
	return ok(c, fiber.Map{
		"overall_risk_level": report.OverallRiskLevel,
		"summary":            report.Summary,
		"risk_items":         report.RiskItems,
		"ai_assessment":      res.Payload(),
	})
}

// POST /ai/predict-outcomes
func (h *AIHandler) PredictOutcomes(c fiber.Ctx) error {
	var body struct {
		PatientID       int64  `json:"patient_id"`
		MealPlanID      *int64 `json:"meal_plan_id"`
		TimeHorizonDays int    `json:"time_horizon_days"`
	}
	if err := c.Bind().JSON(&body); err != nil {
		return badRequest(c, "invalid request body")
	}
	if body.TimeHorizonDays <= 0 {
		body.TimeHorizonDays = 30
	}

	if _, err := h.patients.Get(c.Context(), body.PatientID); err != nil {
		return mapPatientError(c, err)
	}

	res := h.advisor.PredictOutcomes(c.Context(), body.PatientID, body.MealPlanID, body.TimeHorizonDays)

	out := fiber.Map{
		"patient_id":              body.PatientID,
		"prediction_horizon_days": body.TimeHorizonDays,
		"model_confidence":        predictionConfidence,
	}
	maps.Copy(out, res.Payload())
	return ok(c, out)
}

// POST /ai/optimize-recipe
func (h *AIHandler) OptimizeRecipe(c fiber.Ctx) error {
	var body struct {
		RecipeID    int64    `json:"recipe_id"`
		HealthGoals []string `json:"health_goals"`
	}
	if err := c.Bind().JSON(&body); err != nil {
		return badRequest(c, "invalid request body")
	}
	if body.HealthGoals == nil {
		body.HealthGoals = []string{}
	}

	r, err := h.recipes.Get(c.Context(), body.RecipeID)
	if err != nil {
		return mapRecipeError(c, err)
	}

	res := h.advisor.OptimizeRecipe(c.Context(), r, body.HealthGoals)

	out := fiber.Map{
		"recipe_id": body.RecipeID,
		"original_recipe": fiber.Map{
			"name":        r.Name,
			"calories":    r.TotalCalories,
			"description": r.Description,
		},
		"health_goals": body.HealthGoals,
	}
	maps.Copy(out, res.Payload())
	return ok(c, out)
}
