package advisor

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/Alijeyrad/nutriguard_backend/internal/agent"
	"github.com/Alijeyrad/nutriguard_backend/internal/repo"
)

// Data thresholds below which the agents are not consulted.
const (
	MinPredictionEntries  = 7
	MinCorrelationEntries = 5
)

const (
	recipeContextLimit     = 50
	ingredientContextLimit = 100
	riskWindowDays         = 30
	riskContextLimit       = 50
	historyLimit           = 90
)

// ---------------------------------------------------------------------------
// Service interface
// ---------------------------------------------------------------------------

type Service interface {
	// RecommendMeals plans days of meals; nil recipes are loaded from the store.
	RecommendMeals(ctx context.Context, patient *repo.Patient, recipes []repo.Recipe, notes string, days int) Result
	// ModifyRecipe adapts a recipe; nil ingredients are loaded from stock.
	ModifyRecipe(ctx context.Context, recipe *repo.Recipe, requirements []string, ingredients []repo.Ingredient) Result
	AssessRisks(ctx context.Context, ingredients []repo.Ingredient, areas []string, logs []repo.SafetyLog) Result
	PredictOutcomes(ctx context.Context, patientID int64, mealPlanID *int64, horizon int) Result
	OptimizeRecipe(ctx context.Context, recipe *repo.Recipe, goals []string) Result
	AnalyzeCorrelation(ctx context.Context, patientID int64, days int) Result
}

// ---------------------------------------------------------------------------
// Implementation
// ---------------------------------------------------------------------------

type advisor struct {
	store  Store
	agents Agents
	today  func() repo.Date
}

func New(store Store, agents Agents) Service {
	return &advisor{store: store, agents: agents, today: repo.Today}
}

// rescue turns a panic in op into its fallback result.
func (a *advisor) rescue(ctx context.Context, op string, res *Result, fb func(error) Result) {
	if p := recover(); p != nil {
		slog.ErrorContext(ctx, "advisor: recovered panic", "op", op, "panic", p)
		*res = fb(fmt.Errorf("%s: panic: %v", op, p))
	}
}

func (a *advisor) fail(ctx context.Context, op string, err error, fb func(error) Result) Result {
	slog.ErrorContext(ctx, "advisor: falling back", "op", op, "err", err)
	return fb(err)
}

func (a *advisor) RecommendMeals(ctx context.Context, patient *repo.Patient, recipes []repo.Recipe, notes string, days int) (res Result) {
	const op = "recommend_meals"
	defer a.rescue(ctx, op, &res, recommendFallback)

	if patient == nil {
		return insufficient("Patient data is required", map[string]any{
			"error":             "Patient data is required",
			"plan_summary":      "Cannot generate meal plan without patient information",
			"recommended_meals": map[string]any{},
		})
	}
	if days < 1 {
		days = 1
	}

	if len(recipes) == 0 {
		fetched, err := a.store.RecentRecipes(ctx, recipeContextLimit)
		if err != nil {
			slog.ErrorContext(ctx, "advisor: fetch recipes failed", "err", err)
		}
		recipes = fetched
		if len(recipes) == 0 {
			slog.WarnContext(ctx, "advisor: no recipes available", "patient_id", patient.ID)
		}
	}

	out, err := a.agents.Plan(ctx, patient, recipes, notes, days)
	if err != nil {
		return a.fail(ctx, op, err, recommendFallback)
	}
	return ok(out)
}

func (a *advisor) ModifyRecipe(ctx context.Context, recipe *repo.Recipe, requirements []string, ingredients []repo.Ingredient) (res Result) {
	const op = "modify_recipe"
	fb := modifyFallback(recipe)
	defer a.rescue(ctx, op, &res, fb)

	if recipe == nil {
		return insufficient("Recipe data is required", map[string]any{
			"error":         "Recipe data is required",
			"can_modify":    false,
			"modifications": []any{},
		})
	}
	if len(requirements) == 0 {
		return ok(map[string]any{
			"can_modify":         true,
			"modified_recipe":    recipe,
			"modifications_made": []any{},
			"message":            "No modifications needed - no requirements specified",
		})
	}

	if ingredients == nil {
		fetched, err := a.store.AvailableIngredients(ctx, ingredientContextLimit)
		if err != nil {
			slog.ErrorContext(ctx, "advisor: fetch ingredients failed", "err", err)
			fetched = []repo.Ingredient{}
		}
		ingredients = fetched
	}

	out, err := a.agents.Modify(ctx, recipe, requirements, ingredients)
	if err != nil {
		return a.fail(ctx, op, err, fb)
	}
	return ok(out)
}

func (a *advisor) AssessRisks(ctx context.Context, ingredients []repo.Ingredient, areas []string, logs []repo.SafetyLog) (res Result) {
	const op = "assess_risks"
	defer a.rescue(ctx, op, &res, assessFallback)

	if len(ingredients) == 0 && len(areas) == 0 {
		var err error
		ingredients, err = a.store.RecentIngredients(ctx, riskWindowDays, riskContextLimit)
		if err == nil {
			logs, err = a.store.RecentSafetyLogs(ctx, riskContextLimit)
		}
		if err != nil {
			slog.ErrorContext(ctx, "advisor: fetch safety data failed", "err", err)
			ingredients, logs = nil, nil
		}
	}

	if len(ingredients) == 0 && len(logs) == 0 {
		const reason = "Insufficient data for risk assessment"
		return insufficient(reason, map[string]any{
			"overall_risk_level":     "Unknown",
			"summary":                reason,
			"ingredient_assessments": []any{},
			"facility_assessments":   []any{},
			"recommendations": []string{
				"Add ingredients to inventory",
				"Log safety inspections regularly",
				"Ensure proper data collection",
			},
			"compliance_summary": map[string]any{
				"total_items_assessed": 0,
				"pass_count":           0,
				"warning_count":        0,
				"fail_count":           0,
			},
		})
	}

	out, err := a.agents.Assess(ctx, ingredients, areas, logs, a.today())
	if err != nil {
		return a.fail(ctx, op, err, assessFallback)
	}
	return ok(out)
}

func (a *advisor) PredictOutcomes(ctx context.Context, patientID int64, mealPlanID *int64, horizon int) (res Result) {
	const op = "predict_outcomes"
	defer a.rescue(ctx, op, &res, predictFallback)

	if horizon < 1 {
		horizon = 30
	}

	patient, err := a.store.Patient(ctx, patientID)
	if err != nil {
		return a.fail(ctx, op, err, predictFallback)
	}
	if patient == nil {
		return insufficient(patientNotFound(patientID), map[string]any{
			"error":              patientNotFound(patientID),
			"prediction_summary": "Cannot predict outcomes - patient not found",
			"predictions":        map[string]any{},
			"recommendations": []string{
				"Verify patient ID",
				"Ensure patient is registered in the system",
			},
			"data_status": map[string]any{
				"patient_exists":     false,
				"has_meal_plan":      false,
				"historical_entries": 0,
			},
		})
	}

	var plan *repo.MealPlan
	if mealPlanID != nil {
		plan, err = a.store.MealPlan(ctx, *mealPlanID)
	} else {
		plan, err = a.store.LatestMealPlan(ctx, patientID)
	}
	if err != nil {
		return a.fail(ctx, op, err, predictFallback)
	}

	history, err := a.store.History(ctx, patientID, historyLimit)
	if err != nil {
		return a.fail(ctx, op, err, predictFallback)
	}

	hasPlan := plan != nil
	if len(history) < MinPredictionEntries {
		const reason = "Insufficient historical data for accurate predictions"
		return insufficient(reason, map[string]any{
			"prediction_summary": reason,
			"patient_id":         patientID,
			"predictions": map[string]any{
				"data_insufficient": true,
				"message":           "Need at least 7 days of nutrition data for predictions",
			},
			"recommendations": []string{
				"Log daily nutrition intake for at least 1 week",
				"Record blood sugar measurements",
				"Assign a meal plan to the patient",
				"Return for predictions after collecting more data",
			},
			"data_status": map[string]any{
				"patient_exists":     true,
				"has_meal_plan":      hasPlan,
				"historical_entries": len(history),
				"minimum_required":   MinPredictionEntries,
			},
		})
	}

	out, err := a.agents.Predict(ctx, patient, agent.SummarizePlan(plan), history, horizon)
	if err != nil {
		return a.fail(ctx, op, err, predictFallback)
	}
	out["data_status"] = map[string]any{
		"patient_exists":     true,
		"has_meal_plan":      hasPlan,
		"historical_entries": len(history),
	}
	return ok(out)
}

// goalRequirements maps free-text health goals onto the modifier's vocabulary.
var goalRequirements = []struct {
	keywords    []string
	requirement string
}{
	{[]string{"sodium", "salt"}, "Low sodium"},
	{[]string{"fiber"}, "High fiber"},
	{[]string{"glycemic", "sugar", "diabetes"}, "Low glycemic index"},
	{[]string{"protein"}, "High protein"},
	{[]string{"fat", "heart"}, "Low saturated fat"},
	{[]string{"calorie", "weight"}, "Calorie controlled"},
}

// GoalRequirements returns the requirements implied by goals, or the goals
// themselves when no keyword matches.
func GoalRequirements(goals []string) []string {
	var out []string
	for _, goal := range goals {
		g := strings.ToLower(goal)
		for _, m := range goalRequirements {
			for _, kw := range m.keywords {
				if strings.Contains(g, kw) {
					out = append(out, m.requirement)
					break
				}
			}
		}
	}
	if len(out) == 0 {
		return goals
	}
	return out
}

func (a *advisor) OptimizeRecipe(ctx context.Context, recipe *repo.Recipe, goals []string) (res Result) {
	const op = "optimize_recipe"
	defer a.rescue(ctx, op, &res, optimizeFallback)

	if recipe == nil {
		return insufficient("Recipe data is required", map[string]any{
			"error":         "Recipe data is required",
			"optimizations": []any{},
			"health_score":  map[string]any{"original": 0, "optimized": 0},
		})
	}
	if len(goals) == 0 {
		return ok(map[string]any{
			"optimizations": []any{},
			"health_score": map[string]any{
				"original":               6.5,
				"optimized":              6.5,
				"improvement_percentage": 0,
			},
			"message": "No optimization needed - no health goals specified",
		})
	}

	out, err := a.agents.Modify(ctx, recipe, GoalRequirements(goals), []repo.Ingredient{})
	if err != nil {
		return a.fail(ctx, op, err, optimizeFallback)
	}

	if truthy(out["can_modify"]) {
		return ok(map[string]any{
			"optimizations": getOr(out, "modifications_made", any([]any{})),
			"health_score": getOr(out, "health_score_improvement", any(map[string]any{
				"original":               6.5,
				"optimized":              8.0,
				"improvement_percentage": 23,
			})),
			"optimized_recipe":       getOr(out, "modified_recipe", any(map[string]any{})),
			"suitability":            getOr(out, "dietary_compliance", any(map[string]any{})),
			"health_goals_addressed": goals,
		})
	}
	return ok(map[string]any{
		"error":         "Recipe cannot be optimized for these specific goals",
		"reason":        getOr(out, "reason", any("Incompatible requirements")),
		"optimizations": []any{},
		"health_score":  map[string]any{"original": 6.5, "optimized": 6.5},
		"alternative_suggestions": []string{
			"Consider choosing a different recipe",
			"Adjust health goals to be more achievable",
			"Consult with a dietitian",
		},
	})
}

func (a *advisor) AnalyzeCorrelation(ctx context.Context, patientID int64, days int) (res Result) {
	const op = "analyze_correlation"
	defer a.rescue(ctx, op, &res, correlationFallback)

	if days < 1 {
		days = 30
	}

	patient, err := a.store.Patient(ctx, patientID)
	if err != nil {
		return a.fail(ctx, op, err, correlationFallback)
	}
	if patient == nil {
		return insufficient(patientNotFound(patientID), map[string]any{
			"error":              patientNotFound(patientID),
			"analysis_summary":   "Cannot analyze - patient not found",
			"correlations_found": []any{},
			"recommendations":    []string{"Verify patient ID"},
		})
	}

	entries, err := a.store.Entries(ctx, patientID, days)
	if err != nil {
		return a.fail(ctx, op, err, correlationFallback)
	}
	if len(entries) < MinCorrelationEntries {
		slog.WarnContext(ctx, "advisor: insufficient correlation data", "patient_id", patientID, "entries", len(entries))
		const reason = "Insufficient data for correlation analysis"
		return insufficient(reason, map[string]any{
			"analysis_summary": reason,
			"data_quality": map[string]any{
				"entries_analyzed":  len(entries),
				"minimum_required":  MinCorrelationEntries,
				"data_completeness": "Insufficient",
			},
			"correlations_found": []any{},
			"recommendations": []string{
				"Log at least 5 days of nutrition data",
				"Include blood sugar measurements",
				"Record detailed meal intake information",
				"Return for analysis after collecting more data",
			},
		})
	}

	out, err := a.agents.Correlate(ctx, patient, entries, days)
	if err != nil {
		return a.fail(ctx, op, err, correlationFallback)
	}
	return ok(out)
}

func getOr(m map[string]any, key string, def any) any {
	if v, found := m[key]; found && v != nil {
		return v
	}
	return def
}

func truthy(v any) bool {
	switch t := v.(type) {
	case bool:
		return t
	case string:
		return strings.EqualFold(t, "true") || strings.EqualFold(t, "yes")
	case float64:
		return t != 0
	default:
		return false
	}
}
