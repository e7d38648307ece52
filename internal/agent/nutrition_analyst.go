package agent

import (
	"context"
	"fmt"
	"strconv"

	"github.com/Alijeyrad/nutriguard_backend/internal/repo"
	"github.com/Alijeyrad/nutriguard_backend/pkg/llm"
	"github.com/Alijeyrad/nutriguard_backend/pkg/observability"
)

const (
	maxCorrelationEntries = 50
	maxPredictionHistory  = 30
)

// PlanSummary is the slice of a meal plan the prediction prompt needs.
type PlanSummary struct {
	StartDate   string
	EndDate     string
	AIGenerated bool
	Notes       string
}

// NoMealPlan stands in for patients without an assigned plan.
var NoMealPlan = PlanSummary{
	StartDate: "Not assigned",
	EndDate:   "Not assigned",
	Notes:     "No active meal plan",
}

func SummarizePlan(p *repo.MealPlan) PlanSummary {
	if p == nil {
		return NoMealPlan
	}
	return PlanSummary{
		StartDate:   p.StartDate.String(),
		EndDate:     p.EndDate.String(),
		AIGenerated: p.AIGenerated,
		Notes:       strOr(p.Notes, "None"),
	}
}

// NutritionAnalyst correlates intake with health metrics and forecasts
// outcomes. It owns two templates that share one model configuration.
type NutritionAnalyst struct {
	correlation *Agent
	prediction  *Agent
}

func NewNutritionAnalyst(gen llm.Generator, opts llm.Options, metrics *observability.AgentMetrics) *NutritionAnalyst {
	return &NutritionAnalyst{
		correlation: newAgent("nutrition_analyst.correlation", gen, correlationPrompt,
			[]string{"patient_info", "nutrition_entries", "analysis_period"}, opts, metrics),
		prediction: newAgent("nutrition_analyst.prediction", gen, predictionPrompt,
			[]string{"patient_info", "current_meal_plan", "historical_data", "time_horizon"}, opts, metrics),
	}
}

// AnalyzeCorrelation expects entries newest first and passes at most the 50
// most recent to the model.
func (n *NutritionAnalyst) AnalyzeCorrelation(ctx context.Context, patient *repo.Patient, entries []repo.NutritionEntry, days int) (map[string]any, error) {
	return n.correlation.Invoke(ctx, correlationValues(patient, entries, days))
}

// PredictOutcomes expects history newest first. The newest entry describes
// the current health status and the 30 most recent form the history.
func (n *NutritionAnalyst) PredictOutcomes(ctx context.Context, patient *repo.Patient, plan PlanSummary, history []repo.NutritionEntry, horizon int) (map[string]any, error) {
	return n.prediction.Invoke(ctx, predictionValues(patient, plan, history, horizon))
}

func correlationValues(patient *repo.Patient, entries []repo.NutritionEntry, days int) map[string]any {
	info := fmt.Sprintf(`
Name: %s
Age: %s
Medical Conditions: %s
Dietary Restrictions: %s
`, patient.Name, intOr(patient.Age, "N/A"), strOr(patient.MedicalConditions, "None"),
		strOr(patient.DietaryRestrictions, "None"))

	if len(entries) > maxCorrelationEntries {
		entries = entries[:maxCorrelationEntries]
	}
	formatted := lines(entries, func(e repo.NutritionEntry) string {
		return fmt.Sprintf("Date: %s, Meal: %s, Intake: %s%%, Blood Sugar: %s mg/dL, Notes: %s",
			e.Date, strOr(e.RecipeName, "N/A"), numOr(e.IntakePercentage, "N/A"),
			numOr(e.BloodSugar, "N/A"), strOr(e.Notes, "None"))
	})

	return map[string]any{
		"patient_info":      info,
		"nutrition_entries": orElse(formatted, "No data available"),
		"analysis_period":   days,
	}
}

func predictionValues(patient *repo.Patient, plan PlanSummary, history []repo.NutritionEntry, horizon int) map[string]any {
	status := "N/A"
	if len(history) > 0 {
		status = historyLine(history[0])
	}

	info := fmt.Sprintf(`
Name: %s
Age: %s
Medical Conditions: %s
Current Health Status: %s
`, patient.Name, intOr(patient.Age, "N/A"), strOr(patient.MedicalConditions, "None"), status)

	planText := fmt.Sprintf(`
Duration: %s to %s
AI Generated: %s
Notes: %s
`, plan.StartDate, plan.EndDate, strconv.FormatBool(plan.AIGenerated), plan.Notes)

	if len(history) > maxPredictionHistory {
		history = history[:maxPredictionHistory]
	}

	return map[string]any{
		"patient_info":      info,
		"current_meal_plan": planText,
		"historical_data":   orElse(lines(history, historyLine), "Limited historical data"),
		"time_horizon":      horizon,
	}
}
