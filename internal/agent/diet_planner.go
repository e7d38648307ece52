package agent

import (
	"context"
	"fmt"

	"github.com/Alijeyrad/nutriguard_backend/internal/repo"
	"github.com/Alijeyrad/nutriguard_backend/pkg/llm"
	"github.com/Alijeyrad/nutriguard_backend/pkg/observability"
)

// DietPlanner drafts daily or multi-day meal plans from a patient profile
// and the recipe catalog.
type DietPlanner struct {
	*Agent
}

func NewDietPlanner(gen llm.Generator, opts llm.Options, metrics *observability.AgentMetrics) *DietPlanner {
	return &DietPlanner{newAgent("diet_planner", gen, dietPlannerPrompt,
		[]string{"patient_info", "recipes_list", "dietitian_notes", "days"}, opts, metrics)}
}

// Plan asks for a meal plan covering days days. Plans longer than one day
// come back as a meal_plans list, single days as a meals object.
func (d *DietPlanner) Plan(ctx context.Context, patient *repo.Patient, recipes []repo.Recipe, notes string, days int) (map[string]any, error) {
	return d.Invoke(ctx, dietPlannerValues(patient, recipes, notes, days))
}

func dietPlannerValues(patient *repo.Patient, recipes []repo.Recipe, notes string, days int) map[string]any {
	if days < 1 {
		days = 1
	}

	recipeList := lines(recipes, func(r repo.Recipe) string {
		return fmt.Sprintf("ID: %d, Name: %s, Calories: %s, Description: %s",
			r.ID, r.Name, numOr(r.TotalCalories, "N/A"), strOr(r.Description, "N/A"))
	})

	return map[string]any{
		"patient_info":    dietPatientInfo(patient),
		"recipes_list":    orElse(recipeList, "No recipes available"),
		"dietitian_notes": notes,
		"days":            days,
	}
}

func dietPatientInfo(p *repo.Patient) string {
	name := "Unknown"
	if p.Name != "" {
		name = p.Name
	}
	return fmt.Sprintf(`
Name: %s
Age: %s
Gender: %s
Medical Conditions: %s
Dietary Restrictions: %s
`, name, intOr(p.Age, "N/A"), strOr(p.Gender, "N/A"),
		strOr(p.MedicalConditions, "None specified"), strOr(p.DietaryRestrictions, "None specified"))
}
