package advisor

import (
	"context"

	"github.com/Alijeyrad/nutriguard_backend/internal/agent"
	"github.com/Alijeyrad/nutriguard_backend/internal/repo"
)

// Agents is the model-backed half of the advisor.
type Agents interface {
	Plan(ctx context.Context, patient *repo.Patient, recipes []repo.Recipe, notes string, days int) (map[string]any, error)
	Modify(ctx context.Context, recipe *repo.Recipe, requirements []string, ingredients []repo.Ingredient) (map[string]any, error)
	Assess(ctx context.Context, ingredients []repo.Ingredient, areas []string, logs []repo.SafetyLog, today repo.Date) (map[string]any, error)
	Predict(ctx context.Context, patient *repo.Patient, plan agent.PlanSummary, history []repo.NutritionEntry, horizon int) (map[string]any, error)
	Correlate(ctx context.Context, patient *repo.Patient, entries []repo.NutritionEntry, days int) (map[string]any, error)
}

type teamAgents struct {
	team *agent.Team
}

// FromTeam adapts an agent.Team to Agents.
func FromTeam(t *agent.Team) Agents {
	return teamAgents{team: t}
}

func (t teamAgents) Plan(ctx context.Context, p *repo.Patient, recipes []repo.Recipe, notes string, days int) (map[string]any, error) {
	return t.team.DietPlanner.Plan(ctx, p, recipes, notes, days)
}

func (t teamAgents) Modify(ctx context.Context, r *repo.Recipe, requirements []string, ingredients []repo.Ingredient) (map[string]any, error) {
	return t.team.RecipeModifier.Modify(ctx, r, requirements, ingredients)
}

func (t teamAgents) Assess(ctx context.Context, ingredients []repo.Ingredient, areas []string, logs []repo.SafetyLog, today repo.Date) (map[string]any, error) {
	return t.team.SafetyInspector.Assess(ctx, ingredients, areas, logs, today)
}

func (t teamAgents) Predict(ctx context.Context, p *repo.Patient, plan agent.PlanSummary, history []repo.NutritionEntry, horizon int) (map[string]any, error) {
	return t.team.OutcomePredictor.Predict(ctx, p, plan, history, horizon)
}

func (t teamAgents) Correlate(ctx context.Context, p *repo.Patient, entries []repo.NutritionEntry, days int) (map[string]any, error) {
	return t.team.NutritionAnalyst.AnalyzeCorrelation(ctx, p, entries, days)
}
