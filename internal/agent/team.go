package agent

import (
	"context"

	"github.com/Alijeyrad/nutriguard_backend/config"
	"github.com/Alijeyrad/nutriguard_backend/internal/repo"
	"github.com/Alijeyrad/nutriguard_backend/pkg/llm"
	"github.com/Alijeyrad/nutriguard_backend/pkg/observability"
)

// OutcomePredictor exposes the analyst's forecasting on its own.
type OutcomePredictor struct {
	analyst *NutritionAnalyst
}

func NewOutcomePredictor(analyst *NutritionAnalyst) *OutcomePredictor {
	return &OutcomePredictor{analyst: analyst}
}

func (p *OutcomePredictor) Predict(ctx context.Context, patient *repo.Patient, plan PlanSummary, history []repo.NutritionEntry, horizon int) (map[string]any, error) {
	return p.analyst.PredictOutcomes(ctx, patient, plan, history, horizon)
}

// Team bundles every agent behind one generator.
type Team struct {
	DietPlanner      *DietPlanner
	RecipeModifier   *RecipeModifier
	NutritionAnalyst *NutritionAnalyst
	SafetyInspector  *SafetyInspector
	OutcomePredictor *OutcomePredictor
}

func NewTeam(gen llm.Generator, cfg config.AIConfig, metrics *observability.AgentMetrics) *Team {
	if metrics == nil {
		metrics = observability.NewAgentMetrics()
	}
	opts := func(t float64) llm.Options {
		return llm.Options{Temperature: t, Search: cfg.Search}
	}

	analyst := NewNutritionAnalyst(gen, opts(cfg.Temperatures.NutritionAnalyst), metrics)

	return &Team{
		DietPlanner:      NewDietPlanner(gen, opts(cfg.Temperatures.DietPlanner), metrics),
		RecipeModifier:   NewRecipeModifier(gen, opts(cfg.Temperatures.RecipeModifier), metrics),
		NutritionAnalyst: analyst,
		SafetyInspector:  NewSafetyInspector(gen, opts(cfg.Temperatures.SafetyInspector), metrics),
		OutcomePredictor: NewOutcomePredictor(analyst),
	}
}
