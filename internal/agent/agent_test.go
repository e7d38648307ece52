package agent

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Alijeyrad/nutriguard_backend/config"
	"github.com/Alijeyrad/nutriguard_backend/internal/repo"
	"github.com/Alijeyrad/nutriguard_backend/pkg/llm"
	"github.com/Alijeyrad/nutriguard_backend/pkg/observability"
)

type fakeGenerator struct {
	reply   string
	err     error
	prompts []string
	opts    []llm.Options
}

func (f *fakeGenerator) Generate(_ context.Context, prompt string, opts llm.Options) (string, error) {
	f.prompts = append(f.prompts, prompt)
	f.opts = append(f.opts, opts)
	return f.reply, f.err
}

func ptr[T any](v T) *T { return &v }

func testPatient() *repo.Patient {
	return &repo.Patient{
		ID:                1,
		Name:              "Asha",
		Age:               ptr(62),
		MedicalConditions: ptr("Type 2 diabetes"),
	}
}

func TestDietPlanner_PromptShape(t *testing.T) {
	recipes := []repo.Recipe{{ID: 4, Name: "Dal", TotalCalories: ptr(250.0)}}

	t.Run("multi day", func(t *testing.T) {
		gen := &fakeGenerator{reply: `{"plan_summary":"ok"}`}
		planner := NewDietPlanner(gen, llm.Options{Temperature: 0.2, Search: true}, observability.NewAgentMetrics())

		out, err := planner.Plan(context.Background(), testPatient(), recipes, "", 3)
		require.NoError(t, err)
		assert.Equal(t, "ok", out["plan_summary"])

		require.Len(t, gen.prompts, 1)
		prompt := gen.prompts[0]
		assert.Contains(t, prompt, "personalized 3-day meal plan")
		assert.Contains(t, prompt, `"meal_plans": [`)
		assert.NotContains(t, prompt, "Dietitian's Notes")
		assert.Contains(t, prompt, "ID: 4, Name: Dal, Calories: 250, Description: N/A")
		assert.Contains(t, prompt, "Gender: N/A")
		assert.Contains(t, prompt, "Dietary Restrictions: None specified")
		assert.Equal(t, llm.Options{Temperature: 0.2, Search: true}, gen.opts[0])
	})

	t.Run("single day with notes", func(t *testing.T) {
		gen := &fakeGenerator{reply: `{}`}
		planner := NewDietPlanner(gen, llm.Options{}, nil)

		_, err := planner.Plan(context.Background(), testPatient(), nil, "Low sodium please", 1)
		require.NoError(t, err)

		prompt := gen.prompts[0]
		assert.Contains(t, prompt, "personalized daily meal plan")
		assert.Contains(t, prompt, `"meals": {`)
		assert.NotContains(t, prompt, "meal_plans")
		assert.Contains(t, prompt, "### Dietitian's Notes:\nLow sodium please")
		assert.Contains(t, prompt, "No recipes available")
	})
}

func TestAgent_InvokeErrors(t *testing.T) {
	t.Run("generator error is wrapped", func(t *testing.T) {
		gen := &fakeGenerator{err: llm.ErrNotConfigured}
		modifier := NewRecipeModifier(gen, llm.Options{}, nil)

		_, err := modifier.Modify(context.Background(), &repo.Recipe{Name: "Dal"}, []string{"Low sodium"}, nil)
		assert.True(t, errors.Is(err, llm.ErrNotConfigured))
	})

	t.Run("unparseable reply", func(t *testing.T) {
		gen := &fakeGenerator{reply: "I cannot help with that."}
		modifier := NewRecipeModifier(gen, llm.Options{}, nil)

		_, err := modifier.Modify(context.Background(), &repo.Recipe{Name: "Dal"}, []string{"Low sodium"}, nil)
		var pe *ParseError
		require.True(t, errors.As(err, &pe))
		assert.Equal(t, "I cannot help with that.", pe.Sample)
	})
}

func TestRecipeModifierValues(t *testing.T) {
	recipe := &repo.Recipe{Name: "Dal", Description: ptr("Lentil stew"), TotalCalories: ptr(250.0)}

	values := recipeModifierValues(recipe, []string{"Low sodium", "High fiber"}, nil)
	assert.Equal(t, "- Low sodium\n- High fiber", values["dietary_requirements"])
	assert.Equal(t, "Use any appropriate substitutes", values["ingredients_list"])
	assert.Contains(t, values["recipe"], "Calories: 250")
	assert.Contains(t, values["recipe"], "Current Ingredients: Not specified")

	values = recipeModifierValues(recipe, nil, []repo.Ingredient{{Name: "Spinach", Quantity: ptr(2.5), Unit: ptr("kg")}})
	assert.Equal(t, "- Spinach: 2.5 kg", values["ingredients_list"])
}

func TestNutritionAnalystValues(t *testing.T) {
	history := []repo.NutritionEntry{
		{Date: repo.NewDate(2025, 3, 10), BloodSugar: ptr(140.0), IntakePercentage: ptr(80.0)},
		{Date: repo.NewDate(2025, 3, 9), BloodSugar: ptr(150.0), IntakePercentage: ptr(60.0)},
	}

	t.Run("prediction uses newest entry as status", func(t *testing.T) {
		values := predictionValues(testPatient(), NoMealPlan, history, 30)
		assert.Contains(t, values["patient_info"], "Current Health Status: Date: 2025-03-10, Blood Sugar: 140, Intake: 80%")
		assert.Contains(t, values["current_meal_plan"], "Duration: Not assigned to Not assigned")
		assert.Contains(t, values["current_meal_plan"], "Notes: No active meal plan")
		assert.Equal(t, 30, values["time_horizon"])
	})

	t.Run("prediction without history", func(t *testing.T) {
		values := predictionValues(testPatient(), NoMealPlan, nil, 14)
		assert.Equal(t, "Limited historical data", values["historical_data"])
		assert.Contains(t, values["patient_info"], "Current Health Status: N/A")
	})

	t.Run("correlation caps entries", func(t *testing.T) {
		many := make([]repo.NutritionEntry, 70)
		for i := range many {
			many[i] = repo.NutritionEntry{Date: repo.NewDate(2025, 1, 1).AddDays(-i)}
		}
		values := correlationValues(testPatient(), many, 30)
		assert.Equal(t, maxCorrelationEntries, strings.Count(values["nutrition_entries"].(string), "Date: "))

		values = correlationValues(testPatient(), nil, 30)
		assert.Equal(t, "No data available", values["nutrition_entries"])
	})

	t.Run("summarize plan", func(t *testing.T) {
		plan := &repo.MealPlan{StartDate: repo.NewDate(2025, 3, 1), EndDate: repo.NewDate(2025, 3, 8), AIGenerated: true}
		s := SummarizePlan(plan)
		assert.Equal(t, "2025-03-01", s.StartDate)
		assert.True(t, s.AIGenerated)
		assert.Equal(t, NoMealPlan, SummarizePlan(nil))
	})
}

func TestSafetyValues(t *testing.T) {
	values := safetyValues(nil, nil, nil, repo.NewDate(2025, 3, 10))
	assert.Equal(t, "2025-03-10", values["current_date"])
	assert.Equal(t, "No specific ingredients to assess", values["ingredients_data"])
	assert.Equal(t, "Standard facility areas", values["facility_data"])
	assert.Equal(t, "No recent safety logs available", values["recent_logs"])

	ingredients := []repo.Ingredient{{
		ID: 7, Name: "Salmon", StorageTemp: ptr(7.0), Quantity: ptr(3.0), Unit: ptr("kg"),
		ExpiryDate: ptr(repo.NewDate(2025, 3, 12)),
	}}
	values = safetyValues(ingredients, []string{"Main Kitchen", "Cold Room"}, nil, repo.NewDate(2025, 3, 10))
	assert.Equal(t,
		"ID: 7, Name: Salmon, Expiry: 2025-03-12, Storage Temp: 7°C, Quantity: 3 kg, Last Inspection: N/A",
		values["ingredients_data"])
	assert.Equal(t, "Main Kitchen\nCold Room", values["facility_data"])
}

func TestNewTeam_Temperatures(t *testing.T) {
	gen := &fakeGenerator{reply: `{"ok":true}`}
	cfg := config.AIConfig{
		Search: true,
		Temperatures: config.AITemperatureConf{
			DietPlanner: 0.2, RecipeModifier: 0.1, NutritionAnalyst: 0.1, SafetyInspector: 0.05,
		},
	}
	team := NewTeam(gen, cfg, nil)
	ctx := context.Background()

	_, err := team.SafetyInspector.Assess(ctx, nil, nil, nil, repo.Today())
	require.NoError(t, err)
	_, err = team.OutcomePredictor.Predict(ctx, testPatient(), NoMealPlan, nil, 30)
	require.NoError(t, err)

	require.Len(t, gen.opts, 2)
	assert.Equal(t, llm.Options{Temperature: 0.05, Search: true}, gen.opts[0])
	assert.Equal(t, llm.Options{Temperature: 0.1, Search: true}, gen.opts[1])
	assert.Contains(t, gen.prompts[1], "### Prediction Timeframe:\n30 days")
}
