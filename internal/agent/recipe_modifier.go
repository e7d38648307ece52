package agent

import (
	"context"
	"fmt"

	"github.com/Alijeyrad/nutriguard_backend/internal/repo"
	"github.com/Alijeyrad/nutriguard_backend/pkg/llm"
	"github.com/Alijeyrad/nutriguard_backend/pkg/observability"
)

// RecipeModifier adapts a recipe to a list of dietary requirements.
type RecipeModifier struct {
	*Agent
}

func NewRecipeModifier(gen llm.Generator, opts llm.Options, metrics *observability.AgentMetrics) *RecipeModifier {
	return &RecipeModifier{newAgent("recipe_modifier", gen, recipeModifierPrompt,
		[]string{"recipe", "dietary_requirements", "ingredients_list"}, opts, metrics)}
}

// Modify returns the model's modification proposal. With no ingredients the
// model is free to pick substitutes.
func (m *RecipeModifier) Modify(ctx context.Context, recipe *repo.Recipe, requirements []string, ingredients []repo.Ingredient) (map[string]any, error) {
	return m.Invoke(ctx, recipeModifierValues(recipe, requirements, ingredients))
}

func recipeModifierValues(recipe *repo.Recipe, requirements []string, ingredients []repo.Ingredient) map[string]any {
	recipeText := fmt.Sprintf(`
Name: %s
Description: %s
Calories: %s
Current Ingredients: Not specified
`, recipe.Name, strOr(recipe.Description, "N/A"), numOr(recipe.TotalCalories, "N/A"))

	reqs := lines(requirements, func(r string) string { return "- " + r })

	available := lines(ingredients, func(i repo.Ingredient) string {
		return fmt.Sprintf("- %s: %s %s", i.Name, numOr(i.Quantity, "N/A"), strOr(i.Unit, ""))
	})

	return map[string]any{
		"recipe":               recipeText,
		"dietary_requirements": reqs,
		"ingredients_list":     orElse(available, "Use any appropriate substitutes"),
	}
}
