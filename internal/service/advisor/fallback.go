package advisor

import (
	"fmt"

	"github.com/Alijeyrad/nutriguard_backend/internal/repo"
)

func fallbackMeal(name string, calories int, reason string) []map[string]any {
	return []map[string]any{{
		"name":       name,
		"calories":   calories,
		"reason":     reason,
		"confidence": 0.7,
	}}
}

func recommendFallback(cause error) Result {
	return fallback(cause, map[string]any{
		"plan_summary": "Unable to generate AI meal plan due to an error. Please try again or contact support.",
		"daily_nutritional_targets": map[string]any{
			"total_calories": 2000,
			"protein_grams":  100,
			"carbs_grams":    200,
			"fat_grams":      60,
		},
		"recommended_meals": map[string]any{
			"breakfast": fallbackMeal("Oatmeal with fruits", 320, "High fiber, sustained energy"),
			"lunch":     fallbackMeal("Grilled chicken salad", 450, "Lean protein, vegetables"),
			"dinner":    fallbackMeal("Baked fish with vegetables", 420, "Omega-3, low sodium"),
		},
		"special_considerations": []string{
			"This is a fallback meal plan",
			"Please consult with a dietitian for personalized recommendations",
		},
	})
}

func modifyFallback(recipe *repo.Recipe) func(error) Result {
	return func(cause error) Result {
		name := "Recipe"
		calories := 0.0
		if recipe != nil {
			name = recipe.Name
			if recipe.TotalCalories != nil {
				calories = *recipe.TotalCalories
			}
		}
		return fallback(cause, map[string]any{
			"can_modify": true,
			"modifications_made": []map[string]any{
				{
					"category":            "General Health",
					"change":              "Use fresh, whole ingredients",
					"impact":              "Better nutritional quality",
					"nutritional_benefit": "Improved overall health",
				},
				{
					"category":            "Sodium Reduction",
					"change":              "Reduce salt, add herbs",
					"impact":              "Lower sodium content",
					"nutritional_benefit": "Better for cardiovascular health",
				},
			},
			"modified_recipe": map[string]any{
				"name":           name + " (Modified)",
				"total_calories": calories * 0.85,
				"description":    "Modified version with healthier ingredients",
			},
			"health_score_improvement": map[string]any{
				"original_score":         6.5,
				"modified_score":         7.5,
				"improvement_percentage": 15,
			},
			"note": "This is a fallback modification due to AI error",
		})
	}
}

func assessFallback(cause error) Result {
	return fallback(cause, map[string]any{
		"overall_risk_level": "Unknown",
		"summary":            "Risk assessment failed due to system error",
		"risk_items":         []any{},
		"recommendations": []string{
			"Conduct manual inspection immediately",
			"Review all ingredient expiry dates",
			"Check storage temperatures",
			"Contact system administrator",
		},
		"compliance_summary": map[string]any{
			"total_items_assessed": 0,
			"note":                 "Assessment could not be completed",
		},
	})
}

func predictFallback(cause error) Result {
	return fallback(cause, map[string]any{
		"prediction_summary": "Unable to generate predictions due to system error",
		"predictions": map[string]any{
			"blood_sugar_control": map[string]any{
				"trend":      "Unable to determine",
				"confidence": "N/A",
			},
			"weight_management": map[string]any{
				"trend": "Unable to determine",
			},
		},
		"recommendations": []string{
			"Ensure patient exists in system",
			"Add meal plan for patient",
			"Log nutrition entries regularly",
			"Contact system administrator if error persists",
		},
	})
}

func optimizeFallback(cause error) Result {
	return fallback(cause, map[string]any{
		"optimizations": []map[string]any{{
			"goal":    "General health improvement",
			"changes": []string{"Use fresh, whole ingredients", "Reduce processed components"},
			"impact":  "Overall nutritional improvement",
		}},
		"health_score": map[string]any{
			"original":               6.5,
			"optimized":              7.0,
			"improvement_percentage": 8,
		},
		"note": "This is a fallback optimization due to AI error",
	})
}

func correlationFallback(cause error) Result {
	return fallback(cause, map[string]any{
		"analysis_summary":   "Unable to complete correlation analysis due to system error",
		"correlations_found": []any{},
		"trends": map[string]any{
			"note": "Analysis could not be completed",
		},
		"recommendations": []string{
			"Ensure consistent data logging",
			"Verify patient exists in system",
			"Contact system administrator if error persists",
		},
	})
}

func patientNotFound(id int64) string {
	return fmt.Sprintf("Patient with ID %d not found", id)
}
