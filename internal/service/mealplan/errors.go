package mealplan

import "errors"

var (
	ErrMealPlanNotFound       = errors.New("Meal plan not found")
	ErrMealPlanRecipeNotFound = errors.New("Recipe not found in this meal plan")
	ErrNoFieldsToUpdate       = errors.New("No fields to update")
	ErrNoMealCards            = errors.New("Meal plan not found or contains no recipes")
	ErrInvalidDateRange       = errors.New("end_date must not be before start_date")
)
