package advisor

import (
	"context"
	"errors"
	"fmt"

	"github.com/Alijeyrad/nutriguard_backend/internal/repo"
	"github.com/Alijeyrad/nutriguard_backend/internal/service/patient"
	"github.com/Alijeyrad/nutriguard_backend/pkg/database"
)

// Store reads the context the agents reason over. Missing rows come back as
// nil without an error.
type Store interface {
	Patient(ctx context.Context, id int64) (*repo.Patient, error)
	MealPlan(ctx context.Context, id int64) (*repo.MealPlan, error)
	LatestMealPlan(ctx context.Context, patientID int64) (*repo.MealPlan, error)

	RecentRecipes(ctx context.Context, limit int) ([]repo.Recipe, error)
	// AvailableIngredients lists unexpired stock with a positive quantity.
	AvailableIngredients(ctx context.Context, limit int) ([]repo.Ingredient, error)
	RecentIngredients(ctx context.Context, days, limit int) ([]repo.Ingredient, error)
	RecentSafetyLogs(ctx context.Context, limit int) ([]repo.SafetyLog, error)

	// History lists the newest nutrition entries, newest first.
	History(ctx context.Context, patientID int64, limit int) ([]repo.NutritionEntry, error)
	// Entries lists the last days days of entries with recipe name and calories.
	Entries(ctx context.Context, patientID int64, days int) ([]repo.NutritionEntry, error)
}

type sqlStore struct {
	db *database.DB
}

func NewStore(db *database.DB) Store {
	return &sqlStore{db: db}
}

func (s *sqlStore) Patient(ctx context.Context, id int64) (*repo.Patient, error) {
	var out *repo.Patient
	err := s.db.Unit(ctx, func(q database.Querier) error {
		p, err := patient.Fetch(ctx, q, id)
		if errors.Is(err, patient.ErrPatientNotFound) {
			return nil
		}
		out = p
		return err
	})
	return out, err
}

func (s *sqlStore) MealPlan(ctx context.Context, id int64) (*repo.MealPlan, error) {
	return s.mealPlan(ctx, `SELECT `+repo.MealPlanColumns+` FROM meal_plans WHERE id = $1`, id)
}

func (s *sqlStore) LatestMealPlan(ctx context.Context, patientID int64) (*repo.MealPlan, error) {
	return s.mealPlan(ctx, `
		SELECT `+repo.MealPlanColumns+` FROM meal_plans
		WHERE patient_id = $1
		ORDER BY created_at DESC
		LIMIT 1`, patientID)
}

func (s *sqlStore) mealPlan(ctx context.Context, query string, id int64) (*repo.MealPlan, error) {
	var out *repo.MealPlan
	err := s.db.Unit(ctx, func(q database.Querier) error {
		rows, err := q.QueryContext(ctx, query, id)
		if err != nil {
			return err
		}
		defer rows.Close()
		if rows.Next() {
			if out, err = repo.ScanMealPlan(rows); err != nil {
				return err
			}
		}
		return rows.Err()
	})
	if err != nil {
		return nil, fmt.Errorf("get meal plan: %w", err)
	}
	return out, nil
}

func (s *sqlStore) RecentRecipes(ctx context.Context, limit int) ([]repo.Recipe, error) {
	return list(ctx, s.db, repo.ScanRecipe, `
		SELECT `+repo.RecipeColumns+` FROM recipes
		ORDER BY created_at DESC
		LIMIT $1`, limit)
}

func (s *sqlStore) AvailableIngredients(ctx context.Context, limit int) ([]repo.Ingredient, error) {
	return list(ctx, s.db, repo.ScanIngredient, `
		SELECT `+repo.IngredientColumns+` FROM ingredients
		WHERE expiry_date > CURRENT_DATE
		  AND quantity > 0
		LIMIT $1`, limit)
}

func (s *sqlStore) RecentIngredients(ctx context.Context, days, limit int) ([]repo.Ingredient, error) {
	return list(ctx, s.db, repo.ScanIngredient, `
		SELECT `+repo.IngredientColumns+` FROM ingredients
		WHERE created_at >= CURRENT_DATE - make_interval(days => $1)
		ORDER BY created_at DESC
		LIMIT $2`, days, limit)
}

func (s *sqlStore) RecentSafetyLogs(ctx context.Context, limit int) ([]repo.SafetyLog, error) {
	return list(ctx, s.db, repo.ScanSafetyLog, `
		SELECT `+repo.SafetyLogColumns+` FROM safety_logs
		ORDER BY inspection_date DESC
		LIMIT $1`, limit)
}

func (s *sqlStore) History(ctx context.Context, patientID int64, limit int) ([]repo.NutritionEntry, error) {
	return list(ctx, s.db, func(sc repo.Scanner) (*repo.NutritionEntry, error) {
		return repo.ScanNutritionEntry(sc)
	}, `
		SELECT `+repo.NutritionEntryColumns+` FROM nutrition_entries
		WHERE patient_id = $1
		ORDER BY date DESC
		LIMIT $2`, patientID, limit)
}

func (s *sqlStore) Entries(ctx context.Context, patientID int64, days int) ([]repo.NutritionEntry, error) {
	return list(ctx, s.db, func(sc repo.Scanner) (*repo.NutritionEntry, error) {
		var name *string
		var calories *float64
		e, err := repo.ScanNutritionEntry(sc, &name, &calories)
		if err != nil {
			return nil, err
		}
		e.RecipeName, e.TotalCalories = name, calories
		return e, nil
	}, `
		SELECT `+repo.Qualify("ne", repo.NutritionEntryColumns)+`, r.name, r.total_calories
		FROM nutrition_entries ne
		LEFT JOIN recipes r ON ne.recipe_id = r.id
		WHERE ne.patient_id = $1
		  AND ne.date >= CURRENT_DATE - $2::int
		ORDER BY ne.date DESC`, patientID, days)
}

func list[T any](ctx context.Context, db *database.DB, scan func(repo.Scanner) (*T, error), query string, args ...any) ([]T, error) {
	out := []T{}
	err := db.Unit(ctx, func(q database.Querier) error {
		rows, err := q.QueryContext(ctx, query, args...)
		if err != nil {
			return err
		}
		defer rows.Close()

		for rows.Next() {
			v, err := scan(rows)
			if err != nil {
				return err
			}
			out = append(out, *v)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}
