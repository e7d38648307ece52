package mealplan

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/Alijeyrad/nutriguard_backend/internal/repo"
	"github.com/Alijeyrad/nutriguard_backend/internal/service/recipe"
	"github.com/Alijeyrad/nutriguard_backend/pkg/database"
)

// GeneratedNote is stored on plans created by the generator.
const GeneratedNote = "AI-generated meal plan based on medical conditions and dietary restrictions"

// ---------------------------------------------------------------------------
// DTOs
// ---------------------------------------------------------------------------

type CreateMealPlanRequest struct {
	PatientID   int64
	CreatedBy   *int64
	StartDate   repo.Date
	EndDate     repo.Date
	AIGenerated bool
	Notes       *string
}

type AddRecipeRequest struct {
	RecipeID    int64
	MealType    repo.MealType
	PortionSize *string
}

type UpdateMealPlanRequest struct {
	StartDate *repo.Date
	EndDate   *repo.Date
	Notes     *string
}

// MealCard is a display card for one recipe in a plan.
type MealCard struct {
	RecipeID      int64         `json:"recipe_id"`
	RecipeName    string        `json:"recipe_name"`
	MealType      repo.MealType `json:"meal_type"`
	PortionSize   *string       `json:"portion_size"`
	Description   *string       `json:"description"`
	ImageURL      string        `json:"image_url"`
	CardGenerated bool          `json:"card_generated"`
}

// ---------------------------------------------------------------------------
// Service interface
// ---------------------------------------------------------------------------

type Service interface {
	Create(ctx context.Context, req CreateMealPlanRequest) (*repo.MealPlan, error)
	// Get returns the plan with its recipes ordered Breakfast, Lunch, Dinner, Snack.
	Get(ctx context.Context, id int64) (*repo.MealPlan, error)
	Update(ctx context.Context, id int64, req UpdateMealPlanRequest) (*repo.MealPlan, error)
	Delete(ctx context.Context, id int64) (int64, error)

	AddRecipe(ctx context.Context, planID int64, req AddRecipeRequest) (*repo.MealPlanRecipe, error)
	RemoveRecipe(ctx context.Context, planID, recipeID int64) error

	// Current returns the newest plan covering today with its recipes, or
	// nil when the patient has none.
	Current(ctx context.Context, patientID int64) (*repo.MealPlan, error)
	ListActive(ctx context.Context, patientID int64) ([]repo.MealPlan, error)
	History(ctx context.Context, patientID int64, limit int) ([]repo.MealPlan, error)

	MealCards(ctx context.Context, planID int64) ([]MealCard, error)
}

// ---------------------------------------------------------------------------
// Implementation
// ---------------------------------------------------------------------------

type mealPlanService struct {
	db *database.DB
}

func New(db *database.DB) Service {
	return &mealPlanService{db: db}
}

func (s *mealPlanService) Create(ctx context.Context, req CreateMealPlanRequest) (*repo.MealPlan, error) {
	if req.EndDate.Before(req.StartDate.Time) {
		return nil, ErrInvalidDateRange
	}

	var out *repo.MealPlan
	err := s.db.Unit(ctx, func(q database.Querier) error {
		row := q.QueryRowContext(ctx, `
			INSERT INTO meal_plans (patient_id, start_date, end_date, ai_generated, notes, created_by)
			VALUES ($1, $2, $3, $4, $5, $6)
			RETURNING `+repo.MealPlanColumns,
			req.PatientID, req.StartDate, req.EndDate, req.AIGenerated, req.Notes, req.CreatedBy)

		mp, err := repo.ScanMealPlan(row)
		out = mp
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("create meal plan: %w", err)
	}
	return out, nil
}

func (s *mealPlanService) Get(ctx context.Context, id int64) (*repo.MealPlan, error) {
	var out *repo.MealPlan
	err := s.db.Unit(ctx, func(q database.Querier) error {
		var createdBy, patientName *string
		mp, err := repo.ScanMealPlan(q.QueryRowContext(ctx, `
			SELECT `+repo.Qualify("mp", repo.MealPlanColumns)+`, s.name, p.name
			FROM meal_plans mp
			LEFT JOIN staff s ON mp.created_by = s.id
			LEFT JOIN patients p ON mp.patient_id = p.id
			WHERE mp.id = $1`, id), &createdBy, &patientName)
		if errors.Is(err, sql.ErrNoRows) {
			return ErrMealPlanNotFound
		}
		if err != nil {
			return fmt.Errorf("get meal plan: %w", err)
		}
		mp.CreatedByName, mp.PatientName = createdBy, patientName

		mp.Recipes, err = planRecipes(ctx, q, id, true)
		if err != nil {
			return err
		}
		out = mp
		return nil
	})
	return out, err
}

func (s *mealPlanService) Update(ctx context.Context, id int64, req UpdateMealPlanRequest) (*repo.MealPlan, error) {
	var sets []string
	var args []any

	if req.StartDate != nil {
		args = append(args, *req.StartDate)
		sets = append(sets, fmt.Sprintf("start_date = $%d", len(args)))
	}
	if req.EndDate != nil {
		args = append(args, *req.EndDate)
		sets = append(sets, fmt.Sprintf("end_date = $%d", len(args)))
	}
	if req.Notes != nil {
		args = append(args, *req.Notes)
		sets = append(sets, fmt.Sprintf("notes = $%d", len(args)))
	}
	if len(sets) == 0 {
		return nil, ErrNoFieldsToUpdate
	}
	sets = append(sets, "updated_at = NOW()")
	args = append(args, id)

	query := fmt.Sprintf(`UPDATE meal_plans SET %s WHERE id = $%d RETURNING %s`,
		strings.Join(sets, ", "), len(args), repo.MealPlanColumns)

	var out *repo.MealPlan
	err := s.db.Unit(ctx, func(q database.Querier) error {
		mp, err := repo.ScanMealPlan(q.QueryRowContext(ctx, query, args...))
		if errors.Is(err, sql.ErrNoRows) {
			return ErrMealPlanNotFound
		}
		if err != nil {
			return fmt.Errorf("update meal plan: %w", err)
		}
		out = mp
		return nil
	})
	return out, err
}

func (s *mealPlanService) Delete(ctx context.Context, id int64) (int64, error) {
	var deleted int64
	err := s.db.Unit(ctx, func(q database.Querier) error {
		err := q.QueryRowContext(ctx, `DELETE FROM meal_plans WHERE id = $1 RETURNING id`, id).Scan(&deleted)
		if errors.Is(err, sql.ErrNoRows) {
			return ErrMealPlanNotFound
		}
		if err != nil {
			return fmt.Errorf("delete meal plan: %w", err)
		}
		return nil
	})
	return deleted, err
}

// ---------------------------------------------------------------------------
// Recipes
// ---------------------------------------------------------------------------

func (s *mealPlanService) AddRecipe(ctx context.Context, planID int64, req AddRecipeRequest) (*repo.MealPlanRecipe, error) {
	if _, err := repo.ParseMealType(string(req.MealType)); err != nil {
		return nil, err
	}

	var out *repo.MealPlanRecipe
	err := s.db.Unit(ctx, func(q database.Querier) error {
		if err := exists(ctx, q, `SELECT id FROM meal_plans WHERE id = $1`, planID, ErrMealPlanNotFound); err != nil {
			return err
		}
		if err := exists(ctx, q, `SELECT id FROM recipes WHERE id = $1`, req.RecipeID, recipe.ErrRecipeNotFound); err != nil {
			return err
		}

		r, err := repo.ScanMealPlanRecipe(q.QueryRowContext(ctx, `
			INSERT INTO meal_plan_recipes (meal_plan_id, recipe_id, meal_type, portion_size)
			VALUES ($1, $2, $3, $4)
			RETURNING `+repo.MealPlanRecipeColumns,
			planID, req.RecipeID, string(req.MealType), req.PortionSize))
		if err != nil {
			return fmt.Errorf("add recipe to meal plan: %w", err)
		}
		out = r
		return nil
	})
	return out, err
}

func (s *mealPlanService) RemoveRecipe(ctx context.Context, planID, recipeID int64) error {
	return s.db.Unit(ctx, func(q database.Querier) error {
		var id int64
		err := q.QueryRowContext(ctx, `
			DELETE FROM meal_plan_recipes
			WHERE meal_plan_id = $1 AND recipe_id = $2
			RETURNING id`, planID, recipeID).Scan(&id)
		if errors.Is(err, sql.ErrNoRows) {
			return ErrMealPlanRecipeNotFound
		}
		if err != nil {
			return fmt.Errorf("remove recipe from meal plan: %w", err)
		}
		return nil
	})
}

// ---------------------------------------------------------------------------
// Patient views
// ---------------------------------------------------------------------------

func (s *mealPlanService) Current(ctx context.Context, patientID int64) (*repo.MealPlan, error) {
	var out *repo.MealPlan
	err := s.db.Unit(ctx, func(q database.Querier) error {
		var createdBy *string
		mp, err := repo.ScanMealPlan(q.QueryRowContext(ctx, `
			SELECT `+repo.Qualify("mp", repo.MealPlanColumns)+`, s.name
			FROM meal_plans mp
			LEFT JOIN staff s ON mp.created_by = s.id
			WHERE mp.patient_id = $1
			  AND mp.start_date <= CURRENT_DATE
			  AND mp.end_date >= CURRENT_DATE
			ORDER BY mp.created_at DESC
			LIMIT 1`, patientID), &createdBy)
		if errors.Is(err, sql.ErrNoRows) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("current meal plan: %w", err)
		}
		mp.CreatedByName = createdBy

		if mp.Recipes, err = planRecipes(ctx, q, mp.ID, false); err != nil {
			return err
		}
		out = mp
		return nil
	})
	return out, err
}

func (s *mealPlanService) ListActive(ctx context.Context, patientID int64) ([]repo.MealPlan, error) {
	return s.listWithCounts(ctx, `
		WHERE mp.patient_id = $1
		  AND mp.start_date <= CURRENT_DATE
		  AND mp.end_date >= CURRENT_DATE
		GROUP BY mp.id, s.name
		ORDER BY mp.created_at DESC`, patientID)
}

func (s *mealPlanService) History(ctx context.Context, patientID int64, limit int) ([]repo.MealPlan, error) {
	return s.listWithCounts(ctx, `
		WHERE mp.patient_id = $1
		GROUP BY mp.id, s.name
		ORDER BY mp.created_at DESC
		LIMIT $2`, patientID, limit)
}

func (s *mealPlanService) listWithCounts(ctx context.Context, tail string, args ...any) ([]repo.MealPlan, error) {
	plans := []repo.MealPlan{}
	err := s.db.Unit(ctx, func(q database.Querier) error {
		rows, err := q.QueryContext(ctx, `
			SELECT `+repo.Qualify("mp", repo.MealPlanColumns)+`, s.name, COUNT(mpr.id)
			FROM meal_plans mp
			LEFT JOIN staff s ON mp.created_by = s.id
			LEFT JOIN meal_plan_recipes mpr ON mp.id = mpr.meal_plan_id
			`+tail, args...)
		if err != nil {
			return err
		}
		defer rows.Close()

		for rows.Next() {
			var createdBy *string
			var count int
			mp, err := repo.ScanMealPlan(rows, &createdBy, &count)
			if err != nil {
				return err
			}
			mp.CreatedByName, mp.RecipeCount = createdBy, &count
			plans = append(plans, *mp)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, fmt.Errorf("list meal plans: %w", err)
	}
	return plans, nil
}

func (s *mealPlanService) MealCards(ctx context.Context, planID int64) ([]MealCard, error) {
	var recipes []repo.MealPlanRecipe
	err := s.db.Unit(ctx, func(q database.Querier) error {
		var err error
		recipes, err = planRecipes(ctx, q, planID, false)
		return err
	})
	if err != nil {
		return nil, err
	}
	if len(recipes) == 0 {
		return nil, ErrNoMealCards
	}

	cards := make([]MealCard, 0, len(recipes))
	for _, r := range recipes {
		card := MealCard{
			RecipeID:      r.RecipeID,
			MealType:      r.MealType,
			PortionSize:   r.PortionSize,
			Description:   r.Description,
			ImageURL:      fmt.Sprintf("https://placeholder.com/meal-%d.jpg", r.RecipeID),
			CardGenerated: true,
		}
		if r.RecipeName != nil {
			card.RecipeName = *r.RecipeName
		}
		if r.ImageURL != nil && *r.ImageURL != "" {
			card.ImageURL = *r.ImageURL
		}
		cards = append(cards, card)
	}
	return cards, nil
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

func exists(ctx context.Context, q database.Querier, query string, id int64, notFound error) error {
	var found int64
	err := q.QueryRowContext(ctx, query, id).Scan(&found)
	if errors.Is(err, sql.ErrNoRows) {
		return notFound
	}
	return err
}

func planRecipes(ctx context.Context, q database.Querier, planID int64, ordered bool) ([]repo.MealPlanRecipe, error) {
	query := `
		SELECT ` + repo.Qualify("mpr", repo.MealPlanRecipeColumns) + `,
		       r.name, r.description, r.total_calories, r.image_url
		FROM meal_plan_recipes mpr
		JOIN recipes r ON mpr.recipe_id = r.id
		WHERE mpr.meal_plan_id = $1`
	if ordered {
		query += `
		ORDER BY CASE mpr.meal_type
			WHEN 'Breakfast' THEN 1
			WHEN 'Lunch' THEN 2
			WHEN 'Dinner' THEN 3
			WHEN 'Snack' THEN 4
		END`
	}

	rows, err := q.QueryContext(ctx, query, planID)
	if err != nil {
		return nil, fmt.Errorf("list meal plan recipes: %w", err)
	}
	defer rows.Close()

	out := []repo.MealPlanRecipe{}
	for rows.Next() {
		var name, desc, image *string
		var calories *float64
		r, err := repo.ScanMealPlanRecipe(rows, &name, &desc, &calories, &image)
		if err != nil {
			return nil, err
		}
		r.RecipeName, r.Description, r.TotalCalories, r.ImageURL = name, desc, calories, image
		out = append(out, *r)
	}
	return out, rows.Err()
}
