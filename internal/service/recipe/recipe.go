package recipe

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/Alijeyrad/nutriguard_backend/internal/repo"
	"github.com/Alijeyrad/nutriguard_backend/pkg/database"
)

type CreateRecipeRequest struct {
	Name          string   `json:"name"`
	Description   *string  `json:"description"`
	ImageURL      *string  `json:"image_url"`
	TotalCalories *float64 `json:"total_calories"`
	CreatedBy     *int64   `json:"created_by"`
}

type SearchRequest struct {
	Keyword     string
	MaxCalories *float64
}

type Service interface {
	Create(ctx context.Context, req CreateRecipeRequest) (*repo.Recipe, error)
	Get(ctx context.Context, id int64) (*repo.Recipe, error)
	// Search matches keyword against name or description, case-insensitively,
	// and orders by name.
	Search(ctx context.Context, req SearchRequest) ([]repo.Recipe, error)
	SetImage(ctx context.Context, id int64, url string) (*repo.Recipe, error)
}

type recipeService struct {
	db *database.DB
}

func New(db *database.DB) Service {
	return &recipeService{db: db}
}

func (s *recipeService) Create(ctx context.Context, req CreateRecipeRequest) (*repo.Recipe, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, ErrNameRequired
	}

	var out *repo.Recipe
	err := s.db.Unit(ctx, func(q database.Querier) error {
		row := q.QueryRowContext(ctx, `
			INSERT INTO recipes (name, description, image_url, total_calories, created_by)
			VALUES ($1, $2, $3, $4, $5)
			RETURNING `+repo.RecipeColumns,
			req.Name, req.Description, req.ImageURL, req.TotalCalories, req.CreatedBy)

		r, err := repo.ScanRecipe(row)
		out = r
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("create recipe: %w", err)
	}
	return out, nil
}

func (s *recipeService) Get(ctx context.Context, id int64) (*repo.Recipe, error) {
	var out *repo.Recipe
	err := s.db.Unit(ctx, func(q database.Querier) error {
		r, err := Fetch(ctx, q, id)
		out = r
		return err
	})
	return out, err
}

// Fetch loads one recipe inside an existing unit of work.
func Fetch(ctx context.Context, q database.Querier, id int64) (*repo.Recipe, error) {
	r, err := repo.ScanRecipe(q.QueryRowContext(ctx,
		`SELECT `+repo.RecipeColumns+` FROM recipes WHERE id = $1`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrRecipeNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get recipe: %w", err)
	}
	return r, nil
}

func (s *recipeService) Search(ctx context.Context, req SearchRequest) ([]repo.Recipe, error) {
	query := `SELECT ` + repo.RecipeColumns + ` FROM recipes WHERE 1=1`
	var args []any

	if req.Keyword != "" {
		args = append(args, "%"+req.Keyword+"%")
		query += fmt.Sprintf(" AND (name ILIKE $%d OR description ILIKE $%d)", len(args), len(args))
	}
	if req.MaxCalories != nil {
		args = append(args, *req.MaxCalories)
		query += fmt.Sprintf(" AND total_calories <= $%d", len(args))
	}
	query += " ORDER BY name"

	recipes := []repo.Recipe{}
	err := s.db.Unit(ctx, func(q database.Querier) error {
		rows, err := q.QueryContext(ctx, query, args...)
		if err != nil {
			return err
		}
		defer rows.Close()

		for rows.Next() {
			r, err := repo.ScanRecipe(rows)
			if err != nil {
				return err
			}
			recipes = append(recipes, *r)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, fmt.Errorf("search recipes: %w", err)
	}
	return recipes, nil
}

func (s *recipeService) SetImage(ctx context.Context, id int64, url string) (*repo.Recipe, error) {
	var out *repo.Recipe
	err := s.db.Unit(ctx, func(q database.Querier) error {
		r, err := repo.ScanRecipe(q.QueryRowContext(ctx, `
			UPDATE recipes SET image_url = $1, updated_at = NOW()
			WHERE id = $2
			RETURNING `+repo.RecipeColumns, url, id))
		if errors.Is(err, sql.ErrNoRows) {
			return ErrRecipeNotFound
		}
		if err != nil {
			return fmt.Errorf("set recipe image: %w", err)
		}
		out = r
		return nil
	})
	return out, err
}
