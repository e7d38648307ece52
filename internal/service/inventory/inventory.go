package inventory

import (
	"context"
	"fmt"
	"strings"

	"github.com/lib/pq"

	"github.com/Alijeyrad/nutriguard_backend/internal/repo"
	"github.com/Alijeyrad/nutriguard_backend/pkg/database"
)

type CreateIngredientRequest struct {
	Name               string     `json:"name"`
	NutritionalInfo    repo.JSON  `json:"nutritional_info"`
	Supplier           *string    `json:"supplier"`
	Quantity           *float64   `json:"quantity"`
	Unit               *string    `json:"unit"`
	ExpiryDate         *repo.Date `json:"expiry_date"`
	LastInspectionDate *repo.Date `json:"last_inspection_date"`
	StorageTemp        *float64   `json:"storage_temp"`
}

type Service interface {
	// Create logs an ingredient delivery.
	Create(ctx context.Context, req CreateIngredientRequest) (*repo.Ingredient, error)
	ListByIDs(ctx context.Context, ids []int64) ([]repo.Ingredient, error)
	// AssessRisks grades the given ingredients with the rule-based ladder.
	AssessRisks(ctx context.Context, ids []int64) (*RiskReport, error)
}

type inventoryService struct {
	db *database.DB
}

func New(db *database.DB) Service {
	return &inventoryService{db: db}
}

func (s *inventoryService) Create(ctx context.Context, req CreateIngredientRequest) (*repo.Ingredient, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, ErrNameRequired
	}

	var out *repo.Ingredient
	err := s.db.Unit(ctx, func(q database.Querier) error {
		row := q.QueryRowContext(ctx, `
			INSERT INTO ingredients (name, nutritional_info, supplier, quantity, unit,
			                         expiry_date, last_inspection_date, storage_temp)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			RETURNING `+repo.IngredientColumns,
			req.Name, req.NutritionalInfo, req.Supplier, req.Quantity, req.Unit,
			req.ExpiryDate, req.LastInspectionDate, req.StorageTemp)

		i, err := repo.ScanIngredient(row)
		out = i
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("create ingredient: %w", err)
	}
	return out, nil
}

func (s *inventoryService) ListByIDs(ctx context.Context, ids []int64) ([]repo.Ingredient, error) {
	ingredients := []repo.Ingredient{}
	err := s.db.Unit(ctx, func(q database.Querier) error {
		rows, err := q.QueryContext(ctx,
			`SELECT `+repo.IngredientColumns+` FROM ingredients WHERE id = ANY($1) ORDER BY id`,
			pq.Array(ids))
		if err != nil {
			return err
		}
		defer rows.Close()

		for rows.Next() {
			i, err := repo.ScanIngredient(rows)
			if err != nil {
				return err
			}
			ingredients = append(ingredients, *i)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, fmt.Errorf("list ingredients: %w", err)
	}
	return ingredients, nil
}

func (s *inventoryService) AssessRisks(ctx context.Context, ids []int64) (*RiskReport, error) {
	ingredients, err := s.ListByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	report := AssessRisks(ingredients, repo.Today())
	return &report, nil
}
