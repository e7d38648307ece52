package alert

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Alijeyrad/nutriguard_backend/internal/repo"
	"github.com/Alijeyrad/nutriguard_backend/pkg/database"
)

// Alert types raised by the domain services.
const (
	TypeLowIntake       = "Low Intake"
	TypeSafetyViolation = "Safety Violation"
)

const listLimit = 50

// Insert records a new Active alert inside the caller's unit of work.
func Insert(ctx context.Context, q database.Querier, alertType, message string, triggeredBy *int64) (*repo.Alert, error) {
	row := q.QueryRowContext(ctx, `
		INSERT INTO alerts (type, message, triggered_by)
		VALUES ($1, $2, $3)
		RETURNING `+repo.AlertColumns,
		alertType, message, triggeredBy)

	a, err := repo.ScanAlert(row)
	if err != nil {
		return nil, fmt.Errorf("insert alert: %w", err)
	}
	return a, nil
}

// ---------------------------------------------------------------------------
// Service interface
// ---------------------------------------------------------------------------

type Service interface {
	// List returns the 50 newest alerts, optionally filtered by status.
	List(ctx context.Context, status *repo.AlertStatus) ([]repo.Alert, error)
	Resolve(ctx context.Context, id int64) (*repo.Alert, error)
}

type alertService struct {
	db *database.DB
}

func New(db *database.DB) Service {
	return &alertService{db: db}
}

func (s *alertService) List(ctx context.Context, status *repo.AlertStatus) ([]repo.Alert, error) {
	query := `SELECT ` + repo.AlertColumns + ` FROM alerts WHERE 1=1`
	var args []any
	if status != nil {
		args = append(args, string(*status))
		query += fmt.Sprintf(" AND status = $%d", len(args))
	}
	args = append(args, listLimit)
	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d", len(args))

	alerts := []repo.Alert{}
	err := s.db.Unit(ctx, func(q database.Querier) error {
		rows, err := q.QueryContext(ctx, query, args...)
		if err != nil {
			return err
		}
		defer rows.Close()

		for rows.Next() {
			a, err := repo.ScanAlert(rows)
			if err != nil {
				return err
			}
			alerts = append(alerts, *a)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, fmt.Errorf("list alerts: %w", err)
	}
	return alerts, nil
}

func (s *alertService) Resolve(ctx context.Context, id int64) (*repo.Alert, error) {
	var out *repo.Alert
	err := s.db.Unit(ctx, func(q database.Querier) error {
		row := q.QueryRowContext(ctx, `
			UPDATE alerts
			SET status = $1, resolved_at = COALESCE(resolved_at, NOW())
			WHERE id = $2
			RETURNING `+repo.AlertColumns,
			string(repo.AlertResolved), id)

		a, err := repo.ScanAlert(row)
		if errors.Is(err, sql.ErrNoRows) {
			return ErrAlertNotFound
		}
		if err != nil {
			return fmt.Errorf("resolve alert: %w", err)
		}
		out = a
		return nil
	})
	return out, err
}
