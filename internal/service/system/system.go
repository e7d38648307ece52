package system

import (
	"context"
	"fmt"
	"time"

	"github.com/Alijeyrad/nutriguard_backend/config"
	"github.com/Alijeyrad/nutriguard_backend/pkg/database"
)

// ---------------------------------------------------------------------------
// DTOs
// ---------------------------------------------------------------------------

type Descriptor struct {
	Service       string            `json:"service"`
	Version       string            `json:"version"`
	Description   string            `json:"description"`
	Documentation string            `json:"documentation"`
	Endpoints     map[string]string `json:"endpoints"`
}

type Health struct {
	Status    string    `json:"status"`
	Database  string    `json:"database"`
	Error     string    `json:"error,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// Healthy reports whether the database answered.
func (h Health) Healthy() bool {
	return h.Status == "healthy"
}

type Stats struct {
	Patients     int64 `json:"patients"`
	Recipes      int64 `json:"recipes"`
	MealPlans    int64 `json:"meal_plans"`
	Ingredients  int64 `json:"ingredients"`
	SafetyLogs   int64 `json:"safety_logs"`
	ActiveAlerts int64 `json:"active_alerts"`
}

// ---------------------------------------------------------------------------
// Service interface
// ---------------------------------------------------------------------------

type Service interface {
	Descriptor() Descriptor
	// Health never fails; a database error is reported in the result.
	Health(ctx context.Context) Health
	Stats(ctx context.Context) (*Stats, error)
}

// ---------------------------------------------------------------------------
// Implementation
// ---------------------------------------------------------------------------

type systemService struct {
	db  *database.DB
	api config.APIConfig
	now func() time.Time
}

func New(db *database.DB, api config.APIConfig) Service {
	return &systemService{db: db, api: api, now: time.Now}
}

func (s *systemService) Descriptor() Descriptor {
	return Descriptor{
		Service:       s.api.Title,
		Version:       s.api.Version,
		Description:   s.api.Description,
		Documentation: "/docs",
		Endpoints: map[string]string{
			"patient_management": "/patients",
			"meal_planning":      "/meal-plans",
			"recipes":            "/recipes",
			"inventory":          "/inventory",
			"safety":             "/safety",
			"compliance":         "/compliance",
			"nutrition":          "/nutrition",
			"alerts":             "/alerts",
			"ai":                 "/ai",
		},
	}
}

func (s *systemService) Health(ctx context.Context) Health {
	err := s.db.Unit(ctx, func(q database.Querier) error {
		var one int
		return q.QueryRowContext(ctx, `SELECT 1`).Scan(&one)
	})
	if err != nil {
		return Health{Status: "unhealthy", Database: "disconnected", Error: err.Error(), Timestamp: s.now()}
	}
	return Health{Status: "healthy", Database: "connected", Timestamp: s.now()}
}

func (s *systemService) Stats(ctx context.Context) (*Stats, error) {
	var st Stats
	err := s.db.Unit(ctx, func(q database.Querier) error {
		return q.QueryRowContext(ctx, `
			SELECT (SELECT COUNT(*) FROM patients),
			       (SELECT COUNT(*) FROM recipes),
			       (SELECT COUNT(*) FROM meal_plans),
			       (SELECT COUNT(*) FROM ingredients),
			       (SELECT COUNT(*) FROM safety_logs),
			       (SELECT COUNT(*) FROM alerts WHERE status = 'Active')`).
			Scan(&st.Patients, &st.Recipes, &st.MealPlans, &st.Ingredients, &st.SafetyLogs, &st.ActiveAlerts)
	})
	if err != nil {
		return nil, fmt.Errorf("system stats: %w", err)
	}
	return &st, nil
}
