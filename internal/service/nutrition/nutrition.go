package nutrition

import (
	"context"
	"fmt"
	"log/slog"
	"math"

	"github.com/Alijeyrad/nutriguard_backend/internal/events"
	"github.com/Alijeyrad/nutriguard_backend/internal/repo"
	"github.com/Alijeyrad/nutriguard_backend/internal/service/alert"
	"github.com/Alijeyrad/nutriguard_backend/pkg/database"
)

// LowIntakeThreshold is the intake percentage below which an alert is raised.
const LowIntakeThreshold = 50.0

const recentEntries = 10

type LogIntakeRequest struct {
	PatientID        int64      `json:"patient_id"`
	RecipeID         *int64     `json:"recipe_id"`
	RecordedBy       *int64     `json:"recorded_by"`
	Date             *repo.Date `json:"date"`
	IntakePercentage *float64   `json:"intake_percentage"`
	BloodSugar       *float64   `json:"blood_sugar"`
	Notes            *string    `json:"notes"`
}

type Insights struct {
	TotalMealsLogged        int     `json:"total_meals_logged"`
	AverageIntakePercentage float64 `json:"average_intake_percentage"`
	AverageBloodSugar       float64 `json:"average_blood_sugar"`
	TotalCaloriesConsumed   float64 `json:"total_calories_consumed"`
	DailyAverageCalories    float64 `json:"daily_average_calories"`
}

type Analytics struct {
	Insights      Insights              `json:"insights"`
	RecentEntries []repo.NutritionEntry `json:"recent_entries"`
}

type Service interface {
	// LogIntake records a meal. Intake below 50% raises a Low Intake alert in
	// the same unit of work.
	LogIntake(ctx context.Context, req LogIntakeRequest) (*repo.NutritionEntry, error)
	// Analytics summarizes the last days days, or returns nil when there is
	// no data.
	Analytics(ctx context.Context, patientID int64, days int) (*Analytics, error)
}

type nutritionService struct {
	db     *database.DB
	events events.Publisher
}

func New(db *database.DB, pub events.Publisher) Service {
	if pub == nil {
		pub = events.Nop{}
	}
	return &nutritionService{db: db, events: pub}
}

func (s *nutritionService) LogIntake(ctx context.Context, req LogIntakeRequest) (*repo.NutritionEntry, error) {
	if req.PatientID == 0 {
		return nil, ErrPatientRequired
	}
	date := repo.Today()
	if req.Date != nil && !req.Date.IsZero() {
		date = *req.Date
	}

	var (
		entry  *repo.NutritionEntry
		raised *repo.Alert
	)
	err := s.db.Unit(ctx, func(q database.Querier) error {
		row := q.QueryRowContext(ctx, `
			INSERT INTO nutrition_entries (patient_id, recipe_id, recorded_by, date,
			                               intake_percentage, blood_sugar, notes)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
			RETURNING `+repo.NutritionEntryColumns,
			req.PatientID, req.RecipeID, req.RecordedBy, date,
			req.IntakePercentage, req.BloodSugar, req.Notes)

		e, err := repo.ScanNutritionEntry(row)
		if err != nil {
			return fmt.Errorf("insert nutrition entry: %w", err)
		}
		entry = e

		if req.IntakePercentage != nil && *req.IntakePercentage < LowIntakeThreshold {
			msg := fmt.Sprintf("Patient %d consumed less than 50%% of meal", req.PatientID)
			if raised, err = alert.Insert(ctx, q, alert.TypeLowIntake, msg, req.RecordedBy); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("log intake: %w", err)
	}

	if raised != nil {
		if err := s.events.AlertCreated(ctx, raised); err != nil {
			slog.WarnContext(ctx, "nutrition: alert publish failed", "alert_id", raised.ID, "err", err)
		}
	}
	return entry, nil
}

func (s *nutritionService) Analytics(ctx context.Context, patientID int64, days int) (*Analytics, error) {
	entries := []repo.NutritionEntry{}
	err := s.db.Unit(ctx, func(q database.Querier) error {
		rows, err := q.QueryContext(ctx, `
			SELECT `+repo.Qualify("ne", repo.NutritionEntryColumns)+`, r.total_calories
			FROM nutrition_entries ne
			LEFT JOIN recipes r ON ne.recipe_id = r.id
			WHERE ne.patient_id = $1
			  AND ne.date >= CURRENT_DATE - $2::int
			ORDER BY ne.date DESC`, patientID, days)
		if err != nil {
			return err
		}
		defer rows.Close()

		for rows.Next() {
			var calories *float64
			e, err := repo.ScanNutritionEntry(rows, &calories)
			if err != nil {
				return err
			}
			e.TotalCalories = calories
			entries = append(entries, *e)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, fmt.Errorf("nutrition analytics: %w", err)
	}
	if len(entries) == 0 {
		return nil, nil
	}

	insights := Summarize(entries, days)
	recent := entries
	if len(recent) > recentEntries {
		recent = recent[:recentEntries]
	}
	return &Analytics{Insights: insights, RecentEntries: recent}, nil
}

// Summarize computes intake, blood sugar and calorie figures. Missing intake
// counts as 0 toward the average and as 100% toward calories consumed.
func Summarize(entries []repo.NutritionEntry, days int) Insights {
	var intakeSum, sugarSum, calories float64
	var sugarCount int

	for _, e := range entries {
		intake := 0.0
		if e.IntakePercentage != nil {
			intake = *e.IntakePercentage
		}
		intakeSum += intake

		if e.BloodSugar != nil && *e.BloodSugar != 0 {
			sugarSum += *e.BloodSugar
			sugarCount++
		}

		if e.TotalCalories != nil {
			share := 100.0
			if e.IntakePercentage != nil && *e.IntakePercentage != 0 {
				share = *e.IntakePercentage
			}
			calories += *e.TotalCalories * share / 100
		}
	}

	out := Insights{
		TotalMealsLogged:        len(entries),
		AverageIntakePercentage: round2(intakeSum / float64(len(entries))),
		TotalCaloriesConsumed:   round2(calories),
	}
	if sugarCount > 0 {
		out.AverageBloodSugar = round2(sugarSum / float64(sugarCount))
	}
	if days > 0 {
		out.DailyAverageCalories = round2(calories / float64(days))
	}
	return out
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
