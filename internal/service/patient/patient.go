package patient

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/Alijeyrad/nutriguard_backend/internal/repo"
	"github.com/Alijeyrad/nutriguard_backend/pkg/database"
)

// ---------------------------------------------------------------------------
// DTOs
// ---------------------------------------------------------------------------

type CreatePatientRequest struct {
	Name                string     `json:"name"`
	Age                 *int       `json:"age"`
	Gender              *string    `json:"gender"`
	MedicalConditions   *string    `json:"medical_conditions"`
	DietaryRestrictions *string    `json:"dietary_restrictions"`
	AdmissionDate       *repo.Date `json:"admission_date"`
	PhotoURL            *string    `json:"photo_url"`
}

// ---------------------------------------------------------------------------
// Service interface
// ---------------------------------------------------------------------------

type Service interface {
	Create(ctx context.Context, req CreatePatientRequest) (*repo.Patient, error)
	Get(ctx context.Context, id int64) (*repo.Patient, error)
	UpdateDietaryRestrictions(ctx context.Context, id int64, restrictions string) (*repo.Patient, error)
	SetPhoto(ctx context.Context, id int64, url string) (*repo.Patient, error)

	// NutritionHistory lists entries from the last days days, newest first.
	NutritionHistory(ctx context.Context, id int64, days int) ([]repo.NutritionEntry, error)
}

// ---------------------------------------------------------------------------
// Implementation
// ---------------------------------------------------------------------------

type patientService struct {
	db *database.DB
}

func New(db *database.DB) Service {
	return &patientService{db: db}
}

func (s *patientService) Create(ctx context.Context, req CreatePatientRequest) (*repo.Patient, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, ErrNameRequired
	}

	var out *repo.Patient
	err := s.db.Unit(ctx, func(q database.Querier) error {
		row := q.QueryRowContext(ctx, `
			INSERT INTO patients (name, age, gender, medical_conditions,
			                      dietary_restrictions, admission_date, photo_url)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
			RETURNING `+repo.PatientColumns,
			req.Name, req.Age, req.Gender, req.MedicalConditions,
			req.DietaryRestrictions, req.AdmissionDate, req.PhotoURL)

		p, err := repo.ScanPatient(row)
		if err != nil {
			return err
		}
		out = p
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("create patient: %w", err)
	}
	return out, nil
}

func (s *patientService) Get(ctx context.Context, id int64) (*repo.Patient, error) {
	var out *repo.Patient
	err := s.db.Unit(ctx, func(q database.Querier) error {
		p, err := Fetch(ctx, q, id)
		out = p
		return err
	})
	return out, err
}

// Fetch loads one patient inside an existing unit of work.
func Fetch(ctx context.Context, q database.Querier, id int64) (*repo.Patient, error) {
	row := q.QueryRowContext(ctx, `SELECT `+repo.PatientColumns+` FROM patients WHERE id = $1`, id)
	p, err := repo.ScanPatient(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrPatientNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get patient: %w", err)
	}
	return p, nil
}

func (s *patientService) UpdateDietaryRestrictions(ctx context.Context, id int64, restrictions string) (*repo.Patient, error) {
	return s.update(ctx, `
		UPDATE patients
		SET dietary_restrictions = $1, updated_at = NOW()
		WHERE id = $2
		RETURNING `+repo.PatientColumns, restrictions, id)
}

func (s *patientService) SetPhoto(ctx context.Context, id int64, url string) (*repo.Patient, error) {
	return s.update(ctx, `
		UPDATE patients
		SET photo_url = $1, updated_at = NOW()
		WHERE id = $2
		RETURNING `+repo.PatientColumns, url, id)
}

func (s *patientService) update(ctx context.Context, query string, args ...any) (*repo.Patient, error) {
	var out *repo.Patient
	err := s.db.Unit(ctx, func(q database.Querier) error {
		p, err := repo.ScanPatient(q.QueryRowContext(ctx, query, args...))
		if errors.Is(err, sql.ErrNoRows) {
			return ErrPatientNotFound
		}
		if err != nil {
			return fmt.Errorf("update patient: %w", err)
		}
		out = p
		return nil
	})
	return out, err
}

func (s *patientService) NutritionHistory(ctx context.Context, id int64, days int) ([]repo.NutritionEntry, error) {
	entries := []repo.NutritionEntry{}
	err := s.db.Unit(ctx, func(q database.Querier) error {
		rows, err := q.QueryContext(ctx, `
			SELECT `+repo.Qualify("ne", repo.NutritionEntryColumns)+`,
			       r.name, r.total_calories, s.name
			FROM nutrition_entries ne
			LEFT JOIN recipes r ON ne.recipe_id = r.id
			LEFT JOIN staff s ON ne.recorded_by = s.id
			WHERE ne.patient_id = $1
			  AND ne.date >= CURRENT_DATE - $2::int
			ORDER BY ne.date DESC, ne.created_at DESC`, id, days)
		if err != nil {
			return err
		}
		defer rows.Close()

		for rows.Next() {
			var e *repo.NutritionEntry
			var recipeName, recordedBy *string
			var calories *float64
			if e, err = repo.ScanNutritionEntry(rows, &recipeName, &calories, &recordedBy); err != nil {
				return err
			}
			e.RecipeName, e.TotalCalories, e.RecordedByName = recipeName, calories, recordedBy
			entries = append(entries, *e)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, fmt.Errorf("nutrition history: %w", err)
	}
	return entries, nil
}
