package safety

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Alijeyrad/nutriguard_backend/internal/events"
	"github.com/Alijeyrad/nutriguard_backend/internal/repo"
	"github.com/Alijeyrad/nutriguard_backend/internal/service/alert"
	"github.com/Alijeyrad/nutriguard_backend/pkg/database"
)

// Cold-storage limits in °C.
const (
	MaxSafeTemp    = 5.0
	MaxWarningTemp = 10.0
)

// ClassifyTemperature maps a storage reading to a compliance status.
func ClassifyTemperature(t float64) repo.ComplianceStatus {
	switch {
	case t > MaxWarningTemp:
		return repo.ComplianceFail
	case t <= 0 || t > MaxSafeTemp:
		return repo.ComplianceWarning
	default:
		return repo.CompliancePass
	}
}

// ---------------------------------------------------------------------------
// DTOs
// ---------------------------------------------------------------------------

type TemperatureLogRequest struct {
	FacilityArea string   `json:"facility_area"`
	Temperature  *float64 `json:"temperature"`
	InspectorID  *int64   `json:"inspector_id"`
	IngredientID *int64   `json:"ingredient_id"`
	Remarks      *string  `json:"remarks"`
}

type InspectionRequest struct {
	FacilityArea     string                `json:"facility_area"`
	ComplianceStatus repo.ComplianceStatus `json:"compliance_status"`
	IngredientID     *int64                `json:"ingredient_id"`
	Temperature      *float64              `json:"temperature"`
	InspectorID      *int64                `json:"inspector_id"`
	Remarks          *string               `json:"remarks"`
	DocumentURL      *string               `json:"document_url"`
}

type ReportPeriod struct {
	Start string `json:"start_date"`
	End   string `json:"end_date"`
}

type ReportSummary struct {
	TotalInspections int    `json:"total_inspections"`
	Passed           int    `json:"passed"`
	Failed           int    `json:"failed"`
	Warnings         int    `json:"warnings"`
	ComplianceRate   string `json:"compliance_rate"`
}

type ComplianceReport struct {
	ReportPeriod ReportPeriod     `json:"report_period"`
	Summary      ReportSummary    `json:"summary"`
	Inspections  []repo.SafetyLog `json:"inspections"`
}

// ---------------------------------------------------------------------------
// Service interface
// ---------------------------------------------------------------------------

type Service interface {
	// LogTemperature stores a reading with its derived compliance status.
	LogTemperature(ctx context.Context, req TemperatureLogRequest) (*repo.SafetyLog, error)
	// LogInspection stores an inspection. A Fail raises a Safety Violation
	// alert in the same unit of work.
	LogInspection(ctx context.Context, req InspectionRequest) (*repo.SafetyLog, error)
	ComplianceReport(ctx context.Context, start, end *repo.Date) (*ComplianceReport, error)
}

// ---------------------------------------------------------------------------
// Implementation
// ---------------------------------------------------------------------------

type safetyService struct {
	db     *database.DB
	events events.Publisher
}

func New(db *database.DB, pub events.Publisher) Service {
	if pub == nil {
		pub = events.Nop{}
	}
	return &safetyService{db: db, events: pub}
}

func (s *safetyService) LogTemperature(ctx context.Context, req TemperatureLogRequest) (*repo.SafetyLog, error) {
	if req.FacilityArea == "" {
		return nil, ErrFacilityAreaRequired
	}
	if req.Temperature == nil {
		return nil, ErrTemperatureRequired
	}

	var log *repo.SafetyLog
	err := s.db.Unit(ctx, func(q database.Querier) error {
		var err error
		log, err = insertLog(ctx, q, InspectionRequest{
			FacilityArea:     req.FacilityArea,
			ComplianceStatus: ClassifyTemperature(*req.Temperature),
			IngredientID:     req.IngredientID,
			Temperature:      req.Temperature,
			InspectorID:      req.InspectorID,
			Remarks:          req.Remarks,
		})
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("log temperature: %w", err)
	}
	return log, nil
}

func (s *safetyService) LogInspection(ctx context.Context, req InspectionRequest) (*repo.SafetyLog, error) {
	if req.FacilityArea == "" {
		return nil, ErrFacilityAreaRequired
	}
	if _, err := repo.ParseComplianceStatus(string(req.ComplianceStatus)); err != nil {
		return nil, err
	}

	var (
		log    *repo.SafetyLog
		raised *repo.Alert
	)
	err := s.db.Unit(ctx, func(q database.Querier) error {
		var err error
		if log, err = insertLog(ctx, q, req); err != nil {
			return err
		}
		if req.ComplianceStatus == repo.ComplianceFail {
			msg := "Failed inspection in " + req.FacilityArea
			if raised, err = alert.Insert(ctx, q, alert.TypeSafetyViolation, msg, req.InspectorID); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("log inspection: %w", err)
	}

	if raised != nil {
		if err := s.events.AlertCreated(ctx, raised); err != nil {
			slog.WarnContext(ctx, "safety: alert publish failed", "alert_id", raised.ID, "err", err)
		}
	}
	return log, nil
}

func (s *safetyService) ComplianceReport(ctx context.Context, start, end *repo.Date) (*ComplianceReport, error) {
	if start != nil && end != nil && end.Before(start.Time) {
		return nil, ErrInvalidDateRange
	}

	query := `SELECT ` + repo.SafetyLogColumns + ` FROM safety_logs WHERE 1=1`
	var args []any
	if start != nil {
		args = append(args, *start)
		query += fmt.Sprintf(" AND inspection_date >= $%d", len(args))
	}
	if end != nil {
		args = append(args, *end)
		query += fmt.Sprintf(" AND inspection_date <= $%d", len(args))
	}
	query += " ORDER BY inspection_date DESC"

	logs := []repo.SafetyLog{}
	err := s.db.Unit(ctx, func(q database.Querier) error {
		rows, err := q.QueryContext(ctx, query, args...)
		if err != nil {
			return err
		}
		defer rows.Close()

		for rows.Next() {
			l, err := repo.ScanSafetyLog(rows)
			if err != nil {
				return err
			}
			logs = append(logs, *l)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, fmt.Errorf("compliance report: %w", err)
	}

	period := ReportPeriod{Start: "All time", End: "Present"}
	if start != nil {
		period.Start = start.String()
	}
	if end != nil {
		period.End = end.String()
	}
	return &ComplianceReport{ReportPeriod: period, Summary: Summarize(logs), Inspections: logs}, nil
}

// Summarize counts outcomes; the rate is "N/A" when there are no inspections.
func Summarize(logs []repo.SafetyLog) ReportSummary {
	out := ReportSummary{TotalInspections: len(logs), ComplianceRate: "N/A"}
	for _, l := range logs {
		switch l.ComplianceStatus {
		case repo.CompliancePass:
			out.Passed++
		case repo.ComplianceFail:
			out.Failed++
		case repo.ComplianceWarning:
			out.Warnings++
		}
	}
	if out.TotalInspections > 0 {
		out.ComplianceRate = fmt.Sprintf("%.2f%%", float64(out.Passed)/float64(out.TotalInspections)*100)
	}
	return out
}

func insertLog(ctx context.Context, q database.Querier, req InspectionRequest) (*repo.SafetyLog, error) {
	row := q.QueryRowContext(ctx, `
		INSERT INTO safety_logs (ingredient_id, facility_area, temperature, inspector_id,
		                         compliance_status, remarks, document_url)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING `+repo.SafetyLogColumns,
		req.IngredientID, req.FacilityArea, req.Temperature, req.InspectorID,
		string(req.ComplianceStatus), req.Remarks, req.DocumentURL)

	l, err := repo.ScanSafetyLog(row)
	if err != nil {
		return nil, fmt.Errorf("insert safety log: %w", err)
	}
	return l, nil
}
