package agent

import (
	"context"
	"fmt"
	"strings"

	"github.com/Alijeyrad/nutriguard_backend/internal/repo"
	"github.com/Alijeyrad/nutriguard_backend/pkg/llm"
	"github.com/Alijeyrad/nutriguard_backend/pkg/observability"
)

const maxSafetyLogs = 20

// SafetyInspector grades ingredients, facility areas and inspection history
// for food-safety risk.
type SafetyInspector struct {
	*Agent
}

func NewSafetyInspector(gen llm.Generator, opts llm.Options, metrics *observability.AgentMetrics) *SafetyInspector {
	return &SafetyInspector{newAgent("safety_inspector", gen, safetyInspectorPrompt,
		[]string{"current_date", "ingredients_data", "facility_data", "recent_logs"}, opts, metrics)}
}

// Assess expects logs newest first and keeps the 20 most recent.
func (s *SafetyInspector) Assess(ctx context.Context, ingredients []repo.Ingredient, areas []string, logs []repo.SafetyLog, today repo.Date) (map[string]any, error) {
	return s.Invoke(ctx, safetyValues(ingredients, areas, logs, today))
}

func safetyValues(ingredients []repo.Ingredient, areas []string, logs []repo.SafetyLog, today repo.Date) map[string]any {
	ingredientText := lines(ingredients, func(i repo.Ingredient) string {
		return fmt.Sprintf("ID: %d, Name: %s, Expiry: %s, Storage Temp: %s°C, Quantity: %s %s, Last Inspection: %s",
			i.ID, i.Name, dateOr(i.ExpiryDate, "N/A"), numOr(i.StorageTemp, "N/A"),
			numOr(i.Quantity, "N/A"), strOr(i.Unit, ""), dateOr(i.LastInspectionDate, "N/A"))
	})

	if len(logs) > maxSafetyLogs {
		logs = logs[:maxSafetyLogs]
	}
	logText := lines(logs, func(l repo.SafetyLog) string {
		return fmt.Sprintf("Date: %s, Area: %s, Status: %s, Temp: %s°C",
			l.InspectionDate.Format("2006-01-02 15:04:05"), l.FacilityArea, l.ComplianceStatus,
			numOr(l.Temperature, "N/A"))
	})

	return map[string]any{
		"current_date":     today.String(),
		"ingredients_data": orElse(ingredientText, "No specific ingredients to assess"),
		"facility_data":    orElse(strings.Join(areas, "\n"), "Standard facility areas"),
		"recent_logs":      orElse(logText, "No recent safety logs available"),
	}
}
