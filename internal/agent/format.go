package agent

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/Alijeyrad/nutriguard_backend/internal/repo"
)

func strOr(p *string, def string) string {
	if p == nil || *p == "" {
		return def
	}
	return *p
}

func numOr(p *float64, def string) string {
	if p == nil {
		return def
	}
	return strconv.FormatFloat(*p, 'f', -1, 64)
}

func intOr(p *int, def string) string {
	if p == nil {
		return def
	}
	return strconv.Itoa(*p)
}

func idOr(p *int64, def string) string {
	if p == nil {
		return def
	}
	return strconv.FormatInt(*p, 10)
}

func dateOr(p *repo.Date, def string) string {
	if p == nil || p.IsZero() {
		return def
	}
	return p.String()
}

// lines joins one formatted line per item, or returns empty when there are
// none.
func lines[T any](items []T, format func(T) string) string {
	out := make([]string, 0, len(items))
	for _, it := range items {
		out = append(out, format(it))
	}
	return strings.Join(out, "\n")
}

func orElse(s, def string) string {
	if s == "" {
		return def
	}
	return s
}

func historyLine(e repo.NutritionEntry) string {
	return fmt.Sprintf("Date: %s, Blood Sugar: %s, Intake: %s%%",
		e.Date, numOr(e.BloodSugar, "N/A"), numOr(e.IntakePercentage, "N/A"))
}
