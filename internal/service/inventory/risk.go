package inventory

import "github.com/Alijeyrad/nutriguard_backend/internal/repo"

type RiskLevel string

const (
	RiskLow      RiskLevel = "Low"
	RiskHigh     RiskLevel = "High"
	RiskCritical RiskLevel = "Critical"
)

const (
	expiryWarningDays = 3
	maxStorageTemp    = 5.0
)

type RiskItem struct {
	ItemType    string    `json:"item_type"`
	ItemID      int64     `json:"item_id"`
	ItemName    string    `json:"item_name"`
	RiskLevel   RiskLevel `json:"risk_level"`
	RiskFactors []string  `json:"risk_factors"`
}

type RiskSummary struct {
	TotalItemsAssessed int `json:"total_items_assessed"`
	CriticalRisks      int `json:"critical_risks"`
	HighRisks          int `json:"high_risks"`
}

type RiskReport struct {
	OverallRiskLevel RiskLevel   `json:"overall_risk_level"`
	Summary          RiskSummary `json:"summary"`
	RiskItems        []RiskItem  `json:"risk_items"`
}

// AssessRisk grades one ingredient against today.
func AssessRisk(i repo.Ingredient, today repo.Date) RiskItem {
	item := RiskItem{
		ItemType:    "ingredient",
		ItemID:      i.ID,
		ItemName:    i.Name,
		RiskLevel:   RiskLow,
		RiskFactors: []string{},
	}

	if i.ExpiryDate != nil {
		switch {
		case !i.ExpiryDate.After(today.Time):
			item.RiskLevel = RiskCritical
			item.RiskFactors = append(item.RiskFactors, "Expired ingredient")
		case !i.ExpiryDate.After(today.AddDays(expiryWarningDays).Time):
			item.RiskLevel = RiskHigh
			item.RiskFactors = append(item.RiskFactors, "Expiring within 3 days")
		}
	}

	if i.StorageTemp != nil && *i.StorageTemp > maxStorageTemp {
		if item.RiskLevel != RiskCritical {
			item.RiskLevel = RiskHigh
		}
		item.RiskFactors = append(item.RiskFactors, "Storage temperature too high")
	}

	return item
}

// AssessRisks grades a batch. The overall level is the worst item level.
func AssessRisks(ingredients []repo.Ingredient, today repo.Date) RiskReport {
	report := RiskReport{
		OverallRiskLevel: RiskLow,
		RiskItems:        make([]RiskItem, 0, len(ingredients)),
	}

	for _, i := range ingredients {
		item := AssessRisk(i, today)
		switch item.RiskLevel {
		case RiskCritical:
			report.Summary.CriticalRisks++
		case RiskHigh:
			report.Summary.HighRisks++
		}
		report.RiskItems = append(report.RiskItems, item)
	}
	report.Summary.TotalItemsAssessed = len(report.RiskItems)

	switch {
	case report.Summary.CriticalRisks > 0:
		report.OverallRiskLevel = RiskCritical
	case report.Summary.HighRisks > 0:
		report.OverallRiskLevel = RiskHigh
	}
	return report
}
