package repo

import (
	"strings"
	"time"
)

// Scanner is satisfied by *sql.Row and *sql.Rows.
type Scanner interface {
	Scan(dest ...any) error
}

// Qualify prefixes each column in a *Columns list with alias, for joins.
func Qualify(alias, columns string) string {
	parts := strings.Split(columns, ",")
	for i, p := range parts {
		parts[i] = alias + "." + strings.TrimSpace(p)
	}
	return strings.Join(parts, ", ")
}

type Staff struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Role      StaffRole `json:"role"`
	Email     *string   `json:"email"`
	Phone     *string   `json:"phone"`
	CreatedAt time.Time `json:"created_at"`
}

type Patient struct {
	ID                  int64     `json:"id"`
	Name                string    `json:"name"`
	Age                 *int      `json:"age"`
	Gender              *string   `json:"gender"`
	MedicalConditions   *string   `json:"medical_conditions"`
	DietaryRestrictions *string   `json:"dietary_restrictions"`
	AdmissionDate       *Date     `json:"admission_date"`
	PhotoURL            *string   `json:"photo_url"`
	CreatedAt           time.Time `json:"created_at"`
	UpdatedAt           time.Time `json:"updated_at"`
}

const PatientColumns = `id, name, age, gender, medical_conditions, dietary_restrictions,
	admission_date, photo_url, created_at, updated_at`

func ScanPatient(s Scanner) (*Patient, error) {
	var p Patient
	err := s.Scan(&p.ID, &p.Name, &p.Age, &p.Gender, &p.MedicalConditions, &p.DietaryRestrictions,
		&p.AdmissionDate, &p.PhotoURL, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

type Recipe struct {
	ID            int64     `json:"id"`
	Name          string    `json:"name"`
	Description   *string   `json:"description"`
	ImageURL      *string   `json:"image_url"`
	TotalCalories *float64  `json:"total_calories"`
	CreatedBy     *int64    `json:"created_by"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

const RecipeColumns = `id, name, description, image_url, total_calories, created_by, created_at, updated_at`

func ScanRecipe(s Scanner) (*Recipe, error) {
	var r Recipe
	err := s.Scan(&r.ID, &r.Name, &r.Description, &r.ImageURL, &r.TotalCalories,
		&r.CreatedBy, &r.CreatedAt, &r.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &r, nil
}

type Ingredient struct {
	ID                 int64     `json:"id"`
	Name               string    `json:"name"`
	NutritionalInfo    JSON      `json:"nutritional_info"`
	Supplier           *string   `json:"supplier"`
	Quantity           *float64  `json:"quantity"`
	Unit               *string   `json:"unit"`
	ExpiryDate         *Date     `json:"expiry_date"`
	LastInspectionDate *Date     `json:"last_inspection_date"`
	StorageTemp        *float64  `json:"storage_temp"`
	CreatedAt          time.Time `json:"created_at"`
}

const IngredientColumns = `id, name, nutritional_info, supplier, quantity, unit,
	expiry_date, last_inspection_date, storage_temp, created_at`

func ScanIngredient(s Scanner) (*Ingredient, error) {
	var i Ingredient
	err := s.Scan(&i.ID, &i.Name, &i.NutritionalInfo, &i.Supplier, &i.Quantity, &i.Unit,
		&i.ExpiryDate, &i.LastInspectionDate, &i.StorageTemp, &i.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &i, nil
}

type MealPlan struct {
	ID          int64     `json:"id"`
	PatientID   int64     `json:"patient_id"`
	CreatedBy   *int64    `json:"created_by"`
	StartDate   Date      `json:"start_date"`
	EndDate     Date      `json:"end_date"`
	AIGenerated bool      `json:"ai_generated"`
	Notes       *string   `json:"notes"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	// Read projections.
	CreatedByName *string          `json:"created_by_name,omitempty"`
	PatientName   *string          `json:"patient_name,omitempty"`
	RecipeCount   *int             `json:"recipe_count,omitempty"`
	Recipes       []MealPlanRecipe `json:"recipes,omitempty"`
}

const MealPlanColumns = `id, patient_id, created_by, start_date, end_date, ai_generated, notes, created_at, updated_at`

func ScanMealPlan(s Scanner, extra ...any) (*MealPlan, error) {
	var m MealPlan
	dest := []any{&m.ID, &m.PatientID, &m.CreatedBy, &m.StartDate, &m.EndDate, &m.AIGenerated,
		&m.Notes, &m.CreatedAt, &m.UpdatedAt}
	if err := s.Scan(append(dest, extra...)...); err != nil {
		return nil, err
	}
	return &m, nil
}

type MealPlanRecipe struct {
	ID          int64     `json:"id"`
	MealPlanID  int64     `json:"meal_plan_id"`
	RecipeID    int64     `json:"recipe_id"`
	MealType    MealType  `json:"meal_type"`
	PortionSize *string   `json:"portion_size"`
	CreatedAt   time.Time `json:"created_at"`

	// Read projections.
	RecipeName    *string  `json:"recipe_name,omitempty"`
	Description   *string  `json:"description,omitempty"`
	TotalCalories *float64 `json:"total_calories,omitempty"`
	ImageURL      *string  `json:"image_url,omitempty"`
}

const MealPlanRecipeColumns = `id, meal_plan_id, recipe_id, meal_type, portion_size, created_at`

func ScanMealPlanRecipe(s Scanner, extra ...any) (*MealPlanRecipe, error) {
	var r MealPlanRecipe
	dest := []any{&r.ID, &r.MealPlanID, &r.RecipeID, &r.MealType, &r.PortionSize, &r.CreatedAt}
	if err := s.Scan(append(dest, extra...)...); err != nil {
		return nil, err
	}
	return &r, nil
}

type NutritionEntry struct {
	ID               int64     `json:"id"`
	PatientID        int64     `json:"patient_id"`
	RecipeID         *int64    `json:"recipe_id"`
	RecordedBy       *int64    `json:"recorded_by"`
	Date             Date      `json:"date"`
	IntakePercentage *float64  `json:"intake_percentage"`
	BloodSugar       *float64  `json:"blood_sugar"`
	Notes            *string   `json:"notes"`
	CreatedAt        time.Time `json:"created_at"`

	// Read projections.
	RecipeName     *string  `json:"recipe_name,omitempty"`
	TotalCalories  *float64 `json:"total_calories,omitempty"`
	RecordedByName *string  `json:"recorded_by_name,omitempty"`
}

const NutritionEntryColumns = `id, patient_id, recipe_id, recorded_by, date, intake_percentage,
	blood_sugar, notes, created_at`

func ScanNutritionEntry(s Scanner, extra ...any) (*NutritionEntry, error) {
	var n NutritionEntry
	dest := []any{&n.ID, &n.PatientID, &n.RecipeID, &n.RecordedBy, &n.Date, &n.IntakePercentage,
		&n.BloodSugar, &n.Notes, &n.CreatedAt}
	if err := s.Scan(append(dest, extra...)...); err != nil {
		return nil, err
	}
	return &n, nil
}

type SafetyLog struct {
	ID               int64            `json:"id"`
	IngredientID     *int64           `json:"ingredient_id"`
	FacilityArea     string           `json:"facility_area"`
	Temperature      *float64         `json:"temperature"`
	InspectorID      *int64           `json:"inspector_id"`
	ComplianceStatus ComplianceStatus `json:"compliance_status"`
	Remarks          *string          `json:"remarks"`
	DocumentURL      *string          `json:"document_url"`
	InspectionDate   time.Time        `json:"inspection_date"`
}

const SafetyLogColumns = `id, ingredient_id, facility_area, temperature, inspector_id,
	compliance_status, remarks, document_url, inspection_date`

func ScanSafetyLog(s Scanner) (*SafetyLog, error) {
	var l SafetyLog
	err := s.Scan(&l.ID, &l.IngredientID, &l.FacilityArea, &l.Temperature, &l.InspectorID,
		&l.ComplianceStatus, &l.Remarks, &l.DocumentURL, &l.InspectionDate)
	if err != nil {
		return nil, err
	}
	return &l, nil
}

type Alert struct {
	ID          int64       `json:"id"`
	Type        string      `json:"type"`
	Message     string      `json:"message"`
	TriggeredBy *int64      `json:"triggered_by"`
	Status      AlertStatus `json:"status"`
	CreatedAt   time.Time   `json:"created_at"`
	ResolvedAt  *time.Time  `json:"resolved_at"`
}

const AlertColumns = `id, type, message, triggered_by, status, created_at, resolved_at`

func ScanAlert(s Scanner) (*Alert, error) {
	var a Alert
	err := s.Scan(&a.ID, &a.Type, &a.Message, &a.TriggeredBy, &a.Status, &a.CreatedAt, &a.ResolvedAt)
	if err != nil {
		return nil, err
	}
	return &a, nil
}
