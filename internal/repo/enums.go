package repo

import (
	"errors"
	"strings"
)

type StaffRole string

const (
	RoleAdmin        StaffRole = "Admin"
	RoleDietitian    StaffRole = "Dietitian"
	RoleNurse        StaffRole = "Nurse"
	RoleKitchenStaff StaffRole = "KitchenStaff"
)

var StaffRoles = []StaffRole{RoleAdmin, RoleDietitian, RoleNurse, RoleKitchenStaff}

type MealType string

const (
	Breakfast MealType = "Breakfast"
	Lunch     MealType = "Lunch"
	Dinner    MealType = "Dinner"
	Snack     MealType = "Snack"
)

var MealTypes = []MealType{Breakfast, Lunch, Dinner, Snack}

type ComplianceStatus string

const (
	CompliancePass    ComplianceStatus = "Pass"
	ComplianceFail    ComplianceStatus = "Fail"
	ComplianceWarning ComplianceStatus = "Warning"
)

var ComplianceStatuses = []ComplianceStatus{CompliancePass, ComplianceFail, ComplianceWarning}

type AlertStatus string

const (
	AlertActive   AlertStatus = "Active"
	AlertResolved AlertStatus = "Resolved"
)

var AlertStatuses = []AlertStatus{AlertActive, AlertResolved}

var (
	ErrInvalidStaffRole        = errors.New("invalid role. Must be one of: " + join(StaffRoles))
	ErrInvalidMealType         = errors.New("Invalid meal type. Must be one of: " + join(MealTypes))
	ErrInvalidComplianceStatus = errors.New("invalid compliance_status. Must be one of: " + join(ComplianceStatuses))
	ErrInvalidAlertStatus      = errors.New("invalid status. Must be one of: " + join(AlertStatuses))
)

func ParseStaffRole(s string) (StaffRole, error) {
	return parse(s, StaffRoles, ErrInvalidStaffRole)
}

func ParseMealType(s string) (MealType, error) {
	return parse(s, MealTypes, ErrInvalidMealType)
}

func ParseComplianceStatus(s string) (ComplianceStatus, error) {
	return parse(s, ComplianceStatuses, ErrInvalidComplianceStatus)
}

func ParseAlertStatus(s string) (AlertStatus, error) {
	return parse(s, AlertStatuses, ErrInvalidAlertStatus)
}

// Values are matched exactly; the database CHECK constraints are case-sensitive.
func parse[T ~string](s string, allowed []T, sentinel error) (T, error) {
	for _, v := range allowed {
		if string(v) == s {
			return v, nil
		}
	}
	return "", sentinel
}

func join[T ~string](values []T) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = string(v)
	}
	return strings.Join(parts, ", ")
}
