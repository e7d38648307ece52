package safety

import "errors"

var (
	ErrFacilityAreaRequired = errors.New("facility_area is required")
	ErrTemperatureRequired  = errors.New("temperature is required")
	ErrInvalidDateRange     = errors.New("start_date must not be after end_date")
)
