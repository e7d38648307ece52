package nutrition

import "errors"

var ErrPatientRequired = errors.New("patient_id is required")
