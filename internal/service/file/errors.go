package file

import "errors"

var (
	ErrStorageDisabled = errors.New("file storage is not configured")
	ErrInvalidEntity   = errors.New("invalid entity. Must be one of: patients, recipes, inspections")
	ErrKeyRequired     = errors.New("file key is required")
)
