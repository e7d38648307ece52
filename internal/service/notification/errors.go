package notification

import "errors"

var ErrNilAlert = errors.New("alert is required")
