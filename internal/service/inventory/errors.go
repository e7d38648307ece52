package inventory

import "errors"

var ErrNameRequired = errors.New("name is required")
