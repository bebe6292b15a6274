package models

import "errors"

// ErrValidation is wrapped by every Validate error so callers can map it to a
// client error.
var ErrValidation = errors.New("validation failed")
