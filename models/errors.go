package models

import (
	"errors"
	"fmt"
)

// ErrValidation is wrapped by every error raised before a request leaves the SDK.
var ErrValidation = errors.New("validation failed")

// Invalid builds a validation error with a formatted reason.
func Invalid(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}
