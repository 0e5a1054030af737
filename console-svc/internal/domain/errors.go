package domain

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound     = errors.New("requested item not found")
	ErrValidation   = errors.New("validation failed")
	ErrUnauthorized = errors.New("authentication required")
)

// Invalid wraps ErrValidation with a caller-facing reason.
func Invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}
