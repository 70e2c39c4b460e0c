// ABOUTME: Validation error type shared by models, journal, CLI and MCP.
// ABOUTME: Wraps ErrValidation so callers can match with errors.Is.
package models

import (
	"errors"
	"fmt"
)

// ErrValidation marks input that was rejected before any state change.
var ErrValidation = errors.New("validation failed")

// ValidationError describes which field was rejected and why.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}
