package approach

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidInput is returned when input validation fails.
	ErrInvalidInput = errors.New("invalid input")
	// ErrExternalService is returned when a search or completion call fails.
	ErrExternalService = errors.New("external service error")
	// ErrUpstreamParse is returned when the completion API returns a
	// structurally invalid payload, e.g. malformed function-call arguments.
	ErrUpstreamParse = errors.New("malformed upstream response")
)

// ValidationError represents a validation error with a field name.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error on field %s: %s", e.Field, e.Message)
}

func (e *ValidationError) Unwrap() error {
	return ErrInvalidInput
}

// wrapExternal tags an upstream failure so handlers can map it to a
// gateway error status.
func wrapExternal(msg string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w: %w", msg, ErrExternalService, err)
}
