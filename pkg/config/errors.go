package config

import (
	"errors"
	"fmt"
)

// ErrInvalidConfig matches every configuration error via errors.Is.
var ErrInvalidConfig = errors.New("invalid configuration")

// ValidationError represents a single field validation failure.
type ValidationError struct {
	Field  string // Field name as written in scenario files
	Reason string // Human-readable reason for failure
	Value  any    // The value that failed validation
}

func (e *ValidationError) Error() string {
	if e.Value == nil {
		return fmt.Sprintf("field %q: %s", e.Field, e.Reason)
	}
	return fmt.Sprintf("field %q: %s (got %v)", e.Field, e.Reason, e.Value)
}

// Is reports ErrInvalidConfig as a match.
func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidConfig
}

// AggregateError represents multiple validation failures.
type AggregateError struct {
	Errors []error
}

func (e *AggregateError) Error() string {
	if len(e.Errors) == 1 {
		return e.Errors[0].Error()
	}
	msg := fmt.Sprintf("%d validation errors:\n", len(e.Errors))
	for i, err := range e.Errors {
		msg += fmt.Sprintf("  %d. %s\n", i+1, err.Error())
	}
	return msg
}

// Is reports ErrInvalidConfig as a match.
func (e *AggregateError) Is(target error) bool {
	return target == ErrInvalidConfig
}

// Unwrap exposes the individual failures to errors.As.
func (e *AggregateError) Unwrap() []error {
	return e.Errors
}

// ValidationErrors returns all validation errors if err is an AggregateError.
// Otherwise returns nil.
func ValidationErrors(err error) []error {
	var aggr *AggregateError
	if errors.As(err, &aggr) {
		return aggr.Errors
	}
	return nil
}
