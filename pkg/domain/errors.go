package domain

import (
	"errors"
	"fmt"
)

// ErrInvariant marks a broken accounting or state-machine invariant.
// It is a defect, never a normal outcome such as ruin.
var ErrInvariant = errors.New("invariant violation")

// ErrReportNotFound is returned when a report ID cannot be found in the store.
var ErrReportNotFound = errors.New("report not found")

// InvariantError describes where an invariant broke.
type InvariantError struct {
	Trial  int
	Roll   int
	Detail string
}

func (e *InvariantError) Error() string {
	return fmt.Sprintf("trial %d roll %d: %s: %s", e.Trial, e.Roll, ErrInvariant, e.Detail)
}

// Unwrap lets errors.Is match ErrInvariant.
func (e *InvariantError) Unwrap() error {
	return ErrInvariant
}

// Invariantf builds an InvariantError with a formatted detail.
// Trial and Roll are filled in by the layer that knows them.
func Invariantf(format string, args ...any) *InvariantError {
	return &InvariantError{Detail: fmt.Sprintf(format, args...)}
}
