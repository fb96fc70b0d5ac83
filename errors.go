package topoguia

import (
	"errors"
	"fmt"
)

// Sentinel errors for document generation failure conditions.
var (
	ErrNoInstructions = errors.New("topoguia: empty instruction set")
	ErrUnknownBlock   = errors.New("topoguia: unknown block kind")
	ErrBadStationery  = errors.New("topoguia: stationery template could not be imported")
)

// ValidationError reports a single out-of-contract input field. It is always
// recoverable by the caller: the offending field and the violated constraint
// are carried so the form can surface them next to the input.
type ValidationError struct {
	Field      string // record field, e.g. "environmentSeverity", "distanceKm"
	Value      any    // the rejected value
	Constraint string // human-readable constraint, e.g. "must be between 1 and 5"
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("topoguia: field %q: %v: %s", e.Field, e.Value, e.Constraint)
}

// Invalid creates a ValidationError for the given field.
func Invalid(field string, value any, constraint string) *ValidationError {
	return &ValidationError{Field: field, Value: value, Constraint: constraint}
}

// IsValidation reports whether err is (or wraps) a ValidationError, and
// returns it if so.
func IsValidation(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}

// MissingMediaWarning notes an absent image slot. It is never fatal: the
// layout builder substitutes a placeholder block for the region and carries
// the warning alongside the instruction set.
type MissingMediaWarning struct {
	Slot string // media slot name, e.g. "topoMap"
}

func (w MissingMediaWarning) String() string {
	return fmt.Sprintf("missing media %q, placeholder substituted", w.Slot)
}
