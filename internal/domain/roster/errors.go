package roster

import (
	"errors"
	"fmt"
)

// ErrValidation is the kind of every malformed-input error from Synthesize.
var ErrValidation = errors.New("invalid roster input")

// ValidationError points at the offending row and field.
type ValidationError struct {
	Index  int
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: row %d: %s: %s", ErrValidation, e.Index, e.Field, e.Reason)
}

// Unwrap lets errors.Is(err, ErrValidation) match.
func (e *ValidationError) Unwrap() error { return ErrValidation }

func invalid(index int, field, format string, args ...any) error {
	return &ValidationError{Index: index, Field: field, Reason: fmt.Sprintf(format, args...)}
}
