package syncgraph

import (
	"errors"
	"fmt"
)

// ValidationError reports malformed widget input: non-numeric percent
// text, values outside the declared slider range, or a bad bracket index.
// It is surfaced to the boundary layer for user correction and never
// reaches the tax engine.
type ValidationError struct {
	Field  string
	Value  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s %q: %s", e.Field, e.Value, e.Reason)
}

// IsValidationError reports whether err is a ValidationError.
// Uses errors.As to handle wrapped errors.
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
