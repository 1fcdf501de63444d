package store

import (
	"errors"
	"fmt"
)

// UnavailableError reports a persistence-layer failure. An append failure
// must never prevent the user from seeing their computed result
// (compute-then-persist); a query failure on the aggregation path is
// surfaced as an explicit error state to that view.
type UnavailableError struct {
	Op  string
	Err error
}

func (e *UnavailableError) Error() string {
	return fmt.Sprintf("event store unavailable (%s): %v", e.Op, e.Err)
}

func (e *UnavailableError) Unwrap() error {
	return e.Err
}

// IsUnavailable reports whether err is an UnavailableError.
// Uses errors.As to handle wrapped errors.
func IsUnavailable(err error) bool {
	var ue *UnavailableError
	return errors.As(err, &ue)
}
