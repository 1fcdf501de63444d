package aggregate

import (
	"errors"
	"fmt"
)

// NoDataError reports an aggregate requested with zero underlying
// submissions. It surfaces as an explicit "not enough data yet" state:
// the division by zero is guarded, never a silent NaN.
type NoDataError struct {
	Aggregate string
}

func (e *NoDataError) Error() string {
	return fmt.Sprintf("%s: no submissions yet", e.Aggregate)
}

// IsNoData reports whether err is a NoDataError.
// Uses errors.As to handle wrapped errors.
func IsNoData(err error) bool {
	var nde *NoDataError
	return errors.As(err, &nde)
}
