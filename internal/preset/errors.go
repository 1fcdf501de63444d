package preset

import (
	"errors"
	"fmt"
)

// NotFoundError reports a preset key absent from the static catalog. This
// is a programmer or data error: callers should log it and treat the
// interaction as a no-op rather than crash.
type NotFoundError struct {
	Key    string
	Reason string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("preset %q: %s", e.Key, e.Reason)
}

// IsNotFound reports whether err is a NotFoundError.
// Uses errors.As to handle wrapped errors.
func IsNotFound(err error) bool {
	var nfe *NotFoundError
	return errors.As(err, &nfe)
}
