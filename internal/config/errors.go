package config

import (
	"errors"
	"fmt"

	"cuelang.org/go/cue/token"
)

// Error code constants for schedule loading.
const (
	ErrCodeGeneric     = "C001" // Generic/unknown error
	ErrCodeNotFound    = "C002" // Path not found
	ErrCodeNoFiles     = "C003" // No CUE files found
	ErrCodeLoadFailed  = "C004" // CUE load failed
	ErrCodeBuildFailed = "C005" // CUE build failed
	ErrCodeDecodeError = "C006" // Section decode failed

	// Schedule validation errors
	ErrCodeBrackets   = "C101" // Bracket schema invalid
	ErrCodeRates      = "C102" // Rate vector invalid
	ErrCodePreset     = "C103" // Preset entry invalid
	ErrCodePopulation = "C104" // Population row invalid
	ErrCodeBaseline   = "C105" // Baseline/income invalid
)

// LoadError is an error that occurred while loading schedule
// configuration, carrying the CUE source position when one is known.
type LoadError struct {
	Code    string
	Message string
	Pos     token.Pos
}

func (e *LoadError) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s:%d:%d: %s: %s", e.Pos.Filename(), e.Pos.Line(), e.Pos.Column(), e.Code, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// IsLoadError reports whether err is (or wraps) a LoadError.
func IsLoadError(err error) bool {
	var le *LoadError
	return errors.As(err, &le)
}
