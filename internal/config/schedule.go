package config

import (
	"fmt"

	"github.com/ratelab/ratelab/internal/schedule"
	"github.com/ratelab/ratelab/internal/taxcalc"
)

// Schedule is the full rate exploration setup. Every field is populated:
// loading fills gaps from the built-in defaults before validation.
type Schedule struct {
	Brackets      []schedule.Bracket
	BandLabels    []string
	DefaultRates  schedule.RateVector
	DefaultIncome float64
	Baseline      float64
	Presets       []schedule.Preset
	Population    taxcalc.Population
}

// Default returns the built-in Illinois setup: the five-band bracket
// schema, the 4.95% flat rate, the ten-state preset catalog, and the
// statewide population dataset.
func Default() *Schedule {
	return &Schedule{
		Brackets:      schedule.DefaultBrackets(),
		BandLabels:    schedule.DefaultBandLabels(),
		DefaultRates:  schedule.DefaultRates(),
		DefaultIncome: schedule.DefaultIncome,
		Baseline:      schedule.BaselineRevenue,
		Presets:       schedule.DefaultPresets(),
		Population:    taxcalc.DefaultPopulation(),
	}
}

// Validate checks cross-section consistency: bracket contiguity, vector
// lengths against the bracket count, and preset completeness.
func (s *Schedule) Validate() []error {
	var errs []error

	if err := schedule.ValidateBrackets(s.Brackets); err != nil {
		errs = append(errs, &LoadError{Code: ErrCodeBrackets, Message: err.Error()})
	}
	n := len(s.Brackets)

	if len(s.BandLabels) != n {
		errs = append(errs, &LoadError{
			Code:    ErrCodeBrackets,
			Message: fmt.Sprintf("bandLabels has %d entries, schema has %d brackets", len(s.BandLabels), n),
		})
	}
	if len(s.DefaultRates) != n {
		errs = append(errs, &LoadError{
			Code:    ErrCodeRates,
			Message: fmt.Sprintf("defaultRates has %d entries, schema has %d brackets", len(s.DefaultRates), n),
		})
	}
	for _, r := range s.DefaultRates {
		if r < 0 || r > 1 {
			errs = append(errs, &LoadError{
				Code:    ErrCodeRates,
				Message: fmt.Sprintf("rate %v outside [0, 1]", r),
			})
		}
	}

	if s.DefaultIncome <= 0 {
		errs = append(errs, &LoadError{Code: ErrCodeBaseline, Message: "defaultIncome must be positive"})
	}
	if s.Baseline < 0 {
		errs = append(errs, &LoadError{Code: ErrCodeBaseline, Message: "baselineRevenue must be non-negative"})
	}

	seen := make(map[string]bool, len(s.Presets))
	for _, p := range s.Presets {
		switch {
		case p.Key == "":
			errs = append(errs, &LoadError{Code: ErrCodePreset, Message: "preset with empty key"})
		case seen[p.Key]:
			errs = append(errs, &LoadError{Code: ErrCodePreset, Message: fmt.Sprintf("duplicate preset key %q", p.Key)})
		case len(p.Rates) != n:
			errs = append(errs, &LoadError{
				Code:    ErrCodePreset,
				Message: fmt.Sprintf("preset %q has %d rates, schema has %d brackets", p.Key, len(p.Rates), n),
			})
		}
		seen[p.Key] = true
	}

	for _, row := range s.Population {
		if len(row.AGI) != n {
			errs = append(errs, &LoadError{
				Code:    ErrCodePopulation,
				Message: fmt.Sprintf("population band %q has %d columns, schema has %d brackets", row.Band, len(row.AGI), n),
			})
		}
		for _, agi := range row.AGI {
			if agi < 0 {
				errs = append(errs, &LoadError{
					Code:    ErrCodePopulation,
					Message: fmt.Sprintf("population band %q has negative AGI", row.Band),
				})
			}
		}
	}

	return errs
}
