// Package schedule defines the bracket schema and rate vector types shared
// by every component: the tax engine, the widget sync controller, the event
// store, and the aggregator all speak in these values.
//
// Brackets are process-wide immutable configuration. They are validated once
// at load time and never change for the lifetime of the process.
package schedule

import (
	"fmt"
	"regexp"
)

// Bracket is a contiguous income range subject to one marginal rate.
// The last bracket's Upper is capped at Ceiling rather than being open-ended.
type Bracket struct {
	Lower float64
	Upper float64
}

// Ceiling caps the top bracket. A trillion dollars is the maximum income
// the surrounding input widgets accept.
const Ceiling = 1_000_000_000_000

// ValidateBrackets checks that brackets are ordered ascending, non-empty,
// and contiguous. Contiguity tolerates the one-dollar offset that published
// schedules use between a bracket's upper bound and the next lower bound.
func ValidateBrackets(brackets []Bracket) error {
	if len(brackets) == 0 {
		return fmt.Errorf("schedule requires at least one bracket")
	}
	for i, b := range brackets {
		if b.Lower < 0 {
			return fmt.Errorf("bracket %d: lower bound %v is negative", i, b.Lower)
		}
		if b.Upper <= b.Lower {
			return fmt.Errorf("bracket %d: upper bound %v not above lower bound %v", i, b.Upper, b.Lower)
		}
		if i > 0 {
			prev := brackets[i-1]
			if b.Lower < prev.Upper || b.Lower > prev.Upper+1 {
				return fmt.Errorf("bracket %d: lower bound %v not contiguous with previous upper bound %v", i, b.Lower, prev.Upper)
			}
		}
	}
	return nil
}

// RateVector holds one fractional rate per bracket, in bracket order.
// Mutation happens only by whole-vector replacement or single-index update,
// and only inside the sync controller; everyone else works on snapshots.
type RateVector []float64

// Clone returns an independent copy of the vector.
func (r RateVector) Clone() RateVector {
	if r == nil {
		return nil
	}
	out := make(RateVector, len(r))
	copy(out, r)
	return out
}

// EqualAtFractionPrecision reports whether two vectors agree entry-by-entry
// after rounding to the stored fraction precision. This is the comparison
// the preset selector uses for its cycle-breaking no-op check.
func (r RateVector) EqualAtFractionPrecision(other RateVector) bool {
	if len(r) != len(other) {
		return false
	}
	for i := range r {
		if RoundFraction(r[i]) != RoundFraction(other[i]) {
			return false
		}
	}
	return true
}

// Flat returns a vector applying the same rate to n brackets.
func Flat(rate float64, n int) RateVector {
	out := make(RateVector, n)
	for i := range out {
		out[i] = rate
	}
	return out
}

// Preset is a named external rate schedule from the static catalog.
type Preset struct {
	Label string
	Key   string
	Rates RateVector
}

// kPattern shortens thousands in band labels: "$25,001-50,000" -> "$25k-50k".
var kPattern = regexp.MustCompile(`,00[01]`)

// ShortLabel applies the thousand-shortening used by band labels in
// display output.
func ShortLabel(label string) string {
	return kPattern.ReplaceAllString(label, "k")
}
