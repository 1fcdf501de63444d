// Package taxcalc is the tiered tax engine: one shared marginal-rate
// computation that every consumer calls. The bill calculator, the
// illustration charts, and the revenue aggregator all invoke Compute with
// different (income, rates, brackets) triples and identical semantics.
//
// The engine returns exact, unrounded values. Rounding for display is a
// concern of the callers (see the aggregate package).
package taxcalc

import (
	"math"

	"github.com/ratelab/ratelab/internal/schedule"
)

// Computation is the result of applying a rate vector to one income.
type Computation struct {
	// Total is the tax owed across all brackets.
	Total float64
	// PerBracket holds each bracket's contribution, in bracket order.
	// Brackets at or above the income contribute zero.
	PerBracket []float64
}

// Compute applies marginal bracket rates to an income.
//
// For each bracket whose lower bound is below the income, the taxed amount
// is min(upper, income) - lower and the contribution is that amount times
// the bracket's rate. Income at or below zero owes nothing. Rates outside
// [0,1] are computed literally; input validation belongs to the boundary
// that accepted the rate. Brackets beyond the rate vector contribute zero.
func Compute(income float64, rates schedule.RateVector, brackets []schedule.Bracket) Computation {
	per := make([]float64, len(brackets))
	var total float64

	for i, b := range brackets {
		if b.Lower >= income || i >= len(rates) {
			continue
		}
		amt := math.Min(b.Upper, income) - b.Lower
		tax := amt * rates[i]
		per[i] = tax
		total += tax
	}

	return Computation{Total: total, PerBracket: per}
}

// BracketShare describes the slice of one income that falls inside one
// bracket, for illustration output.
type BracketShare struct {
	Index  int
	Amount float64
	Rate   float64
	Tax    float64
}

// Shares returns the non-empty bracket slices for an income, in bracket
// order. This backs the stacked-bar illustration: one segment per bracket
// the income reaches. Brackets beyond the rate vector are skipped.
func Shares(income float64, rates schedule.RateVector, brackets []schedule.Bracket) []BracketShare {
	var shares []BracketShare
	for i, b := range brackets {
		if b.Lower >= income || i >= len(rates) {
			continue
		}
		amt := math.Min(b.Upper, income) - b.Lower
		shares = append(shares, BracketShare{
			Index:  i,
			Amount: amt,
			Rate:   rates[i],
			Tax:    amt * rates[i],
		})
	}
	return shares
}
