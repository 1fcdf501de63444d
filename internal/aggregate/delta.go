package aggregate

import (
	"math"

	"github.com/ratelab/ratelab/internal/schedule"
	"github.com/ratelab/ratelab/internal/taxcalc"
)

// Sign is the three-way flag on a delta. "No change" is a real outcome
// for this tool's users, distinct from both directions, so the branch is
// three-way rather than a boolean comparison.
type Sign int

const (
	// SignNegative flags less revenue collected / a lower bill.
	SignNegative Sign = iota - 1
	// SignZero flags no change.
	SignZero
	// SignPositive flags more revenue collected / a higher bill.
	SignPositive
)

func (s Sign) String() string {
	switch s {
	case SignNegative:
		return "negative"
	case SignZero:
		return "zero"
	default:
		return "positive"
	}
}

// SignOf classifies a signed difference.
func SignOf(delta float64) Sign {
	switch {
	case delta > 0:
		return SignPositive
	case delta < 0:
		return SignNegative
	default:
		return SignZero
	}
}

// Delta is a signed difference against a baseline, with its display
// magnitude and three-way flag.
type Delta struct {
	Value     float64
	Magnitude float64
	Sign      Sign
}

// NewDelta builds the delta of total against baseline.
func NewDelta(total, baseline float64) Delta {
	v := total - baseline
	return Delta{Value: v, Magnitude: math.Abs(v), Sign: SignOf(v)}
}

// BillComparison is the personal bill view: the bill under the current
// schedule, the bill under the customized rates, and their difference.
// Amounts are rounded to the nearest dollar for display.
type BillComparison struct {
	Current    float64
	Customized float64
	Delta      Delta
}

// CompareBills computes the personal comparison for one income. Both
// bills run through the same shared tax engine.
func CompareBills(income float64, customized, current schedule.RateVector, brackets []schedule.Bracket) BillComparison {
	newBill := math.Round(taxcalc.Compute(income, customized, brackets).Total)
	oldBill := math.Round(taxcalc.Compute(income, current, brackets).Total)
	return BillComparison{
		Current:    oldBill,
		Customized: newBill,
		Delta:      NewDelta(newBill, oldBill),
	}
}
