package syncgraph

import "github.com/ratelab/ratelab/internal/schedule"

// UpdateKind distinguishes which side of the graph an update targets.
type UpdateKind int

const (
	// UpdateFraction targets the slider side (emitted by a percent edit).
	UpdateFraction UpdateKind = iota + 1
	// UpdatePercent targets the numeric field side (emitted by a fraction
	// edit).
	UpdatePercent
	// UpdateAll replaces the whole widget set (emitted by a preset).
	UpdateAll
)

func (k UpdateKind) String() string {
	switch k {
	case UpdateFraction:
		return "fraction"
	case UpdatePercent:
		return "percent"
	case UpdateAll:
		return "all"
	default:
		return "unknown"
	}
}

// Update describes one emission from the controller to the surrounding UI.
// For single-index kinds, Fraction and Percent carry the canonical pair at
// Index. For UpdateAll, Rates carries the full replacement snapshot.
type Update struct {
	Kind     UpdateKind
	Index    int
	Fraction float64
	Percent  float64
	Rates    schedule.RateVector
}
