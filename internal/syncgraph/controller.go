package syncgraph

import (
	"log/slog"
	"strconv"

	"github.com/ratelab/ratelab/internal/schedule"
)

// WidgetPair is the paired state for one bracket index. Both values always
// represent the same rate modulo their stored precisions. The pair is owned
// exclusively by the Controller; consumers receive read-only snapshots.
type WidgetPair struct {
	// Fraction is the slider-side value, rounded to four decimal places.
	Fraction float64
	// Percent is the numeric-field-side value, rounded to two decimal
	// places.
	Percent float64
}

// PercentText renders the percent value the way the numeric field
// displays it.
func (p WidgetPair) PercentText() string {
	return strconv.FormatFloat(p.Percent, 'f', -1, 64)
}

// RecomputeFunc receives the current rate vector snapshot after a
// successful update. Subscribers must treat the snapshot as read-only.
type RecomputeFunc func(rates schedule.RateVector)

type subscriber struct {
	name string
	fn   RecomputeFunc
}

// Controller mediates updates between the fraction and percent sides of
// every bracket's widget pair and fans out recompute requests.
type Controller struct {
	pairs []WidgetPair
	subs  []subscriber
}

// NewController builds a controller seeded with the given rates, one
// widget pair per entry. Both sides of each pair start at the canonical
// rounding of the seed rate.
func NewController(initial schedule.RateVector) *Controller {
	pairs := make([]WidgetPair, len(initial))
	for i, r := range initial {
		frac := schedule.RoundFraction(r)
		pairs[i] = WidgetPair{
			Fraction: frac,
			Percent:  schedule.PercentFromFraction(frac),
		}
	}
	return &Controller{pairs: pairs}
}

// Subscribe registers a recompute target. Subscribers are notified in
// registration order, all with the same snapshot.
func (c *Controller) Subscribe(name string, fn RecomputeFunc) {
	c.subs = append(c.subs, subscriber{name: name, fn: fn})
}

// Len returns the number of widget pairs.
func (c *Controller) Len() int {
	return len(c.pairs)
}

// Pair returns a copy of the widget pair at index i.
func (c *Controller) Pair(i int) (WidgetPair, error) {
	if err := c.checkIndex(i); err != nil {
		return WidgetPair{}, err
	}
	return c.pairs[i], nil
}

// Rates returns a snapshot of the current rate vector, built from the
// fraction sides in bracket order.
func (c *Controller) Rates() schedule.RateVector {
	out := make(schedule.RateVector, len(c.pairs))
	for i, p := range c.pairs {
		out[i] = p.Fraction
	}
	return out
}

// OnFractionEdited handles a slider-side edit. The new fraction must be
// within the slider's declared [0,1] range.
//
// Returns the percent-side update when one is needed, or nil when the
// percent side already agrees at its precision (the cycle-breaking no-op).
func (c *Controller) OnFractionEdited(i int, newFraction float64) (*Update, error) {
	if err := c.checkIndex(i); err != nil {
		return nil, err
	}
	if newFraction < 0 || newFraction > 1 {
		return nil, &ValidationError{
			Field:  "fraction",
			Value:  strconv.FormatFloat(newFraction, 'f', -1, 64),
			Reason: "outside slider range [0,1]",
		}
	}

	pair := &c.pairs[i]
	frac := schedule.RoundFraction(newFraction)
	wouldBePercent := schedule.PercentFromFraction(frac)

	changed := frac != pair.Fraction
	pair.Fraction = frac

	var upd *Update
	if wouldBePercent != pair.Percent {
		pair.Percent = wouldBePercent
		upd = &Update{Kind: UpdatePercent, Index: i, Fraction: frac, Percent: wouldBePercent}
		slog.Debug("percent update emitted",
			"index", i,
			"fraction", frac,
			"percent", wouldBePercent,
		)
	}

	if changed {
		c.notify()
	}
	return upd, nil
}

// OnPercentEdited handles a numeric-field edit with the raw text the field
// holds. Malformed or out-of-range text is a ValidationError and never
// reaches the rate vector.
//
// Returns the fraction-side update when one is needed, or nil when the
// fraction side already agrees at its precision.
func (c *Controller) OnPercentEdited(i int, newPercentText string) (*Update, error) {
	if err := c.checkIndex(i); err != nil {
		return nil, err
	}

	percent, err := strconv.ParseFloat(newPercentText, 64)
	if err != nil {
		return nil, &ValidationError{Field: "percent", Value: newPercentText, Reason: "not a number"}
	}
	if percent < 0 || percent > 100 {
		return nil, &ValidationError{Field: "percent", Value: newPercentText, Reason: "outside input range [0,100]"}
	}

	pair := &c.pairs[i]
	wouldBeFraction := schedule.FractionFromPercent(percent)
	pct := schedule.RoundPercent(percent)

	if wouldBeFraction == pair.Fraction {
		// Cycle breaker: the fraction side already records this rate.
		// Normalize the stored percent but emit nothing.
		pair.Percent = pct
		return nil, nil
	}

	pair.Fraction = wouldBeFraction
	pair.Percent = pct
	upd := &Update{Kind: UpdateFraction, Index: i, Fraction: wouldBeFraction, Percent: pct}
	slog.Debug("fraction update emitted",
		"index", i,
		"fraction", wouldBeFraction,
		"percent", pct,
	)

	c.notify()
	return upd, nil
}

// ApplyPreset replaces every widget pair with the given vector as one bulk
// update. Unlike the per-widget paths there is no diffing: the full
// replacement update is always emitted, because the catalog selector widget
// re-renders the whole widget set regardless of whether values changed.
func (c *Controller) ApplyPreset(rates schedule.RateVector) (*Update, error) {
	if len(rates) != len(c.pairs) {
		return nil, &ValidationError{
			Field:  "rates",
			Value:  strconv.Itoa(len(rates)),
			Reason: "length does not match widget count " + strconv.Itoa(len(c.pairs)),
		}
	}

	for i, r := range rates {
		frac := schedule.RoundFraction(r)
		c.pairs[i] = WidgetPair{
			Fraction: frac,
			Percent:  schedule.PercentFromFraction(frac),
		}
	}

	snapshot := c.Rates()
	upd := &Update{Kind: UpdateAll, Rates: snapshot}
	slog.Debug("full widget-set replacement emitted", "rates", snapshot)

	c.notify()
	return upd, nil
}

// notify fans out the current snapshot to all subscribers in registration
// order. Every subscriber sees the same vector.
func (c *Controller) notify() {
	if len(c.subs) == 0 {
		return
	}
	snapshot := c.Rates()
	for _, s := range c.subs {
		s.fn(snapshot)
	}
}

func (c *Controller) checkIndex(i int) error {
	if i < 0 || i >= len(c.pairs) {
		return &ValidationError{
			Field:  "index",
			Value:  strconv.Itoa(i),
			Reason: "no widget pair at this bracket index",
		}
	}
	return nil
}
