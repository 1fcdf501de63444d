// Package aggregate folds stored session events and population data into
// the summary statistics the results view consumes: mean submitted rates,
// projected revenue, and deltas against fixed baselines.
//
// All display rounding lives here. The tax engine underneath returns
// exact values; this package decides what the user sees.
package aggregate

import (
	"context"
	"math"

	"github.com/ratelab/ratelab/internal/schedule"
	"github.com/ratelab/ratelab/internal/store"
	"github.com/ratelab/ratelab/internal/taxcalc"
)

// Querier is the slice of the event store the aggregator reads.
// Satisfied by *store.Store.
type Querier interface {
	QueryAllByType(ctx context.Context, eventType store.EventType) ([]store.Event, int, error)
}

// BandRevenueRounding is the display granularity for per-band revenue
// aggregated across the whole population: nearest ten million, matching
// the scale of the statewide dataset.
const BandRevenueRounding = 10_000_000

// Aggregator computes cross-session and population-level statistics.
type Aggregator struct {
	querier  Querier
	pop      taxcalc.Population
	baseline float64
}

// New creates an aggregator over the given store, population dataset, and
// baseline revenue constant.
func New(querier Querier, pop taxcalc.Population, baseline float64) *Aggregator {
	return &Aggregator{querier: querier, pop: pop, baseline: baseline}
}

// AverageRates returns the mean rate vector across all submitted
// sessions, with the submission count.
//
// Only submit events are aggregation-eligible; edits are session-local
// history. Zero submissions is NoDataError, never a silent NaN vector.
func (a *Aggregator) AverageRates(ctx context.Context) (schedule.RateVector, int, error) {
	events, count, err := a.querier.QueryAllByType(ctx, store.EventSubmit)
	if err != nil {
		return nil, 0, err
	}
	if count == 0 {
		return nil, 0, &NoDataError{Aggregate: "average rates"}
	}

	sums := make(schedule.RateVector, len(events[0].Rates))
	for _, ev := range events {
		for i, r := range ev.Rates {
			if i < len(sums) {
				sums[i] += r
			}
		}
	}
	for i := range sums {
		sums[i] /= float64(count)
	}
	return sums, count, nil
}

// TotalRevenue projects statewide collections under a rate vector,
// rounded to the nearest dollar for display. Each band's exact revenue is
// rounded to the dollar before summing, matching the results view's
// band-by-band table.
func (a *Aggregator) TotalRevenue(rates schedule.RateVector) float64 {
	var total float64
	for _, rev := range taxcalc.RevenueByBand(a.pop, rates) {
		total += math.Round(rev)
	}
	return math.Round(total)
}

// BandRevenueDisplay returns per-band projected revenue rounded to the
// band display granularity, in band order.
func (a *Aggregator) BandRevenueDisplay(rates schedule.RateVector) []float64 {
	bands := taxcalc.RevenueByBand(a.pop, rates)
	out := make([]float64, len(bands))
	for i, rev := range bands {
		out[i] = math.Round(rev/BandRevenueRounding) * BandRevenueRounding
	}
	return out
}

// RevenueDelta compares projected collections against the configured
// baseline (current real-world collections).
func (a *Aggregator) RevenueDelta(rates schedule.RateVector) Delta {
	total := a.TotalRevenue(rates)
	return NewDelta(total, a.baseline)
}

// Baseline returns the configured reference revenue.
func (a *Aggregator) Baseline() float64 {
	return a.baseline
}
