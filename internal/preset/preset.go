// Package preset resolves named external rate schedules and pushes them
// into the sync controller as bulk updates.
package preset

import (
	"log/slog"

	"github.com/ratelab/ratelab/internal/schedule"
	"github.com/ratelab/ratelab/internal/syncgraph"
)

// Catalog is the static, read-only set of preset entries, in declaration
// order. Built once at startup from the schedule config.
type Catalog struct {
	entries []schedule.Preset
	byKey   map[string]int
}

// NewCatalog builds a catalog from entries. Keys must be unique and every
// entry's rate vector must span the full bracket count.
func NewCatalog(entries []schedule.Preset, bracketCount int) (*Catalog, error) {
	byKey := make(map[string]int, len(entries))
	for i, e := range entries {
		if e.Key == "" {
			return nil, &NotFoundError{Key: "", Reason: "empty preset key"}
		}
		if _, dup := byKey[e.Key]; dup {
			return nil, &NotFoundError{Key: e.Key, Reason: "duplicate preset key"}
		}
		if len(e.Rates) != bracketCount {
			return nil, &NotFoundError{Key: e.Key, Reason: "rate vector does not span all brackets"}
		}
		byKey[e.Key] = i
	}

	copied := make([]schedule.Preset, len(entries))
	copy(copied, entries)
	return &Catalog{entries: copied, byKey: byKey}, nil
}

// Entries returns the catalog in declaration order.
func (c *Catalog) Entries() []schedule.Preset {
	out := make([]schedule.Preset, len(c.entries))
	copy(out, c.entries)
	return out
}

// Resolve maps a preset key to its rate vector. An absent key is a
// NotFoundError: UI-constrained input should make that impossible, but it
// must still be checked.
func (c *Catalog) Resolve(key string) (schedule.RateVector, error) {
	i, ok := c.byKey[key]
	if !ok {
		return nil, &NotFoundError{Key: key, Reason: "not in catalog"}
	}
	return c.entries[i].Rates.Clone(), nil
}

// Selector applies catalog choices to a sync controller.
type Selector struct {
	catalog    *Catalog
	controller *syncgraph.Controller
}

// NewSelector wires a catalog to the controller it updates.
func NewSelector(catalog *Catalog, controller *syncgraph.Controller) *Selector {
	return &Selector{catalog: catalog, controller: controller}
}

// OnPresetChosen handles a catalog selection. When currentRates already
// equals the resolved vector at fraction precision per entry, the call is
// a no-op (the cycle breaker symmetric to the widget pairs); otherwise it
// delegates to ApplyPreset for an unconditional full replacement.
//
// Returns the emitted update, or nil for the no-op.
func (s *Selector) OnPresetChosen(key string, currentRates schedule.RateVector) (*syncgraph.Update, error) {
	rates, err := s.catalog.Resolve(key)
	if err != nil {
		return nil, err
	}

	if currentRates.EqualAtFractionPrecision(rates) {
		slog.Debug("preset already applied, skipping", "key", key)
		return nil, nil
	}

	upd, err := s.controller.ApplyPreset(rates)
	if err != nil {
		return nil, err
	}
	slog.Info("preset applied", "key", key)
	return upd, nil
}
