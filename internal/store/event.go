package store

import (
	"fmt"
	"time"

	"github.com/ratelab/ratelab/internal/schedule"
)

// EventType classifies a session event.
type EventType string

const (
	// EventEdit records an in-progress interaction; retained for
	// session-local history but excluded from cross-session aggregation.
	EventEdit EventType = "edit"
	// EventSubmit records a finalized round; the only type eligible for
	// cross-session aggregation.
	EventSubmit EventType = "submit"
)

// Valid reports whether the type is one of the known enum values.
func (t EventType) Valid() bool {
	return t == EventEdit || t == EventSubmit
}

// Event is one immutable session event record. Once appended it is owned
// by the store; no in-memory component retains a mutable reference.
type Event struct {
	SessionID string
	Timestamp time.Time
	Type      EventType
	Location  string
	Rates     schedule.RateVector
	Income    float64
}

// Validate checks the fields required before append.
func (e Event) Validate() error {
	if e.SessionID == "" {
		return fmt.Errorf("event session id is required")
	}
	if e.Timestamp.IsZero() {
		return fmt.Errorf("event timestamp is required")
	}
	if !e.Type.Valid() {
		return fmt.Errorf("event type %q is not edit or submit", e.Type)
	}
	if len(e.Rates) == 0 {
		return fmt.Errorf("event rate vector is required")
	}
	return nil
}
