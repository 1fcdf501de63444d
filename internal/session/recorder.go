package session

import (
	"context"
	"log/slog"
	"time"

	"github.com/ratelab/ratelab/internal/geo"
	"github.com/ratelab/ratelab/internal/schedule"
	"github.com/ratelab/ratelab/internal/store"
)

// Appender is the slice of the event store the recorder needs.
// Satisfied by *store.Store.
type Appender interface {
	Append(ctx context.Context, event store.Event) error
}

// DefaultGeoTimeout bounds the external geolocation call so a slow lookup
// cannot stall an append indefinitely.
const DefaultGeoTimeout = 2 * time.Second

// Recorder turns user interactions into session events.
//
// The ordering contract is compute-then-persist: by the time a record
// method runs, the caller has already computed and displayed its result.
// A store failure is returned for logging but there is nothing left to
// block.
//
// Not safe for concurrent use; create one recorder per user session,
// mirroring the one-page-load-one-session model.
type Recorder struct {
	appender   Appender
	resolver   geo.Resolver
	tokens     TokenGenerator
	now        func() time.Time
	geoTimeout time.Duration

	current string
}

// RecorderOption configures a Recorder.
type RecorderOption func(*Recorder)

// WithNow overrides the wall clock, for deterministic tests.
func WithNow(now func() time.Time) RecorderOption {
	return func(r *Recorder) {
		r.now = now
	}
}

// WithGeoTimeout overrides the geolocation latency bound.
func WithGeoTimeout(d time.Duration) RecorderOption {
	return func(r *Recorder) {
		r.geoTimeout = d
	}
}

// NewRecorder creates a recorder and issues the visit's first session id.
func NewRecorder(appender Appender, resolver geo.Resolver, tokens TokenGenerator, opts ...RecorderOption) *Recorder {
	r := &Recorder{
		appender:   appender,
		resolver:   resolver,
		tokens:     tokens,
		now:        time.Now,
		geoTimeout: DefaultGeoTimeout,
		current:    tokens.Generate(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// SessionID returns the id in effect for the next event.
func (r *Recorder) SessionID() string {
	return r.current
}

// RecordEdit appends an edit event under the current session id.
// Edits never rotate the id.
func (r *Recorder) RecordEdit(ctx context.Context, clientIP string, rates schedule.RateVector, income float64) error {
	return r.append(ctx, store.EventEdit, clientIP, rates, income)
}

// RecordSubmit appends a submit event under the current session id, then
// rotates to a fresh id for any subsequent interaction in the same
// browser session.
//
// Returns the id the record was written under - the handle the results
// view uses - even when the append failed; the rotation happens
// regardless, because the user's round is closed either way.
func (r *Recorder) RecordSubmit(ctx context.Context, clientIP string, rates schedule.RateVector, income float64) (string, error) {
	submitted := r.current
	err := r.append(ctx, store.EventSubmit, clientIP, rates, income)

	r.current = r.tokens.Generate()
	slog.Debug("session rotated", "submitted", submitted, "next", r.current)

	return submitted, err
}

// append resolves the location and writes one event.
func (r *Recorder) append(ctx context.Context, eventType store.EventType, clientIP string, rates schedule.RateVector, income float64) error {
	event := store.Event{
		SessionID: r.current,
		Timestamp: r.now().UTC(),
		Type:      eventType,
		Location:  r.locate(ctx, clientIP),
		Rates:     rates.Clone(),
		Income:    income,
	}

	if err := r.appender.Append(ctx, event); err != nil {
		slog.Error("event append failed",
			"session_id", event.SessionID,
			"type", event.Type,
			"error", err,
		)
		return err
	}
	return nil
}

// locate runs the bounded geolocation lookup. Failures degrade to the
// Unknown sentinel; they never abort the append.
func (r *Recorder) locate(ctx context.Context, clientIP string) string {
	geoCtx, cancel := context.WithTimeout(ctx, r.geoTimeout)
	defer cancel()

	loc, err := r.resolver.Locate(geoCtx, clientIP)
	if err != nil {
		slog.Warn("geo lookup failed, recording unknown location",
			"ip", clientIP,
			"error", err,
		)
		return geo.Unknown
	}
	return loc.String()
}
