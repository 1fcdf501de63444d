package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ratelab/ratelab/internal/geo"
	"github.com/ratelab/ratelab/internal/schedule"
	"github.com/ratelab/ratelab/internal/store"
)

// memAppender collects events in memory, optionally failing every append.
type memAppender struct {
	events []store.Event
	err    error
}

func (m *memAppender) Append(_ context.Context, event store.Event) error {
	if m.err != nil {
		return m.err
	}
	m.events = append(m.events, event)
	return nil
}

func chicago() geo.Resolver {
	return geo.StaticResolver{Location: geo.Location{City: "Chicago", Region: "IL"}}
}

func fixedNow() time.Time {
	return time.Date(2019, 4, 1, 12, 0, 0, 0, time.UTC)
}

func TestNewRecorder_IssuesFirstID(t *testing.T) {
	r := NewRecorder(&memAppender{}, chicago(), NewFixedTokens("visit-1"))
	assert.Equal(t, "visit-1", r.SessionID())
}

func TestRecordEdit_KeepsSessionID(t *testing.T) {
	app := &memAppender{}
	r := NewRecorder(app, chicago(), NewFixedTokens("visit-1"), WithNow(fixedNow))

	rates := schedule.DefaultRates()
	require.NoError(t, r.RecordEdit(context.Background(), "203.0.113.7", rates, 60_000))
	require.NoError(t, r.RecordEdit(context.Background(), "203.0.113.7", rates, 72_000))

	assert.Equal(t, "visit-1", r.SessionID())
	require.Len(t, app.events, 2)
	for _, ev := range app.events {
		assert.Equal(t, "visit-1", ev.SessionID)
		assert.Equal(t, store.EventEdit, ev.Type)
		assert.Equal(t, "Chicago, IL", ev.Location)
	}
}

func TestRecordSubmit_RotatesSessionID(t *testing.T) {
	app := &memAppender{}
	r := NewRecorder(app, chicago(), NewFixedTokens("visit-1", "visit-2"), WithNow(fixedNow))

	submitted, err := r.RecordSubmit(context.Background(), "203.0.113.7", schedule.DefaultRates(), 60_000)
	require.NoError(t, err)

	// The record is written under the pre-rotation id.
	assert.Equal(t, "visit-1", submitted)
	require.Len(t, app.events, 1)
	assert.Equal(t, "visit-1", app.events[0].SessionID)
	assert.Equal(t, store.EventSubmit, app.events[0].Type)

	// Subsequent interaction carries the fresh id.
	assert.Equal(t, "visit-2", r.SessionID())
}

func TestRecordSubmit_RotatesEvenWhenAppendFails(t *testing.T) {
	app := &memAppender{err: &store.UnavailableError{Op: "append", Err: errors.New("disk gone")}}
	r := NewRecorder(app, chicago(), NewFixedTokens("visit-1", "visit-2"))

	submitted, err := r.RecordSubmit(context.Background(), "203.0.113.7", schedule.DefaultRates(), 60_000)
	require.Error(t, err)
	assert.True(t, store.IsUnavailable(err))
	assert.Equal(t, "visit-1", submitted)
	assert.Equal(t, "visit-2", r.SessionID())
}

func TestRecordEdit_GeoFailureDegradesToUnknown(t *testing.T) {
	app := &memAppender{}
	resolver := geo.StaticResolver{Err: errors.New("mmdb missing")}
	r := NewRecorder(app, resolver, NewFixedTokens("visit-1"))

	// The lookup fails but the append still proceeds.
	require.NoError(t, r.RecordEdit(context.Background(), "203.0.113.7", schedule.DefaultRates(), 60_000))
	require.Len(t, app.events, 1)
	assert.Equal(t, geo.Unknown, app.events[0].Location)
}

func TestRecordEdit_LoopbackRecordsLocalHost(t *testing.T) {
	app := &memAppender{}
	r := NewRecorder(app, chicago(), NewFixedTokens("visit-1"))

	require.NoError(t, r.RecordEdit(context.Background(), "127.0.0.1", schedule.DefaultRates(), 60_000))
	require.Len(t, app.events, 1)
	assert.Equal(t, "Local, HOST", app.events[0].Location)
}

func TestRecordEdit_SnapshotsRates(t *testing.T) {
	app := &memAppender{}
	r := NewRecorder(app, chicago(), NewFixedTokens("visit-1"))

	rates := schedule.DefaultRates()
	require.NoError(t, r.RecordEdit(context.Background(), "203.0.113.7", rates, 60_000))

	// Mutating the caller's vector afterwards must not change the event.
	rates[0] = 0.99
	assert.Equal(t, 0.0495, app.events[0].Rates[0])
}

func TestFixedTokens_PanicsWhenExhausted(t *testing.T) {
	gen := NewFixedTokens("only")
	assert.Equal(t, "only", gen.Generate())
	assert.Panics(t, func() { gen.Generate() })
}

func TestUUIDv7Generator_UniqueAndSortable(t *testing.T) {
	gen := UUIDv7Generator{}
	a := gen.Generate()
	b := gen.Generate()
	assert.NotEqual(t, a, b)
	assert.Len(t, a, 36)
	// v7 tokens issued in order sort in order.
	assert.Less(t, a, b)
}
