package store

import (
	"context"
	"log/slog"
)

// Append inserts one session event record. The write is atomic: either the
// whole record is visible or nothing is.
//
// Uses ON CONFLICT DO NOTHING for idempotency - re-appending the same
// (session_id, timestamp, event_type) key is silently ignored, so a
// retried append after a network timeout cannot duplicate a record.
//
// Driver or connection failures are returned as UnavailableError; callers
// on the interactive path must surface the computed result regardless.
func (s *Store) Append(ctx context.Context, event Event) error {
	if err := event.Validate(); err != nil {
		return err
	}

	ratesText, err := marshalRates(event.Rates)
	if err != nil {
		return err
	}
	incomeText := marshalIncome(event.Income)

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO session_events
		(session_id, timestamp, event_type, location, tax_rates, income)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(session_id, timestamp, event_type) DO NOTHING
	`,
		event.SessionID,
		event.Timestamp.UTC().Format(timestampFormat),
		string(event.Type),
		event.Location,
		ratesText,
		incomeText,
	)
	if err != nil {
		return &UnavailableError{Op: "append", Err: err}
	}

	slog.Debug("session event appended",
		"session_id", event.SessionID,
		"type", event.Type,
		"location", event.Location,
	)

	return nil
}
