package store

import (
	"context"
	"database/sql"
)

// QueryBySession returns all events for one session matching the given
// type, ordered by timestamp ascending.
//
// Returns an empty slice (not nil) if no records match.
func (s *Store) QueryBySession(ctx context.Context, sessionID string, eventType EventType) ([]Event, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT session_id, timestamp, event_type, location, tax_rates, income
		FROM session_events
		WHERE session_id = ? AND event_type = ?
		ORDER BY timestamp ASC
	`, sessionID, string(eventType))
	if err != nil {
		return nil, &UnavailableError{Op: "query session", Err: err}
	}
	defer rows.Close()

	return collectEvents(rows)
}

// QueryAllByType returns every event of the given type across all
// sessions, with a count. This is a full scan over the secondary
// dimension with best-effort snapshot semantics: it may lag appends that
// land while the scan runs, which is acceptable for analytics reads.
func (s *Store) QueryAllByType(ctx context.Context, eventType EventType) ([]Event, int, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT session_id, timestamp, event_type, location, tax_rates, income
		FROM session_events
		WHERE event_type = ?
	`, string(eventType))
	if err != nil {
		return nil, 0, &UnavailableError{Op: "scan by type", Err: err}
	}
	defer rows.Close()

	events, err := collectEvents(rows)
	if err != nil {
		return nil, 0, err
	}
	return events, len(events), nil
}

// collectEvents drains a result set into event records.
func collectEvents(rows *sql.Rows) ([]Event, error) {
	var events []Event
	for rows.Next() {
		ev, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, ev)
	}

	if err := rows.Err(); err != nil {
		return nil, &UnavailableError{Op: "iterate events", Err: err}
	}

	// Return empty slice instead of nil
	if events == nil {
		events = []Event{}
	}
	return events, nil
}

// scanEvent reads one row and reconverts the decimal columns to floats.
func scanEvent(rows *sql.Rows) (Event, error) {
	var (
		ev         Event
		ts         string
		eventType  string
		ratesText  string
		incomeText string
	)
	if err := rows.Scan(&ev.SessionID, &ts, &eventType, &ev.Location, &ratesText, &incomeText); err != nil {
		return Event{}, &UnavailableError{Op: "scan event", Err: err}
	}

	parsed, err := parseTimestamp(ts)
	if err != nil {
		return Event{}, err
	}
	ev.Timestamp = parsed
	ev.Type = EventType(eventType)

	ev.Rates, err = unmarshalRates(ratesText)
	if err != nil {
		return Event{}, err
	}
	ev.Income, err = unmarshalIncome(incomeText)
	if err != nil {
		return Event{}, err
	}

	return ev, nil
}
