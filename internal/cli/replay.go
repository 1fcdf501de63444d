package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/ratelab/ratelab/internal/store"
)

// ReplayOptions holds flags for the replay command.
type ReplayOptions struct {
	*RootOptions
	Database string
	Session  string // optional - specific session only
}

// ReplaySessionResult holds the replay result for a single session.
type ReplaySessionResult struct {
	SessionID     string    `json:"session_id"`
	Edits         int       `json:"edits"`
	Submitted     bool      `json:"submitted"`
	Location      string    `json:"location,omitempty"`
	FinalRates    []float64 `json:"final_rates,omitempty"`
	Ordered       bool      `json:"ordered"`
	Deterministic bool      `json:"deterministic"`
}

// ReplayResult holds the overall replay result.
type ReplayResult struct {
	Sessions         []ReplaySessionResult `json:"sessions"`
	TotalSessions    int                   `json:"total_sessions"`
	AllDeterministic bool                  `json:"all_deterministic"`
}

// NewReplayCommand creates the replay command.
func NewReplayCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ReplayOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "replay",
		Short: "Replay session histories and verify the event log",
		Long: `Replay recorded session histories from the event database.

Each session's events are read back twice and compared, and timestamps
are checked for chronological order. Reports per-session statistics:
edit count, submission status, and the final submitted rates.

Exit codes:
  0 - All sessions replay cleanly
  1 - Verification failed (out-of-order or unstable reads)
  2 - Command error (database not found, etc.)

Examples:
  ratelab replay --db ./ratelab.db
  ratelab replay --db ./ratelab.db --session 01924bfa-...
  ratelab replay --db ./ratelab.db --format json`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReplay(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "path to SQLite database (defaults to RATELAB_DB_PATH)")
	cmd.Flags().StringVar(&opts.Session, "session", "", "replay a specific session only")

	return cmd
}

func runReplay(opts *ReplayOptions, cmd *cobra.Command) error {
	ctx := context.Background()

	if err := resolveSettings(&opts.Database, nil); err != nil {
		return err
	}

	st, err := store.Open(opts.Database)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to open database", err)
	}
	defer st.Close()

	var sessionIDs []string
	if opts.Session != "" {
		sessionIDs = []string{opts.Session}
	} else {
		sessionIDs, err = listSessions(ctx, st)
		if err != nil {
			return WrapExitError(ExitCommandError, "failed to list sessions", err)
		}
	}

	if len(sessionIDs) == 0 {
		if opts.Format == "json" {
			result := ReplayResult{
				Sessions:         []ReplaySessionResult{},
				TotalSessions:    0,
				AllDeterministic: true,
			}
			return outputReplayJSON(cmd, result)
		}
		fmt.Fprintln(cmd.OutOrStdout(), "No sessions found in database.")
		return nil
	}

	result := ReplayResult{
		Sessions:         make([]ReplaySessionResult, 0, len(sessionIDs)),
		TotalSessions:    len(sessionIDs),
		AllDeterministic: true,
	}

	for _, id := range sessionIDs {
		sessionResult, err := replayAndVerifySession(ctx, st, id)
		if err != nil {
			return WrapExitError(ExitCommandError, fmt.Sprintf("failed to replay session %s", id), err)
		}

		result.Sessions = append(result.Sessions, sessionResult)
		if !sessionResult.Deterministic || !sessionResult.Ordered {
			result.AllDeterministic = false
		}
	}

	if opts.Format == "json" {
		return outputReplayJSON(cmd, result)
	}
	return outputReplayText(cmd, result, opts.Verbose)
}

// listSessions collects the distinct session ids across both event types,
// sorted for stable output.
func listSessions(ctx context.Context, st *store.Store) ([]string, error) {
	seen := make(map[string]bool)
	for _, et := range []store.EventType{store.EventEdit, store.EventSubmit} {
		events, _, err := st.QueryAllByType(ctx, et)
		if err != nil {
			return nil, err
		}
		for _, ev := range events {
			seen[ev.SessionID] = true
		}
	}

	ids := make([]string, 0, len(seen))
	for id := range seen {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}

// replayAndVerifySession reads a session's history twice and verifies
// stable, chronologically ordered reads.
func replayAndVerifySession(ctx context.Context, st *store.Store, sessionID string) (ReplaySessionResult, error) {
	first, err := readSession(ctx, st, sessionID)
	if err != nil {
		return ReplaySessionResult{}, fmt.Errorf("first read failed: %w", err)
	}
	second, err := readSession(ctx, st, sessionID)
	if err != nil {
		return ReplaySessionResult{}, fmt.Errorf("second read failed: %w", err)
	}

	result := ReplaySessionResult{
		SessionID:     sessionID,
		Ordered:       isChronological(first),
		Deterministic: eventSequencesEqual(first, second),
	}
	for _, ev := range first {
		if ev.Type == store.EventEdit {
			result.Edits++
			continue
		}
		result.Submitted = true
		result.Location = ev.Location
		result.FinalRates = ev.Rates
	}
	return result, nil
}

// readSession returns the session's edits followed by its submits, each
// in timestamp order.
func readSession(ctx context.Context, st *store.Store, sessionID string) ([]store.Event, error) {
	edits, err := st.QueryBySession(ctx, sessionID, store.EventEdit)
	if err != nil {
		return nil, err
	}
	submits, err := st.QueryBySession(ctx, sessionID, store.EventSubmit)
	if err != nil {
		return nil, err
	}
	return append(edits, submits...), nil
}

// isChronological checks that timestamps never decrease within a type run.
func isChronological(events []store.Event) bool {
	for i := 1; i < len(events); i++ {
		if events[i].Type == events[i-1].Type && events[i].Timestamp.Before(events[i-1].Timestamp) {
			return false
		}
	}
	return true
}

// eventSequencesEqual compares two event sequences read from the log.
func eventSequencesEqual(a, b []store.Event) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i].SessionID != b[i].SessionID ||
			!a[i].Timestamp.Equal(b[i].Timestamp) ||
			a[i].Type != b[i].Type ||
			a[i].Location != b[i].Location ||
			a[i].Income != b[i].Income {
			return false
		}
		if len(a[i].Rates) != len(b[i].Rates) {
			return false
		}
		for j := range a[i].Rates {
			if a[i].Rates[j] != b[i].Rates[j] {
				return false
			}
		}
	}
	return true
}

// outputReplayJSON outputs the replay result as JSON.
func outputReplayJSON(cmd *cobra.Command, result ReplayResult) error {
	response := CLIResponse{
		Status: "ok",
		Data:   result,
	}

	if !result.AllDeterministic {
		response.Status = "error"
		response.Error = &CLIError{
			Code:    "E_REPLAY",
			Message: "replay verification failed",
		}
	}

	encoder := json.NewEncoder(cmd.OutOrStdout())
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(response); err != nil {
		return err
	}

	if !result.AllDeterministic {
		return NewExitError(ExitFailure, "replay verification failed")
	}
	return nil
}

// outputReplayText outputs the replay result as text.
func outputReplayText(cmd *cobra.Command, result ReplayResult, verbose bool) error {
	w := cmd.OutOrStdout()

	fmt.Fprintf(w, "Replay Summary: %d session(s)\n", result.TotalSessions)
	fmt.Fprintln(w)

	for _, s := range result.Sessions {
		status := "✓"
		if !s.Deterministic || !s.Ordered {
			status = "✗"
		}

		fmt.Fprintf(w, "%s Session: %s\n", status, s.SessionID)
		if verbose {
			fmt.Fprintf(w, "  Edits: %d\n", s.Edits)
			fmt.Fprintf(w, "  Submitted: %v\n", s.Submitted)
			if s.Location != "" {
				fmt.Fprintf(w, "  Location: %s\n", s.Location)
			}
		} else {
			fmt.Fprintf(w, "  Events: %d edits, submitted=%v\n", s.Edits, s.Submitted)
		}

		if !s.Ordered {
			fmt.Fprintln(w, "  Warning: out-of-order timestamps detected!")
		}
		if !s.Deterministic {
			fmt.Fprintln(w, "  Warning: unstable reads detected!")
		}
		fmt.Fprintln(w)
	}

	if result.AllDeterministic {
		fmt.Fprintln(w, "✓ All sessions replay cleanly")
		return nil
	}

	fmt.Fprintln(w, "✗ Replay verification failed")
	return NewExitError(ExitFailure, "replay verification failed")
}
