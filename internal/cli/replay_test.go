package cli

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ratelab/ratelab/internal/schedule"
	"github.com/ratelab/ratelab/internal/store"
)

func TestReplay_EmptyDatabase(t *testing.T) {
	path := seedStore(t)

	out, err := execute(t, "replay", "--db", path)
	require.NoError(t, err)
	assert.Contains(t, out, "No sessions found")
}

func TestReplay_SessionHistory(t *testing.T) {
	base := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)
	path := seedStore(t,
		storedEvent("s1", store.EventEdit, base, schedule.Flat(0.03, 5)),
		storedEvent("s1", store.EventEdit, base.Add(time.Second), schedule.Flat(0.04, 5)),
		storedEvent("s1", store.EventSubmit, base.Add(2*time.Second), schedule.Flat(0.04, 5)),
		storedEvent("s2", store.EventEdit, base.Add(time.Minute), schedule.Flat(0.05, 5)),
	)

	out, err := execute(t, "replay", "--db", path)
	require.NoError(t, err)
	assert.Contains(t, out, "2 session(s)")
	assert.Contains(t, out, "All sessions replay cleanly")
	assert.Contains(t, out, "2 edits, submitted=true")
	assert.Contains(t, out, "0 edits, submitted=false")
}

func TestReplay_DatabaseFromEnvironment(t *testing.T) {
	base := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)
	path := seedStore(t,
		storedEvent("s1", store.EventSubmit, base, schedule.Flat(0.04, 5)),
	)
	t.Setenv("RATELAB_DB_PATH", path)

	out, err := execute(t, "replay")
	require.NoError(t, err)
	assert.Contains(t, out, "1 session(s)")
	assert.Contains(t, out, "All sessions replay cleanly")
}

func TestReplay_SpecificSession(t *testing.T) {
	base := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)
	path := seedStore(t,
		storedEvent("s1", store.EventSubmit, base, schedule.Flat(0.04, 5)),
		storedEvent("s2", store.EventEdit, base, schedule.Flat(0.05, 5)),
	)

	out, err := execute(t, "replay", "--db", path, "--session", "s1")
	require.NoError(t, err)
	assert.Contains(t, out, "1 session(s)")
	assert.Contains(t, out, "s1")
	assert.NotContains(t, out, "s2")
}

func TestReplay_JSONOutput(t *testing.T) {
	base := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)
	path := seedStore(t,
		storedEvent("s1", store.EventSubmit, base, schedule.Flat(0.04, 5)),
	)

	out, err := execute(t, "--format", "json", "replay", "--db", path)
	require.NoError(t, err)

	var resp CLIResponse
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "ok", resp.Status)

	data, ok := resp.Data.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, true, data["all_deterministic"])
	sessions, ok := data["sessions"].([]interface{})
	require.True(t, ok)
	require.Len(t, sessions, 1)

	first, ok := sessions[0].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "s1", first["session_id"])
	assert.Equal(t, true, first["submitted"])
	assert.Equal(t, "Chicago, IL", first["location"])
}

func TestReplay_VerboseShowsLocation(t *testing.T) {
	base := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)
	path := seedStore(t,
		storedEvent("s1", store.EventSubmit, base, schedule.Flat(0.04, 5)),
	)

	out, err := execute(t, "-v", "replay", "--db", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Location: Chicago, IL")
}
