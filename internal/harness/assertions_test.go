package harness

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ratelab/ratelab/internal/schedule"
	"github.com/ratelab/ratelab/internal/store"
)

func assertionStore(t *testing.T, events ...store.Event) *store.Store {
	t.Helper()
	st, err := store.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })

	for _, ev := range events {
		require.NoError(t, st.Append(context.Background(), ev))
	}
	return st
}

func TestEvaluateAssertions_Counts(t *testing.T) {
	result := NewResult()
	result.UpdateCount = 2
	result.NotifyCount = 3
	actx := &AssertionContext{Store: assertionStore(t), Ctx: context.Background()}

	failures := EvaluateAssertions(result, []Assertion{
		{Type: AssertUpdateCount, Count: 2},
		{Type: AssertNotifyCount, Count: 3},
	}, actx)
	assert.Empty(t, failures)

	failures = EvaluateAssertions(result, []Assertion{
		{Type: AssertUpdateCount, Count: 1},
	}, actx)
	require.Len(t, failures, 1)
	assert.Contains(t, failures[0], "controller emitted 2")
}

func TestEvaluateAssertions_EventCount(t *testing.T) {
	st := assertionStore(t, store.Event{
		SessionID: "s1",
		Timestamp: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		Type:      store.EventSubmit,
		Location:  "Local, HOST",
		Rates:     schedule.Flat(0.0495, 5),
		Income:    60_000,
	})
	actx := &AssertionContext{Store: st, Ctx: context.Background()}

	failures := EvaluateAssertions(NewResult(), []Assertion{
		{Type: AssertEventCount, EventType: "submit", Count: 1},
		{Type: AssertEventCount, EventType: "edit", Count: 0},
	}, actx)
	assert.Empty(t, failures)

	failures = EvaluateAssertions(NewResult(), []Assertion{
		{Type: AssertEventCount, EventType: "submit", Count: 2},
	}, actx)
	require.Len(t, failures, 1)
	assert.Contains(t, failures[0], "store holds 1")
}

func TestEvaluateAssertions_RatesEqualAtPrecision(t *testing.T) {
	result := NewResult()
	result.FinalRates = []float64{0.0495, 0.062}
	actx := &AssertionContext{Store: assertionStore(t), Ctx: context.Background()}

	// 0.06200001 rounds to 0.062 at the stored precision.
	failures := EvaluateAssertions(result, []Assertion{
		{Type: AssertRatesEqual, Rates: []float64{0.0495, 0.06200001}},
	}, actx)
	assert.Empty(t, failures)

	failures = EvaluateAssertions(result, []Assertion{
		{Type: AssertRatesEqual, Rates: []float64{0.0495, 0.0625}},
	}, actx)
	assert.Len(t, failures, 1)
}

func TestEvaluateAssertions_PercentText(t *testing.T) {
	result := NewResult()
	result.PercentTexts = []string{"4.95", "6.2"}
	actx := &AssertionContext{Store: assertionStore(t), Ctx: context.Background()}

	failures := EvaluateAssertions(result, []Assertion{
		{Type: AssertPercentText, Bracket: 1, Text: "6.2"},
	}, actx)
	assert.Empty(t, failures)

	failures = EvaluateAssertions(result, []Assertion{
		{Type: AssertPercentText, Bracket: 5, Text: "6.2"},
	}, actx)
	require.Len(t, failures, 1)
	assert.Contains(t, failures[0], "no widget at bracket 5")
}

func TestEvaluateAssertions_SessionRotated(t *testing.T) {
	actx := &AssertionContext{Store: assertionStore(t), Ctx: context.Background()}

	rotated := NewResult()
	rotated.SubmittedIDs = []string{"round-a"}
	rotated.FinalSession = "round-b"
	assert.Empty(t, EvaluateAssertions(rotated, []Assertion{{Type: AssertSessionRotated}}, actx))

	stuck := NewResult()
	stuck.SubmittedIDs = []string{"round-a"}
	stuck.FinalSession = "round-a"
	failures := EvaluateAssertions(stuck, []Assertion{{Type: AssertSessionRotated}}, actx)
	require.Len(t, failures, 1)
	assert.Contains(t, failures[0], "did not rotate")

	noSubmit := NewResult()
	failures = EvaluateAssertions(noSubmit, []Assertion{{Type: AssertSessionRotated}}, actx)
	require.Len(t, failures, 1)
	assert.Contains(t, failures[0], "no submit steps ran")
}
