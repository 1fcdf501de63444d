package harness

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ratelab/ratelab/internal/schedule"
)

func TestRun_PresetNoOpEmitsNothing(t *testing.T) {
	// IL_2017 matches the seeded default schedule, so the selector
	// swallows the choice.
	s := &Scenario{
		Name:        "preset-noop",
		Description: "re-selecting the active schedule emits nothing",
		Steps: []Step{
			{Do: StepPreset, Key: "IL_2017"},
		},
		Assertions: []Assertion{
			{Type: AssertUpdateCount, Count: 0},
			{Type: AssertNotifyCount, Count: 0},
			{Type: AssertRatesEqual, Rates: []float64{0.0495, 0.0495, 0.0495, 0.0495, 0.0495}},
		},
	}

	result, err := Run(s)
	require.NoError(t, err)
	assert.True(t, result.Pass, "errors: %v", result.Errors)
	require.Len(t, result.Trace, 1)
	assert.Equal(t, "none", result.Trace[0].Update)
}

func TestRun_SubmitRotatesThroughFixedSessions(t *testing.T) {
	s := &Scenario{
		Name:        "double-submit",
		Description: "each submit closes a round under its own id",
		Sessions:    []string{"round-a", "round-b", "round-c"},
		Steps: []Step{
			{Do: StepFractionEdit, Bracket: 0, Value: 0.03},
			{Do: StepSubmit},
			{Do: StepFractionEdit, Bracket: 0, Value: 0.07},
			{Do: StepSubmit},
		},
		Assertions: []Assertion{
			{Type: AssertEventCount, EventType: "submit", Count: 2},
			{Type: AssertSessionRotated},
		},
	}

	result, err := Run(s)
	require.NoError(t, err)
	assert.True(t, result.Pass, "errors: %v", result.Errors)
	assert.Equal(t, []string{"round-a", "round-b"}, result.SubmittedIDs)
	assert.Equal(t, "round-c", result.FinalSession)

	// The second round's edit ran under the rotated id.
	assert.Equal(t, "round-b", result.Trace[2].SessionID)
}

func TestRun_RejectedInputLeavesNoTrace(t *testing.T) {
	s := &Scenario{
		Name:        "rejected-input",
		Description: "malformed and out-of-range input never reaches the store",
		Steps: []Step{
			{Do: StepPercentEdit, Bracket: 2, Text: "abc"},
			{Do: StepFractionEdit, Bracket: 2, Value: 1.5},
		},
		Assertions: []Assertion{
			{Type: AssertUpdateCount, Count: 0},
			{Type: AssertEventCount, EventType: "edit", Count: 0},
			{Type: AssertRatesEqual, Rates: []float64{0.0495, 0.0495, 0.0495, 0.0495, 0.0495}},
		},
	}

	result, err := Run(s)
	require.NoError(t, err)
	assert.True(t, result.Pass, "errors: %v", result.Errors)

	require.Len(t, result.Trace, 2)
	for _, ev := range result.Trace {
		assert.Equal(t, "rejected", ev.Update)
		assert.NotEmpty(t, ev.Error)
	}
}

func TestRun_IncomeChangeIsRecorded(t *testing.T) {
	s := &Scenario{
		Name:        "income-change",
		Description: "changing income records an edit and carries into the submit",
		Steps: []Step{
			{Do: StepIncome, Value: 85_000},
			{Do: StepSubmit},
		},
		Assertions: []Assertion{
			{Type: AssertEventCount, EventType: "edit", Count: 1},
			{Type: AssertEventCount, EventType: "submit", Count: 1},
		},
	}

	result, err := Run(s)
	require.NoError(t, err)
	assert.True(t, result.Pass, "errors: %v", result.Errors)
	assert.Equal(t, float64(85_000), result.Income)
}

func TestRun_FailedAssertionFailsResult(t *testing.T) {
	s := &Scenario{
		Name:        "wrong-expectation",
		Description: "an assertion that does not hold fails the run",
		Steps: []Step{
			{Do: StepFractionEdit, Bracket: 0, Value: 0.062},
		},
		Assertions: []Assertion{
			{Type: AssertUpdateCount, Count: 5},
		},
	}

	result, err := Run(s)
	require.NoError(t, err)
	assert.False(t, result.Pass)
	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0], "update_count")
}

func TestRun_PercentTextsTrackWidgets(t *testing.T) {
	s := &Scenario{
		Name:        "percent-texts",
		Description: "final percent texts render the stored percent values",
		Steps: []Step{
			{Do: StepPercentEdit, Bracket: 1, Text: "6.25"},
		},
		Assertions: []Assertion{
			{Type: AssertPercentText, Bracket: 1, Text: "6.25"},
			{Type: AssertPercentText, Bracket: 0, Text: "4.95"},
		},
	}

	result, err := Run(s)
	require.NoError(t, err)
	assert.True(t, result.Pass, "errors: %v", result.Errors)
	assert.Equal(t, schedule.RateVector{0.0495, 0.0625, 0.0495, 0.0495, 0.0495},
		schedule.RateVector(result.FinalRates))
}

func TestRun_DefaultTokensCoverEverySubmit(t *testing.T) {
	steps := []Step{
		{Do: StepSubmit},
		{Do: StepSubmit},
		{Do: StepSubmit},
	}
	s := &Scenario{
		Name:        "many-submits",
		Description: "generated token sequence never runs out",
		Steps:       steps,
		Assertions: []Assertion{
			{Type: AssertEventCount, EventType: "submit", Count: 3},
		},
	}

	result, err := Run(s)
	require.NoError(t, err)
	assert.True(t, result.Pass, "errors: %v", result.Errors)
	assert.Equal(t, []string{"session-001", "session-002", "session-003"}, result.SubmittedIDs)
	assert.Equal(t, "session-004", result.FinalSession)
}
