package harness

import (
	"context"
	"fmt"

	"github.com/ratelab/ratelab/internal/schedule"
	"github.com/ratelab/ratelab/internal/store"
	"github.com/ratelab/ratelab/internal/syncgraph"
)

// AssertionContext carries the live components assertions may query.
type AssertionContext struct {
	Store      *store.Store
	Controller *syncgraph.Controller
	Ctx        context.Context
}

// EvaluateAssertions checks every assertion against the result and
// returns failure messages. An empty slice means all assertions held.
func EvaluateAssertions(result *Result, assertions []Assertion, actx *AssertionContext) []string {
	var failures []string

	for i, a := range assertions {
		if msg := evaluateAssertion(result, &a, actx); msg != "" {
			failures = append(failures, fmt.Sprintf("assertions[%d] (%s): %s", i, a.Type, msg))
		}
	}

	return failures
}

// evaluateAssertion checks one assertion, returning "" on success.
func evaluateAssertion(result *Result, a *Assertion, actx *AssertionContext) string {
	switch a.Type {
	case AssertUpdateCount:
		if result.UpdateCount != a.Count {
			return fmt.Sprintf("expected %d update(s), controller emitted %d", a.Count, result.UpdateCount)
		}

	case AssertNotifyCount:
		if result.NotifyCount != a.Count {
			return fmt.Sprintf("expected %d fan-out(s), observed %d", a.Count, result.NotifyCount)
		}

	case AssertEventCount:
		_, count, err := actx.Store.QueryAllByType(actx.Ctx, store.EventType(a.EventType))
		if err != nil {
			return fmt.Sprintf("querying %s events: %v", a.EventType, err)
		}
		if count != a.Count {
			return fmt.Sprintf("expected %d %s event(s), store holds %d", a.Count, a.EventType, count)
		}

	case AssertRatesEqual:
		expected := schedule.RateVector(a.Rates)
		actual := schedule.RateVector(result.FinalRates)
		if !actual.EqualAtFractionPrecision(expected) {
			return fmt.Sprintf("expected rates %v, got %v", expected, actual)
		}

	case AssertPercentText:
		if a.Bracket >= len(result.PercentTexts) {
			return fmt.Sprintf("no widget at bracket %d", a.Bracket)
		}
		if got := result.PercentTexts[a.Bracket]; got != a.Text {
			return fmt.Sprintf("expected percent text %q at bracket %d, got %q", a.Text, a.Bracket, got)
		}

	case AssertSessionRotated:
		if len(result.SubmittedIDs) == 0 {
			return "no submit steps ran"
		}
		last := result.SubmittedIDs[len(result.SubmittedIDs)-1]
		if result.FinalSession == last {
			return fmt.Sprintf("session id %q did not rotate after submit", last)
		}

	default:
		return fmt.Sprintf("unknown assertion type %q", a.Type)
	}

	return ""
}
