package harness

import (
	"context"
	"fmt"
	"time"

	"github.com/ratelab/ratelab/internal/geo"
	"github.com/ratelab/ratelab/internal/preset"
	"github.com/ratelab/ratelab/internal/schedule"
	"github.com/ratelab/ratelab/internal/session"
	"github.com/ratelab/ratelab/internal/store"
	"github.com/ratelab/ratelab/internal/syncgraph"
	"github.com/ratelab/ratelab/internal/testutil"
)

// harnessEpoch is the fixed wall clock base for deterministic traces.
var harnessEpoch = time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

// harnessClientIP is loopback, so locations are always "Local, HOST"
// without any resolver dependency.
const harnessClientIP = "127.0.0.1"

// Harness wires the real workflow components for one scenario run.
type Harness struct {
	store      *store.Store
	controller *syncgraph.Controller
	selector   *preset.Selector
	recorder   *session.Recorder
	income     float64
}

// Run executes a test scenario and returns the result.
//
// Each scenario runs against a fresh in-memory database, a controller
// seeded with the default flat schedule, the full default preset catalog,
// and a recorder with a deterministic clock and fixed session tokens.
func Run(scenario *Scenario) (*Result, error) {
	st, err := store.Open(":memory:")
	if err != nil {
		return nil, fmt.Errorf("failed to create in-memory store: %w", err)
	}
	defer st.Close()

	catalog, err := preset.NewCatalog(schedule.DefaultPresets(), len(schedule.DefaultBrackets()))
	if err != nil {
		return nil, fmt.Errorf("failed to build preset catalog: %w", err)
	}

	controller := syncgraph.NewController(schedule.DefaultRates())
	clock := testutil.NewDeterministicClock(harnessEpoch, time.Second)
	recorder := session.NewRecorder(st, geo.StaticResolver{}, sessionTokens(scenario),
		session.WithNow(clock.Now))

	h := &Harness{
		store:      st,
		controller: controller,
		selector:   preset.NewSelector(catalog, controller),
		recorder:   recorder,
		income:     schedule.DefaultIncome,
	}

	result := NewResult()
	controller.Subscribe("harness", func(schedule.RateVector) {
		result.NotifyCount++
	})

	ctx := context.Background()
	for i, step := range scenario.Steps {
		if err := h.executeStep(ctx, step, result); err != nil {
			return nil, fmt.Errorf("step %d (%s): %w", i, step.Do, err)
		}
	}

	result.FinalSession = recorder.SessionID()
	result.FinalRates = controller.Rates()
	result.Income = h.income
	result.PercentTexts = make([]string, controller.Len())
	for i := range result.PercentTexts {
		pair, err := controller.Pair(i)
		if err != nil {
			return nil, err
		}
		result.PercentTexts[i] = pair.PercentText()
	}

	actx := &AssertionContext{
		Store:      st,
		Controller: controller,
		Ctx:        ctx,
	}
	for _, msg := range EvaluateAssertions(result, scenario.Assertions, actx) {
		result.AddError(msg)
	}

	return result, nil
}

// sessionTokens builds the token sequence: the scenario's fixed list, or
// enough generated defaults for every rotation the steps can cause.
func sessionTokens(scenario *Scenario) *session.FixedTokens {
	if len(scenario.Sessions) > 0 {
		return session.NewFixedTokens(scenario.Sessions...)
	}

	needed := 1
	for _, step := range scenario.Steps {
		if step.Do == StepSubmit {
			needed++
		}
	}
	tokens := make([]string, needed)
	for i := range tokens {
		tokens[i] = fmt.Sprintf("session-%03d", i+1)
	}
	return session.NewFixedTokens(tokens...)
}

// executeStep runs one interaction and appends its trace event.
//
// Accepted mutating steps record an edit event, mirroring the interactive
// application where every widget interaction persists the working state.
// Rejected input is traced but records nothing.
func (h *Harness) executeStep(ctx context.Context, step Step, result *Result) error {
	event := TraceEvent{Step: step.Do, SessionID: h.recorder.SessionID()}

	switch step.Do {
	case StepFractionEdit:
		upd, err := h.controller.OnFractionEdited(step.Bracket, step.Value)
		traceUpdate(&event, result, upd, err)
		if err == nil {
			if appendErr := h.recorder.RecordEdit(ctx, harnessClientIP, h.controller.Rates(), h.income); appendErr != nil {
				return appendErr
			}
		}

	case StepPercentEdit:
		upd, err := h.controller.OnPercentEdited(step.Bracket, step.Text)
		traceUpdate(&event, result, upd, err)
		if err == nil {
			if appendErr := h.recorder.RecordEdit(ctx, harnessClientIP, h.controller.Rates(), h.income); appendErr != nil {
				return appendErr
			}
		}

	case StepPreset:
		upd, err := h.selector.OnPresetChosen(step.Key, h.controller.Rates())
		traceUpdate(&event, result, upd, err)
		if err == nil {
			if appendErr := h.recorder.RecordEdit(ctx, harnessClientIP, h.controller.Rates(), h.income); appendErr != nil {
				return appendErr
			}
		}

	case StepIncome:
		h.income = step.Value
		event.Update = "none"
		if appendErr := h.recorder.RecordEdit(ctx, harnessClientIP, h.controller.Rates(), h.income); appendErr != nil {
			return appendErr
		}

	case StepSubmit:
		submitted, err := h.recorder.RecordSubmit(ctx, harnessClientIP, h.controller.Rates(), h.income)
		if err != nil {
			return err
		}
		event.Update = "none"
		event.SessionID = submitted
		result.SubmittedIDs = append(result.SubmittedIDs, submitted)

	default:
		return fmt.Errorf("unknown step type %q", step.Do)
	}

	event.Rates = h.controller.Rates()
	result.Trace = append(result.Trace, event)
	return nil
}

// traceUpdate fills the trace event's update outcome and counts emissions.
func traceUpdate(event *TraceEvent, result *Result, upd *syncgraph.Update, err error) {
	switch {
	case err != nil:
		event.Update = "rejected"
		event.Error = err.Error()
	case upd == nil:
		event.Update = "none"
	default:
		event.Update = upd.Kind.String()
		result.UpdateCount++
	}
}
