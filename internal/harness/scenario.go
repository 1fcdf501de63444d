package harness

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Scenario defines a conformance test scenario.
// Scenarios validate the interaction workflow by executing a sequence of
// steps and asserting on the resulting trace, widget state, and event log.
type Scenario struct {
	// Name uniquely identifies this scenario.
	Name string `yaml:"name"`

	// Description explains what this scenario validates.
	Description string `yaml:"description"`

	// Sessions is an optional fixed session token sequence for
	// deterministic golden comparison. When empty, tokens default to
	// "session-001", "session-002", ... as needed.
	Sessions []string `yaml:"sessions,omitempty"`

	// Steps contains the interaction sequence to execute.
	Steps []Step `yaml:"steps"`

	// Assertions validate the trace, final state, and event log.
	Assertions []Assertion `yaml:"assertions"`
}

// Step is a single user interaction.
type Step struct {
	// Do names the interaction: fraction_edit, percent_edit, preset,
	// income, or submit.
	Do string `yaml:"do"`

	// Bracket is the widget index (fraction_edit, percent_edit).
	Bracket int `yaml:"bracket,omitempty"`

	// Value is the new fraction (fraction_edit) or income (income).
	Value float64 `yaml:"value,omitempty"`

	// Text is the raw field text (percent_edit).
	Text string `yaml:"text,omitempty"`

	// Key is the preset catalog key (preset).
	Key string `yaml:"key,omitempty"`
}

// Step type constants.
const (
	StepFractionEdit = "fraction_edit"
	StepPercentEdit  = "percent_edit"
	StepPreset       = "preset"
	StepIncome       = "income"
	StepSubmit       = "submit"
)

// Assertion validates one property of the run.
type Assertion struct {
	// Type specifies the assertion type:
	// - "update_count": number of updates the controller emitted
	// - "notify_count": number of subscriber fan-outs
	// - "event_count": number of stored events of a given type
	// - "rates_equal": final rate vector at fraction precision
	// - "percent_text": one widget's rendered percent text
	// - "session_rotated": a submit issued a fresh session id
	Type string `yaml:"type"`

	// Count is the expected occurrence count (update_count, notify_count,
	// event_count).
	Count int `yaml:"count,omitempty"`

	// EventType is "edit" or "submit" (event_count).
	EventType string `yaml:"event_type,omitempty"`

	// Rates is the expected rate vector (rates_equal).
	Rates []float64 `yaml:"rates,omitempty"`

	// Bracket is the widget index (percent_text).
	Bracket int `yaml:"bracket,omitempty"`

	// Text is the expected rendered text (percent_text).
	Text string `yaml:"text,omitempty"`
}

// Assertion type constants.
const (
	AssertUpdateCount    = "update_count"
	AssertNotifyCount    = "notify_count"
	AssertEventCount     = "event_count"
	AssertRatesEqual     = "rates_equal"
	AssertPercentText    = "percent_text"
	AssertSessionRotated = "session_rotated"
)

// LoadScenario reads and parses a scenario YAML file.
// Returns an error if the file doesn't exist, is malformed,
// contains unknown fields (typos), or is missing required fields.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}

	// Strict field validation catches typos like "assertion:" vs "assertions:".
	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}

	return &scenario, nil
}

// validateScenario checks that required fields are present and valid.
func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}

	if s.Description == "" {
		return fmt.Errorf("description is required")
	}

	if len(s.Steps) == 0 {
		return fmt.Errorf("steps list is required and must be non-empty")
	}

	if len(s.Assertions) == 0 {
		return fmt.Errorf("assertions list is required and must be non-empty")
	}

	for i, step := range s.Steps {
		if err := validateStep(i, &step); err != nil {
			return err
		}
	}

	for i, assertion := range s.Assertions {
		if err := validateAssertion(i, &assertion); err != nil {
			return err
		}
	}

	return nil
}

// validateStep validates a single step based on its type.
func validateStep(index int, step *Step) error {
	switch step.Do {
	case StepFractionEdit:
		if step.Bracket < 0 {
			return fmt.Errorf("steps[%d]: bracket must be non-negative", index)
		}
	case StepPercentEdit:
		if step.Bracket < 0 {
			return fmt.Errorf("steps[%d]: bracket must be non-negative", index)
		}
		if step.Text == "" {
			return fmt.Errorf("steps[%d]: text is required for percent_edit", index)
		}
	case StepPreset:
		if step.Key == "" {
			return fmt.Errorf("steps[%d]: key is required for preset", index)
		}
	case StepIncome:
		if step.Value <= 0 {
			return fmt.Errorf("steps[%d]: value must be positive for income", index)
		}
	case StepSubmit:
		// No fields.
	case "":
		return fmt.Errorf("steps[%d]: do is required", index)
	default:
		return fmt.Errorf("steps[%d]: unknown step type %q", index, step.Do)
	}
	return nil
}

// validateAssertion validates a single assertion based on its type.
func validateAssertion(index int, a *Assertion) error {
	if a.Type == "" {
		return fmt.Errorf("assertions[%d]: type is required", index)
	}

	switch a.Type {
	case AssertUpdateCount, AssertNotifyCount:
		if a.Count < 0 {
			return fmt.Errorf("assertions[%d]: count must be non-negative for %s", index, a.Type)
		}
	case AssertEventCount:
		if a.EventType != "edit" && a.EventType != "submit" {
			return fmt.Errorf("assertions[%d]: event_type must be edit or submit for event_count", index)
		}
		if a.Count < 0 {
			return fmt.Errorf("assertions[%d]: count must be non-negative for event_count", index)
		}
	case AssertRatesEqual:
		if len(a.Rates) == 0 {
			return fmt.Errorf("assertions[%d]: rates list is required for rates_equal", index)
		}
	case AssertPercentText:
		if a.Bracket < 0 {
			return fmt.Errorf("assertions[%d]: bracket must be non-negative for percent_text", index)
		}
		if a.Text == "" {
			return fmt.Errorf("assertions[%d]: text is required for percent_text", index)
		}
	case AssertSessionRotated:
		// No fields.
	default:
		return fmt.Errorf("assertions[%d]: unknown assertion type %q", index, a.Type)
	}

	return nil
}
