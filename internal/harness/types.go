package harness

// TraceEvent records one step's outcome for the trace.
type TraceEvent struct {
	// Step is the step type that ran.
	Step string `json:"step"`

	// Update names what the controller emitted: "fraction", "percent",
	// "all", "none" (accepted no-op), or "rejected" (validation error).
	Update string `json:"update"`

	// Rates is the rate vector snapshot after the step.
	Rates []float64 `json:"rates"`

	// SessionID is the id the step ran under. For submit steps this is
	// the id the record was written under, before rotation.
	SessionID string `json:"session_id"`

	// Error carries the validation message for rejected steps.
	Error string `json:"error,omitempty"`
}

// Result is the outcome of a scenario execution.
type Result struct {
	// Pass indicates overall success: all assertions held and no step
	// failed unexpectedly.
	Pass bool `json:"pass"`

	// Trace contains one event per executed step, in order.
	Trace []TraceEvent `json:"trace"`

	// Errors contains assertion failure messages. Empty if Pass is true.
	Errors []string `json:"errors,omitempty"`

	// UpdateCount is the number of updates the controller emitted.
	UpdateCount int `json:"update_count"`

	// NotifyCount is the number of subscriber fan-outs observed.
	NotifyCount int `json:"notify_count"`

	// SubmittedIDs lists the session ids submits were written under.
	SubmittedIDs []string `json:"submitted_ids,omitempty"`

	// FinalSession is the id in effect after the last step.
	FinalSession string `json:"final_session"`

	// FinalRates is the rate vector after the last step.
	FinalRates []float64 `json:"final_rates"`

	// PercentTexts is each widget's rendered percent text after the last
	// step, in bracket order.
	PercentTexts []string `json:"percent_texts"`

	// Income is the income value after the last step.
	Income float64 `json:"income"`
}

// NewResult creates a new passing result.
func NewResult() *Result {
	return &Result{
		Pass:   true,
		Trace:  []TraceEvent{},
		Errors: []string{},
	}
}

// AddError adds an assertion failure and marks the result as failed.
func (r *Result) AddError(err string) {
	r.Errors = append(r.Errors, err)
	r.Pass = false
}
