// Package harness provides a conformance testing framework for the rate
// exploration workflow.
//
// Scenarios are YAML files describing a sequence of user interactions:
// slider edits, percent field edits, preset selections, income changes,
// and submissions. The harness drives the real sync controller, session
// recorder, and event store (a fresh in-memory database per run), records
// a trace of every step's outcome, and evaluates assertions against the
// trace, the final widget state, and the stored events.
//
// Traces are deterministic: runs use a fixed wall clock and predetermined
// session tokens, so the same scenario always produces the same trace.
// Golden files capture expected traces for regression comparison.
package harness
