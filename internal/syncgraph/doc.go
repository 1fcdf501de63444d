// Package syncgraph implements the bidirectional synchronization graph
// between paired rate widgets.
//
// Each bracket owns a WidgetPair: a fraction value (the slider side, four
// decimal places) and a percent value (the numeric field side, two decimal
// places). An edit on either side flows through the Controller, which
// decides whether the opposite side needs a paired update.
//
// CONVERGENCE:
//
// Before emitting the paired update, the controller computes the would-be
// value on the other side and compares it, at that side's stored precision,
// with the side's current value. Agreement means no emission - this is the
// cycle breaker that keeps the two reactive widgets from re-triggering each
// other forever. Disagreement emits exactly one update and leaves both
// sides recording the same canonical rate, so the round trip the
// surrounding UI performs (fraction edit, then the resulting percent edit)
// reaches a fixed point in at most one propagation hop.
//
// The no-op is a designed return value (a nil update), never an error.
//
// FAN-OUT:
//
// Every successful rate change notifies the registered recompute
// subscribers in registration order, each receiving the same rate vector
// snapshot. The controller only exposes the snapshot; the dependent
// outputs (bill, illustration, revenue views) perform their own
// recomputation.
//
// The controller processes one logical update at a time and is not safe
// for concurrent use; create one controller per user session.
package syncgraph
