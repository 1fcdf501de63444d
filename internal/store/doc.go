// Package store provides SQLite-backed durable storage for session events.
//
// The store is an append-only log keyed by (session_id, timestamp) with a
// secondary (location, event_type) dimension for aggregate scans. Events
// are never mutated or deleted after append.
//
// Two query shapes are supported:
//   - QueryBySession: all events for one session of one type, ordered by
//     timestamp ascending (session-local history).
//   - QueryAllByType: full scan of one type across all sessions with a
//     count (best-effort analytics read; may lag concurrent appends).
//
// Rates and income are stored as exact-precision decimal TEXT, never as
// floating point, to avoid serialization drift; they are reconverted to
// float fractions on read.
//
// # Database Configuration
//
//   - WAL mode: Concurrent reads during writes
//   - synchronous=NORMAL: Balance durability/performance
//   - busy_timeout=5000: Wait for locks up to 5 seconds
//   - foreign_keys=ON: Enforce referential integrity
//
// Appends from many simultaneous sessions are independent; atomicity of a
// single record write is the only locking requirement.
package store
