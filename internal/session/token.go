// Package session owns the session identifier lifecycle and the workflow
// that records interactions as durable events.
//
// A session id is issued once when a user's interactive page loads. Every
// edit during that visit carries it. A submit writes under the current id
// and then rotates to a fresh id: one submission closes a round.
package session

import (
	"sync"

	"github.com/google/uuid"
)

// TokenGenerator issues unique session identifiers.
// Implemented by UUIDv7Generator (production) and FixedTokens (tests).
type TokenGenerator interface {
	Generate() string
}

// UUIDv7Generator generates time-sortable UUIDv7 session tokens.
//
// UUIDv7 embeds a timestamp in the most significant bits, making tokens
// sortable by creation time, which keeps the event log browsable by
// session age.
//
// Thread-safety: stateless and safe for concurrent use.
type UUIDv7Generator struct{}

// Generate creates a new UUIDv7 as a hyphenated string.
// Panics if UUID generation fails (should never happen in practice).
func (g UUIDv7Generator) Generate() string {
	return uuid.Must(uuid.NewV7()).String()
}

// FixedTokens returns predetermined session ids for testing.
//
// This enables deterministic tests and golden trace comparison: tests
// provide a known sequence and verify exact rotation behavior.
type FixedTokens struct {
	mu     sync.Mutex
	tokens []string
	idx    int
}

// NewFixedTokens creates a generator that returns tokens in order.
func NewFixedTokens(tokens ...string) *FixedTokens {
	return &FixedTokens{tokens: tokens}
}

// Generate returns the next predetermined token.
//
// Panics when all tokens are consumed - a fail-fast guard against test
// misconfiguration (the test rotated more sessions than it expected).
func (g *FixedTokens) Generate() string {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.idx >= len(g.tokens) {
		panic("FixedTokens: all tokens exhausted")
	}
	token := g.tokens[g.idx]
	g.idx++
	return token
}
