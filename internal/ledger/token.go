package ledger

import (
	"strconv"

	"github.com/google/uuid"
)

// TokenGenerator produces run tokens.
type TokenGenerator interface {
	Generate() string
}

// UUIDv7Generator generates time-sortable UUIDv7 run tokens.
//
// UUIDv7 embeds a timestamp in the most significant bits, so listing runs by
// token also lists them by creation time. Uses github.com/google/uuid for
// RFC 4122 compliant UUIDs.
//
// Thread-safety: UUIDv7Generator is stateless and safe for concurrent use.
type UUIDv7Generator struct{}

// Generate creates a new UUIDv7 and returns it as a hyphenated string.
// Panics if UUID generation fails (should never happen in practice).
func (g UUIDv7Generator) Generate() string {
	return uuid.Must(uuid.NewV7()).String()
}

// FixedGenerator returns predetermined run tokens for testing.
//
// This enables deterministic test execution: tests provide a known sequence
// of tokens and verify exact ledger contents. After the sequence is
// exhausted, Generate falls back to "fixed-token-N" counters.
type FixedGenerator struct {
	Tokens []string
	next   int
}

// Generate returns the next predetermined token.
func (g *FixedGenerator) Generate() string {
	if g.next < len(g.Tokens) {
		t := g.Tokens[g.next]
		g.next++
		return t
	}
	g.next++
	return "fixed-token-" + strconv.Itoa(g.next-len(g.Tokens))
}
