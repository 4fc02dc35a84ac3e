// Package ledger provides durable storage for worksheet evaluation runs.
//
// Each recorded run stores the full step definitions alongside their
// canonical results, keyed by a UUIDv7 run token. Because the definitions are
// self-contained, a run can be replayed and verified later without the
// original worksheet file: Replay re-executes every stored step and compares
// the recomputed canonical results against the recorded ones. Exact rational
// arithmetic is deterministic, so any divergence means the ledger rows were
// altered after the fact.
//
// Storage is SQLite (WAL mode, single writer) with the schema embedded and
// applied idempotently on Open.
package ledger
