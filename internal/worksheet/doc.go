// Package worksheet loads and evaluates YAML-described rational computation
// scenarios.
//
// A worksheet names a sequence of steps over a register file: each step either
// constructs a rational from integer literals or applies an operation to the
// results of earlier steps. Evaluation is strictly sequential and
// deterministic - steps run in declaration order, every result is canonical,
// and the produced trace is reproducible byte-for-byte, which is what the
// golden-file tests and the ledger replay check rely on.
//
// Step identifiers are NFC-normalized before uniqueness and reference
// checking, so visually identical names cannot alias distinct registers.
package worksheet
