// Package cli implements the ratio command tree.
//
// Commands take rational operands as separate integer arguments; the CLI
// never parses "a/b" fraction strings. All commands support text and JSON
// output via the global --format flag, write verbose diagnostics to stderr,
// and report failures with distinct exit codes: 1 for arithmetic and
// validation failures, 2 for command errors.
package cli
