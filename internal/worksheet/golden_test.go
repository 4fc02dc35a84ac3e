package worksheet

import (
	"encoding/json"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/require"
)

// Golden trace tests pin the exact serialized form of evaluation traces.
// The same rendering is stored in the run ledger and compared on replay, so
// any drift here is a compatibility break, not a cosmetic change.
//
// To regenerate golden files, run:
//
//	go test ./internal/worksheet -update

const mixedWorksheet = `
name: mixed
description: exercises every operand-bearing op in one flow
steps:
  - id: half
    op: new
    num: 1
    den: 2
  - id: third
    op: new
    num: 1
    den: 3
  - id: sum
    op: add
    operands: [half, third]
  - id: cube
    op: pow
    operands: [sum]
    exp: 3
  - id: ratio
    op: div
    operands: [cube, half]
`

func TestGoldenMixedTrace(t *testing.T) {
	ws, err := Parse([]byte(mixedWorksheet))
	require.NoError(t, err)
	require.Empty(t, ws.Validate())

	trace, err := Evaluate(ws)
	require.NoError(t, err)

	data, err := json.MarshalIndent(trace, "", "  ")
	require.NoError(t, err)

	g := goldie.New(t)
	g.Assert(t, "mixed_trace", append(data, '\n'))
}
