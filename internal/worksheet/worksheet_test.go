package worksheet

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const basicWorksheet = `
name: basic
description: halves and thirds
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
expect:
  - step: sum
    num: 5
    den: 6
`

func TestParseBasic(t *testing.T) {
	ws, err := Parse([]byte(basicWorksheet))
	require.NoError(t, err)

	assert.Equal(t, "basic", ws.Name)
	require.Len(t, ws.Steps, 3)
	assert.Equal(t, "half", ws.Steps[0].ID)
	assert.Equal(t, OpNew, ws.Steps[0].Op)
	require.NotNil(t, ws.Steps[0].Den)
	assert.Equal(t, int64(2), *ws.Steps[0].Den)
	assert.Equal(t, []string{"half", "third"}, ws.Steps[2].Operands)
	require.Len(t, ws.Expect, 1)
	assert.Equal(t, "sum", ws.Expect[0].Step)

	assert.Empty(t, ws.Validate())
}

func TestParseRejectsUnknownFields(t *testing.T) {
	_, err := Parse([]byte(`
name: bad
steps:
  - id: a
    op: new
    num: 1
    bogus: field
`))
	require.Error(t, err)
}

func TestDenominatorDefaultsToOne(t *testing.T) {
	ws, err := Parse([]byte(`
name: ints
steps:
  - id: five
    op: new
    num: 5
`))
	require.NoError(t, err)
	assert.Nil(t, ws.Steps[0].Den)
	assert.Equal(t, int64(1), ws.Steps[0].Denominator())
}

func TestValidateCollectsErrors(t *testing.T) {
	tests := []struct {
		name     string
		yaml     string
		wantCode string
	}{
		{
			name:     "missing name",
			yaml:     "steps:\n  - id: a\n    op: new\n    num: 1\n",
			wantCode: ErrCodeNoName,
		},
		{
			name:     "no steps",
			yaml:     "name: empty\n",
			wantCode: ErrCodeNoSteps,
		},
		{
			name:     "bad id",
			yaml:     "name: w\nsteps:\n  - id: \"1bad\"\n    op: new\n    num: 1\n",
			wantCode: ErrCodeBadID,
		},
		{
			name:     "duplicate id",
			yaml:     "name: w\nsteps:\n  - id: a\n    op: new\n    num: 1\n  - id: a\n    op: new\n    num: 2\n",
			wantCode: ErrCodeDuplicateID,
		},
		{
			name:     "unknown op",
			yaml:     "name: w\nsteps:\n  - id: a\n    op: modulo\n    num: 1\n",
			wantCode: ErrCodeUnknownOp,
		},
		{
			name:     "wrong arity",
			yaml:     "name: w\nsteps:\n  - id: a\n    op: new\n    num: 1\n  - id: b\n    op: add\n    operands: [a]\n",
			wantCode: ErrCodeArity,
		},
		{
			name:     "forward reference",
			yaml:     "name: w\nsteps:\n  - id: a\n    op: neg\n    operands: [b]\n  - id: b\n    op: new\n    num: 1\n",
			wantCode: ErrCodeUnknownRef,
		},
		{
			name:     "self reference",
			yaml:     "name: w\nsteps:\n  - id: a\n    op: neg\n    operands: [a]\n",
			wantCode: ErrCodeUnknownRef,
		},
		{
			name:     "expectation on unknown step",
			yaml:     "name: w\nsteps:\n  - id: a\n    op: new\n    num: 1\nexpect:\n  - step: z\n    num: 1\n    den: 1\n",
			wantCode: ErrCodeBadExpect,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ws, err := Parse([]byte(tt.yaml))
			require.NoError(t, err)

			errs := ws.Validate()
			require.NotEmpty(t, errs)

			codes := make([]string, len(errs))
			for i, e := range errs {
				codes[i] = e.Code
			}
			assert.Contains(t, codes, tt.wantCode)
		})
	}
}

func TestNFCNormalizationOfStepIDs(t *testing.T) {
	// The register is defined with a precomposed id (U+00E9) and referenced
	// with the decomposed spelling (e + combining U+0301). After NFC both
	// name the same register.
	precomposed := "caf\u00e9"
	decomposed := "cafe\u0301"
	doc := "name: w\nsteps:\n" +
		"  - id: " + precomposed + "\n    op: new\n    num: 1\n    den: 2\n" +
		"  - id: double\n    op: add\n    operands: [" + decomposed + ", " + decomposed + "]\n"

	ws, err := Parse([]byte(doc))
	require.NoError(t, err)
	assert.Empty(t, ws.Validate())

	trace, err := Evaluate(ws)
	require.NoError(t, err)
	require.Len(t, trace, 2)
	assert.Equal(t, int64(1), trace[1].ResultNum)
	assert.Equal(t, int64(1), trace[1].ResultDen)
}

func TestNFCNormalizationDetectsAliasedDuplicates(t *testing.T) {
	// Two byte-distinct spellings of the same normalized identifier.
	doc := "name: w\nsteps:\n" +
		"  - id: caf\u00e9\n    op: new\n    num: 1\n" +
		"  - id: cafe\u0301\n    op: new\n    num: 2\n"

	ws, err := Parse([]byte(doc))
	require.NoError(t, err)

	errs := ws.Validate()
	require.NotEmpty(t, errs)
	assert.Equal(t, ErrCodeDuplicateID, errs[0].Code)
}
