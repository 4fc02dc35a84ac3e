package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateValidWorksheet(t *testing.T) {
	out, _, err := execute(t, "validate", filepath.Join("testdata", "mixed.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "worksheet is valid\n", out)
}

func TestValidateSchemaViolations(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{
			name: "unknown op",
			yaml: "name: w\nsteps:\n  - id: a\n    op: modulo\n    num: 1\n",
		},
		{
			name: "missing name",
			yaml: "steps:\n  - id: a\n    op: new\n    num: 1\n",
		},
		{
			name: "zero literal denominator",
			yaml: "name: w\nsteps:\n  - id: a\n    op: new\n    num: 1\n    den: 0\n",
		},
		{
			name: "empty steps",
			yaml: "name: w\nsteps: []\n",
		},
		{
			name: "unknown field",
			yaml: "name: w\nbogus: true\nsteps:\n  - id: a\n    op: new\n    num: 1\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "ws.yaml")
			require.NoError(t, os.WriteFile(path, []byte(tt.yaml), 0644))

			out, _, err := execute(t, "validate", path)
			require.Error(t, err)
			assert.Equal(t, ExitFailure, GetExitCode(err))
			assert.Contains(t, out, "Error [")
		})
	}
}

func TestValidateStructuralViolation(t *testing.T) {
	// Schema-clean but structurally wrong: operand references a later step.
	path := filepath.Join(t.TempDir(), "ws.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
name: w
steps:
  - id: a
    op: neg
    operands: [b]
  - id: b
    op: new
    num: 1
`), 0644))

	out, _, err := execute(t, "validate", path)
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, out, "UNKNOWN_REF")
}

func TestValidateMissingFile(t *testing.T) {
	_, _, err := execute(t, "validate", filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestValidateNotYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ws.yaml")
	require.NoError(t, os.WriteFile(path, []byte("{{ not yaml ]"), 0644))

	_, _, err := execute(t, "validate", path)
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}
