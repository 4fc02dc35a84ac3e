package cli

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/ratio/internal/ledger"
)

func TestReplayVerifiesCleanRun(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "runs.db")
	token := runRecorded(t, dbPath)

	out, _, err := execute(t, "replay", "--db", dbPath, token)
	require.NoError(t, err)
	assert.Contains(t, out, "verified")
	assert.Contains(t, out, "5 step(s) match")
}

func TestReplayReportsDivergence(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "runs.db")
	token := runRecorded(t, dbPath)

	// Corrupt one recorded result behind the CLI's back.
	l, err := ledger.Open(dbPath, nil)
	require.NoError(t, err)
	_, err = l.DB().ExecContext(context.Background(), `
		UPDATE run_steps SET result_den = 7 WHERE run_token = ? AND step_id = 'sum'
	`, token)
	require.NoError(t, err)
	require.NoError(t, l.Close())

	out, _, err := execute(t, "replay", "--db", dbPath, token)
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, out, "DIVERGED")
	assert.Contains(t, out, `step "sum"`)
}

func TestReplayUnknownToken(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "runs.db")

	// Open once so the ledger file and schema exist.
	l, err := ledger.Open(dbPath, nil)
	require.NoError(t, err)
	require.NoError(t, l.Close())

	_, _, err = execute(t, "replay", "--db", dbPath, "no-such-token")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}

func TestReplayRequiresDB(t *testing.T) {
	_, _, err := execute(t, "replay", "some-token")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "db")
}
