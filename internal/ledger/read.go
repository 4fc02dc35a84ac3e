package ledger

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/roach88/ratio/internal/worksheet"
)

// ErrRunNotFound is returned when a token does not identify a recorded run.
var ErrRunNotFound = errors.New("run not found")

// Run is a recorded worksheet evaluation.
type Run struct {
	Token     string          `json:"token"`
	Worksheet string          `json:"worksheet"`
	CreatedAt string          `json:"created_at"`
	StepCount int             `json:"step_count"`
	Trace     worksheet.Trace `json:"trace,omitempty"`
}

// ReadRun loads a run and its full trace by token.
func (l *Ledger) ReadRun(ctx context.Context, token string) (Run, error) {
	var run Run
	err := l.db.QueryRowContext(ctx, `
		SELECT token, worksheet, created_at, step_count
		FROM runs WHERE token = ?
	`, token).Scan(&run.Token, &run.Worksheet, &run.CreatedAt, &run.StepCount)
	if errors.Is(err, sql.ErrNoRows) {
		return Run{}, fmt.Errorf("read run %s: %w", token, ErrRunNotFound)
	}
	if err != nil {
		return Run{}, fmt.Errorf("read run %s: %w", token, err)
	}

	trace, err := l.readTrace(ctx, token)
	if err != nil {
		return Run{}, fmt.Errorf("read run %s: %w", token, err)
	}
	run.Trace = trace

	return run, nil
}

// ListRuns returns all recorded runs without their traces, newest token
// first. UUIDv7 tokens sort by creation time, so token order is run order.
func (l *Ledger) ListRuns(ctx context.Context) ([]Run, error) {
	rows, err := l.db.QueryContext(ctx, `
		SELECT token, worksheet, created_at, step_count
		FROM runs ORDER BY token DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var run Run
		if err := rows.Scan(&run.Token, &run.Worksheet, &run.CreatedAt, &run.StepCount); err != nil {
			return nil, fmt.Errorf("list runs: scan: %w", err)
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}

	return runs, nil
}

// readTrace loads step rows in seq order and rebuilds the trace.
func (l *Ledger) readTrace(ctx context.Context, token string) (worksheet.Trace, error) {
	rows, err := l.db.QueryContext(ctx, `
		SELECT seq, step_id, op, operands, num, den, exp, result_num, result_den
		FROM run_steps WHERE run_token = ? ORDER BY seq
	`, token)
	if err != nil {
		return nil, fmt.Errorf("read trace: %w", err)
	}
	defer rows.Close()

	var trace worksheet.Trace
	for rows.Next() {
		var (
			ev          worksheet.TraceEvent
			op          string
			operandsRaw string
		)
		err := rows.Scan(&ev.Seq, &ev.StepID, &op, &operandsRaw,
			&ev.Num, &ev.Den, &ev.Exp, &ev.ResultNum, &ev.ResultDen)
		if err != nil {
			return nil, fmt.Errorf("read trace: scan: %w", err)
		}
		ev.Op = worksheet.Op(op)

		var operands []string
		if err := json.Unmarshal([]byte(operandsRaw), &operands); err != nil {
			return nil, fmt.Errorf("read trace: seq %d operands: %w", ev.Seq, err)
		}
		if len(operands) > 0 {
			ev.Operands = operands
		}

		trace = append(trace, ev)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read trace: %w", err)
	}

	return trace, nil
}
