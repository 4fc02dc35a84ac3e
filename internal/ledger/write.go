package ledger

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/roach88/ratio/internal/worksheet"
)

// RecordRun stores one evaluated worksheet run under a fresh token.
// The run row and all step rows are written in a single transaction, so a
// run is either fully recorded or absent.
func (l *Ledger) RecordRun(ctx context.Context, worksheetName string, trace worksheet.Trace) (string, error) {
	if len(trace) == 0 {
		return "", fmt.Errorf("record run: empty trace")
	}

	token := l.tokens.Generate()

	tx, err := l.db.BeginTx(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("record run: begin tx: %w", err)
	}
	defer tx.Rollback() // No-op if committed

	_, err = tx.ExecContext(ctx, `
		INSERT INTO runs (token, worksheet, step_count)
		VALUES (?, ?, ?)
	`, token, worksheetName, len(trace))
	if err != nil {
		return "", fmt.Errorf("record run: insert run: %w", err)
	}

	for _, ev := range trace {
		operands, err := json.Marshal(ev.Operands)
		if err != nil {
			return "", fmt.Errorf("record run: marshal operands: %w", err)
		}
		if ev.Operands == nil {
			operands = []byte("[]")
		}

		_, err = tx.ExecContext(ctx, `
			INSERT INTO run_steps
			(run_token, seq, step_id, op, operands, num, den, exp, result_num, result_den)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		`,
			token,
			ev.Seq,
			ev.StepID,
			string(ev.Op),
			string(operands),
			ev.Num,
			ev.Den,
			ev.Exp,
			ev.ResultNum,
			ev.ResultDen,
		)
		if err != nil {
			return "", fmt.Errorf("record run: insert step %d: %w", ev.Seq, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("record run: commit: %w", err)
	}

	return token, nil
}
