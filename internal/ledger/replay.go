package ledger

import (
	"context"
	"fmt"

	"github.com/roach88/ratio/internal/worksheet"
)

// Divergence reports one step whose recomputed result differs from the
// recorded one.
type Divergence struct {
	Seq       int64  `json:"seq"`
	StepID    string `json:"step_id"`
	StoredNum int64  `json:"stored_num"`
	StoredDen int64  `json:"stored_den"`
	GotNum    int64  `json:"got_num"`
	GotDen    int64  `json:"got_den"`
}

// String renders the divergence for CLI and test output.
func (d Divergence) String() string {
	return fmt.Sprintf("seq %d step %q: stored %d/%d, recomputed %d/%d",
		d.Seq, d.StepID, d.StoredNum, d.StoredDen, d.GotNum, d.GotDen)
}

// ReplayResult summarizes a replay verification.
type ReplayResult struct {
	Token       string       `json:"token"`
	Worksheet   string       `json:"worksheet"`
	Steps       int          `json:"steps"`
	Divergences []Divergence `json:"divergences,omitempty"`
}

// OK returns true when every recomputed result matched the recorded one.
func (r ReplayResult) OK() bool { return len(r.Divergences) == 0 }

// Replay re-executes every step definition recorded for a run and compares
// the recomputed canonical results against the stored ones.
//
// Exact rational arithmetic is deterministic, so a clean ledger always
// replays with zero divergences; any mismatch means the rows were modified
// after recording. Replay fails outright (rather than reporting divergences)
// if the stored definitions no longer evaluate at all, e.g. an op name was
// tampered into nonsense.
func (l *Ledger) Replay(ctx context.Context, token string) (ReplayResult, error) {
	run, err := l.ReadRun(ctx, token)
	if err != nil {
		return ReplayResult{}, err
	}

	// Rebuild a worksheet from the stored definitions and re-evaluate it.
	ws := &worksheet.Worksheet{Name: run.Worksheet}
	for _, ev := range run.Trace {
		step := worksheet.Step{
			ID:       ev.StepID,
			Op:       ev.Op,
			Operands: ev.Operands,
			Exp:      ev.Exp,
		}
		if ev.Op == worksheet.OpNew {
			step.Num = ev.Num
			den := ev.Den
			step.Den = &den
		}
		ws.Steps = append(ws.Steps, step)
	}

	if errs := ws.Validate(); len(errs) > 0 {
		return ReplayResult{}, fmt.Errorf("replay %s: stored run is not a valid worksheet: %v", token, errs[0])
	}

	trace, err := worksheet.Evaluate(ws)
	if err != nil {
		return ReplayResult{}, fmt.Errorf("replay %s: %w", token, err)
	}

	result := ReplayResult{
		Token:     run.Token,
		Worksheet: run.Worksheet,
		Steps:     len(run.Trace),
	}
	for i, stored := range run.Trace {
		got := trace[i]
		if stored.ResultNum != got.ResultNum || stored.ResultDen != got.ResultDen {
			result.Divergences = append(result.Divergences, Divergence{
				Seq:       stored.Seq,
				StepID:    stored.StepID,
				StoredNum: stored.ResultNum,
				StoredDen: stored.ResultDen,
				GotNum:    got.ResultNum,
				GotDen:    got.ResultDen,
			})
		}
	}

	return result, nil
}
