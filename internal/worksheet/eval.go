package worksheet

import (
	"fmt"

	"github.com/roach88/ratio/internal/rational"
)

// TraceEvent records one evaluated step: its full definition plus the
// canonical result. The definition fields are retained so a recorded trace
// can be re-executed and verified without the original worksheet file.
type TraceEvent struct {
	Seq      int64    `json:"seq"`
	StepID   string   `json:"step_id"`
	Op       Op       `json:"op"`
	Operands []string `json:"operands,omitempty"`
	Num      int64    `json:"num,omitempty"`
	Den      int64    `json:"den,omitempty"`
	Exp      int64    `json:"exp,omitempty"`

	ResultNum int64 `json:"result_num"`
	ResultDen int64 `json:"result_den"`
}

// Result returns the event's canonical result as a Rational.
func (e TraceEvent) Result() rational.Rational {
	// Trace events only ever hold canonical pairs, so this cannot fail for
	// events produced by Evaluate; a tampered ledger row can make it fail.
	r, err := rational.New(e.ResultNum, e.ResultDen)
	if err != nil {
		return rational.Zero
	}
	return r
}

// Trace is the ordered record of a worksheet evaluation.
type Trace []TraceEvent

// EvalError wraps an arithmetic failure with the step that caused it.
// Unwrap exposes the underlying *rational.Error so callers can still
// distinguish the failure kind with the rational package predicates.
type EvalError struct {
	StepID string
	Op     Op
	Err    error
}

// Error implements the error interface.
func (e *EvalError) Error() string {
	return fmt.Sprintf("step %q (%s): %v", e.StepID, e.Op, e.Err)
}

// Unwrap returns the underlying arithmetic error.
func (e *EvalError) Unwrap() error { return e.Err }

// Evaluate runs every step in declaration order and returns the trace.
// The worksheet must already be structurally valid (Validate); Evaluate
// still fails cleanly, rather than panicking, on dangling references.
//
// Evaluation is pure: it touches no state outside its own register file, so
// the same worksheet always produces the same trace.
func Evaluate(w *Worksheet) (Trace, error) {
	registers := make(map[string]rational.Rational, len(w.Steps))
	trace := make(Trace, 0, len(w.Steps))

	for i, s := range w.Steps {
		result, err := evalStep(s, registers)
		if err != nil {
			return nil, &EvalError{StepID: s.ID, Op: s.Op, Err: err}
		}
		registers[s.ID] = result

		ev := TraceEvent{
			Seq:       int64(i + 1),
			StepID:    s.ID,
			Op:        s.Op,
			Operands:  s.Operands,
			ResultNum: result.Num(),
			ResultDen: result.Den(),
		}
		if s.Op == OpNew {
			ev.Num = s.Num
			ev.Den = s.Denominator()
		}
		if s.Op == OpPow {
			ev.Exp = s.Exp
		}
		trace = append(trace, ev)
	}

	return trace, nil
}

func evalStep(s Step, registers map[string]rational.Rational) (rational.Rational, error) {
	operands := make([]rational.Rational, len(s.Operands))
	for i, ref := range s.Operands {
		r, ok := registers[ref]
		if !ok {
			return rational.Zero, fmt.Errorf("operand %q not evaluated yet", ref)
		}
		operands[i] = r
	}

	switch s.Op {
	case OpNew:
		return rational.New(s.Num, s.Denominator())
	case OpAdd:
		return operands[0].Add(operands[1])
	case OpSub:
		return operands[0].Sub(operands[1])
	case OpMul:
		return operands[0].Mul(operands[1])
	case OpDiv:
		return operands[0].Div(operands[1])
	case OpPow:
		return operands[0].Pow(s.Exp)
	case OpNeg:
		return operands[0].Neg()
	default:
		return rational.Zero, fmt.Errorf("unknown op %q", s.Op)
	}
}

// ExpectationFailure reports one expect clause that did not hold.
type ExpectationFailure struct {
	Step    string `json:"step"`
	WantNum int64  `json:"want_num"`
	WantDen int64  `json:"want_den"`
	GotNum  int64  `json:"got_num"`
	GotDen  int64  `json:"got_den"`
}

// String renders the failure for CLI and test output.
func (f ExpectationFailure) String() string {
	return fmt.Sprintf("step %q: expected %d/%d, got %d/%d", f.Step, f.WantNum, f.WantDen, f.GotNum, f.GotDen)
}

// CheckExpectations validates every expect clause against the trace.
// Expected pairs are compared in canonical form, so `num: 2, den: 4` matches
// a result of 1/2.
func CheckExpectations(w *Worksheet, trace Trace) []ExpectationFailure {
	results := make(map[string]TraceEvent, len(trace))
	for _, ev := range trace {
		results[ev.StepID] = ev
	}

	var failures []ExpectationFailure
	for _, e := range w.Expect {
		ev, ok := results[e.Step]
		if !ok {
			failures = append(failures, ExpectationFailure{
				Step: e.Step, WantNum: e.Num, WantDen: e.Den,
			})
			continue
		}

		want, err := rational.New(e.Num, e.Den)
		if err != nil || !want.Equal(ev.Result()) {
			failures = append(failures, ExpectationFailure{
				Step:    e.Step,
				WantNum: e.Num, WantDen: e.Den,
				GotNum: ev.ResultNum, GotDen: ev.ResultDen,
			})
		}
	}

	return failures
}
