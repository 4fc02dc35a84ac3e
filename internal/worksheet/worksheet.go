package worksheet

import (
	"bytes"
	"fmt"
	"os"
	"regexp"

	"golang.org/x/text/unicode/norm"
	"gopkg.in/yaml.v3"
)

// Op names the operation a step performs.
type Op string

const (
	OpNew Op = "new" // construct from integer literals
	OpAdd Op = "add"
	OpSub Op = "sub"
	OpMul Op = "mul"
	OpDiv Op = "div"
	OpPow Op = "pow"
	OpNeg Op = "neg"
)

// validStepID matches allowed step identifiers: a letter or underscore
// followed by letters, digits, underscores, or hyphens. Unicode letters are
// allowed; IDs are NFC-normalized before this check runs.
var validStepID = regexp.MustCompile(`^[\p{L}_][\p{L}\p{N}_-]*$`)

// Worksheet defines a rational computation scenario.
type Worksheet struct {
	// Name uniquely identifies this worksheet.
	Name string `yaml:"name"`

	// Description explains what this worksheet computes.
	Description string `yaml:"description,omitempty"`

	// Steps contains the computation steps, executed in order.
	Steps []Step `yaml:"steps"`

	// Expect contains optional assertions on step results.
	Expect []Expectation `yaml:"expect,omitempty"`
}

// Step is a single computation. Exactly one shape applies per op:
//
//   - new: Num (and optionally Den, default 1), no operands
//   - add, sub, mul, div: exactly two operands
//   - neg: exactly one operand
//   - pow: exactly one operand plus Exp
type Step struct {
	// ID names the register this step's result is stored under.
	ID string `yaml:"id"`

	// Op is the operation to perform.
	Op Op `yaml:"op"`

	// Num and Den are the integer literals for "new".
	// A nil Den defaults to 1, matching integer construction.
	Num int64  `yaml:"num,omitempty"`
	Den *int64 `yaml:"den,omitempty"`

	// Operands references results of earlier steps by ID.
	Operands []string `yaml:"operands,omitempty"`

	// Exp is the integer exponent for "pow".
	Exp int64 `yaml:"exp,omitempty"`
}

// Denominator returns the step's literal denominator, defaulting to 1.
func (s Step) Denominator() int64 {
	if s.Den == nil {
		return 1
	}
	return *s.Den
}

// Expectation asserts the canonical result of a named step.
type Expectation struct {
	Step string `yaml:"step"`
	Num  int64  `yaml:"num"`
	Den  int64  `yaml:"den"`
}

// Load reads and parses a worksheet file.
func Load(path string) (*Worksheet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load worksheet: %w", err)
	}
	ws, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("load worksheet %s: %w", path, err)
	}
	return ws, nil
}

// Parse decodes worksheet YAML and NFC-normalizes all step identifiers and
// references. Structural validity is checked separately by Validate.
func Parse(data []byte) (*Worksheet, error) {
	var ws Worksheet
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&ws); err != nil {
		return nil, fmt.Errorf("parse worksheet: %w", err)
	}
	ws.normalize()
	return &ws, nil
}

// normalize applies NFC normalization to every identifier position.
// Uniqueness and reference checks run on the normalized forms, so two
// different encodings of the same visible name cannot name distinct
// registers.
func (w *Worksheet) normalize() {
	for i := range w.Steps {
		w.Steps[i].ID = norm.NFC.String(w.Steps[i].ID)
		for j, op := range w.Steps[i].Operands {
			w.Steps[i].Operands[j] = norm.NFC.String(op)
		}
	}
	for i := range w.Expect {
		w.Expect[i].Step = norm.NFC.String(w.Expect[i].Step)
	}
}

// ValidationError describes a structural problem in a worksheet.
type ValidationError struct {
	Step    string // offending step ID, empty for document-level problems
	Code    string
	Message string
}

// Error implements the error interface.
func (e ValidationError) Error() string {
	if e.Step != "" {
		return fmt.Sprintf("%s: %s (step=%s)", e.Code, e.Message, e.Step)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Validation error codes.
const (
	ErrCodeNoName      = "NO_NAME"
	ErrCodeNoSteps     = "NO_STEPS"
	ErrCodeBadID       = "BAD_ID"
	ErrCodeDuplicateID = "DUPLICATE_ID"
	ErrCodeUnknownOp   = "UNKNOWN_OP"
	ErrCodeArity       = "ARITY"
	ErrCodeUnknownRef  = "UNKNOWN_REF"
	ErrCodeBadExpect   = "BAD_EXPECT"
)

// Validate checks worksheet structure without evaluating anything: step IDs
// are well formed and unique, operations are known with the right operand
// counts, and every reference names an earlier step. Collects all errors.
func (w *Worksheet) Validate() []ValidationError {
	var errs []ValidationError

	if w.Name == "" {
		errs = append(errs, ValidationError{Code: ErrCodeNoName, Message: "worksheet has no name"})
	}
	if len(w.Steps) == 0 {
		errs = append(errs, ValidationError{Code: ErrCodeNoSteps, Message: "worksheet has no steps"})
	}

	defined := make(map[string]bool, len(w.Steps))
	for _, s := range w.Steps {
		if !validStepID.MatchString(s.ID) {
			errs = append(errs, ValidationError{
				Step: s.ID, Code: ErrCodeBadID,
				Message: fmt.Sprintf("invalid step id %q", s.ID),
			})
		}
		if defined[s.ID] {
			errs = append(errs, ValidationError{
				Step: s.ID, Code: ErrCodeDuplicateID,
				Message: fmt.Sprintf("duplicate step id %q", s.ID),
			})
		}

		errs = append(errs, validateShape(s, defined)...)

		defined[s.ID] = true
	}

	for _, e := range w.Expect {
		if !defined[e.Step] {
			errs = append(errs, ValidationError{
				Step: e.Step, Code: ErrCodeBadExpect,
				Message: fmt.Sprintf("expectation references unknown step %q", e.Step),
			})
		}
	}

	return errs
}

// validateShape checks op-specific arity. Operand references must resolve to
// steps defined strictly earlier, which also rules out cycles.
func validateShape(s Step, defined map[string]bool) []ValidationError {
	var errs []ValidationError

	wantOperands := -1
	switch s.Op {
	case OpNew:
		wantOperands = 0
	case OpAdd, OpSub, OpMul, OpDiv:
		wantOperands = 2
	case OpPow, OpNeg:
		wantOperands = 1
	default:
		errs = append(errs, ValidationError{
			Step: s.ID, Code: ErrCodeUnknownOp,
			Message: fmt.Sprintf("unknown op %q", s.Op),
		})
		return errs
	}

	if len(s.Operands) != wantOperands {
		errs = append(errs, ValidationError{
			Step: s.ID, Code: ErrCodeArity,
			Message: fmt.Sprintf("op %q takes %d operand(s), got %d", s.Op, wantOperands, len(s.Operands)),
		})
	}

	for _, ref := range s.Operands {
		if !defined[ref] {
			errs = append(errs, ValidationError{
				Step: s.ID, Code: ErrCodeUnknownRef,
				Message: fmt.Sprintf("operand %q does not name an earlier step", ref),
			})
		}
	}

	return errs
}
