package cli

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/roach88/ratio/internal/rational"
)

// PairResult is the JSON payload for a single rational result.
type PairResult struct {
	Num  int64  `json:"num"`
	Den  int64  `json:"den"`
	Text string `json:"text"`
}

// String renders the result for text output.
func (p PairResult) String() string { return p.Text }

func pairResult(r rational.Rational) PairResult {
	return PairResult{Num: r.Num(), Den: r.Den(), Text: r.String()}
}

// NewEvalCommand creates the eval command: one binary operation on two
// numerator/denominator pairs.
func NewEvalCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "eval <add|sub|mul|div> <num1> <den1> <num2> <den2>",
		Short: "Apply a binary operation to two rationals",
		Long: `Apply add, sub, mul, or div to two rationals given as separate integers.

The result is always canonical. Examples:

  ratio eval add 1 2 1 3    -> 5/6
  ratio eval div 1 2 1 4    -> 2
  ratio eval mul 2 3 3 4    -> 1/2`,
		Args:          cobra.ExactArgs(5),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEval(rootOpts, cmd, args)
		},
	}
	return cmd
}

func runEval(opts *RootOptions, cmd *cobra.Command, args []string) error {
	formatter := newFormatter(opts, cmd)

	op := args[0]
	ints, err := parseInt64Args(args[1:])
	if err != nil {
		return WrapExitError(ExitCommandError, "invalid integer argument", err)
	}

	left, err := rational.New(ints[0], ints[1])
	if err != nil {
		return failArithmetic(formatter, err)
	}
	right, err := rational.New(ints[2], ints[3])
	if err != nil {
		return failArithmetic(formatter, err)
	}

	formatter.VerboseLog("evaluating %s %s %s", left, op, right)

	var result rational.Rational
	switch op {
	case "add":
		result, err = left.Add(right)
	case "sub":
		result, err = left.Sub(right)
	case "mul":
		result, err = left.Mul(right)
	case "div":
		result, err = left.Div(right)
	default:
		return NewExitError(ExitCommandError, fmt.Sprintf("unknown operation %q: must be add, sub, mul, or div", op))
	}
	if err != nil {
		return failArithmetic(formatter, err)
	}

	return formatter.Success(pairResult(result))
}

// NewReduceCommand creates the reduce command: canonicalize one raw pair.
func NewReduceCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reduce <num> <den>",
		Short: "Canonicalize a numerator/denominator pair",
		Long: `Reduce a raw pair to canonical form: lowest terms, positive denominator.

  ratio reduce 4 8     -> 1/2
  ratio reduce 3 -4    -> -3/4
  ratio reduce -3 -9   -> 1/3`,
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			formatter := newFormatter(rootOpts, cmd)

			ints, err := parseInt64Args(args)
			if err != nil {
				return WrapExitError(ExitCommandError, "invalid integer argument", err)
			}

			r, err := rational.New(ints[0], ints[1])
			if err != nil {
				return failArithmetic(formatter, err)
			}
			return formatter.Success(pairResult(r))
		},
	}
	return cmd
}

// NewPowCommand creates the pow command: integer exponentiation.
func NewPowCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pow <num> <den> <exp>",
		Short: "Raise a rational to an integer power",
		Long: `Raise num/den to an integer exponent. A zero exponent yields 1 for every
base; a negative exponent raises the reciprocal, which fails for a zero base.

  ratio pow 2 3 3     -> 8/27
  ratio pow 2 3 -2    -> 9/4
  ratio pow 0 1 0     -> 1`,
		Args:          cobra.ExactArgs(3),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			formatter := newFormatter(rootOpts, cmd)

			ints, err := parseInt64Args(args)
			if err != nil {
				return WrapExitError(ExitCommandError, "invalid integer argument", err)
			}

			base, err := rational.New(ints[0], ints[1])
			if err != nil {
				return failArithmetic(formatter, err)
			}
			result, err := base.Pow(ints[2])
			if err != nil {
				return failArithmetic(formatter, err)
			}
			return formatter.Success(pairResult(result))
		},
	}
	return cmd
}

// parseInt64Args parses every argument as a base-10 int64.
func parseInt64Args(args []string) ([]int64, error) {
	out := make([]int64, len(args))
	for i, a := range args {
		v, err := strconv.ParseInt(a, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("argument %q is not a 64-bit integer", a)
		}
		out[i] = v
	}
	return out, nil
}

// failArithmetic reports a structured arithmetic error and returns an
// ExitError carrying the failure exit code. The rational error code
// (INVALID_ARGUMENT, DIVISION_BY_ZERO, OVERFLOW) becomes the output code.
func failArithmetic(formatter *OutputFormatter, err error) error {
	var ae *rational.Error
	if errors.As(err, &ae) {
		if outErr := formatter.Error(string(ae.Code), ae.Message, nil); outErr != nil {
			return outErr
		}
		return &ExitError{Code: ExitFailure, Message: ae.Message, Err: err}
	}
	return WrapExitError(ExitFailure, "arithmetic error", err)
}
