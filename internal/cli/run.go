package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/ratio/internal/ledger"
	"github.com/roach88/ratio/internal/worksheet"
)

// RunReport is the JSON payload for the run command.
type RunReport struct {
	Worksheet string                         `json:"worksheet"`
	Trace     worksheet.Trace                `json:"trace"`
	Failures  []worksheet.ExpectationFailure `json:"failures,omitempty"`
	RunToken  string                         `json:"run_token,omitempty"`
}

// String renders the report for text output: one line per step, then
// expectation failures, then the recorded token if any.
func (r RunReport) String() string {
	var b strings.Builder
	for _, ev := range r.Trace {
		fmt.Fprintf(&b, "%s = %s\n", ev.StepID, ev.Result())
	}
	for _, f := range r.Failures {
		fmt.Fprintf(&b, "FAIL %s\n", f)
	}
	if r.RunToken != "" {
		fmt.Fprintf(&b, "recorded run %s\n", r.RunToken)
	}
	fmt.Fprintf(&b, "%d step(s), %d failed expectation(s)", len(r.Trace), len(r.Failures))
	return b.String()
}

// NewRunCommand creates the run command: evaluate a worksheet and optionally
// record the trace to a ledger.
func NewRunCommand(rootOpts *RootOptions) *cobra.Command {
	var dbPath string

	cmd := &cobra.Command{
		Use:   "run <worksheet.yaml>",
		Short: "Evaluate a worksheet",
		Long: `Evaluate a worksheet: run every step in order, print the resulting trace,
and check the worksheet's expect clauses.

With --db the evaluated trace is also recorded in the run ledger under a
fresh token, for later replay verification.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRun(rootOpts, cmd, args[0], dbPath)
		},
	}

	cmd.Flags().StringVar(&dbPath, "db", "", "ledger database path (optional)")

	return cmd
}

func runRun(opts *RootOptions, cmd *cobra.Command, path, dbPath string) error {
	formatter := newFormatter(opts, cmd)

	ws, err := worksheet.Load(path)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to load worksheet", err)
	}

	if errs := ws.Validate(); len(errs) > 0 {
		return failValidation(formatter, errs)
	}

	formatter.VerboseLog("evaluating worksheet %q (%d steps)", ws.Name, len(ws.Steps))

	trace, err := worksheet.Evaluate(ws)
	if err != nil {
		return failArithmetic(formatter, err)
	}

	report := RunReport{
		Worksheet: ws.Name,
		Trace:     trace,
		Failures:  worksheet.CheckExpectations(ws, trace),
	}

	if dbPath != "" {
		l, err := ledger.Open(dbPath, nil)
		if err != nil {
			return WrapExitError(ExitCommandError, "failed to open ledger", err)
		}
		defer l.Close()

		token, err := l.RecordRun(cmd.Context(), ws.Name, trace)
		if err != nil {
			return WrapExitError(ExitCommandError, "failed to record run", err)
		}
		report.RunToken = token
		formatter.VerboseLog("recorded run %s in %s", token, dbPath)
	}

	if err := formatter.Success(report); err != nil {
		return err
	}
	if len(report.Failures) > 0 {
		return NewExitError(ExitFailure, fmt.Sprintf("%d expectation(s) failed", len(report.Failures)))
	}
	return nil
}

// failValidation reports structural worksheet errors and returns the
// failure exit code.
func failValidation(formatter *OutputFormatter, errs []worksheet.ValidationError) error {
	if formatter.Format == "json" {
		if err := formatter.Error("INVALID_WORKSHEET", "worksheet validation failed", errs); err != nil {
			return err
		}
	} else {
		for _, e := range errs {
			if err := formatter.Error(e.Code, e.Message, nil); err != nil {
				return err
			}
		}
	}
	return NewExitError(ExitFailure, fmt.Sprintf("%d validation error(s)", len(errs)))
}
