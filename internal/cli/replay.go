package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/ratio/internal/ledger"
)

// ReplayReport is the JSON payload for the replay command.
type ReplayReport struct {
	ledger.ReplayResult
}

// String renders the report for text output.
func (r ReplayReport) String() string {
	var b strings.Builder
	for _, d := range r.Divergences {
		fmt.Fprintf(&b, "DIVERGED %s\n", d)
	}
	if r.OK() {
		fmt.Fprintf(&b, "run %s verified: %d step(s) match", r.Token, r.Steps)
	} else {
		fmt.Fprintf(&b, "run %s DIVERGED: %d of %d step(s) differ", r.Token, len(r.Divergences), r.Steps)
	}
	return b.String()
}

// NewReplayCommand creates the replay command: re-execute a recorded run and
// verify the stored results.
func NewReplayCommand(rootOpts *RootOptions) *cobra.Command {
	var dbPath string

	cmd := &cobra.Command{
		Use:   "replay <run-token>",
		Short: "Re-execute a recorded run and verify its results",
		Long: `Re-execute every step definition recorded for a run and compare the
recomputed canonical results with the stored ones. Rational arithmetic is
deterministic, so any divergence means the ledger was modified after the run
was recorded.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReplay(rootOpts, cmd, dbPath, args[0])
		},
	}

	cmd.Flags().StringVar(&dbPath, "db", "", "ledger database path (required)")
	cmd.MarkFlagRequired("db")

	return cmd
}

func runReplay(opts *RootOptions, cmd *cobra.Command, dbPath, token string) error {
	formatter := newFormatter(opts, cmd)

	l, err := ledger.Open(dbPath, nil)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to open ledger", err)
	}
	defer l.Close()

	result, err := l.Replay(cmd.Context(), token)
	if errors.Is(err, ledger.ErrRunNotFound) {
		return WrapExitError(ExitCommandError, fmt.Sprintf("run %q not found", token), err)
	}
	if err != nil {
		return WrapExitError(ExitFailure, "replay failed", err)
	}

	if err := formatter.Success(ReplayReport{result}); err != nil {
		return err
	}
	if !result.OK() {
		return NewExitError(ExitFailure, "replay diverged")
	}
	return nil
}

// RunsReport is the JSON payload for the runs command.
type RunsReport struct {
	Runs []ledger.Run `json:"runs"`
}

// String renders the report for text output.
func (r RunsReport) String() string {
	if len(r.Runs) == 0 {
		return "no recorded runs"
	}
	var b strings.Builder
	for _, run := range r.Runs {
		fmt.Fprintf(&b, "%s  %s  %d step(s)  %s\n", run.Token, run.Worksheet, run.StepCount, run.CreatedAt)
	}
	fmt.Fprintf(&b, "%d run(s)", len(r.Runs))
	return b.String()
}

// NewRunsCommand creates the runs command: list recorded runs.
func NewRunsCommand(rootOpts *RootOptions) *cobra.Command {
	var dbPath string

	cmd := &cobra.Command{
		Use:           "runs",
		Short:         "List recorded runs",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			formatter := newFormatter(rootOpts, cmd)

			l, err := ledger.Open(dbPath, nil)
			if err != nil {
				return WrapExitError(ExitCommandError, "failed to open ledger", err)
			}
			defer l.Close()

			runs, err := l.ListRuns(cmd.Context())
			if err != nil {
				return WrapExitError(ExitCommandError, "failed to list runs", err)
			}
			return formatter.Success(RunsReport{Runs: runs})
		},
	}

	cmd.Flags().StringVar(&dbPath, "db", "", "ledger database path (required)")
	cmd.MarkFlagRequired("db")

	return cmd
}
