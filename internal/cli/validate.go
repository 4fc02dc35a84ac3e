package cli

import (
	_ "embed"
	"fmt"
	"os"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/roach88/ratio/internal/worksheet"
)

//go:embed schema.cue
var worksheetSchema string

// ValidationIssue is one problem found by the validate command.
type ValidationIssue struct {
	Source  string `json:"source"` // "schema" or "structure"
	Code    string `json:"code,omitempty"`
	Message string `json:"message"`
}

// ValidationReport is the JSON payload for the validate command.
type ValidationReport struct {
	Valid  bool              `json:"valid"`
	Issues []ValidationIssue `json:"issues,omitempty"`
}

// String renders the report for text output.
func (r ValidationReport) String() string {
	if r.Valid {
		return "worksheet is valid"
	}
	return fmt.Sprintf("worksheet is invalid: %d issue(s)", len(r.Issues))
}

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate <worksheet.yaml>",
		Short: "Validate a worksheet without evaluating it",
		Long: `Validate a worksheet file without running it.

The document is first unified against the embedded CUE schema (field names,
operation names, value types), then checked structurally (unique step ids
after NFC normalization, operand arity, references to earlier steps only).`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(rootOpts, cmd, args[0])
		},
	}
	return cmd
}

func runValidate(opts *RootOptions, cmd *cobra.Command, path string) error {
	formatter := newFormatter(opts, cmd)

	data, err := os.ReadFile(path)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to read worksheet", err)
	}

	var issues []ValidationIssue

	// Schema pass: decode generically and unify with #Worksheet.
	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return WrapExitError(ExitCommandError, "worksheet is not valid YAML", err)
	}
	issues = append(issues, validateSchema(doc)...)
	formatter.VerboseLog("schema pass: %d issue(s)", len(issues))

	// Structure pass: only meaningful when the document decodes into the
	// worksheet types at all.
	if ws, err := worksheet.Parse(data); err == nil {
		for _, e := range ws.Validate() {
			issues = append(issues, ValidationIssue{
				Source:  "structure",
				Code:    e.Code,
				Message: e.Error(),
			})
		}
	} else if len(issues) == 0 {
		issues = append(issues, ValidationIssue{
			Source:  "structure",
			Message: err.Error(),
		})
	}

	report := ValidationReport{Valid: len(issues) == 0, Issues: issues}

	if report.Valid {
		return formatter.Success(report)
	}

	if formatter.Format == "json" {
		if err := formatter.Error("INVALID_WORKSHEET", "worksheet validation failed", report.Issues); err != nil {
			return err
		}
	} else {
		for _, issue := range report.Issues {
			code := issue.Code
			if code == "" {
				code = "SCHEMA"
			}
			if err := formatter.Error(code, issue.Message, nil); err != nil {
				return err
			}
		}
	}
	return NewExitError(ExitFailure, fmt.Sprintf("%d validation issue(s)", len(report.Issues)))
}

// validateSchema unifies the decoded document with the embedded #Worksheet
// schema and collects every unification error.
func validateSchema(doc any) []ValidationIssue {
	ctx := cuecontext.New()

	schema := ctx.CompileString(worksheetSchema)
	if err := schema.Err(); err != nil {
		// The schema is embedded and fixed; failing to compile it is a
		// programming error, not user input.
		panic(fmt.Sprintf("embedded worksheet schema does not compile: %v", err))
	}
	def := schema.LookupPath(cue.ParsePath("#Worksheet"))

	value := ctx.Encode(doc)
	if err := value.Err(); err != nil {
		return []ValidationIssue{{Source: "schema", Message: err.Error()}}
	}

	unified := def.Unify(value)
	if err := unified.Validate(cue.Concrete(true)); err != nil {
		var issues []ValidationIssue
		for _, e := range cueerrors.Errors(err) {
			issues = append(issues, ValidationIssue{
				Source:  "schema",
				Message: e.Error(),
			})
		}
		return issues
	}

	return nil
}
