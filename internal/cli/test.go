package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/roach88/giftcycle/internal/harness"
)

// TestOptions holds flags for the test command.
type TestOptions struct {
	*RootOptions
	Filter string // scenario filter (glob pattern)
}

// TestResult holds the overall test result.
type TestResult struct {
	Scenarios []harness.ScenarioReport `json:"scenarios"`
	Passed    int                      `json:"passed"`
	Failed    int                      `json:"failed"`
	Total     int                      `json:"total"`
}

// NewTestCommand creates the test command.
func NewTestCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &TestOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "test <scenarios-dir>",
		Short: "Run draw scenarios",
		Long: `Run scenario files against a fresh in-memory database.

Each scenario seeds a group from its group file, runs a flow of draw,
reveal and exclusion steps, and checks the recorded trace and the final
group state. The configured database is not touched.

Exit codes:
  0 - All scenarios passed
  1 - One or more scenarios failed
  2 - Command error (missing directory, bad filter)

Examples:
  giftcycle test ./scenarios
  giftcycle test ./scenarios --filter "family-*"
  giftcycle test ./scenarios --format json`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTests(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Filter, "filter", "", "filter scenarios by glob pattern")

	return cmd
}

func runTests(opts *TestOptions, dir string, cmd *cobra.Command) error {
	out := newFormatter(opts.RootOptions, cmd)

	info, err := os.Stat(dir)
	if err != nil {
		return out.Fail("scenarios directory not found", err)
	}
	if !info.IsDir() {
		return out.Fail("invalid scenarios directory", fmt.Errorf("%s is not a directory", dir))
	}

	suite, err := harness.RunDirMatching(dir, opts.Filter)
	if err != nil {
		return out.Fail("failed to run scenarios", err)
	}

	result := TestResult{
		Scenarios: suite.Scenarios,
		Passed:    suite.Passed,
		Failed:    suite.Failed,
		Total:     suite.TotalScenarios,
	}
	out.VerboseLog("ran %d scenario(s) from %s", result.Total, dir)

	if out.Format == "json" {
		return outputTestJSON(out, result)
	}
	return outputTestText(out, result)
}

// outputTestJSON outputs the test result as JSON.
func outputTestJSON(out *OutputFormatter, result TestResult) error {
	response := CLIResponse{Status: "ok", Data: result}
	if result.Failed > 0 {
		response.Status = "error"
		response.Error = &CLIError{
			Code:    "TEST_FAILED",
			Message: fmt.Sprintf("%d scenario(s) failed", result.Failed),
		}
	}

	if err := json.NewEncoder(out.Writer).Encode(response); err != nil {
		return err
	}
	return testFailure(result)
}

// outputTestText outputs the test result as text.
func outputTestText(out *OutputFormatter, result TestResult) error {
	w := out.Writer

	if result.Total == 0 {
		fmt.Fprintln(w, "No scenarios found.")
		return nil
	}

	for _, s := range result.Scenarios {
		if s.Pass {
			fmt.Fprintf(w, "✓ %s\n", s.Name)
			continue
		}
		fmt.Fprintf(w, "✗ %s\n", s.Name)
		for _, e := range s.Errors {
			fmt.Fprintf(w, "  %s\n", e)
		}
	}

	fmt.Fprintln(w)
	fmt.Fprintf(w, "Test Summary: %d passed, %d failed, %d total\n", result.Passed, result.Failed, result.Total)

	if result.Failed > 0 {
		return testFailure(result)
	}
	fmt.Fprintln(w, "✓ All scenarios passed")
	return nil
}

// testFailure returns exit code 1 when any scenario failed. The summary has
// already been written.
func testFailure(result TestResult) error {
	if result.Failed == 0 {
		return nil
	}
	exitErr := NewExitError(ExitFailure, fmt.Sprintf("%d scenario(s) failed", result.Failed))
	exitErr.Reported = true
	return exitErr
}
