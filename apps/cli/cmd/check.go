package cmd

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/abdul-hamid-achik/matchspec/packages/lifecycle"
	"github.com/abdul-hamid-achik/matchspec/packages/match"
	"github.com/abdul-hamid-achik/matchspec/packages/result"
	"github.com/abdul-hamid-achik/matchspec/packages/samples"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Run the built-in lifecycle conformance checks",
	Long: `Run the built-in sample cases and verify that the lifecycle engine
produces the expected outcomes and event logs, including the stateful
scenario whose two runs surface missing set-up and tear-down upcalls.

Examples:
  matchspec check
  matchspec check --no-color`,
	RunE: checkCommand,
}

func init() {
	checkCmd.Flags().BoolVar(&noColorFlag, "no-color", getEnvBool("MATCHSPEC_NO_COLOR", false), "Disable colored output (env: MATCHSPEC_NO_COLOR)")
}

type conformanceCheck struct {
	name string
	run  func() error
}

func checkCommand(cmd *cobra.Command, args []string) error {
	if noColorFlag {
		color.NoColor = true
	}
	green := color.New(color.FgGreen).SprintFunc()
	red := color.New(color.FgRed).SprintFunc()

	checks := []conformanceCheck{
		{"deterministic outcomes", checkDeterministicOutcomes},
		{"event log shape", checkEventLogShape},
		{"tear-down error surfaces", checkTearDownError},
		{"stateful scenario, first run", nil},
		{"stateful scenario, second run", nil},
	}

	// The stateful scenario needs one case instance shared across two runs
	state := samples.NewSharedFlag()
	c := samples.SetUpFailsOnSharedState(state)
	checks[3].run = func() error {
		return checkStatefulRun(c, "TestCase.tearDown was not called")
	}
	checks[4].run = func() error {
		return checkStatefulRun(c, "TestCase.setUp was not called")
	}

	failed := 0
	for _, check := range checks {
		if err := check.run(); err != nil {
			fmt.Fprintf(cmd.OutOrStdout(), "  %s %s\n      %v\n", red("✗"), check.name, err)
			failed++
			continue
		}
		fmt.Fprintf(cmd.OutOrStdout(), "  %s %s\n", green("✓"), check.name)
	}

	if failed > 0 {
		fmt.Fprintf(cmd.OutOrStdout(), "\n%s\n", red(fmt.Sprintf("%d of %d checks failed", failed, len(checks))))
		os.Exit(ExitCaseFailure)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "\n%s\n", green(fmt.Sprintf("all %d checks passed", len(checks))))
	return nil
}

// checkDeterministicOutcomes runs every deterministic sample case and
// verifies its terminal outcome.
func checkDeterministicOutcomes() error {
	want := map[string]lifecycle.Outcome{
		"simple-success-test":            lifecycle.Success,
		"simple-error-test":              lifecycle.Error,
		"simple-failure-test":            lifecycle.Failure,
		"simple-expected-failure-test":   lifecycle.ExpectedFailure,
		"simple-unexpected-success-test": lifecycle.UnexpectedSuccess,
		"simple-skip-test":               lifecycle.Skipped,
		"teardown-fails":                 lifecycle.Error,
	}

	for _, c := range samples.Deterministic() {
		log := result.NewLog()
		outcome := c.Run(log)
		if outcome != want[c.Name()] {
			return fmt.Errorf("%s: got outcome %s, want %s", c.Name(), outcome, want[c.Name()])
		}
	}
	return nil
}

// checkEventLogShape verifies the startTest / outcome / stopTest contract.
func checkEventLogShape() error {
	for _, c := range samples.Deterministic() {
		log := result.NewLog()
		c.Run(log)

		events := log.Events()
		if len(events) != 3 {
			return fmt.Errorf("%s: got %d events, want 3", c.Name(), len(events))
		}
		if events[0].Kind != result.StartTest || events[2].Kind != result.StopTest {
			return fmt.Errorf("%s: log not bracketed by startTest/stopTest", c.Name())
		}
	}
	return nil
}

// checkTearDownError verifies that a failing tear-down turns a passing body
// into an errored case.
func checkTearDownError() error {
	c := samples.TearDownFails()
	log := result.NewLog()
	c.Run(log)

	mm := samples.MatchesErrorLog(c.Name(), match.Contains("arbitrary error")).Match(log.Events())
	if mm != nil {
		return fmt.Errorf("event log mismatch: %s", mm.Describe())
	}
	return nil
}

// checkStatefulRun runs the shared-state case once and verifies that the
// produced error log mentions the expected lifecycle violation.
func checkStatefulRun(c *lifecycle.Case, wantDetail string) error {
	log := result.NewLog()
	c.Run(log)

	mm := samples.MatchesErrorLog(c.Name(), match.Contains(wantDetail)).Match(log.Events())
	if mm != nil {
		return fmt.Errorf("event log mismatch: %s", mm.Describe())
	}
	return nil
}
