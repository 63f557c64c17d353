package cmd

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/abdul-hamid-achik/matchspec/packages/history"
)

var (
	historyDBFlag    string
	historyLimitFlag int
	historyCasesFlag string
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recorded runs",
	Long: `Show runs recorded to the history database by "matchspec run --history".

Examples:
  matchspec history --db runs.db
  matchspec history --db runs.db --limit 5
  matchspec history --db runs.db --cases <run-id>`,
	RunE: historyCommand,
}

func init() {
	historyCmd.Flags().StringVar(&historyDBFlag, "db", getEnvString("MATCHSPEC_HISTORY", "matchspec.db"), "Path to the history database (env: MATCHSPEC_HISTORY)")
	historyCmd.Flags().IntVar(&historyLimitFlag, "limit", 10, "Maximum number of runs to show")
	historyCmd.Flags().StringVar(&historyCasesFlag, "cases", "", "Show the case results of one run by its run id")
}

func historyCommand(cmd *cobra.Command, args []string) error {
	store, err := history.Open(historyDBFlag)
	if err != nil {
		return err
	}
	defer store.Close()

	if historyCasesFlag != "" {
		return printCaseResults(cmd, store, historyCasesFlag)
	}

	runs, err := store.RecentRuns(historyLimitFlag)
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "no recorded runs")
		return nil
	}

	green := color.New(color.FgGreen).SprintFunc()
	red := color.New(color.FgRed).SprintFunc()
	yellow := color.New(color.FgYellow).SprintFunc()

	for _, run := range runs {
		fmt.Fprintf(cmd.OutOrStdout(), "%s  %s  %s\n",
			run.StartedAt.Local().Format("2006-01-02 15:04:05"), run.RunID, run.Suite)
		fmt.Fprintf(cmd.OutOrStdout(), "    %s  %s  %s  in %dms\n",
			green(fmt.Sprintf("%d passed", run.Passed)),
			red(fmt.Sprintf("%d failed", run.Failed)),
			yellow(fmt.Sprintf("%d skipped", run.Skipped)),
			run.Duration.Milliseconds())
	}
	return nil
}

func printCaseResults(cmd *cobra.Command, store *history.Store, runID string) error {
	cases, err := store.CaseResults(runID)
	if err != nil {
		return err
	}
	if len(cases) == 0 {
		fmt.Fprintf(cmd.OutOrStdout(), "no case results for run %s\n", runID)
		return nil
	}

	for _, cr := range cases {
		fmt.Fprintf(cmd.OutOrStdout(), "  %-18s %s (%dms)\n", cr.Outcome, cr.Name, cr.Duration.Milliseconds())
		if cr.Detail != "" {
			fmt.Fprintf(cmd.OutOrStdout(), "      %s\n", cr.Detail)
		}
	}
	return nil
}
