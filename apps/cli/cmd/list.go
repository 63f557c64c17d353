package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abdul-hamid-achik/matchspec/packages/core/scenario"
)

var listCmd = &cobra.Command{
	Use:   "list <file|directory>",
	Short: "List all cases in suite files",
	Long: `List all cases defined in matchspec suite files.

Examples:
  matchspec list suite.yaml
  matchspec list ./suites/`,
	Args: cobra.MinimumNArgs(1),
	RunE: listCommand,
}

func listCommand(cmd *cobra.Command, args []string) error {
	files, err := collectFiles(args)
	if err != nil {
		return err
	}

	if len(files) == 0 {
		return fmt.Errorf("no suite files found")
	}

	for _, file := range files {
		suite, err := scenario.Load(file)
		if err != nil {
			fmt.Fprintf(cmd.OutOrStderr(), "Error parsing %s: %v\n", file, err)
			continue
		}

		fmt.Fprintf(cmd.OutOrStdout(), "\n%s:\n", suite.Name)
		for _, spec := range suite.Cases {
			fmt.Fprintf(cmd.OutOrStdout(), "  - %s\n", spec.Name)
			if spec.Expect != "" {
				fmt.Fprintf(cmd.OutOrStdout(), "    expect: %s\n", spec.Expect)
			}
		}
	}

	return nil
}
