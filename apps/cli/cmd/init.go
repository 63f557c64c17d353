package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var forceInit bool

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize a new matchspec project",
	Long: `Initialize a new matchspec project in the current directory.

This creates:
  - matchspec.yaml - Configuration file
  - example.yaml   - Example suite file

Examples:
  matchspec init
  matchspec init --force`,
	RunE: initCommand,
}

func init() {
	initCmd.Flags().BoolVarP(&forceInit, "force", "f", false, "Overwrite existing files")
}

func initCommand(cmd *cobra.Command, args []string) error {
	cwd, err := os.Getwd()
	if err != nil {
		return err
	}

	configFile := filepath.Join(cwd, "matchspec.yaml")
	exampleFile := filepath.Join(cwd, "example.yaml")

	if !forceInit {
		for _, f := range []string{configFile, exampleFile} {
			if _, err := os.Stat(f); err == nil {
				return fmt.Errorf("file already exists: %s (use --force to overwrite)", f)
			}
		}
	}

	configContent := map[string]any{
		"reporters":   []string{"console"},
		"parallel":    false,
		"concurrency": 5,
		"bail":        false,
	}

	configYAML, _ := yaml.Marshal(configContent)
	if err := os.WriteFile(configFile, configYAML, 0644); err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Created: %s\n", configFile)

	exampleContent := `suite: example
cases:
  - name: passes
    body: success
    expect: success

  - name: body-errors
    body: error
    expect: error
    detailContains: arbitrary error

  - name: teardown-breaks
    tearDown: error-after-upcall
    expect: error

  - name: forgotten-upcall
    setUp: skip-upcall
    expect: error
    detailContains: TestCase.setUp was not called
`

	if err := os.WriteFile(exampleFile, []byte(exampleContent), 0644); err != nil {
		return fmt.Errorf("failed to create example file: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Created: %s\n", exampleFile)

	fmt.Fprintf(cmd.OutOrStdout(), "\nRun the example suite with:\n  matchspec run example.yaml\n")
	return nil
}
