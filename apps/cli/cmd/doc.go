// Package cmd implements the matchspec CLI commands using Cobra.
//
// Available commands:
//   - run: Execute suites from matchspec files
//   - check: Run the built-in lifecycle conformance checks
//   - validate: Check suite file structure without executing
//   - list: Display all cases defined in suite files
//   - history: Show runs recorded to the history database
//   - init: Create a new matchspec project with example files
//   - version: Show matchspec version information
//
// The CLI supports various flags for filtering, output formatting,
// parallel execution, and watch mode for development workflows.
package cmd
