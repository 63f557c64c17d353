package cmd

// Exit codes for matchspec CLI
const (
	// ExitSuccess indicates all cases passed
	ExitSuccess = 0

	// ExitCaseFailure indicates one or more cases failed
	ExitCaseFailure = 1

	// ExitSuiteError indicates a suite could not be loaded or built
	ExitSuiteError = 2

	// ExitConfigError indicates a configuration error
	ExitConfigError = 3

	// ExitUsageError indicates invalid CLI usage
	ExitUsageError = 64
)
