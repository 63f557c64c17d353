package lifecycle

// Outcome is the terminal classification of one case execution.
type Outcome int

const (
	Success Outcome = iota
	Error
	Failure
	Skipped
	ExpectedFailure
	UnexpectedSuccess
)

func (o Outcome) String() string {
	switch o {
	case Success:
		return "success"
	case Error:
		return "error"
	case Failure:
		return "failure"
	case Skipped:
		return "skipped"
	case ExpectedFailure:
		return "expected-failure"
	case UnexpectedSuccess:
		return "unexpected-success"
	default:
		return "unknown"
	}
}

// Passed reports whether the outcome counts as a pass. Expected failures
// count as passes; unexpected successes count as failures.
func (o Outcome) Passed() bool {
	return o == Success || o == ExpectedFailure
}

// Failed reports whether the outcome counts as a failure.
func (o Outcome) Failed() bool {
	return o == Failure || o == Error || o == UnexpectedSuccess
}
