package lifecycle

import "fmt"

// Outcome-kind errors replace exception-style control flow: a phase signals
// failure, skip, expected-failure or unexpected-success by returning one of
// these, and the controller converts it to the matching log event at the
// outermost boundary. Any other error classifies as Error.

type failureError struct {
	msg string
}

func (e *failureError) Error() string {
	return e.msg
}

type skipError struct {
	reason string
}

func (e *skipError) Error() string {
	return fmt.Sprintf("skipped: %s", e.reason)
}

type expectedFailureError struct {
	reason string
	cause  error
}

func (e *expectedFailureError) Error() string {
	return fmt.Sprintf("%s: %v", e.reason, e.cause)
}

func (e *expectedFailureError) Unwrap() error {
	return e.cause
}

type unexpectedSuccessError struct {
	reason string
}

func (e *unexpectedSuccessError) Error() string {
	return fmt.Sprintf("unexpected success: %s", e.reason)
}
