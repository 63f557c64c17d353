// Package samples provides a collection of sample cases for exercising the
// lifecycle engine, plus matchers over the event logs they produce. These
// are primarily of use in testing the test framework itself.
package samples

import (
	"errors"

	"github.com/abdul-hamid-achik/matchspec/packages/lifecycle"
	"github.com/abdul-hamid-achik/matchspec/packages/match"
	"github.com/abdul-hamid-achik/matchspec/packages/result"
)

// Canonical phase behaviors, one per terminal outcome.

func Success() lifecycle.Phase {
	return func(*lifecycle.Case) error {
		return nil
	}
}

func Error() lifecycle.Phase {
	return func(*lifecycle.Case) error {
		return errors.New("arbitrary error")
	}
}

func Failure() lifecycle.Phase {
	return func(c *lifecycle.Case) error {
		return c.Fail("arbitrary failure")
	}
}

func Skip() lifecycle.Phase {
	return func(c *lifecycle.Case) error {
		return c.Skip("arbitrary skip message")
	}
}

func ExpectedFailure() lifecycle.Phase {
	return func(c *lifecycle.Case) error {
		return c.ExpectFailure("arbitrary expected failure", Failure())
	}
}

func UnexpectedSuccess() lifecycle.Phase {
	return func(c *lifecycle.Case) error {
		return c.ExpectFailure("arbitrary unexpected success", Success())
	}
}

// Behavior resolves a body behavior by its scenario keyword.
func Behavior(name string) (lifecycle.Phase, error) {
	switch name {
	case "", "success":
		return Success(), nil
	case "error":
		return Error(), nil
	case "failure":
		return Failure(), nil
	case "skip":
		return Skip(), nil
	case "expected-failure":
		return ExpectedFailure(), nil
	case "unexpected-success":
		return UnexpectedSuccess(), nil
	default:
		return nil, errors.New("unknown behavior: " + name)
	}
}

// TearDownBehavior resolves a tear-down behavior by its scenario keyword.
func TearDownBehavior(name string) (lifecycle.Phase, error) {
	switch name {
	case "", "base":
		return nil, nil // default tear-down
	case "error-after-upcall":
		return func(c *lifecycle.Case) error {
			c.BaseTearDown()
			return errors.New("arbitrary error")
		}, nil
	case "skip-upcall":
		return func(*lifecycle.Case) error {
			return nil
		}, nil
	default:
		return nil, errors.New("unknown tear-down behavior: " + name)
	}
}

// SetUpBehavior resolves a set-up behavior by its scenario keyword.
func SetUpBehavior(name string) (lifecycle.Phase, error) {
	switch name {
	case "", "base":
		return nil, nil // default set-up
	case "skip-upcall":
		return func(*lifecycle.Case) error {
			return nil
		}, nil
	default:
		return nil, errors.New("unknown set-up behavior: " + name)
	}
}

// Deterministic returns the deterministic sample cases: the six simple
// bodies plus a passing case whose tear-down fails after its upcall.
func Deterministic() []*lifecycle.Case {
	return []*lifecycle.Case{
		lifecycle.NewCase("simple-success-test", lifecycle.WithBody(Success())),
		lifecycle.NewCase("simple-error-test", lifecycle.WithBody(Error())),
		lifecycle.NewCase("simple-failure-test", lifecycle.WithBody(Failure())),
		lifecycle.NewCase("simple-expected-failure-test", lifecycle.WithBody(ExpectedFailure())),
		lifecycle.NewCase("simple-unexpected-success-test", lifecycle.WithBody(UnexpectedSuccess())),
		lifecycle.NewCase("simple-skip-test", lifecycle.WithBody(Skip())),
		TearDownFails(),
	}
}

// TearDownFails returns a passing case whose tear-down fails after the base
// upcall. The tear-down error surfaces as the case's error even though the
// body succeeded.
func TearDownFails() *lifecycle.Case {
	return lifecycle.NewCase("teardown-fails",
		lifecycle.WithBody(Success()),
		lifecycle.WithTearDown(func(c *lifecycle.Case) error {
			c.BaseTearDown()
			return errors.New("arbitrary error")
		}),
	)
}

// SharedFlag is the mutable cell shared between the intentional runs of the
// stateful scenario. It replaces process-wide state: behavior is
// deterministic and nothing leaks across unrelated executions. Not safe for
// concurrent use.
type SharedFlag struct {
	FirstRun bool
}

func NewSharedFlag() *SharedFlag {
	return &SharedFlag{FirstRun: true}
}

// SetUpFailsOnSharedState simulates a case that fails to upcall set-up when
// shared state is broken, and fails to upcall tear-down while breaking it.
// Run once: the tear-down upcall is skipped, so the run errors with the
// tearDown-not-called diagnostic. Run again: the set-up upcall is skipped,
// so the run errors with the setUp-not-called diagnostic.
func SetUpFailsOnSharedState(state *SharedFlag) *lifecycle.Case {
	return lifecycle.NewCase("setup-fails-on-shared-state",
		lifecycle.WithSetUp(func(c *lifecycle.Case) error {
			if !state.FirstRun {
				return nil
			}
			c.BaseSetUp()
			return nil
		}),
		lifecycle.WithBody(Success()),
		lifecycle.WithTearDown(func(c *lifecycle.Case) error {
			if !state.FirstRun {
				c.BaseTearDown()
			}
			state.FirstRun = false
			return nil
		}),
	)
}

// MatchesErrorLog matches the event log of a single case that errored out.
// The traceback matcher is applied to the text of the recorded traceback.
func MatchesErrorLog(name string, traceback match.Matcher) match.Matcher {
	return match.MatchesListwise(
		match.Equals(result.Event{Kind: result.StartTest, Case: name}),
		match.MatchesAll(
			match.AfterPreprocessing(eventKind, match.Equals(result.AddError)),
			match.AfterPreprocessing(eventCase, match.Equals(name)),
			match.AfterPreprocessing(eventDetails, match.MatchesDict(map[string]match.Matcher{
				"traceback": match.AfterPreprocessing(tracebackText, traceback),
			})),
		),
		match.Equals(result.Event{Kind: result.StopTest, Case: name}),
	)
}

func eventKind(v any) any {
	e, ok := v.(result.Event)
	if !ok {
		return nil
	}
	return e.Kind
}

func eventCase(v any) any {
	e, ok := v.(result.Event)
	if !ok {
		return nil
	}
	return e.Case
}

func eventDetails(v any) any {
	e, ok := v.(result.Event)
	if !ok {
		return nil
	}
	return e.Details
}

func tracebackText(v any) any {
	tb, ok := v.(result.Traceback)
	if !ok {
		return nil
	}
	return tb.AsText()
}
