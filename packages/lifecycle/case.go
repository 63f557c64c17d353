package lifecycle

import (
	"errors"
	"fmt"
	"runtime/debug"
	"strings"

	"go.uber.org/multierr"

	"github.com/abdul-hamid-achik/matchspec/packages/match"
	"github.com/abdul-hamid-achik/matchspec/packages/result"
)

// Diagnostics reported when a custom phase skips its base upcall. The
// substrings are a contract checked verbatim by verification matchers.
const (
	setUpNotCalled    = "TestCase.setUp was not called; a custom set-up phase must invoke BaseSetUp"
	tearDownNotCalled = "TestCase.tearDown was not called; a custom tear-down phase must invoke BaseTearDown"
)

// Phase is one stage of a case: set-up, body, tear-down or cleanup. Phases
// signal outcomes by returning errors built with Fail, Skip or ExpectFailure;
// any other error (or panic) classifies as Error.
type Phase func(*Case) error

// Case is a test case constructed from explicit phase callables. A Case is
// sequential and non-reentrant: never run the same instance concurrently.
// Distinct instances are independent.
type Case struct {
	name     string
	setUp    Phase
	body     Phase
	tearDown Phase
	cleanups []Phase

	// per-run state, reset by Run
	armed          []Phase
	setUpCalled    bool
	tearDownCalled bool
}

// Option configures a Case under construction.
type Option func(*Case)

// WithSetUp sets the set-up phase. The phase must call BaseSetUp.
func WithSetUp(p Phase) Option {
	return func(c *Case) {
		c.setUp = p
	}
}

// WithBody sets the test body.
func WithBody(p Phase) Option {
	return func(c *Case) {
		c.body = p
	}
}

// WithTearDown sets the tear-down phase. The phase must call BaseTearDown.
func WithTearDown(p Phase) Option {
	return func(c *Case) {
		c.tearDown = p
	}
}

// WithCleanups supplies cleanups that BaseSetUp registers in order.
func WithCleanups(cleanups ...Phase) Option {
	return func(c *Case) {
		c.cleanups = cleanups
	}
}

// NewCase constructs a case. Unset phases default to the bare base upcall
// (set-up, tear-down) or a no-op (body).
func NewCase(name string, opts ...Option) *Case {
	c := &Case{name: name}
	for _, opt := range opts {
		opt(c)
	}
	if c.setUp == nil {
		c.setUp = func(c *Case) error {
			c.BaseSetUp()
			return nil
		}
	}
	if c.tearDown == nil {
		c.tearDown = func(c *Case) error {
			c.BaseTearDown()
			return nil
		}
	}
	return c
}

func (c *Case) Name() string {
	return c.name
}

// BaseSetUp is the base set-up implementation. It registers the constructed
// cleanups, preserving their order, and marks the upcall as done. Custom
// set-up phases must call it before their own logic.
func (c *Case) BaseSetUp() {
	c.setUpCalled = true
	for _, cleanup := range c.cleanups {
		c.AddCleanup(cleanup)
	}
}

// BaseTearDown is the base tear-down implementation. Custom tear-down phases
// must call it.
func (c *Case) BaseTearDown() {
	c.tearDownCalled = true
}

// AddCleanup registers a cleanup to run after tear-down. Cleanups run in
// reverse registration order; each runs even if earlier ones failed.
func (c *Case) AddCleanup(p Phase) {
	c.armed = append(c.armed, p)
}

// Fail signals an explicit assertion failure.
func (c *Case) Fail(msg string) error {
	return &failureError{msg: msg}
}

// Failf signals an explicit assertion failure with a formatted message.
func (c *Case) Failf(format string, args ...any) error {
	return &failureError{msg: fmt.Sprintf(format, args...)}
}

// Skip requests the skipped outcome; nothing after the skip point runs.
func (c *Case) Skip(reason string) error {
	return &skipError{reason: reason}
}

// AssertThat evaluates value against a matcher and fails the case when it
// mismatches.
func (c *Case) AssertThat(value any, m match.Matcher) error {
	if mm := m.Match(value); mm != nil {
		return c.Failf("%v: %s", m, mm.Describe())
	}
	return nil
}

// ExpectFailure runs body expecting it to fail. A failing body yields the
// expected-failure outcome (counted as a pass); a succeeding body yields
// unexpected-success (counted as a failure). Non-failure errors propagate
// unchanged.
func (c *Case) ExpectFailure(reason string, body Phase) error {
	err := runPhase(c, body)
	if err == nil {
		return &unexpectedSuccessError{reason: reason}
	}
	var failure *failureError
	if errors.As(err, &failure) {
		return &expectedFailureError{reason: reason, cause: err}
	}
	return err
}

// Run drives the case through its phases, reporting exactly
// [startTest, one outcome event, stopTest] to r, and returns the outcome.
// Calling Run again re-executes the case from a fresh per-run state.
func (c *Case) Run(r result.Reporter) Outcome {
	c.armed = nil
	c.setUpCalled = false
	c.tearDownCalled = false

	r.StartTest(c.name)

	rec := &record{outcome: Success}

	setUpErr := runPhase(c, c.setUp)
	if setUpErr == nil && !c.setUpCalled {
		setUpErr = errors.New(setUpNotCalled)
	}
	if setUpErr != nil {
		rec.add(classify(setUpErr))
	} else {
		if bodyErr := runPhase(c, c.body); bodyErr != nil {
			rec.add(classify(bodyErr))
		}
		tearDownErr := runPhase(c, c.tearDown)
		if tearDownErr == nil && !c.tearDownCalled {
			tearDownErr = errors.New(tearDownNotCalled)
		}
		if tearDownErr != nil {
			rec.add(classify(tearDownErr))
		}
	}

	// Cleanups always run, in reverse order, each isolated from the rest.
	var cleanupErr error
	for i := len(c.armed) - 1; i >= 0; i-- {
		if err := runPhase(c, c.armed[i]); err != nil {
			cleanupErr = multierr.Append(cleanupErr, err)
		}
	}
	if cleanupErr != nil {
		rec.add(Error, cleanupErr.Error(), "")
	}

	rec.emit(r, c.name)
	r.StopTest(c.name)
	return rec.outcome
}

// runPhase invokes a phase, converting panics into plain errors so that no
// phase failure ever escapes the controller.
func runPhase(c *Case, p Phase) (err error) {
	if p == nil {
		return nil
	}
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v\n%s", r, debug.Stack())
		}
	}()
	return p(c)
}

func classify(err error) (Outcome, string, string) {
	var (
		skip       *skipError
		failure    *failureError
		expected   *expectedFailureError
		unexpected *unexpectedSuccessError
	)
	// expectedFailureError wraps the failure that satisfied it, so it must
	// be checked before the bare failure kind.
	switch {
	case errors.As(err, &skip):
		return Skipped, "", skip.reason
	case errors.As(err, &expected):
		return ExpectedFailure, expected.Error(), expected.reason
	case errors.As(err, &failure):
		return Failure, failure.msg, ""
	case errors.As(err, &unexpected):
		return UnexpectedSuccess, "", unexpected.reason
	default:
		return Error, err.Error(), ""
	}
}

// record accumulates at most one outcome per run. The first non-success
// classification wins; diagnostics from later phases append to its
// traceback instead of producing extra events.
type record struct {
	outcome Outcome
	details []string
	reason  string
}

func (r *record) add(outcome Outcome, detail, reason string) {
	if r.outcome == Success {
		r.outcome = outcome
		r.reason = reason
	}
	if detail != "" {
		r.details = append(r.details, detail)
	}
}

func (r *record) traceback() result.Traceback {
	return result.NewTraceback(strings.Join(r.details, "\n"))
}

func (r *record) emit(rep result.Reporter, name string) {
	switch r.outcome {
	case Success:
		rep.AddSuccess(name)
	case Error:
		rep.AddError(name, r.traceback())
	case Failure:
		rep.AddFailure(name, r.traceback())
	case Skipped:
		rep.AddSkip(name, r.reason)
	case ExpectedFailure:
		rep.AddExpectedFailure(name, r.traceback())
	case UnexpectedSuccess:
		rep.AddUnexpectedSuccess(name)
	}
}
