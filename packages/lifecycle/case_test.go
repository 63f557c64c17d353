package lifecycle_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abdul-hamid-achik/matchspec/packages/lifecycle"
	"github.com/abdul-hamid-achik/matchspec/packages/match"
	"github.com/abdul-hamid-achik/matchspec/packages/result"
	"github.com/abdul-hamid-achik/matchspec/packages/samples"
)

func runCase(t *testing.T, c *lifecycle.Case) (lifecycle.Outcome, []result.Event) {
	t.Helper()
	log := result.NewLog()
	outcome := c.Run(log)
	return outcome, log.Events()
}

func eventKinds(events []result.Event) []result.Kind {
	kinds := make([]result.Kind, len(events))
	for i, e := range events {
		kinds[i] = e.Kind
	}
	return kinds
}

func TestRun_Success(t *testing.T) {
	c := lifecycle.NewCase("t", lifecycle.WithBody(samples.Success()))
	outcome, events := runCase(t, c)

	assert.Equal(t, lifecycle.Success, outcome)
	assert.Equal(t,
		[]result.Kind{result.StartTest, result.AddSuccess, result.StopTest},
		eventKinds(events))
}

func TestRun_BodyError(t *testing.T) {
	c := lifecycle.NewCase("t", lifecycle.WithBody(func(*lifecycle.Case) error {
		return errors.New("kaboom")
	}))
	outcome, events := runCase(t, c)

	assert.Equal(t, lifecycle.Error, outcome)
	require.Equal(t,
		[]result.Kind{result.StartTest, result.AddError, result.StopTest},
		eventKinds(events))

	tb := events[1].Details["traceback"].(result.Traceback)
	assert.Contains(t, tb.AsText(), "kaboom")
}

func TestRun_BodyFailure(t *testing.T) {
	c := lifecycle.NewCase("t", lifecycle.WithBody(samples.Failure()))
	outcome, events := runCase(t, c)

	assert.Equal(t, lifecycle.Failure, outcome)
	require.Equal(t,
		[]result.Kind{result.StartTest, result.AddFailure, result.StopTest},
		eventKinds(events))

	tb := events[1].Details["traceback"].(result.Traceback)
	assert.Contains(t, tb.AsText(), "arbitrary failure")
}

func TestRun_Skip(t *testing.T) {
	c := lifecycle.NewCase("t", lifecycle.WithBody(samples.Skip()))
	outcome, events := runCase(t, c)

	assert.Equal(t, lifecycle.Skipped, outcome)
	require.Equal(t,
		[]result.Kind{result.StartTest, result.AddSkip, result.StopTest},
		eventKinds(events))
	assert.Equal(t, "arbitrary skip message", events[1].Details["reason"])
}

func TestRun_ExpectedFailure(t *testing.T) {
	c := lifecycle.NewCase("t", lifecycle.WithBody(samples.ExpectedFailure()))
	outcome, events := runCase(t, c)

	assert.Equal(t, lifecycle.ExpectedFailure, outcome)
	assert.True(t, outcome.Passed())
	assert.Equal(t,
		[]result.Kind{result.StartTest, result.AddExpectedFailure, result.StopTest},
		eventKinds(events))
}

func TestRun_UnexpectedSuccess(t *testing.T) {
	c := lifecycle.NewCase("t", lifecycle.WithBody(samples.UnexpectedSuccess()))
	outcome, events := runCase(t, c)

	assert.Equal(t, lifecycle.UnexpectedSuccess, outcome)
	assert.True(t, outcome.Failed())
	assert.Equal(t,
		[]result.Kind{result.StartTest, result.AddUnexpectedSuccess, result.StopTest},
		eventKinds(events))
}

func TestRun_BodyPanicClassifiesAsError(t *testing.T) {
	c := lifecycle.NewCase("t", lifecycle.WithBody(func(*lifecycle.Case) error {
		panic("exploded")
	}))
	outcome, events := runCase(t, c)

	assert.Equal(t, lifecycle.Error, outcome)
	tb := events[1].Details["traceback"].(result.Traceback)
	assert.Contains(t, tb.AsText(), "exploded")
}

func TestRun_TearDownRunsAfterBodyFailure(t *testing.T) {
	tearDownRan := false
	c := lifecycle.NewCase("t",
		lifecycle.WithBody(samples.Failure()),
		lifecycle.WithTearDown(func(c *lifecycle.Case) error {
			c.BaseTearDown()
			tearDownRan = true
			return nil
		}),
	)
	outcome, _ := runCase(t, c)

	assert.Equal(t, lifecycle.Failure, outcome)
	assert.True(t, tearDownRan)
}

func TestRun_TearDownErrorOverridesBodySuccess(t *testing.T) {
	outcome, events := runCase(t, samples.TearDownFails())

	assert.Equal(t, lifecycle.Error, outcome)
	require.Equal(t,
		[]result.Kind{result.StartTest, result.AddError, result.StopTest},
		eventKinds(events))
	tb := events[1].Details["traceback"].(result.Traceback)
	assert.Contains(t, tb.AsText(), "arbitrary error")
}

func TestRun_CleanupsRunInReverseOrder(t *testing.T) {
	var order []string
	cleanup := func(name string) lifecycle.Phase {
		return func(*lifecycle.Case) error {
			order = append(order, name)
			return nil
		}
	}

	c := lifecycle.NewCase("t",
		lifecycle.WithBody(samples.Success()),
		lifecycle.WithCleanups(cleanup("first"), cleanup("second"), cleanup("third")),
	)
	outcome, _ := runCase(t, c)

	assert.Equal(t, lifecycle.Success, outcome)
	assert.Equal(t, []string{"third", "second", "first"}, order)
}

func TestRun_CleanupsRunDespiteBodyAndTearDownFailures(t *testing.T) {
	var order []string
	c := lifecycle.NewCase("t",
		lifecycle.WithBody(samples.Error()),
		lifecycle.WithTearDown(func(c *lifecycle.Case) error {
			c.BaseTearDown()
			return errors.New("teardown broke too")
		}),
		lifecycle.WithCleanups(
			func(*lifecycle.Case) error { order = append(order, "a"); return nil },
			func(*lifecycle.Case) error { order = append(order, "b"); return nil },
		),
	)
	outcome, _ := runCase(t, c)

	assert.Equal(t, lifecycle.Error, outcome)
	assert.Equal(t, []string{"b", "a"}, order)
}

func TestRun_FailingCleanupDoesNotBlockRemainingCleanups(t *testing.T) {
	var order []string
	c := lifecycle.NewCase("t",
		lifecycle.WithBody(samples.Success()),
		lifecycle.WithCleanups(
			func(*lifecycle.Case) error { order = append(order, "first"); return nil },
			func(*lifecycle.Case) error { return errors.New("cleanup broke") },
			func(*lifecycle.Case) error { order = append(order, "third"); return nil },
		),
	)
	outcome, events := runCase(t, c)

	// The cleanup failure surfaces as the case's error, and every other
	// cleanup still ran.
	assert.Equal(t, lifecycle.Error, outcome)
	assert.Equal(t, []string{"third", "first"}, order)
	tb := events[1].Details["traceback"].(result.Traceback)
	assert.Contains(t, tb.AsText(), "cleanup broke")
}

func TestRun_SetUpSkippingUpcallIsDetected(t *testing.T) {
	c := lifecycle.NewCase("t",
		lifecycle.WithSetUp(func(*lifecycle.Case) error { return nil }),
		lifecycle.WithBody(samples.Success()),
	)
	outcome, events := runCase(t, c)

	assert.Equal(t, lifecycle.Error, outcome)
	tb := events[1].Details["traceback"].(result.Traceback)
	assert.Contains(t, tb.AsText(), "TestCase.setUp was not called")
}

func TestRun_SetUpViolationSkipsBodyAndTearDown(t *testing.T) {
	bodyRan := false
	tearDownRan := false
	c := lifecycle.NewCase("t",
		lifecycle.WithSetUp(func(*lifecycle.Case) error { return nil }),
		lifecycle.WithBody(func(*lifecycle.Case) error { bodyRan = true; return nil }),
		lifecycle.WithTearDown(func(c *lifecycle.Case) error {
			c.BaseTearDown()
			tearDownRan = true
			return nil
		}),
	)
	outcome, _ := runCase(t, c)

	assert.Equal(t, lifecycle.Error, outcome)
	assert.False(t, bodyRan)
	assert.False(t, tearDownRan)
}

func TestRun_TearDownSkippingUpcallIsDetected(t *testing.T) {
	c := lifecycle.NewCase("t",
		lifecycle.WithBody(samples.Success()),
		lifecycle.WithTearDown(func(*lifecycle.Case) error { return nil }),
	)
	outcome, events := runCase(t, c)

	assert.Equal(t, lifecycle.Error, outcome)
	tb := events[1].Details["traceback"].(result.Traceback)
	assert.Contains(t, tb.AsText(), "TestCase.tearDown was not called")
}

func TestRun_SetUpErrorStillRunsArmedCleanups(t *testing.T) {
	cleanupRan := false
	c := lifecycle.NewCase("t",
		lifecycle.WithSetUp(func(c *lifecycle.Case) error {
			c.BaseSetUp()
			c.AddCleanup(func(*lifecycle.Case) error { cleanupRan = true; return nil })
			return errors.New("setup broke")
		}),
		lifecycle.WithBody(samples.Success()),
	)
	outcome, _ := runCase(t, c)

	assert.Equal(t, lifecycle.Error, outcome)
	assert.True(t, cleanupRan)
}

func TestRun_ExactlyOneOutcomeEvent(t *testing.T) {
	for _, c := range samples.Deterministic() {
		t.Run(c.Name(), func(t *testing.T) {
			_, events := runCase(t, c)
			require.Len(t, events, 3)
			assert.Equal(t, result.StartTest, events[0].Kind)
			assert.Equal(t, result.StopTest, events[2].Kind)
		})
	}
}

func TestAssertThat(t *testing.T) {
	c := lifecycle.NewCase("t")

	assert.NoError(t, c.AssertThat(42, match.Equals(42)))

	err := c.AssertThat(42, match.Equals(43))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "43 != 42")
}
