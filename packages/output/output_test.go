package output

import (
	"bytes"
	"encoding/json"
	"encoding/xml"
	"testing"
	"time"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abdul-hamid-achik/matchspec/packages/core/runner"
	"github.com/abdul-hamid-achik/matchspec/packages/lifecycle"
)

// fixedRun returns a deterministic run result for golden comparisons.
func fixedRun() *runner.RunResult {
	return &runner.RunResult{
		RunID:    "00000000-0000-0000-0000-000000000000",
		Suite:    "deterministic",
		Duration: 12 * time.Millisecond,
		Passed:   2,
		Failed:   2,
		Skipped:  1,
		Results: []*runner.CaseResult{
			{Name: "simple-success-test", Outcome: lifecycle.Success, Passed: true, Duration: 2 * time.Millisecond},
			{Name: "simple-error-test", Outcome: lifecycle.Error, Detail: "arbitrary error", Duration: 3 * time.Millisecond},
			{Name: "simple-failure-test", Outcome: lifecycle.Failure, Detail: "arbitrary failure", Duration: time.Millisecond},
			{Name: "simple-skip-test", Outcome: lifecycle.Skipped, Skipped: true, SkipReason: "arbitrary skip message"},
			{Name: "simple-expected-failure-test", Outcome: lifecycle.ExpectedFailure, Passed: true, Duration: time.Millisecond},
		},
	}
}

func golden(t *testing.T) *goldie.Goldie {
	t.Helper()
	return goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
}

func TestConsoleFormatter_Golden(t *testing.T) {
	var buf bytes.Buffer
	f := NewConsoleFormatter(WithWriter(&buf), WithNoColor(true))
	f.FormatResult(fixedRun())

	golden(t).Assert(t, "console", buf.Bytes())
}

func TestTAPFormatter_Golden(t *testing.T) {
	var buf bytes.Buffer
	f := NewTAPFormatter(TAPWithWriter(&buf))
	f.FormatResult(fixedRun())
	require.NoError(t, f.Flush(12*time.Millisecond))

	golden(t).Assert(t, "tap", buf.Bytes())
}

func TestJSONFormatter(t *testing.T) {
	var buf bytes.Buffer
	f := NewJSONFormatter(JSONWithWriter(&buf))
	f.FormatResult(fixedRun())
	require.NoError(t, f.Flush(12*time.Millisecond))

	var out JSONOutput
	require.NoError(t, json.Unmarshal(buf.Bytes(), &out))

	assert.Equal(t, 5, out.Summary.Total)
	assert.Equal(t, 2, out.Summary.Passed)
	assert.Equal(t, 2, out.Summary.Failed)
	assert.Equal(t, 1, out.Summary.Skipped)

	require.Len(t, out.Runs, 1)
	assert.Equal(t, "deterministic", out.Runs[0].Suite)

	require.Len(t, out.Tests, 5)
	assert.Equal(t, "error", out.Tests[1].Outcome)
	assert.Equal(t, "arbitrary error", out.Tests[1].Detail)
	assert.Equal(t, "arbitrary skip message", out.Tests[3].SkipReason)
}

func TestJUnitFormatter(t *testing.T) {
	var buf bytes.Buffer
	f := NewJUnitFormatter(JUnitWithWriter(&buf))
	f.FormatResult(fixedRun())
	require.NoError(t, f.Flush(12*time.Millisecond))

	var suites JUnitTestSuites
	require.NoError(t, xml.Unmarshal(buf.Bytes(), &suites))

	assert.Equal(t, 5, suites.Tests)
	assert.Equal(t, 1, suites.Errors)
	assert.Equal(t, 1, suites.Failures)
	assert.Equal(t, 1, suites.Skipped)

	require.Len(t, suites.TestSuites, 1)
	suite := suites.TestSuites[0]
	assert.Equal(t, "deterministic", suite.Name)
	require.Len(t, suite.TestCases, 5)

	assert.Nil(t, suite.TestCases[0].Failure)
	require.NotNil(t, suite.TestCases[1].Error)
	assert.Equal(t, "arbitrary error", suite.TestCases[1].Error.Content)
	require.NotNil(t, suite.TestCases[2].Failure)
	assert.Equal(t, "failure", suite.TestCases[2].Failure.Message)
	require.NotNil(t, suite.TestCases[3].Skipped)
}

func TestHTMLFormatter(t *testing.T) {
	var buf bytes.Buffer
	f := NewHTMLFormatter(HTMLWithWriter(&buf))
	f.FormatHeader("1.0.0")
	f.FormatResult(fixedRun())
	require.NoError(t, f.Flush(12*time.Millisecond))

	html := buf.String()
	assert.Contains(t, html, "matchspec 1.0.0")
	assert.Contains(t, html, "2 passed")
	assert.Contains(t, html, "2 failed")
	assert.Contains(t, html, "1 skipped")
	assert.Contains(t, html, "simple-error-test")
	assert.Contains(t, html, "arbitrary error")
}

func TestNewFormatter(t *testing.T) {
	var buf bytes.Buffer

	for _, name := range []string{"", "console", "json", "junit", "tap", "html"} {
		f, err := NewFormatter(name, &buf, false, true)
		require.NoError(t, err, name)
		assert.NotNil(t, f, name)
	}

	_, err := NewFormatter("csv", &buf, false, true)
	assert.ErrorContains(t, err, "unknown output format")
}
