package output

import (
	"encoding/json"
	"io"
	"os"
	"time"

	"github.com/abdul-hamid-achik/matchspec/packages/core/runner"
)

// JSONOutput represents the complete JSON output structure
type JSONOutput struct {
	Summary  JSONSummary `json:"summary"`
	Runs     []JSONRun   `json:"runs"`
	Tests    []JSONTest  `json:"tests"`
	Duration float64     `json:"duration"`
	Time     string      `json:"time"`
}

// JSONSummary represents the test summary
type JSONSummary struct {
	Total   int `json:"total"`
	Passed  int `json:"passed"`
	Failed  int `json:"failed"`
	Skipped int `json:"skipped"`
}

// JSONRun represents one executed suite
type JSONRun struct {
	RunID    string     `json:"runId"`
	Suite    string     `json:"suite"`
	Duration float64    `json:"duration"`
	Stats    *JSONStats `json:"stats,omitempty"`
}

// JSONStats represents the latency summary of a run, in milliseconds
type JSONStats struct {
	P50 float64 `json:"p50"`
	P95 float64 `json:"p95"`
	P99 float64 `json:"p99"`
	Max float64 `json:"max"`
}

// JSONTest represents a single test result
type JSONTest struct {
	Name       string  `json:"name"`
	Suite      string  `json:"suite"`
	Outcome    string  `json:"outcome"`
	Passed     bool    `json:"passed"`
	Skipped    bool    `json:"skipped,omitempty"`
	SkipReason string  `json:"skipReason,omitempty"`
	Duration   float64 `json:"duration"`
	Detail     string  `json:"detail,omitempty"`
}

// JSONFormatter formats test results as JSON
type JSONFormatter struct {
	writer io.Writer
	runs   []JSONRun
	tests  []JSONTest
}

type JSONOption func(*JSONFormatter)

func NewJSONFormatter(opts ...JSONOption) *JSONFormatter {
	f := &JSONFormatter{
		writer: os.Stdout,
		tests:  make([]JSONTest, 0),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

func JSONWithWriter(w io.Writer) JSONOption {
	return func(f *JSONFormatter) {
		f.writer = w
	}
}

func (f *JSONFormatter) FormatResult(run *runner.RunResult) {
	jr := JSONRun{
		RunID:    run.RunID,
		Suite:    run.Suite,
		Duration: float64(run.Duration.Milliseconds()),
	}
	if run.Stats != nil && run.Stats.Count > 0 {
		jr.Stats = &JSONStats{
			P50: float64(run.Stats.P50.Microseconds()) / 1000,
			P95: float64(run.Stats.P95.Microseconds()) / 1000,
			P99: float64(run.Stats.P99.Microseconds()) / 1000,
			Max: float64(run.Stats.Max.Microseconds()) / 1000,
		}
	}
	f.runs = append(f.runs, jr)

	for _, r := range run.Results {
		test := JSONTest{
			Name:     r.Name,
			Suite:    run.Suite,
			Outcome:  r.Outcome.String(),
			Passed:   r.Passed,
			Skipped:  r.Skipped,
			Duration: float64(r.Duration.Milliseconds()),
			Detail:   r.Detail,
		}

		if r.SkipReason != "" && r.SkipReason != "filtered out" {
			test.SkipReason = r.SkipReason
		}

		f.tests = append(f.tests, test)
	}
}

func (f *JSONFormatter) FormatError(err error) {
	// Errors are included in individual test results
}

func (f *JSONFormatter) FormatHeader(version string) {
	// No header needed for JSON output
}

// Flush writes the accumulated JSON output
func (f *JSONFormatter) Flush(totalDuration time.Duration) error {
	var passed, failed, skipped int
	for _, t := range f.tests {
		if t.Skipped {
			skipped++
		} else if t.Passed {
			passed++
		} else {
			failed++
		}
	}

	output := JSONOutput{
		Summary: JSONSummary{
			Total:   len(f.tests),
			Passed:  passed,
			Failed:  failed,
			Skipped: skipped,
		},
		Runs:     f.runs,
		Tests:    f.tests,
		Duration: float64(totalDuration.Milliseconds()),
		Time:     time.Now().Format(time.RFC3339),
	}

	encoder := json.NewEncoder(f.writer)
	encoder.SetIndent("", "  ")
	return encoder.Encode(output)
}
