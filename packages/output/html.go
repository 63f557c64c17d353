package output

import (
	"fmt"
	"html/template"
	"io"
	"os"
	"time"

	"github.com/abdul-hamid-achik/matchspec/packages/core/runner"
)

// HTMLOutput represents the complete HTML output structure
type HTMLOutput struct {
	Version        string
	Summary        HTMLSummary
	Tests          []HTMLTest
	Duration       float64
	Time           string
	PassedPercent  float64
	FailedPercent  float64
	SkippedPercent float64
}

// HTMLSummary represents the test summary for HTML output
type HTMLSummary struct {
	Total   int
	Passed  int
	Failed  int
	Skipped int
}

// HTMLTest represents a single test result for HTML output
type HTMLTest struct {
	Name        string
	Suite       string
	Outcome     string
	Passed      bool
	Skipped     bool
	SkipReason  string
	Duration    float64
	Detail      string
	StatusClass string
}

// HTMLFormatter formats test results as HTML
type HTMLFormatter struct {
	writer  io.Writer
	results []HTMLTest
	version string
}

// HTMLOption is a functional option for HTMLFormatter
type HTMLOption func(*HTMLFormatter)

// NewHTMLFormatter creates a new HTML formatter
func NewHTMLFormatter(opts ...HTMLOption) *HTMLFormatter {
	f := &HTMLFormatter{
		writer:  os.Stdout,
		results: make([]HTMLTest, 0),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// HTMLWithWriter sets the output writer
func HTMLWithWriter(w io.Writer) HTMLOption {
	return func(f *HTMLFormatter) {
		f.writer = w
	}
}

// FormatResult accumulates a run result
func (f *HTMLFormatter) FormatResult(run *runner.RunResult) {
	for _, r := range run.Results {
		test := HTMLTest{
			Name:     r.Name,
			Suite:    run.Suite,
			Outcome:  r.Outcome.String(),
			Passed:   r.Passed,
			Skipped:  r.Skipped,
			Duration: float64(r.Duration.Milliseconds()),
			Detail:   r.Detail,
		}

		// Set status class for CSS
		if r.Skipped {
			test.StatusClass = "skipped"
		} else if r.Passed {
			test.StatusClass = "passed"
		} else {
			test.StatusClass = "failed"
		}

		if r.SkipReason != "" && r.SkipReason != "filtered out" {
			test.SkipReason = r.SkipReason
		}

		f.results = append(f.results, test)
	}
}

// FormatError handles errors (no-op for HTML, errors are in test results)
func (f *HTMLFormatter) FormatError(err error) {
	// Errors are included in individual test results
}

// FormatHeader captures the version for the HTML report
func (f *HTMLFormatter) FormatHeader(version string) {
	f.version = version
}

// Flush writes the accumulated HTML output
func (f *HTMLFormatter) Flush(totalDuration time.Duration) error {
	var passed, failed, skipped int
	for _, t := range f.results {
		if t.Skipped {
			skipped++
		} else if t.Passed {
			passed++
		} else {
			failed++
		}
	}

	total := len(f.results)
	var passedPct, failedPct, skippedPct float64
	if total > 0 {
		passedPct = float64(passed) / float64(total) * 100
		failedPct = float64(failed) / float64(total) * 100
		skippedPct = float64(skipped) / float64(total) * 100
	}

	output := HTMLOutput{
		Version: f.version,
		Summary: HTMLSummary{
			Total:   total,
			Passed:  passed,
			Failed:  failed,
			Skipped: skipped,
		},
		Tests:          f.results,
		Duration:       float64(totalDuration.Milliseconds()),
		Time:           time.Now().Format("2006-01-02 15:04:05"),
		PassedPercent:  passedPct,
		FailedPercent:  failedPct,
		SkippedPercent: skippedPct,
	}

	tmpl, err := template.New("report").Parse(htmlTemplate)
	if err != nil {
		return fmt.Errorf("failed to parse HTML template: %w", err)
	}

	return tmpl.Execute(f.writer, output)
}

const htmlTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>matchspec report</title>
<style>
body { font-family: -apple-system, "Segoe UI", sans-serif; margin: 2rem; color: #222; }
h1 { font-size: 1.4rem; }
.summary { margin: 1rem 0; }
.summary span { margin-right: 1.5rem; }
.passed { color: #1a7f37; }
.failed { color: #cf222e; }
.skipped { color: #9a6700; }
table { border-collapse: collapse; width: 100%; }
th, td { text-align: left; padding: 0.4rem 0.8rem; border-bottom: 1px solid #ddd; }
pre { margin: 0.2rem 0 0; font-size: 0.85rem; white-space: pre-wrap; color: #57606a; }
</style>
</head>
<body>
<h1>matchspec {{.Version}} &mdash; {{.Time}}</h1>
<div class="summary">
<span class="passed">{{.Summary.Passed}} passed ({{printf "%.0f" .PassedPercent}}%)</span>
<span class="failed">{{.Summary.Failed}} failed ({{printf "%.0f" .FailedPercent}}%)</span>
<span class="skipped">{{.Summary.Skipped}} skipped ({{printf "%.0f" .SkippedPercent}}%)</span>
<span>{{.Summary.Total}} total in {{printf "%.0f" .Duration}}ms</span>
</div>
<table>
<tr><th>Case</th><th>Suite</th><th>Outcome</th><th>Duration (ms)</th></tr>
{{range .Tests}}
<tr class="{{.StatusClass}}">
<td>{{.Name}}{{if .Detail}}<pre>{{.Detail}}</pre>{{end}}{{if .SkipReason}}<pre>{{.SkipReason}}</pre>{{end}}</td>
<td>{{.Suite}}</td>
<td>{{.Outcome}}</td>
<td>{{printf "%.0f" .Duration}}</td>
</tr>
{{end}}
</table>
</body>
</html>
`
