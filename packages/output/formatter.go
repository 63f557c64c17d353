package output

import (
	"fmt"
	"io"
	"time"

	"github.com/abdul-hamid-achik/matchspec/packages/core/runner"
)

// Formatter renders run results to an output stream
type Formatter interface {
	FormatHeader(version string)
	FormatResult(run *runner.RunResult)
	FormatError(err error)
}

// Flushable is implemented by formatters that accumulate results and emit
// them once at the end of all runs
type Flushable interface {
	Flush(totalDuration time.Duration) error
}

// NewFormatter creates the named formatter writing to w
func NewFormatter(name string, w io.Writer, verbose, noColor bool) (Formatter, error) {
	switch name {
	case "", "console":
		return NewConsoleFormatter(WithWriter(w), WithVerbose(verbose), WithNoColor(noColor)), nil
	case "json":
		return NewJSONFormatter(JSONWithWriter(w)), nil
	case "junit":
		return NewJUnitFormatter(JUnitWithWriter(w)), nil
	case "tap":
		return NewTAPFormatter(TAPWithWriter(w)), nil
	case "html":
		return NewHTMLFormatter(HTMLWithWriter(w)), nil
	default:
		return nil, fmt.Errorf("unknown output format: %s", name)
	}
}
