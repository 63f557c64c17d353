// Package result defines the ordered event log a test-running engine emits
// for each executed case, and the Reporter interface it reports through.
//
// For a single execution the sequence is always exactly
// [startTest, <one outcome event>, stopTest], append-only and totally
// ordered. Verification code consumes the log; it never mutates it.
package result

// Kind identifies a lifecycle event.
type Kind int

const (
	StartTest Kind = iota
	AddSuccess
	AddError
	AddFailure
	AddSkip
	AddExpectedFailure
	AddUnexpectedSuccess
	StopTest
)

func (k Kind) String() string {
	switch k {
	case StartTest:
		return "startTest"
	case AddSuccess:
		return "addSuccess"
	case AddError:
		return "addError"
	case AddFailure:
		return "addFailure"
	case AddSkip:
		return "addSkip"
	case AddExpectedFailure:
		return "addExpectedFailure"
	case AddUnexpectedSuccess:
		return "addUnexpectedSuccess"
	case StopTest:
		return "stopTest"
	default:
		return "unknown"
	}
}

// Traceback is the diagnostic detail attached to error-like events. The text
// is matched structurally against expected substrings, never by exact
// equality.
type Traceback struct {
	text string
}

func NewTraceback(text string) Traceback {
	return Traceback{text: text}
}

func (t Traceback) AsText() string {
	return t.text
}

// Event is one entry of a result log.
type Event struct {
	Kind    Kind
	Case    string
	Details map[string]any
}

// Reporter is the boundary a test-running engine reports through.
type Reporter interface {
	StartTest(name string)
	AddSuccess(name string)
	AddError(name string, traceback Traceback)
	AddFailure(name string, traceback Traceback)
	AddSkip(name, reason string)
	AddExpectedFailure(name string, traceback Traceback)
	AddUnexpectedSuccess(name string)
	StopTest(name string)
}

// Log is a Reporter that records events in order. A Log belongs to a single
// case execution and is not safe for concurrent use; run concurrent cases
// against distinct logs.
type Log struct {
	events []Event
}

func NewLog() *Log {
	return &Log{}
}

// Events returns a copy of the recorded sequence.
func (l *Log) Events() []Event {
	out := make([]Event, len(l.events))
	copy(out, l.events)
	return out
}

func (l *Log) StartTest(name string) {
	l.append(Event{Kind: StartTest, Case: name})
}

func (l *Log) AddSuccess(name string) {
	l.append(Event{Kind: AddSuccess, Case: name})
}

func (l *Log) AddError(name string, traceback Traceback) {
	l.append(Event{Kind: AddError, Case: name, Details: map[string]any{"traceback": traceback}})
}

func (l *Log) AddFailure(name string, traceback Traceback) {
	l.append(Event{Kind: AddFailure, Case: name, Details: map[string]any{"traceback": traceback}})
}

func (l *Log) AddSkip(name, reason string) {
	l.append(Event{Kind: AddSkip, Case: name, Details: map[string]any{"reason": reason}})
}

func (l *Log) AddExpectedFailure(name string, traceback Traceback) {
	l.append(Event{Kind: AddExpectedFailure, Case: name, Details: map[string]any{"traceback": traceback}})
}

func (l *Log) AddUnexpectedSuccess(name string) {
	l.append(Event{Kind: AddUnexpectedSuccess, Case: name})
}

func (l *Log) StopTest(name string) {
	l.append(Event{Kind: StopTest, Case: name})
}

func (l *Log) append(e Event) {
	l.events = append(l.events, e)
}
