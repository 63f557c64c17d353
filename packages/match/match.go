package match

import "fmt"

// Matcher is a predicate over arbitrary values. Match returns nil exactly
// when the value satisfies the matcher, otherwise a Mismatch describing the
// failure. Matchers hold no mutable state; the same matcher may be evaluated
// repeatedly and from multiple goroutines.
type Matcher interface {
	Match(value any) Mismatch

	// String returns a stable, argument-reflecting form such as "Always()".
	String() string
}

// Mismatch describes why a value failed to match. Implementations are
// immutable value objects owned by the caller that requested the match.
type Mismatch interface {
	Describe() string
}

type textMismatch struct {
	text string
}

func (m *textMismatch) Describe() string {
	return m.text
}

// Mismatchf builds a plain-text Mismatch from a format string.
func Mismatchf(format string, args ...any) Mismatch {
	return &textMismatch{text: fmt.Sprintf(format, args...)}
}
