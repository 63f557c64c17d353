package match

type alwaysMatcher struct{}

// Always returns a matcher that matches any value, including nil.
func Always() Matcher {
	return alwaysMatcher{}
}

func (alwaysMatcher) Match(any) Mismatch {
	return nil
}

func (alwaysMatcher) String() string {
	return "Always()"
}

type neverMatcher struct{}

// Never returns a matcher that matches no value. The mismatch description
// always includes the text form of the rejected value.
func Never() Matcher {
	return neverMatcher{}
}

func (neverMatcher) Match(value any) Mismatch {
	return Mismatchf("Inevitable mismatch on %v", value)
}

func (neverMatcher) String() string {
	return "Never()"
}
