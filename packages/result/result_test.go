package result

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKind_String(t *testing.T) {
	tests := []struct {
		kind Kind
		want string
	}{
		{StartTest, "startTest"},
		{AddSuccess, "addSuccess"},
		{AddError, "addError"},
		{AddFailure, "addFailure"},
		{AddSkip, "addSkip"},
		{AddExpectedFailure, "addExpectedFailure"},
		{AddUnexpectedSuccess, "addUnexpectedSuccess"},
		{StopTest, "stopTest"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.kind.String())
	}
}

func TestLog_RecordsOrderedEvents(t *testing.T) {
	log := NewLog()
	log.StartTest("t1")
	log.AddError("t1", NewTraceback("boom"))
	log.StopTest("t1")

	events := log.Events()
	require.Len(t, events, 3)
	assert.Equal(t, StartTest, events[0].Kind)
	assert.Equal(t, AddError, events[1].Kind)
	assert.Equal(t, StopTest, events[2].Kind)
	assert.Equal(t, "t1", events[0].Case)

	tb, ok := events[1].Details["traceback"].(Traceback)
	require.True(t, ok)
	assert.Equal(t, "boom", tb.AsText())
}

func TestLog_SkipCarriesReason(t *testing.T) {
	log := NewLog()
	log.StartTest("t1")
	log.AddSkip("t1", "not today")
	log.StopTest("t1")

	events := log.Events()
	require.Len(t, events, 3)
	assert.Equal(t, "not today", events[1].Details["reason"])
}

func TestLog_EventsReturnsCopy(t *testing.T) {
	log := NewLog()
	log.StartTest("t1")

	events := log.Events()
	events[0].Case = "mutated"

	assert.Equal(t, "t1", log.Events()[0].Case)
}
