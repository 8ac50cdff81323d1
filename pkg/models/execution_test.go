package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestActionStatus_Terminal(t *testing.T) {
	assert.False(t, ActionPending.Terminal())
	assert.False(t, ActionRunning.Terminal())
	assert.True(t, ActionSucceeded.Terminal())
	assert.True(t, ActionFailed.Terminal())
	assert.True(t, ActionSkipped.Terminal())
}

func TestExecutionTrace_Counting(t *testing.T) {
	trace := &ExecutionTrace{
		ID:        "exec-1",
		PlanName:  "p",
		Status:    PlanRunning,
		StartedAt: time.Now().UTC(),
		Records: map[string]*ExecutionRecord{
			"a1": {ActionID: "a1", Status: ActionSucceeded},
			"a2": {ActionID: "a2", Status: ActionFailed},
			"a3": {ActionID: "a3", Status: ActionRunning},
		},
	}

	assert.Equal(t, 1, trace.CountByStatus(ActionSucceeded))
	assert.Equal(t, 1, trace.CountByStatus(ActionFailed))
	assert.Equal(t, 0, trace.CountByStatus(ActionSkipped))
	assert.False(t, trace.AllTerminal())

	trace.Record("a3").Status = ActionSkipped

	assert.True(t, trace.AllTerminal())
}
