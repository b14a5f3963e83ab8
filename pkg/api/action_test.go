package api_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/crewflow/console/pkg/api"
)

func TestActionID(t *testing.T) {
	id := api.ActionID("listener-1", "task-9")
	assert.Equal(t, "action-listener-1-task-9", id)
}

func TestActionIDPrefix(t *testing.T) {
	prefix := api.ActionIDPrefix("listener-1")
	assert.Equal(t, "action-listener-1-", prefix)

	id := api.ActionID("listener-1", "task-9")
	assert.Equal(t, prefix+"task-9", id)
}

func TestActionEqual(t *testing.T) {
	a := &api.Action{
		ID:       api.ActionID("l1", "t1"),
		CrewID:   "crew-1",
		CrewName: "Research Crew",
		TaskID:   "t1",
		TaskName: "Gather Sources",
	}
	b := *a

	assert.True(t, a.Equal(&b))

	b.TaskName = "Other"
	assert.False(t, a.Equal(&b))

	assert.False(t, a.Equal(nil))
	var c *api.Action
	assert.True(t, c.Equal(nil))
}
