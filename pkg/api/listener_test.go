package api_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/crewflow/console/pkg/api"
)

func makeListener() *api.Listener {
	return &api.Listener{
		ID:                "l1",
		Name:              "Listener 1",
		CrewID:            "crew-1",
		CrewName:          "Research Crew",
		ListenToTaskIDs:   []api.TaskID{"t1", "t2"},
		ListenToTaskNames: []string{"Gather Sources", "Summarize"},
		Tasks: []*api.TaskRef{
			{ID: "t3", Name: "Draft Report", CrewID: "crew-2"},
		},
		ConditionType: api.ConditionAnd,
		State: api.ListenerState{
			StateType:       api.StateUnstructured,
			StateDefinition: "free text",
			StateData:       map[string]any{"k": "v"},
		},
	}
}

func TestValidConditionTypes(t *testing.T) {
	assert.True(t, api.ValidConditionTypes.Contains(api.ConditionNone))
	assert.True(t, api.ValidConditionTypes.Contains(api.ConditionAnd))
	assert.True(t, api.ValidConditionTypes.Contains(api.ConditionOr))
	assert.True(t, api.ValidConditionTypes.Contains(api.ConditionRouter))
	assert.False(t, api.ValidConditionTypes.Contains("XOR"))
}

func TestListenerIsRouter(t *testing.T) {
	l := makeListener()
	assert.False(t, l.IsRouter())
	l.ConditionType = api.ConditionRouter
	assert.True(t, l.IsRouter())
}

func TestListenerClone(t *testing.T) {
	l := makeListener()
	l.RouterConfig = &api.RouterConfig{
		DefaultRoute: "Default",
		Routes: []*api.Route{
			{Name: "Default", TaskIDs: []api.TaskID{"t4"}},
		},
	}

	c := l.Clone()
	assert.True(t, l.Equal(c))

	// mutations of the clone never reach the original
	c.ListenToTaskIDs[0] = "other"
	c.Tasks[0].Name = "changed"
	c.RouterConfig.Routes[0].TaskIDs[0] = "changed"
	c.State.StateData["k"] = "changed"

	assert.Equal(t, api.TaskID("t1"), l.ListenToTaskIDs[0])
	assert.Equal(t, "Draft Report", l.Tasks[0].Name)
	assert.Equal(t, api.TaskID("t4"), l.RouterConfig.Routes[0].TaskIDs[0])
	assert.Equal(t, "v", l.State.StateData["k"])
}

func TestListenerEqual(t *testing.T) {
	l := makeListener()
	c := l.Clone()
	assert.True(t, l.Equal(c))

	c.ConditionType = api.ConditionOr
	assert.False(t, l.Equal(c))

	c = l.Clone()
	c.RouterConfig = &api.RouterConfig{DefaultRoute: "Default"}
	assert.False(t, l.Equal(c))

	assert.False(t, l.Equal(nil))
	var nilListener *api.Listener
	assert.True(t, nilListener.Equal(nil))
}
