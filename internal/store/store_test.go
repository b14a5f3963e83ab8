package store_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/crewflow/console/internal/store"
	"github.com/crewflow/console/pkg/api"
)

func makeStoredFlow(name string) *api.FlowConfiguration {
	return &api.FlowConfiguration{
		Name: name,
		Listeners: []*api.Listener{
			{
				ID:                "l1",
				Name:              "Listener 1",
				CrewID:            "crew-1",
				CrewName:          "Research Crew",
				ListenToTaskIDs:   []api.TaskID{"t1"},
				ListenToTaskNames: []string{"Gather Sources"},
				Tasks: []*api.TaskRef{
					{ID: "t2", Name: "Summarize", CrewID: "crew-1"},
				},
				ConditionType: api.ConditionRouter,
				State: api.ListenerState{
					StateType: api.StateUnstructured,
				},
				RouterConfig: &api.RouterConfig{
					DefaultRoute: "Default",
					Routes: []*api.Route{
						{Name: "Default", TaskIDs: []api.TaskID{"t2"}},
						{Name: "Route 1", Condition: "output.ok"},
					},
				},
			},
		},
		Actions: []*api.Action{
			{
				ID:       api.ActionID("l1", "t2"),
				CrewID:   "crew-1",
				CrewName: "Research Crew",
				TaskID:   "t2",
				TaskName: "Summarize",
			},
		},
		StartingPoints: []*api.StartingPoint{
			{
				CrewID:       "crew-1",
				TaskID:       "t1",
				TaskName:     "Gather Sources",
				CrewName:     "Research Crew",
				IsStartPoint: true,
			},
		},
	}
}

// exerciseStore runs the CRUD contract every backend must satisfy,
// including an exact round-trip of the serialized document
func exerciseStore(t *testing.T, s store.Store) {
	t.Helper()
	ctx := context.Background()

	t.Run("create_assigns_id", func(t *testing.T) {
		created, err := s.Create(ctx, makeStoredFlow("First Flow"))
		require.NoError(t, err)
		assert.NotEmpty(t, created.ID)

		fetched, err := s.Get(ctx, created.ID)
		require.NoError(t, err)
		assert.True(t, created.Equal(fetched))
	})

	t.Run("create_duplicate_id", func(t *testing.T) {
		doc := makeStoredFlow("Dup Flow")
		doc.ID = "fixed-id"
		_, err := s.Create(ctx, doc)
		require.NoError(t, err)

		_, err = s.Create(ctx, doc)
		assert.ErrorIs(t, err, store.ErrFlowExists)
	})

	t.Run("get_missing", func(t *testing.T) {
		_, err := s.Get(ctx, "missing")
		assert.ErrorIs(t, err, store.ErrFlowNotFound)
	})

	t.Run("update_round_trip", func(t *testing.T) {
		created, err := s.Create(ctx, makeStoredFlow("Update Me"))
		require.NoError(t, err)

		changed := created.Clone()
		changed.Name = "Updated"
		changed.Listeners[0].ConditionType = api.ConditionAnd
		changed.Listeners[0].RouterConfig = nil

		updated, err := s.Update(ctx, created.ID, changed)
		require.NoError(t, err)
		assert.Equal(t, created.ID, updated.ID)

		fetched, err := s.Get(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, "Updated", fetched.Name)
		assert.Nil(t, fetched.Listeners[0].RouterConfig)
		assert.True(t, updated.Equal(fetched))
	})

	t.Run("update_missing", func(t *testing.T) {
		_, err := s.Update(ctx, "missing", makeStoredFlow("x"))
		assert.ErrorIs(t, err, store.ErrFlowNotFound)
	})

	t.Run("delete", func(t *testing.T) {
		created, err := s.Create(ctx, makeStoredFlow("Delete Me"))
		require.NoError(t, err)

		require.NoError(t, s.Delete(ctx, created.ID))
		_, err = s.Get(ctx, created.ID)
		assert.ErrorIs(t, err, store.ErrFlowNotFound)

		err = s.Delete(ctx, created.ID)
		assert.ErrorIs(t, err, store.ErrFlowNotFound)
	})

	t.Run("list_summaries", func(t *testing.T) {
		summaries, err := s.List(ctx)
		require.NoError(t, err)
		assert.NotEmpty(t, summaries)

		for _, summary := range summaries {
			assert.NotEmpty(t, summary.ID)
			if summary.Name == "First Flow" {
				assert.Equal(t, 1, summary.ListenerCount)
				assert.Equal(t, 1, summary.ActionCount)
				assert.Equal(t, 1, summary.StartingPointCount)
			}
		}
	})
}
