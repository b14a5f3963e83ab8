package graph

import "github.com/crewflow/console/pkg/api"

// DeriveActions flattens the listener graph into the execution action
// list: one action per (listener, executed-task) pair. Router route
// tasks are routing configuration whose execution is conditional on
// route evaluation, so they are not flattened here. Crew attribution
// prefers the crew owning the task and falls back to the listener's own
// crew when the task is unresolved. The function is pure, deterministic,
// and idempotent
func DeriveActions(listeners []*api.Listener, res Resolver) []*api.Action {
	var actions []*api.Action
	for _, l := range listeners {
		for _, t := range l.Tasks {
			actions = append(actions, deriveAction(l, t, res))
		}
	}
	return actions
}

func deriveAction(
	l *api.Listener, t *api.TaskRef, res Resolver,
) *api.Action {
	action := &api.Action{
		ID:       api.ActionID(l.ID, t.ID),
		CrewID:   l.CrewID,
		CrewName: l.CrewName,
		TaskID:   t.ID,
		TaskName: t.Name,
	}
	if task, ok := res.ResolveTask(t.ID); ok {
		action.TaskName = task.Name
		action.CrewID = task.CrewID
		if crew, ok := res.ResolveCrew(task.CrewID); ok {
			action.CrewName = crew.Name
		}
	}
	return action
}

// deriveActions recomputes the full action list from the current graph.
// Derivation is a global projection: it replaces the previous list
// wholesale rather than patching the subset owned by a single listener
func (s *Session) deriveActions() {
	s.actions = DeriveActions(s.listeners, s.res)
}

// Actions returns the current derived action list
func (s *Session) Actions() []*api.Action {
	res := make([]*api.Action, len(s.actions))
	for i, a := range s.actions {
		c := *a
		res[i] = &c
	}
	return res
}
