package graph

import (
	"fmt"
	"slices"

	"github.com/google/uuid"

	"github.com/crewflow/console/pkg/api"
)

// AddListener creates a new listener with no observed or executed tasks
// and an unconditional trigger. The default name counts from the current
// listener total. Always succeeds
func (s *Session) AddListener(defaultCrew api.CrewID) *api.Listener {
	l := &api.Listener{
		ID:            api.ListenerID(uuid.NewString()),
		Name:          fmt.Sprintf("Listener %d", len(s.listeners)+1),
		CrewID:        defaultCrew,
		ConditionType: api.ConditionNone,
		State: api.ListenerState{
			StateType: api.StateUnstructured,
		},
	}
	if crew, ok := s.res.ResolveCrew(defaultCrew); ok {
		l.CrewName = crew.Name
	}
	s.listeners = append(s.listeners, l)
	s.deriveActions()
	return l.Clone()
}

// DeleteListener removes a listener and, in the same operation, every
// action it owns. Any parked router configuration is discarded with it
func (s *Session) DeleteListener(id api.ListenerID) error {
	idx := slices.IndexFunc(s.listeners, func(l *api.Listener) bool {
		return l.ID == id
	})
	if idx < 0 {
		return fmt.Errorf("%w: %s", ErrListenerNotFound, id)
	}
	s.listeners = slices.Delete(s.listeners, idx, idx+1)
	delete(s.parked, id)
	s.deriveActions()
	return nil
}

// RenameListener updates a listener's display name. Names carry no
// identity; the ID never changes after creation
func (s *Session) RenameListener(id api.ListenerID, name string) error {
	l, ok := s.findListener(id)
	if !ok {
		return fmt.Errorf("%w: %s", ErrListenerNotFound, id)
	}
	l.Name = name
	return nil
}

// SetListenToTasks replaces the observed task set. The executed task set
// is left untouched; a listener watches one set and runs another
func (s *Session) SetListenToTasks(
	id api.ListenerID, taskIDs []api.TaskID,
) error {
	l, ok := s.findListener(id)
	if !ok {
		return fmt.Errorf("%w: %s", ErrListenerNotFound, id)
	}
	l.ListenToTaskIDs = slices.Clone(taskIDs)
	s.refreshListener(l)
	s.deriveActions()
	return nil
}

// SetExecutedTasks replaces the executed task set, resolving each ID
// through the catalog. Unresolved IDs are kept as placeholders rather
// than dropped so a selection is never silently lost
func (s *Session) SetExecutedTasks(
	id api.ListenerID, taskIDs []api.TaskID,
) error {
	l, ok := s.findListener(id)
	if !ok {
		return fmt.Errorf("%w: %s", ErrListenerNotFound, id)
	}
	tasks := make([]*api.TaskRef, len(taskIDs))
	for i, taskID := range taskIDs {
		if task, ok := s.res.ResolveTask(taskID); ok {
			c := *task
			tasks[i] = &c
			continue
		}
		tasks[i] = &api.TaskRef{
			ID:   taskID,
			Name: placeholderName(taskID),
		}
	}
	l.Tasks = tasks
	s.deriveActions()
	return nil
}

// SetConditionType switches a listener's trigger semantics. Any type can
// reach any other in one step. Entering ROUTER lazily initializes a
// routing table with a single default route, or restores the one parked
// when the listener last switched away; leaving ROUTER parks the table
// instead of deleting it so routing work survives a toggle
func (s *Session) SetConditionType(
	id api.ListenerID, ct api.ConditionType,
) error {
	l, ok := s.findListener(id)
	if !ok {
		return fmt.Errorf("%w: %s", ErrListenerNotFound, id)
	}
	if !api.ValidConditionTypes.Contains(ct) {
		return fmt.Errorf("%w: %s", api.ErrInvalidConditionType, ct)
	}

	if ct == api.ConditionRouter {
		if l.RouterConfig == nil {
			l.RouterConfig = s.unparkRouterConfig(l.ID)
		}
	} else if l.RouterConfig != nil {
		s.parked[l.ID] = l.RouterConfig
		l.RouterConfig = nil
	}

	l.ConditionType = ct
	s.deriveActions()
	return nil
}

func (s *Session) unparkRouterConfig(id api.ListenerID) *api.RouterConfig {
	if rc, ok := s.parked[id]; ok {
		delete(s.parked, id)
		return rc
	}
	return &api.RouterConfig{
		DefaultRoute: defaultRouteName,
		Routes: []*api.Route{
			{Name: defaultRouteName},
		},
	}
}

// Listener returns a snapshot of a single listener
func (s *Session) Listener(id api.ListenerID) (*api.Listener, error) {
	l, ok := s.findListener(id)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrListenerNotFound, id)
	}
	s.refreshListener(l)
	return l.Clone(), nil
}

// Listeners returns snapshots of all listeners in insertion order
func (s *Session) Listeners() []*api.Listener {
	res := make([]*api.Listener, len(s.listeners))
	for i, l := range s.listeners {
		s.refreshListener(l)
		res[i] = l.Clone()
	}
	return res
}

func placeholderName(id api.TaskID) string {
	return fmt.Sprintf("Task %s", id)
}
