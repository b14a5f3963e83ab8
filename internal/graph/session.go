package graph

import (
	"errors"

	"github.com/crewflow/console/pkg/api"
)

type (
	// Resolver looks up catalog references for the session. The catalog
	// index satisfies this; the session never mutates it
	Resolver interface {
		api.TaskResolver
		ResolveCrew(api.CrewID) (*api.CrewRef, bool)
		Tasks() []*api.TaskRef
	}

	// Session is one flow editing session: the listener graph, the
	// starting point set, and the actions derived from them. The session
	// exclusively owns its listeners and router configurations; all
	// snapshots returned to callers are deep copies
	Session struct {
		res         Resolver
		parked      map[api.ListenerID]*api.RouterConfig
		id          api.FlowID
		name        string
		listeners   []*api.Listener
		actions     []*api.Action
		startPoints []*api.StartingPoint
	}
)

var (
	ErrListenerNotFound      = errors.New("listener not found")
	ErrNotRouter             = errors.New("listener is not a router")
	ErrRouteNotFound         = errors.New("route not found")
	ErrRouteExists           = errors.New("route name already in use")
	ErrStartingPointNotFound = errors.New("starting point not found")
)

// New creates a session for a fresh, unnamed flow
func New(res Resolver) *Session {
	return &Session{
		res:    res,
		parked: map[api.ListenerID]*api.RouterConfig{},
	}
}

// Open creates a session over an existing flow document. The document is
// copied in; the caller's instance is never aliased. Starting points are
// rebuilt from the stored active set and re-synced against the catalog
func Open(res Resolver, doc *api.FlowConfiguration) *Session {
	s := New(res)
	s.id = doc.ID
	s.name = doc.Name
	for _, l := range doc.Listeners {
		s.listeners = append(s.listeners, l.Clone())
	}
	for _, sp := range doc.StartingPoints {
		s.startPoints = append(s.startPoints, sp.Clone())
	}
	s.SyncStartingPoints()
	s.deriveActions()
	return s
}

// ID returns the flow identifier, empty until first saved
func (s *Session) ID() api.FlowID {
	return s.id
}

// SetID records the identifier assigned by the store on first save
func (s *Session) SetID(id api.FlowID) {
	s.id = id
}

// Name returns the flow name
func (s *Session) Name() string {
	return s.name
}

// SetName renames the flow
func (s *Session) SetName(name string) {
	s.name = name
}

// Document snapshots the session as the serializable flow configuration:
// listeners with display fields re-derived from the catalog, the derived
// action list, and only the active starting points
func (s *Session) Document() *api.FlowConfiguration {
	doc := &api.FlowConfiguration{
		ID:        s.id,
		Name:      s.name,
		Listeners: make([]*api.Listener, len(s.listeners)),
		Actions:   make([]*api.Action, len(s.actions)),
	}
	for i, l := range s.listeners {
		s.refreshListener(l)
		doc.Listeners[i] = l.Clone()
	}
	for i, a := range s.actions {
		c := *a
		doc.Actions[i] = &c
	}
	doc.StartingPoints = s.ActiveStartingPoints()
	return doc
}

// Validate runs save-time validation over the current snapshot
func (s *Session) Validate() api.ValidationIssues {
	return s.Document().Validate(s.res)
}

func (s *Session) findListener(id api.ListenerID) (*api.Listener, bool) {
	for _, l := range s.listeners {
		if l.ID == id {
			return l, true
		}
	}
	return nil, false
}

// refreshListener re-derives the denormalized display fields from the
// catalog instead of trusting stored copies, which go stale when the
// underlying catalog changes
func (s *Session) refreshListener(l *api.Listener) {
	names := make([]string, len(l.ListenToTaskIDs))
	for i, id := range l.ListenToTaskIDs {
		if task, ok := s.res.ResolveTask(id); ok {
			names[i] = task.Name
		} else {
			names[i] = placeholderName(id)
		}
	}
	l.ListenToTaskNames = names

	if crew, ok := s.res.ResolveCrew(l.CrewID); ok {
		l.CrewName = crew.Name
	}
	for _, t := range l.Tasks {
		if task, ok := s.res.ResolveTask(t.ID); ok {
			*t = *task
		}
	}
}
