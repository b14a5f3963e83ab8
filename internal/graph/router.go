package graph

import (
	"fmt"
	"slices"

	"github.com/crewflow/console/pkg/api"
)

const defaultRouteName = "Default"

// AddRoute appends a new empty route to a router listener. The route
// takes the smallest unused generated name, so the initial "Default"
// route does not shift the numbering and a removed name is reusable
// without ever colliding with a surviving route
func (s *Session) AddRoute(id api.ListenerID) (*api.Route, error) {
	rc, err := s.routerConfig(id)
	if err != nil {
		return nil, err
	}
	route := &api.Route{
		Name: nextRouteName(rc),
	}
	rc.Routes = append(rc.Routes, route)
	c := *route
	return &c, nil
}

func nextRouteName(rc *api.RouterConfig) string {
	for i := 1; ; i++ {
		name := fmt.Sprintf("Route %d", i)
		if !rc.HasRoute(name) {
			return name
		}
	}
}

// RemoveRoute deletes a named route. When the default route is removed,
// the default is reassigned to the first remaining route, or cleared
// when none remain
func (s *Session) RemoveRoute(id api.ListenerID, name string) error {
	rc, err := s.routerConfig(id)
	if err != nil {
		return err
	}
	idx := slices.IndexFunc(rc.Routes, func(r *api.Route) bool {
		return r.Name == name
	})
	if idx < 0 {
		return fmt.Errorf("%w: %s", ErrRouteNotFound, name)
	}
	rc.Routes = slices.Delete(rc.Routes, idx, idx+1)

	if rc.DefaultRoute == name {
		if len(rc.Routes) > 0 {
			rc.DefaultRoute = rc.Routes[0].Name
		} else {
			rc.DefaultRoute = ""
		}
	}
	return nil
}

// RenameRoute renames a route in place. When the default route is
// renamed, the default follows atomically; there is never an observable
// state where the default names a nonexistent route
func (s *Session) RenameRoute(id api.ListenerID, oldName, newName string) error {
	rc, err := s.routerConfig(id)
	if err != nil {
		return err
	}
	if oldName != newName && rc.HasRoute(newName) {
		return fmt.Errorf("%w: %s", ErrRouteExists, newName)
	}
	route := rc.FindRoute(oldName)
	if route == nil {
		return fmt.Errorf("%w: %s", ErrRouteNotFound, oldName)
	}
	route.Name = newName
	if rc.DefaultRoute == oldName {
		rc.DefaultRoute = newName
	}
	return nil
}

// SetRouteCondition updates the opaque condition expression of a route
func (s *Session) SetRouteCondition(
	id api.ListenerID, name, condition string,
) error {
	route, err := s.findRoute(id, name)
	if err != nil {
		return err
	}
	route.Condition = condition
	return nil
}

// SetRouteTasks replaces the target task set of a route. Route tasks are
// routing configuration; they are never flattened into the action list
func (s *Session) SetRouteTasks(
	id api.ListenerID, name string, taskIDs []api.TaskID,
) error {
	route, err := s.findRoute(id, name)
	if err != nil {
		return err
	}
	route.TaskIDs = slices.Clone(taskIDs)
	return nil
}

func (s *Session) routerConfig(id api.ListenerID) (*api.RouterConfig, error) {
	l, ok := s.findListener(id)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrListenerNotFound, id)
	}
	if !l.IsRouter() || l.RouterConfig == nil {
		return nil, fmt.Errorf("%w: %s", ErrNotRouter, id)
	}
	return l.RouterConfig, nil
}

func (s *Session) findRoute(
	id api.ListenerID, name string,
) (*api.Route, error) {
	rc, err := s.routerConfig(id)
	if err != nil {
		return nil, err
	}
	route := rc.FindRoute(name)
	if route == nil {
		return nil, fmt.Errorf("%w: %s", ErrRouteNotFound, name)
	}
	return route, nil
}
