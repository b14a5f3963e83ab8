package api

import "slices"

type (
	// Route is a named dispatch target within a router listener. The
	// condition is an opaque boolean expression evaluated by the
	// downstream execution engine, never by the console
	Route struct {
		Name      string   `json:"name"`
		Condition string   `json:"condition"`
		TaskIDs   []TaskID `json:"taskIds"`
	}

	// RouterConfig is the per-listener routing table. DefaultRoute must
	// name an existing route whenever Routes is non-empty
	RouterConfig struct {
		DefaultRoute string   `json:"defaultRoute"`
		Routes       []*Route `json:"routes"`
	}
)

// FindRoute returns the route with the given name, or nil
func (rc *RouterConfig) FindRoute(name string) *Route {
	for _, r := range rc.Routes {
		if r.Name == name {
			return r
		}
	}
	return nil
}

// HasRoute returns true if a route with the given name exists
func (rc *RouterConfig) HasRoute(name string) bool {
	return rc.FindRoute(name) != nil
}

// DefaultResolves returns true if DefaultRoute names an existing route
func (rc *RouterConfig) DefaultResolves() bool {
	return rc.DefaultRoute != "" && rc.HasRoute(rc.DefaultRoute)
}

// Clone returns a deep copy of the router configuration
func (rc *RouterConfig) Clone() *RouterConfig {
	if rc == nil {
		return nil
	}
	res := &RouterConfig{
		DefaultRoute: rc.DefaultRoute,
		Routes:       make([]*Route, len(rc.Routes)),
	}
	for i, r := range rc.Routes {
		c := *r
		c.TaskIDs = slices.Clone(r.TaskIDs)
		res.Routes[i] = &c
	}
	return res
}

// Equal compares two router configurations field by field
func (rc *RouterConfig) Equal(other *RouterConfig) bool {
	if rc == nil || other == nil {
		return rc == other
	}
	if rc.DefaultRoute != other.DefaultRoute {
		return false
	}
	return slices.EqualFunc(rc.Routes, other.Routes, (*Route).Equal)
}

// Equal compares two routes field by field
func (r *Route) Equal(other *Route) bool {
	if r == nil || other == nil {
		return r == other
	}
	return r.Name == other.Name &&
		r.Condition == other.Condition &&
		slices.Equal(r.TaskIDs, other.TaskIDs)
}
