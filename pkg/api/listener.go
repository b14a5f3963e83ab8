package api

import (
	"errors"
	"slices"

	"github.com/crewflow/console/pkg/util"
)

type (
	// ConditionType selects how a listener decides to trigger its tasks
	ConditionType string

	// StateType selects how a listener's state payload is interpreted
	StateType string

	// ListenerState carries the opaque state definition handed to the
	// downstream execution engine. The console never interprets it
	ListenerState struct {
		StateData       map[string]any `json:"stateData"`
		StateType       StateType      `json:"stateType"`
		StateDefinition string         `json:"stateDefinition"`
	}

	// Listener observes completion of one or more tasks and, per its
	// condition type, triggers execution of other tasks. The observed set
	// (ListenToTaskIDs) and the executed set (Tasks) are independent: a
	// listener watches one set and runs another
	Listener struct {
		RouterConfig      *RouterConfig `json:"routerConfig,omitempty"`
		ID                ListenerID    `json:"id"`
		Name              string        `json:"name"`
		CrewID            CrewID        `json:"crewId"`
		CrewName          string        `json:"crewName"`
		ListenToTaskIDs   []TaskID      `json:"listenToTaskIds"`
		ListenToTaskNames []string      `json:"listenToTaskNames"`
		Tasks             []*TaskRef    `json:"tasks"`
		ConditionType     ConditionType `json:"conditionType"`
		State             ListenerState `json:"state"`
	}
)

const (
	// ConditionNone triggers unconditionally on any observed completion
	ConditionNone ConditionType = "NONE"

	// ConditionAnd triggers once all observed tasks have completed
	ConditionAnd ConditionType = "AND"

	// ConditionOr triggers when any observed task completes
	ConditionOr ConditionType = "OR"

	// ConditionRouter dispatches to named routes based on the output of a
	// single observed task
	ConditionRouter ConditionType = "ROUTER"
)

const (
	StateStructured   StateType = "structured"
	StateUnstructured StateType = "unstructured"
)

var (
	ErrListenerIDEmpty      = errors.New("listener ID empty")
	ErrInvalidConditionType = errors.New("invalid condition type")
)

// ValidConditionTypes enumerates the accepted condition types
var ValidConditionTypes = util.SetOf(
	ConditionNone,
	ConditionAnd,
	ConditionOr,
	ConditionRouter,
)

// IsRouter returns true if the listener dispatches through routes
func (l *Listener) IsRouter() bool {
	return l.ConditionType == ConditionRouter
}

// Clone returns a deep copy of the listener
func (l *Listener) Clone() *Listener {
	res := *l
	res.ListenToTaskIDs = slices.Clone(l.ListenToTaskIDs)
	res.ListenToTaskNames = slices.Clone(l.ListenToTaskNames)
	res.Tasks = make([]*TaskRef, len(l.Tasks))
	for i, t := range l.Tasks {
		c := *t
		res.Tasks[i] = &c
	}
	if l.RouterConfig != nil {
		res.RouterConfig = l.RouterConfig.Clone()
	}
	if l.State.StateData != nil {
		res.State.StateData = make(map[string]any, len(l.State.StateData))
		for k, v := range l.State.StateData {
			res.State.StateData[k] = v
		}
	}
	return &res
}

// Equal compares two listeners field by field, including router
// configuration and executed task references
func (l *Listener) Equal(other *Listener) bool {
	if l == nil || other == nil {
		return l == other
	}
	if l.ID != other.ID || l.Name != other.Name {
		return false
	}
	if l.CrewID != other.CrewID || l.CrewName != other.CrewName {
		return false
	}
	if l.ConditionType != other.ConditionType {
		return false
	}
	if !slices.Equal(l.ListenToTaskIDs, other.ListenToTaskIDs) {
		return false
	}
	if !slices.Equal(l.ListenToTaskNames, other.ListenToTaskNames) {
		return false
	}
	if !slices.EqualFunc(l.Tasks, other.Tasks, (*TaskRef).Equal) {
		return false
	}
	if l.State.StateType != other.State.StateType ||
		l.State.StateDefinition != other.State.StateDefinition {
		return false
	}
	return l.RouterConfig.Equal(other.RouterConfig)
}
