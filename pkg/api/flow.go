package api

import (
	"fmt"
	"slices"

	"github.com/crewflow/console/pkg/util"
)

type (
	// FlowConfiguration is the serialized flow document exchanged with the
	// persistence store and consumed by the downstream execution engine.
	// Field names and nested shapes are the wire contract and round-trip
	// exactly; RouterConfig is only present on ROUTER listeners
	FlowConfiguration struct {
		ID             FlowID           `json:"id"`
		Name           string           `json:"name"`
		Listeners      []*Listener      `json:"listeners"`
		Actions        []*Action        `json:"actions"`
		StartingPoints []*StartingPoint `json:"startingPoints"`
	}

	// TaskResolver looks up catalog tasks referenced by a flow document
	TaskResolver interface {
		ResolveTask(TaskID) (*TaskRef, bool)
	}

	// Severity classifies a validation issue. Warnings never block a
	// save; errors block the save but never further editing
	Severity string

	// ValidationIssue reports one problem found during save-time
	// validation, attributed to the listener that owns it
	ValidationIssue struct {
		ListenerID ListenerID `json:"listenerId,omitempty"`
		Severity   Severity   `json:"severity"`
		Reason     string     `json:"reason"`
	}

	// ValidationIssues is the full result of validating a flow document
	ValidationIssues []ValidationIssue
)

const (
	// SeverityWarning marks recoverable issues such as dangling task
	// references; the referent may simply not have loaded yet
	SeverityWarning Severity = "warning"

	// SeverityError marks incompleteness that blocks persisting the flow
	SeverityError Severity = "error"
)

// HasErrors returns true if any issue blocks a save
func (vi ValidationIssues) HasErrors() bool {
	for _, issue := range vi {
		if issue.Severity == SeverityError {
			return true
		}
	}
	return false
}

// Warnings returns only the non-blocking issues
func (vi ValidationIssues) Warnings() ValidationIssues {
	var res ValidationIssues
	for _, issue := range vi {
		if issue.Severity == SeverityWarning {
			res = append(res, issue)
		}
	}
	return res
}

// Validate performs save-time validation of the flow document. It never
// mutates the document and never prunes dangling references; all findings
// are collected and returned so the caller can decide how to surface
// them. A nil resolver skips reference checks
func (f *FlowConfiguration) Validate(res TaskResolver) ValidationIssues {
	var issues ValidationIssues
	for _, l := range f.Listeners {
		issues = append(issues, validateListener(l, res)...)
	}
	return issues
}

func validateListener(l *Listener, res TaskResolver) ValidationIssues {
	var issues ValidationIssues

	report := func(sev Severity, format string, args ...any) {
		issues = append(issues, ValidationIssue{
			ListenerID: l.ID,
			Severity:   sev,
			Reason:     fmt.Sprintf(format, args...),
		})
	}

	if !ValidConditionTypes.Contains(l.ConditionType) {
		report(SeverityError, "%s: %s", ErrInvalidConditionType, l.ConditionType)
		return issues
	}

	if l.IsRouter() {
		issues = append(issues, validateRouter(l)...)
	} else {
		if l.RouterConfig != nil {
			report(SeverityError,
				"router configuration present on %s listener", l.ConditionType)
		}
		if len(l.ListenToTaskIDs) == 0 {
			report(SeverityError, "listener observes no tasks")
		}
	}

	if res == nil {
		return issues
	}

	for _, id := range l.ListenToTaskIDs {
		if _, ok := res.ResolveTask(id); !ok {
			report(SeverityWarning, "observed task not in catalog: %s", id)
		}
	}
	for _, t := range l.Tasks {
		if _, ok := res.ResolveTask(t.ID); !ok {
			report(SeverityWarning, "executed task not in catalog: %s", t.ID)
		}
	}
	if l.RouterConfig != nil {
		for _, r := range l.RouterConfig.Routes {
			for _, id := range r.TaskIDs {
				if _, ok := res.ResolveTask(id); !ok {
					report(SeverityWarning,
						"route %q task not in catalog: %s", r.Name, id)
				}
			}
		}
	}
	return issues
}

// validateRouter checks router completeness: exactly one observed task,
// at least one route, and a default route that resolves
func validateRouter(l *Listener) ValidationIssues {
	var issues ValidationIssues

	report := func(format string, args ...any) {
		issues = append(issues, ValidationIssue{
			ListenerID: l.ID,
			Severity:   SeverityError,
			Reason:     fmt.Sprintf(format, args...),
		})
	}

	if l.RouterConfig == nil {
		report("router configuration missing")
		return issues
	}
	if len(l.ListenToTaskIDs) != 1 {
		report("router must observe exactly one task, observes %d",
			len(l.ListenToTaskIDs))
	}
	rc := l.RouterConfig
	if len(rc.Routes) == 0 {
		report("router has no routes")
		return issues
	}
	if !rc.DefaultResolves() {
		report("default route does not resolve: %q", rc.DefaultRoute)
	}
	seen := util.Set[string]{}
	for _, r := range rc.Routes {
		if seen.Contains(r.Name) {
			report("duplicate route name: %q", r.Name)
			continue
		}
		seen.Add(r.Name)
	}
	return issues
}

// Clone returns a deep copy of the flow document
func (f *FlowConfiguration) Clone() *FlowConfiguration {
	res := &FlowConfiguration{
		ID:             f.ID,
		Name:           f.Name,
		Listeners:      make([]*Listener, len(f.Listeners)),
		Actions:        make([]*Action, len(f.Actions)),
		StartingPoints: make([]*StartingPoint, len(f.StartingPoints)),
	}
	for i, l := range f.Listeners {
		res.Listeners[i] = l.Clone()
	}
	for i, a := range f.Actions {
		c := *a
		res.Actions[i] = &c
	}
	for i, s := range f.StartingPoints {
		res.StartingPoints[i] = s.Clone()
	}
	return res
}

// Equal compares two flow documents structurally
func (f *FlowConfiguration) Equal(other *FlowConfiguration) bool {
	if f == nil || other == nil {
		return f == other
	}
	if f.ID != other.ID || f.Name != other.Name {
		return false
	}
	if !slices.EqualFunc(f.Listeners, other.Listeners, (*Listener).Equal) {
		return false
	}
	if !slices.EqualFunc(f.Actions, other.Actions, (*Action).Equal) {
		return false
	}
	return slices.EqualFunc(
		f.StartingPoints, other.StartingPoints, (*StartingPoint).Equal,
	)
}
