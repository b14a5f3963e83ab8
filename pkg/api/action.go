package api

import "fmt"

// Action is a derived (listener, executed-task) pair flattened from the
// listener graph. Actions are regenerated on every graph mutation and
// never hand-edited
type Action struct {
	ID       string `json:"id"`
	CrewID   CrewID `json:"crewId"`
	CrewName string `json:"crewName"`
	TaskID   TaskID `json:"taskId"`
	TaskName string `json:"taskName"`
}

// ActionID builds the stable identifier for a (listener, task) pair
func ActionID(listenerID ListenerID, taskID TaskID) string {
	return fmt.Sprintf("action-%s-%s", listenerID, taskID)
}

// ActionIDPrefix builds the identifier prefix shared by all actions
// owned by a listener, identifying which actions a listener delete must
// take with it
func ActionIDPrefix(listenerID ListenerID) string {
	return fmt.Sprintf("action-%s-", listenerID)
}

// Equal compares two actions field by field
func (a *Action) Equal(other *Action) bool {
	if a == nil || other == nil {
		return a == other
	}
	return *a == *other
}
