package log_test

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/crewflow/console/pkg/api"
	"github.com/crewflow/console/pkg/log"
)

type errStub string

func TestFlowID(t *testing.T) {
	attr := log.FlowID(api.FlowID("flow-123"))
	assertAttrEqual(t, attr, "flow_id", "flow-123")
}

func TestListenerID(t *testing.T) {
	attr := log.ListenerID(api.ListenerID("listener-abc"))
	assertAttrEqual(t, attr, "listener_id", "listener-abc")
}

func TestTaskID(t *testing.T) {
	attr := log.TaskID(api.TaskID("task-1"))
	assertAttrEqual(t, attr, "task_id", "task-1")
}

func TestCrewID(t *testing.T) {
	attr := log.CrewID(api.CrewID("crew-1"))
	assertAttrEqual(t, attr, "crew_id", "crew-1")
}

func TestSessionID(t *testing.T) {
	attr := log.SessionID("session-xyz")
	assertAttrEqual(t, attr, "session_id", "session-xyz")
}

func TestError(t *testing.T) {
	attr := log.Error(nil)
	assertAttrEqual(t, attr, "error", "")

	attr = log.Error(errStub("boom"))
	assertAttrEqual(t, attr, "error", "boom")
}

func TestErrorString(t *testing.T) {
	attr := log.ErrorString("badness")
	assertAttrEqual(t, attr, "error", "badness")
}

func (e errStub) Error() string { return string(e) }

func assertAttrEqual(t *testing.T, attr slog.Attr, key, value string) {
	t.Helper()
	assert.Equal(t, key, attr.Key)
	assert.Equal(t, value, attr.Value.String())
}
