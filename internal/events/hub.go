// Package events provides the in-process event hub that fans flow
// change notifications out to console clients
package events

import (
	"sync"
	"time"

	"github.com/crewflow/console/pkg/api"
	"github.com/crewflow/console/pkg/util"
)

type (
	// Type identifies a flow change event
	Type string

	// Event describes one flow change, as delivered to subscribers
	Event struct {
		Type      Type       `json:"type"`
		FlowID    api.FlowID `json:"flowId"`
		Name      string     `json:"name,omitempty"`
		Timestamp int64      `json:"timestamp"`
	}

	// Hub is a small fan-out pub/sub for flow change events. Slow
	// subscribers drop events rather than block publishers
	Hub struct {
		subs util.Set[chan *Event]
		mu   sync.Mutex
	}
)

const (
	// FlowSaved is published after a flow is created or updated
	FlowSaved Type = "flow-saved"

	// FlowDeleted is published after a flow is deleted
	FlowDeleted Type = "flow-deleted"
)

const subscriberBufferSize = 16

// NewHub creates an empty event hub
func NewHub() *Hub {
	return &Hub{
		subs: util.Set[chan *Event]{},
	}
}

// Subscribe registers a new subscriber and returns its channel along
// with a cancel function. The channel is closed on cancel
func (h *Hub) Subscribe() (<-chan *Event, func()) {
	ch := make(chan *Event, subscriberBufferSize)

	h.mu.Lock()
	h.subs.Add(ch)
	h.mu.Unlock()

	cancel := func() {
		h.mu.Lock()
		defer h.mu.Unlock()
		if h.subs.Contains(ch) {
			h.subs.Remove(ch)
			close(ch)
		}
	}
	return ch, cancel
}

// Publish delivers an event to all current subscribers without blocking
func (h *Hub) Publish(eventType Type, flowID api.FlowID, name string) {
	event := &Event{
		Type:      eventType,
		FlowID:    flowID,
		Name:      name,
		Timestamp: time.Now().UnixMilli(),
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	for ch := range h.subs {
		select {
		case ch <- event:
		default:
		}
	}
}

// Close closes all subscriber channels
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for ch := range h.subs {
		close(ch)
	}
	h.subs = util.Set[chan *Event]{}
}
