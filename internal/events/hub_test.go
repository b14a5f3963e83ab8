package events_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/crewflow/console/internal/events"
)

func TestPublishToSubscriber(t *testing.T) {
	h := events.NewHub()
	defer h.Close()

	ch, cancel := h.Subscribe()
	defer cancel()

	h.Publish(events.FlowSaved, "flow-1", "Research Pipeline")

	select {
	case event := <-ch:
		require.NotNil(t, event)
		assert.Equal(t, events.FlowSaved, event.Type)
		assert.Equal(t, "flow-1", string(event.FlowID))
		assert.Equal(t, "Research Pipeline", event.Name)
		assert.NotZero(t, event.Timestamp)
	case <-time.After(time.Second):
		t.Fatal("expected event")
	}
}

func TestPublishFansOut(t *testing.T) {
	h := events.NewHub()
	defer h.Close()

	ch1, cancel1 := h.Subscribe()
	defer cancel1()
	ch2, cancel2 := h.Subscribe()
	defer cancel2()

	h.Publish(events.FlowDeleted, "flow-1", "")

	for _, ch := range []<-chan *events.Event{ch1, ch2} {
		select {
		case event := <-ch:
			assert.Equal(t, events.FlowDeleted, event.Type)
		case <-time.After(time.Second):
			t.Fatal("expected event on every subscriber")
		}
	}
}

func TestCancelClosesChannel(t *testing.T) {
	h := events.NewHub()
	defer h.Close()

	ch, cancel := h.Subscribe()
	cancel()

	_, ok := <-ch
	assert.False(t, ok)

	// double cancel is harmless
	cancel()

	// publishing after cancel reaches nobody and never panics
	h.Publish(events.FlowSaved, "flow-1", "x")
}

func TestSlowSubscriberDropsEvents(t *testing.T) {
	h := events.NewHub()
	defer h.Close()

	ch, cancel := h.Subscribe()
	defer cancel()

	// overflow the buffer; the publisher must never block
	for i := 0; i < 100; i++ {
		h.Publish(events.FlowSaved, "flow-1", "x")
	}

	received := 0
	for {
		select {
		case <-ch:
			received++
			continue
		default:
		}
		break
	}
	assert.Greater(t, received, 0)
	assert.Less(t, received, 100)
}

func TestCloseClosesAllSubscribers(t *testing.T) {
	h := events.NewHub()
	ch1, _ := h.Subscribe()
	ch2, _ := h.Subscribe()

	h.Close()

	_, ok := <-ch1
	assert.False(t, ok)
	_, ok = <-ch2
	assert.False(t, ok)
}
