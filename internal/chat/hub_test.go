package chat

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/CtIaMbaCK/betterus-server/internal/metrics"
	"github.com/CtIaMbaCK/betterus-server/internal/models/dtos"
)

// A connection whose send buffer overflows must be dropped by the run loop
// without panicking the hub, even when a directed echo for that connection
// is already queued behind the drop.
func TestHub_DropsSlowConsumerWithoutPanic(t *testing.T) {
	reg := metrics.NewMetricsRegistry()
	h := NewHub(nil, reg)
	go h.Run()

	slow := &Client{hub: h, userID: "user-slow", send: make(chan dtos.ChatEvent, 1)}
	watcher := &Client{hub: h, userID: "user-watcher", send: make(chan dtos.ChatEvent, 8)}
	h.register <- slow
	h.register <- watcher

	// Fill the slow connection's buffer, then overflow it.
	h.SendToUser("user-slow", dtos.ChatEvent{Event: "fill"})
	h.SendToUser("user-slow", dtos.ChatEvent{Event: "overflow"})

	// Queued behind the drop; must be skipped, not sent on the closed
	// channel.
	h.sendToClient(slow, dtos.ChatEvent{Event: "echo"})

	// The run loop processes events in order, so receiving this one means it
	// survived the drop path.
	h.SendToUser("user-watcher", dtos.ChatEvent{Event: "done"})
	select {
	case <-watcher.send:
	case <-time.After(time.Second):
		t.Fatal("Hub did not process events after dropping the slow consumer")
	}

	if got := <-slow.send; got.Event != "fill" {
		t.Errorf("Expected the buffered event first, got %q", got.Event)
	}
	if _, ok := <-slow.send; ok {
		t.Error("Expected the slow consumer's channel to be closed")
	}

	if got := testutil.ToFloat64(reg.WSConnectionsActive); got != 1 {
		t.Errorf("Expected one active connection after the drop, got %v", got)
	}
}

// sendError goes through the run loop like every other delivery, so a
// disconnected client must not receive it and the hub must not block.
func TestHub_SendErrorToDroppedClient(t *testing.T) {
	h := NewHub(nil, nil)
	go h.Run()

	c := &Client{hub: h, userID: "user-1", send: make(chan dtos.ChatEvent, 1)}
	h.register <- c
	h.unregister <- c

	h.sendError(c, "too late")

	other := &Client{hub: h, userID: "user-2", send: make(chan dtos.ChatEvent, 1)}
	h.register <- other
	h.SendToUser("user-2", dtos.ChatEvent{Event: "alive"})
	select {
	case <-other.send:
	case <-time.After(time.Second):
		t.Fatal("Hub stopped processing after an error send to a dropped client")
	}
}
