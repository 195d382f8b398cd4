package server

import (
	"encoding/json"
	"testing"

	"github.com/mockmate/interviewprep/internal/flow"
)

func TestBrokerDeliversToUserOnly(t *testing.T) {
	b := NewBroker()
	alice := b.Subscribe("alice")
	bob := b.Subscribe("bob")
	defer b.Unsubscribe("alice", alice)
	defer b.Unsubscribe("bob", bob)

	b.Publish("alice", SSEEvent{Type: "tick", Clock: &flow.Clock{Elapsed: 3}})

	select {
	case data := <-alice:
		var ev SSEEvent
		if err := json.Unmarshal(data, &ev); err != nil {
			t.Fatalf("unmarshalling: %v", err)
		}
		if ev.Type != "tick" || ev.Clock == nil || ev.Clock.Elapsed != 3 {
			t.Errorf("event = %+v, want tick with elapsed 3", ev)
		}
	default:
		t.Fatal("alice should have received the event")
	}

	select {
	case <-bob:
		t.Fatal("bob should not receive alice's event")
	default:
	}
}

func TestBrokerDropsWhenSubscriberSlow(t *testing.T) {
	b := NewBroker()
	ch := b.Subscribe("slow")
	defer b.Unsubscribe("slow", ch)

	// Fill the buffer and keep publishing; Publish must not block.
	for i := 0; i < 100; i++ {
		b.Publish("slow", SSEEvent{Type: "tick"})
	}
	if got := len(ch); got != cap(ch) {
		t.Errorf("buffered = %d, want full buffer %d", got, cap(ch))
	}
}

func TestBrokerUnsubscribeStopsDelivery(t *testing.T) {
	b := NewBroker()
	ch := b.Subscribe("u")
	b.Unsubscribe("u", ch)

	b.Publish("u", SSEEvent{Type: "tick"})
	if len(ch) != 0 {
		t.Error("unsubscribed channel should receive nothing")
	}
}
