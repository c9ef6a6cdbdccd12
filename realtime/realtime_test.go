// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package realtime

import "testing"

func TestBroadcasterPublish(t *testing.T) {
	b := NewBroadcaster()
	ch1 := b.Subscribe()
	ch2 := b.Subscribe()
	defer b.Unsubscribe(ch1)
	defer b.Unsubscribe(ch2)

	b.Publish(EventRound)
	if got := <-ch1; got != EventRound {
		t.Errorf("ch1 got %q, want %q", got, EventRound)
	}
	if got := <-ch2; got != EventRound {
		t.Errorf("ch2 got %q, want %q", got, EventRound)
	}
}

func TestBroadcasterUnsubscribe(t *testing.T) {
	b := NewBroadcaster()
	ch := b.Subscribe()
	b.Unsubscribe(ch)
	b.Unsubscribe(ch)

	if _, open := <-ch; open {
		t.Error("channel should be closed after Unsubscribe")
	}
	if n := b.Subscribers(); n != 0 {
		t.Errorf("Subscribers() = %d, want 0", n)
	}
	b.Publish(EventRound)
}

func TestBroadcasterDropsWhenFull(t *testing.T) {
	b := NewBroadcaster()
	ch := b.Subscribe()
	defer b.Unsubscribe(ch)

	for range 25 {
		b.Publish(EventRound)
	}
	if len(ch) != cap(ch) {
		t.Errorf("buffered %d events, want %d", len(ch), cap(ch))
	}
}

func TestHubSeparatesEvents(t *testing.T) {
	h := NewHub()
	a := h.Subscribe("event-a")
	b := h.Subscribe("event-b")
	defer h.Unsubscribe("event-a", a)
	defer h.Unsubscribe("event-b", b)

	h.Publish("event-a", EventRound)
	h.Publish("event-c", EventRound)

	if got := <-a; got != EventRound {
		t.Errorf("event-a got %q, want %q", got, EventRound)
	}
	select {
	case got := <-b:
		t.Errorf("event-b received %q", got)
	default:
	}
	if n := h.Topics(); n != 2 {
		t.Errorf("Topics() = %d, want 2", n)
	}
}

func TestHubDropsIdleTopics(t *testing.T) {
	h := NewHub()
	first := h.Subscribe("event-a")
	second := h.Subscribe("event-a")

	h.Unsubscribe("event-a", first)
	if n := h.Topics(); n != 1 {
		t.Fatalf("Topics() = %d with one subscriber left, want 1", n)
	}

	h.Publish("event-a", EventRound)
	if got := <-second; got != EventRound {
		t.Errorf("remaining subscriber got %q, want %q", got, EventRound)
	}

	h.Unsubscribe("event-a", second)
	h.Unsubscribe("event-a", second)
	if n := h.Topics(); n != 0 {
		t.Errorf("Topics() = %d after the last unsubscribe, want 0", n)
	}
	if _, open := <-second; open {
		t.Error("channel should be closed after Unsubscribe")
	}

	// A new subscriber after the topic was dropped still hears events
	again := h.Subscribe("event-a")
	defer h.Unsubscribe("event-a", again)
	h.Publish("event-a", EventRound)
	if got := <-again; got != EventRound {
		t.Errorf("new subscriber got %q, want %q", got, EventRound)
	}
}
