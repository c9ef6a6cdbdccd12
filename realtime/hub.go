// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package realtime

import "sync"

// EventRound is published when a round of an event is paired.
const EventRound = "round"

// Hub keeps one Broadcaster per event id while the event has subscribers.
type Hub struct {
	mu     sync.Mutex
	topics map[string]*Broadcaster
}

func NewHub() *Hub {
	return &Hub{topics: make(map[string]*Broadcaster)}
}

// Subscribe registers a subscriber for id, creating its topic on first use.
func (h *Hub) Subscribe(id string) chan string {
	h.mu.Lock()
	defer h.mu.Unlock()
	b, ok := h.topics[id]
	if !ok {
		b = NewBroadcaster()
		h.topics[id] = b
	}
	return b.Subscribe()
}

// Unsubscribe removes ch from id and drops the topic once it has no
// subscribers left.
func (h *Hub) Unsubscribe(id string, ch chan string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	b, ok := h.topics[id]
	if !ok {
		return
	}
	b.Unsubscribe(ch)
	if b.Subscribers() == 0 {
		delete(h.topics, id)
	}
}

// Publish notifies the subscribers of id. Topics nobody has asked for are
// not created.
func (h *Hub) Publish(id, event string) {
	h.mu.Lock()
	b, ok := h.topics[id]
	h.mu.Unlock()
	if ok {
		b.Publish(event)
	}
}

// Topics reports how many event ids have subscribers.
func (h *Hub) Topics() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.topics)
}
