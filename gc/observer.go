package gc

import (
	wasmgc "github.com/wippyai/wasm-gc"
)

// Event types for heap lifecycle notifications.
type EventType uint8

const (
	EventRegistered EventType = iota
	EventSwept
	EventClosed
)

// Event represents a heap lifecycle event. Swept events are delivered after
// the collection cycle that produced them has released the heap lock.
type Event struct {
	Handle wasmgc.Handle
	Kind   wasmgc.Kind
	Type   EventType
}

// Observer receives notifications about heap lifecycle events.
type Observer interface {
	OnHeapEvent(Event)
}

// Subscribe adds an observer for lifecycle events.
func (h *Heap) Subscribe(o Observer) {
	h.obsMu.Lock()
	defer h.obsMu.Unlock()
	h.observers = append(h.observers, o)
}

// Unsubscribe removes an observer.
func (h *Heap) Unsubscribe(o Observer) {
	h.obsMu.Lock()
	defer h.obsMu.Unlock()
	for i, obs := range h.observers {
		if obs == o {
			h.observers = append(h.observers[:i], h.observers[i+1:]...)
			return
		}
	}
}

func (h *Heap) notify(e Event) {
	h.obsMu.RLock()
	defer h.obsMu.RUnlock()
	for _, o := range h.observers {
		o.OnHeapEvent(e)
	}
}
