package gc

import (
	"sync"
	"sync/atomic"

	"go.uber.org/zap"

	wasmgc "github.com/wippyai/wasm-gc"
	"github.com/wippyai/wasm-gc/errors"
)

// entry is one arena slot. Slots are allocated once and recycled through the
// free list; the pointer stays stable so pin counters can be updated under
// the shared lock while other slots are being appended.
type entry struct {
	obj   wasmgc.Object
	pins  atomic.Int32
	valid bool
}

// Heap is the global object registry and root pin table.
//
// The zero value is not usable; create heaps with NewHeap. All methods are
// safe for concurrent use: Register, Collect, and Close take the exclusive
// lock, while Pin, Unpin, and the read accessors share it.
type Heap struct {
	mu      sync.RWMutex
	entries []*entry
	free    []wasmgc.Handle
	closed  bool

	obsMu     sync.RWMutex
	observers []Observer
}

// NewHeap creates an empty heap.
func NewHeap() *Heap {
	return &Heap{
		entries: make([]*entry, 0, 64),
		free:    make([]wasmgc.Handle, 0, 16),
	}
}

// Register inserts a newly constructed object into the registry and returns
// its handle. It is called exactly once per object, at construction. The
// object's kind tag is not validated here: liveness of a foreign kind is the
// tracer's fatal path, not a registration concern.
func (h *Heap) Register(obj wasmgc.Object) (wasmgc.Handle, error) {
	if obj == nil {
		return wasmgc.Null, errors.Registration("nil object")
	}

	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		return wasmgc.Null, errors.Closed(errors.PhaseRegister)
	}

	var handle wasmgc.Handle
	if n := len(h.free); n > 0 {
		handle = h.free[n-1]
		h.free = h.free[:n-1]
		e := h.entries[handle-1]
		e.obj = obj
		e.pins.Store(0)
		e.valid = true
	} else {
		h.entries = append(h.entries, &entry{obj: obj, valid: true})
		handle = wasmgc.Handle(len(h.entries))
	}
	kind := obj.Kind()
	h.mu.Unlock()

	h.notify(Event{Type: EventRegistered, Handle: handle, Kind: kind})
	return handle, nil
}

// Get retrieves a registered object by handle.
func (h *Heap) Get(handle wasmgc.Handle) (wasmgc.Object, bool) {
	if handle == wasmgc.Null {
		return nil, false
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	e := h.lookupLocked(handle)
	if e == nil {
		return nil, false
	}
	return e.obj, true
}

// Contains reports whether handle names a registered object.
func (h *Heap) Contains(handle wasmgc.Handle) bool {
	_, ok := h.Get(handle)
	return ok
}

// Len returns the number of registered objects.
func (h *Heap) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.lenLocked()
}

// Each iterates over all registered objects under the shared lock.
// Return false from fn to stop early.
func (h *Heap) Each(fn func(wasmgc.Handle, wasmgc.Object) bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for i, e := range h.entries {
		if e.valid {
			if !fn(wasmgc.Handle(i+1), e.obj) {
				break
			}
		}
	}
}

// Close drains the heap: every remaining object is unregistered and
// finalized regardless of pins, and no further operations are accepted.
// Finalization follows the same two-phase protocol as a collection cycle.
// Close is idempotent.
func (h *Heap) Close() error {
	h.mu.Lock()
	if h.closed {
		h.mu.Unlock()
		return nil
	}
	h.closed = true

	var swept []sweptRecord
	for i, e := range h.entries {
		if !e.valid {
			continue
		}
		e.valid = false
		e.pins.Store(0)
		e.obj.Finalize()
		swept = append(swept, sweptRecord{handle: wasmgc.Handle(i + 1), kind: e.obj.Kind()})
		e.obj = nil
	}
	h.entries = nil
	h.free = nil
	h.mu.Unlock()

	for _, s := range swept {
		h.notify(Event{Type: EventSwept, Handle: s.handle, Kind: s.kind})
	}
	h.notify(Event{Type: EventClosed})

	Logger().Info("heap closed", zap.Int("drained", len(swept)))
	return nil
}

// lookupLocked resolves a handle to its live entry. Caller holds mu.
func (h *Heap) lookupLocked(handle wasmgc.Handle) *entry {
	idx := int(handle) - 1
	if idx < 0 || idx >= len(h.entries) {
		return nil
	}
	e := h.entries[idx]
	if !e.valid {
		return nil
	}
	return e
}

func (h *Heap) lenLocked() int {
	count := 0
	for _, e := range h.entries {
		if e.valid {
			count++
		}
	}
	return count
}
