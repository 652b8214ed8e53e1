package gc

import (
	wasmgc "github.com/wippyai/wasm-gc"
	"github.com/wippyai/wasm-gc/errors"
)

// Pin increments the object's root pin count. A pinned object survives
// collection regardless of other references. Pins stack: each Pin must be
// balanced by its own Unpin.
//
// Pin takes only the shared lock and updates the counter atomically, so
// concurrent pinners never block each other. A pin can never interleave with
// a running collection: Collect holds the exclusive lock, so the tracer's
// seed scan always observes a settled set of counts.
func (h *Heap) Pin(handle wasmgc.Handle) error {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if h.closed {
		return errors.Closed(errors.PhasePin)
	}
	e := h.lookupLocked(handle)
	if e == nil {
		return errors.InvalidHandle(errors.PhasePin, uint32(handle))
	}

	e.pins.Add(1)
	return nil
}

// Unpin decrements the object's root pin count. Unpinning an object whose
// count is already zero returns a pin_underflow error and leaves the count
// untouched; it signals a lifetime bug in the caller's bookkeeping, distinct
// from any collector-internal fault.
func (h *Heap) Unpin(handle wasmgc.Handle) error {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if h.closed {
		return errors.Closed(errors.PhasePin)
	}
	e := h.lookupLocked(handle)
	if e == nil {
		return errors.InvalidHandle(errors.PhasePin, uint32(handle))
	}

	for {
		n := e.pins.Load()
		if n <= 0 {
			return errors.PinUnderflow(uint32(handle))
		}
		if e.pins.CompareAndSwap(n, n-1) {
			return nil
		}
	}
}

// PinCount returns the object's current root pin count, or zero for handles
// that name no registered object. Diagnostic use only.
func (h *Heap) PinCount(handle wasmgc.Handle) int32 {
	h.mu.RLock()
	defer h.mu.RUnlock()

	e := h.lookupLocked(handle)
	if e == nil {
		return 0
	}
	return e.pins.Load()
}
