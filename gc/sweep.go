package gc

import (
	wasmgc "github.com/wippyai/wasm-gc"
)

type sweptRecord struct {
	handle wasmgc.Handle
	kind   wasmgc.Kind
}

// sweep walks the full registry once and processes every object not in the
// reachable set: the slot is invalidated first, so nothing can observe the
// object again, then the finalize hook runs. The caller holds the exclusive
// lock.
//
// Slot recycling is deferred to release: a finalize body may read state of
// sibling objects collected in the same pass, none of which have been
// released yet. Reachable objects are left entirely untouched.
func (h *Heap) sweep(reachable []bool) []sweptRecord {
	var swept []sweptRecord
	for i, e := range h.entries {
		if !e.valid || reachable[i] {
			continue
		}
		e.valid = false
		e.pins.Store(0)
		e.obj.Finalize()
		swept = append(swept, sweptRecord{handle: wasmgc.Handle(i + 1), kind: e.obj.Kind()})
	}
	return swept
}

// release drops the finalized objects and recycles their slots. The caller
// holds the exclusive lock.
func (h *Heap) release(swept []sweptRecord) {
	for _, s := range swept {
		h.entries[s.handle-1].obj = nil
		h.free = append(h.free, s.handle)
	}
}
