package gc

import (
	wasmgc "github.com/wippyai/wasm-gc"
	"github.com/wippyai/wasm-gc/errors"
)

// trace computes the reachable slot set. The caller holds the exclusive lock.
//
// The reachable set is seeded from every registered object with a pin count
// above zero, then grown with an explicit worklist so arbitrarily deep graphs
// cost no stack. Each object enters the worklist at most once (membership is
// checked before push), which also makes cycles and duplicate edges free:
// cost is O(objects + edges).
func (h *Heap) trace() (reachable []bool, roots int) {
	reachable = make([]bool, len(h.entries))
	worklist := make([]wasmgc.Handle, 0, 16)

	for i, e := range h.entries {
		if e.valid && e.pins.Load() > 0 {
			reachable[i] = true
			worklist = append(worklist, wasmgc.Handle(i+1))
			roots++
		}
	}

	for len(worklist) > 0 {
		handle := worklist[len(worklist)-1]
		worklist = worklist[:len(worklist)-1]
		e := h.entries[handle-1]

		// A kind tag outside the closed set must never be treated as "no
		// edges": that would silently under-mark the graph and free objects
		// it still reaches.
		if !e.obj.Kind().Valid() {
			panic(errors.UnknownKind(uint32(handle), uint8(e.obj.Kind())))
		}

		e.obj.EachRef(func(ref wasmgc.Handle) {
			if ref == wasmgc.Null {
				return
			}
			idx := int(ref) - 1
			if idx < 0 || idx >= len(h.entries) || !h.entries[idx].valid {
				panic(errors.CorruptEdge(uint32(handle), uint32(ref)))
			}
			if !reachable[idx] {
				reachable[idx] = true
				worklist = append(worklist, ref)
			}
		})
	}

	return reachable, roots
}
