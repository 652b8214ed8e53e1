package objects

import (
	wasmgc "github.com/wippyai/wasm-gc"
	"github.com/wippyai/wasm-gc/gc"
)

// PageSize is the WebAssembly linear memory page size in bytes.
const PageSize = 65536

// Memory is a linear memory instance. It owns its byte slab, which Finalize
// releases.
type Memory struct {
	self        wasmgc.Handle
	compartment wasmgc.Handle
	data        []byte
}

// NewMemory creates and registers a memory of pages 64KiB pages, owned by
// compartment.
func NewMemory(heap *gc.Heap, compartment wasmgc.Handle, pages uint32) (*Memory, error) {
	m := &Memory{
		compartment: compartment,
		data:        make([]byte, int(pages)*PageSize),
	}
	handle, err := heap.Register(m)
	if err != nil {
		return nil, err
	}
	m.self = handle
	return m, nil
}

// Handle returns the memory's registry handle.
func (m *Memory) Handle() wasmgc.Handle { return m.self }

// Compartment returns the owning compartment's handle.
func (m *Memory) Compartment() wasmgc.Handle { return m.compartment }

// Pages returns the current size in 64KiB pages.
func (m *Memory) Pages() uint32 { return uint32(len(m.data) / PageSize) }

// Data returns the linear memory slab. Nil after finalization.
func (m *Memory) Data() []byte { return m.data }

// Grow appends n pages and returns the previous size in pages.
func (m *Memory) Grow(n uint32) uint32 {
	prev := m.Pages()
	m.data = append(m.data, make([]byte, int(n)*PageSize)...)
	return prev
}

func (m *Memory) Kind() wasmgc.Kind { return wasmgc.KindMemory }

func (m *Memory) EachRef(visit func(wasmgc.Handle)) {
	visit(m.compartment)
}

// Finalize releases the linear memory slab.
func (m *Memory) Finalize() {
	m.data = nil
}
