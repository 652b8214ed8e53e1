package objects

import (
	wasmgc "github.com/wippyai/wasm-gc"
	"github.com/wippyai/wasm-gc/errors"
	"github.com/wippyai/wasm-gc/gc"
)

// Table is a table instance: an ordered sequence of nullable element slots,
// each of which may reference an arbitrary object.
type Table struct {
	self        wasmgc.Handle
	compartment wasmgc.Handle
	elements    []wasmgc.Handle
}

// NewTable creates and registers a table with size null element slots, owned
// by compartment.
func NewTable(heap *gc.Heap, compartment wasmgc.Handle, size int) (*Table, error) {
	t := &Table{
		compartment: compartment,
		elements:    make([]wasmgc.Handle, size),
	}
	handle, err := heap.Register(t)
	if err != nil {
		return nil, err
	}
	t.self = handle
	return t, nil
}

// Handle returns the table's registry handle.
func (t *Table) Handle() wasmgc.Handle { return t.self }

// Compartment returns the owning compartment's handle.
func (t *Table) Compartment() wasmgc.Handle { return t.compartment }

// Len returns the number of element slots.
func (t *Table) Len() int { return len(t.elements) }

// Get returns the element at index i, which may be the null handle.
func (t *Table) Get(i int) (wasmgc.Handle, error) {
	if i < 0 || i >= len(t.elements) {
		return wasmgc.Null, errors.OutOfBounds(errors.PhaseRuntime, i, len(t.elements))
	}
	return t.elements[i], nil
}

// Set stores ref into element slot i. The null handle clears the slot.
func (t *Table) Set(i int, ref wasmgc.Handle) error {
	if i < 0 || i >= len(t.elements) {
		return errors.OutOfBounds(errors.PhaseRuntime, i, len(t.elements))
	}
	t.elements[i] = ref
	return nil
}

// Grow appends n null element slots and returns the previous length.
func (t *Table) Grow(n int) int {
	prev := len(t.elements)
	t.elements = append(t.elements, make([]wasmgc.Handle, n)...)
	return prev
}

func (t *Table) Kind() wasmgc.Kind { return wasmgc.KindTable }

func (t *Table) EachRef(visit func(wasmgc.Handle)) {
	visit(t.compartment)
	for _, e := range t.elements {
		visit(e)
	}
}

func (t *Table) Finalize() {
	t.elements = nil
}
