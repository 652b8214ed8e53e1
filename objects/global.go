package objects

import (
	wasmgc "github.com/wippyai/wasm-gc"
	"github.com/wippyai/wasm-gc/errors"
	"github.com/wippyai/wasm-gc/gc"
)

// Global is a global variable instance holding one scalar value.
type Global struct {
	self        wasmgc.Handle
	compartment wasmgc.Handle
	value       uint64
	mutable     bool
}

// NewGlobal creates and registers a global owned by compartment.
func NewGlobal(heap *gc.Heap, compartment wasmgc.Handle, value uint64, mutable bool) (*Global, error) {
	g := &Global{
		compartment: compartment,
		value:       value,
		mutable:     mutable,
	}
	handle, err := heap.Register(g)
	if err != nil {
		return nil, err
	}
	g.self = handle
	return g, nil
}

// Handle returns the global's registry handle.
func (g *Global) Handle() wasmgc.Handle { return g.self }

// Compartment returns the owning compartment's handle.
func (g *Global) Compartment() wasmgc.Handle { return g.compartment }

// Value returns the global's current value.
func (g *Global) Value() uint64 { return g.value }

// SetValue stores v. Writing an immutable global is an error.
func (g *Global) SetValue(v uint64) error {
	if !g.mutable {
		return errors.Immutable("write to immutable global")
	}
	g.value = v
	return nil
}

func (g *Global) Kind() wasmgc.Kind { return wasmgc.KindGlobal }

func (g *Global) EachRef(visit func(wasmgc.Handle)) {
	visit(g.compartment)
}

func (g *Global) Finalize() {}
