package objects

import (
	wasmgc "github.com/wippyai/wasm-gc"
	"github.com/wippyai/wasm-gc/gc"
)

// Compartment is the isolation boundary grouping modules, tables, memories,
// globals, and contexts that share a reference space. Every compartment
// carries a built-in intrinsics module instance, created with it.
type Compartment struct {
	self       wasmgc.Handle
	intrinsics wasmgc.Handle
}

// NewCompartment creates and registers a compartment together with its
// intrinsics module.
func NewCompartment(heap *gc.Heap) (*Compartment, error) {
	c := &Compartment{}
	handle, err := heap.Register(c)
	if err != nil {
		return nil, err
	}
	c.self = handle

	intrinsics, err := NewModule(heap, c.self)
	if err != nil {
		return nil, err
	}
	c.intrinsics = intrinsics.Handle()
	return c, nil
}

// Handle returns the compartment's registry handle.
func (c *Compartment) Handle() wasmgc.Handle { return c.self }

// Intrinsics returns the handle of the compartment's built-in module.
func (c *Compartment) Intrinsics() wasmgc.Handle { return c.intrinsics }

func (c *Compartment) Kind() wasmgc.Kind { return wasmgc.KindCompartment }

func (c *Compartment) EachRef(visit func(wasmgc.Handle)) {
	visit(c.intrinsics)
}

func (c *Compartment) Finalize() {}
