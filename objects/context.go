package objects

import (
	wasmgc "github.com/wippyai/wasm-gc"
	"github.com/wippyai/wasm-gc/gc"
)

// Context is an execution context bound to a compartment.
type Context struct {
	self        wasmgc.Handle
	compartment wasmgc.Handle
}

// NewContext creates and registers a context owned by compartment.
func NewContext(heap *gc.Heap, compartment wasmgc.Handle) (*Context, error) {
	c := &Context{compartment: compartment}
	handle, err := heap.Register(c)
	if err != nil {
		return nil, err
	}
	c.self = handle
	return c, nil
}

// Handle returns the context's registry handle.
func (c *Context) Handle() wasmgc.Handle { return c.self }

// Compartment returns the owning compartment's handle.
func (c *Context) Compartment() wasmgc.Handle { return c.compartment }

func (c *Context) Kind() wasmgc.Kind { return wasmgc.KindContext }

func (c *Context) EachRef(visit func(wasmgc.Handle)) {
	visit(c.compartment)
}

func (c *Context) Finalize() {}
