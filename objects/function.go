package objects

import (
	wasmgc "github.com/wippyai/wasm-gc"
	"github.com/wippyai/wasm-gc/gc"
)

// Function is a function instance. Its only edge points back at the owning
// module, which is what makes the module/function reference cycle.
type Function struct {
	self     wasmgc.Handle
	module   wasmgc.Handle
	name     string
	finalize func()
}

// NewFunction creates and registers a function instance owned by module.
func NewFunction(heap *gc.Heap, module wasmgc.Handle, name string, opts ...Option) (*Function, error) {
	o := applyOptions(opts)
	f := &Function{
		module:   module,
		name:     name,
		finalize: o.finalize,
	}
	handle, err := heap.Register(f)
	if err != nil {
		return nil, err
	}
	f.self = handle
	return f, nil
}

// Handle returns the function's registry handle.
func (f *Function) Handle() wasmgc.Handle { return f.self }

// Module returns the owning module's handle.
func (f *Function) Module() wasmgc.Handle { return f.module }

// Name returns the function's export name, which may be empty.
func (f *Function) Name() string { return f.name }

func (f *Function) Kind() wasmgc.Kind { return wasmgc.KindFunction }

func (f *Function) EachRef(visit func(wasmgc.Handle)) {
	visit(f.module)
}

func (f *Function) Finalize() {
	if f.finalize != nil {
		f.finalize()
	}
}
