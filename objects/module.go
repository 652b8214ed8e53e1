package objects

import (
	wasmgc "github.com/wippyai/wasm-gc"
	"github.com/wippyai/wasm-gc/gc"
)

// Module is an instantiated module: it holds its owning compartment, the
// instances it was populated with by the compiler/linker, and optional
// default memory and table. Population happens through the Add and Set
// mutators after construction; mutation is the owner's business and must not
// overlap a running collection.
type Module struct {
	self        wasmgc.Handle
	compartment wasmgc.Handle

	functionDefs []wasmgc.Handle
	functions    []wasmgc.Handle
	tables       []wasmgc.Handle
	memories     []wasmgc.Handle
	globals      []wasmgc.Handle

	defaultMemory wasmgc.Handle
	defaultTable  wasmgc.Handle

	finalize func()
}

// NewModule creates and registers an empty module owned by compartment.
func NewModule(heap *gc.Heap, compartment wasmgc.Handle, opts ...Option) (*Module, error) {
	o := applyOptions(opts)
	m := &Module{
		compartment: compartment,
		finalize:    o.finalize,
	}
	handle, err := heap.Register(m)
	if err != nil {
		return nil, err
	}
	m.self = handle
	return m, nil
}

// Handle returns the module's registry handle.
func (m *Module) Handle() wasmgc.Handle { return m.self }

// Compartment returns the owning compartment's handle.
func (m *Module) Compartment() wasmgc.Handle { return m.compartment }

// AddFunctionDef appends a function defined by this module.
func (m *Module) AddFunctionDef(h wasmgc.Handle) { m.functionDefs = append(m.functionDefs, h) }

// AddFunction appends to the module's function index space.
func (m *Module) AddFunction(h wasmgc.Handle) { m.functions = append(m.functions, h) }

// AddTable appends to the module's table index space.
func (m *Module) AddTable(h wasmgc.Handle) { m.tables = append(m.tables, h) }

// AddMemory appends to the module's memory index space.
func (m *Module) AddMemory(h wasmgc.Handle) { m.memories = append(m.memories, h) }

// AddGlobal appends to the module's global index space.
func (m *Module) AddGlobal(h wasmgc.Handle) { m.globals = append(m.globals, h) }

// SetDefaultMemory sets the module's default memory. Handle 0 clears it.
func (m *Module) SetDefaultMemory(h wasmgc.Handle) { m.defaultMemory = h }

// SetDefaultTable sets the module's default table. Handle 0 clears it.
func (m *Module) SetDefaultTable(h wasmgc.Handle) { m.defaultTable = h }

// DefaultMemory returns the default memory handle, 0 when unset.
func (m *Module) DefaultMemory() wasmgc.Handle { return m.defaultMemory }

// DefaultTable returns the default table handle, 0 when unset.
func (m *Module) DefaultTable() wasmgc.Handle { return m.defaultTable }

// Functions returns the module's function index space.
func (m *Module) Functions() []wasmgc.Handle { return m.functions }

func (m *Module) Kind() wasmgc.Kind { return wasmgc.KindModule }

func (m *Module) EachRef(visit func(wasmgc.Handle)) {
	visit(m.compartment)
	for _, h := range m.functionDefs {
		visit(h)
	}
	for _, h := range m.functions {
		visit(h)
	}
	for _, h := range m.tables {
		visit(h)
	}
	for _, h := range m.memories {
		visit(h)
	}
	for _, h := range m.globals {
		visit(h)
	}
	visit(m.defaultMemory)
	visit(m.defaultTable)
}

func (m *Module) Finalize() {
	if m.finalize != nil {
		m.finalize()
	}
}
