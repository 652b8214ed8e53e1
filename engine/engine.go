package engine

import (
	"context"
	"sort"

	"github.com/tetratelabs/wazero"
	"go.uber.org/zap"

	"github.com/wippyai/wasm-gc/errors"
	"github.com/wippyai/wasm-gc/gc"
	"github.com/wippyai/wasm-gc/objects"
)

// Engine compiles wasm binaries with wazero and materializes their object
// graphs in a heap.
type Engine struct {
	rt   wazero.Runtime
	heap *gc.Heap
}

// New creates an engine backed by a fresh wazero runtime.
func New(ctx context.Context, heap *gc.Heap) *Engine {
	return &Engine{
		rt:   wazero.NewRuntime(ctx),
		heap: heap,
	}
}

// Close tears down the wazero runtime. Modules already materialized in the
// heap keep their finalizers; collecting them after Close is harmless because
// wazero tolerates closing a compiled module twice.
func (e *Engine) Close(ctx context.Context) error {
	return e.rt.Close(ctx)
}

// Load compiles a core wasm binary and materializes its object graph inside
// comp: one Module object, one Function object per exported function, and
// one Memory object per exported memory, the first of which becomes the
// module's default. The Module's finalize hook closes the compiled module,
// so the compiled code lives exactly as long as the Module object.
//
// The returned module is not pinned; pin it before the next collection if it
// must survive. On a partially failed load the objects created so far are
// left unpinned and fall to the next cycle.
func (e *Engine) Load(ctx context.Context, comp *objects.Compartment, bin []byte) (*objects.Module, error) {
	compiled, err := e.rt.CompileModule(ctx, bin)
	if err != nil {
		return nil, errors.Load("compile module", err)
	}

	mod, err := objects.NewModule(e.heap, comp.Handle(), objects.WithFinalizer(func() {
		if cerr := compiled.Close(context.Background()); cerr != nil {
			Logger().Warn("close compiled module", zap.Error(cerr))
		}
	}))
	if err != nil {
		_ = compiled.Close(ctx)
		return nil, err
	}

	fnNames := make([]string, 0, len(compiled.ExportedFunctions()))
	for name := range compiled.ExportedFunctions() {
		fnNames = append(fnNames, name)
	}
	sort.Strings(fnNames)
	for _, name := range fnNames {
		fn, err := objects.NewFunction(e.heap, mod.Handle(), name)
		if err != nil {
			return nil, err
		}
		mod.AddFunctionDef(fn.Handle())
		mod.AddFunction(fn.Handle())
	}

	memNames := make([]string, 0, len(compiled.ExportedMemories()))
	for name := range compiled.ExportedMemories() {
		memNames = append(memNames, name)
	}
	sort.Strings(memNames)
	for _, name := range memNames {
		def := compiled.ExportedMemories()[name]
		mem, err := objects.NewMemory(e.heap, comp.Handle(), def.Min())
		if err != nil {
			return nil, err
		}
		mod.AddMemory(mem.Handle())
		if mod.DefaultMemory() == 0 {
			mod.SetDefaultMemory(mem.Handle())
		}
	}

	Logger().Debug("materialized module",
		zap.Uint32("handle", uint32(mod.Handle())),
		zap.Int("functions", len(fnNames)),
		zap.Int("memories", len(memNames)),
	)
	return mod, nil
}
