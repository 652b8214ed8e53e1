// Package engine bridges compiled WebAssembly binaries into the garbage
// collected object graph.
//
// The engine is one of the collector's external collaborators: it decides how
// a module's functions, memories, tables, and globals are populated, while
// the gc package alone decides whether they stay alive. Load compiles a core
// wasm binary with wazero, materializes a Module object and one object per
// exported definition inside the given compartment, and attaches a finalizer
// that closes the compiled module when the Module object is collected.
//
//	heap := gc.NewHeap()
//	eng := engine.New(ctx, heap)
//	defer eng.Close(ctx)
//
//	comp, _ := objects.NewCompartment(heap)
//	mod, err := eng.Load(ctx, comp, wasmBytes)
//
//	heap.Pin(mod.Handle())   // keep it alive while in use
//	...
//	heap.Unpin(mod.Handle())
//	heap.Collect()           // closes the compiled module
package engine
