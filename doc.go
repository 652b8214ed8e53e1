// Package wasmgc provides the lifetime-management core of a WebAssembly
// runtime: a stop-the-world tracing garbage collector over the runtime's
// object graph.
//
// Runtime objects (functions, tables, memories, globals, modules, contexts,
// compartments, exception types) form a mutable, cyclic reference graph: a
// module owns its functions, a function refers back to its owning module, and
// everything inside a compartment shares that compartment. Ownership trees and
// reference counts cannot reclaim such a graph, so liveness is computed by
// tracing from an explicit root set of pinned objects.
//
// # Architecture Overview
//
// The library is organized into several packages with distinct responsibilities:
//
//	wasmgc/         Root package with the Handle, Kind, and Object types
//	├── gc/         Heap: object registry, root pins, tracer, sweeper, collector
//	├── objects/    The eight concrete object kinds and their edge rules
//	├── engine/     wazero-backed loader that materializes object graphs
//	├── errors/     Structured error types for debugging
//	└── cmd/gcmon/  CLI for demos and interactive heap inspection
//
// # Quick Start
//
// Create a heap, build a graph, pin the roots, and collect:
//
//	heap := gc.NewHeap()
//	defer heap.Close()
//
//	comp, _ := objects.NewCompartment(heap)
//	mod, _ := objects.NewModule(heap, comp.Handle())
//
//	heap.Pin(mod.Handle())
//	metrics := heap.Collect() // mod, comp, and the intrinsics module survive
//
//	heap.Unpin(mod.Handle())
//	metrics = heap.Collect() // everything is finalized and freed
//
// # Collection Model
//
// Collection is synchronous and stop-the-world: Collect holds the heap's
// exclusive lock for the whole cycle, so registration and other collections
// serialize behind it. Pin and Unpin use an atomic counter under a shared
// read-lock and therefore never block each other, but can never interleave
// with a running collection either.
//
// Unreached objects are unregistered and finalized during the sweep, and only
// released after the entire sweep completes, so a finalize hook may safely
// read state belonging to sibling objects collected in the same cycle.
//
// # Thread Safety
//
// Heap is safe for concurrent use. Individual objects are not synchronized;
// they are mutated only by their owners, outside a running collection.
package wasmgc
