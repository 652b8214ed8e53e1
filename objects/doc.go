// Package objects defines the eight concrete runtime object kinds and their
// outgoing-edge rules.
//
// Every constructor registers the new object into a gc.Heap; construction
// and registration are one step, and the returned object records its own
// handle. Objects reference each other purely by handle, so the cyclic
// shared-reference graph (module -> function -> module, everything -> shared
// compartment) carries no dangling-pointer risk during sweep.
//
// The outgoing edges of each kind, as enumerated by EachRef:
//
//	Function      -> owning module
//	Table         -> owning compartment, each non-null element slot
//	Memory        -> owning compartment
//	Global        -> owning compartment
//	Module        -> owning compartment, function defs, functions, tables,
//	                 memories, globals, default memory, default table
//	Context       -> owning compartment
//	Compartment   -> its intrinsics module
//	ExceptionType -> (none)
//
// Kinds that own real resources release them in Finalize (a Memory drops its
// linear memory slab). Module and Function additionally accept a
// WithFinalizer hook so collaborators such as the engine can attach their own
// teardown, e.g. closing a compiled module when its Module object is
// collected.
package objects
