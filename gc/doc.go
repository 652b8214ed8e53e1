// Package gc implements the heap: the process's object registry, root pin
// table, and stop-the-world mark/sweep collector.
//
// # Heap
//
// A Heap is an explicit service object, created with NewHeap and torn down
// with Close. Objects are stored in a dense arena addressed by stable integer
// handles; handle 0 is reserved as the null edge. Object constructors (see the
// objects package) register into the heap at creation, which is the only way
// an object enters the registry.
//
//	heap := gc.NewHeap()
//	defer heap.Close()
//
// # Root Pins
//
// Pin and Unpin maintain a per-object count of external roots. Pins stack:
// two call frames holding the same object each hold their own pin, and the
// object stays alive until both are released. Unpinning past zero returns a
// pin_underflow error; it indicates a lifetime bug in the caller and is never
// silently ignored.
//
// # Collection
//
// Collect runs one full cycle under the heap's exclusive lock: seed the
// worklist from every pinned object, trace the reachable set over the
// per-kind edge rules, then sweep. Each unreached object is unregistered,
// finalized exactly once, and queued; slots are recycled only after the whole
// sweep so no finalize hook can observe a released sibling. Collect reports
// Metrics and logs one line through the package logger.
//
// There is no automatic trigger: collection always runs because someone
// called Collect. Concurrent callers serialize on the heap lock.
//
// # Fatal Conditions
//
// An object whose kind tag is outside the closed set, or a non-null edge that
// points at an unregistered slot, is a fatal invariant violation: the
// collector panics with a structured *errors.Error rather than under-marking
// the graph.
package gc
