package wasmgc

// Handle is the stable address of a registered object in a heap.
// Handle 0 is reserved and marks a null edge (an unset default table, an
// empty table element slot).
type Handle uint32

// Null is the reserved null edge target.
const Null Handle = 0

// Kind tags each object with one of the eight runtime object kinds.
// The set is closed: the tracer treats any other value as a fatal
// invariant violation.
type Kind uint8

const (
	KindFunction Kind = iota
	KindTable
	KindMemory
	KindGlobal
	KindModule
	KindContext
	KindCompartment
	KindExceptionType

	kindCount
)

// Valid reports whether k is a member of the closed kind set.
func (k Kind) Valid() bool {
	return k < kindCount
}

func (k Kind) String() string {
	switch k {
	case KindFunction:
		return "function"
	case KindTable:
		return "table"
	case KindMemory:
		return "memory"
	case KindGlobal:
		return "global"
	case KindModule:
		return "module"
	case KindContext:
		return "context"
	case KindCompartment:
		return "compartment"
	case KindExceptionType:
		return "exception_type"
	default:
		return "unknown"
	}
}

// Object is the capability every collected runtime entity exposes to the
// garbage collector. The collector never inspects an object beyond these
// three methods: it reads the kind tag, enumerates outgoing edges during
// tracing, and runs the finalize hook exactly once before the object is
// released.
type Object interface {
	// Kind returns the object's kind tag, immutable after construction.
	Kind() Kind

	// EachRef calls visit for every outgoing reference the object holds.
	// Null edges may be reported as Handle 0; the tracer skips them.
	EachRef(visit func(Handle))

	// Finalize tears down resources owned by the object. It is invoked at
	// most once, by the sweeper, strictly after the object has been removed
	// from the registry and strictly before it is released. A finalize body
	// may read state of sibling objects collected in the same cycle, but
	// must not depend on the order siblings are finalized in, and must not
	// call back into the heap (the collection lock is held).
	Finalize()
}
