package errors

import (
	"fmt"
	"strings"
)

// Phase indicates where in processing the error occurred
type Phase string

const (
	PhaseRegister Phase = "register" // object registration
	PhasePin      Phase = "pin"      // root pin bookkeeping
	PhaseCollect  Phase = "collect"  // trace/sweep cycle
	PhaseLoad     Phase = "load"     // module loading
	PhaseRuntime  Phase = "runtime"  // runtime operations
)

// Kind categorizes the error
type Kind string

const (
	KindPinUnderflow  Kind = "pin_underflow"
	KindInvalidHandle Kind = "invalid_handle"
	KindUnknownKind   Kind = "unknown_kind"
	KindCorruptEdge   Kind = "corrupt_edge"
	KindOutOfBounds   Kind = "out_of_bounds"
	KindImmutable     Kind = "immutable"
	KindClosed        Kind = "closed"
	KindRegistration  Kind = "registration"
	KindInvalidData   Kind = "invalid_data"
)

// Error is the structured error type used throughout the collector
type Error struct {
	Cause  error
	Phase  Phase
	Kind   Kind
	Detail string
	Handle uint32
}

// Error implements the error interface
func (e *Error) Error() string {
	var b strings.Builder

	b.WriteByte('[')
	b.WriteString(string(e.Phase))
	b.WriteString("] ")
	b.WriteString(string(e.Kind))

	if e.Handle != 0 {
		fmt.Fprintf(&b, " (handle %d)", e.Handle)
	}

	if e.Detail != "" {
		b.WriteString(": ")
		b.WriteString(e.Detail)
	}

	if e.Cause != nil {
		b.WriteString(" (caused by: ")
		b.WriteString(e.Cause.Error())
		b.WriteByte(')')
	}

	return b.String()
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Phase == t.Phase && e.Kind == t.Kind
	}
	return false
}

// Builder provides structured error construction
type Builder struct {
	err Error
}

// New creates a new error builder
func New(phase Phase, kind Kind) *Builder {
	return &Builder{
		err: Error{
			Phase: phase,
			Kind:  kind,
		},
	}
}

// Handle sets the offending object handle
func (b *Builder) Handle(h uint32) *Builder {
	b.err.Handle = h
	return b
}

// Cause sets the underlying error
func (b *Builder) Cause(err error) *Builder {
	b.err.Cause = err
	return b
}

// Detail sets the human-readable detail message
func (b *Builder) Detail(msg string, args ...any) *Builder {
	if len(args) > 0 {
		b.err.Detail = fmt.Sprintf(msg, args...)
	} else {
		b.err.Detail = msg
	}
	return b
}

// Build returns the constructed error
func (b *Builder) Build() *Error {
	return &b.err
}

// Convenience constructors for common error patterns

// PinUnderflow creates the error reported when an object is unpinned more
// times than it was pinned. This indicates a lifetime bug in the caller, not
// in the collector.
func PinUnderflow(handle uint32) *Error {
	return &Error{
		Phase:  PhasePin,
		Kind:   KindPinUnderflow,
		Handle: handle,
		Detail: "unpin without a matching pin",
	}
}

// InvalidHandle creates an error for an operation on a handle that does not
// name a registered object.
func InvalidHandle(phase Phase, handle uint32) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidHandle,
		Handle: handle,
		Detail: "no registered object",
	}
}

// UnknownKind creates the fatal error raised when the tracer encounters an
// object whose kind is outside the closed set.
func UnknownKind(handle uint32, kind uint8) *Error {
	return &Error{
		Phase:  PhaseCollect,
		Kind:   KindUnknownKind,
		Handle: handle,
		Detail: fmt.Sprintf("kind tag %d is outside the closed kind set", kind),
	}
}

// CorruptEdge creates the fatal error raised when a non-null edge points at
// an object that is not in the registry.
func CorruptEdge(from, to uint32) *Error {
	return &Error{
		Phase:  PhaseCollect,
		Kind:   KindCorruptEdge,
		Handle: from,
		Detail: fmt.Sprintf("edge to handle %d which is not registered", to),
	}
}

// OutOfBounds creates an out of bounds error
func OutOfBounds(phase Phase, index, length int) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindOutOfBounds,
		Detail: fmt.Sprintf("index %d out of bounds (length %d)", index, length),
	}
}

// Immutable creates an error for a write to an immutable global
func Immutable(detail string) *Error {
	return &Error{
		Phase:  PhaseRuntime,
		Kind:   KindImmutable,
		Detail: detail,
	}
}

// Closed creates an error for an operation on a closed heap
func Closed(phase Phase) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindClosed,
		Detail: "heap is closed",
	}
}

// Registration creates an object registration error
func Registration(detail string) *Error {
	return &Error{
		Phase:  PhaseRegister,
		Kind:   KindRegistration,
		Detail: detail,
	}
}

// Load creates a module loading error
func Load(detail string, cause error) *Error {
	return &Error{
		Phase:  PhaseLoad,
		Kind:   KindInvalidData,
		Detail: detail,
		Cause:  cause,
	}
}
