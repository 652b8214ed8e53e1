package objects

import (
	wasmgc "github.com/wippyai/wasm-gc"
	"github.com/wippyai/wasm-gc/gc"
)

// ExceptionType is a leaf object describing one exception tag. It holds no
// outgoing references.
type ExceptionType struct {
	self wasmgc.Handle
	tag  string
}

// NewExceptionType creates and registers an exception type.
func NewExceptionType(heap *gc.Heap, tag string) (*ExceptionType, error) {
	e := &ExceptionType{tag: tag}
	handle, err := heap.Register(e)
	if err != nil {
		return nil, err
	}
	e.self = handle
	return e, nil
}

// Handle returns the exception type's registry handle.
func (e *ExceptionType) Handle() wasmgc.Handle { return e.self }

// Tag returns the exception tag name.
func (e *ExceptionType) Tag() string { return e.tag }

func (e *ExceptionType) Kind() wasmgc.Kind { return wasmgc.KindExceptionType }

func (e *ExceptionType) EachRef(visit func(wasmgc.Handle)) {}

func (e *ExceptionType) Finalize() {}
