// Package errors provides structured error types for the wasm-gc library.
//
// Errors are categorized by Phase (where the error occurred) and Kind (error
// category). The Error type carries the offending object handle and a cause
// chain where one exists.
//
// Use the Builder for structured error construction:
//
//	err := errors.New(errors.PhasePin, errors.KindInvalidHandle).
//		Handle(uint32(h)).
//		Detail("no registered object").
//		Build()
//
// Or use convenience constructors for common patterns:
//
//	err := errors.PinUnderflow(uint32(h))
//	err := errors.Closed(errors.PhaseRegister)
//
// Caller errors (pin underflow, invalid handles) are returned as ordinary
// error values. Collector invariant violations (an unknown kind tag, an edge
// to an unregistered object) are fatal and raised as panics carrying an
// *Error, after which the heap must not be reused.
//
// All errors implement the standard error interface and support errors.Is/As.
package errors
