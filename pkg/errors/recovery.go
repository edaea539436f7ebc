// Panic recovery utilities. A model capability is arbitrary user code, so
// the estimator Fit boundaries convert panics into structured errors
// instead of taking the process down.

package errors

import (
	"fmt"
	"runtime/debug"
)

// PanicError is an error created from a recovered panic. It carries the
// original panic value and the stack trace at the time of the panic.
type PanicError struct {
	PanicValue interface{}
	StackTrace string
	Operation  string
}

// Error implements the error interface.
func (e *PanicError) Error() string {
	return fmt.Sprintf("panic in %s: %v", e.Operation, e.PanicValue)
}

// String includes the captured stack trace.
func (e *PanicError) String() string {
	return fmt.Sprintf("panic in %s: %v\nStack trace:\n%s", e.Operation, e.PanicValue, e.StackTrace)
}

// NewPanicError creates a PanicError for the given operation and panic value.
func NewPanicError(operation string, panicValue interface{}) *PanicError {
	return &PanicError{
		PanicValue: panicValue,
		StackTrace: string(debug.Stack()),
		Operation:  operation,
	}
}

// Recover converts a panic into an error assigned to *errPtr. Use with
// defer at an exported boundary:
//
//	func (m *PLR) Fit(ctx context.Context, data *Dataset) (err error) {
//	    defer errors.Recover(&err, "PLR.Fit")
//	    ...
//	}
func Recover(errPtr *error, operation string) {
	if r := recover(); r != nil {
		panicErr := NewPanicError(operation, r)
		if *errPtr != nil {
			*errPtr = Wrapf(*errPtr, "additional panic occurred: %v", panicErr)
		} else {
			*errPtr = WithStack(panicErr)
		}
	}
}
