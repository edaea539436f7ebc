// Package errors provides the structured error taxonomy for godml.
//
// Every error that leaves the library is one of the typed errors below,
// created through a constructor that attaches a stack trace via
// cockroachdb/errors. The types implement zerolog's ObjectMarshaler so
// callers using structured logging get the error fields for free.
package errors

import (
	"fmt"

	"github.com/cockroachdb/errors"
	"github.com/rs/zerolog"
)

// ConfigurationError reports an invalid estimator configuration: a bad
// fold/repetition count, an unrecognized score scheme, or a malformed
// learner map. It is always raised before any model is trained.
type ConfigurationError struct {
	Param  string
	Reason string
	Value  interface{}
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("godml: invalid configuration for '%s': %s (got: %v)", e.Param, e.Reason, e.Value)
}

// MarshalZerologObject adds the configuration context to a zerolog event.
func (e *ConfigurationError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("param", e.Param).
		Str("reason", e.Reason).
		Interface("value", e.Value).
		Str("type", "ConfigurationError")
}

// NewConfigurationError creates a ConfigurationError with a stack trace.
func NewConfigurationError(param, reason string, value interface{}) error {
	err := &ConfigurationError{Param: param, Reason: reason, Value: value}
	return errors.WithStack(err)
}

// DataShapeError reports a Dataset invariant violation: mismatched vector
// lengths or a wrong dimensionality, detected at the estimator entry point.
type DataShapeError struct {
	Op       string
	Expected int
	Got      int
	Axis     int // 0 for rows, 1 for columns/features
}

func (e *DataShapeError) Error() string {
	axisName := "features"
	if e.Axis == 0 {
		axisName = "rows"
	}
	return fmt.Sprintf("godml: %s: shape mismatch on axis %d (%s). Expected %d, got %d", e.Op, e.Axis, axisName, e.Expected, e.Got)
}

// MarshalZerologObject adds the shape context to a zerolog event.
func (e *DataShapeError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("operation", e.Op).
		Int("expected", e.Expected).
		Int("got", e.Got).
		Int("axis", e.Axis).
		Str("type", "DataShapeError")
}

// NewDataShapeError creates a DataShapeError with a stack trace.
func NewDataShapeError(op string, expected, got, axis int) error {
	err := &DataShapeError{Op: op, Expected: expected, Got: got, Axis: axis}
	return errors.WithStack(err)
}

// NuisanceFitError wraps an error raised by the underlying model capability
// while fitting or predicting one nuisance function on one fold. The fold,
// repetition and nuisance name are preserved so a failing fold can be
// located; the fit is never retried.
type NuisanceFitError struct {
	Nuisance   string
	Repetition int
	Fold       int
	Err        error
}

func (e *NuisanceFitError) Error() string {
	return fmt.Sprintf("godml: nuisance '%s' failed on repetition %d, fold %d: %v", e.Nuisance, e.Repetition, e.Fold, e.Err)
}

func (e *NuisanceFitError) Unwrap() error {
	return e.Err
}

// MarshalZerologObject adds the fold context to a zerolog event.
func (e *NuisanceFitError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("nuisance", e.Nuisance).
		Int("repetition", e.Repetition).
		Int("fold", e.Fold).
		AnErr("cause", e.Err).
		Str("type", "NuisanceFitError")
}

// NewNuisanceFitError creates a NuisanceFitError with a stack trace.
func NewNuisanceFitError(nuisance string, repetition, fold int, err error) error {
	fitErr := &NuisanceFitError{Nuisance: nuisance, Repetition: repetition, Fold: fold, Err: err}
	return errors.WithStack(fitErr)
}

// DegenerateMomentError reports a degenerate moment condition: the
// denominator mean(psi_a) of a fold or pool is zero or numerically
// negligible, so the structural parameter is not identified there.
// Raising this error instead of dividing keeps NaN/Inf out of results.
type DegenerateMomentError struct {
	Procedure   string
	Repetition  int
	Fold        int // -1 for a pooled (dml2) moment
	Denominator float64
}

func (e *DegenerateMomentError) Error() string {
	if e.Fold < 0 {
		return fmt.Sprintf("godml: %s: degenerate moment condition on repetition %d: mean(psi_a) = %g", e.Procedure, e.Repetition, e.Denominator)
	}
	return fmt.Sprintf("godml: %s: degenerate moment condition on repetition %d, fold %d: mean(psi_a) = %g", e.Procedure, e.Repetition, e.Fold, e.Denominator)
}

// MarshalZerologObject adds the moment context to a zerolog event.
func (e *DegenerateMomentError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("procedure", e.Procedure).
		Int("repetition", e.Repetition).
		Int("fold", e.Fold).
		Float64("denominator", e.Denominator).
		Str("type", "DegenerateMomentError")
}

// NewDegenerateMomentError creates a DegenerateMomentError with a stack trace.
func NewDegenerateMomentError(procedure string, repetition, fold int, denominator float64) error {
	err := &DegenerateMomentError{Procedure: procedure, Repetition: repetition, Fold: fold, Denominator: denominator}
	return errors.WithStack(err)
}

// NotFittedError is returned when results are requested from an estimator
// whose Fit has not completed.
type NotFittedError struct {
	ModelName string
	Method    string
}

func (e *NotFittedError) Error() string {
	return fmt.Sprintf("godml: %s: this estimator is not fitted yet. Call Fit() before using %s()", e.ModelName, e.Method)
}

// MarshalZerologObject adds the estimator context to a zerolog event.
func (e *NotFittedError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("model_name", e.ModelName).
		Str("method", e.Method).
		Str("type", "NotFittedError")
}

// NewNotFittedError creates a NotFittedError with a stack trace.
func NewNotFittedError(modelName, method string) error {
	err := &NotFittedError{ModelName: modelName, Method: method}
	return errors.WithStack(err)
}

// ValueError reports an argument whose value is unusable for an operation.
type ValueError struct {
	Op      string
	Message string
}

func (e *ValueError) Error() string {
	return fmt.Sprintf("godml: %s: %s", e.Op, e.Message)
}

// NewValueError creates a ValueError with a stack trace.
func NewValueError(op, message string) error {
	err := &ValueError{Op: op, Message: message}
	return errors.WithStack(err)
}

// ===========================================================================
//
//	cockroachdb/errors wrappers
//
// ===========================================================================

// Is reports whether err matches target.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target.
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}

// Wrap wraps an error with a message.
func Wrap(err error, message string) error {
	return errors.Wrap(err, message)
}

// Wrapf wraps an error with a formatted message.
func Wrapf(err error, format string, args ...interface{}) error {
	return errors.Wrapf(err, format, args...)
}

// New creates a new error with a stack trace.
func New(message string) error {
	return errors.New(message)
}

// Newf creates a new formatted error with a stack trace.
func Newf(format string, args ...interface{}) error {
	return errors.Newf(format, args...)
}

// WithStack annotates err with a stack trace.
func WithStack(err error) error {
	return errors.WithStack(err)
}

// ===========================================================================
//
//	common error variables
//
// ===========================================================================

var (
	// ErrEmptyData is returned when an empty matrix or vector is passed.
	ErrEmptyData = New("empty data")

	// ErrSingularMatrix is returned when a linear system cannot be solved.
	ErrSingularMatrix = New("singular matrix")
)
