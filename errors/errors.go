// Package errors provides error handling for mutigen.
//
// This package re-exports github.com/cockroachdb/errors, providing:
//   - Stack traces for debugging
//   - Error wrapping and context
//   - Hints for users
//   - Marking errors with a generator error kind
//
// Usage:
//
//	// Create new error
//	err := errors.New("something went wrong")
//
//	// Wrap with context
//	if err := emit(); err != nil {
//	    return errors.Wrapf(err, "class %s", name)
//	}
//
//	// Classify
//	if errors.Is(err, errors.ErrUnresolvedType) {
//	    // the conversion table has no entry for a type
//	}
//
// For full documentation see: https://pkg.go.dev/github.com/cockroachdb/errors
package errors

import (
	crdb "github.com/cockroachdb/errors"
)

// Core error creation and wrapping
var (
	New          = crdb.New
	Newf         = crdb.Newf
	Wrap         = crdb.Wrap
	Wrapf        = crdb.Wrapf
	WithStack    = crdb.WithStack
	WithMessage  = crdb.WithMessage
	WithMessagef = crdb.WithMessagef
	Join         = crdb.Join
)

// User-facing messages and details
var (
	WithHint    = crdb.WithHint
	WithHintf   = crdb.WithHintf
	WithDetail  = crdb.WithDetail
	WithDetailf = crdb.WithDetailf
)

// Error inspection
var (
	Is             = crdb.Is
	IsAny          = crdb.IsAny
	As             = crdb.As
	Unwrap         = crdb.Unwrap
	UnwrapAll      = crdb.UnwrapAll
	GetAllHints    = crdb.GetAllHints
	GetAllDetails  = crdb.GetAllDetails
	FlattenHints   = crdb.FlattenHints
	FlattenDetails = crdb.FlattenDetails
)

// Marking
var (
	Mark = crdb.Mark
)

// Generator error kinds. Errors produced by the engine are marked with one of
// these so errors.Is classifies them through any amount of wrapping.
var (
	// ErrUnresolvedType: a type has no conversion table entry. Fatal for the class.
	ErrUnresolvedType = New("unresolved type")

	// ErrAmbiguousOverload: two emitted variants share an erased signature. Fatal for the class.
	ErrAmbiguousOverload = New("ambiguous overload")

	// ErrOutputSink: the output handle refused the generated text. Fatal for the class.
	ErrOutputSink = New("output sink failure")

	// ErrMalformedDoc: a documentation token could not be rendered. Reported as a warning.
	ErrMalformedDoc = New("malformed doc")

	// ErrInvalidModel: the class model violates a structural invariant
	ErrInvalidModel = New("invalid model")

	// ErrIncompatibleGenerator: the batch requires a different generator version
	ErrIncompatibleGenerator = New("incompatible generator version")
)

// UnresolvedTypef creates an error marked as ErrUnresolvedType
func UnresolvedTypef(format string, args ...interface{}) error {
	return Mark(Newf(format, args...), ErrUnresolvedType)
}

// AmbiguousOverloadf creates an error marked as ErrAmbiguousOverload
func AmbiguousOverloadf(format string, args ...interface{}) error {
	return Mark(Newf(format, args...), ErrAmbiguousOverload)
}

// MalformedDocf creates an error marked as ErrMalformedDoc
func MalformedDocf(format string, args ...interface{}) error {
	return Mark(Newf(format, args...), ErrMalformedDoc)
}

// InvalidModelf creates an error marked as ErrInvalidModel
func InvalidModelf(format string, args ...interface{}) error {
	return Mark(Newf(format, args...), ErrInvalidModel)
}

// WrapOutputSink marks an I/O failure of an output handle as ErrOutputSink
func WrapOutputSink(err error, unit string) error {
	if err == nil {
		return nil
	}
	return Mark(Wrapf(err, "output unit %s", unit), ErrOutputSink)
}

// IsUnresolvedType checks if an error is or wraps ErrUnresolvedType
func IsUnresolvedType(err error) bool {
	return err != nil && Is(err, ErrUnresolvedType)
}

// IsAmbiguousOverload checks if an error is or wraps ErrAmbiguousOverload
func IsAmbiguousOverload(err error) bool {
	return err != nil && Is(err, ErrAmbiguousOverload)
}

// IsOutputSink checks if an error is or wraps ErrOutputSink
func IsOutputSink(err error) bool {
	return err != nil && Is(err, ErrOutputSink)
}

// Kind returns a short label for the generator error kind of err, used in reports
func Kind(err error) string {
	switch {
	case err == nil:
		return ""
	case Is(err, ErrUnresolvedType):
		return "unresolved_type"
	case Is(err, ErrAmbiguousOverload):
		return "ambiguous_overload"
	case Is(err, ErrOutputSink):
		return "output_sink"
	case Is(err, ErrMalformedDoc):
		return "malformed_doc"
	case Is(err, ErrInvalidModel):
		return "invalid_model"
	case Is(err, ErrIncompatibleGenerator):
		return "incompatible_generator"
	default:
		return "unknown"
	}
}
