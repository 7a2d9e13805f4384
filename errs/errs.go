// Package errs defines the error kinds shared by every tsdist package.
//
// Callers match on kind with errors.Is against the sentinels below and
// recover the offending value with errors.As into *Error.
package errs

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidShape is returned for inputs with an unsupported number of
	// axes, a zero-length axis, or a buffer that does not match its shape.
	ErrInvalidShape = errors.New("tsdist: invalid shape")

	// ErrInvalidParameter is returned for out-of-range or non-finite
	// parameters (window, g, epsilon) and non-finite series values.
	ErrInvalidParameter = errors.New("tsdist: invalid parameter")

	// ErrShapeMismatch is returned when two series disagree in dimensions,
	// or when a series length differs from the one a factory was built for.
	ErrShapeMismatch = errors.New("tsdist: shape mismatch")

	// ErrEmptyCollection marks a collection that holds no series.
	ErrEmptyCollection = errors.New("tsdist: empty collection")
)

// Error carries the offending operation, field and value of a failure.
// Kind is one of the package sentinels.
type Error struct {
	Op    string // operation that failed, e.g. "bounding.New"
	Field string // parameter or axis name
	Value any    // offending value
	Want  any    // expected value, nil when there is none
	Kind  error  // sentinel
}

func (e *Error) Error() string {
	var msg string
	if e.Field == "" {
		msg = fmt.Sprintf("%s: %v (value %v)", e.Op, e.Kind, e.Value)
	} else {
		msg = fmt.Sprintf("%s: %v: %s=%v", e.Op, e.Kind, e.Field, e.Value)
	}
	if e.Want != nil {
		msg += fmt.Sprintf(", want %v", e.Want)
	}
	return msg
}

func (e *Error) Unwrap() error { return e.Kind }

// InvalidShape builds an *Error of kind ErrInvalidShape.
func InvalidShape(op, field string, value any) error {
	return &Error{Op: op, Field: field, Value: value, Kind: ErrInvalidShape}
}

// InvalidParameter builds an *Error of kind ErrInvalidParameter.
func InvalidParameter(op, field string, value any) error {
	return &Error{Op: op, Field: field, Value: value, Kind: ErrInvalidParameter}
}

// ShapeMismatch builds an *Error of kind ErrShapeMismatch. value is the
// offending size and want the size it had to match.
func ShapeMismatch(op, field string, value, want int) error {
	return &Error{Op: op, Field: field, Value: value, Want: want, Kind: ErrShapeMismatch}
}

// EmptyCollection builds an *Error of kind ErrEmptyCollection.
func EmptyCollection(op, field string) error {
	return &Error{Op: op, Field: field, Value: 0, Kind: ErrEmptyCollection}
}
