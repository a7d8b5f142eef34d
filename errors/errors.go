// Package errors provides error handling for the Visual Genome client.
//
// It re-exports github.com/cockroachdb/errors for stack traces, wrapping and
// hints, and defines the sentinels callers match with Is:
//
//	g, err := client.GetSceneGraphOfImage(ctx, 1)
//	switch {
//	case errors.IsNotFoundError(err):
//	    // the service has no such image
//	case errors.IsTransportError(err):
//	    // network trouble, safe to try again later
//	case errors.IsDanglingReferenceError(err):
//	    // the payload references an object it never declared
//	}
//
// For full documentation see: https://pkg.go.dev/github.com/cockroachdb/errors
package errors

import (
	"strings"

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
	Mark         = crdb.Mark
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

// Sentinel errors. Match them with Is; the constructors below mark
// their results so Is keeps working after further wrapping.
var (
	// ErrNotFound means the service itself reported that the resource does not exist.
	ErrNotFound = New("not found")

	// ErrTransport means the request never produced a usable response:
	// connection failures, timeouts, 5xx responses and non-JSON bodies.
	ErrTransport = New("transport failure")

	// ErrMissingField means a required JSON key is absent.
	ErrMissingField = New("missing field")

	// ErrFieldType means a JSON key is present but holds the wrong kind of value.
	ErrFieldType = New("unexpected field type")

	// ErrDanglingReference means a record points at an id that was never declared.
	ErrDanglingReference = New("dangling reference")

	// ErrShapeAmbiguity means a payload matches none of the accepted key conventions.
	ErrShapeAmbiguity = New("unrecognized payload shape")
)

// IsNotFoundError checks if an error is or wraps ErrNotFound
func IsNotFoundError(err error) bool {
	return err != nil && Is(err, ErrNotFound)
}

// IsTransportError checks if an error is or wraps ErrTransport
func IsTransportError(err error) bool {
	return err != nil && Is(err, ErrTransport)
}

// IsMissingFieldError checks if an error is or wraps ErrMissingField
func IsMissingFieldError(err error) bool {
	return err != nil && Is(err, ErrMissingField)
}

// IsFieldTypeError checks if an error is or wraps ErrFieldType
func IsFieldTypeError(err error) bool {
	return err != nil && Is(err, ErrFieldType)
}

// IsDanglingReferenceError checks if an error is or wraps ErrDanglingReference
func IsDanglingReferenceError(err error) bool {
	return err != nil && Is(err, ErrDanglingReference)
}

// IsShapeAmbiguityError checks if an error is or wraps ErrShapeAmbiguity
func IsShapeAmbiguityError(err error) bool {
	return err != nil && Is(err, ErrShapeAmbiguity)
}

// NewNotFoundError creates a not-found error with a formatted message
func NewNotFoundError(format string, args ...interface{}) error {
	return Mark(Newf(format, args...), ErrNotFound)
}

// WrapTransport marks err as a transport failure with context
func WrapTransport(err error, context string) error {
	return Mark(Wrap(err, context), ErrTransport)
}

// NewTransportError creates a transport failure with a formatted message
func NewTransportError(format string, args ...interface{}) error {
	return Mark(Newf(format, args...), ErrTransport)
}

// NewMissingFieldError reports that entity lacks the required key
func NewMissingFieldError(entity, key string) error {
	err := Mark(Newf("%s: missing field %q", entity, key), ErrMissingField)
	return WithHintf(err, "the %s payload must carry a %q key", entity, key)
}

// NewFieldTypeError reports that entity's key holds the wrong JSON type
func NewFieldTypeError(entity, key, want, got string) error {
	return Mark(Newf("%s: field %q must be %s, got %s", entity, key, want, got), ErrFieldType)
}

// NewDanglingReferenceError reports a reference of the given kind to an unknown id
func NewDanglingReferenceError(kind string, id int64) error {
	err := Mark(Newf("%s references unknown id %d", kind, id), ErrDanglingReference)
	return WithHint(err, "referenced records must be declared in the same payload")
}

// NewShapeAmbiguityError reports that entity carries none of the accepted keys
func NewShapeAmbiguityError(entity string, accepted ...string) error {
	err := Mark(Newf("%s: payload has none of the keys %s", entity, strings.Join(accepted, ", ")), ErrShapeAmbiguity)
	return WithHintf(err, "expected exactly one of: %s", strings.Join(accepted, ", "))
}
