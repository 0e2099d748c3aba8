package diagnostic

import (
	"errors"
	"fmt"

	"derive-generator/internal/common"
)

// ErrorKind classifies generation failures.
type ErrorKind int

const (
	// KindSyntax is a malformed derive directive.
	KindSyntax ErrorKind = iota + 1
	// KindUnsupportedCapability is an unknown capability identifier.
	KindUnsupportedCapability
	// KindInvalidDirective is a layout directive that is present but malformed.
	KindInvalidDirective
	// KindUnsupportedShape is a type shape the generator cannot handle.
	KindUnsupportedShape
)

// Sentinel errors, one per kind. Every *Error matches its kind's sentinel
// with errors.Is.
var (
	ErrSyntax                = errors.New("syntax error")
	ErrUnsupportedCapability = errors.New("unsupported capability")
	ErrInvalidDirective      = errors.New("invalid directive")
	ErrUnsupportedShape      = errors.New("unsupported shape")
)

// String returns the diagnostic code of the kind.
func (k ErrorKind) String() string {
	switch k {
	case KindSyntax:
		return "syntax"
	case KindUnsupportedCapability:
		return "unsupported-capability"
	case KindInvalidDirective:
		return "invalid-directive"
	case KindUnsupportedShape:
		return "unsupported-shape"
	default:
		return common.UnknownStr
	}
}

func (k ErrorKind) sentinel() error {
	switch k {
	case KindSyntax:
		return ErrSyntax
	case KindUnsupportedCapability:
		return ErrUnsupportedCapability
	case KindInvalidDirective:
		return ErrInvalidDirective
	case KindUnsupportedShape:
		return ErrUnsupportedShape
	default:
		return nil
	}
}

// Error is a structured generation failure.
type Error struct {
	Kind    ErrorKind
	Span    Span
	Message string
}

// Errorf creates an *Error of the given kind.
func Errorf(kind ErrorKind, span Span, format string, args ...any) *Error {
	return &Error{
		Kind:    kind,
		Span:    span,
		Message: fmt.Sprintf(format, args...),
	}
}

// Syntax creates a KindSyntax error.
func Syntax(span Span, format string, args ...any) *Error {
	return Errorf(KindSyntax, span, format, args...)
}

// UnsupportedCapability creates a KindUnsupportedCapability error for name.
func UnsupportedCapability(span Span, name string) *Error {
	return Errorf(KindUnsupportedCapability, span, "%s isn't supported", name)
}

// InvalidDirective creates a KindInvalidDirective error.
func InvalidDirective(span Span, format string, args ...any) *Error {
	return Errorf(KindInvalidDirective, span, format, args...)
}

// UnsupportedShape creates a KindUnsupportedShape error.
func UnsupportedShape(span Span, format string, args ...any) *Error {
	return Errorf(KindUnsupportedShape, span, format, args...)
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Span.IsZero() {
		return fmt.Sprintf("%s: %s", e.Kind, e.Message)
	}

	return fmt.Sprintf("%s: %s: %s", e.Span, e.Kind, e.Message)
}

// Is matches the sentinel of the error's kind.
func (e *Error) Is(target error) bool {
	s := e.Kind.sentinel()

	return s != nil && s == target
}

// Diagnostic converts the error into an error-severity Diagnostic for typeName.
func (e *Error) Diagnostic(typeName string) Diagnostic {
	return Diagnostic{
		Severity: DiagnosticError,
		Code:     e.Kind.String(),
		Message:  e.Message,
		TypeName: typeName,
		Span:     e.Span,
	}
}

// AsError extracts an *Error from err's chain.
func AsError(err error) (*Error, bool) {
	var de *Error
	if errors.As(err, &de) {
		return de, true
	}

	return nil, false
}
