package errors

import (
	"fmt"
	"strings"
)

// Phase indicates where in processing the error occurred
type Phase string

const (
	PhaseBind     Phase = "bind"     // type classification and operation binding
	PhaseAccess   Phase = "access"   // typed access to a container
	PhaseRegister Phase = "register" // custom operation registration
	PhaseBench    Phase = "bench"    // benchmark configuration and runs
	PhaseStore    Phase = "store"    // benchmark history persistence
	PhaseReport   Phase = "report"   // report rendering
	PhaseTable    Phase = "table"    // handle table operations
)

// Kind categorizes the error
type Kind string

const (
	KindTypeMismatch   Kind = "type_mismatch"
	KindEmpty          Kind = "empty"
	KindUnsupported    Kind = "unsupported"
	KindRegistration   Kind = "registration"
	KindInvalidInput   Kind = "invalid_input"
	KindNotFound       Kind = "not_found"
	KindClosed         Kind = "closed"
	KindNotInitialized Kind = "not_initialized"
)

// Error is the structured error type used throughout anybox
type Error struct {
	Value  any
	Cause  error
	Phase  Phase
	Kind   Kind
	Have   string
	Want   string
	Detail string
	Path   []string
}

// Error implements the error interface
func (e *Error) Error() string {
	var b strings.Builder

	b.WriteByte('[')
	b.WriteString(string(e.Phase))
	b.WriteString("] ")
	b.WriteString(string(e.Kind))

	if len(e.Path) > 0 {
		b.WriteString(" at ")
		b.WriteString(strings.Join(e.Path, "."))
	}

	if e.Have != "" || e.Want != "" {
		b.WriteString(": ")
		if e.Have != "" && e.Want != "" {
			b.WriteString("holds ")
			b.WriteString(e.Have)
			b.WriteString(", want ")
			b.WriteString(e.Want)
		} else if e.Have != "" {
			b.WriteString("holds ")
			b.WriteString(e.Have)
		} else {
			b.WriteString("want ")
			b.WriteString(e.Want)
		}
	}

	if e.Detail != "" {
		if e.Have != "" || e.Want != "" {
			b.WriteString(" - ")
		} else {
			b.WriteString(": ")
		}
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

// Path sets the field path
func (b *Builder) Path(path ...string) *Builder {
	b.err.Path = path
	return b
}

// Have sets the name of the type actually held
func (b *Builder) Have(t string) *Builder {
	b.err.Have = t
	return b
}

// Want sets the name of the requested type
func (b *Builder) Want(t string) *Builder {
	b.err.Want = t
	return b
}

// Value sets the offending value
func (b *Builder) Value(v any) *Builder {
	b.err.Value = v
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

// TypeMismatch creates a type mismatch error
func TypeMismatch(phase Phase, have, want string) *Error {
	return &Error{
		Phase: phase,
		Kind:  KindTypeMismatch,
		Have:  have,
		Want:  want,
	}
}

// Empty creates an error for access to an empty container
func Empty(phase Phase, want string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindEmpty,
		Want:   want,
		Detail: "container is empty",
	}
}

// Unsupported creates an unsupported operation error
func Unsupported(phase Phase, what string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindUnsupported,
		Detail: what,
	}
}

// Registration creates a registration error
func Registration(phase Phase, typeName string, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindRegistration,
		Have:   typeName,
		Detail: detail,
	}
}

// InvalidInput creates an invalid input error
func InvalidInput(phase Phase, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidInput,
		Detail: detail,
	}
}

// NotFound creates a not-found error
func NotFound(phase Phase, what, name string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindNotFound,
		Detail: fmt.Sprintf("%s %q not found", what, name),
	}
}

// Closed creates an error for operations on a closed component
func Closed(phase Phase, component string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindClosed,
		Detail: fmt.Sprintf("%s closed", component),
	}
}

// NotInitialized creates a not-initialized error
func NotInitialized(phase Phase, component string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindNotInitialized,
		Detail: fmt.Sprintf("%s not initialized", component),
	}
}

// Wrap wraps an existing error with additional context
func Wrap(phase Phase, kind Kind, cause error, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   kind,
		Detail: detail,
		Cause:  cause,
	}
}
