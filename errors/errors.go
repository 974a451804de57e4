package errors

import (
	stderrors "errors"
	"fmt"
	"strings"
)

// Phase indicates where in processing the error occurred
type Phase string

const (
	PhaseSchema  Phase = "schema"  // function and parameter definition
	PhaseEncode  Phase = "encode"  // Go to ABAP
	PhaseDecode  Phase = "decode"  // ABAP to Go
	PhaseInvoke  Phase = "invoke"  // function call
	PhaseLogon   Phase = "logon"   // connection open
	PhaseConfig  Phase = "config"  // logon parameter loading
	PhaseGateway Phase = "gateway" // collaborator side
)

// Kind categorizes the error
type Kind string

const (
	KindTypeMismatch   Kind = "type_mismatch"
	KindOverflow       Kind = "overflow"
	KindOutOfBounds    Kind = "out_of_bounds"
	KindInvalidData    Kind = "invalid_data"
	KindInvalidInput   Kind = "invalid_input"
	KindUnsupported    Kind = "unsupported"
	KindFieldUnknown   Kind = "field_unknown"
	KindDuplicateName  Kind = "duplicate_name"
	KindNotFound       Kind = "not_found"
	KindNotInitialized Kind = "not_initialized"
	KindIllegalState   Kind = "illegal_state"
)

// Error is the structured error type used by the codec and the parameter model
type Error struct {
	Value    any
	Cause    error
	Phase    Phase
	Kind     Kind
	GoType   string
	AbapType string
	Detail   string
	Path     []string
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

	if e.GoType != "" || e.AbapType != "" {
		b.WriteString(": ")
		switch {
		case e.GoType != "" && e.AbapType != "":
			b.WriteString("Go type ")
			b.WriteString(e.GoType)
			b.WriteString(", ABAP type ")
			b.WriteString(e.AbapType)
		case e.GoType != "":
			b.WriteString("Go type ")
			b.WriteString(e.GoType)
		default:
			b.WriteString("ABAP type ")
			b.WriteString(e.AbapType)
		}
	}

	if e.Detail != "" {
		if e.GoType != "" || e.AbapType != "" {
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

// Is reports whether target matches this error.
// An empty Phase on the target matches any phase.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	if t.Phase != "" && t.Phase != e.Phase {
		return false
	}
	return e.Kind == t.Kind
}

// Sentinels for errors.Is checks that ignore the phase
var (
	ErrTypeMismatch  = &Error{Kind: KindTypeMismatch}
	ErrOverflow      = &Error{Kind: KindOverflow}
	ErrFieldUnknown  = &Error{Kind: KindFieldUnknown}
	ErrDuplicateName = &Error{Kind: KindDuplicateName}
	ErrUnsupported   = &Error{Kind: KindUnsupported}
	ErrOutOfBounds   = &Error{Kind: KindOutOfBounds}
)

// IsTypeMismatch reports whether err is a value coercion failure.
// Range violations count as type mismatches.
func IsTypeMismatch(err error) bool {
	return stderrors.Is(err, ErrTypeMismatch) || stderrors.Is(err, ErrOverflow)
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

// GoType sets the Go type name
func (b *Builder) GoType(t string) *Builder {
	b.err.GoType = t
	return b
}

// AbapType sets the ABAP type name
func (b *Builder) AbapType(t string) *Builder {
	b.err.AbapType = t
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

// TypeMismatch creates a type mismatch error
func TypeMismatch(phase Phase, path []string, goType, abapType string) *Error {
	return &Error{
		Phase:    phase,
		Kind:     KindTypeMismatch,
		Path:     path,
		GoType:   goType,
		AbapType: abapType,
	}
}

// Overflow creates an overflow error
func Overflow(phase Phase, path []string, value any, targetType string) *Error {
	return &Error{
		Phase:    phase,
		Kind:     KindOverflow,
		Path:     path,
		AbapType: targetType,
		Detail:   fmt.Sprintf("value %v out of range for %s", value, targetType),
		Value:    value,
	}
}

// FieldUnknown creates an unknown parameter or field error
func FieldUnknown(phase Phase, path []string, fieldName string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindFieldUnknown,
		Path:   path,
		Detail: fmt.Sprintf("unknown parameter %q", fieldName),
	}
}

// DuplicateName creates a duplicate parameter name error
func DuplicateName(path []string, name string) *Error {
	return &Error{
		Phase:  PhaseSchema,
		Kind:   KindDuplicateName,
		Path:   path,
		Detail: fmt.Sprintf("parameter %q already defined", name),
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

// OutOfBounds creates an out of bounds error
func OutOfBounds(phase Phase, path []string, index, length int) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindOutOfBounds,
		Path:   path,
		Detail: fmt.Sprintf("index %d out of bounds (length %d)", index, length),
		Value:  index,
	}
}

// InvalidData creates an invalid data error
func InvalidData(phase Phase, path []string, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidData,
		Path:   path,
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

// NotInitialized creates a not-initialized error
func NotInitialized(phase Phase, component string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindNotInitialized,
		Detail: fmt.Sprintf("%s not initialized", component),
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

// IllegalState creates an illegal state error
func IllegalState(phase Phase, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindIllegalState,
		Detail: detail,
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
