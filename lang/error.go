package lang

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/sergev/vispel/parser"
)

// Error kinds (sentinel values). Match them with errors.Is.
var (
	ErrUndeclared          = NewError("undeclared variable")
	ErrRedeclared          = NewError("variable already declared")
	ErrReturnOutside       = NewError("return outside function")
	ErrTypeMismatch        = NewError("type mismatch")
	ErrNotCallable         = NewError("not callable")
	ErrArity               = NewError("arity mismatch")
	ErrIndex               = NewError("index out of range")
	ErrAssertion           = NewError("assertion failed")
	ErrDivisionByZero      = NewError("division by zero")
	ErrStackOverflow       = NewError("call stack exhausted")
	ErrDuplicateNative     = NewError("native already registered")
	ErrInvalidNativeArity  = NewError("invalid native arity")
	ErrInvalidHopCount     = NewError("hop count exceeds scope depth")
	ErrUnsupportedOperator = NewError("unsupported operator")
)

// Error is a message with an optional kind, wrapped cause and structured
// logging attributes. It implements both error and slog.LogValuer.
type Error struct {
	msg   string
	kind  *Error
	err   error
	attrs []slog.Attr
}

// NewError creates a new Error with a message.
func NewError(msg string) *Error {
	return &Error{msg: msg}
}

// Errorf returns an Error of kind e carrying a formatted message in place of
// the kind's own text.
func (e *Error) Errorf(format string, args ...any) *Error {
	return &Error{
		msg:   fmt.Sprintf(format, args...),
		kind:  e.root(),
		attrs: e.attrs,
	}
}

func (e *Error) root() *Error {
	if e.kind != nil {
		return e.kind
	}
	return e
}

// Error implements the error interface.
func (e *Error) Error() string {
	part := make([]string, 0, 2)
	if e.msg != "" {
		part = append(part, e.msg)
	}
	if e.err != nil {
		part = append(part, e.err.Error())
	}
	return strings.Join(part, ": ")
}

// Unwrap implements error unwrapping for errors.Is/As.
func (e *Error) Unwrap() error { return e.err }

// Is reports whether target is the kind of e.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && e.kind != nil && t == e.kind
}

// LogValue implements slog.LogValuer for rich structured logging.
func (e *Error) LogValue() slog.Value {
	attrs := make([]slog.Attr, 0, len(e.attrs)+3)
	if e.msg != "" {
		attrs = append(attrs, slog.String("error", e.msg))
	}
	if e.kind != nil {
		attrs = append(attrs, slog.String("kind", e.kind.msg))
	}
	if e.err != nil {
		attrs = append(attrs, slog.String("cause", e.err.Error()))
	}
	return slog.GroupValue(append(attrs, e.attrs...)...)
}

// Wrap creates a new Error wrapping another error.
func (e *Error) Wrap(err error) *Error {
	return &Error{
		msg:   e.msg,
		kind:  e.kind,
		err:   err,
		attrs: e.attrs,
	}
}

// With adds attributes to the error for structured logging.
func (e *Error) With(attrs ...slog.Attr) *Error {
	newAttrs := make([]slog.Attr, len(e.attrs)+len(attrs))
	copy(newAttrs, e.attrs)
	copy(newAttrs[len(e.attrs):], attrs)
	return &Error{
		msg:   e.msg,
		kind:  e.kind,
		err:   e.err,
		attrs: newAttrs,
	}
}

// ResolveError is a static scoping error found before evaluation.
type ResolveError struct {
	Pos parser.Position
	Err *Error
}

func (e *ResolveError) Error() string { return e.Err.Error() }
func (e *ResolveError) Unwrap() error { return e.Err }

// LogValue implements slog.LogValuer.
func (e *ResolveError) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("stage", "resolve"),
		slog.Int("line", e.Pos.Line),
		slog.Int("column", e.Pos.Column),
		slog.Any("detail", e.Err),
	)
}

// RuntimeError aborts the top-level statement being evaluated.
type RuntimeError struct {
	Pos parser.Position
	Err *Error
}

func (e *RuntimeError) Error() string { return e.Err.Error() }
func (e *RuntimeError) Unwrap() error { return e.Err }

// LogValue implements slog.LogValuer.
func (e *RuntimeError) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("stage", "runtime"),
		slog.Int("line", e.Pos.Line),
		slog.Int("column", e.Pos.Column),
		slog.Any("detail", e.Err),
	)
}

// Runtimef builds a RuntimeError of the given kind at pos.
func Runtimef(pos parser.Position, kind *Error, format string, args ...any) *RuntimeError {
	return &RuntimeError{Pos: pos, Err: kind.Errorf(format, args...)}
}

func resolvef(pos parser.Position, kind *Error, format string, args ...any) *ResolveError {
	return &ResolveError{Pos: pos, Err: kind.Errorf(format, args...)}
}

// asRuntime lifts a plain error returned by a native into a RuntimeError.
func asRuntime(pos parser.Position, err error) error {
	if err == nil {
		return nil
	}
	var rerr *RuntimeError
	if errors.As(err, &rerr) {
		return err
	}
	var lerr *Error
	if errors.As(err, &lerr) {
		return &RuntimeError{Pos: pos, Err: lerr}
	}
	return &RuntimeError{Pos: pos, Err: NewError("native call failed").Wrap(err)}
}
