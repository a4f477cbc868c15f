package parser

import (
	"errors"
	"fmt"
)

// Error represents a lexical or syntax error anchored at a source position.
type Error struct {
	Pos        Position
	Err        error
	Incomplete bool
}

func (e *Error) Error() string {
	if e == nil || e.Err == nil {
		return ""
	}
	return fmt.Sprintf("[%d:%d] %s", e.Pos.Line, e.Pos.Column, e.Err)
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

func newError(pos Position, format string, args ...any) error {
	return &Error{Pos: pos, Err: fmt.Errorf(format, args...)}
}

func newIncompleteError(pos Position, format string, args ...any) error {
	return &Error{
		Pos:        pos,
		Err:        fmt.Errorf(format, args...),
		Incomplete: true,
	}
}

// IsIncomplete reports whether the supplied error represents incomplete input.
func IsIncomplete(err error) bool {
	var perr *Error
	if errors.As(err, &perr) {
		return perr.Incomplete
	}
	return false
}

// Diagnostic is a non-fatal lexical report. Scanning continues after it.
type Diagnostic struct {
	Pos        Position
	Message    string
	Incomplete bool
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("[%d:%d] %s", d.Pos.Line, d.Pos.Column, d.Message)
}

// Err converts the diagnostic into an *Error so it can travel with parse errors.
func (d Diagnostic) Err() error {
	return &Error{Pos: d.Pos, Err: errors.New(d.Message), Incomplete: d.Incomplete}
}
