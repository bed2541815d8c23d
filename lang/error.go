package lang

import (
	"errors"
	"log/slog"
	"strconv"
	"strings"
)

// Predefined errors (sentinel values). ErrEndOfInput is an expected
// boundary condition, not a failure: the parse driver loop terminates on
// it. The remaining sentinels form the closed evaluation error taxonomy.
var (
	ErrEndOfInput      = NewError("end of input")
	ErrUnknownVariable = NewError("unknown variable")
	ErrUnknownFunction = NewError("unknown function")
	ErrInvalidCast     = NewError("invalid cast")
	ErrArgumentCount   = NewError("invalid argument count")
	ErrArgumentName    = NewError("invalid argument name")
	ErrArgumentValue   = NewError("invalid argument value")
	ErrShadowing       = NewError("shadowed binding")
	ErrRecursionLimit  = NewError("recursion limit exceeded")
	ErrHost            = NewError("host function failed")
)

// Error represents an evaluation error with optional structured logging
// attributes. It implements both error and slog.LogValuer.
type Error struct {
	msg   string
	err   error       // Wrapped error (for errors.Unwrap)
	attrs []slog.Attr // Attributes for structured logging
}

// NewError creates a new Error with a message.
func NewError(msg string) *Error {
	return &Error{msg: msg}
}

// WrapError wraps a standard error into an Error. If err already is an
// *Error it is returned unchanged.
func WrapError(err error) *Error {
	ee := &Error{}
	if errors.As(err, &ee) {
		return ee
	}

	return &Error{err: err}
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

// Is treats every Error derived from a sentinel via Wrap or With as
// matching that sentinel, so callers can test errors.Is(err, ErrShadowing)
// without caring about attached attributes.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)

	return ok && e.msg == t.msg
}

// LogValue implements slog.LogValuer for structured logging.
func (e *Error) LogValue() slog.Value {
	attrs := make([]slog.Attr, 0, len(e.attrs)+2)

	if e.msg != "" {
		attrs = append(attrs, slog.String("error", e.msg))
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
		err:   err,
		attrs: e.attrs, // Share attrs
	}
}

// With adds attributes to the error for structured logging.
// This creates a new Error instance to maintain immutability.
func (e *Error) With(attrs ...slog.Attr) *Error {
	newAttrs := make([]slog.Attr, len(e.attrs)+len(attrs))
	copy(newAttrs, e.attrs)
	copy(newAttrs[len(e.attrs):], attrs)

	return &Error{
		msg:   e.msg,
		err:   e.err,
		attrs: newAttrs,
	}
}

// ParseError reports malformed source text. It is a distinct surface from
// evaluation errors: it always carries the offending location, and parsing
// stops at the first one (no resynchronization).
type ParseError struct {
	Loc     Location
	Message string
	Source  string // Original source input, for the caret snippet
}

// NewParseError creates a ParseError at the given location.
func NewParseError(loc Location, msg string) *ParseError {
	return &ParseError{Loc: loc, Message: msg}
}

// Error implements the error interface. When the source text is attached
// the message includes the offending line with a caret marking the column.
func (e *ParseError) Error() string {
	var buf strings.Builder

	buf.WriteString(e.Loc.String())
	buf.WriteString(": error: ")
	buf.WriteString(e.Message)

	if e.Source == "" {
		return buf.String()
	}

	lines := strings.Split(e.Source, "\n")
	if e.Loc.Row < 0 || e.Loc.Row >= len(lines) {
		return buf.String()
	}

	line := strings.TrimSuffix(lines[e.Loc.Row], "\r")
	lineNum := e.Loc.Row + 1

	buf.WriteString("\n  ")
	buf.WriteString(strconv.Itoa(lineNum))
	buf.WriteString(" | ")
	buf.WriteString(line)
	buf.WriteRune('\n')

	// Marker pointing at the column: 2 leading spaces, the line number,
	// and " | " precede the line text.
	padding := strings.Repeat(" ", len(strconv.Itoa(lineNum))+5)
	if e.Loc.Col > 0 && e.Loc.Col <= len(line) {
		padding += strings.Repeat(" ", e.Loc.Col)
	}

	buf.WriteString(padding + "^")

	return buf.String()
}

// LogValue implements slog.LogValuer.
func (e *ParseError) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("error", e.Message),
		slog.String("location", e.Loc.String()),
	)
}
