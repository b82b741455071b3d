package ason

import (
	"errors"
	"log/slog"
	"strconv"
	"strings"
)

// Predefined errors (sentinel values).
var (
	ErrSyntax         = NewError("syntax error")
	ErrUnexpectedEOF  = NewError("unexpected end of input")
	ErrTrailingInput  = NewError("unexpected content after document")
	ErrInvalidNumber  = NewError("invalid number")
	ErrNumberRange    = NewError("number out of range")
	ErrInvalidEscape  = NewError("invalid escape sequence")
	ErrInvalidChar    = NewError("invalid char literal")
	ErrInvalidDate    = NewError("invalid date")
	ErrInvalidBytes   = NewError("invalid byte data")
	ErrUnterminated   = NewError("unterminated literal")
	ErrUnknownFormat  = NewError("unknown output format")
	ErrMaxDepth       = NewError("maximum nesting depth exceeded")
	ErrUnexpectedKind = NewError("unexpected value kind")
)

// Error represents an error with optional structured logging attributes.
// It implements both error and slog.LogValuer interfaces.
type Error struct {
	msg   string
	err   error
	attrs []slog.Attr
}

// NewError creates a new Error with a message.
func NewError(msg string) *Error {
	return &Error{msg: msg}
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

// Is reports whether target is the sentinel e was derived from.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)

	return ok && t.err == nil && t.msg == e.msg
}

// LogValue implements slog.LogValuer.
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
	return &Error{msg: e.msg, err: err, attrs: e.attrs}
}

// With adds attributes to the error for structured logging.
func (e *Error) With(attrs ...slog.Attr) *Error {
	newAttrs := make([]slog.Attr, len(e.attrs)+len(attrs))
	copy(newAttrs, e.attrs)
	copy(newAttrs[len(e.attrs):], attrs)

	return &Error{msg: e.msg, err: e.err, attrs: newAttrs}
}

// ParseError reports a syntax error at a position within a source text.
type ParseError struct {
	Err      error    // what went wrong, usually one of the sentinel errors
	Position Position // where it went wrong
	Source   string   // the text being parsed, used to render a snippet
	Expected []string // tokens that would have been accepted, if known
}

// Error implements the error interface. When the source text is known, the
// message includes the offending line and a caret under the column.
func (e *ParseError) Error() string {
	var buf strings.Builder

	buf.WriteString("parse error at line ")
	buf.WriteString(strconv.Itoa(e.Position.Line))
	buf.WriteString(", column ")
	buf.WriteString(strconv.Itoa(e.Position.Column))
	buf.WriteString(": ")

	if e.Err != nil {
		buf.WriteString(e.Err.Error())
	} else {
		buf.WriteString("syntax error")
	}

	if len(e.Expected) > 0 {
		exp := make([]string, len(e.Expected))
		for i, s := range e.Expected {
			exp[i] = strconv.Quote(s)
		}

		buf.WriteString(" (expected ")
		buf.WriteString(strings.Join(exp, ", "))
		buf.WriteString(")")
	}

	if snippet := e.Snippet(); snippet != "" {
		buf.WriteByte('\n')
		buf.WriteString(strings.TrimSuffix(snippet, "\n"))
	}

	return buf.String()
}

// Unwrap returns the underlying error.
func (e *ParseError) Unwrap() error { return e.Err }

// LogValue implements slog.LogValuer.
func (e *ParseError) LogValue() slog.Value {
	attrs := []slog.Attr{
		slog.Int("line", e.Position.Line),
		slog.Int("column", e.Position.Column),
	}

	if e.Err != nil {
		attrs = append(attrs, slog.String("error", e.Err.Error()))
	}

	return slog.GroupValue(attrs...)
}

// Snippet returns the offending source line prefixed with its line number,
// followed by a caret marking the column. It returns "" if the source is
// unknown or the line is out of range.
func (e *ParseError) Snippet() string {
	lines := strings.Split(e.Source, "\n")

	line := e.Position.Line
	if e.Source == "" || line <= 0 || line > len(lines) {
		return ""
	}

	var src strings.Builder

	text := strings.TrimSuffix(lines[line-1], "\r")

	src.WriteString("  ")
	src.WriteString(strconv.Itoa(line))
	src.WriteString(" | ")
	src.WriteString(text)
	src.WriteRune('\n')

	// 2 leading spaces + " | " (3 chars)
	padding := strings.Repeat(" ", len(strconv.Itoa(line))+5)
	if e.Position.Column > 0 {
		padding += strings.Repeat(" ", e.Position.Column-1)
	}

	src.WriteString(padding + "^\n")

	return src.String()
}

// AsParseError returns the *ParseError in err's chain, if any.
func AsParseError(err error) (*ParseError, bool) {
	pe := &ParseError{}
	if errors.As(err, &pe) {
		return pe, true
	}

	return nil, false
}
