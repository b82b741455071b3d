package pipeline

import (
	"errors"
	"log/slog"
	"strconv"
	"strings"

	"github.com/ardnew/aq/pkg"
)

// Predefined errors (sentinel values).
var (
	ErrUsage       = NewError("Usage: " + pkg.Name + " [OPTIONS] [QUERY_EXPRESSION]")
	ErrReadFile    = NewError("failed to read input file")
	ErrReadStdin   = NewError("failed to read standard input")
	ErrParseFile   = NewError("failed to parse input file")
	ErrParseStdin  = NewError("failed to parse standard input")
	ErrParseText   = NewError("failed to parse input text")
	ErrNoDocuments = NewError("no documents to aggregate")
	ErrRender      = NewError("failed to render output")
	ErrWriteFile   = NewError("failed to write output file")
	ErrWriteStdout = NewError("failed to write standard output")
)

// errHelpHint is the cause reported with [ErrUsage].
var errHelpHint = errors.New("For more information, try '--help'.")

// errInvalidUTF8 is the cause reported for input that is not UTF-8 text.
var errInvalidUTF8 = errors.New("stream did not contain valid UTF-8")

// Error is a pipeline failure. It carries a human-readable context message,
// an optional subject (a file path), the underlying cause, and attributes
// for structured logging.
type Error struct {
	msg     string
	subject string
	err     error
	attrs   []slog.Attr
}

// NewError creates a new Error with a message.
func NewError(msg string) *Error {
	return &Error{msg: msg}
}

// Summary returns the context line of the error: the message followed by
// the quoted subject, if any.
func (e *Error) Summary() string {
	if e.subject == "" {
		return e.msg
	}

	return e.msg + " " + strconv.Quote(e.subject)
}

// Error implements the error interface.
func (e *Error) Error() string {
	part := make([]string, 0, 2)

	if s := e.Summary(); s != "" {
		part = append(part, s)
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

	return ok && t.err == nil && t.subject == "" && t.msg == e.msg
}

// LogValue implements slog.LogValuer.
func (e *Error) LogValue() slog.Value {
	attrs := make([]slog.Attr, 0, len(e.attrs)+3)

	if e.msg != "" {
		attrs = append(attrs, slog.String("error", e.msg))
	}

	if e.subject != "" {
		attrs = append(attrs, slog.String("subject", e.subject))
	}

	if e.err != nil {
		attrs = append(attrs, slog.Any("cause", e.err))
	}

	return slog.GroupValue(append(attrs, e.attrs...)...)
}

// Wrap creates a new Error wrapping another error.
func (e *Error) Wrap(err error) *Error {
	return &Error{msg: e.msg, subject: e.subject, err: err, attrs: e.attrs}
}

// About creates a new Error naming the path or stream it concerns.
func (e *Error) About(subject string) *Error {
	return &Error{msg: e.msg, subject: subject, err: e.err, attrs: e.attrs}
}

// With adds attributes to the error for structured logging.
func (e *Error) With(attrs ...slog.Attr) *Error {
	newAttrs := make([]slog.Attr, len(e.attrs)+len(attrs))
	copy(newAttrs, e.attrs)
	copy(newAttrs[len(e.attrs):], attrs)

	return &Error{msg: e.msg, subject: e.subject, err: e.err, attrs: newAttrs}
}
