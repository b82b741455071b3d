package log

import (
	"context"
	"log/slog"
	"os"
)

// DefaultContextProvider returns the context used by the logging functions
// that take none.
var DefaultContextProvider = context.TODO

var defaultLog = Make(os.Stderr)

// Config reconfigures the default logger.
// It is meant to be called once, before anything logs.
func Config(opts ...Option) {
	defaultLog = defaultLog.Wrap(opts...)
}

// Default returns the default logger.
func Default() Logger { return defaultLog }

func TraceContext(ctx context.Context, msg string, attrs ...slog.Attr) {
	defaultLog.TraceContext(ctx, msg, attrs...)
}

func Trace(msg string, attrs ...slog.Attr) { defaultLog.Trace(msg, attrs...) }

func DebugContext(ctx context.Context, msg string, attrs ...slog.Attr) {
	defaultLog.DebugContext(ctx, msg, attrs...)
}

func Debug(msg string, attrs ...slog.Attr) { defaultLog.Debug(msg, attrs...) }

func InfoContext(ctx context.Context, msg string, attrs ...slog.Attr) {
	defaultLog.InfoContext(ctx, msg, attrs...)
}

func Info(msg string, attrs ...slog.Attr) { defaultLog.Info(msg, attrs...) }

func WarnContext(ctx context.Context, msg string, attrs ...slog.Attr) {
	defaultLog.WarnContext(ctx, msg, attrs...)
}

func Warn(msg string, attrs ...slog.Attr) { defaultLog.Warn(msg, attrs...) }

func ErrorContext(ctx context.Context, msg string, attrs ...slog.Attr) {
	defaultLog.ErrorContext(ctx, msg, attrs...)
}

func Error(msg string, attrs ...slog.Attr) { defaultLog.Error(msg, attrs...) }
