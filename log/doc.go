// Package log is a small structured logging layer over [log/slog].
//
// A [Logger] is created with [Make] and configured with functional options
// applied at creation time:
//
//	logger := log.Make(os.Stderr,
//		log.WithLevel(log.LevelDebug),
//		log.WithFormat(log.FormatText),
//		log.WithTimeLayout("kitchen"),
//		log.WithCaller(true))
//
// Attributes are always typed [slog.Attr] values:
//
//	logger.Info("loaded document", slog.String("source", "a.ason"))
//
// The package also keeps a default logger writing to standard error.
// [Config] reconfigures it and the package-level functions ([Debug],
// [DebugContext], [Info], ...) log through it.
//
// With pretty printing enabled (the default) the text format drops quoting
// and colors keys and values, and the JSON format is indented. Colors come
// from [github.com/charmbracelet/lipgloss] and are only emitted when the
// output writer is a terminal that supports them.
package log
