package pipeline

import (
	"context"
	"errors"
	"io"
	"log/slog"

	"github.com/ardnew/aq/ason"
	"github.com/ardnew/aq/log"
)

// Load reads and parses every source in order. It stops at the first
// source that cannot be read or parsed; later sources are never opened.
// On success it returns one document per source.
func Load(ctx context.Context, sources []Source, stdin io.Reader) ([]*ason.Value, error) {
	docs := make([]*ason.Value, 0, len(sources))

	for i, src := range sources {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		at := []slog.Attr{
			slog.Int("index", i),
			slog.String("kind", src.Kind.String()),
		}

		text, err := src.Read(stdin)
		if err != nil {
			return nil, withAttrs(err, at...)
		}

		doc, err := ason.Parse(text)
		if err != nil {
			return nil, withAttrs(src.parseError(err), at...)
		}

		log.DebugContext(ctx, "loaded document",
			slog.Int("index", i),
			slog.String("source", src.Label()),
			slog.String("kind", doc.Kind.String()),
		)

		docs = append(docs, doc)
	}

	return docs, nil
}

// withAttrs attaches attrs to err if it is an *[Error].
func withAttrs(err error, attrs ...slog.Attr) error {
	var perr *Error
	if errors.As(err, &perr) {
		return perr.With(attrs...)
	}

	return err
}
