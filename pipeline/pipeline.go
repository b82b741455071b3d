package pipeline

import (
	"context"
	"log/slog"

	"github.com/ardnew/aq/log"
)

// Run executes Select, Load, Aggregate, and Write for cfg.
// It returns the first error encountered; no stage runs after a failure.
func Run(ctx context.Context, cfg Config, streams Streams) error {
	if cfg.QueryFile != "" {
		log.DebugContext(ctx, "query file is not evaluated", slog.String("path", cfg.QueryFile))
	}

	sources, err := Select(ctx, cfg, streams)
	if err != nil {
		return err
	}

	docs, err := Load(ctx, sources, streams.Stdin)
	if err != nil {
		return err
	}

	root, err := Aggregate(docs)
	if err != nil {
		return err
	}

	return Write(ctx, cfg.Output, cfg.Printer, root, streams.Stdout)
}
