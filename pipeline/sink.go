package pipeline

import (
	"bufio"
	"context"
	"io"
	"log/slog"
	"os"

	"github.com/ardnew/aq/ason"
	"github.com/ardnew/aq/log"
)

// Renderer turns a document into text.
// [ason.Printer] is the implementation used by the command line.
type Renderer interface {
	Render(v *ason.Value) (string, error)
	Encode(w io.Writer, v *ason.Value) error
}

// Write renders root to the output file, if one is configured, or to
// stdout otherwise. The output file is created or truncated.
func Write(ctx context.Context, output string, r Renderer, root *ason.Value, stdout io.Writer) error {
	if output != "" {
		text, err := r.Render(root)
		if err != nil {
			return ErrRender.Wrap(err)
		}

		if err := os.WriteFile(output, []byte(text), 0o644); err != nil {
			return ErrWriteFile.About(output).
				With(slog.Int("bytes", len(text))).
				Wrap(err)
		}

		log.DebugContext(ctx, "wrote output file",
			slog.String("path", output),
			slog.Int("bytes", len(text)),
		)

		return nil
	}

	sw := &stdoutWriter{w: stdout}
	bw := bufio.NewWriter(sw)

	if err := r.Encode(bw, root); err != nil {
		if sw.err != nil {
			return ErrWriteStdout.Wrap(sw.err)
		}

		return ErrRender.Wrap(err)
	}

	if err := bw.Flush(); err != nil {
		return ErrWriteStdout.Wrap(err)
	}

	return nil
}

// stdoutWriter records the first error of the underlying writer, telling
// write failures apart from rendering failures.
type stdoutWriter struct {
	w   io.Writer
	err error
}

func (s *stdoutWriter) Write(p []byte) (int, error) {
	n, err := s.w.Write(p)
	if err != nil && s.err == nil {
		s.err = err
	}

	return n, err
}
