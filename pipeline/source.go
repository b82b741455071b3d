package pipeline

import (
	"context"
	"io"
	"log/slog"
	"os"
	"unicode/utf8"

	"github.com/ardnew/aq/log"
)

// SourceKind identifies where a [Source] reads its text from.
type SourceKind int

// Source kinds.
const (
	SourceFile SourceKind = iota
	SourceText
	SourceStdin
)

// String returns the label used for sources without a path.
func (k SourceKind) String() string {
	switch k {
	case SourceFile:
		return "input file"
	case SourceText:
		return "input text"
	case SourceStdin:
		return "standard input"
	default:
		return "unknown source"
	}
}

// Source is one place raw document text is read from.
type Source struct {
	Kind SourceKind
	// Path is the input file path for [SourceFile], verbatim.
	Path string

	text string
}

// FileSource returns a source reading the file at path.
func FileSource(path string) Source { return Source{Kind: SourceFile, Path: path} }

// TextSource returns a source yielding text.
func TextSource(text string) Source { return Source{Kind: SourceText, text: text} }

// StdinSource returns a source reading standard input to EOF.
func StdinSource() Source { return Source{Kind: SourceStdin} }

// Label names the source in diagnostics.
func (s Source) Label() string {
	if s.Kind == SourceFile {
		return s.Path
	}

	return s.Kind.String()
}

// Read returns the full text of the source. Files are opened, read, and
// closed before Read returns.
func (s Source) Read(stdin io.Reader) (string, error) {
	switch s.Kind {
	case SourceFile:
		b, err := os.ReadFile(s.Path)
		if err != nil {
			return "", ErrReadFile.About(s.Path).Wrap(err)
		}

		if !utf8.Valid(b) {
			return "", ErrReadFile.About(s.Path).Wrap(errInvalidUTF8)
		}

		return string(b), nil

	case SourceText:
		if !utf8.ValidString(s.text) {
			return "", ErrParseText.Wrap(errInvalidUTF8)
		}

		return s.text, nil

	default:
		if stdin == nil {
			return "", ErrReadStdin.Wrap(os.ErrInvalid)
		}

		b, err := io.ReadAll(stdin)
		if err != nil {
			return "", ErrReadStdin.Wrap(err)
		}

		if !utf8.Valid(b) {
			return "", ErrReadStdin.Wrap(errInvalidUTF8)
		}

		return string(b), nil
	}
}

// parseError wraps a parse failure with the error matching the source kind.
func (s Source) parseError(err error) error {
	switch s.Kind {
	case SourceFile:
		return ErrParseFile.About(s.Path).Wrap(err)
	case SourceText:
		return ErrParseText.Wrap(err)
	default:
		return ErrParseStdin.Wrap(err)
	}
}

// Select decides which sources to read, in order.
//
// Input files win over inline text, and inline text wins over standard
// input. Standard input attached to a terminal is refused with [ErrUsage]
// unless a query expression was given.
func Select(ctx context.Context, cfg Config, streams Streams) ([]Source, error) {
	if len(cfg.Inputs) > 0 {
		sources := make([]Source, len(cfg.Inputs))
		for i, path := range cfg.Inputs {
			sources[i] = FileSource(path)
		}

		log.DebugContext(ctx, "selected input files", slog.Any("paths", cfg.Inputs))

		return sources, nil
	}

	if cfg.Text != "" {
		log.DebugContext(ctx, "selected input text", slog.Int("length", len(cfg.Text)))

		return []Source{TextSource(cfg.Text)}, nil
	}

	if streams.Interactive {
		if cfg.Query == "" {
			return nil, ErrUsage.Wrap(errHelpHint)
		}

		log.DebugContext(ctx, "reading standard input from a terminal until EOF")
	}

	return []Source{StdinSource()}, nil
}
