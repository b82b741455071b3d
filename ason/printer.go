package ason

import (
	"io"
	"log/slog"
	"strings"
)

// OutputFormat selects the text encoding produced by a [Printer].
type OutputFormat int

const (
	OutputASON OutputFormat = iota // ason
	OutputJSON                     // json
	OutputYAML                     // yaml
)

// DefaultIndent is the default indent width of rendered documents.
const DefaultIndent = 4

// String returns the name of the format.
func (f OutputFormat) String() string {
	switch f {
	case OutputASON:
		return "ason"
	case OutputJSON:
		return "json"
	case OutputYAML:
		return "yaml"
	default:
		return "unknown"
	}
}

// OutputFormats returns the names of all output formats.
func OutputFormats() []string {
	return []string{
		OutputASON.String(),
		OutputJSON.String(),
		OutputYAML.String(),
	}
}

// ParseOutputFormat parses the name of an output format, ignoring case.
func ParseOutputFormat(s string) (OutputFormat, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "ason":
		return OutputASON, nil
	case "json":
		return OutputJSON, nil
	case "yaml", "yml":
		return OutputYAML, nil
	default:
		return OutputASON, ErrUnknownFormat.With(slog.String("format", s))
	}
}

// Printer renders document values in one output format.
type Printer struct {
	Format OutputFormat
	Indent int
}

// Render returns the rendered text of v, ending in a newline.
func (p Printer) Render(v *Value) (string, error) {
	switch p.Format {
	case OutputASON:
		return Format(v, p.Indent)

	case OutputJSON:
		return FormatJSON(v, p.Indent)

	case OutputYAML:
		return FormatYAML(v, p.Indent)

	default:
		return "", ErrUnknownFormat.With(slog.Int("format", int(p.Format)))
	}
}

// Encode writes the rendered text of v to w, ending in a newline.
func (p Printer) Encode(w io.Writer, v *Value) error {
	switch p.Format {
	case OutputASON:
		return Encode(w, v, p.Indent)

	case OutputJSON:
		return EncodeJSON(w, v, p.Indent)

	case OutputYAML:
		return EncodeYAML(w, v, p.Indent)

	default:
		return ErrUnknownFormat.With(slog.Int("format", int(p.Format)))
	}
}
