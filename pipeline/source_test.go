package pipeline

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestSelect(t *testing.T) {
	tests := []struct {
		name        string
		cfg         Config
		interactive bool
		want        []Source
	}{
		{
			name: "files",
			cfg:  Config{Inputs: []string{"a.ason", "b.ason"}, Text: "ignored"},
			want: []Source{FileSource("a.ason"), FileSource("b.ason")},
		},
		{
			name:        "files from a terminal",
			cfg:         Config{Inputs: []string{"a.ason"}},
			interactive: true,
			want:        []Source{FileSource("a.ason")},
		},
		{
			name: "text",
			cfg:  Config{Text: "[1]"},
			want: []Source{TextSource("[1]")},
		},
		{
			name: "piped stdin",
			cfg:  Config{},
			want: []Source{StdinSource()},
		},
		{
			name:        "terminal stdin with query",
			cfg:         Config{Query: "."},
			interactive: true,
			want:        []Source{StdinSource()},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Select(context.Background(), tt.cfg, Streams{Interactive: tt.interactive})
			if err != nil {
				t.Fatal(err)
			}

			if diff := cmp.Diff(tt.want, got, cmp.AllowUnexported(Source{})); diff != "" {
				t.Errorf("Select mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestSelectTerminalWithoutQuery(t *testing.T) {
	stdin := &countingReader{r: strings.NewReader("[1]")}

	got, err := Select(context.Background(), Config{}, Streams{Stdin: stdin, Interactive: true})
	if !errors.Is(err, ErrUsage) {
		t.Fatalf("error = %v, want %v", err, ErrUsage)
	}

	if got != nil {
		t.Errorf("sources = %v, want none", got)
	}

	if stdin.reads != 0 {
		t.Errorf("standard input read %d times", stdin.reads)
	}

	var perr *Error
	if !errors.As(err, &perr) {
		t.Fatalf("error %T is not a *Error", err)
	}

	if got, want := perr.Summary(), "Usage: aq [OPTIONS] [QUERY_EXPRESSION]"; got != want {
		t.Errorf("usage summary = %q, want %q", got, want)
	}

	if cause := perr.Unwrap(); cause == nil || cause.Error() != "For more information, try '--help'." {
		t.Errorf("usage cause = %v", cause)
	}
}

func TestSourceLabel(t *testing.T) {
	for src, want := range map[Source]string{
		FileSource("dir/x.ason"): "dir/x.ason",
		TextSource("1"):          "input text",
		StdinSource():            "standard input",
	} {
		if got := src.Label(); got != want {
			t.Errorf("Label() = %q, want %q", got, want)
		}
	}
}

type countingReader struct {
	r     *strings.Reader
	reads int
}

func (c *countingReader) Read(p []byte) (int, error) {
	c.reads++

	return c.r.Read(p)
}
