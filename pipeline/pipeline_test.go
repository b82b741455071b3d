package pipeline

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ardnew/aq/ason"
)

func TestRun(t *testing.T) {
	dir := t.TempDir()
	person := writeFile(t, dir, "person.ason", `{id: 123, name: "John"}`)
	eleven := writeFile(t, dir, "eleven.ason", "11")
	x := writeFile(t, dir, "x.ason", `"x"`)

	tests := []struct {
		name  string
		cfg   Config
		stdin string
		want  string
	}{
		{
			name: "single file is unchanged",
			cfg:  Config{Inputs: []string{person}, Printer: ason.Printer{Indent: 4}},
			want: "{\n    id: 123\n    name: \"John\"\n}\n",
		},
		{
			name: "two files become a tuple",
			cfg:  Config{Inputs: []string{eleven, x}, Printer: ason.Printer{Indent: 4}},
			want: "(11, \"x\")\n",
		},
		{
			name:  "piped stdin",
			cfg:   Config{Printer: ason.Printer{Indent: 0}},
			stdin: "[1,2,3]",
			want:  "[1, 2, 3]\n",
		},
		{
			name:  "text wins over stdin",
			cfg:   Config{Text: "true", Printer: ason.Printer{Format: ason.OutputYAML, Indent: 2}},
			stdin: "not read",
			want:  "true\n",
		},
		{
			name: "query file is carried but not read",
			cfg: Config{
				QueryFile: filepath.Join(dir, "missing.aq"),
				Inputs:    []string{eleven},
				Printer:   ason.Printer{Indent: 4},
			},
			want: "11\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer

			streams := Streams{Stdin: strings.NewReader(tt.stdin), Stdout: &out}
			if err := Run(context.Background(), tt.cfg, streams); err != nil {
				t.Fatal(err)
			}

			if got := out.String(); got != tt.want {
				t.Errorf("output:\n got %q\nwant %q", got, tt.want)
			}
		})
	}
}

func TestRunOutputFile(t *testing.T) {
	dir := t.TempDir()
	output := filepath.Join(dir, "result.ason")

	var out bytes.Buffer

	cfg := Config{Output: output, Text: "[1,2,3]", Printer: ason.Printer{Indent: 0}}
	if err := Run(context.Background(), cfg, Streams{Stdout: &out}); err != nil {
		t.Fatal(err)
	}

	b, err := os.ReadFile(output)
	if err != nil {
		t.Fatal(err)
	}

	if string(b) != "[1, 2, 3]\n" || out.Len() != 0 {
		t.Errorf("file = %q, stdout = %q", b, out.String())
	}
}

func TestRunFailuresWriteNothing(t *testing.T) {
	dir := t.TempDir()
	output := filepath.Join(dir, "result.ason")
	good := writeFile(t, dir, "good.ason", "1")
	bad := writeFile(t, dir, "bad.ason", "{a: }")
	latin1 := writeFile(t, dir, "latin1.ason", "\"caf\xe9\"")

	const previous = "previous output\n"

	tests := []struct {
		name        string
		cfg         Config
		interactive bool
		sentinel    error
	}{
		{"missing input", Config{Inputs: []string{good, filepath.Join(dir, "missing.ason")}}, false, ErrReadFile},
		{"second file malformed", Config{Inputs: []string{good, bad}}, false, ErrParseFile},
		{"invalid UTF-8", Config{Inputs: []string{latin1}}, false, ErrReadFile},
		{"terminal stdin", Config{}, true, ErrUsage},
		{"bad text", Config{Text: "[1,"}, false, ErrParseText},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := os.WriteFile(output, []byte(previous), 0o600); err != nil {
				t.Fatal(err)
			}

			var out bytes.Buffer

			for _, cfg := range []Config{tt.cfg, withOutput(tt.cfg, output)} {
				streams := Streams{Stdin: strings.NewReader(""), Stdout: &out, Interactive: tt.interactive}

				err := Run(context.Background(), cfg, streams)
				if !errors.Is(err, tt.sentinel) {
					t.Fatalf("error = %v, want %v", err, tt.sentinel)
				}
			}

			if out.Len() != 0 {
				t.Errorf("stdout written: %q", out.String())
			}

			b, err := os.ReadFile(output)
			if err != nil {
				t.Fatal(err)
			}

			if string(b) != previous {
				t.Errorf("output file changed to %q", b)
			}
		})
	}
}

func withOutput(cfg Config, output string) Config {
	cfg.Output = output

	return cfg
}
