package pipeline

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ardnew/aq/ason"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}

	return path
}

func TestLoadFiles(t *testing.T) {
	dir := t.TempDir()
	a := writeFile(t, dir, "a.ason", "11")
	b := writeFile(t, dir, "b.ason", `"x"`)

	docs, err := Load(context.Background(), []Source{FileSource(a), FileSource(b)}, nil)
	if err != nil {
		t.Fatal(err)
	}

	want := []*ason.Value{ason.Integer("11", ""), ason.String("x")}
	if len(docs) != len(want) {
		t.Fatalf("loaded %d documents, want %d", len(docs), len(want))
	}

	for i := range want {
		if !docs[i].Equal(want[i]) {
			t.Errorf("document %d = %#v", i, docs[i])
		}
	}
}

func TestLoadMissingFile(t *testing.T) {
	dir := t.TempDir()
	missing := filepath.Join(dir, "nope.ason")
	later := writeFile(t, dir, "later.ason", "{")

	_, err := Load(context.Background(), []Source{FileSource(missing), FileSource(later)}, nil)
	if !errors.Is(err, ErrReadFile) {
		t.Fatalf("error = %v, want %v", err, ErrReadFile)
	}

	if !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("cause = %v, want not-exist", err)
	}

	var perr *Error
	if !errors.As(err, &perr) || !strings.Contains(perr.Summary(), `"`+missing+`"`) {
		t.Errorf("error does not name %q: %v", missing, err)
	}

	if errors.Is(err, ErrParseFile) {
		t.Error("the file after the missing one was parsed")
	}
}

func TestLoadParseFailure(t *testing.T) {
	dir := t.TempDir()
	good := writeFile(t, dir, "good.ason", "1")
	bad := writeFile(t, dir, "bad.ason", "{\n  a: ?\n}")

	_, err := Load(context.Background(), []Source{FileSource(good), FileSource(bad)}, nil)
	if !errors.Is(err, ErrParseFile) {
		t.Fatalf("error = %v, want %v", err, ErrParseFile)
	}

	pe, ok := ason.AsParseError(err)
	if !ok {
		t.Fatalf("no parse error in %v", err)
	}

	if pe.Position.Line != 2 || pe.Position.Column != 6 {
		t.Errorf("position = %d:%d, want 2:6", pe.Position.Line, pe.Position.Column)
	}

	if !strings.Contains(err.Error(), "  2 |   a: ?") {
		t.Errorf("error lacks the offending line:\n%v", err)
	}
}

func TestLoadStdinAndText(t *testing.T) {
	docs, err := Load(context.Background(), []Source{StdinSource()}, strings.NewReader("[1,2,3]"))
	if err != nil {
		t.Fatal(err)
	}

	if len(docs) != 1 || docs[0].Kind != ason.KindList || len(docs[0].Items) != 3 {
		t.Errorf("stdin document = %v", docs)
	}

	_, err = Load(context.Background(), []Source{StdinSource()}, strings.NewReader("[1,"))
	if !errors.Is(err, ErrParseStdin) {
		t.Errorf("error = %v, want %v", err, ErrParseStdin)
	}

	_, err = Load(context.Background(), []Source{StdinSource()}, failingReader{})
	if !errors.Is(err, ErrReadStdin) {
		t.Errorf("error = %v, want %v", err, ErrReadStdin)
	}

	_, err = Load(context.Background(), []Source{TextSource("nope")}, nil)
	if !errors.Is(err, ErrParseText) {
		t.Errorf("error = %v, want %v", err, ErrParseText)
	}
}

func TestLoadInvalidUTF8(t *testing.T) {
	dir := t.TempDir()
	latin1 := writeFile(t, dir, "latin1.ason", "\"caf\xe9\"")

	_, err := Load(context.Background(), []Source{FileSource(latin1)}, nil)
	if !errors.Is(err, ErrReadFile) || !errors.Is(err, errInvalidUTF8) {
		t.Errorf("file error = %v, want %v", err, ErrReadFile)
	}

	_, err = Load(context.Background(), []Source{StdinSource()}, strings.NewReader("[\xff]"))
	if !errors.Is(err, ErrReadStdin) || !errors.Is(err, errInvalidUTF8) {
		t.Errorf("stdin error = %v, want %v", err, ErrReadStdin)
	}

	_, err = Load(context.Background(), []Source{TextSource("\"\xc3\"")}, nil)
	if !errors.Is(err, ErrParseText) || !errors.Is(err, errInvalidUTF8) {
		t.Errorf("text error = %v, want %v", err, ErrParseText)
	}
}

func TestLoadErrorAttrs(t *testing.T) {
	dir := t.TempDir()
	good := writeFile(t, dir, "good.ason", "1")
	bad := writeFile(t, dir, "bad.ason", "[")

	_, err := Load(context.Background(), []Source{FileSource(good), FileSource(bad)}, nil)

	var perr *Error
	if !errors.As(err, &perr) {
		t.Fatalf("error %T is not a *Error", err)
	}

	got := map[string]string{}
	for _, a := range perr.LogValue().Group() {
		got[a.Key] = a.Value.String()
	}

	if got["index"] != "1" || got["kind"] != SourceFile.String() || got["subject"] != bad {
		t.Errorf("LogValue() = %v", got)
	}
}

func TestLoadCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := Load(ctx, []Source{TextSource("1")}, nil); !errors.Is(err, context.Canceled) {
		t.Errorf("error = %v, want %v", err, context.Canceled)
	}
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, errors.New("device gone") }
