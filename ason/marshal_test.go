package ason

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func mustParse(t *testing.T, s string) *Value {
	t.Helper()

	v, err := Parse(s)
	if err != nil {
		t.Fatalf("Parse(%q): %v", s, err)
	}

	return v
}

func TestNative(t *testing.T) {
	v := mustParse(t, `{
		i: -3, u: 18446744073709551615, f: 1.5, nan: NaN,
		b: true, c: 'x', s: "str", d: d"2024-03-17", h: h"01 ff",
		l: [1], t: (1, "a"),
		unit: E::A, one: E::B(2), many: E::C(1, 2), obj: E::D{k: 1},
	}`)

	want := orderedMap{
		{Key: "i", Value: int64(-3)},
		{Key: "u", Value: uint64(18446744073709551615)},
		{Key: "f", Value: 1.5},
		{Key: "nan", Value: "NaN"},
		{Key: "b", Value: true},
		{Key: "c", Value: "x"},
		{Key: "s", Value: "str"},
		{Key: "d", Value: "2024-03-17"},
		{Key: "h", Value: []any{1, 255}},
		{Key: "l", Value: []any{int64(1)}},
		{Key: "t", Value: []any{int64(1), "a"}},
		{Key: "unit", Value: "E::A"},
		{Key: "one", Value: orderedMap{{Key: "E::B", Value: int64(2)}}},
		{Key: "many", Value: orderedMap{{Key: "E::C", Value: []any{int64(1), int64(2)}}}},
		{Key: "obj", Value: orderedMap{{Key: "E::D", Value: orderedMap{{Key: "k", Value: int64(1)}}}}},
	}

	if diff := cmp.Diff(want, v.Native()); diff != "" {
		t.Errorf("Native mismatch (-want +got):\n%s", diff)
	}
}

func TestFormatJSON(t *testing.T) {
	v := mustParse(t, `{id: 123, name: "John <j@x>", tags: [1.5, true], v: Option::Some(5)}`)

	compact, err := FormatJSON(v, 0)
	if err != nil {
		t.Fatal(err)
	}

	want := `{"id":123,"name":"John <j@x>","tags":[1.5,true],"v":{"Option::Some":5}}` + "\n"
	if compact != want {
		t.Errorf("compact JSON:\n got %q\nwant %q", compact, want)
	}

	indented, err := FormatJSON(mustParse(t, `{id: 123, name: "John"}`), 2)
	if err != nil {
		t.Fatal(err)
	}

	want = "{\n  \"id\": 123,\n  \"name\": \"John\"\n}\n"
	if indented != want {
		t.Errorf("indented JSON:\n got %q\nwant %q", indented, want)
	}
}

func TestFormatYAML(t *testing.T) {
	got, err := FormatYAML(mustParse(t, `{id: 123, name: "John", ok: true}`), 2)
	if err != nil {
		t.Fatal(err)
	}

	if want := "id: 123\nname: John\nok: true\n"; got != want {
		t.Errorf("YAML:\n got %q\nwant %q", got, want)
	}

	flow, err := FormatYAML(mustParse(t, `[1, 2, 3]`), 0)
	if err != nil {
		t.Fatal(err)
	}

	if strings.Count(flow, "\n") != 1 || !strings.HasSuffix(flow, "\n") {
		t.Errorf("flow YAML is not a single line: %q", flow)
	}
}

func TestPrinter(t *testing.T) {
	v := mustParse(t, `[1, 2, 3]`)

	tests := []struct {
		format string
		indent int
		want   string
	}{
		{"ason", 0, "[1, 2, 3]\n"},
		{"ASON", 1, "[\n 1\n 2\n 3\n]\n"},
		{"json", 0, "[1,2,3]\n"},
		{"yml", 2, "- 1\n- 2\n- 3\n"},
	}

	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			f, err := ParseOutputFormat(tt.format)
			if err != nil {
				t.Fatal(err)
			}

			p := Printer{Format: f, Indent: tt.indent}

			rendered, err := p.Render(v)
			if err != nil {
				t.Fatal(err)
			}

			var sb strings.Builder
			if err := p.Encode(&sb, v); err != nil {
				t.Fatal(err)
			}

			if rendered != tt.want || sb.String() != tt.want {
				t.Errorf("Render = %q, Encode = %q, want %q", rendered, sb.String(), tt.want)
			}
		})
	}
}

func TestParseOutputFormat(t *testing.T) {
	for _, name := range OutputFormats() {
		f, err := ParseOutputFormat(name)
		if err != nil || f.String() != name {
			t.Errorf("ParseOutputFormat(%q) = %v, %v", name, f, err)
		}
	}

	if _, err := ParseOutputFormat("toml"); !errors.Is(err, ErrUnknownFormat) {
		t.Errorf("error = %v, want %v", err, ErrUnknownFormat)
	}

	if _, err := (Printer{Format: OutputFormat(99)}).Render(Integer("1", "")); !errors.Is(err, ErrUnknownFormat) {
		t.Errorf("Render error = %v, want %v", err, ErrUnknownFormat)
	}
}
