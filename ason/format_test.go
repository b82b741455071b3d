package ason

import (
	"errors"
	"strings"
	"testing"
)

func TestFormat(t *testing.T) {
	doc := `{name: "aq", tags: ["a", "b"], point: (1, 2.5), empty: {}, none: []}`

	tests := []struct {
		name   string
		in     string
		indent int
		want   string
	}{
		{"scalar", "42_u8", 4, "42_u8\n"},
		{"float", "1e3", 4, "1000.0\n"},
		{"string escapes", `"a\"b\n"`, 4, `"a\"b\n"` + "\n"},
		{"char", `'\''`, 4, `'\''` + "\n"},
		{"control char", `"\u{7}"`, 0, `"\u{7}"` + "\n"},
		{"date", `d"2024-03-17T10:01:11Z"`, 4, `d"2024-03-17T10:01:11Z"` + "\n"},
		{"bytes", `h"0AFF"`, 4, `h"0a ff"` + "\n"},
		{"raw string", `r"a\b"`, 4, `"a\\b"` + "\n"},
		{
			"object indented",
			doc,
			4,
			"{\n" +
				"    name: \"aq\"\n" +
				"    tags: [\n" +
				"        \"a\"\n" +
				"        \"b\"\n" +
				"    ]\n" +
				"    point: (1, 2.5)\n" +
				"    empty: {}\n" +
				"    none: []\n" +
				"}\n",
		},
		{
			"object inline",
			doc,
			0,
			`{name: "aq", tags: ["a", "b"], point: (1, 2.5), empty: {}, none: []}` + "\n",
		},
		{"quoted key", `{"full name": 1}`, 2, "{\n  \"full name\": 1\n}\n"},
		{"tuple", `(11, "x")`, 4, `(11, "x")` + "\n"},
		{"unit variant", "Option::None", 4, "Option::None\n"},
		{"tuple variant", "Option::Some(5)", 4, "Option::Some(5)\n"},
		{"object variant", "Shape::Rect{w: 1}", 0, "Shape::Rect{w: 1}\n"},
		{"object variant indented", "Shape::Rect{w: 1}", 2, "Shape::Rect{\n  w: 1\n}\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := Parse(tt.in)
			if err != nil {
				t.Fatal(err)
			}

			got, err := Format(v, tt.indent)
			if err != nil {
				t.Fatal(err)
			}

			if got != tt.want {
				t.Errorf("Format(%q, %d):\n got %q\nwant %q", tt.in, tt.indent, got, tt.want)
			}
		})
	}
}

func TestFormatRoundTrip(t *testing.T) {
	inputs := []string{
		`{id: 123, name: "John"}`,
		`[1, -2_i16, 3.5_f32, NaN, -Inf, 0x10]`,
		`("tab\there", 'x', '\u{1F600}', true, false)`,
		`{when: d"2024-03-17 10:01:11+08:00", data: h"de ad be ef"}`,
		`[Option::None, Option::Some((1, 2)), Shape::Rect{w: 1, h: [2]}]`,
		`{nested: {deeper: {deepest: [[], {}, ()]}}}`,
	}

	for _, in := range inputs {
		want, err := Parse(in)
		if err != nil {
			t.Fatalf("Parse(%q): %v", in, err)
		}

		for _, indent := range []int{0, 2, 4} {
			text, err := Format(want, indent)
			if err != nil {
				t.Fatal(err)
			}

			got, err := Parse(text)
			if err != nil {
				t.Fatalf("reparse of %q (indent %d) failed: %v", text, indent, err)
			}

			if !got.Equal(want) {
				t.Errorf("round trip changed value (indent %d):\n%s", indent, text)
			}
		}
	}
}

func TestFormatAggregate(t *testing.T) {
	root := Tuple(Integer("11", ""), String("x"))

	got, err := Format(root, DefaultIndent)
	if err != nil {
		t.Fatal(err)
	}

	if want := "(11, \"x\")\n"; got != want {
		t.Errorf("Format = %q, want %q", got, want)
	}
}

func TestEncodeErrors(t *testing.T) {
	if err := Encode(&strings.Builder{}, nil, 4); !errors.Is(err, ErrUnexpectedKind) {
		t.Errorf("Encode(nil) error = %v, want %v", err, ErrUnexpectedKind)
	}

	if got, err := Format(List(nil), 0); got != "" || err == nil {
		t.Errorf("Format of invalid value = %q, %v; want an error", got, err)
	}

	werr := errors.New("closed pipe")
	if err := Encode(errWriter{werr}, Integer("1", ""), 4); !errors.Is(err, werr) {
		t.Errorf("Encode error = %v, want %v", err, werr)
	}
}

type errWriter struct{ err error }

func (w errWriter) Write([]byte) (int, error) { return 0, w.err }
