package ason

import (
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"unicode"
)

// Format returns the canonical ASON text of v, ending in a newline.
//
// Objects and lists are written one element per line, indented by indent
// spaces per level. Tuples are always written inline. With indent 0 the
// whole document is written on one line.
func Format(v *Value, indent int) (string, error) {
	var sb strings.Builder

	if err := Encode(&sb, v, indent); err != nil {
		return "", err
	}

	return sb.String(), nil
}

// Encode writes the canonical ASON text of v to w, ending in a newline.
// See [Format] for the layout.
func Encode(w io.Writer, v *Value, indent int) error {
	e := &encoder{w: w, indent: indent}

	e.value(v, 0)
	e.write("\n")

	return e.err
}

// encoder writes ASON text and latches the first write error.
type encoder struct {
	w      io.Writer
	indent int
	err    error
}

func (e *encoder) write(s string) {
	if e.err != nil {
		return
	}

	_, e.err = io.WriteString(e.w, s)
}

// value writes v at the given nesting depth.
func (e *encoder) value(v *Value, depth int) {
	if v == nil {
		e.fail(ErrUnexpectedKind.With(slog.String("kind", "nil")))

		return
	}

	switch v.Kind {
	case KindInteger, KindFloat:
		e.write(v.Text)

		if v.Suffix != "" {
			e.write("_" + v.Suffix)
		}

	case KindBoolean:
		e.write(strconv.FormatBool(v.Bool))

	case KindChar:
		e.write(quote(v.Text, '\''))

	case KindString:
		e.write(quote(v.Text, '"'))

	case KindDate:
		e.write(`d"` + v.Text + `"`)

	case KindBytes:
		e.write(`h"` + formatBytes(v.Bytes) + `"`)

	case KindList:
		e.block("[", "]", len(v.Items), depth, func(i int) {
			e.value(v.Items[i], depth+1)
		})

	case KindObject:
		e.block("{", "}", len(v.Fields), depth, func(i int) {
			f := v.Fields[i]

			e.write(formatKey(f.Key) + ": ")
			e.value(f.Value, depth+1)
		})

	case KindTuple:
		e.tuple(v.Items, depth)

	case KindVariant:
		e.write(v.Text)

		switch {
		case v.Payload == nil:
		case v.Payload.Kind == KindTuple, v.Payload.Kind == KindObject:
			e.value(v.Payload, depth)
		default:
			e.tuple([]*Value{v.Payload}, depth)
		}

	default:
		e.fail(ErrUnexpectedKind.With(slog.String("kind", v.Kind.String())))
	}
}

// block writes a delimited container one element per line, or inline when
// indentation is disabled.
func (e *encoder) block(open, close string, n, depth int, elem func(int)) {
	if n == 0 {
		e.write(open + close)

		return
	}

	if e.indent <= 0 {
		e.write(open)

		for i := range n {
			if i > 0 {
				e.write(", ")
			}

			elem(i)
		}

		e.write(close)

		return
	}

	pad := strings.Repeat(" ", e.indent)

	e.write(open + "\n")

	for i := range n {
		e.write(strings.Repeat(pad, depth+1))
		elem(i)
		e.write("\n")
	}

	e.write(strings.Repeat(pad, depth) + close)
}

// tuple writes items inline: (a, b, c).
func (e *encoder) tuple(items []*Value, depth int) {
	e.write("(")

	for i, item := range items {
		if i > 0 {
			e.write(", ")
		}

		e.value(item, depth)
	}

	e.write(")")
}

func (e *encoder) fail(err error) {
	if e.err == nil {
		e.err = err
	}
}

// quote returns s enclosed in q with special characters escaped.
func quote(s string, q rune) string {
	var sb strings.Builder

	sb.WriteRune(q)

	for _, r := range s {
		switch r {
		case '\\':
			sb.WriteString(`\\`)
		case q:
			sb.WriteRune('\\')
			sb.WriteRune(q)
		case '\n':
			sb.WriteString(`\n`)
		case '\r':
			sb.WriteString(`\r`)
		case '\t':
			sb.WriteString(`\t`)
		case 0:
			sb.WriteString(`\0`)
		default:
			if r != ' ' && !unicode.IsPrint(r) {
				fmt.Fprintf(&sb, `\u{%x}`, r)
			} else {
				sb.WriteRune(r)
			}
		}
	}

	sb.WriteRune(q)

	return sb.String()
}

// formatKey writes identifier keys bare and any other key quoted.
func formatKey(key string) string {
	if isIdentifier(key) {
		return key
	}

	return quote(key, '"')
}

// formatBytes returns b as lowercase hexadecimal octets separated by spaces.
func formatBytes(b []byte) string {
	part := make([]string, len(b))
	for i, c := range b {
		part[i] = fmt.Sprintf("%02x", c)
	}

	return strings.Join(part, " ")
}
