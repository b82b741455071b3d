package ason

import (
	"bytes"
	"encoding/json"
	"io"
	"strconv"
	"strings"

	"github.com/goccy/go-yaml"
)

// Native converts v to plain Go values suitable for JSON and YAML encoders.
//
//   - Integer: int64, or uint64 if it does not fit int64
//   - Float: float64; NaN and infinities become their ASON text
//   - Boolean: bool
//   - Char, String, Date: string
//   - Bytes: []any of int octets
//   - List, Tuple: []any
//   - Object: an ordered map that keeps field order in both encoders
//   - Variant: its name if it has no payload, else a single-entry ordered
//     map from its name to the payload (a one-element tuple is unwrapped)
func (v *Value) Native() any {
	if v == nil {
		return nil
	}

	switch v.Kind {
	case KindInteger:
		if i, err := strconv.ParseInt(v.Text, 10, 64); err == nil {
			return i
		}

		if u, err := strconv.ParseUint(v.Text, 10, 64); err == nil {
			return u
		}

		return v.Text

	case KindFloat:
		f, err := strconv.ParseFloat(v.Text, 64)
		if err != nil || v.Text == "NaN" || strings.HasSuffix(v.Text, "Inf") {
			return v.Text
		}

		return f

	case KindBoolean:
		return v.Bool

	case KindChar, KindString, KindDate:
		return v.Text

	case KindBytes:
		octets := make([]any, len(v.Bytes))
		for i, b := range v.Bytes {
			octets[i] = int(b)
		}

		return octets

	case KindList, KindTuple:
		items := make([]any, len(v.Items))
		for i, item := range v.Items {
			items[i] = item.Native()
		}

		return items

	case KindObject:
		m := make(orderedMap, len(v.Fields))
		for i, f := range v.Fields {
			m[i] = yaml.MapItem{Key: f.Key, Value: f.Value.Native()}
		}

		return m

	case KindVariant:
		switch {
		case v.Payload == nil:
			return v.Text

		case v.Payload.Kind == KindTuple && len(v.Payload.Items) == 1:
			return orderedMap{{Key: v.Text, Value: v.Payload.Items[0].Native()}}

		default:
			return orderedMap{{Key: v.Text, Value: v.Payload.Native()}}
		}

	default:
		return nil
	}
}

// orderedMap is an object whose keys keep their source order when encoded
// as JSON or YAML.
type orderedMap []yaml.MapItem

// MarshalYAML implements yaml.InterfaceMarshaler.
func (m orderedMap) MarshalYAML() (any, error) {
	return yaml.MapSlice(m), nil
}

// MarshalJSON implements json.Marshaler.
func (m orderedMap) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteByte('{')

	for i, item := range m {
		if i > 0 {
			buf.WriteByte(',')
		}

		key, err := marshalJSON(item.Key)
		if err != nil {
			return nil, err
		}

		value, err := marshalJSON(item.Value)
		if err != nil {
			return nil, err
		}

		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(value)
	}

	buf.WriteByte('}')

	return buf.Bytes(), nil
}

// marshalJSON is json.Marshal without HTML escaping.
func marshalJSON(v any) ([]byte, error) {
	var buf bytes.Buffer

	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)

	if err := enc.Encode(v); err != nil {
		return nil, err
	}

	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

// EncodeJSON writes v as JSON to w, ending in a newline. Indent 0 writes
// compact JSON.
func EncodeJSON(w io.Writer, v *Value, indent int) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)

	if indent > 0 {
		enc.SetIndent("", strings.Repeat(" ", indent))
	}

	return enc.Encode(v.Native())
}

// FormatJSON returns v as JSON, ending in a newline.
func FormatJSON(v *Value, indent int) (string, error) {
	var sb strings.Builder

	if err := EncodeJSON(&sb, v, indent); err != nil {
		return "", err
	}

	return sb.String(), nil
}

// FormatYAML returns v as YAML, ending in a newline. Indent 0 writes flow
// style.
func FormatYAML(v *Value, indent int) (string, error) {
	var opts []yaml.EncodeOption
	if indent > 0 {
		opts = append(opts, yaml.Indent(indent))
	} else {
		opts = append(opts, yaml.Flow(true))
	}

	data, err := yaml.MarshalWithOptions(v.Native(), opts...)
	if err != nil {
		return "", err
	}

	s := string(data)
	if !strings.HasSuffix(s, "\n") {
		s += "\n"
	}

	return s, nil
}

// EncodeYAML writes v as YAML to w, ending in a newline.
func EncodeYAML(w io.Writer, v *Value, indent int) error {
	s, err := FormatYAML(v, indent)
	if err != nil {
		return err
	}

	_, err = io.WriteString(w, s)

	return err
}
