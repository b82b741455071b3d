package ason

import "slices"

// Kind indicates the kind of a [Value].
type Kind int

const (
	// KindInteger is an integer number with an optional type suffix.
	KindInteger Kind = iota

	// KindFloat is a floating-point number with an optional type suffix.
	KindFloat

	// KindBoolean is true or false.
	KindBoolean

	// KindChar is a single Unicode character.
	KindChar

	// KindString is a string.
	KindString

	// KindDate is a date-time literal.
	KindDate

	// KindBytes is a sequence of octets.
	KindBytes

	// KindList is an ordered sequence of values.
	KindList

	// KindTuple is an ordered, fixed-length sequence of values.
	KindTuple

	// KindObject is an ordered set of named fields.
	KindObject

	// KindVariant is an enumeration member with an optional payload.
	KindVariant
)

// String returns a string representation of the value kind.
func (k Kind) String() string {
	switch k {
	case KindInteger:
		return "Integer"

	case KindFloat:
		return "Float"

	case KindBoolean:
		return "Boolean"

	case KindChar:
		return "Char"

	case KindString:
		return "String"

	case KindDate:
		return "Date"

	case KindBytes:
		return "Bytes"

	case KindList:
		return "List"

	case KindTuple:
		return "Tuple"

	case KindObject:
		return "Object"

	case KindVariant:
		return "Variant"

	default:
		return "Unknown"
	}
}

// Value is one ASON document value.
//
// Which fields are meaningful depends on Kind:
//
//   - Integer, Float: Text holds the canonical decimal text, Suffix the
//     optional type suffix (e.g. "u8", "f32").
//   - Boolean: Bool.
//   - Char, String: Text holds the decoded content.
//   - Date: Text holds the date-time as written.
//   - Bytes: Bytes.
//   - List, Tuple: Items.
//   - Object: Fields, in source order.
//   - Variant: Text holds "Type::Member"; Payload is nil, a Tuple, or an
//     Object.
type Value struct {
	Kind    Kind
	Text    string
	Suffix  string
	Bool    bool
	Bytes   []byte
	Items   []*Value
	Fields  []*Field
	Payload *Value
	Pos     Position
}

// Field is a named member of an Object.
type Field struct {
	Key   string
	Value *Value
}

// Position identifies a location in source text.
type Position struct {
	Offset int
	Line   int
	Column int
}

// Integer returns an integer value. The text must be canonical decimal.
func Integer(text, suffix string) *Value {
	return &Value{Kind: KindInteger, Text: text, Suffix: suffix}
}

// Float returns a floating-point value. The text must be canonical.
func Float(text, suffix string) *Value {
	return &Value{Kind: KindFloat, Text: text, Suffix: suffix}
}

// Boolean returns a boolean value.
func Boolean(b bool) *Value {
	return &Value{Kind: KindBoolean, Bool: b}
}

// Char returns a char value.
func Char(r rune) *Value {
	return &Value{Kind: KindChar, Text: string(r)}
}

// String returns a string value.
func String(s string) *Value {
	return &Value{Kind: KindString, Text: s}
}

// Date returns a date value from its literal text.
func Date(text string) *Value {
	return &Value{Kind: KindDate, Text: text}
}

// Bytes returns a byte data value.
func Bytes(b []byte) *Value {
	return &Value{Kind: KindBytes, Bytes: b}
}

// List returns a list of the given values.
func List(items ...*Value) *Value {
	return &Value{Kind: KindList, Items: items}
}

// Tuple returns a tuple of the given values, in order.
func Tuple(items ...*Value) *Value {
	return &Value{Kind: KindTuple, Items: items}
}

// Object returns an object with the given fields, in order.
func Object(fields ...*Field) *Value {
	return &Value{Kind: KindObject, Fields: fields}
}

// Variant returns an enumeration variant. The payload may be nil, a Tuple,
// or an Object.
func Variant(name string, payload *Value) *Value {
	return &Value{Kind: KindVariant, Text: name, Payload: payload}
}

// Get returns the value of the named field of an Object.
func (v *Value) Get(key string) (*Value, bool) {
	if v == nil || v.Kind != KindObject {
		return nil, false
	}

	for _, f := range v.Fields {
		if f.Key == key {
			return f.Value, true
		}
	}

	return nil, false
}

// Equal reports whether v and w are structurally equal. Source positions
// are ignored.
func (v *Value) Equal(w *Value) bool {
	if v == nil || w == nil {
		return v == w
	}

	if v.Kind != w.Kind {
		return false
	}

	switch v.Kind {
	case KindInteger, KindFloat:
		return v.Text == w.Text && v.Suffix == w.Suffix

	case KindBoolean:
		return v.Bool == w.Bool

	case KindChar, KindString, KindDate:
		return v.Text == w.Text

	case KindBytes:
		return slices.Equal(v.Bytes, w.Bytes)

	case KindList, KindTuple:
		return slices.EqualFunc(v.Items, w.Items, (*Value).Equal)

	case KindObject:
		return slices.EqualFunc(v.Fields, w.Fields, func(a, b *Field) bool {
			return a.Key == b.Key && a.Value.Equal(b.Value)
		})

	case KindVariant:
		return v.Text == w.Text && v.Payload.Equal(w.Payload)

	default:
		return false
	}
}
