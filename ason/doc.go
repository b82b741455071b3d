// Package ason reads and writes ASON documents.
//
// ASON is a JSON-like text format with a richer set of value kinds: typed
// numbers, chars, dates, byte data, tuples, and enumeration variants.
//
// # Grammar
//
// Informal EBNF:
//
//	Document  → Value EOF
//	Value     → Number | Boolean | Char | String | Date | Bytes
//	          | List | Tuple | Object | Variant
//	List      → '[' (Value (Sep Value)* Sep?)? ']'
//	Tuple     → '(' (Value (Sep Value)* Sep?)? ')'
//	Object    → '{' (Key ':' Value (Sep Key ':' Value)* Sep?)? '}'
//	Variant   → Identifier '::' Identifier (Tuple | Object)?
//	Sep       → ',' | whitespace
//
// Numbers may carry a type suffix such as 123_u8 or 3.14_f32. Strings are
// double quoted, raw strings use r"...", dates use d"...", and byte data
// uses h"..." with hexadecimal octets. Comments are // to end of line or
// /* ... */ (nestable).
//
// # Example
//
//	{
//	    id: 123
//	    name: "John"
//	    tags: ["admin", "staff"]
//	    joined: d"2024-03-17 10:01:11Z"
//	    status: Status::Active
//	    origin: (10.5_f32, -3.25_f32)
//	}
//
// # Rendering
//
// [Format] and [Encode] write the canonical ASON text of a [Value]; the
// [Printer] type selects between ASON, JSON, and YAML output.
package ason
