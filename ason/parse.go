package ason

import (
	"encoding/hex"
	"errors"
	"io"
	"log/slog"
	"math"
	"math/big"
	"strconv"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"
)

// DefaultMaxDepth is the default maximum nesting depth of containers.
// Users may modify this before parsing to change the default.
var DefaultMaxDepth = 512

// ErrReadInput is returned by [ParseReader] when the reader fails.
var ErrReadInput = NewError("failed to read input")

// Option configures parsing behavior.
type Option func(*parser)

// WithMaxDepth sets the maximum nesting depth of containers.
func WithMaxDepth(depth int) Option {
	return func(p *parser) {
		p.maxDepth = depth
	}
}

// Parse parses a complete ASON document from source text.
//
// On failure the returned error is a *[ParseError] that carries the source,
// so its message shows the offending line and column.
func Parse(source string, opts ...Option) (*Value, error) {
	p := &parser{
		input:    []byte(source),
		line:     1,
		col:      1,
		maxDepth: DefaultMaxDepth,
	}

	for _, opt := range opts {
		opt(p)
	}

	v, err := p.parseDocument()
	if err != nil {
		if pe, ok := AsParseError(err); ok {
			pe.Source = source
		}

		return nil, err
	}

	return v, nil
}

// ParseReader reads r to EOF and parses the result as a document.
func ParseReader(r io.Reader, opts ...Option) (*Value, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, ErrReadInput.Wrap(err)
	}

	return Parse(string(data), opts...)
}

// parser holds the parser state.
type parser struct {
	input    []byte
	pos      int
	line     int
	col      int
	maxDepth int
}

// parseDocument parses: Value EOF.
func (p *parser) parseDocument() (*Value, error) {
	err := p.skipSpace()
	if err != nil {
		return nil, err
	}

	if p.eof() {
		return nil, p.fail(ErrUnexpectedEOF, "value")
	}

	v, err := p.parseValue(0)
	if err != nil {
		return nil, err
	}

	err = p.skipSpace()
	if err != nil {
		return nil, err
	}

	if !p.eof() {
		return nil, p.fail(ErrTrailingInput)
	}

	return v, nil
}

// parseValue parses any value at the current position.
func (p *parser) parseValue(depth int) (*Value, error) {
	if depth > p.maxDepth {
		return nil, p.fail(ErrMaxDepth.With(slog.Int("max", p.maxDepth)))
	}

	pos := p.position()

	var (
		v   *Value
		err error
	)

	switch ch := p.peek(); {
	case p.eof():
		return nil, p.fail(ErrUnexpectedEOF, "value")

	case ch == '[':
		v, err = p.parseList(depth)

	case ch == '(':
		v, err = p.parseTuple(depth)

	case ch == '{':
		v, err = p.parseObject(depth)

	case ch == '"':
		var s string

		s, err = p.parseQuoted('"', false)
		v = String(s)

	case ch == '\'':
		v, err = p.parseChar()

	case ch == '-' || ch == '+' || isDigit(ch):
		v, err = p.parseNumber()

	case isIdentifierStart(ch):
		v, err = p.parseWord(depth)

	default:
		return nil, p.fail(ErrSyntax, "value")
	}

	if err != nil {
		return nil, err
	}

	v.Pos = pos

	return v, nil
}

// parseList parses: '[' (Value (Sep Value)* Sep?)? ']'.
func (p *parser) parseList(depth int) (*Value, error) {
	items := make([]*Value, 0)

	err := p.parseSequence('[', ']', func() error {
		item, err := p.parseValue(depth + 1)
		if err != nil {
			return err
		}

		items = append(items, item)

		return nil
	})
	if err != nil {
		return nil, err
	}

	return List(items...), nil
}

// parseTuple parses: '(' (Value (Sep Value)* Sep?)? ')'.
func (p *parser) parseTuple(depth int) (*Value, error) {
	items := make([]*Value, 0)

	err := p.parseSequence('(', ')', func() error {
		item, err := p.parseValue(depth + 1)
		if err != nil {
			return err
		}

		items = append(items, item)

		return nil
	})
	if err != nil {
		return nil, err
	}

	return Tuple(items...), nil
}

// parseObject parses: '{' (Key ':' Value (Sep Key ':' Value)* Sep?)? '}'.
func (p *parser) parseObject(depth int) (*Value, error) {
	fields := make([]*Field, 0)

	err := p.parseSequence('{', '}', func() error {
		key, err := p.parseKey()
		if err != nil {
			return err
		}

		err = p.skipSpace()
		if err != nil {
			return err
		}

		if !p.expect(':') {
			return p.fail(ErrSyntax.With(slog.String("key", key)), ":")
		}

		err = p.skipSpace()
		if err != nil {
			return err
		}

		value, err := p.parseValue(depth + 1)
		if err != nil {
			return err
		}

		fields = append(fields, &Field{Key: key, Value: value})

		return nil
	})
	if err != nil {
		return nil, err
	}

	return Object(fields...), nil
}

// parseSequence consumes the open delimiter, then calls elem for each
// element until the close delimiter. Elements are separated by a comma,
// whitespace, or both.
func (p *parser) parseSequence(open, close rune, elem func() error) error {
	p.expect(open)

	for {
		err := p.skipSpace()
		if err != nil {
			return err
		}

		if p.eof() {
			return p.fail(ErrUnexpectedEOF, string(close))
		}

		if p.expect(close) {
			return nil
		}

		err = elem()
		if err != nil {
			return err
		}

		before := p.pos

		err = p.skipSpace()
		if err != nil {
			return err
		}

		spaced := p.pos != before

		switch {
		case p.expect(','):
		case p.eof():
			return p.fail(ErrUnexpectedEOF, string(close))
		case p.peek() == close:
		case !spaced:
			return p.fail(ErrSyntax, ",", string(close))
		}
	}
}

// parseKey parses an object key: an identifier or a quoted string.
func (p *parser) parseKey() (string, error) {
	if p.peek() == '"' {
		return p.parseQuoted('"', false)
	}

	if !isIdentifierStart(p.peek()) {
		return "", p.fail(ErrSyntax, "key")
	}

	return p.parseIdentifier(), nil
}

// parseWord parses a value that begins with an identifier character:
// booleans, NaN/Inf, prefixed string literals, and variants.
func (p *parser) parseWord(depth int) (*Value, error) {
	if p.peekAt(1) == '"' {
		switch p.peek() {
		case 'd':
			return p.parseDate()
		case 'h':
			return p.parseBytes()
		case 'r':
			p.advance()

			s, err := p.parseQuoted('"', true)
			if err != nil {
				return nil, err
			}

			return String(s), nil
		}
	}

	pos := p.position()
	word := p.parseIdentifier()

	switch word {
	case "true":
		return Boolean(true), nil

	case "false":
		return Boolean(false), nil
	}

	if v, ok := specialFloat("", word); ok {
		return v, nil
	}

	if p.peekN(2) != "::" {
		return nil, p.failAt(pos,
			ErrSyntax.With(slog.String("identifier", word)), "value")
	}

	p.advance()
	p.advance()

	if !isIdentifierStart(p.peek()) {
		return nil, p.fail(ErrSyntax, "variant member")
	}

	name := word + "::" + p.parseIdentifier()

	var payload *Value

	switch p.peek() {
	case '(':
		tuple, err := p.parseValue(depth + 1)
		if err != nil {
			return nil, err
		}

		payload = tuple

	case '{':
		object, err := p.parseValue(depth + 1)
		if err != nil {
			return nil, err
		}

		payload = object
	}

	return Variant(name, payload), nil
}

// parseNumber scans a number token and converts it to a value.
func (p *parser) parseNumber() (*Value, error) {
	pos := p.position()
	start := p.pos

	sign := ""
	if ch := p.peek(); ch == '-' || ch == '+' {
		sign = string(ch)
		p.advance()
	}

	if isIdentifierStart(p.peek()) {
		word := p.parseIdentifier()
		if v, ok := specialFloat(sign, word); ok {
			return v, nil
		}

		return nil, p.failAt(pos, ErrInvalidNumber.With(
			slog.String("literal", sign+word)))
	}

	if !isDigit(p.peek()) {
		return nil, p.failAt(pos, ErrInvalidNumber, "digit")
	}

	var last rune

	for !p.eof() {
		ch := p.peek()

		switch {
		case isDigit(ch), isLetter(ch), ch == '_', ch == '.':
		case (ch == '+' || ch == '-') && (last == 'e' || last == 'E') &&
			!isRadixLiteral(string(p.input[start:p.pos])):
		default:
			goto done
		}

		last = ch

		p.advance()
	}

done:
	v, err := numberLiteral(string(p.input[start:p.pos]))
	if err != nil {
		return nil, p.failAt(pos, err)
	}

	return v, nil
}

// parseChar parses a single-quoted char literal.
func (p *parser) parseChar() (*Value, error) {
	pos := p.position()

	s, err := p.parseQuoted('\'', false)
	if err != nil {
		return nil, err
	}

	if utf8.RuneCountInString(s) != 1 {
		return nil, p.failAt(pos, ErrInvalidChar.With(slog.String("literal", s)))
	}

	r, _ := utf8.DecodeRuneInString(s)

	return Char(r), nil
}

// parseDate parses d"...".
func (p *parser) parseDate() (*Value, error) {
	pos := p.position()

	p.advance() // skip 'd'

	s, err := p.parseQuoted('"', true)
	if err != nil {
		return nil, err
	}

	if _, ok := parseDate(s); !ok {
		return nil, p.failAt(pos, ErrInvalidDate.With(slog.String("literal", s)))
	}

	return Date(s), nil
}

// parseBytes parses h"..." where the content is hexadecimal octets,
// optionally separated by whitespace.
func (p *parser) parseBytes() (*Value, error) {
	pos := p.position()

	p.advance() // skip 'h'

	s, err := p.parseQuoted('"', true)
	if err != nil {
		return nil, err
	}

	digits := strings.Join(strings.Fields(s), "")

	b, err := hex.DecodeString(digits)
	if err != nil {
		return nil, p.failAt(pos, ErrInvalidBytes.Wrap(err))
	}

	return Bytes(b), nil
}

// parseQuoted parses a literal delimited by quote. Escape sequences are
// decoded unless raw is set.
func (p *parser) parseQuoted(quote rune, raw bool) (string, error) {
	start := p.position()

	p.advance() // skip opening quote

	var sb strings.Builder

	for {
		if p.eof() {
			return "", p.failAt(start, ErrUnterminated, string(quote))
		}

		ch := p.peek()

		switch {
		case ch == quote:
			p.advance()

			return sb.String(), nil

		case ch == '\\' && !raw:
			r, err := p.parseEscape()
			if err != nil {
				return "", err
			}

			sb.WriteRune(r)

		default:
			sb.WriteRune(ch)
			p.advance()
		}
	}
}

// parseEscape decodes one backslash escape sequence.
func (p *parser) parseEscape() (rune, error) {
	pos := p.position()

	p.advance() // skip '\'

	if p.eof() {
		return 0, p.failAt(pos, ErrUnterminated)
	}

	ch := p.peek()
	p.advance()

	switch ch {
	case '\\', '"', '\'':
		return ch, nil
	case 'n':
		return '\n', nil
	case 'r':
		return '\r', nil
	case 't':
		return '\t', nil
	case '0':
		return 0, nil
	case 'u':
		if !p.expect('{') {
			return 0, p.failAt(pos, ErrInvalidEscape, "{")
		}

		start := p.pos
		for !p.eof() && p.peek() != '}' && p.pos-start < 8 {
			p.advance()
		}

		digits := string(p.input[start:p.pos])

		if !p.expect('}') {
			return 0, p.failAt(pos, ErrInvalidEscape, "}")
		}

		n, err := strconv.ParseUint(digits, 16, 32)
		if err != nil || !utf8.ValidRune(rune(n)) {
			return 0, p.failAt(pos,
				ErrInvalidEscape.With(slog.String("code", digits)))
		}

		return rune(n), nil
	}

	return 0, p.failAt(pos, ErrInvalidEscape.With(slog.String("escape", string(ch))))
}

// parseIdentifier consumes identifier characters. The caller must have
// checked that the current character starts an identifier.
func (p *parser) parseIdentifier() string {
	start := p.pos

	p.advance()

	for !p.eof() && isIdentifierContinue(p.peek()) {
		p.advance()
	}

	return string(p.input[start:p.pos])
}

// numberLiteral converts the text of a number token into a value.
func numberLiteral(text string) (*Value, error) {
	sign, body := "", text
	if body != "" && (body[0] == '-' || body[0] == '+') {
		sign, body = body[:1], body[1:]
	}

	radix := isRadixLiteral(body)
	hexLiteral := radix && (body[1] == 'x' || body[1] == 'X')

	suffix := ""

	for _, s := range numberSuffixes {
		if hexLiteral && s[0] == 'f' {
			continue
		}

		if strings.HasSuffix(body, "_"+s) {
			suffix = s
			body = strings.TrimSuffix(body, "_"+s)

			break
		}
	}

	invalid := ErrInvalidNumber.With(slog.String("literal", text))

	if strings.HasPrefix(suffix, "f") ||
		(!radix && strings.ContainsAny(body, ".eE")) {
		if radix || (suffix != "" && suffix[0] != 'f') {
			return nil, invalid
		}

		bits := 64
		if suffix == "f32" {
			bits = 32
		}

		clean, ok := stripDigitSeparators(body)
		if !ok {
			return nil, invalid
		}

		f, err := strconv.ParseFloat(sign+clean, bits)
		if err != nil {
			if errors.Is(err, strconv.ErrRange) {
				return nil, ErrNumberRange.With(slog.String("literal", text))
			}

			return nil, invalid
		}

		return Float(formatFloat(f, bits), suffix), nil
	}

	n := new(big.Int)

	if radix {
		if _, ok := n.SetString(sign+body, 0); !ok {
			return nil, invalid
		}
	} else {
		clean, ok := stripDigitSeparators(body)
		if !ok {
			return nil, invalid
		}

		if _, ok := n.SetString(sign+clean, 10); !ok {
			return nil, invalid
		}
	}

	if !integerFits(n, suffix) {
		return nil, ErrNumberRange.With(
			slog.String("literal", text),
			slog.String("type", suffixType(suffix)),
		)
	}

	return Integer(n.String(), suffix), nil
}

// numberSuffixes lists the recognized number type suffixes.
var numberSuffixes = []string{
	"i8", "i16", "i32", "i64",
	"u8", "u16", "u32", "u64",
	"f32", "f64",
}

func suffixType(suffix string) string {
	if suffix == "" {
		return "default"
	}

	return suffix
}

// integerFits reports whether n is representable by the type suffix.
// Unsuffixed integers must fit in 64 bits, signed or unsigned.
func integerFits(n *big.Int, suffix string) bool {
	if suffix == "" {
		return n.IsInt64() || n.IsUint64()
	}

	bits, err := strconv.Atoi(suffix[1:])
	if err != nil {
		return false
	}

	if suffix[0] == 'u' {
		if n.Sign() < 0 || !n.IsUint64() {
			return false
		}

		return bits == 64 || n.Uint64() < 1<<bits
	}

	if !n.IsInt64() {
		return false
	}

	if bits == 64 {
		return true
	}

	x, lim := n.Int64(), int64(1)<<(bits-1)

	return x >= -lim && x < lim
}

// stripDigitSeparators removes '_' between digits. It fails on a leading,
// trailing, or doubled separator.
func stripDigitSeparators(s string) (string, bool) {
	if !strings.Contains(s, "_") {
		return s, true
	}

	if strings.HasPrefix(s, "_") || strings.HasSuffix(s, "_") ||
		strings.Contains(s, "__") {
		return "", false
	}

	return strings.ReplaceAll(s, "_", ""), true
}

// specialFloat recognizes NaN and Inf, optionally signed (Inf only) and
// suffixed with _f32 or _f64.
func specialFloat(sign, word string) (*Value, bool) {
	suffix := ""

	for _, s := range []string{"f32", "f64"} {
		if strings.HasSuffix(word, "_"+s) {
			suffix = s
			word = strings.TrimSuffix(word, "_"+s)

			break
		}
	}

	switch {
	case word == "NaN" && sign == "":
		return Float("NaN", suffix), true

	case word == "Inf" && sign == "-":
		return Float("-Inf", suffix), true

	case word == "Inf":
		return Float("Inf", suffix), true
	}

	return nil, false
}

// formatFloat returns the canonical text of a float. The result always
// reads back as a float: it contains a '.', an exponent, or is NaN/Inf.
func formatFloat(f float64, bits int) string {
	switch {
	case math.IsNaN(f):
		return "NaN"

	case math.IsInf(f, 1):
		return "Inf"

	case math.IsInf(f, -1):
		return "-Inf"
	}

	s := strconv.FormatFloat(f, 'g', -1, bits)
	if !strings.ContainsAny(s, ".e") {
		s += ".0"
	}

	return s
}

// dateLayouts are the accepted date literal layouts.
var dateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02 15:04:05.999999999Z07:00",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	time.DateOnly,
}

func parseDate(s string) (time.Time, bool) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}

	return time.Time{}, false
}

func isRadixLiteral(s string) bool {
	s = strings.TrimLeft(s, "+-")
	if len(s) < 2 || s[0] != '0' {
		return false
	}

	switch s[1] {
	case 'x', 'X', 'o', 'O', 'b', 'B':
		return true
	}

	return false
}

// Helper methods

func (p *parser) fail(err error, expected ...string) error {
	return p.failAt(p.position(), err, expected...)
}

func (p *parser) failAt(pos Position, err error, expected ...string) error {
	return &ParseError{Err: err, Position: pos, Expected: expected}
}

func (p *parser) peek() rune {
	if p.eof() {
		return 0
	}

	r, _ := utf8.DecodeRune(p.input[p.pos:])

	return r
}

// peekAt returns the byte at offset n from the current position, or 0.
func (p *parser) peekAt(n int) byte {
	if p.pos+n >= len(p.input) {
		return 0
	}

	return p.input[p.pos+n]
}

func (p *parser) peekN(n int) string {
	if p.pos+n > len(p.input) {
		return string(p.input[p.pos:])
	}

	return string(p.input[p.pos : p.pos+n])
}

func (p *parser) advance() {
	if p.eof() {
		return
	}

	r, size := utf8.DecodeRune(p.input[p.pos:])

	p.pos += size
	if r == '\n' {
		p.line++
		p.col = 1
	} else {
		p.col++
	}
}

func (p *parser) expect(ch rune) bool {
	if !p.eof() && p.peek() == ch {
		p.advance()

		return true
	}

	return false
}

func (p *parser) eof() bool {
	return p.pos >= len(p.input)
}

func (p *parser) position() Position {
	return Position{
		Offset: p.pos,
		Line:   p.line,
		Column: p.col,
	}
}

// skipSpace skips whitespace and comments.
func (p *parser) skipSpace() error {
	for !p.eof() {
		switch ch := p.peek(); {
		case unicode.IsSpace(ch):
			p.advance()

		case ch == '/' && p.peekN(2) == "//":
			p.skipLineComment()

		case ch == '/' && p.peekN(2) == "/*":
			err := p.skipBlockComment()
			if err != nil {
				return err
			}

		default:
			return nil
		}
	}

	return nil
}

func (p *parser) skipLineComment() {
	for !p.eof() && p.peek() != '\n' {
		p.advance()
	}
}

// skipBlockComment skips a block comment; block comments nest.
func (p *parser) skipBlockComment() error {
	start := p.position()
	depth := 0

	for !p.eof() {
		switch p.peekN(2) {
		case "/*":
			depth++

			p.advance()
			p.advance()

		case "*/":
			depth--

			p.advance()
			p.advance()

			if depth == 0 {
				return nil
			}

		default:
			p.advance()
		}
	}

	return p.failAt(start, ErrUnterminated, "*/")
}

// Character classification

func isDigit(r rune) bool { return r >= '0' && r <= '9' }

func isLetter(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}

func isIdentifierStart(r rune) bool {
	return unicode.In(r,
		unicode.L,  // Letter
		unicode.Nl, // Letter, Number
		unicode.Other_ID_Start,
	) || r == '_'
}

func isIdentifierContinue(r rune) bool {
	return unicode.In(r,
		unicode.L,  // Letter
		unicode.Nl, // Letter, Number
		unicode.Other_ID_Start,
		unicode.Mn, // Mark, Nonspacing
		unicode.Mc, // Mark, Spacing Combining
		unicode.Nd, // Number, Decimal Digit
		unicode.Pc, // Punctuation, Connector
		unicode.Other_ID_Continue,
	)
}

// isIdentifier reports whether s is a complete identifier.
func isIdentifier(s string) bool {
	for i, r := range s {
		if i == 0 && !isIdentifierStart(r) || i > 0 && !isIdentifierContinue(r) {
			return false
		}
	}

	return s != ""
}
