package lexer

import (
	"strconv"
	"strings"
	"unicode/utf8"
)

// NumKind is the normalized type tag of a numeric literal.
type NumKind int

const (
	NumInt NumKind = iota
	NumUint
	NumLong
	NumUlong
	NumFloat
	NumDouble
	NumLongDouble
)

func (k NumKind) String() string {
	names := []string{"int", "unsigned int", "long", "unsigned long", "float", "double", "long double"}
	if int(k) < len(names) {
		return names[k]
	}
	return "?"
}

// IsFloat reports whether k is one of the floating kinds.
func (k NumKind) IsFloat() bool {
	return k >= NumFloat
}

// Number is a decoded numeric literal. Int holds the value of integer
// kinds, Float the value of floating kinds.
type Number struct {
	Kind  NumKind
	Int   uint64
	Float float64
}

// Errors returned by the decoders carry a Pos whose Offset is relative to
// the decoded text; Line and Column are left zero.

func decodeErr(kind ErrorKind, off int, format string, args ...any) *Error {
	e := errorf(kind, Pos{}, format, args...)
	e.Pos.Offset = off
	return e
}

// DecodeNumber interprets the text of a numeric literal: hexadecimal,
// octal, decimal or floating, with an optional type suffix.
func DecodeNumber(text string) (Number, error) {
	if len(text) > 1 && text[0] == '0' && (text[1] == 'x' || text[1] == 'X') {
		return decodeHex(text)
	}
	n, isFloat := floatPrefix(text)
	if isFloat {
		return decodeFloat(text[:n], text[n:])
	}
	if n == 0 {
		return Number{}, decodeErr(InvalidNumber, 0, "malformed number %q", text)
	}
	return decodeInt(text[:n], text[n:])
}

// floatPrefix returns the length of the leading digits[.digits][e[+-]digits]
// run and whether it has a fraction or exponent.
func floatPrefix(text string) (int, bool) {
	i := skipDigits(text, 0)
	isFloat := false
	if i < len(text) && text[i] == '.' {
		isFloat = true
		i = skipDigits(text, i+1)
	}
	if i < len(text) && (text[i] == 'e' || text[i] == 'E') {
		j := i + 1
		if j < len(text) && (text[j] == '+' || text[j] == '-') {
			j++
		}
		if j < len(text) && isDigit(text[j]) {
			isFloat = true
			i = skipDigits(text, j)
		}
	}
	return i, isFloat
}

func skipDigits(s string, i int) int {
	for i < len(s) && isDigit(s[i]) {
		i++
	}
	return i
}

func decodeHex(text string) (Number, error) {
	i := 2
	for i < len(text) && isHexDigit(text[i]) {
		i++
	}
	digits := text[2:i]
	if digits == "" {
		return Number{}, decodeErr(InvalidNumber, 0, "hexadecimal literal %q has no digits", text)
	}
	kind, ok := intSuffix(text[i:])
	if !ok {
		return Number{}, decodeErr(InvalidNumber, i, "invalid suffix %q on integer literal", text[i:])
	}
	v, err := strconv.ParseUint(digits, 16, 64)
	if err != nil {
		return Number{}, decodeErr(InvalidNumber, 0, "integer literal %q out of range", text)
	}
	return Number{Kind: kind, Int: v}, nil
}

func decodeInt(digits, suffix string) (Number, error) {
	kind, ok := intSuffix(suffix)
	if !ok {
		return Number{}, decodeErr(InvalidNumber, len(digits), "invalid suffix %q on integer literal", suffix)
	}
	base := 10
	if len(digits) > 1 && digits[0] == '0' {
		base = 8
		for i := 1; i < len(digits); i++ {
			if digits[i] > '7' {
				return Number{}, decodeErr(InvalidNumber, i, "invalid digit %q in octal literal", digits[i])
			}
		}
	}
	v, err := strconv.ParseUint(digits, base, 64)
	if err != nil {
		return Number{}, decodeErr(InvalidNumber, 0, "integer literal %q out of range", digits+suffix)
	}
	return Number{Kind: kind, Int: v}, nil
}

func decodeFloat(mantissa, suffix string) (Number, error) {
	var kind NumKind
	switch suffix {
	case "":
		kind = NumDouble
	case "f", "F":
		kind = NumFloat
	case "l", "L":
		kind = NumLongDouble
	default:
		return Number{}, decodeErr(InvalidNumber, len(mantissa), "invalid suffix %q on floating literal", suffix)
	}
	v, err := strconv.ParseFloat(mantissa, 64)
	if err != nil {
		return Number{}, decodeErr(InvalidNumber, 0, "floating literal %q out of range", mantissa+suffix)
	}
	return Number{Kind: kind, Float: v}, nil
}

// intSuffix maps an integer suffix (u, l, ll in any order and case) to a kind.
func intSuffix(s string) (NumKind, bool) {
	switch strings.ToLower(s) {
	case "":
		return NumInt, true
	case "u":
		return NumUint, true
	case "l", "ll":
		return NumLong, true
	case "ul", "lu", "ull", "llu":
		return NumUlong, true
	}
	return 0, false
}

// DecodeString resolves the escape sequences in the body of a string
// literal (the text between the quotes). An escape stands for the code
// point of its value, as in DecodeChar, so `\xff` decodes to U+00FF.
func DecodeString(body string) (string, error) {
	if !strings.Contains(body, `\`) {
		return body, nil
	}
	var sb strings.Builder
	sb.Grow(len(body))
	for i := 0; i < len(body); {
		if body[i] != '\\' {
			sb.WriteByte(body[i])
			i++
			continue
		}
		b, n, err := decodeEscape(body, i)
		if err != nil {
			return "", err
		}
		sb.WriteRune(rune(b))
		i += n
	}
	return sb.String(), nil
}

// DecodeChar resolves the body of a character literal, which must hold
// exactly one character after escape resolution.
func DecodeChar(body string) (rune, error) {
	if body == "" {
		return 0, decodeErr(InvalidCharLiteral, 0, "empty character literal")
	}
	var r rune
	var n int
	if body[0] == '\\' {
		b, width, err := decodeEscape(body, 0)
		if err != nil {
			return 0, err
		}
		r, n = rune(b), width
	} else {
		r, n = utf8.DecodeRuneInString(body)
	}
	if n != len(body) {
		return 0, decodeErr(InvalidCharLiteral, 0, "character literal %q holds more than one character", body)
	}
	return r, nil
}

// decodeEscape decodes the escape sequence starting at s[i] (a backslash)
// and returns its value and width.
func decodeEscape(s string, i int) (byte, int, error) {
	if i+1 >= len(s) {
		return 0, 0, decodeErr(InvalidEscape, i, "incomplete escape sequence")
	}
	switch c := s[i+1]; c {
	case '"', '\\', '/', '\'':
		return c, 2, nil
	case 'b':
		return '\b', 2, nil
	case 'f':
		return '\f', 2, nil
	case 'n':
		return '\n', 2, nil
	case 'r':
		return '\r', 2, nil
	case 't':
		return '\t', 2, nil
	case 'x':
		if i+3 >= len(s) || !isHexDigit(s[i+2]) || !isHexDigit(s[i+3]) {
			return 0, 0, decodeErr(InvalidEscape, i, `\x escape needs exactly two hex digits`)
		}
		v, _ := strconv.ParseUint(s[i+2:i+4], 16, 8)
		return byte(v), 4, nil
	default:
		if !isOctalDigit(c) {
			return 0, 0, decodeErr(InvalidEscape, i, "unknown escape sequence \\%c", c)
		}
		j := i + 1
		v := 0
		for j < len(s) && j < i+4 && isOctalDigit(s[j]) {
			v = v*8 + int(s[j]-'0')
			j++
		}
		if v > 0xff {
			return 0, 0, decodeErr(InvalidEscape, i, "octal escape %q out of range", s[i:j])
		}
		return byte(v), j - i, nil
	}
}

func isHexDigit(ch byte) bool {
	return isDigit(ch) || ('a' <= ch && ch <= 'f') || ('A' <= ch && ch <= 'F')
}

func isOctalDigit(ch byte) bool {
	return '0' <= ch && ch <= '7'
}
