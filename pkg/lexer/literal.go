package lexer

import (
	"errors"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/xplshn/zlex/pkg/token"
)

func isLetter(c int) bool    { return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c == '_' }
func isDigit(c int) bool     { return c >= '0' && c <= '9' }
func isIdentPart(c int) bool { return isLetter(c) || isDigit(c) }

func isHexDigit(c int) bool {
	return isDigit(c) || c >= 'a' && c <= 'f' || c >= 'A' && c <= 'F'
}

func isDigitOf(c, base int) bool {
	switch base {
	case 2:
		return c == '0' || c == '1'
	case 8:
		return c >= '0' && c <= '7'
	case 16:
		return isHexDigit(c)
	}
	return isDigit(c)
}

// identifier scans the rest of an identifier run, then resolves the text
// against the keyword table and the primitive type table, in that order.
func (l *Lexer) identifier(start Mark, _ byte) token.Token {
	for isIdentPart(l.cur.Current()) {
		l.cur.Advance()
	}
	value := l.cur.Text(start)
	if kw, ok := token.LookupKeyword(value); ok {
		tok := l.makeToken(token.Keyword, "", start)
		tok.Keyword = kw
		return tok
	}
	if prim, ok := token.LookupPrimitive(value); ok {
		tok := l.makeToken(token.Primitive, "", start)
		tok.Primitive = prim
		return tok
	}
	return l.makeToken(token.Ident, value, start)
}

func (l *Lexer) builtin(start Mark, lead byte) token.Token {
	if !l.builtins {
		return l.unknownByte(start, lead)
	}
	switch c := l.cur.Current(); {
	case isLetter(c):
		name := l.cur.Mark()
		for isIdentPart(l.cur.Current()) {
			l.cur.Advance()
		}
		return l.makeToken(token.Builtin, l.cur.Text(name), start)
	case c == '"':
		l.cur.Advance()
		if body, ok := l.stringBody(); ok {
			return l.makeToken(token.Ident, body, start)
		}
		return l.unknown(token.UnterminatedString, start)
	}
	return l.unknownByte(start, lead)
}

func (l *Lexer) stringLiteral(start Mark, _ byte) token.Token {
	if body, ok := l.stringBody(); ok {
		return l.makeToken(token.String, body, start)
	}
	return l.unknown(token.UnterminatedString, start)
}

// stringBody scans up to and including the closing quote and returns the
// raw text between the quotes. A backslash only keeps the next byte from
// ending the literal. It stops before a newline and reports false.
func (l *Lexer) stringBody() (string, bool) {
	body := l.cur.Mark()
	for {
		switch l.cur.Current() {
		case End, '\n':
			return "", false
		case '"':
			text := l.cur.Text(body)
			l.cur.Advance()
			return text, true
		case '\\':
			l.cur.Advance()
			if c := l.cur.Current(); c == End || c == '\n' {
				return "", false
			}
			l.cur.Advance()
		default:
			l.cur.Advance()
		}
	}
}

func (l *Lexer) charLiteral(start Mark, _ byte) token.Token {
	var value rune
	switch c := l.cur.Current(); c {
	case End, '\n':
		return l.unknown(token.UnterminatedChar, start)
	case '\'':
		l.cur.Advance()
		return l.unknown(token.MalformedChar, start)
	case '\\':
		l.cur.Advance()
		r, ok := l.escape()
		if !ok {
			l.match('\'')
			return l.unknown(token.InvalidEscape, start)
		}
		value = r
	default:
		r, ok := l.codepoint()
		if !ok {
			l.match('\'')
			return l.unknown(token.MalformedChar, start)
		}
		value = r
	}

	switch l.cur.Current() {
	case '\'':
		l.cur.Advance()
		tok := l.makeToken(token.Char, "", start)
		tok.Char = value
		return tok
	case End, '\n':
		return l.unknown(token.UnterminatedChar, start)
	}
	return l.unknown(token.MalformedChar, start)
}

// codepoint consumes one UTF-8 encoded codepoint. An invalid encoding
// consumes a single byte and reports false.
func (l *Lexer) codepoint() (rune, bool) {
	r, size := utf8.DecodeRune(l.cur.src[l.cur.pos:])
	for range size {
		l.cur.Advance()
	}
	return r, r != utf8.RuneError || size > 1
}

// escape decodes the escape sequence after a backslash. On failure the
// offending byte is left unconsumed unless it belongs to the sequence.
func (l *Lexer) escape() (rune, bool) {
	c := l.cur.Current()
	switch c {
	case 'n':
		l.cur.Advance()
		return '\n', true
	case 'r':
		l.cur.Advance()
		return '\r', true
	case 't':
		l.cur.Advance()
		return '\t', true
	case '\\', '\'', '"':
		l.cur.Advance()
		return rune(c), true
	case 'x':
		l.cur.Advance()
		var val rune
		for range 2 {
			d := l.cur.Current()
			if !isHexDigit(d) {
				return 0, false
			}
			l.cur.Advance()
			val = val*16 + hexValue(d)
		}
		return val, true
	case 'u':
		l.cur.Advance()
		if !l.match('{') {
			return 0, false
		}
		var val rune
		digits, tooBig := 0, false
		for isHexDigit(l.cur.Current()) {
			if val = val*16 + hexValue(l.cur.Advance()); val > utf8.MaxRune {
				tooBig, val = true, 0
			}
			digits++
		}
		if !l.match('}') || digits == 0 || tooBig || (val >= 0xD800 && val <= 0xDFFF) {
			return 0, false
		}
		return val, true
	case End, '\n':
		return 0, false
	}
	l.cur.Advance()
	return 0, false
}

func hexValue(c int) rune {
	switch {
	case c >= 'a':
		return rune(c - 'a' + 10)
	case c >= 'A':
		return rune(c - 'A' + 10)
	}
	return rune(c - '0')
}

// number scans an integer or float literal. Radix prefixes 0x, 0o and 0b
// select the digit alphabet; only decimal and hex literals may be floats,
// with exponent markers e and p respectively.
func (l *Lexer) number(start Mark, lead byte) token.Token {
	base, prefix := 10, 0
	if lead == '0' {
		switch l.cur.Current() {
		case 'x':
			base = 16
		case 'o':
			base = 8
		case 'b':
			base = 2
		}
		if base != 10 {
			prefix = 2
			l.cur.Advance()
			if !isDigitOf(l.cur.Current(), base) {
				return l.unknown(token.MalformedNumber, start)
			}
			l.cur.Advance()
		}
	}
	l.digits(base)

	isFloat := false
	if base == 10 || base == 16 {
		if l.cur.Current() == '.' && isDigitOf(l.cur.Peek(), base) {
			l.cur.Advance()
			l.digits(base)
			isFloat = true
		}
		if l.exponent(base) {
			isFloat = true
		}
	}

	text := l.cur.Text(start)
	clean := strings.ReplaceAll(text, "_", "")
	if isFloat {
		if base == 16 && !strings.ContainsAny(clean, "pP") {
			clean += "p0"
		}
		val, err := strconv.ParseFloat(clean, 64)
		if err != nil && !errors.Is(err, strconv.ErrRange) {
			return l.unknown(token.MalformedNumber, start)
		}
		tok := l.makeToken(token.Float, "", start)
		tok.Float = val
		return tok
	}

	val, err := strconv.ParseUint(clean[prefix:], base, 64)
	if err != nil {
		if errors.Is(err, strconv.ErrRange) {
			return l.unknown(token.IntegerOverflow, start)
		}
		return l.unknown(token.MalformedNumber, start)
	}
	tok := l.makeToken(token.Integer, "", start)
	tok.Int = val
	return tok
}

// digits consumes a run of digits in base. A separator is taken only when a
// digit follows it; the caller has already consumed the digit before it.
func (l *Lexer) digits(base int) {
	for {
		c := l.cur.Current()
		switch {
		case isDigitOf(c, base):
			l.cur.Advance()
		case c == '_' && l.separators && isDigitOf(l.cur.Peek(), base):
			l.cur.Advance()
		default:
			return
		}
	}
}

// exponent consumes an exponent only when marker, optional sign and at least
// one decimal digit are all present.
func (l *Lexer) exponent(base int) bool {
	c := l.cur.Current()
	if base == 10 && c != 'e' && c != 'E' || base == 16 && c != 'p' && c != 'P' {
		return false
	}
	n := 1
	if sign := l.cur.Peek(); sign == '+' || sign == '-' {
		n = 2
	}
	if !isDigit(l.cur.PeekAt(n)) {
		return false
	}
	for range n {
		l.cur.Advance()
	}
	l.digits(10)
	return true
}
