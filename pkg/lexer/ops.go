package lexer

import "github.com/xplshn/zlex/pkg/token"

type scanFunc func(l *Lexer, start Mark, lead byte) token.Token

// dispatch has exactly one entry per lead byte. Whitespace never reaches it.
var dispatch [256]scanFunc

func init() {
	for i := range dispatch {
		dispatch[i] = (*Lexer).unknownByte
	}
	single := func(t token.Type) scanFunc {
		return func(l *Lexer, start Mark, _ byte) token.Token { return l.makeToken(t, "", start) }
	}
	pair := func(second byte, then, elseType token.Type) scanFunc {
		return func(l *Lexer, start Mark, _ byte) token.Token { return l.matchThen(second, then, elseType, start) }
	}

	for c := 'a'; c <= 'z'; c++ {
		dispatch[c] = (*Lexer).identifier
		dispatch[c-'a'+'A'] = (*Lexer).identifier
	}
	dispatch['_'] = (*Lexer).identifier
	for c := '0'; c <= '9'; c++ {
		dispatch[c] = (*Lexer).number
	}
	dispatch['"'] = (*Lexer).stringLiteral
	dispatch['\''] = (*Lexer).charLiteral
	dispatch['@'] = (*Lexer).builtin

	dispatch['('] = single(token.LParen)
	dispatch[')'] = single(token.RParen)
	dispatch['{'] = single(token.LBrace)
	dispatch['}'] = single(token.RBrace)
	dispatch['['] = single(token.LBracket)
	dispatch[']'] = single(token.RBracket)
	dispatch[';'] = single(token.Semicolon)
	dispatch[','] = single(token.Comma)
	dispatch[':'] = single(token.Colon)
	dispatch['?'] = single(token.QuestionMark)
	dispatch['~'] = single(token.Tilde)

	dispatch['!'] = pair('=', token.BangEqual, token.Bang)
	dispatch['%'] = pair('=', token.PercentEqual, token.Percent)
	dispatch['^'] = pair('=', token.CaretEqual, token.Caret)
	dispatch['&'] = pair('=', token.AmpersandEqual, token.Ampersand)

	dispatch['|'] = (*Lexer).pipe
	dispatch['='] = (*Lexer).equal
	dispatch['/'] = (*Lexer).slash
	dispatch['+'] = (*Lexer).plus
	dispatch['-'] = (*Lexer).minus
	dispatch['*'] = (*Lexer).asterisk
	dispatch['<'] = (*Lexer).less
	dispatch['>'] = (*Lexer).greater
	dispatch['.'] = (*Lexer).dot
}

func (l *Lexer) unknownByte(start Mark, _ byte) token.Token {
	return l.unknown(token.UnknownByte, start)
}

func (l *Lexer) matchThen(expected byte, thenType, elseType token.Type, start Mark) token.Token {
	if l.match(expected) {
		return l.makeToken(thenType, "", start)
	}
	return l.makeToken(elseType, "", start)
}

func (l *Lexer) pipe(start Mark, _ byte) token.Token {
	if l.match('|') {
		return l.makeToken(token.PipePipe, "", start)
	}
	return l.matchThen('=', token.PipeEqual, token.Pipe, start)
}

func (l *Lexer) equal(start Mark, _ byte) token.Token {
	switch {
	case l.match('='):
		return l.makeToken(token.EqualEqual, "", start)
	case l.match('>'):
		return l.makeToken(token.EqualAngleBracketRight, "", start)
	}
	return l.makeToken(token.Equal, "", start)
}

func (l *Lexer) slash(start Mark, _ byte) token.Token {
	if l.docs && l.cur.Current() == '/' && l.atDocComment(0) {
		return l.docComment(start)
	}
	return l.matchThen('=', token.SlashEqual, token.Slash, start)
}

// arithOps holds the operator family built on one of + - *: the bare
// operator, its assignment, and the wrapping (%) and saturating (|) forms.
type arithOps struct {
	bare, assign, wrap, wrapAssign, sat, satAssign token.Type
}

var (
	plusOps     = arithOps{token.Plus, token.PlusEqual, token.PlusPercent, token.PlusPercentEqual, token.PlusPipe, token.PlusPipeEqual}
	minusOps    = arithOps{token.Minus, token.MinusEqual, token.MinusPercent, token.MinusPercentEqual, token.MinusPipe, token.MinusPipeEqual}
	asteriskOps = arithOps{token.Asterisk, token.AsteriskEqual, token.AsteriskPercent, token.AsteriskPercentEqual, token.AsteriskPipe, token.AsteriskPipeEqual}
)

func (l *Lexer) arithmetic(ops arithOps, start Mark) token.Token {
	switch {
	case l.match('%'):
		return l.matchThen('=', ops.wrapAssign, ops.wrap, start)
	case l.match('|'):
		return l.matchThen('=', ops.satAssign, ops.sat, start)
	}
	return l.matchThen('=', ops.assign, ops.bare, start)
}

func (l *Lexer) plus(start Mark, _ byte) token.Token {
	if l.match('+') {
		return l.makeToken(token.PlusPlus, "", start)
	}
	return l.arithmetic(plusOps, start)
}

func (l *Lexer) minus(start Mark, _ byte) token.Token {
	if l.match('>') {
		return l.makeToken(token.Arrow, "", start)
	}
	return l.arithmetic(minusOps, start)
}

func (l *Lexer) asterisk(start Mark, _ byte) token.Token {
	if l.match('*') {
		return l.makeToken(token.AsteriskAsterisk, "", start)
	}
	return l.arithmetic(asteriskOps, start)
}

func (l *Lexer) less(start Mark, _ byte) token.Token {
	if !l.match('<') {
		return l.matchThen('=', token.AngleBracketLeftEqual, token.AngleBracketLeft, start)
	}
	if l.match('|') {
		return l.matchThen('=', token.AngleBracketAngleBracketLeftPipeEqual, token.AngleBracketAngleBracketLeftPipe, start)
	}
	return l.matchThen('=', token.AngleBracketAngleBracketLeftEqual, token.AngleBracketAngleBracketLeft, start)
}

func (l *Lexer) greater(start Mark, _ byte) token.Token {
	if l.match('>') {
		return l.matchThen('=', token.AngleBracketAngleBracketRightEqual, token.AngleBracketAngleBracketRight, start)
	}
	return l.matchThen('=', token.AngleBracketRightEqual, token.AngleBracketRight, start)
}

func (l *Lexer) dot(start Mark, _ byte) token.Token {
	switch {
	case l.match('.'):
		return l.matchThen('.', token.Dot3, token.Dot2, start)
	case l.match('*'):
		return l.makeToken(token.DotAsterisk, "", start)
	case l.match('?'):
		return l.makeToken(token.DotQuestionMark, "", start)
	}
	return l.makeToken(token.Dot, "", start)
}
