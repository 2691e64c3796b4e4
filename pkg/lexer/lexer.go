package lexer

import (
	"bytes"
	"iter"

	"github.com/xplshn/zlex/pkg/config"
	"github.com/xplshn/zlex/pkg/token"
)

type Lexer struct {
	cur        Cursor
	fileIndex  int
	done       bool
	docs       bool
	builtins   bool
	separators bool
}

// NewLexer copies source, so the caller may reuse its buffer. A nil cfg
// selects the default features.
func NewLexer(source []byte, fileIndex int, cfg *config.Config) *Lexer {
	if cfg == nil {
		cfg = config.NewConfig()
	}
	return &Lexer{
		cur:        Cursor{src: bytes.Clone(source)},
		fileIndex:  fileIndex,
		docs:       cfg.IsFeatureEnabled(config.FeatDocComments),
		builtins:   cfg.IsFeatureEnabled(config.FeatBuiltins),
		separators: cfg.IsFeatureEnabled(config.FeatDigitSeparators),
	}
}

// Next returns the next token. The stream ends with exactly one EOF token,
// after which Next reports false.
func (l *Lexer) Next() (token.Token, bool) {
	if l.done {
		return token.Token{}, false
	}
	l.skipWhitespaceAndComments()
	start := l.cur.Mark()
	if l.cur.AtEnd() {
		l.done = true
		return l.makeToken(token.EOF, "", start), true
	}
	lead := byte(l.cur.Advance())
	return dispatch[lead](l, start, lead), true
}

// All yields the remaining tokens, EOF included.
func (l *Lexer) All() iter.Seq[token.Token] {
	return func(yield func(token.Token) bool) {
		for {
			tok, ok := l.Next()
			if !ok || !yield(tok) {
				return
			}
		}
	}
}

// Tokenize lexes a whole buffer.
func Tokenize(source []byte, cfg *config.Config) []token.Token {
	var toks []token.Token
	for tok := range NewLexer(source, 0, cfg).All() {
		toks = append(toks, tok)
	}
	return toks
}

func (l *Lexer) makeToken(tokType token.Type, value string, start Mark) token.Token {
	return token.Token{
		Type: tokType, Value: value, Offset: start.offset, FileIndex: l.fileIndex,
		Span: l.cur.SpanFrom(start),
	}
}

func (l *Lexer) unknown(problem token.Problem, start Mark) token.Token {
	tok := l.makeToken(token.Unknown, l.cur.Text(start), start)
	tok.Problem = problem
	return tok
}

func (l *Lexer) match(expected byte) bool {
	if l.cur.Current() != int(expected) {
		return false
	}
	l.cur.Advance()
	return true
}

func (l *Lexer) skipWhitespaceAndComments() {
	for {
		switch l.cur.Current() {
		case ' ', '\t', '\r', '\n':
			l.cur.Advance()
		case '/':
			if l.cur.Peek() != '/' || (l.docs && l.atDocComment(1)) {
				return
			}
			l.lineComment()
		default:
			return
		}
	}
}

// atDocComment reports whether the "//" whose second slash is n bytes ahead
// opens a "///" or "//!" comment. "////" is a plain comment.
func (l *Lexer) atDocComment(n int) bool {
	switch l.cur.PeekAt(n + 1) {
	case '!':
		return true
	case '/':
		return l.cur.PeekAt(n+2) != '/'
	}
	return false
}

func (l *Lexer) lineComment() {
	for !l.cur.AtEnd() && l.cur.Current() != '\n' {
		l.cur.Advance()
	}
}

func (l *Lexer) docComment(start Mark) token.Token {
	l.cur.Advance()
	tokType := token.DocComment
	if l.cur.Advance() == '!' {
		tokType = token.ContainerDocComment
	}
	body := l.cur.Mark()
	l.lineComment()
	return l.makeToken(tokType, l.cur.Text(body), start)
}
