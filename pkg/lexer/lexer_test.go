package lexer_test

import (
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xplshn/zlex/pkg/config"
	"github.com/xplshn/zlex/pkg/lexer"
	"github.com/xplshn/zlex/pkg/token"
)

type brief struct {
	Type   token.Type
	Value  string
	Line   uint
	Column uint
	Width  uint
}

func lex(src string) []token.Token { return lexer.Tokenize([]byte(src), nil) }

func lexWith(src string, flags ...string) []token.Token {
	cfg := config.NewConfig()
	for _, f := range flags {
		if err := cfg.ApplyFlag(f); err != nil {
			panic(err)
		}
	}
	return lexer.Tokenize([]byte(src), cfg)
}

func briefs(toks []token.Token) []brief {
	out := make([]brief, len(toks))
	for i, tok := range toks {
		out[i] = brief{tok.Type, tok.Value, tok.Line, tok.Column, tok.Width}
	}
	return out
}

func types(toks []token.Token) []token.Type {
	out := make([]token.Type, len(toks))
	for i, tok := range toks {
		out[i] = tok.Type
	}
	return out
}

func TestSinglePlus(t *testing.T) {
	toks := lex("+")
	want := []brief{
		{Type: token.Plus, Width: 1},
		{Type: token.EOF, Column: 1},
	}
	if diff := cmp.Diff(want, briefs(toks)); diff != "" {
		t.Errorf("tokens mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, 1, toks[1].Offset)
}

func TestEmptyAndBlankInput(t *testing.T) {
	assert.Equal(t, []brief{{Type: token.EOF}}, briefs(lex("")))
	assert.Equal(t, []brief{{Type: token.EOF, Line: 1, Column: 1}}, briefs(lex("  \n\t")))
	assert.Equal(t, []brief{{Type: token.EOF, Line: 2, Column: 0}}, briefs(lex("\r\n\r\n")))
}

func TestPositionsAcrossLines(t *testing.T) {
	want := []brief{
		{token.Ident, "a", 0, 0, 1},
		{token.Plus, "", 0, 2, 1},
		{token.Ident, "bb", 0, 4, 2},
		{token.Ident, "c", 1, 2, 1},
		{token.Semicolon, "", 2, 0, 1},
		{token.EOF, "", 2, 1, 0},
	}
	if diff := cmp.Diff(want, briefs(lex("a + bb\n  c\n;"))); diff != "" {
		t.Errorf("tokens mismatch (-want +got):\n%s", diff)
	}
}

func TestNextAfterEOF(t *testing.T) {
	l := lexer.NewLexer([]byte("x"), 0, nil)
	tok, ok := l.Next()
	require.True(t, ok)
	assert.Equal(t, token.Ident, tok.Type)
	tok, ok = l.Next()
	require.True(t, ok)
	assert.Equal(t, token.EOF, tok.Type)
	for range 3 {
		_, ok = l.Next()
		assert.False(t, ok)
	}
}

func TestAllIsLazyAndResumable(t *testing.T) {
	l := lexer.NewLexer([]byte("a b c"), 0, nil)
	var first []string
	for tok := range l.All() {
		first = append(first, tok.Value)
		if len(first) == 2 {
			break
		}
	}
	assert.Equal(t, []string{"a", "b"}, first)

	tok, ok := l.Next()
	require.True(t, ok)
	assert.Equal(t, "c", tok.Value)

	var rest []token.Type
	for tok := range l.All() {
		rest = append(rest, tok.Type)
	}
	assert.Equal(t, []token.Type{token.EOF}, rest)
}

func TestFileIndexIsStamped(t *testing.T) {
	for tok := range lexer.NewLexer([]byte("a +"), 3, nil).All() {
		assert.Equal(t, 3, tok.FileIndex)
	}
}

func TestIdentifiersKeywordsPrimitives(t *testing.T) {
	toks := lex("while u32 myVar2 _ u7 error opaque type anyerror c_longdouble")
	require.Len(t, toks, 11)

	assert.Equal(t, token.Keyword, toks[0].Type)
	assert.Equal(t, token.KwWhile, toks[0].Keyword)
	assert.Equal(t, token.Span{Line: 0, Column: 0, Width: 5}, toks[0].Span)

	assert.Equal(t, token.Primitive, toks[1].Type)
	assert.Equal(t, token.PrimU32, toks[1].Primitive)
	assert.Equal(t, token.Span{Line: 0, Column: 6, Width: 3}, toks[1].Span)

	assert.Equal(t, token.Ident, toks[2].Type)
	assert.Equal(t, "myVar2", toks[2].Value)
	assert.Equal(t, token.Span{Line: 0, Column: 10, Width: 6}, toks[2].Span)

	assert.Equal(t, brief{token.Ident, "_", 0, 17, 1}, briefs(toks)[3])
	assert.Equal(t, brief{token.Ident, "u7", 0, 19, 2}, briefs(toks)[4])

	assert.Equal(t, token.KwError, toks[5].Keyword)
	assert.Equal(t, token.KwOpaque, toks[6].Keyword)
	assert.Equal(t, token.PrimType, toks[7].Primitive)
	assert.Equal(t, token.PrimAnyerror, toks[8].Primitive)
	assert.Equal(t, token.PrimCLongdouble, toks[9].Primitive)
	assert.Equal(t, uint(12), toks[9].Width)
}

func TestIdentifierStopsAtNonASCII(t *testing.T) {
	want := []brief{
		{token.Ident, "ab", 0, 0, 2},
		{token.Unknown, "\xc3", 0, 2, 1},
		{token.Unknown, "\xa9", 0, 3, 1},
		{token.Ident, "c", 0, 4, 1},
		{token.EOF, "", 0, 5, 0},
	}
	if diff := cmp.Diff(want, briefs(lex("abéc"))); diff != "" {
		t.Errorf("tokens mismatch (-want +got):\n%s", diff)
	}
}

func TestBuiltins(t *testing.T) {
	want := []brief{
		{token.Builtin, "import", 0, 0, 7},
		{token.LParen, "", 0, 7, 1},
		{token.String, "std", 0, 8, 5},
		{token.RParen, "", 0, 13, 1},
		{token.Ident, "a b", 0, 15, 6},
		{token.Unknown, "@", 0, 22, 1},
		{token.Integer, "", 0, 23, 1},
		{token.EOF, "", 0, 24, 0},
	}
	if diff := cmp.Diff(want, briefs(lex(`@import("std") @"a b" @1`))); diff != "" {
		t.Errorf("tokens mismatch (-want +got):\n%s", diff)
	}

	off := lexWith("@import", "-Fno-builtins")
	assert.Equal(t, []token.Type{token.Unknown, token.Ident, token.EOF}, types(off))
	assert.Equal(t, token.UnknownByte, off[0].Problem)
}

func TestUnterminatedQuotedIdentifier(t *testing.T) {
	toks := lex("@\"ab\nc")
	assert.Equal(t, brief{token.Unknown, "@\"ab", 0, 0, 4}, briefs(toks)[0])
	assert.Equal(t, token.UnterminatedString, toks[0].Problem)
	assert.Equal(t, brief{token.Ident, "c", 1, 0, 1}, briefs(toks)[1])
}

func TestComments(t *testing.T) {
	want := []brief{
		{token.Ident, "a", 0, 0, 1},
		{token.DocComment, " doc", 1, 0, 7},
		{token.ContainerDocComment, " top", 2, 0, 7},
		{token.Ident, "b", 4, 0, 1},
		{token.Slash, "", 4, 1, 1},
		{token.Ident, "c", 4, 2, 1},
		{token.SlashEqual, "", 4, 4, 2},
		{token.EOF, "", 4, 14, 0},
	}
	src := "a // plain\n/// doc\n//! top\n//// four\nb/c /= // tail"
	if diff := cmp.Diff(want, briefs(lex(src))); diff != "" {
		t.Errorf("tokens mismatch (-want +got):\n%s", diff)
	}

	off := lexWith("/// doc\n//! top\nx", "-Fno-doc-comments")
	assert.Equal(t, []brief{{token.Ident, "x", 2, 0, 1}, {token.EOF, "", 2, 1, 0}}, briefs(off))
}

func TestDocCommentAtEndOfInput(t *testing.T) {
	assert.Equal(t, []brief{{token.DocComment, "", 0, 0, 3}, {token.EOF, "", 0, 3, 0}}, briefs(lex("///")))
}

func TestLongWhitespaceRun(t *testing.T) {
	buf := make([]byte, 0, 1<<20+1)
	for i := 0; i < 1<<20; i++ {
		if i%64 == 63 {
			buf = append(buf, '\n')
		} else {
			buf = append(buf, ' ')
		}
	}
	buf = append(buf, 'x')
	toks := lexer.Tokenize(buf, nil)
	require.Len(t, toks, 2)
	assert.Equal(t, uint(1<<20/64), toks[0].Line)
	assert.Equal(t, uint(0), toks[0].Column)
}

func TestLexerOwnsItsSource(t *testing.T) {
	buf := []byte("name")
	l := lexer.NewLexer(buf, 0, nil)
	copy(buf, "xxxx")
	tok, _ := l.Next()
	assert.Equal(t, "name", tok.Value)
}

func TestIdenticalInputsGiveIdenticalStreams(t *testing.T) {
	src := "const x: u8 = 'a'; // c\nvar y = 0x1.8p1 +%= \"s\\\"t\";"
	if diff := cmp.Diff(lex(src), lex(src)); diff != "" {
		t.Errorf("streams differ:\n%s", diff)
	}
}

func TestConcurrentLexers(t *testing.T) {
	src := "pub fn main() !void { const a: i32 = 1 << 3; while (a > 0) : (a -= 1) {} }"
	want := lex(src)

	var wg sync.WaitGroup
	results := make([][]token.Token, 8)
	for i := range results {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results[i] = lex(src)
		}()
	}
	wg.Wait()
	for _, got := range results {
		assert.Empty(t, cmp.Diff(want, got))
	}
}
