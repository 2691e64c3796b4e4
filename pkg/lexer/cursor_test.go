package lexer_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/xplshn/zlex/pkg/lexer"
	"github.com/xplshn/zlex/pkg/token"
)

func TestCursorAdvanceTracksLines(t *testing.T) {
	c := lexer.NewCursor([]byte("ab\nc"))

	assert.Equal(t, int('a'), c.Current())
	assert.Equal(t, int('b'), c.Peek())
	assert.Equal(t, int('\n'), c.PeekAt(2))
	assert.Equal(t, lexer.End, c.PeekAt(4))

	type pos struct{ line, column uint }
	want := []pos{{0, 1}, {0, 2}, {1, 0}, {1, 1}}
	for i, w := range want {
		c.Advance()
		assert.Equal(t, w, pos{c.Line(), c.Column()}, "after byte %d", i)
	}
	assert.True(t, c.AtEnd())
	assert.Equal(t, 4, c.Offset())
}

func TestCursorNeverMovesPastEnd(t *testing.T) {
	c := lexer.NewCursor([]byte("x"))
	assert.Equal(t, int('x'), c.Advance())
	assert.Equal(t, lexer.End, c.Advance())
	assert.Equal(t, lexer.End, c.Current())
	assert.Equal(t, 1, c.Offset())
	assert.Equal(t, uint(1), c.Column())
}

func TestCursorSpanAndText(t *testing.T) {
	c := lexer.NewCursor([]byte("  abc"))
	c.Advance()
	c.Advance()
	m := c.Mark()
	c.Advance()
	c.Advance()
	assert.Equal(t, token.Span{Line: 0, Column: 2, Width: 2}, c.SpanFrom(m))
	assert.Equal(t, "ab", c.Text(m))
}

func TestCursorNulIsNotEnd(t *testing.T) {
	c := lexer.NewCursor([]byte{0})
	assert.Equal(t, 0, c.Current())
	assert.False(t, c.AtEnd())
}
