package lexer

import "github.com/xplshn/zlex/pkg/token"

// End is returned by Cursor reads past the end of the source.
const End = -1

// Cursor tracks the read position over an immutable source buffer. It only
// ever moves forward.
type Cursor struct {
	src    []byte
	pos    int
	line   uint
	column uint
}

// Mark is a saved cursor position used as the start of a token.
type Mark struct {
	offset int
	line   uint
	column uint
}

func NewCursor(src []byte) *Cursor { return &Cursor{src: src} }

// Current returns the byte under the cursor, or End.
func (c *Cursor) Current() int { return c.PeekAt(0) }

// Peek returns the byte after Current, or End.
func (c *Cursor) Peek() int { return c.PeekAt(1) }

// PeekAt returns the byte n positions after Current, or End.
func (c *Cursor) PeekAt(n int) int {
	if c.pos+n >= len(c.src) {
		return End
	}
	return int(c.src[c.pos+n])
}

// Advance consumes and returns the byte under the cursor. Consuming a
// newline moves to column zero of the next line.
func (c *Cursor) Advance() int {
	if c.AtEnd() {
		return End
	}
	ch := c.src[c.pos]
	c.pos++
	if ch == '\n' {
		c.line++
		c.column = 0
	} else {
		c.column++
	}
	return int(ch)
}

func (c *Cursor) AtEnd() bool  { return c.pos >= len(c.src) }
func (c *Cursor) Offset() int  { return c.pos }
func (c *Cursor) Line() uint   { return c.line }
func (c *Cursor) Column() uint { return c.column }

func (c *Cursor) Mark() Mark { return Mark{c.pos, c.line, c.column} }

// SpanFrom returns the span of everything consumed since m.
func (c *Cursor) SpanFrom(m Mark) token.Span {
	return token.Span{Line: m.line, Column: m.column, Width: uint(c.pos - m.offset)}
}

// Text returns a copy of the bytes consumed since m.
func (c *Cursor) Text(m Mark) string { return string(c.src[m.offset:c.pos]) }
