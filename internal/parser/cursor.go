package parser

import "github.com/cwbudde/daedalus-dc/internal/token"

// cursor is a mutable position into a token slice with save/restore
// support for the parser's bounded backtracking (spec.md §4.3, §9:
// "use cursor save/restore; do not reparse tokens from scratch").
type cursor struct {
	toks     []token.Token
	pos      int
	furthest int // high-water mark: deepest token index reached in any alternative
}

func newCursor(toks []token.Token) *cursor {
	return &cursor{toks: toks}
}

// peek returns the token at the cursor without consuming it.
func (c *cursor) peek() token.Token {
	return c.toks[c.pos]
}

// peekAt returns the token n positions ahead of the cursor, clamped to the
// trailing EOF token so callers never index past the slice.
func (c *cursor) peekAt(n int) token.Token {
	i := c.pos + n
	if i >= len(c.toks) {
		i = len(c.toks) - 1
	}
	return c.toks[i]
}

// check reports whether the current token has the given type, without
// consuming it.
func (c *cursor) check(t token.Type) bool {
	return c.peek().Type == t
}

// advance consumes and returns the current token, raising the furthest
// high-water mark. No parse error reads furthest: errors carry the span
// of the token where they were detected.
func (c *cursor) advance() token.Token {
	tok := c.toks[c.pos]
	if tok.Type != token.EOF {
		c.pos++
	}
	if c.pos > c.furthest {
		c.furthest = c.pos
	}
	return tok
}

// previous returns the most recently consumed token.
func (c *cursor) previous() token.Token {
	if c.pos == 0 {
		return c.toks[0]
	}
	return c.toks[c.pos-1]
}

// consume advances past the current token if it has type t, returning
// (token, true); otherwise it leaves the cursor untouched and returns
// (zero, false).
func (c *cursor) consume(t token.Type) (token.Token, bool) {
	if c.check(t) {
		return c.advance(), true
	}
	return token.Token{}, false
}

// atEnd reports whether the cursor is sitting on the synthetic EOF token.
func (c *cursor) atEnd() bool {
	return c.peek().Type == token.EOF
}

// freeze snapshots the cursor position for later restore.
func (c *cursor) freeze() int {
	return c.pos
}

// restore rewinds the cursor to a position previously returned by freeze.
// The furthest high-water mark is never rewound: it always reflects the
// deepest point any alternative reached, even ones that were abandoned.
func (c *cursor) restore(mark int) {
	c.pos = mark
}
