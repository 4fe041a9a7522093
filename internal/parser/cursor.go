package parser

import "github.com/sk-lang/skc/internal/lexer"

// Cursor walks a token stream. Every parse operation leaves it one token
// past the last token it consumed, or where it started when nothing matched.
type Cursor struct {
	tokens []lexer.Token
	index  int
}

// NewCursor wraps tokens, appending an EOF token if the stream lacks one
func NewCursor(tokens []lexer.Token) *Cursor {
	if len(tokens) == 0 || tokens[len(tokens)-1].Type != lexer.TokenEOF {
		end := 0
		if len(tokens) > 0 {
			end = tokens[len(tokens)-1].Span.End
		}
		terminated := make([]lexer.Token, len(tokens), len(tokens)+1)
		copy(terminated, tokens)
		tokens = append(terminated, lexer.Token{Type: lexer.TokenEOF, Span: lexer.Span{Start: end, End: end}})
	}
	return &Cursor{tokens: tokens}
}

// Current returns the token under the cursor
func (c *Cursor) Current() lexer.Token {
	return c.tokens[c.index]
}

// Peek returns the token n positions ahead, clamped to the EOF token
func (c *Cursor) Peek(n int) lexer.Token {
	i := c.index + n
	if i >= len(c.tokens) {
		return c.tokens[len(c.tokens)-1]
	}
	return c.tokens[i]
}

// Previous returns the token just before the cursor
func (c *Cursor) Previous() (lexer.Token, bool) {
	if c.index == 0 {
		return lexer.Token{}, false
	}
	return c.tokens[c.index-1], true
}

// Is reports whether the current token has the given type
func (c *Cursor) Is(tt lexer.TokenType) bool {
	return c.Current().Type == tt
}

// Advance moves one token forward. It never moves past EOF.
func (c *Cursor) Advance() {
	if c.index < len(c.tokens)-1 {
		c.index++
	}
}

// AtEOF reports whether the cursor rests on the EOF token
func (c *Cursor) AtEOF() bool {
	return c.Current().Type == lexer.TokenEOF
}

// Mark returns the current position for a later Reset or Consumed
func (c *Cursor) Mark() int {
	return c.index
}

// Reset rewinds the cursor to a position returned by Mark
func (c *Cursor) Reset(mark int) {
	c.index = mark
}

// Consumed returns how many tokens were consumed since mark
func (c *Cursor) Consumed(mark int) int {
	return c.index - mark
}
