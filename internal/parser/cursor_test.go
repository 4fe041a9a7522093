package parser

import (
	"testing"

	"github.com/sk-lang/skc/internal/lexer"
)

func TestCursorMarkReset(t *testing.T) {
	tokens, err := lexer.Tokenize("val x = 1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	c := NewCursor(tokens)

	if _, ok := c.Previous(); ok {
		t.Error("expected no previous token at start")
	}

	mark := c.Mark()
	c.Advance()
	c.Advance()
	if c.Consumed(mark) != 2 {
		t.Errorf("expected 2 consumed, got %d", c.Consumed(mark))
	}
	if prev, ok := c.Previous(); !ok || prev.Type != lexer.TokenIdentifier {
		t.Errorf("expected previous identifier, got %v", prev)
	}
	if !c.Is(lexer.TokenAssign) {
		t.Errorf("expected '=', got %s", c.Current())
	}

	c.Reset(mark)
	if !c.Is(lexer.TokenVal) || c.Consumed(mark) != 0 {
		t.Errorf("reset did not restore position, at %s", c.Current())
	}
}

func TestCursorClampsAtEOF(t *testing.T) {
	c := NewCursor(nil)
	if _, ok := c.Previous(); ok || !c.AtEOF() {
		t.Fatalf("expected a single EOF token, at %s", c.Current())
	}

	c.Advance()
	c.Advance()
	if !c.AtEOF() {
		t.Error("advance must not move past EOF")
	}
	if c.Peek(5).Type != lexer.TokenEOF {
		t.Errorf("peek beyond the end should return EOF, got %s", c.Peek(5))
	}
}
