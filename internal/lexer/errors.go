package lexer

import (
	"errors"
	"fmt"
)

// LexErrorKind classifies a lexical failure
type LexErrorKind int

const (
	UnterminatedString LexErrorKind = iota
	UnrecognizedByte
)

func (k LexErrorKind) String() string {
	switch k {
	case UnterminatedString:
		return "UnterminatedString"
	case UnrecognizedByte:
		return "UnrecognizedByte"
	default:
		return fmt.Sprintf("LexErrorKind(%d)", int(k))
	}
}

// Sentinels for errors.Is matching against a *LexError
var (
	ErrUnterminatedString = errors.New("unterminated string literal")
	ErrUnrecognizedByte   = errors.New("unrecognized byte")
)

// LexError aborts tokenization. Span locates the offending input.
type LexError struct {
	Kind LexErrorKind
	Span Span
	Byte byte
}

func (e *LexError) Error() string {
	switch e.Kind {
	case UnterminatedString:
		return fmt.Sprintf("lex error at offset %d: string literal reaches end of input without a closing quote", e.Span.Start)
	case UnrecognizedByte:
		return fmt.Sprintf("lex error at offset %d: unrecognized byte %q", e.Span.Start, e.Byte)
	default:
		return fmt.Sprintf("lex error at offset %d: %s", e.Span.Start, e.Kind)
	}
}

// Unwrap exposes the sentinel matching the error kind
func (e *LexError) Unwrap() error {
	switch e.Kind {
	case UnterminatedString:
		return ErrUnterminatedString
	case UnrecognizedByte:
		return ErrUnrecognizedByte
	default:
		return nil
	}
}
