package parser

import (
	"errors"
	"fmt"

	"github.com/sk-lang/skc/internal/lexer"
)

// Sentinel errors matched with errors.Is
var (
	ErrMissingOperand    = errors.New("missing operand")
	ErrMalformedNumber   = errors.New("malformed number")
	ErrMissingReturnType = errors.New("missing return type")
	ErrUnterminatedBlock = errors.New("unterminated block")
	ErrMissingBody       = errors.New("missing function body")
	ErrNestingTooDeep    = errors.New("nesting too deep")
)

// ParseErrorKind classifies an expression-level failure
type ParseErrorKind int

const (
	MissingOperand ParseErrorKind = iota
	MalformedNumber
)

func (k ParseErrorKind) String() string {
	switch k {
	case MissingOperand:
		return "MissingOperand"
	case MalformedNumber:
		return "MalformedNumber"
	default:
		return fmt.Sprintf("ParseErrorKind(%d)", int(k))
	}
}

func (k ParseErrorKind) sentinel() error {
	switch k {
	case MissingOperand:
		return ErrMissingOperand
	case MalformedNumber:
		return ErrMalformedNumber
	default:
		return nil
	}
}

// ParseError represents a malformed expression. It aborts the parse.
type ParseError struct {
	Kind    ParseErrorKind
	Span    lexer.Span
	Message string
	Err     error
}

func (e *ParseError) Error() string {
	msg := fmt.Sprintf("parse error at %s: %s", e.Span, e.Message)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Is matches the sentinel for the error kind
func (e *ParseError) Is(target error) bool {
	return target != nil && target == e.Kind.sentinel()
}

// Unwrap returns the underlying cause, if any
func (e *ParseError) Unwrap() error {
	return e.Err
}

// FatalErrorKind classifies a structural failure
type FatalErrorKind int

const (
	MissingReturnType FatalErrorKind = iota
	UnterminatedBlock
	MissingBody
	NestingTooDeep
)

func (k FatalErrorKind) String() string {
	switch k {
	case MissingReturnType:
		return "MissingReturnType"
	case UnterminatedBlock:
		return "UnterminatedBlock"
	case MissingBody:
		return "MissingBody"
	case NestingTooDeep:
		return "NestingTooDeep"
	default:
		return fmt.Sprintf("FatalErrorKind(%d)", int(k))
	}
}

func (k FatalErrorKind) sentinel() error {
	switch k {
	case MissingReturnType:
		return ErrMissingReturnType
	case UnterminatedBlock:
		return ErrUnterminatedBlock
	case MissingBody:
		return ErrMissingBody
	case NestingTooDeep:
		return ErrNestingTooDeep
	default:
		return nil
	}
}

// FatalError represents a malformed declaration or block
type FatalError struct {
	Kind    FatalErrorKind
	Span    lexer.Span
	Message string
}

func (e *FatalError) Error() string {
	return fmt.Sprintf("fatal error at %s: %s", e.Span, e.Message)
}

// Is matches the sentinel for the error kind
func (e *FatalError) Is(target error) bool {
	return target != nil && target == e.Kind.sentinel()
}

// NoteKind classifies a non-fatal parser note
type NoteKind int

const (
	NotImplemented NoteKind = iota
)

func (k NoteKind) String() string {
	switch k {
	case NotImplemented:
		return "NotImplemented"
	default:
		return fmt.Sprintf("NoteKind(%d)", int(k))
	}
}

// Note records a construct the parser recognized and skipped
type Note struct {
	Kind      NoteKind
	Construct string
	Span      lexer.Span
}

func (n Note) String() string {
	return fmt.Sprintf("%s: %s at %s", n.Kind, n.Construct, n.Span)
}

func (p *Parser) missingOperand(span lexer.Span, message string) error {
	return &ParseError{Kind: MissingOperand, Span: span, Message: message}
}

func (p *Parser) fatal(kind FatalErrorKind, span lexer.Span, format string, args ...interface{}) error {
	return &FatalError{Kind: kind, Span: span, Message: fmt.Sprintf(format, args...)}
}

func (p *Parser) note(construct string, span lexer.Span) {
	p.notes = append(p.notes, Note{Kind: NotImplemented, Construct: construct, Span: span})
}
