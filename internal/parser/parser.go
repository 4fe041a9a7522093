package parser

import (
	"github.com/sk-lang/skc/internal/lexer"
)

// DefaultMaxDepth bounds nested function bodies, member chains, unary
// chains and the depth of binary operator trees.
const DefaultMaxDepth = 256

// MaxDepthLimit is the largest accepted nesting limit. Deeper trees cannot
// be encoded as JSON.
const MaxDepthLimit = 4096

// Associativity selects how equal-precedence operator chains group
type Associativity int

const (
	// RightAssociative groups a + b + c as a + (b + c)
	RightAssociative Associativity = iota
	// LeftAssociative groups a + b + c as (a + b) + c
	LeftAssociative
)

func (a Associativity) String() string {
	if a == LeftAssociative {
		return "left"
	}
	return "right"
}

// Option configures a Parser
type Option func(*Parser)

// WithAssociativity sets the grouping of equal-precedence chains.
// Exponent chains always group to the right.
func WithAssociativity(a Associativity) Option {
	return func(p *Parser) {
		p.assoc = a
	}
}

// WithMaxDepth overrides DefaultMaxDepth. Non-positive values are ignored
// and values above MaxDepthLimit are clamped to it.
func WithMaxDepth(depth int) Option {
	return func(p *Parser) {
		if depth > 0 {
			p.maxDepth = min(depth, MaxDepthLimit)
		}
	}
}

// Parser turns a token stream into top-level AST nodes
type Parser struct {
	cursor   *Cursor
	assoc    Associativity
	maxDepth int
	depth    int
	notes    []Note
}

// New creates a parser over tokens
func New(tokens []lexer.Token, opts ...Option) *Parser {
	p := &Parser{
		cursor:   NewCursor(tokens),
		assoc:    RightAssociative,
		maxDepth: DefaultMaxDepth,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// ParseSource tokenizes and parses src in one step
func ParseSource(src string, opts ...Option) ([]Node, []Note, error) {
	tokens, err := lexer.Tokenize(src)
	if err != nil {
		return nil, nil, err
	}
	p := New(tokens, opts...)
	nodes, err := p.Parse()
	return nodes, p.Notes(), err
}

// Parse runs the top-level loop until EOF. Any error aborts the whole parse
// and no nodes are returned.
func (p *Parser) Parse() ([]Node, error) {
	nodes, err := p.parseStatements(lexer.TokenEOF)
	if err != nil {
		return nil, err
	}
	return nodes, nil
}

// Notes returns the constructs that were recognized but skipped
func (p *Parser) Notes() []Note {
	return p.notes
}

// parseStatements is the driver loop shared by the top level and function
// bodies. It stops on the terminator without consuming it.
func (p *Parser) parseStatements(terminator lexer.TokenType) ([]Node, error) {
	nodes := make([]Node, 0)
	for {
		tok := p.cursor.Current()
		if tok.Type == terminator || tok.Type == lexer.TokenEOF {
			return nodes, nil
		}

		if tok.Type.IsLeaf() {
			p.cursor.Advance()
			continue
		}

		mark := p.cursor.Mark()
		node, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		if node != nil {
			nodes = append(nodes, node)
		}
		if p.cursor.Consumed(mark) == 0 {
			p.cursor.Advance()
		}
	}
}

// parseStatement dispatches on the current token. A nil node with a nil
// error means nothing matched; skipped constructs also return nil but leave
// the cursor past what they skipped.
func (p *Parser) parseStatement() (Node, error) {
	tok := p.cursor.Current()
	switch tok.Type {
	case lexer.TokenVal, lexer.TokenVar:
		return p.parseVariableDeclaration()
	case lexer.TokenMut, lexer.TokenFunc:
		return p.parseFunctionDeclaration()
	case lexer.TokenBang, lexer.TokenHash, lexer.TokenAmpersand:
		return p.parseExpression()
	case lexer.TokenIf, lexer.TokenElif, lexer.TokenElse, lexer.TokenWhile, lexer.TokenFor:
		return nil, p.skipControlFlow()
	}

	if _, ok := binaryOperators[tok.Type]; ok {
		return p.parseBinaryAt(nil)
	}
	return nil, nil
}

// enter bumps the nesting depth. Callers must pair it with leave.
func (p *Parser) enter(span lexer.Span) error {
	if p.depth >= p.maxDepth {
		return p.fatal(NestingTooDeep, span, "nesting exceeds %d levels", p.maxDepth)
	}
	p.depth++
	return nil
}

func (p *Parser) leave() {
	p.depth--
}
