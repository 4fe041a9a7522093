package parser

import (
	"github.com/sk-lang/skc/internal/lexer"
)

// controlFlowConstructs names the keywords the parser recognizes but does
// not parse yet.
var controlFlowConstructs = map[lexer.TokenType]string{
	lexer.TokenIf:    "if statement",
	lexer.TokenElif:  "elif branch",
	lexer.TokenElse:  "else branch",
	lexer.TokenWhile: "while loop",
	lexer.TokenFor:   "for loop",
}

// parseVariableDeclaration parses
//
//	val|var name = value
//	val|var name :: annotation = value
//
// A missing sub-expression leaves the cursor untouched and yields no node.
func (p *Parser) parseVariableDeclaration() (Node, error) {
	mark := p.cursor.Mark()
	keyword := p.cursor.Current()
	name := p.cursor.Peek(1)
	sep := p.cursor.Peek(2)

	if name.Type != lexer.TokenIdentifier {
		return nil, nil
	}
	if sep.Type != lexer.TokenDoubleColon && sep.Type != lexer.TokenAssign {
		return nil, nil
	}

	decl := &VariableDeclaration{
		Key:     &Identifier{Span: name.Span, Name: name.Lexeme},
		Mutable: keyword.Type == lexer.TokenVar,
	}

	// keyword, name, separator
	p.cursor.Advance()
	p.cursor.Advance()
	p.cursor.Advance()

	if sep.Type == lexer.TokenDoubleColon {
		annotation, err := p.parseExpression()
		if err != nil {
			return nil, err
		}
		if annotation == nil || !p.cursor.Is(lexer.TokenAssign) {
			p.cursor.Reset(mark)
			return nil, nil
		}
		decl.Annotation = annotation
		p.cursor.Advance()
	}

	value, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if value == nil {
		p.cursor.Reset(mark)
		return nil, nil
	}

	decl.Value = value
	decl.Span = keyword.Span.Join(value.GetSpan())
	return decl, nil
}

// parseFunctionDeclaration parses
//
//	[mut] func name ( ) -> type { body }
//
// Functions with parameters are skipped with a note.
func (p *Parser) parseFunctionDeclaration() (Node, error) {
	start := p.cursor.Current()
	offset := 0
	if start.Type == lexer.TokenMut {
		offset = 1
	}
	if p.cursor.Peek(offset).Type != lexer.TokenFunc ||
		p.cursor.Peek(offset+1).Type != lexer.TokenIdentifier ||
		p.cursor.Peek(offset+2).Type != lexer.TokenLParen {
		return nil, nil
	}

	nameTok := p.cursor.Peek(offset + 1)
	fn := &FunctionDeclaration{
		Name:       &Identifier{Span: nameTok.Span, Name: nameTok.Lexeme},
		Parameters: make([]*Parameter, 0),
		Mutable:    offset == 1,
	}

	// [mut] func name
	for i := 0; i <= offset+1; i++ {
		p.cursor.Advance()
	}

	if p.cursor.Peek(1).Type != lexer.TokenRParen {
		// TODO: parse parameters once Parameter annotations have a grammar
		span, err := p.skipBalanced(lexer.TokenLParen, lexer.TokenRParen)
		if err != nil {
			return nil, err
		}
		p.note("parameter list", span)
		return nil, p.skipFunctionBody(fn.Name)
	}
	p.cursor.Advance() // (
	p.cursor.Advance() // )

	if !p.cursor.Is(lexer.TokenArrow) {
		return nil, p.fatal(MissingReturnType, p.cursor.Current().Span,
			"function %s has no '->' return type", fn.Name)
	}
	arrow := p.cursor.Current()
	p.cursor.Advance()

	returnType, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if returnType == nil {
		return nil, p.fatal(MissingReturnType, arrow.Span,
			"function %s has no return type after '->'", fn.Name)
	}
	fn.ReturnType = returnType

	if !p.cursor.Is(lexer.TokenLBrace) {
		return nil, p.fatal(MissingBody, p.cursor.Current().Span,
			"function %s has no '{' body", fn.Name)
	}

	body, end, err := p.parseBody()
	if err != nil {
		return nil, err
	}
	fn.Body = body
	fn.Span = start.Span.Join(end)
	return fn, nil
}

// parseBody parses a brace-delimited statement list with the cursor on '{'
// and returns the span of the closing brace.
func (p *Parser) parseBody() ([]Node, lexer.Span, error) {
	open := p.cursor.Current()
	if err := p.enter(open.Span); err != nil {
		return nil, lexer.Span{}, err
	}
	defer p.leave()

	p.cursor.Advance()
	nodes, err := p.parseStatements(lexer.TokenRBrace)
	if err != nil {
		return nil, lexer.Span{}, err
	}
	if !p.cursor.Is(lexer.TokenRBrace) {
		return nil, lexer.Span{}, p.fatal(UnterminatedBlock, open.Span,
			"block is never closed before end of input")
	}
	closing := p.cursor.Current()
	p.cursor.Advance()
	return nodes, closing.Span, nil
}

// skipFunctionBody skips to the function's '{' and past its matching '}'
func (p *Parser) skipFunctionBody(name *Identifier) error {
	for !p.cursor.Is(lexer.TokenLBrace) {
		if p.cursor.AtEOF() || p.cursor.Is(lexer.TokenRBrace) {
			return p.fatal(MissingBody, p.cursor.Current().Span,
				"function %s has no '{' body", name)
		}
		p.cursor.Advance()
	}
	_, err := p.skipBalanced(lexer.TokenLBrace, lexer.TokenRBrace)
	return err
}

// skipControlFlow skips an if/elif/else chain or a loop, header and
// braces included, and records a note for it.
func (p *Parser) skipControlFlow() error {
	start := p.cursor.Current()
	construct := controlFlowConstructs[start.Type]
	end := start.Span

	for {
		for !p.cursor.Is(lexer.TokenLBrace) {
			if p.cursor.AtEOF() || p.cursor.Is(lexer.TokenRBrace) {
				p.note(construct, start.Span.Join(end))
				return nil
			}
			end = p.cursor.Current().Span
			p.cursor.Advance()
		}

		span, err := p.skipBalanced(lexer.TokenLBrace, lexer.TokenRBrace)
		if err != nil {
			return err
		}
		end = span

		if !p.cursor.Is(lexer.TokenElif) && !p.cursor.Is(lexer.TokenElse) {
			break
		}
	}

	p.note(construct, start.Span.Join(end))
	return nil
}

// skipBalanced moves the cursor from an opening token past its matching
// closer and returns the span covered.
func (p *Parser) skipBalanced(open, closing lexer.TokenType) (lexer.Span, error) {
	start := p.cursor.Current()
	depth := 0
	for {
		tok := p.cursor.Current()
		switch tok.Type {
		case lexer.TokenEOF:
			return lexer.Span{}, p.fatal(UnterminatedBlock, start.Span,
				"%s is never closed before end of input", open)
		case open:
			depth++
		case closing:
			depth--
			if depth == 0 {
				p.cursor.Advance()
				return start.Span.Join(tok.Span), nil
			}
		}
		p.cursor.Advance()
	}
}
