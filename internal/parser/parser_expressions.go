package parser

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/sk-lang/skc/internal/lexer"
)

// pendingOperator is a binary operator waiting on the work stack for its
// right operand to be folded in.
type pendingOperator struct {
	op   BinaryOperator
	span lexer.Span
}

// parseExpression parses an operand at the cursor followed by any chain of
// binary operators. It returns nil without consuming anything when the
// cursor is not on an operand.
func (p *Parser) parseExpression() (Expression, error) {
	left, err := p.parseOperand()
	if err != nil || left == nil {
		return nil, err
	}
	return p.parseChain(left)
}

// parseBinaryAt parses the expression rooted at the binary operator under
// the cursor. With a nil left operand the token just before the operator
// supplies it.
func (p *Parser) parseBinaryAt(left Expression) (Expression, error) {
	opTok := p.cursor.Current()
	if _, ok := binaryOperators[opTok.Type]; !ok {
		return nil, nil
	}

	if left == nil {
		prev, ok := p.cursor.Previous()
		if !ok {
			return nil, p.missingOperand(opTok.Span,
				fmt.Sprintf("operator %s at start of input has no left operand", opTok.Type))
		}
		var err error
		left, err = p.leafOperand(prev)
		if err != nil {
			return nil, err
		}
		if left == nil {
			return nil, p.missingOperand(opTok.Span,
				fmt.Sprintf("operator %s follows %s, which is not an operand", opTok.Type, prev.Type))
		}
	}

	return p.parseChain(left)
}

// parseChain folds the operators following left with an explicit operand
// and operator stack, so long chains never deepen the call stack. The
// depth of the folded tree counts against the nesting limit.
func (p *Parser) parseChain(left Expression) (Expression, error) {
	operands := []chainOperand{{expr: left}}
	var operators []pendingOperator

	for {
		tok := p.cursor.Current()
		op, ok := binaryOperators[tok.Type]
		if !ok {
			break
		}

		for len(operators) > 0 && p.reduces(operators[len(operators)-1].op, op) {
			var err error
			if operands, operators, err = p.fold(operands, operators); err != nil {
				return nil, err
			}
		}
		// every pending operator nests inside the one below it
		if p.depth+len(operators)+1 > p.maxDepth {
			return nil, p.fatal(NestingTooDeep, tok.Span, "operator chain nests deeper than %d levels", p.maxDepth)
		}
		operators = append(operators, pendingOperator{op: op, span: tok.Span})
		p.cursor.Advance()

		right, err := p.parseOperand()
		if err != nil {
			return nil, err
		}
		if right == nil {
			return nil, p.missingOperand(tok.Span,
				fmt.Sprintf("operator %s has no right operand", tok.Type))
		}
		operands = append(operands, chainOperand{expr: right})
	}

	for len(operators) > 0 {
		var err error
		if operands, operators, err = p.fold(operands, operators); err != nil {
			return nil, err
		}
	}
	return operands[0].expr, nil
}

// chainOperand is an operand on the work stack with the number of binary
// expressions nested inside it.
type chainOperand struct {
	expr  Expression
	depth int
}

// reduces reports whether the operator on top of the stack must be folded
// before next is pushed.
func (p *Parser) reduces(top, next BinaryOperator) bool {
	if top.Precedence() != next.Precedence() {
		return top.Precedence() < next.Precedence()
	}
	if next == Exponent {
		return false
	}
	return p.assoc == LeftAssociative
}

// fold pops the top operator and its two operands and pushes the combined
// expression.
func (p *Parser) fold(operands []chainOperand, operators []pendingOperator) ([]chainOperand, []pendingOperator, error) {
	top := operators[len(operators)-1]
	operators = operators[:len(operators)-1]

	right := operands[len(operands)-1]
	left := operands[len(operands)-2]
	operands = operands[:len(operands)-2]

	depth := max(left.depth, right.depth) + 1
	if p.depth+depth > p.maxDepth {
		return nil, nil, p.fatal(NestingTooDeep, top.span, "operator chain nests deeper than %d levels", p.maxDepth)
	}

	expr := &BinaryExpression{
		Span:       left.expr.GetSpan().Join(right.expr.GetSpan()),
		Left:       left.expr,
		Right:      right.expr,
		Op:         top.op,
		Precedence: top.op.Precedence(),
	}
	return append(operands, chainOperand{expr: expr, depth: depth}), operators, nil
}

// parseOperand parses a run of prefix operators and the primary they apply
// to. Prefix operators bind tighter than any binary operator.
func (p *Parser) parseOperand() (Expression, error) {
	mark := p.cursor.Mark()

	var prefixes []lexer.Token
	for {
		tok := p.cursor.Current()
		if _, ok := unaryOperators[tok.Type]; !ok {
			break
		}
		if p.depth+len(prefixes) >= p.maxDepth {
			return nil, p.fatal(NestingTooDeep, tok.Span, "prefix operators nest deeper than %d levels", p.maxDepth)
		}
		prefixes = append(prefixes, tok)
		p.cursor.Advance()
	}

	operand, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}
	if operand == nil {
		if len(prefixes) > 0 {
			last := prefixes[len(prefixes)-1]
			return nil, p.missingOperand(last.Span,
				fmt.Sprintf("prefix operator %s has no operand", last.Type))
		}
		p.cursor.Reset(mark)
		return nil, nil
	}

	for i := len(prefixes) - 1; i >= 0; i-- {
		operand = &UnaryExpression{
			Span:    prefixes[i].Span.Join(operand.GetSpan()),
			Op:      unaryOperators[prefixes[i].Type],
			Operand: operand,
		}
	}
	return operand, nil
}

// parsePrimary parses a literal or an identifier with its member chain
func (p *Parser) parsePrimary() (Expression, error) {
	tok := p.cursor.Current()
	switch tok.Type {
	case lexer.TokenNumber, lexer.TokenString:
		p.cursor.Advance()
		return p.leafOperand(tok)
	case lexer.TokenIdentifier:
		return p.parseIdentifier()
	default:
		return nil, nil
	}
}

// leafOperand builds the node for a single literal or identifier token
func (p *Parser) leafOperand(tok lexer.Token) (Expression, error) {
	switch tok.Type {
	case lexer.TokenNumber:
		return p.parseNumber(tok)
	case lexer.TokenString:
		return &StringLiteral{Span: tok.Span, Value: tok.Lexeme}, nil
	case lexer.TokenIdentifier:
		return &Identifier{Span: tok.Span, Name: tok.Lexeme}, nil
	default:
		return nil, nil
	}
}

// parseNumber classifies a number lexeme by its decimal point
func (p *Parser) parseNumber(tok lexer.Token) (Expression, error) {
	text := strings.ReplaceAll(tok.Lexeme, "_", "")

	if strings.Contains(text, ".") {
		value, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return nil, &ParseError{
				Kind:    MalformedNumber,
				Span:    tok.Span,
				Message: fmt.Sprintf("could not parse %q as float", tok.Lexeme),
				Err:     err,
			}
		}
		return &FloatLiteral{Span: tok.Span, Value: value}, nil
	}

	value, err := strconv.ParseInt(text, 10, 64)
	if err != nil {
		return nil, &ParseError{
			Kind:    MalformedNumber,
			Span:    tok.Span,
			Message: fmt.Sprintf("could not parse %q as integer", tok.Lexeme),
			Err:     err,
		}
	}
	return &IntegerLiteral{Span: tok.Span, Value: value}, nil
}

// parseIdentifier parses an identifier and, when it is followed by '.' or
// ':', the member or method after it. A member that does not parse leaves
// the bare identifier with the cursor just past it.
func (p *Parser) parseIdentifier() (Expression, error) {
	tok := p.cursor.Current()
	ident := &Identifier{Span: tok.Span, Name: tok.Lexeme}
	p.cursor.Advance()

	sep := p.cursor.Current()
	if sep.Type != lexer.TokenDot && sep.Type != lexer.TokenColon {
		return ident, nil
	}

	mark := p.cursor.Mark()
	if err := p.enter(sep.Span); err != nil {
		return nil, err
	}
	p.cursor.Advance()
	member, err := p.parsePrimary()
	p.leave()
	if err != nil {
		return nil, err
	}
	if member == nil {
		p.cursor.Reset(mark)
		return ident, nil
	}

	span := ident.Span.Join(member.GetSpan())
	if sep.Type == lexer.TokenDot {
		return &MemberAccess{Span: span, Target: ident, Member: member}, nil
	}
	return &MemberInvocation{Span: span, Target: ident, Method: member}, nil
}
