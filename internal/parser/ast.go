// Package parser implements the Sk parser and AST definitions
package parser

import (
	"fmt"
	"strings"

	"github.com/sk-lang/skc/internal/lexer"
)

// Node represents the base interface for all AST nodes
type Node interface {
	// GetSpan returns the source span for this node
	GetSpan() lexer.Span
	// String returns a string representation of the node
	String() string
	// Accept implements the visitor pattern
	Accept(visitor Visitor) interface{}
}

// Expression represents all expression nodes
type Expression interface {
	Node
	expressionNode()
}

// Declaration represents all declaration nodes
type Declaration interface {
	Node
	declarationNode()
}

// ====== Operators ======

// BinaryOperator tags a binary arithmetic operation
type BinaryOperator int

const (
	Plus BinaryOperator = iota
	Minus
	Multiply
	Divide
	Modulo
	Exponent
)

var binaryOperatorSymbols = map[BinaryOperator]string{
	Plus:     "+",
	Minus:    "-",
	Multiply: "*",
	Divide:   "/",
	Modulo:   "%",
	Exponent: "^",
}

var binaryOperatorNames = map[BinaryOperator]string{
	Plus:     "Plus",
	Minus:    "Minus",
	Multiply: "Multiply",
	Divide:   "Divide",
	Modulo:   "Modulo",
	Exponent: "Exponent",
}

func (op BinaryOperator) String() string {
	if name, ok := binaryOperatorNames[op]; ok {
		return name
	}
	return fmt.Sprintf("BinaryOperator(%d)", int(op))
}

// Symbol returns the source spelling of the operator
func (op BinaryOperator) Symbol() string {
	return binaryOperatorSymbols[op]
}

// Precedence returns the binding power of the operator. Lower numbers bind
// tighter.
func (op BinaryOperator) Precedence() int {
	switch op {
	case Exponent:
		return 0
	case Multiply, Divide, Modulo:
		return 1
	default:
		return 2
	}
}

// binaryOperators maps operator tokens to their binary operation
var binaryOperators = map[lexer.TokenType]BinaryOperator{
	lexer.TokenPlus:    Plus,
	lexer.TokenMinus:   Minus,
	lexer.TokenStar:    Multiply,
	lexer.TokenSlash:   Divide,
	lexer.TokenPercent: Modulo,
	lexer.TokenCaret:   Exponent,
}

// UnaryOperator tags a prefix operation
type UnaryOperator int

const (
	Negate UnaryOperator = iota
	LengthOf
	Not
	AddressOf
	Dereference
)

var unaryOperatorNames = map[UnaryOperator]string{
	Negate:      "Negate",
	LengthOf:    "LengthOf",
	Not:         "Not",
	AddressOf:   "AddressOf",
	Dereference: "Dereference",
}

var unaryOperatorSymbols = map[UnaryOperator]string{
	Negate:      "-",
	LengthOf:    "#",
	Not:         "!",
	AddressOf:   "&",
	Dereference: "*",
}

func (op UnaryOperator) String() string {
	if name, ok := unaryOperatorNames[op]; ok {
		return name
	}
	return fmt.Sprintf("UnaryOperator(%d)", int(op))
}

// Symbol returns the source spelling of the operator
func (op UnaryOperator) Symbol() string {
	return unaryOperatorSymbols[op]
}

var unaryOperators = map[lexer.TokenType]UnaryOperator{
	lexer.TokenMinus:     Negate,
	lexer.TokenHash:      LengthOf,
	lexer.TokenBang:      Not,
	lexer.TokenAmpersand: AddressOf,
	lexer.TokenStar:      Dereference,
}

// ====== Declarations ======

// FunctionDeclaration represents a function declaration
type FunctionDeclaration struct {
	Span       lexer.Span
	Name       *Identifier
	Parameters []*Parameter
	ReturnType Expression
	Body       []Node
	Mutable    bool
}

func (f *FunctionDeclaration) GetSpan() lexer.Span { return f.Span }
func (f *FunctionDeclaration) String() string {
	prefix := "func"
	if f.Mutable {
		prefix = "mut func"
	}
	params := make([]string, len(f.Parameters))
	for i, param := range f.Parameters {
		params[i] = param.String()
	}
	return fmt.Sprintf("%s %s(%s) -> %s { %d statements }",
		prefix, f.Name, strings.Join(params, ", "), f.ReturnType, len(f.Body))
}
func (f *FunctionDeclaration) Accept(visitor Visitor) interface{} {
	return visitor.VisitFunctionDeclaration(f)
}
func (f *FunctionDeclaration) declarationNode() {}

// Parameter represents a function parameter. Parameter lists are not parsed
// yet, so the parser never produces one.
type Parameter struct {
	Span       lexer.Span
	Name       *Identifier
	Annotation Expression
	Mutable    bool
}

func (p *Parameter) GetSpan() lexer.Span { return p.Span }
func (p *Parameter) String() string {
	out := p.Name.String()
	if p.Mutable {
		out = "mut " + out
	}
	if p.Annotation != nil {
		out += " :: " + p.Annotation.String()
	}
	return out
}
func (p *Parameter) Accept(visitor Visitor) interface{} { return visitor.VisitParameter(p) }

// VariableDeclaration represents a val or var binding
type VariableDeclaration struct {
	Span       lexer.Span
	Key        *Identifier
	Value      Expression
	Mutable    bool
	Annotation Expression
}

func (v *VariableDeclaration) GetSpan() lexer.Span { return v.Span }
func (v *VariableDeclaration) String() string {
	keyword := "val"
	if v.Mutable {
		keyword = "var"
	}
	if v.Annotation != nil {
		return fmt.Sprintf("%s %s :: %s = %s", keyword, v.Key, v.Annotation, v.Value)
	}
	return fmt.Sprintf("%s %s = %s", keyword, v.Key, v.Value)
}
func (v *VariableDeclaration) Accept(visitor Visitor) interface{} {
	return visitor.VisitVariableDeclaration(v)
}
func (v *VariableDeclaration) declarationNode() {}

// ====== Expressions ======

// BinaryExpression represents binary operations
type BinaryExpression struct {
	Span       lexer.Span
	Left       Expression
	Right      Expression
	Op         BinaryOperator
	Precedence int
}

func (b *BinaryExpression) GetSpan() lexer.Span { return b.Span }
func (b *BinaryExpression) String() string {
	return fmt.Sprintf("(%s %s %s)", b.Left, b.Op.Symbol(), b.Right)
}
func (b *BinaryExpression) Accept(visitor Visitor) interface{} {
	return visitor.VisitBinaryExpression(b)
}
func (b *BinaryExpression) expressionNode() {}

// UnaryExpression represents prefix operations
type UnaryExpression struct {
	Span    lexer.Span
	Op      UnaryOperator
	Operand Expression
}

func (u *UnaryExpression) GetSpan() lexer.Span { return u.Span }
func (u *UnaryExpression) String() string {
	return fmt.Sprintf("(%s%s)", u.Op.Symbol(), u.Operand)
}
func (u *UnaryExpression) Accept(visitor Visitor) interface{} {
	return visitor.VisitUnaryExpression(u)
}
func (u *UnaryExpression) expressionNode() {}

// IntegerLiteral represents an integer number
type IntegerLiteral struct {
	Span  lexer.Span
	Value int64
}

func (i *IntegerLiteral) GetSpan() lexer.Span { return i.Span }
func (i *IntegerLiteral) String() string      { return fmt.Sprintf("%d", i.Value) }
func (i *IntegerLiteral) Accept(visitor Visitor) interface{} {
	return visitor.VisitIntegerLiteral(i)
}
func (i *IntegerLiteral) expressionNode() {}

// FloatLiteral represents a number written with a decimal point
type FloatLiteral struct {
	Span  lexer.Span
	Value float64
}

func (f *FloatLiteral) GetSpan() lexer.Span { return f.Span }
func (f *FloatLiteral) String() string      { return fmt.Sprintf("%g", f.Value) }
func (f *FloatLiteral) Accept(visitor Visitor) interface{} {
	return visitor.VisitFloatLiteral(f)
}
func (f *FloatLiteral) expressionNode() {}

// StringLiteral holds the raw body of a quoted string, escapes untouched
type StringLiteral struct {
	Span  lexer.Span
	Value string
}

func (s *StringLiteral) GetSpan() lexer.Span { return s.Span }
func (s *StringLiteral) String() string      { return fmt.Sprintf("%q", s.Value) }
func (s *StringLiteral) Accept(visitor Visitor) interface{} {
	return visitor.VisitStringLiteral(s)
}
func (s *StringLiteral) expressionNode() {}

// Identifier represents an identifier
type Identifier struct {
	Span lexer.Span
	Name string
}

func (i *Identifier) GetSpan() lexer.Span                { return i.Span }
func (i *Identifier) String() string                     { return i.Name }
func (i *Identifier) Accept(visitor Visitor) interface{} { return visitor.VisitIdentifier(i) }
func (i *Identifier) expressionNode()                    {}

// MemberAccess represents target.member
type MemberAccess struct {
	Span   lexer.Span
	Target *Identifier
	Member Expression
}

func (m *MemberAccess) GetSpan() lexer.Span { return m.Span }
func (m *MemberAccess) String() string      { return fmt.Sprintf("%s.%s", m.Target, m.Member) }
func (m *MemberAccess) Accept(visitor Visitor) interface{} {
	return visitor.VisitMemberAccess(m)
}
func (m *MemberAccess) expressionNode() {}

// MemberInvocation represents target:method
type MemberInvocation struct {
	Span   lexer.Span
	Target *Identifier
	Method Expression
}

func (m *MemberInvocation) GetSpan() lexer.Span { return m.Span }
func (m *MemberInvocation) String() string      { return fmt.Sprintf("%s:%s", m.Target, m.Method) }
func (m *MemberInvocation) Accept(visitor Visitor) interface{} {
	return visitor.VisitMemberInvocation(m)
}
func (m *MemberInvocation) expressionNode() {}

// ====== Visitor Pattern ======

// Visitor defines the interface for AST visitors
type Visitor interface {
	VisitFunctionDeclaration(*FunctionDeclaration) interface{}
	VisitParameter(*Parameter) interface{}
	VisitVariableDeclaration(*VariableDeclaration) interface{}
	VisitBinaryExpression(*BinaryExpression) interface{}
	VisitUnaryExpression(*UnaryExpression) interface{}
	VisitIntegerLiteral(*IntegerLiteral) interface{}
	VisitFloatLiteral(*FloatLiteral) interface{}
	VisitStringLiteral(*StringLiteral) interface{}
	VisitIdentifier(*Identifier) interface{}
	VisitMemberAccess(*MemberAccess) interface{}
	VisitMemberInvocation(*MemberInvocation) interface{}
}

// Walk calls fn for node and every node below it in depth-first order.
// Returning false from fn skips the children of that node.
func Walk(node Node, fn func(Node) bool) {
	if node == nil || !fn(node) {
		return
	}
	switch n := node.(type) {
	case *FunctionDeclaration:
		Walk(n.Name, fn)
		for _, param := range n.Parameters {
			Walk(param, fn)
		}
		if n.ReturnType != nil {
			Walk(n.ReturnType, fn)
		}
		for _, stmt := range n.Body {
			Walk(stmt, fn)
		}
	case *Parameter:
		Walk(n.Name, fn)
		if n.Annotation != nil {
			Walk(n.Annotation, fn)
		}
	case *VariableDeclaration:
		Walk(n.Key, fn)
		if n.Annotation != nil {
			Walk(n.Annotation, fn)
		}
		Walk(n.Value, fn)
	case *BinaryExpression:
		Walk(n.Left, fn)
		Walk(n.Right, fn)
	case *UnaryExpression:
		Walk(n.Operand, fn)
	case *MemberAccess:
		Walk(n.Target, fn)
		Walk(n.Member, fn)
	case *MemberInvocation:
		Walk(n.Target, fn)
		Walk(n.Method, fn)
	}
}
