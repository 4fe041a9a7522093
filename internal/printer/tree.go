package printer

import (
	"fmt"
	"strings"

	"github.com/sk-lang/skc/internal/parser"
)

// TreePrinter renders nodes as an indented tree, one node per line
type TreePrinter struct {
	options Options
	indent  int
	label   string
	buffer  strings.Builder
}

// NewTreePrinter creates a new tree printer with the given options
func NewTreePrinter(options Options) *TreePrinter {
	if options.IndentSize <= 0 && !options.PreferTabs {
		options.IndentSize = DefaultOptions().IndentSize
	}
	return &TreePrinter{options: options}
}

// Tree renders a list of top-level nodes
func Tree(nodes []parser.Node, opts Options) string {
	p := NewTreePrinter(opts)
	for _, node := range nodes {
		p.print("", node)
	}
	return p.buffer.String()
}

// Print renders a single node and returns the text
func (p *TreePrinter) Print(node parser.Node) string {
	p.buffer.Reset()
	p.indent = 0
	p.print("", node)
	return p.buffer.String()
}

func (p *TreePrinter) print(label string, node parser.Node) {
	if node == nil {
		return
	}
	p.label = label
	node.Accept(p)
}

func (p *TreePrinter) child(label string, node parser.Node) {
	p.indent++
	p.print(label, node)
	p.indent--
}

func (p *TreePrinter) line(node parser.Node, format string, args ...interface{}) {
	p.writeIndent()
	if p.label != "" {
		p.buffer.WriteString(p.label)
		p.buffer.WriteString(": ")
		p.label = ""
	}
	fmt.Fprintf(&p.buffer, format, args...)
	if p.options.ShowSpans {
		fmt.Fprintf(&p.buffer, " @%s", node.GetSpan())
	}
	p.buffer.WriteString("\n")
}

func (p *TreePrinter) writeIndent() {
	if p.options.PreferTabs {
		p.buffer.WriteString(strings.Repeat("\t", p.indent))
	} else {
		p.buffer.WriteString(strings.Repeat(" ", p.indent*p.options.IndentSize))
	}
}

func (p *TreePrinter) VisitFunctionDeclaration(f *parser.FunctionDeclaration) interface{} {
	keyword := "func"
	if f.Mutable {
		keyword = "mut func"
	}
	p.line(f, "FunctionDeclaration %s %s", keyword, f.Name)
	for _, param := range f.Parameters {
		p.child("param", param)
	}
	p.child("returns", f.ReturnType)
	for _, stmt := range f.Body {
		p.child("body", stmt)
	}
	return nil
}

func (p *TreePrinter) VisitParameter(param *parser.Parameter) interface{} {
	p.line(param, "Parameter %s", param.Name)
	p.child("annotation", param.Annotation)
	return nil
}

func (p *TreePrinter) VisitVariableDeclaration(v *parser.VariableDeclaration) interface{} {
	keyword := "val"
	if v.Mutable {
		keyword = "var"
	}
	p.line(v, "VariableDeclaration %s %s", keyword, v.Key)
	if v.Annotation != nil {
		p.child("annotation", v.Annotation)
	}
	p.child("value", v.Value)
	return nil
}

func (p *TreePrinter) VisitBinaryExpression(b *parser.BinaryExpression) interface{} {
	p.line(b, "BinaryExpression %s (precedence %d)", b.Op.Symbol(), b.Precedence)
	p.child("left", b.Left)
	p.child("right", b.Right)
	return nil
}

func (p *TreePrinter) VisitUnaryExpression(u *parser.UnaryExpression) interface{} {
	p.line(u, "UnaryExpression %s", u.Op.Symbol())
	p.child("operand", u.Operand)
	return nil
}

func (p *TreePrinter) VisitIntegerLiteral(i *parser.IntegerLiteral) interface{} {
	p.line(i, "IntegerLiteral %d", i.Value)
	return nil
}

func (p *TreePrinter) VisitFloatLiteral(f *parser.FloatLiteral) interface{} {
	p.line(f, "FloatLiteral %g", f.Value)
	return nil
}

func (p *TreePrinter) VisitStringLiteral(s *parser.StringLiteral) interface{} {
	p.line(s, "StringLiteral %q", s.Value)
	return nil
}

func (p *TreePrinter) VisitIdentifier(i *parser.Identifier) interface{} {
	p.line(i, "Identifier %s", i.Name)
	return nil
}

func (p *TreePrinter) VisitMemberAccess(m *parser.MemberAccess) interface{} {
	p.line(m, "MemberAccess")
	p.child("target", m.Target)
	p.child("member", m.Member)
	return nil
}

func (p *TreePrinter) VisitMemberInvocation(m *parser.MemberInvocation) interface{} {
	p.line(m, "MemberInvocation")
	p.child("target", m.Target)
	p.child("method", m.Method)
	return nil
}
