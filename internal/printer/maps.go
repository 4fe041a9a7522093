package printer

import (
	"github.com/sk-lang/skc/internal/parser"
)

// ToMaps converts top-level nodes into generic maps for structured encoders
func ToMaps(nodes []parser.Node) []map[string]interface{} {
	out := make([]map[string]interface{}, 0, len(nodes))
	for _, node := range nodes {
		if m := ToMap(node); m != nil {
			out = append(out, m)
		}
	}
	return out
}

// ToMap converts a node and its children into a map keyed by field name.
// Every map carries "kind" and "span".
func ToMap(node parser.Node) map[string]interface{} {
	if node == nil {
		return nil
	}
	m, _ := node.Accept(mapBuilder{}).(map[string]interface{})
	return m
}

type mapBuilder struct{}

func base(kind string, node parser.Node) map[string]interface{} {
	span := node.GetSpan()
	return map[string]interface{}{
		"kind": kind,
		"span": map[string]interface{}{"start": span.Start, "end": span.End},
	}
}

func (mapBuilder) VisitFunctionDeclaration(f *parser.FunctionDeclaration) interface{} {
	m := base("FunctionDeclaration", f)
	m["name"] = f.Name.Name
	m["mutable"] = f.Mutable
	params := make([]interface{}, 0, len(f.Parameters))
	for _, param := range f.Parameters {
		params = append(params, ToMap(param))
	}
	m["parameters"] = params
	if f.ReturnType != nil {
		m["return_type"] = ToMap(f.ReturnType)
	}
	body := make([]interface{}, 0, len(f.Body))
	for _, stmt := range f.Body {
		body = append(body, ToMap(stmt))
	}
	m["body"] = body
	return m
}

func (mapBuilder) VisitParameter(p *parser.Parameter) interface{} {
	m := base("Parameter", p)
	m["name"] = p.Name.Name
	m["mutable"] = p.Mutable
	if p.Annotation != nil {
		m["annotation"] = ToMap(p.Annotation)
	}
	return m
}

func (mapBuilder) VisitVariableDeclaration(v *parser.VariableDeclaration) interface{} {
	m := base("VariableDeclaration", v)
	m["key"] = v.Key.Name
	m["mutable"] = v.Mutable
	if v.Annotation != nil {
		m["annotation"] = ToMap(v.Annotation)
	}
	m["value"] = ToMap(v.Value)
	return m
}

func (mapBuilder) VisitBinaryExpression(b *parser.BinaryExpression) interface{} {
	m := base("BinaryExpression", b)
	m["op"] = b.Op.String()
	m["precedence"] = b.Precedence
	m["left"] = ToMap(b.Left)
	m["right"] = ToMap(b.Right)
	return m
}

func (mapBuilder) VisitUnaryExpression(u *parser.UnaryExpression) interface{} {
	m := base("UnaryExpression", u)
	m["op"] = u.Op.String()
	m["operand"] = ToMap(u.Operand)
	return m
}

func (mapBuilder) VisitIntegerLiteral(i *parser.IntegerLiteral) interface{} {
	m := base("IntegerLiteral", i)
	m["value"] = i.Value
	return m
}

func (mapBuilder) VisitFloatLiteral(f *parser.FloatLiteral) interface{} {
	m := base("FloatLiteral", f)
	m["value"] = f.Value
	return m
}

func (mapBuilder) VisitStringLiteral(s *parser.StringLiteral) interface{} {
	m := base("StringLiteral", s)
	m["value"] = s.Value
	return m
}

func (mapBuilder) VisitIdentifier(i *parser.Identifier) interface{} {
	m := base("Identifier", i)
	m["name"] = i.Name
	return m
}

func (mapBuilder) VisitMemberAccess(ma *parser.MemberAccess) interface{} {
	m := base("MemberAccess", ma)
	m["target"] = ToMap(ma.Target)
	m["member"] = ToMap(ma.Member)
	return m
}

func (mapBuilder) VisitMemberInvocation(mi *parser.MemberInvocation) interface{} {
	m := base("MemberInvocation", mi)
	m["target"] = ToMap(mi.Target)
	m["method"] = ToMap(mi.Method)
	return m
}
