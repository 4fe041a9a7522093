package printer

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"

	"github.com/sk-lang/skc/internal/parser"
)

func mustParse(t *testing.T, src string) []parser.Node {
	t.Helper()
	nodes, _, err := parser.ParseSource(src)
	if err != nil {
		t.Fatalf("parse %q: %v", src, err)
	}
	return nodes
}

func TestTree(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:  "binary value",
			input: "val x = 1 + 2",
			expected: "VariableDeclaration val x\n" +
				"  value: BinaryExpression + (precedence 2)\n" +
				"    left: IntegerLiteral 1\n" +
				"    right: IntegerLiteral 2\n",
		},
		{
			name:  "annotated var",
			input: "var s :: str = \"hi\"",
			expected: "VariableDeclaration var s\n" +
				"  annotation: Identifier str\n" +
				"  value: StringLiteral \"hi\"\n",
		},
		{
			name:  "function",
			input: "func f() -> int { var y = 2.5 }",
			expected: "FunctionDeclaration func f\n" +
				"  returns: Identifier int\n" +
				"  body: VariableDeclaration var y\n" +
				"    value: FloatLiteral 2.5\n",
		},
		{
			name:  "unary",
			input: "val n = -#xs",
			expected: "VariableDeclaration val n\n" +
				"  value: UnaryExpression -\n" +
				"    operand: UnaryExpression #\n" +
				"      operand: Identifier xs\n",
		},
		{
			name:  "member access",
			input: "val m = a.b",
			expected: "VariableDeclaration val m\n" +
				"  value: MemberAccess\n" +
				"    target: Identifier a\n" +
				"    member: Identifier b\n",
		},
		{
			name:     "empty",
			input:    "",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Tree(mustParse(t, tt.input), DefaultOptions())
			if got != tt.expected {
				t.Errorf("expected:\n%s\ngot:\n%s", tt.expected, got)
			}
		})
	}
}

func TestTreeOptions(t *testing.T) {
	nodes := mustParse(t, "val x = 1")

	got := Tree(nodes, Options{IndentSize: 2, ShowSpans: true})
	want := "VariableDeclaration val x @0..9\n  value: IntegerLiteral 1 @8..9\n"
	if got != want {
		t.Errorf("spans: expected %q, got %q", want, got)
	}

	got = Tree(nodes, Options{PreferTabs: true})
	want = "VariableDeclaration val x\n\tvalue: IntegerLiteral 1\n"
	if got != want {
		t.Errorf("tabs: expected %q, got %q", want, got)
	}

	p := NewTreePrinter(Options{})
	if got := p.Print(nodes[0]); !strings.HasPrefix(got, "VariableDeclaration") {
		t.Errorf("unexpected Print output %q", got)
	}
}

func TestJSON(t *testing.T) {
	out, err := JSON(mustParse(t, "val x = 1 + 2"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var decoded []map[string]interface{}
	if err := json.Unmarshal(out, &decoded); err != nil {
		t.Fatalf("invalid JSON: %v\n%s", err, out)
	}
	if len(decoded) != 1 {
		t.Fatalf("expected 1 node, got %d", len(decoded))
	}

	decl := decoded[0]
	if decl["kind"] != "VariableDeclaration" || decl["key"] != "x" || decl["mutable"] != false {
		t.Errorf("unexpected declaration %v", decl)
	}
	value := decl["value"].(map[string]interface{})
	if value["op"] != "Plus" || value["precedence"] != float64(2) {
		t.Errorf("unexpected value %v", value)
	}
	left := value["left"].(map[string]interface{})
	if left["value"] != float64(1) {
		t.Errorf("unexpected left operand %v", left)
	}
	span := value["span"].(map[string]interface{})
	if span["start"] != float64(8) || span["end"] != float64(13) {
		t.Errorf("unexpected span %v", span)
	}
}

func TestYAML(t *testing.T) {
	out, err := YAML(mustParse(t, "func f() -> int { }"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var decoded []map[string]interface{}
	if err := yaml.Unmarshal(out, &decoded); err != nil {
		t.Fatalf("invalid YAML: %v\n%s", err, out)
	}
	if len(decoded) != 1 || decoded[0]["kind"] != "FunctionDeclaration" || decoded[0]["name"] != "f" {
		t.Errorf("unexpected YAML contents %v", decoded)
	}
	if body, ok := decoded[0]["body"].([]interface{}); !ok || len(body) != 0 {
		t.Errorf("expected an empty body, got %v", decoded[0]["body"])
	}
}

func TestWrite(t *testing.T) {
	nodes := mustParse(t, "val x = 1")

	for _, format := range []string{"tree", "json", "yaml", "YML", ""} {
		var buf bytes.Buffer
		if err := Write(&buf, format, nodes, DefaultOptions()); err != nil {
			t.Errorf("%q: unexpected error: %v", format, err)
		}
		if buf.Len() == 0 {
			t.Errorf("%q: no output", format)
		}
	}

	var buf bytes.Buffer
	if err := Write(&buf, "xml", nodes, DefaultOptions()); err == nil {
		t.Error("expected an error for an unknown format")
	}
}

func TestWriteDeepestChain(t *testing.T) {
	src := "val x = 1" + strings.Repeat(" + 1", parser.DefaultMaxDepth)
	nodes := mustParse(t, src)

	for _, format := range []string{FormatTree, FormatJSON, FormatYAML} {
		var buf bytes.Buffer
		if err := Write(&buf, format, nodes, DefaultOptions()); err != nil {
			t.Errorf("%s: unexpected error: %v", format, err)
		}
	}

	deepest := "val x = 1" + strings.Repeat(" + 1", parser.MaxDepthLimit)
	nodes, _, err := parser.ParseSource(deepest, parser.WithMaxDepth(parser.MaxDepthLimit))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	data, err := json.Marshal(ToMaps(nodes))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if !json.Valid(data) {
		t.Error("the deepest accepted tree exceeds the JSON nesting limit")
	}
}
