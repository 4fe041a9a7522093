package parser

import (
	"errors"
	"strings"
	"testing"

	"github.com/sk-lang/skc/internal/lexer"
)

func TestEmptyInput(t *testing.T) {
	for _, input := range []string{"", "   \n\t", "1 2 x \"s\""} {
		nodes, notes, err := ParseSource(input)
		if err != nil {
			t.Fatalf("%q: unexpected error: %v", input, err)
		}
		if len(nodes) != 0 || len(notes) != 0 {
			t.Errorf("%q: expected nothing, got nodes=%v notes=%v", input, nodes, notes)
		}
	}
}

func TestVariableDeclarations(t *testing.T) {
	tests := []struct {
		input      string
		key        string
		mutable    bool
		annotation string
		value      string
	}{
		{"val x = 1", "x", false, "", "1"},
		{"var x :: int = 1", "x", true, "int", "1"},
		{"val total = a + b * c", "total", false, "", "(a + (b * c))"},
		{"var s :: str = \"hi\"", "s", true, "str", `"hi"`},
		{"val p :: ptr = &x", "p", false, "ptr", "(&x)"},
		{"val f = 2.5;", "f", false, "", "2.5"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			node := parseSingle(t, tt.input)
			decl, ok := node.(*VariableDeclaration)
			if !ok {
				t.Fatalf("expected *VariableDeclaration, got %T", node)
			}
			if decl.Key.Name != tt.key {
				t.Errorf("expected key %q, got %q", tt.key, decl.Key.Name)
			}
			if decl.Mutable != tt.mutable {
				t.Errorf("expected mutable=%v, got %v", tt.mutable, decl.Mutable)
			}
			if tt.annotation == "" {
				if decl.Annotation != nil {
					t.Errorf("expected no annotation, got %s", decl.Annotation)
				}
			} else if decl.Annotation == nil || decl.Annotation.String() != tt.annotation {
				t.Errorf("expected annotation %q, got %v", tt.annotation, decl.Annotation)
			}
			if decl.Value.String() != tt.value {
				t.Errorf("expected value %s, got %s", tt.value, decl.Value)
			}
		})
	}
}

func TestSimpleValDeclarationShape(t *testing.T) {
	node := parseSingle(t, "val x = 1")
	decl := node.(*VariableDeclaration)

	lit, ok := decl.Value.(*IntegerLiteral)
	if !ok || lit.Value != 1 {
		t.Fatalf("expected integer literal 1, got %v", decl.Value)
	}
	if decl.Span != (lexer.Span{Start: 0, End: 9}) {
		t.Errorf("expected span 0..9, got %s", decl.Span)
	}
	if decl.Key.Span != (lexer.Span{Start: 4, End: 5}) {
		t.Errorf("expected key span 4..5, got %s", decl.Key.Span)
	}
}

func TestIncompleteDeclarationsProduceNoNode(t *testing.T) {
	tests := []string{
		"val x = ;",
		"val x :: int 1",
		"val = 1",
		"var x",
		"val x :: = 1",
	}

	for _, input := range tests {
		t.Run(input, func(t *testing.T) {
			nodes, _, err := ParseSource(input)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			for _, node := range nodes {
				if _, ok := node.(*VariableDeclaration); ok {
					t.Errorf("expected no declaration, got %s", node)
				}
			}
		})
	}
}

func TestMissingOperand(t *testing.T) {
	tests := []struct {
		name  string
		input string
		span  lexer.Span
	}{
		{"trailing operator", "1 +", lexer.Span{Start: 2, End: 3}},
		{"trailing operator in declaration", "val x = 1 *", lexer.Span{Start: 10, End: 11}},
		{"operator at start of input", "+ 1", lexer.Span{Start: 0, End: 1}},
		{"minus at start of input", "-1", lexer.Span{Start: 0, End: 1}},
		{"left token is not an operand", "( + 1", lexer.Span{Start: 2, End: 3}},
		{"operator followed by operator", "1 + + 2", lexer.Span{Start: 2, End: 3}},
		{"dangling prefix", "val x = 1 + -", lexer.Span{Start: 12, End: 13}},
		{"dangling top-level prefix", "!", lexer.Span{Start: 0, End: 1}},
		{"trailing operator in function body", "func f() -> int { 1 - }", lexer.Span{Start: 20, End: 21}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			nodes, _, err := ParseSource(tt.input)
			if err == nil {
				t.Fatalf("expected error, got nodes %v", nodes)
			}
			if nodes != nil {
				t.Errorf("expected no partial nodes, got %v", nodes)
			}
			if !errors.Is(err, ErrMissingOperand) {
				t.Fatalf("expected ErrMissingOperand, got %v", err)
			}
			var parseErr *ParseError
			if !errors.As(err, &parseErr) {
				t.Fatalf("expected *ParseError, got %T", err)
			}
			if parseErr.Kind != MissingOperand {
				t.Errorf("expected MissingOperand, got %s", parseErr.Kind)
			}
			if parseErr.Span != tt.span {
				t.Errorf("expected span %s, got %s", tt.span, parseErr.Span)
			}
		})
	}
}

func TestMalformedNumber(t *testing.T) {
	_, _, err := ParseSource("val big = 9223372036854775808")
	if !errors.Is(err, ErrMalformedNumber) {
		t.Fatalf("expected ErrMalformedNumber, got %v", err)
	}
	var parseErr *ParseError
	if !errors.As(err, &parseErr) {
		t.Fatalf("expected *ParseError, got %T", err)
	}
	if parseErr.Err == nil {
		t.Error("expected the strconv cause to be kept")
	}
	if errors.Is(err, ErrMissingOperand) {
		t.Error("malformed number must not match ErrMissingOperand")
	}
}

func TestMemberAccess(t *testing.T) {
	tests := []struct {
		input    string
		expected string
		check    func(t *testing.T, value Expression)
	}{
		{"val a = b.c", "b.c", func(t *testing.T, value Expression) {
			m, ok := value.(*MemberAccess)
			if !ok {
				t.Fatalf("expected *MemberAccess, got %T", value)
			}
			if m.Target.Name != "b" {
				t.Errorf("expected target b, got %s", m.Target)
			}
			if id, ok := m.Member.(*Identifier); !ok || id.Name != "c" {
				t.Errorf("expected member c, got %v", m.Member)
			}
		}},
		{"val a = obj:method", "obj:method", func(t *testing.T, value Expression) {
			m, ok := value.(*MemberInvocation)
			if !ok {
				t.Fatalf("expected *MemberInvocation, got %T", value)
			}
			if m.Target.Name != "obj" || m.Method.String() != "method" {
				t.Errorf("unexpected invocation %s", m)
			}
		}},
		{"val a = x.y.z", "x.y.z", func(t *testing.T, value Expression) {
			m := value.(*MemberAccess)
			if _, ok := m.Member.(*MemberAccess); !ok {
				t.Errorf("expected nested member access, got %T", m.Member)
			}
		}},
		{"val a = list.0", "list.0", func(t *testing.T, value Expression) {
			m := value.(*MemberAccess)
			if _, ok := m.Member.(*IntegerLiteral); !ok {
				t.Errorf("expected integer member, got %T", m.Member)
			}
		}},
		{"val a = b.c + 1", "(b.c + 1)", nil},
		{"val a = b.;", "b", func(t *testing.T, value Expression) {
			if _, ok := value.(*Identifier); !ok {
				t.Errorf("expected fallback to *Identifier, got %T", value)
			}
		}},
		{"val a = b:", "b", nil},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			nodes, _, err := ParseSource(tt.input)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(nodes) != 1 {
				t.Fatalf("expected 1 node, got %d: %v", len(nodes), nodes)
			}
			decl := nodes[0].(*VariableDeclaration)
			if got := decl.Value.String(); got != tt.expected {
				t.Errorf("expected %s, got %s", tt.expected, got)
			}
			if tt.check != nil {
				tt.check(t, decl.Value)
			}
		})
	}
}

func TestFunctionDeclarations(t *testing.T) {
	input := `func main() -> int {
	val x = 1
	var y :: int = x + 2
}

mut func touch() -> void {}`

	nodes, notes, err := ParseSource(input)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(notes) != 0 {
		t.Errorf("expected no notes, got %v", notes)
	}
	if len(nodes) != 2 {
		t.Fatalf("expected 2 nodes, got %d: %v", len(nodes), nodes)
	}

	main, ok := nodes[0].(*FunctionDeclaration)
	if !ok {
		t.Fatalf("expected *FunctionDeclaration, got %T", nodes[0])
	}
	if main.Name.Name != "main" || main.Mutable {
		t.Errorf("unexpected function header %s", main)
	}
	if main.ReturnType.String() != "int" {
		t.Errorf("expected return type int, got %s", main.ReturnType)
	}
	if len(main.Parameters) != 0 {
		t.Errorf("expected no parameters, got %v", main.Parameters)
	}
	if len(main.Body) != 2 {
		t.Fatalf("expected 2 body statements, got %d", len(main.Body))
	}
	if got := main.Body[1].String(); got != "var y :: int = (x + 2)" {
		t.Errorf("unexpected second statement %s", got)
	}
	if main.Span.Start != 0 || input[main.Span.End-1] != '}' {
		t.Errorf("function span should cover the whole declaration, got %s", main.Span)
	}

	touch, ok := nodes[1].(*FunctionDeclaration)
	if !ok {
		t.Fatalf("expected *FunctionDeclaration, got %T", nodes[1])
	}
	if !touch.Mutable {
		t.Error("expected mut func to be mutable")
	}
	if touch.Body == nil || len(touch.Body) != 0 {
		t.Errorf("expected empty non-nil body, got %v", touch.Body)
	}
	if input[touch.Span.Start:touch.Span.End] != "mut func touch() -> void {}" {
		t.Errorf("unexpected span text %q", input[touch.Span.Start:touch.Span.End])
	}
}

func TestNestedFunctions(t *testing.T) {
	node := parseSingle(t, "func outer() -> int { func inner() -> int { 1 + 2 } }")
	outer := node.(*FunctionDeclaration)
	if len(outer.Body) != 1 {
		t.Fatalf("expected 1 statement, got %d", len(outer.Body))
	}
	inner, ok := outer.Body[0].(*FunctionDeclaration)
	if !ok {
		t.Fatalf("expected nested *FunctionDeclaration, got %T", outer.Body[0])
	}
	if len(inner.Body) != 1 || inner.Body[0].String() != "(1 + 2)" {
		t.Errorf("unexpected inner body %v", inner.Body)
	}
}

func TestFunctionFatalErrors(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		sentinel error
		kind     FatalErrorKind
	}{
		{"no arrow", "func f() {}", ErrMissingReturnType, MissingReturnType},
		{"arrow without type", "func f() -> {}", ErrMissingReturnType, MissingReturnType},
		{"no body", "func f() -> int", ErrMissingBody, MissingBody},
		{"body not a brace", "func f() -> int val", ErrMissingBody, MissingBody},
		{"unterminated body", "func f() -> int { val x = 1", ErrUnterminatedBlock, UnterminatedBlock},
		{"unterminated nested body", "func f() -> int { func g() -> int { }", ErrUnterminatedBlock, UnterminatedBlock},
		{"unterminated parameter list", "func f(a", ErrUnterminatedBlock, UnterminatedBlock},
		{"parameters without body", "func f(a) -> int", ErrMissingBody, MissingBody},
		{"parameters and unterminated body", "func f(a) -> int { {", ErrUnterminatedBlock, UnterminatedBlock},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			nodes, _, err := ParseSource(tt.input)
			if err == nil {
				t.Fatalf("expected error, got %v", nodes)
			}
			if nodes != nil {
				t.Errorf("expected no nodes, got %v", nodes)
			}
			if !errors.Is(err, tt.sentinel) {
				t.Fatalf("expected %v, got %v", tt.sentinel, err)
			}
			var fatal *FatalError
			if !errors.As(err, &fatal) {
				t.Fatalf("expected *FatalError, got %T", err)
			}
			if fatal.Kind != tt.kind {
				t.Errorf("expected kind %s, got %s", tt.kind, fatal.Kind)
			}
		})
	}
}

func TestNotImplementedNotes(t *testing.T) {
	tests := []struct {
		name       string
		input      string
		constructs []string
		nodes      []string
	}{
		{
			name:       "parameter list",
			input:      "func add(a :: int, b :: int) -> int { a + b } val y = 2",
			constructs: []string{"parameter list"},
			nodes:      []string{"val y = 2"},
		},
		{
			name:       "if elif else chain",
			input:      "if x > 1 { val y = 2 } elif x { 1 } else { { 2 } } val z = 3",
			constructs: []string{"if statement"},
			nodes:      []string{"val z = 3"},
		},
		{
			name:       "loops",
			input:      "while x { val a = 1 + } for i in xs { } val b = 4",
			constructs: []string{"while loop", "for loop"},
			nodes:      []string{"val b = 4"},
		},
		{
			name:       "inside a function body",
			input:      "func f() -> int { if x { 1 } val a = 1 }",
			constructs: []string{"if statement"},
			nodes:      []string{"func f() -> int { 1 statements }"},
		},
		{
			name:       "dangling else",
			input:      "else { 1 }",
			constructs: []string{"else branch"},
		},
		{
			name:       "header without block",
			input:      "if x",
			constructs: []string{"if statement"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			nodes, notes, err := ParseSource(tt.input)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(notes) != len(tt.constructs) {
				t.Fatalf("expected notes for %v, got %v", tt.constructs, notes)
			}
			for i, construct := range tt.constructs {
				if notes[i].Kind != NotImplemented || notes[i].Construct != construct {
					t.Errorf("note %d: expected NotImplemented %s, got %s", i, construct, notes[i])
				}
			}
			if len(nodes) != len(tt.nodes) {
				t.Fatalf("expected nodes %v, got %v", tt.nodes, nodes)
			}
			for i, want := range tt.nodes {
				if got := nodes[i].String(); got != want {
					t.Errorf("node %d: expected %s, got %s", i, want, got)
				}
			}
		})
	}
}

func TestNoteSpans(t *testing.T) {
	input := "if x { 1 } else { 2 } val z = 3"
	_, notes, err := ParseSource(input)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(notes) != 1 {
		t.Fatalf("expected 1 note, got %v", notes)
	}
	if got := input[notes[0].Span.Start:notes[0].Span.End]; got != "if x { 1 } else { 2 }" {
		t.Errorf("unexpected note span text %q", got)
	}
}

func TestUnterminatedControlFlow(t *testing.T) {
	_, _, err := ParseSource("while x { val a = 1")
	if !errors.Is(err, ErrUnterminatedBlock) {
		t.Fatalf("expected ErrUnterminatedBlock, got %v", err)
	}
}

func TestNestingDepthLimit(t *testing.T) {
	tests := []struct {
		name  string
		input string
		opts  []Option
	}{
		{
			name:  "nested functions",
			input: "func a() -> t { func b() -> t { func c() -> t { func d() -> t { } } } }",
			opts:  []Option{WithMaxDepth(3)},
		},
		{
			name:  "prefix operators",
			input: "val x = " + strings.Repeat("#", 300) + "1",
		},
		{
			name:  "member chain",
			input: "val x = " + strings.Repeat("a.", 300) + "b",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := ParseSource(tt.input, tt.opts...)
			if !errors.Is(err, ErrNestingTooDeep) {
				t.Fatalf("expected ErrNestingTooDeep, got %v", err)
			}
		})
	}

	if _, _, err := ParseSource("val x = " + strings.Repeat("#", 100) + "1"); err != nil {
		t.Errorf("100 prefix operators should parse under the default limit: %v", err)
	}
	if _, _, err := ParseSource("func a() -> t { func b() -> t { } }", WithMaxDepth(2)); err != nil {
		t.Errorf("two nested bodies should fit a limit of 2: %v", err)
	}
}

func TestLexErrorPassesThrough(t *testing.T) {
	_, _, err := ParseSource(`val s = "abc`)
	if !errors.Is(err, lexer.ErrUnterminatedString) {
		t.Fatalf("expected ErrUnterminatedString, got %v", err)
	}
}

func TestParserWithoutEOFToken(t *testing.T) {
	tokens := []lexer.Token{
		{Type: lexer.TokenNumber, Lexeme: "1", Span: lexer.Span{Start: 0, End: 1}},
		{Type: lexer.TokenPlus, Span: lexer.Span{Start: 2, End: 3}},
		{Type: lexer.TokenNumber, Lexeme: "2", Span: lexer.Span{Start: 4, End: 5}},
	}
	nodes, err := New(tokens).Parse()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(nodes) != 1 || nodes[0].String() != "(1 + 2)" {
		t.Errorf("unexpected nodes %v", nodes)
	}
}

func TestSpans(t *testing.T) {
	input := "val x = -a.b + 20"
	decl := parseSingle(t, input).(*VariableDeclaration)

	bin := decl.Value.(*BinaryExpression)
	if got := input[bin.Span.Start:bin.Span.End]; got != "-a.b + 20" {
		t.Errorf("binary span text %q", got)
	}
	unary := bin.Left.(*UnaryExpression)
	if got := input[unary.Span.Start:unary.Span.End]; got != "-a.b" {
		t.Errorf("unary span text %q", got)
	}
	member := unary.Operand.(*MemberAccess)
	if got := input[member.Span.Start:member.Span.End]; got != "a.b" {
		t.Errorf("member span text %q", got)
	}
}
