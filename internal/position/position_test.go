package position

import (
	"testing"

	"github.com/sk-lang/skc/internal/lexer"
)

func TestPosition(t *testing.T) {
	tests := []struct {
		name     string
		expected string
		pos      Position
		isValid  bool
	}{
		{
			name:     "Valid position with filename",
			pos:      Position{Filename: "src/main.sk", Line: 10, Column: 5, Offset: 100},
			isValid:  true,
			expected: "main.sk:10:5",
		},
		{
			name:     "Valid position without filename",
			pos:      Position{Line: 1, Column: 1, Offset: 0},
			isValid:  true,
			expected: "1:1",
		},
		{
			name:    "Invalid position - zero line",
			pos:     Position{Line: 0, Column: 1},
			isValid: false,
		},
		{
			name:    "Invalid position - negative offset",
			pos:     Position{Line: 1, Column: 1, Offset: -1},
			isValid: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.pos.IsValid(); got != tt.isValid {
				t.Errorf("IsValid() = %v, want %v", got, tt.isValid)
			}
			if tt.isValid {
				if got := tt.pos.String(); got != tt.expected {
					t.Errorf("String() = %q, want %q", got, tt.expected)
				}
			}
		})
	}
}

func TestPositionFromOffset(t *testing.T) {
	sf := NewSourceFile("test.sk", "val x = 1\nvar y = 2\n\nfunc")

	tests := []struct {
		offset int
		line   int
		column int
	}{
		{0, 1, 1},
		{4, 1, 5},
		{9, 1, 10},
		{10, 2, 1},
		{14, 2, 5},
		{20, 3, 1},
		{21, 4, 1},
		{25, 4, 5},
		{100, 4, 5},
	}

	for _, tt := range tests {
		pos := sf.PositionFromOffset(tt.offset)
		if pos.Line != tt.line || pos.Column != tt.column {
			t.Errorf("offset %d: expected %d:%d, got %d:%d", tt.offset, tt.line, tt.column, pos.Line, pos.Column)
		}
		if pos.Filename != "test.sk" {
			t.Errorf("offset %d: filename not carried, got %q", tt.offset, pos.Filename)
		}
	}

	if pos := sf.PositionFromOffset(-1); pos.IsValid() {
		t.Errorf("negative offset should be invalid, got %s", pos)
	}
}

func TestGetLine(t *testing.T) {
	sf := NewSourceFile("", "first\r\nsecond\n\nlast")

	if sf.LineCount() != 4 {
		t.Fatalf("expected 4 lines, got %d", sf.LineCount())
	}
	want := []string{"first", "second", "", "last"}
	for i, line := range want {
		if got := sf.GetLine(i + 1); got != line {
			t.Errorf("line %d: expected %q, got %q", i+1, line, got)
		}
	}
	if sf.GetLine(0) != "" || sf.GetLine(5) != "" {
		t.Error("out of range lines should be empty")
	}
}

func TestResolve(t *testing.T) {
	content := "val x = 1\nval y = \"abc"
	sf := NewSourceFile("a.sk", content)

	span := sf.Resolve(lexer.Span{Start: 18, End: len(content)})
	if !span.IsValid() {
		t.Fatalf("expected valid span, got %+v", span)
	}
	if got := span.String(); got != "a.sk:2:9-13" {
		t.Errorf("expected a.sk:2:9-13, got %s", got)
	}

	multi := sf.Resolve(lexer.Span{Start: 4, End: 14})
	if got := multi.String(); got != "a.sk:1:5-2:5" {
		t.Errorf("expected a.sk:1:5-2:5, got %s", got)
	}
}
