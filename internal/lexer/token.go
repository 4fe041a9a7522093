package lexer

import "fmt"

// TokenType represents the type of a token
type TokenType int

// String returns a string representation of the token type
func (tt TokenType) String() string {
	if name, ok := tokenNames[tt]; ok {
		return name
	}
	return fmt.Sprintf("UNKNOWN(%d)", int(tt))
}

// Token types of the Sk language
const (
	TokenEOF TokenType = iota

	// Grouping
	TokenLParen
	TokenRParen
	TokenLBracket
	TokenRBracket
	TokenLBrace
	TokenRBrace

	// Arithmetic
	TokenPlus
	TokenPlusAssign
	TokenMinus
	TokenMinusAssign
	TokenStar
	TokenSlash
	TokenSlashSlash
	TokenCaret
	TokenPercent

	// Symbols
	TokenLArrow
	TokenArrow
	TokenHash
	TokenAt
	TokenAmpersand
	TokenDollar
	TokenColon
	TokenDoubleColon
	TokenColonAssign
	TokenSemicolon
	TokenComma
	TokenDot

	// Comparison
	TokenGt
	TokenGe
	TokenLt
	TokenLe
	TokenAssign
	TokenEq
	TokenBang
	TokenNe

	// Keywords
	TokenIf
	TokenElse
	TokenElif
	TokenFor
	TokenWhile
	TokenNew
	TokenMut
	TokenFunc
	TokenVal
	TokenVar
	TokenLet

	// Literals
	TokenString
	TokenNumber
	TokenIdentifier
)

// TokenClass groups token types into the broad categories the parser
// dispatches on.
type TokenClass int

const (
	ClassEndOfStream TokenClass = iota
	ClassGrouping
	ClassArithmetic
	ClassSymbol
	ClassComparison
	ClassKeyword
	ClassLiteral
	ClassIdentifier
)

func (c TokenClass) String() string {
	switch c {
	case ClassEndOfStream:
		return "end-of-stream"
	case ClassGrouping:
		return "grouping"
	case ClassArithmetic:
		return "arithmetic"
	case ClassSymbol:
		return "symbol"
	case ClassComparison:
		return "comparison"
	case ClassKeyword:
		return "keyword"
	case ClassLiteral:
		return "literal"
	case ClassIdentifier:
		return "identifier"
	default:
		return "unknown"
	}
}

// Class returns the category of the token type.
func (tt TokenType) Class() TokenClass {
	switch {
	case tt == TokenEOF:
		return ClassEndOfStream
	case tt >= TokenLParen && tt <= TokenRBrace:
		return ClassGrouping
	case tt >= TokenPlus && tt <= TokenPercent:
		return ClassArithmetic
	case tt >= TokenLArrow && tt <= TokenDot:
		return ClassSymbol
	case tt >= TokenGt && tt <= TokenNe:
		return ClassComparison
	case tt >= TokenIf && tt <= TokenLet:
		return ClassKeyword
	case tt == TokenString || tt == TokenNumber:
		return ClassLiteral
	case tt == TokenIdentifier:
		return ClassIdentifier
	default:
		return ClassEndOfStream
	}
}

// IsLeaf reports whether a token of this type can only appear inside a
// larger construct and never starts one on its own.
func (tt TokenType) IsLeaf() bool {
	switch tt {
	case TokenString, TokenNumber, TokenIdentifier:
		return true
	default:
		return false
	}
}

// Span is a half-open byte range [Start, End) in the source text
type Span struct {
	Start int
	End   int
}

// Len returns the number of bytes covered by the span
func (s Span) Len() int {
	return s.End - s.Start
}

// Join returns the smallest span covering both s and other
func (s Span) Join(other Span) Span {
	out := s
	if other.Start < out.Start {
		out.Start = other.Start
	}
	if other.End > out.End {
		out.End = other.End
	}
	return out
}

func (s Span) String() string {
	return fmt.Sprintf("%d..%d", s.Start, s.End)
}

// Token represents a lexical token with its source span. Lexeme holds the
// raw text for numbers and identifiers and the unquoted body of strings.
type Token struct {
	Type   TokenType
	Span   Span
	Lexeme string
}

// String returns a string representation of the token
func (t Token) String() string {
	if t.Lexeme != "" {
		return fmt.Sprintf("{Type: %s, Lexeme: %q, Span: %s}", t.Type, t.Lexeme, t.Span)
	}
	return fmt.Sprintf("{Type: %s, Span: %s}", t.Type, t.Span)
}

// tokenNames provides string representations for token types
var tokenNames = map[TokenType]string{
	TokenEOF: "EOF",

	TokenLParen:   "LPAREN",
	TokenRParen:   "RPAREN",
	TokenLBracket: "LBRACKET",
	TokenRBracket: "RBRACKET",
	TokenLBrace:   "LBRACE",
	TokenRBrace:   "RBRACE",

	TokenPlus:        "PLUS",
	TokenPlusAssign:  "PLUS_ASSIGN",
	TokenMinus:       "MINUS",
	TokenMinusAssign: "MINUS_ASSIGN",
	TokenStar:        "STAR",
	TokenSlash:       "SLASH",
	TokenSlashSlash:  "SLASH_SLASH",
	TokenCaret:       "CARET",
	TokenPercent:     "PERCENT",

	TokenLArrow:      "LARROW",
	TokenArrow:       "ARROW",
	TokenHash:        "HASH",
	TokenAt:          "AT",
	TokenAmpersand:   "AMPERSAND",
	TokenDollar:      "DOLLAR",
	TokenColon:       "COLON",
	TokenDoubleColon: "DOUBLE_COLON",
	TokenColonAssign: "COLON_ASSIGN",
	TokenSemicolon:   "SEMICOLON",
	TokenComma:       "COMMA",
	TokenDot:         "DOT",

	TokenGt:     "GT",
	TokenGe:     "GE",
	TokenLt:     "LT",
	TokenLe:     "LE",
	TokenAssign: "ASSIGN",
	TokenEq:     "EQ",
	TokenBang:   "BANG",
	TokenNe:     "NE",

	TokenIf:    "IF",
	TokenElse:  "ELSE",
	TokenElif:  "ELIF",
	TokenFor:   "FOR",
	TokenWhile: "WHILE",
	TokenNew:   "NEW",
	TokenMut:   "MUT",
	TokenFunc:  "FUNC",
	TokenVal:   "VAL",
	TokenVar:   "VAR",
	TokenLet:   "LET",

	TokenString:     "STRING",
	TokenNumber:     "NUMBER",
	TokenIdentifier: "IDENTIFIER",
}

// keywords maps reserved words to their token types
var keywords = map[string]TokenType{
	"if":    TokenIf,
	"else":  TokenElse,
	"elif":  TokenElif,
	"for":   TokenFor,
	"while": TokenWhile,
	"new":   TokenNew,
	"mut":   TokenMut,
	"func":  TokenFunc,
	"val":   TokenVal,
	"var":   TokenVar,
	"let":   TokenLet,
}

// lookupIdent checks if identifier is keyword
func lookupIdent(ident string) TokenType {
	if tok, ok := keywords[ident]; ok {
		return tok
	}
	return TokenIdentifier
}
