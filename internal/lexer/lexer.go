// Package lexer implements the Sk lexical analyzer.
package lexer

// operatorPair is a two-byte operator spelling
type operatorPair [2]byte

// doubleOperators are matched before any single-byte operator so that the
// longest spelling always wins.
var doubleOperators = map[operatorPair]TokenType{
	{'+', '='}: TokenPlusAssign,
	{'-', '='}: TokenMinusAssign,
	{'-', '>'}: TokenArrow,
	{'<', '-'}: TokenLArrow,
	{'/', '/'}: TokenSlashSlash,
	{':', ':'}: TokenDoubleColon,
	{':', '='}: TokenColonAssign,
	{'<', '='}: TokenLe,
	{'>', '='}: TokenGe,
	{'=', '='}: TokenEq,
	{'!', '='}: TokenNe,
}

var singleOperators = map[byte]TokenType{
	'(': TokenLParen,
	')': TokenRParen,
	'[': TokenLBracket,
	']': TokenRBracket,
	'{': TokenLBrace,
	'}': TokenRBrace,
	'+': TokenPlus,
	'-': TokenMinus,
	'*': TokenStar,
	'/': TokenSlash,
	'^': TokenCaret,
	'%': TokenPercent,
	'#': TokenHash,
	'@': TokenAt,
	'&': TokenAmpersand,
	'$': TokenDollar,
	':': TokenColon,
	';': TokenSemicolon,
	',': TokenComma,
	'.': TokenDot,
	'>': TokenGt,
	'<': TokenLt,
	'=': TokenAssign,
	'!': TokenBang,
}

// Lexer scans source text into tokens in a single forward pass
type Lexer struct {
	input        string
	position     int  // current position in input (points to current char)
	readPosition int  // current reading position in input (after current char)
	ch           byte // current char under examination
}

// New creates a new lexer instance
func New(input string) *Lexer {
	l := &Lexer{input: input}
	l.readChar()
	return l
}

// Tokenize scans the whole input and returns the token stream, always
// terminated by a single EOF token.
func Tokenize(input string) ([]Token, error) {
	l := New(input)
	tokens := make([]Token, 0, len(input)/3+1)
	for {
		tok, err := l.NextToken()
		if err != nil {
			return nil, err
		}
		tokens = append(tokens, tok)
		if tok.Type == TokenEOF {
			return tokens, nil
		}
	}
}

// readChar reads the next character and advances position
func (l *Lexer) readChar() {
	if l.readPosition >= len(l.input) {
		l.ch = 0 // ASCII NUL stands for "EOF"; atEOF tells it apart from a NUL byte
		l.position = len(l.input)
		l.readPosition = len(l.input)
		return
	}
	l.ch = l.input[l.readPosition]
	l.position = l.readPosition
	l.readPosition++
}

// peekChar returns the next character without advancing position
func (l *Lexer) peekChar() byte {
	if l.readPosition >= len(l.input) {
		return 0
	}
	return l.input[l.readPosition]
}

func (l *Lexer) atEOF() bool {
	return l.position >= len(l.input)
}

// skipWhitespace skips spaces, tabs, newlines and carriage returns
func (l *Lexer) skipWhitespace() {
	for !l.atEOF() && (l.ch == ' ' || l.ch == '\t' || l.ch == '\n' || l.ch == '\r') {
		l.readChar()
	}
}

// NextToken scans the input and returns the next token. Once EOF has been
// returned every further call returns EOF again.
func (l *Lexer) NextToken() (Token, error) {
	l.skipWhitespace()

	start := l.position
	if l.atEOF() {
		return Token{Type: TokenEOF, Span: Span{Start: len(l.input), End: len(l.input)}}, nil
	}

	if tt, ok := doubleOperators[operatorPair{l.ch, l.peekChar()}]; ok {
		l.readChar()
		l.readChar()
		return Token{Type: tt, Span: Span{Start: start, End: l.position}}, nil
	}

	switch {
	case l.ch == '"':
		body, terminated := l.readString()
		if !terminated {
			return Token{}, &LexError{
				Kind: UnterminatedString,
				Span: Span{Start: start, End: len(l.input)},
				Byte: '"',
			}
		}
		return Token{Type: TokenString, Span: Span{Start: start, End: l.position}, Lexeme: body}, nil
	case isDigit(l.ch):
		number := l.readNumber()
		return Token{Type: TokenNumber, Span: Span{Start: start, End: l.position}, Lexeme: number}, nil
	case isLetter(l.ch) || l.ch == '_':
		ident := l.readIdentifier()
		tt := lookupIdent(ident)
		tok := Token{Type: tt, Span: Span{Start: start, End: l.position}}
		if tt == TokenIdentifier {
			tok.Lexeme = ident
		}
		return tok, nil
	}

	if tt, ok := singleOperators[l.ch]; ok {
		l.readChar()
		return Token{Type: tt, Span: Span{Start: start, End: l.position}}, nil
	}

	return Token{}, &LexError{
		Kind: UnrecognizedByte,
		Span: Span{Start: start, End: start + 1},
		Byte: l.ch,
	}
}

// readIdentifier reads a run of letters, digits and underscores
func (l *Lexer) readIdentifier() string {
	position := l.position
	for !l.atEOF() && (isLetter(l.ch) || isDigit(l.ch) || l.ch == '_') {
		l.readChar()
	}
	return l.input[position:l.position]
}

// readNumber reads digits with '_' separators and at most one '.' that is
// followed by a digit. The raw text is kept for the parser to classify.
func (l *Lexer) readNumber() string {
	position := l.position
	hasDecimal := false

	for !l.atEOF() {
		switch {
		case isDigit(l.ch) || l.ch == '_':
			l.readChar()
		case l.ch == '.' && !hasDecimal && isDigit(l.peekChar()):
			hasDecimal = true
			l.readChar()
		default:
			return l.input[position:l.position]
		}
	}
	return l.input[position:l.position]
}

// readString reads a quoted string and reports whether the closing quote
// was found. A backslash escapes the byte after it.
func (l *Lexer) readString() (string, bool) {
	position := l.position + 1 // skip opening quote

	for {
		l.readChar()
		if l.atEOF() {
			return l.input[position:], false
		}
		if l.ch == '"' {
			body := l.input[position:l.position]
			l.readChar()
			return body, true
		}
		if l.ch == '\\' {
			l.readChar()
			if l.atEOF() {
				return l.input[position:], false
			}
		}
	}
}

// isLetter checks if character is ASCII letter
func isLetter(ch byte) bool {
	return 'a' <= ch && ch <= 'z' || 'A' <= ch && ch <= 'Z'
}

// isDigit checks if character is ASCII digit
func isDigit(ch byte) bool {
	return '0' <= ch && ch <= '9'
}
