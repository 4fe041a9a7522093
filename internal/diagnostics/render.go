package diagnostics

import (
	"errors"
	"fmt"

	"github.com/sk-lang/skc/internal/lexer"
	"github.com/sk-lang/skc/internal/parser"
	"github.com/sk-lang/skc/internal/position"
)

var lexCodes = map[lexer.LexErrorKind]string{
	lexer.UnterminatedString: "E001",
	lexer.UnrecognizedByte:   "E002",
}

var parseCodes = map[parser.ParseErrorKind]string{
	parser.MissingOperand:  "E101",
	parser.MalformedNumber: "E102",
}

var fatalCodes = map[parser.FatalErrorKind]string{
	parser.MissingReturnType: "E201",
	parser.UnterminatedBlock: "E202",
	parser.MissingBody:       "E203",
	parser.NestingTooDeep:    "E204",
}

// FromError converts a lexer or parser error into a diagnostic. Other
// errors become location-less diagnostics carrying the error text.
func FromError(source *position.SourceFile, err error) Diagnostic {
	db := NewDiagnosticBuilder(source).Error()

	var lexErr *lexer.LexError
	var parseErr *parser.ParseError
	var fatalErr *parser.FatalError

	switch {
	case errors.As(err, &lexErr):
		db.WithCode(lexCodes[lexErr.Kind]).At(lexErr.Span)
		switch lexErr.Kind {
		case lexer.UnterminatedString:
			db.WithMessage("unterminated string literal").
				WithHelp("add a closing '\"'")
		default:
			db.WithMessage(fmt.Sprintf("unrecognized byte %q", lexErr.Byte))
		}
	case errors.As(err, &parseErr):
		message := parseErr.Message
		if parseErr.Err != nil {
			message += ": " + parseErr.Err.Error()
		}
		db.WithCode(parseCodes[parseErr.Kind]).WithMessage(message).At(parseErr.Span)
	case errors.As(err, &fatalErr):
		db.WithCode(fatalCodes[fatalErr.Kind]).WithMessage(fatalErr.Message).At(fatalErr.Span)
		if fatalErr.Kind == parser.MissingReturnType {
			db.WithHelp("declare a return type with '-> type'")
		}
	default:
		db.WithMessage(err.Error())
	}

	return db.Build()
}

// FromNote converts a parser note into a note-level diagnostic
func FromNote(source *position.SourceFile, note parser.Note) Diagnostic {
	return NewDiagnosticBuilder(source).
		Note().
		WithCode("N001").
		WithMessage(fmt.Sprintf("%s is not implemented yet and was skipped", note.Construct)).
		At(note.Span).
		Build()
}

// Render formats err as a caret snippet against source
func Render(source *position.SourceFile, err error, colorize bool) string {
	dm := NewDiagnosticManager(colorize)
	return dm.FormatDiagnostic(FromError(source, err))
}
