package diagnostics

import (
	"github.com/sk-lang/skc/internal/lexer"
	"github.com/sk-lang/skc/internal/position"
)

// DiagnosticBuilder provides a fluent interface for building diagnostics
type DiagnosticBuilder struct {
	diagnostic Diagnostic
	source     *position.SourceFile
}

// NewDiagnosticBuilder creates a builder resolving spans against source.
// A nil source yields diagnostics without locations.
func NewDiagnosticBuilder(source *position.SourceFile) *DiagnosticBuilder {
	db := &DiagnosticBuilder{source: source}
	if source != nil {
		db.diagnostic.SourceFile = source.Filename
	}
	return db
}

// Error creates an error-level diagnostic.
func (db *DiagnosticBuilder) Error() *DiagnosticBuilder {
	db.diagnostic.Level = DiagnosticError

	return db
}

// Warning creates a warning-level diagnostic.
func (db *DiagnosticBuilder) Warning() *DiagnosticBuilder {
	db.diagnostic.Level = DiagnosticWarning

	return db
}

// Note creates a note-level diagnostic.
func (db *DiagnosticBuilder) Note() *DiagnosticBuilder {
	db.diagnostic.Level = DiagnosticNote

	return db
}

// WithCode sets the error code.
func (db *DiagnosticBuilder) WithCode(code string) *DiagnosticBuilder {
	db.diagnostic.Code = code

	return db
}

// WithMessage sets the main diagnostic message.
func (db *DiagnosticBuilder) WithMessage(message string) *DiagnosticBuilder {
	db.diagnostic.Message = message

	return db
}

// WithHelp sets a short hint shown below the snippet.
func (db *DiagnosticBuilder) WithHelp(help string) *DiagnosticBuilder {
	db.diagnostic.Help = help

	return db
}

// At resolves a byte span to lines and columns and captures the source
// lines it covers.
func (db *DiagnosticBuilder) At(span lexer.Span) *DiagnosticBuilder {
	if db.source == nil {
		return db
	}

	resolved := db.source.Resolve(span)
	db.diagnostic.Span = resolved
	db.diagnostic.Context = db.diagnostic.Context[:0]
	for line := resolved.Start.Line; line <= resolved.End.Line; line++ {
		db.diagnostic.Context = append(db.diagnostic.Context, db.source.GetLine(line))
	}

	return db
}

// Build returns the assembled diagnostic.
func (db *DiagnosticBuilder) Build() Diagnostic {
	return db.diagnostic
}
