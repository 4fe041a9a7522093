// Package diagnostics renders lexer and parser failures as source snippets
// with caret markers under the offending text.
package diagnostics

import (
	"fmt"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"

	"github.com/sk-lang/skc/internal/position"
)

// DiagnosticLevel represents the severity level of a diagnostic
type DiagnosticLevel int

const (
	DiagnosticError DiagnosticLevel = iota
	DiagnosticWarning
	DiagnosticNote
)

func (dl DiagnosticLevel) String() string {
	switch dl {
	case DiagnosticError:
		return "error"
	case DiagnosticWarning:
		return "warning"
	case DiagnosticNote:
		return "note"
	default:
		return "unknown"
	}
}

var (
	colorError   = lipgloss.Color("#EF4444")
	colorWarning = lipgloss.Color("#F59E0B")
	colorNote    = lipgloss.Color("#3B82F6")
	colorMuted   = lipgloss.Color("#6B7280")

	levelStyles = map[DiagnosticLevel]lipgloss.Style{
		DiagnosticError:   lipgloss.NewStyle().Bold(true).Foreground(colorError),
		DiagnosticWarning: lipgloss.NewStyle().Bold(true).Foreground(colorWarning),
		DiagnosticNote:    lipgloss.NewStyle().Bold(true).Foreground(colorNote),
	}

	gutterStyle  = lipgloss.NewStyle().Foreground(colorMuted)
	messageStyle = lipgloss.NewStyle().Bold(true)
)

// Diagnostic is one reportable problem tied to a source location
type Diagnostic struct {
	Level      DiagnosticLevel
	Code       string // Error code like "E101"
	Message    string
	Span       position.Span
	SourceFile string
	Context    []string // Source lines covered by Span
	Help       string
}

// DiagnosticManager collects diagnostics for one run
type DiagnosticManager struct {
	diagnostics  []Diagnostic
	errorCount   int
	warningCount int
	colorize     bool
}

// NewDiagnosticManager creates a new diagnostic manager
func NewDiagnosticManager(colorize bool) *DiagnosticManager {
	return &DiagnosticManager{
		diagnostics: make([]Diagnostic, 0),
		colorize:    colorize,
	}
}

// AddDiagnostic adds a new diagnostic to the manager
func (dm *DiagnosticManager) AddDiagnostic(d Diagnostic) {
	switch d.Level {
	case DiagnosticError:
		dm.errorCount++
	case DiagnosticWarning:
		dm.warningCount++
	}
	dm.diagnostics = append(dm.diagnostics, d)
}

// Diagnostics returns the collected diagnostics ordered by file and
// location
func (dm *DiagnosticManager) Diagnostics() []Diagnostic {
	out := make([]Diagnostic, len(dm.diagnostics))
	copy(out, dm.diagnostics)
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.SourceFile != b.SourceFile {
			return a.SourceFile < b.SourceFile
		}
		return a.Span.Start.Offset < b.Span.Start.Offset
	})
	return out
}

// HasErrors reports whether any error-level diagnostic was added
func (dm *DiagnosticManager) HasErrors() bool {
	return dm.errorCount > 0
}

// ErrorCount returns the number of errors
func (dm *DiagnosticManager) ErrorCount() int {
	return dm.errorCount
}

// WarningCount returns the number of warnings
func (dm *DiagnosticManager) WarningCount() int {
	return dm.warningCount
}

// FormatAll formats every diagnostic followed by a summary line
func (dm *DiagnosticManager) FormatAll() string {
	var result strings.Builder
	for _, d := range dm.Diagnostics() {
		result.WriteString(dm.FormatDiagnostic(d))
		result.WriteString("\n")
	}
	result.WriteString(dm.FormatSummary())
	return result.String()
}

// FormatDiagnostic formats a diagnostic for display
func (dm *DiagnosticManager) FormatDiagnostic(d Diagnostic) string {
	var result strings.Builder

	// Header line: level, code, message
	header := d.Level.String()
	if d.Code != "" {
		header += "[" + d.Code + "]"
	}
	message := d.Message
	if dm.colorize {
		header = levelStyles[d.Level].Render(header)
		message = messageStyle.Render(message)
	}
	result.WriteString(header + ": " + message + "\n")

	if !d.Span.IsValid() {
		if d.Help != "" {
			result.WriteString("  = help: " + d.Help + "\n")
		}
		return result.String()
	}

	result.WriteString(dm.gutter("  --> "))
	result.WriteString(fmt.Sprintf("%s:%d:%d\n", sourceName(d.SourceFile), d.Span.Start.Line, d.Span.Start.Column))

	for i, line := range d.Context {
		lineNum := d.Span.Start.Line + i
		result.WriteString(dm.gutter(fmt.Sprintf("%4d | ", lineNum)))
		result.WriteString(line + "\n")
		result.WriteString(dm.gutter("     | "))
		result.WriteString(dm.markers(line, lineNum, d.Span) + "\n")
	}

	if d.Help != "" {
		result.WriteString(dm.gutter("     = "))
		result.WriteString("help: " + d.Help + "\n")
	}

	return result.String()
}

// markers returns the caret line placed under the part of line covered by
// span. Tabs in the prefix are kept so carets line up in a terminal.
func (dm *DiagnosticManager) markers(line string, lineNum int, span position.Span) string {
	startCol := 1
	if lineNum == span.Start.Line {
		startCol = span.Start.Column
	}
	endCol := len(line) + 1
	if lineNum == span.End.Line {
		endCol = span.End.Column
	}

	from := min(startCol-1, len(line))

	var prefix strings.Builder
	for _, r := range line[:from] {
		if r == '\t' {
			prefix.WriteByte('\t')
		} else {
			prefix.WriteByte(' ')
		}
	}

	to := min(max(endCol-1, from), len(line))
	width := utf8.RuneCountInString(line[from:to])
	carets := strings.Repeat("^", max(1, width))
	if dm.colorize {
		carets = levelStyles[DiagnosticError].Render(carets)
	}
	return prefix.String() + carets
}

func (dm *DiagnosticManager) gutter(s string) string {
	if dm.colorize {
		return gutterStyle.Render(s)
	}
	return s
}

// FormatSummary formats a summary of all diagnostics
func (dm *DiagnosticManager) FormatSummary() string {
	if len(dm.diagnostics) == 0 {
		return "No diagnostics."
	}
	return fmt.Sprintf("Found %d error(s) and %d warning(s).", dm.errorCount, dm.warningCount)
}

func sourceName(file string) string {
	if file == "" {
		return "<input>"
	}
	return file
}
