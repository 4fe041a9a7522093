package cli

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/lipgloss"
)

// Level orders log severities
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	default:
		return fmt.Sprintf("LEVEL(%d)", int(l))
	}
}

// ParseLevel maps a config or flag value to a Level
func ParseLevel(s string) (Level, error) {
	switch strings.ToLower(s) {
	case "debug":
		return LevelDebug, nil
	case "info", "":
		return LevelInfo, nil
	case "warn", "warning":
		return LevelWarn, nil
	case "error":
		return LevelError, nil
	default:
		return LevelInfo, fmt.Errorf("unknown log level %q", s)
	}
}

var levelStyles = map[Level]lipgloss.Style{
	LevelDebug: lipgloss.NewStyle().Foreground(lipgloss.Color("#6B7280")),
	LevelInfo:  lipgloss.NewStyle().Foreground(lipgloss.Color("#10B981")),
	LevelWarn:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#F59E0B")),
	LevelError: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#EF4444")),
}

// Logger provides leveled logging for CLI tools
type Logger struct {
	mu       *sync.Mutex
	out      io.Writer
	level    Level
	colorize bool
	prefix   string
	now      func() time.Time
}

// NewLogger creates a new logger writing lines at or above level to out
func NewLogger(out io.Writer, level Level, colorize bool) *Logger {
	return &Logger{
		mu:       &sync.Mutex{},
		out:      out,
		level:    level,
		colorize: colorize,
		now:      time.Now,
	}
}

// With returns a logger that tags every line with key=value. The returned
// logger shares the output and its lock.
func (l *Logger) With(key, value string) *Logger {
	child := *l
	child.prefix = l.prefix + key + "=" + value + " "
	return &child
}

// Level returns the minimum level written
func (l *Logger) Level() Level {
	return l.level
}

// Enabled reports whether messages at level are written
func (l *Logger) Enabled(level Level) bool {
	return level >= l.level
}

func (l *Logger) log(level Level, format string, args ...interface{}) {
	if !l.Enabled(level) {
		return
	}

	tag := "[" + level.String() + "]"
	if l.colorize {
		tag = levelStyles[level].Render(tag)
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.out, "%s %s: %s%s\n", tag, l.now().Format("15:04:05"), l.prefix, fmt.Sprintf(format, args...))
}

// Debug logs a debug message
func (l *Logger) Debug(format string, args ...interface{}) {
	l.log(LevelDebug, format, args...)
}

// Info logs an info message
func (l *Logger) Info(format string, args ...interface{}) {
	l.log(LevelInfo, format, args...)
}

// Warn logs a warning message
func (l *Logger) Warn(format string, args ...interface{}) {
	l.log(LevelWarn, format, args...)
}

// Error logs an error message
func (l *Logger) Error(format string, args ...interface{}) {
	l.log(LevelError, format, args...)
}
