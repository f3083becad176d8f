// Package console prints the human-facing lines of a serialecho run.
//
// Debug lines (port selection, byte counts, lifecycle milestones) go to the
// standard output only when debug mode is on. Errors always go to standard
// error as a single line.
package console

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
)

// Level selects the glyph and color of a line.
type Level int

const (
	LevelDebug Level = iota
	LevelTraffic
	LevelSuccess
	LevelWarning
	LevelError
)

// Logger writes styled lines. Each writer gets its own renderer so output
// that is not a terminal stays free of escape sequences.
type Logger struct {
	out    io.Writer
	errOut io.Writer
	debug  bool

	outStyles map[Level]lipgloss.Style
	errStyles map[Level]lipgloss.Style
}

// New creates a Logger writing debug output to out and errors to errOut.
func New(out, errOut io.Writer, debug bool) *Logger {
	return &Logger{
		out:       out,
		errOut:    errOut,
		debug:     debug,
		outStyles: levelStyles(lipgloss.NewRenderer(out)),
		errStyles: levelStyles(lipgloss.NewRenderer(errOut)),
	}
}

// Discard returns a Logger that drops everything.
func Discard() *Logger {
	return New(io.Discard, io.Discard, false)
}

func levelStyles(r *lipgloss.Renderer) map[Level]lipgloss.Style {
	return map[Level]lipgloss.Style{
		LevelDebug:   r.NewStyle().Foreground(Mauve).Bold(true),
		LevelTraffic: r.NewStyle().Foreground(Sky).Bold(true),
		LevelSuccess: r.NewStyle().Foreground(Green).Bold(true),
		LevelWarning: r.NewStyle().Foreground(Yellow).Bold(true),
		LevelError:   r.NewStyle().Foreground(Red).Bold(true),
	}
}

var glyphs = map[Level]string{
	LevelDebug:   "⚡",
	LevelTraffic: "↔",
	LevelSuccess: "✓",
	LevelWarning: "!",
	LevelError:   "✗",
}

// DebugEnabled reports whether debug lines are printed.
func (l *Logger) DebugEnabled() bool {
	return l.debug
}

// Debugf prints a lifecycle line in debug mode.
func (l *Logger) Debugf(format string, args ...any) {
	l.print(LevelDebug, format, args...)
}

// Trafficf prints a send/receive line in debug mode.
func (l *Logger) Trafficf(format string, args ...any) {
	l.print(LevelTraffic, format, args...)
}

// Successf prints a completed milestone in debug mode.
func (l *Logger) Successf(format string, args ...any) {
	l.print(LevelSuccess, format, args...)
}

// Warnf prints a non-fatal problem to the error stream.
func (l *Logger) Warnf(format string, args ...any) {
	l.line(l.errOut, l.errStyles, LevelWarning, format, args...)
}

// Errorf prints a fatal problem to the error stream regardless of debug mode.
func (l *Logger) Errorf(format string, args ...any) {
	l.line(l.errOut, l.errStyles, LevelError, format, args...)
}

func (l *Logger) print(level Level, format string, args ...any) {
	if !l.debug {
		return
	}
	l.line(l.out, l.outStyles, level, format, args...)
}

func (l *Logger) line(w io.Writer, styles map[Level]lipgloss.Style, level Level, format string, args ...any) {
	fmt.Fprintf(w, "%s %s\n", styles[level].Render(glyphs[level]), fmt.Sprintf(format, args...))
}
