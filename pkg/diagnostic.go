package happy

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#EF4444")).Bold(true)
	gutterStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#6B7280"))
	caretStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#F59E0B")).Bold(true)
)

// DiagnosticPrinter renders parse and run errors against the source they
// came from.
type DiagnosticPrinter struct {
	Source   string
	Filename string
	Color    bool
}

func NewDiagnosticPrinter(source, filename string, color bool) *DiagnosticPrinter {
	return &DiagnosticPrinter{Source: source, Filename: filename, Color: color}
}

func (d *DiagnosticPrinter) Render(err error) string {
	var (
		headline string
		pos      Position
	)

	var parseErr *ParseError
	var runErr *RuntimeError
	switch {
	case errors.As(err, &parseErr):
		headline = "error: " + parseErr.Kind.String()
		if parseErr.Detail != "" {
			headline += " (" + parseErr.Detail + ")"
		}
		pos = parseErr.Pos
	case errors.As(err, &runErr):
		headline = "runtime error: " + runErr.Error()
		pos = runErr.Pos
	default:
		headline = "error: " + err.Error()
	}

	var b strings.Builder
	b.WriteString(d.style(errorStyle, headline))

	if frame := d.codeFrame(pos); frame != "" {
		b.WriteString("\n")
		b.WriteString(frame)
	}

	return b.String()
}

func (d *DiagnosticPrinter) codeFrame(pos Position) string {
	if d.Source == "" || pos.Line <= 0 {
		return ""
	}

	lines := strings.Split(d.Source, "\n")
	if pos.Line > len(lines) {
		return ""
	}

	lineText := strings.TrimRight(lines[pos.Line-1], "\r")
	lineRunes := []rune(lineText)

	column := pos.Column
	if column <= 0 {
		column = 1
	}
	if column > len(lineRunes)+1 {
		column = len(lineRunes) + 1
	}

	location := fmt.Sprintf("line %d, column %d", pos.Line, column)
	if d.Filename != "" {
		location = fmt.Sprintf("%s:%d:%d", d.Filename, pos.Line, column)
	}

	lineLabel := strconv.Itoa(pos.Line)
	gutterPad := strings.Repeat(" ", len(lineLabel))
	caretPad := padding(lineRunes[:column-1])

	return fmt.Sprintf(
		"  %s %s\n %s %s\n %s %s%s",
		d.style(gutterStyle, "-->"),
		location,
		d.style(gutterStyle, lineLabel+" |"),
		lineText,
		d.style(gutterStyle, gutterPad+" |"),
		caretPad,
		d.style(caretStyle, "^"),
	)
}

// padding blanks out prefix, keeping tabs so the caret lines up with the
// source line however wide the terminal draws them.
func padding(prefix []rune) string {
	var b strings.Builder
	for _, r := range prefix {
		if r == '\t' {
			b.WriteRune('\t')
		} else {
			b.WriteByte(' ')
		}
	}

	return b.String()
}

func (d *DiagnosticPrinter) style(s lipgloss.Style, text string) string {
	if !d.Color {
		return text
	}

	return s.Render(text)
}

// Diagnostic renders err against source without colour.
func Diagnostic(source string, err error) string {
	return NewDiagnosticPrinter(source, "", false).Render(err)
}
