package logtail

import (
	"regexp"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	timestampRe = regexp.MustCompile(`^(\d{4}-\d{2}-\d{2}[ T]\d{2}:\d{2}:\d{2}(?:[.,]\d+)?(?:Z|[+-]\d{2}:?\d{2})?)`)
	levelRe     = regexp.MustCompile(`\b(TRACE|DEBUG|INFO|WARN|WARNING|ERROR|FATAL)\b`)
)

// Highlighter colors the timestamp and level of a log line. Lines that do not
// look like log records are rendered with the Text style.
type Highlighter struct {
	Timestamp lipgloss.Style
	Text      lipgloss.Style
	Debug     lipgloss.Style
	Info      lipgloss.Style
	Warn      lipgloss.Style
	Error     lipgloss.Style
}

// DefaultHighlighter uses plain ANSI colors suitable for most terminals.
func DefaultHighlighter() Highlighter {
	return Highlighter{
		Timestamp: lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		Text:      lipgloss.NewStyle(),
		Debug:     lipgloss.NewStyle().Foreground(lipgloss.Color("6")).Bold(true),
		Info:      lipgloss.NewStyle().Foreground(lipgloss.Color("2")).Bold(true),
		Warn:      lipgloss.NewStyle().Foreground(lipgloss.Color("3")).Bold(true),
		Error:     lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Bold(true),
	}
}

// Line renders a single line. Malformed lines are never rejected.
func (h Highlighter) Line(line string) string {
	if strings.TrimSpace(line) == "" {
		return line
	}

	var b strings.Builder
	remaining := line

	if m := timestampRe.FindStringSubmatchIndex(remaining); m != nil {
		b.WriteString(h.Timestamp.Render(remaining[m[2]:m[3]]))
		remaining = remaining[m[3]:]
	}

	if m := levelRe.FindStringSubmatchIndex(remaining); m != nil {
		b.WriteString(h.Text.Render(remaining[:m[2]]))
		b.WriteString(h.levelStyle(remaining[m[2]:m[3]]).Render(remaining[m[2]:m[3]]))
		remaining = remaining[m[3]:]
	}

	b.WriteString(h.Text.Render(remaining))
	return b.String()
}

func (h Highlighter) levelStyle(level string) lipgloss.Style {
	switch level {
	case "TRACE", "DEBUG":
		return h.Debug
	case "INFO":
		return h.Info
	case "WARN", "WARNING":
		return h.Warn
	case "ERROR", "FATAL":
		return h.Error
	default:
		return h.Text
	}
}

// Level returns the first recognised level token in line, or "".
func Level(line string) string {
	if m := levelRe.FindStringSubmatch(line); m != nil {
		return m[1]
	}
	return ""
}
