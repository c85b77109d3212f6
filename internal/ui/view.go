package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/five82/logtailer/internal/state"
	"github.com/five82/logtailer/internal/tailer"
)

func (m Model) renderMain() string {
	return lipgloss.JoinVertical(lipgloss.Left,
		m.renderHeader(),
		m.viewport.View(),
		m.renderFooter(),
	)
}

// renderHeader renders the status bar: path, run state, counters, last error.
func (m Model) renderHeader() string {
	styles := m.theme.Styles()
	sep := styles.Bar.Render("  ")

	label, kind := statusLabel(m.snapshot, time.Now())
	parts := []string{
		styles.Logo.Render("logtailer"),
		styles.AccentText.Render(m.snapshot.Path),
		statusStyle(styles, kind).Render(label),
		styles.MutedText.Render(fmt.Sprintf("%d lines", m.snapshot.TotalLines)),
	}
	if n := m.snapshot.WarnLines; n > 0 {
		parts = append(parts, styles.WarningText.Render(fmt.Sprintf("%d warn", n)))
	}
	if n := m.snapshot.ErrorLines; n > 0 {
		parts = append(parts, styles.DangerText.Render(fmt.Sprintf("%d error", n)))
	}
	if n := m.snapshot.Dropped; n > 0 {
		parts = append(parts, styles.MutedText.Render(fmt.Sprintf("%d scrolled out", n)))
	}
	if m.filter != "" {
		parts = append(parts, styles.WarningText.Render(fmt.Sprintf("filter %q", m.filter)))
	}
	if !m.follow {
		parts = append(parts, styles.MutedText.Render("paused"))
	}
	if m.snapshot.LastError != nil {
		parts = append(parts, styles.DangerText.Render(m.snapshot.LastError.Error()))
	}

	return styles.Bar.Width(m.width).MaxHeight(1).Render(strings.Join(parts, sep))
}

func (m Model) renderFooter() string {
	if m.searching {
		return m.search.View()
	}
	return m.help.View(m.keys)
}

func (m Model) bodyHeight() int {
	footer := 1
	if m.help.ShowAll && !m.searching {
		footer = lipgloss.Height(m.help.View(m.keys))
	}
	return max(m.height-1-footer, 1)
}

func (m *Model) updateContent() {
	if !m.ready {
		return
	}
	lines := visibleLines(m.snapshot.Lines, m.filter)
	rendered := make([]string, len(lines))
	wrap := lipgloss.NewStyle().Width(m.viewport.Width)
	for i, line := range lines {
		out := m.highlighter.Line(line)
		if m.prefs.Wrap && m.viewport.Width > 0 {
			out = wrap.Render(out)
		}
		rendered[i] = out
	}
	m.viewport.SetContent(strings.Join(rendered, "\n"))
	if m.follow {
		m.viewport.GotoBottom()
	}
}

// visibleLines returns the lines containing filter, ignoring case.
func visibleLines(lines []string, filter string) []string {
	needle := strings.ToLower(strings.TrimSpace(filter))
	if needle == "" {
		return lines
	}
	var out []string
	for _, line := range lines {
		if strings.Contains(strings.ToLower(line), needle) {
			out = append(out, line)
		}
	}
	return out
}

type statusKind int

const (
	statusOK statusKind = iota
	statusMuted
	statusWarn
	statusBad
)

// quietAfter is how long the file may go without a new line before the
// header calls it idle.
const quietAfter = 30 * time.Second

// statusLabel summarises the tail run for the header.
func statusLabel(snap state.Snapshot, now time.Time) (string, statusKind) {
	if !snap.Finished() {
		switch snap.State {
		case tailer.StatePolling, tailer.StateSleeping:
			if snap.IsQuiet(quietAfter, now) {
				return "idle", statusMuted
			}
			return "following", statusOK
		default:
			return "starting", statusMuted
		}
	}
	switch snap.Reason {
	case tailer.StateNotFound:
		return "file not found", statusBad
	case tailer.StateFileGone:
		return "file removed", statusWarn
	case tailer.StateTimedOut:
		return "time limit reached", statusMuted
	case tailer.StateStopped:
		return "stopped", statusMuted
	case tailer.StateFailed:
		return "failed", statusBad
	}
	return "stopped", statusMuted
}

func statusStyle(s Styles, kind statusKind) lipgloss.Style {
	switch kind {
	case statusOK:
		return s.SuccessText
	case statusWarn:
		return s.WarningText
	case statusBad:
		return s.DangerText
	default:
		return s.MutedText
	}
}
