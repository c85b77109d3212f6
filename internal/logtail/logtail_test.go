package logtail

import (
	"io"
	"reflect"
	"testing"

	"github.com/charmbracelet/lipgloss"
)

func TestRing(t *testing.T) {
	tests := []struct {
		name   string
		size   int
		pushes []string
		want   []string
	}{
		{name: "empty", size: 3, want: nil},
		{name: "partial", size: 3, pushes: []string{"a", "b"}, want: []string{"a", "b"}},
		{name: "exact", size: 3, pushes: []string{"a", "b", "c"}, want: []string{"a", "b", "c"}},
		{name: "wraps", size: 3, pushes: []string{"a", "b", "c", "d", "e"}, want: []string{"c", "d", "e"}},
		{name: "zero size discards", size: 0, pushes: []string{"a"}, want: nil},
		{name: "negative size discards", size: -2, pushes: []string{"a"}, want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ring := NewRing(tt.size)
			for _, line := range tt.pushes {
				ring.Push(line)
			}
			if got := ring.Lines(); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Lines() = %v, want %v", got, tt.want)
			}
			if ring.Len() != len(tt.want) {
				t.Errorf("Len() = %d, want %d", ring.Len(), len(tt.want))
			}
		})
	}
}

func plainHighlighter() Highlighter {
	r := lipgloss.NewRenderer(io.Discard)
	s := r.NewStyle()
	return Highlighter{Timestamp: s, Text: s, Debug: s, Info: s, Warn: s, Error: s}
}

func TestHighlighter_PlainProfileKeepsText(t *testing.T) {
	h := plainHighlighter()
	inputs := []string{
		"",
		"   ",
		"no level here",
		"2025-10-08 21:01:05 INFO [encoder] starting",
		"2025-10-08T21:01:05Z ERROR disk full",
		"something WARN in the middle",
	}
	for _, in := range inputs {
		if got := h.Line(in); got != in {
			t.Errorf("Line(%q) = %q, want unchanged", in, got)
		}
	}
}

func TestLevel(t *testing.T) {
	tests := []struct {
		line string
		want string
	}{
		{"2025-10-08 21:01:05 INFO started", "INFO"},
		{"ERROR boom", "ERROR"},
		{"informational", ""},
		{"", ""},
	}
	for _, tt := range tests {
		if got := Level(tt.line); got != tt.want {
			t.Errorf("Level(%q) = %q, want %q", tt.line, got, tt.want)
		}
	}
}
