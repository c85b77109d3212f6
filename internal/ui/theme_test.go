package ui

import "testing"

func TestGetTheme_FallsBackToNightfox(t *testing.T) {
	if got := GetTheme("does-not-exist").Name; got != "Nightfox" {
		t.Fatalf("GetTheme(unknown).Name = %q, want Nightfox", got)
	}
	for _, name := range themeOrder {
		if got := GetTheme(name).Name; got != name {
			t.Fatalf("GetTheme(%q).Name = %q", name, got)
		}
	}
}

func TestThemes_HaveAllColors(t *testing.T) {
	for _, name := range themeOrder {
		th := GetTheme(name)
		colors := map[string]string{
			"Surface": th.Surface, "Text": th.Text, "Muted": th.Muted,
			"Faint": th.Faint, "Accent": th.Accent, "Success": th.Success,
			"Warning": th.Warning, "Danger": th.Danger, "Info": th.Info,
		}
		for field, c := range colors {
			if len(c) != 7 || c[0] != '#' {
				t.Errorf("%s.%s = %q, want #rrggbb", name, field, c)
			}
		}
	}
}

func TestThemeHighlighter_KeepsText(t *testing.T) {
	h := GetTheme("Slate").Highlighter()
	line := "2024-01-02 03:04:05 ERROR disk full"
	// Colors may or may not be emitted depending on the terminal; the text always survives.
	if got := stripANSI(h.Line(line)); got != line {
		t.Fatalf("highlighted text = %q, want %q", got, line)
	}
}

func stripANSI(s string) string {
	var out []rune
	inEsc := false
	for _, r := range s {
		switch {
		case r == 0x1b:
			inEsc = true
		case inEsc:
			if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') {
				inEsc = false
			}
		default:
			out = append(out, r)
		}
	}
	return string(out)
}
