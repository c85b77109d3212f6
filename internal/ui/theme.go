package ui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/logtailer/internal/logtail"
)

// Theme defines colors for the viewer.
type Theme struct {
	Name string

	Surface string // header and footer bars
	Text    string
	Muted   string
	Faint   string
	Accent  string
	Success string
	Warning string
	Danger  string
	Info    string
}

// Styles holds the lipgloss styles derived from a Theme.
type Styles struct {
	Bar         lipgloss.Style
	Logo        lipgloss.Style
	Text        lipgloss.Style
	MutedText   lipgloss.Style
	AccentText  lipgloss.Style
	SuccessText lipgloss.Style
	WarningText lipgloss.Style
	DangerText  lipgloss.Style
}

// Styles returns Lipgloss styles for this theme.
func (t Theme) Styles() Styles {
	bg := lipgloss.Color(t.Surface)
	return Styles{
		Bar: lipgloss.NewStyle().
			Background(bg).
			Foreground(lipgloss.Color(t.Text)),
		Logo: lipgloss.NewStyle().
			Background(bg).
			Foreground(lipgloss.Color(t.Accent)).
			Bold(true),
		Text: lipgloss.NewStyle().
			Background(bg).
			Foreground(lipgloss.Color(t.Text)),
		MutedText: lipgloss.NewStyle().
			Background(bg).
			Foreground(lipgloss.Color(t.Muted)),
		AccentText: lipgloss.NewStyle().
			Background(bg).
			Foreground(lipgloss.Color(t.Accent)),
		SuccessText: lipgloss.NewStyle().
			Background(bg).
			Foreground(lipgloss.Color(t.Success)).
			Bold(true),
		WarningText: lipgloss.NewStyle().
			Background(bg).
			Foreground(lipgloss.Color(t.Warning)),
		DangerText: lipgloss.NewStyle().
			Background(bg).
			Foreground(lipgloss.Color(t.Danger)).
			Bold(true),
	}
}

// Highlighter returns a line highlighter using the theme's colors.
func (t Theme) Highlighter() logtail.Highlighter {
	fg := func(c string) lipgloss.Style { return lipgloss.NewStyle().Foreground(lipgloss.Color(c)) }
	return logtail.Highlighter{
		Timestamp: fg(t.Faint),
		Text:      fg(t.Text),
		Debug:     fg(t.Info).Bold(true),
		Info:      fg(t.Success).Bold(true),
		Warn:      fg(t.Warning).Bold(true),
		Error:     fg(t.Danger).Bold(true),
	}
}

var themes = map[string]Theme{
	"Nightfox": nightfoxTheme(),
	"Kanagawa": kanagawaTheme(),
	"Slate":    slateTheme(),
}

var themeOrder = []string{"Nightfox", "Kanagawa", "Slate"}

// GetTheme returns a theme by name, falling back to Nightfox.
func GetTheme(name string) Theme {
	if t, ok := themes[name]; ok {
		return t
	}
	return nightfoxTheme()
}

// NextTheme returns the next theme name in the cycle.
func NextTheme(current string) string {
	for i, name := range themeOrder {
		if name == current {
			return themeOrder[(i+1)%len(themeOrder)]
		}
	}
	return themeOrder[0]
}

func nightfoxTheme() Theme {
	// Nightfox palette: https://github.com/EdenEast/nightfox.nvim
	return Theme{
		Name:    "Nightfox",
		Surface: "#192330", // bg1
		Text:    "#cdcecf", // fg1
		Muted:   "#738091", // comment
		Faint:   "#71839b", // fg3
		Accent:  "#719cd6", // blue
		Success: "#81b29a", // green
		Warning: "#dbc074", // yellow
		Danger:  "#c94f6d", // red
		Info:    "#63cdcf", // cyan
	}
}

func kanagawaTheme() Theme {
	// Kanagawa palette: https://github.com/rebelot/kanagawa.nvim
	return Theme{
		Name:    "Kanagawa",
		Surface: "#1F1F28", // sumiInk3
		Text:    "#DCD7BA", // fujiWhite
		Muted:   "#C8C093", // oldWhite
		Faint:   "#727169", // fujiGray
		Accent:  "#7E9CD8", // crystalBlue
		Success: "#98BB6C", // springGreen
		Warning: "#E6C384", // carpYellow
		Danger:  "#E46876", // waveRed
		Info:    "#7FB4CA", // springBlue
	}
}

func slateTheme() Theme {
	// Tailwind CSS Slate/Sky palette: https://tailwindcss.com/docs/colors
	return Theme{
		Name:    "Slate",
		Surface: "#0f172a", // slate-900
		Text:    "#f1f5f9", // slate-100
		Muted:   "#94a3b8", // slate-400
		Faint:   "#64748b", // slate-500
		Accent:  "#38bdf8", // sky-400
		Success: "#22c55e", // green-500
		Warning: "#f59e0b", // amber-500
		Danger:  "#ef4444", // red-500
		Info:    "#06b6d4", // cyan-500
	}
}
