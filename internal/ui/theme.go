package ui

import (
	"github.com/charmbracelet/lipgloss"
)

// Theme is a named set of colors, one per UI role.
type Theme struct {
	Name string

	Background string
	Surface    string // header, footer and search bar
	SurfaceAlt string // list box

	SelectionBg   string
	SelectionText string
	Border        string

	Text     string
	Muted    string
	Faint    string
	Accent   string
	Warning  string
	Danger   string
	Favorite string // star marker
}

// Styles holds the lipgloss styles derived from a Theme.
type Styles struct {
	Text         lipgloss.Style
	MutedText    lipgloss.Style
	FaintText    lipgloss.Style
	AccentText   lipgloss.Style
	WarningText  lipgloss.Style
	DangerText   lipgloss.Style
	FavoriteMark lipgloss.Style

	Header lipgloss.Style
	Footer lipgloss.Style
	Logo   lipgloss.Style
}

// Styles builds the styles for t.
func (t Theme) Styles() Styles {
	fg := func(c string) lipgloss.Style {
		return lipgloss.NewStyle().Foreground(lipgloss.Color(c))
	}
	bar := lipgloss.NewStyle().Background(lipgloss.Color(t.Surface)).Padding(0, 1)

	return Styles{
		Text:         fg(t.Text),
		MutedText:    fg(t.Muted),
		FaintText:    fg(t.Faint),
		AccentText:   fg(t.Accent),
		WarningText:  fg(t.Warning),
		DangerText:   fg(t.Danger).Bold(true),
		FavoriteMark: fg(t.Favorite).Bold(true),

		Header: bar.Foreground(lipgloss.Color(t.Text)),
		Footer: bar.Foreground(lipgloss.Color(t.Muted)),
		Logo:   fg(t.Favorite).Bold(true),
	}
}

// WithBackground returns a copy of s with every style painted on color.
func (s Styles) WithBackground(color string) Styles {
	bg := lipgloss.Color(color)
	for _, st := range []*lipgloss.Style{
		&s.Text, &s.MutedText, &s.FaintText, &s.AccentText,
		&s.WarningText, &s.DangerText, &s.FavoriteMark,
		&s.Header, &s.Footer, &s.Logo,
	} {
		*st = st.Background(bg)
	}
	return s
}

// themes is the cycle order for the theme key; the first entry is the default.
var themes = []Theme{
	{
		// github.com/EdenEast/nightfox.nvim
		Name:          "Nightfox",
		Background:    "#131a24",
		Surface:       "#192330",
		SurfaceAlt:    "#212e3f",
		SelectionBg:   "#2b3b51",
		SelectionText: "#cdcecf",
		Border:        "#719cd6",
		Text:          "#cdcecf",
		Muted:         "#738091",
		Faint:         "#71839b",
		Accent:        "#719cd6",
		Warning:       "#dbc074",
		Danger:        "#c94f6d",
		Favorite:      "#f4a261",
	},
	{
		// github.com/rebelot/kanagawa.nvim
		Name:          "Kanagawa",
		Background:    "#16161D",
		Surface:       "#1F1F28",
		SurfaceAlt:    "#2A2A37",
		SelectionBg:   "#2D4F67",
		SelectionText: "#DCD7BA",
		Border:        "#7E9CD8",
		Text:          "#DCD7BA",
		Muted:         "#C8C093",
		Faint:         "#727169",
		Accent:        "#7E9CD8",
		Warning:       "#E6C384",
		Danger:        "#E46876",
		Favorite:      "#FFA066",
	},
	{
		Name:          "Parchment",
		Background:    "#1c1814",
		Surface:       "#241f1a",
		SurfaceAlt:    "#2e2822",
		SelectionBg:   "#5c4a32",
		SelectionText: "#f3e9d2",
		Border:        "#c9a66b",
		Text:          "#e8dcc4",
		Muted:         "#b3a58c",
		Faint:         "#857862",
		Accent:        "#c9a66b",
		Warning:       "#e0b354",
		Danger:        "#d0694f",
		Favorite:      "#f2c14e",
	},
}

// GetTheme returns the theme called name, or the default.
func GetTheme(name string) Theme {
	if i := themeIndex(name); i >= 0 {
		return themes[i]
	}
	return themes[0]
}

// NextTheme returns the name of the theme after current, wrapping around.
// Unknown names restart the cycle.
func NextTheme(current string) string {
	return themes[(themeIndex(current)+1)%len(themes)].Name
}

func themeIndex(name string) int {
	for i, t := range themes {
		if t.Name == name {
			return i
		}
	}
	return -1
}
