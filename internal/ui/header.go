package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// renderHeader renders the status bar: logo, counts and the latest outcome.
func (m Model) renderHeader() string {
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	p := newPainter(m.theme.Surface)

	parts := []string{
		p.text("bookfinder", styles.Logo),
		p.text("Results:", styles.MutedText) + p.gap(1) +
			p.text(fmt.Sprintf("%d", len(m.snapshot.Results)), styles.Text),
		p.text("Favorites:", styles.MutedText) + p.gap(1) +
			p.text(fmt.Sprintf("%d", len(m.snapshot.Favorites)), styles.FavoriteMark),
		m.statusLine(styles, p),
	}

	return lipgloss.NewStyle().
		Background(lipgloss.Color(m.theme.Surface)).
		Foreground(lipgloss.Color(m.theme.Text)).
		Width(m.width).
		Render(styles.Header.Render(p.spaced(parts, 2)) + p.gap(2))
}

// statusLine shows loading, search errors and persistence warnings.
func (m Model) statusLine(styles Styles, p painter) string {
	var parts []string
	switch {
	case m.snapshot.Loading:
		parts = append(parts, p.text("Searching...", styles.WarningText.Bold(true)))
	case m.snapshot.Err != nil:
		parts = append(parts, p.text(m.snapshot.Err.Error(), styles.DangerText))
	}
	if m.snapshot.Warning != nil {
		parts = append(parts, p.text("! "+m.snapshot.Warning.Error(), styles.WarningText))
	}
	return p.spaced(parts, 2)
}

// renderSearchBar renders the field selector and the query input.
func (m Model) renderSearchBar() string {
	styles := m.theme.Styles().WithBackground(m.theme.SurfaceAlt)
	p := newPainter(m.theme.SurfaceAlt)

	fieldStyle := styles.MutedText
	if m.searchActive {
		fieldStyle = styles.AccentText.Bold(true)
	}
	label := fieldLabel(m.field.String())
	field := p.text(label, fieldStyle) + p.gap(fieldLabelWidth-len(label))

	input := m.searchInput.View()
	if !m.searchActive && m.searchInput.Value() == "" {
		input = p.text("press / to search", styles.FaintText)
	}

	return lipgloss.NewStyle().
		Background(lipgloss.Color(m.theme.SurfaceAlt)).
		Width(m.width).
		Padding(0, 1).
		Render(p.text("Search", styles.Text.Bold(true)) + p.gap(1) + field + p.text("▸ ", styles.FaintText) + input)
}

// fieldLabelWidth fits the longest field name plus a space.
const fieldLabelWidth = 8

// fieldLabel capitalizes a search field name for the search bar.
func fieldLabel(name string) string {
	if name == "" {
		return ""
	}
	return strings.ToUpper(name[:1]) + name[1:]
}

// renderCommandBar renders the command hints bar.
func (m Model) renderCommandBar() string {
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	p := newPainter(m.theme.Surface)

	type cmd struct{ key, desc string }
	var commands []cmd

	switch {
	case m.searchActive:
		commands = []cmd{
			{"enter", "Search"},
			{"tab", "Field"},
			{"esc", "Done"},
		}
	case m.currentView == ViewFavorites:
		commands = []cmd{
			{"j/k", "Navigate"},
			{"enter", "Details"},
			{"f", "Remove"},
			{"X", "Clear all"},
			{"tab", "Results"},
			{"?", "More"},
		}
	default:
		commands = []cmd{
			{"/", "Search"},
			{"j/k", "Navigate"},
			{"enter", "Details"},
			{"f", "Favorite"},
			{"o", m.snapshot.Sort.Label()},
			{"x", "Clear"},
			{"tab", "Favorites"},
			{"?", "More"},
		}
	}

	colon := p.text(":", lipgloss.NewStyle())

	segments := make([]string, 0, len(commands)+1)
	for _, c := range commands {
		segments = append(segments,
			p.text(c.key, styles.AccentText)+colon+p.text(c.desc, styles.MutedText))
	}

	segments = append(segments,
		p.text("T", styles.AccentText)+colon+p.text(m.theme.Name, styles.FaintText))

	return styles.Footer.Width(m.width).Render(p.spaced(segments, 2))
}
