package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const (
	markFavorite = "★"
	markPlain    = "☆"
	rowDivider   = " · "
)

// painter renders text on one background color. lipgloss ends each styled
// run with a full reset, so the spaces between runs are painted separately
// or the terminal background shows through.
type painter struct {
	bg    lipgloss.Color
	blank lipgloss.Style
}

func newPainter(color string) painter {
	bg := lipgloss.Color(color)
	return painter{bg: bg, blank: lipgloss.NewStyle().Background(bg)}
}

// text renders s in style with every space painted.
func (p painter) text(s string, style lipgloss.Style) string {
	if s == "" {
		return ""
	}
	fg := style.Background(p.bg)
	var b strings.Builder
	for i, word := range strings.Split(s, " ") {
		if i > 0 {
			b.WriteString(p.blank.Render(" "))
		}
		if word != "" {
			b.WriteString(fg.Render(word))
		}
	}
	return b.String()
}

// gap returns n painted spaces.
func (p painter) gap(n int) string {
	if n <= 0 {
		return ""
	}
	return p.blank.Render(strings.Repeat(" ", n))
}

// spaced joins the non-empty parts with n painted spaces.
func (p painter) spaced(parts []string, n int) string {
	kept := make([]string, 0, len(parts))
	for _, part := range parts {
		if part != "" {
			kept = append(kept, part)
		}
	}
	return strings.Join(kept, p.gap(n))
}

// mark renders the favorite star for a list row.
func (p painter) mark(favorite bool, style lipgloss.Style) string {
	if favorite {
		return p.text(markFavorite, style)
	}
	return p.text(markPlain, style)
}

// divided joins row cells with a painted divider.
func (p painter) divided(cells []string, style lipgloss.Style) string {
	return strings.Join(cells, p.text(rowDivider, style))
}

// fill pads content to width so the whole line carries the background.
func (p painter) fill(content string, width int) string {
	return p.blank.Width(width).Render(content)
}
