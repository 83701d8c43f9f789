package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/bookfinder/internal/book"
)

// Modal is the interface for modal dialogs.
// The Update method returns the updated modal, a command, and a bool indicating if the modal should close.
type Modal interface {
	Update(msg tea.Msg, keys keyMap) (Modal, tea.Cmd, bool)
	View(theme Theme, width, height int) string
}

// detailModal shows one record. Favorite toggling is handled by the Model,
// which keeps the favorite flag current.
type detailModal struct {
	record   book.Record
	favorite bool
	viewport viewport.Model
}

const detailSubjectLimit = 8

func newDetailModal(r book.Record, favorite bool, theme Theme, width, height int) detailModal {
	vp := viewport.New(detailModalWidth(width)-6, max(height-12, 5))
	vp.SetContent(detailBody(r, theme, detailModalWidth(width)-6))
	return detailModal{record: r, favorite: favorite, viewport: vp}
}

func (d detailModal) Update(msg tea.Msg, keys keyMap) (Modal, tea.Cmd, bool) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return d, nil, false
	}
	switch {
	case key.Matches(keyMsg, keys.Escape), key.Matches(keyMsg, keys.Open):
		return d, nil, true
	case key.Matches(keyMsg, keys.Down):
		d.viewport.ScrollDown(1)
	case key.Matches(keyMsg, keys.Up):
		d.viewport.ScrollUp(1)
	case key.Matches(keyMsg, keys.Top):
		d.viewport.GotoTop()
	case key.Matches(keyMsg, keys.Bottom):
		d.viewport.GotoBottom()
	}
	return d, nil, false
}

func (d detailModal) View(theme Theme, width, height int) string {
	styles := theme.Styles()
	inner := detailModalWidth(width) - 6

	mark := styles.FaintText.Render("☆ not a favorite")
	if d.favorite {
		mark = styles.FavoriteMark.Render("★ favorite")
	}
	head := styles.Text.Bold(true).Render(truncate(d.record.DisplayTitle(), inner)) + "\n" + mark
	footer := styles.FaintText.Render("f favorite · j/k scroll · esc close")
	content := head + "\n\n" + d.viewport.View() + "\n\n" + footer

	modal := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(theme.Accent)).
		Padding(1, 2).
		Width(detailModalWidth(width))

	return lipgloss.Place(
		width,
		height,
		lipgloss.Center,
		lipgloss.Center,
		modal.Render(content),
		lipgloss.WithWhitespaceChars(" "),
		lipgloss.WithWhitespaceForeground(lipgloss.Color(theme.Background)),
	)
}

// detailBody renders the scrollable part of the detail view.
func detailBody(r book.Record, theme Theme, inner int) string {
	styles := theme.Styles()
	label := lipgloss.NewStyle().Foreground(lipgloss.Color(theme.Muted)).Width(10)

	var body strings.Builder
	row := func(name, value string) {
		if value == "" {
			return
		}
		body.WriteString(label.Render(name))
		body.WriteString(styles.Text.Render(value))
		body.WriteString("\n")
	}
	authors := r.AuthorLine()
	if authors == "" {
		authors = "Unknown author"
	}
	row("Authors", authors)
	row("First pub", r.YearLabel())
	row("Work", r.Key)
	row("Cover", shortenURL(r.CoverURL(), inner-10))
	row("Open", shortenURL(r.DetailsURL(), inner-10))

	if subjects := r.TopSubjects(detailSubjectLimit); len(subjects) > 0 {
		body.WriteString("\n")
		body.WriteString(styles.AccentText.Bold(true).Render("Subjects"))
		body.WriteString("\n")
		for _, s := range subjects {
			body.WriteString(styles.MutedText.Render("• " + truncate(s, inner-2)))
			body.WriteString("\n")
		}
	}
	return strings.TrimRight(body.String(), "\n")
}

func detailModalWidth(width int) int {
	return min(max(width-10, 40), 90)
}

// confirmModal asks a yes/no question and emits onYes when confirmed.
type confirmModal struct {
	prompt string
	onYes  tea.Msg
}

func (c confirmModal) Update(msg tea.Msg, keys keyMap) (Modal, tea.Cmd, bool) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return c, nil, false
	}
	switch {
	case key.Matches(keyMsg, keys.Yes):
		yes := c.onYes
		return c, func() tea.Msg { return yes }, true
	case key.Matches(keyMsg, keys.No):
		return c, nil, true
	}
	return c, nil, false
}

func (c confirmModal) View(theme Theme, width, height int) string {
	styles := theme.Styles()
	content := styles.Text.Bold(true).Render(c.prompt) + "\n\n" +
		styles.AccentText.Render("y") + styles.MutedText.Render(" yes   ") +
		styles.AccentText.Render("n") + styles.MutedText.Render(" no")

	modal := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(theme.Danger)).
		Padding(1, 2)

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, modal.Render(content),
		lipgloss.WithWhitespaceChars(" "),
		lipgloss.WithWhitespaceForeground(lipgloss.Color(theme.Background)),
	)
}
