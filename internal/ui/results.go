package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/bookfinder/internal/book"
)

// currentRecords returns the records shown in the active view, in display order.
func (m Model) currentRecords() []book.Record {
	if m.currentView == ViewFavorites {
		return m.snapshot.Favorites
	}
	return m.snapshot.View
}

// selectedRecord returns the record under the cursor.
func (m Model) selectedRecord() (book.Record, bool) {
	records := m.currentRecords()
	row := m.selectedRow[m.currentView]
	if row < 0 || row >= len(records) {
		return book.Record{}, false
	}
	return records[row], true
}

// listHeight is the number of rows that fit inside the list box.
func (m Model) listHeight() int {
	return max(m.height-chromeHeight-2, 1)
}

// handleListKey processes navigation keys for the active list.
func (m Model) handleListKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	count := len(m.currentRecords())
	if count == 0 {
		return m, nil
	}

	row := m.selectedRow[m.currentView]
	half := max(m.listHeight()/2, 1)
	switch {
	case key.Matches(msg, m.keys.Down):
		row++
	case key.Matches(msg, m.keys.Up):
		row--
	case key.Matches(msg, m.keys.Top):
		row = 0
	case key.Matches(msg, m.keys.Bottom):
		row = count - 1
	case key.Matches(msg, m.keys.HalfPageDown):
		row += half
	case key.Matches(msg, m.keys.HalfPageUp):
		row -= half
	default:
		return m, nil
	}
	m.selectedRow[m.currentView] = row
	m.clampSelection()
	return m, nil
}

// clampSelection keeps the cursor inside the list and scrolls it into view.
func (m *Model) clampSelection() {
	count := len(m.currentRecords())
	v := m.currentView
	if count == 0 {
		m.selectedRow[v] = 0
		m.offset[v] = 0
		return
	}
	m.selectedRow[v] = min(max(m.selectedRow[v], 0), count-1)

	visible := m.listHeight()
	if m.selectedRow[v] < m.offset[v] {
		m.offset[v] = m.selectedRow[v]
	}
	if m.selectedRow[v] >= m.offset[v]+visible {
		m.offset[v] = m.selectedRow[v] - visible + 1
	}
	m.offset[v] = min(max(m.offset[v], 0), max(count-visible, 0))
}

// renderMain renders the full UI.
func (m Model) renderMain() string {
	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n")
	b.WriteString(m.renderSearchBar())
	b.WriteString("\n")
	b.WriteString(m.renderList())
	b.WriteString("\n")
	b.WriteString(m.renderCommandBar())
	return b.String()
}

// renderList renders the active list inside a titled box.
func (m Model) renderList() string {
	styles := m.theme.Styles()
	contentHeight := m.height - chromeHeight
	records := m.currentRecords()

	if len(records) == 0 {
		msg := m.emptyMessage()
		return lipgloss.Place(m.width, contentHeight, lipgloss.Center, lipgloss.Center,
			styles.MutedText.Render(msg))
	}

	width := m.width - 2
	v := m.currentView
	end := min(m.offset[v]+m.listHeight(), len(records))

	lines := make([]string, 0, end-m.offset[v])
	for i := m.offset[v]; i < end; i++ {
		selected := i == m.selectedRow[v]
		bgColor := m.theme.SurfaceAlt
		if selected {
			bgColor = m.theme.SelectionBg
		}
		content := m.formatRecordRow(records[i], width, bgColor, selected)
		lines = append(lines, newPainter(bgColor).fill(content, width))
	}

	return m.renderTitledBox(m.listTitle(), strings.Join(lines, "\n"), m.width, contentHeight)
}

// emptyMessage explains why the active list is empty.
func (m Model) emptyMessage() string {
	if m.currentView == ViewFavorites {
		return "No favorites yet. Press f on a result to add one."
	}
	switch {
	case m.snapshot.Loading:
		return "Searching..."
	case m.snapshot.Err != nil:
		return m.snapshot.Err.Error()
	default:
		return "Press / to search the catalog"
	}
}

func (m Model) listTitle() string {
	if m.currentView == ViewFavorites {
		return fmt.Sprintf("Favorites (%d)", len(m.snapshot.Favorites))
	}
	return fmt.Sprintf("Results (%d) · %s", len(m.snapshot.View), m.snapshot.Sort.Label())
}

// formatRecordRow renders "★ Title · Author · Year". Compact layouts drop
// the author. A selected row is drawn entirely in SelectionText.
func (m Model) formatRecordRow(r book.Record, width int, bgColor string, selected bool) string {
	p := newPainter(bgColor)

	author := r.AuthorLine()
	if author == "" {
		author = "Unknown author"
	}
	year := r.YearLabel()

	// two dividers, the mark and its space
	fixed := 2*len([]rune(rowDivider)) + 2 + len([]rune(year))
	authorWidth := min(len([]rune(author)), max(width/3, 12))
	compact := m.width < LayoutCompactWidth
	if compact {
		fixed -= len([]rune(rowDivider))
		authorWidth = 0
	}
	titleWidth := max(width-fixed-authorWidth-1, 10)

	var markStyle, titleStyle, sepStyle, metaStyle lipgloss.Style
	if selected {
		selText := lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.SelectionText))
		markStyle, titleStyle, sepStyle, metaStyle = selText, selText.Bold(true), selText, selText
	} else {
		styles := m.theme.Styles()
		markStyle = styles.FavoriteMark
		titleStyle = styles.Text
		sepStyle = styles.FaintText
		metaStyle = styles.MutedText
	}

	cells := []string{p.text(truncate(r.DisplayTitle(), titleWidth), titleStyle)}
	if !compact {
		cells = append(cells, p.text(truncate(author, authorWidth), metaStyle))
	}
	cells = append(cells, p.text(year, metaStyle))
	return p.mark(m.snapshot.IsFavorite(r), markStyle) + p.gap(1) + p.divided(cells, sepStyle)
}

// renderTitledBox renders content in a box with the title embedded in the top border.
// Style: ┌─── Title ───┐
func (m Model) renderTitledBox(title, content string, width, height int) string {
	p := newPainter(m.theme.SurfaceAlt)
	borderStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.Border))
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(m.theme.Text))

	innerWidth := width - 2
	titleLen := len([]rune(title))
	leftPad := max((innerWidth-titleLen-2)/2, 0)
	rightPad := max(innerWidth-titleLen-2-leftPad, 0)

	topBorder := p.text("┌", borderStyle) +
		p.text(strings.Repeat("─", leftPad), borderStyle) +
		p.text(" "+title+" ", titleStyle) +
		p.text(strings.Repeat("─", rightPad), borderStyle) +
		p.text("┐", borderStyle)

	bottomBorder := p.text("└", borderStyle) +
		p.text(strings.Repeat("─", innerWidth), borderStyle) +
		p.text("┘", borderStyle)

	contentStyle := lipgloss.NewStyle().Width(innerWidth).Background(p.bg)
	contentLines := strings.Split(content, "\n")
	boxHeight := height - 2

	padded := make([]string, 0, boxHeight)
	for i := 0; i < boxHeight; i++ {
		var line string
		if i < len(contentLines) {
			line = contentLines[i]
		}
		padded = append(padded,
			p.text("│", borderStyle)+
				contentStyle.Render(line)+
				p.text("│", borderStyle))
	}

	return topBorder + "\n" + strings.Join(padded, "\n") + "\n" + bottomBorder
}
