package ui

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"

	"github.com/five82/bookfinder/internal/book"
	"github.com/five82/bookfinder/internal/state"
)

func TestPainterSpacedSkipsEmptyParts(t *testing.T) {
	p := newPainter("#1F1F28")
	got := p.spaced([]string{"Results: 3", "", "Favorites: 1"}, 2)
	if w := lipgloss.Width(got); w != len("Results: 3")+2+len("Favorites: 1") {
		t.Fatalf("spaced width = %d (%q)", w, got)
	}
	if p.spaced(nil, 2) != "" {
		t.Fatalf("spaced(nil) should be empty")
	}
}

func TestPainterFillPadsToWidth(t *testing.T) {
	p := newPainter("#1F1F28")
	line := p.fill(p.text("Dune", lipgloss.NewStyle()), 20)
	if w := lipgloss.Width(line); w != 20 {
		t.Fatalf("fill width = %d, want 20", w)
	}
	if p.gap(0) != "" || p.gap(-2) != "" {
		t.Fatalf("gap should be empty for non-positive widths")
	}
}

func TestFormatRecordRowMarksFavorites(t *testing.T) {
	dune := book.Record{Key: "/works/OL893415W", Title: "Dune", AuthorNames: []string{"Frank Herbert"}, FirstPublishYear: 1965}
	m := Model{width: 100, theme: GetTheme("Nightfox")}
	m.snapshot = state.Snapshot{Favorites: []book.Record{dune}}

	row := m.formatRecordRow(dune, 98, m.theme.SurfaceAlt, false)
	for _, want := range []string{markFavorite, "Dune", "Herbert", "1965"} {
		if !strings.Contains(row, want) {
			t.Fatalf("row missing %q: %q", want, row)
		}
	}

	other := book.Record{Key: "/works/OL2W", Title: "Hyperion"}
	row = m.formatRecordRow(other, 98, m.theme.SelectionBg, true)
	if !strings.Contains(row, markPlain) || strings.Contains(row, markFavorite) {
		t.Fatalf("non-favorite row should carry the hollow star: %q", row)
	}
	if !strings.Contains(row, "Unknown") {
		t.Fatalf("row without authors should say so: %q", row)
	}
}
