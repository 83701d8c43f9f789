package ui

import (
	"strings"
	"testing"
)

func TestNextThemeCycles(t *testing.T) {
	want := []string{"Kanagawa", "Parchment", "Nightfox"}
	name := "Nightfox"
	for _, w := range want {
		name = NextTheme(name)
		if name != w {
			t.Fatalf("NextTheme = %q, want %q", name, w)
		}
	}
	if got := NextTheme("missing"); got != "Nightfox" {
		t.Fatalf("NextTheme(missing) = %q, want Nightfox", got)
	}
}

func TestGetThemeFallsBackToDefault(t *testing.T) {
	if got := GetTheme("nope").Name; got != "Nightfox" {
		t.Fatalf("GetTheme(nope).Name = %q, want Nightfox", got)
	}
	for _, th := range themes {
		if got := GetTheme(th.Name); got != th {
			t.Fatalf("GetTheme(%q) = %#v", th.Name, got)
		}
		for role, c := range map[string]string{
			"Surface":   th.Surface,
			"Selection": th.SelectionBg,
			"Favorite":  th.Favorite,
			"Border":    th.Border,
		} {
			if !strings.HasPrefix(c, "#") || len(c) != 7 {
				t.Fatalf("theme %q %s color = %q, want #rrggbb", th.Name, role, c)
			}
		}
	}
}

func TestWithBackgroundLeavesOriginal(t *testing.T) {
	th := GetTheme("Kanagawa")
	base := th.Styles()
	painted := base.WithBackground(th.Surface)

	if painted.FavoriteMark.GetBackground() == base.FavoriteMark.GetBackground() {
		t.Fatalf("FavoriteMark background unchanged after WithBackground")
	}
	if painted.Text.GetForeground() != base.Text.GetForeground() {
		t.Fatalf("WithBackground changed the foreground")
	}
}
