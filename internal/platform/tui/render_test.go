package tui

import (
	"strings"
	"testing"

	"github.com/vovakirdan/tui-saga/internal/core"
)

func TestPaletteRenderKeepsText(t *testing.T) {
	s := core.NewScreen(6, 2)
	s.DrawTextWithColor(0, 0, "ab", core.ColorRose)
	s.DrawTextWithColor(2, 0, "cd", core.ColorSky)
	s.DrawText(0, 1, "hello")

	for name, p := range map[string]Palette{"night": NightPalette(), "mono": MonochromePalette()} {
		out := p.Render(s)
		lines := strings.Split(out, "\n")
		if len(lines) != 2 {
			t.Fatalf("%s: Render produced %d lines, expected 2", name, len(lines))
		}
		for _, want := range []string{"ab", "cd", "hello"} {
			if !strings.Contains(out, want) {
				t.Errorf("%s: output missing %q: %q", name, want, out)
			}
		}
	}
}

func TestEveryColorHasAStyle(t *testing.T) {
	for name, p := range map[string]Palette{"night": NightPalette(), "mono": MonochromePalette()} {
		for c := core.ColorDefault; c <= core.ColorGold; c++ {
			if _, ok := p[c]; !ok {
				t.Errorf("%s: no style for color %d", name, c)
			}
		}
	}
}

func TestThemeByName(t *testing.T) {
	if len(ThemeByName("mono").Palette) == 0 || len(ThemeByName("unknown").Palette) == 0 {
		t.Error("every theme needs a board palette")
	}
}
