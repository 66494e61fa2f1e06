package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/vovakirdan/tui-saga/internal/core"
)

// Palette maps screen colors to terminal styles.
type Palette map[core.Color]lipgloss.Style

func fg(code string) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(code))
}

// NightPalette is the full-color board palette.
func NightPalette() Palette {
	return Palette{
		core.ColorDefault:      lipgloss.NewStyle(),
		core.ColorRed:          fg("1"),
		core.ColorGreen:        fg("2"),
		core.ColorYellow:       fg("3"),
		core.ColorBlue:         fg("4"),
		core.ColorMagenta:      fg("5"),
		core.ColorCyan:         fg("6"),
		core.ColorWhite:        fg("7"),
		core.ColorBrightYellow: fg("11").Bold(true),
		core.ColorBrightWhite:  fg("15").Bold(true),
		core.ColorGray:         fg("245"),
		core.ColorDimGray:      fg("238"),
		core.ColorRose:         fg("211"),
		core.ColorSky:          fg("117"),
		core.ColorMint:         fg("121"),
		core.ColorLavender:     fg("183"),
		core.ColorPeach:        fg("216"),
		core.ColorGold:         fg("221"),
	}
}

// MonochromePalette keeps only weight: markers bold, frames faint. Tiles
// are told apart by glyph.
func MonochromePalette() Palette {
	p := Palette{}
	for c := core.ColorDefault; c <= core.ColorGold; c++ {
		p[c] = lipgloss.NewStyle()
	}
	p[core.ColorBrightYellow] = lipgloss.NewStyle().Bold(true)
	p[core.ColorBrightWhite] = lipgloss.NewStyle().Bold(true).Underline(true)
	p[core.ColorDimGray] = lipgloss.NewStyle().Faint(true)
	return p
}

// Style returns the style of c, or the plain style for unknown colors.
func (p Palette) Style(c core.Color) lipgloss.Style {
	if style, ok := p[c]; ok {
		return style
	}
	return lipgloss.NewStyle()
}

var defaultPalette = NightPalette()

// Render converts a Screen buffer to a styled string for display.
// Adjacent cells of one color share a single styled run.
func (p Palette) Render(s *core.Screen) string {
	var sb strings.Builder
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	for y := range s.Height() {
		if y > 0 {
			sb.WriteRune('\n')
		}

		x := 0
		for x < s.Width() {
			color := s.GetCell(x, y).Color

			var run strings.Builder
			for ; x < s.Width(); x++ {
				cell := s.GetCell(x, y)
				if cell.Color != color {
					break
				}
				run.WriteRune(cell.Rune)
			}
			sb.WriteString(p.Style(color).Render(run.String()))
		}
	}
	return sb.String()
}
