package tui

import (
	"github.com/charmbracelet/lipgloss"
)

// Theme contains the styles of the menu and records screens and the
// palette the board is drawn with.
type Theme struct {
	Palette Palette

	// HUD styles
	HUDTitle    lipgloss.Style
	HUDValue    lipgloss.Style
	HUDControls lipgloss.Style

	// Level picker styles
	MenuTitle       lipgloss.Style
	MenuItemNormal  lipgloss.Style
	MenuItemActive  lipgloss.Style
	MenuItemLocked  lipgloss.Style
	MenuItemWon     lipgloss.Style
	MenuDescription lipgloss.Style

	// Records styles
	TableHeader   lipgloss.Style
	TableSelected lipgloss.Style
	Border        lipgloss.Style
	Empty         lipgloss.Style
}

// DefaultTheme returns the night-sky theme.
func DefaultTheme() Theme {
	return Theme{
		Palette: NightPalette(),

		HUDTitle:    lipgloss.NewStyle().Foreground(lipgloss.Color("117")).Bold(true),
		HUDValue:    lipgloss.NewStyle().Foreground(lipgloss.Color("255")),
		HUDControls: lipgloss.NewStyle().Foreground(lipgloss.Color("245")),

		MenuTitle:       lipgloss.NewStyle().Foreground(lipgloss.Color("183")).Bold(true),
		MenuItemNormal:  lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		MenuItemActive:  lipgloss.NewStyle().Foreground(lipgloss.Color("221")).Bold(true),
		MenuItemLocked:  lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
		MenuItemWon:     lipgloss.NewStyle().Foreground(lipgloss.Color("121")),
		MenuDescription: lipgloss.NewStyle().Foreground(lipgloss.Color("245")),

		TableHeader:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("183")),
		TableSelected: lipgloss.NewStyle().Foreground(lipgloss.Color("229")).Background(lipgloss.Color("61")),
		Border:        lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("240")).Padding(0, 1),
		Empty:         lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Italic(true).Padding(2, 4),
	}
}

// MonochromeTheme returns a grayscale theme for limited terminals.
func MonochromeTheme() Theme {
	theme := DefaultTheme()
	theme.Palette = MonochromePalette()
	theme.HUDTitle = lipgloss.NewStyle().Bold(true)
	theme.MenuTitle = lipgloss.NewStyle().Bold(true)
	theme.MenuItemActive = lipgloss.NewStyle().Reverse(true)
	theme.MenuItemWon = lipgloss.NewStyle().Foreground(lipgloss.Color("250"))
	theme.TableSelected = lipgloss.NewStyle().Reverse(true)
	return theme
}

// ThemeByName returns a theme by name, falling back to the default.
func ThemeByName(name string) Theme {
	switch name {
	case "mono", "monochrome":
		return MonochromeTheme()
	default:
		return DefaultTheme()
	}
}
