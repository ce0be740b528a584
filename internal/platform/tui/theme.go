package tui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/bioblitz/internal/core"
)

// Theme contains the visual styles for the board and the menus.
type Theme struct {
	Name string

	// Colony colors
	GreenCell lipgloss.Style
	RedCell   lipgloss.Style
	FreeCell  lipgloss.Style

	// Text colors used by HUD and messages
	Text    lipgloss.Style
	Info    lipgloss.Style
	Warning lipgloss.Style
	Dim     lipgloss.Style

	// Menu styles
	MenuTitle       lipgloss.Style
	MenuItemNormal  lipgloss.Style
	MenuItemActive  lipgloss.Style
	MenuDescription lipgloss.Style
	HelpText        lipgloss.Style
}

// DefaultTheme returns the default visual theme.
func DefaultTheme() Theme {
	return Theme{
		Name: "default",

		GreenCell: lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
		RedCell:   lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
		FreeCell:  lipgloss.NewStyle().Foreground(lipgloss.Color("245")),

		Text:    lipgloss.NewStyle().Foreground(lipgloss.Color("7")),
		Info:    lipgloss.NewStyle().Foreground(lipgloss.Color("6")),
		Warning: lipgloss.NewStyle().Foreground(lipgloss.Color("3")),
		Dim:     lipgloss.NewStyle().Foreground(lipgloss.Color("240")),

		MenuTitle:       lipgloss.NewStyle().Foreground(lipgloss.Color("46")).Bold(true),
		MenuItemNormal:  lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		MenuItemActive:  lipgloss.NewStyle().Foreground(lipgloss.Color("229")).Bold(true),
		MenuDescription: lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		HelpText:        lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
	}
}

// HighContrastTheme returns a theme with bold, saturated colonies.
func HighContrastTheme() Theme {
	theme := DefaultTheme()
	theme.Name = "high-contrast"
	theme.GreenCell = lipgloss.NewStyle().Foreground(lipgloss.Color("46")).Bold(true)
	theme.RedCell = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
	theme.FreeCell = lipgloss.NewStyle().Foreground(lipgloss.Color("255"))
	theme.Dim = lipgloss.NewStyle().Foreground(lipgloss.Color("250"))
	return theme
}

// PastelTheme returns a softer pastel theme.
func PastelTheme() Theme {
	theme := DefaultTheme()
	theme.Name = "pastel"
	theme.GreenCell = lipgloss.NewStyle().Foreground(lipgloss.Color("157"))
	theme.RedCell = lipgloss.NewStyle().Foreground(lipgloss.Color("217"))
	theme.FreeCell = lipgloss.NewStyle().Foreground(lipgloss.Color("250"))
	theme.MenuTitle = lipgloss.NewStyle().Foreground(lipgloss.Color("157")).Bold(true)
	return theme
}

// ThemeNames lists the built-in themes.
var ThemeNames = []string{"default", "high-contrast", "pastel"}

// ThemeByName returns a built-in theme.
func ThemeByName(name string) (Theme, error) {
	switch name {
	case "", "default":
		return DefaultTheme(), nil
	case "high-contrast":
		return HighContrastTheme(), nil
	case "pastel":
		return PastelTheme(), nil
	}
	return Theme{}, fmt.Errorf("tui: unknown theme %q", name)
}

// Style returns the style used for a screen color.
func (t Theme) Style(c core.Color) lipgloss.Style {
	switch c {
	case core.ColorBrightGreen:
		return t.GreenCell
	case core.ColorBrightRed:
		return t.RedCell
	case core.ColorGray:
		return t.FreeCell
	case core.ColorWhite:
		return t.Text
	case core.ColorCyan:
		return t.Info
	case core.ColorYellow:
		return t.Warning
	case core.ColorGreen:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	case core.ColorRed:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	default:
		return lipgloss.NewStyle()
	}
}

// Global theme variable, set once at startup
var activeTheme = DefaultTheme()

// SetTheme sets the global theme.
func SetTheme(theme Theme) {
	activeTheme = theme
}

// CurrentTheme returns the current global theme.
func CurrentTheme() Theme {
	return activeTheme
}
