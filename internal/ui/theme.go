package ui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Theme selects the board colors.
type Theme string

// Theme values. Auto follows the terminal background.
const (
	ThemeAuto  Theme = "auto"
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// ErrInvalidTheme is returned when an unsupported --theme value is given.
var ErrInvalidTheme = errors.New("invalid --theme value")

// HasDarkBackground reports whether the terminal background is dark
// (swappable in tests).
var HasDarkBackground = termenv.HasDarkBackground

// ParseTheme normalizes s. Empty means auto.
func ParseTheme(s string) (Theme, error) {
	switch t := Theme(strings.ToLower(strings.TrimSpace(s))); t {
	case "":
		return ThemeAuto, nil
	case ThemeAuto, ThemeLight, ThemeDark:
		return t, nil
	default:
		return "", fmt.Errorf("%w: %q (expected auto|light|dark)", ErrInvalidTheme, s)
	}
}

// Resolve turns auto into light or dark.
func (t Theme) Resolve() Theme {
	if t != ThemeAuto && t != "" {
		return t
	}

	if HasDarkBackground() {
		return ThemeDark
	}

	return ThemeLight
}

// Palette holds the colors a resolved theme renders with.
type Palette struct {
	Foreground lipgloss.Color
	Background lipgloss.Color
	Muted      lipgloss.Color
	Border     lipgloss.Color
	Accent     lipgloss.Color
	Error      lipgloss.Color
	Success    lipgloss.Color
}

var (
	lightPalette = Palette{
		Foreground: "#000000",
		Background: "#ffffff",
		Muted:      "#6b7280",
		Border:     "#d1d5db",
		Accent:     "#7c3aed",
		Error:      "#dc2626",
		Success:    "#16a34a",
	}
	darkPalette = Palette{
		Foreground: "#ffffff",
		Background: "#000000",
		Muted:      "#9ca3af",
		Border:     "#374151",
		Accent:     "#a78bfa",
		Error:      "#ef4444",
		Success:    "#22c55e",
	}
)

// Palette returns the colors for t, resolving auto first.
func (t Theme) Palette() Palette {
	if t.Resolve() == ThemeDark {
		return darkPalette
	}

	return lightPalette
}
