// Package styles derives lipgloss styles for the theme editor from a
// generated palette, so the editor chrome always previews the scheme being
// edited.
package styles

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/opencode-ai/prism/internal/palette"
)

// Styles contains lipgloss styles derived from a Base24 palette.
type Styles struct {
	Palette  palette.Palette
	Title    lipgloss.Style
	Text     lipgloss.Style
	Muted    lipgloss.Style
	Accent   lipgloss.Style
	Selected lipgloss.Style
	Border   lipgloss.Style
	Warning  lipgloss.Style
	Error    lipgloss.Style
}

// FromPalette builds editor styles from Base24 slots: base05 text on base00,
// base03 for muted chrome, base0D as the accent and base08 for errors.
func FromPalette(pal palette.Palette) Styles {
	return Styles{
		Palette:  pal,
		Title:    lipgloss.NewStyle().Foreground(lipgloss.Color(pal.Hex("base05"))).Bold(true),
		Text:     lipgloss.NewStyle().Foreground(lipgloss.Color(pal.Hex("base05"))),
		Muted:    lipgloss.NewStyle().Foreground(lipgloss.Color(pal.Hex("base03"))),
		Accent:   lipgloss.NewStyle().Foreground(lipgloss.Color(pal.Hex("base0D"))),
		Selected: lipgloss.NewStyle().Foreground(lipgloss.Color(pal.Hex("base0A"))).Bold(true),
		Border:   lipgloss.NewStyle().Foreground(lipgloss.Color(pal.Hex("base02"))),
		Warning:  lipgloss.NewStyle().Foreground(lipgloss.Color(pal.Hex("base09"))),
		Error:    lipgloss.NewStyle().Foreground(lipgloss.Color(pal.Hex("base08"))),
	}
}

// Swatch renders a color block in the given hex color.
func Swatch(hex string) string {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(hex)).Render("██████")
}

// Swatch1 renders a single-cell color block, used for gradient strips.
func Swatch1(hex string) string {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(hex)).Render("█")
}
