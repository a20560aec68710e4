package tui

import (
	"fmt"
	"strings"

	"github.com/opencode-ai/prism/internal/colorspace"
	"github.com/opencode-ai/prism/internal/hue"
	"github.com/opencode-ai/prism/internal/palette"
	"github.com/opencode-ai/prism/internal/store"
	"github.com/opencode-ai/prism/internal/tui/styles"
)

func (m model) View() string {
	if m.width > 0 && m.height > 0 {
		if m.width < minWidth || m.height < minHeight {
			return fmt.Sprintf("Terminal too small (%dx%d), need %dx%d. Press q to quit.\n",
				m.width, m.height, minWidth, minHeight)
		}
	}

	lines := []string{
		m.styles.Title.Render("Prism theme editor"),
		m.styles.Text.Render(fmt.Sprintf("theme: %s  flavor: %s%s",
			m.store.ActiveTheme(), m.store.ActiveFlavor(), m.customizedMarker())),
		"",
	}

	lines = append(lines, m.swatchLines()...)
	lines = append(lines, "")
	lines = append(lines, m.paramLines()...)
	lines = append(lines, "")

	if m.status != "" {
		lines = append(lines, m.styles.Error.Render(m.status))
	}
	lines = append(lines,
		m.styles.Muted.Render("↑/↓ field  ←/→ adjust  h/l slot  [/] slot hue  x clear slot"),
		m.styles.Muted.Render("t/T theme  f/F flavor  r reset flavor  R reset theme  q quit"),
	)

	return strings.Join(lines, "\n") + "\n"
}

func (m model) customizedMarker() string {
	if m.store.Customized() {
		return " *"
	}
	return ""
}

func (m model) swatchLines() []string {
	pal := m.styles.Palette

	uiRow := make([]string, 0, 8)
	for _, key := range palette.Keys[:8] {
		uiRow = append(uiRow, styles.Swatch(pal.Hex(key)))
	}

	accentRow := make([]string, 0, 8)
	labelRow := make([]string, 0, 8)
	mutedRow := make([]string, 0, 8)
	for i, slot := range hue.AllSlots() {
		accentRow = append(accentRow, styles.Swatch(pal.Hex(palette.AccentKey(slot))))
		mutedRow = append(mutedRow, styles.Swatch(pal.Hex(palette.MutedKey(slot))))

		label := fmt.Sprintf("%-6s", truncate(slot.String(), 6))
		if i == m.slotIdx {
			label = m.styles.Selected.Render(label)
		} else {
			label = m.styles.Muted.Render(label)
		}
		labelRow = append(labelRow, label)
	}

	return []string{
		m.styles.Muted.Render("ui      ") + strings.Join(uiRow, " "),
		m.styles.Muted.Render("accents ") + strings.Join(accentRow, " "),
		m.styles.Muted.Render("muted   ") + strings.Join(mutedRow, " "),
		strings.Repeat(" ", 8) + strings.Join(labelRow, " "),
	}
}

func (m model) paramLines() []string {
	params, err := m.store.EffectiveParams()
	if err != nil {
		return []string{m.styles.Error.Render(err.Error())}
	}

	values := []float64{
		params.BgHue,
		params.BgSat,
		params.BgLight,
		params.AccentHue,
		params.AccentSat,
		params.AccentLight,
		params.CommentLight,
	}

	lines := make([]string, 0, len(fields)+1)
	for i, field := range fields {
		line := fmt.Sprintf("%-18s %6.1f", field.String(), values[i])
		if i == m.fieldIdx {
			line = m.styles.Selected.Render("> " + line)
		} else {
			line = m.styles.Text.Render("  " + line)
		}
		lines = append(lines, line)
	}

	slot := m.selectedSlot()
	lines = append(lines, m.styles.Accent.Render(
		fmt.Sprintf("  %-18s %+6.1f", slot.String()+" offset", params.Adjustment(slot))))
	lines = append(lines, "", m.axisLine(params))
	return lines
}

// axisLine previews the value axis of the selected field as a color strip.
func (m model) axisLine(params palette.Params) string {
	const steps = 36

	var colors []string
	switch fields[m.fieldIdx] {
	case store.FieldBgHue:
		colors = colorspace.HueGradient(params.BgSat, params.BgLight, steps)
	case store.FieldAccentHue:
		colors = colorspace.HueGradient(params.AccentSat, params.AccentLight, steps)
	case store.FieldBgSat:
		colors = colorspace.SaturationGradient(params.BgHue, params.BgLight, steps)
	case store.FieldAccentSat:
		colors = colorspace.SaturationGradient(params.AccentHue, params.AccentLight, steps)
	case store.FieldBgLight, store.FieldCommentLight:
		colors = colorspace.LightnessGradient(params.BgHue, params.BgSat, steps)
	case store.FieldAccentLight:
		colors = colorspace.LightnessGradient(params.AccentHue, params.AccentSat, steps)
	}

	var b strings.Builder
	b.WriteString(m.styles.Muted.Render("axis    "))
	for _, hex := range colors {
		b.WriteString(styles.Swatch1(hex))
	}
	return b.String()
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
