// Package tui implements the Prism terminal theme editor.
package tui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/opencode-ai/prism/internal/catalog"
	"github.com/opencode-ai/prism/internal/hue"
	"github.com/opencode-ai/prism/internal/store"
	"github.com/opencode-ai/prism/internal/tui/styles"
)

// Config carries the editor's collaborators.
type Config struct {
	Store   *store.Store
	Catalog catalog.Provider
	Logger  zerolog.Logger
}

// Run launches the theme editor program.
func Run(cfg Config) error {
	m, err := newModel(cfg)
	if err != nil {
		return err
	}
	program := tea.NewProgram(m, tea.WithAltScreen())
	_, err = program.Run()
	return err
}

const (
	minWidth  = 64
	minHeight = 18

	hueStep     = 5.0
	percentStep = 2.0
	offsetStep  = 5.0
)

// fields lists the adjustable parameters in display order.
var fields = []store.Field{
	store.FieldBgHue,
	store.FieldBgSat,
	store.FieldBgLight,
	store.FieldAccentHue,
	store.FieldAccentSat,
	store.FieldAccentLight,
	store.FieldCommentLight,
}

type model struct {
	cfg    Config
	store  *store.Store
	styles styles.Styles

	width  int
	height int

	fieldIdx int
	slotIdx  int
	status   string
}

func newModel(cfg Config) (model, error) {
	m := model{cfg: cfg, store: cfg.Store}
	pal, err := cfg.Store.CurrentPalette()
	if err != nil {
		return model{}, err
	}
	m.styles = styles.FromPalette(pal)
	return m, nil
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	}
	return m, nil
}

func (m model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit

	case "up", "k":
		if m.fieldIdx > 0 {
			m.fieldIdx--
		}
	case "down", "j":
		if m.fieldIdx < len(fields)-1 {
			m.fieldIdx++
		}
	case "left":
		return m.adjustField(-1), nil
	case "right":
		return m.adjustField(1), nil

	case "h":
		m.slotIdx = (m.slotIdx + len(hue.AllSlots()) - 1) % len(hue.AllSlots())
	case "l":
		m.slotIdx = (m.slotIdx + 1) % len(hue.AllSlots())
	case "[":
		return m.adjustSlot(-offsetStep), nil
	case "]":
		return m.adjustSlot(offsetStep), nil
	case "x":
		m = m.apply(m.store.ResetColorAdjustment(m.selectedSlot()))

	case "t":
		m = m.cycleTheme(1)
	case "T":
		m = m.cycleTheme(-1)
	case "f":
		m = m.cycleFlavor(1)
	case "F":
		m = m.cycleFlavor(-1)

	case "r":
		m = m.apply(m.store.ResetFlavor())
	case "R":
		m = m.apply(m.store.ResetTheme())
	}
	return m, nil
}

func (m model) selectedSlot() hue.Slot {
	return hue.AllSlots()[m.slotIdx]
}

func (m model) adjustField(direction float64) model {
	field := fields[m.fieldIdx]
	params, err := m.store.EffectiveParams()
	if err != nil {
		return m.apply(err)
	}

	step := percentStep
	switch field {
	case store.FieldBgHue, store.FieldAccentHue:
		step = hueStep
	}

	var current float64
	switch field {
	case store.FieldBgHue:
		current = params.BgHue
	case store.FieldBgSat:
		current = params.BgSat
	case store.FieldBgLight:
		current = params.BgLight
	case store.FieldAccentHue:
		current = params.AccentHue
	case store.FieldAccentSat:
		current = params.AccentSat
	case store.FieldAccentLight:
		current = params.AccentLight
	case store.FieldCommentLight:
		current = params.CommentLight
	}

	return m.apply(m.store.UpdateParam(field, current+direction*step))
}

func (m model) adjustSlot(delta float64) model {
	slot := m.selectedSlot()
	params, err := m.store.EffectiveParams()
	if err != nil {
		return m.apply(err)
	}
	return m.apply(m.store.UpdateColorAdjustment(slot, params.Adjustment(slot)+delta))
}

func (m model) cycleTheme(direction int) model {
	themes := m.cfg.Catalog.Themes()
	if len(themes) == 0 {
		return m
	}
	idx := indexOf(themes, m.store.ActiveTheme())
	next := themes[(idx+direction+len(themes))%len(themes)]
	return m.apply(m.store.SwitchTheme(next))
}

func (m model) cycleFlavor(direction int) model {
	flavors := m.cfg.Catalog.Flavors(m.store.ActiveTheme())
	if len(flavors) == 0 {
		return m
	}
	idx := indexOf(flavors, m.store.ActiveFlavor())
	next := flavors[(idx+direction+len(flavors))%len(flavors)]
	return m.apply(m.store.SwitchFlavor(next))
}

// apply refreshes the derived styles after a store operation, or records the
// failure in the status line. The palette itself is never cached: every frame
// reads through the store.
func (m model) apply(err error) model {
	if err != nil {
		m.cfg.Logger.Warn().Err(err).Msg("store operation failed")
		m.status = err.Error()
		return m
	}
	m.status = ""
	pal, err := m.store.CurrentPalette()
	if err != nil {
		m.cfg.Logger.Warn().Err(err).Msg("palette rebuild failed")
		m.status = err.Error()
		return m
	}
	m.styles = styles.FromPalette(pal)
	return m
}

func indexOf(items []string, item string) int {
	for i, candidate := range items {
		if candidate == item {
			return i
		}
	}
	return 0
}
