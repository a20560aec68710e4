package tui

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/opencode-ai/prism/internal/catalog"
	"github.com/opencode-ai/prism/internal/store"
)

func testModel(t *testing.T) (model, *bytes.Buffer) {
	t.Helper()

	theme := &catalog.ThemeDefinition{
		Name:       "aurora",
		Background: catalog.Background{Hue: 200, Saturation: 30, Lightness: 10},
		Flavors: map[string]catalog.FlavorDefinition{
			"balanced": {AccentHue: 0, AccentSat: 95, AccentLight: 60, CommentLight: 55},
		},
		DefaultFlavor: "balanced",
	}
	require.NoError(t, theme.Validate())
	cat := catalog.New(theme)

	st, err := store.New(cat)
	require.NoError(t, err)

	var log bytes.Buffer
	m, err := newModel(Config{
		Store:   st,
		Catalog: cat,
		Logger:  zerolog.New(&log),
	})
	require.NoError(t, err)
	return m, &log
}

func TestAdjustFieldUpdatesStore(t *testing.T) {
	m, _ := testModel(t)

	next, _ := m.handleKey(tea.KeyMsg{Type: tea.KeyRight})
	m = next.(model)

	params, err := m.store.EffectiveParams()
	require.NoError(t, err)
	require.Equal(t, 205.0, params.BgHue, "right arrow steps the selected hue field")
	require.Empty(t, m.status)
}

func TestApplyLogsFailures(t *testing.T) {
	m, log := testModel(t)

	m = m.apply(errors.New("boom"))

	require.Equal(t, "boom", m.status)
	require.Contains(t, log.String(), "boom", "failures go to the logger as well as the status line")
	require.Contains(t, log.String(), "store operation failed")
}

func TestApplyClearsStatus(t *testing.T) {
	m, _ := testModel(t)
	m.status = "stale"

	m = m.apply(nil)
	require.Empty(t, m.status)
}

func TestViewRendersWithoutSize(t *testing.T) {
	m, _ := testModel(t)

	view := m.View()
	require.Contains(t, view, "aurora")
	require.Contains(t, view, "balanced")
}

func TestViewTooSmall(t *testing.T) {
	m, _ := testModel(t)
	m.width, m.height = 20, 5

	require.True(t, strings.Contains(m.View(), "Terminal too small"))
}
