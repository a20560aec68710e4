package session

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/opencode-ai/prism/internal/catalog"
	"github.com/opencode-ai/prism/internal/hue"
	"github.com/opencode-ai/prism/internal/store"
)

func testProvider(t *testing.T) catalog.Provider {
	t.Helper()

	aurora := &catalog.ThemeDefinition{
		Name:       "aurora",
		Background: catalog.Background{Hue: 200, Saturation: 30, Lightness: 10},
		Flavors: map[string]catalog.FlavorDefinition{
			"balanced": {AccentHue: 0, AccentSat: 95, AccentLight: 60, CommentLight: 55},
		},
		DefaultFlavor: "balanced",
	}
	require.NoError(t, aurora.Validate())
	return catalog.New(aurora)
}

func ptr(v float64) *float64 { return &v }

func customizedState() store.State {
	return store.State{
		ActiveTheme:  "aurora",
		ActiveFlavor: "balanced",
		Customizations: map[string]*store.ThemeCustomization{
			"aurora": {
				BgHue:       ptr(220),
				Adjustments: map[hue.Slot]float64{hue.SlotYellow: 40},
				Flavors: map[string]*store.FlavorOverride{
					"balanced": {AccentSat: ptr(70)},
				},
			},
		},
	}
}

func TestCaptureRestoreRoundTrip(t *testing.T) {
	provider := testProvider(t)
	state := customizedState()

	snap := Capture(state)
	require.Equal(t, SchemaVersion, snap.Version)

	restored, err := Restore(snap, provider)
	require.NoError(t, err)
	require.Equal(t, state.ActiveTheme, restored.ActiveTheme)
	require.Equal(t, state.ActiveFlavor, restored.ActiveFlavor)

	cust := restored.Customizations["aurora"]
	require.NotNil(t, cust)
	require.NotNil(t, cust.BgHue)
	require.Equal(t, 220.0, *cust.BgHue)
	require.Nil(t, cust.BgSat, "sparse fields stay sparse")
	require.Equal(t, 40.0, cust.Adjustments[hue.SlotYellow])

	override := cust.Flavors["balanced"]
	require.NotNil(t, override)
	require.Equal(t, 70.0, *override.AccentSat)
	require.Nil(t, override.AccentHue)
}

func TestCaptureSkipsEmptyLayers(t *testing.T) {
	state := store.State{
		ActiveTheme:  "aurora",
		ActiveFlavor: "balanced",
		Customizations: map[string]*store.ThemeCustomization{
			"aurora": {},
		},
	}

	snap := Capture(state)
	require.Empty(t, snap.ThemeCustomizations, "empty customizations are not serialized")
}

func TestRestoreVersionMismatch(t *testing.T) {
	snap := Capture(customizedState())
	snap.Version = "prism/v2"

	_, err := Restore(snap, testProvider(t))
	require.ErrorIs(t, err, ErrVersionMismatch)
}

func TestRestoreUnknownIDs(t *testing.T) {
	provider := testProvider(t)

	snap := Capture(customizedState())
	snap.ActiveTheme = "ghost"
	_, err := Restore(snap, provider)
	require.ErrorIs(t, err, ErrSnapshotInvalid)

	snap = Capture(customizedState())
	snap.ActiveFlavor = "ghost"
	_, err = Restore(snap, provider)
	require.ErrorIs(t, err, ErrSnapshotInvalid)

	snap = Capture(customizedState())
	snap.ThemeCustomizations["ghost"] = snap.ThemeCustomizations["aurora"]
	_, err = Restore(snap, provider)
	require.ErrorIs(t, err, ErrSnapshotInvalid)
}

func TestRestoreRejectsOutOfRange(t *testing.T) {
	provider := testProvider(t)

	tests := []struct {
		name   string
		mutate func(*Snapshot)
	}{
		{"bgHue above 360", func(s *Snapshot) {
			ts := s.ThemeCustomizations["aurora"]
			ts.BgHue = ptr(361)
			s.ThemeCustomizations["aurora"] = ts
		}},
		{"bgHue NaN", func(s *Snapshot) {
			ts := s.ThemeCustomizations["aurora"]
			ts.BgHue = ptr(math.NaN())
			s.ThemeCustomizations["aurora"] = ts
		}},
		{"offset beyond 180", func(s *Snapshot) {
			ts := s.ThemeCustomizations["aurora"]
			ts.AccentOffsets["yellow"] = OffsetSnapshot{Hue: 181}
			s.ThemeCustomizations["aurora"] = ts
		}},
		{"unknown slot", func(s *Snapshot) {
			ts := s.ThemeCustomizations["aurora"]
			ts.AccentOffsets["mauve"] = OffsetSnapshot{Hue: 10}
			s.ThemeCustomizations["aurora"] = ts
		}},
		{"accentSat above 100", func(s *Snapshot) {
			ts := s.ThemeCustomizations["aurora"]
			ts.Flavors["balanced"] = FlavorSnapshot{AccentSat: ptr(101)}
			s.ThemeCustomizations["aurora"] = ts
		}},
		{"accentLight Inf", func(s *Snapshot) {
			ts := s.ThemeCustomizations["aurora"]
			ts.Flavors["balanced"] = FlavorSnapshot{AccentLight: ptr(math.Inf(1))}
			s.ThemeCustomizations["aurora"] = ts
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			snap := Capture(customizedState())
			tt.mutate(&snap)
			_, err := Restore(snap, provider)
			require.ErrorIs(t, err, ErrSnapshotInvalid, "whole snapshot must be rejected")
		})
	}
}

func TestRestoreIntoStore(t *testing.T) {
	provider := testProvider(t)

	restored, err := Restore(Capture(customizedState()), provider)
	require.NoError(t, err)

	st, err := store.NewFromState(provider, restored)
	require.NoError(t, err)

	params, err := st.EffectiveParams()
	require.NoError(t, err)
	require.Equal(t, 220.0, params.BgHue)
	require.Equal(t, 70.0, params.AccentSat)
	require.Equal(t, 40.0, params.Adjustment(hue.SlotYellow))
}

func TestSaveLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state", "session.json")
	snap := Capture(customizedState())

	require.NoError(t, SaveFile(path, snap))

	loaded, err := LoadFile(path)
	require.NoError(t, err)
	require.Equal(t, snap, loaded)
}

func TestLoadFileErrors(t *testing.T) {
	dir := t.TempDir()

	_, err := LoadFile(filepath.Join(dir, "missing.json"))
	require.Error(t, err)

	path := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

	_, err = LoadFile(path)
	require.ErrorIs(t, err, ErrSnapshotInvalid)
}
