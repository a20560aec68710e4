// Package session serializes and restores parameter store state as versioned
// snapshots.
package session

import (
	"errors"
	"fmt"
	"math"

	"github.com/opencode-ai/prism/internal/catalog"
	"github.com/opencode-ai/prism/internal/hue"
	"github.com/opencode-ai/prism/internal/store"
)

// SchemaVersion tags every snapshot. Restore only accepts exact matches; any
// other version is discarded rather than migrated.
const SchemaVersion = "prism/v1"

// Snapshot errors.
var (
	// ErrVersionMismatch is returned when a snapshot carries an unknown
	// schema version.
	ErrVersionMismatch = errors.New("snapshot schema version mismatch")
	// ErrSnapshotInvalid is returned when a snapshot fails structural
	// validation.
	ErrSnapshotInvalid = errors.New("snapshot is invalid")
)

// Snapshot is the persisted session layout.
type Snapshot struct {
	ActiveTheme         string                   `json:"activeTheme"`
	ActiveFlavor        string                   `json:"activeFlavor"`
	ThemeCustomizations map[string]ThemeSnapshot `json:"themeCustomizations"`
	Version             string                   `json:"version"`
}

// ThemeSnapshot holds one theme's override layers.
type ThemeSnapshot struct {
	BgHue         *float64                  `json:"bgHue,omitempty"`
	BgSat         *float64                  `json:"bgSat,omitempty"`
	BgLight       *float64                  `json:"bgLight,omitempty"`
	AccentOffsets map[string]OffsetSnapshot `json:"accentOffsets,omitempty"`
	Flavors       map[string]FlavorSnapshot `json:"flavors,omitempty"`
}

// OffsetSnapshot holds a per-slot hue adjustment.
type OffsetSnapshot struct {
	Hue float64 `json:"hue"`
}

// FlavorSnapshot holds one flavor's sparse overrides.
type FlavorSnapshot struct {
	AccentHue    *float64 `json:"accentHue,omitempty"`
	AccentSat    *float64 `json:"accentSat,omitempty"`
	AccentLight  *float64 `json:"accentLight,omitempty"`
	CommentLight *float64 `json:"commentLight,omitempty"`
}

// Capture serializes store state into a snapshot tagged with the current
// schema version.
func Capture(state store.State) Snapshot {
	snap := Snapshot{
		ActiveTheme:         state.ActiveTheme,
		ActiveFlavor:        state.ActiveFlavor,
		ThemeCustomizations: make(map[string]ThemeSnapshot, len(state.Customizations)),
		Version:             SchemaVersion,
	}

	for themeID, cust := range state.Customizations {
		if cust.Empty() {
			continue
		}
		ts := ThemeSnapshot{
			BgHue:   cust.BgHue,
			BgSat:   cust.BgSat,
			BgLight: cust.BgLight,
		}
		if len(cust.Adjustments) > 0 {
			ts.AccentOffsets = make(map[string]OffsetSnapshot, len(cust.Adjustments))
			for slot, offset := range cust.Adjustments {
				ts.AccentOffsets[slot.String()] = OffsetSnapshot{Hue: offset}
			}
		}
		if len(cust.Flavors) > 0 {
			ts.Flavors = make(map[string]FlavorSnapshot, len(cust.Flavors))
			for flavorID, override := range cust.Flavors {
				if override.Empty() {
					continue
				}
				ts.Flavors[flavorID] = FlavorSnapshot{
					AccentHue:    override.AccentHue,
					AccentSat:    override.AccentSat,
					AccentLight:  override.AccentLight,
					CommentLight: override.CommentLight,
				}
			}
		}
		snap.ThemeCustomizations[themeID] = ts
	}

	return snap
}

// Restore validates a snapshot against the catalog and rebuilds store state
// from it. Validation is all-or-nothing: any version mismatch, unknown id or
// out-of-range value rejects the whole snapshot so callers start from
// defaults instead of partially trusting it.
func Restore(snap Snapshot, provider catalog.Provider) (store.State, error) {
	if snap.Version != SchemaVersion {
		return store.State{}, fmt.Errorf("%w: got %q, want %q", ErrVersionMismatch, snap.Version, SchemaVersion)
	}
	if _, err := provider.Theme(snap.ActiveTheme); err != nil {
		return store.State{}, fmt.Errorf("%w: active theme: %v", ErrSnapshotInvalid, err)
	}
	if _, err := provider.Flavor(snap.ActiveTheme, snap.ActiveFlavor); err != nil {
		return store.State{}, fmt.Errorf("%w: active flavor: %v", ErrSnapshotInvalid, err)
	}

	return restoreState(snap, provider)
}

func restoreState(snap Snapshot, provider catalog.Provider) (store.State, error) {
	state := store.State{
		ActiveTheme:    snap.ActiveTheme,
		ActiveFlavor:   snap.ActiveFlavor,
		Customizations: make(map[string]*store.ThemeCustomization, len(snap.ThemeCustomizations)),
	}

	for themeID, ts := range snap.ThemeCustomizations {
		if _, err := provider.Theme(themeID); err != nil {
			return store.State{}, fmt.Errorf("%w: customized theme: %v", ErrSnapshotInvalid, err)
		}

		cust := &store.ThemeCustomization{}
		if err := restoreRange(&cust.BgHue, ts.BgHue, themeID+".bgHue", 0, 360); err != nil {
			return store.State{}, err
		}
		if err := restoreRange(&cust.BgSat, ts.BgSat, themeID+".bgSat", 0, 100); err != nil {
			return store.State{}, err
		}
		if err := restoreRange(&cust.BgLight, ts.BgLight, themeID+".bgLight", 0, 100); err != nil {
			return store.State{}, err
		}

		if len(ts.AccentOffsets) > 0 {
			cust.Adjustments = make(map[hue.Slot]float64, len(ts.AccentOffsets))
			for name, offset := range ts.AccentOffsets {
				slot := hue.ParseSlot(name)
				if slot == "" {
					return store.State{}, fmt.Errorf("%w: %s.accentOffsets.%s: unknown slot", ErrSnapshotInvalid, themeID, name)
				}
				if !inRange(offset.Hue, -180, 180) {
					return store.State{}, fmt.Errorf("%w: %s.accentOffsets.%s: out of range", ErrSnapshotInvalid, themeID, name)
				}
				cust.Adjustments[slot] = offset.Hue
			}
		}

		if len(ts.Flavors) > 0 {
			cust.Flavors = make(map[string]*store.FlavorOverride, len(ts.Flavors))
			for flavorID, fs := range ts.Flavors {
				if _, err := provider.Flavor(themeID, flavorID); err != nil {
					return store.State{}, fmt.Errorf("%w: customized flavor: %v", ErrSnapshotInvalid, err)
				}
				override := &store.FlavorOverride{}
				prefix := themeID + ".flavors." + flavorID
				if err := restoreRange(&override.AccentHue, fs.AccentHue, prefix+".accentHue", 0, 360); err != nil {
					return store.State{}, err
				}
				if err := restoreRange(&override.AccentSat, fs.AccentSat, prefix+".accentSat", 0, 100); err != nil {
					return store.State{}, err
				}
				if err := restoreRange(&override.AccentLight, fs.AccentLight, prefix+".accentLight", 0, 100); err != nil {
					return store.State{}, err
				}
				if err := restoreRange(&override.CommentLight, fs.CommentLight, prefix+".commentLight", 0, 100); err != nil {
					return store.State{}, err
				}
				cust.Flavors[flavorID] = override
			}
		}

		state.Customizations[themeID] = cust
	}

	return state, nil
}

func restoreRange(dst **float64, src *float64, field string, lo, hi float64) error {
	if src == nil {
		return nil
	}
	if !inRange(*src, lo, hi) {
		return fmt.Errorf("%w: %s: out of range", ErrSnapshotInvalid, field)
	}
	value := *src
	*dst = &value
	return nil
}

func inRange(v, lo, hi float64) bool {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return false
	}
	return v >= lo && v <= hi
}
