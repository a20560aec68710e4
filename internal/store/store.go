// Package store implements the layered parameter state machine: theme and
// flavor defaults underneath sparse user overrides, with switch, update and
// reset transitions.
package store

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/opencode-ai/prism/internal/catalog"
	"github.com/opencode-ai/prism/internal/hue"
	"github.com/opencode-ai/prism/internal/palette"
)

// Store errors.
var (
	ErrNoThemes     = errors.New("catalog has no themes")
	ErrUnknownField = errors.New("unknown parameter field")
	ErrUnknownSlot  = errors.New("unknown accent slot")
)

// Field identifies one tunable parameter for UpdateParam. Background fields
// write into the theme layer; accent and comment fields write into the flavor
// layer for the active (theme, flavor) pair.
type Field int

// Tunable parameter fields.
const (
	FieldBgHue Field = iota
	FieldBgSat
	FieldBgLight
	FieldAccentHue
	FieldAccentSat
	FieldAccentLight
	FieldCommentLight
)

// String returns the field name.
func (f Field) String() string {
	switch f {
	case FieldBgHue:
		return "bg-hue"
	case FieldBgSat:
		return "bg-saturation"
	case FieldBgLight:
		return "bg-lightness"
	case FieldAccentHue:
		return "accent-hue"
	case FieldAccentSat:
		return "accent-saturation"
	case FieldAccentLight:
		return "accent-lightness"
	case FieldCommentLight:
		return "comment-lightness"
	default:
		return fmt.Sprintf("field(%d)", int(f))
	}
}

// Persister receives the state after every mutation. Persistence is
// best-effort: a failing persister is logged and never blocks the mutation
// that triggered it.
type Persister interface {
	Persist(state State) error
}

// Store resolves effective parameters from catalog defaults and user override
// layers. It is driven by single-threaded user interaction and performs no
// internal locking.
type Store struct {
	catalog   catalog.Provider
	logger    zerolog.Logger
	persister Persister
	state     State
}

// Option configures a Store.
type Option func(*Store)

// WithPersister sets the persistence hook run after every mutation.
func WithPersister(p Persister) Option {
	return func(s *Store) {
		s.persister = p
	}
}

// WithLogger sets the store logger.
func WithLogger(logger zerolog.Logger) Option {
	return func(s *Store) {
		s.logger = logger
	}
}

// New creates a store positioned on the catalog's first theme and that
// theme's default flavor, with no customizations.
func New(provider catalog.Provider, opts ...Option) (*Store, error) {
	themes := provider.Themes()
	if len(themes) == 0 {
		return nil, ErrNoThemes
	}
	state := State{
		ActiveTheme:    themes[0],
		ActiveFlavor:   provider.DefaultFlavor(themes[0]),
		Customizations: make(map[string]*ThemeCustomization),
	}
	return NewFromState(provider, state, opts...)
}

// NewFromState creates a store from existing state, for example a restored
// session snapshot. The active theme and flavor must resolve against the
// catalog.
func NewFromState(provider catalog.Provider, state State, opts ...Option) (*Store, error) {
	if _, err := provider.Theme(state.ActiveTheme); err != nil {
		return nil, err
	}
	if _, err := provider.Flavor(state.ActiveTheme, state.ActiveFlavor); err != nil {
		return nil, err
	}

	s := &Store{
		catalog: provider,
		logger:  zerolog.Nop(),
		state:   state.Clone(),
	}
	if s.state.Customizations == nil {
		s.state.Customizations = make(map[string]*ThemeCustomization)
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// ActiveTheme returns the active theme id.
func (s *Store) ActiveTheme() string {
	return s.state.ActiveTheme
}

// ActiveFlavor returns the active flavor id.
func (s *Store) ActiveFlavor() string {
	return s.state.ActiveFlavor
}

// State returns a deep copy of the current state.
func (s *Store) State() State {
	return s.state.Clone()
}

// Customized reports whether any override layer is populated for the active
// theme.
func (s *Store) Customized() bool {
	return !s.state.Customizations[s.state.ActiveTheme].Empty()
}

// SwitchTheme changes the active theme. Customization layers for every theme
// are kept as-is; only the selection moves. If the active flavor does not
// resolve under the new theme, the theme's default flavor is selected.
func (s *Store) SwitchTheme(id string) error {
	if _, err := s.catalog.Theme(id); err != nil {
		return err
	}
	s.state.ActiveTheme = id
	if _, err := s.catalog.Flavor(id, s.state.ActiveFlavor); err != nil {
		s.state.ActiveFlavor = s.catalog.DefaultFlavor(id)
	}
	s.persist()
	return nil
}

// SwitchFlavor changes the active flavor. Theme-level overrides carry over;
// flavor-level values re-resolve from the new flavor's own override layer or
// its definition.
func (s *Store) SwitchFlavor(id string) error {
	if _, err := s.catalog.Flavor(s.state.ActiveTheme, id); err != nil {
		return err
	}
	s.state.ActiveFlavor = id
	s.persist()
	return nil
}

// UpdateParam writes one parameter value into its override layer. Hue fields
// are normalized into [0, 360) and the remaining fields are clamped to
// [0, 100]. Updating the accent anchor first rotates all per-slot adjustments
// so their absolute rendered hues move rigidly with the anchor.
func (s *Store) UpdateParam(field Field, value float64) error {
	params, err := s.EffectiveParams()
	if err != nil {
		return err
	}

	cust := s.customization(s.state.ActiveTheme)
	switch field {
	case FieldBgHue:
		cust.BgHue = ptr(hue.Normalize(value))
	case FieldBgSat:
		cust.BgSat = ptr(clampPercent(value))
	case FieldBgLight:
		cust.BgLight = ptr(clampPercent(value))
	case FieldAccentHue:
		newAnchor := hue.Normalize(value)
		cust.Adjustments = hue.RotateAdjustments(params.AccentHue, newAnchor, cust.Adjustments)
		s.flavorOverride(cust).AccentHue = ptr(newAnchor)
	case FieldAccentSat:
		s.flavorOverride(cust).AccentSat = ptr(clampPercent(value))
	case FieldAccentLight:
		s.flavorOverride(cust).AccentLight = ptr(clampPercent(value))
	case FieldCommentLight:
		s.flavorOverride(cust).CommentLight = ptr(clampPercent(value))
	default:
		return fmt.Errorf("%w: %d", ErrUnknownField, int(field))
	}

	s.persist()
	return nil
}

// UpdateColorAdjustment sets a per-slot hue offset, clamped to [-180, 180].
func (s *Store) UpdateColorAdjustment(slot hue.Slot, offset float64) error {
	if hue.ParseSlot(slot.String()) == "" {
		return fmt.Errorf("%w: %s", ErrUnknownSlot, slot)
	}
	cust := s.customization(s.state.ActiveTheme)
	if cust.Adjustments == nil {
		cust.Adjustments = make(map[hue.Slot]float64)
	}
	cust.Adjustments[slot] = hue.ClampOffset(offset)
	s.persist()
	return nil
}

// ResetColorAdjustment removes a slot's hue offset. Resetting a slot with no
// adjustment is a no-op and does not touch persistence.
func (s *Store) ResetColorAdjustment(slot hue.Slot) error {
	cust, ok := s.state.Customizations[s.state.ActiveTheme]
	if !ok || cust.Adjustments == nil {
		return nil
	}
	if _, ok := cust.Adjustments[slot]; !ok {
		return nil
	}
	delete(cust.Adjustments, slot)
	s.persist()
	return nil
}

// ResetFlavor clears the flavor-level override layer for the active
// (theme, flavor) pair along with the per-slot hue adjustments, so effective
// accent parameters fall back to the flavor definition.
func (s *Store) ResetFlavor() error {
	cust, ok := s.state.Customizations[s.state.ActiveTheme]
	if ok {
		delete(cust.Flavors, s.state.ActiveFlavor)
		cust.Adjustments = nil
	}
	s.persist()
	return nil
}

// ResetTheme clears every override layer for the active theme and returns the
// flavor selection to the theme's canonical default.
func (s *Store) ResetTheme() error {
	delete(s.state.Customizations, s.state.ActiveTheme)
	s.state.ActiveFlavor = s.catalog.DefaultFlavor(s.state.ActiveTheme)
	s.persist()
	return nil
}

// EffectiveParams resolves the current parameter vector: catalog defaults
// with overrides applied where present. It is evaluated freshly on every call
// so it can never desynchronize from the layers.
func (s *Store) EffectiveParams() (palette.Params, error) {
	theme, err := s.catalog.Theme(s.state.ActiveTheme)
	if err != nil {
		return palette.Params{}, err
	}
	flavor, err := s.catalog.Flavor(s.state.ActiveTheme, s.state.ActiveFlavor)
	if err != nil {
		return palette.Params{}, err
	}

	params := palette.Params{
		BgHue:        theme.Background.Hue,
		BgSat:        theme.Background.Saturation,
		BgLight:      theme.Background.Lightness,
		AccentHue:    flavor.AccentHue,
		AccentSat:    flavor.AccentSat,
		AccentLight:  flavor.AccentLight,
		CommentLight: flavor.CommentLight,
		Adjustments:  map[hue.Slot]float64{},
	}

	cust, ok := s.state.Customizations[s.state.ActiveTheme]
	if !ok {
		return params, nil
	}

	if cust.BgHue != nil {
		params.BgHue = *cust.BgHue
	}
	if cust.BgSat != nil {
		params.BgSat = *cust.BgSat
	}
	if cust.BgLight != nil {
		params.BgLight = *cust.BgLight
	}
	for slot, offset := range cust.Adjustments {
		params.Adjustments[slot] = offset
	}

	if override, ok := cust.Flavors[s.state.ActiveFlavor]; ok {
		if override.AccentHue != nil {
			params.AccentHue = *override.AccentHue
		}
		if override.AccentSat != nil {
			params.AccentSat = *override.AccentSat
		}
		if override.AccentLight != nil {
			params.AccentLight = *override.AccentLight
		}
		if override.CommentLight != nil {
			params.CommentLight = *override.CommentLight
		}
	}

	return params, nil
}

// CurrentPalette builds the full Base24 palette for the effective parameters.
func (s *Store) CurrentPalette() (palette.Palette, error) {
	params, err := s.EffectiveParams()
	if err != nil {
		return nil, err
	}
	theme, err := s.catalog.Theme(s.state.ActiveTheme)
	if err != nil {
		return nil, err
	}
	return palette.Build(params, theme.OffsetSet()), nil
}

func (s *Store) customization(themeID string) *ThemeCustomization {
	cust, ok := s.state.Customizations[themeID]
	if !ok {
		cust = &ThemeCustomization{}
		s.state.Customizations[themeID] = cust
	}
	return cust
}

func (s *Store) flavorOverride(cust *ThemeCustomization) *FlavorOverride {
	if cust.Flavors == nil {
		cust.Flavors = make(map[string]*FlavorOverride)
	}
	override, ok := cust.Flavors[s.state.ActiveFlavor]
	if !ok {
		override = &FlavorOverride{}
		cust.Flavors[s.state.ActiveFlavor] = override
	}
	return override
}

func (s *Store) persist() {
	if s.persister == nil {
		return
	}
	if err := s.persister.Persist(s.state.Clone()); err != nil {
		s.logger.Warn().Err(err).Msg("session persist failed")
	}
}

func clampPercent(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
