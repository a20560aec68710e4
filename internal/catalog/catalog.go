// Package catalog provides theme and flavor definition loading for palette generation.
package catalog

import (
	"errors"
	"fmt"
	"sort"

	"github.com/opencode-ai/prism/internal/hue"
)

var (
	// ErrThemeNameRequired is returned when a theme definition has no name.
	ErrThemeNameRequired = errors.New("theme name is required")
	// ErrThemeNotFound is returned when a theme id is not in the catalog.
	ErrThemeNotFound = errors.New("theme not found")
	// ErrFlavorNotFound is returned when a flavor id is not defined for a theme.
	ErrFlavorNotFound = errors.New("flavor not found")
)

// ThemeValidationError describes a validation error in a theme definition.
type ThemeValidationError struct {
	Field   string
	Message string
}

func (e *ThemeValidationError) Error() string {
	return fmt.Sprintf("theme %s: %s", e.Field, e.Message)
}

// Background holds a theme's background defaults.
type Background struct {
	Hue        float64 `yaml:"hue"`
	Saturation float64 `yaml:"saturation"`
	Lightness  float64 `yaml:"lightness"`
}

// FlavorDefinition is a named intensity preset controlling accent rendering.
type FlavorDefinition struct {
	// AccentHue is the anchor adjustment, not an absolute hue.
	AccentHue    float64 `yaml:"accent_hue"`
	AccentSat    float64 `yaml:"accent_saturation"`
	AccentLight  float64 `yaml:"accent_lightness"`
	CommentLight float64 `yaml:"comment_lightness"`
}

// ThemeDefinition is a base theme identity: background defaults plus per-slot
// angular offsets away from the standard accent positions. Definitions are
// immutable once loaded.
type ThemeDefinition struct {
	Name          string                      `yaml:"name"`
	Description   string                      `yaml:"description"`
	Background    Background                  `yaml:"background"`
	Offsets       map[string]float64          `yaml:"offsets,omitempty"`
	DefaultFlavor string                      `yaml:"default_flavor,omitempty"`
	Flavors       map[string]FlavorDefinition `yaml:"flavors,omitempty"`
	Source        string                      // file path or "builtin"
}

// DefaultFlavorID is the flavor selected when a theme does not name one.
const DefaultFlavorID = "balanced"

// defaultFlavors are the theme-independent presets a theme falls back to for
// flavor ids it does not define itself.
var defaultFlavors = map[string]FlavorDefinition{
	"muted":    {AccentHue: 0, AccentSat: 55, AccentLight: 55, CommentLight: 50},
	"balanced": {AccentHue: 0, AccentSat: 95, AccentLight: 60, CommentLight: 55},
	"bold":     {AccentHue: 0, AccentSat: 100, AccentLight: 65, CommentLight: 60},
}

// OffsetSet converts the theme's offset map into a hue.OffsetSet. Slots the
// theme does not mention contribute zero.
func (t *ThemeDefinition) OffsetSet() hue.OffsetSet {
	set := make(hue.OffsetSet, len(t.Offsets))
	for name, offset := range t.Offsets {
		if slot := hue.ParseSlot(name); slot != "" {
			set[slot] = offset
		}
	}
	return set
}

// Validate checks that the theme definition has valid configuration.
func (t *ThemeDefinition) Validate() error {
	if t.Name == "" {
		return ErrThemeNameRequired
	}
	if t.Background.Hue < 0 || t.Background.Hue >= 360 {
		return &ThemeValidationError{Field: "background.hue", Message: "must be in [0, 360)"}
	}
	if err := percentField("background.saturation", t.Background.Saturation); err != nil {
		return err
	}
	if err := percentField("background.lightness", t.Background.Lightness); err != nil {
		return err
	}
	for name, offset := range t.Offsets {
		if hue.ParseSlot(name) == "" {
			return &ThemeValidationError{Field: "offsets." + name, Message: "unknown accent slot"}
		}
		if offset < -180 || offset > 180 {
			return &ThemeValidationError{Field: "offsets." + name, Message: "must be in [-180, 180]"}
		}
	}
	for id, flavor := range t.Flavors {
		if id == "" {
			return &ThemeValidationError{Field: "flavors", Message: "flavor id must not be empty"}
		}
		prefix := "flavors." + id
		if flavor.AccentHue < 0 || flavor.AccentHue >= 360 {
			return &ThemeValidationError{Field: prefix + ".accent_hue", Message: "must be in [0, 360)"}
		}
		if err := percentField(prefix+".accent_saturation", flavor.AccentSat); err != nil {
			return err
		}
		if err := percentField(prefix+".accent_lightness", flavor.AccentLight); err != nil {
			return err
		}
		if err := percentField(prefix+".comment_lightness", flavor.CommentLight); err != nil {
			return err
		}
	}
	if t.DefaultFlavor != "" {
		if _, ok := t.Flavors[t.DefaultFlavor]; !ok {
			if _, ok := defaultFlavors[t.DefaultFlavor]; !ok {
				return &ThemeValidationError{Field: "default_flavor", Message: "names an unknown flavor"}
			}
		}
	}
	return nil
}

func percentField(field string, v float64) error {
	if v < 0 || v > 100 {
		return &ThemeValidationError{Field: field, Message: "must be in [0, 100]"}
	}
	return nil
}

// Provider gives the engine read access to theme and flavor definitions by id.
// Lookups fail closed: an unknown id is an explicit error, never a guess.
type Provider interface {
	Theme(id string) (*ThemeDefinition, error)
	Flavor(themeID, flavorID string) (*FlavorDefinition, error)
	Themes() []string
	Flavors(themeID string) []string
	DefaultFlavor(themeID string) string
}

// Catalog is the standard Provider over a set of loaded theme definitions.
type Catalog struct {
	themes map[string]*ThemeDefinition
}

// New creates a catalog from theme definitions. Later definitions with the
// same name replace earlier ones, which lets user themes shadow builtins.
func New(themes ...*ThemeDefinition) *Catalog {
	c := &Catalog{themes: make(map[string]*ThemeDefinition, len(themes))}
	for _, theme := range themes {
		c.themes[theme.Name] = theme
	}
	return c
}

// Theme returns the definition for a theme id.
func (c *Catalog) Theme(id string) (*ThemeDefinition, error) {
	theme, ok := c.themes[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrThemeNotFound, id)
	}
	return theme, nil
}

// Flavor returns the flavor definition for a (theme, flavor) pair. A theme's
// own definition wins; otherwise the theme-independent default for that id is
// used.
func (c *Catalog) Flavor(themeID, flavorID string) (*FlavorDefinition, error) {
	theme, err := c.Theme(themeID)
	if err != nil {
		return nil, err
	}
	if flavor, ok := theme.Flavors[flavorID]; ok {
		return &flavor, nil
	}
	if flavor, ok := defaultFlavors[flavorID]; ok {
		return &flavor, nil
	}
	return nil, fmt.Errorf("%w: %s/%s", ErrFlavorNotFound, themeID, flavorID)
}

// Themes returns the known theme ids, sorted.
func (c *Catalog) Themes() []string {
	ids := make([]string, 0, len(c.themes))
	for id := range c.themes {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Flavors returns the flavor ids available for a theme: its own plus the
// theme-independent defaults, sorted. Unknown themes return nil.
func (c *Catalog) Flavors(themeID string) []string {
	theme, err := c.Theme(themeID)
	if err != nil {
		return nil
	}
	seen := make(map[string]struct{}, len(theme.Flavors)+len(defaultFlavors))
	for id := range theme.Flavors {
		seen[id] = struct{}{}
	}
	for id := range defaultFlavors {
		seen[id] = struct{}{}
	}
	ids := make([]string, 0, len(seen))
	for id := range seen {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// DefaultFlavor returns the canonical flavor id for a theme.
func (c *Catalog) DefaultFlavor(themeID string) string {
	if theme, err := c.Theme(themeID); err == nil && theme.DefaultFlavor != "" {
		return theme.DefaultFlavor
	}
	return DefaultFlavorID
}
