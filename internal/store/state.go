package store

import "github.com/opencode-ai/prism/internal/hue"

// FlavorOverride is a sparse overlay on a FlavorDefinition. Nil fields fall
// through to the definition.
type FlavorOverride struct {
	AccentHue    *float64
	AccentSat    *float64
	AccentLight  *float64
	CommentLight *float64
}

// Empty reports whether the override carries no values.
func (o *FlavorOverride) Empty() bool {
	return o == nil || (o.AccentHue == nil && o.AccentSat == nil && o.AccentLight == nil && o.CommentLight == nil)
}

func (o *FlavorOverride) clone() *FlavorOverride {
	if o == nil {
		return nil
	}
	return &FlavorOverride{
		AccentHue:    cloneValue(o.AccentHue),
		AccentSat:    cloneValue(o.AccentSat),
		AccentLight:  cloneValue(o.AccentLight),
		CommentLight: cloneValue(o.CommentLight),
	}
}

// ThemeCustomization holds everything a user has overridden for one theme:
// background fields and per-slot hue adjustments at the theme level, plus one
// sparse flavor overlay per flavor id.
type ThemeCustomization struct {
	BgHue       *float64
	BgSat       *float64
	BgLight     *float64
	Adjustments map[hue.Slot]float64
	Flavors     map[string]*FlavorOverride
}

// Empty reports whether the customization carries no values in any layer.
func (c *ThemeCustomization) Empty() bool {
	if c == nil {
		return true
	}
	if c.BgHue != nil || c.BgSat != nil || c.BgLight != nil || len(c.Adjustments) > 0 {
		return false
	}
	for _, flavor := range c.Flavors {
		if !flavor.Empty() {
			return false
		}
	}
	return true
}

func (c *ThemeCustomization) clone() *ThemeCustomization {
	if c == nil {
		return nil
	}
	out := &ThemeCustomization{
		BgHue:   cloneValue(c.BgHue),
		BgSat:   cloneValue(c.BgSat),
		BgLight: cloneValue(c.BgLight),
	}
	if len(c.Adjustments) > 0 {
		out.Adjustments = make(map[hue.Slot]float64, len(c.Adjustments))
		for slot, offset := range c.Adjustments {
			out.Adjustments[slot] = offset
		}
	}
	if len(c.Flavors) > 0 {
		out.Flavors = make(map[string]*FlavorOverride, len(c.Flavors))
		for id, flavor := range c.Flavors {
			out.Flavors[id] = flavor.clone()
		}
	}
	return out
}

// State is the complete serializable store state: the active selection plus
// every theme's customization layers. Effective parameters are always derived
// from it freshly, never cached alongside it.
type State struct {
	ActiveTheme    string
	ActiveFlavor   string
	Customizations map[string]*ThemeCustomization
}

// Clone returns a deep copy of the state.
func (s State) Clone() State {
	out := State{
		ActiveTheme:  s.ActiveTheme,
		ActiveFlavor: s.ActiveFlavor,
	}
	if len(s.Customizations) > 0 {
		out.Customizations = make(map[string]*ThemeCustomization, len(s.Customizations))
		for id, cust := range s.Customizations {
			out.Customizations[id] = cust.clone()
		}
	}
	return out
}

func cloneValue(v *float64) *float64 {
	if v == nil {
		return nil
	}
	value := *v
	return &value
}

func ptr(v float64) *float64 {
	return &v
}
