// Package palette builds complete Base24 color palettes from resolved theme
// parameters.
package palette

import (
	"math"

	"github.com/opencode-ai/prism/internal/colorspace"
	"github.com/opencode-ai/prism/internal/hue"
)

// Keys lists the Base24 slot names in canonical order: 8 UI colors, 8 accent
// colors, 8 muted accent variants.
var Keys = []string{
	"base00", "base01", "base02", "base03", "base04", "base05", "base06", "base07",
	"base08", "base09", "base0A", "base0B", "base0C", "base0D", "base0E", "base0F",
	"base10", "base11", "base12", "base13", "base14", "base15", "base16", "base17",
}

// accentKeys and mutedKeys pair Base24 slots with accent roles in order.
var (
	accentKeys = []string{"base08", "base09", "base0A", "base0B", "base0C", "base0D", "base0E", "base0F"}
	mutedKeys  = []string{"base10", "base11", "base12", "base13", "base14", "base15", "base16", "base17"}
)

// Params is the fully resolved parameter vector a palette is built from.
type Params struct {
	// BgHue, BgSat and BgLight control the background family.
	BgHue   float64
	BgSat   float64
	BgLight float64

	// AccentHue is the anchor adjustment all accent slots rotate around.
	// It is an offset applied on top of each slot's standard position,
	// not an absolute hue.
	AccentHue    float64
	AccentSat    float64
	AccentLight  float64
	CommentLight float64

	// Adjustments holds sparse per-slot user hue offsets in [-180, 180].
	Adjustments map[hue.Slot]float64
}

// Adjustment returns the user hue offset for a slot, or 0 when unset.
func (p Params) Adjustment(slot hue.Slot) float64 {
	if p.Adjustments == nil {
		return 0
	}
	return p.Adjustments[slot]
}

// IsLight reports whether the parameters describe a light theme.
func (p Params) IsLight() bool {
	return p.BgLight > 50
}

// Palette maps Base24 slot names to #rrggbb hex strings. Build always returns
// all 24 entries; a Palette is never partially populated.
type Palette map[string]string

// Hex returns the color for a Base24 slot name, or empty string if unknown.
func (p Palette) Hex(key string) string {
	return p[key]
}

// AccentKey returns the Base24 slot name carrying an accent role.
func AccentKey(slot hue.Slot) string {
	for i, s := range hue.AllSlots() {
		if s == slot {
			return accentKeys[i]
		}
	}
	return ""
}

// MutedKey returns the Base24 slot name carrying the muted variant of an
// accent role.
func MutedKey(slot hue.Slot) string {
	for i, s := range hue.AllSlots() {
		if s == slot {
			return mutedKeys[i]
		}
	}
	return ""
}

// Build produces the full Base24 palette for the given parameters and theme
// offset set. The whole palette is derived in one pass from the inputs, so
// identical inputs always produce identical output and no partial palette is
// ever observable.
func Build(params Params, offsets hue.OffsetSet) Palette {
	p := make(Palette, len(Keys))
	light := params.IsLight()

	bgStep := func(satFactor, lightStep float64) string {
		step := lightStep
		if light {
			step = -lightStep
		}
		return colorspace.ToRGBHex(
			params.BgHue,
			math.Min(100, params.BgSat*satFactor),
			clamp(params.BgLight+step, 0, 100),
		)
	}

	p["base00"] = colorspace.ToRGBHex(params.BgHue, params.BgSat, params.BgLight)
	p["base01"] = bgStep(1.2, 4)
	p["base02"] = bgStep(1.5, 8)

	commentHue := params.BgHue
	if light {
		commentHue += 180
	}
	p["base03"] = colorspace.ToRGBHex(commentHue, 15, params.CommentLight)

	// Foregrounds invert against the background polarity; base04 sits 15
	// lightness points back toward the background from base05.
	fgLight, fg2Light := 95.0, 80.0
	if light {
		fgLight, fg2Light = 5, 20
	}
	p["base04"] = colorspace.ToRGBHex(params.BgHue, 15, fg2Light)
	p["base05"] = colorspace.ToRGBHex(params.BgHue, 15, fgLight)

	contrastLight := 80.0
	if light {
		contrastLight = 20
	}
	p["base06"] = colorspace.ToRGBHex(params.BgHue+60, 15, contrastLight)
	p["base07"] = colorspace.ToRGBHex(params.BgHue-60, 15, contrastLight)

	mutedSat := math.Max(25, params.AccentSat*0.7)
	mutedLight := MutedLightness(params.AccentLight)
	for i, slot := range hue.AllSlots() {
		resolved := hue.ResolveHue(params.AccentHue, slot, offsets, params.Adjustment(slot))
		p[accentKeys[i]] = colorspace.PerceptuallyCorrect(resolved, params.AccentSat, params.AccentLight)
		p[mutedKeys[i]] = colorspace.PerceptuallyCorrect(resolved, mutedSat, mutedLight)
	}

	return p
}

// MutedLightness lifts an accent lightness toward a ceiling of 85 with a
// quadratic ease: dark accents gain up to 18 points, already-light accents as
// little as 8.
func MutedLightness(l float64) float64 {
	l = clamp(l, 0, 100)
	ratio := l / 100
	lift := 18 - 10*ratio*ratio
	return math.Min(85, l+lift)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
