// Package colorspace converts HSL parameter triples into RGB hex colors,
// including a best-effort perceptual brightness correction pass.
package colorspace

import (
	"math"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/opencode-ai/prism/internal/hue"
)

// Correction thresholds, tuned against rendered palettes. Colors below the
// chroma threshold are too muted for the brightness bands to matter.
const chromaThreshold = 35.0

// brightnessBands lists LCh hue ranges that render apparently too bright at
// equal HSL lightness, with the lightness factor applied to each.
var brightnessBands = []struct {
	from, to float64
	factor   float64
}{
	{70, 130, 0.90},  // yellow-green
	{130, 180, 0.93}, // green
	{180, 220, 0.96}, // cyan
}

// ToRGBHex converts an HSL triple to a lowercase #rrggbb string. The hue is
// normalized mod 360 and saturation/lightness are clamped to [0, 100], so the
// conversion is total.
func ToRGBHex(h, s, l float64) string {
	return hsl(h, s, l).Clamped().Hex()
}

// PerceptuallyCorrect converts an HSL triple to hex, dimming hues that the eye
// reads as brighter than their nominal lightness. The naive conversion is
// measured in LCh; when its chroma exceeds the threshold and its hue falls in
// a known over-bright band, the target lightness is scaled down before
// converting. Any degenerate measurement falls back to the naive conversion,
// so this never fails.
func PerceptuallyCorrect(h, s, l float64) string {
	naive := hsl(h, s, l).Clamped()
	naiveHex := naive.Hex()

	lchHue, chroma, lchLight := naive.Hcl()
	if !isFinite(lchHue) || !isFinite(chroma) || !isFinite(lchLight) {
		return naiveHex
	}
	if chroma*100 <= chromaThreshold {
		return naiveHex
	}

	factor, ok := bandFactor(hue.Normalize(lchHue))
	if !ok {
		return naiveHex
	}

	corrected := hsl(h, s, clampPercent(l)*factor).Clamped()
	hex := corrected.Hex()
	if degenerate(hex) && !degenerate(naiveHex) {
		return naiveHex
	}
	return hex
}

// HueGradient returns steps evenly spaced hex colors sweeping the hue circle
// at fixed saturation and lightness.
func HueGradient(s, l float64, steps int) []string {
	if steps <= 0 {
		return nil
	}
	out := make([]string, steps)
	for i := range out {
		out[i] = ToRGBHex(float64(i)*360/float64(steps), s, l)
	}
	return out
}

// SaturationGradient returns steps evenly spaced hex colors from saturation 0
// to 100 at fixed hue and lightness.
func SaturationGradient(h, l float64, steps int) []string {
	return axisGradient(steps, func(t float64) string {
		return ToRGBHex(h, t*100, l)
	})
}

// LightnessGradient returns steps evenly spaced hex colors from lightness 0
// to 100 at fixed hue and saturation.
func LightnessGradient(h, s float64, steps int) []string {
	return axisGradient(steps, func(t float64) string {
		return ToRGBHex(h, s, t*100)
	})
}

func axisGradient(steps int, at func(t float64) string) []string {
	if steps <= 0 {
		return nil
	}
	out := make([]string, steps)
	if steps == 1 {
		out[0] = at(0)
		return out
	}
	for i := range out {
		out[i] = at(float64(i) / float64(steps-1))
	}
	return out
}

func hsl(h, s, l float64) colorful.Color {
	return colorful.Hsl(hue.Normalize(h), clampPercent(s)/100, clampPercent(l)/100)
}

func bandFactor(lchHue float64) (float64, bool) {
	for _, band := range brightnessBands {
		if lchHue >= band.from && lchHue < band.to {
			return band.factor, true
		}
	}
	return 1, false
}

func clampPercent(v float64) float64 {
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

func degenerate(hex string) bool {
	return hex == "#000000" || hex == "#ffffff"
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
