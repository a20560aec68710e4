package palette

import (
	"regexp"
	"testing"

	"github.com/opencode-ai/prism/internal/colorspace"
	"github.com/opencode-ai/prism/internal/hue"
)

var hexPattern = regexp.MustCompile(`^#[0-9a-f]{6}$`)

func midnightParams() Params {
	return Params{
		BgHue:        270,
		BgSat:        25,
		BgLight:      6,
		AccentHue:    0,
		AccentSat:    95,
		AccentLight:  60,
		CommentLight: 55,
	}
}

func TestBuildCompleteness(t *testing.T) {
	pal := Build(midnightParams(), nil)

	if len(pal) != 24 {
		t.Fatalf("palette has %d entries, want 24", len(pal))
	}
	for _, key := range Keys {
		hex, ok := pal[key]
		if !ok {
			t.Errorf("missing key %s", key)
			continue
		}
		if !hexPattern.MatchString(hex) {
			t.Errorf("%s = %q, not a hex color", key, hex)
		}
	}
}

func TestBuildDeterminism(t *testing.T) {
	params := midnightParams()
	params.Adjustments = map[hue.Slot]float64{hue.SlotYellow: 40}

	first := Build(params, hue.OffsetSet{hue.SlotRed: 5})
	second := Build(params, hue.OffsetSet{hue.SlotRed: 5})

	for _, key := range Keys {
		if first[key] != second[key] {
			t.Errorf("%s differs between identical builds: %s vs %s", key, first[key], second[key])
		}
	}
}

func TestBuildMidnightScenario(t *testing.T) {
	pal := Build(midnightParams(), nil)

	if got, want := pal.Hex("base00"), colorspace.ToRGBHex(270, 25, 6); got != want {
		t.Errorf("base00 = %s, want %s", got, want)
	}
	// Red sits at standard offset 0 with no theme or user offsets, so it
	// renders at the anchor itself.
	if got, want := pal.Hex("base08"), colorspace.PerceptuallyCorrect(0, 95, 60); got != want {
		t.Errorf("base08 = %s, want %s", got, want)
	}
}

func TestBuildBackgroundRamp(t *testing.T) {
	dark := Build(midnightParams(), nil)
	if got, want := dark.Hex("base01"), colorspace.ToRGBHex(270, 25*1.2, 10); got != want {
		t.Errorf("dark base01 = %s, want %s (lightness steps up)", got, want)
	}
	if got, want := dark.Hex("base02"), colorspace.ToRGBHex(270, 25*1.5, 14); got != want {
		t.Errorf("dark base02 = %s, want %s", got, want)
	}

	light := midnightParams()
	light.BgLight = 94
	lightPal := Build(light, nil)
	if got, want := lightPal.Hex("base01"), colorspace.ToRGBHex(270, 25*1.2, 90); got != want {
		t.Errorf("light base01 = %s, want %s (lightness steps down)", got, want)
	}
}

func TestBuildForegroundPolarity(t *testing.T) {
	dark := Build(midnightParams(), nil)
	if got, want := dark.Hex("base05"), colorspace.ToRGBHex(270, 15, 95); got != want {
		t.Errorf("dark base05 = %s, want %s", got, want)
	}
	if got, want := dark.Hex("base04"), colorspace.ToRGBHex(270, 15, 80); got != want {
		t.Errorf("dark base04 = %s, want %s", got, want)
	}
	// Comments keep the background hue on dark themes.
	if got, want := dark.Hex("base03"), colorspace.ToRGBHex(270, 15, 55); got != want {
		t.Errorf("dark base03 = %s, want %s", got, want)
	}

	light := midnightParams()
	light.BgLight = 94
	lightPal := Build(light, nil)
	if got, want := lightPal.Hex("base05"), colorspace.ToRGBHex(270, 15, 5); got != want {
		t.Errorf("light base05 = %s, want %s", got, want)
	}
	if got, want := lightPal.Hex("base04"), colorspace.ToRGBHex(270, 15, 20); got != want {
		t.Errorf("light base04 = %s, want %s", got, want)
	}
	// Comments flip to the complementary hue on light themes.
	if got, want := lightPal.Hex("base03"), colorspace.ToRGBHex(270+180, 15, 55); got != want {
		t.Errorf("light base03 = %s, want %s", got, want)
	}
}

func TestBuildAccentComposition(t *testing.T) {
	params := midnightParams()
	params.Adjustments = map[hue.Slot]float64{hue.SlotYellow: 40}
	offsets := hue.OffsetSet{hue.SlotYellow: -8}

	pal := Build(params, offsets)

	resolved := hue.ResolveHue(params.AccentHue, hue.SlotYellow, offsets, 40)
	if resolved != 92 {
		t.Fatalf("resolved yellow hue = %v, want 92", resolved)
	}
	if got, want := pal.Hex("base0A"), colorspace.PerceptuallyCorrect(92, 95, 60); got != want {
		t.Errorf("base0A = %s, want %s", got, want)
	}

	mutedSat := 95 * 0.7
	if got, want := pal.Hex("base12"), colorspace.PerceptuallyCorrect(92, mutedSat, MutedLightness(60)); got != want {
		t.Errorf("base12 = %s, want %s", got, want)
	}
}

func TestBuildTotality(t *testing.T) {
	// Sweep the documented parameter ranges; Build must always return 24
	// valid colors.
	for bgLight := 0.0; bgLight <= 100; bgLight += 25 {
		for accentLight := 0.0; accentLight <= 100; accentLight += 25 {
			for anchor := 0.0; anchor < 360; anchor += 90 {
				pal := Build(Params{
					BgHue:        anchor,
					BgSat:        50,
					BgLight:      bgLight,
					AccentHue:    anchor,
					AccentSat:    100,
					AccentLight:  accentLight,
					CommentLight: 50,
				}, nil)
				if len(pal) != 24 {
					t.Fatalf("palette has %d entries", len(pal))
				}
				for _, key := range Keys {
					if !hexPattern.MatchString(pal[key]) {
						t.Fatalf("%s = %q", key, pal[key])
					}
				}
			}
		}
	}
}

func TestMutedLightness(t *testing.T) {
	// Dark accents gain the most, light accents the least, never past 85.
	if got := MutedLightness(0); got != 18 {
		t.Errorf("MutedLightness(0) = %v, want 18", got)
	}
	if got := MutedLightness(60); got < 74.39 || got > 74.41 {
		t.Errorf("MutedLightness(60) = %v, want ~74.4", got)
	}
	if got := MutedLightness(100); got != 85 {
		t.Errorf("MutedLightness(100) = %v, want 85", got)
	}

	prev := MutedLightness(0) - 0
	for l := 10.0; l <= 100; l += 10 {
		gain := MutedLightness(l) - l
		if gain > prev+1e-9 {
			t.Errorf("lightness gain should not grow with lightness: gain(%v)=%v > %v", l, gain, prev)
		}
		prev = gain
	}
}

func TestAccentAndMutedKeys(t *testing.T) {
	if got := AccentKey(hue.SlotRed); got != "base08" {
		t.Errorf("AccentKey(red) = %s", got)
	}
	if got := AccentKey(hue.SlotPink); got != "base0F" {
		t.Errorf("AccentKey(pink) = %s", got)
	}
	if got := MutedKey(hue.SlotRed); got != "base10" {
		t.Errorf("MutedKey(red) = %s", got)
	}
	if got := MutedKey(hue.SlotPink); got != "base17" {
		t.Errorf("MutedKey(pink) = %s", got)
	}
}
