package colorspace

import (
	"regexp"
	"testing"
)

var hexPattern = regexp.MustCompile(`^#[0-9a-f]{6}$`)

func TestToRGBHexKnownColors(t *testing.T) {
	cases := []struct {
		h, s, l float64
		want    string
	}{
		{0, 0, 0, "#000000"},
		{0, 0, 100, "#ffffff"},
		{0, 100, 50, "#ff0000"},
		{120, 100, 50, "#00ff00"},
		{240, 100, 50, "#0000ff"},
	}

	for _, tc := range cases {
		if got := ToRGBHex(tc.h, tc.s, tc.l); got != tc.want {
			t.Errorf("ToRGBHex(%v, %v, %v) = %s, want %s", tc.h, tc.s, tc.l, got, tc.want)
		}
	}
}

func TestToRGBHexTotal(t *testing.T) {
	// Out-of-range inputs normalize or clamp instead of failing.
	cases := []struct{ h, s, l float64 }{
		{-30, 120, -5},
		{720, -1, 150},
		{359.999, 100, 100},
		{0, 0, 50},
	}

	for _, tc := range cases {
		got := ToRGBHex(tc.h, tc.s, tc.l)
		if !hexPattern.MatchString(got) {
			t.Errorf("ToRGBHex(%v, %v, %v) = %q, not a hex color", tc.h, tc.s, tc.l, got)
		}
	}

	if ToRGBHex(-30, 50, 50) != ToRGBHex(330, 50, 50) {
		t.Error("negative hue should normalize onto the circle")
	}
}

func TestPerceptuallyCorrectDimsGreens(t *testing.T) {
	naive := ToRGBHex(120, 100, 50)
	corrected := PerceptuallyCorrect(120, 100, 50)

	if !hexPattern.MatchString(corrected) {
		t.Fatalf("corrected output %q is not a hex color", corrected)
	}
	if corrected == naive {
		t.Error("saturated green should be dimmed by perceptual correction")
	}
}

func TestPerceptuallyCorrectLeavesOthersAlone(t *testing.T) {
	// Low chroma: gray is never corrected.
	if got, want := PerceptuallyCorrect(120, 0, 50), ToRGBHex(120, 0, 50); got != want {
		t.Errorf("gray corrected to %s, want %s", got, want)
	}
	// Saturated red sits outside the over-bright bands.
	if got, want := PerceptuallyCorrect(0, 100, 50), ToRGBHex(0, 100, 50); got != want {
		t.Errorf("red corrected to %s, want %s", got, want)
	}
}

func TestPerceptuallyCorrectNeverDegenerates(t *testing.T) {
	for h := 0.0; h < 360; h += 15 {
		for _, l := range []float64{5, 30, 50, 70, 95} {
			got := PerceptuallyCorrect(h, 95, l)
			if !hexPattern.MatchString(got) {
				t.Fatalf("PerceptuallyCorrect(%v, 95, %v) = %q", h, l, got)
			}
		}
	}
}

func TestGradients(t *testing.T) {
	hues := HueGradient(80, 50, 12)
	if len(hues) != 12 {
		t.Fatalf("HueGradient returned %d stops, want 12", len(hues))
	}
	if hues[0] != ToRGBHex(0, 80, 50) {
		t.Errorf("hue gradient should start at hue 0, got %s", hues[0])
	}

	lights := LightnessGradient(200, 60, 5)
	if len(lights) != 5 {
		t.Fatalf("LightnessGradient returned %d stops, want 5", len(lights))
	}
	if lights[0] != "#000000" || lights[4] != "#ffffff" {
		t.Errorf("lightness gradient endpoints = %s, %s", lights[0], lights[4])
	}

	sats := SaturationGradient(200, 50, 3)
	if len(sats) != 3 {
		t.Fatalf("SaturationGradient returned %d stops, want 3", len(sats))
	}
	if sats[0] != ToRGBHex(200, 0, 50) || sats[2] != ToRGBHex(200, 100, 50) {
		t.Errorf("saturation gradient endpoints = %s, %s", sats[0], sats[2])
	}

	if got := HueGradient(50, 50, 0); got != nil {
		t.Errorf("zero-step gradient should be nil, got %v", got)
	}
}
