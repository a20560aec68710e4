package hue

import (
	"math"
	"testing"
)

func TestNormalizeRange(t *testing.T) {
	cases := []struct {
		in   float64
		want float64
	}{
		{0, 0},
		{360, 0},
		{359.5, 359.5},
		{-1, 359},
		{-540, 180},
		{725, 5},
		{1080, 0},
	}

	for _, tc := range cases {
		got := Normalize(tc.in)
		if got != tc.want {
			t.Errorf("Normalize(%v) = %v, want %v", tc.in, got, tc.want)
		}
		if got < 0 || got >= 360 {
			t.Errorf("Normalize(%v) = %v, outside [0, 360)", tc.in, got)
		}
	}
}

func TestNormalizeCongruence(t *testing.T) {
	for h := -720.0; h <= 720; h += 7.3 {
		diff := math.Mod(Normalize(h)-h, 360)
		if diff < 0 {
			diff += 360
		}
		if diff > 1e-9 && math.Abs(diff-360) > 1e-9 {
			t.Fatalf("Normalize(%v) not congruent mod 360 (diff %v)", h, diff)
		}
	}
}

func TestNormalizeSigned(t *testing.T) {
	cases := []struct {
		in   float64
		want float64
	}{
		{0, 0},
		{180, 180},
		{181, -179},
		{-180, 180},
		{-190, 170},
		{360, 0},
		{539, 179},
	}

	for _, tc := range cases {
		got := NormalizeSigned(tc.in)
		if got != tc.want {
			t.Errorf("NormalizeSigned(%v) = %v, want %v", tc.in, got, tc.want)
		}
		if got <= -180 || got > 180 {
			t.Errorf("NormalizeSigned(%v) = %v, outside (-180, 180]", tc.in, got)
		}
	}
}

func TestClampOffset(t *testing.T) {
	if got := ClampOffset(-300); got != -180 {
		t.Errorf("ClampOffset(-300) = %v, want -180", got)
	}
	if got := ClampOffset(300); got != 180 {
		t.Errorf("ClampOffset(300) = %v, want 180", got)
	}
	if got := ClampOffset(42); got != 42 {
		t.Errorf("ClampOffset(42) = %v, want 42", got)
	}
}

func TestStandardOffsets(t *testing.T) {
	want := map[Slot]float64{
		SlotRed:    0,
		SlotOrange: 30,
		SlotYellow: 60,
		SlotGreen:  150,
		SlotCyan:   180,
		SlotBlue:   210,
		SlotPurple: 270,
		SlotPink:   330,
	}
	for slot, offset := range want {
		if got := StandardOffset(slot); got != offset {
			t.Errorf("StandardOffset(%s) = %v, want %v", slot, got, offset)
		}
	}
	if got := StandardOffset(Slot("magenta")); got != 0 {
		t.Errorf("StandardOffset(unknown) = %v, want 0", got)
	}
}

func TestResolveHueComposition(t *testing.T) {
	offsets := OffsetSet{SlotRed: 12}

	// anchor + standard + theme + user, normalized.
	if got := ResolveHue(10, SlotRed, offsets, 5); got != 27 {
		t.Errorf("ResolveHue = %v, want 27", got)
	}
	// Slots absent from the theme offset set contribute zero.
	if got := ResolveHue(10, SlotYellow, offsets, 0); got != 70 {
		t.Errorf("ResolveHue = %v, want 70", got)
	}
	// Wraps the circle.
	if got := ResolveHue(350, SlotPink, nil, 0); got != 320 {
		t.Errorf("ResolveHue = %v, want 320", got)
	}
}

func TestRotateAdjustmentsPreservesAbsoluteHue(t *testing.T) {
	offsets := OffsetSet{SlotYellow: -8, SlotCyan: 4}
	adjustments := map[Slot]float64{
		SlotYellow: 40,
		SlotCyan:   -25,
		SlotRed:    170,
	}

	oldAnchor, newAnchor := 0.0, 90.0
	rotated := RotateAdjustments(oldAnchor, newAnchor, adjustments)

	for slot, oldOffset := range adjustments {
		oldAbs := ResolveHue(oldAnchor, slot, offsets, oldOffset)
		newAbs := ResolveHue(newAnchor, slot, offsets, rotated[slot])
		want := Normalize(oldAbs + (newAnchor - oldAnchor))
		if math.Abs(newAbs-want) > 1e-9 {
			t.Errorf("slot %s: absolute hue %v after rotation, want %v", slot, newAbs, want)
		}
		if rotated[slot] <= -180 || rotated[slot] > 180 {
			t.Errorf("slot %s: rotated offset %v outside (-180, 180]", slot, rotated[slot])
		}
	}

	// Input map is untouched.
	if adjustments[SlotYellow] != 40 {
		t.Fatalf("RotateAdjustments mutated its input")
	}
}

func TestRotateAdjustmentsEmpty(t *testing.T) {
	rotated := RotateAdjustments(0, 90, nil)
	if len(rotated) != 0 {
		t.Fatalf("expected empty map, got %v", rotated)
	}
}

func TestParseSlot(t *testing.T) {
	if got := ParseSlot("green"); got != SlotGreen {
		t.Errorf("ParseSlot(green) = %q", got)
	}
	if got := ParseSlot("chartreuse"); got != "" {
		t.Errorf("ParseSlot(chartreuse) = %q, want empty", got)
	}
}
