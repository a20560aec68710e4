// Package hue provides angular hue arithmetic and accent slot composition for palette generation.
package hue

import "math"

// Slot represents one of the eight named accent roles.
type Slot string

// Accent slots in canonical palette order.
const (
	SlotRed    Slot = "red"
	SlotOrange Slot = "orange"
	SlotYellow Slot = "yellow"
	SlotGreen  Slot = "green"
	SlotCyan   Slot = "cyan"
	SlotBlue   Slot = "blue"
	SlotPurple Slot = "purple"
	SlotPink   Slot = "pink"
)

// AllSlots returns the accent slots in canonical order.
func AllSlots() []Slot {
	return []Slot{
		SlotRed,
		SlotOrange,
		SlotYellow,
		SlotGreen,
		SlotCyan,
		SlotBlue,
		SlotPurple,
		SlotPink,
	}
}

// ParseSlot converts a string to a Slot, returning empty string if invalid.
func ParseSlot(s string) Slot {
	switch Slot(s) {
	case SlotRed, SlotOrange, SlotYellow, SlotGreen, SlotCyan, SlotBlue, SlotPurple, SlotPink:
		return Slot(s)
	default:
		return ""
	}
}

// String returns the slot name.
func (s Slot) String() string {
	return string(s)
}

// standardOffsets maps each slot to its canonical angular position relative to
// the hue-0 anchor.
var standardOffsets = map[Slot]float64{
	SlotRed:    0,
	SlotOrange: 30,
	SlotYellow: 60,
	SlotGreen:  150,
	SlotCyan:   180,
	SlotBlue:   210,
	SlotPurple: 270,
	SlotPink:   330,
}

// StandardOffset returns the canonical angular position for a slot.
// Unknown slots return 0.
func StandardOffset(slot Slot) float64 {
	return standardOffsets[slot]
}

// OffsetSet holds per-slot angular offsets for a theme's personality.
// Slots without an entry contribute a zero offset.
type OffsetSet map[Slot]float64

// Offset returns the offset for a slot, or 0 if the set does not define one.
func (o OffsetSet) Offset(slot Slot) float64 {
	if o == nil {
		return 0
	}
	return o[slot]
}

// Normalize maps an angle in degrees into [0, 360).
func Normalize(deg float64) float64 {
	m := math.Mod(deg, 360)
	if m < 0 {
		m += 360
	}
	return m
}

// NormalizeSigned maps an angle in degrees into (-180, 180], the shortest
// signed path from zero.
func NormalizeSigned(deg float64) float64 {
	m := Normalize(deg)
	if m > 180 {
		m -= 360
	}
	return m
}

// ClampOffset limits a user-supplied offset to [-180, 180].
func ClampOffset(deg float64) float64 {
	if deg < -180 {
		return -180
	}
	if deg > 180 {
		return 180
	}
	return deg
}

// ResolveHue composes the final hue for an accent slot. This is the single
// composition point for anchor, standard offset, theme offset and user offset;
// preview and export must both resolve through it so they cannot drift apart.
func ResolveHue(anchor float64, slot Slot, theme OffsetSet, userOffset float64) float64 {
	return Normalize(anchor + StandardOffset(slot) + theme.Offset(slot) + userOffset)
}

// RotateAdjustments re-expresses per-slot user offsets after the anchor hue
// moves from oldAnchor to newAnchor, so that every adjusted slot keeps its
// absolute rendered hue rotated by the same delta. The input map is not
// modified.
func RotateAdjustments(oldAnchor, newAnchor float64, adjustments map[Slot]float64) map[Slot]float64 {
	if len(adjustments) == 0 {
		return map[Slot]float64{}
	}

	delta := newAnchor - oldAnchor
	rotated := make(map[Slot]float64, len(adjustments))
	for slot, offset := range adjustments {
		oldAbsolute := oldAnchor + offset
		newAbsolute := Normalize(oldAbsolute + delta)
		rotated[slot] = NormalizeSigned(newAbsolute - newAnchor)
	}
	return rotated
}
