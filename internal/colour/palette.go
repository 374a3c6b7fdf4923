// Package colour provides hex parsing, RGB arithmetic and colour name resolution.
package colour

import (
	"fmt"
	"image/color"
	"math"
)

// RGB represents a color in 8-bit RGB format.
type RGB struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
}

// String returns the RGB color as a string in the format "rgb(r, g, b)".
func (rgb RGB) String() string {
	return fmt.Sprintf("rgb(%d, %d, %d)", rgb.R, rgb.G, rgb.B)
}

// Hex returns the RGB color as a lowercase six digit hex string without a
// leading hash (e.g., "1a2b3c").
func (rgb RGB) Hex() string {
	return fmt.Sprintf("%02x%02x%02x", rgb.R, rgb.G, rgb.B)
}

// ToRGB converts a color.Color to RGB.
func ToRGB(c color.Color) RGB {
	r, g, b, _ := c.RGBA()
	// RGBA returns values in the range [0, 65535], convert to [0, 255]
	return RGB{
		R: uint8(r >> 8),
		G: uint8(g >> 8),
		B: uint8(b >> 8),
	}
}

// Round rounds each channel to the nearest multiple of step.
// A step of zero or one returns the colour unchanged.
func (rgb RGB) Round(step int) RGB {
	if step <= 1 {
		return rgb
	}
	return RGB{
		R: roundChannel(rgb.R, step),
		G: roundChannel(rgb.G, step),
		B: roundChannel(rgb.B, step),
	}
}

func roundChannel(v uint8, step int) uint8 {
	s := float64(step)
	r := s * math.Round(float64(v)/s)
	if r > 255 {
		// Only reachable for steps that do not divide 255.
		r -= s
	}
	return uint8(r)
}

// DistanceSq returns the squared Euclidean distance between two colours in
// RGB space.
func (rgb RGB) DistanceSq(other RGB) int {
	dr := int(rgb.R) - int(other.R)
	dg := int(rgb.G) - int(other.G)
	db := int(rgb.B) - int(other.B)
	return dr*dr + dg*dg + db*db
}

// Offset returns the colour shifted by the given per-channel deltas, with
// each channel clamped to [0, 255].
func (rgb RGB) Offset(dr, dg, db int) RGB {
	return RGB{
		R: clampChannel(int(rgb.R) + dr),
		G: clampChannel(int(rgb.G) + dg),
		B: clampChannel(int(rgb.B) + db),
	}
}

func clampChannel(v int) uint8 {
	switch {
	case v < 0:
		return 0
	case v > 255:
		return 255
	default:
		return uint8(v)
	}
}
