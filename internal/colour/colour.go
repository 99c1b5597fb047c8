// Package colour provides the RGB and HSV colour types used by the
// sensor pipeline and the conversion between them.
package colour

import "math"

// RGB is a colour as read from the colour sensor, channels 0-255.
type RGB struct {
	R uint8
	G uint8
	B uint8
}

// HSV is a colour as hue (degrees, [0,360)), saturation and value
// (both [0,1]).
type HSV struct {
	H float64
	S float64
	V float64
}

// RGBToHSV converts an RGB reading to HSV.
func RGBToHSV(c RGB) HSV {
	rf := float64(c.R) / 255
	gf := float64(c.G) / 255
	bf := float64(c.B) / 255

	max := math.Max(rf, math.Max(gf, bf))
	min := math.Min(rf, math.Min(gf, bf))
	delta := max - min

	var h float64
	if delta != 0 {
		switch max {
		case rf:
			h = 60 * math.Mod((gf-bf)/delta, 6)
		case gf:
			h = 60 * ((bf-rf)/delta + 2)
		case bf:
			h = 60 * ((rf-gf)/delta + 4)
		}
	}
	if h < 0 {
		h += 360
	}

	var s float64
	if max > 0 {
		s = delta / max
	}

	return HSV{H: h, S: s, V: max}
}
