// Package scale maps raw sensor readings into bounded,
// application-meaningful ranges.
package scale

import "math"

// Scale describes a total, monotonic, clamped linear map from a raw
// sensor domain onto a scaled codomain. MinRaw must be below MaxRaw.
type Scale struct {
	MinRaw    int
	MaxRaw    int
	MinScaled int
	MaxScaled int
}

// Reading scales a raw sensor value. Inputs outside [MinRaw,MaxRaw]
// are clamped, never rejected. Rounding is half-away-from-zero
// (math.Round) so hysteresis comparisons stay deterministic.
func Reading(raw int, s Scale) int {
	clipped := raw
	if clipped < s.MinRaw {
		clipped = s.MinRaw
	}
	if clipped > s.MaxRaw {
		clipped = s.MaxRaw
	}

	factor := float64(clipped-s.MinRaw) / float64(s.MaxRaw-s.MinRaw)
	return int(math.Round(float64(s.MinScaled) + factor*float64(s.MaxScaled-s.MinScaled)))
}
