// Package volume maps gesture distances to a volume level and applies it to
// the system audio output.
package volume

import "math"

// Distance range, in pixels, that spans the full volume scale.
const (
	MinDistance = 20.0
	MaxDistance = 200.0
)

// Percent maps a fingertip distance to a 0-100 volume percentage by clamped
// linear interpolation over [MinDistance, MaxDistance]. NaN maps to 0.
func Percent(distance float64) int {
	switch {
	case math.IsNaN(distance), distance <= MinDistance:
		return 0
	case distance >= MaxDistance:
		return 100
	}

	p := math.Round((distance - MinDistance) / (MaxDistance - MinDistance) * 100)
	return clamp(int(p))
}

func clamp(percent int) int {
	if percent < 0 {
		return 0
	}
	if percent > 100 {
		return 100
	}
	return percent
}
