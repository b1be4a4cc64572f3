package common

import "math"

const (
	// TPS is the fixed simulation rate; every frame counter assumes it.
	TPS = 60
	// TileSize is the level grid size in pixels.
	TileSize = 32
	// PixelsPerMeter converts tuning values given in meters (gravity,
	// impulse) into world pixels.
	PixelsPerMeter = 32.0
	// Gravity is the downward acceleration in pixels per second squared.
	Gravity = 9.81 * PixelsPerMeter
)

// FixedDelta is the physics step in seconds.
const FixedDelta = 1.0 / TPS

func Lerp(a, b, t float64) float64 {
	return a + t*(b-a)
}

// SecondsToFrames rounds a duration to whole ticks, never below one.
func SecondsToFrames(seconds float64) int {
	frames := int(math.Round(seconds * TPS))
	if frames < 1 {
		return 1
	}
	return frames
}
