package value

import "math"

// LerpFloat interpolates linearly, returning to exactly once t reaches 1.
func LerpFloat(from, to, t float64) float64 {
	if t >= 1 {
		return to
	}
	return from + t*(to-from)
}

// LerpInt interpolates and rounds half away from zero.
func LerpInt(from, to int64, t float64) int64 {
	if t >= 1 {
		return to
	}
	if t <= 0 {
		return from
	}
	return int64(math.Round(float64(from) + t*(float64(to)-float64(from))))
}

// LerpChannels interpolates every channel independently. Callers pass linear
// channels so the blend happens in linear light.
func LerpChannels(from, to Channels, t float64) Channels {
	return Channels{
		R: LerpFloat(from.R, to.R, t),
		G: LerpFloat(from.G, to.G, t),
		B: LerpFloat(from.B, to.B, t),
		A: LerpFloat(from.A, to.A, t),
	}
}

// LerpColor blends two linear colors and packs the nonlinear result.
func LerpColor(from, to Channels, t float64) RGBA {
	return LerpChannels(from, to, t).ToNonlinear().Pack()
}
