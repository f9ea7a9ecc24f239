package common

import "math"

// EaseFunc maps progress t in [0,1] to eased progress in [0,1].
type EaseFunc func(t float64) float64

func EaseLinear(t float64) float64 {
	return t
}

// EaseInOutQuad: slow start, fast middle, slow end.
func EaseInOutQuad(t float64) float64 {
	t *= 2
	if t < 1 {
		return 0.5 * t * t
	}
	t--
	return -0.5 * (t*(t-2) - 1)
}

// EaseInOutSine follows half a cosine period.
func EaseInOutSine(t float64) float64 {
	return 0.5 * (1 - math.Cos(math.Pi*t))
}
