package camera

import "math"

// EaseInOutSine maps t in [0, 1] onto a sine ease-in/ease-out curve.
// Velocity is zero at both ends. Values outside [0, 1] are clamped.
func EaseInOutSine(t float64) float64 {
	if t <= 0 {
		return 0
	}
	if t >= 1 {
		return 1
	}
	return -(math.Cos(math.Pi*t) - 1) / 2
}
