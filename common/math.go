package common

import "math"

// View size of the camera in world units.
const (
	ViewWidth  = 1280
	ViewHeight = 720
)

func Lerp(a, b, t float64) float64 {
	return a + t*(b-a)
}

func Clamp(v, lo, hi float64) float64 {
	if hi < lo {
		return lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Sign returns -1, 0 or 1.
func Sign(v float64) float64 {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	default:
		return 0
	}
}

// Finite returns v, or fallback when v is NaN or infinite.
func Finite(v, fallback float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return fallback
	}
	return v
}

// Ease identifies a tween curve.
type Ease int

const (
	EaseLinear Ease = iota
	EaseQuadOut
	EaseQuadIn
	EaseBackIn
	EaseSineInOut
)

// Apply maps progress t in [0,1] through the curve.
func (e Ease) Apply(t float64) float64 {
	t = Clamp(t, 0, 1)
	switch e {
	case EaseQuadOut:
		return t * (2 - t)
	case EaseQuadIn:
		return t * t
	case EaseBackIn:
		const s = 1.70158
		return t * t * ((s+1)*t - s)
	case EaseSineInOut:
		return -0.5 * (math.Cos(math.Pi*t) - 1)
	default:
		return t
	}
}
