package common

import "math"

const TwoPi = 2 * math.Pi

// NormalizeAngle maps a to its representative in (-π, π]. Non-finite input
// maps to 0.
func NormalizeAngle(a float64) float64 {
	if math.IsNaN(a) || math.IsInf(a, 0) {
		return 0
	}
	a = math.Mod(a, TwoPi)
	if a > math.Pi {
		a -= TwoPi
	} else if a <= -math.Pi {
		a += TwoPi
	}
	return a
}

// WithinArc reports whether a lies on the arc running counter-clockwise from
// lo to hi, with both bounds inside half a turn of a.
func WithinArc(a, lo, hi float64) bool {
	return NormalizeAngle(lo-a) <= 0 && NormalizeAngle(hi-a) >= 0
}

// ClampAngle forces a onto the arc [lo, hi]. Angles already on the arc are
// returned unchanged; otherwise the bound with the smaller wrapped distance
// wins, lo on a tie.
func ClampAngle(a, lo, hi float64) float64 {
	dLo := NormalizeAngle(lo - a)
	dHi := NormalizeAngle(hi - a)
	if dLo <= 0 && dHi >= 0 {
		return a
	}
	if math.Abs(dLo) <= math.Abs(dHi) {
		return lo
	}
	return hi
}
