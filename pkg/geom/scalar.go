package geom

import "math"

// Clamp limits n to [lo, hi].
func Clamp(n, lo, hi float64) float64 {
	if n > hi {
		return hi
	}
	if n < lo {
		return lo
	}
	return n
}

// ClampInt limits n to [lo, hi].
func ClampInt(n, lo, hi int) int {
	if n > hi {
		return hi
	}
	if n < lo {
		return lo
	}
	return n
}

// Mod is n mod m with a result that always has the sign of m.
func Mod(n, m float64) float64 {
	return math.Mod(math.Mod(n, m)+m, m)
}

// Normalize maps n from [lo, hi] onto [0, 1], clamping first.
func Normalize(n, lo, hi float64) float64 {
	if hi == lo {
		return 0
	}
	return (Clamp(n, lo, hi) - lo) / (hi - lo)
}

// MapZeroOneToZeroInf maps n in [0, 1] onto [0, +Inf) with t/(1-n) - t.
// Larger t flattens the curve near zero. n is clamped to [0, 1]; n == 1
// yields +Inf.
func MapZeroOneToZeroInf(n, t float64) float64 {
	n = Clamp(n, 0, 1)
	if n == 1 {
		return math.Inf(1)
	}
	return t/(1-n) - t
}
