package random

import "math"

// ValidIntRange reports whether Int can draw from [lo, hi]: lo <= hi and the
// range holds fewer than math.MaxInt+1 values.
func ValidIntRange(lo, hi int) bool {
	return lo <= hi && uint(hi)-uint(lo) < math.MaxInt
}

// Int returns a uniformly distributed integer in the closed range [lo, hi].
//
// Precondition: src is non-nil and ValidIntRange(lo, hi). Panics otherwise.
func Int(src Source, lo, hi int) int {
	if hi < lo {
		panic("random: Int precondition violated: hi < lo")
	}
	span := uint(hi) - uint(lo)
	if span >= math.MaxInt {
		panic("random: Int precondition violated: range wider than math.MaxInt")
	}
	return lo + src.Intn(int(span)+1)
}

// Float returns a uniformly distributed float in the half-open range [lo, hi).
//
// Precondition: src is non-nil.
func Float(src Source, lo, hi float64) float64 {
	return src.Float64()*(hi-lo) + lo
}
