// Package mathx provides small numeric helpers shared by the scripting library.
package mathx

import (
	"cmp"
	"math"
)

// DefaultEpsilon is the tolerance used by AlmostEquals callers that have no
// domain-specific tolerance of their own.
const DefaultEpsilon = 0.0001

// Clamp returns v limited to the closed range [lo, hi].
//
// Precondition: lo <= hi.
// Postcondition: lo <= result <= hi.
func Clamp[T cmp.Ordered](v, lo, hi T) T {
	return max(lo, min(hi, v))
}

// AlmostEquals reports whether a and b differ by strictly less than eps.
func AlmostEquals(a, b, eps float64) bool {
	return math.Abs(a-b) < eps
}
