package structprofile

import "golang.org/x/exp/constraints"

// clamp restricts v to [lo, hi]. Used by the profile assembler to guard
// against the occasional sub-epsilon overshoot a renormalisation step can
// introduce in floating point.
func clamp[T constraints.Ordered](v, lo, hi T) T {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
