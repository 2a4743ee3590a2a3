package util

import (
	"math"

	"golang.org/x/exp/constraints"
)

const floatEpsilon = 1e-9

// Eq reports whether a and b are equal up to a relative tolerance.
func Eq[T constraints.Float](a, b T) bool {
	diff := math.Abs(float64(a - b))
	scale := math.Max(1, math.Max(math.Abs(float64(a)), math.Abs(float64(b))))
	return diff <= floatEpsilon*scale
}

func Le[T constraints.Float](a, b T) bool {
	return a < b || Eq(a, b)
}

func Clamp[T constraints.Ordered](v, lo, hi T) T {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
