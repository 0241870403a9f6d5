package internal

import "math"

const (
	// Epsilon is the smallest length or distance treated as non-zero.
	Epsilon = 1e-10

	// Tolerance is the default geometric tolerance for comparisons of
	// sampled positions.
	Tolerance = 1e-6

	// AngleTolerance is the default tolerance, in radians, for deciding
	// whether two directions are equal.
	AngleTolerance = 30 * math.Pi / 180
)
