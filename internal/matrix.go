package internal

import "math"

// Mat2Solve solves the 2x2 linear system
//
//	a*x + b*y = f
//	c*x + d*y = s
//
// ok is false when the system is singular.
func Mat2Solve(a, b, c, d, f, s float64) (x, y float64, ok bool) {
	det := a*d - b*c
	if math.Abs(det) < Epsilon {
		return 0, 0, false
	}

	x = (f*d - b*s) / det
	y = (a*s - f*c) / det
	return x, y, true
}
