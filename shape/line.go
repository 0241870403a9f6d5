package shape

import (
	"github.com/loftworks/birail"
	"github.com/ungerik/go3d/float64/vec3"
)

// Generate a straight line sampled at evenly spaced points
//
// **params**
// + first point of the line
// + last point of the line
// + number of samples, at least 2
//
// **returns**
// + an open curve from first to last
func Line(first, last *vec3.T, samples int) *birail.Curve {
	if samples < 2 {
		samples = 2
	}

	pts := make([]vec3.T, samples)
	for i := range pts {
		pts[i] = vec3.Interpolate(first, last, float64(i)/float64(samples-1))
	}

	return birail.NewCurveUnchecked(pts, nil, false)
}

// Generate a polyline through the given points
//
// **params**
// + array of points in curve
// + whether the last point connects back to the first
//
// **returns**
// + a curve through exactly those points
func Polyline(pts []vec3.T, cyclic bool) *birail.Curve {
	return birail.NewCurveUnchecked(pts, nil, cyclic)
}
