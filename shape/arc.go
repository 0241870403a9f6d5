package shape

import (
	"math"

	"github.com/loftworks/birail"
	"github.com/ungerik/go3d/float64/vec3"
)

// Generate an arbitrary circular arc
//
// **params**
// + the center of the arc
// + the xaxis of the arc
// + orthogonal yaxis of the arc
// + radius of the arc
// + start angle of the arc, where 0 points along the xaxis
// + end angle of the arc, greater than the start angle
// + number of samples, at least 2
//
// **returns**
// + an open curve from the start angle to the end angle
func Arc(center *vec3.T, xaxis, yaxis *vec3.T, radius float64, startAngle, endAngle float64, samples int) *birail.Curve {
	xaxisScaled, yaxisScaled := xaxis.Scaled(radius), yaxis.Scaled(radius)
	return EllipseArc(center, &xaxisScaled, &yaxisScaled, startAngle, endAngle, samples)
}

// Create a circle
//
// **params**
// + the center of the circle
// + the xaxis
// + the perpendicular yaxis
// + radius of the circle
// + number of distinct samples, at least 3
func Circle(center *vec3.T, xaxis, yaxis *vec3.T, radius float64, samples int) *birail.Curve {
	xaxisScaled, yaxisScaled := xaxis.Scaled(radius), yaxis.Scaled(radius)
	return Ellipse(center, &xaxisScaled, &yaxisScaled, samples)
}

// Create a closed ellipse whose semi-axes are the given (scaled) axes.
// Samples start on the xaxis and run towards the yaxis.
func Ellipse(center *vec3.T, xaxis, yaxis *vec3.T, samples int) *birail.Curve {
	if samples < 3 {
		samples = 3
	}

	pts := make([]vec3.T, samples)
	for i := range pts {
		pts[i] = ellipsePoint(center, xaxis, yaxis, 2*math.Pi*float64(i)/float64(samples))
	}

	return birail.NewCurveUnchecked(pts, nil, true)
}

// Generate an elliptical arc
//
// **params**
// + the center
// + the scaled x axis
// + the scaled y axis
// + start angle of the ellipse arc, where 0 points at the xaxis
// + end angle of the arc
// + number of samples, at least 2
//
// **returns**
// + an open curve including both end angles
func EllipseArc(center *vec3.T, xaxis, yaxis *vec3.T, startAngle, endAngle float64, samples int) *birail.Curve {
	if samples < 2 {
		samples = 2
	}

	pts := make([]vec3.T, samples)
	span := (endAngle - startAngle) / float64(samples-1)
	for i := range pts {
		pts[i] = ellipsePoint(center, xaxis, yaxis, startAngle+span*float64(i))
	}

	return birail.NewCurveUnchecked(pts, nil, false)
}

func ellipsePoint(center, xaxis, yaxis *vec3.T, theta float64) vec3.T {
	x := xaxis.Scaled(math.Cos(theta))
	y := yaxis.Scaled(math.Sin(theta))

	pt := vec3.Add(center, &x)
	return vec3.Add(&pt, &y)
}
