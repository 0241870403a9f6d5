package config

import (
	"math"

	"github.com/loftworks/birail"
	"github.com/loftworks/birail/shape"

	"github.com/ungerik/go3d/float64/vec3"
)

// CurveSpec describes a curve either as explicit points or as a shape.
//
// Shapes and the fields they read:
//
//	points, polyline: points, cyclic
//	line:             points (exactly two), samples
//	circle:           center, x_axis, y_axis, radius, samples
//	ellipse:          center, x_axis, y_axis (scaled semi-axes), samples
//	arc:              center, x_axis, y_axis, radius, start, end, samples
//
// An empty shape means points. Angles are in degrees. Tilt, when given,
// needs one value per sample of the finished curve.
type CurveSpec struct {
	Shape   string       `toml:"shape" yaml:"shape"`
	Points  [][3]float64 `toml:"points" yaml:"points"`
	Cyclic  bool         `toml:"cyclic" yaml:"cyclic"`
	Tilt    []float64    `toml:"tilt" yaml:"tilt"`
	Center  [3]float64   `toml:"center" yaml:"center"`
	XAxis   *[3]float64  `toml:"x_axis" yaml:"x_axis"`
	YAxis   *[3]float64  `toml:"y_axis" yaml:"y_axis"`
	Radius  float64      `toml:"radius" yaml:"radius"`
	Start   float64      `toml:"start" yaml:"start"`
	End     float64      `toml:"end" yaml:"end"`
	Samples int          `toml:"samples" yaml:"samples"`
}

const defaultSamples = 16

// Curve builds the described curve.
func (c *CurveSpec) Curve() (*birail.Curve, error) {
	samples := c.Samples
	if samples == 0 {
		samples = defaultSamples
	}

	center := vec3.T(c.Center)
	xaxis, yaxis := vec3.UnitX, vec3.UnitY
	if c.XAxis != nil {
		xaxis = vec3.T(*c.XAxis)
	}
	if c.YAxis != nil {
		yaxis = vec3.T(*c.YAxis)
	}

	var curve *birail.Curve
	switch c.Shape {
	case "", "points", "polyline":
		pts := make([]vec3.T, len(c.Points))
		for i, p := range c.Points {
			pts[i] = vec3.T(p)
		}
		return birail.NewTiltedCurve(pts, c.Tilt, c.Cyclic)

	case "line":
		if len(c.Points) != 2 {
			return nil, birail.NewError(birail.ErrCodeInvalidParameter,
				"line needs exactly 2 points, got %d", len(c.Points))
		}
		if samples < 2 {
			return nil, birail.NewError(birail.ErrCodeInvalidParameter, "line needs at least 2 samples")
		}
		first, last := vec3.T(c.Points[0]), vec3.T(c.Points[1])
		curve = shape.Line(&first, &last, samples)

	case "circle":
		if samples < 3 || !(c.Radius > 0) {
			return nil, birail.NewError(birail.ErrCodeInvalidParameter,
				"circle needs a positive radius and at least 3 samples")
		}
		curve = shape.Circle(&center, &xaxis, &yaxis, c.Radius, samples)

	case "ellipse":
		if samples < 3 {
			return nil, birail.NewError(birail.ErrCodeInvalidParameter, "ellipse needs at least 3 samples")
		}
		curve = shape.Ellipse(&center, &xaxis, &yaxis, samples)

	case "arc":
		if samples < 2 || !(c.Radius > 0) || c.End <= c.Start {
			return nil, birail.NewError(birail.ErrCodeInvalidParameter,
				"arc needs a positive radius, end > start and at least 2 samples")
		}
		curve = shape.Arc(&center, &xaxis, &yaxis, c.Radius, radians(c.Start), radians(c.End), samples)

	default:
		return nil, birail.NewError(birail.ErrCodeInvalidParameter, "unknown shape %q", c.Shape)
	}

	return birail.NewTiltedCurve(curve.Points(), c.Tilt, curve.Cyclic())
}

func radians(deg float64) float64 {
	return deg * math.Pi / 180
}
