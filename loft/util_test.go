package loft

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/ungerik/go3d/float64/vec3"

	"github.com/loftworks/birail"
	"github.com/loftworks/birail/shape"
)

var approx = cmpopts.EquateApprox(0, 1e-9)

func diff(t *testing.T, want, got any, opts ...cmp.Option) {
	t.Helper()
	if d := cmp.Diff(want, got, opts...); d != "" {
		t.Error(d)
	}
}

func line(x0, y0, z0, x1, y1, z1 float64) *birail.Curve {
	a, b := vec3.T{x0, y0, z0}, vec3.T{x1, y1, z1}
	return shape.Line(&a, &b, 2)
}

func circle(radius float64, samples int) *birail.Curve {
	return shape.Circle(&vec3.Zero, &vec3.UnitX, &vec3.UnitY, radius, samples)
}

func ellipse(a, b float64, samples int) *birail.Curve {
	x, y := vec3.UnitX.Scaled(a), vec3.UnitY.Scaled(b)
	return shape.Ellipse(&vec3.Zero, &x, &y, samples)
}

func resolution(sweep, profile int) Options {
	opts := DefaultOptions()
	opts.Sweep = Axis{Mode: Resolution, Resolution: sweep}
	opts.Profile = Axis{Mode: Resolution, Resolution: profile}
	return opts
}
