package loft

import (
	"math"

	. "github.com/loftworks/birail/internal"

	"github.com/ungerik/go3d/float64/mat4"
	"github.com/ungerik/go3d/float64/vec3"
)

// Frame is a right-handed orthonormal basis placed at a station.
// X points from rail A to rail B, Z along the sweep and Y = Z x X across
// the surface.
type Frame struct {
	X, Y, Z vec3.T
}

// IdentityFrame is the world basis.
var IdentityFrame = Frame{vec3.UnitX, vec3.UnitY, vec3.UnitZ}

// newFrame builds a frame whose X axis is x (unit length) and whose Z axis
// is the part of tangent perpendicular to x. When that part vanishes the
// previous station's Z is used instead, and failing that any perpendicular
// of x.
func newFrame(x, tangent vec3.T, prevZ *vec3.T) Frame {
	ray := Ray{Dir: x}

	z := ray.Reject(tangent)
	if z.Length() < Epsilon && prevZ != nil {
		z = ray.Reject(*prevZ)
	}
	if z.Length() < Epsilon {
		z = anyPerpendicular(x)
	}
	z.Normalize()

	y := vec3.Cross(&z, &x)

	return Frame{x, y, z}
}

// anyPerpendicular returns a unit vector perpendicular to v, crossing v
// with the world axis it is least aligned with.
func anyPerpendicular(v vec3.T) vec3.T {
	ax, ay, az := math.Abs(v[0]), math.Abs(v[1]), math.Abs(v[2])

	var axis vec3.T
	switch {
	case ax <= ay && ax <= az:
		axis = vec3.UnitX
	case ay <= az:
		axis = vec3.UnitY
	default:
		axis = vec3.UnitZ
	}

	p := vec3.Cross(&v, &axis)
	if p.Length() < Epsilon {
		return vec3.UnitY
	}
	return *p.Normalize()
}

// tilted rotates the Y and Z axes about X by angle radians. The span axis
// is left in place so the cross-section still reaches both rails.
func (f Frame) tilted(angle float64) Frame {
	if angle == 0 {
		return f
	}

	sin, cos := math.Sincos(angle)
	y1, y2 := f.Y.Scaled(cos), f.Z.Scaled(sin)
	z1, z2 := f.Z.Scaled(cos), f.Y.Scaled(sin)

	return Frame{
		X: f.X,
		Y: vec3.Add(&y1, &y2),
		Z: vec3.Sub(&z1, &z2),
	}
}

// placement is the full map from a profile's local coordinates to world
// space: T(anchor) * R(frame) * S(span, width, 1) * Rz(-angle) * T(-pivot).
type placement struct {
	frame  Frame
	anchor vec3.T
	pivot  vec3.T
	angle  float64
	span   float64
	width  float64
}

func (p *placement) matrix() mat4.T {
	sin, cos := math.Sincos(p.angle)

	// images of the local unit axes
	cx := p.combine(p.span*cos, -p.width*sin, 0)
	cy := p.combine(p.span*sin, p.width*cos, 0)
	cz := p.frame.Z

	t := p.anchor
	for _, c := range [3]struct {
		axis vec3.T
		w    float64
	}{{cx, p.pivot[0]}, {cy, p.pivot[1]}, {cz, p.pivot[2]}} {
		offset := c.axis.Scaled(c.w)
		t.Sub(&offset)
	}

	m := mat4.Ident
	for row := 0; row < 3; row++ {
		m[0][row] = cx[row]
		m[1][row] = cy[row]
		m[2][row] = cz[row]
		m[3][row] = t[row]
	}

	return m
}

// combine returns a*X + b*Y + c*Z of the placement frame.
func (p *placement) combine(a, b, c float64) vec3.T {
	x := p.frame.X.Scaled(a)
	y := p.frame.Y.Scaled(b)
	z := p.frame.Z.Scaled(c)

	v := vec3.Add(&x, &y)
	return vec3.Add(&v, &z)
}
