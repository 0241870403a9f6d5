package birail

import (
	. "github.com/loftworks/birail/internal"
	"github.com/ungerik/go3d/float64/vec3"
)

// CurvePoint is a point on a curve together with its arc-length fraction.
type CurvePoint struct {
	T  float64
	Pt vec3.T
}

// Find the closest point on a segment
//
// **params**
// + point to project
// + first point of segment
// + second point of segment
// + first param of segment
// + second param of segment
//
// **returns**
// + the closest point and its parameter, interpolated between t0 and t1
func segmentClosestPoint(pt, segpt0, segpt1 *vec3.T, t0, t1 float64) CurvePoint {
	dif := vec3.Sub(segpt1, segpt0)
	l := dif.Length()

	if l < Epsilon {
		return CurvePoint{t0, *segpt0}
	}

	o := segpt0
	r := dif.Normalize()
	o2pt := vec3.Sub(pt, o)
	do2ptr := vec3.Dot(&o2pt, r)

	if do2ptr < 0 {
		return CurvePoint{t0, *segpt0}
	} else if do2ptr > l {
		return CurvePoint{t1, *segpt1}
	}

	return CurvePoint{
		t0 + (t1-t0)*do2ptr/l,
		vec3.Add(o, r.Scale(do2ptr)),
	}
}

// ClosestPoint finds the point of the curve nearest to p by testing every
// segment.
//
// **returns**
// + the closest point and its arc-length fraction in [0, 1]
func (this *Curve) ClosestPoint(p vec3.T) CurvePoint {
	cum := this.cumulativeLengths()
	total := cum[len(cum)-1]
	if total < Epsilon {
		return CurvePoint{0, this.points[0]}
	}

	best := CurvePoint{0, this.points[0]}
	bestDist := vec3.SquareDistance(&p, &best.Pt)

	for i := 0; i < len(cum)-1; i++ {
		a, b := this.Point(i), this.Point(i+1)
		cp := segmentClosestPoint(&p, &a, &b, cum[i]/total, cum[i+1]/total)

		if d := vec3.SquareDistance(&p, &cp.Pt); d < bestDist {
			best, bestDist = cp, d
		}
	}

	return best
}

// IsLinear reports whether every point lies within tol of the line through
// the first and last points. A curve whose ends coincide is linear only if
// all of its points lie within tol of its first point.
func (this *Curve) IsLinear(tol float64) bool {
	first, last := this.points[0], this.points[len(this.points)-1]
	dir := vec3.Sub(&last, &first)

	if dir.Length() < Tolerance {
		for i := range this.points {
			if vec3.Distance(&first, &this.points[i]) > tol {
				return false
			}
		}
		return true
	}

	ray := Ray{Origin: first, Dir: *dir.Normalize()}
	for i := range this.points {
		if ray.DistToPoint(this.points[i]) > tol {
			return false
		}
	}

	return true
}
