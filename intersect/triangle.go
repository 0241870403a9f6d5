package intersect

import (
	"math"

	"github.com/loftworks/birail"
	. "github.com/loftworks/birail/internal"

	"github.com/ungerik/go3d/float64/vec3"
)

// Get min coordinate on an axis
//
// **params**
// + the mesh points
// + the triangle
// + index of the axis to test - 0 for x, 1 for y, 2 for z
//
// **returns**
// + the minimum coordinate
func minCoordOnAxis(points []vec3.T, tri *birail.Tri, axis int) float64 {
	min := math.Inf(1)

	for _, iPt := range tri {
		if coord := points[iPt][axis]; coord < min {
			min = coord
		}
	}

	return min
}

// Get triangle normal
//
// **returns**
// + the unit normal, or the zero vector for a degenerate triangle
func TriangleNormal(points []vec3.T, tri *birail.Tri) vec3.T {
	v0 := points[tri[0]]
	v1 := points[tri[1]]
	v2 := points[tri[2]]

	v1.Sub(&v0)
	v2.Sub(&v0)
	n := vec3.Cross(&v1, &v2)
	if n.Length() < Epsilon {
		return vec3.Zero
	}

	return *n.Normalize()
}

func TriangleCentroid(points []vec3.T, tri *birail.Tri) vec3.T {
	var centroid vec3.T
	for _, iPt := range tri {
		centroid.Add(&points[iPt])
	}

	return centroid.Scaled(1.0 / 3)
}

// triangleClosestPoint finds the point of triangle p0 p1 p2 nearest to p
// and its barycentric weights along the edges p0p1 (s) and p0p2 (t).
func triangleClosestPoint(p, p0, p1, p2 *vec3.T) (pt vec3.T, s, t float64) {
	e0 := vec3.Sub(p1, p0)
	e1 := vec3.Sub(p2, p0)
	w := vec3.Sub(p, p0)

	a := vec3.Dot(&e0, &e0)
	b := vec3.Dot(&e0, &e1)
	d := vec3.Dot(&e1, &e1)

	s, t, ok := Mat2Solve(a, b, b, d, vec3.Dot(&e0, &w), vec3.Dot(&e1, &w))
	if ok && s >= 0 && t >= 0 && s+t <= 1 {
		return barycentric(p0, &e0, &e1, s, t), s, t
	}

	// the nearest point lies on an edge
	best := math.Inf(1)
	for _, edge := range [3]struct {
		a, b           *vec3.T
		s0, t0, s1, t1 float64
	}{
		{p0, p1, 0, 0, 1, 0},
		{p1, p2, 1, 0, 0, 1},
		{p2, p0, 0, 1, 0, 0},
	} {
		q, f := segmentClosestPoint(p, edge.a, edge.b)
		if dist := vec3.SquareDistance(p, &q); dist < best {
			best = dist
			pt = q
			s = edge.s0 + f*(edge.s1-edge.s0)
			t = edge.t0 + f*(edge.t1-edge.t0)
		}
	}

	return pt, s, t
}

func barycentric(p0, e0, e1 *vec3.T, s, t float64) vec3.T {
	a := e0.Scaled(s)
	b := e1.Scaled(t)
	pt := vec3.Add(p0, &a)
	return vec3.Add(&pt, &b)
}

// segmentClosestPoint returns the point of segment ab nearest to p and
// its fraction along the segment.
func segmentClosestPoint(p, a, b *vec3.T) (vec3.T, float64) {
	dir := vec3.Sub(b, a)
	l := dir.Length()
	if l < Epsilon {
		return *a, 0
	}

	o2p := vec3.Sub(p, a)
	f := math.Max(0, math.Min(1, vec3.Dot(&o2p, &dir)/(l*l)))

	return vec3.Interpolate(a, b, f), f
}

// rayTriangle intersects origin + r*dir with triangle p0 p1 p2, returning
// the ray parameter and barycentric weights of the hit. Rays parallel to
// the triangle miss.
func rayTriangle(origin, dir, p0, p1, p2 *vec3.T) (r, s, t float64, ok bool) {
	e0 := vec3.Sub(p1, p0)
	e1 := vec3.Sub(p2, p0)

	h := vec3.Cross(dir, &e1)
	det := vec3.Dot(&e0, &h)
	if math.Abs(det) < Epsilon {
		return 0, 0, 0, false
	}

	w := vec3.Sub(origin, p0)
	s = vec3.Dot(&w, &h) / det
	if s < 0 || s > 1 {
		return 0, 0, 0, false
	}

	q := vec3.Cross(&w, &e0)
	t = vec3.Dot(dir, &q) / det
	if t < 0 || s+t > 1 {
		return 0, 0, 0, false
	}

	r = vec3.Dot(&e1, &q) / det
	return r, s, t, r >= 0
}
