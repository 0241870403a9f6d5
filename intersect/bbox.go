package intersect

import (
	"math"

	"github.com/ungerik/go3d/float64/vec3"
)

const BoundingBoxTolerance = 1e-4

// The zero value for BoundingBox is ready to use
type BoundingBox struct {
	Min, Max    vec3.T
	initialized bool
}

// Adds a point to the bounding box, expanding the bounding box if the point is outside of it.
// If the bounding box is not initialized, this method has that side effect.
//
// **returns**
// + This BoundingBox for chaining
func (this *BoundingBox) Add(point *vec3.T) *BoundingBox {
	if !this.initialized {
		this.Min, this.Max = *point, *point
		this.initialized = true

		return this
	}

	for i, val := range point {
		this.Max[i] = math.Max(this.Max[i], val)
		this.Min[i] = math.Min(this.Min[i], val)
	}

	return this
}

// AddRange adds every point in points.
func (this *BoundingBox) AddRange(points []vec3.T) *BoundingBox {
	for i := range points {
		this.Add(&points[i])
	}

	return this
}

func (this *BoundingBox) Initialized() bool {
	return this.initialized
}

// Determines if point is contained in the bounding box
//
// **params**
// + the point
// + the tolerance, negative for BoundingBoxTolerance
func (this *BoundingBox) Contains(point *vec3.T, tol float64) bool {
	if !this.initialized {
		return false
	}

	return this.Intersects(new(BoundingBox).Add(point), tol)
}

// Determines if two intervals on the real number line intersect
//
// **params**
// + Beginning of first interval
// + End of first interval
// + Beginning of second interval
// + End of second interval
//
// **returns**
// + true if the two intervals overlap, otherwise false
func intervalsOverlap(a1, a2, b1, b2 float64, tol float64) bool {
	if tol < 0 {
		tol = BoundingBoxTolerance
	}

	x1, x2 := math.Min(a1, a2)-tol, math.Max(a1, a2)+tol
	y1, y2 := math.Min(b1, b2)-tol, math.Max(b1, b2)+tol

	return x1 <= y2 && y1 <= x2
}

// Determines if this bounding box intersects with another
//
// **returns**
// + true if the two bounding boxes intersect, otherwise false
func (this *BoundingBox) Intersects(bb *BoundingBox, tol float64) bool {
	if !this.initialized || !bb.initialized {
		return false
	}

	for i := range this.Min {
		if !intervalsOverlap(this.Min[i], this.Max[i], bb.Min[i], bb.Max[i], tol) {
			return false
		}
	}

	return true
}

// Clear the bounding box, leaving it in an uninitialized state. Call Add or AddRange to
// initialize it again.
func (this *BoundingBox) Clear() *BoundingBox {
	this.initialized = false
	return this
}

// Get longest axis of bounding box
//
// **returns**
// + Index of longest axis
func (this *BoundingBox) LongestAxis() int {
	id, max := 0, 0.0

	for i := range this.Min {
		if l := this.AxisLength(i); l > max {
			max = l
			id = i
		}
	}

	return id
}

// Get length of given axis.
//
// **returns**
// + Length of the given axis. If axis is out of bounds, returns 0.
func (this *BoundingBox) AxisLength(i int) float64 {
	if i < 0 || i > len(this.Min)-1 {
		return 0
	}
	return math.Abs(this.Min[i] - this.Max[i])
}

// Compute the boolean intersection of this with another axis-aligned bounding box.
//
// **returns**
// + The bounding box formed by the intersection or nil if there is no intersection.
func (this *BoundingBox) Intersect(bb *BoundingBox, tol float64) *BoundingBox {
	if !this.Intersects(bb, tol) {
		return nil
	}

	var minbb, maxbb vec3.T
	for i := range this.Min {
		maxbb[i] = math.Min(this.Max[i], bb.Max[i])
		minbb[i] = math.Max(this.Min[i], bb.Min[i])
	}

	return new(BoundingBox).Add(&minbb).Add(&maxbb)
}

// SquareDistance returns the squared distance from point to the nearest
// point of the box, 0 when the point is inside. An uninitialized box is
// infinitely far away.
func (this *BoundingBox) SquareDistance(point *vec3.T) float64 {
	if !this.initialized {
		return math.Inf(1)
	}

	var d float64
	for i, val := range point {
		switch {
		case val < this.Min[i]:
			d += (this.Min[i] - val) * (this.Min[i] - val)
		case val > this.Max[i]:
			d += (val - this.Max[i]) * (val - this.Max[i])
		}
	}

	return d
}

// RayEntry returns the ray parameter at which origin + t*dir enters the
// box, clamped to t >= 0, and whether the ray meets the box at all.
func (this *BoundingBox) RayEntry(origin, dir *vec3.T) (float64, bool) {
	if !this.initialized {
		return 0, false
	}

	tmin, tmax := 0.0, math.Inf(1)
	for i := range origin {
		if math.Abs(dir[i]) < 1e-300 {
			if origin[i] < this.Min[i] || origin[i] > this.Max[i] {
				return 0, false
			}
			continue
		}

		t0 := (this.Min[i] - origin[i]) / dir[i]
		t1 := (this.Max[i] - origin[i]) / dir[i]
		if t0 > t1 {
			t0, t1 = t1, t0
		}
		tmin, tmax = math.Max(tmin, t0), math.Min(tmax, t1)
		if tmin > tmax {
			return 0, false
		}
	}

	return tmin, true
}
