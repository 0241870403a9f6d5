package birail

import (
	"math"
	"sort"

	. "github.com/loftworks/birail/internal"

	"github.com/ungerik/go3d/float64/mat4"
	"github.com/ungerik/go3d/float64/vec3"
)

// Curve is an ordered sequence of sampled points with an optional per-point
// tilt. A cyclic curve is closed: its last point connects back to the first
// and index arithmetic wraps.
//
// Curve is immutable to the client; every operation returns a new Curve.
type Curve struct {
	// points in order of increasing arc length
	points []vec3.T

	// twist, in radians, applied to a frame transported along the curve;
	// either empty or one value per point
	tilt []float64

	// whether the last point connects back to the first
	cyclic bool
}

// NewCurve validates and copies points into a new Curve.
func NewCurve(points []vec3.T, cyclic bool) (*Curve, error) {
	return NewTiltedCurve(points, nil, cyclic)
}

// NewTiltedCurve is NewCurve with a tilt value per point.
func NewTiltedCurve(points []vec3.T, tilt []float64, cyclic bool) (*Curve, error) {
	this := NewCurveUnchecked(points, tilt, cyclic)
	if err := this.check(); err != nil {
		return nil, err
	}

	return this, nil
}

// NewCurveUnchecked copies points and tilt into a new Curve without
// validating them.
func NewCurveUnchecked(points []vec3.T, tilt []float64, cyclic bool) *Curve {
	this := &Curve{
		points: append([]vec3.T(nil), points...),
		cyclic: cyclic,
	}
	if len(tilt) > 0 {
		this.tilt = append([]float64(nil), tilt...)
	}

	return this
}

// Validate a curve
//
// **returns**
// + an InvalidParameter error if the curve has no points, a non-finite
// coordinate, or a tilt slice that does not match the points
func (this *Curve) check() error {
	if len(this.points) == 0 {
		return NewError(ErrCodeInvalidParameter, "curve must have at least one point")
	}

	for i, pt := range this.points {
		for _, c := range pt {
			if math.IsNaN(c) || math.IsInf(c, 0) {
				return NewError(ErrCodeInvalidParameter, "curve point %d is not finite", i)
			}
		}
	}

	if len(this.tilt) != 0 && len(this.tilt) != len(this.points) {
		return NewError(ErrCodeInvalidParameter,
			"curve has %d tilt values for %d points", len(this.tilt), len(this.points))
	}

	return nil
}

func (this *Curve) Len() int {
	return len(this.points)
}

func (this *Curve) Cyclic() bool {
	return this.cyclic
}

func (this *Curve) Points() []vec3.T {
	return append([]vec3.T(nil), this.points...)
}

// Tilts returns the per-point tilt, or nil if the curve carries none.
func (this *Curve) Tilts() []float64 {
	if len(this.tilt) == 0 {
		return nil
	}
	return append([]float64(nil), this.tilt...)
}

// index maps any integer onto a valid point index: modulo the length for
// cyclic curves, clamped to the ends otherwise.
func (this *Curve) index(i int) int {
	n := len(this.points)
	if this.cyclic {
		i %= n
		if i < 0 {
			i += n
		}
		return i
	}

	if i < 0 {
		return 0
	}
	if i > n-1 {
		return n - 1
	}
	return i
}

// Point returns the i-th point. Out of range indices wrap on cyclic curves
// and clamp on open ones.
func (this *Curve) Point(i int) vec3.T {
	return this.points[this.index(i)]
}

// Tilt returns the tilt at the i-th point, 0 if the curve carries none.
func (this *Curve) Tilt(i int) float64 {
	if len(this.tilt) == 0 {
		return 0
	}
	return this.tilt[this.index(i)]
}

func (this *Curve) numSegments() int {
	n := len(this.points)
	if n < 2 {
		return 0
	}
	if this.cyclic {
		return n
	}
	return n - 1
}

// SegmentLengths returns the length of every segment, including the closing
// segment of a cyclic curve.
func (this *Curve) SegmentLengths() []float64 {
	lengths := make([]float64, this.numSegments())
	for i := range lengths {
		a, b := this.Point(i), this.Point(i+1)
		lengths[i] = vec3.Distance(&a, &b)
	}

	return lengths
}

func (this *Curve) cumulativeLengths() []float64 {
	lengths := this.SegmentLengths()
	cum := make([]float64, len(lengths)+1)
	for i, l := range lengths {
		cum[i+1] = cum[i] + l
	}

	return cum
}

// Determine the arc length of the curve
//
// **returns**
// + The length of the curve, including the closing segment of a cyclic
// curve
func (this *Curve) Length() float64 {
	var total float64
	for _, l := range this.SegmentLengths() {
		total += l
	}

	return total
}

// Tangents returns a unit tangent per point: central differences inside
// the curve, one-sided differences at the ends of an open curve. Points
// where the difference vanishes get a zero tangent.
func (this *Curve) Tangents() []vec3.T {
	n := len(this.points)
	tangents := make([]vec3.T, n)
	if n < 2 {
		return tangents
	}

	for i := range tangents {
		prev, next := i-1, i+1
		if !this.cyclic {
			if prev < 0 {
				prev = 0
			}
			if next > n-1 {
				next = n - 1
			}
		}

		a, b := this.Point(prev), this.Point(next)
		t := vec3.Sub(&b, &a)
		if t.Length() > Epsilon {
			t.Normalize()
		} else {
			t = vec3.Zero
		}
		tangents[i] = t
	}

	return tangents
}

// Resample a curve to a number of points spaced uniformly in arc length
//
// **params**
// + the number of points of the result, at least 1
//
// **returns**
// + a new curve; an open curve keeps both of its end points, a cyclic
// curve gets n distinct points around its closed loop. Tilt is
// interpolated along with the positions. A curve of zero length resamples
// to n copies of its first point.
func (this *Curve) Resample(n int) *Curve {
	if n < 1 {
		n = 1
	}

	cum := this.cumulativeLengths()
	total := cum[len(cum)-1]

	resampled := &Curve{points: make([]vec3.T, n), cyclic: this.cyclic}
	if len(this.tilt) > 0 {
		resampled.tilt = make([]float64, n)
	}

	if total < Epsilon {
		for i := range resampled.points {
			resampled.points[i] = this.points[0]
			if resampled.tilt != nil {
				resampled.tilt[i] = this.tilt[0]
			}
		}
		return resampled
	}

	var step float64
	if this.cyclic {
		step = total / float64(n)
	} else if n > 1 {
		step = total / float64(n-1)
	}

	for i := range resampled.points {
		pt, tilt := this.atLength(cum, float64(i)*step)
		resampled.points[i] = pt
		if resampled.tilt != nil {
			resampled.tilt[i] = tilt
		}
	}

	if !this.cyclic && n > 1 {
		resampled.points[n-1] = this.points[len(this.points)-1]
		if resampled.tilt != nil {
			resampled.tilt[n-1] = this.tilt[len(this.tilt)-1]
		}
	}

	return resampled
}

// SampleAt returns the point and tilt at a fraction t of the arc length,
// t is clamped to [0, 1].
func (this *Curve) SampleAt(t float64) (vec3.T, float64) {
	cum := this.cumulativeLengths()
	total := cum[len(cum)-1]
	if total < Epsilon {
		return this.points[0], this.Tilt(0)
	}

	t = math.Max(0, math.Min(1, t))
	return this.atLength(cum, t*total)
}

// atLength evaluates the polyline at arc length l given its cumulative
// segment lengths.
func (this *Curve) atLength(cum []float64, l float64) (vec3.T, float64) {
	segs := len(cum) - 1
	if segs == 0 {
		return this.points[0], this.Tilt(0)
	}

	seg := sort.SearchFloat64s(cum, l) - 1
	if seg < 0 {
		seg = 0
	}
	if seg > segs-1 {
		seg = segs - 1
	}

	var t float64
	if segLen := cum[seg+1] - cum[seg]; segLen > Epsilon {
		t = (l - cum[seg]) / segLen
	}
	t = math.Max(0, math.Min(1, t))

	a, b := this.Point(seg), this.Point(seg+1)
	pt := vec3.Interpolate(&a, &b, t)
	tilt := (1-t)*this.Tilt(seg) + t*this.Tilt(seg+1)

	return pt, tilt
}

// Transform applies an affine transform to every point.
func (this *Curve) Transform(mat *mat4.T) *Curve {
	pts := make([]vec3.T, len(this.points))
	for i := range pts {
		pts[i] = mat.MulVec3(&this.points[i])
	}

	return &Curve{pts, this.Tilts(), this.cyclic}
}

// Reverse returns the curve traversed in the opposite direction.
func (this *Curve) Reverse() *Curve {
	n := len(this.points)
	reversed := &Curve{points: make([]vec3.T, n), cyclic: this.cyclic}
	if len(this.tilt) > 0 {
		reversed.tilt = make([]float64, n)
	}

	for i := range this.points {
		reversed.points[n-1-i] = this.points[i]
		if reversed.tilt != nil {
			reversed.tilt[n-1-i] = this.tilt[i]
		}
	}

	return reversed
}

// Centroid returns the mean of the points.
func (this *Curve) Centroid() vec3.T {
	var c vec3.T
	for i := range this.points {
		c.Add(&this.points[i])
	}

	return c.Scaled(1 / float64(len(this.points)))
}

// Span returns the vector from the first to the last point.
func (this *Curve) Span() vec3.T {
	first, last := this.points[0], this.points[len(this.points)-1]
	return vec3.Sub(&last, &first)
}

// Normal estimates the unit normal of the plane the curve lies in with
// Newell's method, treating the curve as a closed polygon. Collinear or
// degenerate curves yield the zero vector.
func (this *Curve) Normal() vec3.T {
	n := len(this.points)
	if n < 3 {
		return vec3.Zero
	}

	c := this.Centroid()
	var normal vec3.T
	for i := 0; i < n; i++ {
		a := vec3.Sub(&this.points[i], &c)
		b := vec3.Sub(&this.points[(i+1)%n], &c)
		cross := vec3.Cross(&a, &b)
		normal.Add(&cross)
	}

	if normal.Length() < Epsilon {
		return vec3.Zero
	}

	return *normal.Normalize()
}
