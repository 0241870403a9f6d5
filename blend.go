package birail

import (
	"math"
	"sort"

	"github.com/ungerik/go3d/float64/vec3"
)

// BlendFunc remaps the raw blend fraction of a station before it is used to
// pick the two profiles it interpolates. Input and output are nominally in
// [0, 1] but neither is clamped.
type BlendFunc func(f float64) float64

// Identity is the BlendFunc that leaves fractions unchanged.
func Identity(f float64) float64 {
	return f
}

// Knot is one control point of a piecewise-linear BlendFunc.
type Knot struct {
	X, Y float64
}

// PiecewiseLinear builds a BlendFunc interpolating linearly between knots,
// holding the end values outside the knots' X range. Knots are sorted by
// X; at least one is required. The usual remap is four knots, e.g.
//
//	birail.PiecewiseLinear(
//		birail.Knot{0, 0}, birail.Knot{0.3, 0.1},
//		birail.Knot{0.7, 0.9}, birail.Knot{1, 1},
//	)
func PiecewiseLinear(knots ...Knot) (BlendFunc, error) {
	if len(knots) == 0 {
		return nil, NewError(ErrCodeInvalidParameter, "piecewise-linear blend needs at least one knot")
	}
	for i, k := range knots {
		if math.IsNaN(k.X) || math.IsNaN(k.Y) {
			return nil, NewError(ErrCodeInvalidParameter, "blend knot %d is NaN", i)
		}
	}

	sorted := append([]Knot(nil), knots...)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].X < sorted[j].X })

	return func(f float64) float64 {
		if f <= sorted[0].X {
			return sorted[0].Y
		}
		last := sorted[len(sorted)-1]
		if f >= last.X {
			return last.Y
		}

		i := sort.Search(len(sorted), func(i int) bool { return sorted[i].X > f })
		a, b := sorted[i-1], sorted[i]
		if b.X-a.X <= 0 {
			return b.Y
		}
		t := (f - a.X) / (b.X - a.X)
		return a.Y + t*(b.Y-a.Y)
	}, nil
}

// Lerp interpolates two curves point for point, t = 0 yields a and t = 1
// yields b. t is not clamped, so values outside [0, 1] extrapolate. The
// curves must have the same number of points; the result takes a's cyclic
// flag.
func Lerp(a, b *Curve, t float64) (*Curve, error) {
	if a.Len() != b.Len() {
		return nil, NewError(ErrCodeInvalidParameter,
			"cannot blend curves with %d and %d points", a.Len(), b.Len())
	}

	blended := &Curve{points: make([]vec3.T, a.Len()), cyclic: a.cyclic}
	for i := range blended.points {
		blended.points[i] = vec3.Interpolate(&a.points[i], &b.points[i], t)
	}

	if len(a.tilt) > 0 || len(b.tilt) > 0 {
		blended.tilt = make([]float64, a.Len())
		for i := range blended.tilt {
			blended.tilt[i] = (1-t)*a.Tilt(i) + t*b.Tilt(i)
		}
	}

	return blended, nil
}
