package birail

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ungerik/go3d/float64/vec3"
)

func TestIdentity(t *testing.T) {
	for _, f := range []float64{-1, 0, 0.25, 1, 3} {
		assert.Equal(t, f, Identity(f))
	}
}

func TestPiecewiseLinear(t *testing.T) {
	// knots deliberately out of order
	blend, err := PiecewiseLinear(Knot{0.7, 0.9}, Knot{0, 0}, Knot{1, 1}, Knot{0.3, 0.1})
	require.NoError(t, err)

	tests := []struct {
		f, want float64
	}{
		{-1, 0},
		{0, 0},
		{0.15, 0.05},
		{0.3, 0.1},
		{0.5, 0.5},
		{0.85, 0.95},
		{1, 1},
		{2, 1},
	}
	for _, tt := range tests {
		assert.InDelta(t, tt.want, blend(tt.f), 1e-12, "blend(%g)", tt.f)
	}
}

func TestPiecewiseLinearErrors(t *testing.T) {
	_, err := PiecewiseLinear()
	assert.True(t, Is(err, ErrCodeInvalidParameter))

	_, err = PiecewiseLinear(Knot{0, math.NaN()})
	assert.True(t, Is(err, ErrCodeInvalidParameter))

	constant, err := PiecewiseLinear(Knot{0.5, 0.25})
	require.NoError(t, err)
	assert.Equal(t, 0.25, constant(0))
	assert.Equal(t, 0.25, constant(1))
}

func TestLerp(t *testing.T) {
	a := NewCurveUnchecked([]vec3.T{{0, 0, 0}, {2, 0, 0}}, []float64{0, 1}, false)
	b := NewCurveUnchecked([]vec3.T{{0, 2, 0}, {2, 2, 0}}, nil, true)

	mid, err := Lerp(a, b, 0.5)
	require.NoError(t, err)
	diff(t, []vec3.T{{0, 1, 0}, {2, 1, 0}}, mid.Points(), approx)
	diff(t, []float64{0, 0.5}, mid.Tilts(), approx)
	assert.False(t, mid.Cyclic())

	start, err := Lerp(a, b, 0)
	require.NoError(t, err)
	assert.Equal(t, a.Points(), start.Points())

	beyond, err := Lerp(a, b, 2)
	require.NoError(t, err)
	diff(t, vec3.T{0, 4, 0}, beyond.Point(0), approx)

	short := NewCurveUnchecked([]vec3.T{{0, 0, 0}}, nil, false)
	_, err = Lerp(a, short, 0.5)
	assert.True(t, Is(err, ErrCodeInvalidParameter))
}
