package intersect

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ungerik/go3d/float64/vec3"
)

func box(lo, hi vec3.T) *BoundingBox {
	return new(BoundingBox).Add(&lo).Add(&hi)
}

func TestBoundingBoxAdd(t *testing.T) {
	var bb BoundingBox
	assert.False(t, bb.Initialized())

	bb.AddRange([]vec3.T{{1, 5, -2}, {-3, 0, 4}, {0, 2, 0}})
	assert.True(t, bb.Initialized())
	assert.Equal(t, vec3.T{-3, 0, -2}, bb.Min)
	assert.Equal(t, vec3.T{1, 5, 4}, bb.Max)
	assert.Equal(t, 2, bb.LongestAxis())
	assert.Equal(t, 4.0, bb.AxisLength(0))
	assert.Equal(t, 0.0, bb.AxisLength(3))

	bb.Clear()
	assert.False(t, bb.Contains(&vec3.Zero, 0))
}

func TestBoundingBoxIntersect(t *testing.T) {
	a := box(vec3.T{0, 0, 0}, vec3.T{2, 2, 2})
	b := box(vec3.T{1, 1, 1}, vec3.T{3, 3, 3})
	c := box(vec3.T{5, 5, 5}, vec3.T{6, 6, 6})

	assert.True(t, a.Intersects(b, 0))
	assert.False(t, a.Intersects(c, 0))
	assert.True(t, a.Contains(&vec3.T{1, 1, 1}, 0))
	assert.True(t, a.Contains(&vec3.T{2.00001, 1, 1}, -1))
	assert.False(t, a.Contains(&vec3.T{2.1, 1, 1}, 0))

	i := a.Intersect(b, 0)
	require.NotNil(t, i)
	assert.Equal(t, vec3.T{1, 1, 1}, i.Min)
	assert.Equal(t, vec3.T{2, 2, 2}, i.Max)
	assert.Nil(t, a.Intersect(c, 0))
}

func TestBoundingBoxSquareDistance(t *testing.T) {
	a := box(vec3.T{0, 0, 0}, vec3.T{1, 1, 1})

	assert.Equal(t, 0.0, a.SquareDistance(&vec3.T{0.5, 0.5, 0.5}))
	assert.Equal(t, 4.0, a.SquareDistance(&vec3.T{0.5, 3, 0.5}))
	assert.Equal(t, 3.0, a.SquareDistance(&vec3.T{-1, -1, 2}))

	var empty BoundingBox
	assert.True(t, math.IsInf(empty.SquareDistance(&vec3.Zero), 1))
}

func TestBoundingBoxRayEntry(t *testing.T) {
	a := box(vec3.T{0, 0, 0}, vec3.T{1, 1, 1})

	entry, ok := a.RayEntry(&vec3.T{0.5, 0.5, 5}, &vec3.T{0, 0, -1})
	assert.True(t, ok)
	assert.InDelta(t, 4, entry, 1e-12)

	entry, ok = a.RayEntry(&vec3.T{0.5, 0.5, 0.5}, &vec3.T{1, 0, 0})
	assert.True(t, ok)
	assert.Equal(t, 0.0, entry)

	_, ok = a.RayEntry(&vec3.T{0.5, 0.5, 5}, &vec3.T{0, 0, 1})
	assert.False(t, ok)

	_, ok = a.RayEntry(&vec3.T{3, 0.5, 5}, &vec3.T{0, 0, -1})
	assert.False(t, ok)
}
