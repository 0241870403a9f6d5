package loft

import (
	"bytes"
	"log/slog"
	"math"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ungerik/go3d/float64/vec3"

	"github.com/loftworks/birail"
	"github.com/loftworks/birail/shape"
)

func TestOptionsValidate(t *testing.T) {
	_, err := New(DefaultOptions())
	require.NoError(t, err)

	_, err = New(Options{})
	assert.True(t, birail.Is(err, birail.ErrCodeInvalidParameter), "zero options need axes")

	tests := map[string]func(*Options){
		"negative smoothing":        func(o *Options) { o.Smoothing = -1 },
		"negative width window":     func(o *Options) { o.WidthWindow = -2 },
		"negative workers":          func(o *Options) { o.Workers = -1 },
		"negative reference":        func(o *Options) { o.ReferenceStation = -1 },
		"negative orient tolerance": func(o *Options) { o.OrientTolerance = -0.1 },
		"nan orient tolerance":      func(o *Options) { o.OrientTolerance = math.NaN() },
		"bad uv mode":               func(o *Options) { o.UVMode = UVMode(5) },
		"bad sweep spacing":         func(o *Options) { o.Sweep = Axis{Mode: Spacing} },
		"bad profile resolution":    func(o *Options) { o.Profile.Resolution = 1 },
	}
	for name, mutate := range tests {
		t.Run(name, func(t *testing.T) {
			opts := DefaultOptions()
			mutate(&opts)
			_, err := New(opts)
			assert.True(t, birail.Is(err, birail.ErrCodeInvalidParameter), "got %v", err)
		})
	}
}

func TestNewFillsDefaults(t *testing.T) {
	opts := resolution(4, 4)
	opts.Blend = nil
	opts.OrientTolerance = 0

	l, err := New(opts)
	require.NoError(t, err)
	assert.NotNil(t, l.Options().Blend)
	assert.InDelta(t, math.Pi/6, l.Options().OrientTolerance, 1e-12)
}

func TestBuildInvalidInput(t *testing.T) {
	l, err := New(resolution(5, 5))
	require.NoError(t, err)

	rail := line(0, 0, 0, 0, 0, 1)
	_, err = l.Build(nil, rail, []*birail.Curve{circle(1, 5)})
	assert.True(t, birail.Is(err, birail.ErrCodeInvalidParameter))

	_, err = l.Build(rail, rail, nil)
	assert.True(t, birail.Is(err, birail.ErrCodeInvalidParameter))

	_, err = l.Build(rail, rail, []*birail.Curve{circle(1, 5), circle(1, 6)})
	assert.True(t, birail.Is(err, birail.ErrCodeInvalidParameter))
}

func TestTubeScenario(t *testing.T) {
	opts := DefaultOptions()
	opts.Sweep = Axis{Mode: Resolution, Resolution: 11}
	opts.Profile = Axis{Mode: Resolution, Resolution: 12}

	res, err := BiRail(
		line(-0.5, 0, 0, -0.5, 0, 10),
		line(0.5, 0, 0, 0.5, 0, 10),
		[]*birail.Curve{circle(0.1, 12)},
		opts,
	)
	require.NoError(t, err)
	assert.Empty(t, res.Warnings)

	mesh := res.Mesh
	assert.Equal(t, 11, mesh.Rows)
	assert.Equal(t, 12, mesh.Cols)
	assert.Len(t, mesh.Points, 132)
	assert.Len(t, mesh.Quads, 10*12)
	assert.False(t, mesh.CyclicU)
	assert.True(t, mesh.CyclicV)
	require.Len(t, res.Profiles, 11)
	require.Len(t, res.UVs, 132)

	for s := 0; s < mesh.Rows; s++ {
		center := vec3.T{0, 0, float64(s)}
		for k := 0; k < mesh.Cols; k++ {
			p := mesh.Points[mesh.Index(s, k)]
			assert.InDelta(t, 0.1, vec3.Distance(&center, &p), 1e-9, "vertex (%d, %d)", s, k)
			assert.InDelta(t, float64(s), p[2], 1e-9)
			assert.InDelta(t, float64(s)/10, res.UVs[mesh.Index(s, k)][0], 1e-12)
		}

		st := res.Stations[s]
		assert.InDelta(t, 1.0, st.SpanScale, 1e-12)
		assert.InDelta(t, 1.0, st.WidthScale, 1e-12)
		assert.False(t, st.Degenerate)
	}
}

func TestTwoEllipseScenario(t *testing.T) {
	narrow, wide := ellipse(0.5, 0.1, 16), ellipse(0.5, 0.4, 16)

	opts := resolution(5, 16)
	res, err := BiRail(line(-0.5, 0, 0, -0.5, 0, 4), line(0.5, 0, 0, 0.5, 0, 4), []*birail.Curve{narrow, wide}, opts)
	require.NoError(t, err)
	require.Len(t, res.Stations, 5)

	diff(t, narrow.Points(), res.Stations[0].Profile.Points(), approx)
	diff(t, wide.Points(), res.Stations[4].Profile.Points(), approx)

	mid, err := birail.Lerp(narrow, wide, 0.5)
	require.NoError(t, err)
	diff(t, mid.Points(), res.Stations[2].Profile.Points(), approx)

	// the wide ellipse reaches 0.4 across the sweep plane at the last station
	var reach float64
	for _, p := range res.Profiles[4].Points() {
		reach = math.Max(reach, math.Abs(p[1]))
	}
	assert.InDelta(t, 0.4, reach, 1e-9)
}

func TestCyclicSweep(t *testing.T) {
	inner := shape.Circle(&vec3.Zero, &vec3.UnitX, &vec3.UnitY, 2, 64)
	outer := shape.Circle(&vec3.Zero, &vec3.UnitX, &vec3.UnitY, 3, 64)

	opts := resolution(16, 8)
	res, err := BiRail(inner, outer, []*birail.Curve{circle(0.25, 8)}, opts)
	require.NoError(t, err)

	mesh := res.Mesh
	assert.True(t, mesh.CyclicU)
	assert.True(t, mesh.CyclicV)
	assert.Len(t, mesh.Quads, 16*8)
	assert.InDelta(t, 15.0/16, res.UVs[mesh.Index(15, 0)][0], 1e-12)

	for _, st := range res.Stations {
		assert.InDelta(t, 1.0, st.Gap, 1e-9)
		assert.InDelta(t, 1.0, st.WidthScale, 1e-9)
		assert.InDelta(t, 0.0, vec3.Dot(&st.Frame.X, &st.Frame.Z), 1e-9)
	}
}

func TestSpacingAxes(t *testing.T) {
	opts := DefaultOptions()
	opts.Sweep = Axis{Mode: Spacing, Spacing: 2}
	opts.Profile = Axis{Mode: Spacing, Spacing: 0.25}

	res, err := BiRail(line(0, 0, 0, 0, 0, 10), line(1, 0, 0, 1, 0, 10), []*birail.Curve{line(-0.5, 0, 0, 0.5, 0, 0)}, opts)
	require.NoError(t, err)

	assert.Equal(t, 5, res.Mesh.Rows)
	assert.Equal(t, 4, res.Mesh.Cols)
}

func TestDegenerateStation(t *testing.T) {
	railB := birail.NewCurveUnchecked([]vec3.T{{1, 0, 0}, {0, 0, 5}, {1, 0, 10}}, nil, false)

	res, err := BiRail(line(0, 0, 0, 0, 0, 10), railB, []*birail.Curve{line(-0.5, 0, 0, 0.5, 0, 0)}, resolution(11, 3))
	require.NoError(t, err)

	require.Len(t, res.Warnings, 1)
	assert.True(t, birail.Is(res.Warnings[0], birail.ErrCodeDegenerateGeometry))

	st := res.Stations[5]
	assert.True(t, st.Degenerate)
	assert.Equal(t, 1.0, st.SpanScale)
	assert.Equal(t, res.Stations[4].Frame, st.Frame)

	for _, p := range res.Mesh.Points {
		for _, c := range p {
			assert.False(t, math.IsNaN(c) || math.IsInf(c, 0))
		}
	}
}

func TestCollapsedRails(t *testing.T) {
	a := birail.NewCurveUnchecked([]vec3.T{{0, 0, 0}}, nil, false)
	b := birail.NewCurveUnchecked([]vec3.T{{2, 0, 0}}, nil, false)

	res, err := BiRail(a, b, []*birail.Curve{line(-0.5, 0, 0, 0.5, 0, 0)}, resolution(11, 3))
	require.NoError(t, err)

	require.NotEmpty(t, res.Warnings)
	assert.True(t, birail.Is(res.Warnings[0], birail.ErrCodeDegenerateGeometry))
	assert.Equal(t, 1, res.Mesh.Rows)
	assert.Empty(t, res.Mesh.Quads)
	require.Len(t, res.Stations, 1)
	diff(t, vec3.T{1, 0, 0}, res.Stations[0].Anchor, approx)
	// the gap at the only station is the reference, so the profile keeps its size
	assert.Equal(t, 1.0, res.Stations[0].SpanScale)
	diff(t, vec3.T{0.5, 0, 0}, res.Profiles[0].Point(0), approx)
	diff(t, vec3.T{1.5, 0, 0}, res.Profiles[0].Point(2), approx)
}

func TestBuildSmoothing(t *testing.T) {
	opts := resolution(11, 12)
	rails := [2]*birail.Curve{line(-0.5, 0, 0, -0.5, 0, 10), line(0.5, 0, 0, 0.5, 0, 10)}
	bumpy := birail.NewCurveUnchecked([]vec3.T{
		{-0.5, 0, 0}, {-0.3, 0.3, 0}, {-0.1, -0.2, 0}, {0.1, 0.4, 0}, {0.3, -0.1, 0}, {0.5, 0, 0},
	}, nil, false)

	raw, err := BiRail(rails[0], rails[1], []*birail.Curve{bumpy}, opts)
	require.NoError(t, err)

	opts.Smoothing = 3
	smoothed, err := BiRail(rails[0], rails[1], []*birail.Curve{bumpy}, opts)
	require.NoError(t, err)

	want, err := Smooth(raw.Mesh, 3, 0)
	require.NoError(t, err)
	diff(t, want.Points, smoothed.Mesh.Points, approx)

	// profiles follow the smoothed grid
	diff(t, smoothed.Mesh.Row(5).Points(), smoothed.Profiles[5].Points(), approx)
}

func TestLofterConcurrentBuilds(t *testing.T) {
	l, err := New(resolution(21, 12))
	require.NoError(t, err)

	railA, railB := line(-0.5, 0, 0, -0.5, 2, 10), line(0.5, 0, 0, 1, 0, 10)
	profiles := []*birail.Curve{circle(0.1, 12), ellipse(0.3, 0.1, 12)}

	want, err := l.Build(railA, railB, profiles)
	require.NoError(t, err)

	var wg sync.WaitGroup
	results := make([]*Result, 4)
	for i := range results {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results[i], _ = l.Build(railA, railB, profiles)
		}()
	}
	wg.Wait()

	for _, got := range results {
		require.NotNil(t, got)
		assert.Equal(t, want.Mesh.Points, got.Mesh.Points)
	}
}

func TestBuildLogsCounts(t *testing.T) {
	var buf bytes.Buffer
	birail.SetLogger(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))
	t.Cleanup(func() { birail.SetLogger(nil) })

	_, err := BiRail(line(0, 0, 0, 0, 0, 1), line(1, 0, 0, 1, 0, 1), []*birail.Curve{circle(0.1, 6)}, resolution(3, 6))
	require.NoError(t, err)

	assert.Contains(t, buf.String(), "stations=3")
	assert.Contains(t, buf.String(), "profilePoints=6")
}
