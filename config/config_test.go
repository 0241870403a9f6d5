package config

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/loftworks/birail"
	"github.com/loftworks/birail/loft"
)

const tubeTOML = `
name = "tube"

[rail_a]
shape = "line"
points = [[0, 0, 0], [0, 0, 10]]
samples = 11

[rail_b]
shape = "line"
points = [[0.2, 0, 0], [0.2, 0, 10]]
samples = 11

[[profiles]]
shape = "circle"
center = [0, 0, 0]
radius = 1
samples = 12

[loft]
smoothing = 2
width_window = 0
orient_tolerance = 45
uv_mode = "arclength"
blend = [[0, 0], [0.5, 0.25], [1, 1]]

[loft.sweep]
resolution = 11

[loft.profile]
spacing = 0.5
`

const tubeYAML = `
name: tube
rail_a:
  shape: line
  points: [[0, 0, 0], [0, 0, 10]]
  samples: 11
rail_b:
  shape: line
  points: [[0.2, 0, 0], [0.2, 0, 10]]
  samples: 11
profiles:
  - shape: circle
    center: [0, 0, 0]
    radius: 1
    samples: 12
loft:
  smoothing: 2
  width_window: 0
  orient_tolerance: 45
  uv_mode: arclength
  blend: [[0, 0], [0.5, 0.25], [1, 1]]
  sweep:
    resolution: 11
  profile:
    spacing: 0.5
`

func TestParse(t *testing.T) {
	for _, tt := range []struct {
		name   string
		data   string
		format Format
	}{
		{"toml", tubeTOML, TOML},
		{"yaml", tubeYAML, YAML},
	} {
		t.Run(tt.name, func(t *testing.T) {
			job, err := Parse([]byte(tt.data), tt.format)
			require.NoError(t, err)
			assert.Equal(t, "tube", job.Name)
			require.Len(t, job.Profiles, 1)

			railA, railB, profiles, err := job.Curves()
			require.NoError(t, err)
			assert.Equal(t, 11, railA.Len())
			assert.InDelta(t, 0.2, railB.Point(0)[0], 1e-12)
			assert.Equal(t, 12, profiles[0].Len())
			assert.True(t, profiles[0].Cyclic())

			opts, err := job.Options()
			require.NoError(t, err)
			assert.Equal(t, loft.Axis{Mode: loft.Resolution, Resolution: 11}, opts.Sweep)
			assert.Equal(t, loft.Axis{Mode: loft.Spacing, Spacing: 0.5, Resolution: 16}, opts.Profile)
			assert.Equal(t, 2, opts.Smoothing)
			assert.Equal(t, 0, opts.WidthWindow)
			assert.InDelta(t, math.Pi/4, opts.OrientTolerance, 1e-12)
			assert.Equal(t, loft.UVArcLength, opts.UVMode)
			assert.InDelta(t, 0.25, opts.Blend(0.5), 1e-12)
			assert.InDelta(t, 0.625, opts.Blend(0.75), 1e-12)
		})
	}
}

func TestOptionsDefaults(t *testing.T) {
	var job Job

	opts, err := job.Options()
	require.NoError(t, err)

	def := loft.DefaultOptions()
	assert.Equal(t, def.Sweep, opts.Sweep)
	assert.Equal(t, def.Profile, opts.Profile)
	assert.Equal(t, def.WidthWindow, opts.WidthWindow)
	assert.Equal(t, def.OrientTolerance, opts.OrientTolerance)
	assert.Equal(t, loft.UVIndex, opts.UVMode)
	assert.Equal(t, 0.3, opts.Blend(0.3))
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"malformed", `name = `},
		{"no profiles", `
[rail_a]
points = [[0, 0, 0], [0, 0, 1]]
[rail_b]
points = [[1, 0, 0], [1, 0, 1]]
`},
		{"unknown shape", `
[rail_a]
shape = "spiral"
[rail_b]
points = [[1, 0, 0], [1, 0, 1]]
[[profiles]]
points = [[0, 0, 0], [1, 0, 0]]
`},
		{"bad resolution", `
[rail_a]
points = [[0, 0, 0], [0, 0, 1]]
[rail_b]
points = [[1, 0, 0], [1, 0, 1]]
[[profiles]]
points = [[0, 0, 0], [1, 0, 0]]
[loft.sweep]
resolution = 1
`},
		{"bad uv mode", `
[rail_a]
points = [[0, 0, 0], [0, 0, 1]]
[rail_b]
points = [[1, 0, 0], [1, 0, 1]]
[[profiles]]
points = [[0, 0, 0], [1, 0, 0]]
[loft]
uv_mode = "planar"
`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.data), TOML)
			require.Error(t, err)
			assert.True(t, birail.Is(err, birail.ErrCodeInvalidParameter), "got %v", err)
		})
	}

	_, err := Parse([]byte(tubeTOML), Format("ini"))
	assert.Error(t, err)
}

func TestCurveSpec(t *testing.T) {
	x, y := [3]float64{1, 0, 0}, [3]float64{0, 1, 0}

	tests := []struct {
		name    string
		spec    CurveSpec
		len     int
		cyclic  bool
		wantErr bool
	}{
		{"points", CurveSpec{Points: [][3]float64{{0, 0, 0}, {1, 0, 0}, {1, 1, 0}}, Cyclic: true}, 3, true, false},
		{"empty points", CurveSpec{}, 0, false, true},
		{"line", CurveSpec{Shape: "line", Points: [][3]float64{{0, 0, 0}, {1, 0, 0}}, Samples: 5}, 5, false, false},
		{"line with three points", CurveSpec{Shape: "line", Points: [][3]float64{{0, 0, 0}, {1, 0, 0}, {2, 0, 0}}}, 0, false, true},
		{"circle", CurveSpec{Shape: "circle", Radius: 2}, defaultSamples, true, false},
		{"circle without radius", CurveSpec{Shape: "circle"}, 0, false, true},
		{"ellipse", CurveSpec{Shape: "ellipse", XAxis: &x, YAxis: &y, Samples: 8}, 8, true, false},
		{"arc", CurveSpec{Shape: "arc", Radius: 1, Start: 0, End: 90, Samples: 3}, 3, false, false},
		{"reversed arc", CurveSpec{Shape: "arc", Radius: 1, Start: 90, End: 0}, 0, false, true},
		{"tilt mismatch", CurveSpec{Shape: "line", Points: [][3]float64{{0, 0, 0}, {1, 0, 0}}, Samples: 3, Tilt: []float64{0, 1}}, 0, false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := tt.spec.Curve()
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.len, c.Len())
			assert.Equal(t, tt.cyclic, c.Cyclic())
		})
	}
}

func TestArcDegrees(t *testing.T) {
	spec := CurveSpec{Shape: "arc", Center: [3]float64{1, 1, 0}, Radius: 2, Start: 0, End: 90, Samples: 3}

	c, err := spec.Curve()
	require.NoError(t, err)

	end := c.Point(2)
	assert.InDelta(t, 1, end[0], 1e-12)
	assert.InDelta(t, 3, end[1], 1e-12)
}

func TestFormatFromPath(t *testing.T) {
	for path, want := range map[string]Format{
		"job.toml":     TOML,
		"dir/job.YAML": YAML,
		"job.yml":      YAML,
	} {
		got, err := FormatFromPath(path)
		require.NoError(t, err, path)
		assert.Equal(t, want, got, path)
	}

	_, err := FormatFromPath("job.json")
	assert.Error(t, err)
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()

	path := filepath.Join(dir, "tube.yaml")
	require.NoError(t, os.WriteFile(path, []byte(tubeYAML), 0o644))

	job, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "tube", job.Name)

	_, err = Load(filepath.Join(dir, "missing.toml"))
	assert.Error(t, err)
}
