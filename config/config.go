// Package config loads loft jobs: the rails, profiles and options of one
// loft, read from a TOML or YAML file.
package config

import (
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/loftworks/birail"
	"github.com/loftworks/birail/loft"
)

// Format is the encoding of a job file.
type Format string

const (
	TOML Format = "toml"
	YAML Format = "yaml"
)

// FormatFromPath picks the format from a file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return TOML, nil
	case ".yaml", ".yml":
		return YAML, nil
	default:
		return "", birail.NewError(birail.ErrCodeInvalidParameter,
			"cannot tell the format of %q: want .toml, .yaml or .yml", path)
	}
}

// Job describes one loft.
type Job struct {
	Name     string      `toml:"name" yaml:"name"`
	RailA    CurveSpec   `toml:"rail_a" yaml:"rail_a"`
	RailB    CurveSpec   `toml:"rail_b" yaml:"rail_b"`
	Profiles []CurveSpec `toml:"profiles" yaml:"profiles"`
	Loft     LoftSpec    `toml:"loft" yaml:"loft"`
}

// AxisSpec is the sampling of one loft axis.
type AxisSpec struct {
	Mode       string  `toml:"mode" yaml:"mode"`
	Spacing    float64 `toml:"spacing" yaml:"spacing"`
	Resolution int     `toml:"resolution" yaml:"resolution"`
}

// LoftSpec holds the loft options. Angles are in degrees. Unset fields
// take the values of loft.DefaultOptions.
type LoftSpec struct {
	Sweep   AxisSpec `toml:"sweep" yaml:"sweep"`
	Profile AxisSpec `toml:"profile" yaml:"profile"`

	Smoothing int `toml:"smoothing" yaml:"smoothing"`

	// Blend lists [x, y] knots of a piecewise-linear blend remap.
	Blend [][2]float64 `toml:"blend" yaml:"blend"`

	ResampleProfiles bool     `toml:"resample_profiles" yaml:"resample_profiles"`
	ReferenceStation int      `toml:"reference_station" yaml:"reference_station"`
	WidthWindow      *int     `toml:"width_window" yaml:"width_window"`
	OrientTolerance  *float64 `toml:"orient_tolerance" yaml:"orient_tolerance"`
	UVMode           string   `toml:"uv_mode" yaml:"uv_mode"`
	Workers          int      `toml:"workers" yaml:"workers"`
}

// Load reads a job file, choosing the format from its extension.
func Load(path string) (*Job, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	return Parse(data, format)
}

// Parse decodes and validates a job.
func Parse(data []byte, format Format) (*Job, error) {
	var job Job

	switch format {
	case TOML:
		if err := toml.Unmarshal(data, &job); err != nil {
			return nil, birail.WrapError(birail.ErrCodeInvalidParameter, err, "decode toml job")
		}
	case YAML:
		if err := yaml.Unmarshal(data, &job); err != nil {
			return nil, birail.WrapError(birail.ErrCodeInvalidParameter, err, "decode yaml job")
		}
	default:
		return nil, birail.NewError(birail.ErrCodeInvalidParameter, "unknown job format %q", format)
	}

	if err := job.Validate(); err != nil {
		return nil, err
	}
	return &job, nil
}

// Validate checks that the job describes a loft that can run.
func (j *Job) Validate() error {
	if len(j.Profiles) == 0 {
		return birail.NewError(birail.ErrCodeInvalidParameter, "job needs at least one profile")
	}

	if _, _, _, err := j.Curves(); err != nil {
		return err
	}

	opts, err := j.Options()
	if err != nil {
		return err
	}
	_, err = loft.New(opts)
	return err
}

// Options converts the loft section into loft options.
func (j *Job) Options() (loft.Options, error) {
	spec := &j.Loft
	opts := loft.DefaultOptions()

	var err error
	if opts.Sweep, err = spec.Sweep.axis(opts.Sweep); err != nil {
		return loft.Options{}, err
	}
	if opts.Profile, err = spec.Profile.axis(opts.Profile); err != nil {
		return loft.Options{}, err
	}
	if opts.UVMode, err = loft.ParseUVMode(spec.UVMode); err != nil {
		return loft.Options{}, err
	}

	if len(spec.Blend) > 0 {
		knots := make([]birail.Knot, len(spec.Blend))
		for i, k := range spec.Blend {
			knots[i] = birail.Knot{X: k[0], Y: k[1]}
		}
		if opts.Blend, err = birail.PiecewiseLinear(knots...); err != nil {
			return loft.Options{}, err
		}
	}

	opts.Smoothing = spec.Smoothing
	opts.ResampleProfiles = spec.ResampleProfiles
	opts.ReferenceStation = spec.ReferenceStation
	opts.Workers = spec.Workers
	if spec.WidthWindow != nil {
		opts.WidthWindow = *spec.WidthWindow
	}
	if spec.OrientTolerance != nil {
		opts.OrientTolerance = *spec.OrientTolerance * math.Pi / 180
	}

	return opts, nil
}

// axis overrides def with the fields that are set. A spacing alone
// switches the axis to spacing mode.
func (a AxisSpec) axis(def loft.Axis) (loft.Axis, error) {
	axis := def
	if a.Mode != "" {
		mode, err := loft.ParseAxisMode(a.Mode)
		if err != nil {
			return loft.Axis{}, err
		}
		axis.Mode = mode
	} else if a.Spacing != 0 {
		axis.Mode = loft.Spacing
	}

	if a.Spacing != 0 {
		axis.Spacing = a.Spacing
	}
	if a.Resolution != 0 {
		axis.Resolution = a.Resolution
	}

	return axis, nil
}

// Curves builds the rails and profiles of the job.
func (j *Job) Curves() (railA, railB *birail.Curve, profiles []*birail.Curve, err error) {
	if railA, err = j.RailA.Curve(); err != nil {
		return nil, nil, nil, birail.WrapError(birail.ErrCodeInvalidParameter, err, "rail_a")
	}
	if railB, err = j.RailB.Curve(); err != nil {
		return nil, nil, nil, birail.WrapError(birail.ErrCodeInvalidParameter, err, "rail_b")
	}

	profiles = make([]*birail.Curve, len(j.Profiles))
	for i := range j.Profiles {
		if profiles[i], err = j.Profiles[i].Curve(); err != nil {
			return nil, nil, nil, birail.WrapError(birail.ErrCodeInvalidParameter, err, "profile %d", i)
		}
	}

	return railA, railB, profiles, nil
}
