package loft

import (
	"math"

	"github.com/loftworks/birail"
	. "github.com/loftworks/birail/internal"

	"github.com/ungerik/go3d/float64/mat4"
	"github.com/ungerik/go3d/float64/vec3"
)

// Options control a loft. The zero value is not usable: both axes need a
// resolution or spacing. Start from DefaultOptions.
type Options struct {
	// Sweep sets the number of stations along the rails, resolved against
	// the mean rail length in Spacing mode.
	Sweep Axis

	// Profile sets the number of points across every cross-section,
	// resolved against the longest input profile in Spacing mode.
	Profile Axis

	// Smoothing is the number of Laplacian smoothing rounds applied to
	// the finished grid.
	Smoothing int

	// Blend remaps the position of each station before the profiles are
	// blended. Nil means Identity.
	Blend birail.BlendFunc

	// ResampleProfiles resamples profiles with unequal point counts down
	// to the smallest count instead of rejecting them.
	ResampleProfiles bool

	// ReferenceStation is the station whose rail gap the profiles are
	// authored against.
	ReferenceStation int

	// WidthWindow is the number of stations either side averaged to
	// normalize the cross-section width. 0 disables width scaling.
	WidthWindow int

	// OrientTolerance is the angle, in radians, within which a section
	// facing against the sweep is mirrored. 0 means 30 degrees.
	OrientTolerance float64

	UVMode UVMode

	// Workers bounds the goroutines used per parallel pass. 0 means
	// GOMAXPROCS.
	Workers int
}

// DefaultOptions returns 16 stations by 16 profile points, identity
// blending, a width window of 2 and no smoothing.
func DefaultOptions() Options {
	return Options{
		Sweep:           Axis{Mode: Resolution, Resolution: 16},
		Profile:         Axis{Mode: Resolution, Resolution: 16},
		Blend:           birail.Identity,
		WidthWindow:     2,
		OrientTolerance: AngleTolerance,
	}
}

func (o *Options) validate() error {
	if err := o.Sweep.validate("sweep"); err != nil {
		return err
	}
	if err := o.Profile.validate("profile"); err != nil {
		return err
	}

	for _, c := range []struct {
		name  string
		value int
	}{
		{"smoothing", o.Smoothing},
		{"width window", o.WidthWindow},
		{"workers", o.Workers},
		{"reference station", o.ReferenceStation},
	} {
		if c.value < 0 {
			return birail.NewError(birail.ErrCodeInvalidParameter,
				"%s must not be negative, got %d", c.name, c.value)
		}
	}

	if o.OrientTolerance < 0 || math.IsNaN(o.OrientTolerance) {
		return birail.NewError(birail.ErrCodeInvalidParameter,
			"orient tolerance must not be negative, got %g", o.OrientTolerance)
	}
	if o.UVMode != UVIndex && o.UVMode != UVArcLength {
		return birail.NewError(birail.ErrCodeInvalidParameter, "unknown uv mode %v", o.UVMode)
	}

	return nil
}

// Station is the state of one cross-section of the loft.
type Station struct {
	Index int

	// Profile is the blended cross-section in its local plane, Placed the
	// same section moved onto the rails.
	Profile, Placed *birail.Curve

	// RailA and RailB are the rail samples of the station, Anchor the
	// midpoint between them.
	RailA, RailB, Anchor vec3.T

	Frame Frame

	// Gap is the distance between the rail samples.
	Gap float64

	// SpanScale stretches the section along the span axis, WidthScale
	// across it. A negative WidthScale mirrors the section.
	SpanScale, WidthScale float64

	// SpanAngle is the angle of the profile's first-to-last axis in its
	// local XY plane, Pivot the midpoint of that axis.
	SpanAngle float64
	Pivot     vec3.T

	// Tilt is the mean of the rail tilts at the station.
	Tilt float64

	// Degenerate reports that the rails meet at this station.
	Degenerate bool

	// Transform maps the local profile to its placed position.
	Transform mat4.T
}

// Result is a finished loft.
type Result struct {
	Mesh *birail.Mesh

	// Profiles holds every row of the finished mesh as a curve.
	Profiles []*birail.Curve

	UVs      []birail.UV
	Stations []Station

	// Warnings lists the degenerate geometry that was recovered from.
	Warnings []error
}

// Lofter builds bi-rail lofts with a fixed set of options. It is safe for
// concurrent use.
type Lofter struct {
	opts Options
}

// New validates opts and returns a Lofter using them.
func New(opts Options) (*Lofter, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}
	if opts.Blend == nil {
		opts.Blend = birail.Identity
	}
	if opts.OrientTolerance == 0 {
		opts.OrientTolerance = AngleTolerance
	}

	return &Lofter{opts: opts}, nil
}

// Options returns the options the Lofter was built with, defaults filled
// in.
func (this *Lofter) Options() Options {
	return this.opts
}

// BiRail sweeps profiles between railA and railB with opts.
func BiRail(railA, railB *birail.Curve, profiles []*birail.Curve, opts Options) (*Result, error) {
	l, err := New(opts)
	if err != nil {
		return nil, err
	}
	return l.Build(railA, railB, profiles)
}

// Build sweeps profiles between railA and railB.
//
// **params**
// + the first rail
// + the second rail
// + the cross-sections, in sweep order; at least one, all open or all
// cyclic, with equal point counts unless ResampleProfiles is set
//
// **returns**
// + the loft, or an InvalidParameter error. Stations where the rails meet
// are recovered and reported as DegenerateGeometry warnings.
func (this *Lofter) Build(railA, railB *birail.Curve, profiles []*birail.Curve) (*Result, error) {
	if railA == nil || railB == nil {
		return nil, birail.NewError(birail.ErrCodeInvalidParameter, "both rails are required")
	}

	profiles, err := reconcileProfiles(profiles, this.opts.ResampleProfiles)
	if err != nil {
		return nil, err
	}

	log := birail.Logger()
	res := &Result{}

	cyclic := railA.Cyclic() && railB.Cyclic()

	m := 1
	if railsCollapse(railA, railB) {
		cyclic = false
		log.Warn("loft: rails have no length, collapsing the sweep to one station",
			"railA", railA.Len(), "railB", railB.Len())
		res.Warnings = append(res.Warnings, birail.NewError(birail.ErrCodeDegenerateGeometry,
			"rails have no length, sweep collapsed to one station"))
	} else if m, err = this.opts.Sweep.Count((railA.Length() + railB.Length()) / 2); err != nil {
		return nil, err
	}

	k, err := this.opts.Profile.Count(longest(profiles))
	if err != nil {
		return nil, err
	}

	log.Debug("loft: resolved sample counts", "stations", m, "profilePoints", k, "cyclic", cyclic)

	ra, rb := resampleRails(railA, railB, m)

	blended, err := blendProfiles(profiles, m, cyclic, this.opts.Blend, this.opts.Workers)
	if err != nil {
		return nil, err
	}

	stations := make([]Station, m)
	err = forEach(m, this.opts.Workers, func(s int) error {
		stations[s].Index = s
		stations[s].Profile = blended[s]
		fitStation(&stations[s], ra, rb, m, cyclic)
		return nil
	})
	if err != nil {
		return nil, err
	}

	if degenerate := degenerateIndices(stations); len(degenerate) > 0 {
		log.Debug("loft: rails meet, reusing neighbouring frames", "stations", degenerate)
		res.Warnings = append(res.Warnings, birail.NewError(birail.ErrCodeDegenerateGeometry,
			"rails meet at %d of %d stations: %v", len(degenerate), m, degenerate))
	}

	refGap := referenceGap(stations, this.opts.ReferenceStation)
	applySpanScales(stations, refGap)
	orientFrames(stations, midlineTangents(stations, cyclic, railA, railB))
	applyWidthScales(stations, this.opts.WidthWindow, cyclic)

	place := func(s int) error {
		placeStation(&stations[s])
		return nil
	}
	if err := forEach(m, this.opts.Workers, place); err != nil {
		return nil, err
	}

	if flipped := orientSigns(stations, this.opts.OrientTolerance); len(flipped) > 0 {
		log.Debug("loft: mirrored sections facing against the sweep", "stations", flipped)
		for _, s := range flipped {
			placeStation(&stations[s])
		}
	}

	mesh := assemble(stations, k, cyclic, this.opts.UVMode)
	if this.opts.Smoothing > 0 {
		if mesh, err = Smooth(mesh, this.opts.Smoothing, this.opts.Workers); err != nil {
			return nil, err
		}
	}

	res.Mesh = mesh
	res.Profiles = meshRows(mesh)
	res.UVs = mesh.UVs
	res.Stations = stations

	return res, nil
}
