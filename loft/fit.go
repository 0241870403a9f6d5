package loft

import (
	"math"

	"github.com/loftworks/birail"
	. "github.com/loftworks/birail/internal"

	"github.com/ungerik/go3d/float64/vec3"
)

// fitStation samples both rails at station s of m and records the gap
// between them, the midline anchor and how the station's profile spans
// its local plane. Scales and frames are filled in by later passes.
func fitStation(st *Station, railA, railB *birail.Curve, m int, cyclic bool) {
	ia := remapIndex(st.Index, m, railA.Len(), cyclic)
	ib := remapIndex(st.Index, m, railB.Len(), cyclic)

	st.RailA, st.RailB = railA.Point(ia), railB.Point(ib)
	st.Tilt = (railA.Tilt(ia) + railB.Tilt(ib)) / 2
	st.Anchor = vec3.Interpolate(&st.RailA, &st.RailB, 0.5)

	d := vec3.Sub(&st.RailB, &st.RailA)
	st.Gap = d.Length()
	st.Degenerate = st.Gap < Epsilon

	st.SpanAngle, st.Pivot = profileSpan(st.Profile)
	st.SpanScale, st.WidthScale = 1, 1
}

// profileSpan returns the in-plane angle of an open profile's first-to-last
// axis and the midpoint of that axis. Cyclic profiles, and open ones whose
// ends coincide in the XY plane, use the local X axis and origin.
func profileSpan(profile *birail.Curve) (angle float64, pivot vec3.T) {
	if profile.Cyclic() || profile.Len() < 2 {
		return 0, vec3.Zero
	}

	span := profile.Span()
	if math.Hypot(span[0], span[1]) < Epsilon {
		return 0, vec3.Zero
	}

	first, last := profile.Point(0), profile.Point(profile.Len()-1)
	return math.Atan2(span[1], span[0]), vec3.Interpolate(&first, &last, 0.5)
}

// referenceGap returns the rail gap the profiles are authored against:
// the gap at station ref (clamped into range), or at the first
// non-degenerate station when that one is degenerate, or 1 when every
// station is.
func referenceGap(stations []Station, ref int) float64 {
	if len(stations) == 0 {
		return 1
	}

	ref = max(0, min(len(stations)-1, ref))
	if !stations[ref].Degenerate {
		return stations[ref].Gap
	}

	for i := range stations {
		if !stations[i].Degenerate {
			return stations[i].Gap
		}
	}

	return 1
}

// applySpanScales scales every non-degenerate station by its gap relative
// to the reference gap; degenerate stations keep unit scale.
func applySpanScales(stations []Station, refGap float64) {
	for i := range stations {
		st := &stations[i]
		if st.Degenerate {
			st.SpanScale = 1
			continue
		}
		st.SpanScale = st.Gap / refGap
	}
}

func degenerateIndices(stations []Station) []int {
	var indices []int
	for i := range stations {
		if stations[i].Degenerate {
			indices = append(indices, i)
		}
	}
	return indices
}
