package loft

import (
	"math"

	"github.com/loftworks/birail"
	. "github.com/loftworks/birail/internal"

	"github.com/ungerik/go3d/float64/vec3"
)

// midlineTangents returns the sweep direction at every station, the
// tangents of the curve through the station anchors. A single station has
// no midline, so the start tangents of the original rails are averaged.
func midlineTangents(stations []Station, cyclic bool, railA, railB *birail.Curve) []vec3.T {
	if len(stations) == 1 {
		ta, tb := railA.Tangents()[0], railB.Tangents()[0]
		t := vec3.Add(&ta, &tb)
		if t.Length() > Epsilon {
			t.Normalize()
		}
		return []vec3.T{t}
	}

	anchors := make([]vec3.T, len(stations))
	for i := range stations {
		anchors[i] = stations[i].Anchor
	}

	return birail.NewCurveUnchecked(anchors, nil, cyclic).Tangents()
}

// orientFrames assigns every station its world frame, tilted by the
// station's mean rail tilt. It runs in station order: a frame whose sweep
// tangent is parallel to the span inherits the previous Z, and a
// degenerate station copies the previous valid frame. Leading degenerate
// stations take the first valid frame; with no valid station at all every
// frame is the identity.
func orientFrames(stations []Station, tangents []vec3.T) {
	base := make([]Frame, len(stations))

	first := -1
	var prev *Frame
	for i := range stations {
		st := &stations[i]
		if st.Degenerate {
			if prev != nil {
				base[i] = *prev
			}
			continue
		}

		d := vec3.Sub(&st.RailB, &st.RailA)
		d.Normalize()

		var prevZ *vec3.T
		if prev != nil {
			prevZ = &prev.Z
		}

		base[i] = newFrame(d, tangents[i], prevZ)
		prev = &base[i]
		if first < 0 {
			first = i
		}
	}

	for i := range stations {
		switch {
		case first < 0:
			base[i] = IdentityFrame
		case i < first:
			base[i] = base[first]
		}
		stations[i].Frame = base[i].tilted(stations[i].Tilt)
	}
}

// applyWidthScales sets each station's width scale to its gap over the
// mean gap of the non-degenerate stations within window stations either
// side, wrapping on a cyclic sweep. A zero window leaves every scale at 1.
func applyWidthScales(stations []Station, window int, cyclic bool) {
	n := len(stations)
	for i := range stations {
		st := &stations[i]
		st.WidthScale = 1
		if window == 0 || st.Degenerate {
			continue
		}

		var sum float64
		var count int
		for j := i - window; j <= i+window; j++ {
			w, ok := wrapStation(j, n, cyclic)
			if !ok || stations[w].Degenerate {
				continue
			}
			sum += stations[w].Gap
			count++
		}

		if mean := sum / float64(count); mean > Epsilon {
			st.WidthScale = st.Gap / mean
		}
	}
}

// wrapStation maps j onto [0, n), wrapping on a cyclic sweep. On an open
// sweep indices off either end are dropped. A window wider than a cyclic
// sweep visits some stations twice.
func wrapStation(j, n int, cyclic bool) (int, bool) {
	if j >= 0 && j < n {
		return j, true
	}
	if !cyclic {
		return 0, false
	}

	j %= n
	if j < 0 {
		j += n
	}
	return j, true
}

// placeStation builds the station's transform and applies it to the
// station's blended profile.
func placeStation(st *Station) {
	p := placement{
		frame:  st.Frame,
		anchor: st.Anchor,
		pivot:  st.Pivot,
		angle:  st.SpanAngle,
		span:   st.SpanScale,
		width:  st.WidthScale,
	}

	st.Transform = p.matrix()
	st.Placed = st.Profile.Transform(&st.Transform)
}

// orientSigns mirrors the cross-sections that face against the rest of the
// sweep. The reference direction is the normalized sum of every placed
// section's plane normal; a section whose normal lies within tolerance
// radians of the reversed reference gets a negative width scale. The
// indices of the flipped stations are returned and the caller must place
// them again.
//
// This is a heuristic. A sweep that turns through more than a half turn
// can have a reference direction that represents none of its sections, and
// sections with no usable normal are never flipped.
func orientSigns(stations []Station, tolerance float64) []int {
	normals := make([]vec3.T, len(stations))
	var ref vec3.T
	for i := range stations {
		normals[i] = stations[i].Placed.Normal()
		ref.Add(&normals[i])
	}

	if ref.Length() < Epsilon {
		return nil
	}
	ref.Normalize()
	ref = ref.Scaled(-1)

	var flipped []int
	for i := range stations {
		n := normals[i]
		if n.Length() < Epsilon {
			continue
		}

		angle := math.Acos(math.Max(-1, math.Min(1, vec3.Dot(&n, &ref))))
		if angle <= tolerance {
			stations[i].WidthScale = -stations[i].WidthScale
			flipped = append(flipped, i)
		}
	}

	return flipped
}
