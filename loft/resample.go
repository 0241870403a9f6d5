package loft

import (
	"math"

	"github.com/loftworks/birail"
	. "github.com/loftworks/birail/internal"
)

// railsCollapse reports whether either rail is a single point or has zero
// length, in which case the sweep degenerates to one station.
func railsCollapse(railA, railB *birail.Curve) bool {
	return railA.Len() < 2 || railB.Len() < 2 ||
		railA.Length() < Epsilon || railB.Length() < Epsilon
}

// resampleRails resamples both rails to m points uniformly in arc length.
// For m == 1 each rail collapses to its first point.
func resampleRails(railA, railB *birail.Curve, m int) (*birail.Curve, *birail.Curve) {
	if m == 1 {
		return collapse(railA), collapse(railB)
	}
	return railA.Resample(m), railB.Resample(m)
}

func collapse(c *birail.Curve) *birail.Curve {
	var tilt []float64
	if c.Tilts() != nil {
		tilt = []float64{c.Tilt(0)}
	}
	return birail.NewCurveUnchecked(c.Points()[:1], tilt, false)
}

// remapIndex maps station s of m onto a point index of a curve with n
// points, so rails with different counts can be sampled at the same
// station.
func remapIndex(s, m, n int, cyclic bool) int {
	if n <= 1 || m <= 1 {
		return 0
	}

	if cyclic {
		return int(math.Round(float64(s)*float64(n)/float64(m))) % n
	}

	i := int(math.Round(float64(s) * float64(n-1) / float64(m-1)))
	return max(0, min(n-1, i))
}

// reconcileProfiles checks that the profile set can be blended point for
// point. With resample set, profiles with differing counts are resampled
// down to the smallest count instead of being rejected.
func reconcileProfiles(profiles []*birail.Curve, resample bool) ([]*birail.Curve, error) {
	if len(profiles) == 0 {
		return nil, birail.NewError(birail.ErrCodeInvalidParameter, "profile set is empty")
	}

	minCount, maxCount := math.MaxInt, 0
	for i, p := range profiles {
		if p == nil {
			return nil, birail.NewError(birail.ErrCodeInvalidParameter, "profile %d is nil", i)
		}
		if p.Cyclic() != profiles[0].Cyclic() {
			return nil, birail.NewError(birail.ErrCodeInvalidParameter,
				"profile %d is cyclic=%t but profile 0 is cyclic=%t", i, p.Cyclic(), profiles[0].Cyclic())
		}
		minCount = min(minCount, p.Len())
		maxCount = max(maxCount, p.Len())
	}

	if minCount == maxCount {
		return profiles, nil
	}

	if !resample {
		for i, p := range profiles {
			if p.Len() != profiles[0].Len() {
				return nil, birail.NewError(birail.ErrCodeInvalidParameter,
					"profile %d has %d points but profile 0 has %d", i, p.Len(), profiles[0].Len())
			}
		}
	}

	reconciled := make([]*birail.Curve, len(profiles))
	for i, p := range profiles {
		if p.Len() == minCount {
			reconciled[i] = p
		} else {
			reconciled[i] = p.Resample(minCount)
		}
	}

	return reconciled, nil
}

func longest(curves []*birail.Curve) float64 {
	var l float64
	for _, c := range curves {
		l = math.Max(l, c.Length())
	}
	return l
}
