package loft

import (
	"math"

	"github.com/loftworks/birail"
)

// blendFraction is the raw position of station s along the sweep: s/(m-1)
// for an open sweep, s/m for a cyclic one, and 0 for a single station.
func blendFraction(s, m int, cyclic bool) float64 {
	if cyclic {
		return float64(s) / float64(m)
	}
	if m <= 1 {
		return 0
	}
	return float64(s) / float64(m-1)
}

// profilePair maps a remapped blend fraction onto the pair of adjacent
// profiles (i, i+1) of n and the weight of the second. i is clamped to
// [0, n-2]; w is not, so fractions outside [0, 1] extrapolate from the end
// pair.
func profilePair(f float64, n int) (i int, w float64) {
	if n <= 1 {
		return 0, 0
	}

	idx := f * float64(n-1)
	if math.IsNaN(idx) {
		return 0, 0
	}

	i = int(math.Floor(math.Max(math.Min(idx, float64(n-2)), 0)))
	return i, idx - float64(i)
}

// BlendProfiles produces one cross-section per station. Station s blends
// the two input profiles adjacent to blend(s/(m-1)) (s/m when cyclic). A
// single input profile is returned unchanged for every station. Profiles
// must share a point count.
func BlendProfiles(profiles []*birail.Curve, m int, cyclic bool, blend birail.BlendFunc) ([]*birail.Curve, error) {
	return blendProfiles(profiles, m, cyclic, blend, 0)
}

func blendProfiles(profiles []*birail.Curve, m int, cyclic bool, blend birail.BlendFunc, workers int) ([]*birail.Curve, error) {
	if len(profiles) == 0 {
		return nil, birail.NewError(birail.ErrCodeInvalidParameter, "profile set is empty")
	}
	if blend == nil {
		blend = birail.Identity
	}

	blended := make([]*birail.Curve, m)
	if len(profiles) == 1 {
		for s := range blended {
			blended[s] = profiles[0]
		}
		return blended, nil
	}

	err := forEach(m, workers, func(s int) error {
		i, w := profilePair(blend(blendFraction(s, m, cyclic)), len(profiles))

		c, err := birail.Lerp(profiles[i], profiles[i+1], w)
		if err != nil {
			return err
		}
		blended[s] = c
		return nil
	})
	if err != nil {
		return nil, err
	}

	return blended, nil
}
