package loft

import (
	"github.com/loftworks/birail"

	"github.com/ungerik/go3d/float64/vec3"
)

// Smooth relaxes a grid mesh with iterations rounds of Laplacian
// smoothing and returns the result; the input is not modified. Each round
// moves every interior vertex to the average of itself and its
// 4-connected neighbours, reading only the previous round's positions.
// Vertices on the edges of non-cyclic axes stay fixed. Rows are processed
// on up to workers goroutines (0 means GOMAXPROCS). Normals are recomputed
// when at least one round runs.
func Smooth(mesh *birail.Mesh, iterations, workers int) (*birail.Mesh, error) {
	if iterations < 0 {
		return nil, birail.NewError(birail.ErrCodeInvalidParameter,
			"smoothing iterations must not be negative, got %d", iterations)
	}

	out := mesh.Clone()
	if iterations == 0 {
		return out, nil
	}

	cur := out.Points
	next := make([]vec3.T, len(cur))

	for iter := 0; iter < iterations; iter++ {
		err := forEach(out.Rows, workers, func(s int) error {
			for k := 0; k < out.Cols; k++ {
				i := out.Index(s, k)
				if out.IsBoundary(s, k) {
					next[i] = cur[i]
					continue
				}

				neighbors := out.Neighbors(s, k)
				sum := cur[i]
				for _, j := range neighbors {
					sum.Add(&cur[j])
				}
				next[i] = sum.Scaled(1 / float64(len(neighbors)+1))
			}
			return nil
		})
		if err != nil {
			return nil, err
		}

		cur, next = next, cur
	}

	out.Points = cur
	out.ComputeNormals()

	return out, nil
}
