// Package loft builds a bi-rail loft: a quad surface swept between two rail
// curves, with a family of cross-section profiles blended along the sweep
// and placed in a frame fitted to the rails at every station.
//
// The pipeline runs in fixed order:
//
//  1. Resolve sample counts for the sweep (X) and profile (Y) axes.
//  2. Resample both rails to the station count.
//  3. Blend the input profiles into one cross-section per station.
//  4. Fit each cross-section to the rail-to-rail vector at its station.
//  5. Orient the fitted cross-sections along the sweep and correct their
//     width for local rail convergence.
//  6. Assemble the placed cross-sections into a UV-mapped grid mesh.
//  7. Optionally smooth the interior of the grid.
//
// Per-station work in steps 3 to 5 runs in parallel. A Lofter is built once
// from Options and can be reused, including concurrently:
//
//	opts := loft.DefaultOptions()
//	opts.Sweep = loft.Axis{Mode: loft.Spacing, Spacing: 0.5}
//	l, err := loft.New(opts)
//	if err != nil {
//		return err
//	}
//	res, err := l.Build(railA, railB, []*birail.Curve{profile})
package loft
