package loft

import (
	"fmt"

	"github.com/loftworks/birail"
	. "github.com/loftworks/birail/internal"

	"github.com/ungerik/go3d/float64/vec3"
)

// UVMode selects how the V texture coordinate runs across a cross-section.
type UVMode int

const (
	// UVIndex spaces V evenly by vertex index.
	UVIndex UVMode = iota

	// UVArcLength sets V to the normalized arc length along each row.
	UVArcLength
)

func (m UVMode) String() string {
	switch m {
	case UVIndex:
		return "index"
	case UVArcLength:
		return "arclength"
	default:
		return fmt.Sprintf("UVMode(%d)", int(m))
	}
}

// ParseUVMode parses "index" or "arclength".
func ParseUVMode(s string) (UVMode, error) {
	switch s {
	case "index", "":
		return UVIndex, nil
	case "arclength", "arc-length":
		return UVArcLength, nil
	default:
		return 0, birail.NewError(birail.ErrCodeInvalidParameter, "unknown uv mode %q", s)
	}
}

// assemble stitches the placed cross-sections into a grid of
// len(stations) rows by k columns. Sections are resampled to k points when
// their count differs. The grid wraps along the sweep when cyclicU is set
// and across the sections when they are cyclic.
func assemble(stations []Station, k int, cyclicU bool, mode UVMode) *birail.Mesh {
	m := len(stations)
	cyclicV := stations[0].Placed.Cyclic()

	points := make([]vec3.T, 0, m*k)
	for i := range stations {
		row := stations[i].Placed
		if row.Len() != k {
			row = row.Resample(k)
		}
		points = append(points, row.Points()...)
	}

	mesh := birail.NewGridMesh(m, k, cyclicU, cyclicV, points)
	mesh.UVs = gridUVs(mesh, mode)
	mesh.ComputeNormals()

	return mesh
}

// gridUVs maps vertex (s, k) to u = s/(Rows-1) and v = k/(Cols-1), using
// Rows and Cols as the denominators on cyclic axes. In arc-length mode v
// is the fraction of the row's length up to vertex k instead.
func gridUVs(mesh *birail.Mesh, mode UVMode) []birail.UV {
	uvs := make([]birail.UV, mesh.Rows*mesh.Cols)

	for s := 0; s < mesh.Rows; s++ {
		u := blendFraction(s, mesh.Rows, mesh.CyclicU)

		var cum []float64
		if mode == UVArcLength {
			cum = rowFractions(mesh.Row(s))
		}

		for k := 0; k < mesh.Cols; k++ {
			v := blendFraction(k, mesh.Cols, mesh.CyclicV)
			if cum != nil {
				v = cum[k]
			}
			uvs[mesh.Index(s, k)] = birail.UV{u, v}
		}
	}

	return uvs
}

// rowFractions returns the arc-length fraction of every point of a row,
// or nil when the row has no length.
func rowFractions(row *birail.Curve) []float64 {
	lengths := row.SegmentLengths()

	var total float64
	for _, l := range lengths {
		total += l
	}
	if total < Epsilon {
		return nil
	}

	fractions := make([]float64, row.Len())
	for i := 1; i < len(fractions); i++ {
		fractions[i] = fractions[i-1] + lengths[i-1]/total
	}

	return fractions
}

// meshRows returns every row of the mesh as a curve.
func meshRows(mesh *birail.Mesh) []*birail.Curve {
	rows := make([]*birail.Curve, mesh.Rows)
	for s := range rows {
		rows[s] = mesh.Row(s)
	}
	return rows
}
