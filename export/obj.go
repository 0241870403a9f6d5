package export

import (
	"bufio"
	"fmt"
	"io"

	"github.com/loftworks/birail"
)

// WriteOBJ writes mesh as a Wavefront OBJ object with positions, texture
// coordinates, normals and quad faces. UVs and normals are written only
// when the mesh carries one per vertex.
func WriteOBJ(w io.Writer, name string, mesh *birail.Mesh) error {
	bw := bufio.NewWriter(w)

	hasUV := len(mesh.UVs) == len(mesh.Points)
	hasNormal := len(mesh.Normals) == len(mesh.Points)

	fmt.Fprintf(bw, "# %d vertices, %d quads\n", len(mesh.Points), len(mesh.Quads))
	if name != "" {
		fmt.Fprintf(bw, "o %s\n", name)
	}

	for _, p := range mesh.Points {
		fmt.Fprintf(bw, "v %g %g %g\n", p[0], p[1], p[2])
	}
	if hasUV {
		for _, uv := range mesh.UVs {
			fmt.Fprintf(bw, "vt %g %g\n", uv[0], uv[1])
		}
	}
	if hasNormal {
		for _, n := range mesh.Normals {
			fmt.Fprintf(bw, "vn %g %g %g\n", n[0], n[1], n[2])
		}
	}

	for _, q := range mesh.Quads {
		bw.WriteString("f")
		for _, i := range q {
			// OBJ indices are 1-based
			switch {
			case hasUV && hasNormal:
				fmt.Fprintf(bw, " %d/%d/%d", i+1, i+1, i+1)
			case hasUV:
				fmt.Fprintf(bw, " %d/%d", i+1, i+1)
			case hasNormal:
				fmt.Fprintf(bw, " %d//%d", i+1, i+1)
			default:
				fmt.Fprintf(bw, " %d", i+1)
			}
		}
		bw.WriteString("\n")
	}

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("write obj: %w", err)
	}
	return nil
}
