package export

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"math"

	"github.com/loftworks/birail"
	"github.com/loftworks/birail/intersect"
)

const stlHeaderSize = 80

// WriteSTL writes mesh as a binary STL solid, splitting every quad into
// two triangles. Facet normals are computed from the triangle winding.
func WriteSTL(w io.Writer, name string, mesh *birail.Mesh) error {
	tris := mesh.Triangulate()
	if uint64(len(tris)) > math.MaxUint32 {
		return birail.NewError(birail.ErrCodeInvalidParameter, "too many triangles for stl: %d", len(tris))
	}

	bw := bufio.NewWriter(w)

	var header [stlHeaderSize]byte
	copy(header[:], name)
	bw.Write(header[:])

	var buf [4]byte
	binary.LittleEndian.PutUint32(buf[:], uint32(len(tris)))
	bw.Write(buf[:])

	// normal, three vertices, attribute byte count
	var facet [12*4 + 2]byte
	for i := range tris {
		n := intersect.TriangleNormal(mesh.Points, &tris[i])
		putVec(facet[0:], n[:])
		for j, iPt := range tris[i] {
			putVec(facet[12+12*j:], mesh.Points[iPt][:])
		}
		bw.Write(facet[:])
	}

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("write stl: %w", err)
	}
	return nil
}

func putVec(b []byte, v []float64) {
	for i, c := range v {
		binary.LittleEndian.PutUint32(b[4*i:], math.Float32bits(float32(c)))
	}
}
