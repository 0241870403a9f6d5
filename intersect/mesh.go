package intersect

import (
	"math"
	"sort"

	"github.com/loftworks/birail"

	"github.com/ungerik/go3d/float64/vec3"
)

// Mesh answers spatial queries against the triangles of a loft grid. Its
// bounding-box tree is built lazily as queries descend into it.
type Mesh struct {
	Faces []birail.Tri

	grid *birail.Mesh
	tree *lazyMeshBoundingBoxTree
}

// MeshPoint is a point on a mesh with the triangle it lies in and its
// interpolated texture coordinate.
type MeshPoint struct {
	FaceIndex int
	Point     vec3.T
	UV        birail.UV

	// Distance is the distance from the query point, or the ray parameter
	// for ray hits.
	Distance float64
}

// NewMesh triangulates grid for querying. The grid must not be modified
// while the Mesh is in use.
func NewMesh(grid *birail.Mesh) *Mesh {
	this := &Mesh{
		Faces: grid.Triangulate(),
		grid:  grid,
	}
	this.tree = newLazyMeshBoundingBoxTree(this, nil)

	return this
}

// Form axis-aligned bounding box from triangles of mesh
//
// **params**
// + face indices of the mesh to include in the bounding box
//
// **returns**
// + a BoundingBox containing the faces
func (this *Mesh) BoundingBox(faceIndices []int) BoundingBox {
	bb := BoundingBox{}

	for _, iFace := range faceIndices {
		for _, iPt := range this.Faces[iFace] {
			bb.Add(&this.grid.Points[iPt])
		}
	}

	return bb
}

type faceCoord struct {
	FaceIndex int
	Coord     float64
}

// Sort particular faces of a mesh on the longest axis
//
// **params**
// + bounding box containing the faces
// + the indices of the mesh faces to inspect
//
// **returns**
// + the face indices ordered by their minimum coordinate on the box's
// longest axis
func (this *Mesh) SortedTrianglesOnLongestAxis(bbox BoundingBox, faceIndices []int) (sortedFaceIndices []int) {
	longAxis := bbox.LongestAxis()

	minCoords := make([]faceCoord, len(faceIndices))
	for i, faceIndex := range faceIndices {
		triMin := minCoordOnAxis(this.grid.Points, &this.Faces[faceIndex], longAxis)
		minCoords[i] = faceCoord{faceIndex, triMin}
	}

	sort.SliceStable(minCoords, func(i, j int) bool {
		return minCoords[i].Coord < minCoords[j].Coord
	})

	sortedFaceIndices = make([]int, len(minCoords))
	for i, faceCoord := range minCoords {
		sortedFaceIndices[i] = faceCoord.FaceIndex
	}

	return
}

// ClosestPoint finds the point of the mesh nearest to p. ok is false for
// a mesh without triangles.
func (this *Mesh) ClosestPoint(p vec3.T) (mp MeshPoint, ok bool) {
	if this.tree.Empty() {
		return MeshPoint{}, false
	}

	best := math.Inf(1)
	var visit func(node BoundingBoxTree)
	visit = func(node BoundingBoxTree) {
		bb := node.BoundingBox()
		if bb.SquareDistance(&p) >= best {
			return
		}

		if node.Indivisible() {
			face := node.Yield()
			pt, s, t := this.triangleClosestPoint(face, &p)
			if d := vec3.SquareDistance(&p, &pt); d < best {
				best = d
				mp = MeshPoint{face, pt, this.triangleUV(face, s, t), 0}
			}
			return
		}

		l, r := node.Split()
		lb, rb := l.BoundingBox(), r.BoundingBox()
		if lb.SquareDistance(&p) > rb.SquareDistance(&p) {
			l, r = r, l
		}
		visit(l)
		visit(r)
	}
	visit(this.tree)

	mp.Distance = math.Sqrt(best)
	return mp, true
}

// FirstHit finds the nearest intersection of the ray origin + r*dir,
// r >= 0, with the mesh.
func (this *Mesh) FirstHit(origin, dir vec3.T) (mp MeshPoint, ok bool) {
	if this.tree.Empty() {
		return MeshPoint{}, false
	}

	best := math.Inf(1)
	var visit func(node BoundingBoxTree)
	visit = func(node BoundingBoxTree) {
		bb := node.BoundingBox()
		if entry, hit := bb.RayEntry(&origin, &dir); !hit || entry > best {
			return
		}

		if node.Indivisible() {
			face := node.Yield()
			tri := this.Faces[face]
			pts := this.grid.Points
			r, s, t, hit := rayTriangle(&origin, &dir, &pts[tri[0]], &pts[tri[1]], &pts[tri[2]])
			if hit && r < best {
				best = r
				step := dir.Scaled(r)
				mp = MeshPoint{face, vec3.Add(&origin, &step), this.triangleUV(face, s, t), r}
				ok = true
			}
			return
		}

		l, r := node.Split()
		visit(l)
		visit(r)
	}
	visit(this.tree)

	return mp, ok
}

func (this *Mesh) triangleClosestPoint(face int, p *vec3.T) (vec3.T, float64, float64) {
	tri := this.Faces[face]
	pts := this.grid.Points
	return triangleClosestPoint(p, &pts[tri[0]], &pts[tri[1]], &pts[tri[2]])
}

// TriangleUvFromPoint interpolates the texture coordinate of a point
// lying in a face from the face's corner UVs.
func (this *Mesh) TriangleUvFromPoint(faceIndex int, f *vec3.T) birail.UV {
	_, s, t := this.triangleClosestPoint(faceIndex, f)
	return this.triangleUV(faceIndex, s, t)
}

// triangleUV blends the corner UVs of a face with barycentric weights. On
// a cyclic axis the face that closes the grid has a corner at 0 where it
// should be at 1, so corners are unwrapped to the first corner's side
// before blending and the result is wrapped back into [0, 1).
func (this *Mesh) triangleUV(faceIndex int, s, t float64) birail.UV {
	if len(this.grid.UVs) == 0 {
		return birail.UV{}
	}

	tri := this.Faces[faceIndex]
	uv0 := this.grid.UVs[tri[0]]
	uv1 := this.grid.UVs[tri[1]]
	uv2 := this.grid.UVs[tri[2]]

	var uv birail.UV
	for i, cyclic := range [2]bool{this.grid.CyclicU, this.grid.CyclicV} {
		a, b, c := uv0[i], uv1[i], uv2[i]
		if cyclic {
			b, c = unwrap(a, b), unwrap(a, c)
		}

		uv[i] = (1-s-t)*a + s*b + t*c
		if cyclic {
			uv[i] -= math.Floor(uv[i])
		}
	}

	return uv
}

func unwrap(ref, x float64) float64 {
	switch {
	case x-ref > 0.5:
		return x - 1
	case ref-x > 0.5:
		return x + 1
	}
	return x
}
