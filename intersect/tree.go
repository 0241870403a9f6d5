package intersect

import "sync"

// BoundingBoxTree is a binary hierarchy of bounding boxes whose leaves
// each hold one triangle of a mesh.
type BoundingBoxTree interface {
	BoundingBox() BoundingBox
	Empty() bool
	Indivisible() bool
	Split() (BoundingBoxTree, BoundingBoxTree)

	// Yield returns the triangle index of an indivisible node.
	Yield() int
}

// lazyMeshBoundingBoxTree computes its box and children on first use, so
// queries only pay for the parts of the hierarchy they visit. It is safe
// for concurrent use.
type lazyMeshBoundingBoxTree struct {
	mesh        *Mesh
	faceIndices []int

	bboxOnce    sync.Once
	boundingBox BoundingBox

	splitOnce   sync.Once
	left, right BoundingBoxTree
}

func newLazyMeshBoundingBoxTree(mesh *Mesh, faceIndices []int) *lazyMeshBoundingBoxTree {
	if faceIndices == nil {
		faceIndices = make([]int, len(mesh.Faces))
		for i := range faceIndices {
			faceIndices[i] = i
		}
	}

	return &lazyMeshBoundingBoxTree{mesh: mesh, faceIndices: faceIndices}
}

func (this *lazyMeshBoundingBoxTree) BoundingBox() BoundingBox {
	this.bboxOnce.Do(func() {
		this.boundingBox = this.mesh.BoundingBox(this.faceIndices)
	})

	return this.boundingBox
}

func (this *lazyMeshBoundingBoxTree) Split() (BoundingBoxTree, BoundingBoxTree) {
	this.splitOnce.Do(func() {
		as := this.mesh.SortedTrianglesOnLongestAxis(this.BoundingBox(), this.faceIndices)

		halfLen := len(as) / 2
		this.left = newLazyMeshBoundingBoxTree(this.mesh, as[:halfLen])
		this.right = newLazyMeshBoundingBoxTree(this.mesh, as[halfLen:])
	})

	return this.left, this.right
}

func (this *lazyMeshBoundingBoxTree) Yield() int {
	return this.faceIndices[0]
}

func (this *lazyMeshBoundingBoxTree) Indivisible() bool {
	return len(this.faceIndices) == 1
}

func (this *lazyMeshBoundingBoxTree) Empty() bool {
	return len(this.faceIndices) == 0
}
