package birail

import (
	"math"

	. "github.com/loftworks/birail/internal"

	"github.com/ungerik/go3d/float64/vec3"
)

type UV [2]float64

type Tri [3]int

// Quad holds four vertex indices in counter-clockwise order:
// (s,k), (s+1,k), (s+1,k+1), (s,k+1).
type Quad [4]int

// Mesh is a regular grid of Rows x Cols vertices stored row-major, vertex
// (s, k) at index s*Cols + k. Rows run along the sweep (U), columns across
// the profile (V).
type Mesh struct {
	Rows, Cols int

	// CyclicU reports that the last row connects back to the first,
	// CyclicV that the last column connects back to the first.
	CyclicU, CyclicV bool

	Quads   []Quad
	Points  []vec3.T
	Normals []vec3.T
	UVs     []UV
}

// NewGridMesh connects rows*cols points into quads, wrapping either axis
// when it is cyclic. UVs and normals are left for the caller.
func NewGridMesh(rows, cols int, cyclicU, cyclicV bool, points []vec3.T) *Mesh {
	this := &Mesh{
		Rows:    rows,
		Cols:    cols,
		CyclicU: cyclicU && rows > 2,
		CyclicV: cyclicV && cols > 2,
		Points:  points,
	}
	this.Quads = this.gridQuads()

	return this
}

func (this *Mesh) Index(s, k int) int {
	return s*this.Cols + k
}

// wrap maps a row or column index onto the grid, returning false when it
// falls off a non-cyclic edge.
func wrap(i, n int, cyclic bool) (int, bool) {
	if i >= 0 && i < n {
		return i, true
	}
	if !cyclic {
		return 0, false
	}

	i %= n
	if i < 0 {
		i += n
	}
	return i, true
}

func (this *Mesh) gridQuads() []Quad {
	rowSpans, colSpans := this.Rows-1, this.Cols-1
	if this.CyclicU {
		rowSpans = this.Rows
	}
	if this.CyclicV {
		colSpans = this.Cols
	}
	if rowSpans < 1 || colSpans < 1 {
		return nil
	}

	quads := make([]Quad, 0, rowSpans*colSpans)
	for s := 0; s < rowSpans; s++ {
		s1 := (s + 1) % this.Rows
		for k := 0; k < colSpans; k++ {
			k1 := (k + 1) % this.Cols
			quads = append(quads, Quad{
				this.Index(s, k),
				this.Index(s1, k),
				this.Index(s1, k1),
				this.Index(s, k1),
			})
		}
	}

	return quads
}

// Clone returns a deep copy of the mesh.
func (this *Mesh) Clone() *Mesh {
	clone := *this
	clone.Quads = append([]Quad(nil), this.Quads...)
	clone.Points = append([]vec3.T(nil), this.Points...)
	clone.Normals = append([]vec3.T(nil), this.Normals...)
	clone.UVs = append([]UV(nil), this.UVs...)

	return &clone
}

// Row returns the vertices of row s as a curve, cyclic when the mesh wraps
// across its columns.
func (this *Mesh) Row(s int) *Curve {
	start := this.Index(s, 0)
	return NewCurveUnchecked(this.Points[start:start+this.Cols], nil, this.CyclicV)
}

// IsBoundary reports whether vertex (s, k) lies on an edge of a
// non-cyclic axis.
func (this *Mesh) IsBoundary(s, k int) bool {
	if !this.CyclicU && (s == 0 || s == this.Rows-1) {
		return true
	}
	if !this.CyclicV && (k == 0 || k == this.Cols-1) {
		return true
	}
	return false
}

// Neighbors returns the indices of the 4-connected neighbours of vertex
// (s, k) that exist on the grid.
func (this *Mesh) Neighbors(s, k int) []int {
	neighbors := make([]int, 0, 4)
	for _, d := range [4][2]int{{-1, 0}, {1, 0}, {0, -1}, {0, 1}} {
		ns, okS := wrap(s+d[0], this.Rows, this.CyclicU)
		nk, okK := wrap(k+d[1], this.Cols, this.CyclicV)
		if okS && okK {
			neighbors = append(neighbors, this.Index(ns, nk))
		}
	}

	return neighbors
}

// ComputeNormals sets a unit normal per vertex from the central
// differences of its grid neighbours, the cross product of the U and V
// directions. Vertices without a usable neighbourhood get a zero normal.
func (this *Mesh) ComputeNormals() {
	normals := make([]vec3.T, len(this.Points))

	for s := 0; s < this.Rows; s++ {
		for k := 0; k < this.Cols; k++ {
			du := this.difference(s-1, k, s+1, k, s, k)
			dv := this.difference(s, k-1, s, k+1, s, k)

			n := vec3.Cross(&du, &dv)
			if n.Length() > Epsilon {
				n.Normalize()
			} else {
				n = vec3.Zero
			}
			normals[this.Index(s, k)] = n
		}
	}

	this.Normals = normals
}

// difference returns p(s1,k1) - p(s0,k0), substituting (s,k) for either
// end that falls off the grid.
func (this *Mesh) difference(s0, k0, s1, k1, s, k int) vec3.T {
	i0, ok0 := this.wrapIndex(s0, k0)
	i1, ok1 := this.wrapIndex(s1, k1)
	if !ok0 {
		i0 = this.Index(s, k)
	}
	if !ok1 {
		i1 = this.Index(s, k)
	}

	return vec3.Sub(&this.Points[i1], &this.Points[i0])
}

func (this *Mesh) wrapIndex(s, k int) (int, bool) {
	ws, okS := wrap(s, this.Rows, this.CyclicU)
	wk, okK := wrap(k, this.Cols, this.CyclicV)
	return this.Index(ws, wk), okS && okK
}

// Triangulate splits every quad along its (s,k)-(s+1,k+1) diagonal.
func (this *Mesh) Triangulate() []Tri {
	tris := make([]Tri, 0, 2*len(this.Quads))
	for _, q := range this.Quads {
		tris = append(tris, Tri{q[0], q[1], q[2]}, Tri{q[0], q[2], q[3]})
	}

	return tris
}

// PointAt evaluates the grid at a UV coordinate by bilinear interpolation
// of the four surrounding vertices. UVs are assumed to follow the index
// layout: u = s/(Rows-1) and v = k/(Cols-1), or s/Rows and k/Cols on
// cyclic axes. Coordinates outside [0, 1] clamp on open axes and wrap on
// cyclic ones.
func (this *Mesh) PointAt(uv UV) vec3.T {
	s0, s1, ts := gridCell(uv[0], this.Rows, this.CyclicU)
	k0, k1, tk := gridCell(uv[1], this.Cols, this.CyclicV)

	p00, p01 := this.Points[this.Index(s0, k0)], this.Points[this.Index(s0, k1)]
	p10, p11 := this.Points[this.Index(s1, k0)], this.Points[this.Index(s1, k1)]

	a := vec3.Interpolate(&p00, &p01, tk)
	b := vec3.Interpolate(&p10, &p11, tk)

	return vec3.Interpolate(&a, &b, ts)
}

// gridCell finds the two grid lines bracketing parameter t on an axis of n
// vertices and the fraction between them.
func gridCell(t float64, n int, cyclic bool) (i0, i1 int, frac float64) {
	if n < 2 {
		return 0, 0, 0
	}

	var x float64
	if cyclic {
		t -= math.Floor(t)
		x = t * float64(n)
	} else {
		t = math.Max(0, math.Min(1, t))
		x = t * float64(n-1)
	}

	i0 = int(math.Floor(x))
	frac = x - float64(i0)

	if cyclic {
		i0 %= n
		return i0, (i0 + 1) % n, frac
	}

	if i0 >= n-1 {
		return n - 2, n - 1, 1
	}
	return i0, i0 + 1, frac
}
