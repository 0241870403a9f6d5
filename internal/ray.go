package internal

import "github.com/ungerik/go3d/float64/vec3"

type Ray struct {
	Origin, Dir vec3.T
}

// Find the closest point on a ray
//
// **params**
// + point to project
//
// **returns**
// + the projection of the point onto the line through Origin along Dir,
// Dir is assumed normalized
func (this Ray) ClosestPoint(pt vec3.T) vec3.T {
	o2pt := vec3.Sub(&pt, &this.Origin)
	do2ptr := vec3.Dot(&o2pt, &this.Dir)
	dirScaled := this.Dir.Scaled(do2ptr)

	return vec3.Add(&this.Origin, &dirScaled)
}

// Find the distance of a point to a ray
//
// **params**
// + point to project
//
// **returns**
// + the distance
func (this Ray) DistToPoint(pt vec3.T) float64 {
	d := this.ClosestPoint(pt)

	return vec3.Distance(&d, &pt)
}

// Reject removes the component of v along Dir, leaving the part of v
// perpendicular to the ray. Dir is assumed normalized.
func (this Ray) Reject(v vec3.T) vec3.T {
	along := this.Dir.Scaled(vec3.Dot(&v, &this.Dir))
	return vec3.Sub(&v, &along)
}
