// Package birail holds the geometry shared by the bi-rail loft: sampled
// curves with tilt, blend remapping functions, and the quad grid mesh the
// loft assembles. The loft itself lives in package loft.
//
// Curves and meshes use [vec3.T] from github.com/ungerik/go3d for points
// and directions, and [mat4.T] for affine transforms.
package birail
