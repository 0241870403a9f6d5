// Package export writes loft meshes and profile networks to interchange
// formats: Wavefront OBJ, binary STL and JSON.
package export
