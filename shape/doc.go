// Package shape builds sampled curves for common rail and profile shapes:
// lines, polylines, circular and elliptical arcs, circles and ellipses.
package shape
