// Package geom provides the small amount of 2D geometry the viewer needs:
// vectors, rotation, Bézier evaluation and polyline trimming.
//
// All functions are pure and allocation-light. Coordinates are plain float64
// pairs; the package does not know whether they are world units or pixels.
package geom
