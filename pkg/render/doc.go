// Package render holds what the quiver renderers share: the [Viewport] that
// maps world coordinates to pixels, and helpers that turn routed primitives
// into pixel polylines with arrowheads.
//
// Two renderers build on it:
//
//   - [term]: a braille canvas for the interactive terminal viewer, which
//     also answers hit-tests for the pick controller
//   - [svg]: a static SVG document of a scene
//
// World coordinates have y pointing up; pixel coordinates have y pointing
// down with the origin in the top-left corner.
//
// [term]: github.com/matzehuels/quiverview/pkg/render/term
// [svg]: github.com/matzehuels/quiverview/pkg/render/svg
package render
