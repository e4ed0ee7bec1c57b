package geom

import "math"

// Vec is a 2D vector or point.
type Vec struct {
	X float64 `json:"x" toml:"x"`
	Y float64 `json:"y" toml:"y"`
}

// V is shorthand for Vec{x, y}.
func V(x, y float64) Vec { return Vec{X: x, Y: y} }

// Add returns v+w.
func (v Vec) Add(w Vec) Vec { return Vec{v.X + w.X, v.Y + w.Y} }

// Sub returns v-w.
func (v Vec) Sub(w Vec) Vec { return Vec{v.X - w.X, v.Y - w.Y} }

// Scale returns v·s.
func (v Vec) Scale(s float64) Vec { return Vec{v.X * s, v.Y * s} }

// Len returns the Euclidean length of v.
func (v Vec) Len() float64 { return math.Hypot(v.X, v.Y) }

// Dist returns the distance between v and w.
func (v Vec) Dist(w Vec) float64 { return v.Sub(w).Len() }

// Lerp returns the point at fraction t on the segment v→w.
func (v Vec) Lerp(w Vec, t float64) Vec {
	return Vec{v.X + (w.X-v.X)*t, v.Y + (w.Y-v.Y)*t}
}

// Unit returns v scaled to length 1. The second result is false when v has
// zero (or non-finite) length, in which case the zero vector is returned.
func (v Vec) Unit() (Vec, bool) {
	l := v.Len()
	if l == 0 || math.IsNaN(l) || math.IsInf(l, 0) {
		return Vec{}, false
	}
	return Vec{v.X / l, v.Y / l}, true
}

// UnitOr returns v normalized, or fallback when v is degenerate.
// The second result reports whether the fallback was used.
func (v Vec) UnitOr(fallback Vec) (Vec, bool) {
	if u, ok := v.Unit(); ok {
		return u, false
	}
	return fallback, true
}

// Rotate returns v rotated counter-clockwise by deg degrees.
func (v Vec) Rotate(deg float64) Vec {
	s, c := math.Sincos(deg * math.Pi / 180)
	return Vec{v.X*c - v.Y*s, v.X*s + v.Y*c}
}

// Perp returns v rotated clockwise by 90°: (y, -x).
func (v Vec) Perp() Vec { return Vec{v.Y, -v.X} }

// Linspace returns n evenly spaced values over [a, b], endpoints included.
// n <= 0 yields nil and n == 1 yields [a].
func Linspace(a, b float64, n int) []float64 {
	if n <= 0 {
		return nil
	}
	if n == 1 {
		return []float64{a}
	}
	out := make([]float64, n)
	step := (b - a) / float64(n-1)
	for i := range out {
		out[i] = a + step*float64(i)
	}
	out[n-1] = b
	return out
}
