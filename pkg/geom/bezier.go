package geom

// Quad is a quadratic Bézier curve.
type Quad struct {
	P0, P1, P2 Vec
}

// At evaluates the curve at t.
func (q Quad) At(t float64) Vec {
	u := 1 - t
	return q.P0.Scale(u * u).
		Add(q.P1.Scale(2 * u * t)).
		Add(q.P2.Scale(t * t))
}

// Sample evaluates the curve at n evenly spaced parameters over [0, 1].
func (q Quad) Sample(n int) []Vec {
	ts := Linspace(0, 1, n)
	out := make([]Vec, len(ts))
	for i, t := range ts {
		out[i] = q.At(t)
	}
	return out
}

// Cubic is a cubic Bézier curve.
type Cubic struct {
	P0, P1, P2, P3 Vec
}

// At evaluates the curve at t.
func (c Cubic) At(t float64) Vec {
	u := 1 - t
	return c.P0.Scale(u * u * u).
		Add(c.P1.Scale(3 * u * u * t)).
		Add(c.P2.Scale(3 * u * t * t)).
		Add(c.P3.Scale(t * t * t))
}

// SampleRange evaluates the curve at n evenly spaced parameters over [t0, t1].
func (c Cubic) SampleRange(t0, t1 float64, n int) []Vec {
	ts := Linspace(t0, t1, n)
	out := make([]Vec, len(ts))
	for i, t := range ts {
		out[i] = c.At(t)
	}
	return out
}
