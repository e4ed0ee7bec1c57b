package geom

// Length returns the total length of a polyline.
func Length(pts []Vec) float64 {
	var l float64
	for i := 1; i < len(pts); i++ {
		l += pts[i].Dist(pts[i-1])
	}
	return l
}

// Trim shortens a polyline by a from its start and b from its end, measured
// along the curve. If the trims consume the whole polyline, the midpoint
// (by arc length) is returned twice so callers still get a drawable segment.
func Trim(pts []Vec, a, b float64) []Vec {
	if len(pts) < 2 {
		return append([]Vec(nil), pts...)
	}
	total := Length(pts)
	if a < 0 {
		a = 0
	}
	if b < 0 {
		b = 0
	}
	if a+b >= total {
		m := pointAt(pts, total/2)
		return []Vec{m, m}
	}

	start, end := a, total-b
	out := []Vec{pointAt(pts, start)}
	var acc float64
	for i := 1; i < len(pts); i++ {
		acc += pts[i].Dist(pts[i-1])
		if acc > start && acc < end {
			out = append(out, pts[i])
		}
	}
	return append(out, pointAt(pts, end))
}

// pointAt returns the point at arc length s along pts.
func pointAt(pts []Vec, s float64) Vec {
	var acc float64
	for i := 1; i < len(pts); i++ {
		seg := pts[i].Dist(pts[i-1])
		if acc+seg >= s {
			if seg == 0 {
				return pts[i]
			}
			return pts[i-1].Lerp(pts[i], (s-acc)/seg)
		}
		acc += seg
	}
	return pts[len(pts)-1]
}
