package render

import (
	"math"

	"github.com/matzehuels/quiverview/pkg/geom"
	"github.com/matzehuels/quiverview/pkg/route"
)

// Arrowhead proportions in pixels.
const (
	ArrowLength = 5.0
	ArrowAngle  = 25.0 // half-opening in degrees
)

// ArcPixels samples an arc, projects it and trims ShrinkA/ShrinkB pixels
// from its ends so that the arrow stops short of the node markers.
func ArcPixels(a route.Arc, vp Viewport) []geom.Vec {
	p0, p2 := vp.ToPixel(a.Curve.P0), vp.ToPixel(a.Curve.P2)
	n := max(8, int(math.Ceil(p0.Dist(p2)/2)))
	pts := vp.ToPixels(a.Curve.Sample(n))
	return geom.Trim(pts, a.ShrinkA, a.ShrinkB)
}

// LoopPixels projects the sampled points of a loop.
func LoopPixels(l route.Loop, vp Viewport) []geom.Vec {
	return vp.ToPixels(l.Points)
}

// ArrowHead returns the triangle tip, left, right of an arrow pointing from
// tail to tip. A zero-length shaft points the arrow along +x.
func ArrowHead(tail, tip geom.Vec) [3]geom.Vec {
	back, _ := tail.Sub(tip).UnitOr(geom.V(-1, 0))
	back = back.Scale(ArrowLength)
	return [3]geom.Vec{
		tip,
		tip.Add(back.Rotate(ArrowAngle)),
		tip.Add(back.Rotate(-ArrowAngle)),
	}
}

// EndArrow returns the arrowhead at the end of a pixel polyline.
func EndArrow(pts []geom.Vec) ([3]geom.Vec, bool) {
	if len(pts) < 2 {
		return [3]geom.Vec{}, false
	}
	return ArrowHead(pts[len(pts)-2], pts[len(pts)-1]), true
}

// SegmentDistance returns the distance from p to the segment a-b.
func SegmentDistance(p, a, b geom.Vec) float64 {
	ab := b.Sub(a)
	l2 := ab.X*ab.X + ab.Y*ab.Y
	if l2 == 0 {
		return p.Dist(a)
	}
	ap := p.Sub(a)
	t := (ap.X*ab.X + ap.Y*ab.Y) / l2
	t = math.Max(0, math.Min(1, t))
	return p.Dist(a.Lerp(b, t))
}

// PolylineDistance returns the distance from p to the closest segment of pts.
func PolylineDistance(p geom.Vec, pts []geom.Vec) float64 {
	switch len(pts) {
	case 0:
		return math.Inf(1)
	case 1:
		return p.Dist(pts[0])
	}
	best := math.Inf(1)
	for i := 1; i < len(pts); i++ {
		best = math.Min(best, SegmentDistance(p, pts[i-1], pts[i]))
	}
	return best
}
