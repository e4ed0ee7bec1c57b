// Package route computes edge geometry for a quiver.
//
// Parallel arcs between the same ordered pair fan out by decreasing arc3
// curvature, starting at floor(total/2)*arc_step where total counts the arcs
// in both directions. Self-loops are cubic petals around a direction vector,
// sampled over t in [0.05, 0.95] so that a gap is left for the arrowhead.
package route

import (
	"io"
	"math"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/quiverview/pkg/config"
	"github.com/matzehuels/quiverview/pkg/errors"
	"github.com/matzehuels/quiverview/pkg/geom"
	"github.com/matzehuels/quiverview/pkg/quiver"
)

// Loop sampling window.
const (
	LoopT0 = 0.05
	LoopT1 = 0.95

	// LoopRad is the fixed curvature constant of loops. It is not
	// decremented across loops at the same node.
	LoopRad = 1.0
)

var (
	arcFallback  = geom.V(1, 0)
	loopFallback = geom.V(math.Sqrt2/2, math.Sqrt2/2)
)

// Router turns a quiver into a Scene. It only reads the model.
type Router struct {
	cfg    config.View
	Logger *log.Logger
}

// New returns a router using the given view settings.
func New(cfg config.View) *Router {
	return &Router{
		cfg:    cfg,
		Logger: log.NewWithOptions(io.Discard, log.Options{}),
	}
}

// Config returns the view settings the router was built with.
func (r *Router) Config() config.View { return r.cfg }

// Route computes all primitives for q.
func (r *Router) Route(q *quiver.Quiver) *Scene {
	s := &Scene{}
	r.vertices(q, s)
	for _, p := range q.Pairs() {
		if p.IsLoop() {
			r.loops(q, p.Source, s)
			continue
		}
		r.arcs(q, p, s)
	}
	for _, w := range s.Warnings {
		r.Logger.Debug("degenerate geometry", "err", w)
	}
	return s
}

func (r *Router) vertices(q *quiver.Quiver, s *Scene) {
	for _, n := range q.Nodes() {
		s.Vertices = append(s.Vertices, Vertex{
			Node:       n.ID,
			Pos:        n.Pos,
			Size:       r.cfg.NodeSize,
			PickRadius: r.cfg.PickRadius,
		})
	}
}

// Curvatures returns the arc3 curvature of each of the numUV arcs from u to
// v when numVU arcs run the other way.
func Curvatures(numUV, numVU int, step float64) []float64 {
	total := numUV + numVU
	rad := float64(total/2) * step
	out := make([]float64, numUV)
	for i := range out {
		out[i] = rad
		rad -= step
	}
	return out
}

func (r *Router) arcs(q *quiver.Quiver, p quiver.Pair, s *Scene) {
	u, _ := q.Node(p.Source)
	v, _ := q.Node(p.Target)
	edges := q.Between(p.Source, p.Target)
	rads := Curvatures(len(edges), q.Count(p.Target, p.Source), r.cfg.ArcStep)

	chord := v.Pos.Sub(u.Pos)
	dir, degenerate := chord.UnitOr(arcFallback)
	if degenerate {
		s.Warnings = append(s.Warnings, errors.New(errors.ErrCodeDegenerateGeometry,
			"nodes %q and %q coincide", p.Source, p.Target))
	}

	mid := u.Pos.Lerp(v.Pos, 0.5)
	for i, e := range edges {
		s.Arcs = append(s.Arcs, Arc{
			Edge:    e.ID,
			Source:  e.Source,
			Target:  e.Target,
			Label:   e.Label,
			Rad:     rads[i],
			Curve:   geom.Quad{P0: u.Pos, P1: mid.Add(chord.Perp().Scale(rads[i])), P2: v.Pos},
			Dir:     dir,
			ShrinkA: r.cfg.ArrowShrink,
			ShrinkB: r.cfg.ArrowShrink,
		})
	}
}

func (r *Router) loops(q *quiver.Quiver, id string, s *Scene) {
	n, _ := q.Node(id)
	for _, e := range q.Loops(id) {
		meta := e.Loop
		dir, degenerate := meta.Direction.UnitOr(loopFallback)
		if degenerate {
			s.Warnings = append(s.Warnings, errors.New(errors.ErrCodeDegenerateGeometry,
				"loop %s at %q has zero direction", e.ID, id))
		}
		c := LoopCurve(n.Pos, dir, meta.Magnitude, meta.Angle)
		pts := c.SampleRange(LoopT0, LoopT1, r.cfg.LoopSamples)

		s.Loops = append(s.Loops, Loop{
			Edge:       e.ID,
			Node:       id,
			Label:      e.Label,
			Rad:        LoopRad,
			Curve:      c,
			Points:     pts,
			PickRadius: r.cfg.PickRadius,
		})
		if len(pts) >= 2 {
			s.Arrowheads = append(s.Arrowheads, Arrowhead{
				Edge: e.ID,
				Tail: pts[len(pts)-2],
				Tip:  pts[len(pts)-1],
			})
		}
	}
}

// LoopCurve returns the petal at p for a unit direction, magnitude and
// half-spread angle in degrees.
func LoopCurve(p, dir geom.Vec, magnitude, angle float64) geom.Cubic {
	d1 := dir.Rotate(angle)
	d2 := dir.Rotate(-angle)
	return geom.Cubic{
		P0: p,
		P1: p.Add(d1.Scale(magnitude)),
		P2: p.Add(d2.Scale(magnitude)),
		P3: p,
	}
}
