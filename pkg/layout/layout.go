// Package layout places quiver nodes in the plane.
//
// A [Provider] returns one position per node. Two providers are available:
// [Spring], a seeded Fruchterman–Reingold simulation, and [Graphviz], which
// delegates to one of the Graphviz layout engines. Both rescale their output
// so that coordinates fall within [-1, 1] around the origin.
package layout

import (
	"context"
	"math"
	"slices"

	"github.com/matzehuels/quiverview/pkg/config"
	"github.com/matzehuels/quiverview/pkg/errors"
	"github.com/matzehuels/quiverview/pkg/geom"
	"github.com/matzehuels/quiverview/pkg/quiver"
)

// Positions maps node IDs to coordinates.
type Positions map[string]geom.Vec

// Provider computes node coordinates for a quiver. It must not modify q.
type Provider interface {
	Layout(ctx context.Context, q *quiver.Quiver) (Positions, error)
	Name() string
}

// Engines lists the Graphviz engines accepted by [FromConfig].
var Engines = []string{"dot", "neato", "fdp", "sfdp", "circo", "twopi", "osage", "patchwork"}

// FromConfig returns the provider selected by cfg.Engine.
func FromConfig(cfg config.Layout) (Provider, error) {
	if cfg.Engine == config.EngineSpring {
		return Spring{Iterations: cfg.Iterations, Seed: cfg.Seed, Scale: 1}, nil
	}
	if slices.Contains(Engines, cfg.Engine) {
		return Graphviz{Engine: cfg.Engine}, nil
	}
	return nil, errors.New(errors.ErrCodeInvalidConfig, "unknown layout engine %q (want %s or one of %v)",
		cfg.Engine, config.EngineSpring, Engines)
}

// Apply lays out q and stores the result on its nodes.
func Apply(ctx context.Context, p Provider, q *quiver.Quiver) error {
	pos, err := p.Layout(ctx, q)
	if err != nil {
		return err
	}
	q.SetPositions(pos)
	return nil
}

// rescale centres pts on the origin and scales them so the largest absolute
// coordinate equals scale.
func rescale(pts []geom.Vec, scale float64) {
	if len(pts) == 0 {
		return
	}
	var mean geom.Vec
	for _, p := range pts {
		mean = mean.Add(p)
	}
	mean = mean.Scale(1 / float64(len(pts)))

	var lim float64
	for i := range pts {
		pts[i] = pts[i].Sub(mean)
		lim = math.Max(lim, math.Max(math.Abs(pts[i].X), math.Abs(pts[i].Y)))
	}
	if lim == 0 {
		return
	}
	for i := range pts {
		pts[i] = pts[i].Scale(scale / lim)
	}
}
