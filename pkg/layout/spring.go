package layout

import (
	"context"
	"math"
	"math/rand/v2"

	"github.com/matzehuels/quiverview/pkg/config"
	"github.com/matzehuels/quiverview/pkg/geom"
	"github.com/matzehuels/quiverview/pkg/quiver"
)

const (
	minDistance     = 0.01
	convergenceStop = 1e-4
)

// Spring is a Fruchterman–Reingold force-directed layout. Edge multiplicity
// weights the attraction between two nodes. The same Seed always produces
// the same positions for the same quiver.
type Spring struct {
	Iterations int
	Seed       uint64
	Scale      float64
}

// DefaultSpring returns the spring layout with default settings.
func DefaultSpring() Spring {
	return Spring{Iterations: config.DefaultIterations, Seed: config.DefaultSeed, Scale: 1}
}

// Name implements Provider.
func (Spring) Name() string { return config.EngineSpring }

// Layout implements Provider.
func (s Spring) Layout(ctx context.Context, q *quiver.Quiver) (Positions, error) {
	ids := q.NodeIDs()
	n := len(ids)
	out := make(Positions, n)
	switch n {
	case 0:
		return out, nil
	case 1:
		out[ids[0]] = geom.Vec{}
		return out, nil
	}

	index := make(map[string]int, n)
	for i, id := range ids {
		index[id] = i
	}
	weight := make([][]float64, n)
	for i := range weight {
		weight[i] = make([]float64, n)
	}
	for _, e := range q.Edges() {
		weight[index[e.Source]][index[e.Target]]++
	}

	rng := rand.New(rand.NewPCG(s.Seed, s.Seed))
	pos := make([]geom.Vec, n)
	for i := range pos {
		pos[i] = geom.V(rng.Float64(), rng.Float64())
	}

	k := math.Sqrt(1 / float64(n))
	t := 0.1 * spread(pos)
	iterations := max(s.Iterations, 1)
	dt := t / float64(iterations+1)

	disp := make([]geom.Vec, n)
	for range iterations {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		for i := range disp {
			disp[i] = geom.Vec{}
			for j := range pos {
				if i == j {
					continue
				}
				delta := pos[i].Sub(pos[j])
				d := math.Max(delta.Len(), minDistance)
				force := k*k/(d*d) - weight[i][j]*d/k
				disp[i] = disp[i].Add(delta.Scale(force))
			}
		}

		var moved float64
		for i := range pos {
			l := disp[i].Len()
			if l < minDistance {
				l = 0.1
			}
			step := disp[i].Scale(t / l)
			pos[i] = pos[i].Add(step)
			moved += step.Len()
		}
		t -= dt
		if moved/float64(n) < convergenceStop {
			break
		}
	}

	scale := s.Scale
	if scale == 0 {
		scale = 1
	}
	rescale(pos, scale)
	for i, id := range ids {
		out[id] = pos[i]
	}
	return out, nil
}

// spread returns the larger side of the bounding box of pts.
func spread(pts []geom.Vec) float64 {
	minX, maxX := math.Inf(1), math.Inf(-1)
	minY, maxY := math.Inf(1), math.Inf(-1)
	for _, p := range pts {
		minX, maxX = math.Min(minX, p.X), math.Max(maxX, p.X)
		minY, maxY = math.Min(minY, p.Y), math.Max(maxY, p.Y)
	}
	return math.Max(maxX-minX, maxY-minY)
}
