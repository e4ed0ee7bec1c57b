package layout

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/quiverview/pkg/errors"
	"github.com/matzehuels/quiverview/pkg/geom"
	"github.com/matzehuels/quiverview/pkg/quiver"
)

// Graphviz lays a quiver out with a Graphviz engine ("fdp", "neato", ...).
type Graphviz struct {
	Engine string
}

// Name implements Provider.
func (g Graphviz) Name() string { return g.Engine }

// Layout implements Provider.
func (g Graphviz) Layout(ctx context.Context, q *quiver.Quiver) (Positions, error) {
	ids := q.NodeIDs()
	if len(ids) == 0 {
		return Positions{}, nil
	}

	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeLayout, err, "init graphviz")
	}
	defer gv.Close()
	gv.SetLayout(graphviz.Layout(g.Engine))

	graph, err := graphviz.ParseBytes([]byte(ToDOT(q)))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeLayout, err, "parse DOT")
	}
	defer graph.Close()

	// Rendering runs the layout engine, which stores pos on every node.
	if err := gv.Render(ctx, graph, graphviz.Format("dot"), io.Discard); err != nil {
		return nil, errors.Wrap(errors.ErrCodeLayout, err, "graphviz %s", g.Engine)
	}

	pos, err := readPositions(graph, len(ids))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeLayout, err, "graphviz %s", g.Engine)
	}
	rescale(pos, 1)

	out := make(Positions, len(ids))
	for i, id := range ids {
		out[id] = pos[i]
	}
	return out, nil
}

// ToDOT writes q as a DOT digraph. Nodes are named n0, n1, ... in insertion
// order so that node names never need escaping; the ID is kept as label.
func ToDOT(q *quiver.Quiver) string {
	var buf bytes.Buffer
	buf.WriteString("digraph Q {\n")
	buf.WriteString("  node [shape=circle, width=0.3, fixedsize=true];\n")

	names := make(map[string]string, q.NodeCount())
	for i, id := range q.NodeIDs() {
		names[id] = "n" + strconv.Itoa(i)
		fmt.Fprintf(&buf, "  %s [label=%s];\n", names[id], dotQuote(id))
	}
	for _, e := range q.Edges() {
		if e.IsLoop() {
			continue
		}
		fmt.Fprintf(&buf, "  %s -> %s;\n", names[e.Source], names[e.Target])
	}
	buf.WriteString("}\n")
	return buf.String()
}

// dotQuote writes s as a DOT double-quoted string. DOT only knows the \"
// escape; backslashes are doubled so that \n and friends stay literal.
func dotQuote(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `"`, `\"`)
	return `"` + r.Replace(s) + `"`
}

// readPositions collects the pos attribute of nodes n0..n(count-1) from a
// laid out graph.
func readPositions(graph *graphviz.Graph, count int) ([]geom.Vec, error) {
	pts := make([]geom.Vec, count)
	seen := make([]bool, count)
	n, err := graph.FirstNode()
	for ; err == nil && n != nil; n, err = graph.NextNode(n) {
		name, err := n.Name()
		if err != nil {
			return nil, err
		}
		i, ok := nodeIndex(name)
		if !ok || i >= count {
			continue
		}
		p, err := parsePos(n.GetStr("pos"))
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		pts[i], seen[i] = p, true
	}
	if err != nil {
		return nil, err
	}
	for i, ok := range seen {
		if !ok {
			return nil, fmt.Errorf("no position for n%d", i)
		}
	}
	return pts, nil
}

// nodeIndex returns i for a node named n<i>.
func nodeIndex(name string) (int, bool) {
	rest, ok := strings.CutPrefix(name, "n")
	if !ok {
		return 0, false
	}
	i, err := strconv.Atoi(rest)
	return i, err == nil && i >= 0
}

// parsePos reads a Graphviz point "x,y", "x,y!" or "x,y,z".
func parsePos(s string) (geom.Vec, error) {
	parts := strings.Split(strings.TrimSuffix(s, "!"), ",")
	if len(parts) < 2 {
		return geom.Vec{}, fmt.Errorf("bad pos %q", s)
	}
	x, errX := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	y, errY := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if errX != nil || errY != nil {
		return geom.Vec{}, fmt.Errorf("bad pos %q", s)
	}
	return geom.V(x, y), nil
}
