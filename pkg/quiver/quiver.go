package quiver

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/google/uuid"

	"github.com/matzehuels/quiverview/pkg/geom"
)

var (
	// ErrInvalidNodeID is returned by [Quiver.AddNode] when the ID is empty.
	ErrInvalidNodeID = errors.New("node ID must not be empty")

	// ErrDuplicateNodeID is returned by [Quiver.AddNode] when a node with the
	// same ID already exists.
	ErrDuplicateNodeID = errors.New("duplicate node ID")

	// ErrUnknownNode is returned when an operation references a node that is
	// not part of the quiver.
	ErrUnknownNode = errors.New("unknown node")

	// ErrUnknownEdge is returned when an edge ID is not part of the quiver.
	ErrUnknownEdge = errors.New("unknown edge")

	// ErrInconsistentIndex is returned by [Quiver.Validate] when the pair index
	// disagrees with the edge list.
	ErrInconsistentIndex = errors.New("pair index out of sync with edges")

	// ErrLoopMeta is returned by [Quiver.Validate] when loop metadata is
	// present on a non-loop edge or missing on a loop.
	ErrLoopMeta = errors.New("loop metadata must exist iff source equals target")
)

// Default self-loop geometry.
const (
	DefaultLoopAngle     = 40.0
	DefaultLoopMagnitude = 1.0
)

// DefaultLoopDirection is the direction a new self-loop points to.
var DefaultLoopDirection = geom.V(1, 1)

// Node is a quiver vertex.
type Node struct {
	ID  string
	Pos geom.Vec
}

// LoopMeta is the mutable geometry of a self-loop. Direction and Magnitude are
// changed by loop dragging; Angle is fixed when the loop is created.
type LoopMeta struct {
	Direction geom.Vec
	Magnitude float64
	Angle     float64 // half-spread of the loop petal, in degrees
}

// Edge is one arrow of the quiver. Parallel arrows between the same ordered
// pair are distinct Edge values told apart by ID.
type Edge struct {
	ID     uuid.UUID
	Source string
	Target string
	Label  string

	// Loop is non-nil exactly when Source == Target.
	Loop *LoopMeta
}

// IsLoop reports whether the edge starts and ends at the same node.
func (e *Edge) IsLoop() bool { return e.Source == e.Target }

// Pair returns the ordered (source, target) pair of the edge.
func (e *Edge) Pair() Pair { return Pair{e.Source, e.Target} }

// Pair is an ordered (source, target) node pair.
type Pair struct {
	Source string
	Target string
}

// Reverse returns the pair with source and target swapped.
func (p Pair) Reverse() Pair { return Pair{p.Target, p.Source} }

// IsLoop reports whether the pair starts and ends at the same node.
func (p Pair) IsLoop() bool { return p.Source == p.Target }

func (p Pair) String() string { return p.Source + "->" + p.Target }

// Option configures a Quiver at construction.
type Option func(*Quiver)

// WithLoopAngle sets the half-spread angle, in degrees, given to self-loops
// created in this quiver.
func WithLoopAngle(deg float64) Option {
	return func(q *Quiver) { q.loopAngle = deg }
}

// Quiver is a directed multigraph with positioned nodes.
//
// The zero value is not usable - use New.
type Quiver struct {
	nodes map[string]*Node
	order []string // node IDs in insertion order

	edges []*Edge
	byID  map[uuid.UUID]*Edge
	index map[Pair][]*Edge
	pairs []Pair // pairs in first-seen order

	loopAngle float64
}

// New creates an empty quiver.
func New(opts ...Option) *Quiver {
	q := &Quiver{
		nodes:     make(map[string]*Node),
		byID:      make(map[uuid.UUID]*Edge),
		index:     make(map[Pair][]*Edge),
		loopAngle: DefaultLoopAngle,
	}
	for _, opt := range opts {
		opt(q)
	}
	return q
}

// LoopAngle returns the angle given to newly created self-loops.
func (q *Quiver) LoopAngle() float64 { return q.loopAngle }

// AddNode adds a node at the origin. It returns ErrInvalidNodeID for an empty
// ID and ErrDuplicateNodeID if the ID is already taken.
func (q *Quiver) AddNode(id string) (*Node, error) {
	if id == "" {
		return nil, ErrInvalidNodeID
	}
	if _, exists := q.nodes[id]; exists {
		return nil, fmt.Errorf("%w: %q", ErrDuplicateNodeID, id)
	}
	n := &Node{ID: id}
	q.nodes[id] = n
	q.order = append(q.order, id)
	return n, nil
}

// EnsureNode returns the node with the given ID, adding it if missing.
func (q *Quiver) EnsureNode(id string) (*Node, error) {
	if n, ok := q.nodes[id]; ok {
		return n, nil
	}
	return q.AddNode(id)
}

// AddEdge appends a new edge instance. Both endpoints must exist. Self-loops
// receive default LoopMeta using the quiver's loop angle.
func (q *Quiver) AddEdge(source, target, label string) (*Edge, error) {
	if _, ok := q.nodes[source]; !ok {
		return nil, fmt.Errorf("%w: source %q", ErrUnknownNode, source)
	}
	if _, ok := q.nodes[target]; !ok {
		return nil, fmt.Errorf("%w: target %q", ErrUnknownNode, target)
	}

	e := &Edge{
		ID:     uuid.New(),
		Source: source,
		Target: target,
		Label:  label,
	}
	if e.IsLoop() {
		e.Loop = &LoopMeta{
			Direction: DefaultLoopDirection,
			Magnitude: DefaultLoopMagnitude,
			Angle:     q.loopAngle,
		}
	}

	p := e.Pair()
	if _, seen := q.index[p]; !seen {
		q.pairs = append(q.pairs, p)
	}
	q.index[p] = append(q.index[p], e)
	q.edges = append(q.edges, e)
	q.byID[e.ID] = e
	return e, nil
}

// Node returns the node with the given ID.
func (q *Quiver) Node(id string) (*Node, bool) {
	n, ok := q.nodes[id]
	return n, ok
}

// Nodes returns all nodes in insertion order. The pointers refer to the live
// nodes.
func (q *Quiver) Nodes() []*Node {
	out := make([]*Node, len(q.order))
	for i, id := range q.order {
		out[i] = q.nodes[id]
	}
	return out
}

// NodeIDs returns node identifiers in insertion order.
func (q *Quiver) NodeIDs() []string { return append([]string(nil), q.order...) }

// NodeCount returns the number of nodes.
func (q *Quiver) NodeCount() int { return len(q.order) }

// Edge returns the edge instance with the given ID.
func (q *Quiver) Edge(id uuid.UUID) (*Edge, bool) {
	e, ok := q.byID[id]
	return e, ok
}

// Edges returns all edge instances in insertion order.
func (q *Quiver) Edges() []*Edge { return append([]*Edge(nil), q.edges...) }

// EdgeCount returns the number of edge instances.
func (q *Quiver) EdgeCount() int { return len(q.edges) }

// Count returns the number of edge instances from u to v.
func (q *Quiver) Count(u, v string) int { return len(q.index[Pair{u, v}]) }

// Between returns the edge instances from u to v in insertion order. The
// returned slice must not be modified.
func (q *Quiver) Between(u, v string) []*Edge { return q.index[Pair{u, v}] }

// Pairs returns every ordered pair with at least one edge, in the order the
// pair first appeared.
func (q *Quiver) Pairs() []Pair { return append([]Pair(nil), q.pairs...) }

// Loops returns the self-loop instances at node id.
func (q *Quiver) Loops(id string) []*Edge { return q.index[Pair{id, id}] }

// SetPosition moves a single node.
func (q *Quiver) SetPosition(id string, p geom.Vec) error {
	n, ok := q.nodes[id]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownNode, id)
	}
	n.Pos = p
	return nil
}

// SetPositions moves every node listed in pos. Nodes missing from pos keep
// their position; IDs not in the quiver are ignored.
func (q *Quiver) SetPositions(pos map[string]geom.Vec) {
	for id, p := range pos {
		if n, ok := q.nodes[id]; ok {
			n.Pos = p
		}
	}
}

// Positions returns a snapshot of all node positions.
func (q *Quiver) Positions() map[string]geom.Vec {
	out := make(map[string]geom.Vec, len(q.nodes))
	for id, n := range q.nodes {
		out[id] = n.Pos
	}
	return out
}

// NextNodeID returns the identifier for a node added interactively: the
// decimal form of NodeCount()+1, incremented until it does not collide with
// an existing node.
func (q *Quiver) NextNodeID() string {
	for i := q.NodeCount() + 1; ; i++ {
		id := strconv.Itoa(i)
		if _, taken := q.nodes[id]; !taken {
			return id
		}
	}
}

// Validate checks the model invariants: every edge endpoint exists, the pair
// index matches the edge list, and loop metadata is present exactly on loops.
func (q *Quiver) Validate() error {
	counts := make(map[Pair]int, len(q.index))
	for _, e := range q.edges {
		if _, ok := q.nodes[e.Source]; !ok {
			return fmt.Errorf("%w: source %q", ErrUnknownNode, e.Source)
		}
		if _, ok := q.nodes[e.Target]; !ok {
			return fmt.Errorf("%w: target %q", ErrUnknownNode, e.Target)
		}
		if e.IsLoop() != (e.Loop != nil) {
			return fmt.Errorf("%w: edge %s", ErrLoopMeta, e.ID)
		}
		counts[e.Pair()]++
	}
	if len(counts) != len(q.index) || len(q.pairs) != len(q.index) {
		return ErrInconsistentIndex
	}
	for p, n := range counts {
		if len(q.index[p]) != n {
			return fmt.Errorf("%w: %s", ErrInconsistentIndex, p)
		}
	}
	return nil
}
