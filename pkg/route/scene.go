package route

import (
	"github.com/google/uuid"

	"github.com/matzehuels/quiverview/pkg/geom"
)

// Scene is the full set of drawable primitives for one state of a quiver.
// A renderer draws a Scene from scratch; nothing carries over between scenes.
type Scene struct {
	Vertices   []Vertex
	Arcs       []Arc
	Loops      []Loop
	Arrowheads []Arrowhead

	// Warnings collects DEGENERATE_GEOMETRY errors for primitives whose
	// direction had to be replaced by a default.
	Warnings []error
}

// Vertex is a node marker.
type Vertex struct {
	Node       string
	Pos        geom.Vec
	Size       float64 // marker diameter in pixels
	PickRadius float64 // hit tolerance in pixels
}

// Arc is a non-loop edge drawn as a quadratic Bézier from Source to Target.
type Arc struct {
	Edge   uuid.UUID
	Source string
	Target string
	Label  string

	// Rad is the arc3 curvature: the control point sits Rad times the chord
	// length off the chord midpoint. Zero draws a straight line.
	Rad   float64
	Curve geom.Quad
	Dir   geom.Vec // unit chord direction

	// Pixel lengths removed from each end after projection.
	ShrinkA float64
	ShrinkB float64
}

// Loop is a self-loop petal, already sampled in world coordinates.
type Loop struct {
	Edge  uuid.UUID
	Node  string
	Label string

	Rad        float64
	Curve      geom.Cubic
	Points     []geom.Vec
	PickRadius float64
}

// Arrowhead marks the end of a loop; Tail→Tip gives its shaft.
type Arrowhead struct {
	Edge uuid.UUID
	Tail geom.Vec
	Tip  geom.Vec
}

// RefKind tells what a pick reference points at.
type RefKind int

const (
	RefNone RefKind = iota
	RefNode
	RefLoop
)

func (k RefKind) String() string {
	switch k {
	case RefNode:
		return "node"
	case RefLoop:
		return "loop"
	default:
		return "none"
	}
}

// Ref identifies a pickable primitive: a node marker or a self-loop curve.
type Ref struct {
	Kind RefKind
	Node string    // node ID; for loops, the node the loop sits on
	Edge uuid.UUID // loop edge ID, zero for nodes
}

// NodeRef returns a reference to a node marker.
func NodeRef(id string) Ref { return Ref{Kind: RefNode, Node: id} }

// LoopRef returns a reference to a self-loop curve.
func LoopRef(node string, edge uuid.UUID) Ref { return Ref{Kind: RefLoop, Node: node, Edge: edge} }

// IsZero reports whether r points at nothing.
func (r Ref) IsZero() bool { return r.Kind == RefNone }
