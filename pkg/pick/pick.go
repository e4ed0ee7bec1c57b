// Package pick implements the pointer and clipboard interaction of the
// quiver viewer as an explicit state machine.
//
// The [Controller] is driven by discrete events and owns the only mutable
// interaction state (the gesture state and its target):
//
//	Idle      --double(at)-->  Idle       add node NextNodeID() at `at`
//	any       --down-------->  MouseDown  target cleared
//	MouseDown --pick(ref)--->  MouseDown  first target of the gesture wins
//	MouseDown --move(at)---->  MouseDown  drag node or loop handle
//	any       --up---------->  Idle       target cleared
//	Idle      --paste(text)->  Idle       replace the whole model
//
// Every effective mutation re-runs the router and hands the scene to the
// [View]. Events are expected serially from a single UI loop; the
// controller does no locking.
package pick

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/quiverview/pkg/codec"
	"github.com/matzehuels/quiverview/pkg/errors"
	"github.com/matzehuels/quiverview/pkg/geom"
	"github.com/matzehuels/quiverview/pkg/layout"
	"github.com/matzehuels/quiverview/pkg/observability"
	"github.com/matzehuels/quiverview/pkg/quiver"
	"github.com/matzehuels/quiverview/pkg/route"
)

// State is the gesture state.
type State int

const (
	Idle State = iota
	MouseDown
)

func (s State) String() string {
	if s == MouseDown {
		return "mouse-down"
	}
	return "idle"
}

// View draws scenes and shows non-fatal failures to the user.
type View interface {
	Draw(s *route.Scene)
	Notify(err error)
}

// Option configures a Controller.
type Option func(*Controller)

// WithLogger sets the logger for rejected gestures and model replacement.
func WithLogger(l *log.Logger) Option {
	return func(c *Controller) {
		if l != nil {
			c.logger = l
		}
	}
}

// Controller mediates between input events, the quiver and the view.
type Controller struct {
	q      *quiver.Quiver
	router *route.Router
	layout layout.Provider
	view   View
	logger *log.Logger

	state  State
	target route.Ref
}

// New returns an idle controller. It does not draw; call Redraw once the
// view is ready.
func New(q *quiver.Quiver, router *route.Router, lp layout.Provider, view View, opts ...Option) *Controller {
	c := &Controller{
		q:      q,
		router: router,
		layout: lp,
		view:   view,
		logger: log.NewWithOptions(io.Discard, log.Options{}),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Model returns the current quiver. A successful Paste replaces it.
func (c *Controller) Model() *quiver.Quiver { return c.q }

// State returns the gesture state.
func (c *Controller) State() State { return c.state }

// Target returns the primitive being dragged, or the zero Ref.
func (c *Controller) Target() route.Ref { return c.target }

// PointerDown starts a gesture with no target.
func (c *Controller) PointerDown() {
	c.state = MouseDown
	c.target = route.Ref{}
}

// PointerDownDouble adds a node at the world point at. It only acts while
// Idle and returns the new node's ID, or "" when the gesture was ignored.
func (c *Controller) PointerDownDouble(at geom.Vec) string {
	if c.state != Idle {
		c.logger.Debug("double click ignored", "state", c.state)
		return ""
	}
	id := c.q.NextNodeID()
	n, err := c.q.AddNode(id)
	if err != nil {
		// NextNodeID never returns a taken ID.
		c.view.Notify(errors.Wrap(errors.ErrCodeInternal, err, "add node %q", id))
		return ""
	}
	n.Pos = at
	c.logger.Debug("node added", "id", id, "x", at.X, "y", at.Y)
	observability.Edit().OnNodeAdded(context.Background(), id)
	c.Redraw()
	return id
}

// Pick records the target of the current gesture. Only the first pick after
// PointerDown is accepted; picks while Idle and references to primitives
// that no longer exist are ignored.
func (c *Controller) Pick(ref route.Ref) bool {
	if c.state != MouseDown || !c.target.IsZero() || ref.IsZero() {
		return false
	}
	if !c.exists(ref) {
		c.logger.Debug("stale pick ignored", "kind", ref.Kind, "node", ref.Node)
		return false
	}
	c.target = ref
	return true
}

func (c *Controller) exists(ref route.Ref) bool {
	switch ref.Kind {
	case route.RefNode:
		_, ok := c.q.Node(ref.Node)
		return ok
	case route.RefLoop:
		e, ok := c.q.Edge(ref.Edge)
		return ok && e.IsLoop() && e.Source == ref.Node
	}
	return false
}

// PointerMove drags the current target to the world point at. Dragging a
// node moves only that node; dragging a loop points its petal at `at`.
func (c *Controller) PointerMove(at geom.Vec) {
	if c.state != MouseDown {
		return
	}
	switch c.target.Kind {
	case route.RefNode:
		if err := c.q.SetPosition(c.target.Node, at); err != nil {
			c.logger.Debug("drag target vanished", "err", err)
			return
		}
	case route.RefLoop:
		e, ok := c.q.Edge(c.target.Edge)
		n, nok := c.q.Node(c.target.Node)
		if !ok || !nok || e.Loop == nil {
			return
		}
		dir := at.Sub(n.Pos)
		e.Loop.Direction = dir
		e.Loop.Magnitude = dir.Len() * c.router.Config().LoopDragScale
	default:
		return
	}
	c.Redraw()
}

// PointerUp ends the gesture.
func (c *Controller) PointerUp() {
	c.state = Idle
	c.target = route.Ref{}
}

// Paste replaces the model with the quiver found in text and lays it out.
// It is ignored during a gesture. On failure the current model is kept,
// the view is notified and the error is returned.
func (c *Controller) Paste(ctx context.Context, text string) error {
	if c.state != Idle {
		c.logger.Debug("paste ignored", "state", c.state)
		return nil
	}

	start := time.Now()
	q, err := codec.Deserialize(text, quiver.WithLoopAngle(c.router.Config().LoopAngle))
	if err != nil {
		observability.Viewer().OnParse(ctx, len(text), 0, 0, time.Since(start), err)
		return c.fail(err)
	}
	observability.Viewer().OnParse(ctx, len(text), q.NodeCount(), q.EdgeCount(), time.Since(start), nil)

	if err := c.place(ctx, q); err != nil {
		return c.fail(err)
	}

	c.q = q
	c.target = route.Ref{}
	c.logger.Info("quiver replaced", "nodes", q.NodeCount(), "edges", q.EdgeCount(), "layout", c.layout.Name())
	observability.Edit().OnModelReplaced(ctx, q.NodeCount(), q.EdgeCount())
	c.Redraw()
	return nil
}

// Relayout re-runs the layout provider on the current model. Like Paste it
// only acts while Idle.
func (c *Controller) Relayout(ctx context.Context) error {
	if c.state != Idle {
		return nil
	}
	if err := c.place(ctx, c.q); err != nil {
		return c.fail(err)
	}
	c.Redraw()
	return nil
}

func (c *Controller) place(ctx context.Context, q *quiver.Quiver) error {
	start := time.Now()
	pos, err := c.layout.Layout(ctx, q)
	observability.Viewer().OnLayout(ctx, c.layout.Name(), q.NodeCount(), time.Since(start), err)
	if err != nil {
		if errors.GetCode(err) == "" {
			err = errors.Wrap(errors.ErrCodeLayout, err, "%s layout", c.layout.Name())
		}
		return err
	}
	q.SetPositions(pos)
	return nil
}

func (c *Controller) fail(err error) error {
	c.logger.Warn("model update rejected", "err", err)
	c.view.Notify(err)
	return err
}

// Redraw routes the current model and hands the scene to the view.
func (c *Controller) Redraw() {
	start := time.Now()
	s := c.router.Route(c.q)
	observability.Viewer().OnRoute(context.Background(),
		len(s.Vertices)+len(s.Arcs)+len(s.Loops)+len(s.Arrowheads), len(s.Warnings), time.Since(start))
	c.view.Draw(s)
}
