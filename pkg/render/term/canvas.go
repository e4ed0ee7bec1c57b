// Package term draws quiver scenes on a braille terminal canvas.
//
// Every terminal cell holds a 2×4 grid of braille dots, and one dot is one
// pixel of the [render.Viewport]. Pixel sized settings such as pick_radius,
// node_size and arrow_shrink therefore keep their meaning in the terminal.
//
// The canvas also answers hit-tests: [Canvas.HitTest] reports the node marker
// or self-loop nearest to a cell, within its pick radius.
package term

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/quiverview/pkg/config"
	"github.com/matzehuels/quiverview/pkg/geom"
	"github.com/matzehuels/quiverview/pkg/render"
	"github.com/matzehuels/quiverview/pkg/route"
)

// Dots per cell.
const (
	DotsX = 2
	DotsY = 4
)

// layer orders what ends up colouring a cell; higher wins.
type layer uint8

const (
	layerEmpty layer = iota
	layerEdge
	layerNode
	layerLabel
)

// Styles colours the canvas layers.
type Styles struct {
	Edge  lipgloss.Style
	Node  lipgloss.Style
	Label lipgloss.Style
}

// DefaultStyles returns the viewer palette.
func DefaultStyles() Styles {
	return Styles{
		Edge:  lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		Node:  lipgloss.NewStyle().Foreground(lipgloss.Color("39")).Bold(true),
		Label: lipgloss.NewStyle().Foreground(lipgloss.Color("255")),
	}
}

// Canvas is a braille raster of one scene.
type Canvas struct {
	cols, rows int
	cfg        config.View
	vp         render.Viewport

	mask   [][]uint8
	layers [][]layer
	text   [][]rune

	scene *route.Scene
	loops [][]geom.Vec // pixel polylines of scene.Loops
}

// New returns an empty canvas of cols × rows cells.
func New(cols, rows int, cfg config.View) *Canvas {
	c := &Canvas{cfg: cfg}
	c.Resize(cols, rows)
	return c
}

// Resize changes the canvas size and clears it.
func (c *Canvas) Resize(cols, rows int) {
	c.cols, c.rows = max(cols, 1), max(rows, 1)
	c.vp = render.NewViewport(c.cfg, float64(c.cols*DotsX), float64(c.rows*DotsY))
	c.clear()
}

// Size returns the canvas size in cells.
func (c *Canvas) Size() (cols, rows int) { return c.cols, c.rows }

// Viewport returns the world to dot mapping.
func (c *Canvas) Viewport() render.Viewport { return c.vp }

func (c *Canvas) clear() {
	c.mask = make([][]uint8, c.rows)
	c.layers = make([][]layer, c.rows)
	c.text = make([][]rune, c.rows)
	for y := range c.mask {
		c.mask[y] = make([]uint8, c.cols)
		c.layers[y] = make([]layer, c.cols)
		c.text[y] = make([]rune, c.cols)
	}
	c.scene = nil
	c.loops = nil
}

// Draw clears the canvas and rasterizes s.
func (c *Canvas) Draw(s *route.Scene) {
	c.clear()
	c.scene = s
	if s == nil {
		return
	}

	for _, a := range s.Arcs {
		pts := render.ArcPixels(a, c.vp)
		c.polyline(pts, layerEdge)
		if head, ok := render.EndArrow(pts); ok {
			c.arrow(head)
		}
	}
	for _, l := range s.Loops {
		pts := render.LoopPixels(l, c.vp)
		c.loops = append(c.loops, pts)
		c.polyline(pts, layerEdge)
	}
	for _, h := range s.Arrowheads {
		c.arrow(render.ArrowHead(c.vp.ToPixel(h.Tail), c.vp.ToPixel(h.Tip)))
	}
	for _, v := range s.Vertices {
		center := c.vp.ToPixel(v.Pos)
		c.disc(center, v.Size/2)
		c.label(center, v.Size/2, v.Node)
	}
}

// CellCenter returns the dot coordinates of the centre of a cell.
func CellCenter(col, row int) geom.Vec {
	return geom.V(float64(col*DotsX)+0.5, float64(row*DotsY)+1.5)
}

// CellToWorld returns the world point under a cell.
func (c *Canvas) CellToWorld(col, row int) geom.Vec {
	return c.vp.ToWorld(CellCenter(col, row))
}

// HitTest returns the pickable primitive nearest to a cell, or the zero Ref
// when nothing lies within its pick radius. Node markers are measured from
// their rim; on equal distance a node wins over a loop.
func (c *Canvas) HitTest(col, row int) route.Ref {
	if c.scene == nil {
		return route.Ref{}
	}
	p := CellCenter(col, row)
	best := math.Inf(1)
	var hit route.Ref

	for _, v := range c.scene.Vertices {
		d := math.Max(0, p.Dist(c.vp.ToPixel(v.Pos))-v.Size/2)
		if d <= v.PickRadius && d < best {
			best, hit = d, route.NodeRef(v.Node)
		}
	}
	for i, l := range c.scene.Loops {
		d := render.PolylineDistance(p, c.loops[i])
		if d <= l.PickRadius && d < best {
			best, hit = d, route.LoopRef(l.Node, l.Edge)
		}
	}
	return hit
}

// Lines returns the canvas as plain text, one string per row.
func (c *Canvas) Lines() []string {
	out := make([]string, c.rows)
	for y := range c.rows {
		var b strings.Builder
		for x := range c.cols {
			b.WriteRune(c.cell(x, y))
		}
		out[y] = b.String()
	}
	return out
}

// Render returns the canvas with each cell styled by its top layer.
func (c *Canvas) Render(st Styles) string {
	rows := make([]string, c.rows)
	for y := range c.rows {
		var b, run strings.Builder
		cur := layerEmpty
		flush := func() {
			if run.Len() == 0 {
				return
			}
			b.WriteString(c.style(st, cur).Render(run.String()))
			run.Reset()
		}
		for x := range c.cols {
			if l := c.layers[y][x]; l != cur {
				flush()
				cur = l
			}
			run.WriteRune(c.cell(x, y))
		}
		flush()
		rows[y] = b.String()
	}
	return strings.Join(rows, "\n")
}

func (c *Canvas) style(st Styles, l layer) lipgloss.Style {
	switch l {
	case layerEdge:
		return st.Edge
	case layerNode:
		return st.Node
	case layerLabel:
		return st.Label
	default:
		return lipgloss.NewStyle()
	}
}

func (c *Canvas) cell(x, y int) rune {
	if r := c.text[y][x]; r != 0 {
		return r
	}
	if m := c.mask[y][x]; m != 0 {
		return rune(0x2800 + int(m))
	}
	return ' '
}
