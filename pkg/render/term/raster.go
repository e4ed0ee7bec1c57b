package term

import (
	"math"

	"github.com/matzehuels/quiverview/pkg/geom"
)

// dotBits maps a dot's position inside its cell to its braille bit.
var dotBits = [DotsY][DotsX]uint8{
	{0x01, 0x08},
	{0x02, 0x10},
	{0x04, 0x20},
	{0x40, 0x80},
}

func (c *Canvas) set(mx, my int, l layer) {
	if mx < 0 || my < 0 {
		return
	}
	cx, cy := mx/DotsX, my/DotsY
	if cx >= c.cols || cy >= c.rows {
		return
	}
	c.mask[cy][cx] |= dotBits[my%DotsY][mx%DotsX]
	if l > c.layers[cy][cx] {
		c.layers[cy][cx] = l
	}
}

// maxDot bounds the coordinates line will walk; segments reaching further
// are skipped.
const maxDot = 1 << 16

// line draws a Bresenham line between two dots.
func (c *Canvas) line(a, b geom.Vec, l layer) {
	if !drawable(a) || !drawable(b) {
		return
	}
	x0, y0 := int(math.Floor(a.X)), int(math.Floor(a.Y))
	x1, y1 := int(math.Floor(b.X)), int(math.Floor(b.Y))
	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	err := dx + dy
	for {
		c.set(x0, y0, l)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

func (c *Canvas) polyline(pts []geom.Vec, l layer) {
	for i := 1; i < len(pts); i++ {
		c.line(pts[i-1], pts[i], l)
	}
}

func (c *Canvas) arrow(head [3]geom.Vec) {
	c.line(head[0], head[1], layerEdge)
	c.line(head[0], head[2], layerEdge)
	c.line(head[1], head[2], layerEdge)
}

// disc fills every dot whose centre lies within r of center.
func (c *Canvas) disc(center geom.Vec, r float64) {
	r = math.Max(r, 0.5)
	x0, x1 := int(math.Floor(center.X-r)), int(math.Ceil(center.X+r))
	y0, y1 := int(math.Floor(center.Y-r)), int(math.Ceil(center.Y+r))
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			if center.Dist(geom.V(float64(x)+0.5, float64(y)+0.5)) <= r {
				c.set(x, y, layerNode)
			}
		}
	}
}

// label writes text in the cells to the right of a marker of radius r.
func (c *Canvas) label(center geom.Vec, r float64, text string) {
	col := int(math.Ceil((center.X+r)/DotsX)) + 1
	row := int(center.Y / DotsY)
	if row < 0 || row >= c.rows {
		return
	}
	for _, ch := range text {
		if col >= c.cols {
			return
		}
		if col >= 0 {
			c.text[row][col] = ch
			c.layers[row][col] = layerLabel
		}
		col++
	}
}

func drawable(p geom.Vec) bool {
	return math.Abs(p.X) < maxDot && math.Abs(p.Y) < maxDot
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
