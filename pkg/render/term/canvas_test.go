package term

import (
	"strings"
	"testing"

	"github.com/matzehuels/quiverview/pkg/config"
	"github.com/matzehuels/quiverview/pkg/geom"
	"github.com/matzehuels/quiverview/pkg/quiver"
	"github.com/matzehuels/quiverview/pkg/route"
)

// 40×20 cells = 80×80 dots over [-2,2]², i.e. 20 dots per world unit.
func testScene(t *testing.T) (*Canvas, *route.Scene) {
	t.Helper()
	q := quiver.New()
	for id, p := range map[string]geom.Vec{"u": geom.V(0, 0), "v": geom.V(1, -1)} {
		if _, err := q.AddNode(id); err != nil {
			t.Fatal(err)
		}
		q.SetPosition(id, p)
	}
	if _, err := q.AddEdge("u", "v", "f"); err != nil {
		t.Fatal(err)
	}
	loop, err := q.AddEdge("u", "u", "a")
	if err != nil {
		t.Fatal(err)
	}
	loop.Loop.Direction = geom.V(0, 1)

	cfg := config.DefaultView()
	s := route.New(cfg).Route(q)
	c := New(40, 20, cfg)
	c.Draw(s)
	return c, s
}

func cellOf(p geom.Vec) (int, int) {
	return int(p.X) / DotsX, int(p.Y) / DotsY
}

func TestHitTest(t *testing.T) {
	c, s := testScene(t)
	vp := c.Viewport()

	ucol, urow := cellOf(vp.ToPixel(geom.V(0, 0)))
	loopPt := s.Loops[0].Points[len(s.Loops[0].Points)/2]
	lcol, lrow := cellOf(vp.ToPixel(loopPt))

	tests := []struct {
		name     string
		col, row int
		want     route.Ref
	}{
		{"node centre", ucol, urow, route.NodeRef("u")},
		{"loop apex", lcol, lrow, route.LoopRef("u", s.Loops[0].Edge)},
		{"empty corner", 0, 0, route.Ref{}},
		{"far right", 39, 2, route.Ref{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := c.HitTest(tt.col, tt.row); got != tt.want {
				t.Errorf("HitTest(%d, %d) = %+v, want %+v", tt.col, tt.row, got, tt.want)
			}
		})
	}
}

func TestHitTestMeasuresFromRim(t *testing.T) {
	c, _ := testScene(t)
	// v sits at dot (60, 60). A cell whose centre is 7 dots away is outside
	// the pick radius from the centre but inside it from the 4-dot rim.
	col, row := 33, 15 // centre (66.5, 61.5)
	if got := c.HitTest(col, row); got != route.NodeRef("v") {
		t.Errorf("HitTest(%d, %d) = %+v, want node v", col, row, got)
	}
}

func TestDrawAndClear(t *testing.T) {
	c, _ := testScene(t)
	lines := c.Lines()
	if len(lines) != 20 {
		t.Fatalf("rows = %d, want 20", len(lines))
	}
	joined := strings.Join(lines, "\n")
	if strings.TrimSpace(joined) == "" {
		t.Fatal("nothing drawn")
	}
	if !strings.Contains(joined, "u") || !strings.Contains(joined, "v") {
		t.Errorf("labels missing:\n%s", joined)
	}
	if out := c.Render(DefaultStyles()); !strings.Contains(out, "u") {
		t.Errorf("Render lost labels")
	}

	c.Draw(&route.Scene{})
	for i, l := range c.Lines() {
		if strings.TrimSpace(l) != "" {
			t.Fatalf("row %d not cleared: %q", i, l)
		}
	}
	if got := c.HitTest(20, 10); !got.IsZero() {
		t.Errorf("HitTest after clear = %+v", got)
	}

	c.Draw(nil)
	if got := c.HitTest(20, 10); !got.IsZero() {
		t.Errorf("HitTest without scene = %+v", got)
	}
}

func TestCellToWorld(t *testing.T) {
	c := New(40, 20, config.DefaultView())
	p := c.CellToWorld(20, 10)
	if p.Dist(geom.V(0, 0)) > 0.1 {
		t.Errorf("CellToWorld(20, 10) = %v, want near origin", p)
	}
	c.Resize(80, 40)
	if cols, rows := c.Size(); cols != 80 || rows != 40 {
		t.Errorf("Size() = %d, %d", cols, rows)
	}
	if p := c.CellToWorld(40, 20); p.Dist(geom.V(0, 0)) > 0.1 {
		t.Errorf("after resize CellToWorld(40, 20) = %v", p)
	}
}
