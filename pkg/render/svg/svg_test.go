package svg

import (
	"encoding/xml"
	"strings"
	"testing"

	"github.com/matzehuels/quiverview/pkg/config"
	"github.com/matzehuels/quiverview/pkg/geom"
	"github.com/matzehuels/quiverview/pkg/quiver"
	"github.com/matzehuels/quiverview/pkg/render"
	"github.com/matzehuels/quiverview/pkg/route"
)

func scene(t *testing.T) *route.Scene {
	t.Helper()
	q := quiver.New()
	q.AddNode("a<b")
	q.AddNode("c")
	q.SetPosition("a<b", geom.V(-1, 0))
	q.SetPosition("c", geom.V(1, 0))
	for _, e := range [][3]string{{"a<b", "c", "f&g"}, {"a<b", "c", ""}, {"c", "c", "loop"}} {
		if _, err := q.AddEdge(e[0], e[1], e[2]); err != nil {
			t.Fatal(err)
		}
	}
	return route.New(config.DefaultView()).Route(q)
}

func TestRender(t *testing.T) {
	vp := render.NewViewport(config.DefaultView(), 400, 400)
	out := string(Render(scene(t), vp, WithBackground("white")))

	if err := xml.Unmarshal([]byte(out), new(struct{})); err != nil {
		t.Fatalf("output is not well-formed XML: %v\n%s", err, out)
	}

	tests := []struct {
		name string
		want string
		n    int
	}{
		{"arcs", `class="arc"`, 2},
		{"loops", `class="loop"`, 1},
		{"arrows", `class="arrow"`, 3},
		{"nodes", "<circle ", 2},
		{"escaped node", "a&lt;b", 2},
		{"escaped label", "f&amp;g", 1},
		{"loop label", ">loop<", 1},
		{"background", `fill="white"`, 1},
	}
	for _, tt := range tests {
		if got := strings.Count(out, tt.want); got != tt.n {
			t.Errorf("%s: %d × %q, want %d", tt.name, got, tt.want, tt.n)
		}
	}
	if !strings.HasPrefix(out, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 400.0 400.0"`) {
		t.Errorf("unexpected header: %.80s", out)
	}
}

func TestRenderWithoutLabels(t *testing.T) {
	vp := render.NewViewport(config.DefaultView(), 200, 200)
	out := string(Render(scene(t), vp, WithoutLabels()))
	if strings.Contains(out, "<text") {
		t.Error("labels rendered despite WithoutLabels")
	}
	if strings.Contains(out, "<rect") {
		t.Error("background rendered without WithBackground")
	}
}

func TestRenderEmpty(t *testing.T) {
	vp := render.NewViewport(config.DefaultView(), 100, 100)
	out := string(Render(&route.Scene{}, vp))
	if !strings.HasSuffix(out, "</svg>\n") {
		t.Errorf("unterminated document: %q", out)
	}
}
