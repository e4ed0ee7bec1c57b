// Package svg renders a routed quiver scene as a static SVG document.
package svg

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"strings"

	"github.com/matzehuels/quiverview/pkg/geom"
	"github.com/matzehuels/quiverview/pkg/render"
	"github.com/matzehuels/quiverview/pkg/route"
)

// Option configures SVG output.
type Option func(*svgRenderer)

type svgRenderer struct {
	labels     bool
	background string
	fontFamily string
}

// WithoutLabels omits node and edge labels.
func WithoutLabels() Option { return func(r *svgRenderer) { r.labels = false } }

// WithBackground fills the canvas with the given CSS colour.
func WithBackground(color string) Option {
	return func(r *svgRenderer) { r.background = color }
}

// Render draws s in the viewport vp, whose pixel size becomes the document size.
func Render(s *route.Scene, vp render.Viewport, opts ...Option) []byte {
	r := svgRenderer{labels: true, fontFamily: "Helvetica, Arial, sans-serif"}
	for _, opt := range opts {
		opt(&r)
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.1f %.1f" width="%.0f" height="%.0f">`+"\n",
		vp.Width, vp.Height, vp.Width, vp.Height)
	if r.background != "" {
		fmt.Fprintf(&buf, `  <rect width="100%%" height="100%%" fill="%s"/>`+"\n", escapeXML(r.background))
	}

	buf.WriteString(`  <g class="edges" fill="none" stroke="#333" stroke-width="1.2">` + "\n")
	for _, a := range s.Arcs {
		pts := render.ArcPixels(a, vp)
		writePath(&buf, pts, fmt.Sprintf(`class="arc" data-edge="%s"`, a.Edge))
		if head, ok := render.EndArrow(pts); ok {
			writeArrow(&buf, head)
		}
	}
	for _, l := range s.Loops {
		writePath(&buf, render.LoopPixels(l, vp), fmt.Sprintf(`class="loop" data-edge="%s"`, l.Edge))
	}
	for _, h := range s.Arrowheads {
		writeArrow(&buf, render.ArrowHead(vp.ToPixel(h.Tail), vp.ToPixel(h.Tip)))
	}
	buf.WriteString("  </g>\n")

	buf.WriteString(`  <g class="nodes" fill="#1f77b4">` + "\n")
	for _, v := range s.Vertices {
		p := vp.ToPixel(v.Pos)
		fmt.Fprintf(&buf, `    <circle cx="%.2f" cy="%.2f" r="%.2f" data-node="%s"/>`+"\n", p.X, p.Y, v.Size/2, escapeXML(v.Node))
	}
	buf.WriteString("  </g>\n")

	if r.labels {
		r.writeLabels(&buf, s, vp)
	}
	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func (r svgRenderer) writeLabels(buf *bytes.Buffer, s *route.Scene, vp render.Viewport) {
	fmt.Fprintf(buf, `  <g class="labels" font-family="%s" font-size="12" fill="#111">`+"\n", r.fontFamily)
	for _, v := range s.Vertices {
		p := vp.ToPixel(v.Pos)
		writeText(buf, geom.V(p.X+v.Size/2+3, p.Y-v.Size/2), "start", v.Node)
	}
	for _, a := range s.Arcs {
		if a.Label != "" {
			writeText(buf, vp.ToPixel(a.Curve.At(0.5)), "middle", a.Label)
		}
	}
	for _, l := range s.Loops {
		if l.Label != "" && len(l.Points) > 0 {
			writeText(buf, vp.ToPixel(l.Points[len(l.Points)/2]), "middle", l.Label)
		}
	}
	buf.WriteString("  </g>\n")
}

func writePath(buf *bytes.Buffer, pts []geom.Vec, attrs string) {
	if len(pts) < 2 {
		return
	}
	var d strings.Builder
	for i, p := range pts {
		cmd := "L"
		if i == 0 {
			cmd = "M"
		}
		fmt.Fprintf(&d, "%s%.2f %.2f ", cmd, p.X, p.Y)
	}
	fmt.Fprintf(buf, `    <path %s d="%s"/>`+"\n", attrs, strings.TrimSpace(d.String()))
}

func writeArrow(buf *bytes.Buffer, head [3]geom.Vec) {
	fmt.Fprintf(buf, `    <polygon class="arrow" fill="#333" points="%.2f,%.2f %.2f,%.2f %.2f,%.2f"/>`+"\n",
		head[0].X, head[0].Y, head[1].X, head[1].Y, head[2].X, head[2].Y)
}

func writeText(buf *bytes.Buffer, p geom.Vec, anchor, text string) {
	fmt.Fprintf(buf, `    <text x="%.2f" y="%.2f" text-anchor="%s">%s</text>`+"\n", p.X, p.Y, anchor, escapeXML(text))
}

func escapeXML(s string) string {
	var buf bytes.Buffer
	xml.EscapeText(&buf, []byte(s))
	return buf.String()
}
