package render

import (
	"github.com/matzehuels/quiverview/pkg/config"
	"github.com/matzehuels/quiverview/pkg/geom"
)

// Viewport maps the world rectangle XLim × YLim onto Width × Height pixels.
type Viewport struct {
	XLim   [2]float64
	YLim   [2]float64
	Width  float64
	Height float64
}

// NewViewport returns a viewport with the configured axis bounds.
func NewViewport(cfg config.View, width, height float64) Viewport {
	return Viewport{XLim: cfg.XLim, YLim: cfg.YLim, Width: width, Height: height}
}

// ToPixel converts a world point to pixel coordinates.
func (v Viewport) ToPixel(p geom.Vec) geom.Vec {
	return geom.Vec{
		X: (p.X - v.XLim[0]) / (v.XLim[1] - v.XLim[0]) * v.Width,
		Y: (v.YLim[1] - p.Y) / (v.YLim[1] - v.YLim[0]) * v.Height,
	}
}

// ToWorld converts pixel coordinates back to a world point.
func (v Viewport) ToWorld(px geom.Vec) geom.Vec {
	return geom.Vec{
		X: v.XLim[0] + px.X/v.Width*(v.XLim[1]-v.XLim[0]),
		Y: v.YLim[1] - px.Y/v.Height*(v.YLim[1]-v.YLim[0]),
	}
}

// ToPixels projects every point of pts.
func (v Viewport) ToPixels(pts []geom.Vec) []geom.Vec {
	out := make([]geom.Vec, len(pts))
	for i, p := range pts {
		out[i] = v.ToPixel(p)
	}
	return out
}
