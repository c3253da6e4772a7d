package view

import "fmt"

// Zoom limits, as scale factors relative to the laid-out drawing.
const (
	MinZoom float64 = 0.1
	MaxZoom float64 = 10
)

// Viewport is a pan/zoom transform: screen = world*K + (X, Y).
// The zero value is not the identity; use [Identity].
type Viewport struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	K float64 `json:"k"`
}

// Identity returns the untransformed viewport.
func Identity() Viewport { return Viewport{K: 1} }

// Pan shifts the viewport by (dx, dy) screen units.
func (v Viewport) Pan(dx, dy float64) Viewport {
	v.X += dx
	v.Y += dy
	return v
}

// Zoom scales by factor around the screen point (cx, cy), which stays fixed.
// The resulting scale is clamped to [MinZoom, MaxZoom]; non-positive
// factors are ignored.
func (v Viewport) Zoom(factor, cx, cy float64) Viewport {
	if factor <= 0 {
		return v
	}
	if v.K == 0 {
		v.K = 1
	}
	k := clamp(v.K*factor, MinZoom, MaxZoom)
	ratio := k / v.K
	v.X = cx - (cx-v.X)*ratio
	v.Y = cy - (cy-v.Y)*ratio
	v.K = k
	return v
}

// ViewBox returns the world-space rectangle visible on a w×h screen,
// as SVG viewBox components.
func (v Viewport) ViewBox(w, h float64) (minX, minY, width, height float64) {
	k := v.K
	if k == 0 {
		k = 1
	}
	return -v.X / k, -v.Y / k, w / k, h / k
}

// Transform returns the SVG transform attribute for the viewport.
func (v Viewport) Transform() string {
	return fmt.Sprintf("translate(%g,%g) scale(%g)", v.X, v.Y, v.K)
}

func clamp(x, lo, hi float64) float64 {
	switch {
	case x < lo:
		return lo
	case x > hi:
		return hi
	}
	return x
}
