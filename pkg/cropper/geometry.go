// Package cropper maintains a fixed-aspect-ratio crop selection over a
// measured image area. It is pure geometry: measurements and gestures come
// in, a clamped selection rectangle and a handful of flags come out. The
// actual pixel work belongs to a rasterization collaborator.
package cropper

import "math"

// Rect is an axis-aligned bounding box in a shared coordinate space.
type Rect struct {
	Left   float64
	Top    float64
	Width  float64
	Height float64
}

// Right returns the right edge coordinate.
func (r Rect) Right() float64 { return r.Left + r.Width }

// Bottom returns the bottom edge coordinate.
func (r Rect) Bottom() float64 { return r.Top + r.Height }

// CenterX returns the horizontal center coordinate.
func (r Rect) CenterX() float64 { return r.Left + r.Width/2 }

// CenterY returns the vertical center coordinate.
func (r Rect) CenterY() float64 { return r.Top + r.Height/2 }

// Empty reports whether the rect has no area.
func (r Rect) Empty() bool { return r.Width <= 0 || r.Height <= 0 }

func clamp(v, lo, hi float64) float64 {
	if hi < lo {
		return lo
	}
	return math.Min(math.Max(v, lo), hi)
}
