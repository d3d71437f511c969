// Package scatter implements an interactive 2D point-cloud viewer: data to
// screen projection, pan/zoom state, hit-testing and a canvas renderer.
package scatter

import "math"

// Point is one labeled record of the dataset. Points are never mutated once
// loaded.
type Point struct {
	ID         string
	Label      string
	Primary    string // coarse category, e.g. an era tag
	Secondary  string // fine category, e.g. a group tag
	GroupTitle string
	X          float64
	Y          float64
}

// Vec is a 2D vector in screen pixels.
type Vec struct {
	X, Y float64
}

func (v Vec) Add(o Vec) Vec { return Vec{v.X + o.X, v.Y + o.Y} }
func (v Vec) Sub(o Vec) Vec { return Vec{v.X - o.X, v.Y - o.Y} }

// Dist returns the euclidean distance between v and o.
func (v Vec) Dist(o Vec) float64 { return math.Hypot(v.X-o.X, v.Y-o.Y) }

// Bounds is the axis-aligned extent of a dataset in data space.
type Bounds struct {
	MinX float64
	MinY float64
	MaxX float64
	MaxY float64
}

// Valid reports whether b spans a positive width and height.
func (b Bounds) Valid() bool {
	return b.MaxX > b.MinX && b.MaxY > b.MinY
}

// ComputeBounds returns the extent of pts expanded by margin (a fraction of
// the range) on each side. An axis with zero range is widened to one unit
// centered on its single value before the margin applies, or to a relative
// width when one unit is lost to rounding at that magnitude. ok is false for an
// empty slice.
func ComputeBounds(pts []Point, margin float64) (b Bounds, ok bool) {
	if len(pts) == 0 {
		return Bounds{}, false
	}
	b = Bounds{MinX: pts[0].X, MinY: pts[0].Y, MaxX: pts[0].X, MaxY: pts[0].Y}
	for _, p := range pts[1:] {
		if p.X < b.MinX {
			b.MinX = p.X
		}
		if p.Y < b.MinY {
			b.MinY = p.Y
		}
		if p.X > b.MaxX {
			b.MaxX = p.X
		}
		if p.Y > b.MaxY {
			b.MaxY = p.Y
		}
	}
	b.MinX, b.MaxX = expandAxis(b.MinX, b.MaxX, margin)
	b.MinY, b.MaxY = expandAxis(b.MinY, b.MaxY, margin)
	return b, true
}

func expandAxis(lo, hi, margin float64) (float64, float64) {
	if !(hi > lo) {
		mid := lo
		half := math.Max(0.5, math.Abs(mid)*1e-9)
		lo, hi = mid-half, mid+half
	}
	r := hi - lo
	return lo - r*margin, hi + r*margin
}
