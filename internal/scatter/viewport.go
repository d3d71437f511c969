package scatter

// Viewport is the composed data-to-screen mapping for one frame. It carries
// no hidden state: the same inputs always project to the same pixel.
type Viewport struct {
	Bounds  Bounds
	Width   float64
	Height  float64
	Padding float64
	Zoom    float64
	Pan     Vec
}

// Center is the canvas center in pixels, the fixed point of zoom.
func (v Viewport) Center() Vec {
	return Vec{v.Width / 2, v.Height / 2}
}

// Normalize maps a data coordinate linearly into
// [Padding, Size-Padding] on each axis, before zoom and pan. An axis with
// no range maps to the canvas center.
func (v Viewport) Normalize(x, y float64) Vec {
	return Vec{
		normalizeAxis(x, v.Bounds.MinX, v.Bounds.MaxX, v.Width, v.Padding),
		normalizeAxis(y, v.Bounds.MinY, v.Bounds.MaxY, v.Height, v.Padding),
	}
}

func normalizeAxis(val, lo, hi, size, pad float64) float64 {
	if !(hi > lo) {
		return size / 2
	}
	return pad + (val-lo)/(hi-lo)*(size-2*pad)
}

// Project maps p to screen space:
// screen = (normalized - center) * zoom + center + pan.
func (v Viewport) Project(p Point) Vec {
	n := v.Normalize(p.X, p.Y)
	c := v.Center()
	return Vec{
		X: (n.X-c.X)*v.Zoom + c.X + v.Pan.X,
		Y: (n.Y-c.Y)*v.Zoom + c.Y + v.Pan.Y,
	}
}

// Unproject is the inverse of Project for a screen position.
func (v Viewport) Unproject(s Vec) (x, y float64) {
	c := v.Center()
	nx := (s.X-v.Pan.X-c.X)/v.Zoom + c.X
	ny := (s.Y-v.Pan.Y-c.Y)/v.Zoom + c.Y
	x = v.Bounds.MinX + (nx-v.Padding)/(v.Width-2*v.Padding)*(v.Bounds.MaxX-v.Bounds.MinX)
	y = v.Bounds.MinY + (ny-v.Padding)/(v.Height-2*v.Padding)*(v.Bounds.MaxY-v.Bounds.MinY)
	return x, y
}

// InView reports whether s lies within the canvas extended by slack pixels.
func (v Viewport) InView(s Vec, slack float64) bool {
	return s.X >= -slack && s.X <= v.Width+slack && s.Y >= -slack && s.Y <= v.Height+slack
}

// Contains reports whether s lies inside the canvas.
func (v Viewport) Contains(s Vec) bool {
	return v.InView(s, 0)
}
