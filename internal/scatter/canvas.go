package scatter

import "image/color"

// Align is the horizontal anchor of a text run.
type Align int

const (
	AlignLeft Align = iota
	AlignCenter
)

// TextStyle describes how a text run is painted. A zero StrokeWidth draws
// fill only.
type TextStyle struct {
	Size        float64
	Fill        color.RGBA
	Stroke      color.RGBA
	StrokeWidth float64
	Align       Align
	Bold        bool
}

// Canvas is a fixed-size raster surface in pixel coordinates with the origin
// at the top-left corner. Colors carry straight (non-premultiplied) alpha.
type Canvas interface {
	Size() (w, h int)
	Clear(bg color.RGBA)
	// Disk fills a solid circle.
	Disk(x, y, r float64, c color.RGBA)
	// Glow fills a circle whose opacity falls off radially from c at the
	// center to transparent at r.
	Glow(x, y, r float64, c color.RGBA)
	Text(x, y float64, s string, st TextStyle)
}

// Glow opacity stops: opaque at the center, GlowMidAlpha halfway out,
// transparent at the rim.
const GlowMidAlpha = float64(0x88) / 0xff

// GlowFalloff returns the glow opacity at t = distance/radius.
func GlowFalloff(t float64) float64 {
	switch {
	case t <= 0:
		return 1
	case t >= 1:
		return 0
	case t <= 0.5:
		return 1 - (1-GlowMidAlpha)*t/0.5
	default:
		return GlowMidAlpha * (1 - t) / 0.5
	}
}
