package scatter

import "image/color"

// Palette maps category tags to colors and secondary tags to short labels.
// Unknown tags fall back to Fallback and to the raw tag text.
type Palette struct {
	Primary   map[string]color.RGBA
	Secondary map[string]color.RGBA
	Labels    map[string]string
	Fallback  color.RGBA
}

// NeutralGray is the fallback color for unknown tags.
var NeutralGray = color.RGBA{0x88, 0x88, 0x88, 0xff}

// PointColor returns the color of p under mode.
func (pl Palette) PointColor(mode ColorMode, p Point) color.RGBA {
	if mode == ColorBySecondary {
		return pl.SecondaryColor(p.Secondary)
	}
	return pl.PrimaryColor(p.Primary)
}

// PrimaryColor returns the color of a primary tag.
func (pl Palette) PrimaryColor(tag string) color.RGBA {
	if c, ok := pl.Primary[tag]; ok {
		return c
	}
	return pl.fallback()
}

// SecondaryColor returns the color of a secondary tag.
func (pl Palette) SecondaryColor(tag string) color.RGBA {
	if c, ok := pl.Secondary[tag]; ok {
		return c
	}
	return pl.fallback()
}

// Label returns the abbreviated label of a secondary tag.
func (pl Palette) Label(tag string) string {
	if l, ok := pl.Labels[tag]; ok && l != "" {
		return l
	}
	return tag
}

func (pl Palette) fallback() color.RGBA {
	if pl.Fallback == (color.RGBA{}) {
		return NeutralGray
	}
	return pl.Fallback
}
