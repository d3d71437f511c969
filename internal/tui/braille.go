package tui

import (
	"image/color"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/mattn/go-runewidth"

	"pointmap/internal/scatter"
)

// brailleBits maps a micro-pixel (column rx, row ry) inside a cell to its
// bit in the U+2800 block.
var brailleBits = [2][4]uint8{
	{0x01, 0x02, 0x04, 0x40},
	{0x08, 0x10, 0x20, 0x80},
}

// microPixel is one dot of the 2x4 grid behind every terminal cell. lit
// dots become braille dots; unlit dots only tint the cell background.
type microPixel struct {
	c   colorful.Color
	lit bool
}

type textCell struct {
	r    rune
	fg   colorful.Color
	bold bool
	skip bool // right half of a wide rune
	set  bool
}

// brailleCanvas implements scatter.Canvas on a w x h cell grid with a
// 2w x 4h micro-pixel surface.
type brailleCanvas struct {
	w, h int // in cells
	px   []microPixel
	text []textCell
}

var _ scatter.Canvas = (*brailleCanvas)(nil)

func newBrailleCanvas(w, h int) *brailleCanvas {
	w, h = max(w, 0), max(h, 0)
	return &brailleCanvas{
		w:    w,
		h:    h,
		px:   make([]microPixel, w*2*h*4),
		text: make([]textCell, w*h),
	}
}

// Size reports the micro-pixel size.
func (b *brailleCanvas) Size() (int, int) { return b.w * 2, b.h * 4 }

func (b *brailleCanvas) Clear(bg color.RGBA) {
	c := toColorful(bg)
	for i := range b.px {
		b.px[i] = microPixel{c: c}
	}
	for i := range b.text {
		b.text[i] = textCell{}
	}
}

func (b *brailleCanvas) Disk(x, y, r float64, c color.RGBA) {
	b.eachPixel(x, y, r, func(p *microPixel, d float64) {
		if d > r {
			return
		}
		p.c = p.c.BlendRgb(toColorful(c), alpha(c)).Clamped()
		p.lit = true
	})
}

func (b *brailleCanvas) Glow(x, y, r float64, c color.RGBA) {
	if r <= 0 {
		return
	}
	b.eachPixel(x, y, r, func(p *microPixel, d float64) {
		if a := scatter.GlowFalloff(d/r) * alpha(c); a > 0 {
			p.c = p.c.BlendRgb(toColorful(c), a).Clamped()
		}
	})
}

// eachPixel visits every micro-pixel whose center lies within r of (x, y).
func (b *brailleCanvas) eachPixel(x, y, r float64, fn func(p *microPixel, d float64)) {
	if r <= 0 {
		return
	}
	mw, mh := b.Size()
	x0, x1 := max(0, int(math.Floor(x-r))), min(mw-1, int(math.Ceil(x+r)))
	y0, y1 := max(0, int(math.Floor(y-r))), min(mh-1, int(math.Ceil(y+r)))
	for py := y0; py <= y1; py++ {
		for px := x0; px <= x1; px++ {
			d := math.Hypot(float64(px)+0.5-x, float64(py)+0.5-y)
			if d <= r {
				fn(&b.px[py*mw+px], d)
			}
		}
	}
}

// Text writes s into whole cells. y is the baseline, so the run sits in the
// cell row just above it. Strokes have no terminal equivalent and are
// skipped.
func (b *brailleCanvas) Text(x, y float64, s string, st scatter.TextStyle) {
	if s == "" {
		return
	}
	row := int(math.Floor((y - 1) / 4))
	col := int(math.Floor(x / 2))
	if st.Align == scatter.AlignCenter {
		col -= runewidth.StringWidth(s) / 2
	}
	if row < 0 || row >= b.h {
		return
	}
	fg := toColorful(st.Fill)
	for _, r := range s {
		rw := runewidth.RuneWidth(r)
		if rw == 0 {
			continue
		}
		if col >= 0 && col+rw <= b.w {
			b.text[row*b.w+col] = textCell{r: r, fg: fg, bold: st.Bold, set: true}
			if rw == 2 {
				b.text[row*b.w+col+1] = textCell{skip: true, set: true}
			}
		}
		col += rw
	}
}

// cellMark replaces one cell in the rendered output.
type cellMark struct {
	col, row int
	glyph    string
	style    lipgloss.Style
}

type cellStyle struct {
	fg, bg string
	bold   bool
}

// cell resolves the glyph and colors of one terminal cell.
func (b *brailleCanvas) cell(col, row int) (string, cellStyle) {
	bg := b.bgAt(col, row)
	if t := b.text[row*b.w+col]; t.set {
		if t.skip {
			return "", cellStyle{}
		}
		return string(t.r), cellStyle{fg: t.fg.Hex(), bg: bg.Hex(), bold: t.bold}
	}

	mw := b.w * 2
	var mask uint8
	var sum colorful.Color
	n := 0
	for ry := 0; ry < 4; ry++ {
		for rx := 0; rx < 2; rx++ {
			p := b.px[(row*4+ry)*mw+col*2+rx]
			if !p.lit {
				continue
			}
			mask |= brailleBits[rx][ry]
			sum.R += p.c.R
			sum.G += p.c.G
			sum.B += p.c.B
			n++
		}
	}
	if mask == 0 {
		return " ", cellStyle{bg: bg.Hex()}
	}
	fg := colorful.Color{R: sum.R / float64(n), G: sum.G / float64(n), B: sum.B / float64(n)}
	return string(rune(0x2800 + int(mask))), cellStyle{fg: fg.Clamped().Hex(), bg: bg.Hex()}
}

// bgAt averages the unlit micro-pixels of a cell, or all of them when every
// dot is lit.
func (b *brailleCanvas) bgAt(col, row int) colorful.Color {
	mw := b.w * 2
	var sum, all colorful.Color
	n := 0
	for ry := 0; ry < 4; ry++ {
		for rx := 0; rx < 2; rx++ {
			p := b.px[(row*4+ry)*mw+col*2+rx]
			all.R, all.G, all.B = all.R+p.c.R, all.G+p.c.G, all.B+p.c.B
			if p.lit {
				continue
			}
			sum.R, sum.G, sum.B = sum.R+p.c.R, sum.G+p.c.G, sum.B+p.c.B
			n++
		}
	}
	if n == 0 {
		return colorful.Color{R: all.R / 8, G: all.G / 8, B: all.B / 8}.Clamped()
	}
	return colorful.Color{R: sum.R / float64(n), G: sum.G / float64(n), B: sum.B / float64(n)}.Clamped()
}

// Lines renders the grid with colors, grouping equal-style runs into one
// lipgloss render call.
func (b *brailleCanvas) Lines(marks ...cellMark) []string {
	out := make([]string, b.h)
	for row := 0; row < b.h; row++ {
		var sb strings.Builder
		var run strings.Builder
		var cur cellStyle
		flush := func() {
			if run.Len() == 0 {
				return
			}
			st := lipgloss.NewStyle().Foreground(lipgloss.Color(cur.fg)).Background(lipgloss.Color(cur.bg)).Bold(cur.bold)
			if cur.fg == "" {
				st = lipgloss.NewStyle().Background(lipgloss.Color(cur.bg))
			}
			sb.WriteString(st.Render(run.String()))
			run.Reset()
		}
		for col := 0; col < b.w; col++ {
			if m, ok := findMark(marks, col, row); ok {
				flush()
				sb.WriteString(m.style.Render(m.glyph))
				continue
			}
			g, st := b.cell(col, row)
			if g == "" {
				continue
			}
			if st != cur {
				flush()
				cur = st
			}
			run.WriteString(g)
		}
		flush()
		out[row] = sb.String()
	}
	return out
}

// PlainLines renders the glyphs only.
func (b *brailleCanvas) PlainLines() []string {
	out := make([]string, b.h)
	for row := 0; row < b.h; row++ {
		var sb strings.Builder
		for col := 0; col < b.w; col++ {
			g, _ := b.cell(col, row)
			sb.WriteString(g)
		}
		out[row] = sb.String()
	}
	return out
}

// Render joins Lines with newlines.
func (b *brailleCanvas) Render(marks ...cellMark) string {
	return strings.Join(b.Lines(marks...), "\n")
}

func findMark(marks []cellMark, col, row int) (cellMark, bool) {
	for _, m := range marks {
		if m.col == col && m.row == row {
			return m, true
		}
	}
	return cellMark{}, false
}

func toColorful(c color.RGBA) colorful.Color {
	return colorful.Color{R: float64(c.R) / 255, G: float64(c.G) / 255, B: float64(c.B) / 255}
}

func alpha(c color.RGBA) float64 { return float64(c.A) / 255 }

// microToCell converts a micro-pixel position to the cell containing it.
func microToCell(x, y float64) (col, row int) {
	return int(math.Floor(x / 2)), int(math.Floor(y / 4))
}

// cellCenter is the micro-pixel position of a cell's center.
func cellCenter(col, row int) (x, y float64) {
	return float64(col)*2 + 1, float64(row)*4 + 2
}
