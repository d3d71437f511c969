package scatter

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/require"
)

type drawOp struct {
	kind string
	x, y float64
	r    float64
	c    color.RGBA
	text string
	st   TextStyle
}

// recorder is a Canvas that keeps every call for inspection.
type recorder struct {
	w, h int
	ops  []drawOp
}

func newRecorder(w, h int) *recorder { return &recorder{w: w, h: h} }

func (r *recorder) Size() (int, int) { return r.w, r.h }
func (r *recorder) Clear(bg color.RGBA) {
	r.ops = append(r.ops[:0], drawOp{kind: "clear", c: bg})
}
func (r *recorder) Disk(x, y, rad float64, c color.RGBA) {
	r.ops = append(r.ops, drawOp{kind: "disk", x: x, y: y, r: rad, c: c})
}
func (r *recorder) Glow(x, y, rad float64, c color.RGBA) {
	r.ops = append(r.ops, drawOp{kind: "glow", x: x, y: y, r: rad, c: c})
}
func (r *recorder) Text(x, y float64, s string, st TextStyle) {
	r.ops = append(r.ops, drawOp{kind: "text", x: x, y: y, text: s, st: st})
}

func (r *recorder) count(kind string) int {
	n := 0
	for _, o := range r.ops {
		if o.kind == kind {
			n++
		}
	}
	return n
}

func (r *recorder) texts() []string {
	var out []string
	for _, o := range r.ops {
		if o.kind == "text" {
			out = append(out, o.text)
		}
	}
	return out
}

var (
	red  = color.RGBA{0xff, 0, 0, 0xff}
	blue = color.RGBA{0, 0, 0xff, 0xff}
	teal = color.RGBA{0, 0x80, 0x80, 0xff}
)

func testPalette() Palette {
	return Palette{
		Primary:   map[string]color.RGBA{"old": red, "new": blue},
		Secondary: map[string]color.RGBA{"g1": teal},
		Labels:    map[string]string{"g1": "G-One"},
	}
}

// unitConfig maps data units 1:1 to pixels on a canvas matching the data
// extent, which keeps expected screen positions easy to compute.
func unitConfig() Config {
	cfg := DefaultConfig()
	cfg.Padding = 0
	cfg.Margin = 0
	return cfg
}

func samplePoints() []Point {
	return []Point{
		{ID: "a", Label: "Alpha", Primary: "old", Secondary: "g1", X: 0, Y: 0},
		{ID: "b", Label: "Beta", Primary: "new", Secondary: "g2", X: 100, Y: 100},
		{ID: "c", Label: "Gamma", Primary: "old", Secondary: "g1", X: 40, Y: 50},
		{ID: "d", Label: "Delta", Primary: "mystery", Secondary: "g2", X: 50, Y: 50},
	}
}

func newUnitController(t *testing.T, pts []Point) *Controller {
	t.Helper()
	c := NewController(100, 100, WithConfig(unitConfig()))
	c.SetPoints(pts)
	require.True(t, c.Viewport().Bounds.Valid())
	return c
}
