// Package raster implements scatter.Canvas over an in-memory RGBA image so a
// view can be written out as PNG.
package raster

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"math"
	"os"

	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/gomonobold"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"

	"pointmap/internal/scatter"
)

var (
	monoFont     = mustParse(gomono.TTF)
	monoBoldFont = mustParse(gomonobold.TTF)
)

func mustParse(ttf []byte) *opentype.Font {
	f, err := opentype.Parse(ttf)
	if err != nil {
		panic(err)
	}
	return f
}

type faceKey struct {
	size float64
	bold bool
}

// Canvas is a scatter.Canvas backed by *image.RGBA.
type Canvas struct {
	img   *image.RGBA
	faces map[faceKey]font.Face
}

var _ scatter.Canvas = (*Canvas)(nil)

// New returns a w x h canvas.
func New(w, h int) *Canvas {
	return &Canvas{
		img:   image.NewRGBA(image.Rect(0, 0, max(w, 0), max(h, 0))),
		faces: make(map[faceKey]font.Face),
	}
}

// Image returns the backing image.
func (c *Canvas) Image() *image.RGBA { return c.img }

// Size implements scatter.Canvas.
func (c *Canvas) Size() (int, int) {
	b := c.img.Bounds()
	return b.Dx(), b.Dy()
}

// Clear implements scatter.Canvas.
func (c *Canvas) Clear(bg color.RGBA) {
	draw.Draw(c.img, c.img.Bounds(), image.NewUniform(straight(bg)), image.Point{}, draw.Src)
}

// Disk implements scatter.Canvas.
func (c *Canvas) Disk(x, y, r float64, col color.RGBA) {
	c.fillCircle(x, y, r, col, func(d float64) float64 {
		return clamp01(r + 0.5 - d)
	})
}

// Glow implements scatter.Canvas.
func (c *Canvas) Glow(x, y, r float64, col color.RGBA) {
	c.fillCircle(x, y, r, col, func(d float64) float64 {
		return scatter.GlowFalloff(d / r)
	})
}

func (c *Canvas) fillCircle(x, y, r float64, col color.RGBA, alpha func(d float64) float64) {
	if r <= 0 {
		return
	}
	rect := image.Rect(
		int(math.Floor(x-r-1)), int(math.Floor(y-r-1)),
		int(math.Ceil(x+r+1)), int(math.Ceil(y+r+1)),
	).Intersect(c.img.Bounds())
	if rect.Empty() {
		return
	}
	m := &radialMask{cx: x, cy: y, rect: rect, alpha: alpha}
	draw.DrawMask(c.img, rect, image.NewUniform(straight(col)), image.Point{}, m, rect.Min, draw.Over)
}

// radialMask is an alpha mask whose value depends on the distance of the
// pixel center from (cx, cy).
type radialMask struct {
	cx, cy float64
	rect   image.Rectangle
	alpha  func(d float64) float64
}

func (m *radialMask) ColorModel() color.Model { return color.AlphaModel }

func (m *radialMask) Bounds() image.Rectangle { return m.rect }

func (m *radialMask) At(x, y int) color.Color {
	if !(image.Point{X: x, Y: y}).In(m.rect) {
		return color.Alpha{}
	}
	d := math.Hypot(float64(x)+0.5-m.cx, float64(y)+0.5-m.cy)
	return color.Alpha{A: uint8(math.Round(clamp01(m.alpha(d)) * 0xff))}
}

// Text implements scatter.Canvas. y is the baseline.
func (c *Canvas) Text(x, y float64, s string, st scatter.TextStyle) {
	if s == "" || st.Size <= 0 {
		return
	}
	face := c.face(st.Size, st.Bold)
	if st.Align == scatter.AlignCenter {
		x -= float64(font.MeasureString(face, s).Round()) / 2
	}
	if st.StrokeWidth > 0 {
		c.drawString(face, s, x, y, st.Stroke, st.StrokeWidth/2)
	}
	c.drawString(face, s, x, y, st.Fill, 0)
}

// drawString paints s; a positive spread repeats it around a circle of that
// radius to form an outline.
func (c *Canvas) drawString(face font.Face, s string, x, y float64, col color.RGBA, spread float64) {
	d := &font.Drawer{Dst: c.img, Src: image.NewUniform(straight(col)), Face: face}
	offsets := []scatter.Vec{{}}
	if spread > 0 {
		offsets = offsets[:0]
		const steps = 12
		for i := 0; i < steps; i++ {
			a := 2 * math.Pi * float64(i) / steps
			offsets = append(offsets, scatter.Vec{X: spread * math.Cos(a), Y: spread * math.Sin(a)})
		}
	}
	for _, o := range offsets {
		d.Dot = fixed.Point26_6{
			X: fixed.Int26_6(math.Round((x + o.X) * 64)),
			Y: fixed.Int26_6(math.Round((y + o.Y) * 64)),
		}
		d.DrawString(s)
	}
}

func (c *Canvas) face(size float64, bold bool) font.Face {
	key := faceKey{size: math.Round(size*4) / 4, bold: bold}
	if f, ok := c.faces[key]; ok {
		return f
	}
	fnt := monoFont
	if bold {
		fnt = monoBoldFont
	}
	f, err := opentype.NewFace(fnt, &opentype.FaceOptions{
		Size:    key.size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		panic(err)
	}
	c.faces[key] = f
	return f
}

// Close releases the cached font faces.
func (c *Canvas) Close() error {
	for k, f := range c.faces {
		if err := f.Close(); err != nil {
			return err
		}
		delete(c.faces, k)
	}
	return nil
}

// Encode writes the canvas as PNG.
func (c *Canvas) Encode(w io.Writer) error {
	return png.Encode(w, c.img)
}

// WriteFile writes the canvas as a PNG file at path.
func (c *Canvas) WriteFile(path string) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()
	if err := c.Encode(f); err != nil {
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return nil
}

func straight(c color.RGBA) color.NRGBA {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: c.A}
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}
