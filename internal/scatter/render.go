package scatter

import (
	"fmt"
	"image/color"
)

// Style holds the visual constants of the renderer. Radii and offsets are in
// pixels at zoom 1 and scale with zoom.
type Style struct {
	Background color.RGBA
	Dim        color.RGBA

	PointRadius    float64
	MinPointRadius float64
	DimRadius      float64
	GlowScale      float64

	LabelMinZoom     float64
	LabelOffset      float64
	LabelSize        float64
	LabelMinSize     float64
	LabelStroke      color.RGBA
	LabelStrokeWidth float64

	StatusColor color.RGBA
	StatusSize  float64
	StatusInset float64
	Noun        string
}

// DefaultStyle returns the look of the reference 560x450 canvas.
func DefaultStyle() Style {
	return Style{
		Background:       color.RGBA{0x0d, 0x0d, 0x1a, 0xff},
		Dim:              color.RGBA{50, 50, 70, 102},
		PointRadius:      3.5,
		MinPointRadius:   2,
		DimRadius:        3,
		GlowScale:        2,
		LabelMinZoom:     1.2,
		LabelOffset:      12,
		LabelSize:        10,
		LabelMinSize:     9,
		LabelStroke:      color.RGBA{0, 0, 0, 0xff},
		LabelStrokeWidth: 3,
		StatusColor:      color.RGBA{255, 255, 255, 128},
		StatusSize:       10,
		StatusInset:      8,
		Noun:             "points",
	}
}

// Frame summarizes one draw call.
type Frame struct {
	Visible int // size of the visible set (filtered subset or all points)
	Drawn   int // visible points that survived culling
	Dimmed  int // background points drawn dimmed
	Labels  []GroupLabel
	Status  string
}

// GroupLabel is a label placed at the screen centroid of a group.
type GroupLabel struct {
	Tag   string
	Text  string
	At    Vec
	Count int
}

// Renderer draws a full scene from scratch on every call.
type Renderer struct {
	Palette Palette
	Style   Style
	Slack   float64
}

// NewRenderer returns a renderer culling with the slack of cfg.
func NewRenderer(p Palette, st Style, cfg Config) *Renderer {
	return &Renderer{Palette: p, Style: st, Slack: cfg.normalize().CullSlack}
}

type centroid struct {
	sum   Vec
	count int
}

// Draw paints pts under vp and st onto c. An empty dataset paints the
// background only.
func (r *Renderer) Draw(c Canvas, pts []Point, vp Viewport, st ViewState) Frame {
	c.Clear(r.Style.Background)
	var f Frame
	if len(pts) == 0 || !vp.Bounds.Valid() {
		return f
	}
	zoom := vp.Zoom

	if st.Filtered() {
		rad := max(r.Style.MinPointRadius, r.Style.DimRadius*zoom)
		for _, p := range pts {
			if st.Eligible(p) {
				continue
			}
			s := vp.Project(p)
			if !vp.InView(s, r.Slack) {
				continue
			}
			c.Disk(s.X, s.Y, rad, r.Style.Dim)
			f.Dimmed++
		}
	}

	groups := make(map[string]*centroid)
	var order []string
	rad := max(r.Style.MinPointRadius, r.Style.PointRadius*zoom)
	for _, p := range pts {
		if !st.Eligible(p) {
			continue
		}
		f.Visible++
		s := vp.Project(p)
		if !vp.InView(s, r.Slack) {
			continue
		}
		col := r.Palette.PointColor(st.ColorMode, p)
		g, ok := groups[p.Secondary]
		if !ok {
			g = &centroid{}
			groups[p.Secondary] = g
			order = append(order, p.Secondary)
		}
		g.sum = g.sum.Add(s)
		g.count++

		c.Glow(s.X, s.Y, rad*r.Style.GlowScale, col)
		c.Disk(s.X, s.Y, rad, col)
		f.Drawn++
	}

	if st.ShowLabels && zoom >= r.Style.LabelMinZoom {
		ts := TextStyle{
			Size:        max(r.Style.LabelMinSize, r.Style.LabelSize*zoom),
			Stroke:      r.Style.LabelStroke,
			StrokeWidth: r.Style.LabelStrokeWidth,
			Align:       AlignCenter,
			Bold:        true,
		}
		for _, tag := range order {
			g := groups[tag]
			if g.count == 0 {
				continue
			}
			at := Vec{g.sum.X / float64(g.count), g.sum.Y/float64(g.count) - r.Style.LabelOffset*zoom}
			if !vp.Contains(at) {
				continue
			}
			ts.Fill = r.Palette.SecondaryColor(tag)
			text := r.Palette.Label(tag)
			c.Text(at.X, at.Y, text, ts)
			f.Labels = append(f.Labels, GroupLabel{Tag: tag, Text: text, At: at, Count: g.count})
		}
	}

	f.Status = r.status(zoom, f.Visible)
	c.Text(r.Style.StatusInset, vp.Height-r.Style.StatusInset, f.Status, TextStyle{
		Size:  r.Style.StatusSize,
		Fill:  r.Style.StatusColor,
		Align: AlignLeft,
	})
	return f
}

func (r *Renderer) status(zoom float64, n int) string {
	noun := r.Style.Noun
	if noun == "" {
		noun = "points"
	}
	return fmt.Sprintf("Zoom: %.1fx | %d %s", zoom, n, noun)
}
