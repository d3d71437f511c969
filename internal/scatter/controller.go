package scatter

import (
	"log/slog"

	"pointmap/internal/logging"
)

// Button identifies a pointer button.
type Button int

const (
	ButtonPrimary Button = iota
	ButtonSecondary
	ButtonMiddle
)

// Listener is notified with a copy of the state after every transition.
type Listener func(ViewState)

// Controller owns the ViewState and turns input events into state
// transitions. It is not safe for concurrent use; events are expected to
// arrive one at a time from a single UI loop.
type Controller struct {
	cfg    Config
	logger *slog.Logger

	points    []Point
	bounds    Bounds
	hasBounds bool
	width     float64
	height    float64

	state     ViewState
	listeners map[int]Listener
	nextID    int
}

// Option customizes a Controller.
type Option func(*Controller)

// WithLogger routes transition logs to l.
func WithLogger(l *slog.Logger) Option {
	return func(c *Controller) { c.logger = l }
}

// WithConfig replaces the default tunables.
func WithConfig(cfg Config) Option {
	return func(c *Controller) { c.cfg = cfg.normalize() }
}

// NewController returns a controller for a canvas of the given size with an
// empty dataset and the default view state.
func NewController(width, height float64, opts ...Option) *Controller {
	c := &Controller{
		cfg:       DefaultConfig(),
		logger:    logging.Discard(),
		width:     width,
		height:    height,
		state:     DefaultViewState(),
		listeners: make(map[int]Listener),
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// Subscribe registers fn for state changes and returns a function removing it.
func (c *Controller) Subscribe(fn Listener) (unsubscribe func()) {
	id := c.nextID
	c.nextID++
	c.listeners[id] = fn
	return func() { delete(c.listeners, id) }
}

func (c *Controller) emit() {
	for i := 0; i < c.nextID; i++ {
		if fn, ok := c.listeners[i]; ok {
			fn(c.state)
		}
	}
}

// Config returns the active tunables.
func (c *Controller) Config() Config { return c.cfg }

// State returns a copy of the current view state.
func (c *Controller) State() ViewState { return c.state }

// Points returns the dataset. Callers must not modify it.
func (c *Controller) Points() []Point { return c.points }

// Size returns the canvas size in pixels.
func (c *Controller) Size() (w, h float64) { return c.width, c.height }

// Viewport returns the transform for the current state. With an empty
// dataset the bounds are the zero value and nothing should be projected.
func (c *Controller) Viewport() Viewport {
	return Viewport{
		Bounds:  c.bounds,
		Width:   c.width,
		Height:  c.height,
		Padding: c.cfg.Padding,
		Zoom:    c.state.Zoom,
		Pan:     c.state.Pan,
	}
}

// SetPoints installs the dataset and recomputes its bounds. The slice is
// retained and treated as immutable.
func (c *Controller) SetPoints(pts []Point) {
	c.points = pts
	c.bounds, c.hasBounds = ComputeBounds(pts, c.cfg.Margin)
	c.state.Hover = nil
	c.logger.Debug("dataset installed", "points", len(pts), "bounds", c.bounds)
	c.emit()
}

// Resize changes the canvas size used by the transform and reports whether
// it changed.
func (c *Controller) Resize(width, height float64) bool {
	if width == c.width && height == c.height {
		return false
	}
	c.width, c.height = width, height
	c.emit()
	return true
}

// PointerDown starts a drag on the primary button.
func (c *Controller) PointerDown(x, y float64, b Button) {
	if b != ButtonPrimary {
		return
	}
	c.state.DragOrigin = &Vec{x, y}
	c.emit()
}

// PointerMove pans while dragging, otherwise updates the hover target.
func (c *Controller) PointerMove(x, y float64) {
	at := Vec{x, y}
	if c.state.DragOrigin != nil {
		delta := at.Sub(*c.state.DragOrigin)
		c.state.Pan = c.state.Pan.Add(delta)
		c.state.DragOrigin = &at
		c.emit()
		return
	}
	prev := c.state.Hover
	c.state.Hover = c.hitTest(at)
	if prev != c.state.Hover {
		c.emit()
	}
}

// PointerUp ends a drag gesture.
func (c *Controller) PointerUp() {
	if c.state.DragOrigin == nil {
		return
	}
	c.state.DragOrigin = nil
	c.emit()
}

// PointerLeave ends any drag and clears the hover target.
func (c *Controller) PointerLeave() {
	if c.state.DragOrigin == nil && c.state.Hover == nil {
		return
	}
	c.state.DragOrigin = nil
	c.state.Hover = nil
	c.emit()
}

// Wheel zooms in for negative deltaY (scroll up) and out for positive.
func (c *Controller) Wheel(deltaY float64) {
	switch {
	case deltaY < 0:
		c.setZoom(c.state.Zoom * c.cfg.WheelStep)
	case deltaY > 0:
		c.setZoom(c.state.Zoom / c.cfg.WheelStep)
	}
}

// ZoomIn applies one zoom-in control step.
func (c *Controller) ZoomIn() { c.setZoom(c.state.Zoom * c.cfg.ButtonStep) }

// ZoomOut applies one zoom-out control step.
func (c *Controller) ZoomOut() { c.setZoom(c.state.Zoom / c.cfg.ButtonStep) }

// SetZoom sets an absolute zoom factor, clamped to the configured range.
func (c *Controller) SetZoom(z float64) { c.setZoom(z) }

func (c *Controller) setZoom(z float64) {
	c.state.Zoom = c.cfg.clampZoom(z)
	c.logger.Debug("zoom", "factor", c.state.Zoom)
	c.emit()
}

// PanBy shifts the view by a screen delta, the keyboard equivalent of a drag.
func (c *Controller) PanBy(dx, dy float64) {
	c.state.Pan = c.state.Pan.Add(Vec{dx, dy})
	c.emit()
}

// Reset restores zoom 1, zero pan and no filter. Hover is left alone.
func (c *Controller) Reset() {
	c.state.Zoom = c.cfg.clampZoom(1.0)
	c.state.Pan = Vec{}
	c.state.Filter = ""
	c.logger.Debug("view reset")
	c.emit()
}

// SetFilter restricts the visible set to one secondary tag; "" clears it.
func (c *Controller) SetFilter(tag string) {
	c.state.Filter = tag
	if c.state.Hover != nil && !c.state.Eligible(*c.state.Hover) {
		c.state.Hover = nil
	}
	c.logger.Debug("filter", "tag", tag)
	c.emit()
}

// ClearFilter removes the category filter.
func (c *Controller) ClearFilter() { c.SetFilter("") }

// SetShowLabels toggles group labels.
func (c *Controller) SetShowLabels(on bool) {
	c.state.ShowLabels = on
	c.emit()
}

// ToggleLabels flips label visibility.
func (c *Controller) ToggleLabels() { c.SetShowLabels(!c.state.ShowLabels) }

// SetColorMode selects the palette used for points.
func (c *Controller) SetColorMode(m ColorMode) {
	c.state.ColorMode = m
	c.emit()
}

// CycleColorMode switches between the two coloring modes.
func (c *Controller) CycleColorMode() {
	if c.state.ColorMode == ColorByPrimary {
		c.SetColorMode(ColorBySecondary)
		return
	}
	c.SetColorMode(ColorByPrimary)
}

// HitRadius is the pick radius at the current zoom.
func (c *Controller) HitRadius() float64 { return c.cfg.HitRadius(c.state.Zoom) }

// PointAt returns the point a hover at (x, y) would select, if any.
func (c *Controller) PointAt(x, y float64) (Point, bool) {
	p := c.hitTest(Vec{x, y})
	if p == nil {
		return Point{}, false
	}
	return *p, true
}

func (c *Controller) hitTest(at Vec) *Point {
	if !c.hasBounds {
		return nil
	}
	i, ok := HitTest(c.points, c.Viewport(), c.state.Filter, at, c.HitRadius(), c.cfg.CullSlack)
	if !ok {
		return nil
	}
	return &c.points[i]
}
