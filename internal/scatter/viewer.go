package scatter

// Viewer keeps a canvas in sync with a controller: every state change
// triggers a full synchronous redraw.
type Viewer struct {
	ctrl        *Controller
	renderer    *Renderer
	canvas      Canvas
	last        Frame
	unsubscribe func()
}

// NewViewer subscribes to ctrl and paints the initial frame.
func NewViewer(ctrl *Controller, r *Renderer, c Canvas) *Viewer {
	v := &Viewer{ctrl: ctrl, renderer: r, canvas: c}
	v.unsubscribe = ctrl.Subscribe(func(ViewState) { v.Redraw() })
	v.Redraw()
	return v
}

// Redraw repaints the canvas from the controller's current state.
func (v *Viewer) Redraw() {
	v.last = v.renderer.Draw(v.canvas, v.ctrl.Points(), v.ctrl.Viewport(), v.ctrl.State())
}

// SetCanvas swaps the drawing surface and resizes the transform to match.
func (v *Viewer) SetCanvas(c Canvas) {
	v.canvas = c
	w, h := c.Size()
	if !v.ctrl.Resize(float64(w), float64(h)) {
		v.Redraw()
	}
}

// Canvas returns the current drawing surface.
func (v *Viewer) Canvas() Canvas { return v.canvas }

// Frame returns the summary of the last draw.
func (v *Viewer) Frame() Frame { return v.last }

// Controller returns the controller driving this viewer.
func (v *Viewer) Controller() *Controller { return v.ctrl }

// Close stops listening for state changes.
func (v *Viewer) Close() {
	if v.unsubscribe != nil {
		v.unsubscribe()
		v.unsubscribe = nil
	}
}
