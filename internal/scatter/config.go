package scatter

// Config holds the geometry and interaction tunables of the viewer.
type Config struct {
	Padding       float64 // pixels reserved on every canvas edge
	Margin        float64 // fraction of the data range added around the bounds
	MinZoom       float64
	MaxZoom       float64
	WheelStep     float64 // zoom factor per wheel notch
	ButtonStep    float64 // zoom factor per zoom-in/zoom-out control
	HitRadiusMin  float64
	HitRadiusBase float64 // hit radius is max(HitRadiusMin, HitRadiusBase/zoom)
	CullSlack     float64 // points further than this outside the canvas are skipped
}

// DefaultConfig returns the tunables of the reference canvas viewer.
func DefaultConfig() Config {
	return Config{
		Padding:       50,
		Margin:        0.1,
		MinZoom:       0.5,
		MaxZoom:       8.0,
		WheelStep:     1.1,
		ButtonStep:    1.4,
		HitRadiusMin:  8,
		HitRadiusBase: 12,
		CullSlack:     20,
	}
}

// normalize replaces unusable values with their defaults.
func (c Config) normalize() Config {
	d := DefaultConfig()
	if c.Padding < 0 {
		c.Padding = d.Padding
	}
	if c.Margin < 0 {
		c.Margin = d.Margin
	}
	if c.MinZoom <= 0 || c.MaxZoom < c.MinZoom {
		c.MinZoom, c.MaxZoom = d.MinZoom, d.MaxZoom
	}
	if c.WheelStep <= 1 {
		c.WheelStep = d.WheelStep
	}
	if c.ButtonStep <= 1 {
		c.ButtonStep = d.ButtonStep
	}
	if c.HitRadiusMin <= 0 {
		c.HitRadiusMin = d.HitRadiusMin
	}
	if c.HitRadiusBase <= 0 {
		c.HitRadiusBase = d.HitRadiusBase
	}
	if c.CullSlack < 0 {
		c.CullSlack = d.CullSlack
	}
	return c
}

// clampZoom keeps z inside [MinZoom, MaxZoom].
func (c Config) clampZoom(z float64) float64 {
	if z != z { // NaN
		return 1.0
	}
	if z < c.MinZoom {
		return c.MinZoom
	}
	if z > c.MaxZoom {
		return c.MaxZoom
	}
	return z
}

// HitRadius returns the hover pick radius in pixels at zoom z.
func (c Config) HitRadius(z float64) float64 {
	return max(c.HitRadiusMin, c.HitRadiusBase/z)
}
