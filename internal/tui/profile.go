package tui

import "pointmap/internal/scatter"

// Terminal tunables, in micro-pixels. A braille dot is roughly square, and a
// typical 80-column map is about 150 dots wide against the 560 pixels of the
// reference canvas, so distances shrink by about a quarter.
func terminalConfig() scatter.Config {
	cfg := scatter.DefaultConfig()
	cfg.Padding = 6
	cfg.HitRadiusMin = 2.5
	cfg.HitRadiusBase = 4
	cfg.CullSlack = 6
	return cfg
}

func terminalStyle(noun string) scatter.Style {
	st := scatter.DefaultStyle()
	st.PointRadius = 1.1
	st.MinPointRadius = 0.8
	st.DimRadius = 0.9
	st.LabelOffset = 4
	st.StatusInset = 2
	st.Noun = noun
	return st
}
