package scatter

import (
	"fmt"
	"strings"
)

// ColorMode selects which category drives point colors.
type ColorMode int

const (
	ColorByPrimary ColorMode = iota
	ColorBySecondary
)

func (m ColorMode) String() string {
	switch m {
	case ColorBySecondary:
		return "secondary"
	default:
		return "primary"
	}
}

// ParseColorMode accepts "primary"/"era" and "secondary"/"game".
func ParseColorMode(s string) (ColorMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "primary", "era":
		return ColorByPrimary, nil
	case "secondary", "game", "group":
		return ColorBySecondary, nil
	}
	return ColorByPrimary, fmt.Errorf("unknown color mode %q", s)
}

// ViewState is the mutable interaction state. Only the Controller writes it;
// everyone else receives copies.
type ViewState struct {
	Zoom       float64
	Pan        Vec
	DragOrigin *Vec   // non-nil while a drag gesture is in progress
	Filter     string // secondary tag; empty means no filter
	Hover      *Point // nearest eligible point under the pointer
	ShowLabels bool
	ColorMode  ColorMode
}

// DefaultViewState is the state at mount.
func DefaultViewState() ViewState {
	return ViewState{Zoom: 1.0}
}

// Dragging reports whether a drag gesture is in progress.
func (s ViewState) Dragging() bool { return s.DragOrigin != nil }

// Filtered reports whether a category filter is active.
func (s ViewState) Filtered() bool { return s.Filter != "" }

// Eligible reports whether p belongs to the visible set under s.
func (s ViewState) Eligible(p Point) bool {
	return s.Filter == "" || p.Secondary == s.Filter
}
