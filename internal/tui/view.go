package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"pointmap/internal/config"
	"pointmap/internal/scatter"
)

type layout struct {
	contentW, contentH int
	mapX, mapY         int
	mapW, mapH         int
}

// layout must agree between View and the mouse handler.
func (m Model) layout() layout {
	headerHeight := 1
	footerHeight := 2
	lay := layout{
		contentW: max(10, m.width),
		contentH: max(4, m.height-headerHeight-footerHeight),
		mapY:     headerHeight,
	}
	lay.mapW = lay.contentW
	if m.showSidebar {
		lay.mapX = sidebarWidth + 1
		lay.mapW -= sidebarWidth + 1
	}
	lay.mapW = max(10, lay.mapW)
	lay.mapH = lay.contentH
	return lay
}

func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	lay := m.layout()

	header := headerPrefix() + m.renderLegend()
	header = lipgloss.NewStyle().Width(lay.contentW).MaxHeight(1).Render(header)

	var mapView string
	if m.showGroups {
		colW := 0
		for _, c := range m.tbl.Columns() {
			colW += c.Width + 2
		}
		maxW := min(lay.mapW, max(32, colW+4))
		m.tbl.SetWidth(maxW - 4)
		box := boxStyle.Width(maxW).Render(m.tbl.View())
		mapView = lipgloss.Place(lay.mapW, lay.mapH, lipgloss.Center, lipgloss.Center, box)
	} else {
		mapView = lipgloss.NewStyle().Width(lay.mapW).Height(lay.mapH).Render(m.canvas.Render(m.hoverMarks()...))
	}

	body := mapView
	if m.showSidebar {
		sidebar := lipgloss.NewStyle().Width(sidebarWidth).Render(m.l.View())
		body = lipgloss.JoinHorizontal(lipgloss.Top, sidebar, " ", mapView)
	}

	status := dimStyle.Render(" " + m.status + " ")
	coords := ""
	if x, y, ok := m.pointerData(); ok {
		coords = dimStyle.Render(fmt.Sprintf("  x=%.3f y=%.3f  ", x, y))
	}
	spacerW := max(0, lay.contentW-lipgloss.Width(status)-lipgloss.Width(coords))
	line1 := lipgloss.JoinHorizontal(lipgloss.Bottom, status, strings.Repeat(" ", spacerW), coords)

	line2 := m.renderHelp()
	if tip := m.tooltip(); tip != "" {
		line2 = tooltipStyle.Render(" " + tip + " ")
	}
	footer := lipgloss.NewStyle().Width(lay.contentW).Render(lipgloss.JoinVertical(lipgloss.Left, line1, line2))

	ui := lipgloss.JoinVertical(lipgloss.Left, header, body, footer)
	return appStyle.Width(lay.contentW).Height(m.height).Render(ui)
}

func (m Model) renderHelp() string {
	if !m.helpVisible {
		return ""
	}
	keys := []string{
		"drag/←→↑↓ pan",
		"wheel/+/- zoom",
		"r reset",
		"l labels",
		"c color",
		"Tab filter",
		"a groups",
		"i tooltip",
		"h help",
		"q quit",
	}
	return dimStyle.Render("  " + strings.Join(keys, "  "))
}

const headerTitle = " pointmap ─ terminal point-cloud viewer "

func headerPrefix() string { return titleStyle.Render(headerTitle) + "  " }

// legendEntry is one clickable group swatch in the header.
type legendEntry struct {
	tag        string
	text       string
	start, end int // header columns, end exclusive
}

// renderLegend shows era swatches when coloring by the primary tag,
// otherwise the group swatches that fit the header.
func (m Model) renderLegend() string {
	th := m.opts.Theme
	if m.ctrl.State().ColorMode == scatter.ColorBySecondary {
		entries := m.groupLegend()
		if len(entries) == 0 {
			return dimStyle.Render("colored by group (Tab lists groups)")
		}
		parts := make([]string, len(entries))
		for i, e := range entries {
			parts[i] = e.text
		}
		return strings.Join(parts, "  ")
	}
	parts := make([]string, 0, len(th.PrimaryOrder))
	for _, tag := range th.PrimaryOrder {
		parts = append(parts, swatch(th.Palette.PrimaryColor(tag))+" "+th.PrimaryName(tag))
	}
	return strings.Join(parts, "  ")
}

// groupLegend lays out one swatch per group present in the data, in palette
// order, dropping those past the header width. The active filter is
// highlighted.
func (m Model) groupLegend() []legendEntry {
	pal := m.opts.Theme.Palette
	filter := m.ctrl.State().Filter
	col := lipgloss.Width(headerPrefix())
	avail := m.layout().contentW
	var out []legendEntry
	for _, tag := range m.groupTags() {
		st := lipgloss.NewStyle()
		switch {
		case tag == filter:
			st = hoverStyle
		case filter != "":
			st = dimStyle
		}
		text := swatch(pal.SecondaryColor(tag)) + " " + st.Render(pal.Label(tag))
		w := lipgloss.Width(text)
		if col+w > avail {
			break
		}
		out = append(out, legendEntry{tag: tag, text: text, start: col, end: col + w})
		col += w + 2
	}
	return out
}

// legendAt returns the group swatch under header column x.
func (m Model) legendAt(x int) (legendEntry, bool) {
	if m.ctrl.State().ColorMode != scatter.ColorBySecondary {
		return legendEntry{}, false
	}
	for _, e := range m.groupLegend() {
		if x >= e.start && x < e.end {
			return e, true
		}
	}
	return legendEntry{}, false
}

// hoverMarks rings the hovered point's cell.
func (m Model) hoverMarks() []cellMark {
	h := m.ctrl.State().Hover
	if h == nil {
		return nil
	}
	s := m.ctrl.Viewport().Project(*h)
	col, row := microToCell(s.X, s.Y)
	if col < 0 || col >= m.canvas.w || row < 0 || row >= m.canvas.h {
		return nil
	}
	return []cellMark{{col: col, row: row, glyph: "◯", style: hoverStyle}}
}

// tooltip describes the hovered point.
func (m Model) tooltip() string {
	h := m.ctrl.State().Hover
	if !m.showTooltip || h == nil {
		return ""
	}
	return describePoint(*h, m.opts.Theme)
}

func describePoint(p scatter.Point, th config.Theme) string {
	parts := []string{p.Label}
	if p.Secondary != "" {
		tag := p.Secondary
		if l := th.Palette.Label(tag); l != tag {
			tag += " (" + l + ")"
		}
		parts = append(parts, tag)
	}
	if p.GroupTitle != "" {
		parts = append(parts, p.GroupTitle)
	}
	if p.Primary != "" {
		parts = append(parts, strings.ReplaceAll(p.Primary, "_", " "))
	}
	return strings.Join(parts, " │ ")
}

// pointerData returns the data coordinates under the pointer.
func (m Model) pointerData() (float64, float64, bool) {
	if !m.pointerIn || len(m.ctrl.Points()) == 0 {
		return 0, 0, false
	}
	vp := m.ctrl.Viewport()
	if vp.Width <= 2*vp.Padding || vp.Height <= 2*vp.Padding {
		return 0, 0, false
	}
	x, y := vp.Unproject(m.pointer)
	return x, y, true
}
