package tui

import (
	"fmt"
	"path/filepath"

	list "github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"pointmap/internal/scatter"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loadedMsg:
		m.setPoints(msg.points)
		if msg.err != nil {
			m.status = "load error: " + msg.err.Error()
			return m, nil
		}
		m.status = fmt.Sprintf("loaded: %s  %d %s", displayName(msg.source), len(msg.points), m.noun())
		return m, nil
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()
		return m, nil
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.MouseMsg:
		m.handleMouse(msg)
		return m, nil
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// While the sidebar list is filtering, every key belongs to it.
	if m.showSidebar && m.l.FilterState() == list.Filtering {
		var cmd tea.Cmd
		m.l, cmd = m.l.Update(msg)
		return m, cmd
	}
	if m.showGroups {
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "esc", "a":
			m.showGroups = false
			return m, nil
		case "enter":
			if tag, ok := m.selectedGroup(); ok {
				m.ctrl.SetFilter(tag)
				m.refreshFilterItems()
				m.status = "filter: " + tag
			}
			m.showGroups = false
			return m, nil
		}
		var cmd tea.Cmd
		m.tbl, cmd = m.tbl.Update(msg)
		return m, cmd
	}

	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit
	case "+", "=":
		m.ctrl.ZoomIn()
		m.status = fmt.Sprintf("zoom: %.2fx", m.ctrl.State().Zoom)
	case "-", "_":
		m.ctrl.ZoomOut()
		m.status = fmt.Sprintf("zoom: %.2fx", m.ctrl.State().Zoom)
	case "r":
		m.ctrl.Reset()
		m.refreshFilterItems()
		m.status = "view reset"
	case "l":
		m.ctrl.ToggleLabels()
		m.status = fmt.Sprintf("labels: %v", m.ctrl.State().ShowLabels)
	case "c":
		m.ctrl.CycleColorMode()
		m.status = "color by " + m.colorModeName()
	case "i":
		m.showTooltip = !m.showTooltip
	case "esc":
		if m.ctrl.State().Filtered() {
			m.ctrl.ClearFilter()
			m.refreshFilterItems()
			m.status = "filter: all"
		}
	case "tab":
		m.showSidebar = !m.showSidebar
		m.resize()
		if m.showSidebar {
			m.refreshFilterItems()
		}
	case "a":
		m.showGroups = !m.showGroups
		if m.showGroups {
			if len(m.groups) == 0 {
				m.showGroups = false
				m.status = "no groups for current dataset"
			} else {
				m.refreshGroupTable()
			}
		}
	case "h":
		m.helpVisible = !m.helpVisible
	case "enter":
		if m.showSidebar {
			m.applySelectedFilter()
		}
	case "left":
		m.ctrl.PanBy(-2, 0)
	case "right":
		m.ctrl.PanBy(2, 0)
	case "up":
		if !m.showSidebar {
			m.ctrl.PanBy(0, -4)
		}
	case "down":
		if !m.showSidebar {
			m.ctrl.PanBy(0, 4)
		}
	}
	if m.showSidebar && sidebarKeys[msg.String()] {
		var cmd tea.Cmd
		m.l, cmd = m.l.Update(msg)
		return m, cmd
	}
	return m, nil
}

// sidebarKeys are forwarded to the filter list when it is visible.
var sidebarKeys = map[string]bool{
	"up": true, "down": true, "k": true, "j": true,
	"pgup": true, "pgdown": true, "home": true, "end": true,
	"g": true, "G": true, "/": true,
}

// handleMouse translates terminal mouse events into pointer events in
// micro-pixel coordinates, using the center of the cell under the cursor.
func (m *Model) handleMouse(msg tea.MouseMsg) {
	if msg.Y == 0 && msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft {
		if e, ok := m.legendAt(msg.X); ok {
			m.toggleGroupFilter(e.tag)
		}
	}
	lay := m.layout()
	col, row := msg.X-lay.mapX, msg.Y-lay.mapY
	inside := !m.showGroups && col >= 0 && col < lay.mapW && row >= 0 && row < lay.mapH
	if !inside {
		if m.pointerIn {
			m.ctrl.PointerLeave()
			m.pointerIn = false
		}
		return
	}
	x, y := cellCenter(col, row)
	m.pointerIn = true
	m.pointer = scatter.Vec{X: x, Y: y}

	switch msg.Button {
	case tea.MouseButtonWheelUp:
		m.ctrl.Wheel(-1)
		m.status = fmt.Sprintf("zoom: %.2fx", m.ctrl.State().Zoom)
		return
	case tea.MouseButtonWheelDown:
		m.ctrl.Wheel(1)
		m.status = fmt.Sprintf("zoom: %.2fx", m.ctrl.State().Zoom)
		return
	}
	switch msg.Action {
	case tea.MouseActionPress:
		m.ctrl.PointerDown(x, y, mouseButton(msg.Button))
	case tea.MouseActionMotion:
		m.ctrl.PointerMove(x, y)
	case tea.MouseActionRelease:
		m.ctrl.PointerUp()
	}
}

func mouseButton(b tea.MouseButton) scatter.Button {
	switch b {
	case tea.MouseButtonRight:
		return scatter.ButtonSecondary
	case tea.MouseButtonMiddle:
		return scatter.ButtonMiddle
	default:
		return scatter.ButtonPrimary
	}
}

// resize fits the canvas and the sidebar to the current layout.
func (m *Model) resize() {
	lay := m.layout()
	if m.showSidebar {
		m.l.SetSize(sidebarWidth-2, lay.contentH-2)
	}
	m.tbl.SetHeight(min(lay.contentH-4, 20))
	if m.canvas.w == lay.mapW && m.canvas.h == lay.mapH {
		return
	}
	m.canvas = newBrailleCanvas(lay.mapW, lay.mapH)
	m.viewer.SetCanvas(m.canvas)
}

func (m Model) colorModeName() string {
	if m.ctrl.State().ColorMode == scatter.ColorBySecondary {
		return "group"
	}
	return "category"
}

func displayName(src string) string {
	if b := filepath.Base(src); b != "." && b != "/" {
		return b
	}
	return src
}
