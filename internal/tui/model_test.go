package tui

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pointmap/internal/config"
	"pointmap/internal/scatter"
)

var testPoints = []scatter.Point{
	{ID: "a", Label: "Bad Apple!!", Primary: "pc98", Secondary: "TH04", GroupTitle: "Lotus Land Story", X: 0, Y: 0},
	{ID: "b", Label: "Necrofantasia", Primary: "early_windows", Secondary: "TH07", GroupTitle: "Perfect Cherry Blossom", X: 10, Y: 10},
}

func update(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	nm, _ := m.Update(msg)
	out, ok := nm.(Model)
	require.True(t, ok)
	return out
}

func key(s string) tea.KeyMsg {
	switch s {
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEscape}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// sized returns a model with testPoints on an 80x24 terminal: the map is
// 80x21 cells, 160x84 micro-pixels, starting at terminal row 1.
func sized(t *testing.T) Model {
	t.Helper()
	m := NewWithPoints(Options{Theme: config.DefaultTheme(), Noun: "tracks"}, testPoints)
	return update(t, m, tea.WindowSizeMsg{Width: 80, Height: 24})
}

func TestWindowSizeResizesCanvas(t *testing.T) {
	m := sized(t)
	w, h := m.Controller().Size()
	assert.Equal(t, 160.0, w)
	assert.Equal(t, 84.0, h)

	m = update(t, m, key("tab"))
	w, _ = m.Controller().Size()
	assert.Equal(t, float64((80-sidebarWidth-1)*2), w)
}

func TestKeyboardControls(t *testing.T) {
	m := sized(t)

	m = update(t, m, key("+"))
	assert.InDelta(t, 1.4, m.Controller().State().Zoom, 1e-9)
	assert.Equal(t, "zoom: 1.40x", m.Status())

	m = update(t, m, key("-"))
	assert.InDelta(t, 1.0, m.Controller().State().Zoom, 1e-9)

	m = update(t, m, key("left"))
	m = update(t, m, key("up"))
	assert.Equal(t, scatter.Vec{X: -2, Y: -4}, m.Controller().State().Pan)

	m = update(t, m, key("l"))
	assert.True(t, m.Controller().State().ShowLabels)

	m = update(t, m, key("c"))
	assert.Equal(t, scatter.ColorBySecondary, m.Controller().State().ColorMode)

	m = update(t, m, key("r"))
	st := m.Controller().State()
	assert.Equal(t, 1.0, st.Zoom)
	assert.Equal(t, scatter.Vec{}, st.Pan)
	assert.Equal(t, "view reset", m.Status())
}

func TestQuit(t *testing.T) {
	m := sized(t)
	_, cmd := m.Update(key("q"))
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestMouseWheelZooms(t *testing.T) {
	m := sized(t)
	m = update(t, m, tea.MouseMsg{X: 40, Y: 10, Action: tea.MouseActionPress, Button: tea.MouseButtonWheelUp})
	assert.InDelta(t, 1.1, m.Controller().State().Zoom, 1e-9)
	m = update(t, m, tea.MouseMsg{X: 40, Y: 10, Action: tea.MouseActionPress, Button: tea.MouseButtonWheelDown})
	assert.InDelta(t, 1.0, m.Controller().State().Zoom, 1e-9)
}

func TestMouseDragPans(t *testing.T) {
	m := sized(t)
	m = update(t, m, tea.MouseMsg{X: 10, Y: 11, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	assert.True(t, m.Controller().State().Dragging())

	m = update(t, m, tea.MouseMsg{X: 12, Y: 12, Action: tea.MouseActionMotion, Button: tea.MouseButtonLeft})
	assert.Equal(t, scatter.Vec{X: 4, Y: 4}, m.Controller().State().Pan)

	m = update(t, m, tea.MouseMsg{X: 12, Y: 12, Action: tea.MouseActionRelease, Button: tea.MouseButtonLeft})
	assert.False(t, m.Controller().State().Dragging())
}

func TestRightButtonDoesNotDrag(t *testing.T) {
	m := sized(t)
	m = update(t, m, tea.MouseMsg{X: 10, Y: 11, Action: tea.MouseActionPress, Button: tea.MouseButtonRight})
	assert.False(t, m.Controller().State().Dragging())
}

func TestHoverAndLeave(t *testing.T) {
	m := sized(t)

	// point a normalizes to micro (18.3, 12): cell (9, 3), terminal row 4
	m = update(t, m, tea.MouseMsg{X: 9, Y: 4, Action: tea.MouseActionMotion})
	h := m.Controller().State().Hover
	require.NotNil(t, h)
	assert.Equal(t, "a", h.ID)
	assert.Equal(t, "Bad Apple!! │ TH04 (LLS) │ Lotus Land Story │ pc98", m.tooltip())
	assert.Len(t, m.hoverMarks(), 1)

	m = update(t, m, key("i"))
	assert.Empty(t, m.tooltip())
	m = update(t, m, key("i"))

	// the header row is outside the map
	m = update(t, m, tea.MouseMsg{X: 9, Y: 0, Action: tea.MouseActionMotion})
	assert.Nil(t, m.Controller().State().Hover)
	assert.Empty(t, m.tooltip())
}

func TestLoadedMessages(t *testing.T) {
	m := New(Options{})
	m = update(t, m, loadedMsg{source: "/data/umap_coords.json", points: testPoints})
	assert.Equal(t, "loaded: umap_coords.json  2 points", m.Status())
	assert.Len(t, m.Controller().Points(), 2)

	m = update(t, m, loadedMsg{source: "x.json", points: []scatter.Point{}, err: errors.New("boom")})
	assert.Equal(t, "load error: boom", m.Status())
	assert.Empty(t, m.Controller().Points())
}

func TestInitLoadsSource(t *testing.T) {
	assert.Nil(t, New(Options{}).Init())

	path := filepath.Join(t.TempDir(), "pts.json")
	require.NoError(t, os.WriteFile(path, []byte(`[{"track_id":"a","x":1,"y":2},{"track_id":"b","x":3,"y":4}]`), 0o644))

	cmd := New(Options{Source: path}).Init()
	require.NotNil(t, cmd)
	msg, ok := cmd().(loadedMsg)
	require.True(t, ok)
	require.NoError(t, msg.err)
	assert.Len(t, msg.points, 2)

	cmd = New(Options{Source: filepath.Join(t.TempDir(), "missing.json")}).Init()
	msg = cmd().(loadedMsg)
	assert.Error(t, msg.err)
	assert.NotNil(t, msg.points)
}

func TestSidebarFilter(t *testing.T) {
	m := sized(t)
	m = update(t, m, key("tab"))
	require.True(t, m.showSidebar)

	items := m.l.Items()
	require.NotEmpty(t, items)
	assert.Equal(t, "All", items[0].(filterItem).Title())
	assert.Equal(t, "2 tracks", items[0].(filterItem).Description())
	assert.Equal(t, "TH01", items[1].(filterItem).tag)
	assert.Len(t, items, 20)

	m = update(t, m, key("down"))
	m = update(t, m, key("enter"))
	assert.Equal(t, "TH01", m.Controller().State().Filter)
	assert.Equal(t, "filter: TH01 HRtP", m.Status())

	m = update(t, m, key("esc"))
	assert.Empty(t, m.Controller().State().Filter)
}

func TestDataOnlyTagsAreListed(t *testing.T) {
	pts := append([]scatter.Point{{ID: "z", Secondary: "fan_game", X: 5, Y: 5}}, testPoints...)
	m := NewWithPoints(Options{}, pts)
	items := m.l.Items()
	last := items[len(items)-1].(filterItem)
	assert.Equal(t, "fan_game", last.tag)
	assert.Equal(t, "1 points", last.desc)
}

func TestGroupTable(t *testing.T) {
	m := sized(t)
	m = update(t, m, key("a"))
	require.True(t, m.showGroups)
	require.Len(t, m.tbl.Rows(), 2)
	assert.Equal(t, "TH04", m.tbl.Rows()[0][0])
	assert.Equal(t, "LLS", m.tbl.Rows()[0][1])

	m = update(t, m, key("enter"))
	assert.False(t, m.showGroups)
	assert.Equal(t, "TH04", m.Controller().State().Filter)
}

func TestGroupTableNeedsData(t *testing.T) {
	m := update(t, New(Options{}), tea.WindowSizeMsg{Width: 80, Height: 24})
	m = update(t, m, key("a"))
	assert.False(t, m.showGroups)
	assert.Equal(t, "no groups for current dataset", m.Status())
}

func TestViewRendersFrame(t *testing.T) {
	assert.Empty(t, New(Options{}).View())

	m := sized(t)
	out := m.View()
	assert.Contains(t, out, "pointmap")
	assert.Contains(t, out, "Zoom: 1.0x | 2 tracks")
	assert.Contains(t, out, "PC-98 (TH01-05)")
	assert.Contains(t, out, "q quit")

	m = update(t, m, key("h"))
	assert.NotContains(t, m.View(), "q quit")
}

func TestGroupLegendFiltersOnClick(t *testing.T) {
	m := sized(t)
	m = update(t, m, key("c"))
	require.Equal(t, scatter.ColorBySecondary, m.Controller().State().ColorMode)

	out := m.View()
	assert.Contains(t, out, "LLS")
	assert.Contains(t, out, "PCB")

	entries := m.groupLegend()
	require.Len(t, entries, 2)
	assert.Equal(t, "TH04", entries[0].tag)
	assert.Equal(t, "TH07", entries[1].tag)

	click := tea.MouseMsg{X: entries[1].start, Y: 0, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft}
	m = update(t, m, click)
	assert.Equal(t, "TH07", m.Controller().State().Filter)
	assert.Equal(t, "filter: TH07 PCB", m.Status())

	m = update(t, m, click)
	assert.Empty(t, m.Controller().State().Filter)
	assert.Equal(t, "filter: all", m.Status())
}

func TestGroupLegendTrimsToWidth(t *testing.T) {
	m := sized(t)
	m = update(t, m, key("c"))
	m = update(t, m, tea.WindowSizeMsg{Width: 48, Height: 24})

	entries := m.groupLegend()
	require.Len(t, entries, 1)
	assert.LessOrEqual(t, entries[0].end, 48)

	m = update(t, m, tea.WindowSizeMsg{Width: 44, Height: 24})
	assert.Empty(t, m.groupLegend())
	assert.Contains(t, m.renderLegend(), "colored by group")
}
