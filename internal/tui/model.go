// Package tui is the interactive terminal viewer: a bubbletea program that
// draws the point cloud with braille dots and feeds mouse and keyboard input
// to a scatter.Controller.
package tui

import (
	"context"
	"log/slog"

	list "github.com/charmbracelet/bubbles/list"
	table "github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"

	"pointmap/internal/config"
	"pointmap/internal/dataset"
	"pointmap/internal/logging"
	"pointmap/internal/scatter"
)

const sidebarWidth = 28

// Options configures a Model.
type Options struct {
	Source    string // file path or http(s) URL; empty starts with no data
	Loader    dataset.Loader
	Theme     config.Theme
	ColorMode scatter.ColorMode
	Labels    bool
	Filter    string
	Noun      string
	Logger    *slog.Logger
}

type Model struct {
	width  int
	height int

	showSidebar bool
	helpVisible bool
	showTooltip bool
	showGroups  bool

	status string
	opts   Options
	logger *slog.Logger

	ctrl   *scatter.Controller
	viewer *scatter.Viewer
	canvas *brailleCanvas

	// filter sidebar
	l list.Model

	// group table
	tbl    table.Model
	groups []dataset.GroupSummary

	// pointer position in micro-pixels while over the map
	pointerIn bool
	pointer   scatter.Vec
}

// loadedMsg carries the result of the dataset load started by Init.
type loadedMsg struct {
	source string
	points []scatter.Point
	err    error
}

func New(opts Options) Model {
	if opts.Logger == nil {
		opts.Logger = logging.Discard()
	}
	if opts.Theme.Palette.Primary == nil && opts.Theme.Palette.Secondary == nil {
		opts.Theme = config.DefaultTheme()
	}
	if opts.Loader.Logger == nil {
		opts.Loader.Logger = opts.Logger
	}
	m := Model{
		helpVisible: true,
		showTooltip: true,
		status:      "pointmap ready",
		opts:        opts,
		logger:      opts.Logger,
	}

	m.ctrl = scatter.NewController(0, 0,
		scatter.WithConfig(terminalConfig()),
		scatter.WithLogger(opts.Logger),
	)
	m.ctrl.SetColorMode(opts.ColorMode)
	m.ctrl.SetShowLabels(opts.Labels)
	m.ctrl.SetFilter(opts.Filter)
	m.canvas = newBrailleCanvas(0, 0)
	r := scatter.NewRenderer(opts.Theme.Palette, terminalStyle(opts.Noun), m.ctrl.Config())
	m.viewer = scatter.NewViewer(m.ctrl, r, m.canvas)

	d := list.NewDefaultDelegate()
	d.ShowDescription = true
	m.l = list.New(nil, d, 0, 0)
	m.l.Title = "Filter"
	m.l.SetShowHelp(false)
	m.l.SetShowStatusBar(false)
	m.l.SetFilteringEnabled(true)
	m.l.KeyMap.Quit.SetEnabled(false)
	m.refreshFilterItems()

	m.tbl = table.New(table.WithFocused(true), table.WithColumns(groupColumns()))
	m.tbl.SetHeight(12)
	return m
}

// NewWithPoints returns a Model with pts already installed.
func NewWithPoints(opts Options, pts []scatter.Point) Model {
	opts.Source = ""
	m := New(opts)
	m.setPoints(pts)
	return m
}

func (m Model) Init() tea.Cmd {
	if m.opts.Source == "" {
		return nil
	}
	return loadCmd(m.opts.Loader, m.opts.Source)
}

func loadCmd(l dataset.Loader, src string) tea.Cmd {
	return func() tea.Msg {
		pts, err := l.LoadOrEmpty(context.Background(), src)
		return loadedMsg{source: src, points: pts, err: err}
	}
}

// Controller exposes the interaction controller, mainly for tests.
func (m Model) Controller() *scatter.Controller { return m.ctrl }

// Status returns the footer status text.
func (m Model) Status() string { return m.status }

func (m *Model) setPoints(pts []scatter.Point) {
	m.ctrl.SetPoints(pts)
	if f := m.ctrl.State().Filter; f != "" && !hasTag(pts, f) {
		m.logger.Warn("filter matches no points", "tag", f)
	}
	m.groups = dataset.Summarize(pts)
	m.refreshFilterItems()
	m.refreshGroupTable()
}

func hasTag(pts []scatter.Point, tag string) bool {
	for _, p := range pts {
		if p.Secondary == tag {
			return true
		}
	}
	return false
}
