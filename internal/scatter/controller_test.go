package scatter

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestZoomClamping(t *testing.T) {
	c := NewController(560, 450)

	t.Run("zoom in saturates", func(t *testing.T) {
		for i := 0; i < 1000; i++ {
			c.ZoomIn()
			z := c.State().Zoom
			require.GreaterOrEqual(t, z, 0.5)
			require.LessOrEqual(t, z, 8.0)
		}
		assert.Equal(t, 8.0, c.State().Zoom)
	})

	t.Run("zoom out saturates", func(t *testing.T) {
		for i := 0; i < 1000; i++ {
			c.ZoomOut()
			require.GreaterOrEqual(t, c.State().Zoom, 0.5)
		}
		assert.Equal(t, 0.5, c.State().Zoom)
	})

	t.Run("mixed wheel and buttons stay in range", func(t *testing.T) {
		c.Reset()
		for i := 0; i < 500; i++ {
			switch i % 5 {
			case 0, 1, 2:
				c.Wheel(-120)
			case 3:
				c.ZoomIn()
			default:
				c.Wheel(120)
			}
			z := c.State().Zoom
			require.GreaterOrEqual(t, z, 0.5)
			require.LessOrEqual(t, z, 8.0)
		}
	})

	t.Run("absolute zoom is clamped too", func(t *testing.T) {
		c.SetZoom(100)
		assert.Equal(t, 8.0, c.State().Zoom)
		c.SetZoom(-3)
		assert.Equal(t, 0.5, c.State().Zoom)
	})
}

func TestWheel(t *testing.T) {
	c := NewController(560, 450)
	c.PanBy(4, 2)

	c.Wheel(-1)
	assert.InDelta(t, 1.1, c.State().Zoom, 1e-12)
	c.Wheel(1)
	assert.InDelta(t, 1.0, c.State().Zoom, 1e-12)
	c.Wheel(0)
	assert.InDelta(t, 1.0, c.State().Zoom, 1e-12)
	assert.Equal(t, Vec{4, 2}, c.State().Pan)

	c.PointerDown(10, 10, ButtonPrimary)
	c.Wheel(-1)
	assert.True(t, c.State().Dragging(), "wheel must not end a drag")
}

func TestButtonZoomSteps(t *testing.T) {
	c := NewController(560, 450)
	c.ZoomIn()
	assert.InDelta(t, 1.4, c.State().Zoom, 1e-12)
	c.ZoomOut()
	c.ZoomOut()
	assert.InDelta(t, 1/1.4, c.State().Zoom, 1e-12)
}

func TestResetIsIdempotent(t *testing.T) {
	c := newUnitController(t, samplePoints())
	c.PointerMove(40, 50)
	require.NotNil(t, c.State().Hover)

	c.SetZoom(3)
	c.PanBy(25, -40)
	c.SetFilter("g1")

	c.Reset()
	once := c.State()
	c.Reset()
	twice := c.State()

	assert.Equal(t, once, twice)
	assert.Equal(t, 1.0, twice.Zoom)
	assert.Equal(t, Vec{}, twice.Pan)
	assert.Empty(t, twice.Filter)
	require.NotNil(t, twice.Hover, "reset keeps the hover target")
	assert.Equal(t, "c", twice.Hover.ID)
}

func TestDragAccumulatesIncrementally(t *testing.T) {
	c := NewController(560, 450)
	c.PanBy(3, 4)

	c.PointerDown(100, 100, ButtonPrimary)
	require.True(t, c.State().Dragging())
	c.PointerMove(110, 95)
	assert.Equal(t, Vec{13, -1}, c.State().Pan)
	c.PointerMove(105, 90)
	assert.Equal(t, Vec{3 + 5, 4 - 10}, c.State().Pan)
	assert.Equal(t, Vec{105, 90}, *c.State().DragOrigin)

	c.PointerUp()
	assert.False(t, c.State().Dragging())
	c.PointerMove(300, 300)
	assert.Equal(t, Vec{8, -6}, c.State().Pan, "moves after release must not pan")
}

func TestDragOnlyWithPrimaryButton(t *testing.T) {
	c := NewController(560, 450)
	c.PointerDown(1, 1, ButtonSecondary)
	assert.False(t, c.State().Dragging())
	c.PointerDown(1, 1, ButtonMiddle)
	assert.False(t, c.State().Dragging())
}

func TestHoverSuspendedWhileDragging(t *testing.T) {
	c := newUnitController(t, samplePoints())
	c.PointerMove(0, 0)
	require.NotNil(t, c.State().Hover)
	assert.Equal(t, "a", c.State().Hover.ID)

	c.PointerDown(0, 0, ButtonPrimary)
	c.PointerMove(40, 50)
	require.NotNil(t, c.State().Hover)
	assert.Equal(t, "a", c.State().Hover.ID)

	c.PointerLeave()
	assert.False(t, c.State().Dragging())
	assert.Nil(t, c.State().Hover)
}

func TestFilterExclusivity(t *testing.T) {
	c := newUnitController(t, samplePoints())
	c.SetFilter("g1")

	// d sits exactly under the pointer but is not in g1; c is 10px away.
	c.PointerMove(50, 50)
	require.NotNil(t, c.State().Hover)
	assert.Equal(t, "c", c.State().Hover.ID)

	c.PointerMove(100, 100)
	assert.Nil(t, c.State().Hover, "b is dimmed and must not be picked")

	_, ok := c.PointAt(100, 100)
	assert.False(t, ok)
}

func TestSetFilterDropsIneligibleHover(t *testing.T) {
	c := newUnitController(t, samplePoints())
	c.PointerMove(100, 100)
	require.NotNil(t, c.State().Hover)
	c.SetFilter("g1")
	assert.Nil(t, c.State().Hover)
	c.ClearFilter()
	assert.False(t, c.State().Filtered())
}

func TestHitRadiusScalesWithZoom(t *testing.T) {
	c := newUnitController(t, samplePoints())
	// c at (40,50) and d at (50,50): 10px apart at zoom 1.
	assert.Equal(t, 12.0, c.HitRadius())

	c.PointerMove(45, 50)
	require.NotNil(t, c.State().Hover, "midpoint is within 12px of both")
	assert.Contains(t, []string{"c", "d"}, c.State().Hover.ID)

	c.PointerMove(40, 61.5)
	require.NotNil(t, c.State().Hover)
	assert.Equal(t, "c", c.State().Hover.ID)

	c.SetZoom(4)
	assert.Equal(t, 8.0, c.HitRadius())
	// c projects to (10,50), d to (50,50).
	vp := c.Viewport()
	assert.Equal(t, Vec{10, 50}, vp.Project(c.Points()[2]))
	assert.Equal(t, Vec{50, 50}, vp.Project(c.Points()[3]))

	c.PointerMove(30, 50)
	assert.Nil(t, c.State().Hover, "midpoint is outside both 8px disks")
	c.PointerMove(10, 61.5)
	assert.Nil(t, c.State().Hover)
	c.PointerMove(10, 57.5)
	require.NotNil(t, c.State().Hover)
	assert.Equal(t, "c", c.State().Hover.ID)
	c.PointerMove(50, 57.5)
	require.NotNil(t, c.State().Hover)
	assert.Equal(t, "d", c.State().Hover.ID)
}

func TestProjectionConsistency(t *testing.T) {
	pts := []Point{
		{ID: "1", Secondary: "g1", X: -3.5, Y: 12},
		{ID: "2", Secondary: "g2", X: 7.25, Y: -1},
		{ID: "3", Secondary: "g1", X: 0, Y: 0},
		{ID: "4", Secondary: "g3", X: 2, Y: 9},
		{ID: "5", Secondary: "g2", X: 2, Y: 9}, // coincident with 4
		{ID: "6", Secondary: "g1", X: 5.5, Y: 4.4},
	}
	c := NewController(560, 450)
	c.SetPoints(pts)

	states := []struct {
		zoom   float64
		pan    Vec
		filter string
	}{
		{1, Vec{}, ""},
		{0.5, Vec{-30, 12}, ""},
		{2.7, Vec{90, -40}, "g1"},
		{8, Vec{-1200, 300}, "g2"},
		{4, Vec{15, 15}, "g3"},
	}
	for _, s := range states {
		c.Reset()
		c.SetZoom(s.zoom)
		c.PanBy(s.pan.X, s.pan.Y)
		c.SetFilter(s.filter)
		vp := c.Viewport()
		for _, p := range pts {
			if s.filter != "" && p.Secondary != s.filter {
				continue
			}
			at := vp.Project(p)
			if !vp.InView(at, c.Config().CullSlack) {
				continue
			}
			got, ok := c.PointAt(at.X, at.Y)
			require.True(t, ok, "point %s at zoom %.1f", p.ID, s.zoom)
			assert.Equal(t, at, vp.Project(got), "point %s resolved to %s", p.ID, got.ID)
		}
	}
}

func TestCulledPointsAreNotHittable(t *testing.T) {
	c := newUnitController(t, samplePoints())
	c.SetZoom(8)
	vp := c.Viewport()
	a := vp.Project(c.Points()[0])
	require.False(t, vp.InView(a, c.Config().CullSlack))
	_, ok := c.PointAt(a.X, a.Y)
	assert.False(t, ok)
}

func TestEmptyDatasetNeverHovers(t *testing.T) {
	c := NewController(560, 450)
	c.PointerMove(280, 225)
	assert.Nil(t, c.State().Hover)
	c.SetPoints(nil)
	c.PointerMove(280, 225)
	assert.Nil(t, c.State().Hover)
}

func TestSubscribe(t *testing.T) {
	c := NewController(560, 450)
	var seen []ViewState
	unsubscribe := c.Subscribe(func(s ViewState) { seen = append(seen, s) })

	c.ZoomIn()
	c.ToggleLabels()
	c.CycleColorMode()
	require.Len(t, seen, 3)
	assert.InDelta(t, 1.4, seen[0].Zoom, 1e-12)
	assert.True(t, seen[1].ShowLabels)
	assert.Equal(t, ColorBySecondary, seen[2].ColorMode)

	unsubscribe()
	c.ZoomOut()
	assert.Len(t, seen, 3)
}

func TestResizeReportsChange(t *testing.T) {
	c := NewController(560, 450)
	assert.False(t, c.Resize(560, 450))
	assert.True(t, c.Resize(800, 600))
	w, h := c.Size()
	assert.Equal(t, 800.0, w)
	assert.Equal(t, 600.0, h)
}

func TestParseColorMode(t *testing.T) {
	for in, want := range map[string]ColorMode{
		"":          ColorByPrimary,
		"era":       ColorByPrimary,
		"Primary":   ColorByPrimary,
		"game":      ColorBySecondary,
		"secondary": ColorBySecondary,
	} {
		got, err := ParseColorMode(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	_, err := ParseColorMode("rainbow")
	assert.Error(t, err)
}

func TestDefaultLoggerIsSilent(t *testing.T) {
	c := NewController(10, 10)
	assert.False(t, c.logger.Enabled(t.Context(), slog.LevelError))
}
