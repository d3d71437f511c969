package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"pointmap/internal/raster"
	"pointmap/internal/scatter"
)

func newSnapshotCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "snapshot SOURCE",
		Short: "Render a view of the dataset to a PNG file.",
		Long: `Render SOURCE exactly as the viewer would at the given canvas size,
zoom, pan, filter, labels and coloring mode, and write it as PNG.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.snapshot(cmd, args[0])
		},
	}
	f := cmd.Flags()
	f.Int("width", 560, "Canvas width in pixels")
	f.Int("height", 450, "Canvas height in pixels")
	f.Float64("zoom", 1.0, "Zoom factor (clamped to 0.5-8)")
	f.Float64("pan-x", 0, "Horizontal pan in pixels")
	f.Float64("pan-y", 0, "Vertical pan in pixels")
	f.StringP("output", "o", "pointmap.png", "Output PNG path")
	mustBind(a.v, f)
	return cmd
}

func (a *app) snapshot(cmd *cobra.Command, source string) error {
	pts, err := a.loader().Load(cmd.Context(), source)
	if err != nil {
		return fmt.Errorf("load %s: %w", source, err)
	}

	cfg := a.cfg
	ctrl := scatter.NewController(float64(cfg.Width), float64(cfg.Height), scatter.WithLogger(a.logger))
	ctrl.SetPoints(pts)
	ctrl.SetColorMode(cfg.ColorMode)
	ctrl.SetShowLabels(cfg.Labels)
	ctrl.SetFilter(cfg.Filter)
	ctrl.SetZoom(cfg.Zoom)
	ctrl.PanBy(cfg.Pan.X, cfg.Pan.Y)

	canvas := raster.New(cfg.Width, cfg.Height)
	defer func() { _ = canvas.Close() }()
	r := scatter.NewRenderer(cfg.Theme.Palette, cfg.Style(), ctrl.Config())
	frame := r.Draw(canvas, ctrl.Points(), ctrl.Viewport(), ctrl.State())

	if err := canvas.WriteFile(cfg.Output); err != nil {
		return err
	}
	a.logger.Info("snapshot written", "path", cfg.Output, "drawn", frame.Drawn, "labels", len(frame.Labels))
	cmd.Printf("wrote %s (%dx%d): %s\n", cfg.Output, cfg.Width, cfg.Height, frame.Status)
	return nil
}
