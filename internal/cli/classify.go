package cli

import (
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"pointmap/internal/classifier"
)

func newClassifyCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "classify FILE...",
		Short: "Guess which circle arranged an audio file (demo).",
		Long: `A demo of the circle classifier. No audio is analyzed: after a short
delay a random circle and a confidence between 70% and 95% are reported.
Files whose type is not audio/* are rejected.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sim := classifier.New(
				classifier.WithDelay(a.cfg.ClassifyDelay),
				classifier.WithSeed(a.cfg.Seed),
				classifier.WithLogger(a.logger),
			)
			bold := color.New(color.Bold).SprintFunc()
			for _, path := range args {
				if _, err := os.Stat(path); err != nil {
					return err
				}
				res, err := sim.Classify(cmd.Context(), path)
				if err != nil {
					return err
				}
				cmd.Printf("%s: %s (%s) %.1f%%\n", path, bold(res.Circle.Name), res.Circle.Style, res.Confidence*100)
			}
			return nil
		},
	}
	f := cmd.Flags()
	f.Duration("classify-delay", classifier.DefaultDelay, "Simulated analysis time")
	f.Int64("seed", 0, "Random seed (0 = time based)")
	mustBind(a.v, f)
	return cmd
}

