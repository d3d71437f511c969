package cli

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
	"github.com/spf13/cobra"

	"pointmap/internal/config"
	"pointmap/internal/dataset"
)

func newGroupsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "groups SOURCE",
		Short: "Print a per-group summary of the dataset.",
		Long: `List every secondary group of SOURCE with its palette label, title,
primary categories, point count and mean position.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pts, err := a.loader().Load(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("load %s: %w", args[0], err)
			}
			groups := dataset.Summarize(pts)
			a.logger.Info("groups summarized", "source", args[0], "points", len(pts), "groups", len(groups))
			return printGroups(cmd.OutOrStdout(), groups, a.cfg.Theme)
		},
	}
}

// printGroups renders the summary with the tablewriter API.
func printGroups(w io.Writer, groups []dataset.GroupSummary, th config.Theme) error {
	table := tablewriter.NewWriter(w)
	defer func() { _ = table.Close() }()

	table.Header([]string{"Tag", "Label", "Title", "Primary", "Count", "Mean X", "Mean Y"})
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})

	data := make([][]string, 0, len(groups))
	for _, g := range groups {
		c := th.Palette.SecondaryColor(g.Tag)
		tag := color.RGB(int(c.R), int(c.G), int(c.B)).Sprint(g.Tag)
		data = append(data, []string{
			tag,
			th.Palette.Label(g.Tag),
			g.Title,
			strings.Join(g.Primary, ","),
			strconv.Itoa(g.Count),
			fmt.Sprintf("%.3f", g.MeanX),
			fmt.Sprintf("%.3f", g.MeanY),
		})
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	return table.Render()
}
