package cli

import (
	"errors"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"pointmap/internal/tui"
)

var errNoTerminal = errors.New("the interactive viewer needs a terminal; try `pointmap snapshot` instead")

func (a *app) viewerOptions(source string) tui.Options {
	return tui.Options{
		Source:    source,
		Loader:    a.loader(),
		Theme:     a.cfg.Theme,
		ColorMode: a.cfg.ColorMode,
		Labels:    a.cfg.Labels,
		Filter:    a.cfg.Filter,
		Noun:      a.cfg.Noun,
		Logger:    a.logger,
	}
}

// runViewer starts the bubbletea program on SOURCE.
func (a *app) runViewer(cmd *cobra.Command, args []string) error {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return errNoTerminal
	}
	source := ""
	if len(args) == 1 {
		source = args[0]
	}
	a.logger.Info("starting viewer", "source", source)
	m := tui.New(a.viewerOptions(source))
	p := tea.NewProgram(m,
		tea.WithAltScreen(),
		tea.WithMouseAllMotion(),
		tea.WithContext(cmd.Context()),
	)
	_, err := p.Run()
	return err
}
