// Package cli defines the pointmap command-line interface.
package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"pointmap/internal/config"
	"pointmap/internal/dataset"
	"pointmap/internal/logging"
)

// All linker flags will be set at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// app carries the state shared by the commands of one invocation.
type app struct {
	v      *viper.Viper
	input  config.RawInput
	cfg    *config.Config
	logger *slog.Logger
	close  func() error
}

// NewRootCmd builds the command tree with its own viper instance.
func NewRootCmd() *cobra.Command {
	a := &app{v: viper.New(), logger: logging.Discard(), close: func() error { return nil }}

	rootCmd := &cobra.Command{
		Use:   "pointmap [SOURCE]",
		Short: "Explore a labeled 2D point cloud in the terminal.",
		Long: `pointmap draws a scatterplot of labeled points (a UMAP projection, say)
and lets you pan, zoom, hover and filter it with the mouse and keyboard.

SOURCE is a JSON, CSV or YAML file, or an http(s) URL serving one.`,
		Version:            version,
		Args:               cobra.MaximumNArgs(1),
		SilenceErrors:      true,
		SilenceUsage:       true,
		DisableSuggestions: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup()
		},
		PersistentPostRunE: func(*cobra.Command, []string) error {
			return a.close()
		},
		RunE: a.runViewer,
	}
	rootCmd.SetVersionTemplate("pointmap {{.Version}}\n")

	pf := rootCmd.PersistentFlags()
	pf.String("config", "", "Path to config file")
	pf.String("palette", "", "TOML palette file (default: built-in palette)")
	pf.String("color-by", "primary", "Color points by: primary (era) or secondary (game)")
	pf.Bool("labels", false, "Show group labels (drawn from zoom 1.2x)")
	pf.String("filter", "", "Only highlight points of this secondary tag")
	pf.String("noun", config.DefaultNoun, "Noun used in the status readout")
	pf.String("log-file", "", "Write logs to this file (default: discard)")
	pf.String("log-level", config.DefaultLogLevel, "Log level: debug, info, warn or error")
	mustBind(a.v, pf)

	rootCmd.AddCommand(
		newSnapshotCmd(a),
		newGroupsCmd(a),
		newClassifyCmd(a),
		newVersionCmd(),
	)
	return rootCmd
}

// Execute runs the root command.
func Execute(ctx context.Context) error {
	return NewRootCmd().ExecuteContext(ctx)
}

// initConfig registers config file locations, env vars and defaults.
func (a *app) initConfig() {
	if configFile := a.v.GetString("config"); configFile != "" {
		a.v.SetConfigFile(configFile)
	} else {
		a.v.SetConfigName(".pointmap")
		a.v.SetConfigType("yaml")
		a.v.AddConfigPath(".")
		a.v.AddConfigPath("$HOME")
	}

	a.v.SetEnvPrefix("POINTMAP")
	a.v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	a.v.AutomaticEnv()

	for k, val := range config.Defaults() {
		a.v.SetDefault(k, val)
	}
}

// setup merges defaults, file, env and flags, validates them and opens the
// log.
func (a *app) setup() error {
	a.initConfig()
	if err := a.v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("error reading config file: %w", err)
		}
	}
	if err := a.v.Unmarshal(&a.input); err != nil {
		return fmt.Errorf("unable to unmarshal config: %w", err)
	}
	cfg, err := config.Process(a.input)
	if err != nil {
		return err
	}
	a.cfg = cfg

	logger, closeFn, err := logging.New(cfg.LogFile, cfg.LogLevel)
	if err != nil {
		return err
	}
	a.logger, a.close = logger, closeFn
	if used := a.v.ConfigFileUsed(); used != "" {
		a.logger.Debug("config file loaded", "path", used)
	}
	return nil
}

func (a *app) loader() dataset.Loader {
	return dataset.Loader{Logger: a.logger}
}

func mustBind(v *viper.Viper, fs *pflag.FlagSet) {
	if err := v.BindPFlags(fs); err != nil {
		panic(fmt.Sprintf("failed to bind flags: %v", err))
	}
}
