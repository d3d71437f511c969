// Package config resolves pointmap settings from viper (defaults, config
// file, environment and flags) and loads palette files.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"pointmap/internal/scatter"
)

// Default values for configuration.
const (
	DefaultWidth         = 560
	DefaultHeight        = 450
	DefaultNoun          = "points"
	DefaultLogLevel      = "info"
	DefaultOutput        = "pointmap.png"
	DefaultClassifyDelay = 1500 * time.Millisecond
)

// ErrInvalidColorMode is returned for an unknown color-by value.
var ErrInvalidColorMode = errors.New("invalid color mode")

// RawInput is what viper unmarshals: flags, env and file merged, unvalidated.
type RawInput struct {
	Palette       string        `mapstructure:"palette"`
	ColorBy       string        `mapstructure:"color-by"`
	Labels        bool          `mapstructure:"labels"`
	Filter        string        `mapstructure:"filter"`
	Noun          string        `mapstructure:"noun"`
	LogFile       string        `mapstructure:"log-file"`
	LogLevel      string        `mapstructure:"log-level"`
	Width         int           `mapstructure:"width"`
	Height        int           `mapstructure:"height"`
	Zoom          float64       `mapstructure:"zoom"`
	PanX          float64       `mapstructure:"pan-x"`
	PanY          float64       `mapstructure:"pan-y"`
	Output        string        `mapstructure:"output"`
	ClassifyDelay time.Duration `mapstructure:"classify-delay"`
	Seed          int64         `mapstructure:"seed"`
}

// Config is the validated configuration.
type Config struct {
	Theme         Theme
	ColorMode     scatter.ColorMode
	Labels        bool
	Filter        string
	Noun          string
	LogFile       string
	LogLevel      slog.Level
	Width         int
	Height        int
	Zoom          float64
	Pan           scatter.Vec
	Output        string
	ClassifyDelay time.Duration
	Seed          int64
}

// Defaults returns the values viper registers before any source is read.
func Defaults() map[string]any {
	return map[string]any{
		"palette":        "",
		"color-by":       scatter.ColorByPrimary.String(),
		"labels":         false,
		"filter":         "",
		"noun":           DefaultNoun,
		"log-file":       "",
		"log-level":      DefaultLogLevel,
		"width":          DefaultWidth,
		"height":         DefaultHeight,
		"zoom":           1.0,
		"pan-x":          0.0,
		"pan-y":          0.0,
		"output":         DefaultOutput,
		"classify-delay": DefaultClassifyDelay,
		"seed":           int64(0),
	}
}

// Process validates in and resolves the palette.
func Process(in RawInput) (*Config, error) {
	mode, err := scatter.ParseColorMode(in.ColorBy)
	if err != nil {
		return nil, fmt.Errorf("invalid color-by %q: %w", in.ColorBy, ErrInvalidColorMode)
	}

	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(orDefault(in.LogLevel, DefaultLogLevel)))); err != nil {
		return nil, fmt.Errorf("log-level: %w", err)
	}

	if in.Width < 0 || in.Height < 0 {
		return nil, fmt.Errorf("canvas size %dx%d must not be negative", in.Width, in.Height)
	}
	if in.Zoom < 0 {
		return nil, fmt.Errorf("zoom %g must be positive", in.Zoom)
	}
	if in.ClassifyDelay < 0 {
		return nil, fmt.Errorf("classify-delay %s must not be negative", in.ClassifyDelay)
	}

	theme := DefaultTheme()
	if in.Palette != "" {
		if theme, err = LoadTheme(in.Palette); err != nil {
			return nil, err
		}
	}

	cfg := &Config{
		Theme:         theme,
		ColorMode:     mode,
		Labels:        in.Labels,
		Filter:        strings.TrimSpace(in.Filter),
		Noun:          orDefault(in.Noun, DefaultNoun),
		LogFile:       in.LogFile,
		LogLevel:      level,
		Width:         orDefaultInt(in.Width, DefaultWidth),
		Height:        orDefaultInt(in.Height, DefaultHeight),
		Zoom:          in.Zoom,
		Pan:           scatter.Vec{X: in.PanX, Y: in.PanY},
		Output:        orDefault(in.Output, DefaultOutput),
		ClassifyDelay: in.ClassifyDelay,
		Seed:          in.Seed,
	}
	if cfg.Zoom == 0 {
		cfg.Zoom = 1.0
	}
	return cfg, nil
}

// Style returns the renderer style for a full-resolution canvas.
func (c *Config) Style() scatter.Style {
	st := scatter.DefaultStyle()
	st.Noun = c.Noun
	return st
}

func orDefault(s, def string) string {
	if strings.TrimSpace(s) == "" {
		return def
	}
	return s
}

func orDefaultInt(v, def int) int {
	if v == 0 {
		return def
	}
	return v
}
