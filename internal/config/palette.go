package config

import (
	_ "embed"
	"fmt"
	"image/color"
	"io"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/lucasb-eyer/go-colorful"

	"pointmap/internal/scatter"
)

//go:embed default_palette.toml
var defaultPaletteTOML string

// PaletteFile is the on-disk TOML form of a palette.
type PaletteFile struct {
	Fallback     string            `toml:"fallback"`
	Primary      map[string]string `toml:"primary"`
	PrimaryNames map[string]string `toml:"primary_names"`
	Secondary    map[string]string `toml:"secondary"`
	Labels       map[string]string `toml:"labels"`
}

// Theme is a parsed palette plus the ordering and names used by legends.
type Theme struct {
	Palette        scatter.Palette
	PrimaryOrder   []string
	SecondaryOrder []string
	PrimaryNames   map[string]string
}

// PrimaryName returns the legend text of a primary tag.
func (t Theme) PrimaryName(tag string) string {
	if n, ok := t.PrimaryNames[tag]; ok && n != "" {
		return n
	}
	return strings.ReplaceAll(tag, "_", " ")
}

// DefaultTheme returns the built-in palette.
func DefaultTheme() Theme {
	th, err := ReadTheme(strings.NewReader(defaultPaletteTOML))
	if err != nil {
		panic(fmt.Sprintf("built-in palette: %v", err))
	}
	return th
}

// LoadTheme reads a TOML palette file.
func LoadTheme(path string) (Theme, error) {
	var pf PaletteFile
	md, err := toml.DecodeFile(path, &pf)
	if err != nil {
		return Theme{}, fmt.Errorf("palette %s: %w", path, err)
	}
	if err := checkUndecoded(md); err != nil {
		return Theme{}, fmt.Errorf("palette %s: %w", path, err)
	}
	th, err := pf.Theme()
	if err != nil {
		return Theme{}, fmt.Errorf("palette %s: %w", path, err)
	}
	th.applyFileOrder(md)
	return th, nil
}

// ReadTheme decodes a TOML palette from r.
func ReadTheme(r io.Reader) (Theme, error) {
	var pf PaletteFile
	md, err := toml.NewDecoder(r).Decode(&pf)
	if err != nil {
		return Theme{}, err
	}
	if err := checkUndecoded(md); err != nil {
		return Theme{}, err
	}
	th, err := pf.Theme()
	if err != nil {
		return Theme{}, err
	}
	th.applyFileOrder(md)
	return th, nil
}

// applyFileOrder replaces the sorted legend order with the order in which
// the tags appear in the decoded file.
func (t *Theme) applyFileOrder(md toml.MetaData) {
	t.PrimaryOrder = tableOrder(md, "primary", t.PrimaryOrder)
	t.SecondaryOrder = tableOrder(md, "secondary", t.SecondaryOrder)
}

func tableOrder(md toml.MetaData, table string, fallback []string) []string {
	var out []string
	seen := make(map[string]bool, len(fallback))
	for _, k := range md.Keys() {
		if len(k) == 2 && k[0] == table && !seen[k[1]] {
			seen[k[1]] = true
			out = append(out, k[1])
		}
	}
	for _, tag := range fallback {
		if !seen[tag] {
			out = append(out, tag)
		}
	}
	return out
}

func checkUndecoded(md toml.MetaData) error {
	if keys := md.Undecoded(); len(keys) > 0 {
		names := make([]string, len(keys))
		for i, k := range keys {
			names[i] = k.String()
		}
		return fmt.Errorf("unknown keys: %s", strings.Join(names, ", "))
	}
	return nil
}

// Theme converts the file form, validating every color. Legend order is
// alphabetical; LoadTheme and ReadTheme keep the file's order instead.
func (pf PaletteFile) Theme() (Theme, error) {
	primary, err := parseColors("primary", pf.Primary)
	if err != nil {
		return Theme{}, err
	}
	secondary, err := parseColors("secondary", pf.Secondary)
	if err != nil {
		return Theme{}, err
	}
	fallback := scatter.NeutralGray
	if pf.Fallback != "" {
		if fallback, err = ParseHex(pf.Fallback); err != nil {
			return Theme{}, fmt.Errorf("fallback: %w", err)
		}
	}
	labels := make(map[string]string, len(pf.Labels))
	for k, v := range pf.Labels {
		labels[k] = v
	}
	names := make(map[string]string, len(pf.PrimaryNames))
	for k, v := range pf.PrimaryNames {
		names[k] = v
	}
	return Theme{
		Palette: scatter.Palette{
			Primary:   primary,
			Secondary: secondary,
			Labels:    labels,
			Fallback:  fallback,
		},
		PrimaryOrder:   sortedKeys(pf.Primary),
		SecondaryOrder: sortedKeys(pf.Secondary),
		PrimaryNames:   names,
	}, nil
}

func parseColors(section string, in map[string]string) (map[string]color.RGBA, error) {
	out := make(map[string]color.RGBA, len(in))
	for tag, hex := range in {
		c, err := ParseHex(hex)
		if err != nil {
			return nil, fmt.Errorf("%s.%s: %w", section, tag, err)
		}
		out[tag] = c
	}
	return out, nil
}

// ParseHex parses "#rrggbb" (or "#rgb") into an opaque color.
func ParseHex(s string) (color.RGBA, error) {
	c, err := colorful.Hex(strings.TrimSpace(s))
	if err != nil {
		return color.RGBA{}, err
	}
	r, g, b := c.RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 0xff}, nil
}

// Hex formats an RGBA color as "#rrggbb", ignoring alpha.
func Hex(c color.RGBA) string {
	return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
