package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/daptify14/stickit/internal/catalog"
	"github.com/daptify14/stickit/internal/layout"
)

type Theme string

const (
	ThemeAuto  Theme = "auto"
	ThemeDark  Theme = "dark"
	ThemeLight Theme = "light"
)

var validThemes = []Theme{ThemeAuto, ThemeDark, ThemeLight}

func ParseTheme(s string) (Theme, error) {
	s = strings.TrimSpace(strings.ToLower(s))
	if s == "" {
		return ThemeAuto, nil
	}
	for _, t := range validThemes {
		if string(t) == s {
			return t, nil
		}
	}
	return "", fmt.Errorf("invalid theme %q (valid: auto, dark, light)", s)
}

// Layout holds the flow layout sizes, in terminal cells.
type Layout struct {
	HeaderHeight int `yaml:"header_height"`
	FooterHeight int `yaml:"footer_height"`
	ItemHeight   int `yaml:"item_height"`
	ColumnWidth  int `yaml:"column_width"`
	ColumnGap    int `yaml:"column_gap"`
	SectionGap   int `yaml:"section_gap"`
}

// Metrics converts the configured sizes for the flow layout.
func (l Layout) Metrics() layout.Metrics {
	return layout.Metrics{
		HeaderHeight: l.HeaderHeight,
		FooterHeight: l.FooterHeight,
		ItemHeight:   l.ItemHeight,
		ColumnWidth:  l.ColumnWidth,
		ColumnGap:    l.ColumnGap,
		SectionGap:   l.SectionGap,
	}
}

type Config struct {
	Panel    string   `yaml:"panel"` // "auto" (default), "show", "hide"
	Icons    string   `yaml:"icons"` // "nerdfont" (default), "unicode", "none"
	Theme    Theme    `yaml:"theme"`
	Editor   string   `yaml:"editor"`
	MaxDepth int      `yaml:"max_depth"`
	MaxItems int      `yaml:"max_items"`
	SkipDirs []string `yaml:"skip_dirs"`
	Layout   Layout   `yaml:"layout"`
}

func Default() Config {
	m := layout.DefaultMetrics()
	return Config{
		Icons:    "nerdfont",
		Theme:    ThemeAuto,
		MaxDepth: 6,
		MaxItems: 5000,
		SkipDirs: append([]string(nil), catalog.DefaultSkipDirs...),
		Layout: Layout{
			HeaderHeight: m.HeaderHeight,
			FooterHeight: m.FooterHeight,
			ItemHeight:   m.ItemHeight,
			ColumnWidth:  m.ColumnWidth,
			ColumnGap:    m.ColumnGap,
			SectionGap:   m.SectionGap,
		},
	}
}

func (c *Config) Normalize() {
	c.Theme = Theme(strings.TrimSpace(strings.ToLower(string(c.Theme))))
	if c.Theme == "" {
		c.Theme = ThemeAuto
	}

	c.Icons = strings.TrimSpace(strings.ToLower(c.Icons))
	c.Panel = strings.TrimSpace(strings.ToLower(c.Panel))

	c.Editor = strings.TrimSpace(c.Editor)
	if c.Editor != "" {
		c.Editor = expandPath(c.Editor)
	}
	if len(c.SkipDirs) > 0 {
		c.SkipDirs = normalizeStringList(c.SkipDirs)
	}
}

func (c Config) Validate() error {
	if c.Icons != "" {
		switch c.Icons {
		case "nerdfont", "unicode", "none":
		default:
			return fmt.Errorf("invalid icons %q (valid: nerdfont, unicode, none)", c.Icons)
		}
	}
	if c.Panel != "" {
		switch c.Panel {
		case "auto", "show", "hide":
		default:
			return fmt.Errorf("invalid panel %q (valid: auto, show, hide)", c.Panel)
		}
	}
	if _, err := ParseTheme(string(c.Theme)); err != nil {
		return err
	}
	if c.MaxDepth < 0 {
		return fmt.Errorf("invalid max_depth %d (must be >= 0)", c.MaxDepth)
	}
	if c.MaxItems < 0 {
		return fmt.Errorf("invalid max_items %d (must be >= 0)", c.MaxItems)
	}
	return c.Layout.validate()
}

func (l Layout) validate() error {
	if l.ItemHeight <= 0 {
		return fmt.Errorf("invalid layout.item_height %d (must be > 0)", l.ItemHeight)
	}
	if l.ColumnWidth <= 0 {
		return fmt.Errorf("invalid layout.column_width %d (must be > 0)", l.ColumnWidth)
	}
	for name, v := range map[string]int{
		"header_height": l.HeaderHeight,
		"footer_height": l.FooterHeight,
		"column_gap":    l.ColumnGap,
		"section_gap":   l.SectionGap,
	} {
		if v < 0 {
			return fmt.Errorf("invalid layout.%s %d (must be >= 0)", name, v)
		}
	}
	return nil
}

func DefaultPath() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "stickit", "config.yaml")
}

func Load() (Config, error) {
	return LoadFrom(DefaultPath())
}

// LoadFrom returns Default() if path doesn't exist. Keys missing from the
// file keep their default values.
func LoadFrom(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config: %w", err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config: %w", err)
	}

	cfg.Normalize()
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}

	return cfg, nil
}

func expandPath(path string) string {
	if strings.HasPrefix(path, "~") {
		home, _ := os.UserHomeDir()
		return filepath.Join(home, strings.TrimPrefix(path, "~"))
	}
	return path
}

func normalizeStringList(in []string) []string {
	out := make([]string, 0, len(in))
	seen := make(map[string]struct{}, len(in))
	for _, item := range in {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		if _, ok := seen[item]; ok {
			continue
		}
		seen[item] = struct{}{}
		out = append(out, item)
	}
	return out
}
