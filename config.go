package tupper

import (
	"fmt"
	"image/color"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v2"
)

// Config holds the settings that can be read from a YAML file.
type Config struct {
	Size       int     `yaml:"size"`
	DPI        float64 `yaml:"dpi"`
	MarkerSize float64 `yaml:"marker_size"`
	Foreground string  `yaml:"foreground"` // #rrggbb
	Background string  `yaml:"background"` // #rrggbb
}

func DefaultConfig() *Config {
	return &Config{
		Size:       7,
		DPI:        300,
		MarkerSize: 1,
		Foreground: "#000000",
		Background: "#ffffff",
	}
}

// LoadConfig reads path on top of the defaults. An empty file yields the
// defaults.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return cfg, nil
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("tupper: config %s: %w", path, err)
	}
	if cfg.Size <= 0 {
		return nil, fmt.Errorf("tupper: config %s: %w", path, ErrFontSize)
	}
	if cfg.DPI <= 0 {
		return nil, fmt.Errorf("tupper: config %s: dpi must be positive", path)
	}
	return cfg, nil
}

// PlotOpts converts the figure settings into options for RenderFormula.
func (cfg *Config) PlotOpts() ([]PlotOpt, error) {
	fg, err := parseHex(cfg.Foreground)
	if err != nil {
		return nil, err
	}
	bg, err := parseHex(cfg.Background)
	if err != nil {
		return nil, err
	}
	return []PlotOpt{
		WithDPI(cfg.DPI),
		WithMarkerSize(cfg.MarkerSize),
		WithColors(fg, bg),
	}, nil
}

func parseHex(s string) (color.Color, error) {
	hex := strings.TrimPrefix(s, "#")
	if len(hex) != 6 {
		return nil, fmt.Errorf("tupper: bad color %q", s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return nil, fmt.Errorf("tupper: bad color %q", s)
	}
	return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xff}, nil
}
