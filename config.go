package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"flowcanvas/internal/geom"
	"flowcanvas/internal/interaction"
	"flowcanvas/internal/viewport"
)

type Config struct {
	ExportDir   string  `yaml:"export_dir,omitempty"`
	MinZoom     float64 `yaml:"min_zoom,omitempty"`
	MaxZoom     float64 `yaml:"max_zoom,omitempty"`
	WheelStep   float64 `yaml:"wheel_step,omitempty"`
	HitRadius   float64 `yaml:"hit_radius,omitempty"`
	SmartConn   float64 `yaml:"smart_connect_threshold,omitempty"`
	MinResize   float64 `yaml:"min_resize,omitempty"`
	PanOnDrag   bool    `yaml:"pan_on_drag"`
	AutoConnect bool    `yaml:"auto_connect"`
	EdgeStyle   string  `yaml:"edge_style,omitempty"`
	CellWidth   float64 `yaml:"cell_width,omitempty"`
	CellHeight  float64 `yaml:"cell_height,omitempty"`
}

func defaultConfig() Config {
	return Config{
		MinZoom:    viewport.DefaultMinZoom,
		MaxZoom:    viewport.DefaultMaxZoom,
		WheelStep:  viewport.DefaultWheelStep,
		HitRadius:  interaction.DefaultHitRadius,
		SmartConn:  50,
		MinResize:  20,
		PanOnDrag:  true,
		EdgeStyle:  string(geom.StyleBezier),
		CellWidth:  defaultCellWidth,
		CellHeight: defaultCellHeight,
	}
}

func configDir() string {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, "flowcanvas")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "flowcanvas")
}

func configPath() string {
	dir := configDir()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, "config.yaml")
}

// loadConfig reads the user config. A missing file yields the defaults.
func loadConfig() (Config, error) {
	path := configPath()
	if path == "" {
		return defaultConfig(), nil
	}
	return loadConfigFrom(path)
}

func loadConfigFrom(path string) (Config, error) {
	cfg := defaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return defaultConfig(), fmt.Errorf("parsing config: %w", err)
	}
	if _, err := geom.ParseRoutingStyle(cfg.EdgeStyle); err != nil {
		return defaultConfig(), fmt.Errorf("parsing config: edge_style: %w", err)
	}
	if cfg.CellWidth <= 0 {
		cfg.CellWidth = defaultCellWidth
	}
	if cfg.CellHeight <= 0 {
		cfg.CellHeight = defaultCellHeight
	}
	cfg.ExportDir = expandHome(cfg.ExportDir)
	return cfg, nil
}

func expandHome(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, strings.TrimPrefix(path, "~"))
		}
	}
	return path
}

func (c Config) style() geom.RoutingStyle {
	s, err := geom.ParseRoutingStyle(c.EdgeStyle)
	if err != nil {
		return geom.StyleBezier
	}
	return s
}

// engineConfig maps the file settings onto the interaction engine.
func (c Config) engineConfig() interaction.Config {
	ec := interaction.DefaultConfig()
	ec.Limits = viewport.Limits{MinZoom: c.MinZoom, MaxZoom: c.MaxZoom, WheelStep: c.WheelStep}
	ec.HitRadius = c.HitRadius
	ec.SmartConnect = c.SmartConn
	ec.MinSize = c.MinResize
	ec.PanOnDrag = c.PanOnDrag
	ec.DefaultStyle = c.style()
	// A terminal cell is the smallest thing the pointer can hit.
	ec.HandleSize = max(c.CellWidth, c.CellHeight/2)
	return ec
}

// exportPath places relative filenames in ExportDir, creating it if needed.
func (c Config) exportPath(filename string) (string, error) {
	if c.ExportDir == "" || filepath.IsAbs(filename) {
		return filename, nil
	}
	if err := os.MkdirAll(c.ExportDir, 0o755); err != nil {
		return "", fmt.Errorf("creating export dir: %w", err)
	}
	return filepath.Join(c.ExportDir, filename), nil
}
