package main

import (
	"os"
	"path/filepath"
	"testing"

	"flowcanvas/internal/geom"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadConfigMissingFileGivesDefaults(t *testing.T) {
	cfg, err := loadConfigFrom(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg != defaultConfig() {
		t.Errorf("got %+v, want defaults", cfg)
	}
}

func TestLoadConfigOverrides(t *testing.T) {
	path := writeConfig(t, `
min_zoom: 0.25
max_zoom: 8
edge_style: step
auto_connect: true
pan_on_drag: false
cell_width: 10
`)
	cfg, err := loadConfigFrom(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.MinZoom != 0.25 || cfg.MaxZoom != 8 {
		t.Errorf("zoom limits = %v..%v", cfg.MinZoom, cfg.MaxZoom)
	}
	if cfg.style() != geom.StyleStep {
		t.Errorf("style = %s, want step", cfg.style())
	}
	if !cfg.AutoConnect || cfg.PanOnDrag {
		t.Errorf("auto_connect=%t pan_on_drag=%t", cfg.AutoConnect, cfg.PanOnDrag)
	}
	if cfg.CellWidth != 10 || cfg.CellHeight != defaultCellHeight {
		t.Errorf("cell = %vx%v", cfg.CellWidth, cfg.CellHeight)
	}

	ec := cfg.engineConfig()
	if ec.PanOnDrag || ec.DefaultStyle != geom.StyleStep {
		t.Errorf("engine config not mapped: %+v", ec)
	}
	if ec.HandleSize != 10 {
		t.Errorf("handle size = %v, want one cell width", ec.HandleSize)
	}
}

func TestLoadConfigRejectsBadInput(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"bad yaml", "min_zoom: [1, 2"},
		{"bad style", "edge_style: zigzag"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := loadConfigFrom(writeConfig(t, tt.body))
			if err == nil {
				t.Fatal("expected an error")
			}
			if cfg != defaultConfig() {
				t.Errorf("got %+v, want defaults alongside the error", cfg)
			}
		})
	}
}

func TestExpandHome(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}
	if got := expandHome("~/exports"); got != filepath.Join(home, "exports") {
		t.Errorf("expandHome = %q", got)
	}
	if got := expandHome("/tmp/x"); got != "/tmp/x" {
		t.Errorf("absolute path changed: %q", got)
	}
}

func TestExportPath(t *testing.T) {
	dir := t.TempDir()
	cfg := defaultConfig()
	if got, err := cfg.exportPath("a.png"); err != nil || got != "a.png" {
		t.Errorf("no export dir: %q, %v", got, err)
	}
	cfg.ExportDir = filepath.Join(dir, "out")
	if got, err := cfg.exportPath("a.png"); err != nil || got != filepath.Join(dir, "out", "a.png") {
		t.Errorf("export dir: %q, %v", got, err)
	}
	if _, err := os.Stat(cfg.ExportDir); err != nil {
		t.Errorf("export dir not created: %v", err)
	}
}

func TestExportPathUnusableDir(t *testing.T) {
	file := filepath.Join(t.TempDir(), "file")
	if err := os.WriteFile(file, nil, 0o644); err != nil {
		t.Fatal(err)
	}
	cfg := defaultConfig()
	cfg.ExportDir = filepath.Join(file, "out")
	if got, err := cfg.exportPath("a.png"); err == nil {
		t.Errorf("export dir under a regular file gave %q and no error", got)
	}
}
