package main

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"flowcanvas/internal/debug"
	"flowcanvas/internal/diagram"
	"flowcanvas/internal/geom"
	"flowcanvas/internal/route"
)

var (
	warn = color.New(color.FgYellow)
	good = color.New(color.FgGreen)
	bad  = color.New(color.FgRed, color.Bold)
)

var debugFlag bool

const debugLogFile = "flowcanvas-debug.log"

func main() {
	if err := rootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "flowcanvas [scene.json]",
		Short: "Pan, zoom and wire up node diagrams in the terminal",
		Args:  cobra.MaximumNArgs(1),
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if debugFlag {
				debug.SetEnabled(true)
			}
		},
		Run: func(cmd *cobra.Command, args []string) {
			cfg := mustConfig()
			scene, v, name, err := openScene(args)
			if err != nil {
				bad.Fprintf(os.Stderr, "flowcanvas: %v\n", err)
				os.Exit(1)
			}

			// Anything written to stderr would land on the alt screen.
			debug.SetOutput(io.Discard)
			if debug.Enabled() {
				if f, err := openDebugLog(debugLogFile); err == nil {
					defer f.Close()
				} else {
					warn.Fprintf(os.Stderr, "flowcanvas: debug log disabled: %v\n", err)
				}
			}

			m := newModel(cfg, scene, v, name)
			if w, err := newConfigWatcher(configPath()); err == nil {
				m.watcher = w
				defer w.Close()
			} else {
				debug.Log("config watching disabled: %v", err)
			}

			p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseAllMotion())
			if _, err := p.Run(); err != nil {
				log.Fatal(err)
			}
		},
	}
	cmd.PersistentFlags().BoolVar(&debugFlag, "debug", false, "Log engine events to "+debugLogFile)
	cmd.AddCommand(exportCmd())
	return cmd
}

// openDebugLog appends debug output to path until the returned file is
// closed.
func openDebugLog(path string) (io.Closer, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, err
	}
	debug.SetOutput(f)
	return f, nil
}

func exportCmd() *cobra.Command {
	var pngOut, svgOut string
	cmd := &cobra.Command{
		Use:   "export <scene.json>",
		Short: "Render a scene to PNG or SVG without opening the UI",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if pngOut == "" && svgOut == "" {
				base := strings.TrimSuffix(filepath.Base(args[0]), filepath.Ext(args[0]))
				pngOut = base + ".png"
			}
			cfg := mustConfig()
			scene, _, err := loadScene(args[0])
			if err != nil {
				return err
			}

			resolver := route.NewResolver(cfg.engineConfig().HandleRadius)
			for kind, out := range map[exportKind]string{exportPNG: pngOut, exportSVG: svgOut} {
				if out == "" {
					continue
				}
				path, err := cfg.exportPath(out)
				if err != nil {
					return err
				}
				if err := exportScene(scene, resolver, cfg.style(), kind, path); err != nil {
					return err
				}
				good.Printf("wrote %s\n", path)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&pngOut, "png", "", "PNG output file")
	cmd.Flags().StringVar(&svgOut, "svg", "", "SVG output file")
	return cmd
}

// mustConfig loads the user config, falling back to defaults on error.
func mustConfig() Config {
	cfg, err := loadConfig()
	if err != nil {
		warn.Fprintf(os.Stderr, "flowcanvas: %v (using defaults)\n", err)
	}
	return cfg
}

func openScene(args []string) (diagram.Scene, *geom.Viewport, string, error) {
	if len(args) == 0 {
		return demoScene(), nil, "", nil
	}
	scene, v, err := loadScene(args[0])
	if err != nil {
		return diagram.Scene{}, nil, "", fmt.Errorf("loading %s: %w", args[0], err)
	}
	return scene, v, filepath.Base(args[0]), nil
}
