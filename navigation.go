package main

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"flowcanvas/internal/diagram"
	"flowcanvas/internal/geom"
	"flowcanvas/internal/interaction"
)

type keyMap struct {
	Cancel   key.Binding
	Left     key.Binding
	Right    key.Binding
	Up       key.Binding
	Down     key.Binding
	ZoomIn   key.Binding
	ZoomOut  key.Binding
	Fit      key.Binding
	Straight key.Binding
	Step     key.Binding
	Bezier   key.Binding
	Copy     key.Binding
	Paste    key.Binding
	PNG      key.Binding
	SVG      key.Binding
	Help     key.Binding
	Quit     key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Cancel:   key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel gesture")),
		Left:     key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "pan left")),
		Right:    key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "pan right")),
		Up:       key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "pan up")),
		Down:     key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "pan down")),
		ZoomIn:   key.NewBinding(key.WithKeys("+", "="), key.WithHelp("+", "zoom in")),
		ZoomOut:  key.NewBinding(key.WithKeys("-", "_"), key.WithHelp("-", "zoom out")),
		Fit:      key.NewBinding(key.WithKeys("0"), key.WithHelp("0", "fit scene")),
		Straight: key.NewBinding(key.WithKeys("1"), key.WithHelp("1", "straight edges")),
		Step:     key.NewBinding(key.WithKeys("2"), key.WithHelp("2", "step edges")),
		Bezier:   key.NewBinding(key.WithKeys("3"), key.WithHelp("3", "bezier edges")),
		Copy:     key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "copy selection")),
		Paste:    key.NewBinding(key.WithKeys("v", "p"), key.WithHelp("v", "paste")),
		PNG:      key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "export PNG")),
		SVG:      key.NewBinding(key.WithKeys("S"), key.WithHelp("S", "export SVG")),
		Help:     key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) bindings() []key.Binding {
	return []key.Binding{
		k.Cancel, k.Left, k.Right, k.Up, k.Down, k.ZoomIn, k.ZoomOut, k.Fit,
		k.Straight, k.Step, k.Bezier, k.Copy, k.Paste, k.PNG, k.SVG, k.Help, k.Quit,
	}
}

// handlePan moves the camera by whole cells. Panning right shows what is
// to the right, so the content moves left.
func (m *model) handlePan(msg tea.KeyMsg) bool {
	dx, dy := 0.0, 0.0
	switch {
	case key.Matches(msg, m.keys.Left):
		dx = panStep * m.config.CellWidth
	case key.Matches(msg, m.keys.Right):
		dx = -panStep * m.config.CellWidth
	case key.Matches(msg, m.keys.Up):
		dy = panStep * m.config.CellHeight
	case key.Matches(msg, m.keys.Down):
		dy = -panStep * m.config.CellHeight
	default:
		return false
	}
	m.commit([]diagram.Command{diagram.PanBy{DX: dx, DY: dy}})
	return true
}

// handleZoom zooms around the middle of the canvas.
func (m *model) handleZoom(msg tea.KeyMsg) bool {
	delta := 0.0
	switch {
	case key.Matches(msg, m.keys.ZoomIn):
		delta = -keyZoomDelta
	case key.Matches(msg, m.keys.ZoomOut):
		delta = keyZoomDelta
	default:
		return false
	}
	w, h := m.canvasSize()
	center := geom.Pt(float64(w)*m.config.CellWidth/2, float64(h)*m.config.CellHeight/2)
	m.handlePointer(interaction.PointerEvent{Type: interaction.Wheel, Screen: center, Delta: delta})
	return true
}

// fitScene frames every node in the visible canvas.
func (m *model) fitScene() {
	w, h := m.canvasSize()
	fit, ok := fitViewport(m.scene, float64(w)*m.config.CellWidth, float64(h)*m.config.CellHeight, m.engine.Viewport().Limits())
	if !ok {
		m.setStatus("nothing to fit", false)
		return
	}
	m.engine.FitView(m.state, fit)
}
