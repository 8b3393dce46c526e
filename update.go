package main

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"flowcanvas/internal/debug"
	"flowcanvas/internal/diagram"
	"flowcanvas/internal/geom"
	"flowcanvas/internal/interaction"
	"flowcanvas/internal/route"
)

func newModel(cfg Config, scene diagram.Scene, v *geom.Viewport, filename string) model {
	start := geom.Viewport{Zoom: 1}
	if v != nil {
		start = *v
	}
	e := interaction.New(cfg.engineConfig())
	st := interaction.NewState(e.Viewport().Set(start))
	return model{
		mode:      ModeNormal,
		config:    cfg,
		engine:    e,
		state:     st,
		scene:     scene,
		filename:  filename,
		keys:      defaultKeyMap(),
		clipboard: systemClipboard{},
	}
}

func (m model) Init() tea.Cmd {
	if m.watcher == nil {
		return nil
	}
	return m.watcher.wait()
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.MouseMsg:
		m.handleMouse(msg)
		return m, nil

	case tea.KeyMsg:
		cmd := m.handleKey(msg)
		return m, cmd

	case statusMsg:
		m.setStatus(msg.text, msg.err)
		return m, nil

	case configReloadedMsg:
		if msg.err != nil {
			m.setStatus(fmt.Sprintf("config: %v", msg.err), true)
		} else {
			m.applyConfig(msg.config)
			m.setStatus("config reloaded", false)
		}
		return m, m.watcher.wait()
	}
	return m, nil
}

func (m *model) handleKey(msg tea.KeyMsg) tea.Cmd {
	if m.mode == ModeHelp {
		if key.Matches(msg, m.keys.Help, m.keys.Cancel, m.keys.Quit) {
			m.mode = ModeNormal
		}
		return nil
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return tea.Quit
	case key.Matches(msg, m.keys.Cancel):
		m.engine.Cancel(m.state)
		m.pending = nil
	case key.Matches(msg, m.keys.Help):
		m.mode = ModeHelp
	case key.Matches(msg, m.keys.Fit):
		m.fitScene()
	case key.Matches(msg, m.keys.Straight):
		m.setEdgeStyle(geom.StyleStraight)
	case key.Matches(msg, m.keys.Step):
		m.setEdgeStyle(geom.StyleStep)
	case key.Matches(msg, m.keys.Bezier):
		m.setEdgeStyle(geom.StyleBezier)
	case key.Matches(msg, m.keys.Copy):
		m.copySelection()
	case key.Matches(msg, m.keys.Paste):
		m.paste()
	case key.Matches(msg, m.keys.PNG):
		return m.exportCmd(exportPNG)
	case key.Matches(msg, m.keys.SVG):
		return m.exportCmd(exportSVG)
	default:
		if !m.handlePan(msg) {
			m.handleZoom(msg)
		}
	}
	return nil
}

// cellToScreen maps a terminal cell to the pixel at its centre.
func (m *model) cellToScreen(x, y int) geom.Point {
	return geom.Pt((float64(x)+0.5)*m.config.CellWidth, (float64(y)+0.5)*m.config.CellHeight)
}

func (m *model) handleMouse(msg tea.MouseMsg) {
	ev := interaction.PointerEvent{
		Screen: m.cellToScreen(msg.X, msg.Y),
		Mods:   interaction.Modifiers{Shift: msg.Shift, Alt: msg.Alt, Ctrl: msg.Ctrl},
	}
	switch {
	case msg.Button == tea.MouseButtonWheelUp:
		ev.Type, ev.Delta = interaction.Wheel, -wheelNotch
	case msg.Button == tea.MouseButtonWheelDown:
		ev.Type, ev.Delta = interaction.Wheel, wheelNotch
	case msg.Action == tea.MouseActionPress:
		ev.Type = interaction.PointerDown
		switch msg.Button {
		case tea.MouseButtonMiddle:
			ev.Button = interaction.ButtonMiddle
		case tea.MouseButtonRight:
			ev.Button = interaction.ButtonRight
		}
		// Only a second press on a resize handle is a double click; anywhere
		// else it is an ordinary press so quick re-grabs still work.
		if m.isDoubleClick(cell{msg.X, msg.Y}, time.Now()) && ev.Button == interaction.ButtonLeft {
			t := interaction.HitTest(m.scene, m.state.Viewport, m.engine.Config(), ev.Screen)
			if t.Kind == interaction.TargetResize {
				ev.Type = interaction.DoubleClick
			}
		}
	case msg.Action == tea.MouseActionRelease:
		ev.Type = interaction.PointerUp
	case msg.Action == tea.MouseActionMotion:
		ev.Type = interaction.PointerMove
		if !m.state.Active() {
			m.updateHover(ev.Screen)
			return
		}
		// The release happened where we could not see it, e.g. outside the
		// terminal. Finish the gesture here.
		if msg.Button == tea.MouseButtonNone {
			ev.Type = interaction.PointerUp
		}
	default:
		return
	}
	m.handlePointer(ev)
}

// isDoubleClick reports whether a press at c completes a double click.
func (m *model) isDoubleClick(c cell, now time.Time) bool {
	if c == m.lastClickCell && now.Sub(m.lastClick) < doubleClickWindow {
		m.lastClick = time.Time{}
		return true
	}
	m.lastClick, m.lastClickCell = now, c
	return false
}

func (m *model) handlePointer(ev interaction.PointerEvent) {
	cmds := m.engine.Handle(m.state, m.scene, ev)
	debug.LogIf(len(cmds) > 0, "%s at %v -> %v", ev.Type, ev.Screen, cmds)
	m.commit(cmds)
}

func (m *model) updateHover(screen geom.Point) {
	world := geom.ScreenToWorld(screen, m.engine.Config().Origin, m.state.Viewport)
	tol := edgeHitCells * m.config.CellWidth / m.state.Viewport.Zoom
	m.hoverEdge, _ = route.EdgeAt(m.routes(), world, tol)
}

// commit applies engine output. Camera commands go to the engine state,
// live move/resize previews are kept aside, and everything else is folded
// into the scene.
func (m *model) commit(cmds []diagram.Command) {
	m.engine.Commit(m.state, cmds)

	var live, final []diagram.Command
	for _, c := range cmds {
		switch c := c.(type) {
		case diagram.PanBy, diagram.SetViewport:
			continue
		case diagram.MoveNode:
			if !c.Final {
				live = append(live, c)
				continue
			}
		case diagram.ResizeNode:
			if !c.Final {
				live = append(live, c)
				continue
			}
		case diagram.SuggestConnect:
			if !m.config.AutoConnect {
				m.setStatus(fmt.Sprintf("%s is close to %s (enable auto_connect to link)", c.Source, c.Target), false)
				continue
			}
			final = append(final, c.Connect(m.config.style()))
			continue
		}
		final = append(final, c)
	}
	if len(live) > 0 {
		m.pending = live
	}
	if !m.state.Active() {
		m.pending = nil
	}

	var fit []string
	m.scene = diagram.Dispatch(m.scene, final, diagram.Callbacks{
		OnConnect: func(c diagram.Connection) {
			m.setStatus(fmt.Sprintf("connected %s → %s", c.Source, c.Target), false)
		},
		OnAutoResize: func(id string) {
			fit = append(fit, id)
		},
	})
	for _, id := range fit {
		m.autoResize(id)
	}
}

// autoResize fits a node around its label.
func (m *model) autoResize(id string) {
	n, ok := m.scene.Node(id)
	if !ok {
		return
	}
	z := m.state.Viewport.Zoom
	r := n.Rect
	r.Width = float64(len([]rune(nodeLabel(n)))+4) * m.config.CellWidth / z
	r.Height = 3 * m.config.CellHeight / z
	m.scene = diagram.Apply(m.scene, diagram.ResizeNode{ID: id, Rect: r, Final: true})
}

// liveScene is the scene with the active gesture's previews applied.
func (m *model) liveScene() diagram.Scene {
	if len(m.pending) == 0 {
		return m.scene
	}
	return diagram.Apply(m.scene, m.pending...)
}

func (m *model) routes() []route.RoutedEdge {
	return m.engine.Resolver().RouteScene(m.liveScene(), m.config.style())
}

func (m *model) setEdgeStyle(s geom.RoutingStyle) {
	m.config.EdgeStyle = string(s)
	m.engine.SetDefaultStyle(s)
	m.setStatus("edge style: "+string(s), false)
}

// applyConfig swaps in a reloaded config. Any gesture in progress is
// cancelled first because its listener belongs to the old engine.
func (m *model) applyConfig(cfg Config) {
	m.engine.Cancel(m.state)
	m.pending = nil
	m.config = cfg
	m.engine = interaction.New(cfg.engineConfig())
	m.state.Viewport = m.engine.Viewport().Set(m.state.Viewport)
}

func (m *model) setStatus(text string, isErr bool) {
	m.status = text
	m.statusErr = isErr
	m.statusAt = time.Now()
}

func (m *model) canvasSize() (int, int) {
	return max(1, m.width), max(1, m.height-1)
}
