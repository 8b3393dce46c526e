// Package interaction turns raw pointer events into diagram commands.
//
// Exactly one gesture is active at a time. A press picks the gesture once,
// attaches a single listener to the Bus, and every later move or release is
// routed through that listener until the gesture ends or is cancelled.
package interaction

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"

	"flowcanvas/internal/debug"
	"flowcanvas/internal/diagram"
	"flowcanvas/internal/geom"
	"flowcanvas/internal/resize"
	"flowcanvas/internal/route"
	"flowcanvas/internal/smartconnect"
	"flowcanvas/internal/viewport"
)

type gestureFunc func(st *EngineState, s diagram.Scene, ev PointerEvent) []diagram.Command

type Engine struct {
	cfg      Config
	view     viewport.Controller
	resolver route.Resolver
	detector smartconnect.Detector
	bus      *Bus
	seq      uint64
}

func New(cfg Config) *Engine {
	cfg = cfg.withDefaults()
	e := &Engine{
		cfg:      cfg,
		view:     viewport.New(cfg.Limits),
		resolver: route.NewResolver(cfg.HandleRadius),
		detector: smartconnect.New(cfg.SmartConnect),
		bus:      NewBus(),
	}
	e.cfg.Limits = e.view.Limits()
	return e
}

func (e *Engine) Config() Config                { return e.cfg }
func (e *Engine) Bus() *Bus                     { return e.bus }
func (e *Engine) Viewport() viewport.Controller { return e.view }
func (e *Engine) Resolver() route.Resolver      { return e.resolver }

func (e *Engine) SetDefaultStyle(style geom.RoutingStyle) {
	e.cfg.DefaultStyle = style
}

// Handle feeds one pointer event through the state machine and returns the
// commands the host should apply. Camera commands are committed with Commit.
func (e *Engine) Handle(st *EngineState, s diagram.Scene, ev PointerEvent) []diagram.Command {
	if !finitePoint(ev.Screen) {
		debug.Log("dropping %s event with non-finite position", ev.Type)
		return nil
	}
	switch ev.Type {
	case PointerDown:
		if st.Gesture != nil {
			debug.Log("press ignored: %s in progress", st.Kind())
			return nil
		}
		return e.begin(st, s, ev)
	case PointerMove, PointerUp:
		return e.bus.Dispatch(st, s, ev)
	case Wheel:
		return e.wheel(st, ev)
	case DoubleClick:
		return e.doubleClick(st, s, ev)
	}
	return nil
}

// Cancel abandons the active gesture without committing it. A cancelled
// pan puts the camera back where the pan started.
func (e *Engine) Cancel(st *EngineState) {
	if st.Gesture == nil {
		return
	}
	if p, ok := st.Gesture.(*PanGesture); ok {
		st.Viewport = p.StartViewport
	}
	debug.Log("gesture %d cancelled", st.Gesture.base().id)
	e.end(st)
}

// FitView replaces the camera with an externally computed one.
func (e *Engine) FitView(st *EngineState, fit viewport.FitEvent) {
	st.Viewport = e.view.Fit(fit)
}

// Commit applies the camera commands among cmds to st.
func (e *Engine) Commit(st *EngineState, cmds []diagram.Command) {
	for _, c := range cmds {
		switch c := c.(type) {
		case diagram.PanBy:
			st.Viewport = e.view.Pan(st.Viewport, c.DX, c.DY)
		case diagram.SetViewport:
			st.Viewport = e.view.Set(c.Viewport)
		}
	}
}

func (e *Engine) world(st *EngineState, screen geom.Point) geom.Point {
	return geom.ScreenToWorld(screen, e.cfg.Origin, st.Viewport)
}

func (e *Engine) begin(st *EngineState, s diagram.Scene, ev PointerEvent) []diagram.Command {
	switch ev.Button {
	case ButtonMiddle:
		e.startPan(st, ev)
		return nil
	case ButtonLeft:
	default:
		return nil
	}

	world := e.world(st, ev.Screen)
	t := HitTest(s, st.Viewport, e.cfg, ev.Screen)
	switch t.Kind {
	case TargetResize:
		n, _ := s.Node(t.NodeID)
		e.startResize(st, n, t.Corner, world)
		return nil
	case TargetHandle:
		e.startConnect(st, t, world)
		return nil
	case TargetNode:
		n, _ := s.Node(t.NodeID)
		return e.startDrag(st, s, n, world, ev.Mods.Shift)
	}

	// Shift always box-selects; otherwise PanOnDrag decides.
	if e.cfg.PanOnDrag && !ev.Mods.Shift {
		e.startPan(st, ev)
		return nil
	}
	e.startBoxSelect(st, world)
	return nil
}

// attach makes g the active gesture and registers its listener. The
// listener ignores events once a different gesture, or none, is active.
func (e *Engine) attach(st *EngineState, g Gesture, move, up gestureFunc) {
	e.seq++
	id := e.seq
	b := g.base()
	b.id = id
	b.listener = e.bus.Listen(func(st *EngineState, s diagram.Scene, ev PointerEvent) []diagram.Command {
		if st.Gesture == nil || st.Gesture.base().id != id {
			return nil
		}
		switch ev.Type {
		case PointerMove:
			return move(st, s, ev)
		case PointerUp:
			out := up(st, s, ev)
			e.end(st)
			return out
		}
		return nil
	})
	st.Gesture = g
	debug.Log("gesture %d started: %s", id, g.Kind())
}

func (e *Engine) end(st *EngineState) {
	if st.Gesture == nil {
		return
	}
	b := st.Gesture.base()
	b.listener.Remove()
	debug.Log("gesture %d ended: %s", b.id, st.Gesture.Kind())
	st.Gesture = nil
	st.Preview = nil
}

func (e *Engine) startPan(st *EngineState, ev PointerEvent) {
	g := &PanGesture{StartViewport: st.Viewport, Last: ev.Screen}
	move := func(st *EngineState, _ diagram.Scene, ev PointerEvent) []diagram.Command {
		d := r2.Sub(ev.Screen, g.Last)
		g.Last = ev.Screen
		if d == (geom.Point{}) {
			return nil
		}
		g.Moved = true
		return []diagram.Command{diagram.PanBy{DX: d.X, DY: d.Y}}
	}
	up := func(st *EngineState, s diagram.Scene, ev PointerEvent) []diagram.Command {
		out := move(st, s, ev)
		if !g.Moved {
			// A click on empty canvas clears the selection.
			out = append(out, diagram.SelectNodes{})
		}
		return out
	}
	e.attach(st, g, move, up)
}

func (e *Engine) startBoxSelect(st *EngineState, world geom.Point) {
	g := &BoxSelectGesture{Start: world, Current: world}
	move := func(st *EngineState, _ diagram.Scene, ev PointerEvent) []diagram.Command {
		g.Current = e.world(st, ev.Screen)
		return nil
	}
	up := func(st *EngineState, s diagram.Scene, ev PointerEvent) []diagram.Command {
		g.Current = e.world(st, ev.Screen)
		rect := g.Rect()
		ids := []string{}
		for _, n := range s.Nodes {
			if n.Caps.Selectable && rect.ContainsRect(n.Rect) {
				ids = append(ids, n.ID)
			}
		}
		return []diagram.Command{diagram.SelectRect{Rect: rect, IDs: ids}}
	}
	e.attach(st, g, move, up)
}

func (e *Engine) startDrag(st *EngineState, s diagram.Scene, n diagram.Node, world geom.Point, additive bool) []diagram.Command {
	var out []diagram.Command
	selected := s.SelectedIDs()
	if n.Caps.Selectable && !n.Selected {
		if additive {
			selected = append(selected, n.ID)
		} else {
			selected = []string{n.ID}
		}
		out = append(out, diagram.SelectNodes{IDs: selected})
	}
	if !n.Caps.Draggable {
		return out
	}

	// Grabbing a node that is part of the selection drags the selection.
	movers := map[string]bool{n.ID: true}
	if n.Selected || additive {
		for _, id := range selected {
			movers[id] = true
		}
	}
	g := &DragGesture{
		NodeID:  n.ID,
		Grab:    world,
		Offset:  r2.Sub(world, n.Rect.Min()),
		Origins: make(map[string]geom.Point, len(movers)),
	}
	for _, m := range s.Nodes {
		if movers[m.ID] && m.Caps.Draggable {
			g.Origins[m.ID] = m.Rect.Min()
			g.Order = append(g.Order, m.ID)
		}
	}

	track := func(st *EngineState, s diagram.Scene, ev PointerEvent) {
		g.Delta = r2.Sub(e.world(st, ev.Screen), g.Grab)
		if g.Delta != (geom.Point{}) {
			g.Moved = true
		}
		st.Preview = e.smartPreview(g, s)
	}
	move := func(st *EngineState, s diagram.Scene, ev PointerEvent) []diagram.Command {
		track(st, s, ev)
		return g.commands(false)
	}
	up := func(st *EngineState, s diagram.Scene, ev PointerEvent) []diagram.Command {
		track(st, s, ev)
		if !g.Moved {
			return nil
		}
		out := g.commands(true)
		if p := st.Preview; p != nil {
			out = append(out, diagram.SuggestConnect{Source: p.Source, Target: p.Target})
		}
		return out
	}
	e.attach(st, g, move, up)
	return out
}

func (g *DragGesture) commands(final bool) []diagram.Command {
	out := make([]diagram.Command, 0, len(g.Order))
	for _, id := range g.Order {
		p, _ := g.Position(id)
		out = append(out, diagram.MoveNode{ID: id, X: p.X, Y: p.Y, Final: final})
	}
	return out
}

// smartPreview looks for a proximity target for the grabbed node, ignoring
// every node that moves with it.
func (e *Engine) smartPreview(g *DragGesture, s diagram.Scene) *smartconnect.Preview {
	n, ok := s.Node(g.NodeID)
	if !ok {
		return nil
	}
	pos, _ := g.Position(g.NodeID)
	rect := n.Rect
	rect.X, rect.Y = pos.X, pos.Y

	candidates := make([]diagram.Node, 0, len(s.Nodes))
	for _, c := range s.Nodes {
		if _, moving := g.Origins[c.ID]; !moving {
			candidates = append(candidates, c)
		}
	}
	p, ok := e.detector.Find(n, rect, candidates)
	if !ok {
		return nil
	}
	return &p
}

func (e *Engine) startConnect(st *EngineState, t Target, world geom.Point) {
	g := &ConnectGesture{Draft: ConnectionDraft{SourceNodeID: t.NodeID, SourceSide: t.Side, Cursor: world}}
	move := func(st *EngineState, _ diagram.Scene, ev PointerEvent) []diagram.Command {
		g.Draft.Cursor = e.world(st, ev.Screen)
		return nil
	}
	up := func(st *EngineState, s diagram.Scene, ev PointerEvent) []diagram.Command {
		g.Draft.Cursor = e.world(st, ev.Screen)
		target, ok := dropTarget(s, st.Viewport, e.cfg, g.Draft.SourceNodeID, ev.Screen)
		if !ok {
			debug.Log("connection from %s dropped on nothing", g.Draft.SourceNodeID)
			return nil
		}
		for _, edge := range s.Edges {
			if edge.Source == g.Draft.SourceNodeID && edge.Target == target.NodeID {
				debug.Log("connection %s -> %s already exists", edge.Source, edge.Target)
				return nil
			}
		}
		edge := diagram.NewEdge(g.Draft.SourceNodeID, target.NodeID, e.cfg.DefaultStyle)
		return []diagram.Command{diagram.CreateEdge{Edge: edge}}
	}
	e.attach(st, g, move, up)
}

// Draft returns the routed preview path of an in-progress connection.
func (e *Engine) Draft(st *EngineState, s diagram.Scene) (geom.Path, bool) {
	g, ok := st.Gesture.(*ConnectGesture)
	if !ok {
		return geom.Path{}, false
	}
	src, ok := s.Node(g.Draft.SourceNodeID)
	if !ok {
		return geom.Path{}, false
	}
	return e.resolver.Preview(src.Rect, g.Draft.SourceSide, g.Draft.Cursor, e.cfg.DefaultStyle), true
}

func (e *Engine) startResize(st *EngineState, n diagram.Node, corner geom.Corner, world geom.Point) {
	// The controller reports through its callbacks; each handler drains
	// whatever they queued.
	var out []diagram.Command
	g := &ResizeGesture{NodeID: n.ID}
	g.Controller = resize.New(corner, n.Rect, world,
		resize.WithMinSize(e.cfg.MinSize),
		resize.OnResize(func(r geom.Rect, _ bool) {
			out = []diagram.Command{diagram.ResizeNode{ID: n.ID, Rect: r}}
		}),
		resize.OnResizeEnd(func(r geom.Rect) {
			out = []diagram.Command{diagram.ResizeNode{ID: n.ID, Rect: r, Final: true}}
		}),
	)
	drain := func() []diagram.Command {
		cmds := out
		out = nil
		return cmds
	}
	move := func(st *EngineState, _ diagram.Scene, ev PointerEvent) []diagram.Command {
		g.Controller.Move(e.world(st, ev.Screen), ev.Mods.Shift)
		return drain()
	}
	up := func(st *EngineState, _ diagram.Scene, ev PointerEvent) []diagram.Command {
		g.Controller.Move(e.world(st, ev.Screen), ev.Mods.Shift)
		g.Controller.End()
		return drain()
	}
	e.attach(st, g, move, up)
}

func (e *Engine) wheel(st *EngineState, ev PointerEvent) []diagram.Command {
	if math.IsNaN(ev.Delta) || math.IsInf(ev.Delta, 0) || ev.Delta == 0 {
		return nil
	}
	v := e.view.Wheel(st.Viewport, ev.Screen, e.cfg.Origin, ev.Delta)
	if v == st.Viewport {
		return nil
	}
	return []diagram.Command{diagram.SetViewport{Viewport: v}}
}

// doubleClick on a resize handle asks the host to fit the node to its
// content. The request goes through a throwaway resize controller so it
// reaches the host the same way a drag resize does.
func (e *Engine) doubleClick(st *EngineState, s diagram.Scene, ev PointerEvent) []diagram.Command {
	if st.Gesture != nil {
		return nil
	}
	t := HitTest(s, st.Viewport, e.cfg, ev.Screen)
	if t.Kind != TargetResize {
		return nil
	}
	n, _ := s.Node(t.NodeID)
	var out []diagram.Command
	c := resize.New(t.Corner, n.Rect, e.world(st, ev.Screen),
		resize.OnAutoResize(func() {
			out = append(out, diagram.AutoResize{ID: n.ID})
		}),
	)
	c.AutoResize()
	return out
}

func finitePoint(p geom.Point) bool {
	return !math.IsNaN(p.X) && !math.IsNaN(p.Y) && !math.IsInf(p.X, 0) && !math.IsInf(p.Y, 0)
}
