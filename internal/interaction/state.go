package interaction

import (
	"flowcanvas/internal/geom"
	"flowcanvas/internal/resize"
	"flowcanvas/internal/smartconnect"
)

type Kind int

const (
	Idle Kind = iota
	Panning
	BoxSelecting
	DraggingNode
	DraggingConnection
	ResizingNode
)

func (k Kind) String() string {
	switch k {
	case Idle:
		return "idle"
	case Panning:
		return "panning"
	case BoxSelecting:
		return "box-selecting"
	case DraggingNode:
		return "dragging-node"
	case DraggingConnection:
		return "dragging-connection"
	case ResizingNode:
		return "resizing-node"
	default:
		return "unknown"
	}
}

// Gesture is the active interaction. The concrete types below are the only
// implementations; a nil Gesture means Idle.
type Gesture interface {
	Kind() Kind
	base() *gestureBase
}

type gestureBase struct {
	id       uint64
	listener Handle
}

func (g *gestureBase) base() *gestureBase { return g }

type PanGesture struct {
	gestureBase
	StartViewport geom.Viewport
	Last          geom.Point
	Moved         bool
}

type BoxSelectGesture struct {
	gestureBase
	Start   geom.Point // world
	Current geom.Point // world
}

// Rect is the normalised selection rectangle in world space.
func (g *BoxSelectGesture) Rect() geom.Rect {
	return geom.RectFromPoints(g.Start, g.Current)
}

type DragGesture struct {
	gestureBase
	NodeID string
	// Offset is cursor minus node origin at grab time, in world units.
	Offset geom.Point
	// Grab is the world cursor at press time.
	Grab geom.Point
	// Origins holds the start position of every node moving with this drag.
	Origins map[string]geom.Point
	Order   []string
	Delta   geom.Point
	Moved   bool
}

// Position returns where node id sits for the current drag delta.
func (g *DragGesture) Position(id string) (geom.Point, bool) {
	o, ok := g.Origins[id]
	if !ok {
		return geom.Point{}, false
	}
	return geom.Pt(o.X+g.Delta.X, o.Y+g.Delta.Y), true
}

// ConnectionDraft is the payload of a connection drag.
type ConnectionDraft struct {
	SourceNodeID string
	SourceSide   geom.Side
	Cursor       geom.Point // world position of the free end
}

type ConnectGesture struct {
	gestureBase
	Draft ConnectionDraft
}

type ResizeGesture struct {
	gestureBase
	NodeID     string
	Controller *resize.Controller
}

func (*PanGesture) Kind() Kind       { return Panning }
func (*BoxSelectGesture) Kind() Kind { return BoxSelecting }
func (*DragGesture) Kind() Kind      { return DraggingNode }
func (*ConnectGesture) Kind() Kind   { return DraggingConnection }
func (*ResizeGesture) Kind() Kind    { return ResizingNode }

// EngineState is everything the engine needs between events. The host owns
// it and passes it to every call.
type EngineState struct {
	Viewport geom.Viewport
	Gesture  Gesture
	// Preview is the smart-connect suggestion of the current node drag.
	Preview *smartconnect.Preview
}

func NewState(v geom.Viewport) *EngineState {
	if v.Zoom == 0 {
		v.Zoom = 1
	}
	return &EngineState{Viewport: v}
}

func (s *EngineState) Kind() Kind {
	if s.Gesture == nil {
		return Idle
	}
	return s.Gesture.Kind()
}

func (s *EngineState) Active() bool {
	return s.Gesture != nil
}
