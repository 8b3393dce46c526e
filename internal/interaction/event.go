package interaction

import (
	"fmt"

	"flowcanvas/internal/geom"
)

type EventType int

const (
	PointerDown EventType = iota
	PointerMove
	PointerUp
	Wheel
	DoubleClick
)

func (t EventType) String() string {
	switch t {
	case PointerDown:
		return "down"
	case PointerMove:
		return "move"
	case PointerUp:
		return "up"
	case Wheel:
		return "wheel"
	case DoubleClick:
		return "dblclick"
	default:
		return fmt.Sprintf("EventType(%d)", int(t))
	}
}

type Button int

const (
	ButtonLeft Button = iota
	ButtonMiddle
	ButtonRight
)

type Modifiers struct {
	Shift bool
	Alt   bool
	Ctrl  bool
	Meta  bool
}

// PointerEvent is a pointer event in screen pixels.
type PointerEvent struct {
	Type   EventType
	Screen geom.Point
	Button Button
	Mods   Modifiers
	// Delta is the wheel delta; positive scrolls down and zooms out.
	Delta float64
}

func Down(x, y float64) PointerEvent { return PointerEvent{Type: PointerDown, Screen: geom.Pt(x, y)} }
func Move(x, y float64) PointerEvent { return PointerEvent{Type: PointerMove, Screen: geom.Pt(x, y)} }
func Up(x, y float64) PointerEvent   { return PointerEvent{Type: PointerUp, Screen: geom.Pt(x, y)} }

func (e PointerEvent) WithShift() PointerEvent {
	e.Mods.Shift = true
	return e
}
