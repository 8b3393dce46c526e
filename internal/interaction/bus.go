package interaction

import "flowcanvas/internal/diagram"

// Listener receives global pointer move and up events.
type Listener func(st *EngineState, s diagram.Scene, ev PointerEvent) []diagram.Command

type busListener struct {
	id uint32
	fn Listener
}

// Bus holds the global move/up listeners. A gesture attaches one listener
// when it starts and removes it when it ends.
type Bus struct {
	listeners []busListener
	nextID    uint32
}

func NewBus() *Bus {
	return &Bus{}
}

// Handle removes a listener registered with Listen.
type Handle struct {
	id  uint32
	bus *Bus
}

func (b *Bus) Listen(fn Listener) Handle {
	b.nextID++
	b.listeners = append(b.listeners, busListener{id: b.nextID, fn: fn})
	return Handle{id: b.nextID, bus: b}
}

// Remove unregisters the listener. Removing twice is a no-op.
func (h Handle) Remove() {
	if h.bus == nil {
		return
	}
	s := h.bus.listeners
	for i := range s {
		if s[i].id == h.id {
			copy(s[i:], s[i+1:])
			s[len(s)-1] = busListener{}
			h.bus.listeners = s[:len(s)-1]
			return
		}
	}
}

// Len reports how many listeners are attached.
func (b *Bus) Len() int {
	return len(b.listeners)
}

// Dispatch delivers ev to every listener in registration order. Listeners
// may remove themselves while being called.
func (b *Bus) Dispatch(st *EngineState, s diagram.Scene, ev PointerEvent) []diagram.Command {
	if len(b.listeners) == 0 {
		return nil
	}
	snapshot := make([]busListener, len(b.listeners))
	copy(snapshot, b.listeners)

	var out []diagram.Command
	for _, l := range snapshot {
		out = append(out, l.fn(st, s, ev)...)
	}
	return out
}
