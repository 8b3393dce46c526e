package smartconnect

import (
	"testing"

	"flowcanvas/internal/diagram"
	"flowcanvas/internal/geom"
)

func node(id string, x, y float64) diagram.Node {
	return diagram.Node{
		ID:   id,
		Rect: geom.Rect{X: x, Y: y, Width: 100, Height: 50},
		Caps: diagram.DefaultCapabilities(),
	}
}

func TestDistance(t *testing.T) {
	a := geom.Rect{X: 0, Y: 0, Width: 100, Height: 50}
	tests := []struct {
		name string
		b    geom.Rect
		want float64
	}{
		{"overlap", geom.Rect{X: 50, Y: 20, Width: 100, Height: 50}, 0},
		{"touching", geom.Rect{X: 100, Y: 0, Width: 10, Height: 10}, 0},
		{"horizontal gap", geom.Rect{X: 130, Y: 10, Width: 10, Height: 10}, 30},
		{"vertical gap", geom.Rect{X: 10, Y: 95, Width: 10, Height: 10}, 45},
		{"diagonal gap", geom.Rect{X: 130, Y: 90, Width: 10, Height: 10}, 50},
		{"left above", geom.Rect{X: -40, Y: -50, Width: 10, Height: 10}, 50},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Distance(a, tt.b); got != tt.want {
				t.Errorf("Distance = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFindPicksNearest(t *testing.T) {
	d := New(50)
	dragged := node("drag", 0, 0)
	near := node("near", 130, 0) // 30 away
	far := node("far", 0, 95)    // 45 away

	p, ok := d.Find(dragged, dragged.Rect, []diagram.Node{far, dragged, near})
	if !ok || p.Target != "near" || p.Distance != 30 {
		t.Fatalf("Find = %+v, %v", p, ok)
	}
	if p.From != dragged.Rect.Center() || p.To != near.Rect.Center() {
		t.Errorf("ghost connector %v -> %v", p.From, p.To)
	}

	// Drag up and left: about 61 from near, 105 from far.
	moved := dragged.Rect.Translate(geom.Pt(-30, -60))
	if p, ok := d.Find(dragged, moved, []diagram.Node{far, near}); ok {
		t.Errorf("expected preview to clear, got %+v", p)
	}
}

func TestFindTieKeepsFirst(t *testing.T) {
	d := New(50)
	dragged := node("drag", 0, 0)
	left := node("left", -120, 0)
	right := node("right", 120, 0)
	p, ok := d.Find(dragged, dragged.Rect, []diagram.Node{left, right})
	if !ok || p.Target != "left" {
		t.Errorf("tie broken as %+v", p)
	}
}

func TestFindSkipsIneligible(t *testing.T) {
	d := New(50)
	dragged := node("drag", 0, 0)
	frame := node("frame", 110, 0)
	frame.Caps.Container = true
	off := node("off", 0, 60)
	off.Caps.ProximityConnect = false

	if p, ok := d.Find(dragged, dragged.Rect, []diagram.Node{frame, off}); ok {
		t.Errorf("ineligible candidate chosen: %+v", p)
	}

	dragged.Caps.ProximityConnect = false
	if _, ok := d.Find(dragged, dragged.Rect, []diagram.Node{node("x", 110, 0)}); ok {
		t.Error("detector active for node without proximity connect")
	}
}
