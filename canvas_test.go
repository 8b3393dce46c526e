package main

import (
	"math"
	"strings"
	"testing"

	"flowcanvas/internal/diagram"
	"flowcanvas/internal/geom"
	"flowcanvas/internal/route"
	"flowcanvas/internal/viewport"
)

func testFrame(s diagram.Scene) frame {
	return frame{
		scene:      s,
		view:       geom.Viewport{Zoom: 1},
		cellWidth:  defaultCellWidth,
		cellHeight: defaultCellHeight,
		routes:     route.NewResolver(0).RouteScene(s, geom.StyleStraight),
	}
}

func TestRenderDrawsNodesAndEdges(t *testing.T) {
	s := twoNodeScene()
	s.Nodes[0].Payload = "Start"
	s.Edges = []diagram.Edge{{ID: "e", Source: "src", Target: "dst"}}

	rows := testFrame(s).render(80, 10).plain()
	if len(rows) != 10 || len([]rune(rows[0])) != 80 {
		t.Fatalf("grid is %dx%d", len([]rune(rows[0])), len(rows))
	}
	text := strings.Join(rows, "\n")
	for _, want := range []string{"Start", "dst", "+", "o", ">"} {
		if !strings.Contains(text, want) {
			t.Errorf("render missing %q:\n%s", want, text)
		}
	}
	// src spans cells 0..25 on its top row.
	if !strings.HasPrefix(rows[0], "+") {
		t.Errorf("top-left corner missing: %q", rows[0])
	}
}

func TestRenderSelectionAndPreviews(t *testing.T) {
	s := diagram.Apply(twoNodeScene(), diagram.SelectNodes{IDs: []string{"src"}})
	f := testFrame(s)
	box := geom.Rect{X: 8, Y: 112, Width: 80, Height: 32}
	f.selection = &box

	g := f.render(80, 12)
	text := strings.Join(g.plain(), "\n")
	if !strings.Contains(text, "#") {
		t.Error("selected node should use # borders")
	}
	if !strings.Contains(text, "◆") {
		t.Error("selected resizable node should show corner handles")
	}
	if g.runes[7][3] != '.' || g.classes[7][3] != classPreview {
		t.Errorf("selection rectangle not drawn at its top edge: %q", string(g.runes[7]))
	}
}

func TestRenderOffscreenIsClipped(t *testing.T) {
	s := diagram.Scene{Nodes: []diagram.Node{testNode("far", -5000, -5000)}}
	rows := testFrame(s).render(20, 5).plain()
	for _, r := range rows {
		if strings.TrimSpace(r) != "" {
			t.Fatalf("off-screen node leaked into view: %q", r)
		}
	}
}

func TestStyledKeepsText(t *testing.T) {
	g := newGrid(5, 1)
	g.text(0, 0, "ab", 5, classSelected)
	out := g.styled()[0]
	if !strings.Contains(out, "ab") {
		t.Errorf("styled row lost its text: %q", out)
	}
}

func TestFitViewport(t *testing.T) {
	limits := viewport.DefaultLimits()
	if _, ok := fitViewport(diagram.Scene{}, 800, 600, limits); ok {
		t.Fatal("empty scene cannot be fitted")
	}

	s := twoNodeScene()
	fit, ok := fitViewport(s, 800, 600, limits)
	if !ok {
		t.Fatal("expected a fit")
	}
	v := geom.Viewport{PanX: fit.X, PanY: fit.Y, Zoom: fit.Zoom}
	for _, n := range s.Nodes {
		for _, p := range []geom.Point{n.Rect.Min(), n.Rect.Max()} {
			sp := geom.WorldToScreen(p, geom.Point{}, v)
			if sp.X < 0 || sp.Y < 0 || sp.X > 800 || sp.Y > 600 {
				t.Errorf("%s corner %v lands off screen at %v", n.ID, p, sp)
			}
		}
	}
	b, _ := sceneBounds(s)
	c := geom.WorldToScreen(b.Center(), geom.Point{}, v)
	if math.Abs(c.X-400) > 1e-9 || math.Abs(c.Y-300) > 1e-9 {
		t.Errorf("scene centre at %v, want canvas centre", c)
	}
}
