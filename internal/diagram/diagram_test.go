package diagram

import (
	"errors"
	"testing"

	"flowcanvas/internal/geom"
)

func testScene() Scene {
	caps := DefaultCapabilities()
	return Scene{
		Nodes: []Node{
			{ID: "a", Rect: geom.Rect{X: 0, Y: 0, Width: 200, Height: 100}, Caps: caps},
			{ID: "b", Rect: geom.Rect{X: 400, Y: 0, Width: 200, Height: 100}, Caps: caps},
		},
		Edges: []Edge{
			{ID: "e1", Source: "a", Target: "b", Style: geom.StyleStep},
		},
	}
}

func TestVisibleEdgesFiltersOrphans(t *testing.T) {
	s := testScene()
	s.Nodes = s.Nodes[:1]

	if got := s.VisibleEdges(); len(got) != 0 {
		t.Errorf("expected orphaned edge to be hidden, got %v", got)
	}
	if got := s.OrphanEdges(); len(got) != 1 || got[0].ID != "e1" {
		t.Errorf("OrphanEdges = %v", got)
	}
}

func TestNormalizeAppliesDefaults(t *testing.T) {
	n := Node{ID: "x", Rect: geom.Rect{X: 5, Y: 5}}.Normalize()
	if n.Rect.Width != DefaultNodeWidth || n.Rect.Height != DefaultNodeHeight {
		t.Errorf("size = %vx%v", n.Rect.Width, n.Rect.Height)
	}
	n = Node{ID: "y", Rect: geom.Rect{Width: -3, Height: 40}}.Normalize()
	if n.Rect.Width != DefaultNodeWidth || n.Rect.Height != 40 {
		t.Errorf("size = %vx%v", n.Rect.Width, n.Rect.Height)
	}
}

func TestApplyDoesNotMutateInput(t *testing.T) {
	s := testScene()
	next := Apply(s,
		MoveNode{ID: "a", X: 30, Y: 40},
		SelectNodes{IDs: []string{"b"}},
		CreateEdge{Edge: Edge{ID: "e2", Source: "b", Target: "a"}},
	)

	if s.Nodes[0].Rect.X != 0 || s.Nodes[1].Selected || len(s.Edges) != 1 {
		t.Fatal("Apply modified its input")
	}
	if next.Nodes[0].Rect.X != 30 || next.Nodes[0].Rect.Y != 40 {
		t.Errorf("node a at %v", next.Nodes[0].Rect)
	}
	if !next.Nodes[1].Selected || next.Nodes[0].Selected {
		t.Errorf("selection = %v", next.SelectedIDs())
	}
	if len(next.Edges) != 2 {
		t.Errorf("edges = %v", next.Edges)
	}
}

func TestApplySkipsDuplicateEdge(t *testing.T) {
	s := testScene()
	next := Apply(s, CreateEdge{Edge: s.Edges[0]})
	if len(next.Edges) != 1 {
		t.Errorf("duplicate edge added: %v", next.Edges)
	}
}

func TestSelectionRespectsCapability(t *testing.T) {
	s := testScene()
	s.Nodes[1].Caps.Selectable = false
	next := Apply(s, SelectRect{IDs: []string{"a", "b"}})
	if got := next.SelectedIDs(); len(got) != 1 || got[0] != "a" {
		t.Errorf("selected = %v", got)
	}
}

func TestDispatchCallbacks(t *testing.T) {
	s := testScene()
	var nodesCalls, edgesCalls int
	var connected []Connection
	var viewport []Command
	cb := Callbacks{
		OnNodesChange: func(next []Node) { nodesCalls++ },
		OnEdgesChange: func(next []Edge) { edgesCalls++ },
		OnConnect:     func(c Connection) { connected = append(connected, c) },
		OnViewport:    func(c Command) { viewport = append(viewport, c) },
	}

	next := Dispatch(s, []Command{
		PanBy{DX: 1},
		MoveNode{ID: "a", X: 1, Y: 1},
		CreateEdge{Edge: NewEdge("b", "a", geom.StyleBezier)},
	}, cb)

	if nodesCalls != 1 || edgesCalls != 1 || len(viewport) != 1 {
		t.Errorf("calls: nodes=%d edges=%d viewport=%d", nodesCalls, edgesCalls, len(viewport))
	}
	if len(connected) != 1 || connected[0] != (Connection{Source: "b", Target: "a"}) {
		t.Errorf("connected = %v", connected)
	}
	if len(next.Edges) != 2 || next.Nodes[0].Rect.X != 1 {
		t.Errorf("next scene = %+v", next)
	}
}

func TestValidate(t *testing.T) {
	s := testScene()
	if err := s.Validate(); err != nil {
		t.Fatalf("valid scene rejected: %v", err)
	}
	s.Nodes = append(s.Nodes, Node{ID: "a"})
	if err := s.Validate(); !errors.Is(err, ErrInvalidScene) {
		t.Errorf("expected ErrInvalidScene, got %v", err)
	}
}

func TestNewEdgeIDsAreUnique(t *testing.T) {
	a := NewEdge("x", "y", geom.StyleStraight)
	b := NewEdge("x", "y", geom.StyleStraight)
	if a.ID == "" || a.ID == b.ID {
		t.Errorf("ids %q and %q", a.ID, b.ID)
	}
}
