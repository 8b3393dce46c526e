package main

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"flowcanvas/internal/diagram"
	"flowcanvas/internal/geom"
)

func TestDecodeSceneDefaults(t *testing.T) {
	data := []byte(`{
		"viewport": {"x": 10, "y": -5, "zoom": 2},
		"nodes": [
			{"id": "a", "rect": {"x": 0, "y": 0, "width": 120, "height": 40}, "payload": "Alpha"},
			{"id": "b", "rect": {"x": 200, "y": 0}, "caps": {"draggable": false, "selectable": true}},
			{"id": "c", "payload": {"label": "Gamma"}}
		],
		"edges": [{"id": "e1", "source": "a", "target": "b"}]
	}`)
	s, v, err := decodeScene(data)
	if err != nil {
		t.Fatalf("decodeScene: %v", err)
	}
	if v == nil || *v != (geom.Viewport{PanX: 10, PanY: -5, Zoom: 2}) {
		t.Errorf("viewport = %+v", v)
	}
	if len(s.Nodes) != 3 || len(s.Edges) != 1 {
		t.Fatalf("got %d nodes, %d edges", len(s.Nodes), len(s.Edges))
	}

	a, b, c := s.Nodes[0], s.Nodes[1], s.Nodes[2]
	if a.Caps != diagram.DefaultCapabilities() {
		t.Errorf("missing caps should default, got %+v", a.Caps)
	}
	if b.Caps.Draggable || !b.Caps.Selectable || b.Caps.ShowHandles {
		t.Errorf("explicit caps not kept: %+v", b.Caps)
	}
	if b.Rect.Width != diagram.DefaultNodeWidth || b.Rect.Height != diagram.DefaultNodeHeight {
		t.Errorf("missing size should default, got %vx%v", b.Rect.Width, b.Rect.Height)
	}

	for _, tt := range []struct {
		n    diagram.Node
		want string
	}{
		{a, "Alpha"},
		{b, "b"},
		{c, "Gamma"},
	} {
		if got := nodeLabel(tt.n); got != tt.want {
			t.Errorf("nodeLabel(%s) = %q, want %q", tt.n.ID, got, tt.want)
		}
	}
}

func TestDecodeSceneRejectsDuplicateIDs(t *testing.T) {
	data := []byte(`{"nodes": [{"id": "a"}, {"id": "a"}]}`)
	_, _, err := decodeScene(data)
	if !errors.Is(err, diagram.ErrInvalidScene) {
		t.Fatalf("err = %v, want ErrInvalidScene", err)
	}
}

func TestDecodeSceneMalformed(t *testing.T) {
	if _, _, err := decodeScene([]byte(`{"nodes": [`)); err == nil {
		t.Fatal("expected an error")
	}
}

func TestLoadScene(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scene.json")
	if err := os.WriteFile(path, []byte(`{"nodes": [{"id": "only"}]}`), 0o644); err != nil {
		t.Fatal(err)
	}
	s, v, err := loadScene(path)
	if err != nil {
		t.Fatalf("loadScene: %v", err)
	}
	if v != nil {
		t.Errorf("viewport = %+v, want nil when absent", v)
	}
	if len(s.Nodes) != 1 || s.Nodes[0].ID != "only" {
		t.Errorf("nodes = %+v", s.Nodes)
	}

	if _, _, err := loadScene(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Error("expected an error for a missing file")
	}
}

func TestDemoSceneIsValid(t *testing.T) {
	s := demoScene()
	if err := s.Validate(); err != nil {
		t.Fatalf("demo scene invalid: %v", err)
	}
	if len(s.VisibleEdges()) != len(s.Edges) {
		t.Error("demo scene has orphaned edges")
	}
}
