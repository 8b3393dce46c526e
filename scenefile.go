package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/goccy/go-json"

	"flowcanvas/internal/diagram"
	"flowcanvas/internal/geom"
)

var ErrEmptyScene = errors.New("scene has no nodes")

// sceneFile is the on-disk fixture format. Viewport is optional.
type sceneFile struct {
	Viewport *geom.Viewport `json:"viewport,omitempty"`
	Nodes    []fileNode     `json:"nodes"`
	Edges    []diagram.Edge `json:"edges"`
}

// fileNode lets a node omit caps and get the defaults.
type fileNode struct {
	diagram.Node
	Caps *diagram.Capabilities `json:"caps,omitempty"`
}

func decodeScene(data []byte) (diagram.Scene, *geom.Viewport, error) {
	var f sceneFile
	if err := json.Unmarshal(data, &f); err != nil {
		return diagram.Scene{}, nil, fmt.Errorf("decoding scene: %w", err)
	}
	s := diagram.Scene{Nodes: make([]diagram.Node, 0, len(f.Nodes)), Edges: f.Edges}
	for _, fn := range f.Nodes {
		n := fn.Node
		n.Caps = diagram.DefaultCapabilities()
		if fn.Caps != nil {
			n.Caps = *fn.Caps
		}
		s.Nodes = append(s.Nodes, n)
	}
	s = s.Normalize()
	if err := s.Validate(); err != nil {
		return diagram.Scene{}, nil, err
	}
	return s, f.Viewport, nil
}

func loadScene(path string) (diagram.Scene, *geom.Viewport, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return diagram.Scene{}, nil, fmt.Errorf("reading scene: %w", err)
	}
	s, v, err := decodeScene(data)
	if err != nil {
		return diagram.Scene{}, nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, v, nil
}

// demoScene is shown when no file is given.
func demoScene() diagram.Scene {
	caps := diagram.DefaultCapabilities()
	frame := caps
	frame.Container = true
	frame.ShowHandles = false
	return diagram.Scene{
		Nodes: []diagram.Node{
			{ID: "group", Rect: geom.Rect{X: 16, Y: 272, Width: 560, Height: 176}, Caps: frame, Payload: "Group"},
			{ID: "start", Rect: geom.Rect{X: 40, Y: 48, Width: 160, Height: 64}, Caps: caps, Payload: "Start"},
			{ID: "work", Rect: geom.Rect{X: 320, Y: 48, Width: 160, Height: 64}, Caps: caps, Payload: "Process"},
			{ID: "done", Rect: geom.Rect{X: 320, Y: 320, Width: 160, Height: 64}, Caps: caps, Payload: "Done"},
		},
		Edges: []diagram.Edge{
			{ID: "e-start-work", Source: "start", Target: "work"},
		},
	}
}

// nodeLabel is the text drawn inside a node: a string payload, a
// {"label": ...} object, or the id.
func nodeLabel(n diagram.Node) string {
	switch p := n.Payload.(type) {
	case string:
		if p != "" {
			return p
		}
	case map[string]any:
		if l, ok := p["label"].(string); ok && l != "" {
			return l
		}
	}
	return n.ID
}
