// Package diagram is the scene data the interaction engine reads and the
// command set it emits. The engine never edits a Scene in place; hosts
// fold commands into a new Scene with Apply.
package diagram

import (
	"errors"
	"fmt"
	"math"

	"flowcanvas/internal/geom"
)

const (
	DefaultNodeWidth  = 200
	DefaultNodeHeight = 100
)

var ErrInvalidScene = errors.New("invalid scene")

// Capabilities are the only node properties the engine looks at.
type Capabilities struct {
	Draggable        bool `json:"draggable"`
	Selectable       bool `json:"selectable"`
	Resizable        bool `json:"resizable"`
	ShowHandles      bool `json:"showHandles"`
	ProximityConnect bool `json:"proximityConnect"`
	Container        bool `json:"container"`
}

func DefaultCapabilities() Capabilities {
	return Capabilities{
		Draggable:        true,
		Selectable:       true,
		Resizable:        true,
		ShowHandles:      true,
		ProximityConnect: true,
	}
}

type Node struct {
	ID       string       `json:"id"`
	Rect     geom.Rect    `json:"rect"`
	Caps     Capabilities `json:"caps"`
	Selected bool         `json:"selected,omitempty"`
	// Payload belongs to the host. The engine copies it around untouched.
	Payload any `json:"payload,omitempty"`
}

// Normalize applies the default size when a dimension is missing or invalid.
func (n Node) Normalize() Node {
	if !(n.Rect.Width > 0) || math.IsInf(n.Rect.Width, 0) {
		n.Rect.Width = DefaultNodeWidth
	}
	if !(n.Rect.Height > 0) || math.IsInf(n.Rect.Height, 0) {
		n.Rect.Height = DefaultNodeHeight
	}
	if math.IsNaN(n.Rect.X) || math.IsInf(n.Rect.X, 0) {
		n.Rect.X = 0
	}
	if math.IsNaN(n.Rect.Y) || math.IsInf(n.Rect.Y, 0) {
		n.Rect.Y = 0
	}
	return n
}

type Edge struct {
	ID     string            `json:"id"`
	Source string            `json:"source"`
	Target string            `json:"target"`
	Style  geom.RoutingStyle `json:"style,omitempty"`
	Label  string            `json:"label,omitempty"`
}

type Scene struct {
	Nodes []Node `json:"nodes"`
	Edges []Edge `json:"edges"`
}

func (s Scene) Clone() Scene {
	out := Scene{
		Nodes: make([]Node, len(s.Nodes)),
		Edges: make([]Edge, len(s.Edges)),
	}
	copy(out.Nodes, s.Nodes)
	copy(out.Edges, s.Edges)
	return out
}

// Index maps node ids to their position in Nodes.
func (s Scene) Index() map[string]int {
	idx := make(map[string]int, len(s.Nodes))
	for i, n := range s.Nodes {
		idx[n.ID] = i
	}
	return idx
}

func (s Scene) Node(id string) (Node, bool) {
	for _, n := range s.Nodes {
		if n.ID == id {
			return n, true
		}
	}
	return Node{}, false
}

// VisibleEdges returns the edges whose endpoints both resolve to a live node.
func (s Scene) VisibleEdges() []Edge {
	idx := s.Index()
	out := make([]Edge, 0, len(s.Edges))
	for _, e := range s.Edges {
		if _, ok := idx[e.Source]; !ok {
			continue
		}
		if _, ok := idx[e.Target]; !ok {
			continue
		}
		out = append(out, e)
	}
	return out
}

func (s Scene) OrphanEdges() []Edge {
	idx := s.Index()
	var out []Edge
	for _, e := range s.Edges {
		_, src := idx[e.Source]
		_, tgt := idx[e.Target]
		if !src || !tgt {
			out = append(out, e)
		}
	}
	return out
}

func (s Scene) SelectedIDs() []string {
	var ids []string
	for _, n := range s.Nodes {
		if n.Selected {
			ids = append(ids, n.ID)
		}
	}
	return ids
}

// Normalize fixes node sizes in a copy of the scene.
func (s Scene) Normalize() Scene {
	out := s.Clone()
	for i := range out.Nodes {
		out.Nodes[i] = out.Nodes[i].Normalize()
	}
	return out
}

// Validate checks that node and edge ids are non-empty and unique.
// Orphaned edges are not an error.
func (s Scene) Validate() error {
	seen := make(map[string]bool, len(s.Nodes))
	for i, n := range s.Nodes {
		if n.ID == "" {
			return fmt.Errorf("%w: node %d has no id", ErrInvalidScene, i)
		}
		if seen[n.ID] {
			return fmt.Errorf("%w: duplicate node id %q", ErrInvalidScene, n.ID)
		}
		seen[n.ID] = true
	}
	edges := make(map[string]bool, len(s.Edges))
	for i, e := range s.Edges {
		if e.ID == "" {
			return fmt.Errorf("%w: edge %d has no id", ErrInvalidScene, i)
		}
		if edges[e.ID] {
			return fmt.Errorf("%w: duplicate edge id %q", ErrInvalidScene, e.ID)
		}
		edges[e.ID] = true
	}
	return nil
}
