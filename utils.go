package main

import (
	"fmt"
	"os/exec"
	"runtime"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/goccy/go-json"
	"github.com/google/uuid"

	"flowcanvas/internal/diagram"
	"flowcanvas/internal/geom"
)

// clipboardIO is the system clipboard; tests swap in a memory one.
type clipboardIO interface {
	ReadAll() (string, error)
	WriteAll(text string) error
}

type systemClipboard struct{}

func (systemClipboard) WriteAll(text string) error {
	return clipboard.WriteAll(text)
}

func (systemClipboard) ReadAll() (string, error) {
	if runtime.GOOS == "darwin" {
		if output, err := exec.Command("pbpaste", "-Prefer", "txt").Output(); err == nil {
			return string(output), nil
		}
	}
	return clipboard.ReadAll()
}

const clipboardKind = "flowcanvas/selection"

// clipPayload is what copy puts on the clipboard: the selected nodes and
// the edges running between them.
type clipPayload struct {
	Kind  string         `json:"kind"`
	Nodes []diagram.Node `json:"nodes"`
	Edges []diagram.Edge `json:"edges,omitempty"`
}

func encodeSelection(s diagram.Scene) (string, int, error) {
	p := clipPayload{Kind: clipboardKind}
	picked := make(map[string]bool)
	for _, n := range s.Nodes {
		if n.Selected {
			n.Selected = false
			p.Nodes = append(p.Nodes, n)
			picked[n.ID] = true
		}
	}
	if len(p.Nodes) == 0 {
		return "", 0, nil
	}
	for _, e := range s.Edges {
		if picked[e.Source] && picked[e.Target] {
			p.Edges = append(p.Edges, e)
		}
	}
	data, err := json.Marshal(p)
	if err != nil {
		return "", 0, fmt.Errorf("encoding selection: %w", err)
	}
	return string(data), len(p.Nodes), nil
}

// decodeSelection turns clipboard text back into nodes and edges with fresh
// ids, shifted by offset so pasted copies don't cover the originals.
func decodeSelection(text string, offset geom.Point) ([]diagram.Node, []diagram.Edge, error) {
	text = strings.TrimSpace(text)
	if !strings.HasPrefix(text, "{") {
		return nil, nil, fmt.Errorf("clipboard does not hold a selection")
	}
	var p clipPayload
	if err := json.Unmarshal([]byte(text), &p); err != nil {
		return nil, nil, fmt.Errorf("decoding clipboard: %w", err)
	}
	if p.Kind != clipboardKind || len(p.Nodes) == 0 {
		return nil, nil, fmt.Errorf("clipboard does not hold a selection")
	}

	ids := make(map[string]string, len(p.Nodes))
	nodes := make([]diagram.Node, 0, len(p.Nodes))
	for _, n := range p.Nodes {
		id := uuid.NewString()
		ids[n.ID] = id
		n.ID = id
		n.Rect = n.Rect.Translate(offset)
		n.Selected = true
		nodes = append(nodes, n.Normalize())
	}
	var edges []diagram.Edge
	for _, e := range p.Edges {
		src, ok1 := ids[e.Source]
		tgt, ok2 := ids[e.Target]
		if !ok1 || !ok2 {
			continue
		}
		e.ID, e.Source, e.Target = uuid.NewString(), src, tgt
		edges = append(edges, e)
	}
	return nodes, edges, nil
}

func (m *model) copySelection() {
	text, n, err := encodeSelection(m.scene)
	switch {
	case err != nil:
		m.setStatus(err.Error(), true)
	case n == 0:
		m.setStatus("nothing selected", false)
	default:
		if err := m.clipboard.WriteAll(text); err != nil {
			m.setStatus(fmt.Sprintf("copy: %v", err), true)
			return
		}
		m.setStatus(fmt.Sprintf("copied %d node(s)", n), false)
	}
}

// paste adds the clipboard selection and makes it the new selection.
func (m *model) paste() {
	text, err := m.clipboard.ReadAll()
	if err != nil {
		m.setStatus(fmt.Sprintf("paste: %v", err), true)
		return
	}
	offset := geom.Pt(2*m.config.CellWidth/m.state.Viewport.Zoom, 2*m.config.CellHeight/m.state.Viewport.Zoom)
	nodes, edges, err := decodeSelection(text, offset)
	if err != nil {
		m.setStatus(err.Error(), true)
		return
	}

	ids := make([]string, 0, len(nodes))
	for _, n := range nodes {
		ids = append(ids, n.ID)
	}
	next := m.scene.Clone()
	next.Nodes = append(next.Nodes, nodes...)
	cmds := []diagram.Command{diagram.SelectNodes{IDs: ids}}
	for _, e := range edges {
		cmds = append(cmds, diagram.CreateEdge{Edge: e})
	}
	m.scene = diagram.Apply(next, cmds...)
	m.setStatus(fmt.Sprintf("pasted %d node(s)", len(nodes)), false)
}
