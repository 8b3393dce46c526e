package diagram

import (
	"fmt"

	"flowcanvas/internal/geom"
	"github.com/google/uuid"
)

// Command is a mutation request emitted by the engine. The set is closed.
type Command interface {
	isCommand()
	String() string
}

// PanBy moves the camera by a screen-space delta.
type PanBy struct {
	DX, DY float64
}

// SetViewport replaces the camera.
type SetViewport struct {
	Viewport geom.Viewport
}

// SelectNodes replaces the selection with IDs. An empty list clears it.
type SelectNodes struct {
	IDs []string
}

// SelectRect is the result of a box selection: IDs are the nodes fully
// inside Rect.
type SelectRect struct {
	Rect geom.Rect
	IDs  []string
}

type MoveNode struct {
	ID    string
	X, Y  float64
	Final bool
}

type ResizeNode struct {
	ID    string
	Rect  geom.Rect
	Final bool
}

type CreateEdge struct {
	Edge Edge
}

// SuggestConnect is raised when a node drag ends with a smart-connect
// preview active. Hosts decide whether to turn it into a CreateEdge.
type SuggestConnect struct {
	Source string
	Target string
}

// AutoResize asks the host to fit a node to its content.
type AutoResize struct {
	ID string
}

func (PanBy) isCommand()          {}
func (SetViewport) isCommand()    {}
func (SelectNodes) isCommand()    {}
func (SelectRect) isCommand()     {}
func (MoveNode) isCommand()       {}
func (ResizeNode) isCommand()     {}
func (CreateEdge) isCommand()     {}
func (SuggestConnect) isCommand() {}
func (AutoResize) isCommand()     {}

func (c PanBy) String() string { return fmt.Sprintf("PanBy(%g,%g)", c.DX, c.DY) }
func (c SetViewport) String() string {
	return fmt.Sprintf("SetViewport(%g,%g@%g)", c.Viewport.PanX, c.Viewport.PanY, c.Viewport.Zoom)
}
func (c SelectNodes) String() string { return fmt.Sprintf("SelectNodes(%v)", c.IDs) }
func (c SelectRect) String() string  { return fmt.Sprintf("SelectRect(%+v,%v)", c.Rect, c.IDs) }
func (c MoveNode) String() string {
	return fmt.Sprintf("MoveNode(%s,%g,%g,final=%t)", c.ID, c.X, c.Y, c.Final)
}
func (c ResizeNode) String() string {
	return fmt.Sprintf("ResizeNode(%s,%gx%g,final=%t)", c.ID, c.Rect.Width, c.Rect.Height, c.Final)
}
func (c CreateEdge) String() string {
	return fmt.Sprintf("CreateEdge(%s->%s)", c.Edge.Source, c.Edge.Target)
}
func (c SuggestConnect) String() string {
	return fmt.Sprintf("SuggestConnect(%s->%s)", c.Source, c.Target)
}
func (c AutoResize) String() string { return fmt.Sprintf("AutoResize(%s)", c.ID) }

// NewEdge builds an edge with a fresh id.
func NewEdge(source, target string, style geom.RoutingStyle) Edge {
	return Edge{
		ID:     uuid.NewString(),
		Source: source,
		Target: target,
		Style:  style,
	}
}

// Connect turns a smart-connect suggestion into an edge creation.
func (c SuggestConnect) Connect(style geom.RoutingStyle) CreateEdge {
	return CreateEdge{Edge: NewEdge(c.Source, c.Target, style)}
}
