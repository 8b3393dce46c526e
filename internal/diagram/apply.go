package diagram

// Apply folds cmds into a new Scene. The input scene is never modified.
// Camera commands are ignored here; they belong to the viewport.
func Apply(s Scene, cmds ...Command) Scene {
	next := s.Clone()
	for _, c := range cmds {
		next = applyOne(next, c)
	}
	return next
}

func applyOne(s Scene, c Command) Scene {
	switch c := c.(type) {
	case SelectNodes:
		setSelection(s.Nodes, c.IDs)
	case SelectRect:
		setSelection(s.Nodes, c.IDs)
	case MoveNode:
		for i := range s.Nodes {
			if s.Nodes[i].ID == c.ID {
				s.Nodes[i].Rect.X = c.X
				s.Nodes[i].Rect.Y = c.Y
			}
		}
	case ResizeNode:
		for i := range s.Nodes {
			if s.Nodes[i].ID == c.ID {
				s.Nodes[i].Rect = c.Rect
			}
		}
	case CreateEdge:
		if !hasEdge(s.Edges, c.Edge) {
			s.Edges = append(s.Edges, c.Edge)
		}
	}
	return s
}

func setSelection(nodes []Node, ids []string) {
	want := make(map[string]bool, len(ids))
	for _, id := range ids {
		want[id] = true
	}
	for i := range nodes {
		nodes[i].Selected = want[nodes[i].ID] && nodes[i].Caps.Selectable
	}
}

func hasEdge(edges []Edge, e Edge) bool {
	for _, x := range edges {
		if x.ID == e.ID {
			return true
		}
	}
	return false
}

// Connection is the payload of OnConnect.
type Connection struct {
	Source string
	Target string
}

// Callbacks is the callback form of the mutation contract. Every call
// receives a complete next slice, never a diff.
type Callbacks struct {
	OnNodesChange func(next []Node)
	OnEdgesChange func(next []Edge)
	OnConnect     func(c Connection)
	OnViewport    func(c Command)
	OnAutoResize  func(id string)
}

// Dispatch applies cmds to s and reports the result through cb. It returns
// the next scene so callers that hold state can keep it.
func Dispatch(s Scene, cmds []Command, cb Callbacks) Scene {
	cur := s
	for _, c := range cmds {
		switch c := c.(type) {
		case PanBy, SetViewport:
			if cb.OnViewport != nil {
				cb.OnViewport(c)
			}
		case AutoResize:
			if cb.OnAutoResize != nil {
				cb.OnAutoResize(c.ID)
			}
		case CreateEdge:
			if cb.OnConnect != nil {
				cb.OnConnect(Connection{Source: c.Edge.Source, Target: c.Edge.Target})
			}
			cur = Apply(cur, c)
			if cb.OnEdgesChange != nil {
				cb.OnEdgesChange(cur.Edges)
			}
		case SelectNodes, SelectRect, MoveNode, ResizeNode:
			cur = Apply(cur, c)
			if cb.OnNodesChange != nil {
				cb.OnNodesChange(cur.Nodes)
			}
		}
	}
	return cur
}
