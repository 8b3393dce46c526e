// Package route picks the sides two nodes connect on and builds the path
// between them.
package route

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"

	"flowcanvas/internal/debug"
	"flowcanvas/internal/diagram"
	"flowcanvas/internal/geom"
)

// DefaultHandleRadius is the visual radius of a connection handle in world units.
const DefaultHandleRadius = 8.0

type Resolver struct {
	HandleRadius float64
}

func NewResolver(handleRadius float64) Resolver {
	if !(handleRadius >= 0) || math.IsInf(handleRadius, 0) {
		handleRadius = DefaultHandleRadius
	}
	return Resolver{HandleRadius: handleRadius}
}

// Sides chooses the facing sides of src and tgt. Center-to-center angles
// within 45° of the x axis connect left/right, the rest top/bottom.
func Sides(src, tgt geom.Rect) (geom.Side, geom.Side) {
	sc, tc := src.Center(), tgt.Center()
	dx, dy := tc.X-sc.X, tc.Y-sc.Y
	angle := math.Atan2(dy, dx) * 180 / math.Pi

	if math.Abs(angle) < 45 || math.Abs(angle) > 135 {
		if dx >= 0 {
			return geom.SideRight, geom.SideLeft
		}
		return geom.SideLeft, geom.SideRight
	}
	if dy >= 0 {
		return geom.SideBottom, geom.SideTop
	}
	return geom.SideTop, geom.SideBottom
}

// Anchor is where an edge meets side s of r: the side midpoint pushed out
// by half the handle radius so the line ends on the handle.
func (r Resolver) Anchor(rect geom.Rect, s geom.Side) geom.Point {
	return r2.Add(geom.SideMidpoint(rect, s), r2.Scale(r.HandleRadius/2, s.Outward()))
}

type Routed struct {
	SourceSide geom.Side
	TargetSide geom.Side
	Path       geom.Path
}

func (r Resolver) Route(src, tgt geom.Rect, style geom.RoutingStyle) Routed {
	ss, ts := Sides(src, tgt)
	return Routed{
		SourceSide: ss,
		TargetSide: ts,
		Path:       geom.BuildPath(style, r.Anchor(src, ss), r.Anchor(tgt, ts)),
	}
}

// Preview routes an uncommitted connection. The free end is the cursor
// itself; no side is resolved for it.
func (r Resolver) Preview(src geom.Rect, side geom.Side, cursor geom.Point, style geom.RoutingStyle) geom.Path {
	return geom.BuildPath(style, r.Anchor(src, side), cursor)
}

type RoutedEdge struct {
	Edge diagram.Edge
	Routed
}

// RouteScene routes every renderable edge. Edges with a missing endpoint
// are skipped. fallback is used for edges without a style.
func (r Resolver) RouteScene(s diagram.Scene, fallback geom.RoutingStyle) []RoutedEdge {
	if debug.Enabled() {
		for _, e := range s.OrphanEdges() {
			debug.Log("route: skipping orphaned edge %s (%s -> %s)", e.ID, e.Source, e.Target)
		}
	}
	idx := s.Index()
	visible := s.VisibleEdges()
	out := make([]RoutedEdge, 0, len(visible))
	for _, e := range visible {
		style := e.Style
		if style == "" {
			style = fallback
		}
		out = append(out, RoutedEdge{
			Edge:   e,
			Routed: r.Route(s.Nodes[idx[e.Source]].Rect, s.Nodes[idx[e.Target]].Rect, style),
		})
	}
	return out
}

// EdgeAt returns the id of the routed edge closest to p within tolerance.
func EdgeAt(edges []RoutedEdge, p geom.Point, tolerance float64) (string, bool) {
	best, bestDist := "", math.Inf(1)
	for _, e := range edges {
		if d := e.Path.Distance(p); d <= tolerance && d < bestDist {
			best, bestDist = e.Edge.ID, d
		}
	}
	return best, best != ""
}
