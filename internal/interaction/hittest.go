package interaction

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"

	"flowcanvas/internal/diagram"
	"flowcanvas/internal/geom"
	"flowcanvas/internal/resize"
	"flowcanvas/internal/route"
	"flowcanvas/internal/smartconnect"
	"flowcanvas/internal/viewport"
)

const (
	// DefaultHitRadius is how close, in screen pixels, a released
	// connection must land to a handle to connect.
	DefaultHitRadius = 16.0
	// DefaultHandleSize is the pick radius of handles on press.
	DefaultHandleSize = 8.0
)

type Config struct {
	Limits viewport.Limits
	// Origin is the top-left of the canvas in screen coordinates.
	Origin       geom.Point
	HitRadius    float64
	HandleSize   float64
	SmartConnect float64
	MinSize      float64
	HandleRadius float64
	PanOnDrag    bool
	DefaultStyle geom.RoutingStyle
}

func DefaultConfig() Config {
	return Config{
		Limits:       viewport.DefaultLimits(),
		HitRadius:    DefaultHitRadius,
		HandleSize:   DefaultHandleSize,
		SmartConnect: smartconnect.DefaultThreshold,
		MinSize:      resize.DefaultMinSize,
		HandleRadius: route.DefaultHandleRadius,
		PanOnDrag:    true,
		DefaultStyle: geom.StyleBezier,
	}
}

func positive(v, fallback float64) float64 {
	if v > 0 && !math.IsInf(v, 0) {
		return v
	}
	return fallback
}

func (c Config) withDefaults() Config {
	c.HitRadius = positive(c.HitRadius, DefaultHitRadius)
	c.HandleSize = positive(c.HandleSize, DefaultHandleSize)
	c.MinSize = positive(c.MinSize, resize.DefaultMinSize)
	c.HandleRadius = positive(c.HandleRadius, route.DefaultHandleRadius)
	if !(c.SmartConnect >= 0) || math.IsInf(c.SmartConnect, 0) {
		c.SmartConnect = smartconnect.DefaultThreshold
	}
	if c.DefaultStyle == "" {
		c.DefaultStyle = geom.StyleBezier
	}
	return c
}

type TargetKind int

const (
	TargetCanvas TargetKind = iota
	TargetNode
	TargetHandle
	TargetResize
)

func (k TargetKind) String() string {
	switch k {
	case TargetNode:
		return "node"
	case TargetHandle:
		return "handle"
	case TargetResize:
		return "resize"
	default:
		return "canvas"
	}
}

// Target is what a press landed on.
type Target struct {
	Kind   TargetKind
	NodeID string
	Side   geom.Side   // TargetHandle
	Corner geom.Corner // TargetResize
}

// HitTest classifies a screen point. Resize handles beat connection handles,
// which beat node bodies; among nodes the one drawn last wins. Resize handles
// exist only on selected resizable nodes.
func HitTest(s diagram.Scene, v geom.Viewport, cfg Config, screen geom.Point) Target {
	cfg = cfg.withDefaults()
	toScreen := func(p geom.Point) geom.Point { return geom.WorldToScreen(p, cfg.Origin, v) }

	for i := len(s.Nodes) - 1; i >= 0; i-- {
		n := s.Nodes[i]
		if !n.Caps.Resizable || !n.Selected {
			continue
		}
		for _, c := range geom.Corners {
			if r2.Norm(r2.Sub(toScreen(c.Point(n.Rect)), screen)) <= cfg.HandleSize {
				return Target{Kind: TargetResize, NodeID: n.ID, Corner: c}
			}
		}
	}

	for i := len(s.Nodes) - 1; i >= 0; i-- {
		n := s.Nodes[i]
		if !n.Caps.ShowHandles {
			continue
		}
		for _, side := range geom.Sides {
			if r2.Norm(r2.Sub(toScreen(geom.SideMidpoint(n.Rect, side)), screen)) <= cfg.HandleSize {
				return Target{Kind: TargetHandle, NodeID: n.ID, Side: side}
			}
		}
	}

	world := geom.ScreenToWorld(screen, cfg.Origin, v)
	for i := len(s.Nodes) - 1; i >= 0; i-- {
		if s.Nodes[i].Rect.Contains(world) {
			return Target{Kind: TargetNode, NodeID: s.Nodes[i].ID}
		}
	}
	return Target{Kind: TargetCanvas}
}

// dropTarget finds the handle nearest to screen within the hit radius,
// ignoring the node the connection started from.
func dropTarget(s diagram.Scene, v geom.Viewport, cfg Config, source string, screen geom.Point) (Target, bool) {
	var (
		best     Target
		bestDist = math.Inf(1)
	)
	for i := len(s.Nodes) - 1; i >= 0; i-- {
		n := s.Nodes[i]
		if n.ID == source || !n.Caps.ShowHandles {
			continue
		}
		for _, side := range geom.Sides {
			p := geom.WorldToScreen(geom.SideMidpoint(n.Rect, side), cfg.Origin, v)
			d := r2.Norm(r2.Sub(p, screen))
			if d <= cfg.HitRadius && d < bestDist {
				best = Target{Kind: TargetHandle, NodeID: n.ID, Side: side}
				bestDist = d
			}
		}
	}
	return best, !math.IsInf(bestDist, 1)
}
