// Package smartconnect finds the nearest node to a dragged node so the UI
// can offer a connection to it. It never creates edges.
package smartconnect

import (
	"math"

	"flowcanvas/internal/diagram"
	"flowcanvas/internal/geom"
)

const DefaultThreshold = 50.0

type Detector struct {
	// Threshold is the largest boundary distance, in world units, that
	// still produces a preview.
	Threshold float64
}

func New(threshold float64) Detector {
	if !(threshold >= 0) || math.IsInf(threshold, 0) {
		threshold = DefaultThreshold
	}
	return Detector{Threshold: threshold}
}

type Preview struct {
	Source   string
	Target   string
	From     geom.Point
	To       geom.Point
	Distance float64
}

// Distance is the gap between the boundaries of a and b: zero when they
// overlap or touch, otherwise the Euclidean length of the axis gaps.
func Distance(a, b geom.Rect) float64 {
	dx := math.Max(0, math.Max(b.X-(a.X+a.Width), a.X-(b.X+b.Width)))
	dy := math.Max(0, math.Max(b.Y-(a.Y+a.Height), a.Y-(b.Y+b.Height)))
	return math.Hypot(dx, dy)
}

// Find returns the closest eligible node to dragged, whose live position is
// rect. The first candidate wins ties.
func (d Detector) Find(dragged diagram.Node, rect geom.Rect, nodes []diagram.Node) (Preview, bool) {
	if !dragged.Caps.ProximityConnect {
		return Preview{}, false
	}
	var (
		best  Preview
		found bool
	)
	for _, n := range nodes {
		if n.ID == dragged.ID || !n.Caps.ProximityConnect || n.Caps.Container {
			continue
		}
		dist := Distance(rect, n.Rect)
		if dist > d.Threshold {
			continue
		}
		if !found || dist < best.Distance {
			best = Preview{
				Source:   dragged.ID,
				Target:   n.ID,
				From:     rect.Center(),
				To:       n.Rect.Center(),
				Distance: dist,
			}
			found = true
		}
	}
	return best, found
}
