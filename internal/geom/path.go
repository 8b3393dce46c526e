package geom

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

type RoutingStyle string

const (
	StyleStraight RoutingStyle = "straight"
	StyleStep     RoutingStyle = "step"
	StyleBezier   RoutingStyle = "bezier"
)

var ErrUnknownStyle = errors.New("unknown routing style")

func ParseRoutingStyle(s string) (RoutingStyle, error) {
	switch RoutingStyle(strings.ToLower(strings.TrimSpace(s))) {
	case StyleStraight:
		return StyleStraight, nil
	case StyleStep, "smoothstep", "orthogonal":
		return StyleStep, nil
	case StyleBezier, "default", "":
		return StyleBezier, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownStyle, s)
}

// Path is a routed edge. For straight and step styles Points is a polyline;
// for bezier it is [start, control1, control2, end].
type Path struct {
	Style  RoutingStyle
	Points []Point
}

func (p Path) Start() Point {
	return p.Points[0]
}

func (p Path) End() Point {
	return p.Points[len(p.Points)-1]
}

func BuildPath(style RoutingStyle, from, to Point) Path {
	switch style {
	case StyleStep:
		midX := (from.X + to.X) / 2
		return Path{Style: StyleStep, Points: []Point{
			from,
			Pt(midX, from.Y),
			Pt(midX, to.Y),
			to,
		}}
	case StyleBezier:
		offset := math.Abs(to.X-from.X) * 0.5
		return Path{Style: StyleBezier, Points: []Point{
			from,
			Pt(from.X+offset, from.Y),
			Pt(to.X-offset, to.Y),
			to,
		}}
	default:
		return Path{Style: StyleStraight, Points: []Point{from, to}}
	}
}

// Flatten returns the path as a polyline. Bezier curves are sampled at
// steps+1 points; other styles are returned unchanged.
func (p Path) Flatten(steps int) []Point {
	if p.Style != StyleBezier || len(p.Points) != 4 {
		out := make([]Point, len(p.Points))
		copy(out, p.Points)
		return out
	}
	if steps < 1 {
		steps = 1
	}
	out := make([]Point, 0, steps+1)
	for i := 0; i <= steps; i++ {
		out = append(out, p.At(float64(i)/float64(steps)))
	}
	return out
}

// At evaluates a bezier path at t in [0,1].
func (p Path) At(t float64) Point {
	p0, p1, p2, p3 := p.Points[0], p.Points[1], p.Points[2], p.Points[3]
	u := 1 - t
	a := u * u * u
	b := 3 * u * u * t
	c := 3 * u * t * t
	d := t * t * t
	return Pt(
		a*p0.X+b*p1.X+c*p2.X+d*p3.X,
		a*p0.Y+b*p1.Y+c*p2.Y+d*p3.Y,
	)
}

// SVGData renders the path as the d attribute of an SVG <path>.
func (p Path) SVGData() string {
	if len(p.Points) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString("M")
	writePt(&b, p.Points[0])
	if p.Style == StyleBezier && len(p.Points) == 4 {
		b.WriteString(" C")
		writePt(&b, p.Points[1])
		b.WriteString(" ")
		writePt(&b, p.Points[2])
		b.WriteString(" ")
		writePt(&b, p.Points[3])
		return b.String()
	}
	for _, pt := range p.Points[1:] {
		b.WriteString(" L")
		writePt(&b, pt)
	}
	return b.String()
}

func writePt(b *strings.Builder, p Point) {
	b.WriteString(strconv.FormatFloat(p.X, 'f', -1, 64))
	b.WriteString(",")
	b.WriteString(strconv.FormatFloat(p.Y, 'f', -1, 64))
}

// Distance returns the shortest distance from q to the path.
func (p Path) Distance(q Point) float64 {
	pts := p.Flatten(24)
	if len(pts) == 1 {
		return DistanceToSegment(q, pts[0], pts[0])
	}
	best := math.Inf(1)
	for i := 0; i < len(pts)-1; i++ {
		best = math.Min(best, DistanceToSegment(q, pts[i], pts[i+1]))
	}
	return best
}
