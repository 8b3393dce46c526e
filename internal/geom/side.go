package geom

type Side int

const (
	SideTop Side = iota
	SideRight
	SideBottom
	SideLeft
)

var Sides = [...]Side{SideTop, SideRight, SideBottom, SideLeft}

func (s Side) String() string {
	switch s {
	case SideTop:
		return "top"
	case SideRight:
		return "right"
	case SideBottom:
		return "bottom"
	case SideLeft:
		return "left"
	default:
		return "unknown"
	}
}

func (s Side) Opposite() Side {
	return (s + 2) % 4
}

// Outward is the unit normal pointing away from the rectangle on side s.
// Screen y grows downwards.
func (s Side) Outward() Point {
	switch s {
	case SideTop:
		return Pt(0, -1)
	case SideRight:
		return Pt(1, 0)
	case SideBottom:
		return Pt(0, 1)
	default:
		return Pt(-1, 0)
	}
}

// SideMidpoint is where a side's connection handle sits.
func SideMidpoint(r Rect, s Side) Point {
	c := r.Center()
	switch s {
	case SideTop:
		return Pt(c.X, r.Y)
	case SideRight:
		return Pt(r.X+r.Width, c.Y)
	case SideBottom:
		return Pt(c.X, r.Y+r.Height)
	default:
		return Pt(r.X, c.Y)
	}
}

type Corner int

const (
	CornerTopLeft Corner = iota
	CornerTopRight
	CornerBottomLeft
	CornerBottomRight
)

var Corners = [...]Corner{CornerTopLeft, CornerTopRight, CornerBottomLeft, CornerBottomRight}

func (c Corner) String() string {
	switch c {
	case CornerTopLeft:
		return "top-left"
	case CornerTopRight:
		return "top-right"
	case CornerBottomLeft:
		return "bottom-left"
	case CornerBottomRight:
		return "bottom-right"
	default:
		return "unknown"
	}
}

// Signs returns how the width and height grow with a positive cursor delta
// when this corner is dragged: +1 grows, -1 shrinks.
func (c Corner) Signs() (sx, sy float64) {
	switch c {
	case CornerTopLeft:
		return -1, -1
	case CornerTopRight:
		return 1, -1
	case CornerBottomLeft:
		return -1, 1
	default:
		return 1, 1
	}
}

func (c Corner) Point(r Rect) Point {
	switch c {
	case CornerTopLeft:
		return Pt(r.X, r.Y)
	case CornerTopRight:
		return Pt(r.X+r.Width, r.Y)
	case CornerBottomLeft:
		return Pt(r.X, r.Y+r.Height)
	default:
		return Pt(r.X+r.Width, r.Y+r.Height)
	}
}
