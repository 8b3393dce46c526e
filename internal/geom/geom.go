// Package geom holds the pure geometry used by the canvas engine:
// coordinate conversion, rectangles, node sides and edge paths.
package geom

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// Point is a position in either world or screen space. Which one is
// decided by the caller.
type Point = r2.Vec

func Pt(x, y float64) Point {
	return Point{X: x, Y: y}
}

type Rect struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

func (r Rect) Min() Point {
	return Point{X: r.X, Y: r.Y}
}

func (r Rect) Max() Point {
	return Point{X: r.X + r.Width, Y: r.Y + r.Height}
}

func (r Rect) Center() Point {
	return Point{X: r.X + r.Width/2, Y: r.Y + r.Height/2}
}

// Contains reports whether p lies inside r, borders included.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.X && p.X <= r.X+r.Width &&
		p.Y >= r.Y && p.Y <= r.Y+r.Height
}

// ContainsRect reports whether o lies entirely inside r.
func (r Rect) ContainsRect(o Rect) bool {
	return o.X >= r.X && o.Y >= r.Y &&
		o.X+o.Width <= r.X+r.Width &&
		o.Y+o.Height <= r.Y+r.Height
}

func (r Rect) Translate(d Point) Rect {
	r.X += d.X
	r.Y += d.Y
	return r
}

// RectFromPoints returns the rectangle spanned by two corners given in any order.
func RectFromPoints(a, b Point) Rect {
	return Rect{
		X:      math.Min(a.X, b.X),
		Y:      math.Min(a.Y, b.Y),
		Width:  math.Abs(b.X - a.X),
		Height: math.Abs(b.Y - a.Y),
	}
}

// Viewport is the camera transform: world*zoom + pan = screen - origin.
type Viewport struct {
	PanX float64 `json:"x"`
	PanY float64 `json:"y"`
	Zoom float64 `json:"zoom"`
}

func (v Viewport) Pan() Point {
	return Point{X: v.PanX, Y: v.PanY}
}

// ScreenToWorld converts a raw pointer position to world space. origin is
// the top-left of the render surface in screen space.
func ScreenToWorld(p, origin Point, v Viewport) Point {
	return r2.Scale(1/v.Zoom, r2.Sub(r2.Sub(p, origin), v.Pan()))
}

func WorldToScreen(p, origin Point, v Viewport) Point {
	return r2.Add(r2.Add(r2.Scale(v.Zoom, p), v.Pan()), origin)
}

// ZoomAround returns v with zoom set to newZoom and pan adjusted so the
// world point under screen stays under screen.
func ZoomAround(v Viewport, screen, origin Point, newZoom float64) Viewport {
	world := ScreenToWorld(screen, origin, v)
	local := r2.Sub(screen, origin)
	return Viewport{
		PanX: local.X - world.X*newZoom,
		PanY: local.Y - world.Y*newZoom,
		Zoom: newZoom,
	}
}

// DistanceToSegment returns the distance from p to the segment a-b.
func DistanceToSegment(p, a, b Point) float64 {
	ab := r2.Sub(b, a)
	l2 := r2.Norm2(ab)
	if l2 == 0 {
		return r2.Norm(r2.Sub(p, a))
	}
	t := r2.Dot(r2.Sub(p, a), ab) / l2
	t = math.Max(0, math.Min(1, t))
	return r2.Norm(r2.Sub(p, r2.Add(a, r2.Scale(t, ab))))
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

// Finite reports whether every coordinate of r is a finite number.
func (r Rect) Finite() bool {
	return finite(r.X) && finite(r.Y) && finite(r.Width) && finite(r.Height)
}
