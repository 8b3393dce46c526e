// Package resize computes live node sizes while a resize handle is dragged.
package resize

import (
	"math"

	"flowcanvas/internal/geom"
)

const DefaultMinSize = 20.0

// Option configures a Controller.
type Option func(*Controller)

func WithMinSize(min float64) Option {
	return func(c *Controller) {
		if min > 0 && !math.IsInf(min, 0) {
			c.minSize = min
		}
	}
}

// OnResize is called on every Move with the live, uncommitted rect.
func OnResize(fn func(r geom.Rect, aspectLocked bool)) Option {
	return func(c *Controller) {
		c.onResize = fn
	}
}

// OnResizeEnd is called once, on release, with the rect to persist.
func OnResizeEnd(fn func(r geom.Rect)) Option {
	return func(c *Controller) {
		c.onResizeEnd = fn
	}
}

func OnAutoResize(fn func()) Option {
	return func(c *Controller) {
		c.onAutoResize = fn
	}
}

// Controller tracks one resize gesture on one corner handle.
type Controller struct {
	corner  geom.Corner
	start   geom.Rect
	grab    geom.Point
	aspect  float64
	minSize float64
	live    geom.Rect
	ended   bool

	onResize     func(geom.Rect, bool)
	onResizeEnd  func(geom.Rect)
	onAutoResize func()
}

// New starts a gesture. start is the node rect and grab the world cursor
// at press time.
func New(corner geom.Corner, start geom.Rect, grab geom.Point, opts ...Option) *Controller {
	c := &Controller{
		corner:  corner,
		start:   start,
		grab:    grab,
		minSize: DefaultMinSize,
		live:    start,
	}
	if start.Height > 0 {
		c.aspect = start.Width / start.Height
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Controller) Corner() geom.Corner { return c.corner }
func (c *Controller) Start() geom.Rect    { return c.start }
func (c *Controller) Live() geom.Rect     { return c.live }
func (c *Controller) Ended() bool         { return c.ended }

// Move recomputes the rect for the cursor position. The corner opposite the
// grabbed one stays put.
func (c *Controller) Move(cursor geom.Point, aspectLocked bool) geom.Rect {
	if c.ended {
		return c.live
	}
	if math.IsNaN(cursor.X) || math.IsNaN(cursor.Y) || math.IsInf(cursor.X, 0) || math.IsInf(cursor.Y, 0) {
		return c.live
	}
	sx, sy := c.corner.Signs()
	dw := sx * (cursor.X - c.grab.X)
	dh := sy * (cursor.Y - c.grab.Y)

	if aspectLocked && c.aspect > 0 {
		if math.Abs(dw) >= math.Abs(dh) {
			dh = (c.start.Width+dw)/c.aspect - c.start.Height
		} else {
			dw = (c.start.Height+dh)*c.aspect - c.start.Width
		}
	}

	w := math.Max(c.minSize, c.start.Width+dw)
	h := math.Max(c.minSize, c.start.Height+dh)

	r := geom.Rect{X: c.start.X, Y: c.start.Y, Width: w, Height: h}
	if sx < 0 {
		r.X = c.start.X + c.start.Width - w
	}
	if sy < 0 {
		r.Y = c.start.Y + c.start.Height - h
	}
	c.live = r
	if c.onResize != nil {
		c.onResize(r, aspectLocked)
	}
	return r
}

// End finishes the gesture and reports the last live rect. Only the first
// call fires OnResizeEnd.
func (c *Controller) End() geom.Rect {
	if c.ended {
		return c.live
	}
	c.ended = true
	if c.onResizeEnd != nil {
		c.onResizeEnd(c.live)
	}
	return c.live
}

func (c *Controller) AutoResize() {
	if c.onAutoResize != nil {
		c.onAutoResize()
	}
}
