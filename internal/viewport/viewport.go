// Package viewport implements pan and zoom transitions of the canvas camera.
// The controller never stores the camera; callers pass the current value
// in and commit the returned one.
package viewport

import (
	"math"

	"flowcanvas/internal/geom"
)

const (
	DefaultMinZoom   = 0.1
	DefaultMaxZoom   = 3.0
	DefaultWheelStep = 0.2
)

type Limits struct {
	MinZoom   float64
	MaxZoom   float64
	WheelStep float64
}

func DefaultLimits() Limits {
	return Limits{
		MinZoom:   DefaultMinZoom,
		MaxZoom:   DefaultMaxZoom,
		WheelStep: DefaultWheelStep,
	}
}

// FitEvent is the external "fit view" request, applied verbatim.
type FitEvent struct {
	X    float64
	Y    float64
	Zoom float64
}

type Controller struct {
	limits Limits
}

func New(l Limits) Controller {
	d := DefaultLimits()
	if !(l.MinZoom > 0) || math.IsInf(l.MinZoom, 0) {
		l.MinZoom = d.MinZoom
	}
	if !(l.MaxZoom > 0) || math.IsInf(l.MaxZoom, 0) {
		l.MaxZoom = d.MaxZoom
	}
	if l.MinZoom > l.MaxZoom {
		l.MinZoom, l.MaxZoom = l.MaxZoom, l.MinZoom
	}
	if !(l.WheelStep > 0) || math.IsInf(l.WheelStep, 0) {
		l.WheelStep = d.WheelStep
	}
	return Controller{limits: l}
}

func (c Controller) Limits() Limits {
	return c.limits
}

// Clamp forces z into [MinZoom, MaxZoom]. fallback is used when z is NaN.
func (c Controller) Clamp(z, fallback float64) float64 {
	switch {
	case math.IsNaN(z):
		if math.IsNaN(fallback) {
			fallback = 1
		}
		return c.Clamp(fallback, 1)
	case z < c.limits.MinZoom:
		return c.limits.MinZoom
	case z > c.limits.MaxZoom:
		return c.limits.MaxZoom
	}
	return z
}

func (c Controller) Pan(v geom.Viewport, dx, dy float64) geom.Viewport {
	if math.IsNaN(dx) || math.IsInf(dx, 0) {
		dx = 0
	}
	if math.IsNaN(dy) || math.IsInf(dy, 0) {
		dy = 0
	}
	v.Zoom = c.Clamp(v.Zoom, 1)
	v.PanX += dx
	v.PanY += dy
	return v
}

// ZoomAt multiplies the zoom by factor, clamped, keeping the world point
// under screen fixed.
func (c Controller) ZoomAt(v geom.Viewport, screen, origin geom.Point, factor float64) geom.Viewport {
	v.Zoom = c.Clamp(v.Zoom, 1)
	next := c.Clamp(v.Zoom*factor, v.Zoom)
	if next == v.Zoom {
		return v
	}
	return geom.ZoomAround(v, screen, origin, next)
}

// WheelFactor converts a normalised wheel delta into a zoom multiplier.
// Positive deltas (scrolling down) zoom out.
func (c Controller) WheelFactor(delta float64) float64 {
	return math.Exp(-delta * c.limits.WheelStep)
}

func (c Controller) Wheel(v geom.Viewport, screen, origin geom.Point, delta float64) geom.Viewport {
	return c.ZoomAt(v, screen, origin, c.WheelFactor(delta))
}

func (c Controller) Set(v geom.Viewport) geom.Viewport {
	if math.IsNaN(v.PanX) || math.IsInf(v.PanX, 0) {
		v.PanX = 0
	}
	if math.IsNaN(v.PanY) || math.IsInf(v.PanY, 0) {
		v.PanY = 0
	}
	v.Zoom = c.Clamp(v.Zoom, 1)
	return v
}

func (c Controller) Fit(e FitEvent) geom.Viewport {
	return c.Set(geom.Viewport{PanX: e.X, PanY: e.Y, Zoom: e.Zoom})
}
