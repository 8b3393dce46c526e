package resize

import (
	"math"
	"testing"

	"flowcanvas/internal/geom"
)

var start = geom.Rect{X: 100, Y: 100, Width: 200, Height: 100}

func TestMoveByCorner(t *testing.T) {
	tests := []struct {
		name   string
		corner geom.Corner
		delta  geom.Point
		want   geom.Rect
	}{
		{"bottom-right grows", geom.CornerBottomRight, geom.Pt(30, 20), geom.Rect{X: 100, Y: 100, Width: 230, Height: 120}},
		{"top-left inverts both axes", geom.CornerTopLeft, geom.Pt(30, 20), geom.Rect{X: 130, Y: 120, Width: 170, Height: 80}},
		{"top-right inverts y", geom.CornerTopRight, geom.Pt(30, -20), geom.Rect{X: 100, Y: 80, Width: 230, Height: 120}},
		{"bottom-left inverts x", geom.CornerBottomLeft, geom.Pt(-30, 20), geom.Rect{X: 70, Y: 100, Width: 230, Height: 120}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			grab := tt.corner.Point(start)
			c := New(tt.corner, start, grab)
			got := c.Move(geom.Pt(grab.X+tt.delta.X, grab.Y+tt.delta.Y), false)
			if got != tt.want {
				t.Errorf("Move = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestMinimumFloor(t *testing.T) {
	grab := geom.CornerBottomRight.Point(start)
	c := New(geom.CornerBottomRight, start, grab)
	// Would leave width 5 and a negative height.
	got := c.Move(geom.Pt(grab.X-195, grab.Y-150), false)
	if got.Width != DefaultMinSize || got.Height != DefaultMinSize {
		t.Errorf("size = %vx%v, want floor %v", got.Width, got.Height, DefaultMinSize)
	}

	// The gesture continues after hitting the floor.
	got = c.Move(geom.Pt(grab.X+10, grab.Y), false)
	if got.Width != 210 || got.Height != 100 {
		t.Errorf("after floor: %vx%v", got.Width, got.Height)
	}
}

func TestMinimumFloorKeepsOppositeCorner(t *testing.T) {
	grab := geom.CornerTopLeft.Point(start)
	c := New(geom.CornerTopLeft, start, grab, WithMinSize(40))
	got := c.Move(geom.Pt(grab.X+500, grab.Y+500), false)
	if got.Width != 40 || got.Height != 40 {
		t.Fatalf("size = %vx%v", got.Width, got.Height)
	}
	if got.X+got.Width != start.X+start.Width || got.Y+got.Height != start.Y+start.Height {
		t.Errorf("bottom-right corner moved: %+v", got)
	}
}

func TestAspectLock(t *testing.T) {
	grab := geom.CornerBottomRight.Point(start)
	c := New(geom.CornerBottomRight, start, grab)

	// Width delta dominates: height follows 2:1.
	got := c.Move(geom.Pt(grab.X+100, grab.Y+10), true)
	if got.Width != 300 || got.Height != 150 {
		t.Errorf("width-driven = %vx%v", got.Width, got.Height)
	}

	// Height delta dominates: width follows.
	got = c.Move(geom.Pt(grab.X+5, grab.Y+50), true)
	if got.Width != 300 || got.Height != 150 {
		t.Errorf("height-driven = %vx%v", got.Width, got.Height)
	}
	if r := got.Width / got.Height; math.Abs(r-2) > 1e-12 {
		t.Errorf("ratio = %v", r)
	}
}

func TestCallbacksAndSingleCommit(t *testing.T) {
	var live []geom.Rect
	var ends []geom.Rect
	grab := geom.CornerBottomRight.Point(start)
	c := New(geom.CornerBottomRight, start, grab,
		OnResize(func(r geom.Rect, _ bool) { live = append(live, r) }),
		OnResizeEnd(func(r geom.Rect) { ends = append(ends, r) }),
	)
	c.Move(geom.Pt(grab.X+10, grab.Y+10), false)
	c.Move(geom.Pt(grab.X+20, grab.Y+20), false)
	c.End()
	c.End()
	c.Move(geom.Pt(grab.X+90, grab.Y+90), false)

	if len(live) != 2 {
		t.Errorf("OnResize fired %d times", len(live))
	}
	if len(ends) != 1 || ends[0].Width != 220 || ends[0].Height != 120 {
		t.Errorf("OnResizeEnd = %+v", ends)
	}
	if !c.Ended() || c.Live().Width != 220 {
		t.Errorf("live after end = %+v", c.Live())
	}
}

func TestNonFiniteCursorIgnored(t *testing.T) {
	grab := geom.CornerBottomRight.Point(start)
	c := New(geom.CornerBottomRight, start, grab)
	c.Move(geom.Pt(grab.X+10, grab.Y), false)
	got := c.Move(geom.Pt(math.NaN(), math.Inf(1)), false)
	if got.Width != 210 {
		t.Errorf("NaN cursor changed size: %+v", got)
	}
}

func TestAutoResize(t *testing.T) {
	called := false
	c := New(geom.CornerBottomRight, start, geom.Point{}, OnAutoResize(func() { called = true }))
	c.AutoResize()
	if !called {
		t.Error("OnAutoResize not called")
	}
}
