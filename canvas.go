package main

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"flowcanvas/internal/diagram"
	"flowcanvas/internal/geom"
	"flowcanvas/internal/route"
	"flowcanvas/internal/smartconnect"
	"flowcanvas/internal/viewport"
)

type cellClass uint8

const (
	classPlain cellClass = iota
	classSelected
	classHover
	classPreview
	classHandle
)

var classStyles = map[cellClass]lipgloss.Style{
	classSelected: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212")),
	classHover:    lipgloss.NewStyle().Foreground(lipgloss.Color("39")),
	classPreview:  lipgloss.NewStyle().Faint(true).Foreground(lipgloss.Color("244")),
	classHandle:   lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
}

// grid is the character canvas everything is drawn into.
type grid struct {
	runes   [][]rune
	classes [][]cellClass
	width   int
	height  int
}

func newGrid(width, height int) *grid {
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}
	g := &grid{width: width, height: height}
	g.runes = make([][]rune, height)
	g.classes = make([][]cellClass, height)
	for y := range g.runes {
		g.runes[y] = []rune(strings.Repeat(" ", width))
		g.classes[y] = make([]cellClass, width)
	}
	return g
}

func (g *grid) set(x, y int, r rune, class cellClass) {
	if x < 0 || y < 0 || x >= g.width || y >= g.height {
		return
	}
	g.runes[y][x] = r
	g.classes[y][x] = class
}

func (g *grid) text(x, y int, s string, maxWidth int, class cellClass) {
	for i, r := range []rune(s) {
		if i >= maxWidth {
			break
		}
		g.set(x+i, y, r, class)
	}
}

// plain returns the grid without styling.
func (g *grid) plain() []string {
	out := make([]string, g.height)
	for y, row := range g.runes {
		out[y] = string(row)
	}
	return out
}

// styled renders each row, wrapping runs of one class in its style.
func (g *grid) styled() []string {
	out := make([]string, g.height)
	for y, row := range g.runes {
		var b strings.Builder
		start := 0
		for x := 1; x <= len(row); x++ {
			if x < len(row) && g.classes[y][x] == g.classes[y][start] {
				continue
			}
			run := string(row[start:x])
			if st, ok := classStyles[g.classes[y][start]]; ok {
				run = st.Render(run)
			}
			b.WriteString(run)
			start = x
		}
		out[y] = b.String()
	}
	return out
}

// frame is one picture of the scene as the user sees it.
type frame struct {
	scene      diagram.Scene
	view       geom.Viewport
	cellWidth  float64
	cellHeight float64
	routes     []route.RoutedEdge
	hoverEdge  string
	draft      *geom.Path
	selection  *geom.Rect
	suggestion *smartconnect.Preview
}

func (f frame) toCell(p geom.Point) (int, int) {
	s := geom.WorldToScreen(p, geom.Point{}, f.view)
	return int(math.Floor(s.X / f.cellWidth)), int(math.Floor(s.Y / f.cellHeight))
}

func (f frame) render(width, height int) *grid {
	g := newGrid(width, height)

	// Containers go underneath everything else.
	for _, n := range f.scene.Nodes {
		if n.Caps.Container {
			f.drawNode(g, n)
		}
	}
	for _, r := range f.routes {
		class := classPlain
		if r.Edge.ID == f.hoverEdge {
			class = classHover
		}
		f.drawPath(g, r.Path, 0, class)
		f.drawArrow(g, r.Path.End(), r.TargetSide, class)
	}
	for _, n := range f.scene.Nodes {
		if !n.Caps.Container {
			f.drawNode(g, n)
		}
	}
	if f.suggestion != nil {
		f.drawPath(g, geom.BuildPath(geom.StyleStraight, f.suggestion.From, f.suggestion.To), '~', classPreview)
	}
	if f.draft != nil {
		f.drawPath(g, *f.draft, '.', classPreview)
	}
	if f.selection != nil {
		f.drawRect(g, *f.selection)
	}
	return g
}

func (f frame) drawNode(g *grid, n diagram.Node) {
	x0, y0 := f.toCell(n.Rect.Min())
	x1, y1 := f.toCell(n.Rect.Max())
	if x1 <= x0 {
		x1 = x0 + 1
	}
	if y1 <= y0 {
		y1 = y0 + 1
	}

	class := classPlain
	corner, horizontal, vertical := '+', '-', '|'
	switch {
	case n.Selected:
		class = classSelected
		corner, horizontal, vertical = '#', '#', '#'
	case n.Caps.Container:
		horizontal, vertical = '~', ':'
	}

	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			switch {
			case (y == y0 || y == y1) && (x == x0 || x == x1):
				g.set(x, y, corner, class)
			case y == y0 || y == y1:
				g.set(x, y, horizontal, class)
			case x == x0 || x == x1:
				g.set(x, y, vertical, class)
			case !n.Caps.Container:
				g.set(x, y, ' ', classPlain)
			}
		}
	}

	if inner := x1 - x0 - 1; inner > 0 && y1-y0 > 1 {
		label := nodeLabel(n)
		lx := x0 + 1
		if l := len([]rune(label)); l < inner {
			lx += (inner - l) / 2
		}
		g.text(lx, y0+(y1-y0)/2, label, x1-lx, class)
	}

	if n.Caps.ShowHandles {
		for _, side := range geom.Sides {
			hx, hy := f.toCell(geom.SideMidpoint(n.Rect, side))
			g.set(clamp(hx, x0, x1), clamp(hy, y0, y1), 'o', classHandle)
		}
	}
	if n.Selected && n.Caps.Resizable {
		for _, c := range geom.Corners {
			cx, cy := f.toCell(c.Point(n.Rect))
			g.set(clamp(cx, x0, x1), clamp(cy, y0, y1), '◆', classHandle)
		}
	}
}

// drawPath rasterises a path. A zero glyph picks one from the direction of
// each segment.
func (f frame) drawPath(g *grid, p geom.Path, glyph rune, class cellClass) {
	pts := p.Flatten(24)
	for i := 1; i < len(pts); i++ {
		ax, ay := f.toCell(pts[i-1])
		bx, by := f.toCell(pts[i])
		f.drawSegment(g, ax, ay, bx, by, glyph, class)
	}
}

func (f frame) drawSegment(g *grid, ax, ay, bx, by int, glyph rune, class cellClass) {
	dx, dy := bx-ax, by-ay
	steps := max(abs(dx), abs(dy))
	r := glyph
	if r == 0 {
		switch {
		case dy == 0:
			r = '-'
		case dx == 0:
			r = '|'
		case (dx > 0) == (dy > 0):
			r = '\\'
		default:
			r = '/'
		}
	}
	if steps == 0 {
		g.set(ax, ay, r, class)
		return
	}
	for i := 0; i <= steps; i++ {
		x := ax + int(math.Round(float64(dx*i)/float64(steps)))
		y := ay + int(math.Round(float64(dy*i)/float64(steps)))
		g.set(x, y, r, class)
	}
}

func (f frame) drawArrow(g *grid, tip geom.Point, side geom.Side, class cellClass) {
	x, y := f.toCell(tip)
	switch side {
	case geom.SideLeft:
		g.set(x, y, '>', class)
	case geom.SideRight:
		g.set(x, y, '<', class)
	case geom.SideTop:
		g.set(x, y, 'v', class)
	case geom.SideBottom:
		g.set(x, y, '^', class)
	}
}

func (f frame) drawRect(g *grid, r geom.Rect) {
	x0, y0 := f.toCell(r.Min())
	x1, y1 := f.toCell(r.Max())
	for x := x0; x <= x1; x++ {
		g.set(x, y0, '.', classPreview)
		g.set(x, y1, '.', classPreview)
	}
	for y := y0; y <= y1; y++ {
		g.set(x0, y, ':', classPreview)
		g.set(x1, y, ':', classPreview)
	}
}

// sceneBounds is the union of every node rect.
func sceneBounds(s diagram.Scene) (geom.Rect, bool) {
	if len(s.Nodes) == 0 {
		return geom.Rect{}, false
	}
	minP, maxP := s.Nodes[0].Rect.Min(), s.Nodes[0].Rect.Max()
	for _, n := range s.Nodes[1:] {
		minP.X = math.Min(minP.X, n.Rect.X)
		minP.Y = math.Min(minP.Y, n.Rect.Y)
		maxP.X = math.Max(maxP.X, n.Rect.X+n.Rect.Width)
		maxP.Y = math.Max(maxP.Y, n.Rect.Y+n.Rect.Height)
	}
	return geom.RectFromPoints(minP, maxP), true
}

// fitViewport frames the scene inside a width x height pixel canvas.
func fitViewport(s diagram.Scene, width, height float64, limits viewport.Limits) (viewport.FitEvent, bool) {
	b, ok := sceneBounds(s)
	if !ok || width <= 0 || height <= 0 {
		return viewport.FitEvent{}, false
	}
	b = geom.Rect{X: b.X - fitPadding, Y: b.Y - fitPadding, Width: b.Width + 2*fitPadding, Height: b.Height + 2*fitPadding}
	zoom := viewport.New(limits).Clamp(math.Min(width/b.Width, height/b.Height), 1)
	c := b.Center()
	return viewport.FitEvent{
		X:    width/2 - c.X*zoom,
		Y:    height/2 - c.Y*zoom,
		Zoom: zoom,
	}, true
}

func clamp(v, lo, hi int) int {
	return max(lo, min(hi, v))
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
