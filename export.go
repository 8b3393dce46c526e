package main

import (
	"fmt"
	"image/color"
	"io"
	"math"
	"os"
	"time"

	svg "github.com/ajstarks/svgo"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gomono"

	"flowcanvas/internal/diagram"
	"flowcanvas/internal/geom"
	"flowcanvas/internal/route"
)

type exportKind int

const (
	exportPNG exportKind = iota
	exportSVG
)

func (k exportKind) ext() string {
	if k == exportSVG {
		return ".svg"
	}
	return ".png"
}

// exporter draws a scene at world scale, one world unit per pixel.
type exporter struct {
	scene  diagram.Scene
	routes []route.RoutedEdge
	bounds geom.Rect
}

func newExporter(s diagram.Scene, resolver route.Resolver, style geom.RoutingStyle) (*exporter, error) {
	b, ok := sceneBounds(s)
	if !ok {
		return nil, ErrEmptyScene
	}
	b = geom.Rect{X: b.X - fitPadding, Y: b.Y - fitPadding, Width: b.Width + 2*fitPadding, Height: b.Height + 2*fitPadding}
	return &exporter{
		scene:  s,
		routes: resolver.RouteScene(s, style),
		bounds: b,
	}, nil
}

func (x *exporter) size() (int, int) {
	return int(math.Ceil(x.bounds.Width)), int(math.Ceil(x.bounds.Height))
}

func (x *exporter) context() (*gg.Context, error) {
	w, h := x.size()
	dc := gg.NewContext(w, h)
	dc.SetColor(color.White)
	dc.Clear()

	ttfFont, err := truetype.Parse(gomono.TTF)
	if err != nil {
		return nil, fmt.Errorf("failed to parse font: %w", err)
	}
	dc.SetFontFace(truetype.NewFace(ttfFont, &truetype.Options{
		Size:    fontSize,
		DPI:     72,
		Hinting: font.HintingFull,
	}))
	dc.Translate(-x.bounds.X, -x.bounds.Y)

	// Edges first so nodes sit on top of them.
	dc.SetLineWidth(1.5)
	for _, r := range x.routes {
		dc.SetColor(color.Black)
		drawPathPNG(dc, r.Path)
		dc.Stroke()
		drawArrowPNG(dc, r.Path)
	}

	for _, n := range x.scene.Nodes {
		drawNodePNG(dc, n)
	}
	return dc, nil
}

func (x *exporter) writePNG(w io.Writer) error {
	dc, err := x.context()
	if err != nil {
		return err
	}
	return dc.EncodePNG(w)
}

func drawPathPNG(dc *gg.Context, p geom.Path) {
	pts := p.Points
	if len(pts) < 2 {
		return
	}
	dc.MoveTo(pts[0].X, pts[0].Y)
	if p.Style == geom.StyleBezier && len(pts) == 4 {
		dc.CubicTo(pts[1].X, pts[1].Y, pts[2].X, pts[2].Y, pts[3].X, pts[3].Y)
		return
	}
	for _, q := range pts[1:] {
		dc.LineTo(q.X, q.Y)
	}
}

func drawArrowPNG(dc *gg.Context, p geom.Path) {
	pts := p.Flatten(24)
	if len(pts) < 2 {
		return
	}
	from, tip := pts[len(pts)-2], pts[len(pts)-1]
	dx, dy := tip.X-from.X, tip.Y-from.Y
	length := math.Hypot(dx, dy)
	if length < 0.1 {
		return
	}
	dx /= length
	dy /= length

	const size, spread = 8.0, 0.5
	dc.MoveTo(tip.X, tip.Y)
	dc.LineTo(tip.X-size*dx+size*dy*spread, tip.Y-size*dy-size*dx*spread)
	dc.LineTo(tip.X-size*dx-size*dy*spread, tip.Y-size*dy+size*dx*spread)
	dc.ClosePath()
	dc.Fill()
}

func drawNodePNG(dc *gg.Context, n diagram.Node) {
	r := n.Rect
	if n.Caps.Container {
		dc.SetDash(6, 4)
		dc.SetColor(color.Gray{Y: 120})
		dc.DrawRectangle(r.X, r.Y, r.Width, r.Height)
		dc.Stroke()
		dc.SetDash()
		dc.DrawString(nodeLabel(n), r.X+6, r.Y+fontSize+4)
		return
	}
	dc.SetColor(color.White)
	dc.DrawRoundedRectangle(r.X, r.Y, r.Width, r.Height, 6)
	dc.Fill()
	dc.SetColor(color.Black)
	dc.SetLineWidth(1)
	dc.DrawRoundedRectangle(r.X, r.Y, r.Width, r.Height, 6)
	dc.Stroke()
	c := r.Center()
	dc.DrawStringAnchored(nodeLabel(n), c.X, c.Y, 0.5, 0.5)
}

func (x *exporter) writeSVG(w io.Writer) error {
	width, height := x.size()
	canvas := svg.New(w)
	canvas.Start(width, height)
	canvas.Rect(0, 0, width, height, "fill:white")
	canvas.Gtransform(fmt.Sprintf("translate(%g,%g)", -x.bounds.X, -x.bounds.Y))

	for _, r := range x.routes {
		canvas.Path(r.Path.SVGData(), "fill:none;stroke:black;stroke-width:1.5")
		if pts := r.Path.Flatten(24); len(pts) >= 2 {
			tip := pts[len(pts)-1]
			if xs, ys := arrowPolygon(pts[len(pts)-2], tip); xs != nil {
				canvas.Polygon(xs, ys, "fill:black")
			}
		}
	}
	for _, n := range x.scene.Nodes {
		r := n.Rect
		rx, ry, rw, rh := int(r.X), int(r.Y), int(r.Width), int(r.Height)
		if n.Caps.Container {
			canvas.Rect(rx, ry, rw, rh, "fill:none;stroke:gray;stroke-dasharray:6,4")
			canvas.Text(rx+6, ry+int(fontSize)+4, nodeLabel(n), "fill:gray;font-size:12px;font-family:monospace")
			continue
		}
		canvas.Roundrect(rx, ry, rw, rh, 6, 6, "fill:white;stroke:black;stroke-width:1")
		c := r.Center()
		canvas.Text(int(c.X), int(c.Y), nodeLabel(n),
			"fill:black;font-size:12px;font-family:monospace;text-anchor:middle;dominant-baseline:middle")
	}
	canvas.Gend()
	canvas.End()
	return nil
}

func arrowPolygon(from, tip geom.Point) ([]int, []int) {
	dx, dy := tip.X-from.X, tip.Y-from.Y
	length := math.Hypot(dx, dy)
	if length < 0.1 {
		return nil, nil
	}
	dx /= length
	dy /= length
	const size, spread = 8.0, 0.5
	return []int{
			int(math.Round(tip.X)),
			int(math.Round(tip.X - size*dx + size*dy*spread)),
			int(math.Round(tip.X - size*dx - size*dy*spread)),
		}, []int{
			int(math.Round(tip.Y)),
			int(math.Round(tip.Y - size*dy - size*dx*spread)),
			int(math.Round(tip.Y - size*dy + size*dx*spread)),
		}
}

// exportScene writes the scene to path in the format its kind names.
func exportScene(s diagram.Scene, resolver route.Resolver, style geom.RoutingStyle, kind exportKind, path string) (err error) {
	x, err := newExporter(s, resolver, style)
	if err != nil {
		return err
	}
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := file.Close(); err == nil && cerr != nil {
			err = fmt.Errorf("closing %s: %w", path, cerr)
		}
	}()

	if kind == exportSVG {
		err = x.writeSVG(file)
	} else {
		err = x.writePNG(file)
	}
	if err != nil {
		return fmt.Errorf("exporting %s: %w", path, err)
	}
	return nil
}

// exportCmd exports the committed scene in the background.
func (m *model) exportCmd(kind exportKind) tea.Cmd {
	scene := m.scene
	resolver := m.engine.Resolver()
	style := m.config.style()
	name := "flowcanvas-" + time.Now().Format("20060102-150405") + kind.ext()
	cfg := m.config
	return func() tea.Msg {
		path, err := cfg.exportPath(name)
		if err != nil {
			return statusMsg{text: err.Error(), err: true}
		}
		if err := exportScene(scene, resolver, style, kind, path); err != nil {
			return statusMsg{text: err.Error(), err: true}
		}
		return statusMsg{text: "exported " + path}
	}
}
