package labeling

import (
	"image"
	"image/color"
	"math"

	"github.com/StephaneBunel/bresenham"
	"github.com/rawblock/cadastral-engine/internal/geometry"
)

// pixelGrid is a binary raster layer over a world-space rectangle,
// addressed by (x, y) pixel coordinates with the origin at the
// rectangle's top-left (y grows downward, matching image.Image
// conventions so it composes directly with the gg-rasterized
// background layer).
type pixelGrid struct {
	w, h       int
	cells      []bool
	minX, minY float64
	pxPerM     float64
}

func newPixelGrid(rect geometry.Rectangle, pxPerM float64) *pixelGrid {
	w := int(math.Ceil(rect.Width()*pxPerM)) + 1
	h := int(math.Ceil(rect.Height()*pxPerM)) + 1
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	return &pixelGrid{w: w, h: h, cells: make([]bool, w*h), minX: rect.MinX, minY: rect.MinY, pxPerM: pxPerM}
}

func (g *pixelGrid) toPixel(p geometry.Point) (int, int) {
	x := int((p.X - g.minX) * g.pxPerM)
	y := g.h - 1 - int((p.Y-g.minY)*g.pxPerM)
	return x, y
}

func (g *pixelGrid) inBounds(x, y int) bool { return x >= 0 && x < g.w && y >= 0 && y < g.h }

func (g *pixelGrid) set(x, y int) {
	if g.inBounds(x, y) {
		g.cells[y*g.w+x] = true
	}
}

func (g *pixelGrid) get(x, y int) bool {
	if !g.inBounds(x, y) {
		return false
	}
	return g.cells[y*g.w+x]
}

func (g *pixelGrid) paintRect(rect geometry.Rectangle) {
	x0, y1 := g.toPixel(geometry.Point{X: rect.MinX, Y: rect.MinY})
	x1, y0 := g.toPixel(geometry.Point{X: rect.MaxX, Y: rect.MaxY})
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			g.set(x, y)
		}
	}
}

func (g *pixelGrid) rectOverlaps(rect geometry.Rectangle) bool {
	x0, y1 := g.toPixel(geometry.Point{X: rect.MinX, Y: rect.MinY})
	x1, y0 := g.toPixel(geometry.Point{X: rect.MaxX, Y: rect.MaxY})
	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			if g.get(x, y) {
				return true
			}
		}
	}
	return false
}

func (g *pixelGrid) paintLine(a, b geometry.Point) {
	for _, pt := range linePixels(a, b, g.toPixel) {
		g.set(pt.X, pt.Y)
	}
}

func (g *pixelGrid) lineCrosses(a, b geometry.Point) bool {
	for _, pt := range linePixels(a, b, g.toPixel) {
		if g.get(pt.X, pt.Y) {
			return true
		}
	}
	return false
}

// pointCollector is a throwaway draw.Image that records every pixel
// Bresenham's algorithm visits, without needing a backing buffer sized
// to the walk.
type pointCollector struct{ points []image.Point }

func (p *pointCollector) ColorModel() color.Model { return color.GrayModel }
func (p *pointCollector) Bounds() image.Rectangle {
	const big = 1 << 20
	return image.Rect(-big, -big, big, big)
}
func (p *pointCollector) At(x, y int) color.Color   { return color.Gray{Y: 0} }
func (p *pointCollector) Set(x, y int, _ color.Color) {
	p.points = append(p.points, image.Point{X: x, Y: y})
}

func linePixels(a, b geometry.Point, toPixel func(geometry.Point) (int, int)) []image.Point {
	x0, y0 := toPixel(a)
	x1, y1 := toPixel(b)
	pc := &pointCollector{}
	bresenham.Bresenham(pc, x0, y0, x1, y1, color.Black)
	return pc.points
}
