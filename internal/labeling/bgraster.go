package labeling

import (
	"github.com/fogleman/gg"
	"github.com/rawblock/cadastral-engine/internal/geometry"
)

// newBackgroundGrid rasterizes the ring outlines (outer and inner) of
// every background/must-avoid polygon into a pixelGrid by stroking
// them with gg — the "outlines of base parcels, split pieces,
// buildings, and must-avoid polygons" layer of the raster model; the
// interior of a polygon is left free, so a label may sit inside the
// parcel it names. Returns nil if the drawing rectangle is degenerate
// (zero width or height).
func newBackgroundGrid(rect geometry.Rectangle, pxPerM float64, polys []geometry.Polygon) *pixelGrid {
	if rect.Width() <= 0 || rect.Height() <= 0 || pxPerM <= 0 {
		return nil
	}
	g := newPixelGrid(rect, pxPerM)

	dc := gg.NewContext(g.w, g.h)
	dc.SetLineWidth(1)
	dc.SetRGBA(0, 0, 0, 1)

	for _, poly := range polys {
		if poly.IsEmpty() {
			continue
		}
		for _, ring := range poly.OuterRings {
			traceRing(dc, ring, g)
		}
		for _, ring := range poly.InnerRings {
			traceRing(dc, ring, g)
		}
		dc.Stroke()
	}

	img := dc.Image()
	for y := 0; y < g.h; y++ {
		for x := 0; x < g.w; x++ {
			_, _, _, a := img.At(x, y).RGBA()
			if a > 0 {
				g.set(x, y)
			}
		}
	}
	return g
}

func traceRing(dc *gg.Context, ring geometry.Line, g *pixelGrid) {
	if len(ring.Points) == 0 {
		return
	}
	x0, y0 := g.toPixel(ring.Points[0])
	dc.MoveTo(float64(x0), float64(y0))
	for _, p := range ring.Points[1:] {
		x, y := g.toPixel(p)
		dc.LineTo(float64(x), float64(y))
	}
	dc.ClosePath()
}
