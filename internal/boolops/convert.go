package boolops

import (
	"github.com/peterstace/simplefeatures/geom"

	"github.com/rawblock/cadastral-engine/internal/geometry"
)

// toSFPolygon converts our Polygon into a simplefeatures Polygon made of
// the first outer ring as exterior plus all interior rings — this is
// only safe for single-outer-ring polygons, which is what toSFGeometry
// below hands it after splitting multi-outer-ring polygons with
// Recombine.
func toSFPolygon(p geometry.Polygon) (geom.Polygon, error) {
	if len(p.OuterRings) == 0 {
		return geom.Polygon{}, nil
	}
	rings := make([]geom.LineString, 0, 1+len(p.InnerRings))
	ext, err := lineToLineString(p.OuterRings[0])
	if err != nil {
		return geom.Polygon{}, err
	}
	rings = append(rings, ext)
	for _, hole := range p.InnerRings {
		ls, err := lineToLineString(hole)
		if err != nil {
			return geom.Polygon{}, err
		}
		rings = append(rings, ls)
	}
	return geom.NewPolygon(rings)
}

// toSFGeometry converts a (possibly multi-outer-ring) Polygon into a
// simplefeatures Geometry, as a Polygon when there's exactly one outer
// ring, or a MultiPolygon otherwise. Holes are assigned to their
// containing outer ring via Polygon.Recombine before conversion.
func toSFGeometry(p geometry.Polygon) (geom.Geometry, error) {
	pieces := p.Recombine()
	if len(pieces) == 1 {
		poly, err := toSFPolygon(pieces[0])
		if err != nil {
			return geom.Geometry{}, err
		}
		return poly.AsGeometry(), nil
	}
	polys := make([]geom.Polygon, 0, len(pieces))
	for _, piece := range pieces {
		if piece.IsZeroArea() {
			continue
		}
		poly, err := toSFPolygon(piece)
		if err != nil {
			return geom.Geometry{}, err
		}
		polys = append(polys, poly)
	}
	if len(polys) == 0 {
		return geom.Geometry{}, nil
	}
	mp, err := geom.NewMultiPolygonFromPolygons(polys)
	if err != nil {
		return geom.Geometry{}, err
	}
	return mp.AsGeometry(), nil
}

func lineToLineString(l geometry.Line) (geom.LineString, error) {
	coords := make([]float64, 0, len(l.Points)*2)
	for _, p := range l.Points {
		coords = append(coords, p.X, p.Y)
	}
	seq := geom.NewSequence(coords, geom.DimXY)
	return geom.NewLineString(seq)
}

// fromSFGeometry converts a simplefeatures Geometry (Polygon,
// MultiPolygon, or empty) back into our Polygon representation, merging
// every ring of every piece into a single multi-outer-ring Polygon.
func fromSFGeometry(g geom.Geometry) geometry.Polygon {
	if g.IsEmpty() {
		return geometry.Polygon{}
	}
	var result geometry.Polygon
	switch {
	case g.IsPolygon():
		appendPolygon(&result, g.MustAsPolygon())
	case g.IsMultiPolygon():
		mp := g.MustAsMultiPolygon()
		for i := 0; i < mp.NumPolygons(); i++ {
			appendPolygon(&result, mp.PolygonN(i))
		}
	}
	return result
}

func appendPolygon(out *geometry.Polygon, poly geom.Polygon) {
	out.OuterRings = append(out.OuterRings, lineStringToLine(poly.ExteriorRing()))
	for i := 0; i < poly.NumInteriorRings(); i++ {
		out.InnerRings = append(out.InnerRings, lineStringToLine(poly.InteriorRingN(i)))
	}
}

func lineStringToLine(ls geom.LineString) geometry.Line {
	seq := ls.Coordinates()
	n := seq.Length()
	pts := make([]geometry.Point, n)
	for i := 0; i < n; i++ {
		xy := seq.GetXY(i)
		pts[i] = geometry.Point{X: xy.X, Y: xy.Y}
	}
	return geometry.Line{Points: pts}
}
