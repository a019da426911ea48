package boolops

import (
	"fmt"

	"github.com/rawblock/cadastral-engine/internal/geometry"
	"github.com/rawblock/cadastral-engine/internal/spatialindex"
)

type edgeRef struct {
	a, b geometry.Point // endpoints, for distance/projection
}

// snapSecondOntoFirst moves vertices of b that land within
// SnapPointTolerance of a vertex or edge of a exactly onto that vertex
// or edge, before a boolean op runs — this is what keeps simplefeatures
// from seeing two polygons that "almost" share a boundary as disjoint.
// Grounded on original_source/src/ops.rs's pre-op snapping in
// join_polys/subtract_from_poly.
func snapSecondOntoFirst(a, b geometry.Polygon) geometry.Polygon {
	edges := collectEdges(a)
	if len(edges) == 0 {
		return b
	}
	index, lookup := indexEdges(edges)

	snapRing := func(r geometry.Line) geometry.Line {
		pts := make([]geometry.Point, len(r.Points))
		for i, p := range r.Points {
			pts[i] = snapPointOntoEdges(p, index, lookup)
		}
		return geometry.Line{Points: pts}
	}

	out := geometry.Polygon{
		OuterRings: make([]geometry.Line, len(b.OuterRings)),
		InnerRings: make([]geometry.Line, len(b.InnerRings)),
	}
	for i, r := range b.OuterRings {
		out.OuterRings[i] = snapRing(r)
	}
	for i, r := range b.InnerRings {
		out.InnerRings[i] = snapRing(r)
	}
	return out
}

func snapPointOntoEdges(p geometry.Point, index *spatialindex.Quadtree, edges []edgeRef) geometry.Point {
	candidates := index.IDsOverlapping(geometry.PointRect(p, SnapPointTolerance))
	best := p
	bestDist := SnapPointTolerance
	found := false
	for _, id := range candidates {
		e := edges[id]
		d := geometry.DistanceToSegment(p, e.a, e.b)
		if d.Distance <= bestDist {
			bestDist = d.Distance
			best = d.NearestPoint
			found = true
		}
	}
	if !found {
		return p
	}
	return best
}

func collectEdges(p geometry.Polygon) []edgeRef {
	var edges []edgeRef
	for _, r := range p.OuterRings {
		for _, seg := range r.Segments() {
			edges = append(edges, edgeRef{a: seg[0], b: seg[1]})
		}
	}
	for _, r := range p.InnerRings {
		for _, seg := range r.Segments() {
			edges = append(edges, edgeRef{a: seg[0], b: seg[1]})
		}
	}
	return edges
}

func indexEdges(edges []edgeRef) (*spatialindex.Quadtree, []edgeRef) {
	items := make([]struct {
		ID   spatialindex.ID
		Rect geometry.Rectangle
	}, len(edges))
	for i, e := range edges {
		r := geometry.PointRect(e.a, SnapPointTolerance).Union(geometry.PointRect(e.b, SnapPointTolerance))
		items[i] = struct {
			ID   spatialindex.ID
			Rect geometry.Rectangle
		}{spatialindex.ID(i), r}
	}
	return spatialindex.New(items), edges
}

// mergeNearbyVertices clusters every vertex of result together with the
// reference polygon's vertices (the original operands), merging any
// group of mutually-within-tolerance points onto a single
// representative coordinate. Grounded on
// original_source/src/ops.rs merge_poly_points, which runs the
// equivalent clustering pass through quadtree_f32 after every boolean
// op.
func mergeNearbyVertices(result, reference geometry.Polygon) geometry.Polygon {
	all := append(append([]geometry.Point{}, result.AllPoints()...), reference.AllPoints()...)
	if len(all) == 0 {
		return result
	}
	reps := clusterPoints(all, SnapLineTolerance)

	remapRing := func(r geometry.Line) geometry.Line {
		pts := make([]geometry.Point, len(r.Points))
		for i, p := range r.Points {
			if rep, ok := reps[keyOf(p)]; ok {
				pts[i] = rep
			} else {
				pts[i] = p
			}
		}
		return geometry.Line{Points: pts}
	}

	out := geometry.Polygon{
		OuterRings: make([]geometry.Line, len(result.OuterRings)),
		InnerRings: make([]geometry.Line, len(result.InnerRings)),
	}
	for i, r := range result.OuterRings {
		out.OuterRings[i] = remapRing(r)
	}
	for i, r := range result.InnerRings {
		out.InnerRings[i] = remapRing(r)
	}
	return out
}

func keyOf(p geometry.Point) string {
	return fmt.Sprintf("%.6f,%.6f", p.X, p.Y)
}

// clusterPoints groups points within tol of one another (transitively,
// via union-find over a quadtree neighbor query) and returns a map from
// each point's key to its cluster's representative — the first point
// encountered in cluster order, matching the original's "keep the
// earliest vertex" merge rule.
func clusterPoints(pts []geometry.Point, tol float64) map[string]geometry.Point {
	items := make([]struct {
		ID   spatialindex.ID
		Rect geometry.Rectangle
	}, len(pts))
	for i, p := range pts {
		items[i] = struct {
			ID   spatialindex.ID
			Rect geometry.Rectangle
		}{spatialindex.ID(i), geometry.PointRect(p, tol)}
	}
	qt := spatialindex.New(items)

	parent := make([]int, len(pts))
	for i := range parent {
		parent[i] = i
	}
	var find func(int) int
	find = func(x int) int {
		if parent[x] != x {
			parent[x] = find(parent[x])
		}
		return parent[x]
	}
	union := func(x, y int) {
		rx, ry := find(x), find(y)
		if rx != ry {
			if ry < rx {
				rx, ry = ry, rx
			}
			parent[ry] = rx
		}
	}

	for i, p := range pts {
		for _, nid := range qt.IDsOverlapping(geometry.PointRect(p, tol)) {
			j := int(nid)
			if j == i {
				continue
			}
			if p.Dist(pts[j]) <= tol {
				union(i, j)
			}
		}
	}

	reps := make(map[string]geometry.Point, len(pts))
	for i, p := range pts {
		root := find(i)
		reps[keyOf(p)] = pts[root]
	}
	return reps
}

// snapOntoNearbyEdges snaps each vertex of p onto any other edge of p
// (excluding its own two adjacent edges) that passes within
// SnapLineTolerance, closing up the hairline gaps a boolean op can
// leave between two rings that should share a boundary.
func snapOntoNearbyEdges(p geometry.Polygon) geometry.Polygon {
	type labeledEdge struct {
		edgeRef
		ringIdx, segIdx int
		outer           bool
	}
	var edges []labeledEdge
	for ri, r := range p.OuterRings {
		for si, seg := range r.Segments() {
			edges = append(edges, labeledEdge{edgeRef{seg[0], seg[1]}, ri, si, true})
		}
	}
	for ri, r := range p.InnerRings {
		for si, seg := range r.Segments() {
			edges = append(edges, labeledEdge{edgeRef{seg[0], seg[1]}, ri, si, false})
		}
	}
	if len(edges) == 0 {
		return p
	}

	items := make([]struct {
		ID   spatialindex.ID
		Rect geometry.Rectangle
	}, len(edges))
	for i, e := range edges {
		r := geometry.PointRect(e.a, SnapLineTolerance).Union(geometry.PointRect(e.b, SnapLineTolerance))
		items[i] = struct {
			ID   spatialindex.ID
			Rect geometry.Rectangle
		}{spatialindex.ID(i), r}
	}
	index := spatialindex.New(items)

	snapRing := func(ring geometry.Line, ringIdx int, outer bool) geometry.Line {
		pts := make([]geometry.Point, len(ring.Points))
		for i, vertex := range ring.Points {
			candidates := index.IDsOverlapping(geometry.PointRect(vertex, SnapLineTolerance))
			best := vertex
			bestDist := SnapLineTolerance
			for _, id := range candidates {
				e := edges[id]
				if e.outer == outer && e.ringIdx == ringIdx && (e.segIdx == i || e.segIdx == i-1 || (i == 0 && e.segIdx == len(ring.Points)-2)) {
					continue
				}
				d := geometry.DistanceToSegment(vertex, e.a, e.b)
				if d.Distance < bestDist && d.Distance > 1e-9 {
					bestDist = d.Distance
					best = d.NearestPoint
				}
			}
			pts[i] = best
		}
		return geometry.Line{Points: pts}
	}

	out := geometry.Polygon{
		OuterRings: make([]geometry.Line, len(p.OuterRings)),
		InnerRings: make([]geometry.Line, len(p.InnerRings)),
	}
	for i, r := range p.OuterRings {
		out.OuterRings[i] = snapRing(r, i, true)
	}
	for i, r := range p.InnerRings {
		out.InnerRings[i] = snapRing(r, i, false)
	}
	return out
}
