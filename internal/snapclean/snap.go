package snapclean

import (
	"github.com/rawblock/cadastral-engine/internal/geometry"
	"github.com/rawblock/cadastral-engine/internal/spatialindex"
)

// edge is a candidate neighborhood segment a vertex may snap onto.
type edge struct {
	a, b geometry.Point
}

// edgeIndex is a quadtree over a fixed set of edges, used by stage 1
// (other sketches' edges) and stage 2 (base parcel edges).
type edgeIndex struct {
	qt    *spatialindex.Quadtree
	edges []edge
}

func newEdgeIndex(edges []edge, margin float64) *edgeIndex {
	items := make([]struct {
		ID   spatialindex.ID
		Rect geometry.Rectangle
	}, len(edges))
	for i, e := range edges {
		r := geometry.PointRect(e.a, margin).Union(geometry.PointRect(e.b, margin))
		items[i] = struct {
			ID   spatialindex.ID
			Rect geometry.Rectangle
		}{spatialindex.ID(i), r}
	}
	return &edgeIndex{qt: spatialindex.New(items), edges: edges}
}

// snapPoint moves p onto the nearest endpoint of a candidate edge
// within endpointTol, else the nearest point on a candidate edge's
// interior within edgeTol. Returns p unchanged (and false) if nothing
// qualifies.
func (ix *edgeIndex) snapPoint(p geometry.Point, endpointTol, edgeTol float64) (geometry.Point, bool) {
	margin := endpointTol
	if edgeTol > margin {
		margin = edgeTol
	}
	candidates := ix.qt.IDsOverlapping(geometry.PointRect(p, margin))

	bestEndpoint := geometry.Point{}
	bestEndpointDist := endpointTol
	haveEndpoint := false

	bestEdge := geometry.Point{}
	bestEdgeDist := edgeTol
	haveEdge := false

	for _, id := range candidates {
		e := ix.edges[id]
		if d := p.Dist(e.a); d <= bestEndpointDist {
			bestEndpointDist, bestEndpoint, haveEndpoint = d, e.a, true
		}
		if d := p.Dist(e.b); d <= bestEndpointDist {
			bestEndpointDist, bestEndpoint, haveEndpoint = d, e.b, true
		}
		proj := geometry.DistanceToSegment(p, e.a, e.b)
		if proj.Distance <= bestEdgeDist {
			bestEdgeDist, bestEdge, haveEdge = proj.Distance, proj.NearestPoint, true
		}
	}

	if haveEndpoint {
		return bestEndpoint, true
	}
	if haveEdge {
		return bestEdge, true
	}
	return p, false
}

func ringsToEdges(rings []geometry.Line) []edge {
	var out []edge
	for _, r := range rings {
		for _, seg := range r.Segments() {
			out = append(out, edge{a: seg[0], b: seg[1]})
		}
	}
	return out
}

func snapRing(r geometry.Line, ix *edgeIndex, endpointTol, edgeTol float64) (geometry.Line, bool) {
	pts := make([]geometry.Point, len(r.Points))
	changed := false
	for i, p := range r.Points {
		snapped, ok := ix.snapPoint(p, endpointTol, edgeTol)
		pts[i] = snapped
		changed = changed || ok
	}
	return geometry.Line{Points: pts}, changed
}
