package snapclean

import (
	"github.com/rawblock/cadastral-engine/internal/geometry"
	"github.com/rawblock/cadastral-engine/internal/spatialindex"
)

// BaseIndex wraps the base cadastral dataset (AX_Flurstueck sub-parts,
// one TaggedPolygon per part) with the spatial indices stage 2, 3 and 5
// each need: an edge index for vertex-to-edge snapping, a vertex index
// for follow-line chain discovery, and a lookup by part id.
type BaseIndex struct {
	Parts    []geometry.TaggedPolygon
	byPartID map[string]geometry.TaggedPolygon

	edges    *edgeIndex
	vertexQT *spatialindex.Quadtree
	vertices []geometry.Point
	partsQT  *spatialindex.Quadtree
}

// NewBaseIndex builds every index once, up front, for one pipeline
// invocation.
func NewBaseIndex(parts []geometry.TaggedPolygon) *BaseIndex {
	bi := &BaseIndex{Parts: parts, byPartID: make(map[string]geometry.TaggedPolygon, len(parts))}

	var edges []edge
	var vertices []geometry.Point
	for _, part := range parts {
		bi.byPartID[part.ObjectID()] = part
		edges = append(edges, ringsToEdges(part.Poly.OuterRings)...)
		edges = append(edges, ringsToEdges(part.Poly.InnerRings)...)
		vertices = append(vertices, part.Poly.AllPoints()...)
	}
	bi.edges = newEdgeIndex(edges, 4.0)
	bi.vertices = vertices

	items := make([]struct {
		ID   spatialindex.ID
		Rect geometry.Rectangle
	}, len(vertices))
	for i, v := range vertices {
		items[i] = struct {
			ID   spatialindex.ID
			Rect geometry.Rectangle
		}{spatialindex.ID(i), geometry.PointRect(v, 0)}
	}
	bi.vertexQT = spatialindex.New(items)

	partItems := make([]struct {
		ID   spatialindex.ID
		Rect geometry.Rectangle
	}, len(parts))
	for i, p := range parts {
		partItems[i] = struct {
			ID   spatialindex.ID
			Rect geometry.Rectangle
		}{spatialindex.ID(i), p.Poly.Rect()}
	}
	bi.partsQT = spatialindex.New(partItems)

	return bi
}

// PartByID returns a base sub-part by its object id.
func (bi *BaseIndex) PartByID(id string) (geometry.TaggedPolygon, bool) {
	p, ok := bi.byPartID[id]
	return p, ok
}

// PartsOverlapping returns every base sub-part whose rectangle overlaps
// rect — C5's parcel-quadtree query. (Stage 5 looks parts up by id via
// PartByID instead.)
func (bi *BaseIndex) PartsOverlapping(rect geometry.Rectangle) []geometry.TaggedPolygon {
	ids := bi.partsQT.IDsOverlapping(rect)
	out := make([]geometry.TaggedPolygon, 0, len(ids))
	for _, id := range ids {
		out = append(out, bi.Parts[id])
	}
	return out
}

// verticesNear returns the base vertices that lie inside rect.
func (bi *BaseIndex) verticesNear(rect geometry.Rectangle) []geometry.Point {
	ids := bi.vertexQT.IDsOverlapping(rect)
	out := make([]geometry.Point, 0, len(ids))
	for _, id := range ids {
		out = append(out, bi.vertices[id])
	}
	return out
}
