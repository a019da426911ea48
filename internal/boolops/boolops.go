// Package boolops implements the robust union/difference/intersection
// core (spec §4.3) over polygons that may touch or nearly touch. The
// heavy lifting — actual polygon clipping — is delegated to
// github.com/peterstace/simplefeatures/geom, a mature pure-Go
// boolean-operations library; this package owns only the
// precondition/postcondition normalization the spec requires: rounding,
// winding correction, near-touch snapping, and cleanup.
package boolops

import (
	"sort"

	"github.com/rawblock/cadastral-engine/internal/geometry"
)

// SnapPointTolerance is the tolerance (metres) within which a vertex of
// the second operand is snapped onto a vertex or edge of the first
// operand before a boolean op proceeds.
const SnapPointTolerance = 0.05

// SnapLineTolerance is the tolerance (metres) used by postprocess to merge
// nearby vertices and snap vertices onto nearby edges after a boolean
// op.
const SnapLineTolerance = 0.10

func normalize(p geometry.Polygon) geometry.Polygon {
	return p.Round3().CorrectWinding()
}

// Union returns A ∪ B.
func Union(a, b geometry.Polygon) geometry.Polygon {
	a, b = normalize(a), normalize(b)

	if a.IsZeroArea() {
		return postprocess(b, a)
	}
	if b.IsZeroArea() {
		return postprocess(a, b)
	}
	if a.Equal(b) {
		return postprocess(a, b)
	}

	b = snapSecondOntoFirst(a, b)
	result, ok := runBoolOp(a, b, opUnion)
	if !ok {
		if b.AreaAbs() > a.AreaAbs() {
			return postprocess(b, geometry.Polygon{})
		}
		return postprocess(a, geometry.Polygon{})
	}
	return postprocess(result, geometry.Polygon{})
}

// Intersection returns A ∩ B.
func Intersection(a, b geometry.Polygon) geometry.Polygon {
	a, b = normalize(a), normalize(b)

	if a.IsZeroArea() || b.IsZeroArea() {
		return geometry.Polygon{}
	}
	if a.Equal(b) {
		return postprocess(a, b)
	}

	b = snapSecondOntoFirst(a, b)
	result, ok := runBoolOp(a, b, opIntersection)
	if !ok {
		return geometry.Polygon{}
	}
	return postprocess(result, geometry.Polygon{})
}

// Difference returns A − B.
func Difference(a, b geometry.Polygon) geometry.Polygon {
	a, b = normalize(a), normalize(b)

	if b.IsZeroArea() {
		return postprocess(a, b)
	}
	if a.IsZeroArea() {
		return geometry.Polygon{}
	}
	if a.Equal(b) {
		return geometry.Polygon{}
	}

	b = snapSecondOntoFirst(a, b)
	result, ok := runBoolOp(a, b, opDifference)
	if !ok {
		return geometry.Polygon{}
	}
	return postprocess(result, geometry.Polygon{})
}

type opKind int

const (
	opUnion opKind = iota
	opIntersection
	opDifference
)

// runBoolOp delegates to simplefeatures. Pathological inputs (self
// intersections simplefeatures rejects, etc.) degrade per spec: the
// bool return is false when the op could not be carried out, and
// callers fall back to the larger-operand-or-empty rule rather than
// propagating an error — these operations never fail outwardly.
func runBoolOp(a, b geometry.Polygon, kind opKind) (geometry.Polygon, bool) {
	ga, err := toSFGeometry(a)
	if err != nil {
		return geometry.Polygon{}, false
	}
	gb, err := toSFGeometry(b)
	if err != nil {
		return geometry.Polygon{}, false
	}

	res, err := applySFOp(ga, gb, kind)
	if err != nil {
		return geometry.Polygon{}, false
	}
	return fromSFGeometry(res), true
}

// DifferenceMany returns A minus the union of all polys in subtract. An
// empty subtract list returns A unchanged — mirrors
// original_source/src/ops.rs subtract_from_poly, which is the
// grounding for C4 stage 5/6 and for C6's per-base-object subtraction.
func DifferenceMany(a geometry.Polygon, subtract []geometry.Polygon) geometry.Polygon {
	if len(subtract) == 0 {
		return a.Round3()
	}
	result := a.Round3().CorrectWinding()
	for _, s := range subtract {
		s = s.Round3().CorrectWinding()
		if s.IsZeroArea() {
			continue
		}
		if result.Equal(s) {
			return geometry.Polygon{}
		}
		result = Difference(result, s)
		if result.IsZeroArea() {
			return geometry.Polygon{}
		}
	}
	return result
}

// JoinPolys unions a list of polygons, dedicated on point-set equality
// and starting from the largest by absolute area, per spec §4.3's
// join_polys: sort ascending, dedup, union iteratively from the
// largest. Returns possibly-multiple output polygons when pieces never
// end up touching.
func JoinPolys(polys []geometry.Polygon) []geometry.Polygon {
	if len(polys) == 0 {
		return nil
	}
	sorted := make([]geometry.Polygon, 0, len(polys))
	for _, p := range polys {
		p = p.Round3().CorrectWinding()
		if p.IsZeroArea() {
			continue
		}
		sorted = append(sorted, p)
	}
	if len(sorted) == 0 {
		return nil
	}
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].AreaAbs() < sorted[j].AreaAbs() })

	deduped := make([]geometry.Polygon, 0, len(sorted))
	seen := make(map[string]bool)
	for _, p := range sorted {
		h := p.Hash()
		if seen[h] {
			continue
		}
		seen[h] = true
		deduped = append(deduped, p)
	}

	// largest first
	for i, j := 0, len(deduped)-1; i < j; i, j = i+1, j-1 {
		deduped[i], deduped[j] = deduped[j], deduped[i]
	}

	first := deduped[0]
	for _, next := range deduped[1:] {
		first = Union(first, next)
	}
	return first.Recombine()
}

// postprocess applies the §4.3 cleanup pass: merge near-duplicate
// vertices, snap vertices onto nearby edges, and re-round. `reference`
// supplies the extra point set the point-merge quadtree is built from
// (the original operands), matching the original's merge_poly_points
// signature of (result, originalPoints).
func postprocess(result, reference geometry.Polygon) geometry.Polygon {
	result = result.Round3().CorrectWinding()
	result = dropZeroAreaRings(result)
	result = mergeNearbyVertices(result, reference)
	result = snapOntoNearbyEdges(result)
	return result.Round3().CorrectWinding()
}

func dropZeroAreaRings(p geometry.Polygon) geometry.Polygon {
	out := geometry.Polygon{}
	for _, r := range p.OuterRings {
		if absArea(r.SignedArea()) >= geometry.ZeroAreaTolerance {
			out.OuterRings = append(out.OuterRings, r)
		}
	}
	for _, r := range p.InnerRings {
		if absArea(r.SignedArea()) >= geometry.ZeroAreaTolerance {
			out.InnerRings = append(out.InnerRings, r)
		}
	}
	return out
}

func absArea(a float64) float64 {
	if a < 0 {
		return -a
	}
	return a
}
