package snapclean

import (
	"fmt"
	"sort"

	"github.com/rawblock/cadastral-engine/internal/boolops"
	"github.com/rawblock/cadastral-engine/internal/catalog"
	"github.com/rawblock/cadastral-engine/internal/geometry"
	"github.com/rawblock/cadastral-engine/pkg/models"
)

// sketch is the mutable working representation of one NaPolygonNeu
// during stages 1-3; the id is carried along, but the merged-by-type
// output of stage 4 onward is keyed by land-use key only and carries
// no sketch ids.
type sketch struct {
	id      string
	nutzung string
	poly    geometry.Polygon
}

// Clean runs all six stages in order and returns the cleaned per-key
// polygons, plus a status log entry per stage. Grounded on
// original_source/src/ui.rs's Aenderungen::clean.
func Clean(in models.Aenderungen, base *BaseIndex, ranking *catalog.Ranking, params Params, statusSink func(string)) map[string]geometry.Polygon {
	log := func(msg string) {
		if statusSink != nil {
			statusSink(msg)
		}
	}

	sketches := toSketches(in.NaPolygonNeu)

	sketches = stage1MergeSelf(sketches, params)
	log("stage 1: merged sketches to themselves")

	sketches = stage2SnapToBase(sketches, base, params)
	log("stage 2: snapped sketches to base parcels")

	sketches = stage3FollowLine(sketches, base, params)
	log("stage 3: inserted follow-line points")

	merged := stage4MergeByType(sketches)
	log(fmt.Sprintf("stage 4: merged into %d land-use keys", len(merged)))

	merged = stage5FoldRelabels(merged, in.NaDefiniert, base)
	log("stage 5: folded in sub-parcel relabels")

	merged = stage6ResolvePriority(merged, ranking)
	log("stage 6: resolved priority conflicts")

	return merged
}

func toSketches(polys []models.NaPolygonNeu) []sketch {
	out := make([]sketch, 0, len(polys))
	for _, p := range polys {
		out = append(out, sketch{id: p.ID, nutzung: p.Nutzung, poly: p.Poly.Round3().CorrectWinding()})
	}
	return out
}

// stage1MergeSelf snaps each sketch's vertices onto the edges of every
// other sketch, within MaxDstPoint (endpoint within 2x, edge within
// 1x) — spec §4.4 stage 1.
func stage1MergeSelf(sketches []sketch, params Params) []sketch {
	out := make([]sketch, len(sketches))
	copy(out, sketches)

	for i := range out {
		var edges []edge
		for j := range out {
			if j == i {
				continue
			}
			edges = append(edges, ringsToEdges(out[j].poly.OuterRings)...)
			edges = append(edges, ringsToEdges(out[j].poly.InnerRings)...)
		}
		if len(edges) == 0 {
			continue
		}
		ix := newEdgeIndex(edges, 2*params.MaxDstPoint)

		snapRings := func(rings []geometry.Line) []geometry.Line {
			res := make([]geometry.Line, len(rings))
			for k, r := range rings {
				res[k], _ = snapRing(r, ix, 2*params.MaxDstPoint, params.MaxDstPoint)
			}
			return res
		}
		out[i].poly.OuterRings = snapRings(out[i].poly.OuterRings)
		out[i].poly.InnerRings = snapRings(out[i].poly.InnerRings)
		out[i].poly = out[i].poly.Round3()
	}
	return out
}

// stage2SnapToBase applies the same rule as stage 1 but against the
// base cadastral parcels — spec §4.4 stage 2.
func stage2SnapToBase(sketches []sketch, base *BaseIndex, params Params) []sketch {
	out := make([]sketch, len(sketches))
	copy(out, sketches)
	if base == nil || len(base.Parts) == 0 {
		return out
	}

	snapRings := func(rings []geometry.Line) []geometry.Line {
		res := make([]geometry.Line, len(rings))
		for k, r := range rings {
			res[k], _ = snapRing(r, base.edges, 2*params.MaxDstPoint, params.MaxDstPoint)
		}
		return res
	}

	for i := range out {
		out[i].poly.OuterRings = snapRings(out[i].poly.OuterRings)
		out[i].poly.InnerRings = snapRings(out[i].poly.InnerRings)
		out[i].poly = out[i].poly.Round3()
	}
	return out
}

// stage3FollowLine injects base-parcel vertices that lie close to a
// straight sketch edge between that edge's endpoints — spec §4.4 stage
// 3's "follow-line" insertion.
func stage3FollowLine(sketches []sketch, base *BaseIndex, params Params) []sketch {
	out := make([]sketch, len(sketches))
	copy(out, sketches)
	if base == nil || len(base.Parts) == 0 {
		return out
	}

	followRing := func(r geometry.Line) geometry.Line {
		if len(r.Points) == 0 {
			return r
		}
		newPoints := []geometry.Point{r.Points[0]}
		for i := 1; i < len(r.Points); i++ {
			a, b := r.Points[i-1], r.Points[i]
			newPoints = append(newPoints, followLinePoints(base, a, b, params)...)
			newPoints = append(newPoints, b)
		}
		return geometry.Line{Points: dedupAdjacent(newPoints)}
	}

	for i := range out {
		outer := make([]geometry.Line, len(out[i].poly.OuterRings))
		for k, r := range out[i].poly.OuterRings {
			outer[k] = followRing(r)
		}
		out[i].poly.OuterRings = outer
		out[i].poly = out[i].poly.Round3()
	}
	return out
}

func followLinePoints(base *BaseIndex, a, b geometry.Point, params Params) []geometry.Point {
	segRect := geometry.PointRect(a, params.Stage3MaxDstLine).Union(geometry.PointRect(b, params.Stage3MaxDstLine))
	candidates := base.verticesNear(segRect)

	type hit struct {
		t float64
		p geometry.Point
	}
	var hits []hit
	for _, v := range candidates {
		proj := geometry.DistanceToSegment(v, a, b)
		if proj.Distance > params.Stage3MaxDstLine {
			continue
		}
		if v.Equal(a) || v.Equal(b) {
			continue
		}
		abx, aby := b.X-a.X, b.Y-a.Y
		lenSq := abx*abx + aby*aby
		if lenSq == 0 {
			continue
		}
		t := ((v.X-a.X)*abx + (v.Y-a.Y)*aby) / lenSq
		if t <= 0 || t >= 1 {
			continue
		}
		hits = append(hits, hit{t: t, p: v})
	}
	sort.Slice(hits, func(i, j int) bool { return hits[i].t < hits[j].t })

	out := make([]geometry.Point, 0, len(hits))
	var cumDeviation float64
	for _, h := range hits {
		proj := geometry.DistanceToSegment(h.p, a, b)
		cumDeviation += proj.Distance
		if cumDeviation > params.Stage3MaxDeviationFollowLine {
			break
		}
		out = append(out, h.p)
	}
	return out
}

func dedupAdjacent(pts []geometry.Point) []geometry.Point {
	if len(pts) == 0 {
		return pts
	}
	out := make([]geometry.Point, 0, len(pts))
	out = append(out, pts[0])
	for _, p := range pts[1:] {
		if !p.Equal(out[len(out)-1]) {
			out = append(out, p)
		}
	}
	return out
}

// stage4MergeByType joins every sketch sharing a land-use key into one
// polygon per key — spec §4.4 stage 4.
func stage4MergeByType(sketches []sketch) map[string]geometry.Polygon {
	byType := make(map[string][]geometry.Polygon)
	for _, s := range sketches {
		if s.nutzung == "" {
			continue
		}
		byType[s.nutzung] = append(byType[s.nutzung], s.poly)
	}
	out := make(map[string]geometry.Polygon, len(byType))
	for key, polys := range byType {
		pieces := boolops.JoinPolys(polys)
		out[key] = unionAll(pieces)
	}
	return out
}

func unionAll(pieces []geometry.Polygon) geometry.Polygon {
	if len(pieces) == 0 {
		return geometry.Polygon{}
	}
	result := pieces[0]
	for _, p := range pieces[1:] {
		result.OuterRings = append(result.OuterRings, p.OuterRings...)
		result.InnerRings = append(result.InnerRings, p.InnerRings...)
	}
	return result
}

// stage5FoldRelabels folds each NaDefiniert(part_id -> key) into the
// merged-by-type map: the existing sub-parcel geometry, minus overlap
// with any already-merged polygon, gets unioned into that key's
// polygon — spec §4.4 stage 5.
func stage5FoldRelabels(merged map[string]geometry.Polygon, relabels []models.NaDefiniert, base *BaseIndex) map[string]geometry.Polygon {
	if base == nil {
		return merged
	}
	out := make(map[string]geometry.Polygon, len(merged))
	for k, v := range merged {
		out[k] = v
	}

	for _, rel := range relabels {
		part, ok := base.PartByID(rel.PartID)
		if !ok {
			continue
		}

		var overlapping []geometry.Polygon
		rect := part.Poly.Rect()
		for _, mp := range out {
			if mp.Rect().Overlaps(rect) {
				overlapping = append(overlapping, mp)
			}
		}

		remainder := boolops.DifferenceMany(part.Poly, overlapping)
		if remainder.IsZeroArea() {
			continue
		}

		existing, has := out[rel.NewKey]
		if !has {
			out[rel.NewKey] = remainder
			continue
		}
		out[rel.NewKey] = boolops.Union(existing, remainder)
	}
	return out
}

// stage6ResolvePriority subtracts every higher-ranked key's merged
// polygon from each lower-ranked one — spec §4.4 stage 6, "higher-
// ranked land use wins on overlap".
func stage6ResolvePriority(merged map[string]geometry.Polygon, ranking *catalog.Ranking) map[string]geometry.Polygon {
	keys := make([]string, 0, len(merged))
	for k := range merged {
		keys = append(keys, k)
	}

	out := make(map[string]geometry.Polygon, len(merged))
	for k, v := range merged {
		out[k] = v
	}

	for _, key := range keys {
		higher := ranking.HigherRankedKeys(key, keys)
		if len(higher) == 0 {
			continue
		}
		var subtract []geometry.Polygon
		for _, h := range higher {
			subtract = append(subtract, merged[h])
		}
		out[key] = boolops.DifferenceMany(merged[key], subtract)
	}
	return out
}
