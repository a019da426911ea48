package geometry

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sort"
)

// ZeroAreaTolerance is the |area| threshold (m²) below which a ring is
// considered to contribute no area — 0.5 mm².
const ZeroAreaTolerance = 0.5e-6

// Polygon is one or more outer rings plus zero or more inner rings
// (holes). More than one outer ring represents a multi-polygon. This is
// the sum type from spec design notes: rings and holes live on a single
// value, never behind an open "geometry" interface, so every boolean-op
// precondition (winding, rounding, snap) can be applied locally without
// a type switch.
type Polygon struct {
	OuterRings []Line
	InnerRings []Line
}

// IsEmpty reports whether the polygon has no rings or all rings are
// zero-area.
func (p Polygon) IsEmpty() bool {
	if len(p.OuterRings) == 0 {
		return true
	}
	for _, r := range p.OuterRings {
		if !isRingZeroArea(r) {
			return false
		}
	}
	return true
}

func isRingZeroArea(r Line) bool {
	a := r.SignedArea()
	if a < 0 {
		a = -a
	}
	return a < ZeroAreaTolerance
}

// IsZeroArea reports whether the polygon's total |area| is below the
// zero-area tolerance (0.5 mm²).
func (p Polygon) IsZeroArea() bool {
	a := p.Area()
	if a < 0 {
		a = -a
	}
	return a < ZeroAreaTolerance
}

// Area returns the signed area: sum of outer ring areas minus sum of
// inner ring areas, all taken with canonical winding (outer CCW
// positive, inner CW negative after CorrectWinding).
func (p Polygon) Area() float64 {
	var sum float64
	for _, r := range p.OuterRings {
		sum += r.SignedArea()
	}
	for _, r := range p.InnerRings {
		sum += r.SignedArea()
	}
	return sum
}

// AreaAbs is the absolute value of Area, used for sort/priority logic
// throughout C4-C6 (join_polys sorts by ascending absolute area).
func (p Polygon) AreaAbs() float64 {
	a := p.Area()
	if a < 0 {
		return -a
	}
	return a
}

// Round3 rounds every point of every ring to three decimals.
func (p Polygon) Round3() Polygon {
	out := Polygon{
		OuterRings: make([]Line, len(p.OuterRings)),
		InnerRings: make([]Line, len(p.InnerRings)),
	}
	for i, r := range p.OuterRings {
		out.OuterRings[i] = r.Round3()
	}
	for i, r := range p.InnerRings {
		out.InnerRings[i] = r.Round3()
	}
	return out
}

// Translate shifts every ring of p by (dx, dy).
func (p Polygon) Translate(dx, dy float64) Polygon {
	out := Polygon{
		OuterRings: make([]Line, len(p.OuterRings)),
		InnerRings: make([]Line, len(p.InnerRings)),
	}
	for i, r := range p.OuterRings {
		out.OuterRings[i] = r.Translate(dx, dy)
	}
	for i, r := range p.InnerRings {
		out.InnerRings[i] = r.Translate(dx, dy)
	}
	return out
}

// CorrectWinding returns p with outer rings forced counter-clockwise
// (positive signed area) and inner rings forced clockwise (negative
// signed area). Idempotent.
func (p Polygon) CorrectWinding() Polygon {
	out := Polygon{
		OuterRings: make([]Line, len(p.OuterRings)),
		InnerRings: make([]Line, len(p.InnerRings)),
	}
	for i, r := range p.OuterRings {
		if r.SignedArea() < 0 {
			r = r.Reversed()
		}
		out.OuterRings[i] = r
	}
	for i, r := range p.InnerRings {
		if r.SignedArea() > 0 {
			r = r.Reversed()
		}
		out.InnerRings[i] = r
	}
	return out
}

// Rect returns the union of the bounds of every outer ring (holes never
// extend a polygon's bounds).
func (p Polygon) Rect() Rectangle {
	if len(p.OuterRings) == 0 {
		return Rectangle{}
	}
	r := p.OuterRings[0].Rect()
	for _, ring := range p.OuterRings[1:] {
		r = r.Union(ring.Rect())
	}
	return r
}

// AllPoints returns every point of every ring, outer then inner.
func (p Polygon) AllPoints() []Point {
	var pts []Point
	for _, r := range p.OuterRings {
		pts = append(pts, r.Points...)
	}
	for _, r := range p.InnerRings {
		pts = append(pts, r.Points...)
	}
	return pts
}

// sortedCoordKey returns a canonical sort key over a ring's rounded
// points, used for ring-rotation-invariant equality and hashing. The
// closing point of a closed ring is left out, so every rotation of the
// same ring yields the same key.
func sortedCoordKey(r Line) []Point {
	src := r.Points
	if r.IsClosed() {
		src = src[:len(src)-1]
	}
	pts := make([]Point, 0, len(src))
	for _, p := range src {
		pts = append(pts, p.Round3())
	}
	sort.Slice(pts, func(i, j int) bool {
		if pts[i].X != pts[j].X {
			return pts[i].X < pts[j].X
		}
		return pts[i].Y < pts[j].Y
	})
	return pts
}

// Equal reports polygon equality modulo ring rotation and direction:
// the rounded, winding-corrected point sets of outer and inner rings
// must match exactly (as multisets).
func (p Polygon) Equal(o Polygon) bool {
	a := p.CorrectWinding().Round3()
	b := o.CorrectWinding().Round3()
	return ringSetEqual(a.OuterRings, b.OuterRings) && ringSetEqual(a.InnerRings, b.InnerRings)
}

func ringSetEqual(a, b []Line) bool {
	if len(a) != len(b) {
		return false
	}
	usedB := make([]bool, len(b))
	for _, ra := range a {
		ka := sortedCoordKey(ra)
		found := false
		for j, rb := range b {
			if usedB[j] {
				continue
			}
			if pointSliceEqual(ka, sortedCoordKey(rb)) {
				usedB[j] = true
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

func pointSliceEqual(a, b []Point) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !a[i].Equal(b[i]) {
			return false
		}
	}
	return true
}

// Hash returns a stable content hash: invariant under winding
// correction, equal for polygons equal under ring rotation. Used as the
// "polygon hash" component of operation fingerprints (spec.md §3) and
// as the dedup key for join_polys.
func (p Polygon) Hash() string {
	canon := p.CorrectWinding().Round3()
	var keys []string
	for _, r := range canon.OuterRings {
		keys = append(keys, "O:"+coordKeyString(sortedCoordKey(r)))
	}
	for _, r := range canon.InnerRings {
		keys = append(keys, "I:"+coordKeyString(sortedCoordKey(r)))
	}
	sort.Strings(keys)
	h := sha256.Sum256([]byte(fmt.Sprint(keys)))
	return hex.EncodeToString(h[:])
}

func coordKeyString(pts []Point) string {
	s := make([]byte, 0, len(pts)*16)
	for _, p := range pts {
		s = append(s, []byte(fmt.Sprintf("%.3f,%.3f;", p.X, p.Y))...)
	}
	return string(s)
}

// Recombine splits a Polygon whose OuterRings describe disjoint shapes
// into one Polygon per outer ring, assigning each inner ring to the
// outer ring that contains it. Used after a boolean op or join that may
// have produced a multi-polygon, wherever downstream code wants to
// treat each piece independently (spec.md §4.3 "recombine_polys").
func (p Polygon) Recombine() []Polygon {
	if len(p.OuterRings) <= 1 {
		return []Polygon{p}
	}
	out := make([]Polygon, len(p.OuterRings))
	for i, r := range p.OuterRings {
		out[i] = Polygon{OuterRings: []Line{r}}
	}
	for _, hole := range p.InnerRings {
		rep := hole.Rect()
		center := Point{X: (rep.MinX + rep.MaxX) / 2, Y: (rep.MinY + rep.MaxY) / 2}
		best := -1
		for i, r := range out {
			if PointInRing(center, r.OuterRings[0]) {
				best = i
				break
			}
		}
		if best == -1 {
			best = 0
		}
		out[best].InnerRings = append(out[best].InnerRings, hole)
	}
	return out
}

// PointInRing reports whether p lies inside the ring using the standard
// ray-casting test. Boundary behavior is not guaranteed; callers that
// need a robust interior point should use GetLabelPos instead.
func PointInRing(p Point, ring Line) bool {
	pts := ring.Points
	n := len(pts)
	if n < 3 {
		return false
	}
	inside := false
	for i, j := 0, n-1; i < n; j, i = i, i+1 {
		pi, pj := pts[i], pts[j]
		if (pi.Y > p.Y) != (pj.Y > p.Y) {
			xIntersect := (pj.X-pi.X)*(p.Y-pi.Y)/(pj.Y-pi.Y) + pi.X
			if p.X < xIntersect {
				inside = !inside
			}
		}
	}
	return inside
}
