// Package geometry implements the planar primitives the reconciliation
// pipeline is built on: points, line-strings, polygons with holes, and
// axis-aligned rectangle bounds. Every type here is a plain value — no
// geometry is shared or mutated through a pointer once constructed.
package geometry

import (
	"fmt"
	"math"
)

// PointTolerance is the equality tolerance applied after rounding to
// three decimals, i.e. componentwise equality within 1 mm.
const PointTolerance = 0.0005

// Point is a planar metric coordinate.
type Point struct {
	X, Y float64
}

// Round3 rounds both components to three decimals. Idempotent.
func (p Point) Round3() Point {
	return Point{X: round3(p.X), Y: round3(p.Y)}
}

func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}

// Equal reports componentwise equality within PointTolerance, after
// rounding both points to three decimals.
func (p Point) Equal(o Point) bool {
	a, b := p.Round3(), o.Round3()
	return math.Abs(a.X-b.X) <= PointTolerance && math.Abs(a.Y-b.Y) <= PointTolerance
}

// Dist returns the Euclidean distance between p and o.
func (p Point) Dist(o Point) float64 {
	dx, dy := p.X-o.X, p.Y-o.Y
	return math.Sqrt(dx*dx + dy*dy)
}

// Translate returns p shifted by (dx, dy).
func (p Point) Translate(dx, dy float64) Point {
	return Point{X: p.X + dx, Y: p.Y + dy}
}

// IsFinite reports whether both coordinates are finite (not NaN/Inf).
// Non-finite coordinates are a Numeric error per the core's failure
// taxonomy and must abort the whole invocation, never be silently
// skipped.
func (p Point) IsFinite() bool {
	return !math.IsNaN(p.X) && !math.IsInf(p.X, 0) && !math.IsNaN(p.Y) && !math.IsInf(p.Y, 0)
}

func (p Point) String() string {
	return fmt.Sprintf("(%.3f, %.3f)", p.X, p.Y)
}

// Rectangle is the axis-aligned bounds of some geometry. Always derived,
// never stored authoritatively on a Polygon.
type Rectangle struct {
	MinX, MinY, MaxX, MaxY float64
}

// Grow returns the rectangle expanded by margin on every side.
func (r Rectangle) Grow(margin float64) Rectangle {
	return Rectangle{
		MinX: r.MinX - margin,
		MinY: r.MinY - margin,
		MaxX: r.MaxX + margin,
		MaxY: r.MaxY + margin,
	}
}

// Overlaps reports whether r and o share any area (touching edges count
// as overlapping, matching the teacher's inclusive Rect checks).
func (r Rectangle) Overlaps(o Rectangle) bool {
	return r.MinX <= o.MaxX && r.MaxX >= o.MinX && r.MinY <= o.MaxY && r.MaxY >= o.MinY
}

// Contains reports whether p lies within r (inclusive).
func (r Rectangle) Contains(p Point) bool {
	return p.X >= r.MinX && p.X <= r.MaxX && p.Y >= r.MinY && p.Y <= r.MaxY
}

// Width and Height of the rectangle.
func (r Rectangle) Width() float64  { return r.MaxX - r.MinX }
func (r Rectangle) Height() float64 { return r.MaxY - r.MinY }

// Union returns the smallest rectangle enclosing both r and o.
func (r Rectangle) Union(o Rectangle) Rectangle {
	return Rectangle{
		MinX: math.Min(r.MinX, o.MinX),
		MinY: math.Min(r.MinY, o.MinY),
		MaxX: math.Max(r.MaxX, o.MaxX),
		MaxY: math.Max(r.MaxY, o.MaxY),
	}
}

// PointRect returns the degenerate rectangle around p grown by margin —
// used throughout C4/C5 to build a query window around a single vertex.
func PointRect(p Point, margin float64) Rectangle {
	return Rectangle{MinX: p.X - margin, MinY: p.Y - margin, MaxX: p.X + margin, MaxY: p.Y + margin}
}

// DistToSegment is the result of projecting a point onto a segment.
type DistToSegment struct {
	NearestPoint Point
	Distance     float64
}

// DistanceToSegment projects p onto segment (a, b) and returns the
// closest point on the segment plus the distance to it.
func DistanceToSegment(p, a, b Point) DistToSegment {
	abx, aby := b.X-a.X, b.Y-a.Y
	apx, apy := p.X-a.X, p.Y-a.Y
	lenSq := abx*abx + aby*aby
	var t float64
	if lenSq > 0 {
		t = (apx*abx + apy*aby) / lenSq
	}
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}
	nearest := Point{X: a.X + t*abx, Y: a.Y + t*aby}
	return DistToSegment{NearestPoint: nearest, Distance: p.Dist(nearest)}
}
