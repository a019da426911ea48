package geometry

import "math"

// GetLabelPos returns an interior point robust to non-convex shapes: the
// pole of inaccessibility, found by an iterative inscribed-circle grid
// search refined to the given tolerance (metres). This mirrors the
// original tool's get_label_pos, used to seed C7's initial label
// anchor.
//
// The search starts on a coarse grid covering the polygon's rect, keeps
// the grid cell whose center has the largest distance to any ring
// boundary (i.e. the largest inscribed circle), and recurses into that
// cell at half the step size until the step falls below tolerance.
func (p Polygon) GetLabelPos(tolerance float64) Point {
	rect := p.Rect()
	if rect.Width() <= 0 || rect.Height() <= 0 {
		return Point{}
	}
	if tolerance <= 0 {
		tolerance = 0.5
	}

	cellSize := math.Max(rect.Width(), rect.Height()) / 20
	if cellSize <= 0 {
		cellSize = tolerance
	}

	centerX, centerY := (rect.MinX+rect.MaxX)/2, (rect.MinY+rect.MaxY)/2
	bestPoint := Point{X: centerX, Y: centerY}
	bestDist := 0.0
	if p.containsPoint(bestPoint) {
		bestDist = p.distanceToBoundary(bestPoint)
	}

	for cellSize > tolerance {
		improved := false
		for gy := rect.MinY; gy <= rect.MaxY; gy += cellSize {
			for gx := rect.MinX; gx <= rect.MaxX; gx += cellSize {
				cand := Point{X: gx, Y: gy}
				if !p.containsPoint(cand) {
					continue
				}
				d := p.distanceToBoundary(cand)
				if d > bestDist {
					bestDist = d
					bestPoint = cand
					improved = true
				}
			}
		}
		if improved {
			rect = Rectangle{
				MinX: bestPoint.X - cellSize,
				MaxX: bestPoint.X + cellSize,
				MinY: bestPoint.Y - cellSize,
				MaxY: bestPoint.Y + cellSize,
			}
		}
		cellSize /= 2
	}

	if bestDist <= 0 {
		// No grid sample fell inside the polygon (very thin sliver):
		// fall back to the centroid of the first outer ring's vertices.
		return centroidOf(p.OuterRings[0])
	}

	return bestPoint
}

func (p Polygon) containsPoint(pt Point) bool {
	inOuter := false
	for _, r := range p.OuterRings {
		if PointInRing(pt, r) {
			inOuter = true
			break
		}
	}
	if !inOuter {
		return false
	}
	for _, h := range p.InnerRings {
		if PointInRing(pt, h) {
			return false
		}
	}
	return true
}

func (p Polygon) distanceToBoundary(pt Point) float64 {
	min := math.MaxFloat64
	for _, r := range p.OuterRings {
		for _, seg := range r.Segments() {
			d := DistanceToSegment(pt, seg[0], seg[1]).Distance
			if d < min {
				min = d
			}
		}
	}
	for _, r := range p.InnerRings {
		for _, seg := range r.Segments() {
			d := DistanceToSegment(pt, seg[0], seg[1]).Distance
			if d < min {
				min = d
			}
		}
	}
	return min
}

func centroidOf(r Line) Point {
	if len(r.Points) == 0 {
		return Point{}
	}
	var sx, sy float64
	for _, p := range r.Points {
		sx += p.X
		sy += p.Y
	}
	n := float64(len(r.Points))
	return Point{X: sx / n, Y: sy / n}
}
