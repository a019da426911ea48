package geometry

import (
	"math"
	"testing"
)

func square(minX, minY, side float64) Line {
	return Line{Points: []Point{
		{X: minX, Y: minY},
		{X: minX + side, Y: minY},
		{X: minX + side, Y: minY + side},
		{X: minX, Y: minY + side},
		{X: minX, Y: minY},
	}}
}

func TestPolygonArea(t *testing.T) {
	tests := []struct {
		name string
		poly Polygon
		want float64
	}{
		{"10x10 CCW square", Polygon{OuterRings: []Line{square(0, 0, 10)}}, 100},
		{"10x10 CW square (negative)", Polygon{OuterRings: []Line{square(0, 0, 10).Reversed()}}, -100},
		{"square with 2x2 hole", Polygon{
			OuterRings: []Line{square(0, 0, 10)},
			InnerRings: []Line{square(4, 4, 2).Reversed()},
		}, 96},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.poly.Area()
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("Area() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCorrectWindingIdempotent(t *testing.T) {
	poly := Polygon{
		OuterRings: []Line{square(0, 0, 10).Reversed()},
		InnerRings: []Line{square(4, 4, 2)},
	}
	once := poly.CorrectWinding()
	twice := once.CorrectWinding()
	if !once.Equal(twice) {
		t.Fatalf("CorrectWinding is not idempotent")
	}
	for _, r := range once.OuterRings {
		if r.SignedArea() < 0 {
			t.Errorf("outer ring not CCW after correction")
		}
	}
	for _, r := range once.InnerRings {
		if r.SignedArea() > 0 {
			t.Errorf("inner ring not CW after correction")
		}
	}
}

func TestRound3Idempotent(t *testing.T) {
	poly := Polygon{OuterRings: []Line{{Points: []Point{
		{X: 0.123456, Y: 0.987654},
		{X: 10.000001, Y: 0},
		{X: 10, Y: 10},
		{X: 0, Y: 10},
		{X: 0.123456, Y: 0.987654},
	}}}}
	once := poly.Round3()
	twice := once.Round3()
	if !once.Equal(twice) {
		t.Fatalf("Round3 is not idempotent")
	}
}

func TestHashInvariantUnderWindingAndRotation(t *testing.T) {
	base := square(0, 0, 10)
	rotated := Line{Points: append(append([]Point{}, base.Points[2:len(base.Points)-1]...), base.Points[:3]...)}

	a := Polygon{OuterRings: []Line{base}}
	b := Polygon{OuterRings: []Line{base.Reversed()}}
	c := Polygon{OuterRings: []Line{rotated}}

	if a.Hash() != b.Hash() {
		t.Errorf("hash not invariant under winding correction")
	}
	if a.Hash() != c.Hash() {
		t.Errorf("hash not invariant under ring rotation")
	}
}

func TestPolygonEqualModuloRotationAndDirection(t *testing.T) {
	a := Polygon{OuterRings: []Line{square(0, 0, 5)}}
	b := Polygon{OuterRings: []Line{square(0, 0, 5).Reversed()}}
	if !a.Equal(b) {
		t.Errorf("expected polygons equal modulo winding direction")
	}
	c := Polygon{OuterRings: []Line{square(100, 100, 5)}}
	if a.Equal(c) {
		t.Errorf("expected distinct polygons to compare unequal")
	}
}

func TestIsZeroArea(t *testing.T) {
	tiny := Polygon{OuterRings: []Line{square(0, 0, 0.0001)}}
	if !tiny.IsZeroArea() {
		t.Errorf("expected a 0.1mm square to be zero-area")
	}
	real := Polygon{OuterRings: []Line{square(0, 0, 1)}}
	if real.IsZeroArea() {
		t.Errorf("expected a 1m square to not be zero-area")
	}
}

func TestGetLabelPosInsideNonConvex(t *testing.T) {
	// an L-shape: union of two squares
	lshape := Line{Points: []Point{
		{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 4}, {X: 4, Y: 4}, {X: 4, Y: 10}, {X: 0, Y: 10}, {X: 0, Y: 0},
	}}
	poly := Polygon{OuterRings: []Line{lshape}}
	pos := poly.GetLabelPos(0.1)
	if !poly.containsPoint(pos) {
		t.Errorf("GetLabelPos returned a point outside the polygon: %v", pos)
	}
}

func TestRectUnion(t *testing.T) {
	poly := Polygon{OuterRings: []Line{square(0, 0, 10), square(20, 20, 5)}}
	r := poly.Rect()
	if r.MinX != 0 || r.MinY != 0 || r.MaxX != 25 || r.MaxY != 25 {
		t.Errorf("unexpected multi-ring rect: %+v", r)
	}
}

func TestRecombineAssignsHolesToContainingOuter(t *testing.T) {
	poly := Polygon{
		OuterRings: []Line{square(0, 0, 10), square(100, 100, 10)},
		InnerRings: []Line{square(102, 102, 2).Reversed()},
	}
	pieces := poly.Recombine()
	if len(pieces) != 2 {
		t.Fatalf("expected 2 pieces, got %d", len(pieces))
	}
	for _, p := range pieces {
		if p.Rect().MinX == 100 && len(p.InnerRings) != 1 {
			t.Errorf("expected hole assigned to the second outer ring")
		}
		if p.Rect().MinX == 0 && len(p.InnerRings) != 0 {
			t.Errorf("expected no hole assigned to the first outer ring")
		}
	}
}
