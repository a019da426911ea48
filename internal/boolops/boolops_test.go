package boolops

import (
	"math"
	"testing"

	"github.com/rawblock/cadastral-engine/internal/geometry"
)

func square(minX, minY, side float64) geometry.Polygon {
	return geometry.Polygon{OuterRings: []geometry.Line{{Points: []geometry.Point{
		{X: minX, Y: minY},
		{X: minX + side, Y: minY},
		{X: minX + side, Y: minY + side},
		{X: minX, Y: minY + side},
		{X: minX, Y: minY},
	}}}}
}

func approxEqual(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}

func TestUnionOfOverlappingSquares(t *testing.T) {
	a := square(0, 0, 10)
	b := square(5, 0, 10)
	got := Union(a, b)
	if !approxEqual(got.AreaAbs(), 150, 1e-6) {
		t.Fatalf("Union area = %v, want 150", got.AreaAbs())
	}
}

func TestUnionWithZeroAreaOperandReturnsOther(t *testing.T) {
	a := square(0, 0, 10)
	zero := geometry.Polygon{}
	got := Union(a, zero)
	if !got.Equal(a) {
		t.Fatalf("Union with empty operand should return the other operand unchanged")
	}
}

func TestIntersectionOfDisjointSquaresIsEmpty(t *testing.T) {
	a := square(0, 0, 10)
	b := square(100, 100, 10)
	got := Intersection(a, b)
	if !got.IsZeroArea() {
		t.Fatalf("expected empty intersection of disjoint squares, got area %v", got.AreaAbs())
	}
}

func TestIntersectionOfOverlappingSquares(t *testing.T) {
	a := square(0, 0, 10)
	b := square(5, 5, 10)
	got := Intersection(a, b)
	if !approxEqual(got.AreaAbs(), 25, 1e-6) {
		t.Fatalf("Intersection area = %v, want 25", got.AreaAbs())
	}
}

func TestDifferenceRemovesOverlap(t *testing.T) {
	a := square(0, 0, 10)
	b := square(5, 0, 10)
	got := Difference(a, b)
	if !approxEqual(got.AreaAbs(), 50, 1e-6) {
		t.Fatalf("Difference area = %v, want 50", got.AreaAbs())
	}
}

func TestDifferenceOfEqualPolygonsIsEmpty(t *testing.T) {
	a := square(0, 0, 10)
	b := square(0, 0, 10)
	got := Difference(a, b)
	if !got.IsZeroArea() {
		t.Fatalf("expected A-A to be empty, got area %v", got.AreaAbs())
	}
}

func TestDifferenceManyNoSubtrahendsReturnsInputUnchanged(t *testing.T) {
	a := square(0, 0, 10)
	got := DifferenceMany(a, nil)
	if !got.Equal(a) {
		t.Fatalf("DifferenceMany with no subtrahends should return the input")
	}
}

func TestDifferenceManySubtractsEachInTurn(t *testing.T) {
	a := square(0, 0, 10)
	s1 := square(0, 0, 4)
	s2 := square(6, 6, 4)
	got := DifferenceMany(a, []geometry.Polygon{s1, s2})
	want := 100.0 - 16.0 - 16.0
	if !approxEqual(got.AreaAbs(), want, 1e-6) {
		t.Fatalf("DifferenceMany area = %v, want %v", got.AreaAbs(), want)
	}
}

func TestJoinPolysMergesTouchingSquares(t *testing.T) {
	a := square(0, 0, 10)
	b := square(10, 0, 10)
	out := JoinPolys([]geometry.Polygon{a, b})
	var total float64
	for _, p := range out {
		total += p.AreaAbs()
	}
	if !approxEqual(total, 200, 1e-6) {
		t.Fatalf("JoinPolys total area = %v, want 200", total)
	}
}

func TestJoinPolysDedupsIdenticalPolygons(t *testing.T) {
	a := square(0, 0, 10)
	out := JoinPolys([]geometry.Polygon{a, a, a})
	if len(out) != 1 {
		t.Fatalf("expected a single deduped piece, got %d", len(out))
	}
	if !approxEqual(out[0].AreaAbs(), 100, 1e-6) {
		t.Fatalf("JoinPolys area = %v, want 100", out[0].AreaAbs())
	}
}

func TestJoinPolysEmptyInput(t *testing.T) {
	out := JoinPolys(nil)
	if out != nil {
		t.Fatalf("expected nil for empty input, got %v", out)
	}
}

func TestSnapSecondOntoFirstClosesHairlineGap(t *testing.T) {
	a := square(0, 0, 10)
	// b's left edge sits 1cm away from a's right edge: below the 5cm
	// snap tolerance, so b's left vertices move onto a's right edge and
	// the union closes the sliver gap: 100m² + 10.01m x 10m = 200.1m².
	b := square(10.01, 0, 10)
	got := Union(a, b)
	if !approxEqual(got.AreaAbs(), 200.1, 1e-3) {
		t.Fatalf("Union area after snap = %v, want ~200.1", got.AreaAbs())
	}
}
