package labeling

import (
	"math/rand"
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

func TestOptimizePlacesLabelNearAnchorWhenUnobstructed(t *testing.T) {
	owner := square(0, 0, 100)
	rect := geometry.Rectangle{MinX: -50, MinY: -50, MaxX: 150, MaxY: 150}
	candidates := []Candidate{{
		Kuerzel:   "A",
		Text:      "A 123",
		Anchor:    geometry.Point{X: 50, Y: 50},
		OwnerPoly: owner,
	}}

	out := Optimize(rect, []geometry.Polygon{owner}, nil, candidates, 50, rand.New(rand.NewSource(7)))
	if len(out) != 1 {
		t.Fatalf("expected one placement, got %d", len(out))
	}
	if d := distance(out[0].Pos, candidates[0].Anchor); d > 40 {
		t.Errorf("placement drifted %v meters from anchor, want small", d)
	}
}

func TestOptimizeDegenerateRectReturnsAnchorsUnchanged(t *testing.T) {
	candidates := []Candidate{{Kuerzel: "A", Text: "A", Anchor: geometry.Point{X: 1, Y: 1}, OwnerPoly: square(0, 0, 1)}}
	out := Optimize(geometry.Rectangle{}, nil, nil, candidates, 50, nil)
	if len(out) != 1 || out[0].Pos != candidates[0].Anchor {
		t.Fatalf("expected fallback to anchor position, got %+v", out)
	}
}

func TestOptimizeAvoidsOverlappingSecondLabelOntoFirst(t *testing.T) {
	a := square(0, 0, 10)
	b := square(20, 0, 10)
	rect := geometry.Rectangle{MinX: -20, MinY: -20, MaxX: 60, MaxY: 60}
	candidates := []Candidate{
		{Kuerzel: "A", Text: "A", Anchor: geometry.Point{X: 5, Y: 5}, OwnerPoly: a},
		{Kuerzel: "B", Text: "B", Anchor: geometry.Point{X: 25, Y: 5}, OwnerPoly: b},
	}
	out := Optimize(rect, []geometry.Polygon{a, b}, nil, candidates, 100, rand.New(rand.NewSource(3)))
	if len(out) != 2 {
		t.Fatalf("expected two placements, got %d", len(out))
	}
	bbA := labelBBox(out[0].Pos, out[0].Text)
	bbB := labelBBox(out[1].Pos, out[1].Text)
	if bbA.Overlaps(bbB) {
		t.Errorf("second label's bbox overlaps the first: %+v vs %+v", bbA, bbB)
	}
}
