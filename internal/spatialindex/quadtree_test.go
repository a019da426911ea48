package spatialindex

import (
	"sort"
	"testing"

	"github.com/rawblock/cadastral-engine/internal/geometry"
)

func rect(minX, minY, maxX, maxY float64) geometry.Rectangle {
	return geometry.Rectangle{MinX: minX, MinY: minY, MaxX: maxX, MaxY: maxY}
}

func TestQuadtreeOverlapQuery(t *testing.T) {
	items := []struct {
		ID   ID
		Rect geometry.Rectangle
	}{
		{1, rect(0, 0, 10, 10)},
		{2, rect(20, 20, 30, 30)},
		{3, rect(5, 5, 15, 15)},
		{4, rect(100, 100, 110, 110)},
	}

	qt := New(items)

	got := qt.IDsOverlapping(rect(4, 4, 6, 6))
	sort.Slice(got, func(i, j int) bool { return got[i] < got[j] })

	want := []ID{1, 3}
	if len(got) != len(want) {
		t.Fatalf("IDsOverlapping() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("IDsOverlapping() = %v, want %v", got, want)
		}
	}
}

func TestQuadtreeEmpty(t *testing.T) {
	qt := New(nil)
	got := qt.IDsOverlapping(rect(0, 0, 1, 1))
	if len(got) != 0 {
		t.Fatalf("expected no results from an empty quadtree, got %v", got)
	}
}

func TestQuadtreeManyItemsSubdivides(t *testing.T) {
	var items []struct {
		ID   ID
		Rect geometry.Rectangle
	}
	for i := 0; i < 5000; i++ {
		x := float64(i % 100)
		y := float64(i / 100)
		items = append(items, struct {
			ID   ID
			Rect geometry.Rectangle
		}{ID(i), rect(x, y, x+0.5, y+0.5)})
	}

	qt := New(items)
	got := qt.IDsOverlapping(rect(0, 0, 1, 1))
	if len(got) == 0 {
		t.Fatalf("expected at least one overlapping item near the origin")
	}
	for _, id := range got {
		it := items[id]
		if !it.Rect.Overlaps(rect(0, 0, 1, 1)) {
			t.Errorf("returned id %d whose rect does not actually overlap the query", id)
		}
	}
}
