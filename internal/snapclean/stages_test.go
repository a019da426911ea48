package snapclean

import (
	"math"
	"testing"

	"github.com/rawblock/cadastral-engine/internal/catalog"
	"github.com/rawblock/cadastral-engine/internal/geometry"
	"github.com/rawblock/cadastral-engine/pkg/models"
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

func approxEqual(a, b, tol float64) bool { return math.Abs(a-b) <= tol }

func TestCleanNoChangesYieldsEmptyMap(t *testing.T) {
	base := NewBaseIndex(nil)
	got := Clean(models.Aenderungen{}, base, catalog.DefaultRanking(), DefaultParams(), nil)
	if len(got) != 0 {
		t.Fatalf("expected empty result for no-op input, got %v", got)
	}
}

func TestStage4MergesSameKeySketches(t *testing.T) {
	sketches := []sketch{
		{id: "a", nutzung: "A", poly: square(0, 0, 10)},
		{id: "b", nutzung: "A", poly: square(10, 0, 10)},
	}
	merged := stage4MergeByType(sketches)
	if len(merged) != 1 {
		t.Fatalf("expected a single merged key, got %d", len(merged))
	}
	if !approxEqual(merged["A"].AreaAbs(), 200, 1e-6) {
		t.Fatalf("merged area = %v, want 200", merged["A"].AreaAbs())
	}
}

func TestStage6HigherRankWinsOnOverlap(t *testing.T) {
	merged := map[string]geometry.Polygon{
		"A":    square(0, 0, 10),
		"WALD": square(5, 0, 10),
	}
	out := stage6ResolvePriority(merged, catalog.DefaultRanking())
	if !approxEqual(out["WALD"].AreaAbs(), 100, 1e-6) {
		t.Fatalf("WALD area = %v, want 100 (unaffected, higher rank)", out["WALD"].AreaAbs())
	}
	if !approxEqual(out["A"].AreaAbs(), 50, 1e-6) {
		t.Fatalf("A area = %v, want 50 (overlap ceded to WALD)", out["A"].AreaAbs())
	}
}

func TestStage5FoldsRelabelIntoMergedKey(t *testing.T) {
	part := geometry.TaggedPolygon{
		Poly: square(0, 0, 10),
		Attributes: map[string]string{
			geometry.AttrObjectID: "part-1",
		},
	}
	base := NewBaseIndex([]geometry.TaggedPolygon{part})
	merged := map[string]geometry.Polygon{}
	relabels := []models.NaDefiniert{{PartID: "part-1", NewKey: "WALD"}}

	out := stage5FoldRelabels(merged, relabels, base)
	if !approxEqual(out["WALD"].AreaAbs(), 100, 1e-6) {
		t.Fatalf("WALD area = %v, want 100", out["WALD"].AreaAbs())
	}
}
