package opderive

import (
	"testing"

	"github.com/rawblock/cadastral-engine/internal/catalog"
	"github.com/rawblock/cadastral-engine/internal/geometry"
	"github.com/rawblock/cadastral-engine/internal/snapclean"
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

func opKinds(ops []models.Operation) map[models.OpKind]int {
	out := make(map[models.OpKind]int)
	for _, op := range ops {
		out[op.Kind]++
	}
	return out
}

func TestDerivePureInsert(t *testing.T) {
	base := snapclean.NewBaseIndex([]geometry.TaggedPolygon{
		{Poly: square(0, 0, 10), Attributes: map[string]string{geometry.AttrObjectID: "p1", geometry.AttrKey: "A"}},
	})
	cleaned := map[string]geometry.Polygon{"WALD": square(20, 20, 5)}

	ops := Derive(cleaned, base, nil)
	counts := opKinds(ops)
	if counts[models.OpDelete] != 0 || counts[models.OpReplace] != 0 {
		t.Fatalf("expected no Delete/Replace, got %v", counts)
	}
	if counts[models.OpInsert] != 1 {
		t.Fatalf("expected exactly one Insert, got %v", counts)
	}
}

func TestDeriveEqualPolygonDeletesAndInserts(t *testing.T) {
	base := snapclean.NewBaseIndex([]geometry.TaggedPolygon{
		{Poly: square(0, 0, 10), Attributes: map[string]string{geometry.AttrObjectID: "p1", geometry.AttrKey: "A"}},
	})
	cleaned := map[string]geometry.Polygon{"WALD": square(0, 0, 10)}

	ops := Derive(cleaned, base, nil)
	counts := opKinds(ops)
	if counts[models.OpDelete] != 1 {
		t.Fatalf("expected one Delete, got %v", counts)
	}
	if counts[models.OpInsert] != 1 {
		t.Fatalf("expected one Insert, got %v", counts)
	}
}

func TestDerivePartialOverlapReplaces(t *testing.T) {
	base := snapclean.NewBaseIndex([]geometry.TaggedPolygon{
		{Poly: square(0, 0, 10), Attributes: map[string]string{geometry.AttrObjectID: "p1", geometry.AttrKey: "A"}},
	})
	cleaned := map[string]geometry.Polygon{"WALD": square(5, 0, 10)}

	ops := Derive(cleaned, base, nil)
	counts := opKinds(ops)
	if counts[models.OpReplace] != 1 {
		t.Fatalf("expected one Replace, got %v", counts)
	}
	if counts[models.OpInsert] != 1 {
		t.Fatalf("expected one Insert for the subtracted piece, got %v", counts)
	}
}

func TestDeriveNoChangesIsNoOp(t *testing.T) {
	base := snapclean.NewBaseIndex([]geometry.TaggedPolygon{
		{Poly: square(0, 0, 10), Attributes: map[string]string{geometry.AttrObjectID: "p1", geometry.AttrKey: "A"}},
	})
	cat := catalog.Catalog{}
	ops := Derive(map[string]geometry.Polygon{}, base, &cat)
	if len(ops) != 0 {
		t.Fatalf("expected no operations for an empty change set, got %d", len(ops))
	}
}

func TestDeriveTouchingSameKeyMergeAttachesAsDeleteInsert(t *testing.T) {
	base := snapclean.NewBaseIndex([]geometry.TaggedPolygon{
		{Poly: square(0, 0, 10), Attributes: map[string]string{geometry.AttrObjectID: "p1", geometry.AttrKey: "WALD"}},
	})
	// The sketch alone, touching the base polygon from outside along
	// x=10 — stage4MergeByType never unions a sketch with a base
	// polygon, so this is exactly what reaches Derive (spec.md §8
	// scenario 5).
	cleaned := map[string]geometry.Polygon{"WALD": square(10, 0, 10)}

	ops := Derive(cleaned, base, nil)
	counts := opKinds(ops)
	if counts[models.OpDelete] != 1 || counts[models.OpInsert] != 1 || counts[models.OpReplace] != 0 {
		t.Fatalf("expected Delete(base) + Insert(union) under a fresh identity, got %v", counts)
	}
	for _, op := range ops {
		if op.Kind == models.OpInsert && !approxEqual(op.PolyNeu.AreaAbs(), 200, 1e-6) {
			t.Errorf("insert area = %v, want 200", op.PolyNeu.AreaAbs())
		}
	}
}

func approxEqual(a, b, tol float64) bool {
	diff := a - b
	if diff < 0 {
		diff = -diff
	}
	return diff <= tol
}
