package pipeline

import (
	"math"
	"math/rand"
	"testing"

	"github.com/rawblock/cadastral-engine/internal/geometry"
	"github.com/rawblock/cadastral-engine/internal/labeling"
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

func TestRunPartialOverlapProducesOperationsAndPlacements(t *testing.T) {
	base := []geometry.TaggedPolygon{
		{Poly: square(0, 0, 10), Attributes: map[string]string{geometry.AttrObjectID: "parcel-1", geometry.AttrKey: "A", geometry.AttrLayer: "AX_Flurstueck"}},
	}
	changes := models.Aenderungen{
		NaPolygonNeu: []models.NaPolygonNeu{{ID: "s1", Nutzung: "WALD", Poly: square(5, 0, 10)}},
	}

	result := Run(Input{
		Base:    base,
		Changes: changes,
		Drawing: labeling.DrawingConfig{PaperWidthMM: 420, PaperHeightMM: 297, ExtentMinX: -20, ExtentMinY: -20, ExtentMaxX: 40, ExtentMaxY: 40},
		Rand:    rand.New(rand.NewSource(1)),
	})

	if result.Err != nil {
		t.Fatalf("unexpected error: %v", result.Err)
	}
	if len(result.Operations) == 0 {
		t.Fatal("expected at least one operation from the partial overlap")
	}
	if len(result.SplitTuples) == 0 {
		t.Fatal("expected split tuples")
	}
	if len(result.Diagnostics) == 0 {
		t.Fatal("expected non-empty diagnostics log")
	}
}

func TestRunRejectsNonFiniteCoordinates(t *testing.T) {
	base := []geometry.TaggedPolygon{
		{Poly: geometry.Polygon{OuterRings: []geometry.Line{{Points: []geometry.Point{
			{X: math.NaN(), Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1}, {X: 0, Y: 0},
		}}}}, Attributes: map[string]string{geometry.AttrObjectID: "p1"}},
	}
	result := Run(Input{Base: base})
	if result.Err == nil {
		t.Fatal("expected an error for non-finite coordinates")
	}
	if len(result.Operations) != 0 {
		t.Fatal("expected no partial operation list on a Numeric abort")
	}
}

func TestRunNoChangesIsNoOp(t *testing.T) {
	base := []geometry.TaggedPolygon{
		{Poly: square(0, 0, 10), Attributes: map[string]string{geometry.AttrObjectID: "p1", geometry.AttrKey: "A"}},
	}
	result := Run(Input{Base: base})
	if result.Err != nil {
		t.Fatalf("unexpected error: %v", result.Err)
	}
	if len(result.Operations) != 0 {
		t.Fatalf("expected no operations for an empty change set, got %d", len(result.Operations))
	}
}
