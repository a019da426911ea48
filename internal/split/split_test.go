package split

import (
	"math"
	"testing"

	"github.com/rawblock/cadastral-engine/internal/geometry"
	"github.com/rawblock/cadastral-engine/internal/snapclean"
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

func TestSplitPartialOverlapEmitsPieceAndRemainder(t *testing.T) {
	parcel := geometry.TaggedPolygon{
		Poly:       square(0, 0, 10),
		Attributes: map[string]string{geometry.AttrObjectID: "parcel-1", geometry.AttrKey: "A"},
	}
	base := snapclean.NewBaseIndex([]geometry.TaggedPolygon{parcel})

	cleaned := map[string]geometry.Polygon{"WALD": square(5, 0, 10)}
	tuples := Split(cleaned, base)

	var pieceArea, remainderArea float64
	for _, tup := range tuples {
		if tup.ParcelID != "parcel-1" {
			t.Fatalf("unexpected parcel id %q", tup.ParcelID)
		}
		if tup.StaysAsIs() {
			remainderArea += tup.CutPolygon.AreaAbs()
		} else {
			pieceArea += tup.CutPolygon.AreaAbs()
		}
	}
	if !approxEqual(pieceArea, 50, 1e-6) {
		t.Errorf("piece area = %v, want 50", pieceArea)
	}
	if !approxEqual(remainderArea, 50, 1e-6) {
		t.Errorf("remainder area = %v, want 50", remainderArea)
	}
	if !approxEqual(pieceArea+remainderArea, 100, 1e-6) {
		t.Errorf("area not conserved: total = %v, want 100", pieceArea+remainderArea)
	}
}

func TestSplitNoOverlapLeavesFullRemainder(t *testing.T) {
	parcel := geometry.TaggedPolygon{
		Poly:       square(0, 0, 10),
		Attributes: map[string]string{geometry.AttrObjectID: "parcel-1", geometry.AttrKey: "A"},
	}
	base := snapclean.NewBaseIndex([]geometry.TaggedPolygon{parcel})

	cleaned := map[string]geometry.Polygon{"WALD": square(100, 100, 10)}
	tuples := Split(cleaned, base)

	if len(tuples) != 1 {
		t.Fatalf("expected a single stays-as-is tuple, got %d", len(tuples))
	}
	if !tuples[0].StaysAsIs() {
		t.Errorf("expected remainder to stay as is")
	}
	if !approxEqual(tuples[0].CutPolygon.AreaAbs(), 100, 1e-6) {
		t.Errorf("remainder area = %v, want 100", tuples[0].CutPolygon.AreaAbs())
	}
}
