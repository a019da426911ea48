package adapters

import (
	"bytes"
	"strings"
	"testing"
	"time"

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

func TestMemorySinkOrdersAndClears(t *testing.T) {
	s := NewMemorySink()
	s.Emit("stage 1")
	s.Emit("stage 2")
	if got := s.Entries(); len(got) != 2 || got[0] != "stage 1" || got[1] != "stage 2" {
		t.Fatalf("unexpected entries: %v", got)
	}
	s.Clear()
	if got := s.Entries(); len(got) != 0 {
		t.Fatalf("expected empty after Clear, got %v", got)
	}
}

func TestGMLWriterInsertContainsObjectAndLayer(t *testing.T) {
	w := &GMLWriter{Now: func() time.Time { return time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC) }}
	ops := []models.Operation{{Kind: models.OpInsert, ObjID: "obj-1", Layer: "AX_Wald", Key: "WALD", PolyNeu: square(0, 0, 10)}}
	out := w.WriteOperations(ops, nil, &catalog.Catalog{})
	if !strings.Contains(out, "wfs:Insert") || !strings.Contains(out, "AX_Wald") || !strings.Contains(out, "obj-1") {
		t.Fatalf("insert fragment missing expected content: %s", out)
	}
}

func TestGMLWriterDeleteReferencesResourceId(t *testing.T) {
	w := NewGMLWriter()
	ops := []models.Operation{{Kind: models.OpDelete, ObjID: "obj-2", Layer: "AX_Flurstueck"}}
	out := w.WriteOperations(ops, nil, nil)
	if !strings.Contains(out, "wfs:Delete") || !strings.Contains(out, `rid="obj-2"`) {
		t.Fatalf("delete fragment missing resource id: %s", out)
	}
}

func TestCSVWriterWritesHeaderAndRows(t *testing.T) {
	var buf bytes.Buffer
	tuples := []models.SplitTuple{{AltKey: "A", NeuKey: "WALD", ParcelID: "p1", CutPolygon: square(0, 0, 10)}}
	if err := NewCSVWriter().WriteSplitTuples(&buf, tuples); err != nil {
		t.Fatalf("WriteSplitTuples: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected header + 1 row, got %d lines: %q", len(lines), buf.String())
	}
}

func TestDXFWriterProducesValidGroupStructure(t *testing.T) {
	var buf bytes.Buffer
	outlines := []geometry.Polygon{square(0, 0, 10)}
	texts := []models.TextPlacement{{Kuerzel: "A", Text: "A 123", Status: models.TextStatusNew, Pos: geometry.Point{X: 1, Y: 1}}}
	if err := NewDXFWriter().WriteDrawing(&buf, outlines, texts); err != nil {
		t.Fatalf("WriteDrawing: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "LWPOLYLINE") || !strings.Contains(out, "TEXT") || !strings.Contains(out, "EOF") {
		t.Fatalf("dxf output missing expected entities: %s", out)
	}
}

func TestIdentityTransformerReturnsCopy(t *testing.T) {
	in := []geometry.Point{{X: 1, Y: 2}}
	out, err := IdentityTransformer{}.Transform(in)
	if err != nil {
		t.Fatalf("Transform: %v", err)
	}
	if len(out) != 1 || out[0] != in[0] {
		t.Fatalf("expected identical points, got %v", out)
	}
}

func TestProj4TransformerErrorsWithoutFn(t *testing.T) {
	_, err := Proj4Transformer{}.Transform([]geometry.Point{{X: 0, Y: 0}})
	if err == nil {
		t.Fatal("expected error when no transform function is configured")
	}
}
