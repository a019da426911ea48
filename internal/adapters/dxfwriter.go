package adapters

import (
	"fmt"
	"io"

	"github.com/rawblock/cadastral-engine/internal/geometry"
	"github.com/rawblock/cadastral-engine/pkg/models"
)

// DXFWriter renders text placements and split-piece outlines as a
// minimal ASCII DXF ENTITIES section (TEXT + LWPOLYLINE group codes),
// grounded on original_source/src/dxf.rs's export_aenderungen_dxf
// (TEXT entities carrying kuerzel/pos/status, styled by text_style_name
// old/new/stayasis). No DXF-writing library appears anywhere in the
// example corpus, so this is one of the few adapters built directly
// on stdlib group-code formatting rather than a third-party dxf
// package (see DESIGN.md).
type DXFWriter struct{}

// NewDXFWriter returns a DXFWriter.
func NewDXFWriter() *DXFWriter { return &DXFWriter{} }

// WriteDrawing writes a complete minimal DXF document: an ENTITIES
// section containing one LWPOLYLINE per outline ring and one TEXT per
// placement.
func (d *DXFWriter) WriteDrawing(w io.Writer, outlines []geometry.Polygon, texts []models.TextPlacement) error {
	if err := writeGroup(w, 0, "SECTION"); err != nil {
		return err
	}
	if err := writeGroup(w, 2, "ENTITIES"); err != nil {
		return err
	}
	for _, poly := range outlines {
		for _, ring := range poly.OuterRings {
			if err := writePolyline(w, ring); err != nil {
				return fmt.Errorf("write polyline: %w", err)
			}
		}
		for _, ring := range poly.InnerRings {
			if err := writePolyline(w, ring); err != nil {
				return fmt.Errorf("write polyline: %w", err)
			}
		}
	}
	for _, t := range texts {
		if err := writeText(w, t); err != nil {
			return fmt.Errorf("write text %q: %w", t.Kuerzel, err)
		}
	}
	if err := writeGroup(w, 0, "ENDSEC"); err != nil {
		return err
	}
	return writeGroup(w, 0, "EOF")
}

func writePolyline(w io.Writer, ring geometry.Line) error {
	if err := writeGroup(w, 0, "LWPOLYLINE"); err != nil {
		return err
	}
	if err := writeGroup(w, 8, "0"); err != nil {
		return err
	}
	if err := writeIntGroup(w, 90, len(ring.Points)); err != nil {
		return err
	}
	for _, p := range ring.Points {
		if err := writeFloatGroup(w, 10, p.X); err != nil {
			return err
		}
		if err := writeFloatGroup(w, 20, p.Y); err != nil {
			return err
		}
	}
	return nil
}

func writeText(w io.Writer, t models.TextPlacement) error {
	if err := writeGroup(w, 0, "TEXT"); err != nil {
		return err
	}
	if err := writeGroup(w, 8, textStyleLayer(t.Status)); err != nil {
		return err
	}
	if err := writeFloatGroup(w, 10, t.Pos.X); err != nil {
		return err
	}
	if err := writeFloatGroup(w, 20, t.Pos.Y); err != nil {
		return err
	}
	if err := writeFloatGroup(w, 40, 10.0); err != nil {
		return err
	}
	return writeGroup(w, 1, t.Text)
}

func textStyleLayer(status models.TextStatus) string {
	switch status {
	case models.TextStatusOld:
		return "old"
	case models.TextStatusNew:
		return "new"
	default:
		return "stayasis"
	}
}

func writeGroup(w io.Writer, code int, value string) error {
	_, err := fmt.Fprintf(w, "%3d\r\n%s\r\n", code, value)
	return err
}

func writeIntGroup(w io.Writer, code, value int) error {
	return writeGroup(w, code, fmt.Sprintf("%d", value))
}

func writeFloatGroup(w io.Writer, code int, value float64) error {
	return writeGroup(w, code, fmt.Sprintf("%.3f", value))
}
