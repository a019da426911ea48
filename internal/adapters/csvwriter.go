package adapters

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/rawblock/cadastral-engine/pkg/models"
)

// CSVWriter renders split tuples as rows via stdlib encoding/csv — the
// formatting spec.md §6 scopes as purely mechanical (the land-use
// catalog and storage layers carry the semantics; this is only shape).
type CSVWriter struct{ Delimiter rune }

// NewCSVWriter returns a CSVWriter using a comma delimiter.
func NewCSVWriter() *CSVWriter { return &CSVWriter{Delimiter: ','} }

// WriteSplitTuples writes one row per tuple to w, with a header row.
func (c *CSVWriter) WriteSplitTuples(w io.Writer, tuples []models.SplitTuple) error {
	cw := csv.NewWriter(w)
	if c.Delimiter != 0 {
		cw.Comma = c.Delimiter
	}
	defer cw.Flush()

	if err := cw.Write([]string{"parcel_id", "alt_key", "neu_key", "stays_as_is", "area_m2"}); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for _, t := range tuples {
		row := []string{
			t.ParcelID,
			t.AltKey,
			t.NeuKey,
			fmt.Sprintf("%t", t.StaysAsIs()),
			fmt.Sprintf("%.3f", t.CutPolygon.AreaAbs()),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write csv row for parcel %s: %w", t.ParcelID, err)
		}
	}
	return cw.Error()
}
