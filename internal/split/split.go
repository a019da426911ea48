// Package split implements the intersection/split engine (C5): it cuts
// each cleaned per-key polygon against the overlapping base parcel
// sub-parts, emitting (old_key, new_key, parcel_id, piece) tuples plus
// "stays as is" remainders. Grounded on spec.md §4.5, whose algorithm
// has no direct original_source analogue — the source folds splitting
// into the same per-parcel subtract_from_poly calls used throughout
// ui.rs; this package isolates it as its own stage, per the pipeline
// shape described in SPEC_FULL.md.
package split

import (
	"github.com/rawblock/cadastral-engine/internal/boolops"
	"github.com/rawblock/cadastral-engine/internal/geometry"
	"github.com/rawblock/cadastral-engine/internal/snapclean"
	"github.com/rawblock/cadastral-engine/pkg/models"
)

// Split runs the C5 algorithm over every (neuKey, bigPolygon) in
// cleaned, against the base parcel index, and returns the full set of
// split tuples including "stays as is" remainders.
func Split(cleaned map[string]geometry.Polygon, base *snapclean.BaseIndex) []models.SplitTuple {
	var out []models.SplitTuple
	remainders := make(map[string]geometry.Polygon) // parcel_id -> running remainder
	seenParts := make(map[string]geometry.TaggedPolygon)

	for neuKey, bigPolygon := range cleaned {
		if bigPolygon.IsZeroArea() {
			continue
		}
		candidates := base.PartsOverlapping(bigPolygon.Rect())
		for _, part := range candidates {
			parcelID := part.ObjectID()
			if _, ok := remainders[parcelID]; !ok {
				remainders[parcelID] = part.Poly
				seenParts[parcelID] = part
			}

			piece := boolops.Intersection(part.Poly, bigPolygon)
			if piece.IsZeroArea() {
				continue
			}

			out = append(out, models.SplitTuple{
				AltKey:     part.Key(),
				NeuKey:     neuKey,
				ParcelID:   parcelID,
				CutPolygon: piece.Round3(),
			})

			remainders[parcelID] = boolops.Difference(remainders[parcelID], piece)
		}
	}

	for parcelID, remainder := range remainders {
		if remainder.IsZeroArea() {
			continue
		}
		part := seenParts[parcelID]
		out = append(out, models.SplitTuple{
			AltKey:     part.Key(),
			NeuKey:     part.Key(),
			ParcelID:   parcelID,
			CutPolygon: remainder.Round3(),
		})
	}

	return out
}
