package catalog

import (
	"fmt"
	"strconv"
	"strings"
)

// ParcelID is the parsed form of the `LL GGGG FFF ZZZZZ NNNN PP` parcel
// identifier: Land (2 digits), Gemarkung (4), Flur (3), Zaehler (5),
// Nenner (4), Padding (2). Grounded on
// original_source/src/xlsx.rs's FlstIdParsedNumber field widths.
type ParcelID struct {
	Land      int
	Gemarkung int
	Flur      int
	Zaehler   int
	Nenner    int
	Padding   int
}

const parcelIDLength = 2 + 4 + 3 + 5 + 4 + 2

// ParseParcelID parses a parcel identifier string. Parsing is
// tolerant: any sub-field may be zero, and the string is
// right-padded with zeros before splitting if it is shorter than the
// full 20-character width.
func ParseParcelID(s string) (ParcelID, error) {
	s = strings.TrimSpace(s)
	if len(s) > parcelIDLength {
		return ParcelID{}, fmt.Errorf("parcel id %q longer than %d characters", s, parcelIDLength)
	}
	s = s + strings.Repeat("0", parcelIDLength-len(s))

	var id ParcelID
	fields := []struct {
		width int
		dst   *int
	}{
		{2, &id.Land},
		{4, &id.Gemarkung},
		{3, &id.Flur},
		{5, &id.Zaehler},
		{4, &id.Nenner},
		{2, &id.Padding},
	}

	pos := 0
	for _, f := range fields {
		chunk := strings.TrimSpace(s[pos : pos+f.width])
		pos += f.width
		if chunk == "" {
			continue
		}
		n, err := strconv.Atoi(chunk)
		if err != nil {
			return ParcelID{}, fmt.Errorf("parcel id %q: invalid field %q: %w", s, chunk, err)
		}
		*f.dst = n
	}
	return id, nil
}

// Format renders a ParcelID back into the canonical
// `LL GGGG FFF ZZZZZ NNNN PP` form, left-padded with zeros.
func (id ParcelID) Format() string {
	return fmt.Sprintf("%02d%04d%03d%05d%04d%02d",
		id.Land, id.Gemarkung, id.Flur, id.Zaehler, id.Nenner, id.Padding)
}
