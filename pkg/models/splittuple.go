package models

import "github.com/rawblock/cadastral-engine/internal/geometry"

// SplitTuple (AenderungenIntersection) is one piece emitted by the
// intersection/split engine: the parcel that held it, its land-use key
// before and after the change, and the cut geometry. AltKey == NeuKey
// means the piece stays as it was.
type SplitTuple struct {
	AltKey    string           `json:"altKey"`
	NeuKey    string           `json:"neuKey"`
	ParcelID  string           `json:"parcelId"`
	CutPolygon geometry.Polygon `json:"cutPolygon"`
}

// StaysAsIs reports whether this tuple represents unchanged land use.
func (s SplitTuple) StaysAsIs() bool {
	return s.AltKey == s.NeuKey
}
