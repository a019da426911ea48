package models

import "github.com/rawblock/cadastral-engine/internal/geometry"

// TextStatus is the lifecycle label attached to a TextPlacement.
type TextStatus string

const (
	TextStatusOld       TextStatus = "old"
	TextStatusNew       TextStatus = "new"
	TextStatusStaysAsIs TextStatus = "staysAsIs"
)

// TextPlacement is a label candidate (or, after C7, a final placement):
// the land-use key it names, its lifecycle status, the rendered text,
// the anchor point, and the area of the polygon it labels — area
// drives processing order in the optimizer (small shapes first).
type TextPlacement struct {
	Kuerzel string         `json:"kuerzel"`
	Status  TextStatus     `json:"status"`
	Text    string         `json:"text"`
	Pos     geometry.Point `json:"pos"`
	Area    float64        `json:"area"`
}
