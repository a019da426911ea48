package models

import "github.com/rawblock/cadastral-engine/internal/geometry"

// NaDefiniert maps an existing parcel-part id to a new land-use key:
// "this entire existing sub-parcel becomes key K".
type NaDefiniert struct {
	PartID string `json:"partId"`
	NewKey string `json:"newKey"`
}

// NaPolygonNeu maps a synthetic id to a freely-drawn polygon and an
// optional land-use key: "this area becomes key K".
type NaPolygonNeu struct {
	ID      string            `json:"id"`
	Nutzung string            `json:"nutzung,omitempty"`
	Poly    geometry.Polygon  `json:"poly"`
}

// GebaeudeLoeschen is the set of building object ids to delete.
type GebaeudeLoeschen struct {
	ObjectIDs []string `json:"objectIds"`
}

// Aenderungen is the full change aggregate a client submits for
// reconciliation: sub-parcel relabels, freely-drawn new polygons, and
// buildings slated for deletion.
type Aenderungen struct {
	NaDefiniert      []NaDefiniert      `json:"naDefiniert"`
	NaPolygonNeu     []NaPolygonNeu     `json:"naPolygonNeu"`
	GebaeudeLoeschen []GebaeudeLoeschen `json:"gebaeudeLoeschen"`
}

// IsEmpty reports whether the change aggregate carries no changes at
// all — the no-op-safety invariant (spec §8) requires this to drive an
// empty operation list.
func (a Aenderungen) IsEmpty() bool {
	return len(a.NaDefiniert) == 0 && len(a.NaPolygonNeu) == 0 && len(a.GebaeudeLoeschen) == 0
}
