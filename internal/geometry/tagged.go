package geometry

// TaggedPolygon is a polygon plus an attribute map, the unit the base
// cadastral dataset is made of. Required attributes for base polygons
// include an object identifier ("objectID"), a layer name ("ebene" —
// AX_Ebene) and optionally a land-use key ("kuerzel").
type TaggedPolygon struct {
	Poly       Polygon
	Attributes map[string]string
}

const (
	AttrObjectID = "objectID"
	AttrLayer    = "ebene"
	AttrKey      = "kuerzel"
)

// ObjectID returns the tagged polygon's object identifier, or "" if
// unset.
func (t TaggedPolygon) ObjectID() string { return t.Attributes[AttrObjectID] }

// Layer returns the tagged polygon's AX_Ebene layer name, or "" if
// unset.
func (t TaggedPolygon) Layer() string { return t.Attributes[AttrLayer] }

// Key returns the tagged polygon's land-use key (Kürzel), or "" if
// unset — a base polygon need not carry one (e.g. a building has no
// land-use key).
func (t TaggedPolygon) Key() string { return t.Attributes[AttrKey] }

// WithAttribute returns a copy of t with attribute k set to v.
func (t TaggedPolygon) WithAttribute(k, v string) TaggedPolygon {
	attrs := make(map[string]string, len(t.Attributes)+1)
	for ak, av := range t.Attributes {
		attrs[ak] = av
	}
	attrs[k] = v
	return TaggedPolygon{Poly: t.Poly, Attributes: attrs}
}
