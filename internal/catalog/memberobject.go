package catalog

// MemberObject is the full attribute bag of a base cadastral object,
// carried alongside its TaggedPolygon so adapters can reconstruct a
// faithful wfs:Replace/wfs:Delete GML fragment without the core
// needing to know XML shapes at all. Grounded on
// original_source/src/david.rs's MemberObject.
type MemberObject struct {
	ObjectID               string
	MemberType             string // XML element name, e.g. "AX_Flurstueck"
	Beginnt                string // lifetime-begin timestamp, ISO 8601
	ExtraAttribute         map[string]string
	DientZurDarstellungVon []string
	IstBestandteilVon      []string
	Hat                    []string
	IstTeilVon             []string
}
