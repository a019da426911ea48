package boolops

import "github.com/peterstace/simplefeatures/geom"

// applySFOp dispatches to the simplefeatures set-operation matching
// kind. Isolated here, alongside convert.go, so the exact
// simplefeatures call sites stay in one place.
func applySFOp(a, b geom.Geometry, kind opKind) (geom.Geometry, error) {
	switch kind {
	case opUnion:
		return geom.Union(a, b)
	case opIntersection:
		return geom.Intersection(a, b)
	case opDifference:
		return geom.Difference(a, b)
	default:
		return geom.Geometry{}, nil
	}
}
