package adapters

import (
	"fmt"

	"github.com/rawblock/cadastral-engine/internal/geometry"
	"github.com/rawblock/cadastral-engine/internal/pipelineerr"
)

// CRSTransformer reprojects points between coordinate reference
// systems. Reprojection is external-adapter territory (spec.md §6);
// the core never reprojects on its own.
type CRSTransformer interface {
	Transform(points []geometry.Point) ([]geometry.Point, error)
}

// IdentityTransformer is a CRSTransformer that returns its input
// unchanged — the default when source and target CRS coincide, or
// when no real reprojection library is configured.
type IdentityTransformer struct{}

func (IdentityTransformer) Transform(points []geometry.Point) ([]geometry.Point, error) {
	out := make([]geometry.Point, len(points))
	copy(out, points)
	return out, nil
}

// Proj4Transformer is the contract a real PROJ-backed implementation
// satisfies: no CRS reprojection library appears in the example
// corpus (see DESIGN.md), so this engine ships only the interface and
// the identity default; a deployment that needs real reprojection
// wires in a concrete implementation (e.g. a cgo PROJ binding) behind
// this type without the core changing.
type Proj4Transformer struct {
	SourceEPSG int
	TargetEPSG int
	Fn         func(points []geometry.Point) ([]geometry.Point, error)
}

func (p Proj4Transformer) Transform(points []geometry.Point) ([]geometry.Point, error) {
	if p.Fn == nil {
		return nil, pipelineerr.Adapter("proj4 transform", errNoFn)
	}
	return p.Fn(points)
}

var errNoFn = fmt.Errorf("no transform function configured")
