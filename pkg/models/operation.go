package models

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sort"

	"github.com/rawblock/cadastral-engine/internal/geometry"
)

// OpKind is the kind of a reconciliation Operation.
type OpKind string

const (
	OpDelete  OpKind = "delete"
	OpReplace OpKind = "replace"
	OpInsert  OpKind = "insert"
)

// Operation is one atomic change to the cadastral dataset: deleting a
// base object, replacing its geometry, or inserting a brand new
// object. Every Operation carries a stable Fingerprint used to sort and
// deduplicate the final operation list (spec §4.6 Phase E).
type Operation struct {
	Kind    OpKind           `json:"kind"`
	ObjID   string           `json:"objId,omitempty"`
	Layer   string           `json:"layer"`
	Key     string           `json:"key"`
	PolyAlt geometry.Polygon `json:"polyAlt,omitempty"`
	PolyNeu geometry.Polygon `json:"polyNeu,omitempty"`
}

// Fingerprint returns a deterministic string combining the operation
// kind, identifiers, and a stable hash of the geometry involved — the
// canonical sort/dedup key for operation lists.
func (o Operation) Fingerprint() string {
	var polyHash string
	switch o.Kind {
	case OpDelete:
		polyHash = o.PolyAlt.Hash()
	case OpInsert:
		polyHash = o.PolyNeu.Hash()
	case OpReplace:
		polyHash = o.PolyAlt.Hash() + ":" + o.PolyNeu.Hash()
	}
	raw := fmt.Sprintf("%s|%s|%s|%s|%s", o.Kind, o.ObjID, o.Layer, o.Key, polyHash)
	sum := sha256.Sum256([]byte(raw))
	return string(o.Kind) + "-" + hex.EncodeToString(sum[:])
}

// DeduplicateOperations sorts a slice of Operations by fingerprint and
// drops exact duplicates — spec §4.6 Phase E.
func DeduplicateOperations(ops []Operation) []Operation {
	type keyed struct {
		fp string
		op Operation
	}
	keyedOps := make([]keyed, len(ops))
	for i, op := range ops {
		keyedOps[i] = keyed{fp: op.Fingerprint(), op: op}
	}
	sort.Slice(keyedOps, func(i, j int) bool { return keyedOps[i].fp < keyedOps[j].fp })

	out := make([]Operation, 0, len(keyedOps))
	var lastFp string
	for i, k := range keyedOps {
		if i > 0 && k.fp == lastFp {
			continue
		}
		out = append(out, k.op)
		lastFp = k.fp
	}
	return out
}
