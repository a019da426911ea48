// Package pipelineerr implements the core's error taxonomy: sentinel
// kinds wrapped with context via fmt.Errorf("...: %w", ...), the same
// plain-stdlib error style the teacher uses throughout its internal
// packages rather than a third-party error-wrapping library — no
// example repo in the corpus imports one.
package pipelineerr

import (
	"errors"
	"fmt"
)

// The sentinels below cover the error categories of the error-handling
// design: InputShape and UnknownReference are skip-with-warning
// (logged to the status channel, never returned as a hard error);
// Degenerate is not even an error (treated as "no change"); Numeric
// and Adapter abort the whole invocation.
var (
	// ErrInputShape marks a malformed polygon on entry: empty rings,
	// or fewer than three distinct vertices. The caller skips the
	// offending change and continues.
	ErrInputShape = errors.New("input shape")

	// ErrUnknownReference marks a change that refers to an object id,
	// layer, or land-use key absent from the base dataset or catalog.
	// The caller skips the offending change and continues.
	ErrUnknownReference = errors.New("unknown reference")

	// ErrNumeric marks a non-finite coordinate (NaN or +/-Inf)
	// appearing anywhere in an input. This aborts the entire
	// invocation: no partial operation list is ever emitted.
	ErrNumeric = errors.New("non-finite coordinate")

	// ErrAdapter marks a failure in an external adapter: CRS
	// reprojection or catalog loading. Surfaced to the caller; no
	// core state was mutated.
	ErrAdapter = errors.New("adapter failure")

	// ErrUnsupportedGeometry marks input tagged as a non-polygonal
	// AP_PTO attribute-placement object, which this engine does not
	// render. No stage of the pipeline checks for such input or
	// returns this error; it exists for callers that detect it.
	ErrUnsupportedGeometry = errors.New("unsupported geometry kind")
)

// InputShape builds an ErrInputShape error from a reason message,
// identifying the offending change by id.
func InputShape(changeID, reason string) error {
	return fmt.Errorf("change %s: %s: %w", changeID, reason, ErrInputShape)
}

// UnknownReference wraps a missing-reference failure, naming what was
// missing (an object id, layer, or key) and its value.
func UnknownReference(kind, value string) error {
	return fmt.Errorf("%s %q not found: %w", kind, value, ErrUnknownReference)
}

// Numeric wraps a non-finite-coordinate failure, naming where the bad
// value was found.
func Numeric(where string) error {
	return fmt.Errorf("non-finite coordinate in %s: %w", where, ErrNumeric)
}

// Adapter wraps an external-adapter failure (CRS reprojection,
// catalog loading) with its underlying cause.
func Adapter(op string, cause error) error {
	return fmt.Errorf("%s: %v: %w", op, cause, ErrAdapter)
}

// UnsupportedGeometry wraps a rejection of a non-polygonal attribute
// object by object id.
func UnsupportedGeometry(objectID string) error {
	return fmt.Errorf("object %s: %w", objectID, ErrUnsupportedGeometry)
}
