// Package snapclean implements the six-stage snap/clean pipeline (C4)
// that turns raw user sketches into a normalized change set ready for
// splitting against the base cadastre. Grounded on
// original_source/src/ui.rs clean_stage1..clean_stage6.
package snapclean

// Params holds the tolerances every stage uses, defaulted to the
// source's hard-coded values but overridable by configuration.
type Params struct {
	MaxDstPoint float64 // MAX_DST_POINT

	Stage1MaxDstPoint float64
	Stage1MaxDstLine  float64
	Stage2MaxDstPoint float64
	Stage2MaxDstLine  float64

	Stage3MaxDstLine             float64
	Stage3MaxDstLine2            float64
	Stage3MaxDeviationFollowLine float64
}

// DefaultParams reproduces the source's constants.
func DefaultParams() Params {
	return Params{
		MaxDstPoint:                  2.0,
		Stage1MaxDstPoint:            1.0,
		Stage1MaxDstLine:             1.0,
		Stage2MaxDstPoint:            1.0,
		Stage2MaxDstLine:             1.0,
		Stage3MaxDstLine:             1.0,
		Stage3MaxDstLine2:            0.2,
		Stage3MaxDeviationFollowLine: 5.0,
	}
}
