// Package labeling implements the raster-based label-placement search
// (C7): given background features, must-avoid polygons and a set of
// candidate label anchors, it finds positions that minimize overlap
// with other features and labels while keeping leader lines short.
// Grounded on original_source/src/optimize.rs (optimize_labels,
// gen_new_points, paint_label_onto_map, test_line_will_intersect).
package labeling

// LabelWidthPerCharM is the per-character contribution to a label's
// bounding-box width, in meters (source value, optimize.rs
// LABEL_WIDTH_PER_CHAR_M).
const LabelWidthPerCharM = 5.0

// LabelWidthPadM is the fixed width padding added to every label
// bounding box regardless of text length.
const LabelWidthPadM = 2.5

// LabelHeightM is the fixed label bounding-box height, in meters
// (source value).
const LabelHeightM = 13.0

const (
	maxIterations    = 20
	maxPointsPerIter = 50
	acceptPenalty    = 5.0

	penaltyLeaderCrossesLabel = 1_000_000.0
	penaltyCrossesLine        = 10_000.0
	penaltyCrossesBackground  = 1_000.0
)
