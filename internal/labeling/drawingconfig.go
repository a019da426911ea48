package labeling

import "github.com/rawblock/cadastral-engine/internal/geometry"

// DrawingConfig is the drawing-sheet geometry that parameterizes the
// C7 raster: paper size in millimeters and the ground CRS extent it
// covers, in meters. Grounded on original_source/src/pdf.rs's
// RissConfig / RissExtentReprojected.
type DrawingConfig struct {
	PaperWidthMM  float64
	PaperHeightMM float64
	ExtentMinX    float64
	ExtentMinY    float64
	ExtentMaxX    float64
	ExtentMaxY    float64
}

// Rect returns the ground-space drawing rectangle.
func (c DrawingConfig) Rect() geometry.Rectangle {
	return geometry.Rectangle{MinX: c.ExtentMinX, MinY: c.ExtentMinY, MaxX: c.ExtentMaxX, MaxY: c.ExtentMaxY}
}

// ToleranceMM returns the ground millimeters represented by one raster
// pixel at this sheet's scale — the tolerance Optimize expects.
func (c DrawingConfig) ToleranceMM() float64 {
	if c.PaperWidthMM <= 0 {
		return 0
	}
	groundWidthM := c.ExtentMaxX - c.ExtentMinX
	if groundWidthM <= 0 {
		return 0
	}
	return groundWidthM * 1000 / c.PaperWidthMM
}
