package render

import (
	"image"
	"image/color"

	"github.com/ironsheep/tofms-review/internal/roi"
)

// crosshairArm is the length of each crosshair arm in pixels.
const crosshairArm = 10

// Overlay is a snapshot of an ROI capture for drawing.
type Overlay struct {
	// ROIs are the committed rectangles, drawn in green.
	ROIs []roi.ROI
	// Preview is the rectangle being dragged, drawn in black.
	Preview *roi.ROI
	// Cursor places the crosshair.
	Cursor *roi.Point
}

// OverlayFrom captures the drawable state of sel.
func OverlayFrom(sel *roi.Selector) Overlay {
	ov := Overlay{ROIs: sel.ROIs()}
	if p, ok := sel.Preview(); ok {
		ov.Preview = &p
	}
	if c, ok := sel.Cursor(); ok {
		ov.Cursor = &c
	}
	return ov
}

// Selection draws ov over a copy of base. Committed frames are drawn first,
// then the preview and crosshair. The crosshair leaves its centre pixel
// untouched so the colour under the pointer stays visible.
func Selection(base image.Image, ov Overlay) *image.RGBA {
	dst := roi.DrawFrame(base, ov.ROIs, roi.Green)
	offset := dst.Bounds().Min.Sub(base.Bounds().Min)

	if ov.Preview != nil {
		roi.StrokeRect(dst, *ov.Preview, offset, roi.Black)
	}
	if ov.Cursor != nil {
		crosshair(dst, ov.Cursor.X+offset.X, ov.Cursor.Y+offset.Y, roi.Black)
	}
	return dst
}

func crosshair(dst *image.RGBA, x, y int, col color.Color) {
	cv := &canvas{dst: dst, clip: dst.Bounds()}
	cv.line(x-crosshairArm, y, x-1, y, col)
	cv.line(x+1, y, x+crosshairArm, y, col)
	cv.line(x, y-crosshairArm, x, y-1, col)
	cv.line(x, y+1, x, y+crosshairArm, col)
}
