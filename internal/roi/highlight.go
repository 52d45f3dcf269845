package roi

import (
	"image"
	"image/color"

	"github.com/anthonynsimon/bild/clone"
)

// Colours used when painting masks and frames.
var (
	Yellow = color.RGBA{R: 255, G: 255, A: 255}
	Green  = color.RGBA{G: 255, A: 255}
	Black  = color.RGBA{A: 255}
)

// Highlight returns a copy of img with every masked pixel painted c.
// Unmasked pixels keep their original colour and img is left untouched.
func Highlight(img image.Image, m *Mask, c color.Color) *image.RGBA {
	return paint(img, m, func(dst *image.RGBA, x, y int, set bool) {
		if set {
			dst.Set(x, y, c)
		}
	})
}

// Apply returns a copy of img keeping only masked pixels; everything else is
// black. This is the "filtered result" view of a colour mask.
func Apply(img image.Image, m *Mask) *image.RGBA {
	return paint(img, m, func(dst *image.RGBA, x, y int, set bool) {
		if !set {
			dst.Set(x, y, Black)
		}
	})
}

// paint clones img and visits every pixel with its mask bit. The clone may be
// rebased to a zero origin, so mask lookups are translated back.
func paint(img image.Image, m *Mask, fn func(dst *image.RGBA, x, y int, set bool)) *image.RGBA {
	dst := clone.AsRGBA(img)
	db := dst.Bounds()
	offset := img.Bounds().Min.Sub(db.Min)

	for y := db.Min.Y; y < db.Max.Y; y++ {
		for x := db.Min.X; x < db.Max.X; x++ {
			fn(dst, x, y, m.At(x+offset.X, y+offset.Y))
		}
	}
	return dst
}

// DrawFrame returns a copy of img with the outline of each ROI drawn 1px
// wide in c. Degenerate ROIs draw as a point or line.
func DrawFrame(img image.Image, rois []ROI, c color.Color) *image.RGBA {
	dst := clone.AsRGBA(img)
	offset := dst.Bounds().Min.Sub(img.Bounds().Min)
	for _, r := range rois {
		StrokeRect(dst, Normalize(r), offset, c)
	}
	return dst
}

// StrokeRect draws the inclusive outline of r onto dst, shifted by offset.
// Pixels outside dst are skipped.
func StrokeRect(dst *image.RGBA, r ROI, offset image.Point, c color.Color) {
	x1, y1 := r.Min.X+offset.X, r.Min.Y+offset.Y
	x2, y2 := r.Max.X+offset.X, r.Max.Y+offset.Y
	b := dst.Bounds()

	plot := func(x, y int) {
		if (image.Point{X: x, Y: y}).In(b) {
			dst.Set(x, y, c)
		}
	}
	for x := x1; x <= x2; x++ {
		plot(x, y1)
		plot(x, y2)
	}
	for y := y1; y <= y2; y++ {
		plot(x1, y)
		plot(x2, y)
	}
}
