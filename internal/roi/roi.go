package roi

import (
	"fmt"
	"image"
)

// Point is a pixel coordinate.
type Point struct {
	X int `json:"x" yaml:"x"`
	Y int `json:"y" yaml:"y"`
}

// ROI is an axis-aligned rectangle given by two corners. Raw ROIs may have
// their corners in any order; Normalize puts Min at the top-left.
type ROI struct {
	Min Point `json:"min"`
	Max Point `json:"max"`
}

// FromPoints builds a raw ROI from the press and release points of a drag.
func FromPoints(start, end Point) ROI {
	return ROI{Min: start, Max: end}
}

// Normalize returns r with Min.X <= Max.X and Min.Y <= Max.Y.
func Normalize(r ROI) ROI {
	if r.Min.X > r.Max.X {
		r.Min.X, r.Max.X = r.Max.X, r.Min.X
	}
	if r.Min.Y > r.Max.Y {
		r.Min.Y, r.Max.Y = r.Max.Y, r.Min.Y
	}
	return r
}

// NormalizeAll returns a normalized copy of rois.
func NormalizeAll(rois []ROI) []ROI {
	out := make([]ROI, len(rois))
	for i, r := range rois {
		out[i] = Normalize(r)
	}
	return out
}

// Rect returns the normalized ROI as an image.Rectangle.
func (r ROI) Rect() image.Rectangle {
	n := Normalize(r)
	return image.Rect(n.Min.X, n.Min.Y, n.Max.X, n.Max.Y)
}

// Width returns the horizontal extent of the normalized ROI.
func (r ROI) Width() int {
	n := Normalize(r)
	return n.Max.X - n.Min.X
}

// Height returns the vertical extent of the normalized ROI.
func (r ROI) Height() int {
	n := Normalize(r)
	return n.Max.Y - n.Min.Y
}

// Empty reports whether the ROI covers no pixels.
func (r ROI) Empty() bool {
	return r.Width() == 0 || r.Height() == 0
}

func (r ROI) String() string {
	return fmt.Sprintf("(%d,%d)-(%d,%d)", r.Min.X, r.Min.Y, r.Max.X, r.Max.Y)
}

// Rasterize returns a mask over bounds with every pixel inside any ROI set.
//
// Overlapping ROIs fuse into a single union. ROIs are clipped to bounds, and
// an empty list yields an all-zero mask.
func Rasterize(rois []ROI, bounds image.Rectangle) *Mask {
	m := NewMask(bounds)
	for _, r := range rois {
		span := r.Rect().Intersect(bounds)
		for y := span.Min.Y; y < span.Max.Y; y++ {
			for x := span.Min.X; x < span.Max.X; x++ {
				m.Set(x, y, true)
			}
		}
	}
	return m
}
