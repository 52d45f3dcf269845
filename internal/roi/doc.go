// Package roi implements region-of-interest selection and colour masking for
// raster images.
//
// The pipeline marks the pixels that are both inside a user-drawn rectangle
// and within a colour range, then paints them for review:
//
//	roiMask := roi.Rasterize(rois, img.Bounds())
//	colorMask, err := roi.ColorMask(img, roi.DefaultBGRRange)
//	hits, err := roi.Intersect(roiMask, colorMask)
//	out := roi.Highlight(img, hits, roi.Yellow)
//
// # Coordinates
//
// Points use the image convention: (0,0) is the top-left pixel, X grows to the
// right and Y grows downward. A normalized ROI covers the half-open span
// [Min.X, Max.X) x [Min.Y, Max.Y), clipped to the image, so a rectangle whose
// corners coincide selects no pixels.
//
// # Colour Spaces
//
// Ranges are expressed per channel in either BGR or HSV order, with 8-bit
// bounds on the OpenCV scale: B, G, R in 0-255; H in 0-179, S and V in 0-255.
// Bounds are inclusive at both ends.
//
// # Immutability
//
// Every function returns new masks and images. Source images are never
// written to, so a committed frame cannot be corrupted by a preview in
// progress.
package roi
