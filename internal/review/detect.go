package review

import (
	"image"
	"image/color"

	"github.com/ironsheep/tofms-review/internal/roi"
)

// Detection is the result of filtering an image by colour inside ROIs.
type Detection struct {
	// Mask holds the pixels inside an ROI whose colour is in range.
	Mask *roi.Mask
	// Image is a copy of the source with Mask highlighted and the ROI
	// frames drawn in green.
	Image   *image.RGBA
	Pixels  int
	Regions []roi.Region
}

// Detect intersects the colour mask of img with the rasterized ROIs and
// highlights the matching pixels in hl. img is not modified.
func Detect(img image.Image, rois []roi.ROI, rng roi.ColorRange, hl color.Color) (*Detection, error) {
	cm, err := roi.ColorMask(img, rng)
	if err != nil {
		return nil, err
	}
	m, err := roi.Intersect(cm, roi.Rasterize(rois, img.Bounds()))
	if err != nil {
		return nil, err
	}
	out := roi.DrawFrame(roi.Highlight(img, m, hl), rois, roi.Green)
	return &Detection{
		Mask:    m,
		Image:   out,
		Pixels:  m.Count(),
		Regions: roi.Regions(m, 1),
	}, nil
}
