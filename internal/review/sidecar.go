package review

import (
	"errors"
	"image"
	"io/fs"
	"os"

	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"

	"github.com/ironsheep/tofms-review/internal/reviewerr"
	"github.com/ironsheep/tofms-review/internal/roi"
)

// SidecarSuffix is appended to an image path to find its ROI file.
const SidecarSuffix = ".roi.yaml"

// ROISource supplies the ROIs drawn over an image.
type ROISource interface {
	ROIs(imagePath string, bounds image.Rectangle) ([]roi.ROI, error)
}

// StaticROIs applies the same rectangles to every image.
type StaticROIs []roi.ROI

func (s StaticROIs) ROIs(string, image.Rectangle) ([]roi.ROI, error) {
	return roi.NormalizeAll(s), nil
}

// SidecarROIs reads rectangles from <image>.roi.yaml next to each image.
// The file is a list of corner pairs in any order:
//
//	- [[10, 20], [110, 80]]
//	- [[300, 40], [250, 10]]
//
// A missing file yields no ROIs and a warning.
type SidecarROIs struct {
	Log zerolog.Logger
}

func (s SidecarROIs) ROIs(imagePath string, _ image.Rectangle) ([]roi.ROI, error) {
	path := imagePath + SidecarSuffix
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		s.Log.Warn().Str("file", imagePath).Str("sidecar", path).Msg("no ROI sidecar, using no ROIs")
		return nil, nil
	}
	if err != nil {
		return nil, reviewerr.IO("read", path, err)
	}
	return ParseSidecar(data)
}

// ParseSidecar decodes a sidecar document into normalized ROIs.
func ParseSidecar(data []byte) ([]roi.ROI, error) {
	var raw [][][]int
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, reviewerr.Invalid("roi sidecar: %v", err)
	}

	out := make([]roi.ROI, 0, len(raw))
	for i, pair := range raw {
		if len(pair) != 2 || len(pair[0]) != 2 || len(pair[1]) != 2 {
			return nil, reviewerr.Invalid("roi sidecar entry %d: want [[x1, y1], [x2, y2]]", i)
		}
		a := roi.Point{X: pair[0][0], Y: pair[0][1]}
		b := roi.Point{X: pair[1][0], Y: pair[1][1]}
		out = append(out, roi.Normalize(roi.FromPoints(a, b)))
	}
	return out, nil
}
