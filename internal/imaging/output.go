package imaging

import (
	"image"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/disintegration/imaging"

	"github.com/ironsheep/tofms-review/internal/reviewerr"
)

// TimestampLayout formats run start times in output directory names.
const TimestampLayout = "20060102_150405"

// OutputDir returns <root>/<prefix>_<timestamp> for a run started at t.
func OutputDir(root, prefix string, t time.Time) string {
	return filepath.Join(root, prefix+"_"+t.Format(TimestampLayout))
}

// EnsureDir creates dir and any missing parents. An existing directory is
// not an error.
func EnsureDir(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return reviewerr.IO("mkdir", dir, err)
	}
	return nil
}

// PlotOutputName maps a series file to its snapshot name: "run.data" ->
// "run.png". Files without an extension gain ".png".
func PlotOutputName(input string) string {
	base := filepath.Base(input)
	return strings.TrimSuffix(base, filepath.Ext(base)) + ".png"
}

// ImageOutputName keeps the input's base name and extension so the output
// is written in the same format as the source.
func ImageOutputName(input string) string {
	return filepath.Base(input)
}

// Save encodes img to path, choosing the format from the extension. Existing
// files are overwritten.
func Save(img image.Image, path string) error {
	if err := imaging.Save(img, path); err != nil {
		return reviewerr.IO("write", path, err)
	}
	return nil
}
