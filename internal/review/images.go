package review

import (
	"image/color"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"

	"github.com/ironsheep/tofms-review/internal/config"
	"github.com/ironsheep/tofms-review/internal/imaging"
	"github.com/ironsheep/tofms-review/internal/roi"
)

// ImageSession highlights in-range colours inside the ROIs of every image in
// a directory.
type ImageSession struct {
	Config *config.Config
	ROIs   ROISource
	Log    zerolog.Logger
	// Now stamps the output directory; time.Now when nil.
	Now func() time.Time
}

// Run processes every image file in dir. Non-image files, including ROI
// sidecars, are skipped. The returned error is non-nil only when dir cannot
// be listed or the output directory cannot be created.
func (s *ImageSession) Run(dir string) (*Report, error) {
	rng, err := s.Config.ColorRange()
	if err != nil {
		return nil, err
	}
	hl, err := s.Config.HighlightColor()
	if err != nil {
		return nil, err
	}
	inputs, err := ListInputs(dir, imaging.IsImageFile)
	if err != nil {
		return nil, err
	}
	outDir, err := prepareOutput(s.Config, s.Now)
	if err != nil {
		return nil, err
	}

	rep := newReport(dir, outDir)
	cache := imaging.NewImageCache()
	s.Log.Info().Str("dir", dir).Str("output_dir", outDir).Str("range", rng.String()).
		Int("files", len(inputs)).Msg("image batch started")

	for _, path := range inputs {
		start := time.Now()
		res, err := s.process(cache, path, outDir, rng, hl)
		cache.Evict(path)
		if err != nil {
			f := rep.fail(path, err)
			s.Log.Error().Err(err).Str("file", path).Str("kind", string(f.Kind)).Msg("image failed")
			continue
		}
		res.Duration = time.Since(start)
		rep.Processed = append(rep.Processed, res)
		s.Log.Info().
			Str("file", path).
			Int("rois", res.ROIs).
			Int("pixels", res.Pixels).
			Int("regions", len(res.Regions)).
			Dur("duration", res.Duration).
			Msg("image saved")
	}

	s.Log.Info().Int("processed", len(rep.Processed)).Int("failed", len(rep.Failures)).Msg("image batch finished")
	return rep, nil
}

func (s *ImageSession) process(cache *imaging.ImageCache, path, outDir string, rng roi.ColorRange, hl color.Color) (FileResult, error) {
	img, err := cache.Load(path)
	if err != nil {
		return FileResult{}, err
	}
	src := s.ROIs
	if src == nil {
		src = SidecarROIs{Log: s.Log}
	}
	rois, err := src.ROIs(path, img.Bounds())
	if err != nil {
		return FileResult{}, err
	}
	det, err := Detect(img, rois, rng, hl)
	if err != nil {
		return FileResult{}, err
	}

	out := filepath.Join(outDir, imaging.ImageOutputName(path))
	if err := imaging.Save(det.Image, out); err != nil {
		return FileResult{}, err
	}
	return FileResult{
		Input:   path,
		Output:  out,
		ROIs:    len(rois),
		Pixels:  det.Pixels,
		Regions: det.Regions,
	}, nil
}
