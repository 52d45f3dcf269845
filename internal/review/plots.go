package review

import (
	"path/filepath"
	"time"

	"github.com/rs/zerolog"

	"github.com/ironsheep/tofms-review/internal/config"
	"github.com/ironsheep/tofms-review/internal/imaging"
	"github.com/ironsheep/tofms-review/internal/render"
	"github.com/ironsheep/tofms-review/internal/signal"
)

// PlotSession renders a snapshot of every series file in a directory using
// the configured initial sliders and view.
type PlotSession struct {
	Config *config.Config
	Log    zerolog.Logger
	// Now stamps the output directory; time.Now when nil.
	Now func() time.Time
}

// Run processes every file in dir. The returned error is non-nil only when
// dir cannot be listed or the output directory cannot be created.
func (s *PlotSession) Run(dir string) (*Report, error) {
	inputs, err := ListInputs(dir, nil)
	if err != nil {
		return nil, err
	}
	outDir, err := prepareOutput(s.Config, s.Now)
	if err != nil {
		return nil, err
	}

	rep := newReport(dir, outDir)
	s.Log.Info().Str("dir", dir).Str("output_dir", outDir).Int("files", len(inputs)).Msg("plot batch started")

	for _, path := range inputs {
		start := time.Now()
		res, err := s.process(path, outDir)
		if err != nil {
			f := rep.fail(path, err)
			s.Log.Error().Err(err).Str("file", path).Str("kind", string(f.Kind)).Msg("plot failed")
			continue
		}
		res.Duration = time.Since(start)
		rep.Processed = append(rep.Processed, res)
		s.Log.Info().
			Str("file", path).
			Int("signals", res.Signals).
			Dur("duration", res.Duration).
			Msg("plot saved")
	}

	s.Log.Info().Int("processed", len(rep.Processed)).Int("failed", len(rep.Failures)).Msg("plot batch finished")
	return rep, nil
}

func (s *PlotSession) process(path, outDir string) (FileResult, error) {
	series, err := signal.Load(path)
	if err != nil {
		return FileResult{}, err
	}
	st, err := signal.NewSession(series, s.Config.Signal.MinZoom, s.Config.Signal.Ratio)
	if err != nil {
		return FileResult{}, err
	}
	if st, err = st.WithView(s.Config.View()); err != nil {
		return FileResult{}, err
	}
	th, err := signal.Threshold(series, st.Ratio)
	if err != nil {
		return FileResult{}, err
	}

	opts := s.Config.PlotOptions()
	opts.Title = filepath.Base(path)
	img, err := render.Plot(series, st, s.Config.Display(), opts)
	if err != nil {
		return FileResult{}, err
	}

	out := filepath.Join(outDir, imaging.PlotOutputName(path))
	if err := imaging.Save(img, out); err != nil {
		return FileResult{}, err
	}
	return FileResult{Input: path, Output: out, Signals: th.Count}, nil
}

func prepareOutput(cfg *config.Config, now func() time.Time) (string, error) {
	if now == nil {
		now = time.Now
	}
	dir := imaging.OutputDir(cfg.Output.Root, cfg.Output.Prefix, now())
	if err := imaging.EnsureDir(dir); err != nil {
		return "", err
	}
	return dir, nil
}
