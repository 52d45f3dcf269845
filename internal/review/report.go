package review

import (
	"fmt"
	"time"

	"github.com/ironsheep/tofms-review/internal/reviewerr"
	"github.com/ironsheep/tofms-review/internal/roi"
)

// FileResult describes one successfully processed input.
type FileResult struct {
	Input  string `json:"input"`
	Output string `json:"output"`
	// Signals is the signal count of a plot input.
	Signals int `json:"signals,omitempty"`
	// ROIs, Pixels and Regions describe an image input.
	ROIs     int           `json:"rois,omitempty"`
	Pixels   int           `json:"pixels,omitempty"`
	Regions  []roi.Region  `json:"regions,omitempty"`
	Duration time.Duration `json:"duration"`
}

// FileFailure records an input that could not be processed.
type FileFailure struct {
	Path string         `json:"path"`
	Kind reviewerr.Kind `json:"kind"`
	Err  error          `json:"-"`
}

func (f FileFailure) Error() string {
	return fmt.Sprintf("%s (%s): %v", f.Path, f.Kind, f.Err)
}

func (f FileFailure) Unwrap() error { return f.Err }

// Report is the outcome of one batch run.
type Report struct {
	Dir       string        `json:"dir"`
	OutputDir string        `json:"output_dir"`
	Processed []FileResult  `json:"processed"`
	Failures  []FileFailure `json:"failures"`
}

func newReport(dir, outDir string) *Report {
	return &Report{
		Dir:       dir,
		OutputDir: outDir,
		Processed: make([]FileResult, 0),
		Failures:  make([]FileFailure, 0),
	}
}

func (r *Report) fail(path string, err error) FileFailure {
	f := FileFailure{Path: path, Kind: reviewerr.KindOf(err), Err: err}
	r.Failures = append(r.Failures, f)
	return f
}

// Total is the number of inputs attempted.
func (r *Report) Total() int { return len(r.Processed) + len(r.Failures) }

// OK reports whether every input was processed.
func (r *Report) OK() bool { return len(r.Failures) == 0 }

// FailuresByKind counts failures per error kind.
func (r *Report) FailuresByKind() map[reviewerr.Kind]int {
	out := make(map[reviewerr.Kind]int)
	for _, f := range r.Failures {
		out[f.Kind]++
	}
	return out
}
