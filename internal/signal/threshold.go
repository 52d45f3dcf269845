package signal

import (
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/ironsheep/tofms-review/internal/reviewerr"
)

// Baseline returns the mode of the amplitude column.
//
// Ties between equally frequent amplitudes resolve to the smallest value,
// independent of sample order.
func Baseline(s *Series) (float64, error) {
	if s == nil || s.Len() == 0 {
		return 0, reviewerr.Empty("series has no samples")
	}

	counts := make(map[float64]int, s.Len())
	for _, p := range s.Samples {
		counts[p.Amplitude]++
	}

	mode := 0.0
	best := 0
	for v, n := range counts {
		if n > best || (n == best && v < mode) {
			mode = v
			best = n
		}
	}
	return mode, nil
}

// MaxAmplitude returns the largest amplitude in the series.
func MaxAmplitude(s *Series) (float64, error) {
	if s == nil || s.Len() == 0 {
		return 0, reviewerr.Empty("series has no samples")
	}
	return floats.Max(s.Amplitudes()), nil
}

// NoiseCeiling returns max - (max - baseline) * ratio.
//
// ratio must lie in (0, 1]. A ratio of 1 puts the ceiling on the baseline;
// ratios approaching 0 push it towards the maximum amplitude. The result is
// non-increasing in ratio for a fixed series and baseline.
func NoiseCeiling(s *Series, baseline, ratio float64) (float64, error) {
	if !(ratio > 0 && ratio <= 1) {
		return 0, reviewerr.Invalid("signal ratio %v outside (0, 1]", ratio)
	}
	max, err := MaxAmplitude(s)
	if err != nil {
		return 0, err
	}
	if ratio == 1 {
		return baseline, nil
	}
	return max - (max-baseline)*ratio, nil
}

// Classify returns the indices of samples whose amplitude strictly exceeds
// ceiling, in ascending order. It allocates a fresh slice on every call.
func Classify(s *Series, ceiling float64) []int {
	if s == nil {
		return []int{}
	}
	idx := make([]int, 0)
	for i, p := range s.Samples {
		if p.Amplitude > ceiling {
			idx = append(idx, i)
		}
	}
	return idx
}

// Signals returns the samples whose amplitude strictly exceeds ceiling.
func Signals(s *Series, ceiling float64) []Sample {
	idx := Classify(s, ceiling)
	out := make([]Sample, len(idx))
	for i, j := range idx {
		out[i] = s.Samples[j]
	}
	return out
}

// ThresholdResult bundles everything derived from a series for one ratio.
type ThresholdResult struct {
	Baseline     float64  `json:"baseline"`
	MaxAmplitude float64  `json:"max_amplitude"`
	Ratio        float64  `json:"ratio"`
	NoiseCeiling float64  `json:"noise_ceiling"`
	Indices      []int    `json:"indices"`
	Signals      []Sample `json:"signals"`
	Count        int      `json:"count"`
}

// Threshold computes baseline, noise ceiling and signal set in one pass.
func Threshold(s *Series, ratio float64) (*ThresholdResult, error) {
	baseline, err := Baseline(s)
	if err != nil {
		return nil, err
	}
	ceiling, err := NoiseCeiling(s, baseline, ratio)
	if err != nil {
		return nil, err
	}
	max, _ := MaxAmplitude(s)

	idx := Classify(s, ceiling)
	sig := make([]Sample, len(idx))
	for i, j := range idx {
		sig[i] = s.Samples[j]
	}

	return &ThresholdResult{
		Baseline:     baseline,
		MaxAmplitude: max,
		Ratio:        ratio,
		NoiseCeiling: ceiling,
		Indices:      idx,
		Signals:      sig,
		Count:        len(idx),
	}, nil
}

// TimeWindow is the visible time range of a plot, inclusive at both ends.
type TimeWindow struct {
	Min float64 `json:"time_min"`
	Max float64 `json:"time_max"`
}

// Contains reports whether t falls inside the window.
func (w TimeWindow) Contains(t float64) bool {
	return t >= w.Min && t <= w.Max
}

// Span returns the window width.
func (w TimeWindow) Span() float64 { return w.Max - w.Min }

// Window returns [anchor - zoom/2, anchor + zoom/2]. It only clips what is
// drawn and never filters the signal set. zoom must be > 0.
func Window(anchor, zoom float64) (TimeWindow, error) {
	if !(zoom > 0) || math.IsInf(zoom, 0) {
		return TimeWindow{}, reviewerr.Invalid("zoom %v must be > 0", zoom)
	}
	if math.IsNaN(anchor) || math.IsInf(anchor, 0) {
		return TimeWindow{}, reviewerr.Invalid("anchor %v is not finite", anchor)
	}
	half := zoom / 2
	return TimeWindow{Min: anchor - half, Max: anchor + half}, nil
}
