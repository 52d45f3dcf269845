package signal

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/ironsheep/tofms-review/internal/reviewerr"
)

// Sample is one (time, amplitude) reading. Time is in microseconds and
// amplitude in millivolts for the instruments this tool was written for.
type Sample struct {
	Time      float64 `json:"time"`
	Amplitude float64 `json:"amplitude"`
}

// Series is an immutable, time-ordered list of samples from one input file.
type Series struct {
	// Name is the base filename the series was read from.
	Name    string
	Samples []Sample
}

// Len returns the number of samples.
func (s *Series) Len() int { return len(s.Samples) }

// Times returns a copy of the time column.
func (s *Series) Times() []float64 {
	out := make([]float64, len(s.Samples))
	for i, p := range s.Samples {
		out[i] = p.Time
	}
	return out
}

// Amplitudes returns a copy of the amplitude column.
func (s *Series) Amplitudes() []float64 {
	out := make([]float64, len(s.Samples))
	for i, p := range s.Samples {
		out[i] = p.Amplitude
	}
	return out
}

// Parse reads a two-column series from r.
//
// Each non-blank line must hold exactly two numeric fields separated by
// whitespace: "<time> <amplitude>". There is no header. Non-finite values
// are rejected so the mode and ceiling stay well-defined.
//
// Returns an error wrapping reviewerr.ErrEmptyInput if r holds no samples.
func Parse(r io.Reader, name string) (*Series, error) {
	scanner := bufio.NewScanner(r)
	buf := make([]byte, 0, 64*1024)
	scanner.Buffer(buf, 1024*1024)

	samples := make([]Sample, 0, 1024)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}
		if len(fields) != 2 {
			return nil, fmt.Errorf("%s line %d: expected 2 columns, got %d", name, lineNo, len(fields))
		}

		t, err := parseFinite(fields[0])
		if err != nil {
			return nil, fmt.Errorf("%s line %d: time: %w", name, lineNo, err)
		}
		a, err := parseFinite(fields[1])
		if err != nil {
			return nil, fmt.Errorf("%s line %d: amplitude: %w", name, lineNo, err)
		}
		samples = append(samples, Sample{Time: t, Amplitude: a})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("%s: scanner error: %w", name, err)
	}

	if len(samples) == 0 {
		return nil, reviewerr.Empty(fmt.Sprintf("series %s has no samples", name))
	}

	return &Series{Name: name, Samples: samples}, nil
}

func parseFinite(field string) (float64, error) {
	v, err := strconv.ParseFloat(field, 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("non-finite value %q", field)
	}
	return v, nil
}

// Load opens and parses the series file at path. Open and read failures are
// reported as reviewerr.ErrIOFailure carrying the path.
func Load(path string) (*Series, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, reviewerr.IO("read", path, err)
	}
	defer f.Close()

	s, err := Parse(f, filepath.Base(path))
	if err != nil {
		return nil, err
	}
	return s, nil
}

// Summary describes a series for display and logging.
type Summary struct {
	Name          string  `json:"name"`
	Samples       int     `json:"samples"`
	TimeMin       float64 `json:"time_min"`
	TimeMax       float64 `json:"time_max"`
	AmplitudeMin  float64 `json:"amplitude_min"`
	AmplitudeMax  float64 `json:"amplitude_max"`
	AmplitudeMean float64 `json:"amplitude_mean"`
	Baseline      float64 `json:"baseline"`
}

// Stats computes the summary of a non-empty series.
func Stats(s *Series) (*Summary, error) {
	if s == nil || s.Len() == 0 {
		return nil, reviewerr.Empty("series has no samples")
	}

	times := s.Times()
	amps := s.Amplitudes()

	baseline, err := Baseline(s)
	if err != nil {
		return nil, err
	}

	return &Summary{
		Name:          s.Name,
		Samples:       s.Len(),
		TimeMin:       floats.Min(times),
		TimeMax:       floats.Max(times),
		AmplitudeMin:  floats.Min(amps),
		AmplitudeMax:  floats.Max(amps),
		AmplitudeMean: stat.Mean(amps, nil),
		Baseline:      baseline,
	}, nil
}
