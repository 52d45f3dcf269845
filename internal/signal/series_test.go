package signal

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ironsheep/tofms-review/internal/reviewerr"
)

func TestParse(t *testing.T) {
	input := "0.000 5.0\n0.001 5.0\n\n0.002   10.5\n"

	s, err := Parse(strings.NewReader(input), "run1.data")
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	if s.Name != "run1.data" {
		t.Errorf("Name: got %s, want run1.data", s.Name)
	}
	if s.Len() != 3 {
		t.Fatalf("Len: got %d, want 3", s.Len())
	}
	if s.Samples[2].Time != 0.002 || s.Samples[2].Amplitude != 10.5 {
		t.Errorf("Samples[2]: got %+v, want {0.002 10.5}", s.Samples[2])
	}
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		wantEmpty bool
	}{
		{"empty", "", true},
		{"only blank lines", "\n  \n\t\n", true},
		{"one column", "0.1\n", false},
		{"three columns", "0.1 2 3\n", false},
		{"not a number", "0.1 abc\n", false},
		{"nan amplitude", "0.1 NaN\n", false},
		{"inf time", "Inf 1\n", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(strings.NewReader(tt.input), "bad.data")
			if err == nil {
				t.Fatal("Parse should fail")
			}
			if got := errors.Is(err, reviewerr.ErrEmptyInput); got != tt.wantEmpty {
				t.Errorf("ErrEmptyInput: got %v, want %v (err=%v)", got, tt.wantEmpty, err)
			}
		})
	}
}

func TestParse_ErrorNamesLine(t *testing.T) {
	_, err := Parse(strings.NewReader("0 1\n1 2\n2 x\n"), "f.data")
	if err == nil {
		t.Fatal("Parse should fail")
	}
	if !strings.Contains(err.Error(), "line 3") {
		t.Errorf("error should name line 3, got: %v", err)
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sample.data")
	if err := os.WriteFile(path, []byte("0 1\n1 3\n"), 0o644); err != nil {
		t.Fatalf("failed to write fixture: %v", err)
	}

	s, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if s.Name != "sample.data" {
		t.Errorf("Name: got %s, want sample.data", s.Name)
	}
}

func TestLoad_Missing(t *testing.T) {
	_, err := Load("/nonexistent/missing.data")
	if !errors.Is(err, reviewerr.ErrIOFailure) {
		t.Fatalf("expected ErrIOFailure, got %v", err)
	}
	var pe *reviewerr.PathError
	if !errors.As(err, &pe) || pe.Path != "/nonexistent/missing.data" {
		t.Errorf("error should carry the offending path, got %v", err)
	}
}

func TestStats(t *testing.T) {
	s := series(t, [][2]float64{{0, 5}, {1, 5}, {2, 10}, {4, 0}})

	sum, err := Stats(s)
	if err != nil {
		t.Fatalf("Stats failed: %v", err)
	}

	if sum.Samples != 4 {
		t.Errorf("Samples: got %d, want 4", sum.Samples)
	}
	if sum.TimeMin != 0 || sum.TimeMax != 4 {
		t.Errorf("time range: got [%v, %v], want [0, 4]", sum.TimeMin, sum.TimeMax)
	}
	if sum.AmplitudeMin != 0 || sum.AmplitudeMax != 10 {
		t.Errorf("amplitude range: got [%v, %v], want [0, 10]", sum.AmplitudeMin, sum.AmplitudeMax)
	}
	if sum.AmplitudeMean != 5 {
		t.Errorf("AmplitudeMean: got %v, want 5", sum.AmplitudeMean)
	}
	if sum.Baseline != 5 {
		t.Errorf("Baseline: got %v, want 5", sum.Baseline)
	}
}

func TestStats_Empty(t *testing.T) {
	if _, err := Stats(&Series{}); !errors.Is(err, reviewerr.ErrEmptyInput) {
		t.Errorf("expected ErrEmptyInput, got %v", err)
	}
}

// series builds a Series from (time, amplitude) pairs.
func series(t *testing.T, pairs [][2]float64) *Series {
	t.Helper()
	s := &Series{Name: "test.data", Samples: make([]Sample, len(pairs))}
	for i, p := range pairs {
		s.Samples[i] = Sample{Time: p[0], Amplitude: p[1]}
	}
	return s
}
