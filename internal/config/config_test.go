package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/ironsheep/tofms-review/internal/reviewerr"
	"github.com/ironsheep/tofms-review/internal/roi"
	"github.com/ironsheep/tofms-review/internal/signal"
)

func noEnv(string) (string, bool) { return "", false }

func env(vars map[string]string) func(string) (string, bool) {
	return func(k string) (string, bool) {
		v, ok := vars[k]
		return v, ok
	}
}

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "review.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Default() should validate: %v", err)
	}

	rng, err := cfg.ColorRange()
	if err != nil {
		t.Fatalf("ColorRange failed: %v", err)
	}
	if rng != roi.DefaultBGRRange {
		t.Errorf("ColorRange: got %v, want %v", rng, roi.DefaultBGRRange)
	}

	hl, err := cfg.HighlightColor()
	if err != nil {
		t.Fatalf("HighlightColor failed: %v", err)
	}
	if hl != roi.Yellow {
		t.Errorf("HighlightColor: got %v, want yellow", hl)
	}

	if cfg.Signal.Ratio != signal.DefaultRatio {
		t.Errorf("Ratio: got %v, want %v", cfg.Signal.Ratio, signal.DefaultRatio)
	}
	if cfg.View() != signal.ViewLabeled {
		t.Errorf("View: got %v, want labeled", cfg.View())
	}
	if cfg.Display().Annotations {
		t.Error("annotations should start off")
	}
}

func TestLoad_NoFile(t *testing.T) {
	cfg, err := load("", noEnv)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.Output.Prefix != "outputs" {
		t.Errorf("Prefix: got %q, want outputs", cfg.Output.Prefix)
	}
}

func TestLoad_File(t *testing.T) {
	path := writeConfig(t, `
signal:
  ratio: 0.5
  view: signals
  annotate: true
color:
  space: hsv
  lower: [0, 89, 209]
  upper: [179, 255, 255]
highlight: "#00FF00"
plot:
  width: 640
`)

	cfg, err := load(path, noEnv)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}

	if cfg.Signal.Ratio != 0.5 {
		t.Errorf("Ratio: got %v, want 0.5", cfg.Signal.Ratio)
	}
	// Fields absent from the file keep their defaults.
	if cfg.Signal.MinZoom != signal.DefaultMinZoom {
		t.Errorf("MinZoom: got %v, want %v", cfg.Signal.MinZoom, signal.DefaultMinZoom)
	}
	if cfg.Plot.Height != 600 || cfg.Plot.Width != 640 {
		t.Errorf("Plot: got %dx%d, want 640x600", cfg.Plot.Width, cfg.Plot.Height)
	}
	if cfg.View() != signal.ViewSignals {
		t.Errorf("View: got %v, want signals", cfg.View())
	}
	if !cfg.Display().Annotations {
		t.Error("annotate: true should enable annotations")
	}

	rng, _ := cfg.ColorRange()
	if rng != roi.DefaultHSVTrackbars {
		t.Errorf("ColorRange: got %v, want %v", rng, roi.DefaultHSVTrackbars)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	path := writeConfig(t, "output:\n  root: /from/file\n")

	cfg, err := load(path, env(map[string]string{
		EnvOutputRoot:  "/from/env",
		EnvSignalRatio: "0.25",
	}))
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.Output.Root != "/from/env" {
		t.Errorf("Root: got %q, want /from/env", cfg.Output.Root)
	}
	if cfg.Signal.Ratio != 0.25 {
		t.Errorf("Ratio: got %v, want 0.25", cfg.Signal.Ratio)
	}
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name string
		body string
		env  map[string]string
		want error
	}{
		{"ratio too high", "signal:\n  ratio: 1.5\n", nil, reviewerr.ErrInvalidParameter},
		{"ratio zero", "signal:\n  ratio: 0\n", nil, reviewerr.ErrInvalidParameter},
		{"bad view", "signal:\n  view: sideways\n", nil, reviewerr.ErrInvalidParameter},
		{"lower above upper", "color:\n  lower: [200, 0, 0]\n  upper: [100, 255, 255]\n", nil, reviewerr.ErrInvalidParameter},
		{"two channels", "color:\n  lower: [0, 0]\n", nil, reviewerr.ErrInvalidParameter},
		{"channel overflow", "color:\n  upper: [256, 255, 255]\n", nil, reviewerr.ErrInvalidParameter},
		{"bad space", "color:\n  space: lab\n", nil, reviewerr.ErrInvalidParameter},
		{"bad highlight", "highlight: nope\n", nil, reviewerr.ErrInvalidParameter},
		{"zero plot", "plot:\n  width: 0\n", nil, reviewerr.ErrInvalidParameter},
		{"bad yaml", "signal: [\n", nil, reviewerr.ErrInvalidParameter},
		{"bad env ratio", "", map[string]string{EnvSignalRatio: "high"}, reviewerr.ErrInvalidParameter},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := ""
			if tt.body != "" {
				path = writeConfig(t, tt.body)
			}
			_, err := load(path, env(tt.env))
			if !errors.Is(err, tt.want) {
				t.Errorf("got %v, want %v", err, tt.want)
			}
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := load(filepath.Join(t.TempDir(), "absent.yaml"), noEnv)
	if !errors.Is(err, reviewerr.ErrIOFailure) {
		t.Errorf("expected ErrIOFailure, got %v", err)
	}
}
