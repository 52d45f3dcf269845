// Package config loads the YAML settings shared by the CLI and the tool server.
//
// A missing file is not an error: Default() values apply. Environment
// overrides are applied after the file and before validation.
package config

import (
	"errors"
	"fmt"
	"image/color"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/ironsheep/tofms-review/internal/imaging"
	"github.com/ironsheep/tofms-review/internal/render"
	"github.com/ironsheep/tofms-review/internal/reviewerr"
	"github.com/ironsheep/tofms-review/internal/roi"
	"github.com/ironsheep/tofms-review/internal/signal"
)

// Environment variables consulted by Load.
const (
	EnvPath        = "TOFMS_CONFIG"
	EnvOutputRoot  = "TOFMS_OUTPUT_ROOT"
	EnvSignalRatio = "TOFMS_SIGNAL_RATIO"
)

// Config is the root of the YAML document.
type Config struct {
	Signal    SignalConfig `yaml:"signal"`
	Color     ColorConfig  `yaml:"color"`
	Highlight string       `yaml:"highlight"`
	Output    OutputConfig `yaml:"output"`
	Plot      PlotConfig   `yaml:"plot"`
}

// SignalConfig holds the initial slider values for plot review.
type SignalConfig struct {
	Ratio    float64 `yaml:"ratio"`
	MinZoom  float64 `yaml:"min_zoom"`
	View     string  `yaml:"view"`
	Annotate bool    `yaml:"annotate"`
}

// ColorConfig is the colour range applied inside ROIs. Channel order
// follows Space: H,S,V or B,G,R.
type ColorConfig struct {
	Space string `yaml:"space"`
	Lower []int  `yaml:"lower"`
	Upper []int  `yaml:"upper"`
}

// OutputConfig places batch outputs under Root/<Prefix>_<timestamp>.
type OutputConfig struct {
	Root   string `yaml:"root"`
	Prefix string `yaml:"prefix"`
}

// PlotConfig is the rendered frame size in pixels.
type PlotConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// Default returns the stock review settings: ratio 0.95, the batch BGR
// filter, a yellow highlight and 1000x600 plots.
func Default() *Config {
	plot := render.DefaultPlotOptions()
	return &Config{
		Signal: SignalConfig{
			Ratio:   signal.DefaultRatio,
			MinZoom: signal.DefaultMinZoom,
			View:    string(signal.ViewLabeled),
		},
		Color:     colorConfig(roi.DefaultBGRRange),
		Highlight: imaging.HexColor(roi.Yellow),
		Output: OutputConfig{
			Root:   ".",
			Prefix: "outputs",
		},
		Plot: PlotConfig{Width: plot.Width, Height: plot.Height},
	}
}

func colorConfig(r roi.ColorRange) ColorConfig {
	lower, upper := r.Ints()
	return ColorConfig{Space: string(r.Space), Lower: lower, Upper: upper}
}

// Load reads path over the defaults, applies environment overrides and
// validates the result. An empty path falls back to TOFMS_CONFIG; if that is
// also empty only defaults and overrides apply.
func Load(path string) (*Config, error) {
	if path == "" {
		path = os.Getenv(EnvPath)
	}
	return load(path, os.LookupEnv)
}

func load(path string, lookup func(string) (string, bool)) (*Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, reviewerr.IO("read", path, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, reviewerr.Invalid("config %s: %v", path, err)
		}
	}
	if err := cfg.applyEnv(lookup); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return cfg, nil
}

func (c *Config) applyEnv(lookup func(string) (string, bool)) error {
	if v, ok := lookup(EnvOutputRoot); ok && v != "" {
		c.Output.Root = v
	}
	if v, ok := lookup(EnvSignalRatio); ok && v != "" {
		r, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return reviewerr.Invalid("%s=%q is not a number", EnvSignalRatio, v)
		}
		c.Signal.Ratio = r
	}
	return nil
}

// Validate reports every invalid field, joined.
func (c *Config) Validate() error {
	var errs []error
	if c.Signal.Ratio < signal.MinRatio || c.Signal.Ratio > signal.MaxRatio {
		errs = append(errs, reviewerr.Invalid("signal.ratio %v outside [%v, %v]",
			c.Signal.Ratio, signal.MinRatio, signal.MaxRatio))
	}
	if !(c.Signal.MinZoom > 0) {
		errs = append(errs, reviewerr.Invalid("signal.min_zoom %v must be > 0", c.Signal.MinZoom))
	}
	if _, err := signal.ParseViewMode(c.Signal.View); err != nil {
		errs = append(errs, fmt.Errorf("signal.view: %w", err))
	}
	if _, err := c.ColorRange(); err != nil {
		errs = append(errs, fmt.Errorf("color: %w", err))
	}
	if _, err := c.HighlightColor(); err != nil {
		errs = append(errs, fmt.Errorf("highlight: %w", err))
	}
	if c.Output.Root == "" {
		errs = append(errs, reviewerr.Invalid("output.root is required"))
	}
	if c.Output.Prefix == "" {
		errs = append(errs, reviewerr.Invalid("output.prefix is required"))
	}
	if c.Plot.Width <= 0 || c.Plot.Height <= 0 {
		errs = append(errs, reviewerr.Invalid("plot size %dx%d must be positive", c.Plot.Width, c.Plot.Height))
	}
	return errors.Join(errs...)
}

// ColorRange converts the colour section into a validated roi.ColorRange.
func (c *Config) ColorRange() (roi.ColorRange, error) {
	return roi.ParseColorRange(c.Color.Space, c.Color.Lower, c.Color.Upper)
}

// HighlightColor parses the highlight hex colour.
func (c *Config) HighlightColor() (color.RGBA, error) {
	return imaging.ParseHexColor(c.Highlight)
}

// View returns the configured initial view.
func (c *Config) View() signal.ViewMode {
	v, err := signal.ParseViewMode(c.Signal.View)
	if err != nil {
		return signal.ViewLabeled
	}
	return v
}

// Display returns the initial overlay toggles.
func (c *Config) Display() signal.DisplayState {
	d := signal.DefaultDisplay()
	d.Annotations = c.Signal.Annotate
	return d
}

// PlotOptions returns the configured frame size.
func (c *Config) PlotOptions() render.PlotOptions {
	return render.PlotOptions{Width: c.Plot.Width, Height: c.Plot.Height}
}
