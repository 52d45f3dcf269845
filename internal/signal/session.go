package signal

import (
	"fmt"
	"math"

	"github.com/ironsheep/tofms-review/internal/reviewerr"
)

// ViewMode selects which rendering of the series is active.
type ViewMode string

const (
	// ViewOriginal draws the unlabeled trace.
	ViewOriginal ViewMode = "original"
	// ViewSignals draws only the samples above the noise ceiling as bars.
	ViewSignals ViewMode = "signals"
	// ViewLabeled draws the trace with baseline, ceiling and signal markers.
	ViewLabeled ViewMode = "labeled"
)

// ParseViewMode validates a view name. An empty name selects ViewLabeled.
func ParseViewMode(name string) (ViewMode, error) {
	switch ViewMode(name) {
	case "":
		return ViewLabeled, nil
	case ViewOriginal, ViewSignals, ViewLabeled:
		return ViewMode(name), nil
	default:
		return "", reviewerr.Invalid("unknown view %q", name)
	}
}

// Slider defaults taken from the review tool's control panel.
const (
	DefaultRatio   = 0.95
	DefaultMinZoom = 0.00125
	MinRatio       = 0.01
	MaxRatio       = 1.0
)

// Limits bounds the values each slider accepts for one series.
type Limits struct {
	AnchorMin float64 `json:"anchor_min"`
	AnchorMax float64 `json:"anchor_max"`
	ZoomMin   float64 `json:"zoom_min"`
	ZoomMax   float64 `json:"zoom_max"`
	RatioMin  float64 `json:"ratio_min"`
	RatioMax  float64 `json:"ratio_max"`
}

// LimitsFor derives slider limits from the time range of s. The zoom slider
// runs from minZoom to the last sample time, never narrower than minZoom.
func LimitsFor(s *Series, minZoom float64) (Limits, error) {
	if !(minZoom > 0) {
		return Limits{}, reviewerr.Invalid("minimum zoom %v must be > 0", minZoom)
	}
	sum, err := Stats(s)
	if err != nil {
		return Limits{}, err
	}
	return Limits{
		AnchorMin: sum.TimeMin,
		AnchorMax: sum.TimeMax,
		ZoomMin:   minZoom,
		ZoomMax:   math.Max(minZoom, sum.TimeMax),
		RatioMin:  MinRatio,
		RatioMax:  MaxRatio,
	}, nil
}

// SessionState holds the current slider values and view for one series.
//
// It is a value type: the With* methods validate and return an updated copy,
// leaving the receiver untouched. Out-of-range values are rejected, never
// clamped.
type SessionState struct {
	Anchor float64  `json:"anchor"`
	Zoom   float64  `json:"zoom"`
	Ratio  float64  `json:"ratio"`
	View   ViewMode `json:"view"`
	Limits Limits   `json:"limits"`
}

// NewSession returns the initial state for s: anchor centred on the time
// range, zoom covering the whole series, and the given ratio.
func NewSession(s *Series, minZoom, ratio float64) (SessionState, error) {
	lim, err := LimitsFor(s, minZoom)
	if err != nil {
		return SessionState{}, err
	}
	st := SessionState{
		Anchor: (lim.AnchorMin + lim.AnchorMax) / 2,
		Zoom:   lim.ZoomMax,
		View:   ViewLabeled,
		Limits: lim,
	}
	return st.WithRatio(ratio)
}

// WithAnchor moves the time anchor.
func (st SessionState) WithAnchor(v float64) (SessionState, error) {
	if err := inRange("anchor", v, st.Limits.AnchorMin, st.Limits.AnchorMax); err != nil {
		return st, err
	}
	st.Anchor = v
	return st, nil
}

// WithZoom changes the visible time span.
func (st SessionState) WithZoom(v float64) (SessionState, error) {
	if err := inRange("zoom", v, st.Limits.ZoomMin, st.Limits.ZoomMax); err != nil {
		return st, err
	}
	st.Zoom = v
	return st, nil
}

// WithRatio changes the signal ratio.
func (st SessionState) WithRatio(v float64) (SessionState, error) {
	if err := inRange("signal ratio", v, st.Limits.RatioMin, st.Limits.RatioMax); err != nil {
		return st, err
	}
	st.Ratio = v
	return st, nil
}

// WithView switches the active view.
func (st SessionState) WithView(v ViewMode) (SessionState, error) {
	if _, err := ParseViewMode(string(v)); err != nil {
		return st, err
	}
	st.View = v
	return st, nil
}

// Window returns the visible time range for the current anchor and zoom.
func (st SessionState) Window() (TimeWindow, error) {
	return Window(st.Anchor, st.Zoom)
}

func inRange(name string, v, lo, hi float64) error {
	if math.IsNaN(v) || v < lo || v > hi {
		return reviewerr.Invalid("%s %v outside [%v, %v]", name, v, lo, hi)
	}
	return nil
}

// DisplayState records which overlays are currently drawn.
type DisplayState struct {
	// Annotations shows "(time, amplitude)" labels next to each signal.
	Annotations bool `json:"annotations"`
	// CeilingLine draws the noise ceiling as a dashed line.
	CeilingLine bool `json:"ceiling_line"`
	// Markers draws a star on every signal sample.
	Markers bool `json:"markers"`
}

// DefaultDisplay enables the ceiling line and markers, without annotations.
func DefaultDisplay() DisplayState {
	return DisplayState{CeilingLine: true, Markers: true}
}

// ToggleAnnotations returns a copy with the annotation overlay flipped.
func (d DisplayState) ToggleAnnotations() DisplayState {
	d.Annotations = !d.Annotations
	return d
}

func (d DisplayState) String() string {
	return fmt.Sprintf("annotations=%t ceiling=%t markers=%t", d.Annotations, d.CeilingLine, d.Markers)
}
