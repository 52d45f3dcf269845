package render

import (
	"fmt"
	"image"
	"math"

	"github.com/ironsheep/tofms-review/internal/reviewerr"
	"github.com/ironsheep/tofms-review/internal/signal"
)

// PlotOptions sets the frame size and title of a plot.
type PlotOptions struct {
	Width  int
	Height int
	// Title defaults to the series name when empty.
	Title string
}

// DefaultPlotOptions returns a 1000x600 frame.
func DefaultPlotOptions() PlotOptions {
	return PlotOptions{Width: 1000, Height: 600}
}

// Frame margins around the plot area.
const (
	marginLeft   = 72
	marginRight  = 24
	marginTop    = 32
	marginBottom = 40
	dashLength   = 6
	markerRadius = 4
)

// minPlotSize is the smallest frame that still leaves a drawable plot area.
var minPlotSize = image.Pt(marginLeft+marginRight+16, marginTop+marginBottom+16)

// Plot renders s for the given session and overlay state.
//
// The x axis shows st.Window() and the y axis spans the full amplitude range
// of the series, so zooming never rescales amplitudes. The views draw:
//
//   - ViewOriginal: the trace only
//   - ViewSignals: a bar from 0 to each sample above the noise ceiling
//   - ViewLabeled: the trace, the baseline, and per display state the
//     dashed ceiling line and star markers
//
// Annotations label each visible signal with "(time, amplitude)" in any view.
func Plot(s *signal.Series, st signal.SessionState, display signal.DisplayState, opts PlotOptions) (*image.RGBA, error) {
	if opts.Width < minPlotSize.X || opts.Height < minPlotSize.Y {
		return nil, reviewerr.Invalid("plot size %dx%d below minimum %dx%d",
			opts.Width, opts.Height, minPlotSize.X, minPlotSize.Y)
	}
	win, err := st.Window()
	if err != nil {
		return nil, err
	}
	th, err := signal.Threshold(s, st.Ratio)
	if err != nil {
		return nil, err
	}
	sum, err := signal.Stats(s)
	if err != nil {
		return nil, err
	}

	dst := image.NewRGBA(image.Rect(0, 0, opts.Width, opts.Height))
	fill(dst, dst.Bounds(), Background)

	area := image.Rect(marginLeft, marginTop, opts.Width-marginRight, opts.Height-marginBottom)
	yLo, yHi := sum.AmplitudeMin, sum.AmplitudeMax
	if st.View == signal.ViewSignals {
		yLo = math.Min(yLo, 0)
		yHi = math.Max(yHi, 0)
	}
	ax := newAxes(area, win, yLo, yHi)
	cv := &canvas{dst: dst, clip: area}

	switch st.View {
	case signal.ViewOriginal:
		drawTrace(cv, ax, s, win)
	case signal.ViewSignals:
		zero := ax.y(0)
		for _, p := range th.Signals {
			if win.Contains(p.Time) {
				x := ax.x(p.Time)
				cv.line(x, zero, x, ax.y(p.Amplitude), BarColor)
			}
		}
	default:
		drawTrace(cv, ax, s, win)
		cv.hline(ax.y(th.Baseline), 0, BaselineColor)
		if display.CeilingLine {
			cv.hline(ax.y(th.NoiseCeiling), dashLength, CeilingColor)
		}
		if display.Markers {
			for _, p := range th.Signals {
				if win.Contains(p.Time) {
					cv.star(ax.x(p.Time), ax.y(p.Amplitude), markerRadius, MarkerColor)
				}
			}
		}
	}

	if display.Annotations {
		for _, p := range th.Signals {
			if win.Contains(p.Time) {
				text(dst, ax.x(p.Time)+5, ax.y(p.Amplitude)-5,
					fmt.Sprintf("(%.2f, %.2f)", p.Time, p.Amplitude), LabelColor)
			}
		}
	}

	drawAxes(dst, ax)

	title := opts.Title
	if title == "" {
		title = s.Name
	}
	text(dst, (opts.Width-textWidth(title))/2, marginTop-12, title, AxisColor)

	return dst, nil
}

// drawTrace connects consecutive samples inside or adjacent to the window.
func drawTrace(cv *canvas, ax axes, s *signal.Series, win signal.TimeWindow) {
	for i := 1; i < s.Len(); i++ {
		a, b := s.Samples[i-1], s.Samples[i]
		if b.Time < win.Min || a.Time > win.Max {
			continue
		}
		a, b = clipSegment(a, b, win)
		cv.line(ax.x(a.Time), ax.y(a.Amplitude), ax.x(b.Time), ax.y(b.Amplitude), TraceColor)
	}
	if s.Len() == 1 && win.Contains(s.Samples[0].Time) {
		p := s.Samples[0]
		cv.set(ax.x(p.Time), ax.y(p.Amplitude), TraceColor)
	}
}

// clipSegment trims a segment to the window by linear interpolation so that
// off-screen endpoints never reach the rasterizer.
func clipSegment(a, b signal.Sample, win signal.TimeWindow) (signal.Sample, signal.Sample) {
	dt := b.Time - a.Time
	if dt <= 0 {
		return a, b
	}
	a0, b0 := a, b
	lerp := func(t float64) signal.Sample {
		return signal.Sample{Time: t, Amplitude: a0.Amplitude + (b0.Amplitude-a0.Amplitude)*(t-a0.Time)/dt}
	}
	if a.Time < win.Min {
		a = lerp(win.Min)
	}
	if b.Time > win.Max {
		b = lerp(win.Max)
	}
	return a, b
}

func drawAxes(dst *image.RGBA, ax axes) {
	frame := &canvas{dst: dst, clip: dst.Bounds()}
	r := ax.area
	frame.line(r.Min.X-1, r.Min.Y-1, r.Max.X, r.Min.Y-1, AxisColor)
	frame.line(r.Min.X-1, r.Max.Y, r.Max.X, r.Max.Y, AxisColor)
	frame.line(r.Min.X-1, r.Min.Y-1, r.Min.X-1, r.Max.Y, AxisColor)
	frame.line(r.Max.X, r.Min.Y-1, r.Max.X, r.Max.Y, AxisColor)

	lo := fmt.Sprintf("%.5g", ax.win.Min)
	hi := fmt.Sprintf("%.5g", ax.win.Max)
	text(dst, r.Min.X, r.Max.Y+16, lo, AxisColor)
	text(dst, r.Max.X-textWidth(hi), r.Max.Y+16, hi, AxisColor)

	top := fmt.Sprintf("%.4g", ax.yHi)
	bottom := fmt.Sprintf("%.4g", ax.yLo)
	text(dst, r.Min.X-6-textWidth(top), r.Min.Y+10, top, AxisColor)
	text(dst, r.Min.X-6-textWidth(bottom), r.Max.Y, bottom, AxisColor)
}

// axes maps data coordinates onto the plot area.
type axes struct {
	area     image.Rectangle
	win      signal.TimeWindow
	yLo, yHi float64
}

func newAxes(area image.Rectangle, win signal.TimeWindow, lo, hi float64) axes {
	pad := (hi - lo) * 0.05
	if pad == 0 {
		pad = math.Max(math.Abs(hi)*0.05, 1)
	}
	return axes{area: area, win: win, yLo: lo - pad, yHi: hi + pad}
}

func (a axes) x(t float64) int {
	frac := (t - a.win.Min) / a.win.Span()
	return a.area.Min.X + int(math.Round(frac*float64(a.area.Dx()-1)))
}

func (a axes) y(v float64) int {
	frac := (v - a.yLo) / (a.yHi - a.yLo)
	return a.area.Max.Y - 1 - int(math.Round(frac*float64(a.area.Dy()-1)))
}
