package server

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/ironsheep/tofms-review/internal/imaging"
	"github.com/ironsheep/tofms-review/internal/render"
	"github.com/ironsheep/tofms-review/internal/review"
	"github.com/ironsheep/tofms-review/internal/reviewerr"
	"github.com/ironsheep/tofms-review/internal/roi"
	"github.com/ironsheep/tofms-review/internal/signal"
)

// ToolCallParams represents the parameters for a tools/call MCP request.
type ToolCallParams struct {
	// Name is the tool to invoke (e.g., "signal_render", "roi_event").
	Name string `json:"name"`

	// Arguments contains the tool-specific parameters as JSON.
	Arguments json.RawMessage `json:"arguments"`
}

// handleToolsCall processes a tools/call request and executes the specified tool.
//
// The response wraps the tool result in MCP's content format:
//
//	{
//	  "content": [{"type": "text", "text": "<JSON result>"}]
//	}
//
// Malformed or out-of-range arguments return -32602. Any other tool failure
// returns -32000.
func (s *Server) handleToolsCall(req *MCPRequest) *MCPResponse {
	var params ToolCallParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return s.errorResponse(req.ID, -32602, "Invalid params", err.Error())
	}

	result, err := s.executeTool(params.Name, params.Arguments)
	if err != nil {
		s.log.Warn().Err(err).Str("tool", params.Name).Str("kind", string(reviewerr.KindOf(err))).Msg("tool failed")
		if errors.Is(err, reviewerr.ErrInvalidParameter) {
			return s.errorResponse(req.ID, -32602, "Invalid params", err.Error())
		}
		return s.errorResponse(req.ID, -32000, "Tool execution failed", err.Error())
	}

	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: map[string]interface{}{
			"content": []map[string]interface{}{
				{
					"type": "text",
					"text": mustMarshalJSON(result),
				},
			},
		},
	}
}

// executeTool dispatches tool execution to the appropriate handler function.
//
// Each tool handler:
//  1. Unmarshals arguments from JSON
//  2. Applies configured defaults for optional parameters
//  3. Loads series and images through the server caches
//  4. Calls the signal, roi, render or review function
//  5. Returns the result or error
func (s *Server) executeTool(name string, args json.RawMessage) (interface{}, error) {
	switch name {
	// Signal review
	case "signal_load":
		return s.handleSignalLoad(args)
	case "signal_threshold":
		return s.handleSignalThreshold(args)
	case "signal_window":
		return s.handleSignalWindow(args)
	case "signal_render":
		return s.handleSignalRender(args)

	// Image colour filtering
	case "image_load":
		return s.handleImageLoad(args)
	case "image_color_mask":
		return s.handleImageColorMask(args)

	// ROI capture
	case "roi_event":
		return s.handleROIEvent(args)
	case "roi_preview":
		return s.handleROIPreview(args)
	case "roi_reset":
		return s.handleROIReset(args)
	case "roi_signal":
		return s.handleROISignal(args)

	default:
		return nil, fmt.Errorf("unknown tool: %s", name)
	}
}

// errorResponse creates a JSON-RPC error response with the given details.
func (s *Server) errorResponse(id interface{}, code int, message, data string) *MCPResponse {
	return &MCPResponse{
		JSONRPC: "2.0",
		ID:      id,
		Error: &MCPError{
			Code:    code,
			Message: message,
			Data:    data,
		},
	}
}

// mustMarshalJSON converts a value to pretty-printed JSON string.
// Panics are suppressed; on marshal failure, returns an empty string.
func mustMarshalJSON(v interface{}) string {
	b, _ := json.MarshalIndent(v, "", "  ")
	return string(b)
}

// decode unmarshals tool arguments, reporting failures as invalid params.
func decode(args json.RawMessage, v interface{}) error {
	if len(args) == 0 {
		args = json.RawMessage("{}")
	}
	if err := json.Unmarshal(args, v); err != nil {
		return reviewerr.Invalid("arguments: %v", err)
	}
	return nil
}

func requirePath(path string) error {
	if path == "" {
		return reviewerr.Invalid("path is required")
	}
	return nil
}

// === Signal Handlers ===

type signalPathArgs struct {
	Path string `json:"path"`
}

type signalLoadResult struct {
	Summary *signal.Summary     `json:"summary"`
	Session signal.SessionState `json:"session"`
}

func (s *Server) handleSignalLoad(args json.RawMessage) (interface{}, error) {
	var a signalPathArgs
	if err := decode(args, &a); err != nil {
		return nil, err
	}
	if err := requirePath(a.Path); err != nil {
		return nil, err
	}
	ser, err := s.loadSeries(a.Path)
	if err != nil {
		return nil, err
	}
	sum, err := signal.Stats(ser)
	if err != nil {
		return nil, err
	}
	st, err := s.newSession(ser)
	if err != nil {
		return nil, err
	}
	return &signalLoadResult{Summary: sum, Session: st}, nil
}

type signalThresholdArgs struct {
	Path  string   `json:"path"`
	Ratio *float64 `json:"ratio"`
}

func (s *Server) handleSignalThreshold(args json.RawMessage) (interface{}, error) {
	var a signalThresholdArgs
	if err := decode(args, &a); err != nil {
		return nil, err
	}
	if err := requirePath(a.Path); err != nil {
		return nil, err
	}
	ratio := s.cfg.Signal.Ratio
	if a.Ratio != nil {
		ratio = *a.Ratio
	}
	ser, err := s.loadSeries(a.Path)
	if err != nil {
		return nil, err
	}
	return signal.Threshold(ser, ratio)
}

type signalWindowArgs struct {
	Anchor float64 `json:"anchor"`
	Zoom   float64 `json:"zoom"`
}

func (s *Server) handleSignalWindow(args json.RawMessage) (interface{}, error) {
	var a signalWindowArgs
	if err := decode(args, &a); err != nil {
		return nil, err
	}
	return signal.Window(a.Anchor, a.Zoom)
}

type signalRenderArgs struct {
	Path     string   `json:"path"`
	Anchor   *float64 `json:"anchor"`
	Zoom     *float64 `json:"zoom"`
	Ratio    *float64 `json:"ratio"`
	View     *string  `json:"view"`
	Annotate *bool    `json:"annotate"`
	Ceiling  *bool    `json:"ceiling"`
	Markers  *bool    `json:"markers"`
	Width    int      `json:"width"`
	Height   int      `json:"height"`
}

type signalRenderResult struct {
	Session signal.SessionState `json:"session"`
	Display signal.DisplayState `json:"display"`
	Signals int                 `json:"signals"`
	*imaging.EncodedImage
}

func (s *Server) handleSignalRender(args json.RawMessage) (interface{}, error) {
	var a signalRenderArgs
	if err := decode(args, &a); err != nil {
		return nil, err
	}
	if err := requirePath(a.Path); err != nil {
		return nil, err
	}
	ser, err := s.loadSeries(a.Path)
	if err != nil {
		return nil, err
	}
	st, err := s.newSession(ser)
	if err != nil {
		return nil, err
	}

	// Each setter rejects out-of-range values, so the first failure wins.
	if a.Anchor != nil {
		if st, err = st.WithAnchor(*a.Anchor); err != nil {
			return nil, err
		}
	}
	if a.Zoom != nil {
		if st, err = st.WithZoom(*a.Zoom); err != nil {
			return nil, err
		}
	}
	if a.Ratio != nil {
		if st, err = st.WithRatio(*a.Ratio); err != nil {
			return nil, err
		}
	}
	if a.View != nil {
		if st, err = st.WithView(signal.ViewMode(*a.View)); err != nil {
			return nil, err
		}
	}

	display := s.cfg.Display()
	if a.Annotate != nil && *a.Annotate != display.Annotations {
		display = display.ToggleAnnotations()
	}
	if a.Ceiling != nil {
		display.CeilingLine = *a.Ceiling
	}
	if a.Markers != nil {
		display.Markers = *a.Markers
	}

	opts := s.cfg.PlotOptions()
	if a.Width > 0 {
		opts.Width = a.Width
	}
	if a.Height > 0 {
		opts.Height = a.Height
	}

	img, err := render.Plot(ser, st, display, opts)
	if err != nil {
		return nil, err
	}
	th, err := signal.Threshold(ser, st.Ratio)
	if err != nil {
		return nil, err
	}
	enc, err := imaging.EncodePNGBase64(img)
	if err != nil {
		return nil, err
	}
	return &signalRenderResult{Session: st, Display: display, Signals: th.Count, EncodedImage: enc}, nil
}

func (s *Server) newSession(ser *signal.Series) (signal.SessionState, error) {
	st, err := signal.NewSession(ser, s.cfg.Signal.MinZoom, s.cfg.Signal.Ratio)
	if err != nil {
		return st, err
	}
	return st.WithView(s.cfg.View())
}

// === Image Handlers ===

type imageLoadArgs struct {
	Path string `json:"path"`
}

func (s *Server) handleImageLoad(args json.RawMessage) (interface{}, error) {
	var a imageLoadArgs
	if err := decode(args, &a); err != nil {
		return nil, err
	}
	if err := requirePath(a.Path); err != nil {
		return nil, err
	}
	return imaging.LoadImageInfo(s.cache, a.Path)
}

// colorArgs selects a colour range; omitted fields take the configured range.
type colorArgs struct {
	Space string `json:"space"`
	Lower []int  `json:"lower"`
	Upper []int  `json:"upper"`
}

func (s *Server) colorRange(a colorArgs) (roi.ColorRange, error) {
	space := s.cfg.Color.Space
	lower, upper := s.cfg.Color.Lower, s.cfg.Color.Upper
	if a.Space != "" {
		space = a.Space
	}
	if a.Lower != nil {
		lower = a.Lower
	}
	if a.Upper != nil {
		upper = a.Upper
	}
	return roi.ParseColorRange(space, lower, upper)
}

type imageColorMaskArgs struct {
	Path string `json:"path"`
	colorArgs
	// Mode is "mask" for the 0/255 mask or "result" for the source with
	// unmatched pixels blacked out.
	Mode string `json:"mode"`
}

type imageColorMaskResult struct {
	Range  string `json:"range"`
	Pixels int    `json:"pixels"`
	Mode   string `json:"mode"`
	*imaging.EncodedImage
}

func (s *Server) handleImageColorMask(args json.RawMessage) (interface{}, error) {
	var a imageColorMaskArgs
	if err := decode(args, &a); err != nil {
		return nil, err
	}
	if err := requirePath(a.Path); err != nil {
		return nil, err
	}
	if a.Mode == "" {
		a.Mode = "mask"
	}
	if a.Mode != "mask" && a.Mode != "result" {
		return nil, reviewerr.Invalid("mode %q must be mask or result", a.Mode)
	}
	rng, err := s.colorRange(a.colorArgs)
	if err != nil {
		return nil, err
	}
	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}
	m, err := roi.ColorMask(img, rng)
	if err != nil {
		return nil, err
	}

	var enc *imaging.EncodedImage
	if a.Mode == "result" {
		enc, err = imaging.EncodePNGBase64(roi.Apply(img, m))
	} else {
		enc, err = imaging.EncodePNGBase64(m.Gray())
	}
	if err != nil {
		return nil, err
	}
	return &imageColorMaskResult{Range: rng.String(), Pixels: m.Count(), Mode: a.Mode, EncodedImage: enc}, nil
}

// === ROI Capture Handlers ===

type roiEventArgs struct {
	Path  string `json:"path"`
	Event string `json:"event"`
	X     int    `json:"x"`
	Y     int    `json:"y"`
}

type roiStateResult struct {
	State   string     `json:"state"`
	ROIs    []roi.ROI  `json:"rois"`
	Preview *roi.ROI   `json:"preview,omitempty"`
	Cursor  *roi.Point `json:"cursor,omitempty"`
}

func stateOf(sel *roi.Selector) *roiStateResult {
	ov := render.OverlayFrom(sel)
	return &roiStateResult{
		State:   sel.State().String(),
		ROIs:    ov.ROIs,
		Preview: ov.Preview,
		Cursor:  ov.Cursor,
	}
}

func (s *Server) handleROIEvent(args json.RawMessage) (interface{}, error) {
	var a roiEventArgs
	if err := decode(args, &a); err != nil {
		return nil, err
	}
	if err := requirePath(a.Path); err != nil {
		return nil, err
	}
	sel := s.selector(a.Path)
	p := roi.Point{X: a.X, Y: a.Y}

	switch a.Event {
	case "press":
		sel.Press(p)
	case "move":
		sel.Move(p)
	case "release":
		sel.Release(p)
	case "finish":
		sel.Finish()
	default:
		return nil, reviewerr.Invalid("event %q must be press, move, release or finish", a.Event)
	}
	return stateOf(sel), nil
}

func (s *Server) handleROIPreview(args json.RawMessage) (interface{}, error) {
	var a imageLoadArgs
	if err := decode(args, &a); err != nil {
		return nil, err
	}
	if err := requirePath(a.Path); err != nil {
		return nil, err
	}
	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}
	return imaging.EncodePNGBase64(render.Selection(img, render.OverlayFrom(s.selector(a.Path))))
}

func (s *Server) handleROIReset(args json.RawMessage) (interface{}, error) {
	var a imageLoadArgs
	if err := decode(args, &a); err != nil {
		return nil, err
	}
	if err := requirePath(a.Path); err != nil {
		return nil, err
	}
	s.resetSelector(a.Path)
	return stateOf(s.selector(a.Path)), nil
}

// rectArg is a rectangle given by two opposite corners in any order.
type rectArg struct {
	X1 int `json:"x1"`
	Y1 int `json:"y1"`
	X2 int `json:"x2"`
	Y2 int `json:"y2"`
}

type roiSignalArgs struct {
	Path string    `json:"path"`
	ROIs []rectArg `json:"rois"`
	colorArgs
	Color   string `json:"color"`
	MinArea int    `json:"min_area"`
	Output  string `json:"output"`
}

type roiSignalResult struct {
	ROIs    []roi.ROI    `json:"rois"`
	Range   string       `json:"range"`
	Pixels  int          `json:"pixels"`
	Regions []roi.Region `json:"regions"`
	Saved   string       `json:"saved,omitempty"`
	*imaging.EncodedImage
}

func (s *Server) handleROISignal(args json.RawMessage) (interface{}, error) {
	var a roiSignalArgs
	if err := decode(args, &a); err != nil {
		return nil, err
	}
	if err := requirePath(a.Path); err != nil {
		return nil, err
	}
	if a.MinArea <= 0 {
		a.MinArea = 1
	}

	rng, err := s.colorRange(a.colorArgs)
	if err != nil {
		return nil, err
	}
	hl, err := s.cfg.HighlightColor()
	if a.Color != "" {
		hl, err = imaging.ParseHexColor(a.Color)
	}
	if err != nil {
		return nil, err
	}

	var rois []roi.ROI
	if a.ROIs == nil {
		rois = s.selector(a.Path).ROIs()
	} else {
		rois = make([]roi.ROI, 0, len(a.ROIs))
		for _, r := range a.ROIs {
			rois = append(rois, roi.Normalize(roi.FromPoints(roi.Point{X: r.X1, Y: r.Y1}, roi.Point{X: r.X2, Y: r.Y2})))
		}
	}

	img, err := s.cache.Load(a.Path)
	if err != nil {
		return nil, err
	}
	det, err := review.Detect(img, rois, rng, hl)
	if err != nil {
		return nil, err
	}

	res := &roiSignalResult{
		ROIs:    rois,
		Range:   rng.String(),
		Pixels:  det.Pixels,
		Regions: roi.Regions(det.Mask, a.MinArea),
	}
	if a.Output != "" {
		if err := imaging.Save(det.Image, a.Output); err != nil {
			return nil, err
		}
		res.Saved = a.Output
	}
	if res.EncodedImage, err = imaging.EncodePNGBase64(det.Image); err != nil {
		return nil, err
	}
	return res, nil
}
