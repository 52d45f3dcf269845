package roi

// State is the phase of an interactive ROI capture.
type State int

const (
	// Idle waits for a press to start a rectangle.
	Idle State = iota
	// Drawing tracks the pointer between press and release.
	Drawing
	// Committed means the session finished; further input is ignored.
	Committed
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Drawing:
		return "drawing"
	case Committed:
		return "committed"
	default:
		return "unknown"
	}
}

// Selector turns press/move/release events into a list of ROIs.
//
// A Selector belongs to one image and one review session. It is not safe for
// concurrent use; the caller serialises events. Zero-area rectangles are kept,
// and callers that do not want them can drop ROIs where Empty is true.
type Selector struct {
	state  State
	start  Point
	cursor Point
	seen   bool
	rois   []ROI
}

// NewSelector returns a Selector in the Idle state with no ROIs.
func NewSelector() *Selector {
	return &Selector{rois: make([]ROI, 0)}
}

// State returns the current phase.
func (s *Selector) State() State { return s.state }

// Press starts a rectangle at p. Ignored unless Idle.
func (s *Selector) Press(p Point) {
	if s.state != Idle {
		return
	}
	s.state = Drawing
	s.start = p
	s.cursor, s.seen = p, true
}

// Move updates the pointer position and, while drawing, the live preview.
// The committed list is not touched.
func (s *Selector) Move(p Point) {
	if s.state == Committed {
		return
	}
	s.cursor, s.seen = p, true
}

// Release closes the rectangle at p, appends it normalized, and returns to
// Idle. Ignored unless Drawing.
func (s *Selector) Release(p Point) {
	if s.state != Drawing {
		return
	}
	s.cursor, s.seen = p, true
	s.rois = append(s.rois, Normalize(FromPoints(s.start, p)))
	s.state = Idle
}

// Finish ends the session and returns the final ROI list. A rectangle still
// being drawn is discarded. Later calls return the same list.
func (s *Selector) Finish() []ROI {
	s.state = Committed
	return s.ROIs()
}

// ROIs returns a copy of the committed rectangles in drawing order.
func (s *Selector) ROIs() []ROI {
	out := make([]ROI, len(s.rois))
	copy(out, s.rois)
	return out
}

// Preview returns the rectangle being drawn, if any.
func (s *Selector) Preview() (ROI, bool) {
	if s.state != Drawing {
		return ROI{}, false
	}
	return Normalize(FromPoints(s.start, s.cursor)), true
}

// Cursor returns the last pointer position, if one has been seen.
func (s *Selector) Cursor() (Point, bool) {
	return s.cursor, s.seen && s.state != Committed
}
