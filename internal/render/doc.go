// Package render draws review frames from engine output.
//
// Plot renders a Sample Series under a signal.SessionState and
// signal.DisplayState in one of three views, and Selection renders the live
// ROI capture overlay on top of an image. Both return a new *image.RGBA on
// every call and never modify their inputs, so a caller can re-render from
// the committed state on each event.
//
// Text is drawn with golang.org/x/image/font/basicfont, which keeps the
// renderer free of font files.
package render
