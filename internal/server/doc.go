// Package server implements the JSON-RPC 2.0 tool server that drives a review
// session from a GUI client.
//
// The client owns the window and the input devices. It forwards slider moves
// and pointer events as tool calls and displays the frames this server
// renders. All computation stays in the signal, roi and render packages.
//
// # Protocol
//
// The server communicates over stdio using JSON-RPC 2.0:
//   - Input: JSON-RPC requests on stdin (one per line)
//   - Output: JSON-RPC responses on stdout
//
// Supported methods:
//   - initialize: Protocol handshake
//   - tools/list: Enumerate available tools
//   - tools/call: Execute a tool with arguments
//   - ping: Health check
//
// Requests are handled one at a time in the order they arrive.
//
// # Available Tools
//
// Signal review:
//   - signal_load: Parse a sample file, return its summary and initial sliders
//   - signal_threshold: Baseline, noise ceiling and signal set for a ratio
//   - signal_window: Visible time range for an anchor and zoom
//   - signal_render: Plot frame for the given sliders, view and overlays
//
// Image colour filtering:
//   - image_load: Image dimensions and format
//   - image_color_mask: Pixels inside HSV or BGR bounds
//
// ROI capture:
//   - roi_event: Forward press, move, release or finish to the image's capture
//   - roi_preview: Capture overlay frame
//   - roi_reset: Start the capture over
//   - roi_signal: Colour filter restricted to ROIs, highlighted
//
// # Session State
//
// Parsed series, decoded images and per-image ROI captures are kept for the
// lifetime of the process, keyed by path. Slider state is not kept: every
// signal_render call starts from the configured defaults and applies the
// values it is given.
//
// # Error Handling
//
// Tool errors are returned as JSON-RPC error responses with:
//   - code: -32602 for malformed or out-of-range arguments, -32000 for any
//     other failure (unreadable file, unknown tool)
//   - message: Human-readable error description
//   - data: The Go error string
package server
