// Package signal implements threshold-based peak marking for TOF-MS sample series.
//
// A Series is an ordered list of (time, amplitude) samples read from a
// whitespace-delimited text file. The engine derives three values from it:
//
//   - Baseline: the statistical mode of the amplitude column (the noise floor)
//   - Noise ceiling: max - (max - baseline) * ratio, for a ratio in (0, 1]
//   - Signal set: indices whose amplitude strictly exceeds the ceiling
//
// All engine functions are pure. They never mutate the series and return the
// same output for the same input, so a GUI can call them on every slider move.
//
// # Baseline Tie-Break
//
// When several amplitudes share the highest frequency, Baseline returns the
// numerically smallest of them. Exact float64 equality is used for counting.
//
// # Session State
//
// SessionState carries the slider values (anchor, zoom, ratio) and the active
// view. DisplayState carries the overlay toggles. Both are plain values that a
// caller updates and passes to the renderer; nothing here keeps ambient state.
package signal
