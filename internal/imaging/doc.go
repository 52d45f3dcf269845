// Package imaging provides image loading, encoding and output persistence for
// the review tools.
//
// Images are decoded through github.com/disintegration/imaging, which covers
// PNG, JPEG, GIF, TIFF and BMP, and cached by path so an interactive session
// can re-render the same image on every event without re-reading it.
//
// # Output Layout
//
// Each run writes into a fresh directory named after its start time:
//
//	<root>/outputs_20240131_154502/
//
// Plot snapshots take the input base name with its extension replaced by
// ".png". Image outputs keep the input base name and extension, and the
// encoder is chosen from that extension.
//
// # Thread Safety
//
// ImageCache is safe for concurrent use. The free functions are stateless.
//
// # Error Handling
//
// Read, decode, write and directory failures are returned as
// *reviewerr.PathError values, which match reviewerr.ErrIOFailure and carry
// the offending path.
package imaging
