// Package review runs the batch sessions: every plot or image in a directory
// is processed on its own and written to a timestamped output directory.
//
// A failing file never stops the batch. Its error is classified with
// reviewerr.KindOf and recorded in the Report; only an unreadable input
// directory or output directory ends the run.
package review
