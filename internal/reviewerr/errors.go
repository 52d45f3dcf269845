// Package reviewerr defines the error kinds shared by the review engines.
//
// Engines wrap one of the sentinel errors so callers can classify a failure
// with errors.Is or KindOf without parsing messages:
//
//   - ErrInvalidParameter: ratio, zoom, or channel bounds outside the accepted range
//   - ErrEmptyInput: a series or image with no samples or pixels
//   - ErrIOFailure: a file that could not be read or written
//
// None of these are retried. The batch session records them per file and
// moves on to the next input.
package reviewerr

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidParameter = errors.New("invalid parameter")
	ErrEmptyInput       = errors.New("empty input")
	ErrIOFailure        = errors.New("i/o failure")
)

// Kind names an error category for reports and logs.
type Kind string

const (
	KindInvalidParameter Kind = "invalid_parameter"
	KindEmptyInput       Kind = "empty_input"
	KindIOFailure        Kind = "io_failure"
	KindOther            Kind = "other"
)

// PathError records a file operation that failed on a specific path.
type PathError struct {
	Op   string // "read", "write", "decode", ...
	Path string
	Err  error
}

func (e *PathError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *PathError) Unwrap() error { return e.Err }

// Is reports PathError as an I/O failure regardless of the wrapped cause.
func (e *PathError) Is(target error) bool { return target == ErrIOFailure }

// IO wraps err as an I/O failure on path. A nil err returns nil.
func IO(op, path string, err error) error {
	if err == nil {
		return nil
	}
	return &PathError{Op: op, Path: path, Err: err}
}

// Invalid returns an ErrInvalidParameter carrying a formatted reason.
func Invalid(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrInvalidParameter, fmt.Sprintf(format, args...))
}

// Empty returns an ErrEmptyInput naming what was empty.
func Empty(what string) error {
	return fmt.Errorf("%w: %s", ErrEmptyInput, what)
}

// KindOf classifies err. Unknown errors are KindOther.
func KindOf(err error) Kind {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrInvalidParameter):
		return KindInvalidParameter
	case errors.Is(err, ErrEmptyInput):
		return KindEmptyInput
	case errors.Is(err, ErrIOFailure):
		return KindIOFailure
	default:
		return KindOther
	}
}
