package dataset

import (
	"errors"
	"fmt"
)

// NotFoundError indicates the dataset path does not resolve to a
// readable file.
type NotFoundError struct {
	Path string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("dataset file not found: %s", e.Path)
}

// ParseError indicates the file was read but its tabular content is
// malformed.
type ParseError struct {
	Path string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("malformed dataset %s: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// ReadError indicates an I/O failure other than a missing file. These
// are the only load failures worth retrying.
type ReadError struct {
	Path string
	Err  error
}

func (e *ReadError) Error() string {
	return fmt.Sprintf("reading dataset %s: %v", e.Path, e.Err)
}

func (e *ReadError) Unwrap() error { return e.Err }

// IsNotFound reports whether err is a missing-file load failure.
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}

// IsParse reports whether err is a malformed-content load failure.
func IsParse(err error) bool {
	var pe *ParseError
	return errors.As(err, &pe)
}
