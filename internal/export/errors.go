// Package export writes and reads the merged track catalog in the supported
// file formats.
package export

import (
	"errors"
	"fmt"
)

var (
	// ErrUnsupportedFormat indicates the target extension has no exporter.
	ErrUnsupportedFormat = errors.New("unsupported export format")

	// ErrInvalidPath indicates an empty or unusable target path.
	ErrInvalidPath = errors.New("invalid path")

	// ErrMalformed indicates an export file whose layout is not recognized.
	ErrMalformed = errors.New("malformed export")
)

// UnsupportedFormatError wraps ErrUnsupportedFormat with the offending extension.
type UnsupportedFormatError struct {
	Extension string
}

func (e *UnsupportedFormatError) Error() string {
	ext := e.Extension
	if ext == "" {
		ext = "(none)"
	}
	return fmt.Sprintf("extension '%s' is not supported (use .yaml, .yml, .json, .db, .sqlite, .sqlite3, .xlsx)", ext)
}

func (e *UnsupportedFormatError) Unwrap() error {
	return ErrUnsupportedFormat
}
