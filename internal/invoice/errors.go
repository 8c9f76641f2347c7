package invoice

import (
	"errors"
	"fmt"
)

// Common invoice file errors.
var (
	// ErrBadFilename is returned when a file name does not follow the
	// "<id> - <payment> - <total>đ.xlsx" scheme.
	ErrBadFilename = errors.New("invoice filename not in expected format")

	// ErrUnreadableFile is returned when an invoice spreadsheet cannot be
	// opened or read.
	ErrUnreadableFile = errors.New("invoice file unreadable")
)

// FileError wraps spreadsheet I/O failures with the operation and path.
type FileError struct {
	// Op is the operation that failed (e.g. "WriteInvoice", "ReadProductNames").
	Op string

	// Path is the invoice file involved.
	Path string

	// Err is the underlying error.
	Err error
}

// Error implements the error interface.
func (e *FileError) Error() string {
	return fmt.Sprintf("invoice: %s failed for %s: %v", e.Op, e.Path, e.Err)
}

// Unwrap returns the underlying error for error unwrapping.
func (e *FileError) Unwrap() error {
	return e.Err
}

// Is implements error matching for errors.Is.
func (e *FileError) Is(target error) bool {
	return errors.Is(e.Err, target)
}

// NewFileError creates a FileError for the given operation and path.
func NewFileError(op, path string, err error) *FileError {
	return &FileError{Op: op, Path: path, Err: err}
}
