package replacement

import (
	"errors"
	"fmt"
)

// User-facing replacement run failures.
var (
	// ErrQuotaExceeded is returned when the day's replacement quota has
	// already been consumed.
	ErrQuotaExceeded = errors.New("daily beverage replacement quota already consumed")

	// ErrNotEnoughCandidates is returned when the invoice directory holds
	// fewer eligible files than one run replaces.
	ErrNotEnoughCandidates = errors.New("not enough candidate invoice files")
)

// RunError wraps unexpected failures inside a replacement run with the
// failing operation.
type RunError struct {
	// Op is the operation that failed (e.g. "ListCandidates", "Replace").
	Op string

	// Err is the underlying error.
	Err error
}

// Error implements the error interface.
func (e *RunError) Error() string {
	return fmt.Sprintf("replacement: %s failed: %v", e.Op, e.Err)
}

// Unwrap returns the underlying error for error unwrapping.
func (e *RunError) Unwrap() error {
	return e.Err
}

// Is implements error matching for errors.Is.
func (e *RunError) Is(target error) bool {
	return errors.Is(e.Err, target)
}
