package scan

import (
	"errors"
	"fmt"
)

// Sentinel errors for scan package.
var (
	// ErrData is returned when a file is missing required content or holds
	// values that cannot be parsed.
	ErrData = errors.New("scan: malformed data")

	// ErrUnsupported is returned for file extensions no reader handles.
	ErrUnsupported = errors.New("scan: unsupported file type")
)

// SectionError reports a problem with one section of a .SCAN file.
// It matches ErrData with errors.Is.
type SectionError struct {
	Section string
	Line    int
	Err     error
}

func (e *SectionError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("scan: section %q line %d: %v", e.Section, e.Line, e.Err)
	}
	return fmt.Sprintf("scan: section %q: %v", e.Section, e.Err)
}

// Unwrap returns the underlying cause.
func (e *SectionError) Unwrap() []error {
	return []error{ErrData, e.Err}
}
