package sectionpdf

import (
	"errors"
	"fmt"
)

// Sentinel errors returned by the library.
var (
	// ErrClosed is returned when attempting to use a closed [Exporter].
	ErrClosed = errors.New("sectionpdf: exporter is closed")

	// ErrNoSections is returned when the section selector matches nothing
	// on the target page.
	ErrNoSections = errors.New("sectionpdf: no sections matched the selector")
)

// CaptureError describes a failed screenshot of a single section. Capture
// failures are recoverable: the exporter logs the error, skips the section,
// and continues with the rest of the page.
type CaptureError struct {
	// Index is the position of the section in document order, 0-based.
	Index int

	// Selector is the query used to address the section.
	Selector string

	// Err is the underlying renderer error.
	Err error
}

func (e *CaptureError) Error() string {
	return fmt.Sprintf("sectionpdf: capturing section %d (%s): %v", e.Index, e.Selector, e.Err)
}

func (e *CaptureError) Unwrap() error {
	return e.Err
}
