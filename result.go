package sectionpdf

import (
	"bytes"
	"encoding/base64"
	"errors"
	"io"
	"os"
	"path/filepath"
	"time"
)

// Result holds a generated document and the metrics recorded while
// producing it.
//
// A Result is returned by every Generate method. It is safe to call its
// methods multiple times — the underlying data is never modified. A
// Generate call rejected by the single-flight guard returns an empty
// Result; check [Result.Empty] before using the content.
type Result struct {
	data     []byte
	filename string
	elapsed  time.Duration
	pages    int
	captured int
	skipped  int
}

// Bytes returns the raw PDF content.
func (r *Result) Bytes() []byte {
	return r.data
}

// Empty reports whether the Result carries no document, as returned when
// an export was rejected because another one was already running.
func (r *Result) Empty() bool {
	return len(r.data) == 0
}

// Base64 returns the PDF encoded as a standard base64 string (RFC 4648).
// This is useful for embedding in JSON payloads or uploading to services
// that accept base64-encoded content.
func (r *Result) Base64() string {
	return base64.StdEncoding.EncodeToString(r.data)
}

// Reader returns an [*bytes.Reader] over the PDF content.
// This is suitable for streaming uploads or any API accepting an
// [io.Reader].
func (r *Result) Reader() *bytes.Reader {
	return bytes.NewReader(r.data)
}

// WriteTo writes the full PDF content to w. It implements [io.WriterTo].
func (r *Result) WriteTo(w io.Writer) (int64, error) {
	n, err := w.Write(r.data)
	return int64(n), err
}

// WriteToFile writes the PDF to the file at path, creating it if needed.
func (r *Result) WriteToFile(path string, perm os.FileMode) error {
	return os.WriteFile(path, r.data, perm)
}

// Save writes the PDF into dir under its generated filename and returns
// the full path written.
func (r *Result) Save(dir string) (string, error) {
	if r.Empty() {
		return "", errors.New("sectionpdf: cannot save an empty result")
	}
	path := filepath.Join(dir, r.filename)
	if err := os.WriteFile(path, r.data, 0o644); err != nil {
		return "", err
	}
	return path, nil
}

// Len returns the size of the PDF in bytes.
func (r *Result) Len() int {
	return len(r.data)
}

// Filename returns the date-stamped name the document saves under,
// e.g. "Resume_2026-08-30.pdf".
func (r *Result) Filename() string {
	return r.filename
}

// Elapsed returns how long the export took.
func (r *Result) Elapsed() time.Duration {
	return r.elapsed
}

// Pages returns the number of pages in the document.
func (r *Result) Pages() int {
	return r.pages
}

// Captured returns how many sections made it into the document.
func (r *Result) Captured() int {
	return r.captured
}

// Skipped returns how many sections failed to capture and were left out.
func (r *Result) Skipped() int {
	return r.skipped
}
