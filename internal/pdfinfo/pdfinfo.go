// Package pdfinfo provides minimal inspection of PDF files: header
// version, page count, and the media boxes declared in the document.
//
// It scans object dictionaries in the raw bytes rather than walking the
// cross-reference table, which is sufficient for the well-formed,
// unencrypted documents this module emits. It is not a general PDF reader:
// documents that keep their page dictionaries inside compressed object
// streams are not supported.
package pdfinfo

import (
	"bytes"
	"fmt"
	"os"
	"strconv"
)

// Info summarizes a PDF document.
type Info struct {
	// Version is the header version, e.g. "1.3".
	Version string

	// Pages is the number of page objects in the document.
	Pages int

	// MediaBoxes lists every /MediaBox declaration found, in document
	// order, each as [llx lly urx ury] in points. Documents commonly
	// declare a single box on the page tree root.
	MediaBoxes [][4]float64
}

// Open reads and inspects a PDF file from disk.
func Open(path string) (*Info, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("pdfinfo: reading file: %w", err)
	}
	return Read(data)
}

// Read inspects a PDF from raw bytes.
func Read(data []byte) (*Info, error) {
	if !bytes.HasPrefix(data, []byte("%PDF-")) {
		return nil, fmt.Errorf("pdfinfo: not a PDF file")
	}
	return &Info{
		Version:    headerVersion(data),
		Pages:      countPages(data),
		MediaBoxes: mediaBoxes(data),
	}, nil
}

// headerVersion extracts the version digits from the %PDF-n.n header.
func headerVersion(data []byte) string {
	rest := data[len("%PDF-"):]
	end := 0
	for end < len(rest) && (rest[end] == '.' || (rest[end] >= '0' && rest[end] <= '9')) {
		end++
	}
	return string(rest[:end])
}

// countPages counts /Type /Page entries, excluding the /Type /Pages tree
// nodes.
func countPages(data []byte) int {
	key := []byte("/Type")
	page := []byte("/Page")
	n := 0
	for i := 0; ; {
		j := bytes.Index(data[i:], key)
		if j < 0 {
			break
		}
		k := i + j + len(key)
		for k < len(data) && isWhitespace(data[k]) {
			k++
		}
		if bytes.HasPrefix(data[k:], page) {
			next := k + len(page)
			if next >= len(data) || !isRegular(data[next]) {
				n++
			}
		}
		i = i + j + len(key)
	}
	return n
}

// mediaBoxes collects every parseable /MediaBox array.
func mediaBoxes(data []byte) [][4]float64 {
	key := []byte("/MediaBox")
	var boxes [][4]float64
	for i := 0; ; {
		j := bytes.Index(data[i:], key)
		if j < 0 {
			break
		}
		k := i + j + len(key)
		if box, ok := parseBox(data[k:]); ok {
			boxes = append(boxes, box)
		}
		i = k
	}
	return boxes
}

// parseBox parses "[ n n n n ]" starting at data, allowing leading
// whitespace.
func parseBox(data []byte) ([4]float64, bool) {
	var box [4]float64
	k := 0
	for k < len(data) && isWhitespace(data[k]) {
		k++
	}
	if k >= len(data) || data[k] != '[' {
		return box, false
	}
	k++
	for n := 0; n < 4; n++ {
		for k < len(data) && isWhitespace(data[k]) {
			k++
		}
		start := k
		for k < len(data) && isNumeric(data[k]) {
			k++
		}
		if k == start {
			return box, false
		}
		v, err := strconv.ParseFloat(string(data[start:k]), 64)
		if err != nil {
			return box, false
		}
		box[n] = v
	}
	return box, true
}

func isWhitespace(b byte) bool {
	switch b {
	case ' ', '\t', '\r', '\n', '\f', 0:
		return true
	}
	return false
}

func isRegular(b byte) bool {
	return b >= 'a' && b <= 'z' || b >= 'A' && b <= 'Z' || b >= '0' && b <= '9'
}

func isNumeric(b byte) bool {
	return b == '-' || b == '+' || b == '.' || (b >= '0' && b <= '9')
}
