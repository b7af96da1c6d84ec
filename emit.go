package sectionpdf

import (
	"bytes"
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf"
)

// exportFilename returns the date-stamped output name, e.g.
// "Resume_2026-08-30.pdf".
func exportFilename(base string, now time.Time) string {
	return base + "_" + now.Format("2006-01-02") + ".pdf"
}

// emitDocument renders the placed sections into a compressed PDF and
// returns the document bytes and its page count. Emission failures are
// fatal; there is no retry.
func emitDocument(placed []placedSection, l Layout) ([]byte, int, error) {
	doc := gofpdf.NewCustom(&gofpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "mm",
		Size:           gofpdf.SizeType{Wd: l.Size.Width, Ht: l.Size.Height},
	})
	doc.SetCompression(true)
	doc.SetMargins(l.Margin.Left, l.Margin.Top, l.Margin.Right)
	// Page breaks are the composer's decision, not gofpdf's.
	doc.SetAutoPageBreak(false, l.Margin.Bottom)
	doc.AddPage()

	opts := gofpdf.ImageOptions{ImageType: "PNG"}
	for i, ps := range placed {
		for doc.PageNo() < ps.pos.Page {
			doc.AddPage()
		}
		name := fmt.Sprintf("section-%d", i)
		doc.RegisterImageOptionsReader(name, opts, bytes.NewReader(ps.img.data))
		doc.ImageOptions(name, ps.pos.X, ps.pos.Y, ps.pos.W, ps.pos.H, false, opts, 0, "")
	}

	if err := doc.Error(); err != nil {
		return nil, 0, err
	}

	pages := doc.PageCount()
	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		return nil, 0, err
	}
	return buf.Bytes(), pages, nil
}
