package sectionpdf

// placement is the computed position of one captured section inside the
// output document. Coordinates and dimensions are in millimeters.
type placement struct {
	Page int // 1-based page index.
	X    float64
	Y    float64
	W    float64
	H    float64
}

// pageCursor tracks the composition state across sections: the page being
// filled and the vertical offset where the next section starts. The offset
// always lies between the top margin and the bottom limit immediately
// before a placement decision; starting a new page resets it to the top
// margin.
type pageCursor struct {
	page   int
	offset float64
}

func startCursor(l Layout) pageCursor {
	return pageCursor{page: 1, offset: l.Margin.Top}
}

// placeSection computes where a captured bitmap of w x h pixels goes and
// advances the cursor past it. The bitmap is scaled uniformly to fit the
// content width, capped to a fraction of the page height (see
// [Layout.HeightCapDivisor]), and centered horizontally.
//
// first marks the first placed section of the export. It is never pushed
// to a new page: if it alone exceeds the remaining page height the
// overflow is accepted and content extends past the nominal boundary.
// That mirrors the behavior of the page this tool snapshots; clamping here
// would change the rendered output downstream depends on.
func placeSection(w, h int, cur pageCursor, first bool, l Layout) (placement, pageCursor) {
	ratio := l.contentWidth() / float64(w)
	if capRatio := l.heightCap() / float64(h); capRatio < ratio {
		ratio = capRatio
	}
	scaledW := float64(w) * ratio
	scaledH := float64(h) * ratio

	if !first && cur.offset+scaledH > l.bottomLimit() {
		cur.page++
		cur.offset = l.Margin.Top
	}

	p := placement{
		Page: cur.page,
		X:    (l.Size.Width - scaledW) / 2,
		Y:    cur.offset,
		W:    scaledW,
		H:    scaledH,
	}
	cur.offset += scaledH + l.SectionGap
	return p, cur
}
