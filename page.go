package sectionpdf

// PageSize represents paper dimensions in millimeters.
type PageSize struct {
	Width  float64 // Width in millimeters.
	Height float64 // Height in millimeters.
}

// Standard paper sizes.
var (
	A3     = PageSize{Width: 297, Height: 420}
	A4     = PageSize{Width: 210, Height: 297}
	A5     = PageSize{Width: 148, Height: 210}
	Letter = PageSize{Width: 215.9, Height: 279.4}
	Legal  = PageSize{Width: 215.9, Height: 355.6}
)

// Margin represents page margins in millimeters.
type Margin struct {
	Top    float64
	Right  float64
	Bottom float64
	Left   float64
}

// UniformMargin returns a Margin with the same value on all sides.
func UniformMargin(mm float64) Margin {
	return Margin{Top: mm, Right: mm, Bottom: mm, Left: mm}
}

// Layout controls how captured sections are arranged on the output pages.
//
// A zero-value Layout (or zero-value fields) resolves to sensible defaults:
// A4 portrait, 10 mm top and side margins, a 20 mm bottom margin, a 5 mm
// gap between sections, and a quarter-page height cap per section.
type Layout struct {
	// Size specifies the paper size. Defaults to A4.
	Size PageSize

	// Margin specifies page margins in millimeters.
	// Defaults to 10 mm top/left/right and 20 mm bottom.
	Margin Margin

	// SectionGap is the vertical gap between consecutive sections on the
	// same page, in millimeters. Defaults to 5.
	SectionGap float64

	// HeightCapDivisor caps a single section's rendered height to
	// pageHeight / HeightCapDivisor so that one tall section cannot
	// dominate a page. Defaults to 4 (a quarter of a page).
	HeightCapDivisor float64
}

// DefaultLayout returns a Layout with the package defaults.
func DefaultLayout() Layout {
	return Layout{
		Size:             A4,
		Margin:           Margin{Top: 10, Right: 10, Bottom: 20, Left: 10},
		SectionGap:       5,
		HeightCapDivisor: 4,
	}
}

// resolved returns a Layout with all zero values replaced by defaults.
func (l Layout) resolved() Layout {
	d := DefaultLayout()
	if l.Size == (PageSize{}) {
		l.Size = d.Size
	}
	if l.Margin == (Margin{}) {
		l.Margin = d.Margin
	}
	if l.SectionGap <= 0 {
		l.SectionGap = d.SectionGap
	}
	if l.HeightCapDivisor <= 0 {
		l.HeightCapDivisor = d.HeightCapDivisor
	}
	return l
}

// contentWidth returns the usable width between the side margins.
func (l Layout) contentWidth() float64 {
	return l.Size.Width - l.Margin.Left - l.Margin.Right
}

// heightCap returns the maximum rendered height of a single section.
func (l Layout) heightCap() float64 {
	return l.Size.Height / l.HeightCapDivisor
}

// bottomLimit returns the lowest y coordinate content may extend to.
func (l Layout) bottomLimit() float64 {
	return l.Size.Height - l.Margin.Bottom
}
