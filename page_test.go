package sectionpdf

import "testing"

func TestDefaultLayout(t *testing.T) {
	d := DefaultLayout()
	if d.Size != A4 {
		t.Errorf("default size = %v, want A4", d.Size)
	}
	if d.Margin != (Margin{Top: 10, Right: 10, Bottom: 20, Left: 10}) {
		t.Errorf("default margin = %v", d.Margin)
	}
	if d.SectionGap != 5 {
		t.Errorf("default section gap = %v, want 5", d.SectionGap)
	}
	if d.HeightCapDivisor != 4 {
		t.Errorf("default height cap divisor = %v, want 4", d.HeightCapDivisor)
	}
}

func TestUniformMargin(t *testing.T) {
	m := UniformMargin(2.5)
	if m.Top != 2.5 || m.Right != 2.5 || m.Bottom != 2.5 || m.Left != 2.5 {
		t.Errorf("UniformMargin(2.5) = %+v, want all 2.5", m)
	}
}

func TestLayoutResolved_ZeroValues(t *testing.T) {
	r := Layout{}.resolved()
	if r != DefaultLayout() {
		t.Errorf("zero layout resolved = %+v, want defaults %+v", r, DefaultLayout())
	}
}

func TestLayoutResolved_PreservesExplicit(t *testing.T) {
	l := Layout{
		Size:             Letter,
		Margin:           UniformMargin(15),
		SectionGap:       8,
		HeightCapDivisor: 3,
	}
	r := l.resolved()
	if r != l {
		t.Errorf("resolved = %+v, want unchanged %+v", r, l)
	}
}

func TestLayoutResolved_PartialZero(t *testing.T) {
	r := Layout{Size: A5}.resolved()
	if r.Size != A5 {
		t.Errorf("size = %v, want A5", r.Size)
	}
	if r.SectionGap != 5 {
		t.Errorf("gap = %v, want default 5", r.SectionGap)
	}
}

func TestLayoutDerivedDimensions(t *testing.T) {
	l := DefaultLayout()
	if got := l.contentWidth(); got != 190 {
		t.Errorf("contentWidth = %v, want 190", got)
	}
	if got := l.heightCap(); got != 74.25 {
		t.Errorf("heightCap = %v, want 74.25", got)
	}
	if got := l.bottomLimit(); got != 277 {
		t.Errorf("bottomLimit = %v, want 277", got)
	}
}
