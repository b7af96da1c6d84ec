package sectionpdf

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"
	"time"
)

// fakeCapturer serves canned rasters for pipeline tests, optionally
// failing specific sections.
type fakeCapturer struct {
	sizes [][2]int
	fail  map[int]error
	calls []int
}

func (f *fakeCapturer) capture(_ context.Context, index int) (raster, error) {
	f.calls = append(f.calls, index)
	if err := f.fail[index]; err != nil {
		return raster{}, &CaptureError{Index: index, Selector: sectionSelector(index), Err: err}
	}
	s := f.sizes[index]
	return raster{width: s[0], height: s[1], scale: 2, data: []byte("png")}, nil
}

func nopLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

func TestRunPipeline_AllSectionsPlacedInOrder(t *testing.T) {
	fc := &fakeCapturer{sizes: [][2]int{{2000, 400}, {2000, 800}, {2000, 300}}}

	placed, skipped, err := runPipeline(context.Background(), 3, fc, DefaultLayout(), 0, nopLogger())
	if err != nil {
		t.Fatalf("runPipeline: %v", err)
	}
	if skipped != 0 {
		t.Errorf("skipped = %d, want 0", skipped)
	}
	if len(placed) != 3 {
		t.Fatalf("placed %d sections, want 3", len(placed))
	}
	if got, want := fc.calls, []int{0, 1, 2}; !equalInts(got, want) {
		t.Errorf("capture order = %v, want %v", got, want)
	}
	for i := 1; i < len(placed); i++ {
		prev, cur := placed[i-1].pos, placed[i].pos
		if cur.Page == prev.Page && cur.Y <= prev.Y {
			t.Errorf("section %d not placed below section %d on page %d", i, i-1, cur.Page)
		}
	}
}

func TestRunPipeline_FailedSectionSkipped(t *testing.T) {
	fc := &fakeCapturer{
		sizes: [][2]int{{2000, 400}, {2000, 800}, {1000, 300}},
		fail:  map[int]error{1: errors.New("tainted canvas")},
	}
	var logBuf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logBuf, nil))

	placed, skipped, err := runPipeline(context.Background(), 3, fc, DefaultLayout(), 0, logger)
	if err != nil {
		t.Fatalf("runPipeline: %v", err)
	}
	if skipped != 1 {
		t.Errorf("skipped = %d, want 1", skipped)
	}
	if len(placed) != 2 {
		t.Fatalf("placed %d sections, want 2", len(placed))
	}

	// Remaining sections keep their original order: widths identify them.
	if placed[0].img.width != 2000 || placed[1].img.width != 1000 {
		t.Errorf("placed widths = %d, %d; want 2000, 1000",
			placed[0].img.width, placed[1].img.width)
	}

	logged := logBuf.String()
	if !strings.Contains(logged, "section capture failed") {
		t.Errorf("log missing failure entry: %q", logged)
	}
	if !strings.Contains(logged, "section=1") {
		t.Errorf("log missing failed section index: %q", logged)
	}
}

func TestRunPipeline_FirstSuccessIsFirstPlaced(t *testing.T) {
	// Section 0 fails, so section 1 becomes the first placed section and
	// must get the first-section overflow exemption.
	l := DefaultLayout()
	fc := &fakeCapturer{
		sizes: [][2]int{{0, 0}, {2000, 1500}},
		fail:  map[int]error{0: errors.New("renderer error")},
	}

	placed, _, err := runPipeline(context.Background(), 2, fc, l, 0, nopLogger())
	if err != nil {
		t.Fatalf("runPipeline: %v", err)
	}
	if len(placed) != 1 {
		t.Fatalf("placed %d sections, want 1", len(placed))
	}
	if placed[0].pos.Page != 1 || !approx(placed[0].pos.Y, l.Margin.Top) {
		t.Errorf("first placed section at page %d y %v, want page 1 y %v",
			placed[0].pos.Page, placed[0].pos.Y, l.Margin.Top)
	}
}

func TestRunPipeline_AllSectionsFail(t *testing.T) {
	fc := &fakeCapturer{
		sizes: [][2]int{{0, 0}, {0, 0}},
		fail:  map[int]error{0: errors.New("boom"), 1: errors.New("boom")},
	}

	placed, skipped, err := runPipeline(context.Background(), 2, fc, DefaultLayout(), 0, nopLogger())
	if err != nil {
		t.Fatalf("runPipeline: %v", err)
	}
	if len(placed) != 0 || skipped != 2 {
		t.Errorf("placed %d skipped %d, want 0 and 2", len(placed), skipped)
	}
}

func TestRunPipeline_ContextCanceledDuringPause(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	fc := &fakeCapturer{sizes: [][2]int{{100, 100}, {100, 100}}}
	_, _, err := runPipeline(ctx, 2, fc, DefaultLayout(), time.Minute, nopLogger())
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
	if len(fc.calls) != 1 {
		t.Errorf("captures after cancel = %d, want 1", len(fc.calls))
	}
}

func TestRunPipeline_CaptureErrorWithDeadContextIsFatal(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	fc := &fakeCapturer{
		sizes: [][2]int{{0, 0}},
		fail:  map[int]error{0: context.Canceled},
	}
	_, _, err := runPipeline(ctx, 1, fc, DefaultLayout(), 0, nopLogger())
	if err == nil {
		t.Fatal("expected error when the context is done, got nil")
	}
	var ce *CaptureError
	if !errors.As(err, &ce) {
		t.Errorf("err = %v, want *CaptureError", err)
	}
}

func TestGenerate_RejectsConcurrentExport(t *testing.T) {
	e := &Exporter{cfg: defaultConfig()}
	e.exporting.Store(true)

	res, err := e.generate(context.Background(), "file:///resume.html")
	if err != nil {
		t.Fatalf("generate during in-flight export: %v", err)
	}
	if res == nil || !res.Empty() {
		t.Error("expected an empty result for a rejected re-entrant export")
	}
	// The rejection must not clear the owning export's flag.
	if !e.exporting.Load() {
		t.Error("in-flight flag was cleared by the rejected call")
	}
}

func TestExporter_ClosedErrors(t *testing.T) {
	e := &Exporter{
		cfg:           defaultConfig(),
		allocCancel:   func() {},
		browserCancel: func() {},
	}
	if err := e.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if err := e.Close(); err != nil {
		t.Fatalf("second Close: %v", err)
	}

	if _, err := e.GenerateURL(context.Background(), "https://example.com"); !errors.Is(err, ErrClosed) {
		t.Errorf("GenerateURL on closed exporter = %v, want ErrClosed", err)
	}
	if _, err := e.GenerateFile(context.Background(), "x.html"); !errors.Is(err, ErrClosed) {
		t.Errorf("GenerateFile on closed exporter = %v, want ErrClosed", err)
	}
	if _, err := e.GenerateHTML(context.Background(), "<section/>"); !errors.Is(err, ErrClosed) {
		t.Errorf("GenerateHTML on closed exporter = %v, want ErrClosed", err)
	}
}

func TestWithQuality_Clamped(t *testing.T) {
	tests := []struct {
		in   int
		want int
	}{
		{-3, 1},
		{0, 1},
		{1, 1},
		{3, 3},
		{5, 5},
		{9, 5},
	}
	for _, tt := range tests {
		cfg := defaultConfig()
		WithQuality(tt.in)(&cfg)
		if cfg.quality != tt.want {
			t.Errorf("WithQuality(%d) = %d, want %d", tt.in, cfg.quality, tt.want)
		}
	}
}

func TestTagSectionsScript_QuotesSelector(t *testing.T) {
	js := tagSectionsScript(`main > section[data-x="1"]`)
	if !strings.Contains(js, `"main > section[data-x=\"1\"]"`) {
		t.Errorf("selector not JSON-quoted in script:\n%s", js)
	}
}

func TestHideScript_IncludesSelectorsAndRestoreHook(t *testing.T) {
	js := hideScript([]string{".export-button", ".nav-toggle"})
	for _, want := range []string{`".export-button"`, `".nav-toggle"`, "__sectionpdfRestore"} {
		if !strings.Contains(js, want) {
			t.Errorf("hide script missing %s:\n%s", want, js)
		}
	}
}

func TestCaptureError_Unwrap(t *testing.T) {
	inner := errors.New("canvas security restriction")
	err := error(&CaptureError{Index: 2, Selector: sectionSelector(2), Err: inner})
	if !errors.Is(err, inner) {
		t.Error("CaptureError does not unwrap to the renderer error")
	}
	if !strings.Contains(err.Error(), "section 2") {
		t.Errorf("error text missing section index: %q", err)
	}
}

func equalInts(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
