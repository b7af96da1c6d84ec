package sectionpdf

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"github.com/chromedp/cdproto/cdp"
	"github.com/chromedp/cdproto/emulation"
	"github.com/chromedp/chromedp"
)

// Exporter captures the sections of a rendered web page and composes them
// into a paginated PDF.
//
// An Exporter manages a headless browser instance that is reused across
// multiple exports. Exports are single-flight: a Generate call made while
// another export is running returns an empty [Result] immediately, with no
// error and no side effects.
//
// Call [Exporter.Close] when the Exporter is no longer needed to release
// browser resources.
type Exporter struct {
	cfg           exporterConfig
	allocCtx      context.Context
	allocCancel   context.CancelFunc
	browserCtx    context.Context
	browserCancel context.CancelFunc

	exporting atomic.Bool

	mu     sync.Mutex
	closed bool
}

// New creates an Exporter with the given options.
//
// It starts a headless browser in the background. The caller must call
// [Exporter.Close] when finished.
func New(opts ...Option) (*Exporter, error) {
	cfg := defaultConfig()
	for _, o := range opts {
		o(&cfg)
	}

	if cfg.chromePath == "" && cfg.autoDownload {
		path, err := resolveBrowser()
		if err != nil {
			return nil, err
		}
		cfg.chromePath = path
	}

	allocOpts := append(
		chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("disable-extensions", true),
		chromedp.Flag("disable-background-networking", true),
		chromedp.Flag("disable-sync", true),
		chromedp.Flag("disable-translate", true),
		chromedp.Flag("no-first-run", true),
		chromedp.Flag("headless", cfg.headless),
	)
	if cfg.chromePath != "" {
		allocOpts = append(allocOpts, chromedp.ExecPath(cfg.chromePath))
	}
	if cfg.noSandbox {
		allocOpts = append(allocOpts, chromedp.Flag("no-sandbox", true))
	}

	allocCtx, allocCancel := chromedp.NewExecAllocator(context.Background(), allocOpts...)
	browserCtx, browserCancel := chromedp.NewContext(allocCtx)

	// Start the browser eagerly so errors surface at creation time.
	if err := chromedp.Run(browserCtx); err != nil {
		browserCancel()
		allocCancel()
		return nil, fmt.Errorf("sectionpdf: starting browser: %w", err)
	}

	return &Exporter{
		cfg:           cfg,
		allocCtx:      allocCtx,
		allocCancel:   allocCancel,
		browserCtx:    browserCtx,
		browserCancel: browserCancel,
	}, nil
}

// Close releases all resources held by the Exporter, including the
// browser process. Close is idempotent.
func (e *Exporter) Close() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.closed {
		return nil
	}
	e.closed = true
	e.browserCancel()
	e.allocCancel()
	return nil
}

// GenerateHTML exports an HTML string.
func (e *Exporter) GenerateHTML(ctx context.Context, html string) (*Result, error) {
	if err := e.checkClosed(); err != nil {
		return nil, err
	}

	f, err := os.CreateTemp("", "sectionpdf-*.html")
	if err != nil {
		return nil, fmt.Errorf("sectionpdf: creating temp file: %w", err)
	}
	name := f.Name()
	defer os.Remove(name)

	if _, err := f.WriteString(html); err != nil {
		f.Close()
		return nil, fmt.Errorf("sectionpdf: writing temp file: %w", err)
	}
	if err := f.Close(); err != nil {
		return nil, fmt.Errorf("sectionpdf: closing temp file: %w", err)
	}

	abs, err := filepath.Abs(name)
	if err != nil {
		return nil, fmt.Errorf("sectionpdf: resolving path: %w", err)
	}
	return e.generate(ctx, "file://"+abs)
}

// GenerateURL exports the web page at rawURL.
func (e *Exporter) GenerateURL(ctx context.Context, rawURL string) (*Result, error) {
	if err := e.checkClosed(); err != nil {
		return nil, err
	}
	if _, err := url.ParseRequestURI(rawURL); err != nil {
		return nil, fmt.Errorf("sectionpdf: invalid URL %q: %w", rawURL, err)
	}
	return e.generate(ctx, rawURL)
}

// GenerateFile exports a local HTML file.
func (e *Exporter) GenerateFile(ctx context.Context, path string) (*Result, error) {
	if err := e.checkClosed(); err != nil {
		return nil, err
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("sectionpdf: resolving path: %w", err)
	}
	if _, err := os.Stat(abs); err != nil {
		return nil, fmt.Errorf("sectionpdf: %w", err)
	}
	return e.generate(ctx, "file://"+abs)
}

// generate runs the full export pipeline against one page load.
func (e *Exporter) generate(ctx context.Context, targetURL string) (*Result, error) {
	if !e.exporting.CompareAndSwap(false, true) {
		e.cfg.logger.DebugContext(ctx, "export already in flight, ignoring request")
		return &Result{}, nil
	}
	defer e.exporting.Store(false)

	start := time.Now()

	if e.cfg.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.cfg.timeout)
		defer cancel()
	}

	tabCtx, tabCancel := chromedp.NewContext(e.browserCtx)
	defer tabCancel()
	// Tear the tab down if the caller's context expires mid-export.
	stop := context.AfterFunc(ctx, tabCancel)
	defer stop()

	settle := e.cfg.settleScript
	if settle == "" {
		settle = defaultSettleScript
	}

	var count int
	err := chromedp.Run(tabCtx,
		chromedp.EmulateViewport(e.cfg.viewportWidth, e.cfg.viewportHeight),
		chromedp.ActionFunc(func(ctx context.Context) error {
			// Opaque white default background so transparent regions do not
			// composite against an inherited background.
			return emulation.SetDefaultBackgroundColorOverride().
				WithColor(&cdp.RGBA{R: 255, G: 255, B: 255, A: 1}).
				Do(ctx)
		}),
		chromedp.Navigate(targetURL),
		chromedp.WaitReady("body", chromedp.ByQuery),
		chromedp.Evaluate(settle, nil),
		chromedp.Sleep(200*time.Millisecond),
		chromedp.Evaluate(tagSectionsScript(e.cfg.sectionSel), &count),
	)
	if err != nil {
		return nil, fmt.Errorf("sectionpdf: preparing page: %w", err)
	}
	if count == 0 {
		return nil, fmt.Errorf("%w: %q", ErrNoSections, e.cfg.sectionSel)
	}

	if len(e.cfg.hideSelectors) > 0 {
		if err := chromedp.Run(tabCtx, chromedp.Evaluate(hideScript(e.cfg.hideSelectors), nil)); err != nil {
			return nil, fmt.Errorf("sectionpdf: hiding elements: %w", err)
		}
		defer func() {
			// Best effort: the hidden elements come back on every exit path.
			_ = chromedp.Run(tabCtx, chromedp.Evaluate(restoreScript, nil))
		}()
	}

	layout := e.cfg.layout.resolved()
	capturer := &tabCapturer{quality: e.cfg.quality, maxWidth: e.cfg.maxRasterWidth}

	placed, skipped, err := runPipeline(tabCtx, count, capturer, layout, e.cfg.sectionPause, e.cfg.logger)
	if err != nil {
		return nil, err
	}
	if len(placed) == 0 {
		return nil, fmt.Errorf("sectionpdf: all %d sections failed to capture", count)
	}

	data, pages, err := emitDocument(placed, layout)
	if err != nil {
		return nil, fmt.Errorf("sectionpdf: emitting document: %w", err)
	}

	elapsed := time.Since(start)
	e.cfg.logger.InfoContext(ctx, "export complete",
		"sections", len(placed),
		"skipped", skipped,
		"pages", pages,
		"elapsed", elapsed,
	)

	return &Result{
		data:     data,
		filename: exportFilename(e.cfg.filenameBase, e.cfg.now()),
		elapsed:  elapsed,
		pages:    pages,
		captured: len(placed),
		skipped:  skipped,
	}, nil
}

func (e *Exporter) checkClosed() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return ErrClosed
	}
	return nil
}

// placedSection pairs a captured bitmap with its computed position.
type placedSection struct {
	img raster
	pos placement
}

// runPipeline captures and places the tagged sections in order. Captures
// run strictly sequentially with a fixed pause between them. A failed
// capture is logged and skipped; the pipeline continues with the remaining
// sections unless the context itself is done.
func runPipeline(ctx context.Context, count int, capt sectionCapturer, l Layout, pause time.Duration, logger *slog.Logger) ([]placedSection, int, error) {
	cur := startCursor(l)
	placed := make([]placedSection, 0, count)
	skipped := 0

	for i := 0; i < count; i++ {
		if i > 0 && pause > 0 {
			select {
			case <-ctx.Done():
				return nil, skipped, ctx.Err()
			case <-time.After(pause):
			}
		}

		img, err := capt.capture(ctx, i)
		if err != nil {
			if ctx.Err() != nil {
				return nil, skipped, err
			}
			logger.WarnContext(ctx, "section capture failed, skipping", "section", i, "error", err)
			skipped++
			continue
		}

		pos, next := placeSection(img.width, img.height, cur, len(placed) == 0, l)
		cur = next
		placed = append(placed, placedSection{img: img, pos: pos})
	}
	return placed, skipped, nil
}

// defaultSettleScript forces the page into its final visual state before
// capture: animations and transitions are disabled and the scroll position
// is swept so scroll-triggered entries fire. The mutation is intentionally
// not undone; an export always wants the settled state.
const defaultSettleScript = `(() => {
	const style = document.createElement("style");
	style.textContent = "*, *::before, *::after { animation: none !important; transition: none !important; }";
	document.head.appendChild(style);
	window.scrollTo(0, document.body.scrollHeight);
	window.scrollTo(0, 0);
})()`

// restoreScript undoes hideScript. Evaluating it without a prior hide is a
// no-op.
const restoreScript = `window.__sectionpdfRestore instanceof Function && window.__sectionpdfRestore()`

// tagSectionsScript marks every element matching sel with a stable index
// attribute and returns how many matched.
func tagSectionsScript(sel string) string {
	quoted, _ := json.Marshal(sel)
	return fmt.Sprintf(`(() => {
	let i = 0;
	for (const el of document.querySelectorAll(%s)) {
		el.setAttribute("data-sectionpdf-index", String(i++));
	}
	return i;
})()`, quoted)
}

// hideScript hides the given selectors, recording each element's previous
// inline display value in a restore hook on window.
func hideScript(sels []string) string {
	quoted, _ := json.Marshal(sels)
	return fmt.Sprintf(`(() => {
	const prev = [];
	for (const sel of %s) {
		for (const el of document.querySelectorAll(sel)) {
			prev.push([el, el.style.display]);
			el.style.display = "none";
		}
	}
	window.__sectionpdfRestore = () => {
		for (const [el, display] of prev) el.style.display = display;
		delete window.__sectionpdfRestore;
	};
	return prev.length;
})()`, quoted)
}
