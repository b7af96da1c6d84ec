package sectionpdf

import (
	"log/slog"
	"time"
)

// Default selectors hidden during an export. They cover the controls a page
// typically shows on screen but should not carry into a document: the export
// trigger itself, a mobile navigation toggle, and a scroll progress bar.
var defaultHideSelectors = []string{
	".export-button",
	".nav-toggle",
	".scroll-progress",
}

// exporterConfig holds internal configuration for an Exporter.
type exporterConfig struct {
	chromePath     string
	autoDownload   bool
	noSandbox      bool
	headless       string
	timeout        time.Duration
	quality        int
	layout         Layout
	sectionSel     string
	hideSelectors  []string
	settleScript   string
	sectionPause   time.Duration
	maxRasterWidth int
	filenameBase   string
	viewportWidth  int64
	viewportHeight int64
	logger         *slog.Logger
	now            func() time.Time
}

func defaultConfig() exporterConfig {
	return exporterConfig{
		headless:       "new",
		timeout:        60 * time.Second,
		quality:        2,
		layout:         DefaultLayout(),
		sectionSel:     "section",
		hideSelectors:  defaultHideSelectors,
		sectionPause:   150 * time.Millisecond,
		filenameBase:   "Resume",
		viewportWidth:  1200,
		viewportHeight: 800,
		logger:         slog.New(slog.DiscardHandler),
		now:            time.Now,
	}
}

// Option configures an [Exporter].
type Option func(*exporterConfig)

// WithChromePath sets the path to the Chrome or Chromium executable.
// By default the library searches standard locations automatically.
func WithChromePath(path string) Option {
	return func(c *exporterConfig) {
		c.chromePath = path
	}
}

// WithAutoDownload downloads a compatible Chromium binary when none is
// installed, caching it for later runs. Takes precedence over PATH lookup
// but not over [WithChromePath].
func WithAutoDownload() Option {
	return func(c *exporterConfig) {
		c.autoDownload = true
	}
}

// WithNoSandbox disables the Chrome sandbox. This is required when
// running as root, for example inside Docker containers.
func WithNoSandbox() Option {
	return func(c *exporterConfig) {
		c.noSandbox = true
	}
}

// WithTimeout sets the maximum duration for a single export.
// Defaults to 60 seconds. A zero or negative value disables the timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *exporterConfig) {
		c.timeout = d
	}
}

// WithQuality sets the capture scale factor, an integer between 1 and 5.
// Higher values produce sharper but larger output. Values outside the
// range are clamped. Defaults to 2.
func WithQuality(q int) Option {
	return func(c *exporterConfig) {
		if q < 1 {
			q = 1
		}
		if q > 5 {
			q = 5
		}
		c.quality = q
	}
}

// WithLayout sets the page layout. Zero-value fields fall back to the
// defaults documented on [Layout].
func WithLayout(l Layout) Option {
	return func(c *exporterConfig) {
		c.layout = l
	}
}

// WithSectionSelector sets the CSS selector that identifies the content
// sections to capture, in document order. Defaults to "section".
func WithSectionSelector(sel string) Option {
	return func(c *exporterConfig) {
		if sel != "" {
			c.sectionSel = sel
		}
	}
}

// WithHideSelectors replaces the set of CSS selectors hidden for the
// duration of the export. The matched elements are restored before the
// export returns, on every exit path.
func WithHideSelectors(sels ...string) Option {
	return func(c *exporterConfig) {
		c.hideSelectors = sels
	}
}

// WithSettleScript replaces the JavaScript evaluated before capture to
// force the page into its final visual state. The default script disables
// CSS animations and transitions and sweeps the scroll position so
// scroll-triggered entries fire.
func WithSettleScript(js string) Option {
	return func(c *exporterConfig) {
		c.settleScript = js
	}
}

// WithSectionPause sets the fixed pause between consecutive section
// captures, yielding control back to the page between screenshots.
// Defaults to 150 ms. A zero or negative value disables the pause.
func WithSectionPause(d time.Duration) Option {
	return func(c *exporterConfig) {
		c.sectionPause = d
	}
}

// WithMaxRasterWidth caps captured bitmaps to the given pixel width,
// downsampling wider captures while preserving aspect ratio. Zero (the
// default) disables the cap.
func WithMaxRasterWidth(px int) Option {
	return func(c *exporterConfig) {
		c.maxRasterWidth = px
	}
}

// WithFilenameBase sets the base of the generated filename, which is
// always suffixed with the export date: <base>_<YYYY-MM-DD>.pdf.
// Defaults to "Resume".
func WithFilenameBase(base string) Option {
	return func(c *exporterConfig) {
		if base != "" {
			c.filenameBase = base
		}
	}
}

// WithViewport sets the emulated viewport size in CSS pixels. The viewport
// determines the laid-out width of the captured sections. Defaults to
// 1200x800.
func WithViewport(width, height int64) Option {
	return func(c *exporterConfig) {
		if width > 0 {
			c.viewportWidth = width
		}
		if height > 0 {
			c.viewportHeight = height
		}
	}
}

// WithLogger sets the logger used for per-section capture failures and the
// end-of-export summary. By default nothing is logged.
func WithLogger(l *slog.Logger) Option {
	return func(c *exporterConfig) {
		if l != nil {
			c.logger = l
		}
	}
}
