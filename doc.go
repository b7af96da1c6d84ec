// Package sectionpdf turns the sections of a rendered web page into a
// paginated PDF, section by section, via headless Chrome (Chrome DevTools
// Protocol).
//
// It was built to give a single-page résumé site a faithful "download as
// PDF" artifact, but works against any page whose content blocks are
// addressable by a CSS selector. Each section is screenshotted in its
// settled visual state, scaled to fit the page width (capped to a quarter
// of a page so no single section dominates), centered, and stacked down
// the document with automatic page breaks.
//
// # Usage
//
// Create an [Exporter], which starts and reuses a browser process:
//
//	e, err := sectionpdf.New()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer e.Close()
//
//	res, err := e.GenerateURL(ctx, "https://example.com")
//	res, err  = e.GenerateFile(ctx, "resume/index.html")
//	res, err  = e.GenerateHTML(ctx, "<section>…</section>")
//
// Exports are single-flight: a Generate call made while another export is
// running returns an empty [Result] and no error. Check [Result.Empty].
//
// Options control capture quality, layout, and which parts of the page
// take part:
//
//	e, err := sectionpdf.New(
//	    sectionpdf.WithQuality(3),
//	    sectionpdf.WithSectionSelector("main > section"),
//	    sectionpdf.WithHideSelectors(".export-button", ".nav-toggle"),
//	    sectionpdf.WithFilenameBase("Resume"),
//	)
//
// Before capturing, the exporter forces the page into its final visual
// state (animations and transitions completed, scroll-triggered entries
// revealed) and hides the configured screen-only controls, restoring them
// when the export finishes. A section that fails to capture is logged and
// skipped; the document is produced with a gap rather than not at all.
//
// A [Result] gives flexible access to the generated document:
//
//	res.Bytes()                        // []byte
//	res.Base64()                       // base64 string (RFC 4648)
//	res.Reader()                       // *bytes.Reader
//	res.Save("out/")                   // out/Resume_2026-08-30.pdf
//	res.Pages(), res.Elapsed()         // export metrics
//
// Chrome or Chromium must be available in PATH, or use [WithAutoDownload]:
//
//	e, err := sectionpdf.New(sectionpdf.WithAutoDownload())
package sectionpdf
