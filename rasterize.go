package sectionpdf

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/png"
	"math"

	"github.com/chromedp/chromedp"
	"golang.org/x/image/draw"
)

// raster is the bitmap produced by capturing one section: PNG payload plus
// the pixel dimensions and the scale factor used to produce it. It is
// consumed by the composer and emitter and discarded after placement.
type raster struct {
	width  int
	height int
	scale  float64
	data   []byte
}

// sectionCapturer produces the bitmap for one section. The pipeline calls
// it strictly sequentially: the page is live and shared, so concurrent
// captures would snapshot inconsistent states.
type sectionCapturer interface {
	capture(ctx context.Context, index int) (raster, error)
}

// sectionAttr marks sections with a stable per-export index so each one is
// addressable regardless of how specific the user's selector is.
const sectionAttr = "data-sectionpdf-index"

func sectionSelector(index int) string {
	return fmt.Sprintf(`[%s="%d"]`, sectionAttr, index)
}

// tabCapturer captures sections as element screenshots in a browser tab.
type tabCapturer struct {
	quality  int
	maxWidth int
}

func (c *tabCapturer) capture(ctx context.Context, index int) (raster, error) {
	sel := sectionSelector(index)

	var buf []byte
	err := chromedp.Run(ctx,
		chromedp.ScreenshotScale(sel, float64(c.quality), &buf, chromedp.NodeVisible, chromedp.ByQuery),
	)
	if err != nil {
		return raster{}, &CaptureError{Index: index, Selector: sel, Err: err}
	}

	cfg, err := png.DecodeConfig(bytes.NewReader(buf))
	if err != nil {
		return raster{}, &CaptureError{Index: index, Selector: sel, Err: fmt.Errorf("decoding screenshot: %w", err)}
	}

	r := raster{width: cfg.Width, height: cfg.Height, scale: float64(c.quality), data: buf}
	if c.maxWidth > 0 && r.width > c.maxWidth {
		r, err = downsample(r, c.maxWidth)
		if err != nil {
			return raster{}, &CaptureError{Index: index, Selector: sel, Err: err}
		}
	}
	return r, nil
}

// downsample resizes a raster to maxW pixels wide, preserving aspect ratio.
func downsample(r raster, maxW int) (raster, error) {
	src, err := png.Decode(bytes.NewReader(r.data))
	if err != nil {
		return raster{}, fmt.Errorf("decoding for downsample: %w", err)
	}

	h := int(math.Round(float64(r.height) * float64(maxW) / float64(r.width)))
	if h < 1 {
		h = 1
	}
	dst := image.NewRGBA(image.Rect(0, 0, maxW, h))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Over, nil)

	var buf bytes.Buffer
	if err := png.Encode(&buf, dst); err != nil {
		return raster{}, fmt.Errorf("encoding downsampled image: %w", err)
	}
	return raster{width: maxW, height: h, scale: r.scale, data: buf.Bytes()}, nil
}
