package render

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"image/jpeg"
	"image/png"
	"time"

	"github.com/chromedp/chromedp"

	"github.com/ha1tch/geom-toolkit/pkg/scene"
)

// BrowserRasterizer renders the SVG form of a scene in headless Chrome and
// screenshots it. Text is shaped by the browser, so output matches what a
// web page embedding the SVG would show.
type BrowserRasterizer struct {
	ExecPath string        // Chrome binary; empty uses the default lookup
	Timeout  time.Duration // 0 means 30s
	SVG      SVGOptions
}

// Rasterize returns the scene encoded as "png" or "jpeg".
func (b BrowserRasterizer) Rasterize(ctx context.Context, sc *scene.Scene, format string) ([]byte, error) {
	switch format {
	case "png", "jpg", "jpeg":
	default:
		return nil, fmt.Errorf("render: unsupported browser format %q", format)
	}

	svg := SVG(sc, b.SVG)
	dataURI := "data:image/svg+xml;base64," + base64.StdEncoding.EncodeToString([]byte(svg))

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Headless,
		chromedp.DisableGPU,
		chromedp.WindowSize(int(sc.Width+0.5), int(sc.Height+0.5)),
	)
	if b.ExecPath != "" {
		opts = append(opts, chromedp.ExecPath(b.ExecPath))
	}

	timeout := b.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, opts...)
	defer cancelAlloc()
	bctx, cancelCtx := chromedp.NewContext(allocCtx)
	defer cancelCtx()

	var shot []byte
	err := chromedp.Run(bctx,
		chromedp.Navigate(dataURI),
		chromedp.WaitVisible(`svg`, chromedp.ByQuery),
		chromedp.Screenshot(`svg`, &shot, chromedp.ByQuery),
	)
	if err != nil {
		return nil, fmt.Errorf("render: chrome: %w", err)
	}
	if len(shot) == 0 {
		return nil, fmt.Errorf("render: chrome returned an empty screenshot")
	}

	if format == "png" {
		return shot, nil
	}
	img, err := png.Decode(bytes.NewReader(shot))
	if err != nil {
		return nil, fmt.Errorf("render: decode screenshot: %w", err)
	}
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: 90}); err != nil {
		return nil, fmt.Errorf("render: encode jpeg: %w", err)
	}
	return buf.Bytes(), nil
}
