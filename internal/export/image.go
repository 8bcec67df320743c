package export

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"image/jpeg"
	"image/png"
	"io"
	"log"
	"strings"
	"time"

	"github.com/chromedp/chromedp"
)

const (
	defaultScreenshotTimeout = 30 * time.Second
	defaultJPEGQuality       = 90
)

// Image rasterises an SVG document with headless Chrome and writes it as PNG
// or JPEG.
func Image(ctx context.Context, svg string, format Format, w io.Writer, opts Options) error {
	if format != FormatPNG && format != FormatJPEG {
		return fmt.Errorf("%w: %q is not a raster format", ErrUnsupportedFormat, format)
	}
	shot, err := screenshot(ctx, svg, opts)
	if err != nil {
		return err
	}
	return encodeScreenshot(shot, format, opts.JPEGQuality, w)
}

// screenshot loads the SVG from a data URI and captures its element.
func screenshot(ctx context.Context, svg string, opts Options) ([]byte, error) {
	dataURI := "data:image/svg+xml;base64," + base64.StdEncoding.EncodeToString([]byte(svg))
	log.Println("Created data URI for SVG.")

	allocOpts := append(chromedp.DefaultExecAllocatorOptions[:], chromedp.Headless)
	if opts.NoSandbox {
		allocOpts = append(allocOpts, chromedp.NoSandbox)
	}
	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, allocOpts...)
	defer cancelAlloc()

	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx)
	defer cancelBrowser()

	timeout := opts.ScreenshotTimeout
	if timeout <= 0 {
		timeout = defaultScreenshotTimeout
	}
	runCtx, cancelRun := context.WithTimeout(browserCtx, timeout)
	defer cancelRun()

	var buf []byte
	tasks := chromedp.Tasks{
		chromedp.Navigate(dataURI),
		chromedp.WaitVisible(`svg`, chromedp.ByQuery),
		chromedp.Screenshot(`svg`, &buf, chromedp.ByQuery),
	}
	log.Println("Running chromedp tasks (navigate and screenshot)...")
	if err := chromedp.Run(runCtx, tasks); err != nil {
		return nil, fmt.Errorf("chromedp execution failed: %w", err)
	}
	if len(buf) == 0 {
		return nil, fmt.Errorf("screenshot buffer is empty, screenshot failed")
	}
	log.Println("Chromedp tasks completed successfully.")
	return buf, nil
}

// encodeScreenshot writes a PNG screenshot as-is or re-encodes it as JPEG.
func encodeScreenshot(shot []byte, format Format, quality int, w io.Writer) error {
	r := bytes.NewReader(shot)
	switch format {
	case FormatPNG:
		if _, err := io.Copy(w, r); err != nil {
			return fmt.Errorf("failed to write PNG screenshot data: %w", err)
		}
	case FormatJPEG:
		img, err := png.Decode(r)
		if err != nil {
			return fmt.Errorf("failed to decode PNG screenshot: %w", err)
		}
		if quality <= 0 || quality > 100 {
			quality = defaultJPEGQuality
		}
		if err := jpeg.Encode(w, img, &jpeg.Options{Quality: quality}); err != nil {
			return fmt.Errorf("failed to encode JPEG: %w", err)
		}
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
	log.Printf("Successfully encoded %s image.", strings.ToUpper(string(format)))
	return nil
}
